package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/arthur-debert/linkany/pkg/errors"
	"github.com/arthur-debert/linkany/pkg/filesystem"
	"github.com/arthur-debert/linkany/pkg/logging"
	"github.com/arthur-debert/linkany/pkg/types"
	"github.com/jonboulle/clockwork"
	toml "github.com/pelletier/go-toml/v2"
)

// Store writes the config file through a filesystem
type Store struct {
	fs    types.FS
	clock clockwork.Clock
}

// NewStore creates a Store writing through fs
func NewStore(fs types.FS) *Store {
	return &Store{fs: fs, clock: clockwork.NewRealClock()}
}

func defaultStore() *Store {
	return NewStore(filesystem.NewOS())
}

// Save writes cfg to the config file through a temporary sibling and a
// rename.
func Save(cfg *Config) error {
	return defaultStore().Save(cfg)
}

// SetDefaultManifestPath records manifestPath, made absolute, as the
// manifest used when none is given. It returns the stored path.
func SetDefaultManifestPath(manifestPath string) (string, error) {
	return defaultStore().SetDefaultManifestPath(manifestPath)
}

// DefaultManifestPath returns the configured manifest, or "" when none is
// set. LINKANY_MANIFEST_PATH takes precedence over the config file.
func DefaultManifestPath() (string, error) {
	cfg, err := Load()
	if err != nil {
		return "", err
	}
	return cfg.ManifestPath, nil
}

// ClearDefaultManifestPath forgets the default manifest. The config file is
// removed once nothing else is stored in it.
func ClearDefaultManifestPath() error {
	return defaultStore().ClearDefaultManifestPath()
}

// Save writes cfg to Path()
func (s *Store) Save(cfg *Config) error {
	path := Path()
	data, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigWrite, "failed to encode config")
	}

	if err := s.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "failed to create %s", filepath.Dir(path))
	}

	tmp := path + ".tmp." + strconv.FormatInt(s.clock.Now().UnixNano(), 10)
	if err := s.fs.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "failed to write %s", tmp)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrConfigWrite, "failed to write %s", path)
	}

	logger := logging.GetLogger("config")
	logger.Debug().Str("path", path).Msg("Saved config file")
	return nil
}

// SetDefaultManifestPath stores manifestPath, made absolute
func (s *Store) SetDefaultManifestPath(manifestPath string) (string, error) {
	abs, err := filepath.Abs(manifestPath)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "invalid manifest path %s", manifestPath)
	}

	cfg, err := readFile()
	if err != nil {
		return "", err
	}
	cfg.ManifestPath = abs
	if err := s.Save(cfg); err != nil {
		return "", err
	}
	return abs, nil
}

// ClearDefaultManifestPath drops manifest_path, removing the file when it
// would be empty
func (s *Store) ClearDefaultManifestPath() error {
	path := Path()
	if _, err := s.fs.Stat(path); os.IsNotExist(err) {
		return nil
	}

	cfg, err := readFile()
	if err != nil {
		return err
	}
	cfg.ManifestPath = ""

	if cfg.IsZero() {
		if err := s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, errors.ErrConfigWrite, "failed to remove %s", path)
		}
		return nil
	}
	return s.Save(cfg)
}

package manifest

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/linkany/pkg/errors"
	"github.com/arthur-debert/linkany/pkg/logging"
	"github.com/arthur-debert/linkany/pkg/types"
	"github.com/google/uuid"
)

// Load reads the manifest at path. A missing file is an error.
func Load(fs types.FS, path string) (*Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid manifest path %s", path)
	}

	data, err := fs.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrManifestNotFound, "Manifest not found: %s", abs)
		}
		return nil, errors.Wrapf(err, errors.ErrManifestInvalid, "failed to read manifest %s", abs)
	}

	m, err := Parse(data, FormatFor(abs))
	if err != nil {
		return nil, err
	}

	logger := logging.GetLogger("manifest")
	logger.Debug().
		Str("path", abs).
		Int("installs", len(m.Installs)).
		Msg("Loaded manifest")
	return m, nil
}

// LoadOrCreate reads the manifest at path, or returns an empty one if the
// file does not exist yet. Nothing is written.
func LoadOrCreate(fs types.FS, path string) (*Manifest, error) {
	m, err := Load(fs, path)
	if errors.IsErrorCode(err, errors.ErrManifestNotFound) {
		return New(), nil
	}
	return m, err
}

// Save writes m to path through a temporary sibling and a rename, so a
// reader never sees a partial document.
func Save(fs types.FS, path string, m *Manifest) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "invalid manifest path %s", path)
	}

	data, err := Marshal(m, FormatFor(abs))
	if err != nil {
		return errors.Wrap(err, errors.ErrManifestWrite, "failed to encode manifest")
	}

	if err := fs.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "failed to create %s", filepath.Dir(abs))
	}

	tmp := tempPath(abs)
	if err := fs.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "failed to write %s", tmp)
	}
	if err := fs.Rename(tmp, abs); err != nil {
		_ = fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrManifestWrite, "failed to replace %s", abs)
	}

	logger := logging.GetLogger("manifest")
	logger.Debug().
		Str("path", abs).
		Int("installs", len(m.Installs)).
		Msg("Saved manifest")
	return nil
}

func tempPath(abs string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return abs + ".tmp." + strconv.FormatInt(time.Now().UnixMilli(), 10) + "." + suffix
}

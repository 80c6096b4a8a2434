package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/linkany/pkg/errors"
	"github.com/arthur-debert/linkany/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvConfigPath overrides the location of the config file
	EnvConfigPath = "LINKANY_CONFIG"
	// EnvPrefix marks environment variables that override config keys
	EnvPrefix = "LINKANY_"

	dirName  = "linkany"
	fileName = "config.toml"
)

// Config is the CLI configuration
type Config struct {
	// ManifestPath is the default manifest, stored as an absolute path
	ManifestPath string `koanf:"manifest_path" toml:"manifest_path,omitempty"`
	// AuditLog overrides the audit log next to the manifest
	AuditLog string `koanf:"audit_log" toml:"audit_log,omitempty"`
	// IncludePlan renders plan text on every result
	IncludePlan bool `koanf:"include_plan" toml:"include_plan,omitempty"`
}

// IsZero reports whether nothing is configured
func (c Config) IsZero() bool {
	return c == Config{}
}

var defaults = map[string]interface{}{
	"manifest_path": "",
	"audit_log":     "",
	"include_plan":  false,
}

// Path returns the config file location
func Path() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return filepath.Join(xdg.ConfigHome, dirName, fileName)
}

// Load returns the effective configuration: defaults, then the config
// file, then the environment.
func Load() (*Config, error) {
	k, err := loadFile(Path())
	if err != nil {
		return nil, err
	}

	// LINKANY_MANIFEST_PATH -> manifest_path. Empty variables are ignored.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		if s == EnvConfigPath || os.Getenv(s) == "" {
			return ""
		}
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	return unmarshal(k)
}

// loadFile layers the config file over the defaults. A missing file is not
// an error.
func loadFile(path string) (*koanf.Koanf, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path)
		}
		logger := logging.GetLogger("config")
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	return k, nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

// readFile returns only what the config file holds, so that environment
// overrides are never written back.
func readFile() (*Config, error) {
	k, err := loadFile(Path())
	if err != nil {
		return nil, err
	}
	return unmarshal(k)
}

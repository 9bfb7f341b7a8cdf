// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package config loads itemforge settings from a YAML file overlaid by
// command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/holomush/itemforge/internal/xdg"
)

// CodeInvalid marks configuration that failed to load or validate.
const CodeInvalid = "CONFIG_INVALID"

// Config holds every itemforge setting.
type Config struct {
	Tracking Tracking `koanf:"tracking"`
	Catalog  Catalog  `koanf:"catalog"`
	Log      Log      `koanf:"log"`
}

// Tracking controls the descriptor registry.
type Tracking struct {
	// Enabled registers every descriptor on construction.
	Enabled bool `koanf:"enabled"`
	// Capacity bounds the registry; 0 means unbounded.
	Capacity int `koanf:"capacity" validate:"gte=0"`
}

// Catalog selects the item catalog.
type Catalog struct {
	// Path of a catalog file. Empty selects the embedded default catalog.
	Path string `koanf:"path"`
}

// Log configures logging output.
type Log struct {
	Format string `koanf:"format" validate:"oneof=json text"`
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Tracking: Tracking{Enabled: true},
		Log:      Log{Format: "text", Level: "info"},
	}
}

// flagKeys maps command-line flags to config keys.
var flagKeys = map[string]string{
	"track":          "tracking.enabled",
	"track-capacity": "tracking.capacity",
	"catalog":        "catalog.path",
	"log-format":     "log.format",
	"log-level":      "log.level",
}

// RegisterFlags adds the flags that override config keys.
func RegisterFlags(flags *pflag.FlagSet) {
	d := Default()
	flags.Bool("track", d.Tracking.Enabled, "register descriptors on construction")
	flags.Int("track-capacity", d.Tracking.Capacity, "maximum tracked descriptors (0 = unbounded)")
	flags.String("catalog", d.Catalog.Path, "catalog file (default: embedded catalog)")
	flags.String("log-format", d.Log.Format, "log format (json or text)")
	flags.String("log-level", d.Log.Level, "log level (debug, info, warn, error)")
}

// Load reads settings. path names the config file; when empty the XDG
// default file is used if it exists. Flags that were set on the command line
// override file values. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	d := Default()
	defaults := map[string]any{
		"tracking.enabled":  d.Tracking.Enabled,
		"tracking.capacity": d.Tracking.Capacity,
		"catalog.path":      d.Catalog.Path,
		"log.format":        d.Log.Format,
		"log.level":         d.Log.Level,
	}
	for key, v := range defaults {
		if err := k.Set(key, v); err != nil {
			return nil, oops.In("config").Code(CodeInvalid).With("key", key).Wrap(err)
		}
	}

	if err := loadFile(k, path); err != nil {
		return nil, err
	}

	if flags != nil {
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, oops.In("config").Code(CodeInvalid).Wrapf(err, "load flags")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.In("config").Code(CodeInvalid).Wrapf(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	explicit := path != ""
	if !explicit {
		def, err := xdg.ConfigFile()
		if err != nil {
			// No home directory: run on defaults.
			return nil //nolint:nilerr // a missing default location is not an error
		}
		path = def
	}

	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return oops.In("config").Code(CodeInvalid).With("path", path).Wrapf(err, "read config file")
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return oops.In("config").Code(CodeInvalid).With("path", path).Wrapf(err, "parse config file")
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return oops.In("config").Code(CodeInvalid).Wrap(err)
	}
	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, describe(fe))
	}
	return oops.In("config").Code(CodeInvalid).With("problems", problems).
		Errorf("invalid configuration: %s", strings.Join(problems, "; "))
}

func describe(fe validator.FieldError) string {
	key := strings.ToLower(strings.TrimPrefix(fe.Namespace(), "Config."))
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", key, fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be at least %s, got %v", key, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", key, fe.Tag())
	}
}

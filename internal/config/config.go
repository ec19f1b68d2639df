// Package config loads command line settings from defaults, an optional YAML
// file and UTF8CELL_* environment variables, in that order.
package config

import (
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	yaml "gopkg.in/yaml.v3"

	"github.com/wippyai/utf8cell"
	"github.com/wippyai/utf8cell/errors"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "UTF8CELL"

// Output formats.
const (
	FormatRaw  = "raw"
	FormatHex  = "hex"
	FormatAuto = "auto"
)

// Settings holds the CLI options read from file and environment.
type Settings struct {
	Width    uint8  `yaml:"width" envconfig:"WIDTH"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Strict   bool   `yaml:"strict" envconfig:"STRICT"`
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL"`
	Module   string `yaml:"module" envconfig:"MODULE"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Width:    uint8(utf8cell.Width32),
		Format:   FormatAuto,
		LogLevel: "warn",
		Module:   "utf8cell",
	}
}

// Load reads settings. An empty path skips the file layer.
func Load(path string) (Settings, error) {
	settings := Default()
	if path != "" {
		if err := readFile(path, &settings); err != nil {
			return Settings{}, err
		}
	}
	if err := envconfig.Process(EnvPrefix, &settings); err != nil {
		return Settings{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "read environment")
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func readFile(path string, settings *Settings) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindNotFound, err, "open "+path)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(settings); err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "decode "+path)
	}
	return nil
}

// Validate checks field values and normalizes Format and LogLevel to lower case.
func (s *Settings) Validate() error {
	if !utf8cell.Width(s.Width).Valid() {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("width").
			Value(s.Width).
			Detail("width must be 8, 16, 32 or 64").
			Build()
	}

	s.Format = strings.ToLower(s.Format)
	switch s.Format {
	case FormatRaw, FormatHex, FormatAuto:
	default:
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("format").
			Value(s.Format).
			Detail("format must be raw, hex or auto").
			Build()
	}

	s.LogLevel = strings.ToLower(s.LogLevel)
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("log_level").
			Value(s.LogLevel).
			Detail("unknown log level").
			Build()
	}

	if s.Module == "" {
		return errors.InvalidInput(errors.PhaseConfig, "module name cannot be empty")
	}
	return nil
}

// CellWidth returns Width as a utf8cell.Width.
func (s Settings) CellWidth() utf8cell.Width {
	return utf8cell.Width(s.Width)
}

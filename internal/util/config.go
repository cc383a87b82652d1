package util

import (
	"bytes"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/DaanHessen/streamer-sim/internal/engine"
	"github.com/DaanHessen/streamer-sim/internal/session"
)

// Config holds runtime settings and flags.
type Config struct {
	SeedText     string
	DSN          string        // empty disables the journal
	SettingsPath string
	Autoplay     bool
	Headless     time.Duration // run without the TUI for this long
	MetricsAddr  string
	LogFile      string
	LogLevel     string
	Player       string
	Channel      string
	APIKey       string
	Version      string
}

// Settings are the tunable game constants.
type Settings struct {
	Balance engine.Balance `yaml:"balance"`
	Timing  session.Timing `yaml:"timing"`
}

func DefaultSettings() Settings {
	return Settings{Balance: engine.DefaultBalance(), Timing: session.DefaultTiming()}
}

// LoadSettings overlays the YAML file at path onto the defaults. Keys the
// file omits keep their default values. An empty path returns the defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, errors.Wrap(err, "read settings")
	}
	if err := ParseSettings(raw, &s); err != nil {
		return Settings{}, errors.Wrapf(err, "settings %s", path)
	}
	return s, nil
}

// ParseSettings decodes raw over s and validates the result.
func ParseSettings(raw []byte, s *Settings) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrap(err, "decode")
	}
	if err := s.Balance.Validate(); err != nil {
		return errors.Wrap(err, "balance")
	}
	if err := s.Timing.Validate(); err != nil {
		return errors.Wrap(err, "timing")
	}
	return nil
}

// EnvOr returns the environment value for key, or def when unset.
func EnvOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

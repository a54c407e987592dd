// Package config reads runtime settings from the environment and game
// balance knobs from an optional YAML file.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "QUESTLINE_"

// Settings are the process-level options, read from QUESTLINE_* variables.
type Settings struct {
	// Seed fixes the RNG. Zero picks a seed from the clock.
	Seed int64 `env:"SEED"`
	// GameDir holds the Lua content files.
	GameDir string `env:"GAME_DIR" envDefault:"games/hollowvale"`
	// Balance is a YAML file of balance overrides. Empty uses the
	// game directory's balance.yaml when present.
	Balance string `env:"BALANCE"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	// LogFile receives log output. Empty discards logs.
	LogFile string `env:"LOG_FILE"`

	// TextSpeed scales the reveal delays; 0 prints instantly.
	TextSpeed float64 `env:"TEXT_SPEED" envDefault:"1"`
}

// Parse reads settings from environ, or from the process environment when
// environ is nil.
func Parse(environ map[string]string) (Settings, error) {
	s, err := env.ParseAsWithOptions[Settings](env.Options{
		Environment: environ,
		Prefix:      EnvPrefix,
	})
	if err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	if err := s.validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) validate() error {
	if s.TextSpeed < 0 {
		return fmt.Errorf("%sTEXT_SPEED must not be negative, got %v", EnvPrefix, s.TextSpeed)
	}
	switch s.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%sLOG_FORMAT must be text or json, got %q", EnvPrefix, s.LogFormat)
	}
	return nil
}

package main

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"

	"github.com/lixenwraith/rain/terminal"
)

const (
	backendANSI  = "ansi"
	backendTcell = "tcell"
)

// Config holds the command configuration. Environment first, flags override.
type Config struct {
	Backend string `env:"RAIN_BACKEND" envDefault:"ansi"`
	Color   string `env:"RAIN_COLOR" envDefault:"auto"`
	Debug   bool   `env:"RAIN_DEBUG"`
	Stats   bool   `env:"RAIN_STATS" envDefault:"true"`
}

// loadConfig reads the environment
func loadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, errors.Wrap(err, "parse env")
	}
	return cfg, nil
}

// validate rejects unknown backends and color modes, returning the resolved mode
func (c Config) validate() (terminal.ColorMode, error) {
	switch c.Backend {
	case backendANSI, backendTcell:
	default:
		return 0, errors.Errorf("unknown backend %q (want %s or %s)", c.Backend, backendANSI, backendTcell)
	}
	mode, ok := terminal.ParseColorMode(c.Color)
	if !ok {
		return 0, errors.Errorf("unknown color mode %q (want auto, truecolor or 256)", c.Color)
	}
	return mode, nil
}

package rain

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/rain/terminal"
)

// Config holds tunables for a Driver. Zero fields take the DefaultConfig value,
// except ShowStats, which is taken as given.
type Config struct {
	Background terminal.Color
	HeadColor  terminal.Color
	Gradient   Gradient

	TrailLength int
	MinSpeed    float64 // rows per SpeedUnit, inclusive
	MaxSpeed    float64 // rows per SpeedUnit, exclusive

	SpawnInterval time.Duration
	StatsInterval time.Duration

	ShowStats bool
	StatsFg   terminal.Color
	StatsBg   terminal.Color

	// Injectable for tests
	Now    func() time.Time
	Rand   *rand.Rand
	Logger *slog.Logger
}

// DefaultConfig returns the stock green rain
func DefaultConfig() Config {
	return Config{
		Background: terminal.NewRGB(0, 13, 5),
		HeadColor:  terminal.White,
		Gradient: Gradient{
			From: HSV{H: 141, S: 1, V: 0.43},
			To:   HSV{H: 141, S: 1, V: 0},
		},
		TrailLength:   20,
		MinSpeed:      0.2,
		MaxSpeed:      3.0,
		SpawnInterval: 10 * time.Millisecond,
		StatsInterval: 150 * time.Millisecond,
		ShowStats:     true,
		StatsFg:       terminal.Blue,
		StatsBg:       terminal.Red,
	}
}

// withDefaults fills unset fields
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Background == (terminal.Color{}) {
		c.Background = d.Background
	}
	if c.HeadColor == (terminal.Color{}) {
		c.HeadColor = d.HeadColor
	}
	if c.Gradient == (Gradient{}) {
		c.Gradient = d.Gradient
	}
	if c.TrailLength <= 0 {
		c.TrailLength = d.TrailLength
	}
	if c.MinSpeed <= 0 {
		c.MinSpeed = d.MinSpeed
	}
	if c.MaxSpeed <= c.MinSpeed {
		c.MaxSpeed = max(d.MaxSpeed, c.MinSpeed)
	}
	if c.SpawnInterval <= 0 {
		c.SpawnInterval = d.SpawnInterval
	}
	if c.StatsInterval <= 0 {
		c.StatsInterval = d.StatsInterval
	}
	if c.StatsFg == (terminal.Color{}) {
		c.StatsFg = d.StatsFg
	}
	if c.StatsBg == (terminal.Color{}) {
		c.StatsBg = d.StatsBg
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		c.Rand = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// Package config holds the overlay's startup constants
package config

import (
	"log/slog"
	"time"

	apperrors "github.com/GriffinCanCode/noflash/internal/errors"
)

// Startup constants. Nothing is read from the environment or flags.
const (
	AreaSize         = 100 // side of a detection block, px
	ShaderOpacity    = 120 // overlay alpha, 0-255
	Threshold        = 180 // luma above which a block is shaded
	TickRate         = 25  // Hz
	StatsInterval    = 10 * time.Second
	SceneSampleEvery = 25 // ticks between scene hash samples
	SceneCutDistance = 10 // hamming distance counted as a scene cut
)

type Config struct {
	AreaSize         int
	ShaderOpacity    uint8
	Threshold        float64
	TickRate         float64 // Hz
	StatsInterval    time.Duration
	SceneSampleEvery int
	SceneCutDistance int
	LogLevel         slog.Level
}

func Load() *Config {
	return &Config{
		AreaSize:         AreaSize,
		ShaderOpacity:    ShaderOpacity,
		Threshold:        Threshold,
		TickRate:         TickRate,
		StatsInterval:    StatsInterval,
		SceneSampleEvery: SceneSampleEvery,
		SceneCutDistance: SceneCutDistance,
		LogLevel:         slog.LevelInfo,
	}
}

// Validate rejects values the detection math cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.AreaSize <= 0:
		return apperrors.Newf(apperrors.CodeConfigInvalid, "area size must be positive, got %d", c.AreaSize)
	case c.ShaderOpacity == 255:
		// compensation gain 1/(1-a) is unbounded at full opacity
		return apperrors.New(apperrors.CodeConfigInvalid, "shader opacity must be below 255")
	case c.Threshold < 0 || c.Threshold > 255:
		return apperrors.Newf(apperrors.CodeConfigInvalid, "threshold must be within [0, 255], got %g", c.Threshold)
	case c.TickRate <= 0:
		return apperrors.Newf(apperrors.CodeConfigInvalid, "tick rate must be positive, got %g", c.TickRate)
	}
	return nil
}

// TickInterval is the nominal period between ticks.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.TickRate)
}

// noflash darkens bright regions of the primary display to soften sudden flashes
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/GriffinCanCode/noflash/internal/config"
	apperrors "github.com/GriffinCanCode/noflash/internal/errors"
	"github.com/GriffinCanCode/noflash/internal/orchestrator/screen"
	"github.com/GriffinCanCode/noflash/internal/overlay"
	screencap "github.com/GriffinCanCode/noflash/internal/screen"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load()

	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	capturer, err := screencap.New()
	if err != nil {
		slog.Error("screen capture unavailable", "error", err)
		return 1
	}
	defer capturer.Close()

	if err := screencap.Probe(ctx, capturer); err != nil {
		slog.Error("startup capture failed", "error", err)
		return 1
	}

	proc := screen.NewProcessor(capturer, cfg)

	surface, err := overlay.New(capturer.Bounds(), cfg, proc.Areas)
	if err != nil {
		slog.Error("failed to create overlay", "error", err)
		return 1
	}
	proc.OnRedraw(surface.RequestRedraw)
	surface.RegisterTimer(cfg.TickInterval(), proc.Tick)

	slog.Info("flashbang protection starting",
		"display", capturer.Bounds(),
		"area_size", cfg.AreaSize,
		"threshold", cfg.Threshold,
		"opacity", cfg.ShaderOpacity,
		"tick_rate", cfg.TickRate,
	)

	if err := surface.Run(ctx); err != nil {
		slog.Error("overlay stopped", "code", apperrors.CodeOf(err), "error", err)
		return 1
	}

	s := proc.Stats()
	slog.Info("shutdown complete", "ticks", s.Ticks, "overruns", s.Overruns, "paints", surface.Paints())
	return 0
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/tatianab/treasure-hunter/internal/chance"
	"github.com/tatianab/treasure-hunter/internal/config"
	"github.com/tatianab/treasure-hunter/internal/engine"
	"github.com/tatianab/treasure-hunter/internal/logging"
	"github.com/tatianab/treasure-hunter/internal/models"
	"github.com/tatianab/treasure-hunter/internal/telemetry"
	"github.com/tatianab/treasure-hunter/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.New(cfg.Logging())
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Telemetry {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			logger.Warn("telemetry setup failed, running without traces", zap.Error(err))
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error("telemetry shutdown failed", zap.Error(err))
				}
			}()
		}
	}

	cat, err := models.LoadCatalog()
	if err != nil {
		return err
	}
	rng, seed, err := chance.New(cfg.Seed)
	if err != nil {
		return err
	}
	logger.Info("starting", zap.Int64("seed", seed), zap.Bool("plain", cfg.Plain))

	play := func(ctx context.Context, in engine.Input, out engine.Output) (engine.State, error) {
		s := engine.NewSession(cat, rng, in, out, engine.WithLogger(logger))
		return s.Run(ctx)
	}

	if cfg.Plain {
		state, err := play(ctx, engine.NewLineInput(os.Stdin), engine.NewWriterOutput(os.Stdout))
		logger.Info("session finished", zap.Stringer("state", state))
		return err
	}
	return tui.Run(ctx, play)
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/tatianab/treasure-hunter/internal/autoplay"
	"github.com/tatianab/treasure-hunter/internal/chance"
	"github.com/tatianab/treasure-hunter/internal/config"
	"github.com/tatianab/treasure-hunter/internal/engine"
	"github.com/tatianab/treasure-hunter/internal/logging"
	"github.com/tatianab/treasure-hunter/internal/models"
)

// Lets Gemini play one game against the real rules and prints the transcript.
func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.RequireGemini(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging())
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	gen, err := autoplay.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("Failed to create player client: %v", err)
	}
	defer gen.Close()

	cat, err := models.LoadCatalog()
	if err != nil {
		log.Fatalf("Failed to load game data: %v", err)
	}
	rng, seed, err := chance.New(cfg.Seed)
	if err != nil {
		log.Fatalf("Failed to seed randomness: %v", err)
	}

	agent := autoplay.NewAgent(gen, cfg.AutoplayTurns,
		autoplay.WithLogger(logger),
		autoplay.WithEcho(engine.NewWriterOutput(os.Stdout)),
	)
	session := engine.NewSession(cat, rng, agent, agent, engine.WithLogger(logger))

	fmt.Printf("--- Seed %d, up to %d answers ---\n\n", seed, cfg.AutoplayTurns)
	state, err := session.Run(ctx)
	if err != nil {
		log.Fatalf("Session failed: %v", err)
	}

	fmt.Printf("\n--- Game ended: %s ---\n", state)
	fmt.Printf("Answers: %d (fallbacks: %d)\n", agent.Turns(), agent.Fallbacks())
	if h := session.Hunter(); h != nil {
		fmt.Println(h.InfoString())
	}
	logger.Info("autoplay finished",
		zap.Stringer("state", state),
		zap.Int64("seed", seed),
		zap.Int("answers", agent.Turns()),
		zap.Int("fallbacks", agent.Fallbacks()),
	)
}

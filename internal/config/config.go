package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/tatianab/treasure-hunter/internal/logging"
)

// ErrMissingAPIKey is returned when autoplay is requested without a Gemini key.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY environment variable is not set")

// Config holds the application configuration.
type Config struct {
	Seed  int64 `env:"HUNTER_SEED"`
	Plain bool  `env:"HUNTER_PLAIN"`

	LogLevel    string `env:"HUNTER_LOG_LEVEL" envDefault:"info"`
	LogEncoding string `env:"HUNTER_LOG_ENCODING" envDefault:"json"`
	LogPath     string `env:"HUNTER_LOG_PATH" envDefault:"hunter.log"`

	Telemetry bool `env:"HUNTER_TELEMETRY"`

	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	GeminiModel   string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	AutoplayTurns int    `env:"HUNTER_AUTOPLAY_TURNS" envDefault:"40"`
}

// LoadConfig loads the configuration from environment variables, after
// merging in a .env file from the working directory when there is one.
// Variables already set in the environment win over the file.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()
	return parse()
}

func parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.AutoplayTurns <= 0 {
		return nil, fmt.Errorf("HUNTER_AUTOPLAY_TURNS must be positive, got %d", cfg.AutoplayTurns)
	}
	return cfg, nil
}

// RequireGemini checks that the settings needed to reach Gemini are present.
func (c *Config) RequireGemini() error {
	if c.GeminiAPIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// Logging is the logger configuration.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:      c.LogLevel,
		Encoding:   c.LogEncoding,
		OutputPath: c.LogPath,
	}
}

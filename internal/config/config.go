package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration.
type Config struct {
	// Prefills the credential prompt. The player still confirms it.
	AnthropicAPIKey string `envconfig:"ANTHROPIC_API_KEY"`

	NarratorURL       string `envconfig:"NARRATOR_URL" default:"https://api.anthropic.com/v1/messages"`
	NarratorModel     string `envconfig:"NARRATOR_MODEL" default:"claude-sonnet-4-20250514"`
	NarratorMaxTokens int    `envconfig:"NARRATOR_MAX_TOKENS" default:"1024"`
	AnthropicVersion  string `envconfig:"ANTHROPIC_VERSION" default:"2023-06-01"`

	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`
	LogFile     string `envconfig:"LOG_FILE" default:"dungeon.log"`

	SaveDir string `envconfig:"SAVE_DIR" default:".saves"`

	// Only the simulation harness needs this.
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
}

// LoadConfig reads an optional .env file and then the environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if cfg.NarratorMaxTokens <= 0 {
		return nil, fmt.Errorf("NARRATOR_MAX_TOKENS must be positive, got %d", cfg.NarratorMaxTokens)
	}
	if cfg.NarratorURL == "" {
		return nil, fmt.Errorf("NARRATOR_URL must not be empty")
	}
	return &cfg, nil
}

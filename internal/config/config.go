// Package config loads engine configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultModel         = "gpt-5-2025-08-07"
	DefaultPlayerID      = "player_01"
	DefaultStartLocation = "tavern_main_room_01"
	DefaultListenAddr    = ":8080"
)

// Config carries everything the engine needs at startup. A missing API key
// is the one fatal condition: the oracle is not optional.
type Config struct {
	OpenAIAPIKey   string
	Model          string
	DataDirs       []string
	PlayerID       string
	StartLocation  string
	MatchThreshold int
	// Duplicates is the duplicate-id discipline for directory loads:
	// "skip" (log and drop the duplicate) or "reject" (abort the load).
	Duplicates string
	ListenAddr string
	Debug      bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		Model:          envOr("GT_MODEL", DefaultModel),
		DataDirs:       splitDirs(envOr("GT_DATA_DIRS", "data/world")),
		PlayerID:       envOr("GT_PLAYER_ID", DefaultPlayerID),
		StartLocation:  envOr("GT_START_LOCATION", DefaultStartLocation),
		MatchThreshold: envInt("GT_MATCH_THRESHOLD", 75),
		Duplicates:     envOr("GT_DUPLICATES", "skip"),
		ListenAddr:     envOr("GT_LISTEN_ADDR", DefaultListenAddr),
		Debug:          os.Getenv("DEBUG") == "1" || os.Getenv("DEBUG") == "true",
	}

	if cfg.OpenAIAPIKey == "" {
		return Config{}, fmt.Errorf("please set OPENAI_API_KEY environment variable")
	}
	if cfg.Duplicates != "skip" && cfg.Duplicates != "reject" {
		return Config{}, fmt.Errorf("GT_DUPLICATES must be \"skip\" or \"reject\", got %q", cfg.Duplicates)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func splitDirs(s string) []string {
	var dirs []string
	for _, part := range strings.Split(s, ":") {
		if part = strings.TrimSpace(part); part != "" {
			dirs = append(dirs, part)
		}
	}
	return dirs
}

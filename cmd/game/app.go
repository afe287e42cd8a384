package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"groundtruth/cmd/game/ui"
	"groundtruth/internal/config"
	"groundtruth/internal/debug"
	"groundtruth/internal/game"
	"groundtruth/internal/llm"
	"groundtruth/internal/logging"
	"groundtruth/internal/observability"
)

func createApp() (ui.Model, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return ui.Model{}, nil, err
	}

	debugLogger := debug.NewLogger(cfg.Debug)

	ctx := context.Background()
	tracerProvider, err := observability.InitTracing(ctx, observability.LoadConfigFromEnv())
	if err != nil {
		debugLogger.Printf("Failed to initialize tracing: %v", err)
	} else if tracerProvider.IsEnabled() {
		debugLogger.Println("OpenTelemetry tracing initialized and enabled")
	} else {
		debugLogger.Println("OpenTelemetry tracing disabled (set OTEL_TRACES_ENABLED=true to enable)")
	}

	turns, err := logging.NewTurnLogger("")
	if err != nil {
		return ui.Model{}, nil, fmt.Errorf("failed to initialize turn logger: %w", err)
	}

	oracle := llm.NewService(cfg.OpenAIAPIKey, cfg.Model, debugLogger)

	debugLogger.Printf("Loading world from %v", cfg.DataDirs)
	w, err := game.SetupWorld(cfg, debugLogger)
	if err != nil {
		return ui.Model{}, nil, fmt.Errorf("failed to set up world: %w", err)
	}

	master := game.NewGameMaster(oracle, w, uuid.NewString(), debugLogger, turns)
	debugLogger.Printf("Game master ready, player at %s", w.State.Location())

	model := ui.NewModel(master, cfg.Debug)

	cleanup := func() {
		turns.Close()
		if tracerProvider != nil {
			tracerProvider.Shutdown(context.Background())
		}
	}

	return model, cleanup, nil
}

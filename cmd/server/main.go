package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"groundtruth/internal/config"
	"groundtruth/internal/debug"
	"groundtruth/internal/llm"
	"groundtruth/internal/logging"
	"groundtruth/internal/observability"
	"groundtruth/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	debugLogger := debug.NewLogger(cfg.Debug)

	ctx := context.Background()
	tracerProvider, err := observability.InitTracing(ctx, observability.LoadConfigFromEnv())
	if err != nil {
		debugLogger.Printf("Failed to initialize tracing: %v", err)
	} else {
		defer tracerProvider.Shutdown(context.Background())
	}

	turns, err := logging.NewTurnLogger("")
	if err != nil {
		return fmt.Errorf("failed to initialize turn logger: %w", err)
	}
	defer turns.Close()

	oracle := llm.NewService(cfg.OpenAIAPIKey, cfg.Model, debugLogger)

	server, err := web.NewServer(cfg, oracle, debugLogger, turns)
	if err != nil {
		return fmt.Errorf("failed to initialize game server: %w", err)
	}

	debugLogger.Printf("Listening on %s", cfg.ListenAddr)
	fmt.Printf("groundtruth server listening on %s\n", cfg.ListenAddr)
	return http.ListenAndServe(cfg.ListenAddr, server.Handler())
}

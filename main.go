package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"repo-analyzer-agent/internal/cli"
	"repo-analyzer-agent/internal/config"
	"repo-analyzer-agent/internal/logger"
)

func main() {
	// Load configuration from .env and environment variables
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup logging
	logger.Setup(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, cfg); err != nil {
		stop()
		os.Exit(1)
	}
}

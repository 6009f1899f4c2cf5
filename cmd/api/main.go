package main

import (
	"context"
	"log"

	"tiebreak/internal/app/bootstrap"
	"tiebreak/internal/platform/config"
	"tiebreak/internal/shared/events"
)

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (ports + adapters + use cases).
// 3) Start hub, bridge the bus into it, start HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	logger := bootstrap.NewLogger(cfg.ServiceName)
	app, err := bootstrap.Build(cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap api failed: %v", err)
	}
	defer func() {
		if err := app.DB.Close(); err != nil {
			log.Printf("api shutdown close failed: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go app.Hub.Run(ctx)
	app.Bus.Subscribe(ctx, func(ctx context.Context, event events.Envelope) {
		app.Hub.Broadcast(ctx, event)
	})

	if _, err := app.Modules.Questions.Questions.EnsureFirstActive(ctx); err != nil {
		logger.Warn("initial question release failed",
			"event", "boot_question_release_failed",
			"module", "cmd/api",
			"layer", "main",
			"error", err.Error(),
		)
	}

	if err := app.Server.Start(); err != nil {
		log.Fatalf("api server stopped with error: %v", err)
	}
}

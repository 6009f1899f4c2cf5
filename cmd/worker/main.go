package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"tiebreak/internal/app/bootstrap"
	"tiebreak/internal/platform/config"
)

// Worker process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring.
// 3) Run the deadline sweepers that back up the in-process timers.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	logger := bootstrap.NewLogger(cfg.ServiceName + "-worker")
	app, err := bootstrap.Build(cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap worker failed: %v", err)
	}
	defer func() {
		if err := app.DB.Close(); err != nil {
			log.Printf("worker shutdown close failed: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.EnableVotingSweep {
		go app.Modules.Voting.Sweeper.Run(ctx)
	}
	if cfg.EnablePollSweep {
		go app.Modules.Polls.Sweeper.Run(ctx)
	}

	logger.Info("worker started",
		"event", "worker_started",
		"module", "cmd/worker",
		"layer", "main",
		"voting_sweep", cfg.EnableVotingSweep,
		"poll_sweep", cfg.EnablePollSweep,
	)
	<-ctx.Done()
}

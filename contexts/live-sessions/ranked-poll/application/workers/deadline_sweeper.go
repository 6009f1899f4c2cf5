package workers

import (
	"context"
	"log/slog"
	"time"

	application "tiebreak/contexts/live-sessions/ranked-poll/application"
	"tiebreak/contexts/live-sessions/ranked-poll/application/commands"
	"tiebreak/contexts/live-sessions/ranked-poll/ports"
)

// DeadlineSweeper ends active polls whose stored deadline has passed. It
// backs up the armed timers across restarts.
type DeadlineSweeper struct {
	Polls    ports.PollRepository
	Ender    commands.PollUseCase
	Clock    ports.Clock
	Interval time.Duration
	Logger   *slog.Logger
}

func (w DeadlineSweeper) Run(ctx context.Context) {
	interval := w.Interval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

func (w DeadlineSweeper) RunOnce(ctx context.Context) {
	logger := application.ResolveLogger(w.Logger)

	now := time.Now().UTC()
	if w.Clock != nil {
		now = w.Clock.Now().UTC()
	}

	expired, err := w.Polls.ListExpiredActivePolls(ctx, now)
	if err != nil {
		logger.Error("poll sweep listing failed",
			"event", "poll_sweep_list_failed",
			"module", "live-sessions/ranked-poll",
			"layer", "worker",
			"error", err.Error(),
		)
		return
	}

	for _, poll := range expired {
		if _, err := w.Ender.EndPoll(ctx, poll.ID); err != nil {
			logger.Error("poll sweep end failed",
				"event", "poll_sweep_end_failed",
				"module", "live-sessions/ranked-poll",
				"layer", "worker",
				"poll_id", poll.ID,
				"error", err.Error(),
			)
			continue
		}
		logger.Info("overdue poll ended by sweep",
			"event", "poll_sweep_ended",
			"module", "live-sessions/ranked-poll",
			"layer", "worker",
			"poll_id", poll.ID,
		)
	}
}

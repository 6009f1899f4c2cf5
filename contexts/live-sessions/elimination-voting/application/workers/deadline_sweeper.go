package workers

import (
	"context"
	"log/slog"
	"time"

	application "tiebreak/contexts/live-sessions/elimination-voting/application"
	"tiebreak/contexts/live-sessions/elimination-voting/application/commands"
	"tiebreak/contexts/live-sessions/elimination-voting/ports"
)

// DeadlineSweeper closes active sessions whose stored deadline has passed.
// It is the safety net behind the armed timers: a restart loses timers, the
// sweep does not lose sessions.
type DeadlineSweeper struct {
	Sessions ports.SessionRepository
	Closer   commands.SessionUseCase
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

	expired, err := w.Sessions.ListExpiredActiveSessions(ctx, now)
	if err != nil {
		logger.Error("deadline sweep listing failed",
			"event", "voting_sweep_list_failed",
			"module", "live-sessions/elimination-voting",
			"layer", "worker",
			"error", err.Error(),
		)
		return
	}

	for _, session := range expired {
		if _, err := w.Closer.Close(ctx, session.ID); err != nil {
			logger.Error("deadline sweep close failed",
				"event", "voting_sweep_close_failed",
				"module", "live-sessions/elimination-voting",
				"layer", "worker",
				"session_id", session.ID,
				"error", err.Error(),
			)
			continue
		}
		logger.Info("overdue session closed by sweep",
			"event", "voting_sweep_closed",
			"module", "live-sessions/elimination-voting",
			"layer", "worker",
			"session_id", session.ID,
		)
	}
}

package eliminationvoting

import (
	"log/slog"
	"time"

	httpadapter "tiebreak/contexts/live-sessions/elimination-voting/adapters/http"
	"tiebreak/contexts/live-sessions/elimination-voting/adapters/memory"
	"tiebreak/contexts/live-sessions/elimination-voting/application/commands"
	"tiebreak/contexts/live-sessions/elimination-voting/application/queries"
	"tiebreak/contexts/live-sessions/elimination-voting/application/workers"
	"tiebreak/contexts/live-sessions/elimination-voting/domain/entities"
	"tiebreak/contexts/live-sessions/elimination-voting/ports"
)

type Module struct {
	Handler  httpadapter.Handler
	Sessions commands.SessionUseCase
	Results  queries.ResultsUseCase
	Sweeper  workers.DeadlineSweeper
	Store    *memory.Store
}

type Dependencies struct {
	Sessions      ports.SessionRepository
	Votes         ports.VoteRepository
	Participants  ports.ParticipantDirectory
	Scheduler     ports.Scheduler
	Rand          ports.Rand
	Clock         ports.Clock
	IDGen         ports.IDGenerator
	Notifier      ports.Notifier
	VotingWindow  time.Duration
	SweepInterval time.Duration
	Logger        *slog.Logger
}

func NewModule(deps Dependencies) Module {
	sessionUseCase := commands.SessionUseCase{
		Sessions:     deps.Sessions,
		Votes:        deps.Votes,
		Participants: deps.Participants,
		Scheduler:    deps.Scheduler,
		Rand:         deps.Rand,
		Clock:        deps.Clock,
		IDGen:        deps.IDGen,
		Notifier:     deps.Notifier,
		VotingWindow: deps.VotingWindow,
		Logger:       deps.Logger,
	}
	resultsUseCase := queries.ResultsUseCase{
		Sessions:     deps.Sessions,
		Votes:        deps.Votes,
		Participants: deps.Participants,
	}
	return Module{
		Handler: httpadapter.Handler{
			Sessions: sessionUseCase,
			Results:  resultsUseCase,
			Logger:   deps.Logger,
		},
		Sessions: sessionUseCase,
		Results:  resultsUseCase,
		Sweeper: workers.DeadlineSweeper{
			Sessions: deps.Sessions,
			Closer:   sessionUseCase,
			Clock:    deps.Clock,
			Interval: deps.SweepInterval,
			Logger:   deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.VotingSession, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Sessions:     store,
		Votes:        store,
		Participants: store,
		Scheduler:    store,
		Rand:         store,
		Clock:        store,
		IDGen:        store,
		Notifier:     store,
		Logger:       logger,
	})
	module.Store = store
	return module
}

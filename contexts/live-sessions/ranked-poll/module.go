package rankedpoll

import (
	"log/slog"
	"time"

	httpadapter "tiebreak/contexts/live-sessions/ranked-poll/adapters/http"
	"tiebreak/contexts/live-sessions/ranked-poll/adapters/memory"
	"tiebreak/contexts/live-sessions/ranked-poll/application/commands"
	"tiebreak/contexts/live-sessions/ranked-poll/application/queries"
	"tiebreak/contexts/live-sessions/ranked-poll/application/workers"
	"tiebreak/contexts/live-sessions/ranked-poll/domain/entities"
	"tiebreak/contexts/live-sessions/ranked-poll/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Polls   commands.PollUseCase
	Results queries.ResultsUseCase
	Sweeper workers.DeadlineSweeper
	Store   *memory.Store
}

type Dependencies struct {
	Polls            ports.PollRepository
	Rankings         ports.RankingRepository
	Participants     ports.ParticipantDirectory
	Scheduler        ports.Scheduler
	Clock            ports.Clock
	IDGen            ports.IDGenerator
	Notifier         ports.Notifier
	EliminationCount int
	SweepInterval    time.Duration
	Logger           *slog.Logger
}

func NewModule(deps Dependencies) Module {
	pollUseCase := commands.PollUseCase{
		Polls:            deps.Polls,
		Rankings:         deps.Rankings,
		Participants:     deps.Participants,
		Scheduler:        deps.Scheduler,
		Clock:            deps.Clock,
		IDGen:            deps.IDGen,
		Notifier:         deps.Notifier,
		EliminationCount: deps.EliminationCount,
		Logger:           deps.Logger,
	}
	resultsUseCase := queries.ResultsUseCase{
		Polls:            deps.Polls,
		Rankings:         deps.Rankings,
		Participants:     deps.Participants,
		EliminationCount: deps.EliminationCount,
	}
	return Module{
		Handler: httpadapter.Handler{
			Polls:   pollUseCase,
			Results: resultsUseCase,
			Logger:  deps.Logger,
		},
		Polls:   pollUseCase,
		Results: resultsUseCase,
		Sweeper: workers.DeadlineSweeper{
			Polls:    deps.Polls,
			Ender:    pollUseCase,
			Clock:    deps.Clock,
			Interval: deps.SweepInterval,
			Logger:   deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Poll, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Polls:        store,
		Rankings:     store,
		Participants: store,
		Scheduler:    store,
		Clock:        store,
		IDGen:        store,
		Notifier:     store,
		Logger:       logger,
	})
	module.Store = store
	return module
}

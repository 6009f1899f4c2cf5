package participantservice

import (
	"log/slog"

	httpadapter "tiebreak/contexts/game-core/participant-service/adapters/http"
	"tiebreak/contexts/game-core/participant-service/adapters/memory"
	"tiebreak/contexts/game-core/participant-service/application/commands"
	"tiebreak/contexts/game-core/participant-service/application/queries"
	"tiebreak/contexts/game-core/participant-service/domain/entities"
	"tiebreak/contexts/game-core/participant-service/ports"
)

type Module struct {
	Handler      httpadapter.Handler
	Participants commands.ParticipantUseCase
	Leaderboards queries.LeaderboardUseCase
	Store        *memory.Store
}

type Dependencies struct {
	Participants ports.ParticipantRepository
	Hasher       ports.PasswordHasher
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	Notifier     ports.Notifier
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	participantUseCase := commands.ParticipantUseCase{
		Participants: deps.Participants,
		Hasher:       deps.Hasher,
		Clock:        deps.Clock,
		IDGen:        deps.IDGen,
		Notifier:     deps.Notifier,
		Logger:       deps.Logger,
	}
	leaderboardUseCase := queries.LeaderboardUseCase{
		Participants: deps.Participants,
	}
	return Module{
		Handler: httpadapter.Handler{
			Participants: participantUseCase,
			Leaderboards: leaderboardUseCase,
			Logger:       deps.Logger,
		},
		Participants: participantUseCase,
		Leaderboards: leaderboardUseCase,
	}
}

func NewInMemoryModule(seed []entities.Participant, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Participants: store,
		Hasher:       store,
		Clock:        store,
		IDGen:        store,
		Notifier:     store,
		Logger:       logger,
	})
	module.Store = store
	return module
}

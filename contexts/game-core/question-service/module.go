package questionservice

import (
	"log/slog"

	httpadapter "tiebreak/contexts/game-core/question-service/adapters/http"
	"tiebreak/contexts/game-core/question-service/adapters/memory"
	"tiebreak/contexts/game-core/question-service/application/commands"
	"tiebreak/contexts/game-core/question-service/application/queries"
	"tiebreak/contexts/game-core/question-service/domain/entities"
	"tiebreak/contexts/game-core/question-service/ports"
)

type Module struct {
	Handler   httpadapter.Handler
	Questions commands.QuestionUseCase
	Catalog   queries.CatalogUseCase
	Store     *memory.Store
}

type Dependencies struct {
	Questions ports.QuestionRepository
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Notifier  ports.Notifier
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	questionUseCase := commands.QuestionUseCase{
		Questions: deps.Questions,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Notifier:  deps.Notifier,
		Logger:    deps.Logger,
	}
	catalogUseCase := queries.CatalogUseCase{
		Questions: deps.Questions,
	}
	return Module{
		Handler: httpadapter.Handler{
			Questions: questionUseCase,
			Catalog:   catalogUseCase,
			Logger:    deps.Logger,
		},
		Questions: questionUseCase,
		Catalog:   catalogUseCase,
	}
}

func NewInMemoryModule(seed []entities.Question, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Questions: store,
		Clock:     store,
		IDGen:     store,
		Notifier:  store,
		Logger:    logger,
	})
	module.Store = store
	return module
}

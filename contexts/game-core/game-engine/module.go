package gameengine

import (
	"log/slog"

	httpadapter "tiebreak/contexts/game-core/game-engine/adapters/http"
	"tiebreak/contexts/game-core/game-engine/adapters/memory"
	"tiebreak/contexts/game-core/game-engine/application/commands"
	"tiebreak/contexts/game-core/game-engine/application/queries"
	"tiebreak/contexts/game-core/game-engine/domain/entities"
	"tiebreak/contexts/game-core/game-engine/ports"
)

type Module struct {
	Handler     httpadapter.Handler
	Submissions commands.SubmitUseCase
	Answers     queries.AnswerUseCase
	Store       *memory.Store
}

type Dependencies struct {
	Answers      ports.AnswerRepository
	Participants ports.ParticipantDirectory
	Questions    ports.QuestionCatalog
	TieBreaker   ports.TieBreaker
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	Notifier     ports.Notifier
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	submitUseCase := commands.SubmitUseCase{
		Answers:      deps.Answers,
		Participants: deps.Participants,
		Questions:    deps.Questions,
		TieBreaker:   deps.TieBreaker,
		Clock:        deps.Clock,
		IDGen:        deps.IDGen,
		Notifier:     deps.Notifier,
		Logger:       deps.Logger,
	}
	answerUseCase := queries.AnswerUseCase{
		Answers: deps.Answers,
	}
	return Module{
		Handler: httpadapter.Handler{
			Submissions: submitUseCase,
			Answers:     answerUseCase,
			Logger:      deps.Logger,
		},
		Submissions: submitUseCase,
		Answers:     answerUseCase,
	}
}

func NewInMemoryModule(seed []entities.Answer, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Answers:      store,
		Participants: store,
		Questions:    store,
		TieBreaker:   store,
		Clock:        store,
		IDGen:        store,
		Notifier:     store,
		Logger:       logger,
	})
	module.Store = store
	return module
}

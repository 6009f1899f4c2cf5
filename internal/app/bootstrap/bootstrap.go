// Package bootstrap assembles the modules, their postgres adapters, and the
// broadcast pipeline into a runnable process.
package bootstrap

import (
	"log/slog"
	"os"

	gameengine "tiebreak/contexts/game-core/game-engine"
	gamebroadcast "tiebreak/contexts/game-core/game-engine/adapters/broadcast"
	gamepg "tiebreak/contexts/game-core/game-engine/adapters/postgres"
	participantservice "tiebreak/contexts/game-core/participant-service"
	participantbroadcast "tiebreak/contexts/game-core/participant-service/adapters/broadcast"
	participantcrypto "tiebreak/contexts/game-core/participant-service/adapters/crypto"
	participantpg "tiebreak/contexts/game-core/participant-service/adapters/postgres"
	questionservice "tiebreak/contexts/game-core/question-service"
	questionbroadcast "tiebreak/contexts/game-core/question-service/adapters/broadcast"
	questionpg "tiebreak/contexts/game-core/question-service/adapters/postgres"
	adminauth "tiebreak/contexts/identity-access/admin-auth"
	eliminationvoting "tiebreak/contexts/live-sessions/elimination-voting"
	votingbroadcast "tiebreak/contexts/live-sessions/elimination-voting/adapters/broadcast"
	votingpg "tiebreak/contexts/live-sessions/elimination-voting/adapters/postgres"
	rankedpoll "tiebreak/contexts/live-sessions/ranked-poll"
	pollbroadcast "tiebreak/contexts/live-sessions/ranked-poll/adapters/broadcast"
	pollpg "tiebreak/contexts/live-sessions/ranked-poll/adapters/postgres"
	"tiebreak/internal/platform/config"
	"tiebreak/internal/platform/db"
	"tiebreak/internal/platform/httpserver"
	"tiebreak/internal/platform/messaging"
	"tiebreak/internal/platform/scheduler"
	"tiebreak/internal/platform/system"
	"tiebreak/internal/platform/ws"
)

// App is the assembled process: modules wired over postgres, the broadcast
// bus, the websocket hub, and the HTTP server.
type App struct {
	Config  config.Config
	Logger  *slog.Logger
	DB      *db.Postgres
	Bus     *messaging.Bus
	Hub     *ws.Hub
	Server  *httpserver.Server
	Modules httpserver.Modules
}

func NewLogger(service string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("service", service)
}

// Build connects storage, runs migrations, and wires every module.
func Build(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = NewLogger(cfg.ServiceName)
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	models := []any{
		participantpg.Model(),
		questionpg.Model(),
		gamepg.Model(),
	}
	models = append(models, votingpg.Models()...)
	models = append(models, pollpg.Models()...)
	if err := pg.Migrate(models...); err != nil {
		_ = pg.Close()
		return nil, err
	}

	bus := messaging.NewBus(logger)
	hub := ws.NewHub(logger)

	clock := system.Clock{}
	idGen := system.UUIDGenerator{}

	participantModule := participantservice.NewModule(participantservice.Dependencies{
		Participants: participantpg.NewRepository(pg.DB, logger),
		Hasher:       participantcrypto.BcryptHasher{},
		Clock:        clock,
		IDGen:        idGen,
		Notifier:     participantbroadcast.Notifier{Bus: bus, Logger: logger},
		Logger:       logger,
	})

	questionModule := questionservice.NewModule(questionservice.Dependencies{
		Questions: questionpg.NewRepository(pg.DB, logger),
		Clock:     clock,
		IDGen:     idGen,
		Notifier:  questionbroadcast.Notifier{Bus: bus, Logger: logger},
		Logger:    logger,
	})

	votingRepository := votingpg.NewRepository(pg.DB, logger)
	votingModule := eliminationvoting.NewModule(eliminationvoting.Dependencies{
		Sessions: votingRepository,
		Votes:    votingRepository,
		Participants: votingParticipantDirectory{
			participants: participantModule.Participants,
			leaderboards: participantModule.Leaderboards,
		},
		Scheduler:     scheduler.NewTimerScheduler(),
		Rand:          system.Rand{},
		Clock:         clock,
		IDGen:         idGen,
		Notifier:      votingbroadcast.Notifier{Bus: bus, Logger: logger},
		VotingWindow:  cfg.VotingWindow,
		SweepInterval: cfg.SweepInterval,
		Logger:        logger,
	})

	gameModule := gameengine.NewModule(gameengine.Dependencies{
		Answers: gamepg.NewRepository(pg.DB, logger),
		Participants: gameParticipantDirectory{
			participants: participantModule.Participants,
			leaderboards: participantModule.Leaderboards,
		},
		Questions:  gameQuestionCatalog{catalog: questionModule.Catalog},
		TieBreaker: votingTieBreaker{sessions: votingModule.Sessions},
		Clock:      clock,
		IDGen:      idGen,
		Notifier:   gamebroadcast.Notifier{Bus: bus, Logger: logger},
		Logger:     logger,
	})

	pollRepository := pollpg.NewRepository(pg.DB, logger)
	pollModule := rankedpoll.NewModule(rankedpoll.Dependencies{
		Polls:    pollRepository,
		Rankings: pollRepository,
		Participants: pollParticipantDirectory{
			participants: participantModule.Participants,
			leaderboards: participantModule.Leaderboards,
		},
		Scheduler:        scheduler.NewTimerScheduler(),
		Clock:            clock,
		IDGen:            idGen,
		Notifier:         pollbroadcast.Notifier{Bus: bus, Logger: logger},
		EliminationCount: cfg.PollEliminationCount,
		SweepInterval:    cfg.SweepInterval,
		Logger:           logger,
	})

	adminModule := adminauth.NewModule(adminauth.Dependencies{
		AdminPassword: cfg.AdminPassword,
		Secret:        []byte(cfg.AdminJWTSecret),
		TokenTTL:      cfg.AdminTokenTTL,
		Clock:         clock,
		Logger:        logger,
	})

	modules := httpserver.Modules{
		Admin:        adminModule,
		Participants: participantModule,
		Questions:    questionModule,
		Game:         gameModule,
		Voting:       votingModule,
		Polls:        pollModule,
	}

	return &App{
		Config:  cfg,
		Logger:  logger,
		DB:      pg,
		Bus:     bus,
		Hub:     hub,
		Server:  httpserver.New(modules, hub, logger, ":"+cfg.HTTPPort),
		Modules: modules,
	}, nil
}

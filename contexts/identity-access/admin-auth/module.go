package adminauth

import (
	"log/slog"
	"time"

	httpadapter "tiebreak/contexts/identity-access/admin-auth/adapters/http"
	"tiebreak/contexts/identity-access/admin-auth/application/commands"
	"tiebreak/contexts/identity-access/admin-auth/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Auth    commands.AuthUseCase
}

type Dependencies struct {
	AdminPassword string
	Secret        []byte
	TokenTTL      time.Duration
	Clock         ports.Clock
	Logger        *slog.Logger
}

func NewModule(deps Dependencies) Module {
	authUseCase := commands.AuthUseCase{
		AdminPassword: deps.AdminPassword,
		Secret:        deps.Secret,
		TokenTTL:      deps.TokenTTL,
		Clock:         deps.Clock,
		Logger:        deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Auth: authUseCase, Logger: deps.Logger},
		Auth:    authUseCase,
	}
}

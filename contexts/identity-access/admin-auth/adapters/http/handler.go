package httpadapter

import (
	"context"
	"errors"
	"log/slog"

	"tiebreak/contexts/identity-access/admin-auth/application/commands"
	domainerrors "tiebreak/contexts/identity-access/admin-auth/domain/errors"
	httptransport "tiebreak/contexts/identity-access/admin-auth/transport/http"
)

type Handler struct {
	Auth   commands.AuthUseCase
	Logger *slog.Logger
}

// LoginHandler maps a bad password onto the success-flag shape instead of a
// transport error.
func (h Handler) LoginHandler(ctx context.Context, req httptransport.AdminLoginRequest) (httptransport.AdminLoginResponse, error) {
	token, err := h.Auth.Login(ctx, req.Password)
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidCredential) {
			return httptransport.AdminLoginResponse{Success: false, Message: "Invalid admin password"}, nil
		}
		return httptransport.AdminLoginResponse{}, err
	}
	return httptransport.AdminLoginResponse{Success: true, Token: token, Message: "Login successful"}, nil
}

package commands

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"strings"
	"time"

	application "tiebreak/contexts/identity-access/admin-auth/application"
	domainerrors "tiebreak/contexts/identity-access/admin-auth/domain/errors"
	"tiebreak/contexts/identity-access/admin-auth/ports"

	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultTokenTTL = 24 * time.Hour
	adminRole       = "admin"
)

// AuthUseCase exchanges the shared admin password for a signed token and
// validates tokens presented on admin routes.
type AuthUseCase struct {
	AdminPassword string
	Secret        []byte
	TokenTTL      time.Duration
	Clock         ports.Clock
	Logger        *slog.Logger
}

func (uc AuthUseCase) Login(ctx context.Context, password string) (string, error) {
	logger := application.ResolveLogger(uc.Logger)

	if uc.AdminPassword == "" ||
		subtle.ConstantTimeCompare([]byte(password), []byte(uc.AdminPassword)) != 1 {
		logger.Warn("admin login rejected",
			"event", "admin_login_rejected",
			"module", "identity-access/admin-auth",
			"layer", "application",
		)
		return "", domainerrors.ErrInvalidCredential
	}

	now := uc.now()
	claims := jwt.MapClaims{
		"role": adminRole,
		"iat":  now.Unix(),
		"exp":  now.Add(uc.tokenTTL()).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.Secret)
	if err != nil {
		logger.Error("admin token signing failed",
			"event", "admin_token_sign_failed",
			"module", "identity-access/admin-auth",
			"layer", "application",
			"error", err.Error(),
		)
		return "", err
	}

	logger.Info("admin logged in",
		"event", "admin_login",
		"module", "identity-access/admin-auth",
		"layer", "application",
	)
	return token, nil
}

// Validate checks the signature, expiry, and admin role claim.
func (uc AuthUseCase) Validate(_ context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return domainerrors.ErrInvalidToken
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domainerrors.ErrInvalidToken
		}
		return uc.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(uc.now))
	if err != nil || !parsed.Valid {
		return domainerrors.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return domainerrors.ErrInvalidToken
	}
	if role, _ := claims["role"].(string); role != adminRole {
		return domainerrors.ErrInvalidToken
	}
	return nil
}

func (uc AuthUseCase) tokenTTL() time.Duration {
	if uc.TokenTTL <= 0 {
		return defaultTokenTTL
	}
	return uc.TokenTTL
}

func (uc AuthUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

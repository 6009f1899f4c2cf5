package crypto

import (
	domainerrors "tiebreak/contexts/game-core/participant-service/domain/errors"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher is the production credential hasher.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h BcryptHasher) Compare(hash string, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return domainerrors.ErrInvalidCredential
	}
	return nil
}

package crypto

import (
	"errors"
	"testing"

	domainerrors "tiebreak/contexts/game-core/participant-service/domain/errors"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := BcryptHasher{Cost: bcrypt.MinCost}

	hash, err := hasher.Hash("secret")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "secret" {
		t.Fatalf("hash must not be the plaintext")
	}

	if err := hasher.Compare(hash, "secret"); err != nil {
		t.Fatalf("expected matching password to compare clean, got %v", err)
	}
	if err := hasher.Compare(hash, "wrong"); !errors.Is(err, domainerrors.ErrInvalidCredential) {
		t.Fatalf("expected credential error for wrong password, got %v", err)
	}
}

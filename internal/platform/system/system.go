// Package system provides the process-wide clock and ID generator wired into
// every module at bootstrap.
package system

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

type Clock struct{}

func (Clock) Now() time.Time {
	return time.Now().UTC()
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type Rand struct{}

func (Rand) Intn(n int) int {
	return rand.Intn(n)
}

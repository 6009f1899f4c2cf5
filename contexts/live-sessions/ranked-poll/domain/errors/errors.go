package errors

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid poll input")
	ErrInvalidCredential  = errors.New("invalid participant credential")
	ErrPollNotFound       = errors.New("poll not found")
	ErrPollEnded          = errors.New("poll is not active")
	ErrPollExpired        = errors.New("poll time limit has expired")
	ErrSelfRank           = errors.New("participants cannot rank themselves")
	ErrInvalidParticipant = errors.New("ranked participant does not exist")
)

package errors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid participant input")
	ErrNameTaken           = errors.New("participant name is already taken")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrInvalidCredential   = errors.New("invalid participant credential")
)

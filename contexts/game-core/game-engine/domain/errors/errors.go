package errors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid answer input")
	ErrInvalidCredential   = errors.New("invalid participant credential")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrDuplicateAnswer     = errors.New("question already answered")
)

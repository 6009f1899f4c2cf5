package errors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid voting input")
	ErrInvalidCredential   = errors.New("invalid participant credential")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrSessionNotFound     = errors.New("voting session not found")
	ErrSessionEnded        = errors.New("voting session is not active")
	ErrVotingExpired       = errors.New("voting window has expired")
	ErrNotEligible         = errors.New("participant is not part of the tied set")
	ErrInvalidTarget       = errors.New("vote target is not part of the tied set")
	ErrSelfVote            = errors.New("participants cannot vote against themselves")
)

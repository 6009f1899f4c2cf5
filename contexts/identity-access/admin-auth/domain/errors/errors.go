package errors

import "errors"

var (
	ErrInvalidCredential = errors.New("invalid admin credentials")
	ErrInvalidToken      = errors.New("invalid admin token")
)

package domain

import "errors"

var (
	ErrMissingInput       = errors.New("missing input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNetwork            = errors.New("network failure")
	ErrSessionNotFound    = errors.New("session not found")
)

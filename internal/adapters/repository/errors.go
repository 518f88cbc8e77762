package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptySessionID  = errors.New("empty session id")
)

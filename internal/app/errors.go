package service

import "errors"

// Service errors.
var (
	ErrNotStarted   = errors.New("service not started")
	ErrBackpressure = errors.New("interaction queue is full")
	ErrNoLocation   = errors.New("no dataset location configured")
	ErrInvalidSize  = errors.New("invalid surface size")
)

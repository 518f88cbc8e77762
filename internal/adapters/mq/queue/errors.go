package queue

import "errors"

// Sentinel kinds for queue errors.
var (
	ErrFull   = errors.New("interaction queue full")
	ErrClosed = errors.New("interaction queue closed")
)

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	service "github.com/okian/salaryscope/internal/app"
	"github.com/okian/salaryscope/internal/adapters/render"
	"github.com/okian/salaryscope/internal/adapters/repository"
	"github.com/okian/salaryscope/internal/domain/session"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrBackpressure = errors.New("backpressure")
	ErrRateLimited  = errors.New("rate limited")
	ErrNotFound     = errors.New("not found")
)

// Error codes written in the JSON error body.
const (
	codeBadRequest     = "bad_request"
	codeNotFound       = "not_found"
	codeNotInteractive = "not_interactive"
	codeBackpressure   = "backpressure"
	codeRateLimited    = "rate_limited"
	codeUnavailable    = "unavailable"
	codeInternal       = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// wrapKind tags err with an operation and an API error kind.
func wrapKind(op string, kind, err error) error {
	if err == nil {
		return fmt.Errorf("%s: %w", op, kind)
	}
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}

// classify maps service and domain errors to an HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrSessionNotFound), errors.Is(err, ErrNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, repository.ErrEmptySessionID),
		errors.Is(err, session.ErrInvalidInteraction),
		errors.Is(err, session.ErrInvalidSurface),
		errors.Is(err, service.ErrInvalidSize),
		errors.Is(err, render.ErrUnknownFormat):
		return http.StatusBadRequest, codeBadRequest
	case errors.Is(err, session.ErrNotInteractive):
		return http.StatusConflict, codeNotInteractive
	case errors.Is(err, service.ErrBackpressure), errors.Is(err, ErrBackpressure):
		return http.StatusTooManyRequests, codeBackpressure
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, codeRateLimited
	case errors.Is(err, service.ErrNotStarted),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, codeUnavailable
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

// writeFailure classifies err and writes it.
func writeFailure(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}

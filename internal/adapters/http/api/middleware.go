package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/okian/salaryscope/pkg/logger"
	"github.com/okian/salaryscope/pkg/metrics"
)

// HTTP status code constants.
const (
	statusBadRequest      = 400
	statusNotFound        = 404
	statusConflict        = 409
	statusTooManyRequests = 429
	statusInternalError   = 500
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// Middleware decorates a handler.
type Middleware func(http.Handler) http.Handler

// Chain applies m so that m[0] is the outermost.
func Chain(h http.Handler, m ...Middleware) http.Handler {
	for i := len(m) - 1; i >= 0; i-- {
		h = m[i](h)
	}
	return h
}

type ctxKey int

const requestIDKey ctxKey = iota

// RequestIDFrom returns the id attached by RequestID.
func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// RequestID reuses the caller's X-Request-ID or assigns a new one.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// Recover turns a handler panic into a 500.
func Recover(log logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error(r.Context(), "handler panic",
						logger.String("request_id", RequestIDFrom(r.Context())),
						logger.String("path", r.URL.Path),
						logger.String("method", r.Method),
						logger.Any("panic", rec),
					)
					metrics.RecordErrorByComponent("http", "panic")
					writeError(w, http.StatusInternalServerError, codeInternal, nil)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Client limiter bounds.
const (
	limiterIdleTTL    = 10 * time.Minute
	limiterMaxClients = 10_000
)

// ClientLimiter keeps one token bucket per client address. Buckets idle for
// longer than the TTL are swept on access, and the table never holds more
// than maxClients buckets; the least recently seen one makes room.
type ClientLimiter struct {
	mu        sync.Mutex
	m         map[string]*clientBucket
	r         rate.Limit
	b         int
	ttl       time.Duration
	max       int
	lastSweep time.Time
	now       func() time.Time
}

type clientBucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// NewClientLimiter allows reqPerSec per client with the given burst.
func NewClientLimiter(reqPerSec float64, burst int) *ClientLimiter {
	if burst < 1 {
		burst = 1
	}
	ttl := limiterIdleTTL
	// The TTL is at least the time a drained bucket takes to refill.
	if reqPerSec > 0 {
		if refill := time.Duration(float64(burst) / reqPerSec * float64(time.Second)); refill > ttl {
			ttl = refill
		}
	}
	return &ClientLimiter{
		m:   make(map[string]*clientBucket),
		r:   rate.Limit(reqPerSec),
		b:   burst,
		ttl: ttl,
		max: limiterMaxClients,
		now: time.Now,
	}
}

// Allow reports whether client may make a request now.
func (cl *ClientLimiter) Allow(client string) bool {
	cl.mu.Lock()
	now := cl.now()
	lim := cl.limiterFor(client, now)
	cl.mu.Unlock()
	return lim.AllowN(now, 1)
}

// Clients returns the number of tracked client buckets.
func (cl *ClientLimiter) Clients() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return len(cl.m)
}

func (cl *ClientLimiter) limiterFor(client string, now time.Time) *rate.Limiter {
	if now.Sub(cl.lastSweep) >= cl.ttl {
		cl.sweep(now)
	}
	if cb, ok := cl.m[client]; ok {
		cb.seen = now
		return cb.lim
	}
	if len(cl.m) >= cl.max {
		cl.evictOldest()
	}
	cb := &clientBucket{lim: rate.NewLimiter(cl.r, cl.b), seen: now}
	cl.m[client] = cb
	return cb.lim
}

func (cl *ClientLimiter) sweep(now time.Time) {
	cl.lastSweep = now
	for k, cb := range cl.m {
		if now.Sub(cb.seen) >= cl.ttl {
			delete(cl.m, k)
		}
	}
}

func (cl *ClientLimiter) evictOldest() {
	var (
		oldest string
		seen   time.Time
		found  bool
	)
	for k, cb := range cl.m {
		if !found || cb.seen.Before(seen) {
			oldest, seen, found = k, cb.seen, true
		}
	}
	if found {
		delete(cl.m, oldest)
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit rejects requests over the client's budget with 429 rate_limited.
func RateLimit(cl *ClientLimiter, endpoint string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cl.Allow(clientKey(r)) {
				metrics.RecordRateLimited(endpoint)
				writeError(w, http.StatusTooManyRequests, codeRateLimited, ErrRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// MetricsMiddleware wraps HTTP handlers to record Prometheus metrics.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Create a response writer wrapper to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		durationMs := float64(time.Since(start).Microseconds()) / 1000
		statusCodeStr := strconv.Itoa(wrapped.statusCode)

		metrics.RecordHTTPRequest(endpoint, r.Method, statusCodeStr)
		metrics.RecordHTTPRequestDuration(endpoint, r.Method, statusCodeStr, durationMs)

		if wrapped.statusCode >= statusBadRequest {
			metrics.RecordErrorByEndpoint(endpoint, r.Method, getErrorType(wrapped.statusCode))
		}
	}
}

// getErrorType returns a standardized error type based on HTTP status code.
func getErrorType(statusCode int) string {
	switch {
	case statusCode >= statusInternalError:
		return "server_error"
	case statusCode == statusTooManyRequests:
		return "rate_limit"
	case statusCode == statusConflict:
		return "conflict"
	case statusCode == statusNotFound:
		return "not_found"
	case statusCode >= statusBadRequest:
		return "client_error"
	default:
		return "unknown"
	}
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	if err != nil {
		return n, fmt.Errorf("failed to write response: %w", err)
	}
	return n, nil
}

// Flush lets streaming handlers push through the wrapper.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Unwrap() http.ResponseWriter { return rw.ResponseWriter }

// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/okian/salaryscope/internal/adapters/render"
	"github.com/okian/salaryscope/internal/domain/model"
	"github.com/okian/salaryscope/internal/domain/plot"
	"github.com/okian/salaryscope/internal/domain/session"
	"github.com/okian/salaryscope/internal/domain/types"
	"github.com/okian/salaryscope/internal/events"
	"github.com/okian/salaryscope/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the application service.
type Dependencies interface {
	DatasetDependencies
	SessionDependencies
	Hub() *events.Hub
}

// DatasetDependencies expose the working set.
type DatasetDependencies interface {
	Catalog(ctx context.Context) types.Catalog
	Suggest(ctx context.Context, q string, limit int) types.Suggestions
	Status(ctx context.Context) types.Status
	Load(ctx context.Context) model.LoadReport
}

// SessionDependencies expose viewer sessions.
type SessionDependencies interface {
	CreateSession(ctx context.Context, req types.CreateSessionRequest) (types.SessionView, error)
	Session(ctx context.Context, id string) (session.State, error)
	Dispatch(ctx context.Context, id string, in model.Interaction) (types.SessionView, error)
	Scene(ctx context.Context, id string) (plot.Scene, error)
	Render(ctx context.Context, w io.Writer, id string, f render.Format, t *plot.Transform) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	datasetHandler *DatasetHandler
	sessionHandler *SessionHandler
	streamHandler  *StreamHandler

	limiter *ClientLimiter
	logger  logger.Logger
}

// ServerOption configures the Server.
type ServerOption func(*Server)

// WithRateLimit limits each client to rps requests per second with the
// given burst. A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) ServerOption {
	return func(s *Server) {
		if rps > 0 {
			s.limiter = NewClientLimiter(rps, burst)
		}
	}
}

// WithServerLogger sets the logger used by the middleware.
func WithServerLogger(l logger.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		datasetHandler: NewDatasetHandler(deps),
		sessionHandler: NewSessionHandler(deps),
		streamHandler:  NewStreamHandler(deps.Hub()),
		logger:         logger.Get().Named("http"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.Handle("/healthz", s.route("healthz", s.healthHandler.HandleHealth, false))
	mux.Handle("/stats", s.route("stats", s.statsHandler.HandleStats, false))

	mux.Handle("GET /api/status", s.route("status", s.datasetHandler.HandleStatus, true))
	mux.Handle("GET /api/catalog", s.route("catalog", s.datasetHandler.HandleCatalog, true))
	mux.Handle("GET /api/suggest", s.route("suggest", s.datasetHandler.HandleSuggest, true))
	mux.Handle("POST /api/dataset/reload", s.route("reload", s.datasetHandler.HandleReload, true))

	mux.Handle("POST /api/sessions", s.route("session_create", s.sessionHandler.HandleCreate, true))
	mux.Handle("GET /api/sessions/{id}", s.route("session_get", s.sessionHandler.HandleGet, true))
	mux.Handle("POST /api/sessions/{id}/events", s.route("session_events", s.sessionHandler.HandleEvent, true))
	mux.Handle("GET /api/sessions/{id}/scene", s.route("session_scene", s.sessionHandler.HandleScene, true))
	mux.Handle("GET /api/sessions/{id}/plot.svg", s.route("plot_svg", s.sessionHandler.HandlePlot(render.FormatSVG), true))
	mux.Handle("GET /api/sessions/{id}/plot.png", s.route("plot_png", s.sessionHandler.HandlePlot(render.FormatPNG), true))

	mux.Handle("GET /api/events", s.route("events", s.streamHandler.HandleStream, false))
}

// route wraps h with the middleware chain. Streaming and scrape endpoints
// skip the rate limiter.
func (s *Server) route(endpoint string, h http.HandlerFunc, limited bool) http.Handler {
	mw := []Middleware{RequestID, Recover(s.logger)}
	if limited && s.limiter != nil {
		mw = append(mw, RateLimit(s.limiter, endpoint))
	}
	return Chain(MetricsMiddleware(h, endpoint), mw...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

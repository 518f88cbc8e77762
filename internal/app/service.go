// Package service wires the dataset loader, the working set store, the
// viewer sessions and the event loop into one application service.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/salaryscope/internal/adapters/mq/queue"
	"github.com/okian/salaryscope/internal/adapters/mq/worker"
	"github.com/okian/salaryscope/internal/adapters/render"
	"github.com/okian/salaryscope/internal/adapters/repository"
	"github.com/okian/salaryscope/internal/adapters/source"
	"github.com/okian/salaryscope/internal/domain/dataset"
	"github.com/okian/salaryscope/internal/domain/model"
	"github.com/okian/salaryscope/internal/domain/plot"
	"github.com/okian/salaryscope/internal/domain/session"
	"github.com/okian/salaryscope/internal/domain/types"
	"github.com/okian/salaryscope/internal/events"
	"github.com/okian/salaryscope/pkg/logger"
	"github.com/okian/salaryscope/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultQueueSize     = 1024
	defaultMaxSessions   = 256
	defaultFetchTimeout  = 30 * time.Second
	defaultShutdownWait  = 5 * time.Second
	defaultSuggestLimit  = 10
	defaultPreferredJob  = "AI Research Scientist"
	eventVersion         = 1
	componentServiceName = "service"
)

// Loader fetches a raw table.
type Loader interface {
	Load(ctx context.Context, location string) (source.Table, error)
}

// Service owns the working set and the viewer sessions.
type Service struct {
	mu sync.RWMutex

	location      string
	preferred     string
	fallback      []string
	layout        plot.Layout
	zoom          plot.ZoomBehavior
	resetDuration time.Duration
	queueSize     int
	maxSessions   int
	maxSurface    int
	fetchTimeout  time.Duration

	loader   Loader
	hub      *events.Hub
	newID    func() string
	logger   logger.Logger
	machine  *session.Machine
	dataset  *repository.MemoryDataset
	sessions *repository.SessionRegistry
	queue    *queue.InMemoryQueue
	loop     *worker.EventLoop

	loadMu  sync.Mutex
	started bool
	stopped bool
	cancel  context.CancelFunc
}

// New creates a service. Call Start before creating sessions.
func New(opts ...Option) *Service {
	s := &Service{
		preferred:     defaultPreferredJob,
		fallback:      dataset.FallbackTitles,
		layout:        plot.DefaultLayout(0, 0),
		zoom:          plot.DefaultZoom(),
		resetDuration: plot.DefaultResetDuration,
		queueSize:     defaultQueueSize,
		maxSessions:   defaultMaxSessions,
		maxSurface:    session.DefaultMaxSurface,
		fetchTimeout:  defaultFetchTimeout,
		hub:           events.NewHub(),
		newID:         uuid.NewString,
		logger:        logger.Get().Named(componentServiceName),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.loader == nil {
		s.loader = source.NewLoader(source.WithTimeout(s.fetchTimeout))
	}
	s.machine = session.NewMachine(
		session.WithLayout(s.layout),
		session.WithZoom(s.zoom),
		session.WithResetDuration(s.resetDuration),
		session.WithMaxSurface(s.maxSurface),
	)
	s.dataset = repository.NewMemoryDataset(repository.WithFallbackTitles(s.fallback))
	return s
}

// Start launches the event loop. It is safe to call more than once.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.stopped {
		return ErrNotStarted
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.sessions = repository.NewSessionRegistry(runCtx, repository.WithMaxSessions(s.maxSessions))
	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.loop = worker.NewEventLoop(s.queue, worker.HandlerFunc(s.handle))
	go s.loop.Run(runCtx)

	s.started = true
	s.logger.Info(ctx, "service started",
		logger.Int("queue_size", s.queueSize),
		logger.Int("max_sessions", s.maxSessions),
	)
	return nil
}

// Stop shuts the event loop down and releases the session registry.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || s.stopped {
		s.stopped = true
		return
	}
	s.stopped = true

	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownWait)
	defer cancel()
	if err := s.loop.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "event loop shutdown", logger.Error(err))
	}
	_ = s.queue.Close()
	_ = s.sessions.Close()
	s.cancel()
	s.logger.Info(ctx, "service stopped")
}

// Hub returns the notification hub.
func (s *Service) Hub() *events.Hub { return s.hub }

// Location returns the configured dataset location.
func (s *Service) Location() string { return s.location }

// Catalog returns the filter options for the current working set.
func (s *Service) Catalog(ctx context.Context) types.Catalog {
	snap := s.dataset.Current(ctx)
	return types.NewCatalog(snap.Catalog, snap.Default, snap.Fallback, snap.Version)
}

// Suggest returns catalog titles matching q for the search box.
func (s *Service) Suggest(ctx context.Context, q string, limit int) types.Suggestions {
	if limit <= 0 {
		limit = defaultSuggestLimit
	}
	snap := s.dataset.Current(ctx)
	return types.Suggestions{Query: q, Titles: dataset.Suggest(snap.Catalog, q, limit)}
}

// Status reports the last load and the working set size.
func (s *Service) Status(ctx context.Context) types.Status {
	snap := s.dataset.Current(ctx)
	st := types.Status{
		Report:   snap.Report,
		Version:  snap.Version,
		Samples:  len(snap.Samples),
		Titles:   len(snap.Catalog),
		Fallback: snap.Fallback,
	}
	if reg := s.registry(); reg != nil {
		st.Sessions = reg.Len(ctx)
	}
	return st
}

// Snapshot returns the current working set.
func (s *Service) Snapshot(ctx context.Context) *repository.Snapshot {
	return s.dataset.Current(ctx)
}

// CreateSession starts a viewer session of the given surface size. An empty
// selection picks the catalog default.
func (s *Service) CreateSession(ctx context.Context, req types.CreateSessionRequest) (types.SessionView, error) {
	if req.Width <= 0 || req.Height <= 0 {
		return types.SessionView{}, fmt.Errorf("%w: %dx%d", ErrInvalidSize, req.Width, req.Height)
	}
	if req.Width > s.maxSurface || req.Height > s.maxSurface {
		return types.SessionView{}, fmt.Errorf("%w: %dx%d exceeds %dpx", ErrInvalidSize, req.Width, req.Height, s.maxSurface)
	}
	in := model.Interaction{
		Selection: model.Selection(req.Selection),
		Width:     req.Width,
		Height:    req.Height,
	}
	return s.submit(ctx, queue.NewCommand(queue.OpCreate, s.newID(), in))
}

// Dispatch applies an interaction to a session on the event loop.
func (s *Service) Dispatch(ctx context.Context, id string, in model.Interaction) (types.SessionView, error) {
	if id == "" {
		return types.SessionView{}, repository.ErrEmptySessionID
	}
	if !in.Kind.Valid() {
		return types.SessionView{}, fmt.Errorf("%w: kind %q", session.ErrInvalidInteraction, in.Kind)
	}
	return s.submit(ctx, queue.NewCommand(queue.OpApply, id, in))
}

// Session returns the current state of a session.
func (s *Service) Session(ctx context.Context, id string) (session.State, error) {
	reg := s.registry()
	if reg == nil {
		return session.State{}, ErrNotStarted
	}
	return reg.Get(ctx, id)
}

// Scene builds the scene a session currently shows.
func (s *Service) Scene(ctx context.Context, id string) (plot.Scene, error) {
	st, err := s.Session(ctx, id)
	if err != nil {
		return plot.Scene{}, err
	}
	return s.machine.Scene(st, s.dataset.Current(ctx).Data), nil
}

// Preview builds a session's scene under an explicit transform, without
// changing the session. Clients use it to play reset transition frames.
func (s *Service) Preview(ctx context.Context, id string, t plot.Transform) (plot.Scene, error) {
	st, err := s.Session(ctx, id)
	if err != nil {
		return plot.Scene{}, err
	}
	return s.machine.Preview(st, s.dataset.Current(ctx).Data, t), nil
}

// Render encodes a session's scene, or a preview when t is not nil.
func (s *Service) Render(ctx context.Context, w io.Writer, id string, f render.Format, t *plot.Transform) error {
	start := time.Now()

	var (
		sc  plot.Scene
		err error
	)
	if t != nil {
		sc, err = s.Preview(ctx, id, *t)
	} else {
		sc, err = s.Scene(ctx, id)
	}
	if err != nil {
		return err
	}

	outcome := "ok"
	if err = render.Encode(w, f, sc); err != nil {
		outcome = "error"
		metrics.RecordErrorByComponent(componentServiceName, "render")
	}
	metrics.RecordRender(string(f), outcome, float64(time.Since(start).Microseconds())/1000, len(sc.Points))
	return err
}

// GetStats returns service statistics.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	snap := s.dataset.Current(ctx)
	stats := map[string]interface{}{
		"started":         s.started && !s.stopped,
		"dataset_version": snap.Version,
		"samples":         len(snap.Samples),
		"titles":          len(snap.Catalog),
		"fallback":        snap.Fallback,
		"subscribers":     s.hub.Subscribers(),
	}
	if s.started {
		stats["sessions"] = s.sessions.Len(ctx)
		stats["queue_size"] = s.queue.Len(ctx)
		stats["queue_capacity"] = s.queueSize
	}
	return stats
}

func (s *Service) registry() *repository.SessionRegistry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions
}

func (s *Service) submit(ctx context.Context, c queue.Command) (types.SessionView, error) { //nolint:gocritic // hugeParam: Command is passed by value
	s.mu.RLock()
	q := s.queue
	running := s.started && !s.stopped
	s.mu.RUnlock()
	if !running {
		return types.SessionView{}, ErrNotStarted
	}

	if err := q.Enqueue(ctx, c); err != nil {
		if errors.Is(err, queue.ErrFull) {
			return types.SessionView{}, fmt.Errorf("%w: %w", ErrBackpressure, err)
		}
		return types.SessionView{}, err
	}

	select {
	case res := <-c.Reply:
		if res.Err != nil {
			return types.SessionView{}, res.Err
		}
		return types.SessionView{
			Session: res.State,
			Frames:  res.Outcome.Frames,
			Tooltip: res.Outcome.Tooltip,
		}, nil
	case <-ctx.Done():
		return types.SessionView{}, ctx.Err()
	}
}

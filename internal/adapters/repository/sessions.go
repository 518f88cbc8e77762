package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/salaryscope/internal/domain/session"
	"github.com/okian/salaryscope/pkg/metrics"
)

// Default session registry configuration.
const (
	defaultMaxSessions           = 1000
	defaultMetricsUpdateInterval = 5 * time.Second
)

// node is one session in the insertion-ordered list.
type node struct {
	id   string
	next *node
}

func (n *node) reset() {
	n.id = ""
	n.next = nil
}

// SessionRegistry is a bounded SessionStore. Sessions are kept in a linked
// list with the newest at the head; when full, the tail is evicted.
type SessionRegistry struct {
	mu       sync.RWMutex
	states   map[string]session.State
	nodes    map[string]*node
	head     *node
	maxSize  int
	nodePool sync.Pool

	metricsUpdateInterval time.Duration
	wg                    sync.WaitGroup
	stopChan              chan struct{}
}

// NewSessionRegistry builds a registry and starts its metrics updater, which
// stops when ctx ends or Close is called.
func NewSessionRegistry(ctx context.Context, opts ...Option) *SessionRegistry {
	r := &SessionRegistry{
		maxSize:               defaultMaxSessions,
		metricsUpdateInterval: defaultMetricsUpdateInterval,
		stopChan:              make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.states = make(map[string]session.State)
	r.nodes = make(map[string]*node)
	r.nodePool = sync.Pool{New: func() any { return &node{} }}

	metrics.UpdateSessionsActive(0)
	r.startMetricsUpdater(ctx)
	return r
}

// Put stores st, evicting the oldest session when a new id does not fit.
func (r *SessionRegistry) Put(_ context.Context, st session.State) (string, error) {
	if st.ID == "" {
		return "", ErrEmptySessionID
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.states[st.ID]; exists {
		r.states[st.ID] = st
		return "", nil
	}

	evicted := ""
	if r.maxSize > 0 && len(r.states) >= r.maxSize {
		evicted = r.evictOldest()
	}

	n := r.nodePool.Get().(*node) //nolint:forcetypeassert // pool only holds *node
	n.id = st.ID
	n.next = r.head
	r.head = n
	r.nodes[st.ID] = n
	r.states[st.ID] = st
	return evicted, nil
}

// Get returns the session with id.
func (r *SessionRegistry) Get(_ context.Context, id string) (session.State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.states[id]
	if !ok {
		return session.State{}, ErrSessionNotFound
	}
	return st, nil
}

// Delete removes the session with id.
func (r *SessionRegistry) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.nodes[id]
	if !ok {
		return ErrSessionNotFound
	}
	r.unlink(n)
	return nil
}

// IDs lists sessions from newest to oldest.
func (r *SessionRegistry) IDs(_ context.Context) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.states))
	for n := r.head; n != nil; n = n.next {
		out = append(out, n.id)
	}
	return out
}

// Len returns the number of sessions.
func (r *SessionRegistry) Len(_ context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.states)
}

// Close stops the metrics updater.
func (r *SessionRegistry) Close() error {
	select {
	case <-r.stopChan:
	default:
		close(r.stopChan)
	}
	r.wg.Wait()
	return nil
}

// evictOldest removes the tail. Must be called with r.mu held.
func (r *SessionRegistry) evictOldest() string {
	if r.head == nil {
		return ""
	}
	tail := r.head
	for tail.next != nil {
		tail = tail.next
	}
	id := tail.id
	r.unlink(tail)
	metrics.RecordSessionEvicted()
	return id
}

// unlink drops n from the list and both maps. Must be called with r.mu held.
func (r *SessionRegistry) unlink(n *node) {
	if r.head == n {
		r.head = n.next
	} else {
		cur := r.head
		for cur != nil && cur.next != n {
			cur = cur.next
		}
		if cur != nil {
			cur.next = n.next
		}
	}
	delete(r.nodes, n.id)
	delete(r.states, n.id)
	n.reset()
	r.nodePool.Put(n)
}

func (r *SessionRegistry) startMetricsUpdater(ctx context.Context) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(r.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-r.stopChan:
				return
			case <-ticker.C:
				metrics.UpdateSessionsActive(r.Len(ctx))
			}
		}
	}()
}

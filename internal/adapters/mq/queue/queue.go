// Package queue carries viewer commands to the single event loop that owns
// session state.
package queue

import (
	"context"
	"sync"
	"time"

	"github.com/okian/salaryscope/internal/domain/model"
	"github.com/okian/salaryscope/internal/domain/session"
	"github.com/okian/salaryscope/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultQueueCapacity = 1024
)

// Op names what a command asks the event loop to do.
type Op string

// Supported operations.
const (
	OpCreate  Op = "create"  // start a session of Width x Height
	OpApply   Op = "apply"   // apply Interaction to SessionID
	OpRefresh Op = "refresh" // rerun every session's cycle after a reload
)

// Command is one unit of work for the event loop.
type Command struct {
	Op          Op
	SessionID   string
	Interaction model.Interaction
	EnqueuedAt  time.Time
	Reply       chan Result
}

// Result is sent back on Command.Reply.
type Result struct {
	State   session.State
	Outcome session.Outcome
	Err     error
}

// NewCommand returns a command with a buffered reply channel.
func NewCommand(op Op, sessionID string, in model.Interaction) Command {
	return Command{
		Op:          op,
		SessionID:   sessionID,
		Interaction: in,
		EnqueuedAt:  time.Now(),
		Reply:       make(chan Result, 1),
	}
}

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue returns ErrFull, ErrClosed or the context error when the
	// command was not accepted.
	Enqueue(ctx context.Context, c Command) error
	// Dequeue returns a channel closed when the queue is closed.
	Dequeue(ctx context.Context) <-chan Command
	Len(ctx context.Context) int
	Close() error
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	commands chan Command
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultQueueCapacity,
	}
	for _, opt := range opts {
		opt(q)
	}
	q.commands = make(chan Command, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	return q
}

// Enqueue adds a command without blocking.
func (q *InMemoryQueue) Enqueue(ctx context.Context, c Command) error { //nolint:gocritic // hugeParam: Command is passed by value for channel semantics
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError("closed")
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		metrics.RecordQueueEnqueueError("context_cancelled")
		return err
	}

	select {
	case q.commands <- c:
		metrics.UpdateQueueSize(len(q.commands))
		return nil
	default:
		metrics.RecordQueueEnqueueError("queue_full")
		metrics.RecordErrorByComponent("queue", "queue_full")
		return ErrFull
	}
}

// Dequeue returns a channel that receives commands as they become available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Command {
	out := make(chan Command)
	go func() {
		defer close(out)
		for c := range q.commands {
			select {
			case out <- c:
				metrics.UpdateQueueSize(len(q.commands))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the number of queued commands.
func (q *InMemoryQueue) Len(_ context.Context) int {
	size := len(q.commands)
	metrics.UpdateQueueSize(size)
	return size
}

// Close stops accepting commands and closes the dequeue channel once drained.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	close(q.commands)
	q.closed = true
	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

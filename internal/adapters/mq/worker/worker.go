// Package worker runs the event loop that applies viewer commands one at a
// time, so session state only ever changes on this goroutine.
package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okian/salaryscope/internal/adapters/mq/queue"
	"github.com/okian/salaryscope/pkg/logger"
	"github.com/okian/salaryscope/pkg/metrics"
)

// Handler executes one command.
type Handler interface {
	Handle(ctx context.Context, c queue.Command) queue.Result
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, c queue.Command) queue.Result

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, c queue.Command) queue.Result { //nolint:gocritic // hugeParam: Command is passed by value
	return f(ctx, c)
}

// Queue defines how the loop receives commands.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Command
}

// Worker processes commands.
type Worker interface {
	// Run starts the loop until ctx is canceled, Shutdown is called or the
	// queue closes.
	Run(ctx context.Context)
	Shutdown(ctx context.Context) error
}

// EventLoop implements Worker with a single consumer.
type EventLoop struct {
	queue   Queue
	handler Handler
	name    string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewEventLoop creates the loop with configuration options.
func NewEventLoop(q Queue, h Handler, opts ...Option) *EventLoop {
	w := &EventLoop{
		queue:    q,
		handler:  h,
		name:     "event-loop",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("event-loop"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run starts the loop.
func (w *EventLoop) Run(ctx context.Context) {
	defer close(w.done)

	commands := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case c, ok := <-commands:
			if !ok {
				return
			}
			w.process(ctx, c)
		}
	}
}

// Shutdown stops the loop and waits for the current command to finish.
func (w *EventLoop) Shutdown(ctx context.Context) error {
	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Done is closed when Run returns.
func (w *EventLoop) Done() <-chan struct{} { return w.done }

func (w *EventLoop) process(ctx context.Context, c queue.Command) { //nolint:gocritic // hugeParam: Command is passed by value
	res := w.safeHandle(ctx, c)

	kind := string(c.Op)
	if c.Op == queue.OpApply {
		kind = string(c.Interaction.Kind)
	}
	if res.Err != nil {
		metrics.RecordErrorByComponent("event_loop", kind)
		w.logger.Debug(ctx, "command rejected",
			logger.String("op", string(c.Op)),
			logger.String("session", c.SessionID),
			logger.Error(res.Err),
		)
	} else {
		metrics.RecordInteraction(kind, float64(time.Since(c.EnqueuedAt).Microseconds())/1000)
	}

	if c.Reply != nil {
		select {
		case c.Reply <- res:
		default:
			w.logger.Warn(ctx, "reply dropped", logger.String("session", c.SessionID))
		}
	}
}

var errPanic = errors.New("handler panicked")

func (w *EventLoop) safeHandle(ctx context.Context, c queue.Command) (res queue.Result) { //nolint:gocritic // hugeParam: Command is passed by value
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error(ctx, "handler panic", logger.Any("panic", r), logger.String("session", c.SessionID))
			res = queue.Result{Err: fmt.Errorf("%w: %v", errPanic, r)}
		}
	}()
	return w.handler.Handle(ctx, c)
}

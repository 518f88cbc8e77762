package service

import (
	"context"

	"github.com/okian/salaryscope/internal/adapters/mq/queue"
	"github.com/okian/salaryscope/internal/events"
	"github.com/okian/salaryscope/pkg/logger"
	"github.com/okian/salaryscope/pkg/metrics"
)

// handle runs on the event loop goroutine. It is the only place where
// session state is written.
func (s *Service) handle(ctx context.Context, c queue.Command) queue.Result { //nolint:gocritic // hugeParam: Command is passed by value
	data := s.dataset.Current(ctx).Data

	switch c.Op {
	case queue.OpCreate:
		return s.create(ctx, c)
	case queue.OpApply:
		st, err := s.sessions.Get(ctx, c.SessionID)
		if err != nil {
			return queue.Result{Err: err}
		}
		next, out, err := s.machine.Apply(st, c.Interaction, data)
		if err != nil {
			return queue.Result{State: st, Err: err}
		}
		if _, err := s.sessions.Put(ctx, next); err != nil {
			return queue.Result{State: st, Err: err}
		}
		return queue.Result{State: next, Outcome: out}
	case queue.OpRefresh:
		for _, id := range s.sessions.IDs(ctx) {
			st, err := s.sessions.Get(ctx, id)
			if err != nil {
				continue
			}
			_, _ = s.sessions.Put(ctx, s.machine.Refresh(st, data))
		}
		return queue.Result{}
	default:
		return queue.Result{Err: errUnknownOp(c.Op)}
	}
}

func (s *Service) create(ctx context.Context, c queue.Command) queue.Result { //nolint:gocritic // hugeParam: Command is passed by value
	snap := s.dataset.Current(ctx)
	sel := c.Interaction.Selection
	if sel == "" {
		sel = snap.Default
	}

	st, err := s.machine.Start(c.SessionID, sel, c.Interaction.Width, c.Interaction.Height, snap.Data)
	if err != nil {
		return queue.Result{Err: err}
	}
	evicted, err := s.sessions.Put(ctx, st)
	if err != nil {
		return queue.Result{Err: err}
	}
	metrics.UpdateSessionsActive(s.sessions.Len(ctx))
	if evicted != "" {
		s.logger.Debug(ctx, "session evicted", logger.String("session", evicted))
		s.hub.Publish(events.MakeEvent("", events.TypeSessionEvict, eventVersion, map[string]string{"id": evicted}))
	}
	return queue.Result{State: st}
}

type errUnknownOp queue.Op

func (e errUnknownOp) Error() string { return "unknown command op " + string(e) }

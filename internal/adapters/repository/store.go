// Package repository keeps the in-memory working set and the viewer sessions.
package repository

import (
	"context"

	"github.com/okian/salaryscope/internal/domain/model"
	"github.com/okian/salaryscope/internal/domain/session"
)

// Snapshot is one loaded dataset together with everything derived from it.
// Snapshots are immutable once stored.
type Snapshot struct {
	Samples  []model.JobSample
	Catalog  []string
	Fallback bool
	Default  model.Selection
	Report   model.LoadReport
	Data     session.Data
	Version  uint64
}

// DatasetStore holds the current working set.
type DatasetStore interface {
	// Replace installs s as the current snapshot and returns it with its version set.
	Replace(ctx context.Context, s Snapshot) Snapshot
	// Current returns the installed snapshot. It is never nil.
	Current(ctx context.Context) *Snapshot
}

// SessionStore tracks viewer sessions.
type SessionStore interface {
	// Put inserts or replaces a session. When a new session does not fit, the
	// oldest one is evicted and its id returned.
	Put(ctx context.Context, st session.State) (evicted string, err error)
	// Get returns ErrSessionNotFound for unknown ids.
	Get(ctx context.Context, id string) (session.State, error)
	Delete(ctx context.Context, id string) error
	IDs(ctx context.Context) []string
	Len(ctx context.Context) int
}

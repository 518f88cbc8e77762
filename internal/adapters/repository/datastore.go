package repository

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/okian/salaryscope/internal/domain/dataset"
	"github.com/okian/salaryscope/internal/domain/model"
	"github.com/okian/salaryscope/internal/domain/session"
	"github.com/okian/salaryscope/pkg/metrics"
)

// MemoryDataset is a DatasetStore that swaps whole snapshots atomically.
// Readers never block; writers are serialised.
type MemoryDataset struct {
	mu       sync.Mutex
	current  atomic.Pointer[Snapshot]
	version  uint64
	fallback []string
}

// NewMemoryDataset returns a store holding an empty fallback snapshot.
func NewMemoryDataset(opts ...DatasetOption) *MemoryDataset {
	d := &MemoryDataset{fallback: dataset.FallbackTitles}
	for _, opt := range opts {
		opt(d)
	}
	d.current.Store(&Snapshot{
		Catalog:  append([]string(nil), d.fallback...),
		Fallback: true,
		Default:  model.AllTitles,
		Data:     session.NewData(nil),
	})
	return d
}

// FallbackTitles returns the titles used when no dataset is loaded.
func (d *MemoryDataset) FallbackTitles() []string {
	return append([]string(nil), d.fallback...)
}

// Replace installs s. An empty catalog is replaced by the fallback titles.
func (d *MemoryDataset) Replace(_ context.Context, s Snapshot) Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(s.Catalog) == 0 {
		s.Catalog = append([]string(nil), d.fallback...)
		s.Fallback = true
	}
	if s.Default == "" {
		s.Default = model.AllTitles
	}
	s.Data = session.NewData(s.Samples)
	d.version++
	s.Version = d.version
	stored := s
	d.current.Store(&stored)

	metrics.UpdateDatasetRows(len(s.Samples))
	metrics.UpdateCatalogTitles(len(s.Catalog))
	return s
}

// Current returns the installed snapshot.
func (d *MemoryDataset) Current(_ context.Context) *Snapshot {
	return d.current.Load()
}

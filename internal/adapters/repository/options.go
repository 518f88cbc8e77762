package repository

import "time"

// Option applies a configuration option to the SessionRegistry.
type Option func(*SessionRegistry)

// WithMaxSessions bounds the registry. maxSize <= 0 means unbounded.
func WithMaxSessions(maxSize int) Option {
	return func(r *SessionRegistry) {
		r.maxSize = maxSize
	}
}

// WithMetricsUpdateInterval sets the interval for background metrics updates.
func WithMetricsUpdateInterval(interval time.Duration) Option {
	return func(r *SessionRegistry) {
		if interval > 0 {
			r.metricsUpdateInterval = interval
		}
	}
}

// DatasetOption applies a configuration option to the MemoryDataset.
type DatasetOption func(*MemoryDataset)

// WithFallbackTitles overrides the titles shown when no dataset is loaded.
func WithFallbackTitles(titles []string) DatasetOption {
	return func(d *MemoryDataset) {
		if len(titles) > 0 {
			d.fallback = append([]string(nil), titles...)
		}
	}
}

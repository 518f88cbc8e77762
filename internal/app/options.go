package service

import (
	"time"

	"github.com/okian/salaryscope/internal/domain/plot"
	"github.com/okian/salaryscope/internal/events"
	"github.com/okian/salaryscope/pkg/logger"
)

// Option configures the Service.
type Option func(*Service)

// WithDatasetLocation sets the CSV file path or URL to load.
func WithDatasetLocation(location string) Option {
	return func(s *Service) {
		s.location = location
	}
}

// WithPreferredTitle sets the initial selection when the catalog has it.
func WithPreferredTitle(title string) Option {
	return func(s *Service) {
		s.preferred = title
	}
}

// WithFallbackTitles replaces the titles offered when no data is loaded.
func WithFallbackTitles(titles []string) Option {
	return func(s *Service) {
		if len(titles) > 0 {
			s.fallback = titles
		}
	}
}

// WithLayout sets the plot layout template; each session supplies its size.
func WithLayout(l plot.Layout) Option {
	return func(s *Service) {
		s.layout = l
	}
}

// WithZoom sets the zoom behaviour.
func WithZoom(z plot.ZoomBehavior) Option {
	return func(s *Service) {
		s.zoom = z
	}
}

// WithResetDuration sets the reset transition length.
func WithResetDuration(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.resetDuration = d
		}
	}
}

// WithQueueSize sets the interaction queue capacity.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithMaxSessions caps the number of concurrent viewer sessions.
func WithMaxSessions(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// WithMaxSurface caps session surface width and height in pixels.
func WithMaxSurface(px int) Option {
	return func(s *Service) {
		if px > 0 {
			s.maxSurface = px
		}
	}
}

// WithFetchTimeout bounds a dataset fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithLoader replaces the dataset loader.
func WithLoader(l Loader) Option {
	return func(s *Service) {
		if l != nil {
			s.loader = l
		}
	}
}

// WithHub sets the event hub that receives dataset and session notifications.
func WithHub(h *events.Hub) Option {
	return func(s *Service) {
		if h != nil {
			s.hub = h
		}
	}
}

// WithIDGenerator replaces the session id generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

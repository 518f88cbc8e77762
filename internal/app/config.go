package service

import (
	"time"

	"github.com/okian/salaryscope/internal/config"
	"github.com/okian/salaryscope/internal/domain/plot"
	"github.com/okian/salaryscope/internal/domain/session"
)

// LayoutFromConfig returns the plot layout described by cfg.
func LayoutFromConfig(cfg *config.Config) plot.Layout {
	l := plot.DefaultLayout(cfg.PlotWidth, cfg.PlotHeight)
	l.PointRadius = cfg.PointRadius
	l.PadFraction = cfg.PadFraction
	l.TickSpacing = float64(cfg.TickSpacingPX)
	l.MaxTicks = cfg.MaxTicks
	return l
}

// ZoomFromConfig returns the zoom bounds described by cfg.
func ZoomFromConfig(cfg *config.Config) plot.ZoomBehavior {
	return plot.ZoomBehavior{
		MinScale:        cfg.ZoomMin,
		MaxScale:        cfg.ZoomMax,
		TranslateMargin: cfg.TranslateMargin,
	}
}

// MachineOptionsFromConfig configures a standalone session machine the same
// way the service configures its own.
func MachineOptionsFromConfig(cfg *config.Config) []session.Option {
	return []session.Option{
		session.WithLayout(LayoutFromConfig(cfg)),
		session.WithZoom(ZoomFromConfig(cfg)),
		session.WithResetDuration(time.Duration(cfg.ResetDurationMS) * time.Millisecond),
		session.WithMaxSurface(cfg.MaxSurfacePX),
	}
}

// OptionsFromConfig maps a validated configuration onto service options.
func OptionsFromConfig(cfg *config.Config) []Option {
	return []Option{
		WithDatasetLocation(cfg.Dataset),
		WithPreferredTitle(cfg.PreferredTitle),
		WithFallbackTitles(cfg.FallbackTitles),
		WithLayout(LayoutFromConfig(cfg)),
		WithZoom(ZoomFromConfig(cfg)),
		WithResetDuration(time.Duration(cfg.ResetDurationMS) * time.Millisecond),
		WithQueueSize(cfg.QueueSize),
		WithMaxSessions(cfg.MaxSessions),
		WithMaxSurface(cfg.MaxSurfacePX),
		WithFetchTimeout(time.Duration(cfg.FetchTimeoutMS) * time.Millisecond),
	}
}

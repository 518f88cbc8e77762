// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, an optional YAML file and SALARYSCOPE_* env vars.
// - Validation errors wrap ErrInvalidConfig.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the slog handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Dataset is a local CSV path or an http(s) URL.
	Dataset string `koanf:"dataset"`

	// FetchTimeoutMS bounds the initial dataset fetch.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// PreferredTitle is the initial selection when the catalog contains it.
	PreferredTitle string `koanf:"preferred_title"`

	// FallbackTitles populate the filter control when the dataset cannot be loaded.
	FallbackTitles []string `koanf:"fallback_titles"`

	// PlotWidth and PlotHeight size a new drawing surface in pixels.
	PlotWidth  int `koanf:"plot_width"`
	PlotHeight int `koanf:"plot_height"`

	// MaxSurfacePX caps the width and height of any drawing surface.
	MaxSurfacePX int `koanf:"max_surface_px"`

	// PointRadius is the marker radius in pixels.
	PointRadius float64 `koanf:"point_radius"`

	// PadFraction pads the x/y domains by this share of their range.
	PadFraction float64 `koanf:"pad_fraction"`

	// TickSpacingPX is the approximate pixel distance between axis ticks.
	TickSpacingPX int `koanf:"tick_spacing_px"`

	// MaxTicks caps the tick count per axis.
	MaxTicks int `koanf:"max_ticks"`

	// ZoomMin and ZoomMax bound the zoom scale factor.
	ZoomMin float64 `koanf:"zoom_min"`
	ZoomMax float64 `koanf:"zoom_max"`

	// TranslateMargin is how far (px) panning may go beyond the plot bounds.
	TranslateMargin float64 `koanf:"translate_margin"`

	// ResetDurationMS is the length of the reset-zoom transition.
	ResetDurationMS int `koanf:"reset_duration_ms"`

	// QueueSize bounds the interaction queue.
	QueueSize int `koanf:"queue_size"`

	// MaxSessions bounds the viewer session registry; the oldest session is evicted.
	MaxSessions int `koanf:"max_sessions"`

	// RateLimitRPS and RateLimitBurst throttle the API; zero RPS disables limiting.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":9080",
		Dataset:         "ai_job_dataset.csv",
		FetchTimeoutMS:  10_000,
		PreferredTitle:  "AI Research Scientist",
		FallbackTitles:  []string{"AI Research Scientist", "AI Software Engineer", "Data Scientist"},
		PlotWidth:       960,
		PlotHeight:      540,
		MaxSurfacePX:    4096,
		PointRadius:     5,
		PadFraction:     0.08,
		TickSpacingPX:   80,
		MaxTicks:        10,
		ZoomMin:         1,
		ZoomMax:         10,
		TranslateMargin: 100,
		ResetDurationMS: 300,
		QueueSize:       1_024,
		MaxSessions:     1_000,
		RateLimitRPS:    50,
		RateLimitBurst:  100,
	}
}

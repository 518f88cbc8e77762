package plot

import "math"

// Default drawing parameters.
const (
	DefaultPointRadius = 5.0
	DefaultTickSpacing = 80.0
	DefaultMaxTicks    = 10
	minTicks           = 2
)

// Margins around the inner plot area in pixels.
type Margins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// DefaultMargins leave room for the axis labels.
var DefaultMargins = Margins{Top: 20, Right: 20, Bottom: 50, Left: 70} //nolint:gochecknoglobals // fixed layout

// Layout sizes the drawing surface.
type Layout struct {
	Width       int
	Height      int
	Margins     Margins
	PointRadius float64
	PadFraction float64
	TickSpacing float64
	MaxTicks    int
}

// DefaultLayout returns a layout for a width x height surface.
func DefaultLayout(width, height int) Layout {
	return Layout{
		Width:       width,
		Height:      height,
		Margins:     DefaultMargins,
		PointRadius: DefaultPointRadius,
		PadFraction: DefaultPadFraction,
		TickSpacing: DefaultTickSpacing,
		MaxTicks:    DefaultMaxTicks,
	}
}

// WithSize returns a copy resized to width x height.
func (l Layout) WithSize(width, height int) Layout {
	l.Width = width
	l.Height = height
	return l
}

// InnerWidth is the surface width minus horizontal margins.
func (l Layout) InnerWidth() float64 {
	return math.Max(0, float64(l.Width)-l.Margins.Left-l.Margins.Right)
}

// InnerHeight is the surface height minus vertical margins.
func (l Layout) InnerHeight() float64 {
	return math.Max(0, float64(l.Height)-l.Margins.Top-l.Margins.Bottom)
}

// Valid reports whether the inner plot area has room to draw.
func (l Layout) Valid() bool {
	return l.InnerWidth() > 0 && l.InnerHeight() > 0
}

// TickCount gives about one tick per TickSpacing pixels, clamped to [2, MaxTicks].
func (l Layout) TickCount(axisPixels float64) int {
	spacing := l.TickSpacing
	if spacing <= 0 {
		spacing = DefaultTickSpacing
	}
	maxTicks := l.MaxTicks
	if maxTicks < minTicks {
		maxTicks = DefaultMaxTicks
	}
	n := int(math.Floor(axisPixels / spacing))
	return min(maxTicks, max(minTicks, n))
}

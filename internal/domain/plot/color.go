package plot

import (
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ColorScale maps a salary onto the viridis gradient. Its domain is the full
// working set's salary extent so colours stay put when the filter changes.
type ColorScale struct {
	Domain Extent
}

// NewColorScale builds a colour scale over [lo, hi].
func NewColorScale(lo, hi float64) ColorScale {
	return ColorScale{Domain: Extent{Lo: lo, Hi: hi}}
}

// Position returns v normalised to [0, 1]. A collapsed domain yields 0.5.
func (c ColorScale) Position(v float64) float64 {
	if c.Domain.Span() <= 0 {
		return 0.5
	}
	t := (v - c.Domain.Lo) / c.Domain.Span()
	return min(1, max(0, t))
}

// Color returns the gradient colour for v.
func (c ColorScale) Color(v float64) drawing.Color {
	return chart.Viridis(c.Position(v), 0, 1)
}

// Hex returns the colour for v as #rrggbb.
func (c ColorScale) Hex(v float64) string {
	return Hex(c.Color(v))
}

// Hex formats a colour as #rrggbb.
func Hex(col drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", col.R, col.G, col.B)
}

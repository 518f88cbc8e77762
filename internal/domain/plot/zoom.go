package plot

import (
	"math"
	"time"
)

// Zoom defaults.
const (
	DefaultMinScale        = 1.0
	DefaultMaxScale        = 10.0
	DefaultTranslateMargin = 100.0
	DefaultResetDuration   = 300 * time.Millisecond
	frameInterval          = time.Second / 60
)

// Transform is a zoom transform: screen = data*K + (X, Y) in inner-plot pixels.
type Transform struct {
	K float64 `json:"k"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Identity is the unzoomed transform.
var Identity = Transform{K: 1} //nolint:gochecknoglobals // constant value

// IsIdentity reports whether t is the identity.
func (t Transform) IsIdentity() bool { return t == Identity }

// ApplyX maps an x pixel through the transform.
func (t Transform) ApplyX(x float64) float64 { return x*t.K + t.X }

// ApplyY maps a y pixel through the transform.
func (t Transform) ApplyY(y float64) float64 { return y*t.K + t.Y }

// InvertX undoes ApplyX.
func (t Transform) InvertX(x float64) float64 { return (x - t.X) / t.K }

// InvertY undoes ApplyY.
func (t Transform) InvertY(y float64) float64 { return (y - t.Y) / t.K }

// RescaleX returns s with its domain adjusted so that mapping through the
// result equals mapping through s and then t.
func (t Transform) RescaleX(s Linear) Linear {
	return NewLinear(s.Invert(t.InvertX(s.R0)), s.Invert(t.InvertX(s.R1)), s.R0, s.R1)
}

// RescaleY is RescaleX for the vertical axis.
func (t Transform) RescaleY(s Linear) Linear {
	return NewLinear(s.Invert(t.InvertY(s.R0)), s.Invert(t.InvertY(s.R1)), s.R0, s.R1)
}

// ZoomBehavior bounds the transforms a gesture can produce.
type ZoomBehavior struct {
	MinScale        float64
	MaxScale        float64
	TranslateMargin float64
}

// DefaultZoom allows 1x to 10x with a 100px pan margin.
func DefaultZoom() ZoomBehavior {
	return ZoomBehavior{MinScale: DefaultMinScale, MaxScale: DefaultMaxScale, TranslateMargin: DefaultTranslateMargin}
}

func (z ZoomBehavior) clampScale(k float64) float64 {
	return math.Max(z.MinScale, math.Min(z.MaxScale, k))
}

// ZoomAt multiplies the scale by factor keeping the point (px, py) fixed,
// then constrains the result to the plot of size w x h.
func (z ZoomBehavior) ZoomAt(t Transform, factor, px, py, w, h float64) Transform {
	if !isFinite(factor) || factor <= 0 {
		factor = 1
	}
	if !isFinite(t.K) || !isFinite(t.X) || !isFinite(t.Y) {
		t = z.Constrain(t, w, h)
	}
	k := z.clampScale(t.K * factor)
	x0, y0 := t.InvertX(px), t.InvertY(py)
	return z.Constrain(Transform{K: k, X: px - x0*k, Y: py - y0*k}, w, h)
}

// Pan shifts the transform by (dx, dy) pixels, then constrains it.
func (z ZoomBehavior) Pan(t Transform, dx, dy, w, h float64) Transform {
	return z.Constrain(Transform{K: t.K, X: t.X + dx, Y: t.Y + dy}, w, h)
}

// Constrain keeps the viewport [0,w]x[0,h] inside the translate extent
// [-m,-m]x[w+m,h+m] and the scale inside [MinScale, MaxScale]. A non-finite
// or non-positive scale becomes MinScale around the centre; a non-finite
// translation becomes 0.
func (z ZoomBehavior) Constrain(t Transform, w, h float64) Transform {
	if !isFinite(t.K) || t.K < 0 {
		t.K = 0
	}
	if !isFinite(t.X) {
		t.X = 0
	}
	if !isFinite(t.Y) {
		t.Y = 0
	}
	if t.K != z.clampScale(t.K) || t.K == 0 {
		k := z.clampScale(t.K)
		if t.K == 0 {
			k = z.MinScale
		}
		cx, cy := w/2, h/2
		x0, y0 := cx, cy
		if t.K != 0 {
			x0, y0 = t.InvertX(cx), t.InvertY(cy)
		}
		t = Transform{K: k, X: cx - x0*k, Y: cy - y0*k}
	}
	m := z.TranslateMargin
	dx0 := t.InvertX(0) - (-m)
	dx1 := t.InvertX(w) - (w + m)
	dy0 := t.InvertY(0) - (-m)
	dy1 := t.InvertY(h) - (h + m)
	return Transform{
		K: t.K,
		X: t.X + t.K*constrainShift(dx0, dx1),
		Y: t.Y + t.K*constrainShift(dy0, dy1),
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func constrainShift(d0, d1 float64) float64 {
	if d1 > d0 {
		return (d0 + d1) / 2
	}
	if s := math.Min(0, d0); s != 0 {
		return s
	}
	return math.Max(0, d1)
}

// Frame is one step of an animated transition.
type Frame struct {
	AtMS      int64     `json:"at_ms"`
	Transform Transform `json:"transform"`
}

// TransitionFrames interpolates from -> to over d with cubic in-out easing at
// 60 frames per second. The last frame is exactly to.
func TransitionFrames(from, to Transform, d time.Duration) []Frame {
	if d <= 0 {
		return []Frame{{AtMS: 0, Transform: to}}
	}
	n := max(1, int(d/frameInterval))
	frames := make([]Frame, 0, n)
	for i := 1; i <= n; i++ {
		at := d * time.Duration(i) / time.Duration(n)
		e := easeCubicInOut(float64(i) / float64(n))
		frames = append(frames, Frame{AtMS: at.Milliseconds(), Transform: Transform{
			K: from.K + (to.K-from.K)*e,
			X: from.X + (to.X-from.X)*e,
			Y: from.Y + (to.Y-from.Y)*e,
		}})
	}
	frames[len(frames)-1].Transform = to
	return frames
}

func easeCubicInOut(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}

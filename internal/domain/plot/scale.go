// Package plot computes everything needed to draw the salary scatter plot:
// padded domains, linear scales, ticks, the colour scale, zoom transforms and
// the final scene.
package plot

import "math"

// Linear maps a numeric domain onto a pixel range.
type Linear struct {
	D0, D1 float64
	R0, R1 float64
}

// NewLinear builds a linear scale.
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{D0: d0, D1: d1, R0: r0, R1: r1}
}

// Map converts a domain value to a range value. A collapsed domain maps to
// the middle of the range.
func (s Linear) Map(v float64) float64 {
	if s.D1 == s.D0 {
		return (s.R0 + s.R1) / 2
	}
	return s.R0 + (v-s.D0)/(s.D1-s.D0)*(s.R1-s.R0)
}

// Invert converts a range value back to the domain.
func (s Linear) Invert(p float64) float64 {
	if s.R1 == s.R0 {
		return s.D0
	}
	return s.D0 + (p-s.R0)/(s.R1-s.R0)*(s.D1-s.D0)
}

// Domain returns the domain bounds.
func (s Linear) Domain() [2]float64 { return [2]float64{s.D0, s.D1} }

// Ticks returns roughly count nicely rounded values inside the domain.
func (s Linear) Ticks(count int) []float64 {
	return Ticks(s.D0, s.D1, count)
}

var (
	e10 = math.Sqrt(50) //nolint:gochecknoglobals // tick thresholds
	e5  = math.Sqrt(10) //nolint:gochecknoglobals // tick thresholds
	e2  = math.Sqrt(2)  //nolint:gochecknoglobals // tick thresholds
)

// tickSpec returns integer tick bounds and the increment. A negative
// increment means values are i / -inc, which keeps fractional steps exact.
func tickSpec(start, stop float64, count int) (i1, i2, inc float64) {
	step := (stop - start) / float64(max(0, count))
	power := math.Floor(math.Log10(step))
	errv := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case errv >= e10:
		factor = 10
	case errv >= e5:
		factor = 5
	case errv >= e2:
		factor = 2
	}
	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = math.Round(start * inc)
		i2 = math.Round(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		return i1, i2, -inc
	}
	inc = math.Pow(10, power) * factor
	i1 = math.Round(start / inc)
	i2 = math.Round(stop / inc)
	if i1*inc < start {
		i1++
	}
	if i2*inc > stop {
		i2--
	}
	return i1, i2, inc
}

// Ticks returns 1-2-5 stepped values covering [start, stop].
func Ticks(start, stop float64, count int) []float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	i1, i2, inc := tickSpec(start, stop, count)
	if i2 < i1 || math.IsInf(inc, 0) || inc == 0 {
		return nil
	}
	n := int(i2-i1) + 1
	out := make([]float64, n)
	for i := range n {
		v := i1 + float64(i)
		if inc < 0 {
			out[i] = v / -inc
		} else {
			out[i] = v * inc
		}
	}
	if reverse {
		for l, r := 0, n-1; l < r; l, r = l+1, r-1 {
			out[l], out[r] = out[r], out[l]
		}
	}
	return out
}

package plot

import "math"

// DefaultPadFraction pads each domain by 8% of its range.
const DefaultPadFraction = 0.08

// Extent is a closed numeric interval.
type Extent struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// Span returns Hi - Lo.
func (e Extent) Span() float64 { return e.Hi - e.Lo }

// ExtentOf returns the min and max of values. ok is false when values is empty.
func ExtentOf(values []float64) (Extent, bool) {
	if len(values) == 0 {
		return Extent{}, false
	}
	e := Extent{Lo: values[0], Hi: values[0]}
	for _, v := range values[1:] {
		e.Lo = math.Min(e.Lo, v)
		e.Hi = math.Max(e.Hi, v)
	}
	return e, true
}

// PaddedExtent widens the extent of values by padFraction of its range. A
// zero range is padded by 5% of |max|, or by 1 when max is 0. The lower bound
// never goes below zero. No values yields [0, 1].
func PaddedExtent(values []float64, padFraction float64) Extent {
	e, ok := ExtentOf(values)
	if !ok {
		return Extent{Lo: 0, Hi: 1}
	}
	pad := e.Span() * padFraction
	if e.Span() == 0 {
		pad = math.Abs(e.Hi) * 0.05
		if pad == 0 {
			pad = 1
		}
	}
	return Extent{Lo: math.Max(0, e.Lo-pad), Hi: e.Hi + pad}
}

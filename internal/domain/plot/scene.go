package plot

import (
	"github.com/okian/salaryscope/internal/domain/model"
)

// Axis titles.
const (
	XAxisLabel    = "Years of Experience"
	YAxisLabel    = "Salary (USD)"
	NoDataMessage = "No data for this selection"
	tooltipOffset = 5.0
)

// Tick is one labelled axis position. Pos is in inner-plot pixels.
type Tick struct {
	Value float64 `json:"value"`
	Pos   float64 `json:"pos"`
	Label string  `json:"label"`
}

// Axis describes a drawn axis.
type Axis struct {
	Label  string `json:"label"`
	Domain Extent `json:"domain"`
	Ticks  []Tick `json:"ticks"`
}

// Point is one marker. CX and CY are inner-plot pixels.
type Point struct {
	Index  int             `json:"index"`
	Sample model.JobSample `json:"sample"`
	CX     float64         `json:"cx"`
	CY     float64         `json:"cy"`
	R      float64         `json:"r"`
	Fill   string          `json:"fill"`
	Raised bool            `json:"raised,omitempty"`
}

// Hover is the marker under the pointer. PointerX and PointerY are in
// inner-plot pixels.
type Hover struct {
	Index    int     `json:"index"`
	PointerX float64 `json:"x"`
	PointerY float64 `json:"y"`
}

// Tooltip is positioned in surface pixels, offset from the pointer.
type Tooltip struct {
	X      float64         `json:"x"`
	Y      float64         `json:"y"`
	Text   string          `json:"text"`
	Sample model.JobSample `json:"sample"`
}

// Scene is the complete description of one drawn frame.
type Scene struct {
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Margins     Margins   `json:"margins"`
	InnerWidth  float64   `json:"inner_width"`
	InnerHeight float64   `json:"inner_height"`
	Empty       bool      `json:"empty"`
	Message     string    `json:"message,omitempty"`
	Transform   Transform `json:"transform"`
	BaseX       Extent    `json:"base_x"`
	BaseY       Extent    `json:"base_y"`
	XAxis       Axis      `json:"x_axis"`
	YAxis       Axis      `json:"y_axis"`
	Gridlines   []float64 `json:"gridlines"`
	ColorDomain Extent    `json:"color_domain"`
	Points      []Point   `json:"points"`
	Tooltip     *Tooltip  `json:"tooltip,omitempty"`
}

// Scales holds the base (unzoomed) scales for a filtered subset.
type Scales struct {
	X Linear
	Y Linear
}

// BaseScales computes the x and y scales over the padded extents of samples.
func BaseScales(samples []model.JobSample, layout Layout) Scales {
	years := make([]float64, len(samples))
	salaries := make([]float64, len(samples))
	for i, s := range samples {
		years[i] = s.YearsExperience
		salaries[i] = s.SalaryUSD
	}
	xe := PaddedExtent(years, layout.PadFraction)
	ye := PaddedExtent(salaries, layout.PadFraction)
	return Scales{
		X: NewLinear(xe.Lo, xe.Hi, 0, layout.InnerWidth()),
		Y: NewLinear(ye.Lo, ye.Hi, layout.InnerHeight(), 0),
	}
}

// Rescaled applies t to both scales.
func (s Scales) Rescaled(t Transform) Scales {
	return Scales{X: t.RescaleX(s.X), Y: t.RescaleY(s.Y)}
}

// Build lays out a frame for samples, the already filtered subset. The colour
// scale spans colorDomain, not the subset. An empty subset produces an empty
// scene carrying only the no-data message.
func Build(samples []model.JobSample, colorDomain Extent, layout Layout, t Transform, hover *Hover) Scene {
	sc := Scene{
		Width:       layout.Width,
		Height:      layout.Height,
		Margins:     layout.Margins,
		InnerWidth:  layout.InnerWidth(),
		InnerHeight: layout.InnerHeight(),
		Transform:   t,
		ColorDomain: colorDomain,
	}
	if len(samples) == 0 {
		sc.Empty = true
		sc.Message = NoDataMessage
		sc.Transform = Identity
		return sc
	}

	base := BaseScales(samples, layout)
	zoomed := base.Rescaled(t)
	sc.BaseX = Extent{Lo: base.X.D0, Hi: base.X.D1}
	sc.BaseY = Extent{Lo: base.Y.D0, Hi: base.Y.D1}
	sc.XAxis = buildAxis(XAxisLabel, zoomed.X, layout.TickCount(sc.InnerWidth))
	sc.YAxis = buildAxis(YAxisLabel, zoomed.Y, layout.TickCount(sc.InnerHeight))
	sc.Gridlines = make([]float64, len(sc.YAxis.Ticks))
	for i, tk := range sc.YAxis.Ticks {
		sc.Gridlines[i] = tk.Pos
	}

	colors := ColorScale{Domain: colorDomain}
	radius := layout.PointRadius
	if radius <= 0 {
		radius = DefaultPointRadius
	}
	sc.Points = make([]Point, 0, len(samples))
	var raised *Point
	for i, s := range samples {
		p := Point{
			Index:  i,
			Sample: s,
			CX:     zoomed.X.Map(s.YearsExperience),
			CY:     zoomed.Y.Map(s.SalaryUSD),
			R:      radius,
			Fill:   colors.Hex(s.SalaryUSD),
		}
		if hover != nil && hover.Index == i {
			p.Raised = true
			raised = &p
			continue
		}
		sc.Points = append(sc.Points, p)
	}
	if raised != nil {
		sc.Points = append(sc.Points, *raised)
		sc.Tooltip = &Tooltip{
			X:      layout.Margins.Left + hover.PointerX + tooltipOffset,
			Y:      layout.Margins.Top + hover.PointerY + tooltipOffset,
			Text:   TooltipText(raised.Sample.JobTitle, raised.Sample.YearsExperience, raised.Sample.SalaryUSD),
			Sample: raised.Sample,
		}
	}
	return sc
}

func buildAxis(label string, s Linear, count int) Axis {
	values := s.Ticks(count)
	ticks := make([]Tick, len(values))
	for i, v := range values {
		ticks[i] = Tick{Value: v, Pos: s.Map(v), Label: FormatValue(v)}
	}
	lo, hi := s.D0, s.D1
	if lo > hi {
		lo, hi = hi, lo
	}
	return Axis{Label: label, Domain: Extent{Lo: lo, Hi: hi}, Ticks: ticks}
}

// HitTest returns the index of the topmost marker containing (px, py), or -1.
// Markers drawn later sit on top.
func HitTest(sc Scene, px, py float64) int {
	for i := len(sc.Points) - 1; i >= 0; i-- {
		p := sc.Points[i]
		dx, dy := px-p.CX, py-p.CY
		if dx*dx+dy*dy <= p.R*p.R {
			return p.Index
		}
	}
	return -1
}

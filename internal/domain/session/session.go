// Package session holds the per-viewer render cycle: the current selection,
// surface size, zoom transform and hover, and the transitions between them.
package session

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/okian/salaryscope/internal/domain/dataset"
	"github.com/okian/salaryscope/internal/domain/model"
	"github.com/okian/salaryscope/internal/domain/plot"
)

// Errors returned by Apply.
var (
	ErrNotInteractive     = errors.New("plot is not interactive")
	ErrInvalidInteraction = errors.New("invalid interaction")
	ErrInvalidSurface     = errors.New("invalid surface size")
)

// DefaultMaxSurface caps surface width and height in pixels.
const DefaultMaxSurface = 4096

// Phase is a render cycle phase.
type Phase string

// Render cycle phases.
const (
	PhaseIdle      Phase = "idle"
	PhaseFiltering Phase = "filtering"
	PhaseEmpty     Phase = "empty"
	PhaseReady     Phase = "ready"
)

// State is one viewer's application state.
type State struct {
	ID        string          `json:"id"`
	Selection model.Selection `json:"selection"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Transform plot.Transform  `json:"transform"`
	Phase     Phase           `json:"phase"`
	Hover     *plot.Hover     `json:"hover,omitempty"`
	Cycle     int             `json:"cycle"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Data is the dataset view a cycle renders from.
type Data struct {
	Samples     []model.JobSample
	ColorDomain plot.Extent
}

// NewData derives the colour domain from the full working set.
func NewData(samples []model.JobSample) Data {
	lo, hi, _ := dataset.SalaryExtent(samples)
	return Data{Samples: samples, ColorDomain: plot.Extent{Lo: lo, Hi: hi}}
}

// Outcome reports side results of an interaction.
type Outcome struct {
	Frames  []plot.Frame  `json:"frames,omitempty"`
	Tooltip *plot.Tooltip `json:"tooltip,omitempty"`
}

// Machine applies interactions to states.
type Machine struct {
	layout        plot.Layout
	zoom          plot.ZoomBehavior
	resetDuration time.Duration
	maxSurface    int
	now           func() time.Time
}

// Option configures a Machine.
type Option func(*Machine)

// WithLayout sets the layout template. Width and height come from each state.
func WithLayout(l plot.Layout) Option {
	return func(m *Machine) { m.layout = l }
}

// WithZoom sets the zoom bounds.
func WithZoom(z plot.ZoomBehavior) Option {
	return func(m *Machine) { m.zoom = z }
}

// WithResetDuration sets the reset transition length.
func WithResetDuration(d time.Duration) Option {
	return func(m *Machine) {
		if d >= 0 {
			m.resetDuration = d
		}
	}
}

// WithMaxSurface caps surface width and height. Non-positive values are ignored.
func WithMaxSurface(px int) Option {
	return func(m *Machine) {
		if px > 0 {
			m.maxSurface = px
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMachine returns a Machine with default layout and zoom.
func NewMachine(opts ...Option) *Machine {
	m := &Machine{
		layout:        plot.DefaultLayout(0, 0),
		zoom:          plot.DefaultZoom(),
		resetDuration: plot.DefaultResetDuration,
		maxSurface:    DefaultMaxSurface,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Layout returns the layout for st's surface.
func (m *Machine) Layout(st State) plot.Layout {
	return m.layout.WithSize(st.Width, st.Height)
}

// Start creates a state and runs its first cycle.
func (m *Machine) Start(id string, sel model.Selection, width, height int, data Data) (State, error) {
	st := State{ID: id, Selection: sel, Width: width, Height: height, Phase: PhaseIdle}
	if err := m.checkSurface(st); err != nil {
		return State{}, err
	}
	return m.cycle(st, data), nil
}

// MaxSurface returns the largest accepted width or height.
func (m *Machine) MaxSurface() int {
	return m.maxSurface
}

// checkSurface rejects surfaces with no room to draw or larger than maxSurface.
func (m *Machine) checkSurface(st State) error {
	if st.Width > m.maxSurface || st.Height > m.maxSurface {
		return fmt.Errorf("%w: %dx%d exceeds %dpx", ErrInvalidSurface, st.Width, st.Height, m.maxSurface)
	}
	if !m.Layout(st).Valid() {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSurface, st.Width, st.Height)
	}
	return nil
}

// cycle restarts rendering: identity transform, no hover, then filter.
func (m *Machine) cycle(st State, data Data) State {
	st.Phase = PhaseFiltering
	st.Transform = plot.Identity
	st.Hover = nil
	st.Cycle++
	if len(dataset.Filter(data.Samples, st.Selection)) == 0 {
		st.Phase = PhaseEmpty
	} else {
		st.Phase = PhaseReady
	}
	st.UpdatedAt = m.now()
	return st
}

// Refresh reruns the cycle after the dataset changed.
func (m *Machine) Refresh(st State, data Data) State {
	return m.cycle(st, data)
}

// Apply runs one interaction against st. st is never modified on error.
func (m *Machine) Apply(st State, in model.Interaction, data Data) (State, Outcome, error) {
	if !in.Kind.Valid() {
		return st, Outcome{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidInteraction, in.Kind)
	}
	layout := m.Layout(st)
	w, h := layout.InnerWidth(), layout.InnerHeight()

	switch in.Kind {
	case model.KindSelect:
		sel := in.Selection
		if sel == "" {
			sel = model.AllTitles
		}
		st.Selection = sel
		return m.cycle(st, data), Outcome{}, nil

	case model.KindResize:
		next := st
		next.Width, next.Height = in.Width, in.Height
		if err := m.checkSurface(next); err != nil {
			return st, Outcome{}, err
		}
		return m.cycle(next, data), Outcome{}, nil

	case model.KindReset:
		frames := plot.TransitionFrames(st.Transform, plot.Identity, m.resetDuration)
		st.Transform = plot.Identity
		st.Hover = nil
		st.UpdatedAt = m.now()
		return st, Outcome{Frames: frames}, nil
	}

	if st.Phase != PhaseReady {
		return st, Outcome{}, fmt.Errorf("%w: %s in phase %s", ErrNotInteractive, in.Kind, st.Phase)
	}
	if !finite(in.Factor, in.PointerX, in.PointerY, in.DX, in.DY) {
		return st, Outcome{}, fmt.Errorf("%w: %s with non-finite coordinates", ErrInvalidInteraction, in.Kind)
	}

	switch in.Kind {
	case model.KindZoom:
		if in.Factor <= 0 {
			return st, Outcome{}, fmt.Errorf("%w: zoom factor must be positive", ErrInvalidInteraction)
		}
		st.Transform = m.zoom.ZoomAt(st.Transform, in.Factor, in.PointerX, in.PointerY, w, h)
		st.Hover = nil

	case model.KindPan:
		st.Transform = m.zoom.Pan(st.Transform, in.DX, in.DY, w, h)
		st.Hover = nil

	case model.KindHover:
		sc := m.Scene(st, data)
		idx := plot.HitTest(sc, in.PointerX, in.PointerY)
		if idx < 0 {
			st.Hover = nil
		} else {
			st.Hover = &plot.Hover{Index: idx, PointerX: in.PointerX, PointerY: in.PointerY}
		}

	case model.KindMove:
		if st.Hover != nil {
			st.Hover = &plot.Hover{Index: st.Hover.Index, PointerX: in.PointerX, PointerY: in.PointerY}
		}

	case model.KindLeave:
		st.Hover = nil
	}

	st.UpdatedAt = m.now()
	out := Outcome{}
	if st.Hover != nil {
		out.Tooltip = m.Scene(st, data).Tooltip
	}
	return st, out, nil
}

// Scene renders st against data.
func (m *Machine) Scene(st State, data Data) plot.Scene {
	return m.render(st, data, st.Transform)
}

// Preview renders st under t, constrained like a gesture would be. The
// state itself is unchanged; reset animations use it for in-between frames.
func (m *Machine) Preview(st State, data Data, t plot.Transform) plot.Scene {
	layout := m.Layout(st)
	t = m.zoom.Constrain(t, layout.InnerWidth(), layout.InnerHeight())
	st.Hover = nil
	return m.render(st, data, t)
}

func (m *Machine) render(st State, data Data, t plot.Transform) plot.Scene {
	subset := dataset.Filter(data.Samples, st.Selection)
	hover := st.Hover
	if hover != nil && (hover.Index < 0 || hover.Index >= len(subset)) {
		hover = nil
	}
	return plot.Build(subset, data.ColorDomain, m.Layout(st), t, hover)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Package tui is a terminal explorer for the scatter plot. It drives the same
// session state machine as the HTTP API and rasterises scenes to cells.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/okian/salaryscope/internal/domain/dataset"
	"github.com/okian/salaryscope/internal/domain/model"
	"github.com/okian/salaryscope/internal/domain/plot"
	"github.com/okian/salaryscope/internal/domain/session"
)

const (
	headerRows    = 3
	footerRows    = 4
	zoomStep      = 1.25
	panStepPX     = 4 * cellW
	suggestLimit  = 5
	sessionID     = "terminal"
	minCanvasCols = 20
	minCanvasRows = 6
)

type frameMsg struct{}

// Model is the bubbletea model of the explorer.
type Model struct {
	machine *session.Machine
	data    session.Data
	options []model.Selection
	selIdx  int

	st      session.State
	started bool
	tooltip *plot.Tooltip
	frames  []plot.Frame
	frame   int
	preview *plot.Transform

	search      textinput.Model
	searching   bool
	suggestions []string
	catalog     []string

	width, height int
	status        string
	err           error
	quitting      bool
}

// New returns an explorer over samples. The catalog fills the title list
// and def is the initial selection.
func New(machine *session.Machine, samples []model.JobSample, catalog []string, def model.Selection) Model {
	in := textinput.New()
	in.Placeholder = "search titles"
	in.CharLimit = 64

	opts := make([]model.Selection, 0, len(catalog)+1)
	opts = append(opts, model.AllTitles)
	for _, t := range catalog {
		opts = append(opts, model.Selection(t))
	}
	idx := 0
	for i, o := range opts {
		if o == def {
			idx = i
		}
	}

	return Model{
		machine: machine,
		data:    session.NewData(samples),
		options: opts,
		selIdx:  idx,
		catalog: catalog,
		search:  in,
	}
}

// State returns the current session state.
func (m Model) State() session.State { return m.st }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height), nil

	case frameMsg:
		return m.nextFrame()

	case tea.MouseMsg:
		return m.mouse(msg), nil

	case tea.KeyMsg:
		if m.searching {
			return m.searchKey(msg)
		}
		return m.key(msg)
	}
	return m, nil
}

func (m Model) surface() (int, int) {
	cols := max(m.width, minCanvasCols)
	rows := max(m.height-headerRows-footerRows, minCanvasRows)
	limit := m.machine.MaxSurface()
	cols = min(cols, limit/cellW)
	rows = min(rows, limit/cellH)
	return cols * cellW, rows * cellH
}

func (m Model) resize(width, height int) Model {
	m.width, m.height = width, height
	w, h := m.surface()
	if !m.started {
		st, err := m.machine.Start(sessionID, m.options[m.selIdx], w, h, m.data)
		if err != nil {
			m.err = err
			return m
		}
		m.st, m.started = st, true
		return m
	}
	return m.apply(model.Interaction{Kind: model.KindResize, Width: w, Height: h})
}

func (m Model) apply(in model.Interaction) Model {
	if !m.started {
		return m
	}
	st, out, err := m.machine.Apply(m.st, in, m.data)
	if err != nil {
		if errors.Is(err, session.ErrNotInteractive) {
			m.status = "nothing to explore for this selection"
			return m
		}
		m.err = err
		return m
	}
	m.st, m.err, m.status = st, nil, ""
	m.tooltip = out.Tooltip
	if in.Kind == model.KindReset {
		m.frames, m.frame = out.Frames, 0
	}
	return m
}

func (m Model) selectIndex(i int) Model {
	n := len(m.options)
	m.selIdx = ((i % n) + n) % n
	m.frames, m.preview = nil, nil
	return m.apply(model.Interaction{Kind: model.KindSelect, Selection: m.options[m.selIdx]})
}

func (m Model) centre() (float64, float64) {
	l := m.machine.Layout(m.st)
	return l.InnerWidth() / 2, l.InnerHeight() / 2
}

// pointer converts a terminal cell to plot-area pixels.
func (m Model) pointer(x, y int) (float64, float64) {
	l := m.machine.Layout(m.st)
	px := float64(x)*cellW + cellW/2 - l.Margins.Left
	py := float64(y-headerRows)*cellH + cellH/2 - l.Margins.Top
	return px, py
}

func (m Model) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "/":
		m.searching = true
		m.search.SetValue("")
		m.suggestions = nil
		cmd := m.search.Focus()
		return m, cmd
	case "]", "n", "tab":
		return m.selectIndex(m.selIdx + 1), nil
	case "[", "p", "shift+tab":
		return m.selectIndex(m.selIdx - 1), nil
	case "+", "=":
		cx, cy := m.centre()
		return m.apply(model.Interaction{Kind: model.KindZoom, Factor: zoomStep, PointerX: cx, PointerY: cy}), nil
	case "-", "_":
		cx, cy := m.centre()
		return m.apply(model.Interaction{Kind: model.KindZoom, Factor: 1 / zoomStep, PointerX: cx, PointerY: cy}), nil
	case "left", "h":
		return m.apply(model.Interaction{Kind: model.KindPan, DX: panStepPX}), nil
	case "right", "l":
		return m.apply(model.Interaction{Kind: model.KindPan, DX: -panStepPX}), nil
	case "up", "k":
		return m.apply(model.Interaction{Kind: model.KindPan, DY: panStepPX}), nil
	case "down", "j":
		return m.apply(model.Interaction{Kind: model.KindPan, DY: -panStepPX}), nil
	case "r":
		m = m.apply(model.Interaction{Kind: model.KindReset})
		return m.nextFrame()
	}
	return m, nil
}

func (m Model) searchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		if len(m.suggestions) == 0 {
			return m, nil
		}
		pick := model.Selection(m.suggestions[0])
		for i, o := range m.options {
			if o == pick {
				return m.selectIndex(i), nil
			}
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.suggestions = dataset.Suggest(m.catalog, m.search.Value(), suggestLimit)
	return m, cmd
}

func (m Model) mouse(msg tea.MouseMsg) Model {
	px, py := m.pointer(msg.X, msg.Y)
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		return m.apply(model.Interaction{Kind: model.KindZoom, Factor: zoomStep, PointerX: px, PointerY: py})
	case msg.Button == tea.MouseButtonWheelDown:
		return m.apply(model.Interaction{Kind: model.KindZoom, Factor: 1 / zoomStep, PointerX: px, PointerY: py})
	case msg.Action == tea.MouseActionMotion:
		if m.st.Phase != session.PhaseReady {
			return m
		}
		return m.apply(model.Interaction{Kind: model.KindHover, PointerX: px, PointerY: py})
	}
	return m
}

// nextFrame advances a running reset transition.
func (m Model) nextFrame() (tea.Model, tea.Cmd) {
	if m.frame >= len(m.frames) {
		m.frames, m.frame, m.preview = nil, 0, nil
		return m, nil
	}
	f := m.frames[m.frame]
	t := f.Transform
	m.preview = &t
	m.frame++
	if m.frame >= len(m.frames) {
		return m, tea.Tick(0, func(time.Time) tea.Msg { return frameMsg{} })
	}
	wait := time.Duration(m.frames[m.frame].AtMS-f.AtMS) * time.Millisecond
	return m, tea.Tick(wait, func(time.Time) tea.Msg { return frameMsg{} })
}

func (m Model) scene() plot.Scene {
	if m.preview != nil {
		return m.machine.Preview(m.st, m.data, *m.preview)
	}
	return m.machine.Scene(m.st, m.data)
}

// Canvas returns the current plot as unstyled text.
func (m Model) Canvas() string {
	return m.canvas().plain()
}

func (m Model) canvas() *canvas {
	w, h := m.surface()
	c := newCanvas(w/cellW, h/cellH)
	if m.started {
		c.draw(m.scene())
	}
	return c
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Salary vs Years of Experience"))
	b.WriteByte('\n')
	sel := string(m.options[m.selIdx])
	if sel == model.AllTitles {
		sel = "All"
	}
	fmt.Fprintf(&b, "Job title %s  %d/%d  zoom %.2fx\n",
		selectionStyle.Render(sel), m.selIdx+1, len(m.options), m.st.Transform.K)
	if m.searching {
		b.WriteString(m.search.View())
	}
	b.WriteByte('\n')

	b.WriteString(m.canvas().String())
	b.WriteByte('\n')

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
	case m.searching && len(m.suggestions) > 0:
		b.WriteString(suggestionStyle.Render(strings.Join(m.suggestions, " · ")))
	case m.tooltip != nil:
		b.WriteString(tooltipStyle.Render(m.tooltip.Text))
	case m.status != "":
		b.WriteString(helpStyle.Render(m.status))
	}
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render("[ ] titles · / search · +/- zoom · arrows pan · r reset · q quit"))
	return lipgloss.NewStyle().MaxWidth(max(m.width, minCanvasCols)).Render(b.String())
}

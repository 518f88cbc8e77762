// Package model contains domain models passed between layers.
package model

import "time"

// AllTitles is the selection sentinel meaning "no title filter".
const AllTitles = "ALL"

// RawRecord is one input row keyed by column name. Values are string,
// float64 (auto-typed numeric cell) or nil (empty cell).
type RawRecord map[string]any

// JobSample is a validated observation. Title is trimmed and non-empty,
// both numbers are finite and non-negative.
type JobSample struct {
	JobTitle        string  `json:"job_title"`
	YearsExperience float64 `json:"years_experience"`
	SalaryUSD       float64 `json:"salary_usd"`
}

// Selection is either AllTitles or an exact job title.
type Selection string

// IsAll reports whether the selection disables the title filter.
func (s Selection) IsAll() bool { return s == AllTitles || s == "" }

// Drop reasons reported by normalisation.
const (
	DropMissingTitle  = "missing_title"
	DropInvalidYears  = "invalid_years"
	DropInvalidSalary = "invalid_salary"
	DropNegative      = "negative_value"
	DropMalformed     = "malformed_row"
)

// Load outcomes.
const (
	OutcomeLoaded = "loaded"
	OutcomeEmpty  = "empty"
	OutcomeFailed = "failed"
)

// LoadReport describes the most recent dataset load.
type LoadReport struct {
	Source      string         `json:"source"`
	TitleColumn string         `json:"title_column"`
	RowsRead    int            `json:"rows_read"`
	RowsKept    int            `json:"rows_kept"`
	Dropped     map[string]int `json:"dropped"`
	Outcome     string         `json:"outcome"`
	Error       string         `json:"error,omitempty"`
	Duration    time.Duration  `json:"duration_ns"`
	LoadedAt    time.Time      `json:"loaded_at"`
}

// DroppedTotal sums the dropped counters.
func (r LoadReport) DroppedTotal() int {
	n := 0
	for _, c := range r.Dropped {
		n += c
	}
	return n
}

// InteractionKind names a discrete UI event.
type InteractionKind string

// Interaction kinds forwarded by the UI surfaces.
const (
	KindSelect InteractionKind = "select"
	KindZoom   InteractionKind = "zoom"
	KindPan    InteractionKind = "pan"
	KindReset  InteractionKind = "reset"
	KindResize InteractionKind = "resize"
	KindHover  InteractionKind = "hover"
	KindMove   InteractionKind = "move"
	KindLeave  InteractionKind = "leave"
)

// Valid reports whether k is a known kind.
func (k InteractionKind) Valid() bool {
	switch k {
	case KindSelect, KindZoom, KindPan, KindReset, KindResize, KindHover, KindMove, KindLeave:
		return true
	}
	return false
}

// Interaction is one UI event addressed to a viewer session.
// Pointer coordinates are relative to the inner plot area.
type Interaction struct {
	Kind      InteractionKind `json:"kind"`
	Selection Selection       `json:"selection,omitempty"`
	Factor    float64         `json:"factor,omitempty"`
	PointerX  float64         `json:"x,omitempty"`
	PointerY  float64         `json:"y,omitempty"`
	DX        float64         `json:"dx,omitempty"`
	DY        float64         `json:"dy,omitempty"`
	Width     int             `json:"width,omitempty"`
	Height    int             `json:"height,omitempty"`
}

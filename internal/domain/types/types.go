// Package types contains the request and response shapes shared by the HTTP
// API, the CLI and the terminal explorer.
package types

import (
	"github.com/okian/salaryscope/internal/domain/model"
	"github.com/okian/salaryscope/internal/domain/plot"
	"github.com/okian/salaryscope/internal/domain/session"
)

// Option is one entry of the title filter control.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// AllOptionLabel is the label of the no-filter option.
const AllOptionLabel = "All"

// Catalog populates the filter control.
type Catalog struct {
	Titles   []string `json:"titles"`
	Options  []Option `json:"options"`
	Default  string   `json:"default"`
	Fallback bool     `json:"fallback"`
	Version  uint64   `json:"version"`
}

// NewCatalog builds the option list: All first, then titles in order.
func NewCatalog(titles []string, def model.Selection, fallback bool, version uint64) Catalog {
	opts := make([]Option, 0, len(titles)+1)
	opts = append(opts, Option{Value: model.AllTitles, Label: AllOptionLabel})
	for _, t := range titles {
		opts = append(opts, Option{Value: t, Label: t})
	}
	return Catalog{
		Titles:   titles,
		Options:  opts,
		Default:  string(def),
		Fallback: fallback,
		Version:  version,
	}
}

// Suggestions answers a search box query.
type Suggestions struct {
	Query  string   `json:"query"`
	Titles []string `json:"titles"`
}

// Status describes the loaded dataset.
type Status struct {
	Report   model.LoadReport `json:"report"`
	Version  uint64           `json:"version"`
	Samples  int              `json:"samples"`
	Titles   int              `json:"titles"`
	Fallback bool             `json:"fallback"`
	Sessions int              `json:"sessions"`
}

// CreateSessionRequest opens a viewer session.
type CreateSessionRequest struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Selection string `json:"selection,omitempty"`
}

// SessionView is a session state plus any side results of the last event.
type SessionView struct {
	Session session.State `json:"session"`
	Frames  []plot.Frame  `json:"frames,omitempty"`
	Tooltip *plot.Tooltip `json:"tooltip,omitempty"`
}

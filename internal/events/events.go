// Package events fans dataset and session notifications out to SSE clients.
package events

import (
	"encoding/json"
	"time"
)

// Event types.
const (
	TypePing          = "ping"
	TypeDatasetLoaded = "dataset.loaded"
	TypeSessionEvict  = "session.evicted"
)

// Event is the envelope written to subscribers.
type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// MakeEvent marshals an envelope around data.
func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err == nil {
			raw = b
		}
	}
	b, _ := json.Marshal(Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	})
	return string(b)
}

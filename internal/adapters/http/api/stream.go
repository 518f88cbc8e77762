package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/salaryscope/internal/events"
)

const keepAliveInterval = 25 * time.Second

var errStreamingUnsupported = errors.New("streaming unsupported")

// StreamHandler pushes hub events to the browser over SSE.
type StreamHandler struct {
	hub *events.Hub
}

// NewStreamHandler creates a new stream handler.
func NewStreamHandler(hub *events.Hub) *StreamHandler {
	return &StreamHandler{hub: hub}
}

// HandleStream handles GET /api/events requests.
func (h *StreamHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, codeInternal, errStreamingUnsupported)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := h.hub.Subscribe()
	defer h.hub.Unsubscribe(ch)

	reqID := RequestIDFrom(r.Context())
	fmt.Fprintf(w, "event: message\ndata: %s\n\n", events.MakeEvent(reqID, events.TypePing, 1, nil))
	flusher.Flush()

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			fmt.Fprintf(w, "event: message\ndata: %s\n\n", events.MakeEvent(reqID, events.TypePing, 1, nil))
			flusher.Flush()
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: message\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

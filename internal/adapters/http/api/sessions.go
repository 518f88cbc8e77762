package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/okian/salaryscope/internal/adapters/render"
	"github.com/okian/salaryscope/internal/domain/model"
	"github.com/okian/salaryscope/internal/domain/plot"
	"github.com/okian/salaryscope/internal/domain/types"
)

const maxBodyBytes = 1 << 16

// SessionHandler serves viewer sessions and their plots.
type SessionHandler struct {
	deps SessionDependencies
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(deps SessionDependencies) *SessionHandler {
	return &SessionHandler{deps: deps}
}

// HandleCreate handles POST /api/sessions requests.
func (h *SessionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_session"
	var req types.CreateSessionRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, wrapKind(op, ErrBadRequest, err))
		return
	}
	if req.Width <= 0 || req.Height <= 0 {
		writeFailure(w, wrapKind(op, ErrBadRequest, errors.New("width and height must be positive")))
		return
	}
	view, err := h.deps.CreateSession(r.Context(), req)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// HandleGet handles GET /api/sessions/{id} requests.
func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	st, err := h.deps.Session(r.Context(), r.PathValue("id"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.SessionView{Session: st})
}

// HandleEvent handles POST /api/sessions/{id}/events requests.
func (h *SessionHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	const op = "api.session_event"
	var in model.Interaction
	if err := decodeBody(r, &in); err != nil {
		writeFailure(w, wrapKind(op, ErrBadRequest, err))
		return
	}
	if !in.Kind.Valid() {
		writeFailure(w, wrapKind(op, ErrBadRequest, fmt.Errorf("unknown kind %q", in.Kind)))
		return
	}
	view, err := h.deps.Dispatch(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleScene handles GET /api/sessions/{id}/scene requests.
func (h *SessionHandler) HandleScene(w http.ResponseWriter, r *http.Request) {
	sc, err := h.deps.Scene(r.Context(), r.PathValue("id"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

// HandlePlot returns a handler for GET /api/sessions/{id}/plot.{svg,png}.
// Optional k, x and y query parameters render a preview transform.
func (h *SessionHandler) HandlePlot(f render.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "api.plot"
		t, err := previewTransform(r)
		if err != nil {
			writeFailure(w, wrapKind(op, ErrBadRequest, err))
			return
		}
		var buf bytes.Buffer
		if err := h.deps.Render(r.Context(), &buf, r.PathValue("id"), f, t); err != nil {
			writeFailure(w, err)
			return
		}
		w.Header().Set("Content-Type", f.ContentType())
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}

func previewTransform(r *http.Request) (*plot.Transform, error) {
	q := r.URL.Query()
	if !q.Has("k") && !q.Has("x") && !q.Has("y") {
		return nil, nil
	}
	t := plot.Identity
	for _, p := range []struct {
		key string
		dst *float64
	}{{"k", &t.K}, {"x", &t.X}, {"y", &t.Y}} {
		raw := q.Get(p.key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", p.key, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("invalid %s: must be finite", p.key)
		}
		*p.dst = v
	}
	if t.K <= 0 {
		return nil, errors.New("k must be positive")
	}
	return &t, nil
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

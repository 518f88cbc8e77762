package api

import (
	"fmt"
	"net/http"
	"strconv"
)

const maxSuggestLimit = 50

// DatasetHandler serves the catalog, suggestions and load status.
type DatasetHandler struct {
	deps DatasetDependencies
}

// NewDatasetHandler creates a new dataset handler.
func NewDatasetHandler(deps DatasetDependencies) *DatasetHandler {
	return &DatasetHandler{deps: deps}
}

// HandleStatus handles GET /api/status requests.
func (h *DatasetHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Status(r.Context()))
}

// HandleCatalog handles GET /api/catalog requests.
func (h *DatasetHandler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Catalog(r.Context()))
}

// HandleSuggest handles GET /api/suggest?q=&limit= requests.
func (h *DatasetHandler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	const op = "api.suggest"
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxSuggestLimit {
			writeFailure(w, wrapKind(op, ErrBadRequest, fmt.Errorf("limit must be 1..%d", maxSuggestLimit)))
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, h.deps.Suggest(r.Context(), r.URL.Query().Get("q"), limit))
}

// HandleReload handles POST /api/dataset/reload requests. A failed fetch
// still answers 200: the report carries the outcome and the fallback
// catalog is in place.
func (h *DatasetHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Load(r.Context()))
}

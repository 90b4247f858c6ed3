package handler

import (
	"fmt"
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/status-bot/internal/integration"
)

// UpdateResponse is the body of POST /update.
type UpdateResponse struct {
	Status  string               `json:"status"`
	Message string               `json:"message,omitempty"`
	Results []integration.Result `json:"results"`
}

// PostUpdate handles POST /update.
// It runs every enabled integration in order; ?force=true skips the
// staleness gate. Any failed integration makes the response a 500 listing
// what failed, with the per-integration results still included.
func (s *Server) PostUpdate(w http.ResponseWriter, r *http.Request) {
	var force *bool
	if err := runtime.BindQueryParameter("form", true, false, "force", r.URL.Query(), &force); err != nil {
		requestError(w, fmt.Sprintf("invalid force: %v", err))
		return
	}

	results, err := s.updater.RunAll(r.Context(), s.integrations, integration.Options{Force: force != nil && *force})
	if results == nil {
		results = []integration.Result{}
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, UpdateResponse{Status: "error", Message: err.Error(), Results: results})
		return
	}
	writeJSON(w, http.StatusOK, UpdateResponse{Status: "ok", Results: results})
}

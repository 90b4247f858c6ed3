package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/status-bot/internal/domain"
	"github.com/pkordes/status-bot/internal/service"
)

// StatusResponse is the body of a successful POST /status or one entry of
// POST /update: {"status":"ok"} plus the decision.
type StatusResponse struct {
	Status string `json:"status"`
	domain.ComputedStatus
}

// statusRequest is the JSON body of POST /status. Expiration may be a string
// ("2h", "1700000000") or a number.
type statusRequest struct {
	Status     *string         `json:"status"`
	Emoji      *string         `json:"emoji"`
	Expiration json.RawMessage `json:"expiration"`
	Force      bool            `json:"force"`
}

// PostStatus handles POST /status.
// Parameters come from the JSON body when it is a non-empty object carrying at
// least one known field, and from the query string otherwise. ?force=true
// skips the staleness gate. A body cut short by the size limit is a 413.
func (s *Server) PostStatus(w http.ResponseWriter, r *http.Request) {
	req, err := adHocFromRequest(r)
	if err != nil {
		if errors.As(err, new(*http.MaxBytesError)) {
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: ErrorDetail{Code: "payload_too_large", Message: err.Error()}})
			return
		}
		requestError(w, err.Error())
		return
	}

	result, err := s.adhoc.Post(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok", ComputedStatus: result})
}

// adHocFromRequest reads the ad-hoc parameters from the body or query string.
func adHocFromRequest(r *http.Request) (service.AdHocRequest, error) {
	var force *bool
	if err := runtime.BindQueryParameter("form", true, false, "force", r.URL.Query(), &force); err != nil {
		return service.AdHocRequest{}, fmt.Errorf("invalid force: %w", err)
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return service.AdHocRequest{}, fmt.Errorf("reading body: %w", err)
	}
	if body := bytes.TrimSpace(raw); len(body) > 0 {
		var sr statusRequest
		if err := json.Unmarshal(body, &sr); err != nil {
			return service.AdHocRequest{}, fmt.Errorf("invalid JSON body: %w", err)
		}
		if sr.Status != nil || sr.Emoji != nil || len(sr.Expiration) > 0 || sr.Force {
			exp, err := expirationString(sr.Expiration)
			if err != nil {
				return service.AdHocRequest{}, err
			}
			return service.AdHocRequest{
				Status:     sr.Status,
				Emoji:      sr.Emoji,
				Expiration: exp,
				Force:      sr.Force || (force != nil && *force),
			}, nil
		}
	}

	req := service.AdHocRequest{Force: force != nil && *force}
	q := r.URL.Query()
	for name, dest := range map[string]**string{
		"status":     &req.Status,
		"emoji":      &req.Emoji,
		"expiration": &req.Expiration,
	} {
		if err := runtime.BindQueryParameter("form", true, false, name, q, dest); err != nil {
			return service.AdHocRequest{}, fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	return req, nil
}

// expirationString accepts a JSON string, number, or null.
func expirationString(raw json.RawMessage) (*string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, errors.New("expiration must be a string or a number")
	}
	if i, err := n.Int64(); err == nil {
		v := strconv.FormatInt(i, 10)
		return &v, nil
	}
	v := n.String()
	return &v, nil
}

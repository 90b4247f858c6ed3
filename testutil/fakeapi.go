package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/pkordes/status-bot/internal/domain"
)

// PostedStatus is one status received by a FakeStatusAPI.
type PostedStatus struct {
	Text       string
	Emoji      string
	Expiration int64
}

// FakeStatusAPI is an httptest server speaking the status API:
// GET /status and POST /status?text=&emoji=&expiration=.
// Requests without the expected x-api-key get 401.
type FakeStatusAPI struct {
	URL string

	apiKey string
	mu     sync.Mutex
	data   map[string]any
	posts  []PostedStatus
	fail   map[string]bool
}

// NewFakeStatusAPI starts a FakeStatusAPI whose current status never expires.
// The server is closed when the test finishes.
func NewFakeStatusAPI(t *testing.T, apiKey string) *FakeStatusAPI {
	t.Helper()
	f := &FakeStatusAPI{apiKey: apiKey, fail: map[string]bool{}}
	f.SetCurrent("Old status", ":rocket:", 0)

	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)
	f.URL = srv.URL
	return f
}

// SetCurrent replaces the status returned by GET /status.
func (f *FakeStatusAPI) SetCurrent(text, emoji string, expiration int64) {
	f.SetRaw(map[string]any{"status_text": text, "status_emoji": emoji, "status_expiration": expiration})
}

// SetRaw replaces the "data" object returned by GET /status verbatim.
// A nil map makes the response carry no data at all.
func (f *FakeStatusAPI) SetRaw(data map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = data
}

// Fail makes requests with method answer 500 while on is true.
func (f *FakeStatusAPI) Fail(method string, on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[method] = on
}

// Posts returns every status posted so far, oldest first.
func (f *FakeStatusAPI) Posts() []PostedStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]PostedStatus(nil), f.posts...)
}

func (f *FakeStatusAPI) serve(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/status" {
		http.NotFound(w, r)
		return
	}
	if r.Header.Get("x-api-key") != f.apiKey {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"status": "error", "message": "bad key"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[r.Method] {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"status": "error", "message": "boom"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		body := map[string]any{"status": "ok"}
		if f.data != nil {
			body["data"] = f.data
		}
		writeJSON(w, http.StatusOK, body)
	case http.MethodPost:
		q := r.URL.Query()
		exp, _ := strconv.ParseInt(q.Get("expiration"), 10, 64)
		p := PostedStatus{Text: q.Get("text"), Emoji: q.Get("emoji"), Expiration: exp}
		f.posts = append(f.posts, p)
		f.data = map[string]any{"status_text": p.Text, "status_emoji": p.Emoji, "status_expiration": p.Expiration}
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// FakeTripAPI is an httptest server speaking the trip API: GET /current_trip.
type FakeTripAPI struct {
	URL string

	apiKey string
	mu     sync.Mutex
	trip   *domain.TripSnapshot
	fail   bool
}

// NewFakeTripAPI starts a FakeTripAPI with no active trip.
// The server is closed when the test finishes.
func NewFakeTripAPI(t *testing.T, apiKey string) *FakeTripAPI {
	t.Helper()
	f := &FakeTripAPI{apiKey: apiKey}

	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)
	f.URL = srv.URL
	return f
}

// SetTrip replaces the active trip; nil means none.
func (f *FakeTripAPI) SetTrip(trip *domain.TripSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trip = trip
}

// Fail makes GET /current_trip answer 500 while on is true.
func (f *FakeTripAPI) Fail(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = on
}

func (f *FakeTripAPI) serve(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/current_trip" || r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	if r.Header.Get("x-api-key") != f.apiKey {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"status": "error"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		writeJSON(w, http.StatusBadGateway, map[string]any{"status": "error", "message": "tripit down"})
		return
	}
	trip := any(map[string]any{})
	if f.trip != nil {
		trip = f.trip
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "trip": trip})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

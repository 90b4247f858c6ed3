package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/status-bot/internal/domain"
	"github.com/pkordes/status-bot/internal/handler"
	"github.com/pkordes/status-bot/internal/integration"
	"github.com/pkordes/status-bot/internal/service"
)

// mockAdHoc is a test double for handler.AdHocPoster.
// Set only the method fields your test needs.
type mockAdHoc struct {
	post func(ctx context.Context, req service.AdHocRequest) (domain.ComputedStatus, error)
}

func (m *mockAdHoc) Post(ctx context.Context, req service.AdHocRequest) (domain.ComputedStatus, error) {
	return m.post(ctx, req)
}

type mockUpdater struct {
	runAll func(ctx context.Context, names []string, opts integration.Options) ([]integration.Result, error)
}

func (m *mockUpdater) RunAll(ctx context.Context, names []string, opts integration.Options) ([]integration.Result, error) {
	return m.runAll(ctx, names, opts)
}

type mockHistory struct {
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.StatusUpdate, int64, error)
	get       func(ctx context.Context, id uuid.UUID) (domain.StatusUpdate, error)
}

func (m *mockHistory) Get(ctx context.Context, id uuid.UUID) (domain.StatusUpdate, error) {
	return m.get(ctx, id)
}

func (m *mockHistory) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.StatusUpdate, int64, error) {
	return m.listPaged(ctx, p)
}

// compile-time checks: mocks must satisfy the handler interfaces.
var (
	_ handler.AdHocPoster   = (*mockAdHoc)(nil)
	_ handler.Updater       = (*mockUpdater)(nil)
	_ handler.HistoryLister = (*mockHistory)(nil)
)

// ---- helpers ---------------------------------------------------------------

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, body *bytes.Buffer) handler.ErrorDetail {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp.Error
}

// capturingAdHoc records the request it receives and returns result.
func capturingAdHoc(got *service.AdHocRequest, result domain.ComputedStatus) *mockAdHoc {
	return &mockAdHoc{post: func(_ context.Context, req service.AdHocRequest) (domain.ComputedStatus, error) {
		*got = req
		return result, nil
	}}
}

func statusHandler(adhoc handler.AdHocPoster) http.Handler {
	return handler.NewServer(adhoc, nil, nil, nil).Routes()
}

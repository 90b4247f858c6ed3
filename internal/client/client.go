// Package client talks to the status and trip APIs over HTTP.
// Both APIs authenticate with an x-api-key header and answer JSON.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkordes/status-bot/internal/domain"
)

// maxErrorBody bounds how much of a failed response body is kept in errors.
const maxErrorBody = 512

// base holds what both API clients share.
type base struct {
	url    string
	apiKey string
	http   *http.Client
}

func newBase(url, apiKey string, timeout time.Duration) base {
	return base{url: url, apiKey: apiKey, http: &http.Client{Timeout: timeout}}
}

// do sends req with the API key and returns the response when it is 200.
// Any other status, and any transport failure, is domain.ErrTransport.
func (b base) do(ctx context.Context, method, path string, query map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, b.url+"/"+path, nil)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		q := req.URL.Query()
		for k, v := range query {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}
	req.Header.Set("x-api-key", b.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := b.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", domain.ErrTransport, method, path, err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: %s %s: status %d: %s", domain.ErrTransport, method, path, resp.StatusCode, body)
	}
	return resp, nil
}

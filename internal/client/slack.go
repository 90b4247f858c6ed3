package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/pkordes/status-bot/internal/domain"
)

// SlackClient reads and writes the user's status through the status API.
type SlackClient struct {
	base
}

// NewSlackClient constructs a SlackClient for the API rooted at url.
func NewSlackClient(url, apiKey string, timeout time.Duration) *SlackClient {
	return &SlackClient{base: newBase(url, apiKey, timeout)}
}

type statusEnvelope struct {
	Data *statusPayload `json:"data"`
}

type statusPayload struct {
	Text       string `json:"status_text"`
	Emoji      string `json:"status_emoji"`
	Expiration *int64 `json:"status_expiration"`
}

// GetStatus returns the published status.
// Returns domain.ErrMissingStatus if the API fails or the payload has no
// data or no status_expiration.
func (c *SlackClient) GetStatus(ctx context.Context) (*domain.ExistingStatus, error) {
	resp, err := c.do(ctx, http.MethodGet, "status", nil)
	if err != nil {
		return nil, fmt.Errorf("client.SlackClient.GetStatus: %w: %w", domain.ErrMissingStatus, err)
	}
	defer resp.Body.Close()

	var env statusEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("client.SlackClient.GetStatus: %w: decode: %w", domain.ErrMissingStatus, err)
	}
	if env.Data == nil {
		return nil, fmt.Errorf("client.SlackClient.GetStatus: %w: response has no data", domain.ErrMissingStatus)
	}
	if env.Data.Expiration == nil {
		return nil, fmt.Errorf("client.SlackClient.GetStatus: %w: response has no status_expiration", domain.ErrMissingStatus)
	}
	return &domain.ExistingStatus{
		Text:       env.Data.Text,
		Emoji:      env.Data.Emoji,
		Expiration: *env.Data.Expiration,
	}, nil
}

// PostStatus publishes text and emoji, expiring at expiration (0 = never).
// Returns domain.ErrTransport on any non-200 response.
func (c *SlackClient) PostStatus(ctx context.Context, text, emoji string, expiration int64) error {
	if text == "" && emoji == "" {
		return errors.New("client.SlackClient.PostStatus: refusing to post an empty status")
	}
	resp, err := c.do(ctx, http.MethodPost, "status", map[string]string{
		"text":       text,
		"emoji":      emoji,
		"expiration": strconv.FormatInt(expiration, 10),
	})
	if err != nil {
		return fmt.Errorf("client.SlackClient.PostStatus: %w", err)
	}
	return resp.Body.Close()
}

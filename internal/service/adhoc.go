package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/status-bot/internal/clock"
	"github.com/pkordes/status-bot/internal/domain"
)

// AdHocSource is the history source name for ad-hoc requests.
const AdHocSource = "ad-hoc"

// AdHocRequest is a caller-specified status. Status and Emoji are required.
// Expiration is an expression accepted by ResolveExpiration.
type AdHocRequest struct {
	Status     *string
	Emoji      *string
	Expiration *string
	Force      bool
}

// AdHocService publishes caller-specified statuses, bypassing trip-derived
// computation and the override rules.
type AdHocService struct {
	status    StatusReader
	publisher *Publisher
	clock     clock.Clock
}

// NewAdHocService constructs an AdHocService.
func NewAdHocService(status StatusReader, publisher *Publisher, clk clock.Clock) *AdHocService {
	return &AdHocService{status: status, publisher: publisher, clock: clk}
}

// Post validates req, resolves its expiration, applies the staleness gate
// unless req.Force is set, and publishes.
// Returns domain.ErrValidation for missing or malformed input.
func (s *AdHocService) Post(ctx context.Context, req AdHocRequest) (domain.ComputedStatus, error) {
	var missing []string
	if isBlank(req.Status) {
		missing = append(missing, "status")
	}
	if isBlank(req.Emoji) {
		missing = append(missing, "emoji")
	}
	if len(missing) > 0 {
		return domain.ComputedStatus{}, fmt.Errorf("%w: please provide: %s", domain.ErrValidation, strings.Join(missing, ", "))
	}

	now := s.clock.Now()
	expiration, err := ResolveExpiration(now, req.Expiration)
	if err != nil {
		return domain.ComputedStatus{}, fmt.Errorf("service.AdHocService.Post: %w", err)
	}

	if !req.Force {
		existing, err := s.status.GetStatus(ctx)
		if err != nil {
			return domain.ComputedStatus{}, fmt.Errorf("service.AdHocService.Post: %w", err)
		}
		ok, err := ShouldUpdate(now, existing, false)
		if err != nil {
			return domain.ComputedStatus{}, fmt.Errorf("service.AdHocService.Post: %w", err)
		}
		if !ok {
			return domain.ComputedStatus{Reason: domain.ReasonNotExpired}, nil
		}
	}

	result := domain.ComputedStatus{
		Text:       *req.Status,
		Emoji:      *req.Emoji,
		Expiration: expiration,
		Updated:    true,
		Reason:     domain.ReasonAdHoc,
	}
	if err := s.publisher.Publish(ctx, AdHocSource, result); err != nil {
		return domain.ComputedStatus{}, fmt.Errorf("service.AdHocService.Post: %w", err)
	}
	return result, nil
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

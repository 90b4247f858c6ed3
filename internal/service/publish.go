package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkordes/status-bot/internal/domain"
	"github.com/pkordes/status-bot/internal/repo"
)

// Publisher posts decided statuses and records every decision in history.
type Publisher struct {
	writer  StatusWriter
	history repo.StatusUpdateRepo
}

// NewPublisher constructs a Publisher. history may be nil to skip recording.
func NewPublisher(w StatusWriter, history repo.StatusUpdateRepo) *Publisher {
	return &Publisher{writer: w, history: history}
}

// Publish posts s when s.Updated, then records it under source. A failed
// post is returned as a *domain.DecisionError at StagePublish. A failed
// history write is logged and does not fail the publish.
func (p *Publisher) Publish(ctx context.Context, source string, s domain.ComputedStatus) error {
	if s.Updated {
		slog.InfoContext(ctx, "shipping status", "source", source, "emoji", s.Emoji, "text", s.Text)
		if err := p.writer.PostStatus(ctx, s.Text, s.Emoji, s.Expiration); err != nil {
			return &domain.DecisionError{Stage: domain.StagePublish, TripName: s.TripName, Err: err}
		}
	}
	if p.history == nil {
		return nil
	}
	if _, err := p.history.Record(ctx, domain.NewStatusUpdate(source, s)); err != nil {
		slog.WarnContext(ctx, "failed to record status decision", "source", source, "error", fmt.Errorf("service.Publisher.Publish: %w", err))
	}
	return nil
}

package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/status-bot/internal/domain"
	"github.com/pkordes/status-bot/internal/repo"
)

// HistoryService lists recorded status decisions.
type HistoryService struct {
	repo repo.StatusUpdateRepo
}

// NewHistoryService constructs a HistoryService backed by the provided repo.
func NewHistoryService(r repo.StatusUpdateRepo) *HistoryService {
	return &HistoryService{repo: r}
}

// ListPaged returns one page of decisions, newest first, and the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *HistoryService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.StatusUpdate, int64, error) {
	updates, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.HistoryService.ListPaged: %w", err)
	}
	if updates == nil {
		return []domain.StatusUpdate{}, total, nil
	}
	return updates, total, nil
}

// Get returns a single decision. Wraps domain.ErrNotFound when id is unknown.
func (s *HistoryService) Get(ctx context.Context, id uuid.UUID) (domain.StatusUpdate, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.StatusUpdate{}, fmt.Errorf("service.HistoryService.Get: %w", err)
	}
	return u, nil
}

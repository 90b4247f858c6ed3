package repo

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/status-bot/internal/domain"
)

// memoryStatusUpdateRepo keeps decisions in process memory. It is used when
// no DATABASE_URL is configured.
type memoryStatusUpdateRepo struct {
	mu      sync.RWMutex
	updates []domain.StatusUpdate
	now     func() time.Time
}

// NewMemoryStatusUpdateRepo constructs an in-memory StatusUpdateRepo.
func NewMemoryStatusUpdateRepo() StatusUpdateRepo {
	return &memoryStatusUpdateRepo{now: func() time.Time { return time.Now().UTC() }}
}

func (r *memoryStatusUpdateRepo) Record(_ context.Context, u domain.StatusUpdate) (domain.StatusUpdate, error) {
	u.ID = uuid.New()
	u.CreatedAt = r.now()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, u)
	return u, nil
}

func (r *memoryStatusUpdateRepo) GetByID(_ context.Context, id uuid.UUID) (domain.StatusUpdate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.updates {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.StatusUpdate{}, fmt.Errorf("repo.memoryStatusUpdateRepo.GetByID: %w", domain.ErrNotFound)
}

func (r *memoryStatusUpdateRepo) ListPaged(_ context.Context, p domain.PaginationParams) ([]domain.StatusUpdate, int64, error) {
	r.mu.RLock()
	newestFirst := slices.Clone(r.updates)
	r.mu.RUnlock()
	slices.Reverse(newestFirst)

	total := int64(len(newestFirst))
	start := max(0, min(p.Offset(), len(newestFirst)))
	end := min(start+p.Limit, len(newestFirst))
	return newestFirst[start:end], total, nil
}

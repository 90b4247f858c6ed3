package service

import (
	"time"

	"github.com/pkordes/status-bot/internal/domain"
)

// ShouldUpdate is the staleness gate. It allows an update when force is set
// or when the existing status has expired. An expiration of 0 ("never")
// is always stale, so a never-expiring status is always eligible for
// replacement.
//
// Returns domain.ErrMissingStatus when existing is nil, even if forced.
func ShouldUpdate(now time.Time, existing *domain.ExistingStatus, force bool) (bool, error) {
	if existing == nil {
		return false, domain.ErrMissingStatus
	}
	if force {
		return true, nil
	}
	return existing.Expiration <= now.Unix(), nil
}

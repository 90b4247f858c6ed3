package service_test

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/status-bot/internal/domain"
	"github.com/pkordes/status-bot/internal/service"
)

func TestShouldUpdate(t *testing.T) {
	now := time.Unix(1_750_000_000, 0)
	tests := []struct {
		name       string
		expiration int64
		force      bool
		want       bool
	}{
		{"never expires", 0, false, true},
		{"expired", now.Unix() - 1, false, true},
		{"expires right now", now.Unix(), false, true},
		{"not expired yet", now.Unix() + 1, false, false},
		{"forced over unexpired", now.Unix() + 3600, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.ShouldUpdate(now, &domain.ExistingStatus{Expiration: tt.expiration}, tt.force)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShouldUpdate_MissingStatus(t *testing.T) {
	for _, force := range []bool{false, true} {
		_, err := service.ShouldUpdate(time.Now(), nil, force)
		assert.ErrorIs(t, err, domain.ErrMissingStatus)
	}
}

// Property: the gate opens exactly when expiration <= now, and always when forced.
func TestShouldUpdate_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("gate opens iff expiration <= now", prop.ForAll(
		func(nowSec, expiration int64) bool {
			ok, err := service.ShouldUpdate(time.Unix(nowSec, 0), &domain.ExistingStatus{Expiration: expiration}, false)
			return err == nil && ok == (expiration <= nowSec)
		},
		gen.Int64Range(1_000_000_000, 3_000_000_000),
		gen.Int64Range(0, 3_000_000_000),
	))

	properties.Property("force always opens the gate", prop.ForAll(
		func(nowSec, expiration int64) bool {
			ok, err := service.ShouldUpdate(time.Unix(nowSec, 0), &domain.ExistingStatus{Expiration: expiration}, true)
			return err == nil && ok
		},
		gen.Int64Range(1_000_000_000, 3_000_000_000),
		gen.Int64Range(0, 3_000_000_000),
	))

	properties.TestingRun(t)
}

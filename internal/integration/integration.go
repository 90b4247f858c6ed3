// Package integration runs the status sources a deployment enables.
// Each source is an Integration; the Registry resolves ENABLED_INTEGRATIONS
// names to integrations at startup and runs them in order.
package integration

import (
	"context"

	"github.com/pkordes/status-bot/internal/domain"
	"github.com/pkordes/status-bot/internal/service"
)

// Options tune one update run.
type Options struct {
	// Force skips the staleness gate.
	Force bool
}

// Integration computes and publishes a status from one source.
type Integration interface {
	Name() string
	Update(ctx context.Context, opts Options) (domain.ComputedStatus, error)
}

// Decider is the decision engine as seen by integrations.
type Decider interface {
	Decide(ctx context.Context, trips service.TripSource, force bool) (domain.ComputedStatus, error)
}

// Publisher posts a decided status and records it.
type Publisher interface {
	Publish(ctx context.Context, source string, s domain.ComputedStatus) error
}

// engineIntegration is an Integration backed by the decision engine.
type engineIntegration struct {
	name      string
	trips     service.TripSource
	decider   Decider
	publisher Publisher
}

// NewTripIt returns the "TripIt" integration: statuses derived from today's
// trip, falling back to the default status when none is active.
func NewTripIt(trips service.TripSource, decider Decider, publisher Publisher) Integration {
	return &engineIntegration{name: "TripIt", trips: trips, decider: decider, publisher: publisher}
}

// NewDefault returns the "Default" integration: the default status with the
// weekend and availability rules applied, never consulting a trip source.
func NewDefault(decider Decider, publisher Publisher) Integration {
	return &engineIntegration{name: "Default", decider: decider, publisher: publisher}
}

func (i *engineIntegration) Name() string { return i.name }

func (i *engineIntegration) Update(ctx context.Context, opts Options) (domain.ComputedStatus, error) {
	s, err := i.decider.Decide(ctx, i.trips, opts.Force)
	if err != nil {
		return domain.ComputedStatus{}, err
	}
	if err := i.publisher.Publish(ctx, i.name, s); err != nil {
		return domain.ComputedStatus{}, err
	}
	return s, nil
}

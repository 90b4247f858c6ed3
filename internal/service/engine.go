// Package service contains the status decision logic.
// Services validate inputs, enforce the update policy, and orchestrate
// collaborator calls. No HTTP or SQL lives here: services depend on small
// interfaces that the client and repo packages satisfy.
package service

import (
	"context"
	"errors"

	"github.com/pkordes/status-bot/internal/clock"
	"github.com/pkordes/status-bot/internal/domain"
)

// StatusReader reads the currently published status.
type StatusReader interface {
	GetStatus(ctx context.Context) (*domain.ExistingStatus, error)
}

// StatusWriter publishes a status.
type StatusWriter interface {
	PostStatus(ctx context.Context, text, emoji string, expiration int64) error
}

// TripSource returns today's trip, or nil when no trip is active.
type TripSource interface {
	CurrentTrip(ctx context.Context) (*domain.TripSnapshot, error)
}

// DefaultStatus is posted when no trip is active.
type DefaultStatus struct {
	Text  string
	Emoji string
}

// Engine decides whether and how the published status should change.
// It holds no per-decision state; one Engine serves concurrent callers.
type Engine struct {
	status   StatusReader
	rules    *RuleSet
	cities   CityEmojiLookup
	defaults DefaultStatus
	clock    clock.Clock
}

// NewEngine constructs an Engine. rules must be non-nil; cities may be nil,
// in which case every city gets TravelingEmoji.
func NewEngine(status StatusReader, rules *RuleSet, cities CityEmojiLookup, defaults DefaultStatus, clk clock.Clock) *Engine {
	return &Engine{status: status, rules: rules, cities: cities, defaults: defaults, clock: clk}
}

// Decide runs one decision cycle:
//
//	read existing status → staleness gate → fetch trip →
//	classify and render (or default) → overrides
//
// trips may be nil, meaning "never on a trip". A gated cycle returns
// Updated=false with ReasonNotExpired and performs no further I/O. Every
// failure is returned as a *domain.DecisionError naming the stage.
func (e *Engine) Decide(ctx context.Context, trips TripSource, force bool) (domain.ComputedStatus, error) {
	now := e.clock.Now()

	existing, err := e.status.GetStatus(ctx)
	if err != nil {
		return domain.ComputedStatus{}, &domain.DecisionError{Stage: domain.StageReadStatus, Err: err}
	}
	ok, err := ShouldUpdate(now, existing, force)
	if err != nil {
		return domain.ComputedStatus{}, &domain.DecisionError{Stage: domain.StageReadStatus, Err: err}
	}
	if !ok {
		return domain.ComputedStatus{Reason: domain.ReasonNotExpired}, nil
	}

	var trip *domain.TripSnapshot
	if trips != nil {
		if trip, err = trips.CurrentTrip(ctx); err != nil {
			return domain.ComputedStatus{}, &domain.DecisionError{Stage: domain.StageFetchTrip, Err: err}
		}
	}

	result := domain.ComputedStatus{
		Text:    e.defaults.Text,
		Emoji:   e.defaults.Emoji,
		Updated: true,
		Reason:  domain.ReasonDefault,
	}
	if trip != nil {
		result.TripName = trip.TripName
		rendered, err := e.rules.ClassifyAndRender(trip, e.cities)
		if err != nil {
			stage := domain.StageRender
			if errors.Is(err, domain.ErrInvalidTripName) {
				stage = domain.StageClassify
			}
			return domain.ComputedStatus{}, &domain.DecisionError{Stage: stage, TripName: trip.TripName, Err: err}
		}
		result.Text, result.Emoji, result.Reason = rendered.Text, rendered.Emoji, domain.ReasonTemplated
	}

	text, emoji, reason := ApplyOverrides(now, result.Text, result.Emoji)
	result.Text, result.Emoji = text, emoji
	if reason != "" {
		result.Reason = reason
	}
	return result, nil
}

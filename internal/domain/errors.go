package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when caller input is missing
// or malformed (e.g. an ad-hoc request without a status, an unparseable
// expiration expression).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrMissingStatus is returned when the currently published status could not
// be read, or was read without an expiration field. The staleness gate cannot
// run without it.
var ErrMissingStatus = errors.New("unable to get existing status")

// ErrInvalidTripName is returned when an active trip's name matches none of
// the configured status template rules. It is a configuration problem the
// user has to fix upstream, so it is never defaulted away.
var ErrInvalidTripName = errors.New("the name for your current trip is invalid")

// ErrRender is returned when a status or emoji template references a variable
// that is unknown or unavailable for the current trip.
var ErrRender = errors.New("unable to render status template")

// ErrTransport is returned by the HTTP collaborators when the remote API
// answers with a non-success response or cannot be reached.
// Handlers should map this to HTTP 502.
var ErrTransport = errors.New("transport error")

// Stage names the step of a decision cycle that failed.
type Stage string

const (
	StageReadStatus Stage = "read_status"
	StageFetchTrip  Stage = "fetch_trip"
	StageClassify   Stage = "classify"
	StageRender     Stage = "render"
	StagePublish    Stage = "publish"
)

// DecisionError wraps a failure of one decision cycle with enough context for
// the caller to log it and skip the cycle.
type DecisionError struct {
	Stage    Stage
	TripName string
	Err      error
}

func (e *DecisionError) Error() string {
	if e.TripName == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s (trip %q): %v", e.Stage, e.TripName, e.Err)
}

func (e *DecisionError) Unwrap() error { return e.Err }

package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExistingStatus is the status currently published on the messaging platform.
// Expiration is in epoch seconds; 0 means the status never expires.
type ExistingStatus struct {
	Text       string
	Emoji      string
	Expiration int64
}

// Reason explains a decision. Policy outcomes such as "not expired yet" are
// reasons, not errors.
type Reason string

const (
	ReasonNotExpired Reason = "not expired yet"
	ReasonDefault    Reason = "no trip found, used default"
	ReasonTemplated  Reason = "templated"
	ReasonVacation   Reason = "vacation"
	ReasonWeekend    Reason = "weekend override"
	ReasonLimited    Reason = "limited availability"
	ReasonAdHoc      Reason = "ad-hoc"
)

// ComputedStatus is the outcome of one decision cycle. When Updated is false
// the remaining fields other than Reason are zero and nothing is published.
type ComputedStatus struct {
	Text       string `json:"text,omitempty"`
	Emoji      string `json:"emoji,omitempty"`
	Expiration int64  `json:"expiration"`
	Updated    bool   `json:"updated"`
	Reason     Reason `json:"reason,omitempty"`
	TripName   string `json:"trip_name,omitempty"`
}

// StatusUpdate is one recorded decision, kept for the history endpoint.
type StatusUpdate struct {
	ID          uuid.UUID `json:"id"`
	Integration string    `json:"integration"`
	Text        string    `json:"text"`
	Emoji       string    `json:"emoji"`
	Expiration  int64     `json:"expiration"`
	Updated     bool      `json:"updated"`
	Reason      Reason    `json:"reason"`
	TripName    string    `json:"trip_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewStatusUpdate builds a history record for a decision made by integration.
func NewStatusUpdate(integration string, s ComputedStatus) StatusUpdate {
	return StatusUpdate{
		Integration: integration,
		Text:        s.Text,
		Emoji:       s.Emoji,
		Expiration:  s.Expiration,
		Updated:     s.Updated,
		Reason:      s.Reason,
		TripName:    s.TripName,
	}
}

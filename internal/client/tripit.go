package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkordes/status-bot/internal/domain"
)

// TripItClient fetches today's trip from the trip API.
type TripItClient struct {
	base
}

// NewTripItClient constructs a TripItClient for the API rooted at url.
func NewTripItClient(url, apiKey string, timeout time.Duration) *TripItClient {
	return &TripItClient{base: newBase(url, apiKey, timeout)}
}

type tripEnvelope struct {
	Trip *tripPayload `json:"trip"`
}

type tripPayload struct {
	TripName     string          `json:"trip_name"`
	CurrentCity  *string         `json:"current_city"`
	TodaysFlight json.RawMessage `json:"todays_flight"`
}

// CurrentTrip returns today's trip, or nil when none is active (a missing or
// empty "trip" object, or an empty trip name).
// Returns domain.ErrTransport on any non-200 response.
func (c *TripItClient) CurrentTrip(ctx context.Context) (*domain.TripSnapshot, error) {
	resp, err := c.do(ctx, http.MethodGet, "current_trip", nil)
	if err != nil {
		return nil, fmt.Errorf("client.TripItClient.CurrentTrip: %w", err)
	}
	defer resp.Body.Close()

	var env tripEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("client.TripItClient.CurrentTrip: %w: decode: %w", domain.ErrTransport, err)
	}
	if env.Trip == nil || env.Trip.TripName == "" {
		return nil, nil
	}

	trip := &domain.TripSnapshot{TripName: env.Trip.TripName}
	if env.Trip.CurrentCity != nil {
		trip.CurrentCity = *env.Trip.CurrentCity
	}
	if trip.TodaysFlight, err = decodeFlight(env.Trip.TodaysFlight); err != nil {
		return nil, fmt.Errorf("client.TripItClient.CurrentTrip: %w: todays_flight: %w", domain.ErrTransport, err)
	}
	return trip, nil
}

// decodeFlight accepts null, an empty object, or an empty list as "no
// flight", and an object as today's flight.
func decodeFlight(raw json.RawMessage) (*domain.Flight, error) {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "{}", "[]":
		return nil, nil
	}
	var f domain.Flight
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Package domain contains the core data types for the status bot.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (client, repo, service, handler).
package domain

// Flight is the leg the traveller is on today.
type Flight struct {
	FlightNumber string `json:"flight_number"`
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
}

// TripSnapshot is a point-in-time record of the traveller's trip for today.
// No active trip is represented by a nil *TripSnapshot, never by an empty
// TripName.
type TripSnapshot struct {
	TripName     string  `json:"trip_name"`
	CurrentCity  string  `json:"current_city,omitempty"`
	TodaysFlight *Flight `json:"todays_flight,omitempty"`
}

// Flying reports whether the snapshot carries a non-empty flight for today.
func (t *TripSnapshot) Flying() bool {
	if t == nil || t.TodaysFlight == nil {
		return false
	}
	f := t.TodaysFlight
	return f.FlightNumber != "" || f.Origin != "" || f.Destination != ""
}

// FlightInfo formats today's flight as "<number>: <origin>-<destination>".
// Returns "" when not flying.
func (t *TripSnapshot) FlightInfo() string {
	if !t.Flying() {
		return ""
	}
	f := t.TodaysFlight
	return f.FlightNumber + ": " + f.Origin + "-" + f.Destination
}

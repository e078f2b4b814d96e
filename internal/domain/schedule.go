package domain

import "fmt"

type FlightStatus string

const (
	FlightStatusScheduled FlightStatus = "scheduled"
	FlightStatusInAir     FlightStatus = "in-air"
	FlightStatusArrived   FlightStatus = "arrived"
	FlightStatusDelayed   FlightStatus = "delayed"
	FlightStatusCancelled FlightStatus = "cancelled"
)

func (s FlightStatus) Valid() bool {
	switch s {
	case FlightStatusScheduled, FlightStatusInAir, FlightStatusArrived, FlightStatusDelayed, FlightStatusCancelled:
		return true
	}
	return false
}

func ParseFlightStatus(s string) (FlightStatus, error) {
	status := FlightStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("%w: flight status %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// ScheduledFlight is an operated flight as managed from the back office.
// Departure and Arrival are labels such as "New York (JFK)".
type ScheduledFlight struct {
	ID            string       `json:"id" yaml:"id"`
	FlightNumber  string       `json:"flight_number" yaml:"flight_number"`
	Airline       string       `json:"airline" yaml:"airline"`
	Departure     string       `json:"departure" yaml:"departure"`
	DepartureTime string       `json:"departure_time" yaml:"departure_time"`
	Arrival       string       `json:"arrival" yaml:"arrival"`
	ArrivalTime   string       `json:"arrival_time" yaml:"arrival_time"`
	Status        FlightStatus `json:"status" yaml:"status"`
	Price         float64      `json:"price" yaml:"price"`
	Domestic      bool         `json:"domestic" yaml:"domestic"`
}

func (f ScheduledFlight) EntityID() string { return f.ID }

func (f ScheduledFlight) WithEntityID(id string) ScheduledFlight {
	f.ID = id
	return f
}

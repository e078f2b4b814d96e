package domain

import "fmt"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// BookingStatuses lists every status in display order.
var BookingStatuses = []BookingStatus{
	BookingStatusConfirmed,
	BookingStatusPending,
	BookingStatusCancelled,
	BookingStatusCompleted,
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusConfirmed, BookingStatusPending, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("%w: booking status %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// Booking is the back-office view of a reservation.
type Booking struct {
	ID           string        `json:"id" yaml:"id"`
	Passenger    string        `json:"passenger" yaml:"passenger"`
	FlightNumber string        `json:"flight_number" yaml:"flight_number"`
	From         string        `json:"from" yaml:"from"`
	To           string        `json:"to" yaml:"to"`
	Date         string        `json:"date" yaml:"date"`
	Status       BookingStatus `json:"status" yaml:"status"`
	Amount       float64       `json:"amount" yaml:"amount"`
}

func (b Booking) EntityID() string { return b.ID }

func (b Booking) WithEntityID(id string) Booking {
	b.ID = id
	return b
}

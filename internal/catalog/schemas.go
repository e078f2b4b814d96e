package catalog

import (
	"cmp"
	"strings"

	"github.com/Domenick1991/skyjourney/internal/domain"
)

// Sort field names shared by the HTTP layer.
const (
	FieldPrice     = "price"
	FieldDuration  = "duration"
	FieldDeparture = "departure"
	FieldArrival   = "arrival"
	FieldAirline   = "airline"
	FieldStops     = "stops"
)

// FlightSchema searches the id, flight number and both route endpoints.
func FlightSchema() *Schema[domain.Flight] {
	s := NewSchema(func(f domain.Flight) []string {
		return []string{
			f.ID, f.FlightNumber,
			f.DepartureAirport, f.DepartureCity,
			f.ArrivalAirport, f.ArrivalCity,
		}
	})
	s.Price = func(f domain.Flight) float64 { return f.Price }
	s.Stops = func(f domain.Flight) int { return f.Stops }
	return s.
		SortBy(FieldPrice, func(a, b domain.Flight) int { return cmp.Compare(a.Price, b.Price) }).
		SortBy(FieldDuration, func(a, b domain.Flight) int { return cmp.Compare(a.DurationMinutes(), b.DurationMinutes()) }).
		SortBy(FieldDeparture, func(a, b domain.Flight) int { return cmp.Compare(a.DepartureMinutes(), b.DepartureMinutes()) }).
		SortBy(FieldArrival, func(a, b domain.Flight) int { return cmp.Compare(a.ArrivalMinutes(), b.ArrivalMinutes()) }).
		SortBy(FieldAirline, func(a, b domain.Flight) int { return strings.Compare(a.Airline, b.Airline) }).
		SortBy(FieldStops, func(a, b domain.Flight) int { return cmp.Compare(a.Stops, b.Stops) }).
		DefaultOrder(Order{Field: FieldPrice, Direction: Asc})
}

func BookingSchema() *Schema[domain.Booking] {
	s := NewSchema(func(b domain.Booking) []string {
		return []string{b.ID, b.Passenger, b.FlightNumber, b.From, b.To}
	})
	s.Price = func(b domain.Booking) float64 { return b.Amount }
	return s.
		SortBy("id", func(a, b domain.Booking) int { return strings.Compare(a.ID, b.ID) }).
		SortBy("passenger", func(a, b domain.Booking) int { return strings.Compare(a.Passenger, b.Passenger) }).
		SortBy("flight_number", func(a, b domain.Booking) int { return strings.Compare(a.FlightNumber, b.FlightNumber) }).
		SortBy("from", func(a, b domain.Booking) int { return strings.Compare(a.From, b.From) }).
		SortBy("to", func(a, b domain.Booking) int { return strings.Compare(a.To, b.To) }).
		SortBy("date", func(a, b domain.Booking) int { return strings.Compare(a.Date, b.Date) }).
		SortBy("status", func(a, b domain.Booking) int { return strings.Compare(string(a.Status), string(b.Status)) }).
		SortBy("amount", func(a, b domain.Booking) int { return cmp.Compare(a.Amount, b.Amount) }).
		DefaultOrder(Order{Field: "date", Direction: Desc})
}

func ScheduleSchema() *Schema[domain.ScheduledFlight] {
	s := NewSchema(func(f domain.ScheduledFlight) []string {
		return []string{f.FlightNumber, f.Departure, f.Arrival}
	})
	s.Price = func(f domain.ScheduledFlight) float64 { return f.Price }
	return s.
		SortBy("flight_number", func(a, b domain.ScheduledFlight) int { return strings.Compare(a.FlightNumber, b.FlightNumber) }).
		SortBy("airline", func(a, b domain.ScheduledFlight) int { return strings.Compare(a.Airline, b.Airline) }).
		SortBy("departure", func(a, b domain.ScheduledFlight) int { return strings.Compare(a.Departure, b.Departure) }).
		SortBy("departure_time", func(a, b domain.ScheduledFlight) int { return strings.Compare(a.DepartureTime, b.DepartureTime) }).
		SortBy("arrival", func(a, b domain.ScheduledFlight) int { return strings.Compare(a.Arrival, b.Arrival) }).
		SortBy("arrival_time", func(a, b domain.ScheduledFlight) int { return strings.Compare(a.ArrivalTime, b.ArrivalTime) }).
		SortBy("status", func(a, b domain.ScheduledFlight) int { return strings.Compare(string(a.Status), string(b.Status)) }).
		SortBy("price", func(a, b domain.ScheduledFlight) int { return cmp.Compare(a.Price, b.Price) }).
		DefaultOrder(Order{Field: "departure_time", Direction: Asc})
}

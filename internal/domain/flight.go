package domain

import (
	"strconv"
	"strings"
)

// Flight is a catalog entry offered to travellers. Times and duration are
// display strings ("08:30", "5h 15m").
type Flight struct {
	ID               string  `json:"id" yaml:"id"`
	Airline          string  `json:"airline" yaml:"airline"`
	AirlineCode      string  `json:"airline_code" yaml:"airline_code"`
	FlightNumber     string  `json:"flight_number" yaml:"flight_number"`
	DepartureAirport string  `json:"departure_airport" yaml:"departure_airport"`
	DepartureCity    string  `json:"departure_city" yaml:"departure_city"`
	DepartureTime    string  `json:"departure_time" yaml:"departure_time"`
	ArrivalAirport   string  `json:"arrival_airport" yaml:"arrival_airport"`
	ArrivalCity      string  `json:"arrival_city" yaml:"arrival_city"`
	ArrivalTime      string  `json:"arrival_time" yaml:"arrival_time"`
	Duration         string  `json:"duration" yaml:"duration"`
	Stops            int     `json:"stops" yaml:"stops"`
	Price            float64 `json:"price" yaml:"price"`
	Aircraft         string  `json:"aircraft,omitempty" yaml:"aircraft,omitempty"`
}

// DurationMinutes parses Duration in the "Xh Ym" form. Unparsable parts count as zero.
func (f Flight) DurationMinutes() int {
	total := 0
	for _, part := range strings.Fields(f.Duration) {
		switch {
		case strings.HasSuffix(part, "h"):
			h, _ := strconv.Atoi(strings.TrimSuffix(part, "h"))
			total += h * 60
		case strings.HasSuffix(part, "m"):
			m, _ := strconv.Atoi(strings.TrimSuffix(part, "m"))
			total += m
		}
	}
	return total
}

func (f Flight) DepartureMinutes() int {
	return clockMinutes(f.DepartureTime)
}

func (f Flight) ArrivalMinutes() int {
	return clockMinutes(f.ArrivalTime)
}

// clockMinutes converts "HH:MM" to minutes after midnight.
func clockMinutes(s string) int {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0
	}
	return h*60 + m
}

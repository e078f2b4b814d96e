package admin

import (
	"github.com/Domenick1991/skyjourney/internal/catalog"
	"github.com/Domenick1991/skyjourney/internal/domain"
)

type Bookings struct {
	*Manager[domain.Booking]
}

func NewBookings(prefix string, seed []domain.Booking, opts ...ManagerOption[domain.Booking]) *Bookings {
	return &Bookings{Manager: NewManager(catalog.BookingSchema(), prefix, seed, opts...)}
}

// SetStatus moves a booking to any status in the closed set. There are no
// transition rules.
func (b *Bookings) SetStatus(id string, status domain.BookingStatus) (domain.Booking, error) {
	if !status.Valid() {
		_, err := domain.ParseBookingStatus(string(status))
		return domain.Booking{}, err
	}
	return b.Modify(id, func(cur domain.Booking) (domain.Booking, error) {
		cur.Status = status
		return cur, nil
	})
}

type Flights struct {
	*Manager[domain.ScheduledFlight]
}

func NewFlights(prefix string, seed []domain.ScheduledFlight, opts ...ManagerOption[domain.ScheduledFlight]) *Flights {
	return &Flights{Manager: NewManager(catalog.ScheduleSchema(), prefix, seed, opts...)}
}

package fetch

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Domenick1991/skyjourney/internal/domain"
)

// SearchQuery mirrors the landing page search form.
type SearchQuery struct {
	From       string `json:"from" form:"from"`
	To         string `json:"to" form:"to"`
	DepartDate string `json:"depart_date" form:"depart_date"`
	ReturnDate string `json:"return_date" form:"return_date"`
	Passengers int    `json:"passengers" form:"passengers"`
	CabinClass string `json:"cabin_class" form:"cabin_class"`
	TripType   string `json:"trip_type" form:"trip_type"`
}

// Key identifies the result set of a query for caching. Passenger count and
// cabin do not change the matching flights.
func (q SearchQuery) Key() string {
	return strings.ToLower(fmt.Sprintf("%s|%s|%s", strings.TrimSpace(q.From), strings.TrimSpace(q.To), q.DepartDate))
}

// Matches reports whether f serves the route. Empty endpoints match anything;
// otherwise the city or airport code must start with the given text.
func (q SearchQuery) Matches(f domain.Flight) bool {
	return endpointMatches(q.From, f.DepartureCity, f.DepartureAirport) &&
		endpointMatches(q.To, f.ArrivalCity, f.ArrivalAirport)
}

func endpointMatches(want string, candidates ...string) bool {
	want = strings.ToLower(strings.TrimSpace(want))
	if want == "" {
		return true
	}
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), want) {
			return true
		}
	}
	return false
}

// FlightSource is the capability the rest of the service depends on.
type FlightSource interface {
	Search(ctx context.Context, q SearchQuery) ([]domain.Flight, error)
	Get(ctx context.Context, id string) (*domain.Flight, error)
}

// DelayedSource serves an in-memory flight list after a fixed delay that
// stands in for network latency.
type DelayedSource struct {
	flights []domain.Flight
	delay   time.Duration
}

func NewDelayedSource(flights []domain.Flight, delay time.Duration) *DelayedSource {
	return &DelayedSource{flights: slices.Clone(flights), delay: delay}
}

func (s *DelayedSource) Search(ctx context.Context, q SearchQuery) ([]domain.Flight, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.Flight, 0, len(s.flights))
	for _, f := range s.flights {
		if q.Matches(f) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *DelayedSource) Get(ctx context.Context, id string) (*domain.Flight, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	i := slices.IndexFunc(s.flights, func(f domain.Flight) bool { return f.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("flight %s: %w", id, domain.ErrNotFound)
	}
	f := s.flights[i]
	return &f, nil
}

func (s *DelayedSource) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ FlightSource = (*DelayedSource)(nil)

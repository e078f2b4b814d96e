package flights

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Domenick1991/skyjourney/internal/catalog"
	"github.com/Domenick1991/skyjourney/internal/domain"
	"github.com/Domenick1991/skyjourney/internal/fetch"
)

type FlightUseCase interface {
	Search(ctx context.Context, input SearchInput) (*SearchResult, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
}

// SearchInput combines the route query sent to the source with the
// sort and filter applied to its result.
type SearchInput struct {
	Query  fetch.SearchQuery
	Filter catalog.Filter
	Order  catalog.Order
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type SearchResult struct {
	Flights    []domain.Flight `json:"flights"`
	Total      int             `json:"total"`
	Order      catalog.Order   `json:"order"`
	SortFields []string        `json:"sort_fields"`
	Prices     PriceRange      `json:"prices"`
}

type FlightService struct {
	source fetch.FlightSource
	schema *catalog.Schema[domain.Flight]
	log    *slog.Logger
}

func NewFlightService(source fetch.FlightSource, log *slog.Logger) *FlightService {
	return &FlightService{
		source: source,
		schema: catalog.FlightSchema(),
		log:    log,
	}
}

// Search fetches the route from the source and derives the visible list.
// Filters always run against the fetched list, so clearing a filter restores
// every flight.
func (s *FlightService) Search(ctx context.Context, input SearchInput) (*SearchResult, error) {
	pending := fetch.Go(ctx, func(ctx context.Context) ([]domain.Flight, error) {
		return s.source.Search(ctx, input.Query)
	})
	defer pending.Cancel()

	flights, err := pending.Await(ctx)
	if err != nil {
		return nil, fmt.Errorf("search flights: %w", err)
	}

	view := catalog.NewView(s.schema, flights)
	visible, err := view.Query(input.Filter, input.Order)
	if err != nil {
		return nil, err
	}
	s.log.DebugContext(ctx, "flight search",
		"key", input.Query.Key(),
		"fetched", view.Len(),
		"visible", len(visible),
		"sort", s.schema.Resolve(input.Order).Field,
	)

	return &SearchResult{
		Flights:    visible,
		Total:      view.Len(),
		Order:      s.schema.Resolve(input.Order),
		SortFields: s.schema.SortFields(),
		Prices:     priceRange(flights),
	}, nil
}

func (s *FlightService) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	return s.source.Get(ctx, id)
}

func priceRange(flights []domain.Flight) PriceRange {
	if len(flights) == 0 {
		return PriceRange{}
	}
	r := PriceRange{Min: flights[0].Price, Max: flights[0].Price}
	for _, f := range flights[1:] {
		r.Min = min(r.Min, f.Price)
		r.Max = max(r.Max, f.Price)
	}
	return r
}

var _ FlightUseCase = (*FlightService)(nil)

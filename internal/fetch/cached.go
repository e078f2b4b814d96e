package fetch

import (
	"context"
	"log/slog"

	"github.com/Domenick1991/skyjourney/internal/domain"
	"golang.org/x/sync/singleflight"
)

// QueryCache stores search results by query key. A miss returns ok=false.
type QueryCache interface {
	GetFlights(ctx context.Context, key string) ([]domain.Flight, bool, error)
	SetFlights(ctx context.Context, key string, flights []domain.Flight) error
}

// CachedSource is the application's query client: it fronts a FlightSource
// with a result cache and collapses concurrent identical searches.
type CachedSource struct {
	source FlightSource
	cache  QueryCache
	group  singleflight.Group
	log    *slog.Logger
}

func NewCachedSource(source FlightSource, cache QueryCache, log *slog.Logger) *CachedSource {
	return &CachedSource{source: source, cache: cache, log: log}
}

func (s *CachedSource) Search(ctx context.Context, q SearchQuery) ([]domain.Flight, error) {
	key := q.Key()
	if s.cache != nil {
		cached, ok, err := s.cache.GetFlights(ctx, key)
		if err != nil {
			s.log.WarnContext(ctx, "flight cache read failed", "key", key, "error", err)
		} else if ok {
			return cached, nil
		}
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		flights, err := s.source.Search(ctx, q)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.SetFlights(ctx, key, flights); err != nil {
				s.log.WarnContext(ctx, "flight cache write failed", "key", key, "error", err)
			}
		}
		return flights, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Flight), nil
}

func (s *CachedSource) Get(ctx context.Context, id string) (*domain.Flight, error) {
	return s.source.Get(ctx, id)
}

var _ FlightSource = (*CachedSource)(nil)

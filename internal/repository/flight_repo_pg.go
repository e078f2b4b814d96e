package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/skyjourney/internal/domain"
	"github.com/Domenick1991/skyjourney/internal/fetch"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const flightColumns = `id, airline, airline_code, flight_number, departure_airport, departure_city, departure_time,
	arrival_airport, arrival_city, arrival_time, duration, stops, price, aircraft`

type FlightRepository interface {
	fetch.FlightSource
	Upsert(ctx context.Context, flights []domain.Flight) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

// Search matches endpoints by case-insensitive prefix on city or airport
// code, like the in-memory source.
func (r *PGFlightRepository) Search(ctx context.Context, q fetch.SearchQuery) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights
		WHERE ($1 = '' OR departure_city ILIKE $1 || '%' OR departure_airport ILIKE $1 || '%')
		  AND ($2 = '' OR arrival_city ILIKE $2 || '%' OR arrival_airport ILIKE $2 || '%')
		ORDER BY id`, likePrefix(q.From), likePrefix(q.To))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) Get(ctx context.Context, id string) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	f, err := scanFlight(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("flight %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Upsert loads the catalog, replacing rows with the same id.
func (r *PGFlightRepository) Upsert(ctx context.Context, flights []domain.Flight) error {
	batch := &pgx.Batch{}
	for _, f := range flights {
		batch.Queue(`INSERT INTO flights (`+flightColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			ON CONFLICT (id) DO UPDATE SET
				airline = EXCLUDED.airline, airline_code = EXCLUDED.airline_code,
				flight_number = EXCLUDED.flight_number,
				departure_airport = EXCLUDED.departure_airport, departure_city = EXCLUDED.departure_city,
				departure_time = EXCLUDED.departure_time,
				arrival_airport = EXCLUDED.arrival_airport, arrival_city = EXCLUDED.arrival_city,
				arrival_time = EXCLUDED.arrival_time, duration = EXCLUDED.duration,
				stops = EXCLUDED.stops, price = EXCLUDED.price, aircraft = EXCLUDED.aircraft`,
			f.ID, f.Airline, f.AirlineCode, f.FlightNumber, f.DepartureAirport, f.DepartureCity, f.DepartureTime,
			f.ArrivalAirport, f.ArrivalCity, f.ArrivalTime, f.Duration, f.Stops, f.Price, f.Aircraft)
	}
	return r.db.SendBatch(ctx, batch).Close()
}

func scanFlight(row pgx.Row) (domain.Flight, error) {
	var f domain.Flight
	err := row.Scan(&f.ID, &f.Airline, &f.AirlineCode, &f.FlightNumber, &f.DepartureAirport, &f.DepartureCity, &f.DepartureTime,
		&f.ArrivalAirport, &f.ArrivalCity, &f.ArrivalTime, &f.Duration, &f.Stops, &f.Price, &f.Aircraft)
	return f, err
}

// likePrefix escapes LIKE wildcards so user input only matches literally.
func likePrefix(s string) string {
	s = strings.TrimSpace(s)
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

var _ FlightRepository = (*PGFlightRepository)(nil)

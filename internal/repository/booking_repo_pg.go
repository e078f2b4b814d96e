package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/skyjourney/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingRepository persists submitted bookings.
type BookingRepository interface {
	Record(ctx context.Context, h domain.Handoff) error
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

// Record stores the booking and its passengers in one transaction.
func (r *PGBookingRepository) Record(ctx context.Context, h domain.Handoff) error {
	if h.Flight == nil {
		return errors.New("booking has no flight")
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `INSERT INTO bookings (reference, flight_id, flight_number, total_price, base_fare, taxes_and_fees, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		h.Reference, h.Flight.ID, h.Flight.FlightNumber, h.TotalPrice, h.BaseFare, h.TaxesAndFees, h.CreatedAt); err != nil {
		return fmt.Errorf("insert booking %s: %w", h.Reference, err)
	}

	for i, p := range h.Passengers {
		if _, err := tx.Exec(ctx, `INSERT INTO booking_passengers
			(reference, position, title, first_name, last_name, email, phone, date_of_birth, passport_number, passport_expiry)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			h.Reference, i, p.Title, p.FirstName, p.LastName, p.Email, p.Phone, p.DateOfBirth, p.PassportNumber, p.PassportExpiry); err != nil {
			return fmt.Errorf("insert passenger %d: %w", i, err)
		}
	}

	return tx.Commit(ctx)
}

var _ BookingRepository = (*PGBookingRepository)(nil)

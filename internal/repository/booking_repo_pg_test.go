package repository

import (
	"context"
	"testing"

	"github.com/Domenick1991/skyjourney/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewBookingRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewBookingRepository(pool)
	assert.NotNil(t, repo)
}

func TestRecord_RequiresFlight(t *testing.T) {
	repo := NewBookingRepository(&pgxpool.Pool{})
	err := repo.Record(context.Background(), domain.Handoff{Reference: "SJ123456"})
	assert.EqualError(t, err, "booking has no flight")
}

// Package handoff passes the submitted booking summary to the confirmation
// view exactly once.
package handoff

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/Domenick1991/skyjourney/internal/domain"
)

var ErrNotFound = errors.New("handoff not found")

// Store is read-once: Take removes the payload it returns.
type Store interface {
	Put(ctx context.Context, h domain.Handoff) (string, error)
	Take(ctx context.Context, key string) (*domain.Handoff, error)
}

// NewReference returns a booking reference such as "SJ482913".
func NewReference(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, 100000+rand.IntN(900000))
}

package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Lifecycle(t *testing.T) {
	r := NewRegistry(time.Minute)

	id, state, err := r.Open(testFlight(), 1)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, StagePassenger, state.Stage)
	assert.Equal(t, 1, r.Len())

	state, err = r.Do(id, func(w *Wizard) error {
		return w.SetPassengerField(0, "first_name", "Ravi")
	})
	require.NoError(t, err)
	assert.Equal(t, "Ravi", state.Passengers[0].FirstName)

	_, err = r.Submit(id)
	assert.ErrorIs(t, err, ErrNotReadyToSubmit)
	assert.Equal(t, 1, r.Len())

	assert.True(t, r.Discard(id))
	assert.False(t, r.Discard(id))
	_, err = r.Do(id, nil)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRegistry_SubmitForgetsSession(t *testing.T) {
	r := NewRegistry(time.Minute)
	id, _, err := r.Open(testFlight(), 1)
	require.NoError(t, err)

	_, err = r.Do(id, func(w *Wizard) error {
		fillPassenger(t, w, 0)
		w.Next()
		fillPayment(t, w)
		w.Next()
		return nil
	})
	require.NoError(t, err)

	h, err := r.Submit(id)
	require.NoError(t, err)
	assert.Equal(t, 4999.0, h.TotalPrice)
	assert.Equal(t, 0, r.Len())

	_, err = r.Submit(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRegistry_Sweep(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(10*time.Minute, WithClock(func() time.Time { return now }))

	stale, _, err := r.Open(testFlight(), 1)
	require.NoError(t, err)

	now = now.Add(8 * time.Minute)
	fresh, _, err := r.Open(testFlight(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, r.Sweep(now.Add(5*time.Minute)))
	_, err = r.Do(stale, nil)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = r.Do(fresh, nil)
	assert.NoError(t, err)
}

func TestRegistry_OpenValidation(t *testing.T) {
	r := NewRegistry(0)
	_, _, err := r.Open(nil, 1)
	assert.ErrorIs(t, err, ErrNoFlight)
	assert.Equal(t, 0, r.Sweep(time.Now().Add(time.Hour)))
}

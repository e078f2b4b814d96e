package wizard

import (
	"math"
	"math/rand"
	"testing"

	"github.com/Domenick1991/skyjourney/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlight() *domain.Flight {
	return &domain.Flight{
		ID:           "FL001",
		Airline:      "Air India",
		AirlineCode:  "AI",
		FlightNumber: "AI101",
		Price:        4999,
	}
}

func fillPassenger(t *testing.T, w *Wizard, index int) {
	t.Helper()
	values := map[string]string{
		"title":           "Ms",
		"first_name":      "Asha",
		"last_name":       "Rao",
		"email":           "asha@example.com",
		"phone":           "+91 98000 00000",
		"date_of_birth":   "1990-04-12",
		"passport_number": "Z1234567",
		"passport_expiry": "2031-01-01",
	}
	for field, value := range values {
		require.NoError(t, w.SetPassengerField(index, field, value))
	}
}

func fillPayment(t *testing.T, w *Wizard) {
	t.Helper()
	for _, field := range domain.PaymentFields {
		require.NoError(t, w.SetPaymentField(field, "x-"+field))
	}
}

func TestQuote_SplitAddsUpToTotal(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10000; i++ {
		price := rng.Float64()*100000 + 0.01
		count := rng.Intn(9) + 1

		q := NewQuote(price, count)

		total := price * float64(count)
		assert.Equal(t, total, q.TotalPrice)
		assert.InDelta(t, q.TotalPrice, q.BaseFare+q.TaxesAndFees, 1e-9*math.Max(1, total),
			"price=%v count=%d", price, count)
	}
}

func TestQuote_ExactValues(t *testing.T) {
	q := NewQuote(4999, 2)
	total := 9998.0
	assert.Equal(t, total, q.TotalPrice)
	assert.Equal(t, total*0.8, q.BaseFare)
	assert.Equal(t, total*0.2, q.TaxesAndFees)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, 1)
	assert.ErrorIs(t, err, ErrNoFlight)

	_, err = New(testFlight(), 0)
	assert.ErrorIs(t, err, ErrPassengerCount)

	w, err := New(testFlight(), 3)
	require.NoError(t, err)
	assert.Equal(t, StagePassenger, w.Stage())
	assert.Equal(t, 3, w.PassengerCount())
}

func TestWizard_NextBlockedUntilEveryPassengerFilled(t *testing.T) {
	w, err := New(testFlight(), 2)
	require.NoError(t, err)

	fillPassenger(t, w, 0)
	assert.Equal(t, StagePassenger, w.Next())
	assert.Contains(t, w.Missing(), "1.email")

	fillPassenger(t, w, 1)
	require.NoError(t, w.SetPassengerField(1, "passport_expiry", ""))
	assert.Equal(t, StagePassenger, w.Next())
	assert.Equal(t, []string{"1.passport_expiry"}, w.Missing())

	require.NoError(t, w.SetPassengerField(1, "passport_expiry", "2030-05-05"))
	assert.Equal(t, StagePayment, w.Next())
}

func TestWizard_NextBlockedUntilPaymentFilled(t *testing.T) {
	w, err := New(testFlight(), 1)
	require.NoError(t, err)
	fillPassenger(t, w, 0)
	require.Equal(t, StagePayment, w.Next())

	require.NoError(t, w.SetPaymentField("card_number", "4111111111111111"))
	assert.Equal(t, StagePayment, w.Next())

	fillPayment(t, w)
	assert.Equal(t, StageReview, w.Next())
	assert.Equal(t, StageReview, w.Next())
}

func TestWizard_BackKeepsData(t *testing.T) {
	w, err := New(testFlight(), 1)
	require.NoError(t, err)
	fillPassenger(t, w, 0)
	w.Next()
	fillPayment(t, w)
	w.Next()
	require.Equal(t, StageReview, w.Stage())

	assert.Equal(t, StagePayment, w.Back())
	assert.Equal(t, StagePassenger, w.Back())
	assert.Equal(t, StagePassenger, w.Back())

	snap := w.Snapshot()
	assert.Equal(t, "Asha", snap.Passengers[0].FirstName)
	assert.Empty(t, snap.Missing)

	assert.Equal(t, StagePayment, w.Next())
	assert.Equal(t, StageReview, w.Next())
}

func TestWizard_SetPassengerFieldErrors(t *testing.T) {
	w, err := New(testFlight(), 1)
	require.NoError(t, err)

	assert.ErrorIs(t, w.SetPassengerField(1, "title", "Mr"), ErrPassengerIndex)
	assert.ErrorIs(t, w.SetPassengerField(-1, "title", "Mr"), ErrPassengerIndex)
	assert.ErrorIs(t, w.SetPassengerField(0, "seat", "12A"), domain.ErrUnknownField)
	assert.Equal(t, 1, w.PassengerCount())
}

func TestWizard_Submit(t *testing.T) {
	w, err := New(testFlight(), 2)
	require.NoError(t, err)

	_, err = w.Submit()
	assert.ErrorIs(t, err, ErrNotReadyToSubmit)

	fillPassenger(t, w, 0)
	fillPassenger(t, w, 1)
	w.Next()
	fillPayment(t, w)
	w.Next()

	h, err := w.Submit()
	require.NoError(t, err)
	require.NotNil(t, h.Flight)
	assert.Equal(t, "AI101", h.Flight.FlightNumber)
	assert.Len(t, h.Passengers, 2)
	assert.Equal(t, 4999.0*2, h.TotalPrice)
	assert.Equal(t, h.TotalPrice*0.8, h.BaseFare)

	_, err = w.Submit()
	assert.ErrorIs(t, err, ErrDiscarded)
	assert.ErrorIs(t, w.SetPaymentField("cvv", "1"), ErrDiscarded)
}

func TestWizard_FieldsLockedOutsideTheirStage(t *testing.T) {
	w, err := New(testFlight(), 1)
	require.NoError(t, err)

	assert.ErrorIs(t, w.SetPaymentField("cvv", "123"), ErrWrongStage)

	fillPassenger(t, w, 0)
	require.Equal(t, StagePayment, w.Next())
	fillPayment(t, w)
	require.Equal(t, StageReview, w.Next())

	assert.ErrorIs(t, w.SetPassengerField(0, "email", ""), ErrWrongStage)
	assert.ErrorIs(t, w.SetPassengerField(0, "passport_number", ""), ErrWrongStage)
	assert.ErrorIs(t, w.SetPaymentField("card_number", ""), ErrWrongStage)

	h, err := w.Submit()
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", h.Passengers[0].Email)
	assert.Equal(t, "Z1234567", h.Passengers[0].PassportNumber)

	w, err = New(testFlight(), 1)
	require.NoError(t, err)
	fillPassenger(t, w, 0)
	w.Next()
	fillPayment(t, w)
	w.Next()
	w.Back()
	require.Equal(t, StagePassenger, w.Back())
	require.NoError(t, w.SetPassengerField(0, "first_name", "Meera"))
	assert.ErrorIs(t, w.SetPaymentField("cvv", ""), ErrWrongStage)
}

func TestWizard_SnapshotMasksPayment(t *testing.T) {
	w, err := New(testFlight(), 1)
	require.NoError(t, err)
	fillPassenger(t, w, 0)
	require.Equal(t, StagePayment, w.Next())
	require.NoError(t, w.SetPaymentField("card_number", "4111111111111111"))
	require.NoError(t, w.SetPaymentField("cvv", "999"))

	snap := w.Snapshot()
	assert.Equal(t, "**** 1111", snap.Payment.CardNumber)
	assert.Equal(t, "***", snap.Payment.CVV)
}

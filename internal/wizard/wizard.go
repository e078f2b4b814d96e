// Package wizard implements the three-stage booking flow: passenger details,
// payment details, then review and submit.
package wizard

import (
	"errors"
	"fmt"

	"github.com/Domenick1991/skyjourney/internal/domain"
)

type Stage string

const (
	StagePassenger Stage = "passenger"
	StagePayment   Stage = "payment"
	StageReview    Stage = "review"
)

var (
	ErrNoFlight         = errors.New("flight is required")
	ErrPassengerCount   = errors.New("passenger count must be positive")
	ErrPassengerIndex   = errors.New("passenger index out of range")
	ErrNotReadyToSubmit = errors.New("booking can only be submitted from review")
	ErrDiscarded        = errors.New("booking wizard already submitted or discarded")
	ErrWrongStage       = errors.New("fields can only be edited on their own stage")
)

// Wizard holds the form state for one booking attempt. It is not safe for
// concurrent use; Registry serializes access.
type Wizard struct {
	stage      Stage
	flight     domain.Flight
	passengers []domain.Passenger
	payment    domain.PaymentDetails
	discarded  bool
}

// State is a read-only snapshot of a Wizard.
type State struct {
	Stage      Stage                 `json:"stage"`
	Flight     domain.Flight         `json:"flight"`
	Passengers []domain.Passenger    `json:"passengers"`
	Payment    domain.PaymentDetails `json:"payment"`
	Missing    []string              `json:"missing,omitempty"`
	Quote      Quote                 `json:"quote"`
}

func New(flight *domain.Flight, passengerCount int) (*Wizard, error) {
	if flight == nil {
		return nil, ErrNoFlight
	}
	if passengerCount < 1 {
		return nil, fmt.Errorf("%w: %d", ErrPassengerCount, passengerCount)
	}
	return &Wizard{
		stage:      StagePassenger,
		flight:     *flight,
		passengers: make([]domain.Passenger, passengerCount),
	}, nil
}

func (w *Wizard) Stage() Stage { return w.stage }

func (w *Wizard) PassengerCount() int { return len(w.passengers) }

func (w *Wizard) Quote() Quote {
	return NewQuote(w.flight.Price, len(w.passengers))
}

// SetPassengerField and SetPaymentField only accept edits on the stage that
// owns the field, so a stage that was passed stays complete.
func (w *Wizard) SetPassengerField(index int, field, value string) error {
	if w.discarded {
		return ErrDiscarded
	}
	if w.stage != StagePassenger {
		return fmt.Errorf("%w: at %s", ErrWrongStage, w.stage)
	}
	if index < 0 || index >= len(w.passengers) {
		return fmt.Errorf("%w: %d of %d", ErrPassengerIndex, index, len(w.passengers))
	}
	return w.passengers[index].Set(field, value)
}

func (w *Wizard) SetPaymentField(field, value string) error {
	if w.discarded {
		return ErrDiscarded
	}
	if w.stage != StagePayment {
		return fmt.Errorf("%w: at %s", ErrWrongStage, w.stage)
	}
	return w.payment.Set(field, value)
}

// Missing lists the empty required fields that block leaving the current
// stage. Passenger fields are prefixed with their index, e.g. "0.email".
func (w *Wizard) Missing() []string {
	var out []string
	switch w.stage {
	case StagePassenger:
		for i, p := range w.passengers {
			for _, f := range p.MissingFields() {
				out = append(out, fmt.Sprintf("%d.%s", i, f))
			}
		}
	case StagePayment:
		out = w.payment.MissingFields()
	}
	return out
}

// Next moves one stage forward when every required field of the current
// stage is filled, and otherwise leaves the stage unchanged.
func (w *Wizard) Next() Stage {
	if w.discarded || len(w.Missing()) > 0 {
		return w.stage
	}
	switch w.stage {
	case StagePassenger:
		w.stage = StagePayment
	case StagePayment:
		w.stage = StageReview
	}
	return w.stage
}

// Back moves one stage backward. Entered data is kept.
func (w *Wizard) Back() Stage {
	if w.discarded {
		return w.stage
	}
	switch w.stage {
	case StagePayment:
		w.stage = StagePassenger
	case StageReview:
		w.stage = StagePayment
	}
	return w.stage
}

// Submit packages the handoff payload and discards the wizard. The returned
// handoff has no reference; the caller assigns one.
func (w *Wizard) Submit() (domain.Handoff, error) {
	if w.discarded {
		return domain.Handoff{}, ErrDiscarded
	}
	if w.stage != StageReview {
		return domain.Handoff{}, ErrNotReadyToSubmit
	}

	flight := w.flight
	q := w.Quote()
	h := domain.Handoff{
		Flight:       &flight,
		Passengers:   append([]domain.Passenger(nil), w.passengers...),
		TotalPrice:   q.TotalPrice,
		BaseFare:     q.BaseFare,
		TaxesAndFees: q.TaxesAndFees,
	}
	w.discard()
	return h, nil
}

func (w *Wizard) discard() {
	w.discarded = true
	w.payment = domain.PaymentDetails{}
}

func (w *Wizard) Snapshot() State {
	return State{
		Stage:      w.stage,
		Flight:     w.flight,
		Passengers: append([]domain.Passenger(nil), w.passengers...),
		Payment:    w.payment.Masked(),
		Missing:    w.Missing(),
		Quote:      w.Quote(),
	}
}

package domain

import "time"

// Handoff is the one-shot payload passed from the booking wizard to the
// confirmation view.
type Handoff struct {
	Reference    string      `json:"reference"`
	Flight       *Flight     `json:"flight"`
	Passengers   []Passenger `json:"passengers"`
	TotalPrice   float64     `json:"total_price"`
	BaseFare     float64     `json:"base_fare"`
	TaxesAndFees float64     `json:"taxes_and_fees"`
	CreatedAt    time.Time   `json:"created_at"`
}

// LeadPassenger is the first passenger, whose email receives the confirmation.
func (h Handoff) LeadPassenger() (Passenger, bool) {
	if len(h.Passengers) == 0 {
		return Passenger{}, false
	}
	return h.Passengers[0], true
}

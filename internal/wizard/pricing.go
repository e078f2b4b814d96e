package wizard

const (
	baseFareShare     = 0.8
	taxesAndFeesShare = 0.2
)

// Quote is the price breakdown shown beside the wizard.
type Quote struct {
	UnitPrice      float64 `json:"unit_price"`
	PassengerCount int     `json:"passenger_count"`
	TotalPrice     float64 `json:"total_price"`
	BaseFare       float64 `json:"base_fare"`
	TaxesAndFees   float64 `json:"taxes_and_fees"`
}

func NewQuote(unitPrice float64, passengerCount int) Quote {
	total := unitPrice * float64(passengerCount)
	return Quote{
		UnitPrice:      unitPrice,
		PassengerCount: passengerCount,
		TotalPrice:     total,
		BaseFare:       total * baseFareShare,
		TaxesAndFees:   total * taxesAndFeesShare,
	}
}

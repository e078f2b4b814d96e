package domain

import "fmt"

// Passenger holds one traveller's form entries. All fields are free text and
// required before the wizard leaves the passenger stage.
type Passenger struct {
	Title          string `json:"title"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	DateOfBirth    string `json:"date_of_birth"`
	PassportNumber string `json:"passport_number"`
	PassportExpiry string `json:"passport_expiry"`
}

// PassengerFields are the field names accepted by Passenger.Set, in form order.
var PassengerFields = []string{
	"title", "first_name", "last_name", "email", "phone",
	"date_of_birth", "passport_number", "passport_expiry",
}

func (p *Passenger) fields() map[string]*string {
	return map[string]*string{
		"title":           &p.Title,
		"first_name":      &p.FirstName,
		"last_name":       &p.LastName,
		"email":           &p.Email,
		"phone":           &p.Phone,
		"date_of_birth":   &p.DateOfBirth,
		"passport_number": &p.PassportNumber,
		"passport_expiry": &p.PassportExpiry,
	}
}

func (p *Passenger) Set(field, value string) error {
	ptr, ok := p.fields()[field]
	if !ok {
		return fmt.Errorf("%w: passenger.%s", ErrUnknownField, field)
	}
	*ptr = value
	return nil
}

// MissingFields returns the names of empty required fields in form order.
func (p Passenger) MissingFields() []string {
	return missing(PassengerFields, p.fields())
}

func (p Passenger) FullName() string {
	if p.Title == "" {
		return p.FirstName + " " + p.LastName
	}
	return p.Title + " " + p.FirstName + " " + p.LastName
}

// PaymentDetails holds card and billing entries. Kept only in memory.
type PaymentDetails struct {
	CardNumber     string `json:"card_number"`
	CardholderName string `json:"cardholder_name"`
	ExpiryDate     string `json:"expiry_date"`
	CVV            string `json:"cvv"`
	BillingAddress string `json:"billing_address"`
	City           string `json:"city"`
	ZipCode        string `json:"zip_code"`
	Country        string `json:"country"`
}

var PaymentFields = []string{
	"card_number", "cardholder_name", "expiry_date", "cvv",
	"billing_address", "city", "zip_code", "country",
}

func (p *PaymentDetails) fields() map[string]*string {
	return map[string]*string{
		"card_number":     &p.CardNumber,
		"cardholder_name": &p.CardholderName,
		"expiry_date":     &p.ExpiryDate,
		"cvv":             &p.CVV,
		"billing_address": &p.BillingAddress,
		"city":            &p.City,
		"zip_code":        &p.ZipCode,
		"country":         &p.Country,
	}
}

func (p *PaymentDetails) Set(field, value string) error {
	ptr, ok := p.fields()[field]
	if !ok {
		return fmt.Errorf("%w: payment.%s", ErrUnknownField, field)
	}
	*ptr = value
	return nil
}

func (p PaymentDetails) MissingFields() []string {
	return missing(PaymentFields, p.fields())
}

// Masked returns a copy safe to echo back: card number reduced to its last
// four digits and the CVV blanked.
func (p PaymentDetails) Masked() PaymentDetails {
	if n := len(p.CardNumber); n > 4 {
		p.CardNumber = "**** " + p.CardNumber[n-4:]
	}
	if p.CVV != "" {
		p.CVV = "***"
	}
	return p
}

func missing(order []string, values map[string]*string) []string {
	var out []string
	for _, name := range order {
		if *values[name] == "" {
			out = append(out, name)
		}
	}
	return out
}

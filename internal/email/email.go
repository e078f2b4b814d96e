package email

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Domenick1991/skyjourney/internal/kafka"
)

// Message is a rendered confirmation email.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Sender delivers booking confirmations. Delivery goes to the structured
// log; no mail transport is configured.
type Sender struct {
	from     string
	currency string
	log      *slog.Logger
}

func NewSender(from, currency string, log *slog.Logger) *Sender {
	return &Sender{from: from, currency: currency, log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	msg, err := s.Compose(event)
	if err != nil {
		return err
	}
	s.log.InfoContext(ctx, "send email",
		"from", msg.From,
		"to", msg.To,
		"subject", msg.Subject,
		"reference", event.Reference,
	)
	return nil
}

// Compose renders the confirmation for event. Events without a recipient
// are rejected.
func (s *Sender) Compose(event kafka.BookingEvent) (Message, error) {
	if event.Email == "" {
		return Message{}, fmt.Errorf("booking %s has no recipient", event.Reference)
	}

	var body strings.Builder
	name := event.LeadName
	if name == "" {
		name = "traveller"
	}
	fmt.Fprintf(&body, "Hello %s,\n\n", name)
	fmt.Fprintf(&body, "Your booking %s is confirmed.\n", event.Reference)
	fmt.Fprintf(&body, "Flight: %s (%s)\n", event.FlightNumber, event.Route)
	fmt.Fprintf(&body, "Passengers: %d\n", event.Passengers)
	fmt.Fprintf(&body, "Total paid: %s%.2f\n", s.currency, event.TotalPrice)

	return Message{
		From:    s.from,
		To:      event.Email,
		Subject: "Booking confirmed: " + event.Reference,
		Body:    body.String(),
	}, nil
}

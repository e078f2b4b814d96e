package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Domenick1991/skyjourney/internal/admin"
	"github.com/Domenick1991/skyjourney/internal/domain"
	"github.com/Domenick1991/skyjourney/internal/fetch"
	"github.com/Domenick1991/skyjourney/internal/handoff"
	"github.com/Domenick1991/skyjourney/internal/kafka"
	"github.com/Domenick1991/skyjourney/internal/wizard"
)

var ErrPassengerLimit = errors.New("passenger count out of range")

type BookingUseCase interface {
	Start(ctx context.Context, input StartInput) (*Session, error)
	Get(ctx context.Context, sessionID string) (*Session, error)
	SetPassenger(ctx context.Context, sessionID string, index int, fields map[string]string) (*Session, error)
	SetPayment(ctx context.Context, sessionID string, fields map[string]string) (*Session, error)
	Next(ctx context.Context, sessionID string) (*Session, error)
	Back(ctx context.Context, sessionID string) (*Session, error)
	Discard(ctx context.Context, sessionID string) error
	Submit(ctx context.Context, sessionID string) (*Confirmation, error)
	Confirmation(ctx context.Context, key string) (*domain.Handoff, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// Recorder persists submitted bookings outside the process.
type Recorder interface {
	Record(ctx context.Context, h domain.Handoff) error
}

type StartInput struct {
	FlightID   string `json:"flight_id" binding:"required"`
	Passengers int    `json:"passengers"`
}

// Session is a wizard snapshot addressed by its session id.
type Session struct {
	ID string `json:"id"`
	wizard.State
}

// Confirmation tells the client where to read the one-shot handoff.
type Confirmation struct {
	Key       string `json:"key"`
	Reference string `json:"reference"`
}

type BookingService struct {
	flights  fetch.FlightSource
	registry *wizard.Registry
	handoffs handoff.Store
	log      *slog.Logger

	bookings        *admin.Bookings
	recorder        Recorder
	producer        Producer
	bookingTopic    string
	referencePrefix string
	defaultCount    int
	maxCount        int
	now             func() time.Time
}

type BookingServiceOption func(*BookingService)

// WithBookings appends every submitted booking to the back-office list.
func WithBookings(bookings *admin.Bookings) BookingServiceOption {
	return func(s *BookingService) {
		s.bookings = bookings
	}
}

func WithRecorder(recorder Recorder) BookingServiceOption {
	return func(s *BookingService) {
		s.recorder = recorder
	}
}

func WithProducer(producer Producer, topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.bookingTopic = topic
	}
}

func WithReferencePrefix(prefix string) BookingServiceOption {
	return func(s *BookingService) {
		s.referencePrefix = prefix
	}
}

// WithPassengerLimits sets the count used when Start omits one and the
// largest count accepted.
func WithPassengerLimits(defaultCount, maxCount int) BookingServiceOption {
	return func(s *BookingService) {
		s.defaultCount = defaultCount
		s.maxCount = maxCount
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	flights fetch.FlightSource,
	registry *wizard.Registry,
	handoffs handoff.Store,
	log *slog.Logger,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		flights:         flights,
		registry:        registry,
		handoffs:        handoffs,
		log:             log,
		referencePrefix: "SJ",
		defaultCount:    1,
		maxCount:        9,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) Start(ctx context.Context, input StartInput) (*Session, error) {
	count := input.Passengers
	if count == 0 {
		count = s.defaultCount
	}
	if count < 1 || count > s.maxCount {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrPassengerLimit, count, s.maxCount)
	}

	flight, err := s.flights.Get(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}

	id, state, err := s.registry.Open(flight, count)
	if err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "booking started", "session", id, "flight", flight.ID, "passengers", count)
	return &Session{ID: id, State: state}, nil
}

func (s *BookingService) Get(_ context.Context, sessionID string) (*Session, error) {
	return s.do(sessionID, func(*wizard.Wizard) error { return nil })
}

// SetPassenger applies every field or none of them.
func (s *BookingService) SetPassenger(_ context.Context, sessionID string, index int, fields map[string]string) (*Session, error) {
	for field := range fields {
		if err := (&domain.Passenger{}).Set(field, ""); err != nil {
			return nil, err
		}
	}
	return s.do(sessionID, func(w *wizard.Wizard) error {
		for field, value := range fields {
			if err := w.SetPassengerField(index, field, value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BookingService) SetPayment(_ context.Context, sessionID string, fields map[string]string) (*Session, error) {
	for field := range fields {
		if err := (&domain.PaymentDetails{}).Set(field, ""); err != nil {
			return nil, err
		}
	}
	return s.do(sessionID, func(w *wizard.Wizard) error {
		for field, value := range fields {
			if err := w.SetPaymentField(field, value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BookingService) Next(_ context.Context, sessionID string) (*Session, error) {
	return s.do(sessionID, func(w *wizard.Wizard) error {
		w.Next()
		return nil
	})
}

func (s *BookingService) Back(_ context.Context, sessionID string) (*Session, error) {
	return s.do(sessionID, func(w *wizard.Wizard) error {
		w.Back()
		return nil
	})
}

func (s *BookingService) Discard(ctx context.Context, sessionID string) error {
	if !s.registry.Discard(sessionID) {
		return wizard.ErrSessionNotFound
	}
	s.log.InfoContext(ctx, "booking discarded", "session", sessionID)
	return nil
}

// Submit closes the wizard and stores its payload for the confirmation
// view. Recording and publishing are best effort once the handoff exists.
func (s *BookingService) Submit(ctx context.Context, sessionID string) (*Confirmation, error) {
	h, err := s.registry.Submit(sessionID)
	if err != nil {
		return nil, err
	}
	h.Reference = handoff.NewReference(s.referencePrefix)
	h.CreatedAt = s.now()

	key, err := s.handoffs.Put(ctx, h)
	if err != nil {
		return nil, fmt.Errorf("store handoff: %w", err)
	}

	if s.bookings != nil {
		record := s.bookings.Create(backOfficeRecord(h))
		s.log.DebugContext(ctx, "booking listed", "id", record.ID)
	}
	if s.recorder != nil {
		if err := s.recorder.Record(ctx, h); err != nil {
			s.log.WarnContext(ctx, "failed to record booking", "reference", h.Reference, "error", err)
		}
	}
	if err := s.publish(ctx, h); err != nil {
		s.log.WarnContext(ctx, "failed to publish booking event", "reference", h.Reference, "error", err)
	}

	s.log.InfoContext(ctx, "booking submitted", "session", sessionID, "reference", h.Reference, "total", h.TotalPrice)
	return &Confirmation{Key: key, Reference: h.Reference}, nil
}

// Confirmation reads the handoff once. Payloads without a flight are
// treated as absent.
func (s *BookingService) Confirmation(ctx context.Context, key string) (*domain.Handoff, error) {
	if key == "" {
		return nil, handoff.ErrNotFound
	}
	h, err := s.handoffs.Take(ctx, key)
	if err != nil {
		return nil, err
	}
	if h.Flight == nil {
		return nil, handoff.ErrNotFound
	}
	return h, nil
}

// Sweep drops wizard sessions idle past the registry TTL.
func (s *BookingService) Sweep(ctx context.Context) int {
	n := s.registry.Sweep(s.now())
	if n > 0 {
		s.log.InfoContext(ctx, "expired booking sessions", "count", n)
	}
	return n
}

func (s *BookingService) do(sessionID string, fn func(*wizard.Wizard) error) (*Session, error) {
	state, err := s.registry.Do(sessionID, fn)
	if err != nil {
		return nil, err
	}
	return &Session{ID: sessionID, State: state}, nil
}

func (s *BookingService) publish(ctx context.Context, h domain.Handoff) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	lead, _ := h.LeadPassenger()
	event := kafka.BookingEvent{
		Type:         kafka.EventBookingSubmitted,
		Reference:    h.Reference,
		FlightID:     h.Flight.ID,
		FlightNumber: h.Flight.FlightNumber,
		Route:        h.Flight.DepartureAirport + " -> " + h.Flight.ArrivalAirport,
		Passengers:   len(h.Passengers),
		LeadName:     lead.FullName(),
		Email:        lead.Email,
		TotalPrice:   h.TotalPrice,
		SubmittedAt:  h.CreatedAt,
	}
	return s.producer.Publish(ctx, s.bookingTopic, h.Reference, event)
}

func backOfficeRecord(h domain.Handoff) domain.Booking {
	lead, _ := h.LeadPassenger()
	return domain.Booking{
		Passenger:    strings.TrimSpace(lead.FirstName + " " + lead.LastName),
		FlightNumber: h.Flight.FlightNumber,
		From:         endpoint(h.Flight.DepartureCity, h.Flight.DepartureAirport),
		To:           endpoint(h.Flight.ArrivalCity, h.Flight.ArrivalAirport),
		Date:         h.CreatedAt.Format(time.DateOnly),
		Status:       domain.BookingStatusConfirmed,
		Amount:       h.TotalPrice,
	}
}

// endpoint renders "City (CODE)" like the seeded records.
func endpoint(city, airport string) string {
	if city == "" {
		return airport
	}
	return fmt.Sprintf("%s (%s)", city, airport)
}

var _ BookingUseCase = (*BookingService)(nil)

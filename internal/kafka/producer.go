package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

const EventBookingSubmitted = "booking_submitted"

// BookingEvent announces a submitted booking to downstream consumers.
type BookingEvent struct {
	Type         string    `json:"type"`
	Reference    string    `json:"reference"`
	FlightID     string    `json:"flight_id"`
	FlightNumber string    `json:"flight_number"`
	Route        string    `json:"route"`
	Passengers   int       `json:"passengers"`
	LeadName     string    `json:"lead_name"`
	Email        string    `json:"email"`
	TotalPrice   float64   `json:"total_price"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

type Producer struct {
	brokers  []string
	writer   *kafka.Writer
	attempts int
	log      *slog.Logger
}

func NewProducer(brokers []string, log *slog.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           50 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		Async:                  false,
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		brokers:  brokers,
		writer:   writer,
		attempts: 3,
		log:      log,
	}
}

// Publish writes payload as JSON, retrying with a linear backoff.
func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	message := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}

	var lastErr error
	for i := 0; i < p.attempts; i++ {
		if lastErr = p.writer.WriteMessages(ctx, message); lastErr == nil {
			p.log.DebugContext(ctx, "published event", "topic", topic, "key", key)
			return nil
		}
		p.log.WarnContext(ctx, "publish attempt failed", "topic", topic, "key", key, "attempt", i+1, "error", lastErr)

		if i < p.attempts-1 {
			select {
			case <-time.After(time.Duration(i+1) * 500 * time.Millisecond):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return fmt.Errorf("failed to write message to Kafka after %d attempts: %w", p.attempts, lastErr)
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// CheckConnection dials the first broker and reads its partitions.
func (p *Producer) CheckConnection(ctx context.Context) error {
	if len(p.brokers) == 0 {
		return fmt.Errorf("no Kafka brokers configured")
	}
	conn, err := kafka.DialContext(ctx, "tcp", p.brokers[0])
	if err != nil {
		return fmt.Errorf("failed to connect to Kafka: %w", err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions()
	if err != nil {
		return fmt.Errorf("failed to read partitions: %w", err)
	}

	p.log.InfoContext(ctx, "connected to Kafka", "partitions", len(partitions))
	return nil
}

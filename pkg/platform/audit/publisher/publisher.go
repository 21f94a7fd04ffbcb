// Package publisher streams audit events to Kafka so external consumers
// (SIEM, compliance archive) can follow the authority's decisions.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	audit "healthledger/pkg/platform/audit"
)

// Publisher writes audit events to a Kafka topic. Delivery is synchronous
// per event; callers decide whether a failed publish blocks the operation
// (the authority treats audit as fail-open).
type Publisher struct {
	writer *kafka.Writer
}

func New(brokers []string, topic string) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		BatchSize:    1,
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Publisher{writer: writer}
}

// payload is the JSON structure published to Kafka.
type payload struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
	Actor     string `json:"actor"`
	Patient   string `json:"patient,omitempty"`
	Doctor    string `json:"doctor,omitempty"`
	RecordID  int64  `json:"record_id,omitempty"`
	Decision  string `json:"decision"`
	Reason    string `json:"reason,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Publish sends one audit event keyed by its ID.
func (p *Publisher) Publish(ctx context.Context, event audit.Event) error {
	body, err := json.Marshal(payload{
		ID:        event.ID.String(),
		Timestamp: event.Timestamp.Format(time.RFC3339Nano),
		Action:    string(event.Action),
		Actor:     event.Actor.String(),
		Patient:   event.Patient.String(),
		Doctor:    event.Doctor.String(),
		RecordID:  event.RecordID,
		Decision:  event.Decision,
		Reason:    event.Reason,
		RequestID: event.RequestID,
	})
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(event.ID.String()),
		Value: body,
		Headers: []kafka.Header{
			{Key: "action", Value: []byte(event.Action)},
			{Key: "decision", Value: []byte(event.Decision)},
		},
	}
	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("publish audit event: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

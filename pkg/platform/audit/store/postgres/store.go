package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"healthledger/pkg/domain"
	audit "healthledger/pkg/platform/audit"
)

// Store persists audit events to the audit_events table. Inserts are
// idempotent on event ID so a retried Append cannot duplicate a row.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Append writes an audit event.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	query := `
		INSERT INTO audit_events (
			id, occurred_at, action, actor, patient, doctor,
			record_id, decision, reason, request_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query,
		event.ID,
		event.Timestamp,
		string(event.Action),
		event.Actor.String(),
		event.Patient.String(),
		event.Doctor.String(),
		event.RecordID,
		event.Decision,
		event.Reason,
		event.RequestID,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListRecent returns the most recent N events, newest last.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT id, occurred_at, action, actor, patient, doctor,
		       record_id, decision, reason, request_id
		FROM audit_events
		ORDER BY occurred_at DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var (
			e                      audit.Event
			action                 string
			actor, patient, doctor string
		)
		if err := rows.Scan(&e.ID, &e.Timestamp, &action, &actor, &patient,
			&doctor, &e.RecordID, &e.Decision, &e.Reason, &e.RequestID); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.Action = audit.Action(action)
		e.Actor = domain.PersonID(actor)
		e.Patient = domain.PersonID(patient)
		e.Doctor = domain.PersonID(doctor)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	// Newest last to match the memory store contract.
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
	return events, nil
}

package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"healthledger/pkg/domain"
)

// Event is emitted from the authority for every accepted and every rejected
// transition. Keep it transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        uuid.UUID
	Timestamp time.Time
	Action    Action
	// Actor is the caller identity the harness authenticated.
	Actor domain.PersonID
	// Patient and Doctor are set when the action involves a consent pair
	// or a record write.
	Patient domain.PersonID
	Doctor  domain.PersonID
	// RecordID is set only for committed records; -1 otherwise.
	RecordID int64
	// Decision is "allowed" or "denied".
	Decision string
	// Reason carries the domain error code on denied events.
	Reason string
	// RequestID is the correlation ID from the HTTP request context.
	RequestID string
}

const (
	DecisionAllowed = "allowed"
	DecisionDenied  = "denied"
)

// Action names an authority transition.
type Action string

const (
	ActionDoctorRegistered  Action = "doctor_registered"
	ActionPatientRegistered Action = "patient_registered"
	ActionAdminTransferred  Action = "admin_transferred"
	ActionConsentGranted    Action = "consent_granted"
	ActionConsentRevoked    Action = "consent_revoked"
	ActionRecordCommitted   Action = "record_committed"
)

// Store persists audit events. Sinks are fail-open from the authority's
// point of view: a failed Append is logged by the caller, never surfaced.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}

// Package authority implements the record-authorization state machine: role
// assignment by a single administrator, patient-granted consent, and
// hash-based replay protection over the record ledger.
package authority

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"healthledger/internal/consent"
	"healthledger/internal/ledger"
	"healthledger/internal/platform/metrics"
	"healthledger/internal/platform/middleware"
	"healthledger/internal/registry"
	"healthledger/pkg/domain"
	dErrors "healthledger/pkg/domain-errors"
	audit "healthledger/pkg/platform/audit"
	"healthledger/pkg/platform/sentinel"
)

// AuditPublisher streams audit events to an external sink.
type AuditPublisher interface {
	Publish(ctx context.Context, event audit.Event) error
}

// Service owns the single current administrator and orchestrates every
// operation over the registry, the consent matrix, and the ledger.
//
// All check-then-act sequences run under one exclusive lock: correctness of
// add-record and transfer depends on no interleaved mutation between the
// precondition checks and the write. Two concurrent add-record calls with
// the same fingerprint can therefore never both pass the replay check.
type Service struct {
	mu sync.Mutex

	admin    domain.PersonID
	registry registry.Store
	consent  consent.Store
	ledger   ledger.Store

	logger    *slog.Logger
	metrics   *metrics.Metrics
	audit     audit.Store
	publisher AuditPublisher
	now       func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets a logger for audit-sink failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithAuditStore sets the audit event store.
func WithAuditStore(store audit.Store) Option {
	return func(s *Service) { s.audit = store }
}

// WithAuditPublisher sets the external audit sink.
func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithClock injects the record timestamp source. Used only to timestamp
// records; no ordering logic depends on its precision.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New constructs a Service with admin as the initial administrator. The
// admin principal is created existing but roleless, exactly as a transfer
// would leave it.
func New(ctx context.Context, admin domain.PersonID, reg registry.Store, con consent.Store, led ledger.Store, opts ...Option) (*Service, error) {
	if admin.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidIdentity, "admin identity cannot be empty")
	}
	s := &Service{
		admin:    admin,
		registry: reg,
		consent:  con,
		ledger:   led,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := reg.Put(ctx, registry.Principal{ID: admin, Role: domain.RoleNone}); err != nil {
		return nil, err
	}
	return s, nil
}

// Admin returns the current administrator identity.
func (s *Service) Admin() domain.PersonID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.admin
}

// RegisterDoctor binds the Doctor role to an identity. Admin only. An
// existing principal's role is overwritten; identities are never deleted.
func (s *Service) RegisterDoctor(ctx context.Context, caller, doctor domain.PersonID) error {
	return s.register(ctx, caller, doctor, domain.RoleDoctor, audit.ActionDoctorRegistered)
}

// RegisterPatient binds the Patient role to an identity. Admin only.
func (s *Service) RegisterPatient(ctx context.Context, caller, patient domain.PersonID) error {
	return s.register(ctx, caller, patient, domain.RolePatient, audit.ActionPatientRegistered)
}

func (s *Service) register(ctx context.Context, caller, id domain.PersonID, role domain.Role, action audit.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	event := audit.Event{Action: action, Actor: caller, RecordID: -1}
	if role == domain.RoleDoctor {
		event.Doctor = id
	} else {
		event.Patient = id
	}

	if caller != s.admin {
		return s.deny(ctx, event, dErrors.New(dErrors.CodeUnauthorized, "only the administrator can register principals"))
	}
	if id.IsZero() {
		return s.deny(ctx, event, dErrors.New(dErrors.CodeInvalidIdentity, "identity cannot be empty"))
	}
	if err := s.registry.Put(ctx, registry.Principal{ID: id, Role: role}); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.PrincipalsRegistered.WithLabelValues(role.String()).Inc()
	}
	s.emit(ctx, event, audit.DecisionAllowed, "")
	return nil
}

// Transfer hands the administrator slot to a new identity. Only the current
// administrator may call it. The outgoing holder's role is reset to None
// and the incoming holder is ensured to exist with role None.
func (s *Service) Transfer(ctx context.Context, caller, newAdmin domain.PersonID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	event := audit.Event{Action: audit.ActionAdminTransferred, Actor: caller, RecordID: -1}

	if caller != s.admin {
		return s.deny(ctx, event, dErrors.New(dErrors.CodeUnauthorized, "only the administrator can transfer authority"))
	}
	if newAdmin.IsZero() {
		return s.deny(ctx, event, dErrors.New(dErrors.CodeInvalidIdentity, "new admin identity cannot be empty"))
	}

	// The outgoing admin keeps its registry entry; only the role resets.
	if err := s.registry.SetRole(ctx, s.admin, domain.RoleNone); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return err
	}
	if err := s.registry.Put(ctx, registry.Principal{ID: newAdmin, Role: domain.RoleNone}); err != nil {
		return err
	}
	s.admin = newAdmin

	if s.metrics != nil {
		s.metrics.AdminTransfers.Inc()
	}
	s.emit(ctx, event, audit.DecisionAllowed, "")
	return nil
}

// Grant records the caller's consent for a doctor to write records under
// the caller's name. The caller must currently hold role Patient and the
// target must currently exist with role Doctor. Granting twice is a no-op
// success.
func (s *Service) Grant(ctx context.Context, caller, doctor domain.PersonID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	event := audit.Event{Action: audit.ActionConsentGranted, Actor: caller, Patient: caller, Doctor: doctor, RecordID: -1}

	if !s.holdsRole(ctx, caller, domain.RolePatient) {
		return s.deny(ctx, event, dErrors.New(dErrors.CodeUnauthorized, "only a patient can grant access"))
	}
	if !s.holdsRole(ctx, doctor, domain.RoleDoctor) {
		return s.deny(ctx, event, dErrors.New(dErrors.CodeInvalidCounterparty, "target is not a registered doctor"))
	}
	if err := s.consent.SetGrant(ctx, caller, doctor, true); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.ConsentGrants.Inc()
	}
	s.emit(ctx, event, audit.DecisionAllowed, "")
	return nil
}

// Revoke withdraws a previously granted consent. Fails with NotGranted when
// the pair is not currently granted.
func (s *Service) Revoke(ctx context.Context, caller, doctor domain.PersonID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	event := audit.Event{Action: audit.ActionConsentRevoked, Actor: caller, Patient: caller, Doctor: doctor, RecordID: -1}

	if !s.holdsRole(ctx, caller, domain.RolePatient) {
		return s.deny(ctx, event, dErrors.New(dErrors.CodeUnauthorized, "only a patient can revoke access"))
	}
	granted, err := s.consent.IsGranted(ctx, caller, doctor)
	if err != nil {
		return err
	}
	if !granted {
		return s.deny(ctx, event, dErrors.New(dErrors.CodeNotGranted, "access was not granted"))
	}
	if err := s.consent.SetGrant(ctx, caller, doctor, false); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.ConsentRevocations.Inc()
	}
	s.emit(ctx, event, audit.DecisionAllowed, "")
	return nil
}

// AddRecord commits a record under the caller's authorship. Preconditions
// run in this exact order, re-evaluated on every call:
//
//  1. caller exists with role Doctor, else Unauthorized
//  2. patient exists with role Patient, else InvalidCounterparty
//  3. the patient has granted the caller access, else AccessDenied
//  4. the fingerprint was never committed before, else ReplayDetected
//
// On success the record is appended with id = ledger length and the
// fingerprint joins the replay set. Returns the new record id.
func (s *Service) AddRecord(ctx context.Context, caller, patient domain.PersonID, fp domain.Fingerprint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event := audit.Event{Action: audit.ActionRecordCommitted, Actor: caller, Patient: patient, Doctor: caller, RecordID: -1}

	if !s.holdsRole(ctx, caller, domain.RoleDoctor) {
		return 0, s.deny(ctx, event, dErrors.New(dErrors.CodeUnauthorized, "only a doctor can add records"))
	}
	if !s.holdsRole(ctx, patient, domain.RolePatient) {
		return 0, s.deny(ctx, event, dErrors.New(dErrors.CodeInvalidCounterparty, "target is not a registered patient"))
	}
	granted, err := s.consent.IsGranted(ctx, patient, caller)
	if err != nil {
		return 0, err
	}
	if !granted {
		return 0, s.deny(ctx, event, dErrors.New(dErrors.CodeAccessDenied, "access not granted by patient"))
	}
	seen, err := s.ledger.HasFingerprint(ctx, fp)
	if err != nil {
		return 0, err
	}
	if seen {
		if s.metrics != nil {
			s.metrics.ReplaysBlocked.Inc()
		}
		return 0, s.deny(ctx, event, dErrors.New(dErrors.CodeReplayDetected, "record fingerprint already committed"))
	}

	id, err := s.ledger.Append(ctx, ledger.Record{
		Patient:     patient,
		Doctor:      caller,
		Fingerprint: fp,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return 0, err
	}

	if s.metrics != nil {
		s.metrics.RecordsCommitted.Inc()
	}
	event.RecordID = id
	s.emit(ctx, event, audit.DecisionAllowed, "")
	return id, nil
}

// RoleOf returns the role bound to an identity, and whether the identity
// exists at all. Pure lookup, never fails on absence.
func (s *Service) RoleOf(ctx context.Context, id domain.PersonID) (domain.Role, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.registry.Get(ctx, id)
	if err != nil {
		return domain.RoleNone, false
	}
	return p.Role, true
}

// IsGranted reports the current consent state for a pair. Absent pairs read
// as false.
func (s *Service) IsGranted(ctx context.Context, patient, doctor domain.PersonID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consent.IsGranted(ctx, patient, doctor)
}

// Record returns a committed record by id.
func (s *Service) Record(ctx context.Context, id int64) (ledger.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.ledger.Get(ctx, id)
	if err != nil {
		return ledger.Record{}, dErrors.New(dErrors.CodeNotFound, "record not found")
	}
	return rec, nil
}

// RecordsForPatient lists a patient's records. The caller must be the
// patient themselves or the current administrator.
func (s *Service) RecordsForPatient(ctx context.Context, caller, patient domain.PersonID) ([]ledger.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if caller != patient && caller != s.admin {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "caller may not read this patient's records")
	}
	return s.ledger.ListByPatient(ctx, patient)
}

// holdsRole reports whether id currently exists with exactly the given role.
func (s *Service) holdsRole(ctx context.Context, id domain.PersonID, role domain.Role) bool {
	p, err := s.registry.Get(ctx, id)
	if err != nil {
		return false
	}
	return p.Role == role
}

// deny records a rejected transition and returns its error unchanged. No
// mutation has happened by the time deny runs, so rejections are
// all-or-nothing by construction.
func (s *Service) deny(ctx context.Context, event audit.Event, err error) error {
	if s.metrics != nil {
		s.metrics.IncDenied(string(dErrors.CodeOf(err)))
	}
	s.emit(ctx, event, audit.DecisionDenied, string(dErrors.CodeOf(err)))
	return err
}

// emit fans an audit event out to the store and the publisher. Audit is
// fail-open: sink errors are logged and never block the operation.
func (s *Service) emit(ctx context.Context, event audit.Event, decision, reason string) {
	if s.audit == nil && s.publisher == nil {
		return
	}
	event.ID = uuid.New()
	event.Timestamp = s.now()
	event.Decision = decision
	event.Reason = reason
	event.RequestID = middleware.GetRequestID(ctx)

	if s.audit != nil {
		if err := s.audit.Append(ctx, event); err != nil && s.logger != nil {
			s.logger.ErrorContext(ctx, "audit append failed",
				"action", event.Action,
				"error", err,
			)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, event); err != nil && s.logger != nil {
			s.logger.ErrorContext(ctx, "audit publish failed",
				"action", event.Action,
				"error", err,
			)
		}
	}
}

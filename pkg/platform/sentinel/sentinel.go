package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so the authority service can translate them into domain errors.
//
// These represent factual states about stored entities, not validation
// failures:
// - ErrNotFound: entity does not exist in store
// - ErrConflict: unique constraint violated (e.g. fingerprint already committed)
// - ErrUnavailable: backing store temporarily unavailable
//
// For validation errors (bad input, role mismatches), use pkg/domain-errors.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)

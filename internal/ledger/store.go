// Package ledger owns the append-only record sequence and the replay set.
// A fingerprint accepted once is never accepted again, for the lifetime of
// the ledger, regardless of which pair or role state is in effect.
package ledger

import (
	"context"

	"healthledger/pkg/domain"
)

// Store persists committed records and the set of fingerprints ever
// accepted. Records are never mutated or removed; the replay set only grows.
type Store interface {
	// Append commits a record, assigning it the next dense ID. The
	// record's ID field is ignored on input. Returns ErrConflict
	// (wrapped) when the fingerprint was already committed.
	Append(ctx context.Context, rec Record) (int64, error)
	// HasFingerprint reports whether a fingerprint was ever committed.
	HasFingerprint(ctx context.Context, fp domain.Fingerprint) (bool, error)
	// Get returns a committed record by ID; ErrNotFound when absent.
	Get(ctx context.Context, id int64) (Record, error)
	// ListByPatient returns all records committed under a patient,
	// oldest first.
	ListByPatient(ctx context.Context, patient domain.PersonID) ([]Record, error)
	// Count returns the number of committed records.
	Count(ctx context.Context) (int64, error)
}

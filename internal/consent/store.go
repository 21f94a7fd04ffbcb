// Package consent owns the patient→doctor grant matrix. A grant is a
// capability recorded at grant time; later role changes do not rewrite it.
package consent

import (
	"context"

	"healthledger/pkg/domain"
)

// Store persists consent grants. Lookups are total: an absent pair reads as
// not granted, never as an error.
type Store interface {
	// SetGrant records the grant state for a (patient, doctor) pair.
	// Setting an already-equal state is a no-op success.
	SetGrant(ctx context.Context, patient, doctor domain.PersonID, granted bool) error
	// IsGranted reports the current grant state; absent pairs are false.
	IsGranted(ctx context.Context, patient, doctor domain.PersonID) (bool, error)
}

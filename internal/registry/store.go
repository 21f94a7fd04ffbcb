package registry

import (
	"context"

	"healthledger/pkg/domain"
)

// Error Contract:
// All store methods follow this error pattern:
// - Return ErrNotFound (wrapped) when the requested principal does not exist
// - Return nil for successful operations
// - Return wrapped errors with context for infrastructure failures
type Store interface {
	// Put inserts or overwrites a principal. Existing entries keep their
	// identity; only the role changes on overwrite.
	Put(ctx context.Context, p Principal) error
	// Get returns the principal for an identity.
	Get(ctx context.Context, id domain.PersonID) (Principal, error)
	// SetRole reassigns the role of an existing principal.
	SetRole(ctx context.Context, id domain.PersonID, role domain.Role) error
}

package ledger

import (
	"time"

	"healthledger/pkg/domain"
)

// Record is immutable once created. IDs are 0-based, dense, and assigned by
// the ledger length at insertion time.
type Record struct {
	ID          int64
	Patient     domain.PersonID
	Doctor      domain.PersonID
	Fingerprint domain.Fingerprint
	CreatedAt   time.Time
}

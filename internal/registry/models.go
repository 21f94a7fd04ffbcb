package registry

import "healthledger/pkg/domain"

// Principal binds an identity to its current role. Presence in the store is
// the existence flag: an identity, once seen, is never deleted. Its role is
// reassigned instead (admin transfer neutralizes the outgoing holder rather
// than removing them).
type Principal struct {
	ID   domain.PersonID
	Role domain.Role
}

package domain

import dErrors "healthledger/pkg/domain-errors"

// Role is the clinical role bound to a principal.
// Invariant: the value must be one of the supported roles; the enum is
// closed so an invalid role is unrepresentable past a trust boundary.
type Role string

// Supported roles. RoleNone covers principals that exist but hold no
// clinical role, such as the current or a displaced administrator.
const (
	RoleNone    Role = "none"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// validRoles is the single source of truth for valid roles.
var validRoles = map[Role]bool{
	RoleNone:    true,
	RoleDoctor:  true,
	RolePatient: true,
}

// ParseRole constructs a Role from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "role cannot be empty")
	}
	r := Role(s)
	if !validRoles[r] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid role")
	}
	return r, nil
}

// IsValid checks if the role is one of the supported enum values.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

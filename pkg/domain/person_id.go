package domain

import dErrors "healthledger/pkg/domain-errors"

// PersonID identifies a principal. It is an opaque comparable token; the
// authority never inspects its structure, only compares it.
//
// Usage: construct via ParsePersonID at trust boundaries to reject the
// empty identity; direct casting bypasses validation.
type PersonID string

// ParsePersonID constructs a PersonID from external input.
//
// Errors: returns CodeInvalidIdentity when the value is empty; no other
// errors are expected.
func ParsePersonID(s string) (PersonID, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidIdentity, "identity cannot be empty")
	}
	return PersonID(s), nil
}

// IsZero reports whether the identity is the empty value.
func (p PersonID) IsZero() bool {
	return p == ""
}

// String returns the string representation of the identity.
func (p PersonID) String() string {
	return string(p)
}

package domain

import dErrors "healthledger/pkg/domain-errors"

// Fingerprint is an opaque content-derived token identifying a record.
// The ledger uses it solely for replay detection; its internal structure
// is never interpreted.
type Fingerprint string

// ParseFingerprint constructs a Fingerprint from external input.
//
// Errors: returns CodeInvalidInput when the value is empty.
func ParseFingerprint(s string) (Fingerprint, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "fingerprint cannot be empty")
	}
	return Fingerprint(s), nil
}

// String returns the string representation of the fingerprint.
func (f Fingerprint) String() string {
	return string(f)
}

package handler

import (
	"time"

	"healthledger/internal/ledger"
)

// AddRecordResponse returns the assigned record id.
type AddRecordResponse struct {
	RecordID int64 `json:"record_id"`
}

// RecordResponse is the JSON shape of a committed record.
type RecordResponse struct {
	RecordID    int64     `json:"record_id"`
	PatientID   string    `json:"patient_id"`
	DoctorID    string    `json:"doctor_id"`
	Fingerprint string    `json:"fingerprint"`
	CreatedAt   time.Time `json:"created_at"`
}

func toRecordResponse(rec ledger.Record) RecordResponse {
	return RecordResponse{
		RecordID:    rec.ID,
		PatientID:   rec.Patient.String(),
		DoctorID:    rec.Doctor.String(),
		Fingerprint: rec.Fingerprint.String(),
		CreatedAt:   rec.CreatedAt,
	}
}

// RoleResponse is the JSON shape of a registry lookup.
type RoleResponse struct {
	PersonID string `json:"person_id"`
	Role     string `json:"role"`
}

// GrantResponse is the JSON shape of a consent lookup.
type GrantResponse struct {
	PatientID string `json:"patient_id"`
	DoctorID  string `json:"doctor_id"`
	Granted   bool   `json:"granted"`
}

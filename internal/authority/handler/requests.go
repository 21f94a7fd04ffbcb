package handler

// RegisterRequest names the identity to bind a role to.
type RegisterRequest struct {
	PersonID string `json:"person_id"`
}

// TransferRequest names the incoming administrator.
type TransferRequest struct {
	NewAdmin string `json:"new_admin"`
}

// ConsentRequest names the doctor a patient grants or revokes.
type ConsentRequest struct {
	DoctorID string `json:"doctor_id"`
}

// AddRecordRequest carries a record write.
type AddRecordRequest struct {
	PatientID   string `json:"patient_id"`
	Fingerprint string `json:"fingerprint"`
}

package consent

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"healthledger/pkg/domain"
)

// PostgresStore persists the grant matrix in the consent_grants table.
//
// Schema:
//
//	CREATE TABLE consent_grants (
//	    patient TEXT NOT NULL,
//	    doctor  TEXT NOT NULL,
//	    granted BOOLEAN NOT NULL,
//	    PRIMARY KEY (patient, doctor)
//	);
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) SetGrant(ctx context.Context, patient, doctor domain.PersonID, granted bool) error {
	query := `
		INSERT INTO consent_grants (patient, doctor, granted)
		VALUES ($1, $2, $3)
		ON CONFLICT (patient, doctor) DO UPDATE SET granted = EXCLUDED.granted
	`
	if _, err := s.db.ExecContext(ctx, query, patient.String(), doctor.String(), granted); err != nil {
		return fmt.Errorf("upsert consent grant: %w", err)
	}
	return nil
}

func (s *PostgresStore) IsGranted(ctx context.Context, patient, doctor domain.PersonID) (bool, error) {
	var granted bool
	query := `SELECT granted FROM consent_grants WHERE patient = $1 AND doctor = $2`
	err := s.db.QueryRowContext(ctx, query, patient.String(), doctor.String()).Scan(&granted)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("select consent grant: %w", err)
	}
	return granted, nil
}

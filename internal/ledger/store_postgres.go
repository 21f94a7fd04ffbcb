package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"healthledger/pkg/domain"
	"healthledger/pkg/platform/sentinel"
)

// PostgresStore persists records in the records table. The unique index on
// fingerprint double-checks the replay invariant at the storage layer; the
// authoritative check remains the in-process one under the service lock.
//
// Schema:
//
//	CREATE TABLE records (
//	    id          BIGINT PRIMARY KEY,
//	    patient     TEXT NOT NULL,
//	    doctor      TEXT NOT NULL,
//	    fingerprint TEXT NOT NULL UNIQUE,
//	    created_at  TIMESTAMPTZ NOT NULL
//	);
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

func (s *PostgresStore) Append(ctx context.Context, rec Record) (int64, error) {
	// ID assignment and insert run in one transaction so IDs stay dense.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin append: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&id); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}

	query := `
		INSERT INTO records (id, patient, doctor, fingerprint, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = tx.ExecContext(ctx, query,
		id, rec.Patient.String(), rec.Doctor.String(), rec.Fingerprint.String(), rec.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return 0, fmt.Errorf("fingerprint already committed: %w", sentinel.ErrConflict)
		}
		return 0, fmt.Errorf("insert record: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit append: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) HasFingerprint(ctx context.Context, fp domain.Fingerprint) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM records WHERE fingerprint = $1)`
	if err := s.db.QueryRowContext(ctx, query, fp.String()).Scan(&exists); err != nil {
		return false, fmt.Errorf("check fingerprint: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (Record, error) {
	var (
		rec             Record
		patient, doctor string
		fingerprint     string
	)
	query := `SELECT id, patient, doctor, fingerprint, created_at FROM records WHERE id = $1`
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID, &patient, &doctor, &fingerprint, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("record %d not found: %w", id, sentinel.ErrNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("select record: %w", err)
	}
	rec.Patient = domain.PersonID(patient)
	rec.Doctor = domain.PersonID(doctor)
	rec.Fingerprint = domain.Fingerprint(fingerprint)
	return rec, nil
}

func (s *PostgresStore) ListByPatient(ctx context.Context, patient domain.PersonID) ([]Record, error) {
	query := `
		SELECT id, patient, doctor, fingerprint, created_at
		FROM records
		WHERE patient = $1
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query, patient.String())
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec         Record
			pat, doc    string
			fingerprint string
		)
		if err := rows.Scan(&rec.ID, &pat, &doc, &fingerprint, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.Patient = domain.PersonID(pat)
		rec.Doctor = domain.PersonID(doc)
		rec.Fingerprint = domain.Fingerprint(fingerprint)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}

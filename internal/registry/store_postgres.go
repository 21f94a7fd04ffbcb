package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"healthledger/pkg/domain"
	"healthledger/pkg/platform/sentinel"
)

// PostgresStore persists principals in the principals table.
//
// Schema:
//
//	CREATE TABLE principals (
//	    id   TEXT PRIMARY KEY,
//	    role TEXT NOT NULL
//	);
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Put(ctx context.Context, p Principal) error {
	query := `
		INSERT INTO principals (id, role)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET role = EXCLUDED.role
	`
	if _, err := s.db.ExecContext(ctx, query, p.ID.String(), p.Role.String()); err != nil {
		return fmt.Errorf("upsert principal: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id domain.PersonID) (Principal, error) {
	var role string
	query := `SELECT role FROM principals WHERE id = $1`
	err := s.db.QueryRowContext(ctx, query, id.String()).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return Principal{}, fmt.Errorf("principal %q not found: %w", id, sentinel.ErrNotFound)
	}
	if err != nil {
		return Principal{}, fmt.Errorf("select principal: %w", err)
	}
	return Principal{ID: id, Role: domain.Role(role)}, nil
}

func (s *PostgresStore) SetRole(ctx context.Context, id domain.PersonID, role domain.Role) error {
	query := `UPDATE principals SET role = $2 WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query, id.String(), role.String())
	if err != nil {
		return fmt.Errorf("update principal role: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update principal role: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("principal %q not found: %w", id, sentinel.ErrNotFound)
	}
	return nil
}

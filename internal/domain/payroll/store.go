package payroll

import "github.com/jackc/pgx/v5/pgxpool"

// Store is the Postgres-backed implementation of every payroll store
// interface plus the employee directory projection.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

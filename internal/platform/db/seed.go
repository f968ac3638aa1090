package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"folha/internal/domain/payroll"
	"folha/internal/platform/config"
)

// Seed installs the current tax tables and, when configured, an admin user.
// Every statement is idempotent, so seeding runs on every boot.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := ensureTaxTables(ctx, pool); err != nil {
		return err
	}
	if cfg.SeedAdminEmail != "" && cfg.SeedAdminPassword != "" {
		if err := ensureAdminUser(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
			return err
		}
	}
	return nil
}

func ensureTaxTables(ctx context.Context, pool *pgxpool.Pool) error {
	tables := []struct {
		taxType       string
		effectiveFrom time.Time
	}{
		{payroll.TaxTypeINSS, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{payroll.TaxTypeIRRF, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, table := range tables {
		for _, b := range payroll.DefaultBrackets(table.taxType) {
			_, err := pool.Exec(ctx, `
        INSERT INTO tax_tables (tax_type, bracket_min, bracket_max, rate, deduction_value, effective_from)
        VALUES ($1,$2,$3,$4,$5,$6)
        ON CONFLICT (tax_type, bracket_min, effective_from) DO NOTHING
      `, table.taxType, b.Min, b.Max, b.Rate, b.Deduction, table.effectiveFrom)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE email = $1", email).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO users (email, password_hash, display_name)
    VALUES ($1,$2,$3)
  `, email, string(hash), "Administrator")
	return err
}

package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func (s *Store) CreatePeriod(ctx context.Context, period Period) (Period, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO payroll_periods (month, year, status)
    VALUES ($1,$2,$3)
    RETURNING id, created_at
  `, period.Month, period.Year, period.Status).Scan(&period.ID, &period.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Period{}, ErrDuplicatePeriod
		}
		return Period{}, err
	}
	return period, nil
}

func (s *Store) GetPeriod(ctx context.Context, periodID string) (Period, error) {
	var period Period
	err := s.DB.QueryRow(ctx, `
    SELECT id, month, year, status, closed_by, closed_at, created_at
    FROM payroll_periods
    WHERE id = $1
  `, periodID).Scan(&period.ID, &period.Month, &period.Year, &period.Status, &period.ClosedBy, &period.ClosedAt, &period.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Period{}, ErrPeriodNotFound
	}
	if err != nil {
		return Period{}, err
	}
	return period, nil
}

func (s *Store) ListPeriods(ctx context.Context) ([]Period, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, month, year, status, closed_by, closed_at, created_at
    FROM payroll_periods
    ORDER BY year DESC, month DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []Period
	for rows.Next() {
		var period Period
		if err := rows.Scan(&period.ID, &period.Month, &period.Year, &period.Status, &period.ClosedBy, &period.ClosedAt, &period.CreatedAt); err != nil {
			return nil, err
		}
		periods = append(periods, period)
	}
	return periods, rows.Err()
}

// ClosePeriod takes a row lock so a concurrent close or calculate observes
// the transition, then flips the status exactly once.
func (s *Store) ClosePeriod(ctx context.Context, periodID, actorID string, at time.Time) (Period, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Period{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var status string
	err = tx.QueryRow(ctx, `
    SELECT status FROM payroll_periods WHERE id = $1 FOR UPDATE
  `, periodID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return Period{}, ErrPeriodNotFound
	}
	if err != nil {
		return Period{}, err
	}
	if status == PeriodStatusClosed {
		return Period{}, ErrPeriodClosed
	}

	var period Period
	err = tx.QueryRow(ctx, `
    UPDATE payroll_periods
    SET status = $1, closed_by = $2, closed_at = $3
    WHERE id = $4
    RETURNING id, month, year, status, closed_by, closed_at, created_at
  `, PeriodStatusClosed, actorID, at, periodID).Scan(&period.ID, &period.Month, &period.Year, &period.Status, &period.ClosedBy, &period.ClosedAt, &period.CreatedAt)
	if err != nil {
		return Period{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Period{}, err
	}
	return period, nil
}

package reports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

type PeriodSummary struct {
	PeriodID        string          `json:"periodId"`
	EmployeeCount   int             `json:"employeeCount"`
	TotalGross      decimal.Decimal `json:"totalGross"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	TotalNet        decimal.Decimal `json:"totalNet"`
	TotalFGTS       decimal.Decimal `json:"totalFgts"`
}

type RegisterRow struct {
	EmployeeID      string
	FirstName       string
	LastName        string
	GrossSalary     decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal
	Status          string
	GeneratedAt     time.Time
}

func (s *Store) PeriodSummary(ctx context.Context, periodID string) (PeriodSummary, error) {
	summary := PeriodSummary{PeriodID: periodID}
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1),
           COALESCE(SUM(gross_salary),0),
           COALESCE(SUM(total_deductions),0),
           COALESCE(SUM(net_salary),0),
           COALESCE(SUM(fgts_amount),0)
    FROM pay_slips
    WHERE period_id = $1
  `, periodID).Scan(&summary.EmployeeCount, &summary.TotalGross, &summary.TotalDeductions, &summary.TotalNet, &summary.TotalFGTS)
	if err != nil {
		return PeriodSummary{}, err
	}
	return summary, nil
}

func (s *Store) RegisterRows(ctx context.Context, periodID string) ([]RegisterRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT s.employee_id, e.first_name, e.last_name,
           s.gross_salary, s.total_deductions, s.net_salary, s.status, s.generated_at
    FROM pay_slips s
    JOIN employees e ON s.employee_id = e.id
    WHERE s.period_id = $1
    ORDER BY e.last_name, e.first_name
  `, periodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var register []RegisterRow
	for rows.Next() {
		var row RegisterRow
		if err := rows.Scan(&row.EmployeeID, &row.FirstName, &row.LastName, &row.GrossSalary, &row.TotalDeductions, &row.NetSalary, &row.Status, &row.GeneratedAt); err != nil {
			return nil, err
		}
		register = append(register, row)
	}
	return register, rows.Err()
}

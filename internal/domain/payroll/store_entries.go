package payroll

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

func (s *Store) UpsertEntry(ctx context.Context, entry Entry) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO payroll_entries (period_id, employee_id, component_type, code, description, reference_value, quantity, amount)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    ON CONFLICT (period_id, employee_id, component_type, code)
    DO UPDATE SET description = EXCLUDED.description,
                  reference_value = EXCLUDED.reference_value,
                  quantity = EXCLUDED.quantity,
                  amount = EXCLUDED.amount
  `, entry.PeriodID, entry.EmployeeID, entry.Type, entry.Code, entry.Description, entry.ReferenceValue, entry.Quantity, entry.Amount)
	return err
}

func (s *Store) DeleteEntry(ctx context.Context, periodID, employeeID, code string) error {
	_, err := s.DB.Exec(ctx, `
    DELETE FROM payroll_entries
    WHERE period_id = $1 AND employee_id = $2 AND code = $3
  `, periodID, employeeID, code)
	return err
}

func (s *Store) ListEntries(ctx context.Context, periodID, employeeID string) ([]Entry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, period_id, employee_id, component_type, code, description, reference_value, quantity, amount
    FROM payroll_entries
    WHERE period_id = $1 AND employee_id = $2
    ORDER BY component_type, code
  `, periodID, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.ID, &entry.PeriodID, &entry.EmployeeID, &entry.Type, &entry.Code, &entry.Description, &entry.ReferenceValue, &entry.Quantity, &entry.Amount); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *Store) UpsertSlip(ctx context.Context, slip PaySlip) (PaySlip, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO pay_slips (period_id, employee_id, gross_salary, total_earnings, total_deductions, net_salary, inss_amount, irrf_amount, fgts_amount, status, generated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
    ON CONFLICT (period_id, employee_id)
    DO UPDATE SET gross_salary = EXCLUDED.gross_salary,
                  total_earnings = EXCLUDED.total_earnings,
                  total_deductions = EXCLUDED.total_deductions,
                  net_salary = EXCLUDED.net_salary,
                  inss_amount = EXCLUDED.inss_amount,
                  irrf_amount = EXCLUDED.irrf_amount,
                  fgts_amount = EXCLUDED.fgts_amount,
                  status = EXCLUDED.status,
                  generated_at = EXCLUDED.generated_at
    RETURNING id
  `, slip.PeriodID, slip.EmployeeID, slip.GrossSalary, slip.TotalEarnings, slip.TotalDeductions, slip.NetSalary, slip.INSSAmount, slip.IRRFAmount, slip.FGTSAmount, slip.Status, slip.GeneratedAt).Scan(&slip.ID)
	if err != nil {
		return PaySlip{}, err
	}
	return slip, nil
}

func (s *Store) GetSlip(ctx context.Context, periodID, employeeID string) (PaySlip, error) {
	var slip PaySlip
	err := s.DB.QueryRow(ctx, `
    SELECT id, period_id, employee_id, gross_salary, total_earnings, total_deductions, net_salary, inss_amount, irrf_amount, fgts_amount, status, generated_at
    FROM pay_slips
    WHERE period_id = $1 AND employee_id = $2
  `, periodID, employeeID).Scan(&slip.ID, &slip.PeriodID, &slip.EmployeeID, &slip.GrossSalary, &slip.TotalEarnings, &slip.TotalDeductions, &slip.NetSalary, &slip.INSSAmount, &slip.IRRFAmount, &slip.FGTSAmount, &slip.Status, &slip.GeneratedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return PaySlip{}, ErrSlipNotFound
	}
	if err != nil {
		return PaySlip{}, err
	}
	return slip, nil
}

func (s *Store) ListSlips(ctx context.Context, periodID string) ([]PaySlip, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, period_id, employee_id, gross_salary, total_earnings, total_deductions, net_salary, inss_amount, irrf_amount, fgts_amount, status, generated_at
    FROM pay_slips
    WHERE period_id = $1
    ORDER BY employee_id
  `, periodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slips []PaySlip
	for rows.Next() {
		var slip PaySlip
		if err := rows.Scan(&slip.ID, &slip.PeriodID, &slip.EmployeeID, &slip.GrossSalary, &slip.TotalEarnings, &slip.TotalDeductions, &slip.NetSalary, &slip.INSSAmount, &slip.IRRFAmount, &slip.FGTSAmount, &slip.Status, &slip.GeneratedAt); err != nil {
			return nil, err
		}
		slips = append(slips, slip)
	}
	return slips, rows.Err()
}

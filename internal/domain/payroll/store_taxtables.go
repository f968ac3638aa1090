package payroll

import (
	"context"
	"time"
)

func (s *Store) ListBrackets(ctx context.Context, taxType string, asOf time.Time) ([]Bracket, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT bracket_min, bracket_max, rate, deduction_value
    FROM tax_tables
    WHERE tax_type = $1
      AND effective_from <= $2
      AND (effective_until IS NULL OR effective_until >= $2)
    ORDER BY bracket_min
  `, taxType, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brackets []Bracket
	for rows.Next() {
		var b Bracket
		if err := rows.Scan(&b.Min, &b.Max, &b.Rate, &b.Deduction); err != nil {
			return nil, err
		}
		brackets = append(brackets, b)
	}
	return brackets, rows.Err()
}

func (s *Store) ListTaxTables(ctx context.Context, taxType string) ([]TaxTableRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, tax_type, bracket_min, bracket_max, rate, deduction_value, effective_from, effective_until
    FROM tax_tables
    WHERE $1 = '' OR tax_type = $1
    ORDER BY tax_type, effective_from, bracket_min
  `, taxType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []TaxTableRow
	for rows.Next() {
		var row TaxTableRow
		if err := rows.Scan(&row.ID, &row.TaxType, &row.Min, &row.Max, &row.Rate, &row.Deduction, &row.EffectiveFrom, &row.EffectiveUntil); err != nil {
			return nil, err
		}
		tables = append(tables, row)
	}
	return tables, rows.Err()
}

func (s *Store) ListActiveComponents(ctx context.Context, employeeID string, asOf time.Time) ([]Component, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, component_type, amount, is_active, effective_from, effective_until
    FROM payroll_components
    WHERE employee_id = $1
      AND is_active = true
      AND effective_from <= $2
      AND (effective_until IS NULL OR effective_until >= $2)
    ORDER BY component_type
  `, employeeID, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var components []Component
	for rows.Next() {
		var component Component
		if err := rows.Scan(&component.ID, &component.EmployeeID, &component.Type, &component.Amount, &component.Active, &component.EffectiveFrom, &component.EffectiveUntil); err != nil {
			return nil, err
		}
		components = append(components, component)
	}
	return components, rows.Err()
}

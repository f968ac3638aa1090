package payroll

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

func (s *Store) FindActiveEmployee(ctx context.Context, employeeID string) (EmployeeInfo, error) {
	var employee EmployeeInfo
	err := s.DB.QueryRow(ctx, `
    SELECT id, first_name, last_name, status, employment_type, dependents
    FROM employees
    WHERE id = $1 AND status = $2
  `, employeeID, EmployeeStatusActive).Scan(&employee.ID, &employee.FirstName, &employee.LastName, &employee.Status, &employee.EmploymentType, &employee.Dependents)
	if errors.Is(err, pgx.ErrNoRows) {
		return EmployeeInfo{}, ErrEmployeeNotFound
	}
	if err != nil {
		return EmployeeInfo{}, err
	}
	return employee, nil
}

func (s *Store) ListEligibleEmployees(ctx context.Context) ([]EmployeeInfo, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, first_name, last_name, status, employment_type, dependents
    FROM employees
    WHERE status = $1 AND employment_type = $2
    ORDER BY id
  `, EmployeeStatusActive, EmploymentCLT)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []EmployeeInfo
	for rows.Next() {
		var employee EmployeeInfo
		if err := rows.Scan(&employee.ID, &employee.FirstName, &employee.LastName, &employee.Status, &employee.EmploymentType, &employee.Dependents); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}

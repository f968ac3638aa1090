package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"folha/internal/domain/payroll"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = "id, first_name, last_name, email, status, employment_type, dependents, hired_at, created_at"

// Create inserts the employee and, in the same transaction, the base_salary
// pay component effective from the hire date.
func (s *Store) Create(ctx context.Context, payload NewEmployee) (Employee, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Employee{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var created Employee
	err = tx.QueryRow(ctx, `
    INSERT INTO employees (first_name, last_name, email, status, employment_type, dependents, hired_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING `+employeeColumns+`
  `, payload.FirstName, payload.LastName, payload.Email, payroll.EmployeeStatusActive, payload.EmploymentType, payload.Dependents, payload.HiredAt).
		Scan(&created.ID, &created.FirstName, &created.LastName, &created.Email, &created.Status, &created.EmploymentType, &created.Dependents, &created.HiredAt, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Employee{}, ErrEmailTaken
		}
		return Employee{}, err
	}

	_, err = tx.Exec(ctx, `
    INSERT INTO payroll_components (employee_id, component_type, amount, is_active, effective_from)
    VALUES ($1,$2,$3,true,$4)
  `, created.ID, payroll.ComponentBaseSalary, payload.BaseSalary, payload.HiredAt)
	if err != nil {
		return Employee{}, fmt.Errorf("seed base salary component: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Employee{}, err
	}
	return created, nil
}

func (s *Store) Get(ctx context.Context, employeeID string) (Employee, error) {
	var employee Employee
	err := s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+` FROM employees WHERE id = $1
  `, employeeID).Scan(&employee.ID, &employee.FirstName, &employee.LastName, &employee.Email, &employee.Status, &employee.EmploymentType, &employee.Dependents, &employee.HiredAt, &employee.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return employee, nil
}

func (s *Store) List(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+employeeColumns+` FROM employees ORDER BY last_name, first_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var employee Employee
		if err := rows.Scan(&employee.ID, &employee.FirstName, &employee.LastName, &employee.Email, &employee.Status, &employee.EmploymentType, &employee.Dependents, &employee.HiredAt, &employee.CreatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}

// Apply updates only the fields the patch carries.
func (s *Store) Apply(ctx context.Context, employeeID string, patch Patch) (Employee, error) {
	query := "UPDATE employees SET id = id"
	args := []any{}
	addSet := func(column string, value any) {
		args = append(args, value)
		query += fmt.Sprintf(", %s = $%d", column, len(args))
	}
	if patch.FirstName != nil {
		addSet("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		addSet("last_name", *patch.LastName)
	}
	if patch.Status != nil {
		addSet("status", *patch.Status)
	}
	if patch.EmploymentType != nil {
		addSet("employment_type", *patch.EmploymentType)
	}
	if patch.Dependents != nil {
		addSet("dependents", *patch.Dependents)
	}
	args = append(args, employeeID)
	query += fmt.Sprintf(" WHERE id = $%d RETURNING %s", len(args), employeeColumns)

	var employee Employee
	err := s.DB.QueryRow(ctx, query, args...).
		Scan(&employee.ID, &employee.FirstName, &employee.LastName, &employee.Email, &employee.Status, &employee.EmploymentType, &employee.Dependents, &employee.HiredAt, &employee.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return employee, nil
}

// UpdateSalary changes the active base_salary component's amount in place;
// salary changes supersede the value rather than appending components.
func (s *Store) UpdateSalary(ctx context.Context, employeeID string, amount decimal.Decimal) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE payroll_components
    SET amount = $1
    WHERE employee_id = $2 AND component_type = $3 AND is_active = true
  `, amount, employeeID, payroll.ComponentBaseSalary)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

package employee

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"folha/internal/domain/payroll"
)

type StoreAPI interface {
	Create(ctx context.Context, payload NewEmployee) (Employee, error)
	Get(ctx context.Context, employeeID string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
	Apply(ctx context.Context, employeeID string, patch Patch) (Employee, error)
	UpdateSalary(ctx context.Context, employeeID string, amount decimal.Decimal) error
}

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, payload NewEmployee) (Employee, error) {
	payload.FirstName = strings.TrimSpace(payload.FirstName)
	payload.LastName = strings.TrimSpace(payload.LastName)
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	if payload.FirstName == "" || payload.LastName == "" {
		return Employee{}, fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if payload.Email == "" || !strings.Contains(payload.Email, "@") {
		return Employee{}, fmt.Errorf("%w: a valid email is required", ErrInvalid)
	}
	if payload.EmploymentType != payroll.EmploymentCLT && payload.EmploymentType != payroll.EmploymentContractor {
		return Employee{}, fmt.Errorf("%w: unknown employment type %q", ErrInvalid, payload.EmploymentType)
	}
	if payload.BaseSalary.Sign() <= 0 {
		return Employee{}, fmt.Errorf("%w: base salary must be positive", ErrInvalid)
	}
	if payload.Dependents < 0 {
		payload.Dependents = 0
	}
	if payload.HiredAt.IsZero() {
		payload.HiredAt = time.Now().UTC()
	}
	return s.store.Create(ctx, payload)
}

func (s *Service) Get(ctx context.Context, employeeID string) (Employee, error) {
	return s.store.Get(ctx, employeeID)
}

func (s *Service) List(ctx context.Context) ([]Employee, error) {
	return s.store.List(ctx)
}

func (s *Service) Update(ctx context.Context, employeeID string, patch Patch) (Employee, error) {
	if patch.Status != nil {
		if *patch.Status != payroll.EmployeeStatusActive && *patch.Status != payroll.EmployeeStatusInactive {
			return Employee{}, fmt.Errorf("%w: unknown status %q", ErrInvalid, *patch.Status)
		}
	}
	if patch.EmploymentType != nil {
		if *patch.EmploymentType != payroll.EmploymentCLT && *patch.EmploymentType != payroll.EmploymentContractor {
			return Employee{}, fmt.Errorf("%w: unknown employment type %q", ErrInvalid, *patch.EmploymentType)
		}
	}
	if patch.Dependents != nil && *patch.Dependents < 0 {
		zero := 0
		patch.Dependents = &zero
	}
	return s.store.Apply(ctx, employeeID, patch)
}

// ChangeSalary updates the active base_salary component amount in place.
func (s *Service) ChangeSalary(ctx context.Context, employeeID string, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("%w: salary must be positive", ErrInvalid)
	}
	if _, err := s.store.Get(ctx, employeeID); err != nil {
		return err
	}
	return s.store.UpdateSalary(ctx, employeeID, amount)
}

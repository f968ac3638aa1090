package payroll

import (
	"context"
	"time"
)

type PeriodStore interface {
	CreatePeriod(ctx context.Context, period Period) (Period, error)
	GetPeriod(ctx context.Context, periodID string) (Period, error)
	ListPeriods(ctx context.Context) ([]Period, error)
	// ClosePeriod must serialize against concurrent closes (row lock) and
	// return ErrPeriodClosed when the period is no longer open.
	ClosePeriod(ctx context.Context, periodID, actorID string, at time.Time) (Period, error)
}

type ComponentStore interface {
	ListActiveComponents(ctx context.Context, employeeID string, asOf time.Time) ([]Component, error)
}

type EntryStore interface {
	UpsertEntry(ctx context.Context, entry Entry) error
	DeleteEntry(ctx context.Context, periodID, employeeID, code string) error
	ListEntries(ctx context.Context, periodID, employeeID string) ([]Entry, error)
}

type SlipStore interface {
	UpsertSlip(ctx context.Context, slip PaySlip) (PaySlip, error)
	GetSlip(ctx context.Context, periodID, employeeID string) (PaySlip, error)
	ListSlips(ctx context.Context, periodID string) ([]PaySlip, error)
}

type TaxTableStore interface {
	ListBrackets(ctx context.Context, taxType string, asOf time.Time) ([]Bracket, error)
	ListTaxTables(ctx context.Context, taxType string) ([]TaxTableRow, error)
}

// EmployeeDirectory is the read-only collaborator that resolves employees
// for payroll purposes.
type EmployeeDirectory interface {
	FindActiveEmployee(ctx context.Context, employeeID string) (EmployeeInfo, error)
	// ListEligibleEmployees returns active employees whose employment type
	// requires payroll (salaried, not contractors).
	ListEligibleEmployees(ctx context.Context) ([]EmployeeInfo, error)
}

// AuditRecorder is fire-and-forget: implementations log failures and never
// return them, so auditing can never abort payroll processing.
type AuditRecorder interface {
	Record(ctx context.Context, actorID, action, entityType, entityID, description string)
}

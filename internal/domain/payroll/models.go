package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type Period struct {
	ID        string     `json:"id"`
	Month     int        `json:"month"`
	Year      int        `json:"year"`
	Status    string     `json:"status"`
	ClosedBy  *string    `json:"closedBy,omitempty"`
	ClosedAt  *time.Time `json:"closedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ReferenceDate is the date component effectiveness is evaluated against:
// the last day of the period's month.
func (p Period) ReferenceDate() time.Time {
	return time.Date(p.Year, time.Month(p.Month)+1, 0, 0, 0, 0, 0, time.UTC)
}

type Component struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employeeId"`
	Type           string          `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	Active         bool            `json:"active"`
	EffectiveFrom  time.Time       `json:"effectiveFrom"`
	EffectiveUntil *time.Time      `json:"effectiveUntil,omitempty"`
}

type Entry struct {
	ID             string              `json:"id"`
	PeriodID       string              `json:"periodId"`
	EmployeeID     string              `json:"employeeId"`
	Type           string              `json:"type"`
	Code           string              `json:"code"`
	Description    string              `json:"description"`
	ReferenceValue decimal.NullDecimal `json:"referenceValue,omitempty"`
	Quantity       decimal.NullDecimal `json:"quantity,omitempty"`
	Amount         decimal.Decimal     `json:"amount"`
}

type PaySlip struct {
	ID              string          `json:"id"`
	PeriodID        string          `json:"periodId"`
	EmployeeID      string          `json:"employeeId"`
	GrossSalary     decimal.Decimal `json:"grossSalary"`
	TotalEarnings   decimal.Decimal `json:"totalEarnings"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	NetSalary       decimal.Decimal `json:"netSalary"`
	INSSAmount      decimal.Decimal `json:"inssAmount"`
	IRRFAmount      decimal.Decimal `json:"irrfAmount"`
	FGTSAmount      decimal.Decimal `json:"fgtsAmount"`
	Status          string          `json:"status"`
	GeneratedAt     time.Time       `json:"generatedAt"`
}

// Bracket is one contiguous range of a progressive tax table. Rate is a
// percentage (7.5 means 7.5%), Max is open-ended when unset and Deduction is
// only meaningful for the marginal-with-deduction method.
type Bracket struct {
	Min       decimal.Decimal     `json:"min"`
	Max       decimal.NullDecimal `json:"max"`
	Rate      decimal.Decimal     `json:"rate"`
	Deduction decimal.Decimal     `json:"deduction"`
}

type TaxTableRow struct {
	ID             string     `json:"id"`
	TaxType        string     `json:"taxType"`
	EffectiveFrom  time.Time  `json:"effectiveFrom"`
	EffectiveUntil *time.Time `json:"effectiveUntil,omitempty"`
	Bracket
}

// EmployeeInfo is the read-only projection of the employee directory the
// payroll engines consume.
type EmployeeInfo struct {
	ID             string `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Status         string `json:"status"`
	EmploymentType string `json:"employmentType"`
	Dependents     int    `json:"dependents"`
}

type EmployeeFailure struct {
	EmployeeID string `json:"employeeId"`
	Reason     string `json:"reason"`
}

type CalculateResult struct {
	Slips    []PaySlip         `json:"paySlips"`
	Failures []EmployeeFailure `json:"failures,omitempty"`
}

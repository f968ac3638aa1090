package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	Status         string    `json:"status"`
	EmploymentType string    `json:"employmentType"`
	Dependents     int       `json:"dependents"`
	HiredAt        time.Time `json:"hiredAt"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewEmployee is the creation payload. BaseSalary seeds the employee's
// recurring base_salary pay component effective from the hire date.
type NewEmployee struct {
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	Email          string          `json:"email"`
	EmploymentType string          `json:"employmentType"`
	Dependents     int             `json:"dependents"`
	HiredAt        time.Time       `json:"hiredAt"`
	BaseSalary     decimal.Decimal `json:"baseSalary"`
}

// Patch carries a partial update; only set fields are applied.
type Patch struct {
	FirstName      *string `json:"firstName,omitempty"`
	LastName       *string `json:"lastName,omitempty"`
	Status         *string `json:"status,omitempty"`
	EmploymentType *string `json:"employmentType,omitempty"`
	Dependents     *int    `json:"dependents,omitempty"`
}

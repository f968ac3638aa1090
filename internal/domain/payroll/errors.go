package payroll

import "errors"

var (
	ErrPeriodNotFound    = errors.New("payroll period not found")
	ErrDuplicatePeriod   = errors.New("payroll period already exists for month and year")
	ErrPeriodClosed      = errors.New("payroll period is already closed")
	ErrInvalidPeriod     = errors.New("invalid payroll period")
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrSlipNotFound      = errors.New("pay slip not found")
	ErrMalformedTaxTable = errors.New("malformed tax table")
)

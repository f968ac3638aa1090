package payroll

const (
	PeriodStatusOpen   = "open"
	PeriodStatusClosed = "closed"

	SlipStatusDraft = "draft"
	SlipStatusFinal = "final"

	ComponentBaseSalary = "base_salary"
	ComponentFixedBonus = "fixed_bonus"
	ComponentOther      = "other"

	EntryTypeEarning   = "earning"
	EntryTypeDeduction = "deduction"

	CodeINSS       = "inss"
	CodeIRRF       = "irrf"
	CodeFGTS       = "fgts"
	CodeVTDiscount = "vt_discount"

	TaxTypeINSS = "inss"
	TaxTypeIRRF = "irrf"

	EmploymentCLT        = "clt"
	EmploymentContractor = "contractor"

	EmployeeStatusActive   = "active"
	EmployeeStatusInactive = "inactive"
)

package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var componentDescriptions = map[string]string{
	ComponentBaseSalary: "Base salary",
	ComponentFixedBonus: "Fixed bonus",
	ComponentOther:      "Other earnings",
}

// Generator turns an employee's resolved components plus the computed
// mandatory deductions into the canonical entry set and pay slip for one
// (period, employee) pair. Every write is an upsert by natural key, so
// repeated generation with unchanged inputs converges on the same rows.
type Generator struct {
	components *ComponentResolver
	tables     *TableProvider
	directory  EmployeeDirectory
	entries    EntryStore
	slips      SlipStore
	now        func() time.Time
}

func NewGenerator(components *ComponentResolver, tables *TableProvider, directory EmployeeDirectory, entries EntryStore, slips SlipStore) *Generator {
	return &Generator{
		components: components,
		tables:     tables,
		directory:  directory,
		entries:    entries,
		slips:      slips,
		now:        time.Now,
	}
}

func (g *Generator) Generate(ctx context.Context, period Period, employeeID string, finalize bool) (PaySlip, error) {
	employee, err := g.directory.FindActiveEmployee(ctx, employeeID)
	if err != nil {
		return PaySlip{}, err
	}

	refDate := period.ReferenceDate()
	components, err := g.components.Resolve(ctx, employee.ID, refDate)
	if err != nil {
		return PaySlip{}, err
	}

	gross := decimal.Zero
	for _, component := range components {
		gross = gross.Add(component.Amount)
	}

	inssBrackets, err := g.tables.Brackets(ctx, TaxTypeINSS, refDate)
	if err != nil {
		return PaySlip{}, err
	}
	irrfBrackets, err := g.tables.Brackets(ctx, TaxTypeIRRF, refDate)
	if err != nil {
		return PaySlip{}, err
	}

	inss := CumulativeContribution(gross, inssBrackets)
	taxable := WithholdingBase(gross, inss, employee.Dependents)
	irrf := MarginalWithholding(taxable, irrfBrackets)
	fgts := EmployerDeposit(gross)
	vt := TransportDiscount(gross)

	for _, component := range components {
		description, ok := componentDescriptions[component.Type]
		if !ok {
			description = component.Type
		}
		entry := Entry{
			PeriodID:    period.ID,
			EmployeeID:  employee.ID,
			Type:        EntryTypeEarning,
			Code:        component.Type,
			Description: description,
			Amount:      component.Amount,
		}
		if err := g.entries.UpsertEntry(ctx, entry); err != nil {
			return PaySlip{}, fmt.Errorf("upsert %s entry: %w", entry.Code, err)
		}
	}

	deductions := []Entry{
		{
			PeriodID:       period.ID,
			EmployeeID:     employee.ID,
			Type:           EntryTypeDeduction,
			Code:           CodeINSS,
			Description:    "INSS contribution",
			ReferenceValue: decimal.NewNullDecimal(gross),
			Amount:         inss,
		},
		{
			PeriodID:       period.ID,
			EmployeeID:     employee.ID,
			Type:           EntryTypeDeduction,
			Code:           CodeFGTS,
			Description:    "FGTS employer deposit",
			ReferenceValue: decimal.NewNullDecimal(gross),
			Amount:         fgts,
		},
		{
			PeriodID:       period.ID,
			EmployeeID:     employee.ID,
			Type:           EntryTypeDeduction,
			Code:           CodeVTDiscount,
			Description:    "Transport voucher discount",
			ReferenceValue: decimal.NewNullDecimal(gross),
			Amount:         vt,
		},
	}
	for _, entry := range deductions {
		if err := g.entries.UpsertEntry(ctx, entry); err != nil {
			return PaySlip{}, fmt.Errorf("upsert %s entry: %w", entry.Code, err)
		}
	}

	// A zero IRRF produces no entry; a rerun that drops it to zero must not
	// leave the previous run's entry behind.
	if irrf.Sign() > 0 {
		entry := Entry{
			PeriodID:       period.ID,
			EmployeeID:     employee.ID,
			Type:           EntryTypeDeduction,
			Code:           CodeIRRF,
			Description:    "IRRF withholding",
			ReferenceValue: decimal.NewNullDecimal(taxable),
			Amount:         irrf,
		}
		if err := g.entries.UpsertEntry(ctx, entry); err != nil {
			return PaySlip{}, fmt.Errorf("upsert %s entry: %w", entry.Code, err)
		}
	} else if err := g.entries.DeleteEntry(ctx, period.ID, employee.ID, CodeIRRF); err != nil {
		return PaySlip{}, fmt.Errorf("delete stale %s entry: %w", CodeIRRF, err)
	}

	totalDeductions := inss.Add(irrf).Add(vt)
	status := SlipStatusDraft
	if finalize {
		status = SlipStatusFinal
	}
	slip := PaySlip{
		PeriodID:        period.ID,
		EmployeeID:      employee.ID,
		GrossSalary:     gross,
		TotalEarnings:   gross,
		TotalDeductions: totalDeductions,
		NetSalary:       gross.Sub(totalDeductions),
		INSSAmount:      inss,
		IRRFAmount:      irrf,
		FGTSAmount:      fgts,
		Status:          status,
		GeneratedAt:     g.now().UTC(),
	}
	saved, err := g.slips.UpsertSlip(ctx, slip)
	if err != nil {
		return PaySlip{}, fmt.Errorf("upsert pay slip: %w", err)
	}
	return saved, nil
}

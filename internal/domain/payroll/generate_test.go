package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPeriod() Period {
	return Period{ID: "period-1", Month: 1, Year: 2024, Status: PeriodStatusOpen}
}

func newTestGenerator(stores *memStores) *Generator {
	generator := NewGenerator(
		NewComponentResolver(stores),
		NewTableProvider(stores),
		stores,
		stores,
		stores,
	)
	generator.now = func() time.Time { return time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC) }
	return generator
}

func addEmployee(stores *memStores, id string, salary string, dependents int) {
	stores.employees[id] = EmployeeInfo{
		ID:             id,
		FirstName:      "Ana",
		LastName:       "Souza",
		Status:         EmployeeStatusActive,
		EmploymentType: EmploymentCLT,
		Dependents:     dependents,
	}
	stores.components[id] = []Component{{
		ID:            id + "-base",
		EmployeeID:    id,
		Type:          ComponentBaseSalary,
		Amount:        decimal.RequireFromString(salary),
		Active:        true,
		EffectiveFrom: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	}}
}

func TestGenerateProducesEntriesAndSlip(t *testing.T) {
	stores := newMemStores()
	addEmployee(stores, "emp-1", "3000.00", 0)
	generator := newTestGenerator(stores)

	slip, err := generator.Generate(context.Background(), testPeriod(), "emp-1", false)
	require.NoError(t, err)

	assert.True(t, slip.GrossSalary.Equal(d(t, "3000.00")), "gross %s", slip.GrossSalary)
	assert.True(t, slip.INSSAmount.Equal(d(t, "258.82")), "inss %s", slip.INSSAmount)
	// taxable 2741.18 -> 7.5% bracket: 205.5885 - 169.44 = 36.15
	assert.True(t, slip.IRRFAmount.Equal(d(t, "36.15")), "irrf %s", slip.IRRFAmount)
	assert.True(t, slip.FGTSAmount.Equal(d(t, "240.00")), "fgts %s", slip.FGTSAmount)
	assert.True(t, slip.TotalEarnings.Equal(d(t, "3000.00")))
	// deductions: 258.82 + 36.15 + 180.00 (vt); fgts informational only.
	assert.True(t, slip.TotalDeductions.Equal(d(t, "474.97")), "deductions %s", slip.TotalDeductions)
	assert.True(t, slip.NetSalary.Equal(d(t, "2525.03")), "net %s", slip.NetSalary)
	assert.Equal(t, SlipStatusDraft, slip.Status)

	entries, err := stores.ListEntries(context.Background(), "period-1", "emp-1")
	require.NoError(t, err)
	require.Len(t, entries, 5)

	byCode := map[string]Entry{}
	for _, entry := range entries {
		byCode[entry.Code] = entry
	}
	assert.Equal(t, EntryTypeEarning, byCode[ComponentBaseSalary].Type)
	assert.Equal(t, EntryTypeDeduction, byCode[CodeINSS].Type)
	assert.True(t, byCode[CodeINSS].ReferenceValue.Decimal.Equal(d(t, "3000.00")))
	assert.True(t, byCode[CodeVTDiscount].Amount.Equal(d(t, "180.00")))
	assert.True(t, byCode[CodeIRRF].ReferenceValue.Decimal.Equal(d(t, "2741.18")))
}

func TestGenerateIsIdempotent(t *testing.T) {
	stores := newMemStores()
	addEmployee(stores, "emp-1", "3000.00", 0)
	generator := newTestGenerator(stores)

	first, err := generator.Generate(context.Background(), testPeriod(), "emp-1", false)
	require.NoError(t, err)
	second, err := generator.Generate(context.Background(), testPeriod(), "emp-1", false)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.NetSalary.Equal(second.NetSalary))
	assert.Len(t, stores.slips, 1)
	assert.Len(t, stores.entries, 5)
}

func TestGenerateSumsMultipleComponents(t *testing.T) {
	stores := newMemStores()
	addEmployee(stores, "emp-1", "3000.00", 0)
	stores.components["emp-1"] = append(stores.components["emp-1"], Component{
		ID:            "emp-1-bonus",
		EmployeeID:    "emp-1",
		Type:          ComponentFixedBonus,
		Amount:        decimal.RequireFromString("500.00"),
		Active:        true,
		EffectiveFrom: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	generator := newTestGenerator(stores)

	slip, err := generator.Generate(context.Background(), testPeriod(), "emp-1", false)
	require.NoError(t, err)
	assert.True(t, slip.GrossSalary.Equal(d(t, "3500.00")), "gross %s", slip.GrossSalary)

	entries, err := stores.ListEntries(context.Background(), "period-1", "emp-1")
	require.NoError(t, err)
	assert.Len(t, entries, 6)
}

func TestGenerateRemovesStaleWithholdingEntry(t *testing.T) {
	stores := newMemStores()
	addEmployee(stores, "emp-1", "3000.00", 0)
	generator := newTestGenerator(stores)

	_, err := generator.Generate(context.Background(), testPeriod(), "emp-1", false)
	require.NoError(t, err)
	require.Contains(t, stores.entries, entryKey("period-1", "emp-1", EntryTypeDeduction, CodeIRRF))

	// Salary change puts the employee below the exemption line; the rerun
	// must also drop the previous run's irrf entry.
	stores.components["emp-1"][0].Amount = decimal.RequireFromString("2000.00")
	slip, err := generator.Generate(context.Background(), testPeriod(), "emp-1", false)
	require.NoError(t, err)

	assert.True(t, slip.IRRFAmount.IsZero())
	assert.NotContains(t, stores.entries, entryKey("period-1", "emp-1", EntryTypeDeduction, CodeIRRF))
	assert.Len(t, stores.entries, 4)
}

func TestGenerateCapsTransportDiscount(t *testing.T) {
	stores := newMemStores()
	addEmployee(stores, "emp-1", "10000.00", 0)
	generator := newTestGenerator(stores)

	slip, err := generator.Generate(context.Background(), testPeriod(), "emp-1", false)
	require.NoError(t, err)

	vt := stores.entries[entryKey("period-1", "emp-1", EntryTypeDeduction, CodeVTDiscount)]
	assert.True(t, vt.Amount.Equal(d(t, "200.00")), "vt %s", vt.Amount)
	// INSS capped at the ceiling for a gross above the last bracket max.
	assert.True(t, slip.INSSAmount.Equal(d(t, "908.86")), "inss %s", slip.INSSAmount)
}

func TestGenerateDependentsReduceWithholding(t *testing.T) {
	stores := newMemStores()
	addEmployee(stores, "emp-1", "3000.00", 2)
	generator := newTestGenerator(stores)

	slip, err := generator.Generate(context.Background(), testPeriod(), "emp-1", false)
	require.NoError(t, err)
	// taxable 3000 - 258.82 - 2*189.59 = 2362.00 -> 7.5% bracket:
	// 177.15 - 169.44 = 7.71
	assert.True(t, slip.IRRFAmount.Equal(d(t, "7.71")), "irrf %s", slip.IRRFAmount)
}

func TestGenerateFinalizeMarksSlipFinal(t *testing.T) {
	stores := newMemStores()
	addEmployee(stores, "emp-1", "3000.00", 0)
	generator := newTestGenerator(stores)

	slip, err := generator.Generate(context.Background(), testPeriod(), "emp-1", true)
	require.NoError(t, err)
	assert.Equal(t, SlipStatusFinal, slip.Status)
}

func TestGenerateUnknownEmployee(t *testing.T) {
	stores := newMemStores()
	generator := newTestGenerator(stores)

	_, err := generator.Generate(context.Background(), testPeriod(), "ghost", false)
	require.ErrorIs(t, err, ErrEmployeeNotFound)
	assert.Empty(t, stores.slips)
	assert.Empty(t, stores.entries)
}

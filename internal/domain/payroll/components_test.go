package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPeriodReferenceDate(t *testing.T) {
	got := Period{Month: 2, Year: 2024}.ReferenceDate()
	if got != time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("expected leap-year February 29th, got %v", got)
	}

	got = Period{Month: 12, Year: 2023}.ReferenceDate()
	if got != time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("expected December 31st, got %v", got)
	}
}

func TestResolveSkipsInactiveAndExpiredComponents(t *testing.T) {
	until := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	stores := newMemStores()
	stores.components["emp-1"] = []Component{
		{
			EmployeeID:    "emp-1",
			Type:          ComponentBaseSalary,
			Amount:        decimal.RequireFromString("3000.00"),
			Active:        true,
			EffectiveFrom: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			EmployeeID:     "emp-1",
			Type:           ComponentFixedBonus,
			Amount:         decimal.RequireFromString("100.00"),
			Active:         true,
			EffectiveFrom:  time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			EffectiveUntil: &until,
		},
		{
			EmployeeID:    "emp-1",
			Type:          ComponentOther,
			Amount:        decimal.RequireFromString("50.00"),
			Active:        false,
			EffectiveFrom: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	resolver := NewComponentResolver(stores)
	components, err := resolver.Resolve(context.Background(), "emp-1", time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(components) != 1 {
		t.Fatalf("expected 1 component, got %d", len(components))
	}
	if components[0].Type != ComponentBaseSalary {
		t.Fatalf("expected base salary component, got %s", components[0].Type)
	}
}

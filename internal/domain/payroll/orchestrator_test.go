package payroll

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrchestrator(stores *memStores, audit *fakeAudit, metrics *fakeRunRecorder) *Orchestrator {
	return NewOrchestrator(stores, stores, newTestGenerator(stores), audit, metrics, 2)
}

func TestCalculateGeneratesSlipsForEligibleEmployees(t *testing.T) {
	stores := newMemStores()
	addEmployee(stores, "emp-1", "3000.00", 0)
	addEmployee(stores, "emp-2", "5000.00", 1)
	stores.eligible = []string{"emp-2", "emp-1"}
	period, err := stores.CreatePeriod(context.Background(), Period{Month: 1, Year: 2024, Status: PeriodStatusOpen})
	require.NoError(t, err)

	audit := &fakeAudit{}
	metrics := &fakeRunRecorder{}
	orchestrator := newTestOrchestrator(stores, audit, metrics)

	result, err := orchestrator.Calculate(context.Background(), period.ID, "user-1", false)
	require.NoError(t, err)

	require.Len(t, result.Slips, 2)
	assert.Empty(t, result.Failures)
	assert.Equal(t, "emp-1", result.Slips[0].EmployeeID)
	assert.Equal(t, "emp-2", result.Slips[1].EmployeeID)
	assert.True(t, result.Slips[1].INSSAmount.Equal(d(t, "518.82")))

	require.Len(t, audit.events, 1)
	assert.Equal(t, "payroll.calculate", audit.events[0].Action)
	assert.Equal(t, []string{"2/0"}, metrics.runs)
}

func TestCalculateSkipsAndReportsFailures(t *testing.T) {
	stores := newMemStores()
	addEmployee(stores, "emp-1", "3000.00", 0)
	stores.eligible = []string{"emp-1", "ghost"}
	period, err := stores.CreatePeriod(context.Background(), Period{Month: 2, Year: 2024, Status: PeriodStatusOpen})
	require.NoError(t, err)

	metrics := &fakeRunRecorder{}
	orchestrator := newTestOrchestrator(stores, &fakeAudit{}, metrics)

	result, err := orchestrator.Calculate(context.Background(), period.ID, "user-1", false)
	require.NoError(t, err)

	require.Len(t, result.Slips, 1)
	assert.Equal(t, "emp-1", result.Slips[0].EmployeeID)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "ghost", result.Failures[0].EmployeeID)
	assert.Contains(t, result.Failures[0].Reason, "not found")
	assert.Equal(t, []string{"1/1"}, metrics.runs)
}

func TestCalculateRerunConvergesAfterPartialFailure(t *testing.T) {
	stores := newMemStores()
	addEmployee(stores, "emp-1", "3000.00", 0)
	stores.eligible = []string{"emp-1", "ghost"}
	period, err := stores.CreatePeriod(context.Background(), Period{Month: 3, Year: 2024, Status: PeriodStatusOpen})
	require.NoError(t, err)

	orchestrator := newTestOrchestrator(stores, &fakeAudit{}, &fakeRunRecorder{})

	first, err := orchestrator.Calculate(context.Background(), period.ID, "user-1", false)
	require.NoError(t, err)

	addEmployee(stores, "ghost", "2000.00", 0)
	second, err := orchestrator.Calculate(context.Background(), period.ID, "user-1", false)
	require.NoError(t, err)

	assert.Len(t, second.Slips, 2)
	assert.Empty(t, second.Failures)
	// The rerun overwrote emp-1's existing rows instead of duplicating them.
	assert.Equal(t, first.Slips[0].ID, second.Slips[0].ID)
	assert.Len(t, stores.slips, 2)
}

func TestCalculateExcludesContractorsAndInactive(t *testing.T) {
	stores := newMemStores()
	addEmployee(stores, "emp-1", "3000.00", 0)
	addEmployee(stores, "emp-2", "4000.00", 0)
	addEmployee(stores, "emp-3", "4500.00", 0)
	contractor := stores.employees["emp-2"]
	contractor.EmploymentType = EmploymentContractor
	stores.employees["emp-2"] = contractor
	inactive := stores.employees["emp-3"]
	inactive.Status = EmployeeStatusInactive
	stores.employees["emp-3"] = inactive
	stores.eligible = []string{"emp-1", "emp-2", "emp-3"}
	period, err := stores.CreatePeriod(context.Background(), Period{Month: 4, Year: 2024, Status: PeriodStatusOpen})
	require.NoError(t, err)

	orchestrator := newTestOrchestrator(stores, &fakeAudit{}, &fakeRunRecorder{})

	result, err := orchestrator.Calculate(context.Background(), period.ID, "user-1", false)
	require.NoError(t, err)
	require.Len(t, result.Slips, 1)
	assert.Equal(t, "emp-1", result.Slips[0].EmployeeID)
}

func TestCalculateRejectsClosedPeriod(t *testing.T) {
	stores := newMemStores()
	addEmployee(stores, "emp-1", "3000.00", 0)
	stores.eligible = []string{"emp-1"}
	period, err := stores.CreatePeriod(context.Background(), Period{Month: 5, Year: 2024, Status: PeriodStatusOpen})
	require.NoError(t, err)
	_, err = NewLifecycle(stores, nil).Close(context.Background(), period.ID, "user-1")
	require.NoError(t, err)

	orchestrator := newTestOrchestrator(stores, &fakeAudit{}, &fakeRunRecorder{})

	_, err = orchestrator.Calculate(context.Background(), period.ID, "user-1", false)
	require.ErrorIs(t, err, ErrPeriodClosed)
}

func TestCalculateMissingPeriod(t *testing.T) {
	orchestrator := newTestOrchestrator(newMemStores(), &fakeAudit{}, &fakeRunRecorder{})

	_, err := orchestrator.Calculate(context.Background(), "missing", "user-1", false)
	require.ErrorIs(t, err, ErrPeriodNotFound)
}

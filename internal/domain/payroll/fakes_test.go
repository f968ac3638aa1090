package payroll

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memStores is an in-memory implementation of every store interface the
// engines consume, so the suites run without a database.
type memStores struct {
	mu         sync.Mutex
	periods    map[string]Period
	components map[string][]Component
	entries    map[string]Entry
	slips      map[string]PaySlip
	brackets   map[string][]Bracket
	employees  map[string]EmployeeInfo
	eligible   []string

	bracketsErr error
}

func newMemStores() *memStores {
	return &memStores{
		periods:    map[string]Period{},
		components: map[string][]Component{},
		entries:    map[string]Entry{},
		slips:      map[string]PaySlip{},
		brackets:   map[string][]Bracket{},
		employees:  map[string]EmployeeInfo{},
	}
}

func entryKey(periodID, employeeID, entryType, code string) string {
	return periodID + "|" + employeeID + "|" + entryType + "|" + code
}

func slipKey(periodID, employeeID string) string {
	return periodID + "|" + employeeID
}

func (m *memStores) CreatePeriod(_ context.Context, period Period) (Period, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.periods {
		if existing.Month == period.Month && existing.Year == period.Year {
			return Period{}, ErrDuplicatePeriod
		}
	}
	period.ID = uuid.NewString()
	period.CreatedAt = time.Now().UTC()
	m.periods[period.ID] = period
	return period, nil
}

func (m *memStores) GetPeriod(_ context.Context, periodID string) (Period, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	period, ok := m.periods[periodID]
	if !ok {
		return Period{}, ErrPeriodNotFound
	}
	return period, nil
}

func (m *memStores) ListPeriods(_ context.Context) ([]Period, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Period, 0, len(m.periods))
	for _, period := range m.periods {
		out = append(out, period)
	}
	return out, nil
}

func (m *memStores) ClosePeriod(_ context.Context, periodID, actorID string, at time.Time) (Period, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	period, ok := m.periods[periodID]
	if !ok {
		return Period{}, ErrPeriodNotFound
	}
	if period.Status == PeriodStatusClosed {
		return Period{}, ErrPeriodClosed
	}
	period.Status = PeriodStatusClosed
	period.ClosedBy = &actorID
	period.ClosedAt = &at
	m.periods[periodID] = period
	return period, nil
}

func (m *memStores) ListActiveComponents(_ context.Context, employeeID string, asOf time.Time) ([]Component, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Component
	for _, component := range m.components[employeeID] {
		if !component.Active {
			continue
		}
		if component.EffectiveFrom.After(asOf) {
			continue
		}
		if component.EffectiveUntil != nil && component.EffectiveUntil.Before(asOf) {
			continue
		}
		out = append(out, component)
	}
	return out, nil
}

func (m *memStores) UpsertEntry(_ context.Context, entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := entryKey(entry.PeriodID, entry.EmployeeID, entry.Type, entry.Code)
	if existing, ok := m.entries[key]; ok {
		entry.ID = existing.ID
	} else {
		entry.ID = uuid.NewString()
	}
	m.entries[key] = entry
	return nil
}

func (m *memStores) DeleteEntry(_ context.Context, periodID, employeeID, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, entryType := range []string{EntryTypeEarning, EntryTypeDeduction} {
		delete(m.entries, entryKey(periodID, employeeID, entryType, code))
	}
	return nil
}

func (m *memStores) ListEntries(_ context.Context, periodID, employeeID string) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Entry
	for _, entry := range m.entries {
		if entry.PeriodID == periodID && entry.EmployeeID == employeeID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (m *memStores) UpsertSlip(_ context.Context, slip PaySlip) (PaySlip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := slipKey(slip.PeriodID, slip.EmployeeID)
	if existing, ok := m.slips[key]; ok {
		slip.ID = existing.ID
	} else {
		slip.ID = uuid.NewString()
	}
	m.slips[key] = slip
	return slip, nil
}

func (m *memStores) GetSlip(_ context.Context, periodID, employeeID string) (PaySlip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	slip, ok := m.slips[slipKey(periodID, employeeID)]
	if !ok {
		return PaySlip{}, ErrSlipNotFound
	}
	return slip, nil
}

func (m *memStores) ListSlips(_ context.Context, periodID string) ([]PaySlip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []PaySlip
	for _, slip := range m.slips {
		if slip.PeriodID == periodID {
			out = append(out, slip)
		}
	}
	return out, nil
}

func (m *memStores) ListBrackets(_ context.Context, taxType string, _ time.Time) ([]Bracket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.bracketsErr != nil {
		return nil, m.bracketsErr
	}
	return m.brackets[taxType], nil
}

func (m *memStores) ListTaxTables(_ context.Context, _ string) ([]TaxTableRow, error) {
	return nil, nil
}

func (m *memStores) FindActiveEmployee(_ context.Context, employeeID string) (EmployeeInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	employee, ok := m.employees[employeeID]
	if !ok || employee.Status != EmployeeStatusActive {
		return EmployeeInfo{}, ErrEmployeeNotFound
	}
	return employee, nil
}

func (m *memStores) ListEligibleEmployees(_ context.Context) ([]EmployeeInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []EmployeeInfo
	for _, id := range m.eligible {
		if employee, ok := m.employees[id]; ok {
			if employee.Status == EmployeeStatusActive && employee.EmploymentType == EmploymentCLT {
				out = append(out, employee)
			}
			continue
		}
		// Allow tests to reference employees the directory no longer knows.
		out = append(out, EmployeeInfo{ID: id, Status: EmployeeStatusActive, EmploymentType: EmploymentCLT})
	}
	return out, nil
}

type recordedAudit struct {
	ActorID     string
	Action      string
	EntityType  string
	EntityID    string
	Description string
}

type fakeAudit struct {
	mu     sync.Mutex
	events []recordedAudit
}

func (f *fakeAudit) Record(_ context.Context, actorID, action, entityType, entityID, description string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedAudit{actorID, action, entityType, entityID, description})
}

type fakeRunRecorder struct {
	mu   sync.Mutex
	runs []string
}

func (f *fakeRunRecorder) RecordPayrollRun(slips, failures int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, fmt.Sprintf("%d/%d", slips, failures))
}

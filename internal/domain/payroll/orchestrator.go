package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

const defaultWorkers = 4

// RunRecorder receives batch outcome counters. Implemented by the platform
// metrics collector.
type RunRecorder interface {
	RecordPayrollRun(slips, failures int)
}

// Orchestrator drives entry generation for every eligible employee of a
// period. One employee's failure never blocks the rest of the batch: it is
// logged, reported in the result and the run continues.
type Orchestrator struct {
	periods   PeriodStore
	directory EmployeeDirectory
	generator *Generator
	audit     AuditRecorder
	metrics   RunRecorder
	workers   int
}

func NewOrchestrator(periods PeriodStore, directory EmployeeDirectory, generator *Generator, audit AuditRecorder, metrics RunRecorder, workers int) *Orchestrator {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Orchestrator{
		periods:   periods,
		directory: directory,
		generator: generator,
		audit:     audit,
		metrics:   metrics,
		workers:   workers,
	}
}

func (o *Orchestrator) Calculate(ctx context.Context, periodID, actorID string, finalize bool) (CalculateResult, error) {
	period, err := o.periods.GetPeriod(ctx, periodID)
	if err != nil {
		return CalculateResult{}, err
	}
	if period.Status == PeriodStatusClosed {
		return CalculateResult{}, ErrPeriodClosed
	}

	employees, err := o.directory.ListEligibleEmployees(ctx)
	if err != nil {
		return CalculateResult{}, fmt.Errorf("list eligible employees: %w", err)
	}

	var (
		mu     sync.Mutex
		result CalculateResult
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(o.workers)
	for _, employee := range employees {
		employee := employee
		group.Go(func() error {
			slip, err := o.generator.Generate(groupCtx, period, employee.ID, finalize)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				slog.Warn("pay slip generation failed",
					"periodId", period.ID, "employeeId", employee.ID, "err", err)
				result.Failures = append(result.Failures, EmployeeFailure{
					EmployeeID: employee.ID,
					Reason:     err.Error(),
				})
				return nil
			}
			result.Slips = append(result.Slips, slip)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return CalculateResult{}, err
	}

	sort.Slice(result.Slips, func(i, j int) bool {
		return result.Slips[i].EmployeeID < result.Slips[j].EmployeeID
	})
	sort.Slice(result.Failures, func(i, j int) bool {
		return result.Failures[i].EmployeeID < result.Failures[j].EmployeeID
	})

	if o.metrics != nil {
		o.metrics.RecordPayrollRun(len(result.Slips), len(result.Failures))
	}
	if o.audit != nil {
		o.audit.Record(ctx, actorID, "payroll.calculate", "payroll_period", period.ID,
			fmt.Sprintf("generated %d pay slips for %02d/%d (%d failures)",
				len(result.Slips), period.Month, period.Year, len(result.Failures)))
	}
	return result, nil
}

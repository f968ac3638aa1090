package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps in-process request and payroll-run counters.
type Collector struct {
	totalRequests    uint64
	errorRequests    uint64
	totalDurationMs  uint64
	payrollRuns      uint64
	slipsGenerated   uint64
	employeeFailures uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordPayrollRun counts one calculation batch and its outcome.
func (c *Collector) RecordPayrollRun(slips, failures int) {
	atomic.AddUint64(&c.payrollRuns, 1)
	atomic.AddUint64(&c.slipsGenerated, uint64(slips))
	atomic.AddUint64(&c.employeeFailures, uint64(failures))
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":         total,
		"errorsTotal":           atomic.LoadUint64(&c.errorRequests),
		"avgDurationMs":         avg,
		"payrollRunsTotal":      atomic.LoadUint64(&c.payrollRuns),
		"paySlipsGenerated":     atomic.LoadUint64(&c.slipsGenerated),
		"employeeFailuresTotal": atomic.LoadUint64(&c.employeeFailures),
	}
}

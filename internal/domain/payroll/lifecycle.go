package payroll

import (
	"context"
	"fmt"
	"time"
)

// Lifecycle owns the open -> closed state machine of a payroll period.
// Closed is terminal: no reopen transition exists.
type Lifecycle struct {
	periods PeriodStore
	audit   AuditRecorder
	now     func() time.Time
}

func NewLifecycle(periods PeriodStore, audit AuditRecorder) *Lifecycle {
	return &Lifecycle{periods: periods, audit: audit, now: time.Now}
}

func (l *Lifecycle) Create(ctx context.Context, month, year int) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("%w: month %d out of range", ErrInvalidPeriod, month)
	}
	if year < 2000 || year > 2100 {
		return Period{}, fmt.Errorf("%w: year %d out of range", ErrInvalidPeriod, year)
	}
	return l.periods.CreatePeriod(ctx, Period{
		Month:  month,
		Year:   year,
		Status: PeriodStatusOpen,
	})
}

func (l *Lifecycle) Get(ctx context.Context, periodID string) (Period, error) {
	return l.periods.GetPeriod(ctx, periodID)
}

func (l *Lifecycle) List(ctx context.Context) ([]Period, error) {
	return l.periods.ListPeriods(ctx)
}

// Close transitions an open period to closed, recording who closed it and
// when. Closing an already-closed period is an explicit error, not a no-op.
func (l *Lifecycle) Close(ctx context.Context, periodID, actorID string) (Period, error) {
	period, err := l.periods.ClosePeriod(ctx, periodID, actorID, l.now().UTC())
	if err != nil {
		return Period{}, err
	}
	if l.audit != nil {
		l.audit.Record(ctx, actorID, "payroll.period.close", "payroll_period", period.ID,
			fmt.Sprintf("closed payroll period %02d/%d", period.Month, period.Year))
	}
	return period, nil
}

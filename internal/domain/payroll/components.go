package payroll

import (
	"context"
	"fmt"
	"time"
)

// ComponentResolver reads an employee's recurring pay components that are
// active and effective as of a reference date. Pure read, no side effects.
type ComponentResolver struct {
	store ComponentStore
}

func NewComponentResolver(store ComponentStore) *ComponentResolver {
	return &ComponentResolver{store: store}
}

func (r *ComponentResolver) Resolve(ctx context.Context, employeeID string, asOf time.Time) ([]Component, error) {
	components, err := r.store.ListActiveComponents(ctx, employeeID, asOf)
	if err != nil {
		return nil, fmt.Errorf("resolve components for %s: %w", employeeID, err)
	}
	return components, nil
}

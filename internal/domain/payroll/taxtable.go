package payroll

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// TableProvider supplies ordered bracket tables for a tax type. Persisted
// brackets win; when storage has none covering the as-of date the built-in
// table for that type is used so a calculation never fails on missing
// configuration. A malformed built-in table is a configuration bug and is
// reported as ErrMalformedTaxTable.
type TableProvider struct {
	store TaxTableStore
}

func NewTableProvider(store TaxTableStore) *TableProvider {
	return &TableProvider{store: store}
}

func (p *TableProvider) Brackets(ctx context.Context, taxType string, asOf time.Time) ([]Bracket, error) {
	if p.store != nil {
		brackets, err := p.store.ListBrackets(ctx, taxType, asOf)
		if err != nil {
			return nil, fmt.Errorf("list %s brackets: %w", taxType, err)
		}
		if len(brackets) > 0 {
			sortBrackets(brackets)
			return brackets, nil
		}
	}

	fallback := DefaultBrackets(taxType)
	if err := validateBrackets(fallback); err != nil {
		return nil, fmt.Errorf("built-in %s table: %w", taxType, err)
	}
	return fallback, nil
}

func sortBrackets(brackets []Bracket) {
	sort.Slice(brackets, func(i, j int) bool {
		return brackets[i].Min.LessThan(brackets[j].Min)
	})
}

func validateBrackets(brackets []Bracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("%w: empty", ErrMalformedTaxTable)
	}
	for i, b := range brackets {
		if !b.Max.Valid {
			if i != len(brackets)-1 {
				return fmt.Errorf("%w: open-ended bracket before the last", ErrMalformedTaxTable)
			}
			continue
		}
		if b.Max.Decimal.LessThanOrEqual(b.Min) {
			return fmt.Errorf("%w: bracket %d max not above min", ErrMalformedTaxTable, i)
		}
		if i+1 < len(brackets) && !brackets[i+1].Min.Equal(b.Max.Decimal) {
			return fmt.Errorf("%w: gap or overlap after bracket %d", ErrMalformedTaxTable, i)
		}
	}
	return nil
}

// DefaultBrackets returns the built-in 2024 table for a tax type. The seed
// installs the same rows, so the fallback only matters on an empty database.
func DefaultBrackets(taxType string) []Bracket {
	switch taxType {
	case TaxTypeINSS:
		return []Bracket{
			bracket("0", "1412.00", "7.5", "0"),
			bracket("1412.00", "2666.68", "9", "0"),
			bracket("2666.68", "4000.03", "12", "0"),
			bracket("4000.03", "7786.02", "14", "0"),
		}
	case TaxTypeIRRF:
		return []Bracket{
			bracket("0", "2259.20", "0", "0"),
			bracket("2259.20", "2826.65", "7.5", "169.44"),
			bracket("2826.65", "3751.05", "15", "381.44"),
			bracket("3751.05", "4664.68", "22.5", "662.77"),
			openBracket("4664.68", "27.5", "896.00"),
		}
	default:
		return nil
	}
}

func bracket(min, max, rate, deduction string) Bracket {
	return Bracket{
		Min:       decimal.RequireFromString(min),
		Max:       decimal.NewNullDecimal(decimal.RequireFromString(max)),
		Rate:      decimal.RequireFromString(rate),
		Deduction: decimal.RequireFromString(deduction),
	}
}

func openBracket(min, rate, deduction string) Bracket {
	return Bracket{
		Min:       decimal.RequireFromString(min),
		Rate:      decimal.RequireFromString(rate),
		Deduction: decimal.RequireFromString(deduction),
	}
}

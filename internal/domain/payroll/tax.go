package payroll

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)

	fgtsRate = decimal.RequireFromString("8")
	vtRate   = decimal.RequireFromString("6")
	vtCap    = decimal.RequireFromString("200.00")

	// Monthly allowance subtracted from the IRRF base per declared dependent.
	dependentAllowance = decimal.RequireFromString("189.59")
)

// CumulativeContribution computes a progressive social-security style
// contribution: each bracket taxes only the slice of the gross that falls
// inside it, amounts above the last bracket's max are taxed as if equal to
// that ceiling. Per-bracket amounts stay unrounded; only the grand total is
// rounded to the cent.
func CumulativeContribution(gross decimal.Decimal, brackets []Bracket) decimal.Decimal {
	if gross.Sign() <= 0 || len(brackets) == 0 {
		return decimal.Zero
	}

	capped := gross
	if last := brackets[len(brackets)-1]; last.Max.Valid && capped.GreaterThan(last.Max.Decimal) {
		capped = last.Max.Decimal
	}

	total := decimal.Zero
	for _, b := range brackets {
		if b.Min.GreaterThanOrEqual(capped) {
			break
		}
		upper := capped
		if b.Max.Valid && b.Max.Decimal.LessThan(capped) {
			upper = b.Max.Decimal
		}
		total = total.Add(upper.Sub(b.Min).Mul(b.Rate).Div(hundred))
		if b.Max.Valid && b.Max.Decimal.GreaterThanOrEqual(capped) {
			break
		}
	}
	return total.Round(2)
}

// MarginalWithholding computes an income-tax style withholding: the single
// bracket containing the taxable base taxes the whole base at its rate, and
// the bracket's fixed deduction is subtracted to restore progressivity. A
// base sitting exactly on a bracket max belongs to that bracket.
func MarginalWithholding(taxable decimal.Decimal, brackets []Bracket) decimal.Decimal {
	if taxable.Sign() <= 0 || len(brackets) == 0 {
		return decimal.Zero
	}
	for _, b := range brackets {
		if b.Max.Valid && taxable.GreaterThan(b.Max.Decimal) {
			continue
		}
		if taxable.LessThan(b.Min) {
			return decimal.Zero
		}
		tax := taxable.Mul(b.Rate).Div(hundred).Sub(b.Deduction)
		if tax.Sign() < 0 {
			return decimal.Zero
		}
		return tax.Round(2)
	}
	return decimal.Zero
}

// WithholdingBase derives the IRRF base: gross minus the social-security
// contribution minus the per-dependent allowance. A negative dependent count
// is treated as zero.
func WithholdingBase(gross, contribution decimal.Decimal, dependents int) decimal.Decimal {
	if dependents < 0 {
		dependents = 0
	}
	allowance := dependentAllowance.Mul(decimal.NewFromInt(int64(dependents)))
	return gross.Sub(contribution).Sub(allowance)
}

// EmployerDeposit is the flat informational employer-side charge (FGTS).
func EmployerDeposit(gross decimal.Decimal) decimal.Decimal {
	if gross.Sign() <= 0 {
		return decimal.Zero
	}
	return gross.Mul(fgtsRate).Div(hundred).Round(2)
}

// TransportDiscount is the capped-percentage benefit discount (VT):
// min(gross * 6%, 200.00).
func TransportDiscount(gross decimal.Decimal) decimal.Decimal {
	if gross.Sign() <= 0 {
		return decimal.Zero
	}
	discount := gross.Mul(vtRate).Div(hundred)
	if discount.GreaterThan(vtCap) {
		discount = vtCap
	}
	return discount.Round(2)
}

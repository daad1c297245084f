package settlement

import "github.com/shopspring/decimal"

// ComputeCommission returns round(amount × pct / 100, 2) half-up. ok is false when
// no commission is owed: zero amount, or a missing or non-positive percentage.
func ComputeCommission(amount decimal.Decimal, pct *decimal.Decimal) (decimal.Decimal, bool) {
	if !amount.IsPositive() || pct == nil || !pct.IsPositive() {
		return decimal.Zero, false
	}
	return amount.Mul(*pct).Shift(-2).Round(2), true
}

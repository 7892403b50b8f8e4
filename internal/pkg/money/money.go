// Package money does the currency arithmetic for sale totals and cash
// reconciliation. Amounts live as float64 in the database; all
// intermediate math runs on decimals rounded to 2 places so repeated
// line sums don't accumulate float drift.
package money

import "github.com/shopspring/decimal"

// Tolerance is the maximum accepted gap between a client-declared total
// and the server-computed one.
const Tolerance = 0.01

// Round rounds an amount to 2 decimal places.
func Round(amount float64) float64 {
	v, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return v
}

// LineTotal computes unitPrice × qty rounded to 2 places.
func LineTotal(unitPrice float64, qty int) float64 {
	v, _ := decimal.NewFromFloat(unitPrice).
		Mul(decimal.NewFromInt(int64(qty))).
		Round(2).Float64()
	return v
}

// LineMargin computes qty × (unitPrice − unitCost) rounded to 2 places.
func LineMargin(unitPrice, unitCost float64, qty int) float64 {
	v, _ := decimal.NewFromFloat(unitPrice).
		Sub(decimal.NewFromFloat(unitCost)).
		Mul(decimal.NewFromInt(int64(qty))).
		Round(2).Float64()
	return v
}

// Add sums two amounts without float drift.
func Add(a, b float64) float64 {
	v, _ := decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b)).Float64()
	return v
}

// Sub subtracts b from a without float drift.
func Sub(a, b float64) float64 {
	v, _ := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Float64()
	return v
}

// WithinTolerance reports whether two amounts agree within Tolerance.
func WithinTolerance(a, b float64) bool {
	diff := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Abs()
	return diff.LessThanOrEqual(decimal.NewFromFloat(Tolerance))
}

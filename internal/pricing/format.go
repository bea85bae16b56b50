package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// RoundMoney rounds an amount to cents, half away from zero.
func RoundMoney(amount float64) float64 {
	if !finite(amount) {
		return amount
	}
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}

// RoundFactor rounds a multiplier to two decimals.
func RoundFactor(factor float64) float64 {
	return RoundMoney(factor)
}

// FormatPercentage renders a multiplier as a signed whole percentage,
// 1.07 -> "+7%", 0.9 -> "-10%", 1 -> "+0%".
func FormatPercentage(factor float64) string {
	if !finite(factor) {
		return "+0%"
	}
	pct := decimal.NewFromFloat(factor).Sub(one).Mul(hundred).Round(0)
	if pct.IsNegative() {
		return pct.String() + "%"
	}
	return "+" + pct.String() + "%"
}

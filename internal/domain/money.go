package domain

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of decimal places kept for amounts
const MoneyPlaces = 2

// Amounts are stored as int64 cents. The bounds keep every price, subtotal
// and total far inside that range.
var (
	// MaxPrice is the highest accepted unit price
	MaxPrice = decimal.New(1, 9)
	// MaxSaleTotal is the highest accepted sale total
	MaxSaleTotal = decimal.New(1, 13)
)

// ValidPrice reports whether a unit price, once rounded to cents, is
// positive and not above MaxPrice
func ValidPrice(d decimal.Decimal) bool {
	r := RoundMoney(d)
	return r.IsPositive() && r.LessThanOrEqual(MaxPrice)
}

// RoundMoney rounds an amount half away from zero to cents
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// ToCents converts an amount to integer cents
func ToCents(d decimal.Decimal) int64 {
	return RoundMoney(d).Shift(MoneyPlaces).IntPart()
}

// FromCents converts integer cents to an amount
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -MoneyPlaces)
}

// FormatMoney renders an amount with two decimals
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(MoneyPlaces)
}

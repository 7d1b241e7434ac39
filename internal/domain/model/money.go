package model

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of decimal places every currency value is rounded to.
const MoneyPlaces = 2

// RoundMoney rounds a currency value to cents, half away from zero.
// It must only be applied once a value leaves the calculation.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// FormatMoney renders a currency value with exactly two decimal places.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(MoneyPlaces)
}

// Dollars is a convenience constructor for literal amounts such as "1.68".
// It panics on malformed input and is meant for defaults and tests.
func Dollars(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

package utils

import "github.com/shopspring/decimal"

const CurrencySymbol = "₹"

// FormatAmount renders an amount with exactly two decimal places.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

func FormatRupees(amount decimal.Decimal) string {
	return CurrencySymbol + FormatAmount(amount)
}

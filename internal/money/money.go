// Package money formats minor-unit amounts for display.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// Currencies the card processor charges in whole units.
var zeroDecimal = map[string]bool{
	"BIF": true, "CLP": true, "DJF": true, "GNF": true,
	"JPY": true, "KMF": true, "KRW": true, "MGA": true,
	"PYG": true, "RWF": true, "UGX": true, "VND": true,
	"VUV": true, "XAF": true, "XOF": true, "XPF": true,
}

// Decimals returns the number of minor-unit digits for currency.
func Decimals(currency string) int32 {
	if zeroDecimal[strings.ToUpper(currency)] {
		return 0
	}
	return 2
}

// FromCents converts an amount in hundredths to a decimal.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// FromMinor converts an amount in the currency's minor units to a decimal.
func FromMinor(amount int64, currency string) decimal.Decimal {
	return decimal.New(amount, -Decimals(currency))
}

// Format renders a minor-unit amount as a human readable price, e.g. "$297.00".
func Format(amount int64, currency string) string {
	currency = strings.ToUpper(currency)
	text := FromMinor(amount, currency).StringFixed(Decimals(currency))
	if sym, ok := symbols[currency]; ok {
		return sym + text
	}
	return text + " " + currency
}

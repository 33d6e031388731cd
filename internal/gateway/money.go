package gateway

import (
	"strings"

	"github.com/shopspring/decimal"
)

// currencyExponents lists ISO 4217 minor-unit exponents that differ from 2
var currencyExponents = map[string]int32{
	"BIF": 0, "CLP": 0, "DJF": 0, "GNF": 0, "ISK": 0, "JPY": 0, "KMF": 0,
	"KRW": 0, "PYG": 0, "RWF": 0, "UGX": 0, "VND": 0, "VUV": 0, "XAF": 0,
	"XOF": 0, "XPF": 0,
	"BHD": 3, "IQD": 3, "JOD": 3, "KWD": 3, "LYD": 3, "OMR": 3, "TND": 3,
}

func exponent(currency string) int32 {
	if exp, ok := currencyExponents[strings.ToUpper(currency)]; ok {
		return exp
	}
	return 2
}

// ToMajor converts an amount in minor units to major units
func ToMajor(amountMinor int64, currency string) decimal.Decimal {
	return decimal.New(amountMinor, -exponent(currency))
}

// ToMinor converts an amount in major units to minor units, truncating any
// precision beyond the currency's exponent.
func ToMinor(amountMajor decimal.Decimal, currency string) int64 {
	return amountMajor.Shift(exponent(currency)).IntPart()
}

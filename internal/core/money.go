// Package core provides money parsing and handling utilities.
//
// This file contains the helpers used to move decimal amounts across the
// JSON boundary: parsing user input and rounding values for display.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DisplayPlaces is the number of decimals every monetary output is rounded to.
const DisplayPlaces = 2

var hundred = decimal.NewFromInt(100)

// ParseAmount converts a decimal string to a decimal amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and an
// optional sign. Unlike display values nothing is rounded here: the ledger
// keeps whatever precision the caller sent.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34, nil
//	ParseAmount("-12,34") -> -12.34, nil
//	ParseAmount("abc")    -> 0, ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// Round returns d rounded half away from zero to DisplayPlaces decimals.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(DisplayPlaces)
}

// Display returns d rounded for display as a float64, the representation
// used on the wire.
func Display(d decimal.Decimal) float64 {
	return Round(d).InexactFloat64()
}

// Percent returns part/whole*100, or zero when whole is zero.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

package domain

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// usdPrecision is the number of decimal places used for every USD and percentage figure.
const usdPrecision = 2

var hundred = decimal.NewFromInt(100)

// SafeParse parses a string into a decimal, returning zero for invalid or empty input.
func SafeParse(value string) decimal.Decimal {
	if value == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// SafeParseInt parses a base-10 integer, returning zero for invalid or empty input.
func SafeParseInt(value string) int64 {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// SafeMultiply multiplies two string values, returning zero if either is invalid.
func SafeMultiply(a, b string) decimal.Decimal {
	da := SafeParse(a)
	db := SafeParse(b)
	return da.Mul(db)
}

// FormatUSD renders a decimal string with exactly two decimal places. Returns "0.00" for invalid input.
func FormatUSD(value string) string {
	return SafeParse(value).StringFixed(usdPrecision)
}

// PercentChange returns ((current - previous) / previous) * 100 with two decimal places.
// Returns "0" when previous is empty, invalid or zero.
func PercentChange(current, previous string) string {
	prev := SafeParse(previous)
	if prev.IsZero() {
		return "0"
	}
	cur := SafeParse(current)
	return cur.Sub(prev).Div(prev).Mul(hundred).StringFixed(usdPrecision)
}

// ShareOfPool renders value / tvl as a percentage with two decimal places and a trailing "%".
// A zero or invalid tvl yields "0%".
func ShareOfPool(value, tvl decimal.Decimal) string {
	if tvl.IsZero() {
		return "0%"
	}
	return value.Div(tvl).Mul(hundred).StringFixed(usdPrecision) + "%"
}

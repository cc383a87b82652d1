package engine

import (
	"fmt"
	"math"
)

// Money is an amount in micro-dollars. Per-view revenue is a fraction of a
// cent, so cents would not keep view-derived earnings exact.
type Money int64

const microsPerDollar = 1_000_000

// Dollars converts a dollar amount to Money, rounding to the nearest micro.
func Dollars(d float64) Money { return Money(math.Round(d * microsPerDollar)) }

// Float returns the amount in dollars.
func (m Money) Float() float64 { return float64(m) / microsPerDollar }

// String formats with two decimals, truncating sub-cent dust.
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	cents := v / 10_000
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// scale multiplies m by f and floors to a whole micro.
func (m Money) scale(f float64) Money {
	return Money(math.Floor(float64(m) * f))
}

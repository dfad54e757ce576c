// Package core holds the domain model shared by every other package:
// transactions, goals, money handling and the derived result types
// produced by the analysis engine.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseDecimalToCents converts a decimal string to cents with half-up
// rounding on the third decimal place. Both dot (12.34) and comma (12,34)
// separators are accepted. Negative values are rejected; zero is allowed
// because normalized records default unusable amounts to zero.
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrNegativeAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrNegativeAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("malformed amount %q", s)
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, fmt.Errorf("malformed amount %q", s)
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, fmt.Errorf("malformed amount %q", s)
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed amount %q", s)
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, fmt.Errorf("amount overflow %q", s)
	}
	// First two fractional digits, half-up rounding on the third.
	var fracCents int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracCents += d2
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return iv*100 + fracCents, nil
}

// CentsOf converts a currency value in units to cents with half-up rounding.
func CentsOf(units float64) int64 {
	if units >= 0 {
		return int64(units*100 + 0.5)
	}
	return -int64(-units*100 + 0.5)
}

// Units returns the value in currency units as a float64 for display and
// ratio computations. Use cents for exact arithmetic.
func (m Money) Units() float64 {
	return float64(m.Cents) / 100.0
}

// Sub returns m minus other. The result may be negative, which is valid
// for derived values such as net savings.
func (m Money) Sub(other Money) Money {
	return Money{Cents: m.Cents - other.Cents}
}

// Add returns the sum of both amounts.
func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

// String formats the amount with two decimals, e.g. "1234.50".
func (m Money) String() string {
	neg := m.Cents < 0
	c := m.Cents
	if neg {
		c = -c
	}
	s := strconv.FormatInt(c/100, 10) + "." + fmt.Sprintf("%02d", c%100)
	if neg {
		return "-" + s
	}
	return s
}

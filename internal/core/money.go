// Package core provides the budgeting domain types and money handling.
//
// This file contains functions for parsing monetary amounts from strings
// and formatting them as Indonesian rupiah for display.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount converts a user-supplied amount string to whole rupiah.
//
// Rupiah carries no fractional subunits, so a decimal part (dot or comma
// separated) is accepted but rounded half-up to the nearest whole unit.
// Returns an error for invalid formats, negative values, or zero amounts.
//
// Examples:
//
//	ParseAmount("50000")   -> 50000, nil
//	ParseAmount("50000.4") -> 50000, nil (rounds down)
//	ParseAmount("50000.5") -> 50001, nil (rounds up)
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Only positive values allowed
		return Money{}, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Money{}, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return Money{}, ErrInvalidAmount
		}
	}
	v, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	// Half-up rounding on the first fractional digit
	if len(fracPart) > 0 && fracPart[0] >= '5' {
		v++
	}
	if v <= 0 {
		return Money{}, ErrInvalidAmount
	}
	return Money{Rupiah: v}, nil
}

// Format renders the amount as an Indonesian rupiah string with dot
// thousand separators, e.g. "Rp50.000".
func (m Money) Format() string {
	v := m.Rupiah
	neg := v < 0
	if neg {
		v = -v
	}
	digits := strconv.FormatInt(v, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-Rp" + b.String()
	}
	return "Rp" + b.String()
}

// Abs returns the amount with a non-negative sign.
func (m Money) Abs() Money {
	if m.Rupiah < 0 {
		return Money{Rupiah: -m.Rupiah}
	}
	return m
}

// MarshalJSON encodes money as a bare number of rupiah, matching the
// stored transaction shape.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(m.Rupiah, 10)), nil
}

// UnmarshalJSON decodes a bare number of rupiah.
func (m *Money) UnmarshalJSON(b []byte) error {
	v, err := strconv.ParseInt(strings.TrimSpace(string(b)), 10, 64)
	if err != nil {
		return ErrInvalidAmount
	}
	m.Rupiah = v
	return nil
}

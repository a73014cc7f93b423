package parser

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// CardNumberLength is the number of digits a card number must have once spaces are removed.
const CardNumberLength = 16

const clockLayout = "15:04"

// decimalPattern accepts plain decimal notation with an optional exponent.
// Go-only syntax such as hex floats or underscore separators is rejected.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

var (
	ErrNotANumber  = errors.New("not a number")
	ErrNonPositive = errors.New("must be greater than zero")
)

// NormalizeCardNumber removes spaces and reports whether the remainder is
// exactly CardNumberLength ASCII digits.
func NormalizeCardNumber(raw string) (string, bool) {
	cleaned := strings.ReplaceAll(raw, " ", "")
	if len(cleaned) != CardNumberLength {
		return cleaned, false
	}
	for i := 0; i < len(cleaned); i++ {
		if cleaned[i] < '0' || cleaned[i] > '9' {
			return cleaned, false
		}
	}
	return cleaned, true
}

// ParseAmount strips an optional trailing currency suffix and surrounding
// whitespace, then parses the rest as a finite, strictly positive decimal.
func ParseAmount(raw, currency string) (float64, error) {
	value := strings.TrimSpace(raw)
	if currency != "" {
		value = strings.TrimSpace(strings.TrimSuffix(value, currency))
	}

	if !decimalPattern.MatchString(value) {
		return 0, fmt.Errorf("%q: %w", raw, ErrNotANumber)
	}

	amount, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%q: %w", raw, ErrNotANumber)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("%q: %w", raw, ErrNonPositive)
	}
	return amount, nil
}

// ParseClock parses a strict HH:MM 24-hour clock reading. Single-digit hours
// or minutes are rejected.
func ParseClock(raw string) (time.Time, error) {
	if len(raw) != len(clockLayout) {
		return time.Time{}, fmt.Errorf("failed to parse time %s: expected HH:MM", raw)
	}
	t, err := time.Parse(clockLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse time %s: %w", raw, err)
	}
	return t, nil
}

// HasDigit reports whether s contains any Unicode decimal digit.
func HasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

// MaskCardNumber keeps only the last four digits visible.
func MaskCardNumber(card string) string {
	cleaned := strings.ReplaceAll(card, " ", "")
	if len(cleaned) <= 4 {
		return strings.Repeat("*", len(cleaned))
	}
	return strings.Repeat("*", len(cleaned)-4) + cleaned[len(cleaned)-4:]
}

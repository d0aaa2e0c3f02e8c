package utils

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseFloatOrNaN parses a provider decimal string as float64. Malformed input
// yields NaN so that bad data poisons downstream sums instead of vanishing.
// Out of range values keep strconv's ±Inf.
func ParseFloatOrNaN(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return f
		}
		return math.NaN()
	}
	return f
}

// NormalizeAmount validates a positive decimal amount and returns its canonical
// form (no exponent, no trailing zeros).
func NormalizeAmount(s string) (string, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("amount %q is not a decimal: %w", s, err)
	}
	if !d.IsPositive() {
		return "", fmt.Errorf("amount %q must be positive", s)
	}
	return d.String(), nil
}

package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Monetary amounts are integer cents everywhere inside the system. Decimal
// strings exist only at the HTTP boundary; they are validated here instead
// of being coerced wherever they happen to be rendered.

var ErrInvalidAmount = errors.New("invalid monetary amount")

// ParseAmount converts a decimal string like "100" or "100.50" into cents.
// At most two fractional digits are accepted; negatives are rejected.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, ErrInvalidAmount
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
		if len(frac) == 0 || len(frac) > 2 {
			return 0, ErrInvalidAmount
		}
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	cents := int64(0)
	if frac != "" {
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, ErrInvalidAmount
		}
		if len(frac) == 1 {
			cents *= 10
		}
	}

	return units*100 + cents, nil
}

// FormatAmount renders cents as a two-decimal string, e.g. 32000 -> "320.00".
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

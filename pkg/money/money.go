// Package money holds the single currency-string parser used across the
// pricing pipeline. Formatted price strings from upstream sources
// ("$1,299.00", "USD 45", "1.299,00" is NOT supported) are reduced to an
// exact decimal or rejected with a typed error.
package money

import (
	"strings"

	pkgerrors "github.com/oscarvaldez-dev/pricepulse-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// ParsePrice strips currency symbols and thousands separators and parses the
// remainder as a decimal. Negative or unparsable values are rejected; callers
// filter such listings rather than coercing them to zero.
func ParsePrice(raw string) (decimal.Decimal, error) {
	cleaned := cleanNumeric(raw)
	if cleaned == "" {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeMalformedInput, "price string holds no numeric value").
			WithDetails(map[string]any{"raw": raw})
	}

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeMalformedInput, err, "parse price").
			WithDetails(map[string]any{"raw": raw})
	}

	if value.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeMalformedInput, "price cannot be negative").
			WithDetails(map[string]any{"raw": raw})
	}

	return value, nil
}

// cleanNumeric keeps digits, at most the characters needed for a plain
// decimal literal. A leading minus survives so negatives are detected, not
// silently absorbed.
func cleanNumeric(raw string) string {
	trimmed := strings.TrimSpace(raw)
	var b strings.Builder
	for i, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.':
			b.WriteRune(r)
		case r == '-' && i == 0:
			b.WriteRune(r)
		case r == ',':
			// thousands separator, dropped
		}
	}
	s := b.String()
	if s == "-" || s == "." || s == "-." {
		return ""
	}
	return s
}

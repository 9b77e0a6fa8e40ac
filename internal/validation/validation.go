package validation

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// PositiveAmount parses value as a positive decimal amount. On failure it
// records a violation and returns zero.
func PositiveAmount(field, value string, v Violations) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil || !d.IsPositive() {
		v[field] = "must be a positive number"
		return decimal.Zero
	}
	return d
}

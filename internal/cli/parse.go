package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount reads a user-entered amount; thousands separators are
// ignored.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("amount is required")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

// optionalAmount parses s when the flag was given.
func optionalAmount(changed bool, s string) (*decimal.Decimal, error) {
	if !changed {
		return nil, nil
	}
	d, err := parseAmount(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func cleanTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func validPaymentMethod(methods []string, m string) (string, bool) {
	for _, candidate := range methods {
		if strings.EqualFold(candidate, m) {
			return candidate, true
		}
	}
	return "", false
}

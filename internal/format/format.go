// Package format renders money, percentages and dates for display. It never
// converts between currencies.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jask/moneymate/internal/model"
)

var printer = message.NewPrinter(language.English)

// Currency renders amount with the symbol of code, thousands separators and
// two decimals: "$1,234.50", "-€12.00". Unknown codes use USD.
func Currency(amount decimal.Decimal, code string) string {
	cur := model.LookupCurrency(code)
	return Signed(amount, cur.Symbol)
}

// Signed renders amount with symbol after the sign.
func Signed(amount decimal.Decimal, symbol string) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	grouped := whole
	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		grouped = printer.Sprintf("%d", n)
	}
	return sign + symbol + grouped + "." + frac
}

// Percent renders a whole-number percentage: "95%".
func Percent(v float64) string {
	return fmt.Sprintf("%.0f%%", v)
}

// PercentChange renders a signed one-decimal percentage: "+1.5%", "-3.0%".
func PercentChange(v float64) string {
	sign := ""
	if v >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.1f%%", sign, v)
}

// Date renders a short calendar date: "Mar 5, 2026".
func Date(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// DateInput is the layout accepted by the entry forms.
const DateInput = "2006-01-02"

// ParseDate reads a DateInput string in loc. Empty input means today.
func ParseDate(s string, loc *time.Location, now time.Time) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return now.In(loc), nil
	}
	t, err := time.ParseInLocation(DateInput, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

package metrics

import (
	"fmt"
	"time"

	"github.com/jask/moneymate/internal/model"
)

// Range selects the dashboard time window.
type Range string

const (
	Daily   Range = "daily"
	Weekly  Range = "weekly"
	Monthly Range = "monthly"
)

// Ranges lists the dashboard windows in cycle order.
var Ranges = []Range{Daily, Weekly, Monthly}

// ParseRange accepts a range name.
func ParseRange(s string) (Range, error) {
	for _, r := range Ranges {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown range %q (want daily, weekly or monthly)", s)
}

// Next returns the range after r in cycle order.
func (r Range) Next() Range {
	for i, candidate := range Ranges {
		if candidate == r {
			return Ranges[(i+1)%len(Ranges)]
		}
	}
	return Monthly
}

// Cutoff is the earliest instant included in the window ending at now.
func Cutoff(r Range, now time.Time) time.Time {
	switch r {
	case Daily:
		return now.AddDate(0, 0, -1)
	case Weekly:
		return now.AddDate(0, 0, -7)
	default:
		return now.AddDate(0, -1, 0)
	}
}

// Window keeps transactions dated at or after the cutoff of r.
func Window(txs []model.Transaction, r Range, now time.Time) []model.Transaction {
	cutoff := Cutoff(r, now)
	out := make([]model.Transaction, 0, len(txs))
	for _, t := range txs {
		if !t.Date.Before(cutoff) {
			out = append(out, t)
		}
	}
	return out
}

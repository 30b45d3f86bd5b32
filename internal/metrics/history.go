package metrics

import (
	"fmt"
	"time"

	"github.com/jask/moneymate/internal/model"
)

// Period is a calendar filter on the history screen.
type Period string

const (
	AllTime   Period = ""
	Today     Period = "today"
	ThisWeek  Period = "week"
	ThisMonth Period = "month"
	ThisYear  Period = "year"
)

// ParsePeriod accepts a period name; empty means no date filter.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case AllTime, Today, ThisWeek, ThisMonth, ThisYear:
		return p, nil
	default:
		return "", fmt.Errorf("unknown period %q (want today, week, month or year)", s)
	}
}

// HistoryFilter narrows the history list. Zero fields match everything.
type HistoryFilter struct {
	Type          model.TransactionType
	PaymentMethod string
	Period        Period
}

// History applies f and returns matches newest first.
func History(txs []model.Transaction, f HistoryFilter, now time.Time) []model.Transaction {
	out := make([]model.Transaction, 0, len(txs))
	for _, t := range txs {
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if f.PaymentMethod != "" && t.PaymentMethod != f.PaymentMethod {
			continue
		}
		if !inPeriod(t.Date.In(now.Location()), f.Period, now) {
			continue
		}
		out = append(out, t)
	}
	return SortByDateDesc(out)
}

func inPeriod(d time.Time, p Period, now time.Time) bool {
	switch p {
	case Today:
		return sameDay(d, now)
	case ThisWeek:
		return !d.Before(now.AddDate(0, 0, -7))
	case ThisMonth:
		return sameMonth(d, now)
	case ThisYear:
		return d.Year() == now.Year()
	default:
		return true
	}
}

// DayGroup is the transactions that share a calendar day.
type DayGroup struct {
	Day          time.Time
	Transactions []model.Transaction
}

// GroupByDay groups consecutive transactions by calendar day in loc,
// preserving input order.
func GroupByDay(txs []model.Transaction, loc *time.Location) []DayGroup {
	if loc == nil {
		loc = time.Local
	}
	var out []DayGroup
	for _, t := range txs {
		d := t.Date.In(loc)
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
		if n := len(out); n > 0 && out[n-1].Day.Equal(day) {
			out[n-1].Transactions = append(out[n-1].Transactions, t)
			continue
		}
		out = append(out, DayGroup{Day: day, Transactions: []model.Transaction{t}})
	}
	return out
}

// Package metrics holds the read-time folds behind the dashboard, history
// and goal screens. Every function is a pure scan over its input.
package metrics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jask/moneymate/internal/model"
)

var hundred = decimal.NewFromInt(100)

// TotalIncome sums income amounts.
func TotalIncome(txs []model.Transaction) decimal.Decimal {
	return sumType(txs, model.Income)
}

// TotalExpenses sums expense amounts.
func TotalExpenses(txs []model.Transaction) decimal.Decimal {
	return sumType(txs, model.Expense)
}

// Balance is starting + income - expenses.
func Balance(starting decimal.Decimal, txs []model.Transaction) decimal.Decimal {
	return starting.Add(TotalIncome(txs)).Sub(TotalExpenses(txs))
}

func sumType(txs []model.Transaction, typ model.TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		if t.Type == typ {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// CategoryTotal is the summed expense amount of one category.
type CategoryTotal struct {
	Category model.Category
	Total    decimal.Decimal
}

// CategoryBreakdown sums expenses by category, largest first. Equal totals
// are ordered by category name.
func CategoryBreakdown(txs []model.Transaction) []CategoryTotal {
	sums := map[model.Category]decimal.Decimal{}
	for _, t := range txs {
		if !t.IsExpense() {
			continue
		}
		sums[t.Category] = sums[t.Category].Add(t.Amount)
	}
	out := make([]CategoryTotal, 0, len(sums))
	for c, total := range sums {
		out = append(out, CategoryTotal{Category: c, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if cmp := out[i].Total.Cmp(out[j].Total); cmp != 0 {
			return cmp > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Top returns at most n leading entries.
func Top(totals []CategoryTotal, n int) []CategoryTotal {
	if n < 0 || len(totals) <= n {
		return totals
	}
	return totals[:n]
}

// Share returns part as a percentage of whole, or 0 when whole is not
// positive.
func Share(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	return part.Div(whole).Mul(hundred).InexactFloat64()
}

// GoalProgress is current/target as a percentage. It is not capped.
func GoalProgress(g model.Goal) float64 {
	return Share(g.CurrentAmount, g.TargetAmount)
}

// CappedProgress is GoalProgress limited to 100 for progress bars.
func CappedProgress(g model.Goal) float64 {
	p := GoalProgress(g)
	if p > 100 {
		return 100
	}
	return p
}

// OverallGoalProgress is the summed current amount over the summed target
// across all goals.
func OverallGoalProgress(goals []model.Goal) float64 {
	target, current := decimal.Zero, decimal.Zero
	for _, g := range goals {
		target = target.Add(g.TargetAmount)
		current = current.Add(g.CurrentAmount)
	}
	return Share(current, target)
}

// SortByDateDesc returns a copy of txs ordered newest first. Transactions on
// the same instant keep their insertion order.
func SortByDateDesc(txs []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// Recent returns the n newest transactions.
func Recent(txs []model.Transaction, n int) []model.Transaction {
	sorted := SortByDateDesc(txs)
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// MonthTotals holds one calendar month's income and expenses.
type MonthTotals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// MonthSummary totals the transactions that fall in the calendar month of
// now, evaluated in now's location.
func MonthSummary(txs []model.Transaction, now time.Time) MonthTotals {
	var out MonthTotals
	for _, t := range txs {
		if !sameMonth(t.Date.In(now.Location()), now) {
			continue
		}
		switch t.Type {
		case model.Income:
			out.Income = out.Income.Add(t.Amount)
		case model.Expense:
			out.Expenses = out.Expenses.Add(t.Amount)
		}
	}
	return out
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

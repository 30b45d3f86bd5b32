// Package insight turns the transaction history into a handful of short,
// rule-based observations.
package insight

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jask/moneymate/internal/metrics"
	"github.com/jask/moneymate/internal/model"
)

const (
	// MaxInsights caps the generated list.
	MaxInsights = 5
	// MinTransactions is the history needed before any insight is produced.
	MinTransactions = 3

	largeExpenseWindow = 10
	emergencyMarker    = "emergency"
)

var (
	highExpenseRatio = decimal.RequireFromString("0.9")
	goodSavingRatio  = decimal.RequireFromString("0.5")
	largeExpense     = decimal.NewFromInt(100)
	hundred          = decimal.NewFromInt(100)
)

// Generate applies the rules in order and returns at most MaxInsights
// insights. It is pure: now is the only clock.
func Generate(txs []model.Transaction, profile *model.Profile, now time.Time) []model.Insight {
	if profile == nil || len(txs) < MinTransactions {
		return []model.Insight{}
	}

	var out []model.Insight
	if in, ok := expenseRatio(txs, now); ok {
		out = append(out, in)
	}
	if in, ok := topCategory(txs, now); ok {
		out = append(out, in)
	}
	if in, ok := largeExpenses(txs, now); ok {
		out = append(out, in)
	}
	if in, ok := emergencyFund(txs, now); ok {
		out = append(out, in)
	}
	if len(out) > MaxInsights {
		out = out[:MaxInsights]
	}
	return out
}

func newInsight(rule string, kind model.InsightKind, title, desc string, now time.Time) model.Insight {
	return model.Insight{
		ID:          fmt.Sprintf("insight-%s-%d", rule, now.UnixMilli()),
		Kind:        kind,
		Title:       title,
		Description: desc,
		GeneratedAt: now,
	}
}

func expenseRatio(txs []model.Transaction, now time.Time) (model.Insight, bool) {
	month := metrics.MonthSummary(txs, now)
	if !month.Expenses.IsPositive() || !month.Income.IsPositive() {
		return model.Insight{}, false
	}
	ratio := month.Expenses.Div(month.Income)
	switch {
	case ratio.GreaterThan(highExpenseRatio):
		pct := ratio.Mul(hundred).Round(0)
		return newInsight("expense-ratio", model.InsightAlert, "High Expense Ratio",
			fmt.Sprintf("You're spending %s%% of your income this month. Consider reducing expenses to save more.", pct.String()),
			now), true
	case ratio.LessThan(goodSavingRatio):
		pct := decimal.NewFromInt(1).Sub(ratio).Mul(hundred).Round(0)
		return newInsight("saving-ratio", model.InsightTip, "Great Saving Ratio",
			fmt.Sprintf("You're saving %s%% of your income this month. Keep up the good work!", pct.String()),
			now), true
	default:
		return model.Insight{}, false
	}
}

// topCategory uses lifetime expenses. Ties go to the smallest category name.
func topCategory(txs []model.Transaction, now time.Time) (model.Insight, bool) {
	breakdown := metrics.CategoryBreakdown(txs)
	if len(breakdown) == 0 || !breakdown[0].Total.IsPositive() {
		return model.Insight{}, false
	}
	top := breakdown[0]
	in := newInsight("top-category", model.InsightTrend, "Top Spending Category",
		fmt.Sprintf("Your highest expense category is %s, accounting for a significant portion of your spending.", top.Category),
		now)
	in.Category = top.Category
	value := top.Total
	in.Value = &value
	return in, true
}

func largeExpenses(txs []model.Transaction, now time.Time) (model.Insight, bool) {
	count := 0
	for _, t := range metrics.Recent(txs, largeExpenseWindow) {
		if t.IsExpense() && t.Amount.GreaterThan(largeExpense) {
			count++
		}
	}
	if count <= 2 {
		return model.Insight{}, false
	}
	return newInsight("large-expenses", model.InsightAlert, "Multiple Large Expenses",
		fmt.Sprintf("You've had %d large expenses recently. Review these transactions to ensure they're necessary.", count),
		now), true
}

// emergencyFund matches notes case-sensitively.
func emergencyFund(txs []model.Transaction, now time.Time) (model.Insight, bool) {
	for _, t := range txs {
		if t.IsExpense() && t.Category == model.CategorySavings && strings.Contains(t.Notes, emergencyMarker) {
			return model.Insight{}, false
		}
	}
	return newInsight("emergency-fund", model.InsightRecommendation, "Set Up Emergency Fund",
		"Consider setting aside 3-6 months of expenses in an emergency fund for financial security.",
		now), true
}

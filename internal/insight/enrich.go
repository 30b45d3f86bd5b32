package insight

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jask/moneymate/internal/llm"
	"github.com/jask/moneymate/internal/logger"
	"github.com/jask/moneymate/internal/metrics"
	"github.com/jask/moneymate/internal/model"
)

const summaryCategories = 3

// Summarize builds the advisor input for the calendar month of now.
func Summarize(txs []model.Transaction, profile *model.Profile, goals []model.Goal, existing []model.Insight, now time.Time) llm.Summary {
	month := metrics.MonthSummary(txs, now)
	s := llm.Summary{
		Currency:      model.DefaultCurrency().Code,
		MonthIncome:   month.Income.InexactFloat64(),
		MonthExpenses: month.Expenses.InexactFloat64(),
		GoalProgress:  metrics.OverallGoalProgress(goals),
	}
	if profile != nil {
		s.Currency = model.LookupCurrency(profile.Currency).Code
		if profile.MonthlyBudgetTarget != nil {
			s.BudgetTarget = profile.MonthlyBudgetTarget.InexactFloat64()
		}
	}

	var monthTxs []model.Transaction
	for _, t := range txs {
		if d := t.Date.In(now.Location()); d.Year() == now.Year() && d.Month() == now.Month() {
			monthTxs = append(monthTxs, t)
		}
	}
	for _, c := range metrics.Top(metrics.CategoryBreakdown(monthTxs), summaryCategories) {
		s.TopCategories = append(s.TopCategories, llm.CategoryShare{
			Category: string(c.Category),
			Amount:   c.Total.InexactFloat64(),
			Percent:  metrics.Share(c.Total, month.Expenses),
		})
	}
	for _, in := range existing {
		s.ExistingTitles = append(s.ExistingTitles, in.Title)
	}
	return s
}

// Enrich appends one advisor tip when there is room under MaxInsights.
// Advisor failures are logged and the input is returned unchanged.
func Enrich(ctx context.Context, insights []model.Insight, advisor llm.Advisor, summary llm.Summary) []model.Insight {
	if advisor == nil || len(insights) >= MaxInsights {
		return insights
	}
	log := logger.FromContext(ctx)
	tip, err := advisor.Advise(ctx, summary)
	if err != nil {
		if !errors.Is(err, llm.ErrNoTip) {
			log.Warn().Err(err).Str("advisor", advisor.Name()).Msg("advisor tip skipped")
		}
		return insights
	}
	now := time.Now().UTC()
	out := append(append([]model.Insight{}, insights...), model.Insight{
		ID:          fmt.Sprintf("insight-advisor-%d", now.UnixMilli()),
		Kind:        model.InsightTip,
		Title:       tip.Title,
		Description: tip.Description,
		GeneratedAt: now,
	})
	log.Debug().Str("advisor", advisor.Name()).Str("title", tip.Title).Msg("advisor tip added")
	return out
}

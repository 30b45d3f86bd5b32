package llm

import (
	"context"
	"fmt"
	"strings"
)

// OfflineAdvisor is a heuristic fallback that needs no network.
type OfflineAdvisor struct{}

func NewOfflineAdvisor() *OfflineAdvisor { return &OfflineAdvisor{} }

func (OfflineAdvisor) Name() string { return ProviderOffline }

// Advise checks, in order: budget overrun, a dominant category, stalled
// goals.
func (OfflineAdvisor) Advise(ctx context.Context, s Summary) (Tip, error) {
	if err := ctx.Err(); err != nil {
		return Tip{}, err
	}
	if s.BudgetTarget > 0 && s.MonthExpenses > s.BudgetTarget {
		over := s.MonthExpenses - s.BudgetTarget
		return Tip{
			Title:       "Over Monthly Budget",
			Description: fmt.Sprintf("You are %.2f %s over your monthly budget target. Pause non-essential spending until next month.", over, s.Currency),
		}, nil
	}
	if len(s.TopCategories) > 0 && s.TopCategories[0].Percent >= 40 {
		c := s.TopCategories[0]
		return Tip{
			Title:       fmt.Sprintf("Trim %s Spending", properCap(c.Category)),
			Description: fmt.Sprintf("%s makes up %.0f%% of your expenses. A 10%% cut there would free up %.2f %s.", properCap(c.Category), c.Percent, c.Amount/10, s.Currency),
		}, nil
	}
	if s.GoalProgress > 0 && s.GoalProgress < 25 && s.MonthIncome > s.MonthExpenses {
		surplus := s.MonthIncome - s.MonthExpenses
		return Tip{
			Title:       "Fund Your Goals",
			Description: fmt.Sprintf("Your goals are %.0f%% funded. Moving part of this month's %.2f %s surplus would speed them up.", s.GoalProgress, surplus, s.Currency),
		}, nil
	}
	return Tip{}, ErrNoTip
}

func properCap(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	return strings.ToUpper(lower[:1]) + lower[1:]
}

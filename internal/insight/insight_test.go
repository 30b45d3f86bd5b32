package insight

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jask/moneymate/internal/llm"
	"github.com/jask/moneymate/internal/model"
)

var now = time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)

func tx(typ model.TransactionType, amount int64, cat model.Category, daysAgo int) model.Transaction {
	return model.Transaction{
		ID:       model.NewTransactionID(),
		Type:     typ,
		Amount:   decimal.NewFromInt(amount),
		Category: cat,
		Date:     now.AddDate(0, 0, -daysAgo),
	}
}

func emergencySaving() model.Transaction {
	t := tx(model.Expense, 1, model.CategorySavings, 30)
	t.Notes = "emergency buffer"
	return t
}

func byTitle(insights []model.Insight) map[string]model.Insight {
	out := map[string]model.Insight{}
	for _, in := range insights {
		out[in.Title] = in
	}
	return out
}

func TestGenerateFloor(t *testing.T) {
	t.Parallel()

	profile := &model.Profile{Name: "Ana"}
	two := []model.Transaction{tx(model.Income, 10, model.CategorySalary, 1), tx(model.Expense, 5, model.CategoryFood, 1)}
	require.Empty(t, Generate(two, profile, now))

	three := append(two, tx(model.Expense, 5, model.CategoryFood, 2))
	require.Empty(t, Generate(three, nil, now))
	require.NotEmpty(t, Generate(three, profile, now))
}

func TestHighExpenseRatio(t *testing.T) {
	t.Parallel()

	txs := []model.Transaction{
		tx(model.Income, 1000, model.CategorySalary, 5),
		tx(model.Expense, 500, model.CategoryHousing, 4),
		tx(model.Expense, 450, model.CategoryFood, 3),
		emergencySaving(),
	}
	got := Generate(txs, &model.Profile{}, now)

	var alerts []model.Insight
	for _, in := range got {
		if strings.HasPrefix(in.ID, "insight-expense-ratio-") {
			alerts = append(alerts, in)
		}
	}
	require.Len(t, alerts, 1)
	require.Equal(t, model.InsightAlert, alerts[0].Kind)
	require.Equal(t, "High Expense Ratio", alerts[0].Title)
	require.Contains(t, alerts[0].Description, "95%")
	require.NotContains(t, byTitle(got), "Great Saving Ratio")
}

func TestGreatSavingRatio(t *testing.T) {
	t.Parallel()

	txs := []model.Transaction{
		tx(model.Income, 1000, model.CategorySalary, 5),
		tx(model.Expense, 250, model.CategoryHousing, 4),
		tx(model.Expense, 150, model.CategoryFood, 3),
		emergencySaving(),
	}
	got := byTitle(Generate(txs, &model.Profile{}, now))

	tip, ok := got["Great Saving Ratio"]
	require.True(t, ok)
	require.Equal(t, model.InsightTip, tip.Kind)
	require.Contains(t, tip.Description, "60%")
	require.NotContains(t, got, "High Expense Ratio")
}

func TestMiddleBandIsSilent(t *testing.T) {
	t.Parallel()

	txs := []model.Transaction{
		tx(model.Income, 1000, model.CategorySalary, 5),
		tx(model.Expense, 700, model.CategoryHousing, 4),
		emergencySaving(),
	}
	got := byTitle(Generate(txs, &model.Profile{}, now))
	require.NotContains(t, got, "High Expense Ratio")
	require.NotContains(t, got, "Great Saving Ratio")
}

func TestExpenseRatioUsesCurrentMonthOnly(t *testing.T) {
	t.Parallel()

	txs := []model.Transaction{
		tx(model.Income, 1000, model.CategorySalary, 40),
		tx(model.Expense, 990, model.CategoryHousing, 3),
		tx(model.Expense, 5, model.CategoryFood, 2),
	}
	got := byTitle(Generate(txs, &model.Profile{}, now))
	require.NotContains(t, got, "High Expense Ratio", "no income this month")
}

func TestTopCategoryTieBreak(t *testing.T) {
	t.Parallel()

	txs := []model.Transaction{
		tx(model.Expense, 80, model.CategoryTravel, 60),
		tx(model.Expense, 80, model.CategoryEducation, 50),
		tx(model.Expense, 20, model.CategoryFood, 3),
	}
	top, ok := byTitle(Generate(txs, &model.Profile{}, now))["Top Spending Category"]
	require.True(t, ok)
	require.Equal(t, model.InsightTrend, top.Kind)
	require.Equal(t, model.CategoryEducation, top.Category)
	require.NotNil(t, top.Value)
	require.True(t, top.Value.Equal(decimal.NewFromInt(80)))
}

func TestLargeExpenses(t *testing.T) {
	t.Parallel()

	txs := []model.Transaction{
		tx(model.Expense, 150, model.CategoryShopping, 1),
		tx(model.Expense, 101, model.CategoryShopping, 2),
		tx(model.Expense, 100, model.CategoryShopping, 3),
		tx(model.Income, 500, model.CategorySalary, 4),
	}
	require.NotContains(t, byTitle(Generate(txs, &model.Profile{}, now)), "Multiple Large Expenses")

	txs = append(txs, tx(model.Expense, 300, model.CategoryTravel, 5))
	large, ok := byTitle(Generate(txs, &model.Profile{}, now))["Multiple Large Expenses"]
	require.True(t, ok)
	require.Contains(t, large.Description, "3 large expenses")
}

func TestLargeExpensesOnlyLooksAtTenMostRecent(t *testing.T) {
	t.Parallel()

	var txs []model.Transaction
	for i := 0; i < 10; i++ {
		txs = append(txs, tx(model.Expense, 5, model.CategoryFood, i))
	}
	for i := 0; i < 3; i++ {
		txs = append(txs, tx(model.Expense, 500, model.CategoryTravel, 100+i))
	}
	require.NotContains(t, byTitle(Generate(txs, &model.Profile{}, now)), "Multiple Large Expenses")
}

func TestEmergencyFundMatchIsCaseSensitive(t *testing.T) {
	t.Parallel()

	upper := tx(model.Expense, 50, model.CategorySavings, 2)
	upper.Notes = "Emergency"
	txs := []model.Transaction{upper, tx(model.Expense, 5, model.CategoryFood, 1), tx(model.Expense, 5, model.CategoryFood, 1)}
	rec, ok := byTitle(Generate(txs, &model.Profile{}, now))["Set Up Emergency Fund"]
	require.True(t, ok)
	require.Equal(t, model.InsightRecommendation, rec.Kind)

	txs = append(txs, emergencySaving())
	require.NotContains(t, byTitle(Generate(txs, &model.Profile{}, now)), "Set Up Emergency Fund")
}

func TestGenerateNeverExceedsCap(t *testing.T) {
	t.Parallel()

	var txs []model.Transaction
	txs = append(txs, tx(model.Income, 100, model.CategorySalary, 1))
	for i := 0; i < 12; i++ {
		txs = append(txs, tx(model.Expense, 200, model.CategoryShopping, i))
	}
	got := Generate(txs, &model.Profile{}, now)
	require.LessOrEqual(t, len(got), MaxInsights)
	require.Len(t, got, 4)
	require.Equal(t, "High Expense Ratio", got[0].Title)
	require.Equal(t, "Top Spending Category", got[1].Title)
	require.Equal(t, "Multiple Large Expenses", got[2].Title)
	require.Equal(t, "Set Up Emergency Fund", got[3].Title)
}

type stubAdvisor struct {
	tip llm.Tip
	err error
}

func (s stubAdvisor) Name() string { return "stub" }

func (s stubAdvisor) Advise(context.Context, llm.Summary) (llm.Tip, error) {
	return s.tip, s.err
}

func TestEnrich(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	base := []model.Insight{{Title: "One"}}

	got := Enrich(ctx, base, stubAdvisor{tip: llm.Tip{Title: "Cook more", Description: "Save on food."}}, llm.Summary{})
	require.Len(t, got, 2)
	require.Equal(t, "Cook more", got[1].Title)
	require.Equal(t, model.InsightTip, got[1].Kind)
	require.Len(t, base, 1)

	got = Enrich(ctx, base, stubAdvisor{err: errors.New("quota")}, llm.Summary{})
	require.Equal(t, base, got)

	full := make([]model.Insight, MaxInsights)
	require.Len(t, Enrich(ctx, full, stubAdvisor{tip: llm.Tip{Title: "x", Description: "y"}}, llm.Summary{}), MaxInsights)
	require.Equal(t, base, Enrich(ctx, base, nil, llm.Summary{}))
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	budget := decimal.NewFromInt(800)
	profile := &model.Profile{Currency: "EUR", MonthlyBudgetTarget: &budget}
	txs := []model.Transaction{
		tx(model.Income, 2000, model.CategorySalary, 3),
		tx(model.Expense, 300, model.CategoryFood, 2),
		tx(model.Expense, 100, model.CategoryTravel, 1),
		tx(model.Expense, 999, model.CategoryHousing, 60),
	}
	goals := []model.Goal{{TargetAmount: decimal.NewFromInt(100), CurrentAmount: decimal.NewFromInt(20)}}
	s := Summarize(txs, profile, goals, []model.Insight{{Title: "Great Saving Ratio"}}, now)

	require.Equal(t, "EUR", s.Currency)
	require.InDelta(t, 2000, s.MonthIncome, 1e-9)
	require.InDelta(t, 400, s.MonthExpenses, 1e-9)
	require.InDelta(t, 800, s.BudgetTarget, 1e-9)
	require.InDelta(t, 20, s.GoalProgress, 1e-9)
	require.Len(t, s.TopCategories, 2)
	require.Equal(t, "food", s.TopCategories[0].Category)
	require.InDelta(t, 75, s.TopCategories[0].Percent, 1e-9)
	require.Equal(t, []string{"Great Saving Ratio"}, s.ExistingTitles)
}

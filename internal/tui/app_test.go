package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jask/moneymate/internal/llm"
	"github.com/jask/moneymate/internal/metrics"
	"github.com/jask/moneymate/internal/model"
	"github.com/jask/moneymate/internal/store"
)

type fakeLedger struct {
	snap    store.Snapshot
	deleted []string
}

func (f *fakeLedger) Snapshot() store.Snapshot { return f.snap }

func (f *fakeLedger) SelectedCurrency() model.Currency {
	if f.snap.Profile == nil {
		return model.DefaultCurrency()
	}
	return model.LookupCurrency(f.snap.Profile.Currency)
}

func (f *fakeLedger) ToggleDarkMode() bool {
	f.snap.DarkMode = !f.snap.DarkMode
	return f.snap.DarkMode
}

func (f *fakeLedger) DeleteTransaction(id string) {
	f.deleted = append(f.deleted, id)
	kept := f.snap.Transactions[:0]
	for _, t := range f.snap.Transactions {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	f.snap.Transactions = kept
}

func (f *fakeLedger) FundGoal(id string, amount decimal.Decimal) bool {
	for i, g := range f.snap.Goals {
		if g.ID == id {
			f.snap.Goals[i].CurrentAmount = g.CurrentAmount.Add(amount)
			return true
		}
	}
	return false
}

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestApp() (*App, *fakeLedger) {
	profile := model.Profile{Name: "Ada", Role: model.RoleEmployed, StartingBalance: decimal.NewFromInt(1000), Currency: "EUR"}
	l := &fakeLedger{snap: store.Snapshot{
		Onboarded: true,
		Profile:   &profile,
		Transactions: []model.Transaction{
			{ID: "old", Type: model.Expense, Amount: decimal.NewFromInt(40), Category: model.CategoryFood, Date: testNow.AddDate(0, 0, -2)},
			{ID: "new", Type: model.Income, Amount: decimal.NewFromInt(300), Category: model.CategorySalary, Date: testNow},
		},
		Goals: []model.Goal{
			{ID: "g1", Name: "Trip", Category: model.GoalTravel, TargetAmount: decimal.NewFromInt(100), Color: "#3b82f6"},
		},
	}}
	a := New(context.Background(), l, nil, time.UTC)
	a.now = func() time.Time { return testNow }
	a.refresh()
	return a, l
}

func key(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, a *App, keys ...string) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = a.Update(key(k))
	}
	return cmd
}

func TestDashboardShowsBalance(t *testing.T) {
	a, _ := newTestApp()
	view := a.View()
	require.Contains(t, view, "€1,260.00")
	require.Contains(t, view, "+26.0%")
	require.Contains(t, view, "Ada")
	require.Contains(t, view, "monthly")
}

func TestNotOnboardedDashboard(t *testing.T) {
	l := &fakeLedger{}
	a := New(context.Background(), l, nil, time.UTC)
	require.Contains(t, a.View(), "Not onboarded")
}

func TestRangeCycles(t *testing.T) {
	a, _ := newTestApp()
	require.Equal(t, metrics.Monthly, a.rng)
	press(t, a, "r")
	require.Equal(t, metrics.Daily, a.rng)
	press(t, a, "r", "r")
	require.Equal(t, metrics.Monthly, a.rng)
}

func TestDarkModeToggle(t *testing.T) {
	a, l := newTestApp()
	press(t, a, "d")
	require.True(t, l.snap.DarkMode)
	require.Equal(t, "dark mode on", a.status)
	press(t, a, "d")
	require.False(t, l.snap.DarkMode)
}

func TestQuit(t *testing.T) {
	a, _ := newTestApp()
	cmd := press(t, a, "q")
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHistoryDeleteSelected(t *testing.T) {
	a, l := newTestApp()
	press(t, a, "2")
	require.Equal(t, tabHistory, a.tab)
	require.Contains(t, a.View(), "Mar 15, 2026")

	press(t, a, "j", "x")
	require.Equal(t, []string{"old"}, l.deleted)
	require.Len(t, a.snap.Transactions, 1)
	require.Equal(t, 0, a.cursor[tabHistory])
}

func TestHistoryPeriodFilter(t *testing.T) {
	a, _ := newTestApp()
	press(t, a, "2", "p")
	require.Equal(t, metrics.Today, a.period)
	require.Len(t, a.history(), 1)
	require.NotContains(t, a.View(), "Mar 13, 2026")
}

func TestFundGoal(t *testing.T) {
	a, l := newTestApp()
	press(t, a, "3", "+", "+", "-")
	require.True(t, decimal.NewFromInt(10).Equal(l.snap.Goals[0].CurrentAmount))
	require.Contains(t, a.View(), "10%")
}

func TestInsightsNeedThreeTransactions(t *testing.T) {
	a, _ := newTestApp()
	press(t, a, "4")
	require.Contains(t, a.View(), "at least 3 transactions")
}

func TestBar(t *testing.T) {
	require.Equal(t, "[--------------------]", bar(0))
	require.Equal(t, "[##########----------]", bar(50))
	require.Equal(t, "[####################]", bar(250))
}

type tipAdvisor struct{ calls int }

func (t *tipAdvisor) Advise(ctx context.Context, s llm.Summary) (llm.Tip, error) {
	t.calls++
	return llm.Tip{Title: "Advisor tip", Description: "Cook at home twice a week."}, nil
}

func (t *tipAdvisor) Name() string { return "test" }

func TestAdvisorTipKeptUntilDataChanges(t *testing.T) {
	a, _ := newTestApp()
	adv := &tipAdvisor{}
	a.advisor = adv

	first := a.Init()()
	a.Update(first)
	press(t, a, "4")
	require.Contains(t, a.View(), "Advisor tip")

	press(t, a, "d")
	require.Contains(t, a.View(), "Advisor tip")
	require.Equal(t, 1, adv.calls)

	cmd := press(t, a, "2", "x")
	require.NotNil(t, cmd)
	require.True(t, a.loading)

	// a reply for the old data is ignored
	a.Update(first)
	require.True(t, a.loading)

	a.Update(cmd())
	require.False(t, a.loading)
	require.Equal(t, 2, adv.calls)
	press(t, a, "4")
	require.Contains(t, a.View(), "Advisor tip")
}

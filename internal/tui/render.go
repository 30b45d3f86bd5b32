package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/jask/moneymate/internal/format"
	"github.com/jask/moneymate/internal/insight"
	"github.com/jask/moneymate/internal/metrics"
	"github.com/jask/moneymate/internal/model"
)

const barWidth = 20

func (a *App) View() string {
	var body string
	switch a.tab {
	case tabHistory:
		body = a.renderHistory()
	case tabGoals:
		body = a.renderGoals()
	case tabInsights:
		body = a.renderInsights()
	default:
		body = a.renderDashboard()
	}
	parts := []string{a.renderTabs(), body, a.styles.dim.Render(a.help())}
	if a.status != "" {
		parts = append(parts, a.styles.status.Render(a.status))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) renderTabs() string {
	title := "MoneyMate"
	if a.snap.Profile != nil {
		title += " - " + a.snap.Profile.Name
	}
	tabs := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if tab(i) == a.tab {
			tabs = append(tabs, a.styles.activeTab.Render(label))
		} else {
			tabs = append(tabs, a.styles.tab.Render(label))
		}
	}
	return a.styles.title.Render(title) + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n"
}

func (a *App) help() string {
	common := "[tab] Next  [d] Dark mode  [q] Quit"
	switch a.tab {
	case tabDashboard:
		return "[r] Range  " + common
	case tabHistory:
		return "[j/k] Move  [p] Period  [x] Delete  " + common
	case tabGoals:
		return "[j/k] Move  [+/-] Fund  " + common
	default:
		return "[g] Refresh  " + common
	}
}

func (a *App) money(d decimal.Decimal) string {
	return signedAmount(d, a.currency.Symbol)
}

func signedAmount(d decimal.Decimal, symbol string) string {
	return format.Signed(d, symbol)
}

func (a *App) renderDashboard() string {
	if !a.snap.Onboarded {
		return a.styles.dim.Render("Not onboarded yet. Run `moneymate onboard` first.")
	}
	now := a.clock()
	d := metrics.BuildDashboard(a.snap.Profile, a.snap.Transactions, a.snap.Goals, a.rng, now)
	month := metrics.MonthSummary(a.snap.Transactions, now)

	summary := strings.Join([]string{
		a.row("Balance", a.styles.value.Render(a.money(d.Balance))+" "+a.styles.dim.Render(format.PercentChange(d.BalanceChange))),
		a.row("Income", a.styles.income.Render(a.money(d.TotalIncome))),
		a.row("Expenses", a.styles.expense.Render(a.money(d.TotalExpenses))),
		a.row("This month", fmt.Sprintf("%s in / %s out", a.money(month.Income), a.money(month.Expenses))),
		a.row("Goals", format.Percent(d.GoalProgress)),
	}, "\n")

	var b strings.Builder
	fmt.Fprintf(&b, "Spending (%s): %s in / %s out\n", d.Range, a.money(d.RangeIncome), a.money(d.RangeExpenses))
	if len(d.Breakdown) == 0 {
		b.WriteString(a.styles.dim.Render("No expenses in this range."))
	}
	for _, c := range metrics.Top(d.Breakdown, 5) {
		share := metrics.Share(c.Total, d.RangeExpenses)
		fmt.Fprintf(&b, "%-16s %s %5s  %s\n", c.Category, bar(share), format.Percent(share), a.money(c.Total))
	}

	recent := "Recent transactions\n"
	if len(d.Recent) == 0 {
		recent += a.styles.dim.Render("Nothing yet.")
	}
	for _, t := range d.Recent {
		recent += a.txLine(t, false) + "\n"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.styles.box.Render(summary),
		a.styles.box.Render(strings.TrimRight(b.String(), "\n")),
		a.styles.box.Render(strings.TrimRight(recent, "\n")),
	)
}

func (a *App) row(label, value string) string {
	return a.styles.label.Render(fmt.Sprintf("%-12s", label)) + value
}

func (a *App) txLine(t model.Transaction, selected bool) string {
	amount := a.money(t.Amount)
	style := a.styles.income
	if t.IsExpense() {
		amount = a.money(t.Amount.Neg())
		style = a.styles.expense
	}
	marker := "  "
	if selected {
		marker = a.styles.cursor.Render("> ")
	}
	line := fmt.Sprintf("%-12s %-14s %s", format.Date(t.Date.In(a.loc)), t.Category, style.Render(fmt.Sprintf("%12s", amount)))
	if t.Notes != "" {
		line += "  " + a.styles.dim.Render(t.Notes)
	}
	return marker + line
}

func (a *App) renderHistory() string {
	list := a.history()
	label := string(a.period)
	if a.period == metrics.AllTime {
		label = "all time"
	}
	out := a.styles.label.Render("Period: "+label) + "\n"
	if len(list) == 0 {
		return out + a.styles.dim.Render("No transactions.")
	}
	i := 0
	for _, g := range metrics.GroupByDay(list, a.loc) {
		out += a.styles.value.Render(format.Date(g.Day)) + "\n"
		for _, t := range g.Transactions {
			out += a.txLine(t, i == a.cursor[tabHistory]) + "\n"
			i++
		}
	}
	return strings.TrimRight(out, "\n")
}

func (a *App) renderGoals() string {
	if len(a.snap.Goals) == 0 {
		return a.styles.dim.Render("No goals. Add one with `moneymate goal add`.")
	}
	out := a.row("Overall", format.Percent(metrics.OverallGoalProgress(a.snap.Goals))) + "\n"
	for i, g := range a.snap.Goals {
		marker := "  "
		if i == a.cursor[tabGoals] {
			marker = a.styles.cursor.Render("> ")
		}
		color := lipgloss.NewStyle().Foreground(lipgloss.Color(g.Color))
		out += fmt.Sprintf("%s%-20s %s %5s  %s / %s\n",
			marker,
			color.Render(g.Name),
			bar(metrics.CappedProgress(g)),
			format.Percent(metrics.GoalProgress(g)),
			a.money(g.CurrentAmount),
			a.money(g.TargetAmount),
		)
	}
	return strings.TrimRight(out, "\n")
}

func (a *App) renderInsights() string {
	if a.loading {
		return a.styles.dim.Render("Asking the advisor...")
	}
	if len(a.insights) == 0 {
		return a.styles.dim.Render(fmt.Sprintf("Add at least %d transactions to see insights.", insight.MinTransactions))
	}
	blocks := make([]string, 0, len(a.insights))
	for _, in := range a.insights {
		kind, ok := a.styles.kind[string(in.Kind)]
		if !ok {
			kind = a.styles.value
		}
		blocks = append(blocks, a.styles.box.Render(kind.Render(in.Title)+"\n"+in.Description))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

// bar draws a fixed-width progress bar for pct in [0, 100].
func bar(pct float64) string {
	filled := int(pct / 100 * barWidth)
	filled = min(max(filled, 0), barWidth)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", barWidth-filled) + "]"
}

// Package tui is the interactive terminal front end over the ledger.
package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/jask/moneymate/internal/insight"
	"github.com/jask/moneymate/internal/llm"
	"github.com/jask/moneymate/internal/metrics"
	"github.com/jask/moneymate/internal/model"
	"github.com/jask/moneymate/internal/store"
)

// Ledger is the state manager surface the TUI drives.
type Ledger interface {
	Snapshot() store.Snapshot
	SelectedCurrency() model.Currency
	ToggleDarkMode() bool
	DeleteTransaction(id string)
	FundGoal(id string, amount decimal.Decimal) bool
}

type tab int

const (
	tabDashboard tab = iota
	tabHistory
	tabGoals
	tabInsights
)

var tabNames = []string{"Dashboard", "History", "Goals", "Insights"}

// fundStep is what "+" and "-" add to or take from the selected goal.
var fundStep = decimal.NewFromInt(10)

// App is the bubbletea model.
type App struct {
	ctx     context.Context
	ledger  Ledger
	advisor llm.Advisor
	loc     *time.Location
	now     func() time.Time

	tab      tab
	rng      metrics.Range
	period   metrics.Period
	snap     store.Snapshot
	currency model.Currency
	styles   styles
	cursor   map[tab]int
	insights []model.Insight
	gen      int
	loading  bool
	status   string
	width    int
}

// insightsMsg carries enriched insights for the data generation gen.
type insightsMsg struct {
	gen  int
	list []model.Insight
}

type statusMsg string

// New builds the app. advisor may be nil; loc defaults to time.Local.
func New(ctx context.Context, l Ledger, advisor llm.Advisor, loc *time.Location) *App {
	if loc == nil {
		loc = time.Local
	}
	a := &App{
		ctx:     ctx,
		ledger:  l,
		advisor: advisor,
		loc:     loc,
		now:     time.Now,
		rng:     metrics.Monthly,
		cursor:  map[tab]int{},
	}
	a.refresh()
	a.insights = insight.Generate(a.snap.Transactions, a.snap.Profile, a.clock())
	return a
}

func (a *App) Init() tea.Cmd {
	return a.insightsCmd()
}

func (a *App) clock() time.Time { return a.now().In(a.loc) }

// refresh rereads ledger state after every mutation.
func (a *App) refresh() {
	a.snap = a.ledger.Snapshot()
	a.currency = a.ledger.SelectedCurrency()
	a.styles = newStyles(a.snap.DarkMode)
	a.clampCursor()
}

// dataChanged rebuilds the rule insights after transactions or goals change
// and asks the advisor again. Replies for older data are dropped.
func (a *App) dataChanged() tea.Cmd {
	a.gen++
	a.insights = insight.Generate(a.snap.Transactions, a.snap.Profile, a.clock())
	return a.insightsCmd()
}

func (a *App) insightsCmd() tea.Cmd {
	if a.advisor == nil {
		return nil
	}
	a.loading = true
	snap, now, gen := a.snap, a.clock(), a.gen
	return func() tea.Msg {
		base := insight.Generate(snap.Transactions, snap.Profile, now)
		summary := insight.Summarize(snap.Transactions, snap.Profile, snap.Goals, base, now)
		return insightsMsg{gen: gen, list: insight.Enrich(a.ctx, base, a.advisor, summary)}
	}
}

func (a *App) history() []model.Transaction {
	return metrics.History(a.snap.Transactions, metrics.HistoryFilter{Period: a.period}, a.clock())
}

func (a *App) listLen() int {
	switch a.tab {
	case tabHistory:
		return len(a.history())
	case tabGoals:
		return len(a.snap.Goals)
	default:
		return 0
	}
}

func (a *App) clampCursor() {
	n := a.listLen()
	if c := a.cursor[a.tab]; c >= n {
		a.cursor[a.tab] = max(n-1, 0)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
	case insightsMsg:
		if m.gen == a.gen {
			a.insights = m.list
			a.loading = false
		}
	case statusMsg:
		a.status = string(m)
	case tea.KeyMsg:
		return a.handleKey(m)
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "tab", "right", "l":
		a.tab = (a.tab + 1) % tab(len(tabNames))
		a.clampCursor()
	case "shift+tab", "left", "h":
		a.tab = (a.tab + tab(len(tabNames)) - 1) % tab(len(tabNames))
		a.clampCursor()
	case "1", "2", "3", "4":
		a.tab = tab(m.String()[0] - '1')
		a.clampCursor()
	case "d":
		on := a.ledger.ToggleDarkMode()
		a.refresh()
		a.status = "dark mode off"
		if on {
			a.status = "dark mode on"
		}
	case "r":
		if a.tab == tabDashboard {
			a.rng = a.rng.Next()
		}
	case "p":
		if a.tab == tabHistory {
			a.period = nextPeriod(a.period)
			a.cursor[tabHistory] = 0
		}
	case "up", "k":
		if a.cursor[a.tab] > 0 {
			a.cursor[a.tab]--
		}
	case "down", "j":
		if a.cursor[a.tab] < a.listLen()-1 {
			a.cursor[a.tab]++
		}
	case "x":
		if a.tab == tabHistory {
			list := a.history()
			if len(list) > 0 {
				t := list[a.cursor[tabHistory]]
				a.ledger.DeleteTransaction(t.ID)
				a.refresh()
				a.status = "transaction deleted"
				return a, a.dataChanged()
			}
		}
	case "+", "-":
		if a.tab == tabGoals && len(a.snap.Goals) > 0 {
			step := fundStep
			if m.String() == "-" {
				step = step.Neg()
			}
			g := a.snap.Goals[a.cursor[tabGoals]]
			if a.ledger.FundGoal(g.ID, step) {
				a.refresh()
				a.status = fmt.Sprintf("%s: %s", g.Name, signedAmount(step, a.currency.Symbol))
				return a, a.dataChanged()
			}
		}
	case "g":
		if a.tab == tabInsights && !a.loading {
			return a, a.insightsCmd()
		}
	}
	return a, nil
}

var periods = []metrics.Period{metrics.AllTime, metrics.Today, metrics.ThisWeek, metrics.ThisMonth, metrics.ThisYear}

func nextPeriod(p metrics.Period) metrics.Period {
	for i, candidate := range periods {
		if candidate == p {
			return periods[(i+1)%len(periods)]
		}
	}
	return metrics.AllTime
}

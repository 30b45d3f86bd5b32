package metrics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jask/moneymate/internal/model"
)

// RecentLimit is how many transactions the dashboard lists.
const RecentLimit = 5

// Dashboard is everything the dashboard screen shows.
type Dashboard struct {
	Range         Range
	Balance       decimal.Decimal
	BalanceChange float64 // percent vs the starting balance; 0 when that is not positive
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	RangeIncome   decimal.Decimal
	RangeExpenses decimal.Decimal
	Breakdown     []CategoryTotal
	GoalProgress  float64
	Recent        []model.Transaction
}

// BuildDashboard folds the current state into a Dashboard. The balance is 0
// when there is no profile.
func BuildDashboard(profile *model.Profile, txs []model.Transaction, goals []model.Goal, r Range, now time.Time) Dashboard {
	windowed := Window(txs, r, now)
	d := Dashboard{
		Range:         r,
		TotalIncome:   TotalIncome(txs),
		TotalExpenses: TotalExpenses(txs),
		RangeIncome:   TotalIncome(windowed),
		RangeExpenses: TotalExpenses(windowed),
		Breakdown:     CategoryBreakdown(windowed),
		GoalProgress:  OverallGoalProgress(goals),
		Recent:        Recent(txs, RecentLimit),
	}
	if profile != nil {
		d.Balance = Balance(profile.StartingBalance, txs)
		d.BalanceChange = Share(d.Balance.Sub(profile.StartingBalance), profile.StartingBalance)
	}
	return d
}

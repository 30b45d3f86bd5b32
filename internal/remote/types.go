// Package remote is the optional sync backend's wire format and HTTP client.
// The ledger never calls it; only explicit sync commands do.
package remote

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jask/moneymate/internal/model"
)

// UserHeader scopes every request to one user.
const UserHeader = "X-User-ID"

// ProfileRecord is the backend's copy of the profile.
type ProfileRecord struct {
	Name                   string           `json:"name"`
	Age                    *int             `json:"age,omitempty"`
	Role                   string           `json:"role"`
	StartingBalance        decimal.Decimal  `json:"starting_balance"`
	Currency               string           `json:"currency"`
	MonthlyIncomeEstimate  *decimal.Decimal `json:"monthly_income_estimate,omitempty"`
	MonthlyExpenseEstimate *decimal.Decimal `json:"monthly_expense_estimate,omitempty"`
	MonthlyBudgetTarget    *decimal.Decimal `json:"monthly_budget_target,omitempty"`
	UpdatedAt              time.Time        `json:"updated_at,omitempty"`
}

// TransactionRecord is a synced transaction. ID is the app's id when the
// client supplies one; the backend generates it otherwise.
type TransactionRecord struct {
	ID            string          `json:"id,omitempty"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Category      string          `json:"category"`
	Notes         string          `json:"notes,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
	CreatedAt     time.Time       `json:"created_at,omitempty"`
}

// GoalRecord is a synced goal.
type GoalRecord struct {
	ID            string          `json:"id,omitempty"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	StartDate     time.Time       `json:"start_date"`
	EndDate       *time.Time      `json:"end_date,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Color         string          `json:"color,omitempty"`
	CreatedAt     time.Time       `json:"created_at,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at,omitempty"`
}

// GoalUpdate is a partial goal update; nil fields are left alone.
type GoalUpdate struct {
	Name          *string          `json:"name,omitempty"`
	Category      *string          `json:"category,omitempty"`
	TargetAmount  *decimal.Decimal `json:"target_amount,omitempty"`
	CurrentAmount *decimal.Decimal `json:"current_amount,omitempty"`
	StartDate     *time.Time       `json:"start_date,omitempty"`
	EndDate       *time.Time       `json:"end_date,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	Color         *string          `json:"color,omitempty"`
}

// ErrorBody is the backend's error payload.
type ErrorBody struct {
	Error string `json:"error"`
}

func FromProfile(p model.Profile) ProfileRecord {
	p = p.Clone()
	return ProfileRecord{
		Name:                   p.Name,
		Age:                    p.Age,
		Role:                   string(p.Role),
		StartingBalance:        p.StartingBalance,
		Currency:               p.Currency,
		MonthlyIncomeEstimate:  p.MonthlyIncomeEstimate,
		MonthlyExpenseEstimate: p.MonthlyExpenseEstimate,
		MonthlyBudgetTarget:    p.MonthlyBudgetTarget,
	}
}

func (r ProfileRecord) ToProfile() model.Profile {
	return model.Profile{
		Name:                   r.Name,
		Age:                    r.Age,
		Role:                   model.Role(r.Role),
		StartingBalance:        r.StartingBalance,
		Currency:               r.Currency,
		MonthlyIncomeEstimate:  r.MonthlyIncomeEstimate,
		MonthlyExpenseEstimate: r.MonthlyExpenseEstimate,
		MonthlyBudgetTarget:    r.MonthlyBudgetTarget,
	}.Clone()
}

func FromTransaction(t model.Transaction) TransactionRecord {
	return TransactionRecord{
		ID:            t.ID,
		Type:          string(t.Type),
		Amount:        t.Amount,
		Date:          t.Date.UTC(),
		Category:      string(t.Category),
		Notes:         t.Notes,
		PaymentMethod: t.PaymentMethod,
		Tags:          append([]string(nil), t.Tags...),
	}
}

func (r TransactionRecord) ToTransaction() model.Transaction {
	return model.Transaction{
		ID:            r.ID,
		Type:          model.TransactionType(r.Type),
		Amount:        r.Amount,
		Date:          r.Date,
		Category:      model.Category(r.Category),
		Notes:         r.Notes,
		PaymentMethod: r.PaymentMethod,
		Tags:          append([]string(nil), r.Tags...),
	}
}

func FromGoal(g model.Goal) GoalRecord {
	g = g.Clone()
	return GoalRecord{
		ID:            g.ID,
		Name:          g.Name,
		Category:      string(g.Category),
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		StartDate:     g.StartDate.UTC(),
		EndDate:       g.EndDate,
		Notes:         g.Notes,
		Color:         g.Color,
	}
}

func (r GoalRecord) ToGoal() model.Goal {
	return model.Goal{
		ID:            r.ID,
		Name:          r.Name,
		Category:      model.GoalCategory(r.Category),
		TargetAmount:  r.TargetAmount,
		CurrentAmount: r.CurrentAmount,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		Notes:         r.Notes,
		Color:         r.Color,
	}.Clone()
}

// FullUpdate is a GoalUpdate that overwrites every field of r.
func (r GoalRecord) FullUpdate() GoalUpdate {
	category := r.Category
	return GoalUpdate{
		Name:          &r.Name,
		Category:      &category,
		TargetAmount:  &r.TargetAmount,
		CurrentAmount: &r.CurrentAmount,
		StartDate:     &r.StartDate,
		EndDate:       r.EndDate,
		Notes:         &r.Notes,
		Color:         &r.Color,
	}
}

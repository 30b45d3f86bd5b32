// Package model holds the domain types shared by the ledger, the store
// adapter, the insight rules and the presentation layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are persisted as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Role describes the user's occupation as captured during onboarding.
type Role string

const (
	RoleStudent       Role = "student"
	RoleEmployed      Role = "employed"
	RoleFreelancer    Role = "freelancer"
	RoleBusinessOwner Role = "business_owner"
	RoleRetired       Role = "retired"
	RoleOther         Role = "other"
)

// Roles lists the roles offered during onboarding.
var Roles = []Role{RoleStudent, RoleEmployed, RoleFreelancer, RoleBusinessOwner, RoleRetired, RoleOther}

// Profile is the single user's financial settings.
type Profile struct {
	Name                   string           `json:"name"`
	Age                    *int             `json:"age,omitempty"`
	Role                   Role             `json:"role"`
	StartingBalance        decimal.Decimal  `json:"startingBalance"`
	Currency               string           `json:"currency"`
	MonthlyIncomeEstimate  *decimal.Decimal `json:"monthlyIncomeEstimate,omitempty"`
	MonthlyExpenseEstimate *decimal.Decimal `json:"monthlyExpenseEstimate,omitempty"`
	MonthlyBudgetTarget    *decimal.Decimal `json:"monthlyBudgetTarget,omitempty"`
}

// Clone returns a copy that shares no pointers with p.
func (p Profile) Clone() Profile {
	out := p
	if p.Age != nil {
		age := *p.Age
		out.Age = &age
	}
	out.MonthlyIncomeEstimate = cloneDecimal(p.MonthlyIncomeEstimate)
	out.MonthlyExpenseEstimate = cloneDecimal(p.MonthlyExpenseEstimate)
	out.MonthlyBudgetTarget = cloneDecimal(p.MonthlyBudgetTarget)
	return out
}

// ProfilePatch is a partial profile update. Nil fields are left untouched.
type ProfilePatch struct {
	Name                   *string
	Age                    *int
	Role                   *Role
	StartingBalance        *decimal.Decimal
	Currency               *string
	MonthlyIncomeEstimate  *decimal.Decimal
	MonthlyExpenseEstimate *decimal.Decimal
	MonthlyBudgetTarget    *decimal.Decimal
}

// Apply shallow-merges patch into a copy of p.
func (p Profile) Apply(patch ProfilePatch) Profile {
	out := p.Clone()
	if patch.Name != nil {
		out.Name = *patch.Name
	}
	if patch.Age != nil {
		age := *patch.Age
		out.Age = &age
	}
	if patch.Role != nil {
		out.Role = *patch.Role
	}
	if patch.StartingBalance != nil {
		out.StartingBalance = *patch.StartingBalance
	}
	if patch.Currency != nil {
		out.Currency = *patch.Currency
	}
	if patch.MonthlyIncomeEstimate != nil {
		out.MonthlyIncomeEstimate = cloneDecimal(patch.MonthlyIncomeEstimate)
	}
	if patch.MonthlyExpenseEstimate != nil {
		out.MonthlyExpenseEstimate = cloneDecimal(patch.MonthlyExpenseEstimate)
	}
	if patch.MonthlyBudgetTarget != nil {
		out.MonthlyBudgetTarget = cloneDecimal(patch.MonthlyBudgetTarget)
	}
	return out
}

// TransactionType separates money in from money out.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Transaction is a single dated income or expense record.
type Transaction struct {
	ID            string          `json:"id"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Category      Category        `json:"category"`
	Notes         string          `json:"notes,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
}

// Clone returns a copy with its own tag slice.
func (t Transaction) Clone() Transaction {
	out := t
	if t.Tags != nil {
		out.Tags = append([]string(nil), t.Tags...)
	}
	return out
}

// IsIncome reports whether t adds to the balance.
func (t Transaction) IsIncome() bool { return t.Type == Income }

// IsExpense reports whether t subtracts from the balance.
func (t Transaction) IsExpense() bool { return t.Type == Expense }

// Goal is a savings target whose progress is tracked independently of
// transactions.
type Goal struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      GoalCategory    `json:"category"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	StartDate     time.Time       `json:"startDate"`
	EndDate       *time.Time      `json:"endDate,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Color         string          `json:"color,omitempty"`
}

// Clone returns a copy that shares no pointers with g.
func (g Goal) Clone() Goal {
	out := g
	if g.EndDate != nil {
		end := *g.EndDate
		out.EndDate = &end
	}
	return out
}

// GoalPatch is a partial goal update. Nil fields are left untouched.
type GoalPatch struct {
	Name          *string
	Category      *GoalCategory
	TargetAmount  *decimal.Decimal
	CurrentAmount *decimal.Decimal
	StartDate     *time.Time
	EndDate       *time.Time
	Notes         *string
	Color         *string
}

// Apply shallow-merges patch into a copy of g.
func (g Goal) Apply(patch GoalPatch) Goal {
	out := g.Clone()
	if patch.Name != nil {
		out.Name = *patch.Name
	}
	if patch.Category != nil {
		out.Category = *patch.Category
	}
	if patch.TargetAmount != nil {
		out.TargetAmount = *patch.TargetAmount
	}
	if patch.CurrentAmount != nil {
		out.CurrentAmount = *patch.CurrentAmount
	}
	if patch.StartDate != nil {
		out.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		end := *patch.EndDate
		out.EndDate = &end
	}
	if patch.Notes != nil {
		out.Notes = *patch.Notes
	}
	if patch.Color != nil {
		out.Color = *patch.Color
	}
	return out
}

// NewTransactionID returns a fresh transaction identifier.
func NewTransactionID() string { return uuid.NewString() }

// NewGoalID returns a fresh goal identifier.
func NewGoalID() string { return uuid.NewString() }

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

package service

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jask/moneymate/internal/model"
)

// DemoLedger is what SeedDemo writes through.
type DemoLedger interface {
	Ledger
	Flush(ctx context.Context) error
}

type demoExpense struct {
	category model.Category
	notes    string
	method   string
	min, max int64
}

var demoExpenses = []demoExpense{
	{model.CategoryFood, "Groceries", "Debit Card", 20, 120},
	{model.CategoryFood, "Takeaway", "Mobile Payment", 10, 45},
	{model.CategoryTransportation, "Fuel", "Credit Card", 30, 80},
	{model.CategoryUtilities, "Electricity", "Bank Transfer", 60, 140},
	{model.CategoryEntertainment, "Streaming", "Credit Card", 10, 20},
	{model.CategoryShopping, "Clothes", "Credit Card", 25, 150},
	{model.CategoryHealthcare, "Pharmacy", "Cash", 5, 60},
}

// SeedDemo onboards a sample profile and fills about a month of activity
// and two goals. It refuses to touch a ledger that is already onboarded.
func SeedDemo(ctx context.Context, l DemoLedger, now time.Time, rng *rand.Rand) (IngestResult, error) {
	var res IngestResult
	if l.Onboarded() {
		return res, errors.New("demo: ledger already has data; reset first")
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(now.UnixNano()))
	}
	budget := decimal.NewFromInt(2500)
	l.CompleteOnboarding(model.Profile{
		Name:                "Demo User",
		Role:                model.RoleEmployed,
		StartingBalance:     decimal.NewFromInt(3000),
		Currency:            model.DefaultCurrency().Code,
		MonthlyBudgetTarget: &budget,
	})

	day := func(back int) time.Time {
		d := now.AddDate(0, 0, -back)
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	}
	add := func(t model.Transaction) {
		t.ID = model.NewTransactionID()
		l.AddTransaction(t)
		res.Imported++
	}

	add(model.Transaction{Type: model.Income, Amount: decimal.NewFromInt(4200), Category: model.CategorySalary, Date: day(14), Notes: "Salary"})
	add(model.Transaction{Type: model.Income, Amount: decimal.NewFromInt(350), Category: model.CategoryFreelance, Date: day(6), Notes: "Side project"})
	add(model.Transaction{Type: model.Expense, Amount: decimal.NewFromInt(1400), Category: model.CategoryHousing, Date: day(13), Notes: "Rent", PaymentMethod: "Bank Transfer"})
	for i := 0; i < 20; i++ {
		e := demoExpenses[rng.Intn(len(demoExpenses))]
		cents := (e.min + rng.Int63n(e.max-e.min+1)) * 100
		cents += rng.Int63n(100)
		add(model.Transaction{
			Type:          model.Expense,
			Amount:        decimal.New(cents, -2),
			Category:      e.category,
			Date:          day(rng.Intn(28)),
			Notes:         e.notes,
			PaymentMethod: e.method,
		})
	}

	for i, tpl := range model.GoalTemplates[:2] {
		l.AddGoal(model.Goal{
			ID:            model.NewGoalID(),
			Name:          tpl.Name,
			Category:      tpl.Category,
			TargetAmount:  tpl.TargetAmount,
			CurrentAmount: tpl.TargetAmount.Div(decimal.NewFromInt(int64(4 + i*4))).Round(0),
			StartDate:     day(30),
			Color:         model.GoalColors[i],
		})
	}
	return res, l.Flush(ctx)
}

package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestGoalApplyLeavesUnsetFields(t *testing.T) {
	t.Parallel()

	end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	g := Goal{
		ID:            "g1",
		Name:          "Vacation",
		Category:      GoalTravel,
		TargetAmount:  decimal.NewFromInt(2000),
		CurrentAmount: decimal.NewFromInt(100),
		StartDate:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       &end,
		Notes:         "beach",
		Color:         "#8b5cf6",
	}
	current := decimal.NewFromInt(450)
	out := g.Apply(GoalPatch{CurrentAmount: &current})

	require.True(t, out.CurrentAmount.Equal(current))
	out.CurrentAmount = g.CurrentAmount
	require.Equal(t, g, out)
	require.NotSame(t, g.EndDate, out.EndDate)
}

func TestProfileApply(t *testing.T) {
	t.Parallel()

	p := Profile{Name: "Ana", Role: RoleStudent, StartingBalance: decimal.NewFromInt(50), Currency: "USD"}
	name := "Ana Maria"
	target := decimal.NewFromInt(900)
	out := p.Apply(ProfilePatch{Name: &name, MonthlyBudgetTarget: &target})

	require.Equal(t, "Ana Maria", out.Name)
	require.Equal(t, RoleStudent, out.Role)
	require.Equal(t, "USD", out.Currency)
	require.True(t, out.MonthlyBudgetTarget.Equal(target))
	require.Nil(t, p.MonthlyBudgetTarget)
}

func TestLookupCurrencyFallsBackToDefault(t *testing.T) {
	t.Parallel()

	require.Equal(t, "GBP", LookupCurrency("GBP").Code)
	require.Equal(t, "USD", LookupCurrency("XYZ").Code)
	require.Equal(t, "USD", LookupCurrency("").Code)
	_, ok := FindCurrency("eur")
	require.False(t, ok)
	require.Equal(t, "EUR", NormalizeCurrencyCode(" eur "))
}

func TestCategoryValidFor(t *testing.T) {
	t.Parallel()

	require.True(t, CategoryFood.ValidFor(Expense))
	require.False(t, CategoryFood.ValidFor(Income))
	require.True(t, CategorySalary.ValidFor(Income))
	require.True(t, CategoryGifts.ValidFor(Income))
	require.True(t, CategoryGifts.ValidFor(Expense))
	require.Nil(t, CategoriesFor("transfer"))
}

func TestValidateTransaction(t *testing.T) {
	t.Parallel()

	ok := Transaction{Type: Expense, Amount: decimal.NewFromInt(5), Category: CategoryFood}
	require.NoError(t, ValidateTransaction(ok))

	zero := ok
	zero.Amount = decimal.Zero
	require.ErrorIs(t, ValidateTransaction(zero), ErrInvalidAmount)

	noCat := ok
	noCat.Category = ""
	require.ErrorIs(t, ValidateTransaction(noCat), ErrMissingCategory)

	cross := ok
	cross.Category = CategorySalary
	require.ErrorIs(t, ValidateTransaction(cross), ErrCategoryMismatch)

	badType := ok
	badType.Type = "transfer"
	require.ErrorIs(t, ValidateTransaction(badType), ErrInvalidType)
}

func TestParseCategorySuggests(t *testing.T) {
	t.Parallel()

	c, err := ParseCategory(Expense, " Food ")
	require.NoError(t, err)
	require.Equal(t, CategoryFood, c)

	_, err = ParseCategory(Expense, "shoping")
	var unknown *UnknownCategoryError
	require.True(t, errors.As(err, &unknown))
	require.Equal(t, CategoryShopping, unknown.Suggestion)
	require.ErrorIs(t, err, ErrCategoryMismatch)
	require.Contains(t, err.Error(), "did you mean shopping")

	_, err = ParseCategory(Income, "zzzzzzzzzzzz")
	require.True(t, errors.As(err, &unknown))
	require.Empty(t, unknown.Suggestion)
}

func TestTransactionJSONUsesNumbers(t *testing.T) {
	t.Parallel()

	tx := Transaction{
		ID:       "t1",
		Type:     Income,
		Amount:   decimal.RequireFromString("1250.5"),
		Date:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Category: CategorySalary,
	}
	data, err := json.Marshal(tx)
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"t1","type":"income","amount":1250.5,"date":"2026-03-01T00:00:00Z","category":"salary"}`, string(data))

	var back Transaction
	require.NoError(t, json.Unmarshal(data, &back))
	require.True(t, back.Amount.Equal(tx.Amount))
}

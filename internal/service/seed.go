package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jask/moneymate/internal/model"
)

// seedFile is the YAML import layout. Every section is optional.
type seedFile struct {
	Profile      *profileRow      `yaml:"profile"`
	Transactions []transactionRow `yaml:"transactions"`
	Goals        []goalRow        `yaml:"goals"`
}

type profileRow struct {
	Name                   string `yaml:"name"`
	Age                    string `yaml:"age"`
	Role                   string `yaml:"role"`
	StartingBalance        string `yaml:"starting_balance"`
	Currency               string `yaml:"currency"`
	MonthlyIncomeEstimate  string `yaml:"monthly_income_estimate"`
	MonthlyExpenseEstimate string `yaml:"monthly_expense_estimate"`
	MonthlyBudgetTarget    string `yaml:"monthly_budget_target"`
}

type goalRow struct {
	Name          string `yaml:"name"`
	Category      string `yaml:"category"`
	TargetAmount  string `yaml:"target_amount"`
	CurrentAmount string `yaml:"current_amount"`
	StartDate     string `yaml:"start_date"`
	EndDate       string `yaml:"end_date"`
	Notes         string `yaml:"notes"`
	Color         string `yaml:"color"`
}

// ImportYAML loads a seed document. A profile onboards the user unless they
// are already onboarded, in which case it is skipped.
func (s *ImportService) ImportYAML(ctx context.Context, r io.Reader, tz *time.Location) (IngestResult, error) {
	res := IngestResult{}
	if s.Ledger == nil {
		return res, errors.New("import: ledger not configured")
	}
	var doc seedFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return res, fmt.Errorf("parse yaml: %w", err)
	}

	if doc.Profile != nil {
		switch p, err := doc.Profile.toProfile(); {
		case err != nil:
			res.Errors = append(res.Errors, fmt.Errorf("profile: %w", err))
		case s.Ledger.Onboarded():
			res.Skipped++
		default:
			s.Ledger.CompleteOnboarding(p)
			res.Imported++
		}
	}

	for i, row := range doc.Transactions {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		t, err := row.toTransaction(tz)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("transaction %d %w", i+1, err))
			continue
		}
		s.Ledger.AddTransaction(t)
		res.Imported++
	}

	for i, row := range doc.Goals {
		g, err := row.toGoal(tz, s.now(), i)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("goal %d: %w", i+1, err))
			continue
		}
		s.Ledger.AddGoal(g)
		res.Imported++
	}
	s.Log.Info().Int("imported", res.Imported).Int("skipped", res.Skipped).Int("errors", len(res.Errors)).Msg("yaml import")
	return res, nil
}

func (row profileRow) toProfile() (model.Profile, error) {
	p := model.Profile{
		Name:     strings.TrimSpace(row.Name),
		Role:     model.Role(strings.ToLower(strings.TrimSpace(row.Role))),
		Currency: model.NormalizeCurrencyCode(row.Currency),
	}
	if p.Currency == "" {
		p.Currency = model.DefaultCurrency().Code
	}
	if strings.TrimSpace(row.Age) != "" {
		age, err := strconv.Atoi(strings.TrimSpace(row.Age))
		if err != nil {
			return model.Profile{}, fmt.Errorf("age: %w", err)
		}
		p.Age = &age
	}
	if strings.TrimSpace(row.StartingBalance) != "" {
		v, err := decimal.NewFromString(strings.TrimSpace(row.StartingBalance))
		if err != nil {
			return model.Profile{}, fmt.Errorf("starting_balance: %w", err)
		}
		p.StartingBalance = v
	}
	for _, opt := range []struct {
		name string
		raw  string
		dst  **decimal.Decimal
	}{
		{"monthly_income_estimate", row.MonthlyIncomeEstimate, &p.MonthlyIncomeEstimate},
		{"monthly_expense_estimate", row.MonthlyExpenseEstimate, &p.MonthlyExpenseEstimate},
		{"monthly_budget_target", row.MonthlyBudgetTarget, &p.MonthlyBudgetTarget},
	} {
		if strings.TrimSpace(opt.raw) == "" {
			continue
		}
		v, err := decimal.NewFromString(strings.TrimSpace(opt.raw))
		if err != nil {
			return model.Profile{}, fmt.Errorf("%s: %w", opt.name, err)
		}
		*opt.dst = &v
	}
	if err := model.ValidateProfile(p); err != nil {
		return model.Profile{}, err
	}
	return p, nil
}

func (row goalRow) toGoal(tz *time.Location, now time.Time, index int) (model.Goal, error) {
	g := model.Goal{
		ID:       model.NewGoalID(),
		Name:     strings.TrimSpace(row.Name),
		Category: model.GoalCategory(strings.ToLower(strings.TrimSpace(row.Category))),
		Notes:    strings.TrimSpace(row.Notes),
		Color:    strings.TrimSpace(row.Color),
	}
	if g.Category == "" {
		g.Category = model.GoalOther
	}
	if g.Color == "" {
		g.Color = model.GoalColors[index%len(model.GoalColors)]
	}
	target, err := parseAmount(row.TargetAmount)
	if err != nil {
		return model.Goal{}, fmt.Errorf("target_amount: %w", err)
	}
	g.TargetAmount = target
	if strings.TrimSpace(row.CurrentAmount) != "" {
		current, err := parseAmount(row.CurrentAmount)
		if err != nil {
			return model.Goal{}, fmt.Errorf("current_amount: %w", err)
		}
		g.CurrentAmount = current
	}
	g.StartDate = now.UTC()
	if strings.TrimSpace(row.StartDate) != "" {
		if g.StartDate, err = parseLocalDate(row.StartDate, tz); err != nil {
			return model.Goal{}, fmt.Errorf("start_date: %w", err)
		}
	}
	if strings.TrimSpace(row.EndDate) != "" {
		end, err := parseLocalDate(row.EndDate, tz)
		if err != nil {
			return model.Goal{}, fmt.Errorf("end_date: %w", err)
		}
		g.EndDate = &end
	}
	if err := model.ValidateGoal(g); err != nil {
		return model.Goal{}, err
	}
	return g, nil
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jask/moneymate/internal/format"
	"github.com/jask/moneymate/internal/model"
)

type profileFlags struct {
	name     string
	age      int
	role     string
	balance  string
	currency string
	income   string
	expenses string
	budget   string
}

func (f *profileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "your name")
	cmd.Flags().IntVar(&f.age, "age", 0, "your age")
	cmd.Flags().StringVar(&f.role, "role", string(model.RoleEmployed), "student|employed|freelancer|business_owner|retired|other")
	cmd.Flags().StringVar(&f.balance, "balance", "0", "starting balance")
	cmd.Flags().StringVar(&f.currency, "currency", model.DefaultCurrency().Code, "currency code")
	cmd.Flags().StringVar(&f.income, "income", "", "estimated monthly income")
	cmd.Flags().StringVar(&f.expenses, "expenses", "", "estimated monthly expenses")
	cmd.Flags().StringVar(&f.budget, "budget", "", "monthly budget target")
}

func resolveCurrency(code string) (string, error) {
	code = model.NormalizeCurrencyCode(code)
	if _, ok := model.FindCurrency(code); !ok {
		return "", fmt.Errorf("unsupported currency %q (see `moneymate currency list`)", code)
	}
	return code, nil
}

func newOnboardCommand(opts *RootOptions) *cobra.Command {
	var f profileFlags
	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Set up your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := model.Profile{
				Name: strings.TrimSpace(f.name),
				Role: model.Role(strings.ToLower(strings.TrimSpace(f.role))),
			}
			if cmd.Flags().Changed("age") {
				age := f.age
				p.Age = &age
			}
			bal, err := parseAmount(f.balance)
			if err != nil {
				return fmt.Errorf("balance: %w", err)
			}
			p.StartingBalance = bal
			if p.Currency, err = resolveCurrency(f.currency); err != nil {
				return err
			}
			if p.MonthlyIncomeEstimate, err = optionalAmount(f.income != "", f.income); err != nil {
				return fmt.Errorf("income: %w", err)
			}
			if p.MonthlyExpenseEstimate, err = optionalAmount(f.expenses != "", f.expenses); err != nil {
				return fmt.Errorf("expenses: %w", err)
			}
			if p.MonthlyBudgetTarget, err = optionalAmount(f.budget != "", f.budget); err != nil {
				return fmt.Errorf("budget: %w", err)
			}
			if err := model.ValidateProfile(p); err != nil {
				return err
			}
			return withLedger(cmd, opts, func(e *env) error {
				e.ledger.CompleteOnboarding(p)
				fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s. Starting balance %s.\n", p.Name, format.Currency(p.StartingBalance, p.Currency))
				return nil
			})
		},
	}
	f.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

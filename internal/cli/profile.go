package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jask/moneymate/internal/format"
	"github.com/jask/moneymate/internal/model"
)

func newProfileCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLedger(cmd, opts, func(e *env) error {
				p, ok := e.ledger.Profile()
				if !ok {
					return errNotOnboarded
				}
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "Name:      %s\n", p.Name)
				if p.Age != nil {
					fmt.Fprintf(w, "Age:       %d\n", *p.Age)
				}
				fmt.Fprintf(w, "Role:      %s\n", p.Role)
				fmt.Fprintf(w, "Currency:  %s\n", p.Currency)
				fmt.Fprintf(w, "Starting:  %s\n", format.Currency(p.StartingBalance, p.Currency))
				if p.MonthlyBudgetTarget != nil {
					fmt.Fprintf(w, "Budget:    %s\n", format.Currency(*p.MonthlyBudgetTarget, p.Currency))
				}
				return nil
			})
		},
	}
	cmd.AddCommand(newProfileUpdateCommand(opts))
	return cmd
}

func newProfileUpdateCommand(opts *RootOptions) *cobra.Command {
	var f profileFlags
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change profile fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var patch model.ProfilePatch
			if flags.Changed("name") {
				n := strings.TrimSpace(f.name)
				if n == "" {
					return model.ErrMissingName
				}
				patch.Name = &n
			}
			if flags.Changed("age") {
				patch.Age = &f.age
			}
			if flags.Changed("role") {
				r := model.Role(strings.ToLower(strings.TrimSpace(f.role)))
				if err := model.ValidateProfile(model.Profile{Name: "-", Role: r}); err != nil {
					return err
				}
				patch.Role = &r
			}
			if flags.Changed("currency") {
				code, err := resolveCurrency(f.currency)
				if err != nil {
					return err
				}
				patch.Currency = &code
			}
			var err error
			if patch.StartingBalance, err = optionalAmount(flags.Changed("balance"), f.balance); err != nil {
				return fmt.Errorf("balance: %w", err)
			}
			if patch.MonthlyIncomeEstimate, err = optionalAmount(flags.Changed("income"), f.income); err != nil {
				return fmt.Errorf("income: %w", err)
			}
			if patch.MonthlyExpenseEstimate, err = optionalAmount(flags.Changed("expenses"), f.expenses); err != nil {
				return fmt.Errorf("expenses: %w", err)
			}
			if patch.MonthlyBudgetTarget, err = optionalAmount(flags.Changed("budget"), f.budget); err != nil {
				return fmt.Errorf("budget: %w", err)
			}
			return withLedger(cmd, opts, func(e *env) error {
				if !e.ledger.UpdateUserData(patch) {
					return errNotOnboarded
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Profile updated.")
				return nil
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newCurrencyCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "currency",
		Short: "Show or change the display currency",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the selected currency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLedger(cmd, opts, func(e *env) error {
				c := e.ledger.SelectedCurrency()
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", c.Code, c.Symbol, c.Name)
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <code>",
		Short: "Change the currency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := resolveCurrency(args[0])
			if err != nil {
				return err
			}
			return withLedger(cmd, opts, func(e *env) error {
				if !e.ledger.ChangeCurrency(code) {
					return errNotOnboarded
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Currency set to %s.\n", code)
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List supported currencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, c := range model.Currencies {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-3s %s\n", c.Code, c.Symbol, c.Name)
			}
			return nil
		},
	})
	return cmd
}

func newDarkModeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "darkmode",
		Short: "Toggle dark mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLedger(cmd, opts, func(e *env) error {
				state := "off"
				if e.ledger.ToggleDarkMode() {
					state = "on"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Dark mode %s.\n", state)
				return nil
			})
		},
	}
}

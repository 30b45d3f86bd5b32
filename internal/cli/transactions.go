package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jask/moneymate/internal/format"
	"github.com/jask/moneymate/internal/metrics"
	"github.com/jask/moneymate/internal/model"
)

// newTransactionCommand builds "income" or "expense" with an "add"
// subcommand.
func newTransactionCommand(opts *RootOptions, kind string) *cobra.Command {
	typ := model.TransactionType(kind)
	cmd := &cobra.Command{
		Use:   kind,
		Short: fmt.Sprintf("Record %s", kind),
	}

	var amount, category, date, notes, method string
	var tags []string
	add := &cobra.Command{
		Use:   "add",
		Short: fmt.Sprintf("Add an %s transaction", kind),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := parseAmount(amount)
			if err != nil {
				return err
			}
			cat, err := model.ParseCategory(typ, category)
			if err != nil {
				return err
			}
			t := model.Transaction{
				ID:       model.NewTransactionID(),
				Type:     typ,
				Amount:   amt,
				Category: cat,
				Notes:    strings.TrimSpace(notes),
				Tags:     cleanTags(tags),
			}
			if typ == model.Expense && method != "" {
				m, ok := validPaymentMethod(model.PaymentMethods, method)
				if !ok {
					return fmt.Errorf("unknown payment method %q (want one of %s)", method, strings.Join(model.PaymentMethods, ", "))
				}
				t.PaymentMethod = m
			}
			if err := model.ValidateTransaction(t); err != nil {
				return err
			}
			return withLedger(cmd, opts, func(e *env) error {
				if err := requireOnboarded(e); err != nil {
					return err
				}
				if t.Date, err = format.ParseDate(date, e.loc, e.now); err != nil {
					return err
				}
				e.ledger.AddTransaction(t)
				cur := e.ledger.SelectedCurrency()
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s (%s) on %s. Balance %s.\n",
					kind, format.Signed(amt, cur.Symbol), cat, format.Date(t.Date),
					format.Signed(e.ledger.CurrentBalance(), cur.Symbol))
				return nil
			})
		},
	}
	add.Flags().StringVarP(&amount, "amount", "a", "", "amount (positive)")
	add.Flags().StringVarP(&category, "category", "c", "", "category")
	add.Flags().StringVarP(&date, "date", "d", "", "date YYYY-MM-DD (default today)")
	add.Flags().StringVarP(&notes, "notes", "n", "", "notes")
	add.Flags().StringSliceVarP(&tags, "tag", "t", nil, "tag (repeatable)")
	if typ == model.Expense {
		add.Flags().StringVarP(&method, "method", "m", "", "payment method")
	}
	_ = add.MarkFlagRequired("amount")
	_ = add.MarkFlagRequired("category")
	cmd.AddCommand(add)
	return cmd
}

func newHistoryCommand(opts *RootOptions) *cobra.Command {
	var typ, method, period string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List transactions grouped by day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := metrics.ParsePeriod(period)
			if err != nil {
				return err
			}
			f := metrics.HistoryFilter{Period: p, PaymentMethod: method}
			switch typ {
			case "", "all":
			case string(model.Income), string(model.Expense):
				f.Type = model.TransactionType(typ)
			default:
				return fmt.Errorf("unknown type %q (want income or expense)", typ)
			}
			return withLedger(cmd, opts, func(e *env) error {
				list := metrics.History(e.ledger.Transactions(), f, e.now)
				if len(list) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No transactions.")
					return nil
				}
				cur := e.ledger.SelectedCurrency()
				for _, g := range metrics.GroupByDay(list, e.loc) {
					fmt.Fprintln(cmd.OutOrStdout(), format.Date(g.Day))
					for _, t := range g.Transactions {
						writeTransaction(cmd.OutOrStdout(), t, cur.Symbol)
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&typ, "type", "", "income|expense")
	cmd.Flags().StringVar(&method, "method", "", "payment method")
	cmd.Flags().StringVar(&period, "period", "", "today|week|month|year")
	return cmd
}

func writeTransaction(w io.Writer, t model.Transaction, symbol string) {
	amount := t.Amount
	if t.IsExpense() {
		amount = amount.Neg()
	}
	line := fmt.Sprintf("  %-36s %-14s %12s", t.ID, t.Category, format.Signed(amount, symbol))
	if t.PaymentMethod != "" {
		line += "  " + t.PaymentMethod
	}
	if t.Notes != "" {
		line += "  " + t.Notes
	}
	if len(t.Tags) > 0 {
		line += "  #" + strings.Join(t.Tags, " #")
	}
	fmt.Fprintln(w, line)
}

func newTxCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Manage transactions",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLedger(cmd, opts, func(e *env) error {
				before := len(e.ledger.Transactions())
				e.ledger.DeleteTransaction(args[0])
				if len(e.ledger.Transactions()) == before {
					fmt.Fprintf(cmd.OutOrStdout(), "No transaction %s.\n", args[0])
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", args[0])
				return nil
			})
		},
	})
	return cmd
}

func newBalanceCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the current balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLedger(cmd, opts, func(e *env) error {
				fmt.Fprintln(cmd.OutOrStdout(), format.Signed(e.ledger.CurrentBalance(), e.ledger.SelectedCurrency().Symbol))
				return nil
			})
		},
	}
}

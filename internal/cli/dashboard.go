package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/moneymate/internal/format"
	"github.com/jask/moneymate/internal/insight"
	"github.com/jask/moneymate/internal/llm"
	"github.com/jask/moneymate/internal/metrics"
	"github.com/jask/moneymate/internal/secrets"
)

func newDashboardCommand(opts *RootOptions) *cobra.Command {
	var rng string
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show balance, spending and recent activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := metrics.ParseRange(rng)
			if err != nil {
				return err
			}
			return withLedger(cmd, opts, func(e *env) error {
				if err := requireOnboarded(e); err != nil {
					return err
				}
				snap := e.ledger.Snapshot()
				d := metrics.BuildDashboard(snap.Profile, snap.Transactions, snap.Goals, r, e.now)
				month := metrics.MonthSummary(snap.Transactions, e.now)
				sym := e.ledger.SelectedCurrency().Symbol
				w := cmd.OutOrStdout()

				fmt.Fprintf(w, "Balance     %s (%s since start)\n", format.Signed(d.Balance, sym), format.PercentChange(d.BalanceChange))
				fmt.Fprintf(w, "Income      %s\n", format.Signed(d.TotalIncome, sym))
				fmt.Fprintf(w, "Expenses    %s\n", format.Signed(d.TotalExpenses, sym))
				fmt.Fprintf(w, "This month  %s in / %s out\n", format.Signed(month.Income, sym), format.Signed(month.Expenses, sym))
				fmt.Fprintf(w, "Goals       %s\n", format.Percent(d.GoalProgress))

				fmt.Fprintf(w, "\nSpending (%s)  %s in / %s out\n", d.Range, format.Signed(d.RangeIncome, sym), format.Signed(d.RangeExpenses, sym))
				for _, c := range d.Breakdown {
					fmt.Fprintf(w, "  %-16s %12s %5s\n", c.Category, format.Signed(c.Total, sym),
						format.Percent(metrics.Share(c.Total, d.RangeExpenses)))
				}

				fmt.Fprintln(w, "\nRecent")
				if len(d.Recent) == 0 {
					fmt.Fprintln(w, "  Nothing yet.")
				}
				for _, t := range d.Recent {
					writeTransaction(w, t, sym)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&rng, "range", "r", string(metrics.Monthly), "daily|weekly|monthly")
	return cmd
}

// advisor picks the configured tip provider. The key comes from the
// environment or the secret store.
func advisor(e *env) llm.Advisor {
	var key string
	if s, err := secrets.Default(); err == nil {
		key = s.Resolve(e.cfg.LLM.APIKeyEnv, secrets.LLMKey)
	}
	return llm.New(e.cfg.LLM.Provider, key, e.cfg.LLM.Model)
}

func newInsightsCommand(opts *RootOptions) *cobra.Command {
	var rulesOnly bool
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show generated insights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLedger(cmd, opts, func(e *env) error {
				snap := e.ledger.Snapshot()
				list := insight.Generate(snap.Transactions, snap.Profile, e.now)
				if !rulesOnly {
					summary := insight.Summarize(snap.Transactions, snap.Profile, snap.Goals, list, e.now)
					list = insight.Enrich(e.ctx(cmd.Context()), list, advisor(e), summary)
				}
				w := cmd.OutOrStdout()
				if len(list) == 0 {
					fmt.Fprintf(w, "No insights yet. Add at least %d transactions.\n", insight.MinTransactions)
					return nil
				}
				for _, in := range list {
					fmt.Fprintf(w, "[%s] %s\n  %s\n", in.Kind, in.Title, in.Description)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&rulesOnly, "rules-only", false, "skip the advisor tip")
	return cmd
}

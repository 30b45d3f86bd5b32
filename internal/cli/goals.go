package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jask/moneymate/internal/format"
	"github.com/jask/moneymate/internal/metrics"
	"github.com/jask/moneymate/internal/model"
)

func newGoalCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage savings goals",
	}
	cmd.AddCommand(newGoalAddCommand(opts))
	cmd.AddCommand(newGoalListCommand(opts))
	cmd.AddCommand(newGoalUpdateCommand(opts))
	cmd.AddCommand(newGoalFundCommand(opts))
	cmd.AddCommand(newGoalDeleteCommand(opts))
	cmd.AddCommand(newGoalTemplatesCommand())
	return cmd
}

func parseGoalCategory(s string) (model.GoalCategory, error) {
	c := model.GoalCategory(strings.ToLower(strings.TrimSpace(s)))
	for _, candidate := range model.GoalCategories {
		if candidate == c {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown goal category %q", s)
}

func findTemplate(name string) (model.GoalTemplate, bool) {
	for _, t := range model.GoalTemplates {
		if strings.EqualFold(t.Name, strings.TrimSpace(name)) {
			return t, true
		}
	}
	return model.GoalTemplate{}, false
}

func newGoalAddCommand(opts *RootOptions) *cobra.Command {
	var name, category, target, current, start, end, notes, color, template string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := model.Goal{
				ID:    model.NewGoalID(),
				Name:  strings.TrimSpace(name),
				Notes: strings.TrimSpace(notes),
				Color: color,
			}
			if template != "" {
				tpl, ok := findTemplate(template)
				if !ok {
					return fmt.Errorf("unknown template %q (see `moneymate goal templates`)", template)
				}
				g.Name, g.Category, g.TargetAmount = tpl.Name, tpl.Category, tpl.TargetAmount
			}
			if name != "" {
				g.Name = strings.TrimSpace(name)
			}
			if category != "" {
				c, err := parseGoalCategory(category)
				if err != nil {
					return err
				}
				g.Category = c
			}
			if target != "" {
				amt, err := parseAmount(target)
				if err != nil {
					return fmt.Errorf("target: %w", err)
				}
				g.TargetAmount = amt
			}
			if current != "" {
				amt, err := parseAmount(current)
				if err != nil {
					return fmt.Errorf("current: %w", err)
				}
				g.CurrentAmount = amt
			}
			if err := model.ValidateGoal(g); err != nil {
				return err
			}
			return withLedger(cmd, opts, func(e *env) error {
				var err error
				if g.StartDate, err = format.ParseDate(start, e.loc, e.now); err != nil {
					return err
				}
				if end != "" {
					d, err := format.ParseDate(end, e.loc, e.now)
					if err != nil {
						return err
					}
					g.EndDate = &d
				}
				if g.Color == "" {
					g.Color = model.GoalColors[len(e.ledger.Goals())%len(model.GoalColors)]
				}
				e.ledger.AddGoal(g)
				fmt.Fprintf(cmd.OutOrStdout(), "Added goal %s (%s), target %s.\n", g.Name, g.ID,
					format.Signed(g.TargetAmount, e.ledger.SelectedCurrency().Symbol))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "goal name")
	cmd.Flags().StringVar(&category, "category", "", "goal category")
	cmd.Flags().StringVar(&target, "target", "", "target amount")
	cmd.Flags().StringVar(&current, "current", "", "amount already saved")
	cmd.Flags().StringVar(&start, "start", "", "start date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&end, "end", "", "end date YYYY-MM-DD")
	cmd.Flags().StringVar(&notes, "notes", "", "notes")
	cmd.Flags().StringVar(&color, "color", "", "display color, e.g. #8b5cf6")
	cmd.Flags().StringVar(&template, "template", "", "start from a template")
	return cmd
}

func newGoalListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goals with progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLedger(cmd, opts, func(e *env) error {
				goals := e.ledger.Goals()
				if len(goals) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No goals.")
					return nil
				}
				sym := e.ledger.SelectedCurrency().Symbol
				for _, g := range goals {
					line := fmt.Sprintf("%-36s %-20s %-15s %5s  %s / %s",
						g.ID, g.Name, g.Category, format.Percent(metrics.GoalProgress(g)),
						format.Signed(g.CurrentAmount, sym), format.Signed(g.TargetAmount, sym))
					if g.EndDate != nil {
						line += "  by " + format.Date(g.EndDate.In(e.loc))
					}
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Overall %s\n", format.Percent(metrics.OverallGoalProgress(goals)))
				return nil
			})
		},
	}
}

func newGoalUpdateCommand(opts *RootOptions) *cobra.Command {
	var name, category, target, current, start, end, notes, color string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch model.GoalPatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				n := strings.TrimSpace(name)
				if n == "" {
					return model.ErrMissingName
				}
				patch.Name = &n
			}
			if flags.Changed("category") {
				c, err := parseGoalCategory(category)
				if err != nil {
					return err
				}
				patch.Category = &c
			}
			var err error
			if patch.TargetAmount, err = optionalAmount(flags.Changed("target"), target); err != nil {
				return fmt.Errorf("target: %w", err)
			}
			if patch.TargetAmount != nil && !patch.TargetAmount.IsPositive() {
				return model.ErrInvalidAmount
			}
			if patch.CurrentAmount, err = optionalAmount(flags.Changed("current"), current); err != nil {
				return fmt.Errorf("current: %w", err)
			}
			if flags.Changed("notes") {
				patch.Notes = &notes
			}
			if flags.Changed("color") {
				patch.Color = &color
			}
			return withLedger(cmd, opts, func(e *env) error {
				if flags.Changed("start") {
					d, err := parseRequiredDate(start, e.loc)
					if err != nil {
						return err
					}
					patch.StartDate = &d
				}
				if flags.Changed("end") {
					d, err := parseRequiredDate(end, e.loc)
					if err != nil {
						return err
					}
					patch.EndDate = &d
				}
				if !e.ledger.UpdateGoal(args[0], patch) {
					return fmt.Errorf("no goal %s", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s.\n", args[0])
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "goal name")
	cmd.Flags().StringVar(&category, "category", "", "goal category")
	cmd.Flags().StringVar(&target, "target", "", "target amount")
	cmd.Flags().StringVar(&current, "current", "", "amount saved")
	cmd.Flags().StringVar(&start, "start", "", "start date YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "end date YYYY-MM-DD")
	cmd.Flags().StringVar(&notes, "notes", "", "notes")
	cmd.Flags().StringVar(&color, "color", "", "display color")
	return cmd
}

func parseRequiredDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	return format.ParseDate(s, loc, time.Time{})
}

func newGoalFundCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fund <id> <amount>",
		Short: "Add money to a goal (negative to withdraw)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			return withLedger(cmd, opts, func(e *env) error {
				if !e.ledger.FundGoal(args[0], amt) {
					return fmt.Errorf("no goal %s", args[0])
				}
				g, _ := e.ledger.Goal(args[0])
				sym := e.ledger.SelectedCurrency().Symbol
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s / %s (%s)\n", g.Name,
					format.Signed(g.CurrentAmount, sym), format.Signed(g.TargetAmount, sym),
					format.Percent(metrics.GoalProgress(g)))
				return nil
			})
		},
	}
}

func newGoalDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLedger(cmd, opts, func(e *env) error {
				if _, ok := e.ledger.Goal(args[0]); !ok {
					fmt.Fprintf(cmd.OutOrStdout(), "No goal %s.\n", args[0])
					return nil
				}
				e.ledger.DeleteGoal(args[0])
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", args[0])
				return nil
			})
		},
	}
}

func newGoalTemplatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List goal templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range model.GoalTemplates {
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-16s %s\n", t.Name, t.Category, t.TargetAmount.StringFixed(2))
			}
			return nil
		},
	}
}

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jask/moneymate/internal/config"
	"github.com/jask/moneymate/internal/database"
	"github.com/jask/moneymate/internal/store"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the current settings to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.Path()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	cmd.AddCommand(initCmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.Path())
		},
	})
	return cmd
}

func newInfoCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show where data lives and what is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLedger(cmd, opts, func(e *env) error {
				ctx := e.ctx(cmd.Context())
				w := cmd.OutOrStdout()

				fmt.Fprintf(w, "Config      %s\n", config.Path())
				fmt.Fprintf(w, "Store       %s\n", e.cfg.Store.Path)

				version, dirty, err := database.SchemaVersion(e.cfg.Store.Path)
				if err != nil {
					return fmt.Errorf("schema version: %w", err)
				}
				schema := fmt.Sprintf("v%d", version)
				if dirty {
					schema += " (dirty)"
				}
				fmt.Fprintf(w, "Schema      %s\n", schema)

				keys, err := e.kv.Keys(ctx)
				if err != nil {
					return err
				}
				if len(keys) == 0 {
					fmt.Fprintln(w, "Keys        none")
				} else {
					fmt.Fprintf(w, "Keys        %s\n", strings.Join(keys, ", "))
				}

				raw, ok, err := e.kv.Get(ctx, store.KeyOnboarded)
				if err != nil {
					return err
				}
				if !ok {
					raw = "unset"
				}
				fmt.Fprintf(w, "Onboarded   %s\n", raw)
				return nil
			})
		},
	}
}

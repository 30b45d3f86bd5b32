package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jask/moneymate/internal/backup"
	"github.com/jask/moneymate/internal/service"
)

func newResetCommand(opts *RootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all profile, transaction and goal data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to reset without --yes")
			}
			return withLedger(cmd, opts, func(e *env) error {
				svc := &service.MaintenanceService{Ledger: e.ledger}
				if err := svc.Reset(e.ctx(cmd.Context())); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "All data removed.")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}

func newImportCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Bulk-load data from a file",
	}
	cmd.AddCommand(newImportFileCommand(opts, "csv", "Import transactions from CSV"))
	cmd.AddCommand(newImportFileCommand(opts, "yaml", "Import a profile, transactions and goals from YAML"))
	return cmd
}

func newImportFileCommand(opts *RootOptions, kind, short string) *cobra.Command {
	return &cobra.Command{
		Use:   kind + " <file>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			return withLedger(cmd, opts, func(e *env) error {
				svc := &service.ImportService{Ledger: e.ledger, Log: e.log}
				ctx := e.ctx(cmd.Context())
				var res service.IngestResult
				if kind == "csv" {
					if !e.ledger.Onboarded() {
						return errNotOnboarded
					}
					res, err = svc.ImportCSV(ctx, f, e.loc)
				} else {
					res, err = svc.ImportYAML(ctx, f, e.loc)
				}
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "Imported %d, skipped %d, errors %d.\n", res.Imported, res.Skipped, len(res.Errors))
				for _, rowErr := range res.Errors {
					fmt.Fprintf(w, "  %v\n", rowErr)
				}
				return nil
			})
		},
	}
}

func newBackupCommand(opts *RootOptions) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export all data as JSON to a directory or GCS bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLedger(cmd, opts, func(e *env) error {
				ctx := e.ctx(cmd.Context())
				var sink backup.Sink
				switch {
				case dir != "":
					sink = backup.NewFileSink(dir)
				case e.cfg.Backup.GCSBucket != "":
					gcs, err := backup.NewGCSSink(ctx, e.cfg.Backup.GCSBucket, "moneymate")
					if err != nil {
						return err
					}
					defer gcs.Close()
					sink = gcs
				default:
					sink = backup.NewFileSink(e.cfg.Backup.Dir)
				}
				where, err := backup.Export(ctx, e.ledger.Snapshot(), sink, e.now)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", where)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "write to this directory instead of the configured target")
	return cmd
}

func newDemoCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Load a sample profile, a month of transactions and two goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLedger(cmd, opts, func(e *env) error {
				res, err := service.SeedDemo(e.ctx(cmd.Context()), e.ledger, e.now, nil)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d sample transactions.\n", res.Imported)
				return nil
			})
		},
	}
}

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jask/moneymate/internal/remote"
	"github.com/jask/moneymate/internal/secrets"
	"github.com/jask/moneymate/internal/service"
)

const syncTokenEnv = "MONEYMATE_SYNC_TOKEN"

func newSyncCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Copy data to or from the sync backend",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "push",
		Short: "Upload local data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSync(cmd, opts, func(e *env, svc *service.SyncService) error {
				res, err := svc.Push(e.ctx(cmd.Context()))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Pushed: %d new transactions (%d already there), %d new goals, %d goals updated.\n",
					res.TransactionsCreated, res.TransactionsExisted, res.GoalsCreated, res.GoalsUpdated)
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "pull",
		Short: "Merge remote data into local data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSync(cmd, opts, func(e *env, svc *service.SyncService) error {
				res, err := svc.Pull(e.ctx(cmd.Context()))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Pulled: %d transactions, %d goals.\n", res.Transactions, res.Goals)
				if res.Onboarded {
					fmt.Fprintln(cmd.OutOrStdout(), "Profile restored from the backend.")
				}
				return nil
			})
		},
	})
	return cmd
}

func withSync(cmd *cobra.Command, opts *RootOptions, fn func(e *env, svc *service.SyncService) error) error {
	return withLedger(cmd, opts, func(e *env) error {
		if strings.TrimSpace(e.cfg.Remote.UserID) == "" {
			return fmt.Errorf("remote.user_id is not configured")
		}
		token := os.Getenv(syncTokenEnv)
		if s, err := secrets.Default(); err == nil {
			token = s.Resolve(syncTokenEnv, secrets.SyncToken)
		}
		client, err := remote.NewClient(e.cfg.Remote.BaseURL, e.cfg.Remote.UserID,
			remote.WithTimeout(e.cfg.Remote.Timeout), remote.WithToken(token))
		if err != nil {
			return err
		}
		return fn(e, &service.SyncService{Ledger: e.ledger, Remote: client, Log: e.log})
	})
}

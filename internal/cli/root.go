// Package cli is the moneymate command line: every ledger operation, plus
// import, backup and sync.
package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jask/moneymate/internal/config"
	"github.com/jask/moneymate/internal/database"
	"github.com/jask/moneymate/internal/database/repository"
	"github.com/jask/moneymate/internal/ledger"
	"github.com/jask/moneymate/internal/logger"
	"github.com/jask/moneymate/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool

	// Now is the clock used for dates and windows. Tests pin it.
	Now func() time.Time
}

func (o *RootOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "moneymate",
		Short:         "MoneyMate - personal finance tracker",
		Long:          "Track income, expenses and savings goals locally, with generated insights.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(newOnboardCommand(opts))
	cmd.AddCommand(newTransactionCommand(opts, "income"))
	cmd.AddCommand(newTransactionCommand(opts, "expense"))
	cmd.AddCommand(newHistoryCommand(opts))
	cmd.AddCommand(newTxCommand(opts))
	cmd.AddCommand(newGoalCommand(opts))
	cmd.AddCommand(newProfileCommand(opts))
	cmd.AddCommand(newCurrencyCommand(opts))
	cmd.AddCommand(newDarkModeCommand(opts))
	cmd.AddCommand(newDashboardCommand(opts))
	cmd.AddCommand(newInsightsCommand(opts))
	cmd.AddCommand(newBalanceCommand(opts))
	cmd.AddCommand(newResetCommand(opts))
	cmd.AddCommand(newImportCommand(opts))
	cmd.AddCommand(newDemoCommand(opts))
	cmd.AddCommand(newBackupCommand(opts))
	cmd.AddCommand(newSyncCommand(opts))
	cmd.AddCommand(newTUICommand(opts))
	cmd.AddCommand(newConfigCommand())
	cmd.AddCommand(newInfoCommand(opts))

	return cmd
}

// env is what a command runs against: loaded config, a logger and the
// ledger over the on-device store.
type env struct {
	cfg    config.Config
	log    zerolog.Logger
	ledger *ledger.Manager
	kv     *repository.KVRepo
	now    time.Time
	loc    *time.Location
}

func (e *env) ctx(parent context.Context) context.Context {
	return logger.WithContext(parent, e.log)
}

// withLedger loads config, opens the store, runs fn and waits for every
// queued write before returning.
func withLedger(cmd *cobra.Command, opts *RootOptions, fn func(e *env) error) (err error) {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level := cfg.Log.Level
	if opts.Verbose {
		level = "debug"
	}
	log := logger.New(level, logger.Format(cfg.Log.Format))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	db, err := database.OpenMigrated(ctx, cfg.Store.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	kv := repository.NewKVRepo(db)
	m := ledger.New(store.NewAdapter(kv), ledger.Options{
		ResetDarkMode: cfg.UI.ResetDarkMode,
		Logger:        &log,
	})
	if err := m.Load(ctx); err != nil {
		log.Debug().Err(err).Msg("starting with empty state")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if cerr := m.Close(closeCtx); cerr != nil && err == nil {
			err = fmt.Errorf("save: %w", cerr)
		}
	}()

	loc := cfg.UI.Location()
	return fn(&env{
		cfg:    cfg,
		log:    log,
		ledger: m,
		kv:     kv,
		now:    opts.now().In(loc),
		loc:    loc,
	})
}

var errNotOnboarded = errors.New("not onboarded yet: run `moneymate onboard` first")

func requireOnboarded(e *env) error {
	if !e.ledger.Onboarded() {
		return errNotOnboarded
	}
	return nil
}

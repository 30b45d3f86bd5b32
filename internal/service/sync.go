package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jask/moneymate/internal/model"
	"github.com/jask/moneymate/internal/remote"
	"github.com/jask/moneymate/internal/store"
)

// Remote is the sync backend as seen by SyncService.
type Remote interface {
	Push(ctx context.Context, s store.Snapshot) (remote.PushResult, error)
	Pull(ctx context.Context) (store.Snapshot, error)
}

// SyncLedger is the part of the state manager sync reads and merges into.
type SyncLedger interface {
	Ledger
	Snapshot() store.Snapshot
	Goals() []model.Goal
	Flush(ctx context.Context) error
}

// PullResult counts what a download merged locally.
type PullResult struct {
	Onboarded    bool
	Transactions int
	Goals        int
}

// SyncService copies state between the ledger and the backend. It never
// deletes on either side.
type SyncService struct {
	Ledger SyncLedger
	Remote Remote
	Log    zerolog.Logger
}

// Push uploads the current local state.
func (s *SyncService) Push(ctx context.Context) (remote.PushResult, error) {
	res, err := s.Remote.Push(ctx, s.Ledger.Snapshot())
	if err != nil {
		return res, err
	}
	s.Log.Info().
		Int("transactions_created", res.TransactionsCreated).
		Int("goals_created", res.GoalsCreated).
		Int("goals_updated", res.GoalsUpdated).
		Msg("sync push")
	return res, nil
}

// Pull adds remote transactions and goals whose ids are unknown locally and
// adopts the remote profile when onboarding has not happened yet.
func (s *SyncService) Pull(ctx context.Context) (PullResult, error) {
	var res PullResult
	snap, err := s.Remote.Pull(ctx)
	if err != nil {
		return res, err
	}

	if snap.Profile != nil && !s.Ledger.Onboarded() {
		p := *snap.Profile
		if err := model.ValidateProfile(p); err != nil {
			return res, fmt.Errorf("remote profile: %w", err)
		}
		s.Ledger.CompleteOnboarding(p)
		res.Onboarded = true
	}

	seen := make(map[string]bool)
	for _, t := range s.Ledger.Transactions() {
		seen[t.ID] = true
	}
	for _, t := range snap.Transactions {
		if seen[t.ID] {
			continue
		}
		if err := model.ValidateTransaction(t); err != nil {
			s.Log.Warn().Err(err).Str("id", t.ID).Msg("skip remote transaction")
			continue
		}
		s.Ledger.AddTransaction(t)
		seen[t.ID] = true
		res.Transactions++
	}

	goals := make(map[string]bool)
	for _, g := range s.Ledger.Goals() {
		goals[g.ID] = true
	}
	for _, g := range snap.Goals {
		if goals[g.ID] {
			continue
		}
		s.Ledger.AddGoal(g)
		goals[g.ID] = true
		res.Goals++
	}

	if err := s.Ledger.Flush(ctx); err != nil {
		return res, fmt.Errorf("save pulled state: %w", err)
	}
	s.Log.Info().Int("transactions", res.Transactions).Int("goals", res.Goals).Msg("sync pull")
	return res, nil
}

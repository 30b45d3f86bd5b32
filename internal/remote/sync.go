package remote

import (
	"context"
	"errors"
	"fmt"

	"github.com/jask/moneymate/internal/model"
	"github.com/jask/moneymate/internal/store"
)

// PushResult counts what an upload did.
type PushResult struct {
	Profile             bool
	TransactionsCreated int
	TransactionsExisted int
	GoalsCreated        int
	GoalsUpdated        int
}

// Push uploads the local state. Transactions are immutable so existing ones
// are left alone; existing goals are overwritten with the local values.
// Nothing is deleted remotely.
func (c *Client) Push(ctx context.Context, s store.Snapshot) (PushResult, error) {
	var res PushResult
	if s.Profile != nil {
		if _, err := c.UpsertProfile(ctx, FromProfile(*s.Profile)); err != nil {
			return res, fmt.Errorf("push profile: %w", err)
		}
		res.Profile = true
	}
	for _, t := range s.Transactions {
		_, created, err := c.AddTransaction(ctx, FromTransaction(t))
		if err != nil {
			return res, fmt.Errorf("push transaction %s: %w", t.ID, err)
		}
		if created {
			res.TransactionsCreated++
		} else {
			res.TransactionsExisted++
		}
	}
	for _, g := range s.Goals {
		rec := FromGoal(g)
		_, created, err := c.AddGoal(ctx, rec)
		if err != nil {
			return res, fmt.Errorf("push goal %s: %w", g.ID, err)
		}
		if created {
			res.GoalsCreated++
			continue
		}
		if _, err := c.UpdateGoal(ctx, g.ID, rec.FullUpdate()); err != nil {
			return res, fmt.Errorf("update goal %s: %w", g.ID, err)
		}
		res.GoalsUpdated++
	}
	return res, nil
}

// Pull downloads the remote state. A missing profile leaves Profile nil.
func (c *Client) Pull(ctx context.Context) (store.Snapshot, error) {
	snap := store.Snapshot{Transactions: []model.Transaction{}, Goals: []model.Goal{}}

	p, err := c.GetProfile(ctx)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return store.Snapshot{}, fmt.Errorf("pull profile: %w", err)
	default:
		profile := p.ToProfile()
		snap.Profile = &profile
		snap.Onboarded = true
	}

	txs, err := c.ListTransactions(ctx)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("pull transactions: %w", err)
	}
	for _, t := range txs {
		snap.Transactions = append(snap.Transactions, t.ToTransaction())
	}

	goals, err := c.ListGoals(ctx)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("pull goals: %w", err)
	}
	for _, g := range goals {
		snap.Goals = append(snap.Goals, g.ToGoal())
	}
	return snap, nil
}

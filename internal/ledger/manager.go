// Package ledger owns the in-memory application state: the profile,
// transactions, goals and display flags. Every mutation that changes state
// is written through to the store as a full snapshot.
package ledger

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jask/moneymate/internal/metrics"
	"github.com/jask/moneymate/internal/model"
	"github.com/jask/moneymate/internal/store"
)

// Options tunes a Manager.
type Options struct {
	// ResetDarkMode makes ResetAllData clear the dark mode flag as well.
	ResetDarkMode bool
	// Logger receives persistence failures. Nil disables logging.
	Logger *zerolog.Logger
}

// Manager is the single owner of application state. Mutations are
// serialized; readers get copies.
type Manager struct {
	mu     sync.Mutex
	state  store.Snapshot
	opts   Options
	log    zerolog.Logger
	store  Store
	writer *Writer
}

// New creates an empty manager writing through to st. Call Load to hydrate.
func New(st Store, opts Options) *Manager {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "ledger").Logger()
	}
	return &Manager{
		state:  emptyState(false),
		opts:   opts,
		log:    log,
		store:  st,
		writer: NewWriter(st, log),
	}
}

func emptyState(darkMode bool) store.Snapshot {
	return store.Snapshot{
		Transactions: []model.Transaction{},
		Goals:        []model.Goal{},
		DarkMode:     darkMode,
	}
}

// Load replaces the in-memory state with the persisted one. On failure the
// state is left empty and the error is returned.
func (m *Manager) Load(ctx context.Context) error {
	snap, err := m.store.Load(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.log.Error().Err(err).Msg("load persisted state")
		m.state = emptyState(false)
		return err
	}
	m.state = cloneSnapshot(snap)
	m.log.Debug().
		Bool("onboarded", snap.Onboarded).
		Int("transactions", len(snap.Transactions)).
		Int("goals", len(snap.Goals)).
		Msg("loaded state")
	return nil
}

// Flush waits for every queued write and returns the latest write error.
func (m *Manager) Flush(ctx context.Context) error {
	return m.writer.Flush(ctx)
}

// Close drains pending writes and stops the writer.
func (m *Manager) Close(ctx context.Context) error {
	return m.writer.Close(ctx)
}

// WriteFailures reports how many persistence writes have failed.
func (m *Manager) WriteFailures() int {
	return m.writer.Failures()
}

// persistLocked queues the current state. Callers hold m.mu, which keeps
// queue order equal to mutation order.
func (m *Manager) persistLocked() {
	m.writer.Save(cloneSnapshot(m.state))
}

// CompleteOnboarding stores the profile and marks onboarding as done.
func (m *Manager) CompleteOnboarding(p model.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	profile := p.Clone()
	m.state.Profile = &profile
	m.state.Onboarded = true
	m.persistLocked()
}

// AddTransaction appends t as given. Validation is the caller's job.
func (m *Manager) AddTransaction(t model.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Transactions = append(m.state.Transactions, t.Clone())
	m.persistLocked()
}

// DeleteTransaction removes every transaction with id. Unknown ids are a
// no-op.
func (m *Manager) DeleteTransaction(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := make([]model.Transaction, 0, len(m.state.Transactions))
	for _, t := range m.state.Transactions {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(m.state.Transactions) {
		return
	}
	m.state.Transactions = kept
	m.persistLocked()
}

// AddGoal appends g.
func (m *Manager) AddGoal(g model.Goal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Goals = append(m.state.Goals, g.Clone())
	m.persistLocked()
}

// UpdateGoal merges patch into every goal with id. It reports whether a
// goal matched.
func (m *Manager) UpdateGoal(id string, patch model.GoalPatch) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateGoalLocked(id, func(g model.Goal) model.Goal { return g.Apply(patch) })
}

// FundGoal adds amount to the goal's current amount. Negative amounts are
// accepted.
func (m *Manager) FundGoal(id string, amount decimal.Decimal) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateGoalLocked(id, func(g model.Goal) model.Goal {
		current := g.CurrentAmount.Add(amount)
		return g.Apply(model.GoalPatch{CurrentAmount: &current})
	})
}

func (m *Manager) updateGoalLocked(id string, fn func(model.Goal) model.Goal) bool {
	matched := false
	for i, g := range m.state.Goals {
		if g.ID == id {
			m.state.Goals[i] = fn(g)
			matched = true
		}
	}
	if matched {
		m.persistLocked()
	}
	return matched
}

// DeleteGoal removes every goal with id.
func (m *Manager) DeleteGoal(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := make([]model.Goal, 0, len(m.state.Goals))
	for _, g := range m.state.Goals {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	if len(kept) == len(m.state.Goals) {
		return
	}
	m.state.Goals = kept
	m.persistLocked()
}

// UpdateUserData merges patch into the profile. Without a profile nothing
// happens.
func (m *Manager) UpdateUserData(patch model.ProfilePatch) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Profile == nil {
		return false
	}
	updated := m.state.Profile.Apply(patch)
	m.state.Profile = &updated
	m.persistLocked()
	return true
}

// SelectedCurrency resolves the profile currency, falling back to USD.
func (m *Manager) SelectedCurrency() model.Currency {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Profile == nil {
		return model.DefaultCurrency()
	}
	return model.LookupCurrency(m.state.Profile.Currency)
}

// ChangeCurrency sets the profile currency code. Without a profile nothing
// happens.
func (m *Manager) ChangeCurrency(code string) bool {
	return m.UpdateUserData(model.ProfilePatch{Currency: &code})
}

// ToggleDarkMode flips the dark mode flag and returns the new value.
func (m *Manager) ToggleDarkMode() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.DarkMode = !m.state.DarkMode
	m.persistLocked()
	return m.state.DarkMode
}

// ResetAllData clears the profile, transactions, goals and onboarding flag
// and removes their keys. Dark mode survives unless Options.ResetDarkMode is
// set.
func (m *Manager) ResetAllData() {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := []string{store.KeyOnboarded, store.KeyUserData, store.KeyTransactions, store.KeyGoals}
	dark := m.state.DarkMode
	if m.opts.ResetDarkMode {
		keys = append(keys, store.KeyDarkMode)
		dark = false
	}
	m.state = emptyState(dark)
	m.writer.Remove(keys...)
	m.log.Info().Strs("keys", keys).Msg("reset all data")
}

// CurrentBalance is starting balance plus income minus expenses, or zero
// without a profile.
func (m *Manager) CurrentBalance() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Profile == nil {
		return decimal.Zero
	}
	return metrics.Balance(m.state.Profile.StartingBalance, m.state.Transactions)
}

// Profile returns a copy of the profile and whether one exists.
func (m *Manager) Profile() (model.Profile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Profile == nil {
		return model.Profile{}, false
	}
	return m.state.Profile.Clone(), true
}

// Transactions returns a copy of the transaction list in insertion order.
func (m *Manager) Transactions() []model.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneTransactions(m.state.Transactions)
}

// Goals returns a copy of the goal list.
func (m *Manager) Goals() []model.Goal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneGoals(m.state.Goals)
}

// Goal returns the first goal with id.
func (m *Manager) Goal(id string) (model.Goal, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.state.Goals {
		if g.ID == id {
			return g.Clone(), true
		}
	}
	return model.Goal{}, false
}

// Onboarded reports whether onboarding has been completed.
func (m *Manager) Onboarded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Onboarded
}

// DarkMode reports the current theme preference.
func (m *Manager) DarkMode() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.DarkMode
}

// Snapshot returns a deep copy of the whole state.
func (m *Manager) Snapshot() store.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneSnapshot(m.state)
}

func cloneSnapshot(s store.Snapshot) store.Snapshot {
	out := store.Snapshot{
		Onboarded:    s.Onboarded,
		DarkMode:     s.DarkMode,
		Transactions: cloneTransactions(s.Transactions),
		Goals:        cloneGoals(s.Goals),
	}
	if s.Profile != nil {
		p := s.Profile.Clone()
		out.Profile = &p
	}
	return out
}

func cloneTransactions(txs []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txs))
	for i, t := range txs {
		out[i] = t.Clone()
	}
	return out
}

func cloneGoals(goals []model.Goal) []model.Goal {
	out := make([]model.Goal, len(goals))
	for i, g := range goals {
		out[i] = g.Clone()
	}
	return out
}

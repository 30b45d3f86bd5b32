package store_test

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jask/moneymate/internal/database"
	"github.com/jask/moneymate/internal/database/repository"
	"github.com/jask/moneymate/internal/model"
	"github.com/jask/moneymate/internal/store"
)

func openAdapter(t *testing.T) (*store.Adapter, *repository.KVRepo) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := database.OpenMigrated(ctx, filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := repository.NewKVRepo(db)
	return store.NewAdapter(repo), repo
}

func sampleSnapshot() store.Snapshot {
	target := decimal.NewFromInt(900)
	return store.Snapshot{
		Onboarded: true,
		DarkMode:  true,
		Profile: &model.Profile{
			Name:                "Ana",
			Role:                model.RoleEmployed,
			StartingBalance:     decimal.NewFromInt(1500),
			Currency:            "EUR",
			MonthlyBudgetTarget: &target,
		},
		Transactions: []model.Transaction{
			{
				ID:       "t1",
				Type:     model.Income,
				Amount:   decimal.NewFromInt(2000),
				Date:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
				Category: model.CategorySalary,
			},
			{
				ID:            "t2",
				Type:          model.Expense,
				Amount:        decimal.RequireFromString("12.5"),
				Date:          time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
				Category:      model.CategoryFood,
				Notes:         "lunch",
				Tags:          []string{"work"},
				PaymentMethod: "Cash",
			},
		},
		Goals: []model.Goal{
			{
				ID:            "g1",
				Name:          "Emergency Fund",
				Category:      model.GoalEmergencyFund,
				TargetAmount:  decimal.NewFromInt(10000),
				CurrentAmount: decimal.NewFromInt(250),
				StartDate:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
				Color:         "#2dd4bf",
			},
		},
	}
}

func TestEncodeMatchesPersistedLayout(t *testing.T) {
	t.Parallel()

	entries, err := store.Encode(sampleSnapshot())
	require.NoError(t, err)

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(entries[k])
		b.WriteString("\n")
	}

	g := goldie.New(t)
	g.Assert(t, "snapshot", []byte(b.String()))
}

func TestEncodeOmitsAbsentProfile(t *testing.T) {
	t.Parallel()

	entries, err := store.Encode(store.Snapshot{})
	require.NoError(t, err)
	require.NotContains(t, entries, store.KeyUserData)
	require.Equal(t, "[]", entries[store.KeyTransactions])
	require.Equal(t, "[]", entries[store.KeyGoals])
	require.Equal(t, "false", entries[store.KeyOnboarded])
	require.Equal(t, "false", entries[store.KeyDarkMode])
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	adapter, _ := openAdapter(t)

	empty, err := adapter.Load(ctx)
	require.NoError(t, err)
	require.False(t, empty.Onboarded)
	require.Nil(t, empty.Profile)
	require.Empty(t, empty.Transactions)
	require.Empty(t, empty.Goals)

	want := sampleSnapshot()
	require.NoError(t, adapter.Save(ctx, want))

	got, err := adapter.Load(ctx)
	require.NoError(t, err)
	require.True(t, got.Onboarded)
	require.True(t, got.DarkMode)
	require.NotNil(t, got.Profile)
	require.Equal(t, "Ana", got.Profile.Name)
	require.True(t, got.Profile.StartingBalance.Equal(decimal.NewFromInt(1500)))
	require.Len(t, got.Transactions, 2)
	require.True(t, got.Transactions[1].Amount.Equal(decimal.RequireFromString("12.5")))
	require.Equal(t, []string{"work"}, got.Transactions[1].Tags)
	require.Len(t, got.Goals, 1)
	require.True(t, got.Goals[0].CurrentAmount.Equal(decimal.NewFromInt(250)))
}

func TestRemoveKeepsOtherKeys(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	adapter, repo := openAdapter(t)
	require.NoError(t, adapter.Save(ctx, sampleSnapshot()))

	require.NoError(t, adapter.Remove(ctx, store.KeyOnboarded, store.KeyUserData, store.KeyTransactions, store.KeyGoals))

	keys, err := repo.Keys(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{store.KeyDarkMode}, keys)

	got, err := adapter.Load(ctx)
	require.NoError(t, err)
	require.True(t, got.DarkMode)
	require.False(t, got.Onboarded)
	require.Nil(t, got.Profile)
}

func TestDecodeReportsCorruptKey(t *testing.T) {
	t.Parallel()

	_, err := store.Decode(map[string]string{store.KeyTransactions: "{not json"})
	require.Error(t, err)
	require.Contains(t, err.Error(), store.KeyTransactions)

	s, err := store.Decode(map[string]string{store.KeyOnboarded: "TRUE", store.KeyGoals: "null"})
	require.NoError(t, err)
	require.False(t, s.Onboarded)
	require.NotNil(t, s.Goals)
}

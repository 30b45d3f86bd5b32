package remote_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"github.com/jask/moneymate/internal/model"
	"github.com/jask/moneymate/internal/remote"
	"github.com/jask/moneymate/internal/server"
	"github.com/jask/moneymate/internal/store"
)

func newBackend(t *testing.T) string {
	t.Helper()
	return newBackendWithToken(t, "")
}

func newBackendWithToken(t *testing.T, token string) string {
	t.Helper()
	db, err := server.OpenDialector(sqlite.Open(filepath.Join(t.TempDir(), "sync.db")))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	srv := httptest.NewServer(adaptor.FiberApp(server.NewApp(server.NewRepo(db), zerolog.Nop(), token)))
	t.Cleanup(srv.Close)
	return srv.URL + "/api/v1"
}

func newClient(t *testing.T, baseURL string) *remote.Client {
	t.Helper()
	c, err := remote.NewClient(baseURL, uuid.NewString(), remote.WithTimeout(5*time.Second))
	require.NoError(t, err)
	return c
}

func sampleSnapshot() store.Snapshot {
	profile := model.Profile{
		Name:            "Ada",
		Role:            model.RoleEmployed,
		StartingBalance: decimal.NewFromInt(1000),
		Currency:        "USD",
	}
	return store.Snapshot{
		Onboarded: true,
		Profile:   &profile,
		Transactions: []model.Transaction{
			{ID: uuid.NewString(), Type: model.Income, Amount: decimal.NewFromInt(500), Category: model.CategorySalary, Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
			{ID: uuid.NewString(), Type: model.Expense, Amount: decimal.NewFromInt(200), Category: model.CategoryFood, Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), PaymentMethod: "Cash"},
		},
		Goals: []model.Goal{
			{ID: uuid.NewString(), Name: "Vacation", Category: model.GoalTravel, TargetAmount: decimal.NewFromInt(2000), StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
}

func TestNewClientValidates(t *testing.T) {
	_, err := remote.NewClient("http://localhost:8080/api/v1", " ")
	require.Error(t, err)
	_, err = remote.NewClient("localhost", "u")
	require.Error(t, err)
}

func TestWithTimeoutLeavesCallerClient(t *testing.T) {
	hc := &http.Client{}
	_, err := remote.NewClient("http://localhost:8080/api/v1", "u",
		remote.WithHTTPClient(hc), remote.WithTimeout(time.Second))
	require.NoError(t, err)
	require.Zero(t, hc.Timeout)
}

func TestWithTimeoutAppliesToDefaultClient(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(slow.Close)

	c, err := remote.NewClient(slow.URL, "u", remote.WithTimeout(20*time.Millisecond))
	require.NoError(t, err)
	require.Error(t, c.Health(context.Background()))
}

func TestPushPullRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newClient(t, newBackend(t))
	require.NoError(t, c.Health(ctx))

	empty, err := c.Pull(ctx)
	require.NoError(t, err)
	require.Nil(t, empty.Profile)
	require.False(t, empty.Onboarded)
	require.Empty(t, empty.Transactions)

	snap := sampleSnapshot()
	res, err := c.Push(ctx, snap)
	require.NoError(t, err)
	require.Equal(t, remote.PushResult{Profile: true, TransactionsCreated: 2, GoalsCreated: 1}, res)

	snap.Goals[0].CurrentAmount = decimal.NewFromInt(300)
	res, err = c.Push(ctx, snap)
	require.NoError(t, err)
	require.Equal(t, remote.PushResult{Profile: true, TransactionsExisted: 2, GoalsUpdated: 1}, res)

	got, err := c.Pull(ctx)
	require.NoError(t, err)
	require.True(t, got.Onboarded)
	require.Equal(t, "Ada", got.Profile.Name)
	require.Len(t, got.Transactions, 2)
	require.Equal(t, snap.Transactions[0].ID, got.Transactions[0].ID)
	require.Equal(t, "Cash", got.Transactions[1].PaymentMethod)
	require.Len(t, got.Goals, 1)
	require.True(t, decimal.NewFromInt(300).Equal(got.Goals[0].CurrentAmount))
}

func TestClientErrors(t *testing.T) {
	ctx := context.Background()
	c := newClient(t, newBackend(t))

	_, err := c.GetProfile(ctx)
	require.ErrorIs(t, err, remote.ErrNotFound)

	err = c.DeleteGoal(ctx, uuid.NewString())
	require.ErrorIs(t, err, remote.ErrNotFound)

	_, _, err = c.AddTransaction(ctx, remote.TransactionRecord{Type: "expense", Category: "food"})
	var apiErr *remote.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.NotEmpty(t, apiErr.Message)
	require.False(t, errors.Is(err, remote.ErrNotFound))
}

func TestClientSendsToken(t *testing.T) {
	ctx := context.Background()
	base := newBackendWithToken(t, "s3cret")

	anon := newClient(t, base)
	_, err := anon.ListGoals(ctx)
	var apiErr *remote.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)

	c, err := remote.NewClient(base, uuid.NewString(), remote.WithToken("s3cret"))
	require.NoError(t, err)
	goals, err := c.ListGoals(ctx)
	require.NoError(t, err)
	require.Empty(t, goals)
}

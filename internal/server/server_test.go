package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"github.com/jask/moneymate/internal/remote"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	return newTestAppWithToken(t, "")
}

func newTestAppWithToken(t *testing.T, token string) *fiber.App {
	t.Helper()
	db, err := OpenDialector(sqlite.Open(filepath.Join(t.TempDir(), "server.db")))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return NewApp(NewRepo(db), zerolog.Nop(), token)
}

func call(t *testing.T, app *fiber.App, method, path string, user uuid.UUID, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if user != uuid.Nil {
		req.Header.Set(remote.UserHeader, user.String())
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func TestHealthNeedsNoUser(t *testing.T) {
	app := newTestApp(t)
	status, body := call(t, app, http.MethodGet, "/api/v1/health", uuid.Nil, nil)
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestRequireUser(t *testing.T) {
	app := newTestApp(t)

	status, body := call(t, app, http.MethodGet, "/api/v1/transactions", uuid.Nil, nil)
	require.Equal(t, http.StatusUnauthorized, status)
	var e remote.ErrorBody
	require.NoError(t, json.Unmarshal(body, &e))
	require.Contains(t, e.Error, remote.UserHeader)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/goals", nil)
	req.Header.Set(remote.UserHeader, "not-a-uuid")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireToken(t *testing.T) {
	app := newTestAppWithToken(t, "s3cret")
	user := uuid.New()

	status, _ := call(t, app, http.MethodGet, "/api/v1/goals", user, nil)
	require.Equal(t, http.StatusUnauthorized, status)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/goals", nil)
	req.Header.Set(remote.UserHeader, user.String())
	req.Header.Set("Authorization", "Bearer s3cret")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	status, _ = call(t, app, http.MethodGet, "/api/v1/health", uuid.Nil, nil)
	require.Equal(t, http.StatusOK, status)
}

func TestProfileUpsert(t *testing.T) {
	app := newTestApp(t)
	user := uuid.New()

	status, _ := call(t, app, http.MethodGet, "/api/v1/profile", user, nil)
	require.Equal(t, http.StatusNotFound, status)

	status, _ = call(t, app, http.MethodPut, "/api/v1/profile", user, remote.ProfileRecord{Currency: "USD"})
	require.Equal(t, http.StatusBadRequest, status)

	in := remote.ProfileRecord{Name: "Ada", Role: "employed", StartingBalance: decimal.NewFromInt(1000), Currency: "eur"}
	status, _ = call(t, app, http.MethodPut, "/api/v1/profile", user, in)
	require.Equal(t, http.StatusOK, status)

	in.Name = "Ada L"
	status, _ = call(t, app, http.MethodPut, "/api/v1/profile", user, in)
	require.Equal(t, http.StatusOK, status)

	status, body := call(t, app, http.MethodGet, "/api/v1/profile", user, nil)
	require.Equal(t, http.StatusOK, status)
	var got remote.ProfileRecord
	require.NoError(t, json.Unmarshal(body, &got))
	require.Equal(t, "Ada L", got.Name)
	require.Equal(t, "EUR", got.Currency)
	require.True(t, decimal.NewFromInt(1000).Equal(got.StartingBalance))

	status, _ = call(t, app, http.MethodGet, "/api/v1/profile", uuid.New(), nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestTransactionsLifecycle(t *testing.T) {
	app := newTestApp(t)
	user := uuid.New()
	id := uuid.New()
	in := remote.TransactionRecord{
		ID:       id.String(),
		Type:     "expense",
		Amount:   decimal.RequireFromString("12.50"),
		Date:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Category: "food",
		Tags:     []string{"lunch"},
	}

	status, body := call(t, app, http.MethodPost, "/api/v1/transactions", user, in)
	require.Equal(t, http.StatusCreated, status)
	var created remote.TransactionRecord
	require.NoError(t, json.Unmarshal(body, &created))
	require.Equal(t, id.String(), created.ID)
	require.Equal(t, []string{"lunch"}, created.Tags)

	status, _ = call(t, app, http.MethodPost, "/api/v1/transactions", user, in)
	require.Equal(t, http.StatusOK, status)

	status, _ = call(t, app, http.MethodPost, "/api/v1/transactions", uuid.New(), in)
	require.Equal(t, http.StatusConflict, status)

	second := in
	second.ID = ""
	second.Type = "income"
	second.Category = "salary"
	second.Date = time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	status, _ = call(t, app, http.MethodPost, "/api/v1/transactions", user, second)
	require.Equal(t, http.StatusCreated, status)

	status, body = call(t, app, http.MethodGet, "/api/v1/transactions", user, nil)
	require.Equal(t, http.StatusOK, status)
	var list []remote.TransactionRecord
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 2)
	require.Equal(t, "salary", list[0].Category)
	require.True(t, decimal.RequireFromString("12.5").Equal(list[1].Amount))

	status, _ = call(t, app, http.MethodDelete, "/api/v1/transactions/"+id.String(), user, nil)
	require.Equal(t, http.StatusNoContent, status)
	status, _ = call(t, app, http.MethodDelete, "/api/v1/transactions/"+id.String(), user, nil)
	require.Equal(t, http.StatusNotFound, status)
	status, _ = call(t, app, http.MethodDelete, "/api/v1/transactions/nope", user, nil)
	require.Equal(t, http.StatusBadRequest, status)
}

func TestCreateTransactionValidates(t *testing.T) {
	app := newTestApp(t)
	user := uuid.New()
	tests := []struct {
		name string
		in   remote.TransactionRecord
	}{
		{"zero amount", remote.TransactionRecord{Type: "expense", Category: "food"}},
		{"wrong category", remote.TransactionRecord{Type: "income", Amount: decimal.NewFromInt(5), Category: "food"}},
		{"bad id", remote.TransactionRecord{ID: "x", Type: "expense", Amount: decimal.NewFromInt(5), Category: "food"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := call(t, app, http.MethodPost, "/api/v1/transactions", user, tt.in)
			require.Equal(t, http.StatusBadRequest, status)
		})
	}
}

func TestGoalsLifecycle(t *testing.T) {
	app := newTestApp(t)
	user := uuid.New()
	in := remote.GoalRecord{
		Name:         "Vacation",
		Category:     "travel",
		TargetAmount: decimal.NewFromInt(2000),
	}

	status, body := call(t, app, http.MethodPost, "/api/v1/goals", user, in)
	require.Equal(t, http.StatusCreated, status)
	var created remote.GoalRecord
	require.NoError(t, json.Unmarshal(body, &created))
	require.NotEmpty(t, created.ID)
	require.False(t, created.StartDate.IsZero())

	funded := decimal.NewFromInt(500)
	note := "beach"
	status, body = call(t, app, http.MethodPatch, "/api/v1/goals/"+created.ID, user, remote.GoalUpdate{CurrentAmount: &funded, Notes: &note})
	require.Equal(t, http.StatusOK, status)
	var updated remote.GoalRecord
	require.NoError(t, json.Unmarshal(body, &updated))
	require.True(t, funded.Equal(updated.CurrentAmount))
	require.Equal(t, "beach", updated.Notes)
	require.Equal(t, "Vacation", updated.Name)

	status, _ = call(t, app, http.MethodPatch, "/api/v1/goals/"+created.ID, uuid.New(), remote.GoalUpdate{Notes: &note})
	require.Equal(t, http.StatusNotFound, status)

	status, body = call(t, app, http.MethodGet, "/api/v1/goals", user, nil)
	require.Equal(t, http.StatusOK, status)
	var list []remote.GoalRecord
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)

	status, _ = call(t, app, http.MethodPost, "/api/v1/goals", user, remote.GoalRecord{Category: "travel", TargetAmount: decimal.NewFromInt(1)})
	require.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, app, http.MethodDelete, "/api/v1/goals/"+created.ID, user, nil)
	require.Equal(t, http.StatusNoContent, status)
	status, body = call(t, app, http.MethodGet, "/api/v1/goals", user, nil)
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `[]`, string(body))
}

func TestWithSSLMode(t *testing.T) {
	tests := []struct{ in, want string }{
		{"postgres://u:p@h/db", "postgres://u:p@h/db?sslmode=require"},
		{"postgres://u:p@h/db?x=1", "postgres://u:p@h/db?x=1&sslmode=require"},
		{"host=h dbname=db", "host=h dbname=db sslmode=require"},
		{"postgres://h/db?sslmode=disable", "postgres://h/db?sslmode=disable"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, withSSLMode(tt.in))
	}
}

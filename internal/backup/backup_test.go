package backup

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jask/moneymate/internal/model"
	"github.com/jask/moneymate/internal/store"
)

var now = time.Date(2026, 4, 9, 17, 30, 5, 0, time.UTC)

func TestFileName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "moneymate-20260409-173005.json", FileName(now))
	loc := time.FixedZone("x", 2*3600)
	require.Equal(t, "moneymate-20260409-173005.json", FileName(now.In(loc)))
}

func TestExportToFileSink(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "backups")
	snap := store.Snapshot{
		Onboarded: true,
		Profile:   &model.Profile{Name: "Ana", Currency: "EUR", StartingBalance: decimal.NewFromInt(10)},
		Transactions: []model.Transaction{
			{ID: "t1", Type: model.Expense, Amount: decimal.RequireFromString("12.5"), Category: model.CategoryFood, Date: now},
		},
	}

	where, err := Export(context.Background(), snap, NewFileSink(dir), now)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "moneymate-20260409-173005.json"), where)

	data, err := os.ReadFile(where)
	require.NoError(t, err)
	var doc Document
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Equal(t, 1, doc.Version)
	require.True(t, doc.Onboarded)
	require.Equal(t, "Ana", doc.Profile.Name)
	require.Len(t, doc.Transactions, 1)
	require.True(t, doc.Transactions[0].Amount.Equal(decimal.RequireFromString("12.5")))
	require.NotNil(t, doc.Goals)
	require.Contains(t, string(data), `"amount": 12.5`)

	_, err = os.Stat(where + ".tmp")
	require.True(t, os.IsNotExist(err))
}

type failingSink struct{}

func (failingSink) Put(context.Context, string, []byte) error { return errors.New("offline") }
func (failingSink) Describe(name string) string { return name }

func TestExportWrapsSinkErrors(t *testing.T) {
	t.Parallel()

	_, err := Export(context.Background(), store.Snapshot{}, failingSink{}, now)
	require.ErrorContains(t, err, "moneymate-20260409-173005.json")
	require.ErrorContains(t, err, "offline")
}

func TestGCSObjectName(t *testing.T) {
	t.Parallel()

	g := &GCSSink{bucket: "mm", prefix: "users/ana"}
	require.Equal(t, "gs://mm/users/ana/x.json", g.Describe("x.json"))
	require.Equal(t, "gs://mm/x.json", (&GCSSink{bucket: "mm"}).Describe("x.json"))
}

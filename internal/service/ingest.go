package service

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jask/moneymate/internal/model"
)

// Ledger is the part of the state manager the importers drive.
type Ledger interface {
	Onboarded() bool
	Transactions() []model.Transaction
	CompleteOnboarding(p model.Profile)
	AddTransaction(t model.Transaction)
	AddGoal(g model.Goal)
}

// ImportService bulk-loads transactions, goals and a profile into the
// ledger. Every row is validated the same way the entry forms validate.
type ImportService struct {
	Ledger Ledger
	Log    zerolog.Logger
	Now    func() time.Time
}

// IngestResult reports what an import did. Row problems are collected in
// Errors and never abort the import.
type IngestResult struct {
	Imported int
	Skipped  int
	Errors   []error
}

func (s *ImportService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CSV columns: date, type, amount, category, notes, payment_method, tags.
// Tags are separated by ';'. A leading header row is skipped. Rows that
// duplicate a transaction already in the ledger are skipped, once per
// existing copy, so repeated rows within one file are all kept.
func (s *ImportService) ImportCSV(ctx context.Context, r io.Reader, tz *time.Location) (IngestResult, error) {
	res := IngestResult{}
	if s.Ledger == nil {
		return res, errors.New("import: ledger not configured")
	}
	existing := make(map[string]int)
	for _, t := range s.Ledger.Transactions() {
		existing[fingerprint(t)]++
	}
	inFile := make(map[string]int)

	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1
	line := 0
	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		line++
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "date") {
			continue
		}
		if len(rec) < 4 { // date, type, amount, category
			res.Errors = append(res.Errors, fmt.Errorf("line %d: expected at least 4 columns", line))
			continue
		}
		row := transactionRow{Date: rec[0], Type: rec[1], Amount: rec[2], Category: rec[3]}
		if len(rec) > 4 {
			row.Notes = rec[4]
		}
		if len(rec) > 5 {
			row.PaymentMethod = rec[5]
		}
		if len(rec) > 6 {
			row.Tags = splitTags(rec[6])
		}
		t, err := row.toTransaction(tz)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d %w", line, err))
			continue
		}
		key := fingerprint(t)
		inFile[key]++
		if inFile[key] <= existing[key] {
			res.Skipped++
			continue
		}
		s.Ledger.AddTransaction(t)
		res.Imported++
	}
	s.Log.Info().Int("imported", res.Imported).Int("skipped", res.Skipped).Int("errors", len(res.Errors)).Msg("csv import")
	return res, nil
}

// transactionRow is one raw transaction as it appears in an import file.
type transactionRow struct {
	Date          string   `yaml:"date"`
	Type          string   `yaml:"type"`
	Amount        string   `yaml:"amount"`
	Category      string   `yaml:"category"`
	Notes         string   `yaml:"notes"`
	PaymentMethod string   `yaml:"payment_method"`
	Tags          []string `yaml:"tags"`
}

func (row transactionRow) toTransaction(tz *time.Location) (model.Transaction, error) {
	date, err := parseLocalDate(row.Date, tz)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("date: %w", err)
	}
	typ := model.TransactionType(strings.ToLower(strings.TrimSpace(row.Type)))
	if typ != model.Income && typ != model.Expense {
		return model.Transaction{}, fmt.Errorf("type: %w: %q", model.ErrInvalidType, row.Type)
	}
	amount, err := parseAmount(row.Amount)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("amount: %w", err)
	}
	cat, err := model.ParseCategory(typ, row.Category)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("category: %w", err)
	}
	t := model.Transaction{
		ID:       model.NewTransactionID(),
		Type:     typ,
		Amount:   amount,
		Date:     date,
		Category: cat,
		Notes:    strings.TrimSpace(row.Notes),
		Tags:     row.Tags,
	}
	if typ == model.Expense {
		t.PaymentMethod = strings.TrimSpace(row.PaymentMethod)
	}
	if err := model.ValidateTransaction(t); err != nil {
		return model.Transaction{}, fmt.Errorf("invalid: %w", err)
	}
	return t, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, model.ErrInvalidAmount
	}
	return decimal.NewFromString(s)
}

func splitTags(s string) []string {
	var out []string
	for _, tag := range strings.Split(s, ";") {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// fingerprint identifies a transaction by content, ignoring its id.
func fingerprint(t model.Transaction) string {
	return strings.Join([]string{
		t.Date.UTC().Format(time.DateOnly),
		string(t.Type),
		t.Amount.String(),
		string(t.Category),
		t.Notes,
	}, "|")
}

func parseLocalDate(s string, loc *time.Location) (time.Time, error) {
	layout := "2006-01-02"
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(layout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

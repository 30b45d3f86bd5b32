// Package store maps the application state onto per-key JSON blobs in the
// on-device key-value table.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jask/moneymate/internal/model"
)

// Persisted keys. The layout has no schema version.
const (
	KeyOnboarded    = "isOnboarded"
	KeyUserData     = "userData"
	KeyTransactions = "transactions"
	KeyGoals        = "goals"
	KeyDarkMode     = "isDarkMode"
)

// AllKeys lists every key the adapter owns.
var AllKeys = []string{KeyOnboarded, KeyUserData, KeyTransactions, KeyGoals, KeyDarkMode}

// KV is the key-value backend the adapter writes through.
type KV interface {
	GetMany(ctx context.Context, keys ...string) (map[string]string, error)
	SetMany(ctx context.Context, entries map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}

// Snapshot is the complete persisted application state.
type Snapshot struct {
	Onboarded    bool
	Profile      *model.Profile
	Transactions []model.Transaction
	Goals        []model.Goal
	DarkMode     bool
}

// Adapter reads and writes snapshots.
type Adapter struct {
	kv KV
}

func NewAdapter(kv KV) *Adapter { return &Adapter{kv: kv} }

// Load reads every key. Missing keys decode to zero values.
func (a *Adapter) Load(ctx context.Context) (Snapshot, error) {
	entries, err := a.kv.GetMany(ctx, AllKeys...)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read state: %w", err)
	}
	return Decode(entries)
}

// Save writes the whole snapshot in one batch.
func (a *Adapter) Save(ctx context.Context, s Snapshot) error {
	entries, err := Encode(s)
	if err != nil {
		return err
	}
	if err := a.kv.SetMany(ctx, entries); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

// Remove deletes the given keys.
func (a *Adapter) Remove(ctx context.Context, keys ...string) error {
	if err := a.kv.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("remove keys: %w", err)
	}
	return nil
}

// Encode renders s as the per-key payload. The profile key is only written
// when a profile exists.
func Encode(s Snapshot) (map[string]string, error) {
	entries := map[string]string{
		KeyOnboarded: strconv.FormatBool(s.Onboarded),
		KeyDarkMode:  strconv.FormatBool(s.DarkMode),
	}
	if s.Profile != nil {
		data, err := json.Marshal(s.Profile)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", KeyUserData, err)
		}
		entries[KeyUserData] = string(data)
	}

	txs := s.Transactions
	if txs == nil {
		txs = []model.Transaction{}
	}
	data, err := json.Marshal(txs)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", KeyTransactions, err)
	}
	entries[KeyTransactions] = string(data)

	goals := s.Goals
	if goals == nil {
		goals = []model.Goal{}
	}
	data, err = json.Marshal(goals)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", KeyGoals, err)
	}
	entries[KeyGoals] = string(data)
	return entries, nil
}

// Decode parses a per-key payload. Flags are true only for the literal
// "true".
func Decode(entries map[string]string) (Snapshot, error) {
	s := Snapshot{
		Onboarded:    entries[KeyOnboarded] == "true",
		DarkMode:     entries[KeyDarkMode] == "true",
		Transactions: []model.Transaction{},
		Goals:        []model.Goal{},
	}
	if raw, ok := entries[KeyUserData]; ok && raw != "" {
		var p model.Profile
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return Snapshot{}, fmt.Errorf("decode %s: %w", KeyUserData, err)
		}
		s.Profile = &p
	}
	if raw, ok := entries[KeyTransactions]; ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &s.Transactions); err != nil {
			return Snapshot{}, fmt.Errorf("decode %s: %w", KeyTransactions, err)
		}
	}
	if raw, ok := entries[KeyGoals]; ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &s.Goals); err != nil {
			return Snapshot{}, fmt.Errorf("decode %s: %w", KeyGoals, err)
		}
	}
	if s.Transactions == nil {
		s.Transactions = []model.Transaction{}
	}
	if s.Goals == nil {
		s.Goals = []model.Goal{}
	}
	return s, nil
}

// Package backup exports the application state as a JSON document to a
// local directory or a Cloud Storage bucket.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jask/moneymate/internal/model"
	"github.com/jask/moneymate/internal/store"
)

// Sink stores one named backup.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) error
	Describe(name string) string
}

// Document is the exported file layout.
type Document struct {
	Version      int                 `json:"version"`
	ExportedAt   time.Time           `json:"exportedAt"`
	Onboarded    bool                `json:"isOnboarded"`
	DarkMode     bool                `json:"isDarkMode"`
	Profile      *model.Profile      `json:"userData,omitempty"`
	Transactions []model.Transaction `json:"transactions"`
	Goals        []model.Goal        `json:"goals"`
}

const documentVersion = 1

// FileName is the object name for a backup taken at now.
func FileName(now time.Time) string {
	return "moneymate-" + now.UTC().Format("20060102-150405") + ".json"
}

// NewDocument wraps a snapshot for export.
func NewDocument(s store.Snapshot, now time.Time) Document {
	doc := Document{
		Version:      documentVersion,
		ExportedAt:   now.UTC(),
		Onboarded:    s.Onboarded,
		DarkMode:     s.DarkMode,
		Profile:      s.Profile,
		Transactions: s.Transactions,
		Goals:        s.Goals,
	}
	if doc.Transactions == nil {
		doc.Transactions = []model.Transaction{}
	}
	if doc.Goals == nil {
		doc.Goals = []model.Goal{}
	}
	return doc
}

// Export writes s to sink and returns where it went.
func Export(ctx context.Context, s store.Snapshot, sink Sink, now time.Time) (string, error) {
	data, err := json.MarshalIndent(NewDocument(s, now), "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode backup: %w", err)
	}
	name := FileName(now)
	if err := sink.Put(ctx, name, data); err != nil {
		return "", fmt.Errorf("write backup %s: %w", name, err)
	}
	return sink.Describe(name), nil
}

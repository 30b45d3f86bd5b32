package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InsightKind classifies an insight for display.
type InsightKind string

const (
	InsightTip            InsightKind = "tip"
	InsightAlert          InsightKind = "alert"
	InsightTrend          InsightKind = "trend"
	InsightRecommendation InsightKind = "recommendation"
)

// Insight is a short generated observation. Insights are rebuilt on every
// render and never persisted.
type Insight struct {
	ID          string           `json:"id"`
	Kind        InsightKind      `json:"type"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Category    Category         `json:"category,omitempty"`
	Value       *decimal.Decimal `json:"value,omitempty"`
	GeneratedAt time.Time        `json:"date"`
}

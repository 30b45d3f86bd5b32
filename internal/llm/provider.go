// Package llm produces optional extra financial tips. The rule-based
// insights never depend on it.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Advisor returns one short tip for a spending summary.
type Advisor interface {
	Advise(ctx context.Context, s Summary) (Tip, error)
	Name() string
}

// Summary is the anonymised view of the user's finances an advisor sees.
type Summary struct {
	Currency       string          `json:"currency"`
	MonthIncome    float64         `json:"month_income"`
	MonthExpenses  float64         `json:"month_expenses"`
	BudgetTarget   float64         `json:"budget_target,omitempty"`
	TopCategories  []CategoryShare `json:"top_categories"`
	GoalProgress   float64         `json:"goal_progress_percent"`
	ExistingTitles []string        `json:"existing_insights"`
}

// CategoryShare is one expense category's share of spending.
type CategoryShare struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Percent  float64 `json:"percent"`
}

// Tip is an advisor's suggestion.
type Tip struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ErrNoTip means the advisor had nothing to add.
var ErrNoTip = errors.New("llm: no tip")

// Provider names accepted in config.
const (
	ProviderGemini  = "gemini"
	ProviderOffline = "offline"
)

// New picks an advisor for provider. Gemini without an API key falls back to
// the offline heuristics.
func New(provider, apiKey, model string) Advisor {
	if strings.EqualFold(strings.TrimSpace(provider), ProviderGemini) && strings.TrimSpace(apiKey) != "" {
		return NewGeminiAdvisor(apiKey, model)
	}
	return NewOfflineAdvisor()
}

// decodeJSON strips markdown fences the models like to add and unmarshals
// the payload.
func decodeJSON(raw string, out any) error {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	if start, end := strings.Index(s, "{"), strings.LastIndex(s, "}"); start >= 0 && end > start {
		s = s[start : end+1]
	}
	if err := json.Unmarshal([]byte(s), out); err != nil {
		return fmt.Errorf("decode model output: %w", err)
	}
	return nil
}

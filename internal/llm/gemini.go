package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// ErrGeminiNoAPIKey is returned when no key is configured.
var ErrGeminiNoAPIKey = fmt.Errorf("gemini: api key not configured")

// GeminiAdvisor asks a Gemini model for a tip.
type GeminiAdvisor struct {
	mu     sync.Mutex
	apiKey string
	model  string
	client *genai.Client
}

func NewGeminiAdvisor(apiKey, model string) *GeminiAdvisor {
	return &GeminiAdvisor{apiKey: strings.TrimSpace(apiKey), model: strings.TrimSpace(model)}
}

func (g *GeminiAdvisor) Name() string { return ProviderGemini }

func (g *GeminiAdvisor) ensureClient(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.apiKey == "" {
		return nil, ErrGeminiNoAPIKey
	}
	if g.client == nil {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  g.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("gemini: create client: %w", err)
		}
		g.client = client
	}
	return g.client, nil
}

// Advise sends the summary as JSON and expects {"title","description"} back.
// Timeout: 8s.
func (g *GeminiAdvisor) Advise(ctx context.Context, s Summary) (Tip, error) {
	client, err := g.ensureClient(ctx)
	if err != nil {
		return Tip{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, 8*time.Second)
	defer cancel()

	prompt, err := buildPrompt(s)
	if err != nil {
		return Tip{}, err
	}
	model := g.model
	if model == "" {
		model = defaultGeminiModel
	}
	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return Tip{}, fmt.Errorf("gemini: generate content: %w", err)
	}
	raw := resp.Text()
	if raw == "" {
		return Tip{}, fmt.Errorf("gemini: empty response")
	}
	return parseTip(raw)
}

func buildPrompt(s Summary) (string, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode summary: %w", err)
	}
	var b strings.Builder
	b.WriteString("You are a personal finance coach. Given this monthly summary, give ONE short, practical tip ")
	b.WriteString("that does not repeat the existing insights. Amounts are in the given currency.\n")
	b.WriteString("Return ONLY a JSON object with keys: title (max 5 words), description (one sentence). Do NOT use markdown.\n\n")
	b.WriteString("Summary JSON:\n")
	b.Write(payload)
	return b.String(), nil
}

func parseTip(raw string) (Tip, error) {
	var tip Tip
	if err := decodeJSON(raw, &tip); err != nil {
		return Tip{}, fmt.Errorf("gemini: %w", err)
	}
	tip.Title = strings.TrimSpace(tip.Title)
	tip.Description = strings.TrimSpace(tip.Description)
	if tip.Title == "" || tip.Description == "" {
		return Tip{}, ErrNoTip
	}
	return tip, nil
}

package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotFound matches any 404 from the backend.
var ErrNotFound = errors.New("remote: not found")

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("remote: %d %s", e.Status, e.Message)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Client talks to the sync backend on behalf of one user.
type Client struct {
	baseURL string
	userID  string
	token   string
	timeout time.Duration
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client. The caller's client is
// used as is; WithTimeout does not change it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sends token as a bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = strings.TrimSpace(token) }
}

// WithTimeout sets the per-request timeout of the default client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewClient builds a client for baseURL (e.g. http://host:8080/api/v1).
func NewClient(baseURL, userID string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("remote: user id required")
	}
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("remote: invalid base url %q", baseURL)
	}
	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		userID:  strings.TrimSpace(userID),
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	return c, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("remote: encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("remote: build request: %w", err)
	}
	req.Header.Set(UserHeader, c.userID)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("remote: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("remote: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb ErrorBody
		_ = json.Unmarshal(data, &eb)
		return resp.StatusCode, &APIError{Status: resp.StatusCode, Message: eb.Error}
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("remote: decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// Health pings the backend.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/health", nil, nil)
	return err
}

// GetProfile returns ErrNotFound when no profile was uploaded yet.
func (c *Client) GetProfile(ctx context.Context) (ProfileRecord, error) {
	var out ProfileRecord
	_, err := c.do(ctx, http.MethodGet, "/profile", nil, &out)
	return out, err
}

func (c *Client) UpsertProfile(ctx context.Context, p ProfileRecord) (ProfileRecord, error) {
	var out ProfileRecord
	_, err := c.do(ctx, http.MethodPut, "/profile", p, &out)
	return out, err
}

// ListTransactions returns the user's transactions, newest first.
func (c *Client) ListTransactions(ctx context.Context) ([]TransactionRecord, error) {
	var out []TransactionRecord
	_, err := c.do(ctx, http.MethodGet, "/transactions", nil, &out)
	return out, err
}

// AddTransaction uploads t. created is false when the backend already had
// a transaction with the same id.
func (c *Client) AddTransaction(ctx context.Context, t TransactionRecord) (rec TransactionRecord, created bool, err error) {
	status, err := c.do(ctx, http.MethodPost, "/transactions", t, &rec)
	return rec, status == http.StatusCreated, err
}

func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/transactions/"+url.PathEscape(id), nil, nil)
	return err
}

// ListGoals returns the user's goals, newest first.
func (c *Client) ListGoals(ctx context.Context) ([]GoalRecord, error) {
	var out []GoalRecord
	_, err := c.do(ctx, http.MethodGet, "/goals", nil, &out)
	return out, err
}

// AddGoal uploads g. created is false when the id already existed.
func (c *Client) AddGoal(ctx context.Context, g GoalRecord) (rec GoalRecord, created bool, err error) {
	status, err := c.do(ctx, http.MethodPost, "/goals", g, &rec)
	return rec, status == http.StatusCreated, err
}

func (c *Client) UpdateGoal(ctx context.Context, id string, u GoalUpdate) (GoalRecord, error) {
	var out GoalRecord
	_, err := c.do(ctx, http.MethodPatch, "/goals/"+url.PathEscape(id), u, &out)
	return out, err
}

func (c *Client) DeleteGoal(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/goals/"+url.PathEscape(id), nil, nil)
	return err
}

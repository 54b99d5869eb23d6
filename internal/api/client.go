// Package api provides the HTTP client for the findash backend. It is the
// single choke point for network calls: it attaches the identity header,
// normalizes transport and response errors, and tears down the session on
// a 401.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/findash/findash/internal/model"
	"github.com/findash/findash/internal/session"
	"github.com/shopspring/decimal"
)

// identityHeader carries the session identity on every request that has one.
const identityHeader = "Email"

// Config holds backend connection settings.
type Config struct {
	// OnSessionExpired runs after a 401 response has cleared the session.
	// The CLI uses it to steer the user back to the login flow.
	OnSessionExpired func()
	BaseURL          string
	Timeout          time.Duration
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("api base URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api base URL: %s", c.BaseURL)
	}
	return nil
}

// Client implements the Gateway interface against the findash backend.
type Client struct {
	httpClient *http.Client
	session    session.Store
	logger     *slog.Logger
	onExpired  func()
	baseURL    string
}

// NewClient creates a backend client bound to the given session store.
func NewClient(cfg Config, sess session.Store) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, fmt.Errorf("session store is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		session:    sess,
		onExpired:  cfg.OnSessionExpired,
		logger:     slog.Default().With("component", "api"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// CheckHealth reports whether the backend is reachable. It never returns
// an error: any failure, transport or otherwise, reads as unhealthy.
func (c *Client) CheckHealth(ctx context.Context) bool {
	err := c.do(ctx, http.MethodGet, "/auth/health", nil, nil, nil)
	if err != nil {
		c.logger.Debug("health check failed", "error", err)
		return false
	}
	return true
}

// Login verifies credentials against the backend. It does not establish
// the session; that is the caller's decision once login succeeds.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, creds, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, profile model.RegisterProfile) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, profile, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout tells the backend the session is over. It refuses locally, with
// no network call, when no identity is present.
func (c *Client) Logout(ctx context.Context) error {
	identity := c.session.Identity()
	if identity == "" {
		return ErrNotLoggedIn
	}

	query := url.Values{"email": {identity}}
	return c.do(ctx, http.MethodPost, "/auth/logout", query, nil, nil)
}

// ListCategories fetches all categories.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory creates a category and returns the server-assigned entity.
func (c *Client) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	body := map[string]string{"name": name}
	var category model.Category
	if err := c.do(ctx, http.MethodPost, "/categories", nil, body, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory renames a category and returns the updated entity.
func (c *Client) UpdateCategory(ctx context.Context, id int64, name string) (*model.Category, error) {
	body := map[string]string{"name": name}
	var category model.Category
	if err := c.do(ctx, http.MethodPut, "/categories/"+strconv.FormatInt(id, 10), nil, body, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory deletes a category. Expenses referencing it are left
// alone by the backend.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+strconv.FormatInt(id, 10), nil, nil, nil)
}

// ExpenseInput is the payload for creating or updating an expense.
type ExpenseInput struct {
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	CategoryID  int64           `json:"categoryId"`
}

// ListExpenses fetches all expenses.
func (c *Client) ListExpenses(ctx context.Context) ([]model.Expense, error) {
	var expenses []model.Expense
	if err := c.do(ctx, http.MethodGet, "/expenses", nil, nil, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// CreateExpense records an expense and returns the server-assigned entity.
func (c *Client) CreateExpense(ctx context.Context, input ExpenseInput) (*model.Expense, error) {
	var expense model.Expense
	if err := c.do(ctx, http.MethodPost, "/expenses", nil, input, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

// UpdateExpense replaces an expense and returns the updated entity.
func (c *Client) UpdateExpense(ctx context.Context, id int64, input ExpenseInput) (*model.Expense, error) {
	var expense model.Expense
	if err := c.do(ctx, http.MethodPut, "/expenses/"+strconv.FormatInt(id, 10), nil, input, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

// DeleteExpense deletes an expense.
func (c *Client) DeleteExpense(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/expenses/"+strconv.FormatInt(id, 10), nil, nil, nil)
}

// ExpensesByCategory fetches the expenses recorded under one category.
func (c *Client) ExpensesByCategory(ctx context.Context, categoryID int64) ([]model.Expense, error) {
	var expenses []model.Expense
	path := "/expenses/category/" + strconv.FormatInt(categoryID, 10)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// ExpensesByDateRange fetches expenses between start and end, inclusive.
// Timezone handling is the server's responsibility.
func (c *Client) ExpensesByDateRange(ctx context.Context, start, end time.Time) ([]model.Expense, error) {
	query := url.Values{
		"start": {start.Format(time.RFC3339)},
		"end":   {end.Format(time.RFC3339)},
	}
	var expenses []model.Expense
	if err := c.do(ctx, http.MethodGet, "/expenses/date-range", query, nil, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// do issues one request and classifies the outcome: 2xx decodes into out,
// 401 tears down the session, everything else becomes an *Error, and a
// transport failure becomes ErrServerUnavailable.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	// Identity rides along when present. Requests without one are still
	// sent; the health check needs no identity and mutating endpoints are
	// the server's to reject.
	if identity := c.session.Identity(); identity != "" {
		req.Header.Set(identityHeader, identity)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("transport failure", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		c.expireSession()
		return c.rejection(resp)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.rejection(resp)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// expireSession is the one place the gateway mutates session state. A 401
// with no identity attached (a failed login) tears nothing down.
func (c *Client) expireSession() {
	if c.session.Identity() == "" {
		return
	}
	c.logger.Info("session rejected by server, clearing identity")
	if err := c.session.Clear(); err != nil {
		c.logger.Warn("failed to clear session", "error", err)
	}
	if c.onExpired != nil {
		c.onExpired()
	}
}

var _ Gateway = (*Client)(nil)

// rejection turns a non-2xx response into an *Error, keeping the
// server-supplied message when the body carries one.
func (c *Client) rejection(resp *http.Response) error {
	var envelope struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&envelope)

	c.logger.Debug("request rejected",
		"status", resp.StatusCode,
		"message", envelope.Message)

	return &Error{Status: resp.StatusCode, Message: envelope.Message}
}

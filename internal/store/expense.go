package store

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/findash/findash/internal/api"
	"github.com/findash/findash/internal/bus"
	"github.com/findash/findash/internal/model"
	"github.com/findash/findash/internal/session"
	"github.com/shopspring/decimal"
)

// UnknownCategory is shown when an expense references a category that is
// absent from the current category cache, e.g. one deleted after the
// expense was recorded.
const UnknownCategory = "Unknown category"

// ExpenseStore is the view model for expenses. Alongside its own expense
// cache it mirrors the category list for name lookups, and it refreshes
// both from the change bus when the category store mutates.
type ExpenseStore struct {
	gateway     api.Gateway
	session     session.Store
	bus         *bus.Bus
	logger      *slog.Logger
	unsubscribe func()
	expenses    []model.Expense
	categories  []model.Category
	ops         opTracker
	mu          sync.Mutex
}

// NewExpenseStore wires an expense store to its collaborators. Call
// Mount to start receiving change events and Close on teardown.
func NewExpenseStore(gateway api.Gateway, sess session.Store, b *bus.Bus) *ExpenseStore {
	return &ExpenseStore{
		gateway: gateway,
		session: sess,
		bus:     b,
		logger:  slog.Default().With("component", "expense-store"),
	}
}

// Mount subscribes to category change events.
func (s *ExpenseStore) Mount() {
	s.unsubscribe = s.bus.Subscribe(s.onCategoryChange)
}

// Close unsubscribes from the bus. Safe to call without a prior Mount.
func (s *ExpenseStore) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// onCategoryChange keeps the caches fresh: a deleted category may have
// invalidated whole category-filtered views, so the expense list is
// refetched too; any change refreshes the name lookup. Failures stay
// inside the handler, the caches just go stale until the next refresh.
func (s *ExpenseStore) onCategoryChange(ev model.ChangeEvent) {
	ctx := context.Background()

	if ev.Action == model.ChangeDelete {
		if err := s.Load(ctx); err != nil {
			s.logger.Warn("failed to refresh expenses after category change",
				"action", ev.Action, "category_id", ev.CategoryID, "error", err)
		}
	}

	if err := s.LoadCategories(ctx); err != nil {
		s.logger.Warn("failed to refresh category lookup",
			"action", ev.Action, "category_id", ev.CategoryID, "error", err)
	}
}

// Expenses returns a copy of the cached expense list.
func (s *ExpenseStore) Expenses() []model.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Expense, len(s.expenses))
	copy(out, s.expenses)
	return out
}

// Categories returns a copy of the mirrored category list.
func (s *ExpenseStore) Categories() []model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// CategoryName resolves a category identifier for display, falling back
// to UnknownCategory for dangling references.
func (s *ExpenseStore) CategoryName(id int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.categories {
		if c.ID == id {
			return c.Name
		}
	}
	return UnknownCategory
}

// Load fetches all expenses and replaces the cache wholesale.
func (s *ExpenseStore) Load(ctx context.Context) error {
	if !s.session.IsAuthenticated() {
		return notLoggedIn()
	}

	expenses, err := s.gateway.ListExpenses(ctx)
	if err != nil {
		return failure("fetch expenses", err)
	}

	s.mu.Lock()
	s.expenses = expenses
	s.mu.Unlock()
	return nil
}

// LoadCategories refreshes the category lookup cache.
func (s *ExpenseStore) LoadCategories(ctx context.Context) error {
	if !s.session.IsAuthenticated() {
		return notLoggedIn()
	}

	categories, err := s.gateway.ListCategories(ctx)
	if err != nil {
		return failure("fetch categories", err)
	}

	s.mu.Lock()
	s.categories = categories
	s.mu.Unlock()
	return nil
}

// parseInput validates the add/edit form fields. The amount must parse
// as a decimal number; negativity is left for the server to judge.
func parseInput(amount, description string, categoryID int64) (api.ExpenseInput, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" || categoryID == 0 {
		return api.ExpenseInput{}, invalid("Amount and category are required")
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return api.ExpenseInput{}, invalid("Amount must be a number")
	}

	return api.ExpenseInput{
		Amount:      value,
		Description: strings.TrimSpace(description),
		CategoryID:  categoryID,
	}, nil
}

// Add records an expense and appends the server-returned entity to the
// cache.
func (s *ExpenseStore) Add(ctx context.Context, amount, description string, categoryID int64) (*model.Expense, error) {
	if !s.session.IsAuthenticated() {
		return nil, notLoggedIn()
	}
	input, err := parseInput(amount, description, categoryID)
	if err != nil {
		return nil, err
	}

	key := opKey{kind: opAdd}
	if !s.ops.begin(key) {
		return nil, ErrInFlight
	}

	expense, err := s.gateway.CreateExpense(ctx, input)
	s.ops.finish(key, err)
	if err != nil {
		return nil, failure("add expense", err)
	}

	s.mu.Lock()
	s.expenses = append(s.expenses, *expense)
	s.mu.Unlock()
	return expense, nil
}

// Edit replaces an expense with the server-returned entity.
func (s *ExpenseStore) Edit(ctx context.Context, id int64, amount, description string, categoryID int64) (*model.Expense, error) {
	if !s.session.IsAuthenticated() {
		return nil, notLoggedIn()
	}
	input, err := parseInput(amount, description, categoryID)
	if err != nil {
		return nil, err
	}

	key := opKey{kind: opEdit, id: id}
	if !s.ops.begin(key) {
		return nil, ErrInFlight
	}

	expense, err := s.gateway.UpdateExpense(ctx, id, input)
	s.ops.finish(key, err)
	if err != nil {
		return nil, failure("update expense", err)
	}

	s.mu.Lock()
	for i := range s.expenses {
		if s.expenses[i].ID == id {
			s.expenses[i] = *expense
			break
		}
	}
	s.mu.Unlock()
	return expense, nil
}

// Remove deletes an expense from the backend and the cache.
func (s *ExpenseStore) Remove(ctx context.Context, id int64) error {
	if !s.session.IsAuthenticated() {
		return notLoggedIn()
	}

	key := opKey{kind: opDelete, id: id}
	if !s.ops.begin(key) {
		return ErrInFlight
	}

	err := s.gateway.DeleteExpense(ctx, id)
	s.ops.finish(key, err)
	if err != nil {
		return failure("delete expense", err)
	}

	s.mu.Lock()
	for i := range s.expenses {
		if s.expenses[i].ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// ByCategory is a read path for reporting views. It does not touch the
// store's own caches; callers hold their own derived view.
func (s *ExpenseStore) ByCategory(ctx context.Context, categoryID int64) ([]model.Expense, error) {
	expenses, err := s.gateway.ExpensesByCategory(ctx, categoryID)
	if err != nil {
		return nil, failure("fetch expenses", err)
	}
	return expenses, nil
}

// ByDateRange is a read path for reporting views; the range is inclusive.
func (s *ExpenseStore) ByDateRange(ctx context.Context, start, end time.Time) ([]model.Expense, error) {
	expenses, err := s.gateway.ExpensesByDateRange(ctx, start, end)
	if err != nil {
		return nil, failure("fetch expenses", err)
	}
	return expenses, nil
}

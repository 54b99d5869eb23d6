package api

import (
	"context"
	"sync"
	"time"

	"github.com/findash/findash/internal/model"
)

// MockGateway is a hand-rolled Gateway for tests. Behavior is overridden
// through the *Fn fields; calls are counted so tests can assert exactly
// how often the network would have been touched.
type MockGateway struct {
	CheckHealthFn         func(ctx context.Context) bool
	LoginFn               func(ctx context.Context, creds model.Credentials) (*model.User, error)
	RegisterFn            func(ctx context.Context, profile model.RegisterProfile) (*model.User, error)
	LogoutFn              func(ctx context.Context) error
	ListCategoriesFn      func(ctx context.Context) ([]model.Category, error)
	CreateCategoryFn      func(ctx context.Context, name string) (*model.Category, error)
	UpdateCategoryFn      func(ctx context.Context, id int64, name string) (*model.Category, error)
	DeleteCategoryFn      func(ctx context.Context, id int64) error
	ListExpensesFn        func(ctx context.Context) ([]model.Expense, error)
	CreateExpenseFn       func(ctx context.Context, input ExpenseInput) (*model.Expense, error)
	UpdateExpenseFn       func(ctx context.Context, id int64, input ExpenseInput) (*model.Expense, error)
	DeleteExpenseFn       func(ctx context.Context, id int64) error
	ExpensesByCategoryFn  func(ctx context.Context, categoryID int64) ([]model.Expense, error)
	ExpensesByDateRangeFn func(ctx context.Context, start, end time.Time) ([]model.Expense, error)

	CheckHealthCalls         int
	LoginCalls               int
	RegisterCalls            int
	LogoutCalls              int
	ListCategoriesCalls      int
	CreateCategoryCalls      []string
	UpdateCategoryCalls      []int64
	DeleteCategoryCalls      []int64
	ListExpensesCalls        int
	CreateExpenseCalls       []ExpenseInput
	UpdateExpenseCalls       []int64
	DeleteExpenseCalls       []int64
	ExpensesByCategoryCalls  []int64
	ExpensesByDateRangeCalls int

	mu sync.Mutex
}

var _ Gateway = (*MockGateway)(nil)

// NewMockGateway creates a mock whose every call succeeds with empty data.
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

// CheckHealth implements Gateway.
func (m *MockGateway) CheckHealth(ctx context.Context) bool {
	m.mu.Lock()
	m.CheckHealthCalls++
	m.mu.Unlock()
	if m.CheckHealthFn != nil {
		return m.CheckHealthFn(ctx)
	}
	return true
}

// Login implements Gateway.
func (m *MockGateway) Login(ctx context.Context, creds model.Credentials) (*model.User, error) {
	m.mu.Lock()
	m.LoginCalls++
	m.mu.Unlock()
	if m.LoginFn != nil {
		return m.LoginFn(ctx, creds)
	}
	return &model.User{Email: creds.Email}, nil
}

// Register implements Gateway.
func (m *MockGateway) Register(ctx context.Context, profile model.RegisterProfile) (*model.User, error) {
	m.mu.Lock()
	m.RegisterCalls++
	m.mu.Unlock()
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, profile)
	}
	return &model.User{Email: profile.Email, FirstName: profile.FirstName, LastName: profile.LastName}, nil
}

// Logout implements Gateway.
func (m *MockGateway) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.LogoutCalls++
	m.mu.Unlock()
	if m.LogoutFn != nil {
		return m.LogoutFn(ctx)
	}
	return nil
}

// ListCategories implements Gateway.
func (m *MockGateway) ListCategories(ctx context.Context) ([]model.Category, error) {
	m.mu.Lock()
	m.ListCategoriesCalls++
	m.mu.Unlock()
	if m.ListCategoriesFn != nil {
		return m.ListCategoriesFn(ctx)
	}
	return []model.Category{}, nil
}

// CreateCategory implements Gateway.
func (m *MockGateway) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	m.mu.Lock()
	m.CreateCategoryCalls = append(m.CreateCategoryCalls, name)
	m.mu.Unlock()
	if m.CreateCategoryFn != nil {
		return m.CreateCategoryFn(ctx, name)
	}
	return &model.Category{ID: int64(len(m.CreateCategoryCalls)), Name: name}, nil
}

// UpdateCategory implements Gateway.
func (m *MockGateway) UpdateCategory(ctx context.Context, id int64, name string) (*model.Category, error) {
	m.mu.Lock()
	m.UpdateCategoryCalls = append(m.UpdateCategoryCalls, id)
	m.mu.Unlock()
	if m.UpdateCategoryFn != nil {
		return m.UpdateCategoryFn(ctx, id, name)
	}
	return &model.Category{ID: id, Name: name}, nil
}

// DeleteCategory implements Gateway.
func (m *MockGateway) DeleteCategory(ctx context.Context, id int64) error {
	m.mu.Lock()
	m.DeleteCategoryCalls = append(m.DeleteCategoryCalls, id)
	m.mu.Unlock()
	if m.DeleteCategoryFn != nil {
		return m.DeleteCategoryFn(ctx, id)
	}
	return nil
}

// ListExpenses implements Gateway.
func (m *MockGateway) ListExpenses(ctx context.Context) ([]model.Expense, error) {
	m.mu.Lock()
	m.ListExpensesCalls++
	m.mu.Unlock()
	if m.ListExpensesFn != nil {
		return m.ListExpensesFn(ctx)
	}
	return []model.Expense{}, nil
}

// CreateExpense implements Gateway.
func (m *MockGateway) CreateExpense(ctx context.Context, input ExpenseInput) (*model.Expense, error) {
	m.mu.Lock()
	m.CreateExpenseCalls = append(m.CreateExpenseCalls, input)
	m.mu.Unlock()
	if m.CreateExpenseFn != nil {
		return m.CreateExpenseFn(ctx, input)
	}
	return &model.Expense{
		ID:          int64(len(m.CreateExpenseCalls)),
		Amount:      input.Amount,
		Description: input.Description,
		CategoryID:  input.CategoryID,
	}, nil
}

// UpdateExpense implements Gateway.
func (m *MockGateway) UpdateExpense(ctx context.Context, id int64, input ExpenseInput) (*model.Expense, error) {
	m.mu.Lock()
	m.UpdateExpenseCalls = append(m.UpdateExpenseCalls, id)
	m.mu.Unlock()
	if m.UpdateExpenseFn != nil {
		return m.UpdateExpenseFn(ctx, id, input)
	}
	return &model.Expense{
		ID:          id,
		Amount:      input.Amount,
		Description: input.Description,
		CategoryID:  input.CategoryID,
	}, nil
}

// DeleteExpense implements Gateway.
func (m *MockGateway) DeleteExpense(ctx context.Context, id int64) error {
	m.mu.Lock()
	m.DeleteExpenseCalls = append(m.DeleteExpenseCalls, id)
	m.mu.Unlock()
	if m.DeleteExpenseFn != nil {
		return m.DeleteExpenseFn(ctx, id)
	}
	return nil
}

// ExpensesByCategory implements Gateway.
func (m *MockGateway) ExpensesByCategory(ctx context.Context, categoryID int64) ([]model.Expense, error) {
	m.mu.Lock()
	m.ExpensesByCategoryCalls = append(m.ExpensesByCategoryCalls, categoryID)
	m.mu.Unlock()
	if m.ExpensesByCategoryFn != nil {
		return m.ExpensesByCategoryFn(ctx, categoryID)
	}
	return []model.Expense{}, nil
}

// ExpensesByDateRange implements Gateway.
func (m *MockGateway) ExpensesByDateRange(ctx context.Context, start, end time.Time) ([]model.Expense, error) {
	m.mu.Lock()
	m.ExpensesByDateRangeCalls++
	m.mu.Unlock()
	if m.ExpensesByDateRangeFn != nil {
		return m.ExpensesByDateRangeFn(ctx, start, end)
	}
	return []model.Expense{}, nil
}

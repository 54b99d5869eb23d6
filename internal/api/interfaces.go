package api

import (
	"context"
	"time"

	"github.com/findash/findash/internal/model"
)

// Gateway defines the contract for talking to the findash backend.
// The view models depend on this interface, not on Client, so tests can
// substitute a mock.
type Gateway interface {
	CheckHealth(ctx context.Context) bool

	Login(ctx context.Context, creds model.Credentials) (*model.User, error)
	Register(ctx context.Context, profile model.RegisterProfile) (*model.User, error)
	Logout(ctx context.Context) error

	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, name string) (*model.Category, error)
	UpdateCategory(ctx context.Context, id int64, name string) (*model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	ListExpenses(ctx context.Context) ([]model.Expense, error)
	CreateExpense(ctx context.Context, input ExpenseInput) (*model.Expense, error)
	UpdateExpense(ctx context.Context, id int64, input ExpenseInput) (*model.Expense, error)
	DeleteExpense(ctx context.Context, id int64) error
	ExpensesByCategory(ctx context.Context, categoryID int64) ([]model.Expense, error)
	ExpensesByDateRange(ctx context.Context, start, end time.Time) ([]model.Expense, error)
}

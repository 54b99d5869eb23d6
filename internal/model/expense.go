package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a single recorded expense.
//
// CategoryID is a soft reference: the backend does not cascade-delete
// expenses when their category is removed, so it may point at a category
// that no longer exists.
type Expense struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	ID          int64           `json:"id"`
	CategoryID  int64           `json:"categoryId"`
}

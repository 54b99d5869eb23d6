package report

import (
	"time"

	"github.com/findash/findash/internal/model"
	"github.com/shopspring/decimal"
)

// NoDescription labels expenses recorded without one.
const NoDescription = "No description"

// ExpenseSlice is a single expense prepared for charting.
type ExpenseSlice struct {
	Date   time.Time
	Label  string
	Amount decimal.Decimal
}

// ExpenseSlices filters expenses down to one category and an optional
// inclusive date range, one slice per expense. Nil bounds mean "no limit
// on that side".
func ExpenseSlices(expenses []model.Expense, categoryID int64, start, end *time.Time) []ExpenseSlice {
	var slices []ExpenseSlice
	for _, e := range expenses {
		if e.CategoryID != categoryID {
			continue
		}
		if start != nil && e.Date.Before(*start) {
			continue
		}
		if end != nil && e.Date.After(*end) {
			continue
		}

		label := e.Description
		if label == "" {
			label = NoDescription
		}
		slices = append(slices, ExpenseSlice{
			Label:  label,
			Amount: e.Amount,
			Date:   e.Date,
		})
	}
	return slices
}

// SliceTotal sums the amounts of a slice set.
func SliceTotal(slices []ExpenseSlice) decimal.Decimal {
	total := decimal.Zero
	for _, s := range slices {
		total = total.Add(s.Amount)
	}
	return total
}

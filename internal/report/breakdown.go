// Package report builds the aggregate views behind the charts: how much
// went to each category, and the individual expenses inside one category
// over a date range.
package report

import (
	"github.com/findash/findash/internal/model"
	"github.com/shopspring/decimal"
)

// UnknownCategory labels spending whose category no longer exists.
const UnknownCategory = "Unknown category"

// Slice is one category's share of total spending.
type Slice struct {
	Name    string
	Total   decimal.Decimal
	Percent float64
	Count   int
}

// Breakdown is the expenses-by-category aggregate.
type Breakdown struct {
	Slices []Slice
	Total  decimal.Decimal
}

// CategoryBreakdown totals expenses per category. Categories with no
// spending are omitted; expenses referencing a missing category are
// collected into an UnknownCategory slice appended last. Percentages are
// shares of the grand total.
func CategoryBreakdown(expenses []model.Expense, categories []model.Category) Breakdown {
	totals := make(map[int64]decimal.Decimal)
	counts := make(map[int64]int)
	grand := decimal.Zero

	known := make(map[int64]bool, len(categories))
	for _, c := range categories {
		known[c.ID] = true
	}

	unknownTotal := decimal.Zero
	unknownCount := 0
	for _, e := range expenses {
		grand = grand.Add(e.Amount)
		if known[e.CategoryID] {
			totals[e.CategoryID] = totals[e.CategoryID].Add(e.Amount)
			counts[e.CategoryID]++
			continue
		}
		unknownTotal = unknownTotal.Add(e.Amount)
		unknownCount++
	}

	b := Breakdown{Total: grand}
	for _, c := range categories {
		total := totals[c.ID]
		if total.IsZero() {
			continue
		}
		b.Slices = append(b.Slices, Slice{
			Name:    c.Name,
			Total:   total,
			Percent: percentOf(total, grand),
			Count:   counts[c.ID],
		})
	}
	if unknownCount > 0 {
		b.Slices = append(b.Slices, Slice{
			Name:    UnknownCategory,
			Total:   unknownTotal,
			Percent: percentOf(unknownTotal, grand),
			Count:   unknownCount,
		})
	}
	return b
}

func percentOf(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	percent, _ := part.Div(whole).Mul(decimal.NewFromInt(100)).Float64()
	return percent
}

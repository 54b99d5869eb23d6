package sheets

import (
	"fmt"

	"github.com/findash/findash/internal/report"
)

// expenseRows lays out the Expenses tab: a header row, then one row per
// expense.
func expenseRows(rep *Report) [][]any {
	values := make([][]any, 0, len(rep.Rows)+1)
	values = append(values, []any{"Date", "Description", "Category", "Amount"})

	for _, r := range rep.Rows {
		description := r.Description
		if description == "" {
			description = report.NoDescription
		}
		values = append(values, []any{
			report.FormatDateShortUS(r.Date),
			description,
			r.Category,
			r.Amount.InexactFloat64(),
		})
	}

	return values
}

// summaryRows lays out the Category Summary tab: title, per-category
// totals, and the grand total.
func summaryRows(rep *Report) [][]any {
	values := make([][]any, 0, len(rep.Breakdown.Slices)+5)
	values = append(values,
		[]any{"Category", "Expenses", "Total", "Share"},
	)

	for _, s := range rep.Breakdown.Slices {
		values = append(values, []any{
			s.Name,
			s.Count,
			s.Total.InexactFloat64(),
			fmt.Sprintf("%.1f%%", s.Percent),
		})
	}

	values = append(values,
		[]any{},
		[]any{"Total", len(rep.Rows), rep.Breakdown.Total.InexactFloat64(), ""},
		[]any{},
		[]any{rep.Title, "generated " + report.FormatDateUS(rep.GeneratedAt)},
	)

	return values
}

package sheets

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/findash/findash/internal/model"
	"github.com/findash/findash/internal/report"
)

// Row is one expense line in the export.
type Row struct {
	Date        time.Time
	Description string
	Category    string
	Amount      decimal.Decimal
}

// Report is the full payload written to a spreadsheet.
type Report struct {
	GeneratedAt time.Time
	Title       string
	Rows        []Row
	Breakdown   report.Breakdown
}

// ReportExporter writes a report somewhere durable.
type ReportExporter interface {
	Export(ctx context.Context, rep *Report) error
}

// BuildReport assembles an export report from cached expenses. Rows are
// ordered newest first, matching the dashboard listing.
func BuildReport(title string, expenses []model.Expense, categories []model.Category) *Report {
	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	rows := make([]Row, 0, len(expenses))
	for _, e := range expenses {
		name, ok := names[e.CategoryID]
		if !ok {
			name = report.UnknownCategory
		}
		rows = append(rows, Row{
			Date:        e.Date,
			Description: e.Description,
			Category:    name,
			Amount:      e.Amount,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.After(rows[j].Date)
	})

	return &Report{
		Title:       title,
		GeneratedAt: time.Now(),
		Rows:        rows,
		Breakdown:   report.CategoryBreakdown(expenses, categories),
	}
}

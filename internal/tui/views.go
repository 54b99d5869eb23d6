package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/findash/findash/internal/report"
)

var (
	tabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("#666666"))
	activeTabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(lipgloss.Color("#4CAF50"))

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#4CAF50"))
	headerRowStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))
	faintStyle = lipgloss.NewStyle().Faint(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1D3"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4CAF50")).
			Padding(1, 2)
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.renderLoading()
	}

	var body string
	switch m.state {
	case StateForm:
		body = m.renderForm()
	case StateConfirmDelete:
		body = m.renderConfirmDelete()
	case StateHelp:
		body = m.renderHelp()
	default:
		body = m.renderActiveView()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(),
		body,
		m.renderStatusBar(),
	)
}

func (m Model) renderLoading() string {
	return faintStyle.Render("Loading your data...")
}

func (m Model) renderTabs() string {
	labels := []string{"Expenses", "Categories", "Chart"}
	tabs := make([]string, len(labels))
	for i, label := range labels {
		if View(i) == m.view {
			tabs[i] = activeTabStyle.Render(label)
		} else {
			tabs[i] = tabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderActiveView() string {
	switch m.view {
	case ViewCategories:
		return m.renderCategories()
	case ViewChart:
		return m.renderChart()
	default:
		return m.renderExpenses()
	}
}

func (m Model) renderExpenses() string {
	expenses := m.expenses.Expenses()
	if len(expenses) == 0 {
		return faintStyle.Render("No expenses yet. Press 'a' to add one.")
	}

	var b strings.Builder
	b.WriteString(headerRowStyle.Render(fmt.Sprintf("%-20s %-28s %-18s %12s", "Date", "Description", "Category", "Amount")))
	b.WriteString("\n")

	visible := m.visibleRange(len(expenses), m.cursor[ViewExpenses])
	for i := visible.start; i < visible.end; i++ {
		e := expenses[i]
		description := e.Description
		if description == "" {
			description = report.NoDescription
		}
		row := fmt.Sprintf("%-20s %-28s %-18s %12s",
			report.FormatDateUS(e.Date),
			truncate(description, 28),
			truncate(m.expenses.CategoryName(e.CategoryID), 18),
			report.FormatUSD(e.Amount),
		)
		if i == m.cursor[ViewExpenses] {
			b.WriteString(selectedRowStyle.Render("> " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}

	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	b.WriteString(faintStyle.Render(fmt.Sprintf("%d expenses, %s total",
		len(expenses), report.FormatUSD(total))))
	return b.String()
}

func (m Model) renderCategories() string {
	categories := m.categories.Categories()
	if len(categories) == 0 {
		return faintStyle.Render("No categories yet. Press 'a' to add one.")
	}

	var b strings.Builder
	b.WriteString(headerRowStyle.Render(fmt.Sprintf("%-30s %8s", "Name", "ID")))
	b.WriteString("\n")

	visible := m.visibleRange(len(categories), m.cursor[ViewCategories])
	for i := visible.start; i < visible.end; i++ {
		c := categories[i]
		row := fmt.Sprintf("%-30s %8d", truncate(c.Name, 30), c.ID)
		if i == m.cursor[ViewCategories] {
			b.WriteString(selectedRowStyle.Render("> " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderChart() string {
	breakdown := report.CategoryBreakdown(m.expenses.Expenses(), m.expenses.Categories())
	width := m.width - 45
	if width < 10 {
		width = 10
	}

	chart := report.RenderBars(breakdown, width)
	total := faintStyle.Render("Total: " + report.FormatUSD(breakdown.Total))
	return lipgloss.JoinVertical(lipgloss.Left, chart, "", total)
}

func (m Model) renderForm() string {
	titles := map[formKind]string{
		formAddExpense:     "Add Expense",
		formEditExpense:    "Edit Expense",
		formAddCategory:    "Add Category",
		formRenameCategory: "Rename Category",
	}

	lines := []string{headerRowStyle.Render(titles[m.form.kind]), ""}
	for i := range m.form.inputs {
		lines = append(lines, m.form.inputs[i].View())
	}
	lines = append(lines, "", faintStyle.Render("Enter to save, Esc to cancel"))

	return overlayStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderConfirmDelete() string {
	var subject string
	switch m.view {
	case ViewExpenses:
		if exp, ok := m.selectedExpense(); ok {
			subject = fmt.Sprintf("expense of %s", report.FormatUSD(exp.Amount))
		}
	case ViewCategories:
		if cat, ok := m.selectedCategory(); ok {
			subject = fmt.Sprintf("category %q", cat.Name)
		}
	}

	return overlayStyle.Render(strings.Join([]string{
		headerRowStyle.Render("Delete " + subject + "?"),
		"",
		faintStyle.Render("Enter/y to delete, Esc/n to cancel"),
	}, "\n"))
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(headerRowStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	for _, group := range m.keymap.FullHelp() {
		for _, binding := range group {
			b.WriteString(fmt.Sprintf("  %-14s %s\n",
				binding.Help().Key, binding.Help().Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(faintStyle.Render("Press any key to go back"))
	return overlayStyle.Render(b.String())
}

func (m Model) renderStatusBar() string {
	identity := m.session.Identity()
	left := faintStyle.Render(identity)

	right := statusStyle.Render(m.status)
	if m.lastError != nil && m.status != "" {
		right = errorStyle.Render(m.status)
	}

	hint := faintStyle.Render("Tab: views · ?: help · q: quit")
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right, "  ", hint)
}

type rowRange struct {
	start, end int
}

// visibleRange windows long lists around the cursor so they fit the
// terminal height.
func (m Model) visibleRange(total, cursor int) rowRange {
	visible := m.height - 8
	if visible < 5 {
		visible = 5
	}
	if total <= visible {
		return rowRange{0, total}
	}

	start := cursor - visible/2
	if start < 0 {
		start = 0
	}
	end := start + visible
	if end > total {
		end = total
		start = end - visible
	}
	return rowRange{start, end}
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const requestTimeout = 30 * time.Second

// loadExpenses refreshes both caches. Expenses and categories come back
// together so one message carries a consistent snapshot.
func (m Model) loadExpenses() tea.Cmd {
	expenses := m.expenses
	categories := m.categories
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := categories.Load(ctx); err != nil {
			return expensesLoadedMsg{err: err}
		}
		if err := expenses.Load(ctx); err != nil {
			return expensesLoadedMsg{err: err}
		}
		if err := expenses.LoadCategories(ctx); err != nil {
			return expensesLoadedMsg{err: err}
		}

		return expensesLoadedMsg{
			expenses:   expenses.Expenses(),
			categories: categories.Categories(),
		}
	}
}

// submitForm validates and dispatches the active form.
func (m Model) submitForm() tea.Cmd {
	f := m.form
	switch f.kind {
	case formAddExpense, formEditExpense:
		amount := strings.TrimSpace(f.inputs[0].Value())
		description := strings.TrimSpace(f.inputs[1].Value())
		categoryID, ok := m.resolveCategory(f.inputs[2].Value())
		if !ok {
			return func() tea.Msg {
				return errorMsg{err: fmt.Errorf("unknown category %q", strings.TrimSpace(f.inputs[2].Value()))}
			}
		}
		if f.kind == formAddExpense {
			return m.addExpense(amount, description, categoryID)
		}
		return m.editExpense(f.targetID, amount, description, categoryID)

	case formAddCategory:
		return m.addCategory(f.inputs[0].Value())

	case formRenameCategory:
		return m.renameCategory(f.targetID, f.inputs[0].Value())
	}
	return nil
}

func (m Model) addExpense(amount, description string, categoryID int64) tea.Cmd {
	expenses := m.expenses
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		exp, err := expenses.Add(ctx, amount, description, categoryID)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: fmt.Sprintf("Added expense #%d", exp.ID)}
	}
}

func (m Model) editExpense(id int64, amount, description string, categoryID int64) tea.Cmd {
	expenses := m.expenses
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if _, err := expenses.Edit(ctx, id, amount, description, categoryID); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: fmt.Sprintf("Updated expense #%d", id)}
	}
}

func (m Model) removeExpense(id int64) tea.Cmd {
	expenses := m.expenses
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := expenses.Remove(ctx, id); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: fmt.Sprintf("Deleted expense #%d", id)}
	}
}

func (m Model) addCategory(name string) tea.Cmd {
	categories := m.categories
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		cat, err := categories.Add(ctx, name)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: fmt.Sprintf("Added category %q", cat.Name)}
	}
}

func (m Model) renameCategory(id int64, name string) tea.Cmd {
	categories := m.categories
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		cat, err := categories.Rename(ctx, id, name)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: fmt.Sprintf("Renamed category to %q", cat.Name)}
	}
}

func (m Model) removeCategory(id int64) tea.Cmd {
	categories := m.categories
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := categories.Remove(ctx, id); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{status: "Deleted category; expenses keep their spending history"}
	}
}

package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/findash/findash/internal/api"
	"github.com/findash/findash/internal/bus"
	"github.com/findash/findash/internal/model"
	"github.com/findash/findash/internal/session"
	"github.com/findash/findash/internal/store"
)

func dashboardFixture(t *testing.T) (Model, *api.MockGateway) {
	t.Helper()

	gateway := api.NewMockGateway()
	gateway.ListCategoriesFn = func(_ context.Context) ([]model.Category, error) {
		return []model.Category{
			{ID: 1, Name: "Food"},
			{ID: 2, Name: "Transport"},
		}, nil
	}
	gateway.ListExpensesFn = func(_ context.Context) ([]model.Expense, error) {
		return []model.Expense{
			{ID: 100, Date: time.Now(), Amount: decimal.RequireFromString("12.50"), CategoryID: 1},
			{ID: 101, Date: time.Now(), Description: "Bus", Amount: decimal.RequireFromString("2.75"), CategoryID: 2},
		}, nil
	}

	sess := session.NewMemory()
	require.NoError(t, sess.Establish("user@example.com"))

	b := bus.New()
	categories := store.NewCategoryStore(gateway, sess, b)
	expenses := store.NewExpenseStore(gateway, sess, b)

	m := newModel(Config{Categories: categories, Expenses: expenses, Session: sess})
	return m, gateway
}

func loadFixtureData(t *testing.T, m Model) Model {
	t.Helper()

	msg := m.loadExpenses()()
	loaded, ok := msg.(expensesLoadedMsg)
	require.True(t, ok)
	require.NoError(t, loaded.err)

	updated, _ := m.Update(loaded)
	next, ok := updated.(Model)
	require.True(t, ok)
	require.True(t, next.ready)
	return next
}

func pressKey(t *testing.T, m Model, keys ...string) Model {
	t.Helper()

	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, _ := m.Update(msg)
		next, ok := updated.(Model)
		require.True(t, ok)
		m = next
	}
	return m
}

func TestDashboardLoadsData(t *testing.T) {
	m, _ := dashboardFixture(t)
	assert.Contains(t, m.View(), "Loading")

	m = loadFixtureData(t, m)

	view := m.View()
	assert.Contains(t, view, "Bus")
	assert.Contains(t, view, "$12.50")
	assert.Contains(t, view, "user@example.com")
}

func TestDashboardCyclesViews(t *testing.T) {
	m, _ := dashboardFixture(t)
	m = loadFixtureData(t, m)

	assert.Equal(t, ViewExpenses, m.view)
	m = pressKey(t, m, "tab")
	assert.Equal(t, ViewCategories, m.view)
	assert.Contains(t, m.View(), "Food")

	m = pressKey(t, m, "tab")
	assert.Equal(t, ViewChart, m.view)
	assert.Contains(t, m.View(), "█")

	m = pressKey(t, m, "tab")
	assert.Equal(t, ViewExpenses, m.view)
}

func TestDashboardCursorStaysInBounds(t *testing.T) {
	m, _ := dashboardFixture(t)
	m = loadFixtureData(t, m)

	m = pressKey(t, m, "k")
	assert.Equal(t, 0, m.cursor[ViewExpenses])

	m = pressKey(t, m, "j", "j", "j", "j")
	assert.Equal(t, 1, m.cursor[ViewExpenses])

	m = pressKey(t, m, "g")
	assert.Equal(t, 0, m.cursor[ViewExpenses])
}

func TestDashboardOpensAndCancelsForm(t *testing.T) {
	m, _ := dashboardFixture(t)
	m = loadFixtureData(t, m)

	m = pressKey(t, m, "a")
	assert.Equal(t, StateForm, m.state)
	assert.Contains(t, m.View(), "Add Expense")

	m = pressKey(t, m, "esc")
	assert.Equal(t, StateBrowse, m.state)
}

func TestDashboardDeleteConfirmation(t *testing.T) {
	m, gateway := dashboardFixture(t)
	m = loadFixtureData(t, m)

	m = pressKey(t, m, "d")
	assert.Equal(t, StateConfirmDelete, m.state)
	assert.Contains(t, m.View(), "Delete")

	// Cancelling leaves everything alone.
	m = pressKey(t, m, "esc")
	assert.Equal(t, StateBrowse, m.state)
	assert.Empty(t, gateway.DeleteExpenseCalls)

	// Confirming dispatches the delete command.
	m = pressKey(t, m, "d")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	require.NotNil(t, cmd)

	msg := cmd()
	done, ok := msg.(mutationDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)
	assert.Equal(t, []int64{100}, gateway.DeleteExpenseCalls)

	updated, _ = m.Update(done)
	m = updated.(Model)
	assert.Equal(t, StateBrowse, m.state)
	assert.Contains(t, m.status, "Deleted expense")
}

func TestDashboardResolveCategory(t *testing.T) {
	m, _ := dashboardFixture(t)
	m = loadFixtureData(t, m)

	id, ok := m.resolveCategory("food")
	require.True(t, ok)
	assert.Equal(t, int64(1), id)

	id, ok = m.resolveCategory(" Transport ")
	require.True(t, ok)
	assert.Equal(t, int64(2), id)

	_, ok = m.resolveCategory("Nope")
	assert.False(t, ok)
}

func TestDashboardQuitsWhenSessionCleared(t *testing.T) {
	m, _ := dashboardFixture(t)
	m = loadFixtureData(t, m)

	require.NoError(t, m.session.Clear())
	updated, cmd := m.Update(sessionChangedMsg{})
	m = updated.(Model)

	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
}

func TestDashboardLogoutKey(t *testing.T) {
	m, _ := dashboardFixture(t)
	m = loadFixtureData(t, m)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("L")})
	m = updated.(Model)

	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.False(t, m.session.IsAuthenticated())
}

func TestDashboardHelpToggle(t *testing.T) {
	m, _ := dashboardFixture(t)
	m = loadFixtureData(t, m)

	m = pressKey(t, m, "?")
	assert.Equal(t, StateHelp, m.state)
	assert.True(t, strings.Contains(m.View(), "Keyboard Shortcuts"))

	m = pressKey(t, m, "x")
	assert.Equal(t, StateBrowse, m.state)
}

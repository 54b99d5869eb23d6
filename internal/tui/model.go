// Package tui implements the interactive dashboard: expense and category
// panels plus a spending chart, backed by the shared stores.
package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/findash/findash/internal/model"
	"github.com/findash/findash/internal/session"
	"github.com/findash/findash/internal/store"
)

// State represents the current state of the dashboard.
type State int

const (
	StateBrowse State = iota
	StateForm
	StateConfirmDelete
	StateHelp
)

// View represents the active panel.
type View int

const (
	ViewExpenses View = iota
	ViewCategories
	ViewChart
)

type formKind int

const (
	formAddExpense formKind = iota
	formEditExpense
	formAddCategory
	formRenameCategory
)

type form struct {
	inputs   []textinput.Model
	kind     formKind
	focus    int
	targetID int64
}

// Model holds the dashboard state.
type Model struct {
	categories *store.CategoryStore
	expenses   *store.ExpenseStore
	session    session.Store
	lastError  error
	status     string
	form       form
	keymap     KeyMap
	cursor     [3]int
	width      int
	height     int
	state      State
	view       View
	ready      bool
	quitting   bool
}

func newModel(cfg Config) Model {
	return Model{
		categories: cfg.Categories,
		expenses:   cfg.Expenses,
		session:    cfg.Session,
		keymap:     DefaultKeyMap(),
		state:      StateBrowse,
		view:       ViewExpenses,
		width:      80,
		height:     24,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.loadExpenses(),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case expensesLoadedMsg:
		if msg.err != nil {
			m.lastError = msg.err
			m.status = store.UserMessage(msg.err)
		} else {
			m.ready = true
			m.lastError = nil
			m.clampCursors()
		}
		return m, nil

	case mutationDoneMsg:
		if msg.err != nil {
			m.lastError = msg.err
			m.status = store.UserMessage(msg.err)
			return m, nil
		}
		m.lastError = nil
		m.status = msg.status
		m.state = StateBrowse
		m.clampCursors()
		return m, nil

	case sessionChangedMsg:
		if !m.session.IsAuthenticated() {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case errorMsg:
		m.lastError = msg.err
		m.status = store.UserMessage(msg.err)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Force quit works everywhere.
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}
	if msg.String() == "ctrl+l" {
		return m, tea.ClearScreen
	}

	switch m.state {
	case StateBrowse:
		return m.handleBrowseKey(msg)
	case StateForm:
		return m.handleFormKey(msg)
	case StateConfirmDelete:
		return m.handleConfirmKey(msg)
	case StateHelp:
		m.state = StateBrowse
		return m, nil
	}
	return m, nil
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "L":
		// Log out from inside the dashboard; other terminals see the
		// session file change and tear down too.
		if err := m.session.Clear(); err != nil {
			m.lastError = err
			m.status = "Failed to log out: " + err.Error()
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case "?":
		m.state = StateHelp
		return m, nil

	case "tab":
		m.view = (m.view + 1) % 3
		return m, nil

	case "k", "up":
		if m.cursor[m.view] > 0 {
			m.cursor[m.view]--
		}
		return m, nil

	case "j", "down":
		if m.cursor[m.view] < m.rowCount()-1 {
			m.cursor[m.view]++
		}
		return m, nil

	case "g", "home":
		m.cursor[m.view] = 0
		return m, nil

	case "G", "end":
		if n := m.rowCount(); n > 0 {
			m.cursor[m.view] = n - 1
		}
		return m, nil

	case "r", "ctrl+r":
		m.status = "Refreshing..."
		return m, m.loadExpenses()

	case "a":
		switch m.view {
		case ViewExpenses:
			m.form = newExpenseForm(formAddExpense, 0, "", "", "")
		case ViewCategories:
			m.form = newCategoryForm(formAddCategory, 0, "")
		default:
			return m, nil
		}
		m.state = StateForm
		return m, textinput.Blink

	case "e":
		switch m.view {
		case ViewExpenses:
			exp, ok := m.selectedExpense()
			if !ok {
				return m, nil
			}
			m.form = newExpenseForm(formEditExpense, exp.ID,
				exp.Amount.String(), exp.Description, m.expenses.CategoryName(exp.CategoryID))
		case ViewCategories:
			cat, ok := m.selectedCategory()
			if !ok {
				return m, nil
			}
			m.form = newCategoryForm(formRenameCategory, cat.ID, cat.Name)
		default:
			return m, nil
		}
		m.state = StateForm
		return m, textinput.Blink

	case "d":
		if m.view != ViewExpenses && m.view != ViewCategories {
			return m, nil
		}
		if m.rowCount() == 0 {
			return m, nil
		}
		m.state = StateConfirmDelete
		return m, nil
	}

	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = StateBrowse
		m.status = ""
		return m, nil

	case "tab", "shift+tab", "up", "down":
		if msg.String() == "shift+tab" || msg.String() == "up" {
			m.form.focus--
		} else {
			m.form.focus++
		}
		n := len(m.form.inputs)
		m.form.focus = (m.form.focus%n + n) % n

		var cmds []tea.Cmd
		for i := range m.form.inputs {
			if i == m.form.focus {
				cmds = append(cmds, m.form.inputs[i].Focus())
			} else {
				m.form.inputs[i].Blur()
			}
		}
		return m, tea.Batch(cmds...)

	case "enter":
		return m, m.submitForm()
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "y":
		switch m.view {
		case ViewExpenses:
			if exp, ok := m.selectedExpense(); ok {
				return m, m.removeExpense(exp.ID)
			}
		case ViewCategories:
			if cat, ok := m.selectedCategory(); ok {
				return m, m.removeCategory(cat.ID)
			}
		}
		m.state = StateBrowse
		return m, nil

	case "esc", "n":
		m.state = StateBrowse
		return m, nil
	}
	return m, nil
}

// rowCount is the number of selectable rows in the active view.
func (m Model) rowCount() int {
	switch m.view {
	case ViewExpenses:
		return len(m.expenses.Expenses())
	case ViewCategories:
		return len(m.categories.Categories())
	default:
		return 0
	}
}

func (m *Model) clampCursors() {
	for v := ViewExpenses; v <= ViewChart; v++ {
		saved := m.view
		m.view = v
		if n := m.rowCount(); m.cursor[v] >= n {
			m.cursor[v] = max(0, n-1)
		}
		m.view = saved
	}
}

func (m Model) selectedExpense() (model.Expense, bool) {
	expenses := m.expenses.Expenses()
	i := m.cursor[ViewExpenses]
	if i < 0 || i >= len(expenses) {
		return model.Expense{}, false
	}
	return expenses[i], true
}

func (m Model) selectedCategory() (model.Category, bool) {
	categories := m.categories.Categories()
	i := m.cursor[ViewCategories]
	if i < 0 || i >= len(categories) {
		return model.Category{}, false
	}
	return categories[i], true
}

// resolveCategory matches a typed category name to its ID,
// case-insensitively.
func (m Model) resolveCategory(name string) (int64, bool) {
	name = strings.TrimSpace(name)
	for _, c := range m.categories.Categories() {
		if strings.EqualFold(c.Name, name) {
			return c.ID, true
		}
	}
	// Fall back to a raw ID for power users.
	if id, err := strconv.ParseInt(name, 10, 64); err == nil && id > 0 {
		return id, true
	}
	return 0, false
}

func newExpenseForm(kind formKind, targetID int64, amount, description, category string) form {
	amountInput := textinput.New()
	amountInput.Placeholder = "12.50"
	amountInput.Prompt = "Amount: "
	amountInput.SetValue(amount)
	amountInput.Focus()

	descInput := textinput.New()
	descInput.Placeholder = "optional"
	descInput.Prompt = "Description: "
	descInput.SetValue(description)

	catInput := textinput.New()
	catInput.Placeholder = "Groceries"
	catInput.Prompt = "Category: "
	catInput.SetValue(category)

	return form{
		kind:     kind,
		targetID: targetID,
		inputs:   []textinput.Model{amountInput, descInput, catInput},
	}
}

func newCategoryForm(kind formKind, targetID int64, name string) form {
	nameInput := textinput.New()
	nameInput.Placeholder = "Groceries"
	nameInput.Prompt = "Name: "
	nameInput.SetValue(name)
	nameInput.Focus()

	return form{
		kind:     kind,
		targetID: targetID,
		inputs:   []textinput.Model{nameInput},
	}
}

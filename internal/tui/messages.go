package tui

import "github.com/findash/findash/internal/model"

// Data loading messages.
type expensesLoadedMsg struct {
	err        error
	expenses   []model.Expense
	categories []model.Category
}

// mutationDoneMsg reports the outcome of a create, update or delete. The
// caches are already up to date when err is nil; the message carries the
// status line to show.
type mutationDoneMsg struct {
	err    error
	status string
}

// sessionChangedMsg fires when the session file changes out of band, for
// example a logout from another terminal.
type sessionChangedMsg struct{}

// errorMsg carries a failure that should be surfaced but not fatal.
type errorMsg struct {
	err error
}

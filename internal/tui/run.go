package tui

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/findash/findash/internal/session"
	"github.com/findash/findash/internal/store"
)

// Config holds the dependencies for running the dashboard.
type Config struct {
	Categories *store.CategoryStore
	Expenses   *store.ExpenseStore
	Session    session.Store
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Categories == nil {
		return fmt.Errorf("category store is required")
	}
	if c.Expenses == nil {
		return fmt.Errorf("expense store is required")
	}
	if c.Session == nil {
		return fmt.Errorf("session store is required")
	}
	return nil
}

// Run starts the dashboard and blocks until the user quits or the
// session ends.
func Run(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !cfg.Session.IsAuthenticated() {
		return fmt.Errorf("not logged in")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(newModel(cfg), tea.WithContext(ctx))

	// A logout in another terminal tears this dashboard down too.
	stopWatch, err := cfg.Session.Watch(func() {
		program.Send(sessionChangedMsg{})
	})
	if err != nil {
		return fmt.Errorf("failed to watch session: %w", err)
	}
	defer stopWatch()

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}

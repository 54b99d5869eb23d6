package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/findash/findash/internal/api"
	"github.com/findash/findash/internal/bus"
	"github.com/findash/findash/internal/cli"
	"github.com/findash/findash/internal/config"
	"github.com/findash/findash/internal/session"
	"github.com/findash/findash/internal/sheets"
	"github.com/findash/findash/internal/store"
)

// initSession opens the session file under the configured state
// directory.
func initSession() (*session.FileStore, error) {
	dir, err := config.StateDir(viper.GetString("state.dir"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve state directory: %w", err)
	}
	return session.NewFileStore(dir)
}

// initGateway builds the backend client. A 401 anywhere clears the
// session, so the callback just tells the user what happened.
func initGateway(sess session.Store) (*api.Client, error) {
	cfg := api.Config{
		BaseURL: viper.GetString("api.base_url"),
		Timeout: viper.GetDuration("api.timeout"),
		OnSessionExpired: func() {
			fmt.Fprintln(os.Stderr, cli.FormatWarning("Your session has expired. Please log in again."))
		},
	}
	return api.NewClient(cfg, sess)
}

// appStores bundles the stores every data command needs.
type appStores struct {
	Session    *session.FileStore
	Gateway    *api.Client
	Categories *store.CategoryStore
	Expenses   *store.ExpenseStore
	close      func()
}

// Close detaches the expense store from the change bus.
func (s *appStores) Close() {
	if s.close != nil {
		s.close()
	}
}

// initStores wires session, gateway, bus and both stores together.
func initStores() (*appStores, error) {
	sess, err := initSession()
	if err != nil {
		return nil, err
	}

	gateway, err := initGateway(sess)
	if err != nil {
		return nil, err
	}

	b := bus.New()
	categories := store.NewCategoryStore(gateway, sess, b)
	expenses := store.NewExpenseStore(gateway, sess, b)
	expenses.Mount()

	return &appStores{
		Session:    sess,
		Gateway:    gateway,
		Categories: categories,
		Expenses:   expenses,
		close:      expenses.Close,
	}, nil
}

// userErr unwraps store errors to their displayable message so cobra
// prints something a human can act on.
func userErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s", store.UserMessage(err))
}

// sheetsConfig assembles the exporter configuration from viper plus the
// state directory for the cached token.
func sheetsConfig() (sheets.Config, error) {
	cfg := sheets.DefaultConfig()
	cfg.ClientID = viper.GetString("sheets.client_id")
	cfg.ClientSecret = viper.GetString("sheets.client_secret")
	cfg.RefreshToken = viper.GetString("sheets.refresh_token")
	cfg.ServiceAccountPath = config.ExpandPath(viper.GetString("sheets.service_account_path"))
	cfg.SpreadsheetID = viper.GetString("sheets.spreadsheet_id")
	if name := viper.GetString("sheets.spreadsheet_name"); name != "" {
		cfg.SpreadsheetName = name
	}

	dir, err := config.StateDir(viper.GetString("state.dir"))
	if err != nil {
		return cfg, fmt.Errorf("failed to resolve state directory: %w", err)
	}
	cfg.TokenFile = dir + "/sheets-token.json"

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("sheets export is not configured: %w", err)
	}
	return cfg, nil
}

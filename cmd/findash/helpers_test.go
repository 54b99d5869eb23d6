package main

import (
	"errors"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/findash/findash/internal/store"
)

func TestUserErr(t *testing.T) {
	assert.NoError(t, userErr(nil))

	wrapped := &store.UserError{
		Err:         errors.New("connection refused"),
		UserMessage: "Failed to load categories: unable to connect to the server",
	}
	err := userErr(wrapped)
	require.Error(t, err)
	assert.Equal(t, "Failed to load categories: unable to connect to the server", err.Error())
}

func TestSheetsConfig(t *testing.T) {
	defer viper.Reset()

	t.Run("missing credentials", func(t *testing.T) {
		viper.Reset()
		viper.Set("state.dir", t.TempDir())

		_, err := sheetsConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sheets export is not configured")
	})

	t.Run("oauth credentials", func(t *testing.T) {
		viper.Reset()
		dir := t.TempDir()
		viper.Set("state.dir", dir)
		viper.Set("sheets.client_id", "client-id")
		viper.Set("sheets.client_secret", "client-secret")
		viper.Set("sheets.spreadsheet_name", "My Budget")

		cfg, err := sheetsConfig()
		require.NoError(t, err)
		assert.Equal(t, "My Budget", cfg.SpreadsheetName)
		assert.Equal(t, dir+"/sheets-token.json", cfg.TokenFile)
	})
}

func TestInitGatewayValidatesURL(t *testing.T) {
	defer viper.Reset()

	viper.Reset()
	viper.Set("state.dir", t.TempDir())
	viper.Set("api.base_url", "not a url")

	sess, err := initSession()
	require.NoError(t, err)

	_, err = initGateway(sess)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api base URL")
}

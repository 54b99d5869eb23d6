package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("FINDASH_TEST_DIR", "/tmp/findash")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain", in: "/var/data", want: "/var/data"},
		{name: "tilde", in: "~/data", want: filepath.Join(home, "data")},
		{name: "bare tilde", in: "~", want: home},
		{name: "env var", in: "$FINDASH_TEST_DIR/state", want: "/tmp/findash/state"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestStateDir(t *testing.T) {
	t.Run("override wins", func(t *testing.T) {
		dir, err := StateDir("/custom/state")
		require.NoError(t, err)
		assert.Equal(t, "/custom/state", dir)
	})

	t.Run("xdg data home", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "/xdg/data")
		dir, err := StateDir("")
		require.NoError(t, err)
		assert.Equal(t, "/xdg/data/findash", dir)
	})
}

package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	base := func() Config {
		c := DefaultConfig()
		c.ClientID = "client-id"
		c.ClientSecret = "client-secret"
		return c
	}

	tests := []struct {
		mutate  func(*Config)
		name    string
		wantErr string
	}{
		{
			name:   "oauth config",
			mutate: func(_ *Config) {},
		},
		{
			name: "service account config",
			mutate: func(c *Config) {
				c.ClientID = ""
				c.ClientSecret = ""
				c.ServiceAccountPath = "/tmp/key.json"
			},
		},
		{
			name: "no auth method",
			mutate: func(c *Config) {
				c.ClientID = ""
				c.ClientSecret = ""
			},
			wantErr: "no authentication method configured",
		},
		{
			name: "both auth methods",
			mutate: func(c *Config) {
				c.ServiceAccountPath = "/tmp/key.json"
			},
			wantErr: "multiple authentication methods",
		},
		{
			name: "zero retry attempts",
			mutate: func(c *Config) {
				c.RetryAttempts = 0
			},
			wantErr: "retry attempts must be positive",
		},
		{
			name: "zero retry delay",
			mutate: func(c *Config) {
				c.RetryDelay = 0
			},
			wantErr: "retry delay must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "Personal Finance Export", cfg.SpreadsheetName)
	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.Equal(t, time.Second, cfg.RetryDelay)
	assert.True(t, cfg.EnableFormatting)
}

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "relay", cfg.CompletionMode)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, "http://localhost:8080/api/chat-gpt", cfg.RelayURL)
	assert.Equal(t, 60*time.Second, cfg.CompletionTimeout)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "*", cfg.CORSAllowedOrigins)
	assert.Equal(t, int64(10<<20), cfg.UploadLimitBytes)
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T, cfg Config)
	}{
		{
			name: "direct mode",
			env:  map[string]string{"COMPLETION_MODE": "direct", "OPENAI_API_KEY": "sk-test"},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, "direct", cfg.CompletionMode)
				assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
			},
		},
		{
			name: "custom timeout",
			env:  map[string]string{"COMPLETION_TIMEOUT": "5s"},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, 5*time.Second, cfg.CompletionTimeout)
			},
		},
		{
			name:    "unknown mode",
			env:     map[string]string{"COMPLETION_MODE": "carrier-pigeon"},
			wantErr: true,
		},
		{
			name:    "zero timeout",
			env:     map[string]string{"COMPLETION_TIMEOUT": "0s"},
			wantErr: true,
		},
		{
			name:    "malformed duration",
			env:     map[string]string{"SESSION_TTL": "soon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := loadConfig()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

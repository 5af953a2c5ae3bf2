package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    time.Duration
		wantErr bool
	}{
		{name: "duration string", payload: `"12h"`, want: 12 * time.Hour},
		{name: "seconds string", payload: `"30s"`, want: 30 * time.Second},
		{name: "nanosecond number", payload: `60000000000`, want: time.Minute},
		{name: "bad string", payload: `"soon"`, wantErr: true},
		{name: "bool", payload: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalJSON([]byte(tt.payload))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

func TestParseJSON_FullConfig(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"app": map[string]any{
			"token_sign_key": "file-key",
			"token_issuer":   "notelock-file",
			"token_duration": "24h",
			"bcrypt_cost":    12,
			"version":        "1.2.3",
		},
		"storage": map[string]any{
			"db":    map[string]any{"dsn": "postgres://file-host/notelock"},
			"files": map[string]any{"images_dir": "/data/images"},
		},
		"server": map[string]any{
			"http_address":    ":8081",
			"request_timeout": "30s",
		},
		"workers": map[string]any{
			"session_cleanup_interval": "5m",
		},
	})

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.App.TokenSignKey)
	assert.Equal(t, "notelock-file", cfg.App.TokenIssuer)
	assert.Equal(t, 24*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, 12, cfg.App.BcryptCost)
	assert.Equal(t, "1.2.3", cfg.App.Version)
	assert.Equal(t, "postgres://file-host/notelock", cfg.Storage.DB.DSN)
	assert.Equal(t, "/data/images", cfg.Storage.Files.ImagesDir)
	assert.Equal(t, ":8081", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Workers.SessionCleanupInterval)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON("/nonexistent/config.json")
	assert.Error(t, err)
}

func TestParseJSON_MalformedFile(t *testing.T) {
	f := writeTempJSONConfig(t, "not an object")

	_, err := parseJSON(f)
	assert.Error(t, err)
}

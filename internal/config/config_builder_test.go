package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// validConfig returns a StructuredConfig that passes validation.
func validConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenSignKey:  "sign-key",
			TokenIssuer:   "notelock",
			TokenDuration: 12 * time.Hour,
		},
		Storage: Storage{
			DB:    DB{DSN: "postgres://localhost:5432/notelock"},
			Files: Files{ImagesDir: "/var/lib/notelock/images"},
		},
		Server: Server{HTTPAddress: ":8080"},
	}
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilderFailsValidation verifies that building with no
// sources yields a validation error rather than a silently unusable config.
func TestBuild_EmptyBuilderFailsValidation(t *testing.T) {
	_, err := newConfigBuilder().build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_MergesMultipleConfigs verifies that fields from multiple configs
// are merged into a single result.
func TestBuild_MergesMultipleConfigs(t *testing.T) {
	first := validConfig()
	first.App.Version = ""

	b := newConfigBuilder()
	b.configs = append(b.configs,
		first,
		&StructuredConfig{App: App{Version: "1.0.0"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "notelock", cfg.App.TokenIssuer)
}

// TestBuild_EarlierSourceWins verifies the merge precedence: a field already
// set by an earlier source is not overridden by a later one.
func TestBuild_EarlierSourceWins(t *testing.T) {
	first := validConfig()
	first.App.Version = "from-env"

	second := validConfig()
	second.App.Version = "from-json"
	second.Server.HTTPAddress = ":9090"

	b := newConfigBuilder()
	b.configs = append(b.configs, first, second)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.App.Version)
	assert.Equal(t, ":8080", cfg.Server.HTTPAddress)
}

// ── validation ────────────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*StructuredConfig) {}},
		{
			name:    "missing DSN",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "missing sign key",
			mutate:  func(cfg *StructuredConfig) { cfg.App.TokenSignKey = "" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "missing issuer",
			mutate:  func(cfg *StructuredConfig) { cfg.App.TokenIssuer = "" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "zero token duration",
			mutate:  func(cfg *StructuredConfig) { cfg.App.TokenDuration = 0 },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "missing listen address",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" },
			wantErr: ErrInvalidServerConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── env ───────────────────────────────────────────────────────────────────────

func TestParseEnv_MapsPrefixedVariables(t *testing.T) {
	t.Setenv("APP_TOKEN_ISSUER", "notelock-env")
	t.Setenv("APP_TOKEN_DURATION", "45m")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://env-host/notelock")
	t.Setenv("STORAGE_FILES_IMAGES_DIR", "/srv/images")
	t.Setenv("SERVER_ADDRESS", ":7070")
	t.Setenv("WORKERS_SESSION_CLEANUP_INTERVAL", "90s")

	var cfg StructuredConfig
	require.NoError(t, parseEnv(&cfg))

	assert.Equal(t, "notelock-env", cfg.App.TokenIssuer)
	assert.Equal(t, 45*time.Minute, cfg.App.TokenDuration)
	assert.Equal(t, "postgres://env-host/notelock", cfg.Storage.DB.DSN)
	assert.Equal(t, "/srv/images", cfg.Storage.Files.ImagesDir)
	assert.Equal(t, ":7070", cfg.Server.HTTPAddress)
	assert.Equal(t, 90*time.Second, cfg.Workers.SessionCleanupInterval)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("APP_TOKEN_DURATION", "soon")

	var cfg StructuredConfig
	assert.Error(t, parseEnv(&cfg))
}

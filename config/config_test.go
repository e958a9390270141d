package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DATABASE_URL", "DB_DEBUG", "DB_MAX_OPEN_CONNS", "HTTP_ADDRESS", "PORT",
		"ALLOWED_ORIGINS", "SHUTDOWN_TIMEOUT", "JWT_SECRET", "JWT_ISSUER",
		"JWT_DEFAULT_TTL", "ENV", "LOG_LEVEL", "OTLP_ENDPOINT", "OTLP_INSECURE",
		"TRACE_SAMPLE_RATE",
	} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_FromFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
postgres:
  dsn: postgres://file/db
  debug: true
http:
  address: ":8080"
  allowed_origins:
    - https://dash.example.com
jwt:
  secret: file-secret
  issuer: hackathon
observability:
  environment: production
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://file/db", cfg.Postgres.DSN)
	assert.True(t, cfg.Postgres.Debug)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, []string{"https://dash.example.com"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, "hackathon", cfg.JWT.Issuer)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, defaultMaxOpenConns, cfg.Postgres.MaxOpenConns)
	assert.Equal(t, "info", cfg.Observability.LogLevel)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "postgres:\n  dsn: postgres://file/db\njwt:\n  secret: file-secret\n")
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("PORT", "4000")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("JWT_DEFAULT_TTL", "2h")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://env/db", cfg.Postgres.DSN)
	assert.Equal(t, ":4000", cfg.HTTP.Address)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, 25, cfg.Postgres.MaxOpenConns)
	assert.Equal(t, 2*time.Hour, cfg.JWT.DefaultTTL)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
}

func TestLoadConfig_EnvOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("HTTP_ADDRESS", "127.0.0.1:9000")
	t.Setenv("PORT", "4000")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.HTTP.Address)
	assert.Equal(t, defaultShutdownTimeout, cfg.HTTP.ShutdownTimeout)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing dsn",
			env:     map[string]string{"JWT_SECRET": "x"},
			wantErr: "DATABASE_URL",
		},
		{
			name:    "missing secret",
			env:     map[string]string{"DATABASE_URL": "postgres://x"},
			wantErr: "JWT_SECRET",
		},
		{
			name:    "bad pool size",
			env:     map[string]string{"DATABASE_URL": "postgres://x", "JWT_SECRET": "x", "DB_MAX_OPEN_CONNS": "lots"},
			wantErr: "DB_MAX_OPEN_CONNS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "postgres: [not, a, map")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal config")
}

func TestLoadConfig_Tracing(t *testing.T) {
	t.Run("defaults keep every trace", func(t *testing.T) {
		clearEnv(t)
		path := writeConfig(t, "postgres:\n  dsn: postgres://file/db\njwt:\n  secret: s\n")
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Empty(t, cfg.Observability.OTLPEndpoint)
		assert.Equal(t, 1.0, cfg.Observability.SampleRate)
	})

	t.Run("file values", func(t *testing.T) {
		clearEnv(t)
		path := writeConfig(t, `
postgres:
  dsn: postgres://file/db
jwt:
  secret: s
observability:
  otlp_endpoint: collector:4317
  otlp_insecure: true
  sample_rate: 0.2
`)
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "collector:4317", cfg.Observability.OTLPEndpoint)
		assert.True(t, cfg.Observability.OTLPInsecure)
		assert.Equal(t, 0.2, cfg.Observability.SampleRate)
	})

	t.Run("env overrides", func(t *testing.T) {
		clearEnv(t)
		path := writeConfig(t, "postgres:\n  dsn: postgres://file/db\njwt:\n  secret: s\n")
		t.Setenv("OTLP_ENDPOINT", "otel:4317")
		t.Setenv("OTLP_INSECURE", "true")
		t.Setenv("TRACE_SAMPLE_RATE", "0.5")
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "otel:4317", cfg.Observability.OTLPEndpoint)
		assert.True(t, cfg.Observability.OTLPInsecure)
		assert.Equal(t, 0.5, cfg.Observability.SampleRate)
	})

	t.Run("invalid sample rate", func(t *testing.T) {
		clearEnv(t)
		path := writeConfig(t, "postgres:\n  dsn: postgres://file/db\njwt:\n  secret: s\n")
		t.Setenv("TRACE_SAMPLE_RATE", "lots")
		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "TRACE_SAMPLE_RATE")

		t.Setenv("TRACE_SAMPLE_RATE", "1.5")
		_, err = LoadConfig(path)
		assert.ErrorContains(t, err, "sample_rate")
	})
}

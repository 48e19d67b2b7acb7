package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milestonemotors/motors/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalConfig = `
database:
  host: localhost
  name: motors
  user: motors
auth:
  jwt_secret: test-secret
`

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 10, cfg.Database.PoolSize)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, "motors_session", cfg.Auth.CookieName)
	assert.InEpsilon(t, 1.0, cfg.Auth.LoginRate.PerSecond, 0.001)
	assert.Equal(t, 5, cfg.Auth.LoginRate.Burst)
	assert.Equal(t, time.Minute, cfg.Jobs.MetricsRefreshInterval)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("MOTORS_TEST_DB_PASSWORD", "s3cret")

	cfg, err := config.Load(writeConfig(t, `
database:
  host: localhost
  name: motors
  user: motors
  password: ${MOTORS_TEST_DB_PASSWORD}
auth:
  jwt_secret: test-secret
`))
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Database.Password)
}

func TestLoad_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing database host",
			content: "auth:\n  jwt_secret: x\n",
			wantErr: "database.host is required",
		},
		{
			name:    "missing jwt secret",
			content: "database:\n  host: h\n  name: n\n  user: u\n",
			wantErr: "auth.jwt_secret is required",
		},
		{
			name: "storage endpoint without credentials",
			content: minimalConfig + `
storage:
  endpoint: minio:9000
`,
			wantErr: "storage.access_key is required",
		},
		{
			name: "tracing enabled without endpoint",
			content: minimalConfig + `
tracing:
  enabled: true
`,
			wantErr: "tracing.endpoint is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestDatabaseDSN(t *testing.T) {
	t.Parallel()

	d := config.DatabaseConfig{
		Host: "db", Port: 5433, Name: "motors", User: "app",
		Password: "pw", SSLMode: "require",
	}
	assert.Equal(t,
		"host=db port=5433 dbname=motors user=app password=pw sslmode=require",
		d.DSN(),
	)
}

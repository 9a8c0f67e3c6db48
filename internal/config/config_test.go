package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const minimalConfig = `
[server]
http_port = 9090

[database]
dbname = "thera"
password = "from-file"

[booking]
timezone = "Europe/Moscow"
`

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "notifications", cfg.Notifications.Queue)
	assert.Equal(t, 24*time.Hour, cfg.Notifications.ReminderBeforeDuration())

	loc, err := cfg.Booking.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(envDBPassword, "from-env")
	t.Setenv(envDBHost, "db.internal")
	t.Setenv(envRedisAddr, "redis.internal:6379")
	t.Setenv(envSendGridAPIKey, "SG.key")

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Addr)
	assert.Equal(t, "SG.key", cfg.SendGrid.APIKey)
	assert.Contains(t, cfg.Database.DSN(), "host=db.internal")
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{
			name:    "missing port",
			body:    "[database]\ndbname = \"thera\"\n",
			wantErr: ErrMissingPort,
		},
		{
			name:    "missing db name",
			body:    "[server]\nhttp_port = 8080\n",
			wantErr: ErrMissingDBName,
		},
		{
			name:    "bad log level",
			body:    "[server]\nhttp_port = 8080\n[database]\ndbname = \"thera\"\n[logs]\nlevel = \"loud\"\n",
			wantErr: ErrInvalidLogLevel,
		},
		{
			name:    "bad timezone",
			body:    "[server]\nhttp_port = 8080\n[database]\ndbname = \"thera\"\n[booking]\ntimezone = \"Mars/Olympus\"\n",
			wantErr: ErrInvalidTimezone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

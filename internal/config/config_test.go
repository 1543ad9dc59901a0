package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
dbname = "property_manager"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 60, cfg.Redis.CalendarTTL)
	assert.Equal(t, "pms.events", cfg.AMQP.Exchange)
	assert.Equal(t, 3, cfg.Avito.MaxRetries)
	assert.Equal(t, "semicolon", cfg.Exports.DefaultDelimiter)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_ExplicitValues(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db.internal"
port = 5433
user = "app"
password = "secret"
dbname = "pms"
sslmode = "require"

[redis]
enabled = true
address = "redis:6379"

[metrics]
enabled = true
service_name = "pms-test"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.True(t, cfg.Redis.Enabled)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "pms-test", cfg.Metrics.ServiceName)
	assert.Equal(t,
		"host=db.internal port=5433 user=app password=secret dbname=pms sslmode=require",
		cfg.Database.DSN())
}

func TestLoad_Validation(t *testing.T) {
	_, err := Load(writeConfig(t, `
[database]
dbname = "pms"
`))
	require.Error(t, err)

	_, err = Load(writeConfig(t, `
[database]
host = "localhost"
dbname = "pms"

[redis]
enabled = true
`))
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

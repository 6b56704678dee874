package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.Helpdesk.BaseURL)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "ticket-reports", cfg.Kafka.ReportsTopic)
	assert.Equal(t, "ticket-diagnostics", cfg.Kafka.DiagnosticsTopic)
	assert.Equal(t, 30*time.Second, cfg.Pipeline.PollInterval)
	assert.Equal(t, 200, cfg.Pipeline.BatchSize)
	assert.Equal(t, []string{"ticket_id", "category", "priority", "resolution_minutes"}, cfg.Pipeline.RequiredKeys)
	assert.Empty(t, cfg.Postgres.ConnString)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	yaml := `
helpdesk:
  base_url: https://desk.example.com/api
kafka:
  brokers: ["k1:9092", "k2:9092"]
  reports_topic: summaries
pipeline:
  poll_interval: 5s
  batch_size: 25
  required_keys: ["ticket_id"]
postgres:
  conn_string: postgres://localhost:5432/tickets
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://desk.example.com/api", cfg.Helpdesk.BaseURL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "summaries", cfg.Kafka.ReportsTopic)
	// Unset fields keep their defaults.
	assert.Equal(t, "ticket-diagnostics", cfg.Kafka.DiagnosticsTopic)
	assert.Equal(t, 5*time.Second, cfg.Pipeline.PollInterval)
	assert.Equal(t, 25, cfg.Pipeline.BatchSize)
	assert.Equal(t, []string{"ticket_id"}, cfg.Pipeline.RequiredKeys)
	assert.Equal(t, "postgres://localhost:5432/tickets", cfg.Postgres.ConnString)
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	yaml := "helpdesk:\n  base_url: https://from-yaml.example.com\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	chdir(t, dir)

	t.Setenv("HELPDESK_BASE_URL", "https://from-env.example.com")
	t.Setenv("HELPDESK_USERNAME", "ops")
	t.Setenv("HELPDESK_PASSWORD", "secret")
	t.Setenv("KAFKA_BROKERS", "a:9092,b:9092")
	t.Setenv("POSTGRES_CONN_STRING", "postgres://db:5432/tickets")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://from-env.example.com", cfg.Helpdesk.BaseURL)
	assert.Equal(t, "ops", cfg.Helpdesk.Username)
	assert.Equal(t, "secret", cfg.Helpdesk.Password)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "postgres://db:5432/tickets", cfg.Postgres.ConnString)
}

func TestLoadBadYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{not yaml"), 0o644))
	chdir(t, dir)

	_, err := Load()
	assert.Error(t, err)
}

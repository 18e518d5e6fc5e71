package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.ServerConfig.Address)
	assert.Equal(t, time.Minute, cfg.ReminderConfig.Interval)
	assert.True(t, cfg.ReminderConfig.Enabled)
	assert.Equal(t, 24*time.Hour, cfg.AuthConfig.TokenTTL)
	assert.False(t, cfg.KafkaConfig.Enabled)
	assert.False(t, cfg.SMTPConfigured())
}

func TestLoadConfig_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("REMINDER_INTERVAL", "30s")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("SMTP_USER", "mailer")
	t.Setenv("SMTP_PASSWORD", "pass")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.ReminderConfig.Interval)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaConfig.Brokers)
	assert.True(t, cfg.SMTPConfigured())
}

func TestLoadConfig_S3RequiresBucket(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("S3_ENABLED", "true")
	t.Setenv("S3_BUCKET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "db",
		Port:     "5432",
		User:     "notes",
		Password: "pass",
		DBName:   "smartnotes",
		SSLMode:  "disable",
	}

	assert.Equal(t, "postgres://notes:pass@db:5432/smartnotes?sslmode=disable", cfg.DSN())
}

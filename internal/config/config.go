package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerConfig   ServerConfig
	PostgresConfig PostgresConfig
	AuthConfig     AuthConfig
	SMTPConfig     SMTPConfig
	ReminderConfig ReminderConfig
	KafkaConfig    KafkaConfig
	S3Config       S3Config
	UploadConfig   UploadConfig
	TracingConfig  TracingConfig
	MetricsConfig  MetricsConfig
}

type ServerConfig struct {
	Address string
	BaseURL string
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	UseTLS   bool
	UseSSL   bool
}

type ReminderConfig struct {
	Enabled  bool
	Interval time.Duration
}

type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

type S3Config struct {
	Enabled   bool
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

type UploadConfig struct {
	Dir string
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

type MetricsConfig struct {
	Address string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using environment variables")
	}

	config := &Config{
		ServerConfig: ServerConfig{
			Address: getEnv("SERVER_ADDRESS", ":8000"),
			BaseURL: getEnv("SERVER_BASE_URL", "http://localhost:8000"),
		},
		PostgresConfig: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     getEnv("POSTGRES_USER", "user"),
			Password: getEnv("POSTGRES_PASSWORD", "password"),
			DBName:   getEnv("POSTGRES_DB", "smartnotes"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		AuthConfig: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET_KEY", ""),
			TokenTTL:  getEnvDuration("ACCESS_TOKEN_TTL", 24*time.Hour),
		},
		SMTPConfig: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", 587),
			User:     getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", ""),
			UseTLS:   getEnvBool("SMTP_USE_TLS", true),
			UseSSL:   getEnvBool("SMTP_USE_SSL", false),
		},
		ReminderConfig: ReminderConfig{
			Enabled:  getEnvBool("REMINDER_ENABLED", true),
			Interval: getEnvDuration("REMINDER_INTERVAL", time.Minute),
		},
		KafkaConfig: KafkaConfig{
			Enabled: getEnvBool("KAFKA_ENABLED", false),
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:   getEnv("KAFKA_TOPIC", "reminder-events"),
		},
		S3Config: S3Config{
			Enabled:   getEnvBool("S3_ENABLED", false),
			Region:    getEnv("AWS_REGION", "us-east-1"),
			Bucket:    getEnv("S3_BUCKET", ""),
			AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		},
		UploadConfig: UploadConfig{
			Dir: getEnv("UPLOADS_DIR", "uploads"),
		},
		TracingConfig: TracingConfig{
			Enabled:  getEnvBool("TRACING_ENABLED", false),
			Endpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		},
		MetricsConfig: MetricsConfig{
			Address: getEnv("METRICS_ADDRESS", ":9090"),
		},
	}

	if config.AuthConfig.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY is required")
	}

	if config.S3Config.Enabled && config.S3Config.Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required when S3_ENABLED is set")
	}

	return config, nil
}

// SMTPConfigured reports whether the mail transport has enough settings
// to attempt delivery at all.
func (c *Config) SMTPConfigured() bool {
	s := c.SMTPConfig
	return s.Host != "" && s.Port != 0 && s.User != "" && s.Password != ""
}

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("invalid value for %s: %q, using default", key, value)
		return defaultValue
	}
	return parsed
}

func getEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("invalid value for %s: %q, using default", key, value)
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("invalid value for %s: %q, using default", key, value)
		return defaultValue
	}
	return parsed
}

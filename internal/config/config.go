package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Scheduler SchedulerConfig
	Email     EmailConfig
	SMS       SMSConfig
	Log       LogConfig
	CORS      CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// SchedulerConfig holds the periodic job trigger settings.
type SchedulerConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	IntervalMins      int  `mapstructure:"interval_mins"`
	AgencyConcurrency int  `mapstructure:"agency_concurrency"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// SMSConfig holds SMS delivery settings.
type SMSConfig struct {
	Provider    string `mapstructure:"provider"`
	GatewayURL  string `mapstructure:"gateway_url"`
	APIKey      string `mapstructure:"api_key"`
	SenderID    string `mapstructure:"sender_id"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the ENROLPAY_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ENROLPAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "enrolpay")
	v.SetDefault("db.password", "enrolpay_secret")
	v.SetDefault("db.name", "enrolpay_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Scheduler defaults
	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.interval_mins", 60)
	v.SetDefault("scheduler.agency_concurrency", 4)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-southeast-2")
	v.SetDefault("email.from_address", "noreply@enrolpay.com")
	v.SetDefault("email.from_name", "EnrolPay")

	// SMS defaults
	v.SetDefault("sms.provider", "noop")
	v.SetDefault("sms.gateway_url", "")
	v.SetDefault("sms.api_key", "")
	v.SetDefault("sms.sender_id", "EnrolPay")
	v.SetDefault("sms.timeout_secs", 10)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                  "ENROLPAY_SERVER_PORT",
		"server.read_timeout":          "ENROLPAY_SERVER_READ_TIMEOUT",
		"server.write_timeout":         "ENROLPAY_SERVER_WRITE_TIMEOUT",
		"server.environment":           "ENROLPAY_SERVER_ENVIRONMENT",
		"db.host":                      "ENROLPAY_DB_HOST",
		"db.port":                      "ENROLPAY_DB_PORT",
		"db.user":                      "ENROLPAY_DB_USER",
		"db.password":                  "ENROLPAY_DB_PASSWORD",
		"db.name":                      "ENROLPAY_DB_NAME",
		"db.sslmode":                   "ENROLPAY_DB_SSLMODE",
		"db.max_open":                  "ENROLPAY_DB_MAX_OPEN",
		"db.max_idle":                  "ENROLPAY_DB_MAX_IDLE",
		"scheduler.enabled":            "ENROLPAY_SCHEDULER_ENABLED",
		"scheduler.interval_mins":      "ENROLPAY_SCHEDULER_INTERVAL_MINS",
		"scheduler.agency_concurrency": "ENROLPAY_SCHEDULER_AGENCY_CONCURRENCY",
		"email.provider":               "ENROLPAY_EMAIL_PROVIDER",
		"email.region":                 "ENROLPAY_EMAIL_REGION",
		"email.from_address":           "ENROLPAY_EMAIL_FROM_ADDRESS",
		"email.from_name":              "ENROLPAY_EMAIL_FROM_NAME",
		"sms.provider":                 "ENROLPAY_SMS_PROVIDER",
		"sms.gateway_url":              "ENROLPAY_SMS_GATEWAY_URL",
		"sms.api_key":                  "ENROLPAY_SMS_API_KEY",
		"sms.sender_id":                "ENROLPAY_SMS_SENDER_ID",
		"sms.timeout_secs":             "ENROLPAY_SMS_TIMEOUT_SECS",
		"log.level":                    "ENROLPAY_LOG_LEVEL",
		"log.format":                   "ENROLPAY_LOG_FORMAT",
		"cors.allowed_origins":         "ENROLPAY_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if ENROLPAY_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("ENROLPAY_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Scheduler = SchedulerConfig{
		Enabled:           v.GetBool("scheduler.enabled"),
		IntervalMins:      v.GetInt("scheduler.interval_mins"),
		AgencyConcurrency: v.GetInt("scheduler.agency_concurrency"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.SMS = SMSConfig{
		Provider:    v.GetString("sms.provider"),
		GatewayURL:  v.GetString("sms.gateway_url"),
		APIKey:      v.GetString("sms.api_key"),
		SenderID:    v.GetString("sms.sender_id"),
		TimeoutSecs: v.GetInt("sms.timeout_secs"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: strings.Split(v.GetString("cors.allowed_origins"), ","),
	}

	return cfg, nil
}

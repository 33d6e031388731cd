package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Logger   LoggerConfig   `yaml:"logger"`
	Database DatabaseConfig `yaml:"database"`
	Payments PaymentsConfig `yaml:"payments"`
	MPesa    MPesaConfig    `yaml:"mpesa"`
	Checkout CheckoutConfig `yaml:"checkout"`
	Sandbox  SandboxConfig  `yaml:"sandbox"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string        `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Driver          string        `yaml:"driver"` // postgres, sqlite
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	DBName          string        `yaml:"name"`
	SSLMode         string        `yaml:"sslmode"`
	Path            string        `yaml:"path"` // sqlite only
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
}

// PaymentsConfig holds payment orchestration settings shared by all providers
type PaymentsConfig struct {
	CallbackBaseURL string        `yaml:"callback_base_url"`
	SuccessURL      string        `yaml:"success_url"`
	CancelURL       string        `yaml:"cancel_url"`
	ExpiryWindow    time.Duration `yaml:"expiry_window"`
	SweepInterval   time.Duration `yaml:"sweep_interval"`
	GatewayTimeout  time.Duration `yaml:"gateway_timeout"`
	SweepBatchSize  int           `yaml:"sweep_batch_size"`
}

// MPesaConfig holds Daraja STK push credentials
type MPesaConfig struct {
	BaseURL         string `yaml:"base_url"`
	ConsumerKey     string `yaml:"consumer_key"`
	ConsumerSecret  string `yaml:"consumer_secret"`
	ShortCode       string `yaml:"short_code"`
	PassKey         string `yaml:"pass_key"`
	TransactionType string `yaml:"transaction_type"`
	CallbackToken   string `yaml:"callback_token"`
	Enabled         bool   `yaml:"enabled"`
}

// CheckoutConfig holds hosted checkout-session credentials
type CheckoutConfig struct {
	BaseURL            string        `yaml:"base_url"`
	SecretKey          string        `yaml:"secret_key"`
	WebhookSecret      string        `yaml:"webhook_secret"`
	SignatureTolerance time.Duration `yaml:"signature_tolerance"`
	Enabled            bool          `yaml:"enabled"`
}

// SandboxConfig controls the local sandbox gateway
type SandboxConfig struct {
	FailureRate  float64 `yaml:"failure_rate"`
	MinLatencyMS int     `yaml:"min_latency_ms"`
	MaxLatencyMS int     `yaml:"max_latency_ms"`
	Enabled      bool    `yaml:"enabled"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// Defaults returns the configuration used when nothing else is supplied
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:          "postgres",
			Host:            "localhost",
			Port:            "5432",
			User:            "postgres",
			Password:        "postgres",
			DBName:          "payments",
			SSLMode:         "disable",
			Path:            "payments.db",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Payments: PaymentsConfig{
			CallbackBaseURL: "http://localhost:8080",
			SuccessURL:      "http://localhost:3000/checkout/success",
			CancelURL:       "http://localhost:3000/checkout/cancel",
			ExpiryWindow:    15 * time.Minute,
			SweepInterval:   time.Minute,
			GatewayTimeout:  30 * time.Second,
			SweepBatchSize:  100,
		},
		MPesa: MPesaConfig{
			BaseURL:         "https://sandbox.safaricom.co.ke",
			TransactionType: "CustomerPayBillOnline",
		},
		Checkout: CheckoutConfig{
			BaseURL:            "https://api.stripe.com",
			SignatureTolerance: 5 * time.Minute,
		},
		Sandbox: SandboxConfig{
			Enabled:      true,
			FailureRate:  0,
			MinLatencyMS: 0,
			MaxLatencyMS: 0,
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and environment variables, in that order of precedence.
func Load() (*Config, error) {
	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.ReadTimeout = getEnvAsDuration("SERVER_READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = getEnvAsDuration("SERVER_WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.IdleTimeout = getEnvAsDuration("SERVER_IDLE_TIMEOUT", c.Server.IdleTimeout)
	c.Server.ShutdownTimeout = getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)

	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnv("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.DBName = getEnv("DB_NAME", c.Database.DBName)
	c.Database.SSLMode = getEnv("DB_SSLMODE", c.Database.SSLMode)
	c.Database.Path = getEnv("DB_PATH", c.Database.Path)
	c.Database.MaxOpenConns = getEnvAsInt("DB_MAX_OPEN_CONNS", c.Database.MaxOpenConns)
	c.Database.MaxIdleConns = getEnvAsInt("DB_MAX_IDLE_CONNS", c.Database.MaxIdleConns)
	c.Database.ConnMaxLifetime = getEnvAsDuration("DB_CONN_MAX_LIFETIME", c.Database.ConnMaxLifetime)

	c.Payments.CallbackBaseURL = getEnv("PAYMENT_CALLBACK_BASE_URL", c.Payments.CallbackBaseURL)
	c.Payments.SuccessURL = getEnv("PAYMENT_SUCCESS_URL", c.Payments.SuccessURL)
	c.Payments.CancelURL = getEnv("PAYMENT_CANCEL_URL", c.Payments.CancelURL)
	c.Payments.ExpiryWindow = getEnvAsDuration("PAYMENT_EXPIRY_WINDOW", c.Payments.ExpiryWindow)
	c.Payments.SweepInterval = getEnvAsDuration("PAYMENT_SWEEP_INTERVAL", c.Payments.SweepInterval)
	c.Payments.GatewayTimeout = getEnvAsDuration("PAYMENT_GATEWAY_TIMEOUT", c.Payments.GatewayTimeout)
	c.Payments.SweepBatchSize = getEnvAsInt("PAYMENT_SWEEP_BATCH_SIZE", c.Payments.SweepBatchSize)

	c.MPesa.Enabled = getEnvAsBool("MPESA_ENABLED", c.MPesa.Enabled)
	c.MPesa.BaseURL = getEnv("MPESA_BASE_URL", c.MPesa.BaseURL)
	c.MPesa.ConsumerKey = getEnv("MPESA_CONSUMER_KEY", c.MPesa.ConsumerKey)
	c.MPesa.ConsumerSecret = getEnv("MPESA_CONSUMER_SECRET", c.MPesa.ConsumerSecret)
	c.MPesa.ShortCode = getEnv("MPESA_SHORT_CODE", c.MPesa.ShortCode)
	c.MPesa.PassKey = getEnv("MPESA_PASS_KEY", c.MPesa.PassKey)
	c.MPesa.TransactionType = getEnv("MPESA_TRANSACTION_TYPE", c.MPesa.TransactionType)
	c.MPesa.CallbackToken = getEnv("MPESA_CALLBACK_TOKEN", c.MPesa.CallbackToken)

	c.Checkout.Enabled = getEnvAsBool("CHECKOUT_ENABLED", c.Checkout.Enabled)
	c.Checkout.BaseURL = getEnv("CHECKOUT_BASE_URL", c.Checkout.BaseURL)
	c.Checkout.SecretKey = getEnv("CHECKOUT_SECRET_KEY", c.Checkout.SecretKey)
	c.Checkout.WebhookSecret = getEnv("CHECKOUT_WEBHOOK_SECRET", c.Checkout.WebhookSecret)
	c.Checkout.SignatureTolerance = getEnvAsDuration("CHECKOUT_SIGNATURE_TOLERANCE", c.Checkout.SignatureTolerance)

	c.Sandbox.Enabled = getEnvAsBool("SANDBOX_ENABLED", c.Sandbox.Enabled)
	c.Sandbox.FailureRate = getEnvAsFloat("SANDBOX_FAILURE_RATE", c.Sandbox.FailureRate)
	c.Sandbox.MinLatencyMS = getEnvAsInt("SANDBOX_MIN_LATENCY_MS", c.Sandbox.MinLatencyMS)
	c.Sandbox.MaxLatencyMS = getEnvAsInt("SANDBOX_MAX_LATENCY_MS", c.Sandbox.MaxLatencyMS)

	c.Logger.Level = getEnv("LOG_LEVEL", c.Logger.Level)
	c.Logger.Format = getEnv("LOG_FORMAT", c.Logger.Format)
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}

	switch c.Database.Driver {
	case "postgres":
		if c.Database.Host == "" {
			return fmt.Errorf("database host cannot be empty")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("database name cannot be empty")
		}
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("sqlite path cannot be empty")
		}
	default:
		return fmt.Errorf("invalid database driver: %s (must be postgres or sqlite)", c.Database.Driver)
	}

	if c.Payments.ExpiryWindow <= 0 {
		return fmt.Errorf("payment expiry window must be positive")
	}
	if c.Payments.SweepInterval <= 0 {
		return fmt.Errorf("payment sweep interval must be positive")
	}
	if c.Payments.GatewayTimeout <= 0 {
		return fmt.Errorf("gateway timeout must be positive")
	}
	if c.Payments.SweepBatchSize <= 0 {
		return fmt.Errorf("sweep batch size must be positive, got %d", c.Payments.SweepBatchSize)
	}
	if _, err := url.ParseRequestURI(c.Payments.CallbackBaseURL); err != nil {
		return fmt.Errorf("invalid callback base url: %w", err)
	}

	if c.MPesa.Enabled {
		if c.MPesa.ConsumerKey == "" || c.MPesa.ConsumerSecret == "" {
			return fmt.Errorf("mpesa consumer key and secret are required")
		}
		if c.MPesa.ShortCode == "" || c.MPesa.PassKey == "" {
			return fmt.Errorf("mpesa short code and pass key are required")
		}
	}

	if c.Checkout.Enabled {
		if c.Checkout.SecretKey == "" {
			return fmt.Errorf("checkout secret key is required")
		}
		if c.Checkout.WebhookSecret == "" {
			return fmt.Errorf("checkout webhook secret is required")
		}
	}

	if c.Sandbox.FailureRate < 0 || c.Sandbox.FailureRate > 1 {
		return fmt.Errorf("failure rate must be between 0 and 1, got %f", c.Sandbox.FailureRate)
	}
	if c.Sandbox.MinLatencyMS < 0 {
		return fmt.Errorf("min latency cannot be negative")
	}
	if c.Sandbox.MaxLatencyMS < c.Sandbox.MinLatencyMS {
		return fmt.Errorf("max latency (%d) must be >= min latency (%d)", c.Sandbox.MaxLatencyMS, c.Sandbox.MinLatencyMS)
	}

	if !c.MPesa.Enabled && !c.Checkout.Enabled && !c.Sandbox.Enabled {
		return fmt.Errorf("at least one payment provider must be enabled")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}
	if c.Logger.Format != "json" && c.Logger.Format != "text" {
		return fmt.Errorf("invalid log format: %s (must be json or text)", c.Logger.Format)
	}

	return nil
}

// DSN returns the driver-specific connection string
func (c *DatabaseConfig) DSN() string {
	if c.Driver == "sqlite" {
		return c.Path
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return duration
}

package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App           AppConfig
	HTTP          ServerConfig
	MySQL         MySQLConfig
	Log           LogConfig
	Gateway       GatewayConfig
	Orders        OrdersConfig
	Notifications NotificationsConfig
}

type AppConfig struct {
	ServiceName string
}

type ServerConfig struct {
	Host string
	Port string
}

type MySQLConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level string
}

// GatewayConfig carries the Razorpay credentials. KeyID is public and is
// returned to clients so they can open the checkout; KeySecret never leaves
// the process and is shared by the API client and the callback verifier.
type GatewayConfig struct {
	KeyID          string
	KeySecret      string
	BaseURL        string
	Currency       string
	PaymentCapture bool
	HTTPTimeout    time.Duration
}

type OrdersConfig struct {
	SettlementMethod string
}

type NotificationsConfig struct {
	URL         string
	HTTPTimeout time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		return nil, errors.New("MYSQL_DSN environment variable is required")
	}

	return &Config{
		App: AppConfig{
			ServiceName: getEnv("APP_SERVICE_NAME", "orders-service"),
		},
		HTTP: ServerConfig{
			Host: getEnv("HTTP_HOST", "0.0.0.0"),
			Port: getEnv("HTTP_PORT", "8080"),
		},
		MySQL: MySQLConfig{
			DSN:             mysqlDSN,
			MaxOpenConns:    getIntEnv("MYSQL_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getIntEnv("MYSQL_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getMinutesEnv("MYSQL_CONN_MAX_LIFETIME_MINUTES", 30*time.Minute),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Gateway: GatewayConfig{
			KeyID:          getEnv("RAZORPAY_KEY_ID", ""),
			KeySecret:      getEnv("RAZORPAY_KEY_SECRET", ""),
			BaseURL:        getEnv("RAZORPAY_BASE_URL", "https://api.razorpay.com"),
			Currency:       getEnv("ORDERS_CURRENCY", "INR"),
			PaymentCapture: getBoolEnv("RAZORPAY_PAYMENT_CAPTURE", true),
			HTTPTimeout:    getSecondsEnv("RAZORPAY_HTTP_TIMEOUT_SECONDS", 10*time.Second),
		},
		Orders: OrdersConfig{
			SettlementMethod: getEnv("ORDERS_SETTLEMENT_METHOD", "RAZORPAY"),
		},
		Notifications: NotificationsConfig{
			URL:         getEnv("NOTIFICATIONS_URL", ""),
			HTTPTimeout: getSecondsEnv("NOTIFICATIONS_HTTP_TIMEOUT_SECONDS", 5*time.Second),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getMinutesEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}

func getSecondsEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}

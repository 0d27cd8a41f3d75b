package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"pos/internal/core/domain/model/catalog"
	"pos/internal/core/domain/model/kernel"
)

// Store drivers accepted in STORE_DRIVER.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"
	StoreDriverMemory   = "memory"
)

// Defaults applied by ConfigFromEnv when a variable is unset.
const (
	DefaultHTTPPort      = "8080"
	DefaultTaxRate       = "0"
	DefaultPrinterWidth  = 42
	DefaultRateLimit     = 20
	DefaultPublicBaseURL = "http://localhost:8080"
)

type Config struct {
	HTTPPort string

	StoreDriver string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSslMode   string

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string

	TaxRate            string
	MaxLocations       int
	AllowNegativeStock bool
	LowStockThreshold  int

	PrinterType    string
	PrinterUSBPath string
	PrinterAddress string
	PrinterWidth   int

	RabbitMQURL      string
	RabbitMQExchange string
	KafkaBroker      string
	KafkaOrderTopic  string

	AdminPassword   string
	CashierPassword string
	PublicBaseURL   string
	RateLimit       float64
}

// ConfigFromEnv reads the configuration from the process environment.
// Malformed numbers and booleans are reported together.
func ConfigFromEnv() (Config, error) {
	env := envReader{}
	cfg := Config{
		HTTPPort:           env.text("HTTP_PORT", DefaultHTTPPort),
		StoreDriver:        env.text("STORE_DRIVER", StoreDriverMemory),
		DBHost:             os.Getenv("DB_HOST"),
		DBPort:             env.text("DB_PORT", "5432"),
		DBUser:             os.Getenv("DB_USER"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBName:             os.Getenv("DB_NAME"),
		DBSslMode:          env.text("DB_SSLMODE", "disable"),
		RedisAddr:          env.text("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            env.integer("REDIS_DB", 0),
		RedisKeyPrefix:     env.text("REDIS_KEY_PREFIX", "pos:"),
		TaxRate:            env.text("TAX_RATE", DefaultTaxRate),
		MaxLocations:       env.integer("MAX_LOCATIONS", kernel.DefaultMaxLocationIndex),
		AllowNegativeStock: env.flag("ALLOW_NEGATIVE_STOCK", true),
		LowStockThreshold:  env.integer("LOW_STOCK_THRESHOLD", catalog.DefaultLowStockThreshold),
		PrinterType:        os.Getenv("PRINTER_TYPE"),
		PrinterUSBPath:     os.Getenv("PRINTER_USB_PATH"),
		PrinterAddress:     os.Getenv("PRINTER_ADDRESS"),
		PrinterWidth:       env.integer("PRINTER_WIDTH", DefaultPrinterWidth),
		RabbitMQURL:        os.Getenv("RABBITMQ_URL"),
		RabbitMQExchange:   os.Getenv("RABBITMQ_EXCHANGE"),
		KafkaBroker:        os.Getenv("KAFKA_BROKER"),
		KafkaOrderTopic:    os.Getenv("KAFKA_ORDER_TOPIC"),
		AdminPassword:      os.Getenv("ADMIN_PASSWORD"),
		CashierPassword:    os.Getenv("CASHIER_PASSWORD"),
		PublicBaseURL:      env.text("PUBLIC_BASE_URL", DefaultPublicBaseURL),
		RateLimit:          env.number("RATE_LIMIT", DefaultRateLimit),
	}
	if err := errors.Join(env.errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type envReader struct {
	errs []error
}

func (r *envReader) text(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func (r *envReader) integer(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s must be an integer, got %q", key, raw))
		return fallback
	}
	return v
}

func (r *envReader) number(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s must be a number, got %q", key, raw))
		return fallback
	}
	return v
}

func (r *envReader) flag(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s must be true or false, got %q", key, raw))
		return fallback
	}
	return v
}

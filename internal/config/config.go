package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds the runtime configuration for the service, loaded from the
// environment (optionally seeded from a .env file).
type Config struct {
	HTTPAddr      string
	LogMode       string
	DBConnStr     string // empty means run on the in-memory store
	RedisAddr     string // empty means in-memory sessions
	KafkaBrokers  []string
	EncryptionKey string

	// FraudAmountLimit is the threshold for the default large-amount rule.
	FraudAmountLimit decimal.Decimal
}

// Load reads configuration from the environment. A missing .env file is not
// an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
		LogMode:       getEnv("LOG_MODE", "dev"),
		DBConnStr:     os.Getenv("DB_CONN_STR"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		EncryptionKey: getEnv("ENCRYPTION_KEY", "default-key"),
	}

	if cfg.DBConnStr == "" && os.Getenv("DB_HOST") != "" {
		cfg.DBConnStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			os.Getenv("DB_HOST"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", "postgres"),
			getEnv("DB_NAME", "oasis"),
		)
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	limit := getEnv("FRAUD_AMOUNT_LIMIT", "10000")
	parsed, err := decimal.NewFromString(limit)
	if err != nil {
		return nil, fmt.Errorf("invalid FRAUD_AMOUNT_LIMIT %q: %w", limit, err)
	}
	cfg.FraudAmountLimit = parsed

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

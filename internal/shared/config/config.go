package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
	// Provider is the payout provider used for account resolution.
	Provider string
}

type Config struct {
	Port            string
	DB              DBConfig
	RedisAddr       string
	KafkaBroker     string
	KafkaGroupID    string
	OutboxInterval  time.Duration
	JWTSecret       string
	Upstream        UpstreamConfig
	ResolveDebounce time.Duration
	Locale          string
	Currency        string
	TimeZone        string
	MaxRetries      int
}

// Load reads .env when present, then the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port: getEnv("PORT", "3000"),
		DB: DBConfig{
			Host:     os.Getenv("DB_HOST"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker:    os.Getenv("KAFKA_BROKER"),
		KafkaGroupID:   getEnv("KAFKA_GROUP_ID", "go-ess-notifications"),
		OutboxInterval: getDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		Upstream: UpstreamConfig{
			BaseURL:  getEnv("UPSTREAM_BASE_URL", "https://api.sparkpayhq.com"),
			Timeout:  getDuration("UPSTREAM_TIMEOUT", 15*time.Second),
			Provider: getEnv("UPSTREAM_PAYOUT_PROVIDER", "paystack"),
		},
		ResolveDebounce: getDuration("RESOLVE_DEBOUNCE", 500*time.Millisecond),
		Locale:          getEnv("LOCALE", "en-NG"),
		Currency:        getEnv("CURRENCY", "NGN"),
		TimeZone:        getEnv("TIME_ZONE", "Africa/Lagos"),
		MaxRetries:      getInt("CONNECT_MAX_RETRIES", 5),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

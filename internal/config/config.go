package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	HTTPAddr           string        `env:"HTTP_ADDR" envDefault:":8080"`
	HTTPRequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"30s"`

	RedisAddr     string        `env:"REDIS_ADDR,required"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	DBHost            string        `env:"DB_HOST,required"`
	DBPort            int           `env:"DB_PORT,required"`
	DBUser            string        `env:"DB_USER,required"`
	DBPassword        string        `env:"DB_PASSWORD,required"`
	DBName            string        `env:"DB_NAME,required"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	DBConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"2m"`

	// Commerce backend that owns the standard-domain variant prices.
	CommerceBaseURL string `env:"COMMERCE_BASE_URL,required"`
	CommerceToken   string `env:"COMMERCE_TOKEN,required"`

	// Driving-distance service used for shipping eligibility.
	DistanceBaseURL   string   `env:"DISTANCE_BASE_URL,required"`
	DistanceAPIKey    string   `env:"DISTANCE_API_KEY"`
	WarehouseAddress  string   `env:"WAREHOUSE_ADDRESS,required"`
	MaxShippingKM     float64  `env:"MAX_SHIPPING_KM" envDefault:"150"`
	ShippingCountries []string `env:"SHIPPING_COUNTRIES" envSeparator:"," envDefault:"NL,BE,DE"`

	// Telegram notifications for submitted offers. Empty token disables them.
	TelegramToken  string `env:"TELEGRAM_TOKEN"`
	TelegramChatID int64  `env:"TELEGRAM_CHAT_ID"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.MaxShippingKM <= 0 {
		return nil, fmt.Errorf("MAX_SHIPPING_KM must be positive")
	}
	if len(cfg.ShippingCountries) == 0 {
		return nil, fmt.Errorf("at least one shipping country is required")
	}

	return &cfg, nil
}

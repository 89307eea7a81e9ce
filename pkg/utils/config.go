package utils

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Cache       CacheConfig
	Broker      BrokerConfig
	Reservation ReservationConfig
	Pagination  PaginationConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host        string
	Port        string
	Name        string
	User        string
	Password    string
	SSLMode     string
	MaxConns    int32
	AutoMigrate bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CacheConfig controls the GET response cache. Disabled unless CACHE_ENABLED is set
// and a Redis connection can be established.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// BrokerConfig points at the AMQP broker used for reservation events. An empty URL
// turns publishing into a no-op.
type BrokerConfig struct {
	URL      string
	Exchange string
}

// ReservationConfig holds the optional expiry sweep for stale PENDING reservations.
// ExpiryAfter == 0 disables the sweeper.
type ReservationConfig struct {
	ExpiryAfter   time.Duration
	SweepInterval time.Duration
}

type PaginationConfig struct {
	DefaultLimit int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "cinema-reservations")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_ENABLED", false)
	viper.SetDefault("CACHE_TTL", "30s")
	viper.SetDefault("CACHE_PREFIX", "cache")
	viper.SetDefault("AMQP_EXCHANGE", "reservations")
	viper.SetDefault("RESERVATION_EXPIRY", "0s")
	viper.SetDefault("RESERVATION_SWEEP_INTERVAL", "1m")
	viper.SetDefault("PAGINATION_DEFAULT_LIMIT", 1000)

	// .env is optional; plain environment variables are enough in containers
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetString("DB_PORT"),
			Name:        viper.GetString("DB_NAME"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASS"),
			SSLMode:     viper.GetString("DB_SSLMODE"),
			MaxConns:    viper.GetInt32("DB_MAX_CONNS"),
			AutoMigrate: viper.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			Enabled: viper.GetBool("CACHE_ENABLED"),
			TTL:     viper.GetDuration("CACHE_TTL"),
			Prefix:  viper.GetString("CACHE_PREFIX"),
		},
		Broker: BrokerConfig{
			URL:      viper.GetString("AMQP_URL"),
			Exchange: viper.GetString("AMQP_EXCHANGE"),
		},
		Reservation: ReservationConfig{
			ExpiryAfter:   viper.GetDuration("RESERVATION_EXPIRY"),
			SweepInterval: viper.GetDuration("RESERVATION_SWEEP_INTERVAL"),
		},
		Pagination: PaginationConfig{
			DefaultLimit: viper.GetInt("PAGINATION_DEFAULT_LIMIT"),
		},
	}

	return config, nil
}

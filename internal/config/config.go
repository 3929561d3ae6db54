package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Ledger backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Rate providers.
const (
	RateProviderFake        = "fake"
	RateProviderCoinConvert = "coinconvert"
)

// Config is the full process configuration.
type Config struct {
	Env         string
	Port        string
	LogLevel    string
	CORSOrigins string
	Database    DatabaseConfig
	Redis       RedisConfig
	Ledger      LedgerConfig
	Rate        RateConfig
}

// DatabaseConfig selects and configures the ledger store.
type DatabaseConfig struct {
	Backend         string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SQLitePath      string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// DSN returns the postgres connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.Host, c.User, c.Password, c.Name, c.Port)
}

// RedisConfig configures the optional rate cache.
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// LedgerConfig holds the business parameters of the ledger.
type LedgerConfig struct {
	AdminAPIKey     string
	WalletsLimit    int
	StartingBalance decimal.Decimal
}

// RateConfig selects the BTC to USD rate provider.
type RateConfig struct {
	Provider string
	FakeRate float64
	URL      string
	CacheTTL time.Duration
	Timeout  time.Duration
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// Load reads the configuration from the environment, applying defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	startingBalance, err := decimal.NewFromString(v.GetString("STARTING_BALANCE"))
	if err != nil {
		return nil, fmt.Errorf("invalid STARTING_BALANCE: %w", err)
	}
	if !startingBalance.IsPositive() {
		return nil, fmt.Errorf("invalid STARTING_BALANCE: must be positive")
	}

	cfg := &Config{
		Env:         v.GetString("ENV"),
		Port:        v.GetString("PORT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		CORSOrigins: v.GetString("CORS_ORIGINS"),
		Database: DatabaseConfig{
			Backend:         strings.ToLower(v.GetString("LEDGER_BACKEND")),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetString("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SQLitePath:      v.GetString("SQLITE_PATH"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Ledger: LedgerConfig{
			AdminAPIKey:     v.GetString("ADMIN_API_KEY"),
			WalletsLimit:    v.GetInt("WALLETS_LIMIT"),
			StartingBalance: startingBalance,
		},
		Rate: RateConfig{
			Provider: strings.ToLower(v.GetString("RATE_PROVIDER")),
			FakeRate: v.GetFloat64("FAKE_RATE"),
			URL:      v.GetString("COINCONVERT_URL"),
			CacheTTL: v.GetDuration("RATE_CACHE_TTL"),
			Timeout:  v.GetDuration("RATE_TIMEOUT"),
		},
	}

	switch cfg.Database.Backend {
	case BackendMemory, BackendPostgres, BackendSQLite:
	default:
		return nil, fmt.Errorf("unknown LEDGER_BACKEND %q", cfg.Database.Backend)
	}
	switch cfg.Rate.Provider {
	case RateProviderFake, RateProviderCoinConvert:
	default:
		return nil, fmt.Errorf("unknown RATE_PROVIDER %q", cfg.Rate.Provider)
	}
	if cfg.Ledger.WalletsLimit <= 0 {
		return nil, fmt.Errorf("invalid WALLETS_LIMIT %d", cfg.Ledger.WalletsLimit)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("PORT", "3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ORIGINS", "*")

	v.SetDefault("LEDGER_BACKEND", BackendMemory)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "btcledger")
	v.SetDefault("SQLITE_PATH", "btcledger.db")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_CONN_MAX_LIFETIME", time.Hour)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ADMIN_API_KEY", "")
	v.SetDefault("WALLETS_LIMIT", 3)
	v.SetDefault("STARTING_BALANCE", "1")

	v.SetDefault("RATE_PROVIDER", RateProviderFake)
	v.SetDefault("FAKE_RATE", 27000.0)
	v.SetDefault("COINCONVERT_URL", "https://api.coinconvert.net/convert/btc/usd")
	v.SetDefault("RATE_CACHE_TTL", time.Minute)
	v.SetDefault("RATE_TIMEOUT", 5*time.Second)
}

// IsProduction checks if the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

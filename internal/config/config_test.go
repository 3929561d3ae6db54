package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, BackendMemory, cfg.Database.Backend)
	assert.Equal(t, 3, cfg.Ledger.WalletsLimit)
	assert.True(t, cfg.Ledger.StartingBalance.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, RateProviderFake, cfg.Rate.Provider)
	assert.Equal(t, time.Minute, cfg.Rate.CacheTTL)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LEDGER_BACKEND", "SQLite")
	t.Setenv("WALLETS_LIMIT", "5")
	t.Setenv("STARTING_BALANCE", "0.5")
	t.Setenv("ADMIN_API_KEY", "root")
	t.Setenv("RATE_CACHE_TTL", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Database.Backend)
	assert.Equal(t, 5, cfg.Ledger.WalletsLimit)
	assert.Equal(t, "0.5", cfg.Ledger.StartingBalance.String())
	assert.Equal(t, "root", cfg.Ledger.AdminAPIKey)
	assert.Equal(t, 30*time.Second, cfg.Rate.CacheTTL)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown backend", "LEDGER_BACKEND", "mongo"},
		{"unknown rate provider", "RATE_PROVIDER", "oracle"},
		{"bad starting balance", "STARTING_BALANCE", "lots"},
		{"negative starting balance", "STARTING_BALANCE", "-1"},
		{"zero starting balance", "STARTING_BALANCE", "0"},
		{"zero wallets limit", "WALLETS_LIMIT", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5433", User: "u", Password: "p", Name: "n"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5433 sslmode=disable", c.DSN())
}

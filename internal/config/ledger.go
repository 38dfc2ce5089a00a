package config

import (
	"time"

	"github.com/spf13/viper"
)

// LedgerConfig holds the tunables of the ledger core.
type LedgerConfig struct {
	BIDMaxAttempts  int
	LockTimeout     time.Duration
	BalanceCacheTTL time.Duration
	TxPageSize      int
	BookPageSize    int
	MaxPageSize     int
	QRSize          int
	QRCacheTTL      time.Duration

	// Transfers per owner per window; 0 disables the limit.
	TransferRateLimit  int
	TransferRateWindow time.Duration
}

func LoadLedgerConfig() *LedgerConfig {
	viper.SetDefault("ledger.bid_max_attempts", 10)
	viper.SetDefault("ledger.lock_timeout", 5*time.Second)
	viper.SetDefault("ledger.balance_cache_ttl", 10*time.Minute)
	viper.SetDefault("ledger.tx_page_size", 20)
	viper.SetDefault("ledger.book_page_size", 12)
	viper.SetDefault("ledger.max_page_size", 100)
	viper.SetDefault("ledger.qr_size", 256)
	viper.SetDefault("ledger.qr_cache_ttl", 24*time.Hour)
	viper.SetDefault("ledger.transfer_rate_limit", 30)
	viper.SetDefault("ledger.transfer_rate_window", time.Minute)

	cfg := &LedgerConfig{
		BIDMaxAttempts:  viper.GetInt("ledger.bid_max_attempts"),
		LockTimeout:     viper.GetDuration("ledger.lock_timeout"),
		BalanceCacheTTL: viper.GetDuration("ledger.balance_cache_ttl"),
		TxPageSize:      viper.GetInt("ledger.tx_page_size"),
		BookPageSize:    viper.GetInt("ledger.book_page_size"),
		MaxPageSize:     viper.GetInt("ledger.max_page_size"),
		QRSize:          viper.GetInt("ledger.qr_size"),
		QRCacheTTL:      viper.GetDuration("ledger.qr_cache_ttl"),

		TransferRateLimit:  viper.GetInt("ledger.transfer_rate_limit"),
		TransferRateWindow: viper.GetDuration("ledger.transfer_rate_window"),
	}
	return cfg.withFallbacks()
}

// Default returns the fallback configuration with the transfer limit off.
func Default() *LedgerConfig {
	return (&LedgerConfig{}).withFallbacks()
}

func (c *LedgerConfig) withFallbacks() *LedgerConfig {
	if c.BIDMaxAttempts < 1 {
		c.BIDMaxAttempts = 10
	}
	if c.LockTimeout <= 0 {
		c.LockTimeout = 5 * time.Second
	}
	if c.BalanceCacheTTL <= 0 {
		c.BalanceCacheTTL = 10 * time.Minute
	}
	if c.TxPageSize < 1 {
		c.TxPageSize = 20
	}
	if c.BookPageSize < 1 {
		c.BookPageSize = 12
	}
	if c.MaxPageSize < 1 {
		c.MaxPageSize = 100
	}
	if c.QRSize < 64 {
		c.QRSize = 256
	}
	if c.QRCacheTTL <= 0 {
		c.QRCacheTTL = 24 * time.Hour
	}
	if c.TransferRateLimit < 0 {
		c.TransferRateLimit = 0
	}
	if c.TransferRateWindow <= 0 {
		c.TransferRateWindow = time.Minute
	}
	return c
}

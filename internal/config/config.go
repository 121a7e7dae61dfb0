package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

var (
	ErrEmptyURL = errors.New(
		"error getting RW_DEST_URL: variable not specified or contains an empty string")
	ErrEmptyToken = errors.New(
		"error getting RW_TELEGRAM_TOKEN: notifications are enabled but no token is specified")
)

type Config struct {
	Env          string        // Env is the current environment: local, dev, prod.
	URL          string        // URL is the listing page to poll.
	BaseURL      string        // BaseURL is prepended to relative listing hrefs.
	Terms        []string      // Terms must all occur in a listing's specs.
	PollInterval time.Duration // PollInterval is the sleep between successful cycles.
	RetryDelay   time.Duration // RetryDelay is the sleep after a failed fetch.
	Workers      int           // Workers is the notification pool size.
	QueueSize    int           // QueueSize bounds the notification task queue.
	CacheSize    int           // CacheSize bounds the specs memoization cache.
	Notify       bool          // Notify toggles notification dispatch entirely.
	DedupByLink  bool          // DedupByLink keys the seen-set by link instead of the full record.
	StoragePath  string
	Tg           Telegram
}

type Telegram struct {
	Token   string        // Token is an unique telegram bot token.
	Timeout time.Duration // Timeout is a poller timeout duration.
}

// MustLoad loads the configuration from environment variables and returns a Config struct.
func MustLoad() *Config {
	// Automatically binds environment variables to config keys
	viper.SetEnvPrefix("RW")
	viper.AutomaticEnv()

	// optional args
	viper.SetDefault("ENV", "production")
	viper.SetDefault("BASE_URL", "https://www.apple.com")
	viper.SetDefault("POLL_INTERVAL", "5m")
	viper.SetDefault("RETRY_DELAY", "30s")
	viper.SetDefault("WORKERS", 4)
	viper.SetDefault("QUEUE_SIZE", 64)
	viper.SetDefault("CACHE_SIZE", 128)
	viper.SetDefault("NOTIFY", true)
	viper.SetDefault("DEDUP_BY_LINK", false)
	viper.SetDefault("STORAGE_PATH", "refurbwatch.db")
	viper.SetDefault("TELEGRAM_TIMEOUT", "15s")

	if viper.GetString("DEST_URL") == "" {
		panic(ErrEmptyURL)
	}
	if viper.GetBool("NOTIFY") && viper.GetString("TELEGRAM_TOKEN") == "" {
		panic(ErrEmptyToken)
	}

	return &Config{
		Env:          viper.GetString("ENV"),
		URL:          viper.GetString("DEST_URL"),
		BaseURL:      viper.GetString("BASE_URL"),
		Terms:        viper.GetStringSlice("TERMS"),
		PollInterval: viper.GetDuration("POLL_INTERVAL"),
		RetryDelay:   viper.GetDuration("RETRY_DELAY"),
		Workers:      viper.GetInt("WORKERS"),
		QueueSize:    viper.GetInt("QUEUE_SIZE"),
		CacheSize:    viper.GetInt("CACHE_SIZE"),
		Notify:       viper.GetBool("NOTIFY"),
		DedupByLink:  viper.GetBool("DEDUP_BY_LINK"),
		StoragePath:  viper.GetString("STORAGE_PATH"),
		Tg: Telegram{
			Token:   viper.GetString("TELEGRAM_TOKEN"),
			Timeout: viper.GetDuration("TELEGRAM_TIMEOUT"),
		},
	}
}

package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server    Server    `mapstructure:"server"`
	Database  Database  `mapstructure:"database"`
	Logger    Logger    `mapstructure:"logger"`
	Market    Market    `mapstructure:"market"`
	Chat      Chat      `mapstructure:"chat"`
	Portfolio Portfolio `mapstructure:"portfolio"`
	Client    Client    `mapstructure:"client"`
}

// Server holds the configuration for the web server.
type Server struct {
	Port       int    `mapstructure:"port"`
	Mode       string `mapstructure:"mode"` // gin mode: debug, release, test
	CORSOrigin string `mapstructure:"cors_origin"`
}

// Database selects the profile store. Driver is "sqlite" or "postgres".
type Database struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Market tunes the simulated F&O feed.
type Market struct {
	Latency      time.Duration `mapstructure:"latency"`
	FailureRate  float64       `mapstructure:"failure_rate"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	FeedInterval time.Duration `mapstructure:"feed_interval"`
}

// Chat tunes the responder.
type Chat struct {
	ReplyDelay time.Duration `mapstructure:"reply_delay"`
}

// Portfolio holds the profile worker pool and live-value ticker settings.
type Portfolio struct {
	Workers      int           `mapstructure:"workers"`
	TickInterval time.Duration `mapstructure:"tick_interval"`
}

// Client configures the CLI's API client.
type Client struct {
	BaseURL        string        `mapstructure:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	RateLimit      float64       `mapstructure:"rate_limit"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst"`
}

// SetDefaults registers a default for every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors_origin", "*")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "tradedesk.db")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")

	v.SetDefault("market.latency", time.Second)
	v.SetDefault("market.failure_rate", 0.1)
	v.SetDefault("market.cache_ttl", 30*time.Second)
	v.SetDefault("market.feed_interval", 5*time.Second)

	v.SetDefault("chat.reply_delay", 400*time.Millisecond)

	v.SetDefault("portfolio.workers", 5)
	v.SetDefault("portfolio.tick_interval", 10*time.Second)

	v.SetDefault("client.base_url", "http://localhost:8080/api")
	v.SetDefault("client.timeout", 10*time.Second)
	v.SetDefault("client.rate_limit", 5)       // requests per second
	v.SetDefault("client.rate_limit_burst", 2) // burst size
}

// LoadConfig reads configuration from path/config.yml, letting environment
// variables (SERVER_PORT, DATABASE_DSN, ...) override it. A missing config
// file is not an error: defaults apply.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	SetDefaults(v)

	var config Config
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, err
		}
	}

	err := v.Unmarshal(&config)
	return config, err
}

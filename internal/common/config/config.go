package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"

	AdminModeAllowlist = "allowlist"
	AdminModeSecret    = "secret"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	// mongo or memory; memory keeps everything in process and is meant for local runs.
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"mongo"`

	Server struct {
		Port            int           `env:"PORT" envDefault:"8080"`
		Origins         []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
		ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
		WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
		ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
		// Proxies allowed to set X-Forwarded-For. Empty trusts none and the
		// socket peer address is the client IP.
		TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
	}

	Mongo struct {
		URI            string        `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
		Database       string        `env:"MONGODB_DATABASE" envDefault:"slap"`
		ConnectTimeout time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`
	}

	Redis struct {
		// Empty address disables the read cache.
		Addr     string        `env:"REDIS_ADDR" envDefault:""`
		Password string        `env:"REDIS_PASSWORD" envDefault:""`
		DB       int           `env:"REDIS_DB" envDefault:"0"`
		CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"30s"`
	}

	Twitter struct {
		ClientID     string        `env:"TWITTER_CLIENT_ID"`
		ClientSecret string        `env:"TWITTER_CLIENT_SECRET"`
		CallbackURL  string        `env:"TWITTER_CALLBACK_URL" envDefault:"http://localhost:8080/api/auth/twitter/callback"`
		AuthURL      string        `env:"TWITTER_AUTH_URL" envDefault:"https://twitter.com/i/oauth2/authorize"`
		TokenURL     string        `env:"TWITTER_TOKEN_URL" envDefault:"https://api.twitter.com/2/oauth2/token"`
		APIBaseURL   string        `env:"TWITTER_API_BASE_URL" envDefault:"https://api.twitter.com"`
		SessionTTL   time.Duration `env:"TWITTER_SESSION_TTL" envDefault:"10m"`
		// Where the browser lands after the callback, query string is appended.
		RedirectURL string `env:"WHITELIST_REDIRECT_URL" envDefault:"/whitelist"`
	}

	Admin struct {
		Mode      string   `env:"ADMIN_AUTH_MODE" envDefault:"allowlist"`
		Addresses []string `env:"ADMIN_ADDRESSES" envSeparator:","`
		Password  string   `env:"ADMIN_PASSWORD"`
	}

	Whitelist struct {
		AllowRejoinAfterDenial bool `env:"WHITELIST_ALLOW_REJOIN_AFTER_DENIAL" envDefault:"false"`
	}

	Chat struct {
		RatePerMinute int `env:"CHAT_RATE_PER_MINUTE" envDefault:"20"`
		RateBurst     int `env:"CHAT_RATE_BURST" envDefault:"5"`
	}
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	// .env is optional, production sets variables directly
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageMongo, StorageMemory:
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER %q: expected %s or %s", c.StorageDriver, StorageMongo, StorageMemory)
	}

	c.Admin.Mode = strings.ToLower(strings.TrimSpace(c.Admin.Mode))
	switch c.Admin.Mode {
	case AdminModeAllowlist:
		if len(c.Admin.Addresses) == 0 {
			return fmt.Errorf("ADMIN_ADDRESSES must not be empty when ADMIN_AUTH_MODE=%s", AdminModeAllowlist)
		}
	case AdminModeSecret:
		if c.Admin.Password == "" {
			return fmt.Errorf("ADMIN_PASSWORD must be set when ADMIN_AUTH_MODE=%s", AdminModeSecret)
		}
	default:
		return fmt.Errorf("invalid ADMIN_AUTH_MODE %q: expected %s or %s", c.Admin.Mode, AdminModeAllowlist, AdminModeSecret)
	}

	if c.Twitter.SessionTTL <= 0 {
		return fmt.Errorf("TWITTER_SESSION_TTL must be positive, got %s", c.Twitter.SessionTTL)
	}

	if c.Chat.RatePerMinute < 0 || c.Chat.RateBurst < 0 {
		return fmt.Errorf("chat rate limits cannot be negative")
	}
	return nil
}

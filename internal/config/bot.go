package config

import (
	"fmt"
	"time"
)

const (
	EnvBotEnabled       = "PRIMELEADS_BOT_ENABLED"
	EnvBotToken         = "PRIMELEADS_BOT_TOKEN"
	EnvBotStateStore    = "PRIMELEADS_BOT_STATE_STORE"
	EnvBotPollTimeout   = "PRIMELEADS_BOT_POLL_TIMEOUT"
	EnvBotRedisAddr     = "PRIMELEADS_REDIS_ADDR"
	EnvBotRedisPassword = "PRIMELEADS_REDIS_PASSWORD"
	EnvBotRedisDB       = "PRIMELEADS_REDIS_DB"
	EnvBotStateTTL      = "PRIMELEADS_BOT_STATE_TTL"
)

// BotConfig holds the Telegram bot settings and where per-user
// "waiting for URL" flags are kept.
type BotConfig struct {
	Enabled     bool        `toml:"enabled"`
	Token       string      `toml:"token"`
	StateStore  string      `toml:"state_store"`
	PollTimeout int         `toml:"poll_timeout"`
	StateTTL    string      `toml:"state_ttl"`
	Redis       RedisConfig `toml:"redis"`
}

// RedisConfig holds the connection settings for the redis state store.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// StateTTLDuration returns how long a waiting flag survives without a reply.
func (c *BotConfig) StateTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.StateTTL)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *BotConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites fields from overlay. Enabled always applies.
func (c *BotConfig) Merge(overlay *BotConfig) {
	c.Enabled = overlay.Enabled
	if overlay.Token != "" {
		c.Token = overlay.Token
	}
	if overlay.StateStore != "" {
		c.StateStore = overlay.StateStore
	}
	if overlay.PollTimeout != 0 {
		c.PollTimeout = overlay.PollTimeout
	}
	if overlay.StateTTL != "" {
		c.StateTTL = overlay.StateTTL
	}
	if overlay.Redis.Addr != "" {
		c.Redis.Addr = overlay.Redis.Addr
	}
	if overlay.Redis.Password != "" {
		c.Redis.Password = overlay.Redis.Password
	}
	if overlay.Redis.DB != 0 {
		c.Redis.DB = overlay.Redis.DB
	}
}

func (c *BotConfig) loadDefaults() {
	if c.StateStore == "" {
		c.StateStore = "memory"
	}
	if c.PollTimeout == 0 {
		c.PollTimeout = 60
	}
	if c.StateTTL == "" {
		c.StateTTL = "24h"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
}

func (c *BotConfig) loadEnv() {
	envBool(EnvBotEnabled, &c.Enabled)
	envString(EnvBotToken, &c.Token)
	envString(EnvBotStateStore, &c.StateStore)
	envInt(EnvBotPollTimeout, &c.PollTimeout)
	envString(EnvBotStateTTL, &c.StateTTL)
	envString(EnvBotRedisAddr, &c.Redis.Addr)
	envString(EnvBotRedisPassword, &c.Redis.Password)
	envInt(EnvBotRedisDB, &c.Redis.DB)
}

func (c *BotConfig) validate() error {
	switch c.StateStore {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown state_store %q", c.StateStore)
	}
	if _, err := time.ParseDuration(c.StateTTL); err != nil {
		return fmt.Errorf("invalid state_ttl: %w", err)
	}
	if c.Enabled && c.Token == "" {
		return fmt.Errorf("token required when bot is enabled (%s)", EnvBotToken)
	}
	return nil
}

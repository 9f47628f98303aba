package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	HTTPPort         int
	SSHPort          int
	SSHHostKeyPath   string
	RedisURL         string
	TelegramBotToken string

	LogLevel string
	LogFile  string

	// Warnings collects problems found while loading. They are logged once
	// the logger exists.
	Warnings []string
}

// Load reads configuration from the environment (a .env file is loaded by
// the caller beforehand). Invalid numeric values fall back to defaults.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("SSH_PORT", 2222)
	v.SetDefault("SSH_HOST_KEY_PATH", ".ssh/coinpulse_ed25519")
	v.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		SSHHostKeyPath:   strings.TrimSpace(v.GetString("SSH_HOST_KEY_PATH")),
		RedisURL:         strings.TrimSpace(v.GetString("REDIS_URL")),
		TelegramBotToken: v.GetString("TELEGRAM_BOT_TOKEN"),
		LogLevel:         strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		LogFile:          strings.TrimSpace(v.GetString("LOG_FILE")),
	}

	cfg.HTTPPort = cfg.positiveInt(v, "HTTP_PORT", 8080)
	cfg.SSHPort = cfg.positiveInt(v, "SSH_PORT", 2222)

	if cfg.SSHHostKeyPath == "" {
		cfg.SSHHostKeyPath = ".ssh/coinpulse_ed25519"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.RedisURL == "" {
		cfg.Warnings = append(cfg.Warnings, "REDIS_URL not set, response cache disabled")
	}

	return cfg
}

// LogWarnings reports the problems found by Load.
func (c *Config) LogWarnings(l *zap.Logger) {
	for _, w := range c.Warnings {
		l.Warn(w)
	}
}

func (c *Config) positiveInt(v *viper.Viper, key string, def int) int {
	raw := strings.TrimSpace(v.GetString(key))
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		c.Warnings = append(c.Warnings, fmt.Sprintf("invalid %s value %q, using default %d", key, raw, def))
		return def
	}
	return n
}

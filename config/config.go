package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ServerConfig holds all configuration for the dashboard backend.
// Tags use mapstructure for Viper unmarshalling.
type ServerConfig struct {
	HTTPPort    string `mapstructure:"HTTP_PORT"`
	MongoURI    string `mapstructure:"MONGO_URI"`
	MongoDBName string `mapstructure:"MONGO_DB_NAME"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	LogPretty   bool   `mapstructure:"LOG_PRETTY"`

	OtelServiceName string `mapstructure:"OTEL_SERVICE_NAME"`

	// Discord OAuth2 application credentials.
	DiscordClientID     string `mapstructure:"DISCORD_CLIENT_ID"`
	DiscordClientSecret string `mapstructure:"DISCORD_CLIENT_SECRET"`
	DiscordRedirectURI  string `mapstructure:"DISCORD_REDIRECT_URI"`
	// DiscordBotToken authenticates bot-scoped Discord calls (guild
	// membership listing). Optional: without it the membership cache can
	// never be filled and only the bot owner passes guild checks.
	DiscordBotToken string `mapstructure:"DISCORD_BOT_TOKEN"`

	// SessionSecret signs session credentials. Rotating it invalidates
	// every outstanding credential.
	SessionSecret  string `mapstructure:"SESSION_SECRET"`
	SessionTTLDays int    `mapstructure:"SESSION_TTL_DAYS"`

	BotOwnerID string `mapstructure:"BOT_OWNER_ID"`
	// BotSyncToken is the shared secret the bot process presents on
	// /bot/... routes. Empty leaves those routes unauthenticated.
	BotSyncToken string `mapstructure:"BOT_SYNC_TOKEN"`

	FrontendURL string `mapstructure:"FRONTEND_URL"`

	// RedisAddr switches the guild cache to Redis when set.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	GuildCacheTTLSec int    `mapstructure:"GUILD_CACHE_TTL_SEC"`
}

// LoadConfig reads configuration from file, environment variables, and defaults.
func LoadConfig() (*ServerConfig, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/sentinel-dashboard/")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("HTTP_PORT", "8001")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DB_NAME", "discord_bot")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", true)
	v.SetDefault("OTEL_SERVICE_NAME", "sentinel-dashboard")
	v.SetDefault("SESSION_TTL_DAYS", 7)
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("GUILD_CACHE_TTL_SEC", 60)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, env vars and defaults apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return &cfg, nil
}

// Validate fails fast on missing required settings so a misconfigured
// deployment dies at boot instead of serving a broken login flow.
func (c *ServerConfig) Validate() error {
	var missing []string
	if c.DiscordClientID == "" {
		missing = append(missing, "DISCORD_CLIENT_ID")
	}
	if c.DiscordClientSecret == "" {
		missing = append(missing, "DISCORD_CLIENT_SECRET")
	}
	if c.DiscordRedirectURI == "" {
		missing = append(missing, "DISCORD_REDIRECT_URI")
	}
	if c.SessionSecret == "" {
		missing = append(missing, "SESSION_SECRET")
	}
	if c.BotOwnerID == "" {
		missing = append(missing, "BOT_OWNER_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

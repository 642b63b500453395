package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	FootballData FootballDataConfig `mapstructure:"football_data"`
	APISports    APISportsConfig    `mapstructure:"api_sports"`
	SportsDB     SportsDBConfig     `mapstructure:"sports_db"`
	TopStrike    TopStrikeConfig    `mapstructure:"topstrike"`
	Cache        CacheConfig        `mapstructure:"cache"`
	Storage      StorageConfig      `mapstructure:"storage"`
	Telegram     TelegramConfig     `mapstructure:"telegram"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// ServerConfig holds the HTTP listener configuration
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// FootballDataConfig holds football-data.org API configuration
type FootballDataConfig struct {
	APIBaseURL  string        `mapstructure:"api_base_url"`
	APIToken    string        `mapstructure:"api_token"`
	Timeout     time.Duration `mapstructure:"timeout"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
	WindowDays  int           `mapstructure:"window_days"`
	MaxUpcoming int           `mapstructure:"max_upcoming"`
}

// APISportsConfig holds API-Football configuration
type APISportsConfig struct {
	APIBaseURL   string        `mapstructure:"api_base_url"`
	APIKey       string        `mapstructure:"api_key"`
	Timeout      time.Duration `mapstructure:"timeout"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	TeamFetchCap int           `mapstructure:"team_fetch_cap"`
	PerTeamLimit int           `mapstructure:"per_team_limit"`
	MaxUpcoming  int           `mapstructure:"max_upcoming"`
}

// SportsDBConfig holds TheSportsDB player lookup configuration
type SportsDBConfig struct {
	APIBaseURL string        `mapstructure:"api_base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// TopStrikeConfig holds the upstream fixtures proxy configuration
type TopStrikeConfig struct {
	FixturesURL string        `mapstructure:"fixtures_url"`
	Origin      string        `mapstructure:"origin"`
	Cookies     string        `mapstructure:"cookies"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// CacheConfig selects the fixture cache backend
type CacheConfig struct {
	Backend     string `mapstructure:"backend"` // "memory" or "redis"
	RedisAddr   string `mapstructure:"redis_addr"`
	RedisPrefix string `mapstructure:"redis_prefix"`
}

// StorageConfig holds SQLite persistence configuration
type StorageConfig struct {
	DBPath string `mapstructure:"db_path"`
}

// TelegramConfig holds Telegram notification configuration
type TelegramConfig struct {
	BotToken      string        `mapstructure:"bot_token"`
	ChatID        string        `mapstructure:"chat_id"`
	Enabled       bool          `mapstructure:"enabled"`
	AlertCooldown time.Duration `mapstructure:"alert_cooldown"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	setDefaults(v)

	// Enable environment variable override
	v.SetEnvPrefix("SQUADAPI")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout", "10s")

	// football-data.org defaults
	v.SetDefault("football_data.api_base_url", "https://api.football-data.org/v4")
	v.SetDefault("football_data.timeout", "10s")
	v.SetDefault("football_data.cache_ttl", "2m")
	v.SetDefault("football_data.window_days", 10)
	v.SetDefault("football_data.max_upcoming", 10)

	// API-Football defaults
	v.SetDefault("api_sports.api_base_url", "https://v3.football.api-sports.io")
	v.SetDefault("api_sports.timeout", "10s")
	v.SetDefault("api_sports.cache_ttl", "5m")
	v.SetDefault("api_sports.team_fetch_cap", 9)
	v.SetDefault("api_sports.per_team_limit", 5)
	v.SetDefault("api_sports.max_upcoming", 10)

	// TheSportsDB defaults (key 123 is the free tier)
	v.SetDefault("sports_db.api_base_url", "https://www.thesportsdb.com/api/v1/json/123")
	v.SetDefault("sports_db.timeout", "10s")

	// TopStrike proxy defaults
	v.SetDefault("topstrike.fixtures_url", "https://topstrike.io/api/fixtures")
	v.SetDefault("topstrike.origin", "https://topstrike.io")
	v.SetDefault("topstrike.timeout", "15s")

	// Cache defaults
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.redis_prefix", "squadapi")

	// Storage defaults
	v.SetDefault("storage.db_path", "./data/squadapi.db")

	// Telegram defaults
	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.alert_cooldown", "3h")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}

	if c.FootballData.APIBaseURL == "" {
		return fmt.Errorf("football_data.api_base_url is required")
	}
	if c.FootballData.WindowDays < 1 {
		return fmt.Errorf("football_data.window_days must be at least 1")
	}
	if c.FootballData.CacheTTL < 30*time.Second {
		return fmt.Errorf("football_data.cache_ttl must be at least 30 seconds")
	}

	if c.APISports.APIBaseURL == "" {
		return fmt.Errorf("api_sports.api_base_url is required")
	}
	if c.APISports.TeamFetchCap < 1 {
		return fmt.Errorf("api_sports.team_fetch_cap must be at least 1")
	}
	if c.APISports.PerTeamLimit < 1 {
		return fmt.Errorf("api_sports.per_team_limit must be at least 1")
	}
	if c.APISports.CacheTTL < 30*time.Second {
		return fmt.Errorf("api_sports.cache_ttl must be at least 30 seconds")
	}

	if c.SportsDB.APIBaseURL == "" {
		return fmt.Errorf("sports_db.api_base_url is required")
	}

	if c.TopStrike.FixturesURL == "" {
		return fmt.Errorf("topstrike.fixtures_url is required")
	}

	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return fmt.Errorf("cache.backend must be one of: memory, redis")
	}
	if c.Cache.Backend == "redis" && c.Cache.RedisAddr == "" {
		return fmt.Errorf("cache.redis_addr is required when cache.backend is redis")
	}

	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}

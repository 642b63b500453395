package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadAndValidate(t *testing.T) {
	// Create temp config file
	content := `
server:
  addr: ":8080"
  allowed_origins:
    - "https://squad.example.com"

football_data:
  api_token: "fd_token"
  cache_ttl: 2m
  window_days: 10

api_sports:
  api_key: "apisports_key"
  cache_ttl: 5m
  team_fetch_cap: 9

topstrike:
  cookies: "session=abc"

telegram:
  bot_token: "test_token"
  chat_id: "test_chat_id"
  enabled: true

logging:
  level: "info"
  format: "text"
`
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Explicit values
	if cfg.FootballData.APIToken != "fd_token" {
		t.Errorf("Unexpected football-data token: %s", cfg.FootballData.APIToken)
	}
	if len(cfg.Server.AllowedOrigins) != 1 {
		t.Errorf("Expected 1 allowed origin, got %d", len(cfg.Server.AllowedOrigins))
	}

	// Defaults fill the gaps
	if cfg.FootballData.APIBaseURL != "https://api.football-data.org/v4" {
		t.Errorf("Unexpected default base URL: %s", cfg.FootballData.APIBaseURL)
	}
	if cfg.APISports.PerTeamLimit != 5 {
		t.Errorf("Expected default per_team_limit 5, got %d", cfg.APISports.PerTeamLimit)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("Expected default cache backend memory, got %s", cfg.Cache.Backend)
	}
	if cfg.Telegram.AlertCooldown != 3*time.Hour {
		t.Errorf("Expected default alert cooldown 3h, got %v", cfg.Telegram.AlertCooldown)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		FootballData: FootballDataConfig{
			APIBaseURL: "https://api.football-data.org/v4",
			CacheTTL:   2 * time.Minute,
			WindowDays: 10,
		},
		APISports: APISportsConfig{
			APIBaseURL:   "https://v3.football.api-sports.io",
			CacheTTL:     5 * time.Minute,
			TeamFetchCap: 9,
			PerTeamLimit: 5,
		},
		SportsDB:  SportsDBConfig{APIBaseURL: "https://www.thesportsdb.com/api/v1/json/123"},
		TopStrike: TopStrikeConfig{FixturesURL: "https://topstrike.io/api/fixtures"},
		Cache:     CacheConfig{Backend: "memory"},
		Logging:   LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid baseline",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing telegram token when enabled",
			mutate:  func(c *Config) { c.Telegram.Enabled = true },
			wantErr: true,
		},
		{
			name:    "cache ttl too short",
			mutate:  func(c *Config) { c.FootballData.CacheTTL = time.Second },
			wantErr: true,
		},
		{
			name:    "unknown cache backend",
			mutate:  func(c *Config) { c.Cache.Backend = "memcached" },
			wantErr: true,
		},
		{
			name:    "redis backend without address",
			mutate:  func(c *Config) { c.Cache.Backend = "redis" },
			wantErr: true,
		},
		{
			name:    "zero team fetch cap",
			mutate:  func(c *Config) { c.APISports.TeamFetchCap = 0 },
			wantErr: true,
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

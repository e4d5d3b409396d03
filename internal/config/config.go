// Package config loads draftmetrics settings from defaults, an optional config
// file, DRAFTMETRICS_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. DRAFTMETRICS_LEAGUE_ID.
const EnvPrefix = "DRAFTMETRICS"

type Config struct {
	// League
	Username   string `mapstructure:"username"`
	LeagueID   string `mapstructure:"league_id"`
	Sport      string `mapstructure:"sport"`
	Season     string `mapstructure:"season"`
	SeasonType string `mapstructure:"season_type"`

	// Valuation
	DraftBudget float64 `mapstructure:"draft_budget"`
	Buffer      int     `mapstructure:"buffer"`
	ActiveOnly  bool    `mapstructure:"active_only"`

	// Data source
	APIEndpoint   string        `mapstructure:"api_endpoint"`
	StatsEndpoint string        `mapstructure:"stats_endpoint"`
	HTTPTimeout   time.Duration `mapstructure:"http_timeout"`

	// Cache
	DBPath     string        `mapstructure:"db"`
	CatalogTTL time.Duration `mapstructure:"catalog_ttl"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// SetDefaults registers every key with its default value. home is the
// directory holding the default database and config file.
func SetDefaults(v *viper.Viper, home string) {
	v.SetDefault("username", "")
	v.SetDefault("league_id", "")
	v.SetDefault("sport", "nfl")
	v.SetDefault("season", strconv.Itoa(time.Now().Year()))
	v.SetDefault("season_type", "regular")

	v.SetDefault("draft_budget", 200.0)
	v.SetDefault("buffer", 1)
	v.SetDefault("active_only", true)

	v.SetDefault("api_endpoint", "https://api.sleeper.app/v1")
	v.SetDefault("stats_endpoint", "https://api.sleeper.com")
	v.SetDefault("http_timeout", "30s")

	v.SetDefault("db", filepath.Join(home, ".draftmetrics", "cache.db"))
	v.SetDefault("catalog_ttl", "24h")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

// Load reads the config file if present, applies environment overrides and
// decodes the result. Flags must already be bound to v.
func Load(v *viper.Viper, home string) (Config, error) {
	SetDefaults(v, home)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(home, ".draftmetrics"))
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings no run could use.
func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Sport) == "":
		return errors.New("config: sport must not be empty")
	case c.DraftBudget < 0:
		return fmt.Errorf("config: draft_budget must be >= 0, got %v", c.DraftBudget)
	case c.Buffer < 0:
		return fmt.Errorf("config: buffer must be >= 0, got %d", c.Buffer)
	case c.CatalogTTL < 0:
		return fmt.Errorf("config: catalog_ttl must be >= 0, got %s", c.CatalogTTL)
	case c.HTTPTimeout <= 0:
		return fmt.Errorf("config: http_timeout must be > 0, got %s", c.HTTPTimeout)
	}
	return nil
}

// HasLeague reports whether a league can be located, directly or through the
// user's league list.
func (c Config) HasLeague() bool {
	return c.LeagueID != "" || c.Username != ""
}

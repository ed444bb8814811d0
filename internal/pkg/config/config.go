package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Logging      LoggingConfig      `yaml:"logging"`
	Schedule     ScheduleConfig     `yaml:"schedule"`
	Sources      SourcesConfig      `yaml:"sources"`
	Kenpom       KenpomConfig       `yaml:"kenpom"`
	Torvik       TorvikConfig       `yaml:"torvik"`
	Haslametrics HaslametricsConfig `yaml:"haslametrics"`
	Teams        TeamsConfig        `yaml:"teams"`
	Postgres     PostgresConfig     `yaml:"postgres"`
	Telegram     TelegramConfig     `yaml:"telegram"`
	Render       RenderConfig       `yaml:"render"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // optional JSON log file, empty = stdout only
}

type ScheduleConfig struct {
	BaseURL string        `yaml:"base_url"`
	Groups  string        `yaml:"groups"` // ESPN group filter, "50" = Division I
	Limit   int           `yaml:"limit"`
	Timeout time.Duration `yaml:"timeout"`
}

type SourcesConfig struct {
	Enabled   []string      `yaml:"enabled"` // empty = all registered sources
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
}

type KenpomConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Season  int    `yaml:"season"`
}

type TorvikConfig struct {
	BaseURL string `yaml:"base_url"`
	Season  int    `yaml:"season"`
}

type HaslametricsConfig struct {
	URL         string        `yaml:"url"`
	Timeout     time.Duration `yaml:"timeout"`      // whole-scrape budget including page load
	PollTimeout time.Duration `yaml:"poll_timeout"` // max wait for score cells to populate
	ChromePath  string        `yaml:"chrome_path"`  // optional explicit Chrome binary
}

type TeamsConfig struct {
	MappingFile string `yaml:"mapping_file"`
	HCAFile     string `yaml:"hca_file"`
	LogoFile    string `yaml:"logo_file"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"` // empty = prediction history disabled
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"` // empty = notifications disabled
	ChatID   int64  `yaml:"chat_id"`
}

type RenderConfig struct {
	OutputDir string `yaml:"output_dir"`
}

func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)
	return &config, nil
}

func applyDefaults(c *Config) {
	if c.Schedule.BaseURL == "" {
		c.Schedule.BaseURL = "https://site.api.espn.com/apis/site/v2/sports/basketball/mens-college-basketball"
	}
	if c.Schedule.Groups == "" {
		c.Schedule.Groups = "50"
	}
	if c.Schedule.Limit <= 0 {
		c.Schedule.Limit = 500
	}
	if c.Schedule.Timeout <= 0 {
		c.Schedule.Timeout = 30 * time.Second
	}
	if c.Sources.Timeout <= 0 {
		c.Sources.Timeout = 30 * time.Second
	}
	if c.Kenpom.BaseURL == "" {
		c.Kenpom.BaseURL = "https://kenpom.com/api.php"
	}
	if c.Torvik.BaseURL == "" {
		c.Torvik.BaseURL = "https://barttorvik.com"
	}
	if c.Haslametrics.URL == "" {
		c.Haslametrics.URL = "https://haslametrics.com/ratings.php"
	}
	if c.Haslametrics.Timeout <= 0 {
		c.Haslametrics.Timeout = 90 * time.Second
	}
	if c.Haslametrics.PollTimeout <= 0 {
		c.Haslametrics.PollTimeout = 20 * time.Second
	}
	if c.Render.OutputDir == "" {
		c.Render.OutputDir = "predictions"
	}
}

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Gemini struct {
		APIKey             string   `yaml:"api_key"`
		Models             []string `yaml:"models"`
		MinIntervalSeconds float64  `yaml:"min_interval_seconds"`
	} `yaml:"gemini"`
	Ledger struct {
		File string `yaml:"file"`
	} `yaml:"ledger"`
	History struct {
		File string `yaml:"file"`
	} `yaml:"history"`
	Screener struct {
		Universe         []string `yaml:"universe"`
		Sessions         int      `yaml:"sessions"`
		MinVariationPct  float64  `yaml:"min_variation_pct"`
		MinVolume        float64  `yaml:"min_volume"`
		TopN             int      `yaml:"top_n"`
		MAFilterSessions int      `yaml:"ma_filter_sessions"`
	} `yaml:"screener"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := os.Getenv("LEDGER_FILE"); v != "" {
		cfg.Ledger.File = v
	}
	if v := os.Getenv("HISTORY_FILE"); v != "" {
		cfg.History.File = v
	}
	if v := os.Getenv("SCREENER_UNIVERSE"); v != "" {
		var universe []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				universe = append(universe, s)
			}
		}
		cfg.Screener.Universe = universe
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if len(cfg.Gemini.Models) == 0 {
		cfg.Gemini.Models = []string{"gemini-1.5-flash", "gemini-1.5-pro"}
	}
	if cfg.Gemini.MinIntervalSeconds == 0 {
		cfg.Gemini.MinIntervalSeconds = 2
	}
	if cfg.Ledger.File == "" {
		cfg.Ledger.File = "data/carteira.csv"
	}
	if cfg.History.File == "" {
		cfg.History.File = "data/historico.csv"
	}
	if len(cfg.Screener.Universe) == 0 {
		cfg.Screener.Universe = []string{"AAPL", "NVDA", "TSLA", "MSFT", "GOOGL", "AMZN"}
	}
	if cfg.Screener.Sessions == 0 {
		cfg.Screener.Sessions = 5
	}
	if cfg.Screener.MinVariationPct == 0 {
		cfg.Screener.MinVariationPct = 3.0
	}
	if cfg.Screener.TopN == 0 {
		cfg.Screener.TopN = 5
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 13 * * 1-5"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.Screener.Sessions < 2 {
		return fmt.Errorf("screener.sessions must be >= 2")
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"StockScout/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Universe struct {
		Source  string   `yaml:"source"` // static | file | sp500
		File    string   `yaml:"file"`
		Symbols []string `yaml:"symbols"`
		Sectors []string `yaml:"sectors"`
	} `yaml:"universe"`
	Scan struct {
		Window  int  `yaml:"window"`
		Verbose bool `yaml:"verbose"`
	} `yaml:"scan"`
	DataSource struct {
		Provider string `yaml:"provider"` // yahoo | finance-go
	} `yaml:"data_source"`
	Schedule struct {
		ScanCron string `yaml:"scan_cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is not an error; defaults still apply.
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
	if v := os.Getenv("UNIVERSE_SOURCE"); v != "" {
		cfg.Universe.Source = v
	}
	if v := os.Getenv("UNIVERSE_FILE"); v != "" {
		cfg.Universe.File = v
	}
	if v := os.Getenv("UNIVERSE_SECTORS"); v != "" {
		cfg.Universe.Sectors = splitList(v)
	}
	if v := os.Getenv("SCAN_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scan.Window = n
		}
	}
	if v := os.Getenv("SCAN_VERBOSE"); v != "" {
		cfg.Scan.Verbose = v == "true" || v == "1"
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("CRON_SCAN"); v != "" {
		cfg.Schedule.ScanCron = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Universe.Source == "" {
		cfg.Universe.Source = "static"
	}
	if cfg.Universe.File == "" {
		cfg.Universe.File = "configs/tickers.yaml"
	}
	if cfg.Scan.Window == 0 {
		cfg.Scan.Window = model.DefaultWindow
	}
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.Schedule.ScanCron == "" {
		cfg.Schedule.ScanCron = "0 30 21 * * 1-5" // weekdays after US close (UTC)
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/universe.db"
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Scan.Window <= 0 {
		return fmt.Errorf("scan.window must be positive, got %d", c.Scan.Window)
	}
	switch c.Universe.Source {
	case "static", "file", "sp500":
	default:
		return fmt.Errorf("universe.source must be static, file or sp500, got %q", c.Universe.Source)
	}
	if c.Universe.Source == "file" && c.Universe.File == "" {
		return fmt.Errorf("universe.file is required for the file source")
	}
	switch c.DataSource.Provider {
	case "yahoo", "finance-go":
	default:
		return fmt.Errorf("data_source.provider must be yahoo or finance-go, got %q", c.DataSource.Provider)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

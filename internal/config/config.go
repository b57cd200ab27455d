package config

import (
	"os"

	"tenderhunt-engine/internal/domain"

	"gopkg.in/yaml.v3"
)

// Site describes how to reach and interpret one tender-publishing portal.
// APIURL and RSSURL, when present, take priority over page scraping.
// ScraperType pins a single strategy: playwright | selenium | requests | auto.
type Site struct {
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	APIURL      string `yaml:"api_url"`
	RSSURL      string `yaml:"rss_url"`
	ScraperType string `yaml:"scraper_type"`
}

type Scraping struct {
	TimeoutSeconds    int     `yaml:"timeout_seconds"`
	MaxRetries        int     `yaml:"max_retries"`
	DelaySeconds      float64 `yaml:"delay_seconds"`
	RequestsPerMinute int     `yaml:"requests_per_minute"`
	UseSampleData     bool    `yaml:"use_sample_data"`
}

type SMTP struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	Username       string `yaml:"username"`
	KeyringAccount string `yaml:"keyring_account"`
}

type Email struct {
	Enabled        bool     `yaml:"enabled"`
	From           string   `yaml:"from"`
	Recipients     []string `yaml:"recipients"`
	CC             []string `yaml:"cc"`
	BCC            []string `yaml:"bcc"`
	ResendBaseURL  string   `yaml:"resend_base_url"`
	KeyringAccount string   `yaml:"keyring_account"` // Resend API key
	SMTP           SMTP     `yaml:"smtp"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Scraping Scraping `yaml:"scraping"`

	Polling struct {
		IntervalSeconds int `yaml:"interval_seconds"`
	} `yaml:"polling"`

	Sites []Site `yaml:"sites"`

	Scoring struct {
		NotifyMinScore int `yaml:"notify_min_score"`
	} `yaml:"scoring"`

	Company domain.CompanyProfile `yaml:"company"`

	Email Email `yaml:"email"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Port == 0 {
		cfg.App.Port = 38472
	}
	if cfg.Scraping.TimeoutSeconds == 0 {
		cfg.Scraping.TimeoutSeconds = 30
	}
	if cfg.Scraping.MaxRetries == 0 {
		cfg.Scraping.MaxRetries = 3
	}
	if cfg.Scraping.DelaySeconds == 0 {
		cfg.Scraping.DelaySeconds = 2
	}
	if cfg.Scraping.RequestsPerMinute == 0 {
		cfg.Scraping.RequestsPerMinute = 60
	}
	if cfg.Polling.IntervalSeconds == 0 {
		cfg.Polling.IntervalSeconds = 3600
	}
	if cfg.Scoring.NotifyMinScore == 0 {
		cfg.Scoring.NotifyMinScore = 50
	}
	if cfg.Email.ResendBaseURL == "" {
		cfg.Email.ResendBaseURL = "https://api.resend.com"
	}
	if cfg.Email.SMTP.Port == 0 {
		cfg.Email.SMTP.Port = 587
	}
}

package config

import (
	"errors"
	"fmt"
	"strings"
)

func Validate(cfg Config) error {
	var errs []string

	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		errs = append(errs, "app.port must be 1..65535")
	}
	if cfg.Scoring.NotifyMinScore < 0 || cfg.Scoring.NotifyMinScore > 100 {
		errs = append(errs, "scoring.notify_min_score must be 0..100")
	}
	if cfg.Scraping.RequestsPerMinute <= 0 {
		errs = append(errs, "scraping.requests_per_minute must be > 0")
	}
	if cfg.Scraping.DelaySeconds < 0 {
		errs = append(errs, "scraping.delay_seconds must be >= 0")
	}

	for i, s := range cfg.Sites {
		if strings.TrimSpace(s.URL) == "" {
			errs = append(errs, fmt.Sprintf("sites[%d].url is required", i))
		}
		switch s.ScraperType {
		case "", "auto", "playwright", "selenium", "requests":
		default:
			errs = append(errs, fmt.Sprintf("sites[%d].scraper_type %q is not one of playwright|selenium|requests|auto", i, s.ScraperType))
		}
	}

	if cfg.Email.Enabled {
		if cfg.Email.From == "" {
			errs = append(errs, "email.from is required when email.enabled")
		}
		if len(cfg.Email.Recipients) == 0 {
			errs = append(errs, "email.recipients must have at least 1 address when email.enabled")
		}
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
)

const defaultAPIBaseURL = "https://api.openai.com/v1"

// Config holds runtime settings for the browser.
type Config struct {
	APIKey     string
	APIBaseURL string
	Model      string
	DBPath     string
}

func LoadFromEnv() (Config, error) {
	cfg := Config{
		APIKey:     os.Getenv("OPENAI_API_KEY"),
		APIBaseURL: os.Getenv("SKIM_API_BASE_URL"),
		Model:      os.Getenv("SKIM_MODEL"),
		DBPath:     os.Getenv("SKIM_DB_PATH"),
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "skim.db"
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("OPENAI_API_KEY is required")
	}
	if c.APIBaseURL == "" {
		return errors.New("APIBaseURL is required")
	}
	if c.Model == "" {
		return errors.New("Model is required")
	}
	if c.DBPath == "" {
		return errors.New("DBPath is required")
	}
	if c.APIBaseURL[len(c.APIBaseURL)-1] == '/' {
		return fmt.Errorf("APIBaseURL must not end with '/': %s", c.APIBaseURL)
	}
	return nil
}

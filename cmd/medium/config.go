package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/medium"
	configFileName = "config.yaml"
)

// Environment variables read by the CLI.
const (
	EnvClientID     = "MEDIUM_CLIENT_ID"
	EnvClientSecret = "MEDIUM_CLIENT_SECRET"
	EnvAccessToken  = "MEDIUM_ACCESS_TOKEN"
	EnvRedirectURL  = "MEDIUM_REDIRECT_URL"
)

// Config is the CLI configuration. Sources are layered file, then
// environment, then flags; a later non-empty value wins.
type Config struct {
	ClientID     string        `yaml:"client_id"`
	ClientSecret string        `yaml:"client_secret"`
	AccessToken  string        `yaml:"access_token"`
	RedirectURL  string        `yaml:"redirect_url"`
	BaseURL      string        `yaml:"base_url"`
	Timeout      time.Duration `yaml:"timeout"`
}

// defaultConfigPath returns ~/.config/medium/config.yaml, or a path relative
// to the working directory when the home directory is unknown.
func defaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return configFileName
	}
	return filepath.Join(homeDir, userConfigDir, configFileName)
}

// LoadConfigFile reads a YAML config file. A missing file yields an empty
// Config.
func LoadConfigFile(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv builds a Config from the MEDIUM_* environment variables.
func FromEnv(getenv func(string) string) Config {
	return Config{
		ClientID:     getenv(EnvClientID),
		ClientSecret: getenv(EnvClientSecret),
		AccessToken:  getenv(EnvAccessToken),
		RedirectURL:  getenv(EnvRedirectURL),
	}
}

// Merge overlays the non-empty fields of other onto c.
func (c Config) Merge(other Config) Config {
	if other.ClientID != "" {
		c.ClientID = other.ClientID
	}
	if other.ClientSecret != "" {
		c.ClientSecret = other.ClientSecret
	}
	if other.AccessToken != "" {
		c.AccessToken = other.AccessToken
	}
	if other.RedirectURL != "" {
		c.RedirectURL = other.RedirectURL
	}
	if other.BaseURL != "" {
		c.BaseURL = other.BaseURL
	}
	if other.Timeout > 0 {
		c.Timeout = other.Timeout
	}
	return c
}

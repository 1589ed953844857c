// Package config loads Redmine connection settings from a YAML file with
// REDMINE_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/apis/redmine"
	"github.com/SeniorPomidorro/redmine-go-kit/pkg/transport"
)

const defaultFileName = ".redmine.yaml"

// Config holds Redmine connection settings. At most one credential kind is used:
// api_key, then token, then username/password.
type Config struct {
	URL         string `yaml:"url"                   mapstructure:"url"`
	APIKey      string `yaml:"api_key,omitempty"     mapstructure:"api_key"`
	Username    string `yaml:"username,omitempty"    mapstructure:"username"`
	Password    string `yaml:"password,omitempty"    mapstructure:"password"`
	Token       string `yaml:"token,omitempty"       mapstructure:"token"`
	Format      string `yaml:"format,omitempty"      mapstructure:"format"`
	Impersonate string `yaml:"impersonate,omitempty" mapstructure:"impersonate"`
	Timeout     string `yaml:"timeout,omitempty"     mapstructure:"timeout"`
	PageSize    int    `yaml:"page_size,omitempty"   mapstructure:"page_size"`
}

var envBindings = map[string]string{
	"url":         "REDMINE_URL",
	"api_key":     "REDMINE_API_KEY",
	"username":    "REDMINE_USERNAME",
	"password":    "REDMINE_PASSWORD",
	"token":       "REDMINE_TOKEN",
	"format":      "REDMINE_FORMAT",
	"impersonate": "REDMINE_IMPERSONATE",
	"timeout":     "REDMINE_TIMEOUT",
	"page_size":   "REDMINE_PAGE_SIZE",
}

// DefaultPath returns the default config file path (~/.redmine.yaml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultFileName
	}
	return filepath.Join(home, defaultFileName)
}

// Load reads config from the YAML file and applies env var overrides.
// configPath may be empty to use the default path. A missing file is not an error.
func Load(configPath string) (Config, error) {
	v := viper.New()

	if configPath == "" {
		configPath = DefaultPath()
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetDefault("format", string(redmine.MimeXML))

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required fields are present and well formed.
func (c Config) Validate() error {
	if strings.TrimSpace(c.URL) == "" {
		return errors.New("redmine URL is required (set in config file or REDMINE_URL env var)")
	}
	if c.Format != "" {
		if _, err := redmine.ParseMimeType(c.Format); err != nil {
			return err
		}
	}
	if c.APIKey == "" && c.Token == "" && c.Password != "" && c.Username == "" {
		return errors.New("redmine username is required with a password (set in config file or REDMINE_USERNAME env var)")
	}
	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
		}
	}
	if c.PageSize < 0 {
		return fmt.Errorf("page size must not be negative, got %d", c.PageSize)
	}
	return nil
}

// Options converts the config into client options. Extra options are applied last.
func (c Config) Options(extra ...redmine.Option) ([]redmine.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	opts := []redmine.Option{redmine.WithBaseURL(c.URL)}

	if c.Format != "" {
		format, err := redmine.ParseMimeType(c.Format)
		if err != nil {
			return nil, err
		}
		opts = append(opts, redmine.WithFormat(format))
	}

	switch {
	case c.APIKey != "":
		opts = append(opts, redmine.WithAPIKey(c.APIKey))
	case c.Token != "":
		opts = append(opts, redmine.WithBearerToken(c.Token))
	case c.Username != "":
		opts = append(opts, redmine.WithBasicAuth(c.Username, c.Password))
	}

	if c.Impersonate != "" {
		opts = append(opts, redmine.WithImpersonation(c.Impersonate))
	}
	if c.PageSize > 0 {
		opts = append(opts, redmine.WithPageSize(c.PageSize))
	}
	if c.Timeout != "" {
		timeout, _ := time.ParseDuration(c.Timeout)
		opts = append(opts, redmine.WithTransport(transport.New(transport.WithTimeout(timeout))))
	}

	return append(opts, extra...), nil
}

// Save writes the config to the given path (or default path if empty).
func Save(cfg Config, configPath string) error {
	if configPath == "" {
		configPath = DefaultPath()
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

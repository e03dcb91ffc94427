package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "PROCESS_TEXT"

// Load reads the optional config file at path, overlays environment
// variables and validates the result. An empty path means environment only.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("completion.base_url", "https://api.openai.com/v1")
	v.SetDefault("completion.model", "gpt-4o-mini")
	v.SetDefault("completion.api_key", "")
	v.SetDefault("completion.auth_mode", AuthModeAPIKey)
	v.SetDefault("completion.timeout", "0s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("cors.allow_origins", []string{})
	v.SetDefault("metrics.path", "")
	v.SetDefault("request_timeout", "0s")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("completion.api_key", envPrefix+"_COMPLETION_API_KEY", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("error binding api key: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields the function cannot start without.
func (c *Config) Validate() error {
	if c.Completion.BaseURL == "" {
		return errors.New("completion.base_url is required")
	}
	if c.Completion.Model == "" {
		return errors.New("completion.model is required")
	}
	switch c.Completion.AuthMode {
	case AuthModeAPIKey:
		if c.Completion.APIKey == "" {
			return errors.New("completion.api_key is required (set OPENAI_API_KEY)")
		}
	case AuthModeGoogle:
	default:
		return fmt.Errorf("unknown completion.auth_mode %q", c.Completion.AuthMode)
	}
	if c.Completion.Timeout < 0 || c.RequestTimeout < 0 {
		return errors.New("timeouts must not be negative")
	}
	return nil
}

package config

import "time"

const (
	AuthModeAPIKey = "api_key"
	AuthModeGoogle = "google"
)

// Completion configures the outbound chat-completion client.
type Completion struct {
	BaseURL  string        `mapstructure:"base_url"`
	Model    string        `mapstructure:"model"`
	APIKey   string        `mapstructure:"api_key"`
	AuthMode string        `mapstructure:"auth_mode"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type CORS struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type Metrics struct {
	Path string `mapstructure:"path"`
}

// Config holds the function configuration.
type Config struct {
	Completion     Completion    `mapstructure:"completion"`
	Log            Log           `mapstructure:"log"`
	CORS           CORS          `mapstructure:"cors"`
	Metrics        Metrics       `mapstructure:"metrics"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

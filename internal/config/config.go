// Package config loads and validates the scanner configuration.
//
// Configuration comes from an optional YAML file with environment variable
// overrides (RDSINV_ prefix). The loaded Config is immutable; the scanner
// receives it once at construction.
package config

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// STS bounds on assumed-session duration.
const (
	MinSessionDuration = 15 * time.Minute
	MaxSessionDuration = 12 * time.Hour
)

// Config represents the complete scanner configuration.
type Config struct {
	// RoleName is the IAM role assumed in every target account.
	RoleName string `mapstructure:"roleName"`

	// Profile is the shared-config profile supplying the base identity.
	// Empty means the default credential chain.
	Profile string `mapstructure:"profile"`

	// DefaultRegion anchors the base clients (region discovery, the
	// organization directory, global STS).
	DefaultRegion string `mapstructure:"defaultRegion"`

	// Regions, when non-empty, is scanned as-is instead of discovering
	// enabled regions.
	Regions []string `mapstructure:"regions"`

	// AccountsFile is a CSV account list. When set, it replaces the
	// organization directory as the account source.
	AccountsFile string `mapstructure:"accountsFile"`

	// SessionDuration bounds each credential lease.
	SessionDuration time.Duration `mapstructure:"sessionDuration"`

	// LogLevel controls log verbosity: debug, info, warn, error.
	LogLevel string `mapstructure:"logLevel"`

	// LogFormat selects the log renderer: text or json.
	LogFormat string `mapstructure:"logFormat"`
}

// Load reads configuration from the given file path (optional when empty)
// plus environment overrides, applies defaults, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("roleName", "MyReadOnlyRole")
	v.SetDefault("defaultRegion", "us-east-1")
	v.SetDefault("sessionDuration", "1h")
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFormat", "text")

	v.SetEnvPrefix("RDSINV")
	_ = v.BindEnv("roleName", "RDSINV_ROLE_NAME")
	_ = v.BindEnv("profile", "RDSINV_PROFILE")
	_ = v.BindEnv("defaultRegion", "RDSINV_DEFAULT_REGION")
	_ = v.BindEnv("accountsFile", "RDSINV_ACCOUNTS_FILE")
	_ = v.BindEnv("sessionDuration", "RDSINV_SESSION_DURATION")
	_ = v.BindEnv("logLevel", "RDSINV_LOG_LEVEL")
	_ = v.BindEnv("logFormat", "RDSINV_LOG_FORMAT")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.RoleName == "" {
		return fmt.Errorf("roleName must not be empty")
	}
	if c.DefaultRegion == "" {
		return fmt.Errorf("defaultRegion must not be empty")
	}
	if c.SessionDuration < MinSessionDuration || c.SessionDuration > MaxSessionDuration {
		return fmt.Errorf("sessionDuration %s outside STS bounds [%s, %s]",
			c.SessionDuration, MinSessionDuration, MaxSessionDuration)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid logLevel %q", c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid logFormat %q (want text or json)", c.LogFormat)
	}
	return nil
}

// Package config loads wxk-check settings from an optional YAML file and
// WXK_ environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/kokeshes/wxk-check/internal/diagnosis"
)

// EnvPrefix is the prefix of environment overrides, e.g. WXK_DB.
const EnvPrefix = "WXK"

// FileName is the config file name looked up in Dir.
const FileName = "config.yaml"

// Config is the resolved application configuration.
type Config struct {
	// DBPath is the SQLite file. Empty means the default data path.
	DBPath string `mapstructure:"db" yaml:"db"`

	// CatalogPath and QuestionsPath override the embedded documents.
	CatalogPath   string `mapstructure:"catalog" yaml:"catalog"`
	QuestionsPath string `mapstructure:"questions" yaml:"questions"`

	// Profile is the default profile for new logs and diagnoses.
	Profile string `mapstructure:"profile" yaml:"profile"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// BaselineCode is pre-seeded at BaselineScore in every session. A
	// zero score disables the baseline.
	BaselineCode  string `mapstructure:"baseline_code" yaml:"baseline_code"`
	BaselineScore int    `mapstructure:"baseline_score" yaml:"baseline_score"`

	// Limit is the number of ranked results shown.
	Limit int `mapstructure:"limit" yaml:"limit"`

	// DraftKeep is how many saved drafts survive pruning.
	DraftKeep int `mapstructure:"draft_keep" yaml:"draft_keep"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Profile:       "other",
		LogLevel:      "info",
		BaselineCode:  "E000",
		BaselineScore: 0,
		Limit:         3,
		DraftKeep:     20,
	}
}

// Dir returns the config directory: $XDG_CONFIG_HOME/wxk-check, falling
// back to the platform user config dir.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		var err error
		base, err = os.UserConfigDir()
		if err != nil {
			return "", err
		}
	}
	return filepath.Join(base, "wxk-check"), nil
}

// Load resolves the configuration. When path is empty, FileName is looked
// up in Dir and may be absent; an explicit path must exist. Environment
// variables override the file.
func Load(path string) (*Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("db", def.DBPath)
	v.SetDefault("catalog", def.CatalogPath)
	v.SetDefault("questions", def.QuestionsPath)
	v.SetDefault("profile", def.Profile)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("baseline_code", def.BaselineCode)
	v.SetDefault("baseline_score", def.BaselineScore)
	v.SetDefault("limit", def.Limit)
	v.SetDefault("draft_keep", def.DraftKeep)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		dir, err := Dir()
		if err == nil {
			v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
			v.SetConfigType("yaml")
			v.AddConfigPath(dir)
			if err := v.ReadInConfig(); err != nil {
				var notFound viper.ConfigFileNotFoundError
				if !errors.As(err, &notFound) {
					return nil, err
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Level returns the parsed log level.
func (c *Config) Level() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return &ConfigError{Field: "log_level", Message: "unknown level " + c.LogLevel}
	}
	if c.BaselineScore < 0 {
		return &ConfigError{Field: "baseline_score", Message: "must not be negative"}
	}
	if c.BaselineScore > 0 && c.BaselineCode == "" {
		return &ConfigError{Field: "baseline_code", Message: "required when baseline_score is set"}
	}
	if c.Limit < 1 || c.Limit > diagnosis.DefaultLimit {
		return &ConfigError{Field: "limit", Message: fmt.Sprintf("must be between 1 and %d", diagnosis.DefaultLimit)}
	}
	if c.DraftKeep < 1 {
		return &ConfigError{Field: "draft_keep", Message: "must be at least 1"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}

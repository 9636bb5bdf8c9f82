package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "NAVB"

// EnvConfig holds environment overrides. Unset variables leave the file
// value alone.
type EnvConfig struct {
	// Env: NAVB_PROFILE_NAME
	ProfileName string `envconfig:"PROFILE_NAME"`

	// ReservedPaths is a comma-separated list.
	// Env: NAVB_RESERVED_PATHS
	ReservedPaths []string `envconfig:"RESERVED_PATHS"`

	// Env: NAVB_OUTPUT_FORMAT (json or yaml)
	OutputFormat string `envconfig:"OUTPUT_FORMAT"`

	// Env: NAVB_OUTPUT_FILE
	OutputFile string `envconfig:"OUTPUT_FILE"`

	// Env: NAVB_HISTORY_FILE
	HistoryFile string `envconfig:"HISTORY_FILE"`

	// Env: NAVB_LOG_LEVEL
	LogLevel string `envconfig:"LOG_LEVEL"`

	// Env: NAVB_LOG_FORMAT (pretty or json)
	LogFormat string `envconfig:"LOG_FORMAT"`

	// Env: NAVB_LOG_FILE
	LogFile string `envconfig:"LOG_FILE"`
}

// LoadFromEnv reads NAVB_* variables.
func LoadFromEnv() (EnvConfig, error) {
	var env EnvConfig
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return EnvConfig{}, fmt.Errorf("process env: %w", err)
	}
	return env, nil
}

// LoadDotEnv loads variables from path. A missing file is not an error and
// variables already set in the process environment win.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// ApplyEnv loads dotenvPath, then overlays NAVB_* variables on cfg.
func ApplyEnv(cfg *ProfileConfig, dotenvPath string) error {
	if err := LoadDotEnv(dotenvPath); err != nil {
		return fmt.Errorf("load %s: %w", dotenvPath, err)
	}
	env, err := LoadFromEnv()
	if err != nil {
		return err
	}
	env.apply(cfg)
	return cfg.validate()
}

func (e EnvConfig) apply(cfg *ProfileConfig) {
	if e.ProfileName != "" {
		cfg.ProfileName = e.ProfileName
	}
	if len(e.ReservedPaths) > 0 {
		cfg.Validation.ReservedPaths = e.ReservedPaths
	}
	if e.OutputFormat != "" {
		cfg.Output.Format = e.OutputFormat
	}
	if e.OutputFile != "" {
		cfg.Output.FileName = e.OutputFile
	}
	if e.HistoryFile != "" {
		cfg.Shell.HistoryFile = e.HistoryFile
	}
	if e.LogLevel != "" {
		cfg.Logging.Level = e.LogLevel
	}
	if e.LogFormat != "" {
		cfg.Logging.Format = e.LogFormat
	}
	if e.LogFile != "" {
		cfg.Logging.FilePath = e.LogFile
	}
}

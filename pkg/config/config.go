package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the profile configuration file inside a profile directory.
const FileName = "config.toml"

// ValidationConfig controls the navigation validator.
type ValidationConfig struct {
	ReservedPaths []string `toml:"reservedPaths"`
}

// OutputConfig controls export.
type OutputConfig struct {
	Format   string `toml:"format"`
	FileName string `toml:"fileName"`
}

// ShellConfig controls the interactive editor.
type ShellConfig struct {
	HistoryFile string `toml:"historyFile"`
	Prompt      string `toml:"prompt"`
}

// LoggingConfig defines basic logging knobs.
type LoggingConfig struct {
	Level       string `toml:"level"`
	Format      string `toml:"format"`
	FilePath    string `toml:"filePath"`
	FileMaxSize int    `toml:"fileMaxSizeMB"`
}

// ProfileConfig aggregates configuration for a profile.
type ProfileConfig struct {
	ProfileName string           `toml:"profileName"`
	Validation  ValidationConfig `toml:"validation"`
	Output      OutputConfig     `toml:"output"`
	Shell       ShellConfig      `toml:"shell"`
	Logging     LoggingConfig    `toml:"logging"`
}

// DefaultProfile returns a profile with every setting filled in.
func DefaultProfile(name string) *ProfileConfig {
	return &ProfileConfig{
		ProfileName: name,
		Validation:  ValidationConfig{ReservedPaths: []string{"/api", "/mcp"}},
		Output:      OutputConfig{Format: "json", FileName: "navigation.json"},
		Shell:       ShellConfig{HistoryFile: ".navb_history", Prompt: "navb> "},
		Logging:     LoggingConfig{Level: "info", Format: "pretty"},
	}
}

// Load reads a config file from path, applies defaults for missing keys and
// validates the result.
func Load(path string) (*ProfileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultProfile("")
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadProfile reads config.toml from a profile directory.
func LoadProfile(dir string) (*ProfileConfig, error) {
	return Load(filepath.Join(dir, FileName))
}

// LoadOrDefault reads the profile when it exists and falls back to defaults
// otherwise. Environment overrides are applied in both cases.
func LoadOrDefault(dir string) (*ProfileConfig, error) {
	cfg, err := LoadProfile(dir)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = DefaultProfile("default"), nil
	}
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg, filepath.Join(dir, ".env")); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path as TOML.
func Save(path string, cfg *ProfileConfig) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o600)
}

// ResolvePath resolves p relative to the profile directory unless absolute.
func ResolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

func (cfg *ProfileConfig) validate() error {
	if cfg.ProfileName == "" {
		return fmt.Errorf("profileName required")
	}
	for _, r := range cfg.Validation.ReservedPaths {
		if strings.TrimSpace(r) == "" {
			return fmt.Errorf("validation.reservedPaths: empty entry")
		}
	}
	switch cfg.Output.Format {
	case "":
		cfg.Output.Format = "json"
	case "json", "yaml":
	default:
		return fmt.Errorf("output.format: unsupported %q (want json or yaml)", cfg.Output.Format)
	}
	switch cfg.Logging.Format {
	case "":
		cfg.Logging.Format = "pretty"
	case "pretty", "json":
	default:
		return fmt.Errorf("logging.format: unsupported %q (want pretty or json)", cfg.Logging.Format)
	}
	if cfg.Logging.FileMaxSize < 0 {
		return fmt.Errorf("logging.fileMaxSizeMB must not be negative")
	}
	if cfg.Shell.Prompt == "" {
		cfg.Shell.Prompt = "navb> "
	}
	return nil
}

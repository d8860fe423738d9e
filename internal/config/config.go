package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/san-kum/fibviz/internal/driver"
	"github.com/san-kum/fibviz/internal/fib"
	"github.com/san-kum/fibviz/internal/logging"
	"gopkg.in/yaml.v3"
)

const (
	DefaultLogLevel = logging.LevelInfo
	fileName        = "config.yaml"
)

var (
	ErrInvalidTerms    = errors.New("config: terms must be between 1 and 50")
	ErrInvalidLogLevel = errors.New("config: unknown log level")
)

// Config holds the two user-facing parameters and where logs go.
type Config struct {
	Terms    int       `yaml:"terms"`
	AutoPlay bool      `yaml:"autoplay"`
	Log      LogConfig `yaml:"log"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		Terms:    driver.DefaultTerms,
		AutoPlay: false,
		Log: LogConfig{
			File:  filepath.Join(DefaultDir(), "fibviz.log"),
			Level: DefaultLogLevel,
		},
	}
}

// DefaultDir is the per-user config directory, falling back to the
// working directory when the OS does not report one.
func DefaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".fibviz"
	}
	return filepath.Join(dir, "fibviz")
}

// DefaultPath is where Load looks when no file is given.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), fileName)
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if !fib.ValidTerms(c.Terms) {
		return fmt.Errorf("%w (got %d)", ErrInvalidTerms, c.Terms)
	}
	if c.Log.Level != "" && !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Log.Level)
	}
	return nil
}

// DriverOptions converts the config into driver options.
func (c *Config) DriverOptions() []driver.Option {
	return []driver.Option{driver.WithInitial(c.Terms, c.AutoPlay)}
}

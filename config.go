package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

const defaultConfigName = ".fieldpath.yaml"

type Config struct {
	App   AppConfig   `yaml:"app"`
	Field FieldConfig `yaml:"field"`
	Share ShareConfig `yaml:"share"`
	HTTP  HTTPConfig  `yaml:"http"`
}

type AppConfig struct {
	SaveDirectory string     `yaml:"save_directory"`
	LogLevel      slog.Level `yaml:"log_level"`
	LogFile       string     `yaml:"log_file"`
	Confirmations bool       `yaml:"confirmations"`
}

// FieldConfig describes the field surface. Width and Height are in field
// units; MarkerRadius is in viewport cells.
type FieldConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	MarkerRadius   float64 `yaml:"marker_radius"`
	HighlightMs    int     `yaml:"highlight_ms"`
	DefaultTimeout float64 `yaml:"default_timeout"`
}

func (c *FieldConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Width, validation.Required, validation.Min(1.0)),
		validation.Field(&c.Height, validation.Required, validation.Min(1.0)),
		validation.Field(&c.MarkerRadius, validation.Required, validation.Min(0.5)),
		validation.Field(&c.HighlightMs, validation.Min(0)),
		validation.Field(&c.DefaultTimeout, validation.Min(0.0)),
	)
}

func (c *FieldConfig) Highlight() time.Duration {
	return time.Duration(c.HighlightMs) * time.Millisecond
}

type ShareConfig struct {
	BaseURL string `yaml:"base_url"`
	Param   string `yaml:"param"`
}

func (c *ShareConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required),
		validation.Field(&c.Param, validation.Required),
	)
}

type HTTPConfig struct {
	Port int `yaml:"port"`
}

func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

func (c *Config) Validate() error {
	if err := c.Field.Validate(); err != nil {
		return fmt.Errorf("field: %w", err)
	}
	if err := c.Share.Validate(); err != nil {
		return fmt.Errorf("share: %w", err)
	}
	if err := c.HTTP.Validate(); err != nil {
		return fmt.Errorf("http: %w", err)
	}
	return nil
}

func NewDefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			LogLevel:      slog.LevelInfo,
			LogFile:       filepath.Join(os.TempDir(), "fieldpath.log"),
			Confirmations: true,
		},
		Field: FieldConfig{
			Width:          defaultFieldWidth,
			Height:         defaultFieldHeight,
			MarkerRadius:   2,
			HighlightMs:    1000,
			DefaultTimeout: defaultTimeout,
		},
		Share: ShareConfig{
			BaseURL: "https://fieldpath.local/",
			Param:   defaultShareParam,
		},
		HTTP: HTTPConfig{
			Port: 8080,
		},
	}
}

// loadConfig reads a YAML config with environment expansion. An empty path
// means ~/.fieldpath.yaml, which may be absent.
func loadConfig(path string) (*Config, error) {
	config := NewDefaultConfig()

	explicit := path != ""
	if !explicit {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return config, nil
		}
		path = filepath.Join(homeDir, defaultConfigName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	config.App.SaveDirectory = expandDir(config.App.SaveDirectory)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return config, nil
}

func expandDir(value string) string {
	if value == "" {
		return value
	}
	if strings.HasPrefix(value, "~") {
		if homeDir, err := os.UserHomeDir(); err == nil {
			value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
		}
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

func (c *Config) GetSavePath(filename string) (string, error) {
	if c.App.SaveDirectory == "" {
		return filename, nil
	}
	if err := os.MkdirAll(c.App.SaveDirectory, 0o755); err != nil {
		return "", fmt.Errorf("create save directory: %w", err)
	}
	return filepath.Join(c.App.SaveDirectory, filename), nil
}

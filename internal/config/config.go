package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file
const (
	EnvAPIKey      = "AI21_API_KEY"
	EnvModel       = "CVGEN_MODEL"
	EnvTemperature = "CVGEN_TEMPERATURE"
	EnvConfigDir   = "CVGEN_CONFIG_DIR"
)

const DefaultBaseURL = "https://api.ai21.com/studio/v1"

type Config struct {
	APIKey      string  `yaml:"api_key,omitempty"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	BaseURL     string  `yaml:"base_url,omitempty"`

	// Timeout bounds a single completion request. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// fileAPIKey is the key held by the config file. keyOverride marks
	// APIKey as set from the environment or a flag; Save keeps such a
	// key out of the file.
	fileAPIKey  string
	keyOverride bool
}

func DefaultConfig() *Config {
	return &Config{
		Model:       DefaultModel,
		Temperature: 0.5,
		BaseURL:     DefaultBaseURL,
	}
}

func ConfigDir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "cvgen"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the config file. A missing file yields (nil, nil).
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.fileAPIKey = cfg.APIKey

	return cfg, nil
}

// Resolve loads .env, then the config file (or defaults), then applies
// environment overrides.
func Resolve() (*Config, error) {
	// .env is optional and may set the config dir
	_ = godotenv.Load()

	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the process environment.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.OverrideAPIKey(v)
	}
	if v := os.Getenv(EnvModel); v != "" {
		c.Model = v
	}
	if v := os.Getenv(EnvTemperature); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTemperature, err)
		}
		c.Temperature = t
	}
	return nil
}

// Validate checks the fields a completion request depends on.
func (c *Config) Validate() error {
	if GetModel(c.Model) == nil {
		return fmt.Errorf("unknown model %q: must be one of %v", c.Model, ModelIDs())
	}
	if math.IsNaN(c.Temperature) || c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("temperature %v out of range [0,1]", c.Temperature)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	out := *c
	if c.keyOverride {
		out.APIKey = c.fileAPIKey
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return err
	}
	c.fileAPIKey = out.APIKey
	return nil
}

// SetAPIKey sets a key that Save writes to the config file.
func (c *Config) SetAPIKey(key string) {
	c.APIKey = key
	c.keyOverride = false
}

// OverrideAPIKey sets a key for this process only. Save keeps whatever
// key the file already had.
func (c *Config) OverrideAPIKey(key string) {
	c.APIKey = key
	c.keyOverride = true
}

// MaskedAPIKey returns the key with its middle hidden, for display.
func (c *Config) MaskedAPIKey() string {
	if c.APIKey == "" {
		return "Not set"
	}
	if len(c.APIKey) > 8 {
		return c.APIKey[:4] + "****" + c.APIKey[len(c.APIKey)-4:]
	}
	return "****"
}

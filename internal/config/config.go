package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable tripdesk reads.
const EnvPrefix = "TRIPDESK_"

// Defaults.
const (
	DefaultBaseURL      = "http://localhost:8080"
	DefaultTimeout      = 30 * time.Second
	DefaultUserAgent    = "tripdesk"
	DefaultTab          = "pending"
	DefaultItemsPerPage = 10
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "json"
	configFileName      = "config.yaml"
	credentialsFileName = "credentials.json"
	dirName             = ".tripdesk"
)

// Config is the full tripdesk configuration.
type Config struct {
	API       APIConfig       `yaml:"api"       envPrefix:"API_"`
	Dashboard DashboardConfig `yaml:"dashboard" envPrefix:"DASHBOARD_"`
	Logging   LoggingConfig   `yaml:"logging"   envPrefix:"LOG_"`

	configPath string
}

// APIConfig points at the headless REST service.
type APIConfig struct {
	BaseURL   string        `yaml:"base_url"   env:"BASE_URL"   validate:"required,url"`
	Timeout   time.Duration `yaml:"timeout"    env:"TIMEOUT"    validate:"gte=0"`
	PageSize  int           `yaml:"page_size"  env:"PAGE_SIZE"  validate:"gte=0"`
	UserAgent string        `yaml:"user_agent" env:"USER_AGENT"`
}

// DashboardConfig holds the initial view state.
type DashboardConfig struct {
	DefaultTab   string `yaml:"default_tab"    env:"DEFAULT_TAB"    validate:"oneof=pending approved rejected"`
	ItemsPerPage int    `yaml:"items_per_page" env:"ITEMS_PER_PAGE" validate:"oneof=5 10 15 20"`
}

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	Level  string `yaml:"level"  env:"LEVEL"  validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format" env:"FORMAT" validate:"oneof=json console"`
	File   string `yaml:"file"   env:"FILE"`
}

// Default returns a configuration populated with defaults only.
func Default() *Config {
	logFile := ""
	if dir, err := GetConfigDir(); err == nil {
		logFile = filepath.Join(dir, "logs", "tripdesk.log")
	}

	return &Config{
		API: APIConfig{
			BaseURL:   DefaultBaseURL,
			Timeout:   DefaultTimeout,
			UserAgent: DefaultUserAgent,
		},
		Dashboard: DashboardConfig{
			DefaultTab:   DefaultTab,
			ItemsPerPage: DefaultItemsPerPage,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
			File:   logFile,
		},
	}
}

// New loads configuration from the default location, applying the environment
// on top. Load errors are swallowed in favor of defaults so the CLI can start;
// use Load to see them.
func New() *Config {
	cfg, err := Load("")
	if err != nil {
		cfg = Default()
		cfg.configPath = defaultConfigPath()
	}
	return cfg
}

// Load reads the YAML file at path (or the default path when empty), then
// overlays TRIPDESK_* environment variables, including any from a local .env.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvPrefix + "CONFIG")
	}
	if path == "" {
		path = defaultConfigPath()
	}

	cfg := Default()
	cfg.configPath = path

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// loadDotEnv loads .env from the working directory if present.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return fmt.Errorf("load .env file: %w", err)
		}
	}
	return nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("invalid %s: failed %q constraint (value %v)",
				first.Namespace(), first.Tag(), first.Value())
		}
		return err
	}
	return nil
}

// Save writes the configuration as YAML to its config path.
func (c *Config) Save() error {
	path := c.ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// ConfigPath returns the file this configuration is bound to.
func (c *Config) ConfigPath() string {
	if c.configPath == "" {
		return defaultConfigPath()
	}
	return c.configPath
}

// SetConfigPath rebinds the configuration to another file.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// GetConfigDir returns $TRIPDESK_HOME, or ~/.tripdesk.
func GetConfigDir() (string, error) {
	if dir := os.Getenv(EnvPrefix + "HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determining home directory: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// CredentialsPath returns the location of the persisted credential file.
func CredentialsPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, credentialsFileName), nil
}

func defaultConfigPath() string {
	dir, err := GetConfigDir()
	if err != nil {
		return configFileName
	}
	return filepath.Join(dir, configFileName)
}

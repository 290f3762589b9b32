package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// FileNames are searched in this order in every directory.
var FileNames = []string{"crudgen.json", "crudgen.yaml", "crudgen.yml"}

// EnvPrefix prefixes environment overrides, e.g. CRUDGEN_OUTPUT_DIR.
const EnvPrefix = "CRUDGEN"

// Config represents the crudgen configuration file
type Config struct {
	OutputDir        string      `mapstructure:"output_dir" json:"output_dir"`
	TemplatesDir     string      `mapstructure:"templates_dir" json:"templates_dir,omitempty"`
	StrictFieldTypes bool        `mapstructure:"strict_field_types" json:"strict_field_types"`
	Serve            ServeConfig `mapstructure:"serve" json:"serve"`
	Watch            WatchConfig `mapstructure:"watch" json:"watch"`
}

// ServeConfig contains HTTP server configuration
type ServeConfig struct {
	Host string `mapstructure:"host" json:"host"`
	Port int    `mapstructure:"port" json:"port"`
}

// Addr returns host:port.
func (s ServeConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// WatchConfig contains watch mode configuration
type WatchConfig struct {
	Patterns []string `mapstructure:"patterns" json:"patterns"`
	Exclude  []string `mapstructure:"exclude" json:"exclude"`
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("output_dir", ".")
	v.SetDefault("templates_dir", "")
	v.SetDefault("strict_field_types", true)
	v.SetDefault("serve.host", "localhost")
	v.SetDefault("serve.port", 8787)
	v.SetDefault("watch.patterns", []string{"*.crud.json"})
	v.SetDefault("watch.exclude", []string{"node_modules/", ".git/", ".next/"})

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is found, with
// environment overrides applied.
func Default() (*Config, error) {
	return decode(newViper())
}

// LoadConfig loads the configuration from the current directory or a parent
// directory. Without a file it returns the defaults and the current directory.
func LoadConfig() (*Config, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get current directory: %w", err)
	}

	return loadConfigFromDir(dir)
}

// LoadConfigFromPath loads the configuration from a specific file. Relative
// directories in it are resolved against the file's directory.
func LoadConfigFromPath(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	cfg.resolve(filepath.Dir(path))
	return cfg, nil
}

// loadConfigFromDir searches for a config file in the given directory and its parents
func loadConfigFromDir(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		for _, name := range FileNames {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				config, err := LoadConfigFromPath(configPath)
				if err != nil {
					return nil, "", err
				}
				return config, dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	cfg, err := Default()
	if err != nil {
		return nil, "", err
	}
	cfg.resolve(startDir)
	return cfg, startDir, nil
}

func (c *Config) resolve(base string) {
	if c.OutputDir != "" && !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(base, c.OutputDir)
	}
	if c.TemplatesDir != "" && !filepath.IsAbs(c.TemplatesDir) {
		c.TemplatesDir = filepath.Join(base, c.TemplatesDir)
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("%w: output_dir must not be empty", ErrInvalidConfig)
	}
	if c.Serve.Port < 1 || c.Serve.Port > 65535 {
		return fmt.Errorf("%w: serve.port must be between 1 and 65535, got %d", ErrInvalidConfig, c.Serve.Port)
	}
	if len(c.Watch.Patterns) == 0 {
		return fmt.Errorf("%w: watch.patterns must not be empty", ErrInvalidConfig)
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/hyperparameters/pkg/hyperparams"
)

const (
	defaultOutputDir   = "."
	defaultEnvFile     = ".env"
	defaultLogLevel    = "info"
	defaultLogEncoding = "json"

	envPrefix = "HYPERPARAMS"
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > Environment variables > YAML config > Defaults
type Config struct {
	Prefix          string
	OutputDir       string
	EnvFile         string
	LogLevel        string
	LogEncoding     string
	Hyperparameters []Declaration
}

// Declaration names a hyperparameter and the type it is parsed as.
type Declaration struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	Prefix          *string       `yaml:"prefix"`
	OutputDir       string        `yaml:"output_dir"`
	EnvFile         string        `yaml:"env_file"`
	Logging         yamlLogging   `yaml:"logging"`
	Hyperparameters []Declaration `yaml:"hyperparameters"`
}

// yamlLogging represents the logging section in YAML.
type yamlLogging struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

// envConfig is populated from HYPERPARAMS_* variables. Keys are derived with
// split_words so envconfig never falls back to unprefixed names.
type envConfig struct {
	Prefix      string `split_words:"true"`
	OutputDir   string `split_words:"true"`
	EnvFile     string `split_words:"true"`
	LogLevel    string `split_words:"true"`
	LogEncoding string `split_words:"true"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile  string
	Prefix      *string
	OutputDir   *string
	EnvFile     *string
	LogLevel    *string
	LogEncoding *string
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > Environment variables > YAML config > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	// Load from YAML file if specified
	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		applyYAMLConfig(&cfg, yamlCfg)
	}

	// Apply environment variables (override YAML)
	if err := applyEnvConfig(&cfg); err != nil {
		return Config{}, err
	}

	// Apply CLI overrides (highest precedence)
	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	// Validate final configuration
	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Manifest returns the declared names and their parse types in file order.
func (c Config) Manifest() ([]string, []hyperparams.Type, error) {
	names := make([]string, 0, len(c.Hyperparameters))
	types := make([]hyperparams.Type, 0, len(c.Hyperparameters))
	for _, decl := range c.Hyperparameters {
		t, err := hyperparams.ParseType(decl.Type)
		if err != nil {
			return nil, nil, fmt.Errorf("hyperparameter %q: %w", decl.Name, err)
		}
		names = append(names, decl.Name)
		types = append(types, t)
	}
	return names, types, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		Prefix:      hyperparams.DefaultPrefix,
		OutputDir:   defaultOutputDir,
		EnvFile:     defaultEnvFile,
		LogLevel:    defaultLogLevel,
		LogEncoding: defaultLogEncoding,
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) {
	if yamlCfg.Prefix != nil {
		cfg.Prefix = *yamlCfg.Prefix
	}

	if yamlCfg.OutputDir != "" {
		cfg.OutputDir = yamlCfg.OutputDir
	}

	if yamlCfg.EnvFile != "" {
		cfg.EnvFile = yamlCfg.EnvFile
	}

	if yamlCfg.Logging.Level != "" {
		cfg.LogLevel = yamlCfg.Logging.Level
	}

	if yamlCfg.Logging.Encoding != "" {
		cfg.LogEncoding = yamlCfg.Logging.Encoding
	}

	if len(yamlCfg.Hyperparameters) > 0 {
		cfg.Hyperparameters = yamlCfg.Hyperparameters
	}
}

// applyEnvConfig applies HYPERPARAMS_* environment variables. Empty values
// are treated as unset.
func applyEnvConfig(cfg *Config) error {
	var env envConfig
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return fmt.Errorf("read %s_* environment: %w", envPrefix, err)
	}

	if prefix := strings.TrimSpace(env.Prefix); prefix != "" {
		cfg.Prefix = prefix
	}

	if dir := strings.TrimSpace(env.OutputDir); dir != "" {
		cfg.OutputDir = dir
	}

	if file := strings.TrimSpace(env.EnvFile); file != "" {
		cfg.EnvFile = file
	}

	if level := strings.TrimSpace(env.LogLevel); level != "" {
		cfg.LogLevel = level
	}

	if encoding := strings.TrimSpace(env.LogEncoding); encoding != "" {
		cfg.LogEncoding = encoding
	}

	return nil
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.Prefix != nil && *overrides.Prefix != "" {
		cfg.Prefix = *overrides.Prefix
	}

	if overrides.OutputDir != nil && *overrides.OutputDir != "" {
		cfg.OutputDir = *overrides.OutputDir
	}

	if overrides.EnvFile != nil && *overrides.EnvFile != "" {
		cfg.EnvFile = *overrides.EnvFile
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}

	if overrides.LogEncoding != nil && *overrides.LogEncoding != "" {
		cfg.LogEncoding = *overrides.LogEncoding
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	if cfg.LogEncoding != "json" && cfg.LogEncoding != "console" {
		return fmt.Errorf("log encoding must be json or console, got %q", cfg.LogEncoding)
	}
	if strings.TrimSpace(cfg.OutputDir) == "" {
		return fmt.Errorf("output directory cannot be empty")
	}

	seen := make(map[string]struct{}, len(cfg.Hyperparameters))
	for _, decl := range cfg.Hyperparameters {
		name, err := hyperparams.CanonicalName(decl.Name)
		if err != nil {
			return fmt.Errorf("hyperparameter declaration: %w", err)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("hyperparameter %q declared twice", name)
		}
		seen[name] = struct{}{}

		if _, err := hyperparams.ParseType(decl.Type); err != nil {
			return fmt.Errorf("hyperparameter %q: %w", name, err)
		}
	}
	return nil
}

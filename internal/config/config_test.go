package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/eugenenazirov/hyperparameters/pkg/hyperparams"
)

const sampleYAML = `
prefix: HP_
output_dir: /opt/ml/output
env_file: job.env
logging:
  level: debug
  encoding: console
hyperparameters:
  - name: learning_rate
  - name: epochs
    type: int
  - name: optimizer
    type: string
`

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PREFIX", "OUTPUT_DIR", "ENV_FILE", "LOG_LEVEL", "LOG_ENCODING"} {
		t.Setenv(envPrefix+"_"+key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hyperparams.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Prefix != hyperparams.DefaultPrefix {
		t.Fatalf("expected default prefix %s, got %s", hyperparams.DefaultPrefix, cfg.Prefix)
	}
	if cfg.OutputDir != defaultOutputDir || cfg.EnvFile != defaultEnvFile {
		t.Fatalf("unexpected paths: %+v", cfg)
	}
	if cfg.LogLevel != "info" || cfg.LogEncoding != "json" {
		t.Fatalf("unexpected logging defaults: %s/%s", cfg.LogLevel, cfg.LogEncoding)
	}
	if len(cfg.Hyperparameters) != 0 {
		t.Fatalf("expected no declarations, got %v", cfg.Hyperparameters)
	}
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(&CLIOverrides{ConfigFile: writeConfig(t, sampleYAML)})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Prefix != "HP_" || cfg.OutputDir != "/opt/ml/output" || cfg.EnvFile != "job.env" {
		t.Fatalf("YAML values not applied: %+v", cfg)
	}
	if cfg.LogLevel != "debug" || cfg.LogEncoding != "console" {
		t.Fatalf("YAML logging not applied: %s/%s", cfg.LogLevel, cfg.LogEncoding)
	}

	names, types, err := cfg.Manifest()
	if err != nil {
		t.Fatalf("Manifest returned error: %v", err)
	}
	if want := []string{"learning_rate", "epochs", "optimizer"}; len(names) != len(want) || names[0] != want[0] || names[2] != want[2] {
		t.Fatalf("unexpected names: %v", names)
	}
	if types[0].String() != "float64" || types[1].String() != "int" || types[2].String() != "string" {
		t.Fatalf("unexpected types: %v", types)
	}
}

func TestLoadYAMLEmptyPrefix(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(&CLIOverrides{ConfigFile: writeConfig(t, "prefix: \"\"\n")})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Prefix != "" {
		t.Fatalf("expected empty prefix, got %q", cfg.Prefix)
	}
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("HYPERPARAMS_PREFIX", "ENV_")
	t.Setenv("HYPERPARAMS_OUTPUT_DIR", "/env/out")
	t.Setenv("HYPERPARAMS_LOG_LEVEL", "warn")

	outputDir := "/cli/out"
	cfg, err := Load(&CLIOverrides{
		ConfigFile: writeConfig(t, sampleYAML),
		OutputDir:  &outputDir,
	})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Prefix != "ENV_" {
		t.Fatalf("expected env to override YAML prefix, got %s", cfg.Prefix)
	}
	if cfg.OutputDir != "/cli/out" {
		t.Fatalf("expected CLI to override env output dir, got %s", cfg.OutputDir)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("expected env log level, got %s", cfg.LogLevel)
	}
	if cfg.EnvFile != "job.env" {
		t.Fatalf("expected YAML env file to survive, got %s", cfg.EnvFile)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := map[string]string{
		"unknown type":   "hyperparameters:\n  - name: x\n    type: matrix\n",
		"duplicate name": "hyperparameters:\n  - name: x\n  - name: X\n",
		"invalid name":   "hyperparameters:\n  - name: \"two words\"\n",
		"bad level":      "logging:\n  level: loud\n",
		"bad encoding":   "logging:\n  encoding: xml\n",
		"invalid yaml":   "hyperparameters: [",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			if _, err := Load(&CLIOverrides{ConfigFile: writeConfig(t, content)}); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	if _, err := Load(&CLIOverrides{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")}); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestLoadIgnoresUnprefixedEnvironment(t *testing.T) {
	clearEnv(t)
	// clearEnv registered restores; unset so envconfig sees the keys as absent.
	for _, key := range []string{"HYPERPARAMS_LOG_LEVEL", "HYPERPARAMS_OUTPUT_DIR"} {
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}
	t.Setenv("LOG_LEVEL", "loud")
	t.Setenv("OUTPUT_DIR", "/elsewhere")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LogLevel != defaultLogLevel || cfg.OutputDir != defaultOutputDir {
		t.Fatalf("unprefixed variables leaked into config: %+v", cfg)
	}
}

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eugenenazirov/hyperparameters/internal/application"
	"github.com/eugenenazirov/hyperparameters/pkg/environment"
	"github.com/eugenenazirov/hyperparameters/pkg/hyperparams"
)

func withEnv(vars map[string]string) application.Option {
	return application.WithEnvironment(environment.NewMemory(vars))
}

func TestRunGet(t *testing.T) {
	t.Setenv("HYPERPARAMS_ENV_FILE", filepath.Join(t.TempDir(), "none.env"))

	var out bytes.Buffer
	err := run([]string{"--prefix", "HP_", "--log-level", "error", "get", "power_level"}, &out,
		withEnv(map[string]string{"HP_POWER_LEVEL": "9001"}))
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "9001" {
		t.Fatalf("expected 9001, got %q", got)
	}
}

func TestRunGetTyped(t *testing.T) {
	t.Setenv("HYPERPARAMS_ENV_FILE", filepath.Join(t.TempDir(), "none.env"))

	var out bytes.Buffer
	err := run([]string{"--log-level", "error", "get", "shuffle", "--type", "bool"}, &out,
		withEnv(map[string]string{"SM_HP_SHUFFLE": "TRUE"}))
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "true" {
		t.Fatalf("expected true, got %q", got)
	}
}

func TestRunGetMissing(t *testing.T) {
	t.Setenv("HYPERPARAMS_ENV_FILE", filepath.Join(t.TempDir(), "none.env"))

	err := run([]string{"--log-level", "fatal", "get", "epochs"}, &bytes.Buffer{}, withEnv(nil))
	if !errors.Is(err, hyperparams.ErrMissingHyperparameter) {
		t.Fatalf("expected ErrMissingHyperparameter, got %v", err)
	}
}

func TestRunReport(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "hyperparams.yaml")
	manifest := "env_file: " + filepath.Join(dir, "none.env") + "\nhyperparameters:\n  - name: a\n    type: int\n  - name: b\n"
	if err := os.WriteFile(configPath, []byte(manifest), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("HYPERPARAMS_ENV_FILE", "")

	var out bytes.Buffer
	err := run([]string{"--config", configPath, "--log-level", "error", "report", "--output-dir", dir}, &out,
		withEnv(map[string]string{"SM_HP_A": "5", "SM_HP_B": "1.22"}))
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != `{"a":5,"b":1.22}` {
		t.Fatalf("unexpected stdout %q", got)
	}

	data, err := os.ReadFile(filepath.Join(dir, hyperparams.ReportFilename))
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if string(data) != `{"a":5,"b":1.22}` {
		t.Fatalf("unexpected report %s", data)
	}
}

func TestRunRejectsUnknownCommand(t *testing.T) {
	if err := run([]string{"explode"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected parse error for unknown command")
	}
}

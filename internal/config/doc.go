// Package config loads the hyperparams CLI settings from multiple sources
// (YAML file, HYPERPARAMS_* environment variables, CLI flags) with precedence:
// CLI flags > Environment variables > YAML config > Defaults. The YAML file
// also declares the hyperparameters a report run resolves.
package config

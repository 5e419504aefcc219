package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/hyperparameters/internal/application"
	"github.com/eugenenazirov/hyperparameters/internal/config"
	"github.com/eugenenazirov/hyperparameters/internal/logging"
	"github.com/eugenenazirov/hyperparameters/pkg/hyperparams"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "hyperparams: %v\n", err)
		os.Exit(1)
	}
}

// run parses args, executes the selected command and writes its result to stdout.
func run(args []string, stdout io.Writer, opts ...application.Option) error {
	kingpinApp := kingpin.New("hyperparams", "Resolve hyperparameters from environment variables and report them")
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	prefix := kingpinApp.Flag("prefix", "Environment variable prefix (default SM_HP_)").String()
	envFile := kingpinApp.Flag("env-file", "Path to a .env file loaded before resolving").String()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()
	logEncoding := kingpinApp.Flag("log-encoding", "Log encoding (json or console)").String()

	getCmd := kingpinApp.Command("get", "Resolve a single hyperparameter and print its value")
	getName := getCmd.Arg("name", "Hyperparameter name").Required().String()
	getType := getCmd.Flag("type", "Parse type (float64, int, bool, string)").Default("float64").String()

	reportCmd := kingpinApp.Command("report", "Resolve the declared hyperparameters and write hyperparameters.json")
	outputDir := reportCmd.Flag("output-dir", "Directory receiving hyperparameters.json").String()

	command, err := kingpinApp.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(&config.CLIOverrides{
		ConfigFile:  *configFile,
		Prefix:      prefix,
		OutputDir:   outputDir,
		EnvFile:     envFile,
		LogLevel:    logLevel,
		LogEncoding: logEncoding,
	})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger, opts...)
	if err != nil {
		logger.Error("failed to initialize application", zap.Error(err))
		return err
	}

	switch command {
	case getCmd.FullCommand():
		return runGet(app, *getName, *getType, stdout, logger)
	case reportCmd.FullCommand():
		return runReport(app, stdout, logger)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func runGet(app *application.App, name, typeName string, stdout io.Writer, logger *zap.Logger) error {
	value, err := app.Resolve(name, typeName)
	if err != nil {
		logger.Error("failed to resolve hyperparameter", zap.String("name", name), zap.Error(err))
		return err
	}

	text, err := hyperparams.FormatValue(value)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, text)
	return err
}

func runReport(app *application.App, stdout io.Writer, logger *zap.Logger) error {
	record, err := app.Run()
	if err != nil {
		logger.Error("failed to report hyperparameters", zap.Error(err))
		return err
	}

	return json.NewEncoder(stdout).Encode(record)
}

package application

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/eugenenazirov/hyperparameters/internal/config"
	"github.com/eugenenazirov/hyperparameters/pkg/environment"
	"github.com/eugenenazirov/hyperparameters/pkg/hyperparams"
)

// ErrNoDeclarations is returned by Run when the configuration declares no hyperparameters.
var ErrNoDeclarations = errors.New("no hyperparameters declared in configuration")

// App encapsulates the application dependencies.
type App struct {
	cfg    config.Config
	env    environment.Environment
	store  *hyperparams.Store
	logger *zap.Logger
}

// Option configures App behaviour.
type Option func(*App)

// WithEnvironment overrides the process environment, primarily for tests.
func WithEnvironment(env environment.Environment) Option {
	return func(a *App) {
		a.env = env
	}
}

// New initializes the application with all dependencies from the provided
// configuration. Variables from the configured env file are loaded first;
// values already present in the environment take precedence.
func New(cfg config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	app := &App{
		cfg:    cfg,
		env:    environment.OS{},
		logger: logger,
	}
	for _, opt := range opts {
		opt(app)
	}

	if cfg.EnvFile != "" {
		if err := environment.LoadDotEnv(app.env, cfg.EnvFile); err != nil {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	app.store = hyperparams.New(app.env,
		hyperparams.WithLogger(logger),
		hyperparams.WithDefaultPrefix(cfg.Prefix),
	)
	return app, nil
}

// Store returns the hyperparameter store.
func (a *App) Store() *hyperparams.Store {
	return a.store
}

// Resolve resolves a single hyperparameter parsed as typeName.
func (a *App) Resolve(name, typeName string) (any, error) {
	t, err := hyperparams.ParseType(typeName)
	if err != nil {
		return nil, err
	}

	value, err := a.store.Resolve(name, hyperparams.WithType(t))
	if err != nil {
		return nil, err
	}
	a.logger.Debug("hyperparameter resolved", zap.String("name", name), zap.Any("value", value))
	return value, nil
}

// Run resolves every declared hyperparameter and writes the report to the
// configured output directory.
func (a *App) Run() (hyperparams.Record, error) {
	names, types, err := a.cfg.Manifest()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrNoDeclarations
	}

	record, err := a.store.ResolveMany(names, hyperparams.WithTypes(types...))
	if err != nil {
		return nil, fmt.Errorf("resolve hyperparameters: %w", err)
	}

	if err := a.store.Report(a.cfg.OutputDir); err != nil {
		return nil, fmt.Errorf("report hyperparameters: %w", err)
	}

	a.logger.Info("hyperparameter report written",
		zap.String("dir", a.cfg.OutputDir),
		zap.Int("count", a.store.Len()),
	)
	return record, nil
}

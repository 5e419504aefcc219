// Package hyperparams loads typed hyperparameters from environment variables,
// caches every resolved value in a Store, and exports the Store as a
// hyperparameters.json report plus one log line per entry.
//
// A hyperparameter named learning_rate is read from SM_HP_LEARNING_RATE by
// default (the SageMaker convention); the prefix can be changed per Store or
// per call.
package hyperparams

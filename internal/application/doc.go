// Package application provides application initialization and dependency wiring.
// It encapsulates the creation of the environment, the hyperparameter store
// and the report run, keeping the main package focused on CLI parsing.
package application

package hyperparams

import "errors"

var (
	// ErrMissingHyperparameter is returned when the environment variable for a hyperparameter is not set.
	ErrMissingHyperparameter = errors.New("hyperparameter not set")
	// ErrParse is returned when the raw value cannot be coerced into the requested type.
	ErrParse = errors.New("hyperparameter cannot be parsed")
	// ErrIO is returned when the report cannot be written.
	ErrIO = errors.New("hyperparameter report cannot be written")
	// ErrInvalidName is returned for empty names or names containing whitespace.
	ErrInvalidName = errors.New("invalid hyperparameter name")
	// ErrNoNames is returned when ResolveMany is called without names.
	ErrNoNames = errors.New("no hyperparameter names given")
	// ErrTypeCount is returned when the number of types does not match the number of names.
	ErrTypeCount = errors.New("hyperparameter types must be omitted, a single type, or one per name")
	// ErrUnsupportedValue is returned when Save has no string form for a value.
	ErrUnsupportedValue = errors.New("hyperparameter value has no string representation")
	// ErrEnvironment is returned when the environment rejects a write.
	ErrEnvironment = errors.New("environment write failed")
	// ErrUnknownType is returned by ParseType for unrecognised type names.
	ErrUnknownType = errors.New("unknown hyperparameter type")
)

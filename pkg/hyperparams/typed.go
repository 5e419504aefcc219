package hyperparams

import "fmt"

// Float64 resolves name as a float64.
func Float64(s *Store, name string, opts ...Option) (float64, error) {
	return resolveAs[float64](s, name, TypeFloat64, opts)
}

// Int resolves name as an int64.
func Int(s *Store, name string, opts ...Option) (int64, error) {
	return resolveAs[int64](s, name, TypeInt, opts)
}

// Bool resolves name as a bool.
func Bool(s *Store, name string, opts ...Option) (bool, error) {
	return resolveAs[bool](s, name, TypeBool, opts)
}

// String resolves name verbatim.
func String(s *Store, name string, opts ...Option) (string, error) {
	return resolveAs[string](s, name, TypeString, opts)
}

// Get resolves name with a typed parse function. Errors returned by parse
// are reported as ErrParse.
func Get[T any](s *Store, name string, parse func(raw string) (T, error), opts ...Option) (T, error) {
	t := Custom(fmt.Sprintf("%T", *new(T)), func(raw string) (any, error) {
		return parse(raw)
	})
	return resolveAs[T](s, name, t, opts)
}

func resolveAs[T any](s *Store, name string, t Type, opts []Option) (T, error) {
	var zero T
	opts = append(opts[:len(opts):len(opts)], WithType(t))
	value, err := s.Resolve(name, opts...)
	if err != nil {
		return zero, err
	}
	out, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s resolved to %T, want %T", ErrParse, name, value, zero)
	}
	return out, nil
}

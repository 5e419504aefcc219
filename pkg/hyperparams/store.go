package hyperparams

import (
	"fmt"
	"maps"
	"sort"
	"strings"
	"sync"
	"unicode"

	"go.uber.org/zap"

	"github.com/eugenenazirov/hyperparameters/pkg/environment"
)

// DefaultPrefix is prepended to the upper-cased name when resolving.
const DefaultPrefix = "SM_HP_"

// Store caches resolved hyperparameters for the lifetime of a run. It is safe
// for concurrent use.
type Store struct {
	env    environment.Environment
	logger *zap.Logger
	prefix string

	mu     sync.RWMutex
	values map[string]any
}

// New returns an empty Store reading from env. A nil env reads the process
// environment.
func New(env environment.Environment, opts ...StoreOption) *Store {
	if env == nil {
		env = environment.OS{}
	}
	s := &Store{
		env:    env,
		logger: zap.NewNop(),
		prefix: DefaultPrefix,
		values: make(map[string]any),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve reads the variable prefix+UPPER(name), parses it (TypeFloat64 unless
// WithType is given) and caches the result under the lower-cased name.
// A missing variable returns ErrMissingHyperparameter and a malformed one
// ErrParse; in both cases the cache is left unchanged.
func (s *Store) Resolve(name string, opts ...Option) (any, error) {
	o := collectOptions(opts)
	_, value, err := s.resolve(name, o.typ, o.prefixOr(s.prefix))
	return value, err
}

// ResolveMany resolves names in order with a shared prefix and returns the
// values as an ordered Record. It stops at the first failure; values resolved
// before it stay cached.
func (s *Store) ResolveMany(names []string, opts ...Option) (Record, error) {
	if len(names) == 0 {
		return nil, ErrNoNames
	}

	o := collectOptions(opts)
	types, err := o.typesFor(len(names))
	if err != nil {
		return nil, fmt.Errorf("%w: got %d types for %d names", err, len(o.types), len(names))
	}
	prefix := o.prefixOr(s.prefix)

	record := make(Record, 0, len(names))
	for i, name := range names {
		canonical, value, err := s.resolve(name, types[i], prefix)
		if err != nil {
			return nil, err
		}
		record = append(record, Entry{Name: canonical, Value: value})
	}
	return record, nil
}

// Save caches value under name and exports its string form to the variable
// prefix+UPPER(name). The prefix defaults to empty. Values FormatValue cannot
// handle need WithFormatter, otherwise ErrUnsupportedValue is returned.
func (s *Store) Save(name string, value any, opts ...Option) error {
	canonical, err := CanonicalName(name)
	if err != nil {
		return err
	}

	o := collectOptions(opts)
	format := o.formatter
	if format == nil {
		format = FormatValue
	}
	raw, err := format(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUnsupportedValue, canonical, err)
	}

	key := envKey(o.prefixOr(""), canonical)
	if err := s.env.Set(key, raw); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEnvironment, key, err)
	}

	s.set(canonical, value)
	return nil
}

// Value returns the cached value for name.
func (s *Store) Value(name string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[strings.ToLower(name)]
	return v, ok
}

// Names returns the cached names in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns a copy of the cache.
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maps.Clone(s.values)
}

// Len returns the number of cached hyperparameters.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.values)
}

func (s *Store) resolve(name string, t Type, prefix string) (string, any, error) {
	canonical, err := CanonicalName(name)
	if err != nil {
		return "", nil, err
	}

	key := envKey(prefix, canonical)
	raw, ok := s.env.Lookup(key)
	if !ok {
		return "", nil, fmt.Errorf("%w: %s (%s)", ErrMissingHyperparameter, canonical, key)
	}

	value, err := t.Parse(raw)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s=%q as %s: %w", ErrParse, key, raw, t, err)
	}

	s.set(canonical, value)
	return canonical, value, nil
}

func (s *Store) set(name string, value any) {
	s.mu.Lock()
	s.values[name] = value
	s.mu.Unlock()
}

// CanonicalName validates name and returns its lower-cased registry key.
// Names must be non-empty and contain no whitespace or '='.
func CanonicalName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if strings.IndexFunc(name, func(r rune) bool { return unicode.IsSpace(r) || r == '=' }) >= 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return strings.ToLower(name), nil
}

func envKey(prefix, name string) string {
	return prefix + strings.ToUpper(name)
}

package hyperparams

import "go.uber.org/zap"

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger that receives report lines.
func WithLogger(logger *zap.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDefaultPrefix replaces DefaultPrefix for Resolve and ResolveMany calls
// that do not pass WithPrefix.
func WithDefaultPrefix(prefix string) StoreOption {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// Option configures a single Resolve, ResolveMany or Save call.
type Option func(*callOptions)

type callOptions struct {
	typ       Type
	types     []Type
	prefix    *string
	formatter func(any) (string, error)
}

// WithType sets the parse type for Resolve. For ResolveMany it is applied to
// every name unless WithTypes is also given.
func WithType(t Type) Option {
	return func(o *callOptions) {
		o.typ = t
	}
}

// WithTypes sets per-name parse types for ResolveMany. A single type is
// broadcast to all names.
func WithTypes(types ...Type) Option {
	return func(o *callOptions) {
		o.types = types
	}
}

// WithPrefix overrides the environment variable prefix for one call. An empty
// prefix is honoured.
func WithPrefix(prefix string) Option {
	return func(o *callOptions) {
		o.prefix = &prefix
	}
}

// WithFormatter sets the serializer Save uses to produce the environment
// value, for types FormatValue does not handle.
func WithFormatter(format func(any) (string, error)) Option {
	return func(o *callOptions) {
		o.formatter = format
	}
}

func collectOptions(opts []Option) callOptions {
	var o callOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

func (o callOptions) prefixOr(fallback string) string {
	if o.prefix == nil {
		return fallback
	}
	return *o.prefix
}

func (o callOptions) typesFor(n int) ([]Type, error) {
	switch len(o.types) {
	case 0:
		return repeatType(o.typ, n), nil
	case 1:
		return repeatType(o.types[0], n), nil
	case n:
		return o.types, nil
	default:
		return nil, ErrTypeCount
	}
}

func repeatType(t Type, n int) []Type {
	out := make([]Type, n)
	for i := range out {
		out[i] = t
	}
	return out
}

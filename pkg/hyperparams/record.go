package hyperparams

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Entry is one resolved hyperparameter.
type Entry struct {
	Name  string
	Value any
}

// Record holds the result of ResolveMany in the order the names were given.
type Record []Entry

// Get returns the value for name. The lookup is case-insensitive.
func (r Record) Get(name string) (any, bool) {
	name = strings.ToLower(name)
	for _, e := range r {
		if e.Name == name {
			return e.Value, true
		}
	}
	return nil, false
}

// Names returns the entry names in record order.
func (r Record) Names() []string {
	names := make([]string, len(r))
	for i, e := range r {
		names[i] = e.Name
	}
	return names
}

// Map returns the record as an unordered map.
func (r Record) Map() map[string]any {
	out := make(map[string]any, len(r))
	for _, e := range r {
		out[e.Name] = e.Value
	}
	return out
}

// MarshalJSON encodes the record as a JSON object, keeping record order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

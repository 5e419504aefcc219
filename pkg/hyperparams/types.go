package hyperparams

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Type selects how a raw environment value is parsed. The zero Type parses
// as TypeFloat64.
type Type struct {
	name  string
	parse func(raw string) (any, error)
}

var (
	// TypeFloat64 parses decimal or scientific notation into a float64. NaN and
	// infinities are rejected.
	TypeFloat64 = Type{name: "float64", parse: parseFloat64}
	// TypeInt parses a base-10 integer into an int64.
	TypeInt = Type{name: "int", parse: parseInt}
	// TypeBool accepts true/false and 1/0, case-insensitively.
	TypeBool = Type{name: "bool", parse: parseBool}
	// TypeString returns the raw value unchanged.
	TypeString = Type{name: "string", parse: parseString}
)

var errNotFinite = errors.New("value is not a finite number")

// Custom returns a Type backed by a caller-supplied parse function.
func Custom(name string, parse func(raw string) (any, error)) Type {
	if name == "" {
		name = "custom"
	}
	return Type{name: name, parse: parse}
}

// ParseType maps a textual type name, as used in manifests and on the command
// line, to one of the built-in types. An empty name selects TypeFloat64.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "float", "float64", "double":
		return TypeFloat64, nil
	case "int", "int64", "integer":
		return TypeInt, nil
	case "bool", "boolean":
		return TypeBool, nil
	case "string", "str":
		return TypeString, nil
	default:
		return Type{}, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
}

// String returns the type name used in error messages.
func (t Type) String() string {
	if t.parse == nil {
		return TypeFloat64.name
	}
	return t.name
}

// Parse converts raw into a value of this type.
func (t Type) Parse(raw string) (any, error) {
	if t.parse == nil {
		return parseFloat64(raw)
	}
	return t.parse(raw)
}

func parseFloat64(raw string) (any, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, errNotFinite
	}
	return value, nil
}

func parseInt(raw string) (any, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil, err
	}
	return value, nil
}

func parseBool(raw string) (any, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return nil, fmt.Errorf("invalid boolean %q", raw)
}

func parseString(raw string) (any, error) {
	return raw, nil
}

// Package environment abstracts the key/value channel hyperparameters are
// read from and exported to, so stores can run against the process
// environment or an in-memory map.
package environment

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"strings"
	"sync"
)

// ErrInvalidKey indicates a key the environment cannot hold.
var ErrInvalidKey = errors.New("environment keys must be non-empty and contain no '=' or NUL")

// Environment provides access to named string variables.
type Environment interface {
	Lookup(key string) (string, bool)
	Set(key, value string) error
}

// OS reads and writes the process environment.
type OS struct{}

// Lookup reports the value of key and whether it is set.
func (OS) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Set exports key=value to the process and its future subprocesses.
func (OS) Set(key, value string) error {
	return os.Setenv(key, value)
}

// Memory keeps variables in-memory and guards access with a RWMutex. The zero
// value is an empty environment.
type Memory struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewMemory returns a Memory seeded with a copy of initial.
func NewMemory(initial map[string]string) *Memory {
	vars := maps.Clone(initial)
	if vars == nil {
		vars = make(map[string]string)
	}
	return &Memory{vars: vars}
}

// Lookup reports the value of key and whether it is set.
func (m *Memory) Lookup(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.vars[key]
	return v, ok
}

// Set stores value under key, applying the same key rules as the OS.
func (m *Memory) Set(key, value string) error {
	if key == "" || strings.ContainsAny(key, "=\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	m.mu.Lock()
	if m.vars == nil {
		m.vars = make(map[string]string)
	}
	m.vars[key] = value
	m.mu.Unlock()

	return nil
}

// Unset removes key.
func (m *Memory) Unset(key string) {
	m.mu.Lock()
	delete(m.vars, key)
	m.mu.Unlock()
}

// Snapshot returns a copy of all variables.
func (m *Memory) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := maps.Clone(m.vars)
	if out == nil {
		out = make(map[string]string)
	}
	return out
}

// Package env reads process configuration through a swappable lookup.
package env

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Provider looks up a single variable.
type Provider interface {
	Lookup(key string) (string, bool)
}

// OS reads the process environment.
type OS struct{}

func (OS) Lookup(key string) (string, bool) { return os.LookupEnv(key) }

// Map is a fixed environment, mostly for tests.
type Map map[string]string

func (m Map) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// MissingError reports a required variable that is unset or blank.
type MissingError struct {
	Key string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("environment variable %s is required", e.Key)
}

// String returns the value of key, or def when unset.
func String(p Provider, key string, def string) string {
	if v, ok := p.Lookup(key); ok {
		return v
	}
	return def
}

// First returns the first non-blank value among keys.
func First(p Provider, keys ...string) string {
	for _, key := range keys {
		if v, ok := p.Lookup(key); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// Bool parses key with strconv.ParseBool. Unset or blank yields def.
func Bool(p Provider, key string, def bool) (bool, error) {
	v, ok := p.Lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return b, nil
}

// Set reports whether key is present with a non-blank value.
func Set(p Provider, key string) bool {
	v, ok := p.Lookup(key)
	return ok && strings.TrimSpace(v) != ""
}

// Require returns the value of key or a *MissingError.
func Require(p Provider, key string) (string, error) {
	v, ok := p.Lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", &MissingError{Key: key}
	}
	return v, nil
}

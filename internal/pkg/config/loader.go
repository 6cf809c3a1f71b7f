// Package config provides fail-open environment loaders. An invalid value
// never stops the process: the default is used instead and a warning is
// returned (LoadEnv*) or logged (GetEnv*).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadResult is the outcome of loading one environment variable.
type LoadResult[T any] struct {
	Value T
	// Warning describes why the default was used. Empty when no fallback happened.
	Warning         string
	FallbackApplied bool
}

// LoadEnv reads key, parses it with parse and checks it with validate.
// An unset or empty variable yields def without a warning.
// A parse or validation failure yields def with FallbackApplied set.
func LoadEnv[T any](key string, def T, parse func(string) (T, error), validate func(T) error) LoadResult[T] {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return LoadResult[T]{Value: def}
	}

	v, err := parse(raw)
	if err == nil && validate != nil {
		err = validate(v)
	}
	if err != nil {
		return LoadResult[T]{
			Value:           def,
			Warning:         fmt.Sprintf("invalid %s=%q: %v, falling back to default %v", key, raw, err, def),
			FallbackApplied: true,
		}
	}
	return LoadResult[T]{Value: v}
}

// LoadEnvString loads a string variable.
func LoadEnvString(key, def string, validate func(string) error) LoadResult[string] {
	return LoadEnv(key, def, func(s string) (string, error) { return s, nil }, validate)
}

// LoadEnvInt loads a base-10 integer variable.
func LoadEnvInt(key string, def int, validate func(int) error) LoadResult[int] {
	return LoadEnv(key, def, func(s string) (int, error) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("invalid integer format")
		}
		return n, nil
	}, validate)
}

// LoadEnvDuration loads a time.ParseDuration variable ("90s", "5m").
func LoadEnvDuration(key string, def time.Duration, validate func(time.Duration) error) LoadResult[time.Duration] {
	return LoadEnv(key, def, func(s string) (time.Duration, error) {
		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("invalid duration format")
		}
		return d, nil
	}, validate)
}

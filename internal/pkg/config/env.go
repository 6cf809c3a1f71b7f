package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// getEnv is LoadEnv without validation that logs the fallback warning.
func getEnv[T any](key string, def T, parse func(string) (T, error)) T {
	r := LoadEnv(key, def, parse, nil)
	if r.FallbackApplied {
		slog.Warn("invalid environment variable, using default",
			slog.String("key", key),
			slog.String("warning", r.Warning))
	}
	return r.Value
}

// GetEnvString returns the variable or def when unset or empty.
func GetEnvString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// GetEnvInt parses a base-10 integer, falling back to def with a warning.
func GetEnvInt(key string, def int) int {
	return getEnv(key, def, strconv.Atoi)
}

// GetEnvBool accepts the strconv.ParseBool spellings ("1", "true", "F", ...).
func GetEnvBool(key string, def bool) bool {
	return getEnv(key, def, strconv.ParseBool)
}

// GetEnvDuration parses a Go duration such as "30s" or "24h".
func GetEnvDuration(key string, def time.Duration) time.Duration {
	return getEnv(key, def, time.ParseDuration)
}

// GetEnvStringList splits a comma separated variable, dropping empty items.
// def is returned when nothing remains.
func GetEnvStringList(key string, def []string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

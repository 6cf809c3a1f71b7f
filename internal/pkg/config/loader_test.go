package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvString(t *testing.T) {
	notBad := func(s string) error {
		if s == "bad" {
			return errors.New("rejected")
		}
		return nil
	}

	tests := []struct {
		name         string
		env          string
		want         string
		wantFallback bool
	}{
		{name: "unset uses default", env: "", want: "def"},
		{name: "whitespace only uses default", env: "   ", want: "def"},
		{name: "valid value", env: "custom", want: "custom"},
		{name: "trimmed value", env: "  custom ", want: "custom"},
		{name: "validator rejects", env: "bad", want: "def", wantFallback: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_LOAD_STRING", tt.env)
			got := LoadEnvString("TEST_LOAD_STRING", "def", notBad)

			assert.Equal(t, tt.want, got.Value)
			assert.Equal(t, tt.wantFallback, got.FallbackApplied)
			if tt.wantFallback {
				assert.Contains(t, got.Warning, "TEST_LOAD_STRING")
				assert.Contains(t, got.Warning, "falling back to default def")
			} else {
				assert.Empty(t, got.Warning)
			}
		})
	}
}

func TestLoadEnvInt(t *testing.T) {
	port := func(v int) error { return ValidateIntRange(v, 1024, 65535) }

	tests := []struct {
		env          string
		want         int
		wantFallback bool
	}{
		{env: "", want: 9091},
		{env: "9100", want: 9100},
		{env: "80", want: 9091, wantFallback: true},
		{env: "abc", want: 9091, wantFallback: true},
		{env: "9.5", want: 9091, wantFallback: true},
		{env: "99999999999999999999", want: 9091, wantFallback: true},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("TEST_LOAD_INT", tt.env)
			got := LoadEnvInt("TEST_LOAD_INT", 9091, port)

			assert.Equal(t, tt.want, got.Value)
			assert.Equal(t, tt.wantFallback, got.FallbackApplied)
		})
	}
}

func TestLoadEnvDuration(t *testing.T) {
	bounded := func(d time.Duration) error { return ValidateDuration(d, time.Second, time.Hour) }

	tests := []struct {
		env          string
		want         time.Duration
		wantFallback bool
	}{
		{env: "", want: time.Minute},
		{env: "90s", want: 90 * time.Second},
		{env: "1h", want: time.Hour},
		{env: "2h", want: time.Minute, wantFallback: true},
		{env: "-5s", want: time.Minute, wantFallback: true},
		{env: "soon", want: time.Minute, wantFallback: true},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("TEST_LOAD_DURATION", tt.env)
			got := LoadEnvDuration("TEST_LOAD_DURATION", time.Minute, bounded)

			assert.Equal(t, tt.want, got.Value)
			assert.Equal(t, tt.wantFallback, got.FallbackApplied)
		})
	}
}

func TestLoadEnv_NilValidator(t *testing.T) {
	t.Setenv("TEST_LOAD_NIL", "-42")
	got := LoadEnvInt("TEST_LOAD_NIL", 1, nil)

	assert.Equal(t, -42, got.Value)
	assert.False(t, got.FallbackApplied)
}

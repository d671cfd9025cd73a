package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestParse_Valid(t *testing.T) {
	cfg, err := Parse([]byte(`
logging:
  level: trace
  format: json
  trace_targets:
    - smbc/cutil
    - smbc/dir/**
`))
	require.NoError(t, err)
	assert.Equal(t, "trace", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, []string{"smbc/cutil", "smbc/dir/**"}, cfg.Logging.TraceTargets)
}

func TestParse_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("logging:\n  level: debug\n"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{"unknown level", "logging:\n  level: verbose\n", "level"},
		{"unknown format", "logging:\n  format: xml\n", "format"},
		{"wrong type", "logging:\n  trace_targets: smbc\n", "trace_targets"},
		{"unknown key", "logging:\n  colour: true\n", "colour"},
		{"bad glob", "logging:\n  trace_targets: ['smbc/[']\n", "trace_targets"},
		{"malformed yaml", "logging: [\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Nil(t, cfg)

			var cfgErr *Error
			require.True(t, errors.As(err, &cfgErr))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smbc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  format: json\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Logging.Format)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSchema(t *testing.T) {
	s := Schema()
	require.NotNil(t, s.Properties)

	logging, ok := s.Properties.Get("logging")
	require.True(t, ok)
	require.NotNil(t, logging.Properties)

	level, ok := logging.Properties.Get("level")
	require.True(t, ok)
	assert.Equal(t, []any{"trace", "debug", "info", "warn", "error"}, level.Enum)
}

func TestError(t *testing.T) {
	cause := errors.New("boom")
	assert.Equal(t, "config validation failed for field 'x': boom", (&Error{Field: "x", Err: cause}).Error())
	assert.Equal(t, "config validation failed: boom", (&Error{Err: cause}).Error())
	assert.ErrorIs(t, &Error{Err: cause}, cause)
}

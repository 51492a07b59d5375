// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/sqlfront/pkg/logging"
	"github.com/AleutianAI/sqlfront/services/parser"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SQLFRONT_DIALECT", "SQLFRONT_LOG_LEVEL",
		"OTEL_TRACES_EXPORTER", "OTEL_METRICS_EXPORTER", "OTEL_EXPORTER_OTLP_ENDPOINT",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sqlfront.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	clearEnv(t)

	cfg, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "postgresql", cfg.Dialect)
	assert.Equal(t, parser.DefaultMaxInputSize, cfg.MaxInputBytes)
	assert.Equal(t, 0, cfg.Concurrency)
	assert.Equal(t, 0, cfg.CacheEntries)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "sqlfront", cfg.Telemetry.ServiceName)
	assert.Equal(t, "none", cfg.Telemetry.TraceExporter)
	assert.NoError(t, Validate(cfg))
}

func TestLoad_NoFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "postgresql", cfg.Dialect)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
dialect: pg
cache_entries: 500
log:
  level: debug
  json: true
telemetry:
  trace_exporter: stdout
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "pg", cfg.Dialect)
	assert.Equal(t, 500, cfg.CacheEntries)
	assert.Equal(t, parser.DefaultMaxInputSize, cfg.MaxInputBytes, "unset keys keep their defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, "stdout", cfg.Telemetry.TraceExporter)
	assert.Equal(t, "sqlfront", cfg.Telemetry.ServiceName)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SQLFRONT_DIALECT", "postgres")
	t.Setenv("SQLFRONT_LOG_LEVEL", "warn")
	path := writeConfig(t, "dialect: postgresql\nlog:\n  level: debug\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Dialect)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
		want string
	}{
		{"unknown dialect", "dialect: mysql\n", nil, `Dialect: failed "dialect"`},
		{"unknown dialect from env", "", map[string]string{"SQLFRONT_DIALECT": "oracle"}, `Dialect: failed "dialect"`},
		{"bad level", "log:\n  level: loud\n", nil, `Log.Level: failed "oneof"`},
		{"zero input limit", "max_input_bytes: 0\n", nil, `MaxInputBytes: failed "gt"`},
		{"negative cache", "cache_entries: -1\n", nil, `CacheEntries: failed "gte"`},
		{"bad exporter", "telemetry:\n  trace_exporter: zipkin\n", nil, `Telemetry.TraceExporter: failed "oneof"`},
		{
			"otlp without endpoint",
			"telemetry:\n  trace_exporter: otlp\n  otlp_endpoint: \"\"\n",
			nil,
			`Telemetry.OTLPEndpoint: failed "required_if"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, "dialekt: pg\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dialekt")
}

func TestLoad_TooLarge(t *testing.T) {
	clearEnv(t)
	body := "# " + strings.Repeat("x", MaxFileSize) + "\n"
	_, err := Load(writeConfig(t, body))
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEngineOptions(t *testing.T) {
	clearEnv(t)
	cfg, err := Default()
	require.NoError(t, err)
	cfg.Dialect = "pg"
	cfg.Concurrency = 2

	e := parser.New(cfg.EngineOptions(nil)...)
	require.NoError(t, e.Err())
	assert.Equal(t, parser.DialectPostgreSQL, e.Dialect().Name)
	assert.Len(t, cfg.EngineOptions(nil), 5)

	cfg.Dialect = "sqlite"
	assert.ErrorIs(t, parser.New(cfg.EngineOptions(nil)...).Err(), parser.ErrUnsupportedDialect)
}

func TestLoggingConfig(t *testing.T) {
	clearEnv(t)
	cfg, err := Default()
	require.NoError(t, err)
	cfg.Log.Level = "debug"
	cfg.Log.JSON = true

	lc, err := cfg.LoggingConfig()
	require.NoError(t, err)
	assert.Equal(t, logging.LevelDebug, lc.Level)
	assert.True(t, lc.JSON)
	assert.Equal(t, "sqlfront", lc.Service)

	cfg.Log.Level = "verbose"
	_, err = cfg.LoggingConfig()
	assert.Error(t, err)
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads sqlfront configuration.
//
// Values are layered: the embedded default.yaml, then an optional YAML
// file, then environment variables. The result is validated before it is
// returned, so callers never see a half-valid Config.
//
// Environment overrides:
//
//	SQLFRONT_DIALECT             dialect
//	SQLFRONT_LOG_LEVEL           log.level
//	OTEL_TRACES_EXPORTER         telemetry.trace_exporter
//	OTEL_METRICS_EXPORTER        telemetry.metric_exporter
//	OTEL_EXPORTER_OTLP_ENDPOINT  telemetry.otlp_endpoint
//
// Thread Safety:
//
//	All exported functions are safe for concurrent use. A Config is a plain
//	value and must not be mutated while shared.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/sqlfront/pkg/logging"
	"github.com/AleutianAI/sqlfront/services/parser"
	"github.com/AleutianAI/sqlfront/services/parser/telemetry"
)

// MaxFileSize is the largest configuration file Load reads.
const MaxFileSize = 1024 * 1024

//go:embed default.yaml
var defaultYAML []byte

var (
	// ErrInvalidConfig is wrapped by every validation failure.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrFileTooLarge is returned for files above MaxFileSize.
	ErrFileTooLarge = errors.New("configuration file too large")
)

// Config is the full sqlfront configuration.
type Config struct {
	// Dialect is a dialect name or alias known to parser.DefaultRegistry.
	Dialect string `yaml:"dialect" validate:"required,dialect"`

	// MaxInputBytes bounds the SQL text accepted per parse.
	MaxInputBytes int `yaml:"max_input_bytes" validate:"gt=0,lte=67108864"`

	// Concurrency bounds batch parse fan-out. Zero means GOMAXPROCS.
	Concurrency int `yaml:"concurrency" validate:"gte=0,lte=1024"`

	// CacheEntries sizes the statement cache. Zero disables it.
	CacheEntries int `yaml:"cache_entries" validate:"gte=0,lte=1000000"`

	Log LogConfig `yaml:"log"`

	Telemetry telemetry.Config `yaml:"telemetry"`
}

// LogConfig configures pkg/logging.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn warning error"`
	JSON  bool   `yaml:"json"`

	// File, when set, also appends JSON records to this path.
	File string `yaml:"file"`
}

// validate is shared; validator.Validate caches struct metadata and is
// safe for concurrent use.
var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("dialect", validateDialect)
}

// validateDialect accepts names resolvable by the default registry.
func validateDialect(fl validator.FieldLevel) bool {
	_, err := parser.DefaultRegistry().Lookup(fl.Field().String())
	return err == nil
}

// Default returns the embedded defaults without environment overrides.
func Default() (*Config, error) {
	cfg := &Config{Telemetry: telemetry.DefaultConfig()}
	if err := decode(defaultYAML, cfg); err != nil {
		return nil, fmt.Errorf("embedded defaults: %w", err)
	}
	return cfg, nil
}

// Load builds the configuration from the defaults, the file at path (if
// path is not empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if path != "" {
		data, err := readFile(path)
		if err != nil {
			return nil, err
		}
		if err := decode(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	applyEnv(cfg, os.Getenv)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat config: %w", err)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, info.Size(), MaxFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return data, nil
}

// decode overlays YAML onto cfg. Unknown keys are rejected.
func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&cfg.Dialect, "SQLFRONT_DIALECT")
	set(&cfg.Log.Level, "SQLFRONT_LOG_LEVEL")
	set(&cfg.Telemetry.TraceExporter, "OTEL_TRACES_EXPORTER")
	set(&cfg.Telemetry.MetricExporter, "OTEL_METRICS_EXPORTER")
	set(&cfg.Telemetry.OTLPEndpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
}

// Validate checks every field of cfg. Failures wrap ErrInvalidConfig and
// name the offending YAML-level field.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fieldPath(fe), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

// fieldPath turns "Config.Log.Level" into "Log.Level".
func fieldPath(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

// EngineOptions maps the configuration onto parser options.
func (c *Config) EngineOptions(logger *slog.Logger) []parser.Option {
	opts := []parser.Option{
		parser.WithDialect(c.Dialect),
		parser.WithMaxInputSize(c.MaxInputBytes),
		parser.WithStatementCache(c.CacheEntries),
		parser.WithLogger(logger),
	}
	if c.Concurrency > 0 {
		opts = append(opts, parser.WithConcurrency(c.Concurrency))
	}
	return opts
}

// LoggingConfig maps the log section onto a logging.Config.
func (c *Config) LoggingConfig() (logging.Config, error) {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return logging.Config{}, err
	}
	return logging.Config{
		Level:   level,
		Service: c.Telemetry.ServiceName,
		JSON:    c.Log.JSON,
		LogFile: c.Log.File,
	}, nil
}

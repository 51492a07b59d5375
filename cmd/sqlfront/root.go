// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/sqlfront/pkg/logging"
	"github.com/AleutianAI/sqlfront/pkg/ux"
	"github.com/AleutianAI/sqlfront/services/parser"
	"github.com/AleutianAI/sqlfront/services/parser/config"
	"github.com/AleutianAI/sqlfront/services/parser/telemetry"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailed  = 1 // input did not parse or check
	exitUsage   = 2 // bad flags or configuration
	exitUnknown = 3
)

var (
	// errReported marks failures whose diagnostics were already printed.
	errReported = errors.New("reported")

	// errUsage wraps flag and configuration errors.
	errUsage = errors.New("usage")
)

// app holds the state shared by every command of one invocation.
type app struct {
	// Persistent flags.
	configPath string
	dialect    string
	logLevel   string
	jsonOut    bool
	metricsOut string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// Set up by setup before any command runs.
	cfg      *config.Config
	logger   *logging.Logger
	engine   *parser.Engine
	printer  *ux.Printer
	shutdown func(context.Context) error
}

// run executes one sqlfront invocation and returns its exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if cerr := a.close(); cerr != nil && err == nil {
		err = cerr
	}
	if err == nil {
		return exitOK
	}
	if !errors.Is(err, errReported) {
		p := a.printer
		if p == nil {
			p = ux.NewPrinter(stdout, stderr, a.jsonOut)
		}
		p.Error(err.Error())
	}
	switch {
	case errors.Is(err, errUsage):
		return exitUsage
	case errors.Is(err, errReported), errors.Is(err, context.Canceled):
		return exitFailed
	}
	return exitUnknown
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "sqlfront",
		Short: "Parse, check and format PostgreSQL-dialect SQL",
		Long: `sqlfront is a SQL front-end: it tokenizes, parses and builds a
statement model for PostgreSQL-dialect SQL, and reports syntax errors with
the exact position and the set of tokens that would have been accepted.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a YAML configuration file")
	flags.StringVar(&a.dialect, "dialect", "", "SQL dialect (postgresql, postgres, pg)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&a.jsonOut, "json", false, "machine-readable output and JSON logs")
	flags.StringVar(&a.metricsOut, "metrics-out", "", "write Prometheus metrics to this file on exit")

	root.AddCommand(
		newParseCmd(a),
		newTreeCmd(a),
		newTokensCmd(a),
		newFormatCmd(a),
		newKeywordCmd(a),
		newCheckCmd(a),
	)
	return root
}

// setup loads configuration and builds the logger, telemetry and engine.
func (a *app) setup(ctx context.Context) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if a.dialect != "" {
		cfg.Dialect = a.dialect
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.jsonOut {
		cfg.Log.JSON = true
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	a.cfg = cfg

	lc, err := cfg.LoggingConfig()
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	lc.Output = a.stderr
	a.logger = logging.New(lc)

	cfg.Telemetry.Writer = a.stderr
	a.shutdown, err = telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	a.engine = parser.New(cfg.EngineOptions(a.logger.Slog())...)
	if err := a.engine.Err(); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	a.printer = ux.NewPrinter(a.stdout, a.stderr, a.jsonOut)

	a.logger.Debug("sqlfront ready",
		"dialect", a.engine.Dialect().Name,
		"config", a.configPath,
		"cache_entries", cfg.CacheEntries,
	)
	return nil
}

// close flushes telemetry, writes --metrics-out and releases resources.
func (a *app) close() error {
	var errs []error
	if a.shutdown != nil {
		errs = append(errs, a.shutdown(context.Background()))
	}
	if a.metricsOut != "" && a.engine != nil {
		errs = append(errs, writeMetricsFile(a.metricsOut))
	}
	if a.engine != nil {
		a.engine.Close()
	}
	if a.logger != nil {
		errs = append(errs, a.logger.Close())
	}
	return errors.Join(errs...)
}

func writeMetricsFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("metrics-out: %w", err)
	}
	if err := telemetry.WriteMetrics(f); err != nil {
		f.Close()
		return fmt.Errorf("metrics-out: %w", err)
	}
	return f.Close()
}

// fail prints the diagnostic for err against src and returns errReported.
func (a *app) fail(name, src string, err error) error {
	a.printer.Diagnostic(name, parser.Describe(err, src))
	return errReported
}

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
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/sqlfront/pkg/ux"
	"github.com/AleutianAI/sqlfront/services/parser"
	"github.com/AleutianAI/sqlfront/services/parser/grammar"
	"github.com/AleutianAI/sqlfront/services/parser/lexer"
)

// watchDebounce coalesces bursts of file events from one save.
const watchDebounce = 150 * time.Millisecond

// fileResult is the outcome of checking one file.
type fileResult struct {
	Path       string `json:"path"`
	Statements int    `json:"statements"`
	Error      string `json:"error,omitempty"`
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`

	diagnostic string
}

// checkReport is the --json output of one check run.
type checkReport struct {
	RunID  string       `json:"run_id"`
	Files  []fileResult `json:"files"`
	Failed int          `json:"failed"`
}

func newCheckCmd(a *app) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Parse .sql files and report errors",
		Long: `check parses every named .sql file, and every .sql file below named
directories, and reports the first error of each file. With --watch it keeps
running and re-checks files as they change.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := collectSQLFiles(args)
			if err != nil {
				return err
			}
			failed := a.checkRun(cmd.Context(), files)
			if watch {
				return a.watch(cmd.Context(), args)
			}
			if failed > 0 {
				return errReported
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-check files when they change")
	return cmd
}

// collectSQLFiles expands paths into a sorted, de-duplicated file list.
// Named files are taken as given; directories contribute their .sql files.
func collectSQLFiles(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isSQLFile(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

func isSQLFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".sql")
}

// checkRun checks files under a fresh run id and returns the number of
// failed files.
func (a *app) checkRun(ctx context.Context, files []string) int {
	runID := uuid.NewString()
	logger := a.logger.With("run_id", runID)
	start := time.Now()

	report := checkReport{RunID: runID, Files: make([]fileResult, 0, len(files))}
	for _, path := range files {
		if ctx.Err() != nil {
			break
		}
		res := a.checkFile(ctx, path)
		if res.Error != "" {
			report.Failed++
			logger.Debug("check failed", "path", path, "error", res.Error)
		}
		report.Files = append(report.Files, res)
	}

	logger.Info("check run finished",
		"files", len(report.Files),
		"failed", report.Failed,
		"duration", time.Since(start),
	)
	a.printReport(report)
	return report.Failed
}

func (a *app) checkFile(ctx context.Context, path string) fileResult {
	res := fileResult{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Error = err.Error()
		res.diagnostic = err.Error()
		return res
	}
	src := string(data)

	stmts, err := a.engine.ParseBatch(ctx, src)
	if err != nil {
		res.Error = err.Error()
		res.diagnostic = parser.Describe(err, src)
		res.Line, res.Column = errorPosition(err)
		return res
	}
	res.Statements = len(stmts)
	return res
}

// errorPosition extracts the source position of a parse error, if any.
func errorPosition(err error) (int, int) {
	var syn *grammar.SyntaxError
	if errors.As(err, &syn) {
		return syn.Line, syn.Column
	}
	var lex *lexer.LexicalError
	if errors.As(err, &lex) {
		return lex.Line, lex.Column
	}
	return 0, 0
}

func (a *app) printReport(r checkReport) {
	p := a.printer
	if p.Machine() {
		if err := writeJSON(a.stdout, r); err != nil {
			a.logger.Warn("writing check report", "error", err)
		}
		return
	}
	for _, f := range r.Files {
		if f.Error == "" {
			p.FileStatus(f.Path, ux.IconSuccess, plural(f.Statements, "statement"))
			continue
		}
		p.FileStatus(f.Path, ux.IconError, "")
		p.Diagnostic(f.Path, f.diagnostic)
	}
	p.Summary(len(r.Files)-r.Failed, r.Failed, len(r.Files))
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// =============================================================================
// Watch mode
// =============================================================================

// watch re-checks .sql files below paths whenever they are written, until
// ctx is done.
func (a *app) watch(ctx context.Context, paths []string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Close()

	// Named files are watched through their directory; only the named
	// file itself is re-checked.
	explicit := make(map[string]bool)
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			explicit[filepath.Clean(p)] = true
			if err := w.Add(filepath.Dir(p)); err != nil {
				return fmt.Errorf("watching %s: %w", p, err)
			}
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return err
			}
			return w.Add(path)
		})
		if err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}
	}

	relevant := func(path string) bool {
		if len(explicit) > 0 && explicit[filepath.Clean(path)] {
			return true
		}
		if !isSQLFile(path) {
			return false
		}
		for _, p := range paths {
			if !explicit[filepath.Clean(p)] && isUnder(path, p) {
				return true
			}
		}
		return false
	}

	a.printer.Info("watching for changes, press Ctrl-C to stop")
	a.logger.Info("watch started", "paths", paths)

	pending := make(map[string]bool)
	timer := time.NewTimer(time.Hour)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("watch stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = w.Add(ev.Name)
					continue
				}
			}
			if relevant(ev.Name) {
				pending[ev.Name] = true
				timer.Reset(watchDebounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("watch error", "error", err)

		case <-timer.C:
			files := make([]string, 0, len(pending))
			for f := range pending {
				files = append(files, f)
			}
			sort.Strings(files)
			clear(pending)
			a.checkRun(ctx, files)
		}
	}
}

// isUnder reports whether path is dir or lies below it.
func isUnder(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

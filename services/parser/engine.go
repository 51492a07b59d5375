// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package parser is the entry point to the SQL front-end.
//
// # Description
//
// Engine wires the pipeline together: input checks, the lexer, the grammar
// for the configured dialect and the statement builder. Parse handles one
// statement, ParseBatch splits a script with SplitStatements and parses the
// pieces concurrently, and ParseTree returns the concrete tree for tools
// that want the exact source structure.
//
// Every parse starts an OpenTelemetry span and records OTel and Prometheus
// metrics. Errors from the lexer, grammar and builder are returned
// unchanged so callers can use errors.As; Describe renders them with a
// caret under the offending position.
//
// # Thread Safety
//
// An Engine is immutable after New and safe for concurrent use. Each parse
// uses its own lexer, parser and builder.
package parser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/sqlfront/services/parser/builder"
	"github.com/AleutianAI/sqlfront/services/parser/cst"
	"github.com/AleutianAI/sqlfront/services/parser/grammar"
	"github.com/AleutianAI/sqlfront/services/parser/statement"
)

// DefaultMaxInputSize is the input limit used unless WithMaxInputSize is
// given.
const DefaultMaxInputSize = 1 << 20

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	registry     *DialectRegistry
	dialect      string
	maxInputSize int
	concurrency  int
	logger       *slog.Logger
	cacheEntries int
}

// WithDialect selects the dialect by name or alias. The default is
// "postgresql".
func WithDialect(name string) Option {
	return func(o *engineOptions) {
		o.dialect = name
	}
}

// WithRegistry resolves WithDialect against r instead of DefaultRegistry.
func WithRegistry(r *DialectRegistry) Option {
	return func(o *engineOptions) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithMaxInputSize sets the largest accepted input in bytes.
func WithMaxInputSize(n int) Option {
	return func(o *engineOptions) {
		if n > 0 {
			o.maxInputSize = n
		}
	}
}

// WithConcurrency bounds the number of statements ParseBatch parses at
// once. The default is GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(o *engineOptions) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *engineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithStatementCache caches up to maxEntries built statements keyed by
// dialect and SQL text. Zero disables the cache.
//
// A cache hit returns the same statement value to every caller that parses
// the same text, so with the cache enabled callers share the result and must
// treat it as read-only. Without the cache every parse returns a fresh
// statement owned by its caller.
func WithStatementCache(maxEntries int) Option {
	return func(o *engineOptions) {
		if maxEntries >= 0 {
			o.cacheEntries = maxEntries
		}
	}
}

// Engine parses SQL text into statements.
type Engine struct {
	dialect      *Dialect
	maxInputSize int
	concurrency  int
	logger       *slog.Logger
	cache        *statementCache

	// err is a configuration error from New. Every operation returns it.
	err error
}

// New returns an Engine. A configuration error, such as an unknown
// dialect, is reported by Err and returned by every parse method.
func New(opts ...Option) *Engine {
	o := engineOptions{
		registry:     DefaultRegistry(),
		dialect:      DialectPostgreSQL,
		maxInputSize: DefaultMaxInputSize,
		concurrency:  runtime.GOMAXPROCS(0),
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{
		maxInputSize: o.maxInputSize,
		concurrency:  o.concurrency,
		logger:       o.logger.With("component", "parser"),
	}
	e.dialect, e.err = o.registry.Lookup(o.dialect)
	if e.err != nil {
		return e
	}
	if o.cacheEntries > 0 {
		e.cache, e.err = newStatementCache(o.cacheEntries)
	}
	return e
}

// Err returns the configuration error from New, if any.
func (e *Engine) Err() error {
	return e.err
}

// Dialect returns the dialect in use, nil when New failed to resolve it.
func (e *Engine) Dialect() *Dialect {
	return e.dialect
}

// Close releases the statement cache. The Engine must not be used after.
func (e *Engine) Close() {
	if e.cache != nil {
		e.cache.close()
	}
}

func (e *Engine) dialectName() string {
	if e.dialect == nil {
		return "unknown"
	}
	return e.dialect.Name
}

// check validates input before any lexing happens.
func (e *Engine) check(ctx context.Context, sql string) error {
	if e.err != nil {
		return e.err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(sql) > e.maxInputSize {
		return fmt.Errorf("%w: %d bytes exceeds the limit of %d", ErrInputTooLarge, len(sql), e.maxInputSize)
	}
	if !utf8.ValidString(sql) {
		return ErrInvalidUTF8
	}
	return nil
}

// =============================================================================
// Single statements
// =============================================================================

// Parse parses exactly one statement. A trailing semicolon is allowed.
//
// Inputs holding no statement return ErrEmptyInput; inputs holding more
// than one return ErrMultipleStatements. Lexical, syntax and build errors
// are returned as *lexer.LexicalError, *grammar.SyntaxError and
// *builder.SemanticBuildError.
func (e *Engine) Parse(ctx context.Context, sql string) (statement.Statement, error) {
	if err := e.check(ctx, sql); err != nil {
		recordParseMetrics(ctx, e.dialectName(), "none", len(sql), 0, err)
		return nil, err
	}

	pieces, err := SplitStatements(sql)
	switch {
	case err != nil:
	case len(pieces) == 0:
		err = ErrEmptyInput
	case len(pieces) > 1:
		err = fmt.Errorf("%w: found %d", ErrMultipleStatements, len(pieces))
	}
	if err != nil {
		recordParseMetrics(ctx, e.dialectName(), "none", len(sql), 0, err)
		return nil, err
	}
	return e.parseOne(ctx, sql)
}

// parseOne runs the grammar and the builder over a single statement.
func (e *Engine) parseOne(ctx context.Context, sql string) (stmt statement.Statement, err error) {
	ctx, span := startParseSpan(ctx, "Engine.Parse", e.dialect.Name, len(sql))
	defer span.End()

	start := time.Now()
	cached := false
	defer func() {
		kind := "none"
		if stmt != nil {
			kind = string(stmt.Kind())
		}
		duration := time.Since(start)
		setParseSpanResult(span, kind, err)
		recordParseMetrics(ctx, e.dialect.Name, kind, len(sql), duration, err)
		e.logger.Debug("parsed statement",
			slog.String("dialect", e.dialect.Name),
			slog.Int("bytes", len(sql)),
			slog.Duration("duration", duration),
			slog.String("kind", kind),
			slog.Bool("cached", cached),
			slog.String("error_class", errorClass(err)),
		)
	}()

	if e.cache != nil {
		if hit, ok := e.cache.get(e.dialect.Name, sql); ok {
			recordCacheLookup(e.dialect.Name, true)
			cached = true
			return hit, nil
		}
		recordCacheLookup(e.dialect.Name, false)
	}

	root, err := grammar.NewString(sql, e.dialect.Keywords).ParseStatement()
	if err != nil {
		return nil, err
	}
	stmt, err = builder.New(root, builder.WithLogger(e.logger)).Build()
	if err != nil {
		var sem *builder.SemanticBuildError
		if errors.As(err, &sem) {
			e.logger.Warn("internal build error",
				slog.String("rule", sem.Rule),
				slog.String("reason", sem.Reason),
				slog.Int("offset", sem.Offset),
			)
		}
		return nil, err
	}

	if e.cache != nil {
		e.cache.put(e.dialect.Name, sql, stmt)
	}
	return stmt, nil
}

// ParseTree parses a script of zero or more statements and returns its
// concrete tree. The root is a StatementBlock node. A script with no
// statements returns ErrEmptyInput.
func (e *Engine) ParseTree(ctx context.Context, sql string) (*cst.Tree, error) {
	if err := e.check(ctx, sql); err != nil {
		return nil, err
	}

	ctx, span := startParseSpan(ctx, "Engine.ParseTree", e.dialect.Name, len(sql))
	defer span.End()

	root, err := grammar.NewString(sql, e.dialect.Keywords).ParseBlock()
	if err == nil && root.FirstNode() == nil {
		err = ErrEmptyInput
	}
	setParseSpanResult(span, "block", err)
	if err != nil {
		return nil, err
	}
	return &cst.Tree{Root: root, Source: sql}, nil
}

// =============================================================================
// Batches
// =============================================================================

// ParseBatch splits sql into statements and parses them concurrently.
// Results are in source order.
//
// When statements fail, the error of the first failing statement is
// returned as a *BatchError whose positions refer to the whole of sql.
// Statements after a known failure are skipped. A lexical error found
// while splitting is returned as is, since no statement boundaries are
// known past it.
func (e *Engine) ParseBatch(ctx context.Context, sql string) ([]statement.Statement, error) {
	if err := e.check(ctx, sql); err != nil {
		return nil, err
	}

	ctx, span := startParseSpan(ctx, "Engine.ParseBatch", e.dialect.Name, len(sql))
	defer span.End()

	pieces, err := SplitStatements(sql)
	if err != nil {
		setParseSpanResult(span, "batch", err)
		return nil, err
	}
	if len(pieces) == 0 {
		setParseSpanResult(span, "batch", ErrEmptyInput)
		return nil, ErrEmptyInput
	}
	recordBatchMetrics(ctx, e.dialect.Name, len(pieces))

	var (
		results  = make([]statement.Statement, len(pieces))
		errs     = make([]error, len(pieces))
		firstBad atomic.Int64
	)
	firstBad.Store(int64(len(pieces)))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, p := range pieces {
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			if int64(i) > firstBad.Load() {
				return nil
			}
			stmt, err := e.parseOne(gCtx, p.Text)
			if err != nil {
				errs[i] = rebase(err, p)
				lowerFirstBad(&firstBad, int64(i))
				return nil
			}
			results[i] = stmt
			return nil
		})
	}
	waitErr := g.Wait()

	if err := ctx.Err(); err != nil {
		setParseSpanResult(span, "batch", err)
		return nil, err
	}
	if waitErr != nil {
		setParseSpanResult(span, "batch", waitErr)
		return nil, waitErr
	}
	for i, err := range errs {
		if err != nil {
			berr := &BatchError{Index: i, Offset: pieces[i].Offset, Err: err}
			setParseSpanResult(span, "batch", berr)
			return nil, berr
		}
	}
	setParseSpanResult(span, "batch", nil)
	return results, nil
}

// lowerFirstBad lowers v to i unless it already holds a smaller index.
func lowerFirstBad(v *atomic.Int64, i int64) {
	for {
		cur := v.Load()
		if i >= cur || v.CompareAndSwap(cur, i) {
			return
		}
	}
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/AleutianAI/sqlfront/services/parser/builder"
	"github.com/AleutianAI/sqlfront/services/parser/cst"
	"github.com/AleutianAI/sqlfront/services/parser/grammar"
	"github.com/AleutianAI/sqlfront/services/parser/lexer"
	"github.com/AleutianAI/sqlfront/services/parser/statement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestEngine_Parse(t *testing.T) {
	e := New()
	require.NoError(t, e.Err())

	tests := []struct {
		sql      string
		kind     statement.Kind
		category statement.Category
	}{
		{"SELECT 1", statement.KindSelect, statement.CategoryDML},
		{"select a from t where b > 1;", statement.KindSelect, statement.CategoryDML},
		{"INSERT INTO t VALUES (1)", statement.KindInsert, statement.CategoryDML},
		{"CREATE TABLE t (id int PRIMARY KEY)", statement.KindCreateTable, statement.CategoryDDL},
		{"  -- leading comment\nCOMMIT", statement.KindCommit, statement.CategoryTCL},
	}
	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			stmt, err := e.Parse(context.Background(), tt.sql)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, stmt.Kind())
			assert.Equal(t, tt.category, stmt.Category())
		})
	}
}

func TestEngine_ParseInputErrors(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		sql  string
		want error
	}{
		{"empty", nil, "", ErrEmptyInput},
		{"only trivia", nil, " ; -- c\n ;", ErrEmptyInput},
		{"two statements", nil, "SELECT 1; SELECT 2", ErrMultipleStatements},
		{"too large", []Option{WithMaxInputSize(4)}, "SELECT 1", ErrInputTooLarge},
		{"invalid utf8", nil, "SELECT '\xff'", ErrInvalidUTF8},
		{"unknown dialect", []Option{WithDialect("mysql")}, "SELECT 1", ErrUnsupportedDialect},
		{"lexical", nil, "SELECT 'open", lexer.ErrLexical},
		{"syntax", nil, "SELECT FROM WHERE", grammar.ErrSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts...).Parse(context.Background(), tt.sql)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEngine_ParseCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := New()
	_, err := e.Parse(ctx, "SELECT 1")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = e.ParseBatch(ctx, "SELECT 1; SELECT 2")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = e.ParseTree(ctx, "SELECT 1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_SyntaxErrorPassesThrough(t *testing.T) {
	_, err := New().Parse(context.Background(), "SELECT a FROM t WHERE )")
	var syn *grammar.SyntaxError
	require.True(t, errors.As(err, &syn))
	assert.Equal(t, 22, syn.Offset)
	assert.Equal(t, 1, syn.Line)
	assert.Equal(t, 23, syn.Column)
	assert.Equal(t, ")", syn.Found.Text)
}

func TestEngine_ParseTree(t *testing.T) {
	e := New()

	tree, err := e.ParseTree(context.Background(), "SELECT 1; CREATE TABLE t (a int);")
	require.NoError(t, err)
	assert.Equal(t, cst.KindStatementBlock, tree.Root.Kind)
	assert.Len(t, tree.Root.ChildrenOf(cst.KindStatement), 2)
	assert.Equal(t, "SELECT 1; CREATE TABLE t (a int);", tree.Source)

	_, err = e.ParseTree(context.Background(), " ;; ")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestEngine_ParseBatch(t *testing.T) {
	var sb strings.Builder
	for i := range 50 {
		fmt.Fprintf(&sb, "SELECT %d;\n", i)
		fmt.Fprintf(&sb, "INSERT INTO t VALUES (%d);\n", i)
	}

	stmts, err := New(WithConcurrency(3)).ParseBatch(context.Background(), sb.String())
	require.NoError(t, err)
	require.Len(t, stmts, 100)
	for i, stmt := range stmts {
		if i%2 == 0 {
			assert.Equal(t, statement.KindSelect, stmt.Kind(), "statement %d", i)
		} else {
			assert.Equal(t, statement.KindInsert, stmt.Kind(), "statement %d", i)
		}
	}
}

func TestEngine_ParseBatchFirstError(t *testing.T) {
	src := "SELECT 1;\nSELEC 1;\nSELECT 2;\nUPDATE;"

	_, err := New(WithConcurrency(4)).ParseBatch(context.Background(), src)
	require.Error(t, err)

	var berr *BatchError
	require.True(t, errors.As(err, &berr))
	assert.Equal(t, 1, berr.Index)
	assert.Equal(t, 10, berr.Offset)

	var syn *grammar.SyntaxError
	require.True(t, errors.As(err, &syn))
	assert.Equal(t, 10, syn.Offset)
	assert.Equal(t, 2, syn.Line)
	assert.Equal(t, 1, syn.Column)
	assert.ErrorIs(t, err, grammar.ErrSyntax)
}

func TestEngine_ParseBatchEmpty(t *testing.T) {
	_, err := New().ParseBatch(context.Background(), "-- nothing")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestEngine_Dialect(t *testing.T) {
	for _, name := range []string{"postgresql", "pg", "Postgres"} {
		e := New(WithDialect(name))
		require.NoError(t, e.Err(), name)
		assert.Equal(t, DialectPostgreSQL, e.Dialect().Name)
	}

	e := New(WithDialect("oracle"))
	assert.ErrorIs(t, e.Err(), ErrUnsupportedDialect)
	assert.Nil(t, e.Dialect())
	_, err := e.ParseBatch(context.Background(), "SELECT 1")
	assert.ErrorIs(t, err, ErrUnsupportedDialect)
}

func TestEngine_StatementCache(t *testing.T) {
	e := New(WithStatementCache(16))
	require.NoError(t, e.Err())
	defer e.Close()

	first, err := e.Parse(context.Background(), "SELECT a FROM t")
	require.NoError(t, err)
	e.cache.wait()

	second, err := e.Parse(context.Background(), "SELECT a FROM t")
	require.NoError(t, err)
	assert.Same(t, first, second)

	other, err := e.Parse(context.Background(), "SELECT b FROM t")
	require.NoError(t, err)
	assert.NotSame(t, first, other)
}

func TestEngine_StatementCacheRetainsEntries(t *testing.T) {
	const n = 100
	e := New(WithStatementCache(128))
	require.NoError(t, e.Err())
	defer e.Close()

	ctx := context.Background()
	built := make([]statement.Statement, n)
	for i := range n {
		stmt, err := e.Parse(ctx, fmt.Sprintf("SELECT c%d FROM t", i))
		require.NoError(t, err)
		built[i] = stmt
	}
	e.cache.wait()

	for i := range n {
		sql := fmt.Sprintf("SELECT c%d FROM t", i)
		hit, ok := e.cache.get(e.dialect.Name, sql)
		require.True(t, ok, "entry %d evicted", i)
		assert.Same(t, built[i], hit)
	}
}

func TestEngine_WithoutCacheStatementsAreFresh(t *testing.T) {
	e := New()
	first, err := e.Parse(context.Background(), "SELECT a FROM t")
	require.NoError(t, err)
	second, err := e.Parse(context.Background(), "SELECT a FROM t")
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, first, second)
}

func TestEngine_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := New(WithLogger(logger)).Parse(context.Background(), "SELECT 1")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "parsed statement")
	assert.Contains(t, out, "dialect=postgresql")
	assert.Contains(t, out, "kind=SELECT")
}

func TestEngine_Span(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, err := New().Parse(context.Background(), "SELECT 1")
	require.NoError(t, err)

	spans := sr.Ended()
	require.NotEmpty(t, spans)
	span := spans[len(spans)-1]
	assert.Equal(t, "Engine.Parse", span.Name())

	attrs := map[string]string{}
	for _, kv := range span.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "postgresql", attrs["sqlfront.dialect"])
	assert.Equal(t, "SELECT", attrs["sqlfront.statement_kind"])
	assert.Equal(t, "none", attrs["sqlfront.error_class"])
}

func TestErrorClass(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "none"},
		{context.Canceled, "canceled"},
		{fmt.Errorf("wrapped: %w", context.DeadlineExceeded), "canceled"},
		{&lexer.LexicalError{}, "lexical"},
		{&grammar.SyntaxError{}, "syntax"},
		{&builder.SemanticBuildError{}, "semantic"},
		{&BatchError{Err: &grammar.SyntaxError{}}, "syntax"},
		{ErrInputTooLarge, "input"},
		{ErrMultipleStatements, "input"},
		{errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, errorClass(tt.err), "%v", tt.err)
	}
}

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
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/AleutianAI/sqlfront/services/parser/builder"
	"github.com/AleutianAI/sqlfront/services/parser/grammar"
	"github.com/AleutianAI/sqlfront/services/parser/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe_Syntax(t *testing.T) {
	src := "SELECT a FROM t WHERE )"
	_, err := New().Parse(context.Background(), src)
	require.Error(t, err)

	lines := strings.Split(Describe(err, src), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], `1:23: unexpected ")", expected `), lines[0])
	assert.Equal(t, src, lines[1])
	assert.Equal(t, strings.Repeat(" ", 22)+"^", lines[2])
}

func TestDescribe_ExpectedSet(t *testing.T) {
	err := &grammar.SyntaxError{
		Offset:   9,
		Line:     1,
		Column:   10,
		Found:    lexer.Token{Kind: lexer.Ident, Text: "FORM"},
		Expected: []string{"','", "FROM", "end of input"},
	}
	got := Describe(err, "SELECT a FORM t")
	assert.Equal(t, "1:10: unexpected \"FORM\", expected one of {',', FROM, end of input}\n"+
		"SELECT a FORM t\n"+
		"         ^", got)

	err.Expected = []string{"')'"}
	assert.True(t, strings.HasPrefix(Describe(err, "SELECT a FORM t"), "1:10: unexpected \"FORM\", expected ')'\n"))
}

func TestDescribe_MultiLineBatch(t *testing.T) {
	src := "SELECT 1;\n\tSELEC 2;"
	_, err := New().ParseBatch(context.Background(), src)
	require.Error(t, err)

	lines := strings.Split(Describe(err, src), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], `2:2: unexpected "SELEC"`), lines[0])
	assert.Equal(t, "\tSELEC 2;", lines[1])
	assert.Equal(t, "\t^", lines[2])
}

func TestDescribe_Lexical(t *testing.T) {
	src := "SELECT 1 ? 2 $"
	err := &lexer.LexicalError{Offset: 13, Line: 1, Column: 14, Char: '$', Message: "unexpected character '$'"}
	assert.Equal(t, "1:14: unexpected character '$'\n"+src+"\n"+strings.Repeat(" ", 13)+"^", Describe(err, src))
}

func TestDescribe_Semantic(t *testing.T) {
	src := "SELECT 1;\nSELECT 2"
	err := &builder.SemanticBuildError{Rule: "target", Reason: "missing expression", Offset: 17}
	got := Describe(err, src)
	assert.Equal(t, "2:8: cannot build target: missing expression\nSELECT 2\n       ^", got)
}

func TestDescribe_Plain(t *testing.T) {
	assert.Equal(t, "", Describe(nil, "x"))
	assert.Equal(t, ErrEmptyInput.Error(), Describe(ErrEmptyInput, ""))
	assert.Equal(t, "boom", Describe(errors.New("boom"), "SELECT 1"))
}

func TestRebase(t *testing.T) {
	p := Piece{Offset: 30, Line: 3, Column: 5}

	syn := rebase(&grammar.SyntaxError{
		Offset: 4, Line: 1, Column: 5,
		Found: lexer.Token{Offset: 4, End: 6, Line: 1, Column: 5},
	}, p).(*grammar.SyntaxError)
	assert.Equal(t, 34, syn.Offset)
	assert.Equal(t, 3, syn.Line)
	assert.Equal(t, 9, syn.Column)
	assert.Equal(t, 34, syn.Found.Offset)
	assert.Equal(t, 36, syn.Found.End)

	lex := rebase(&lexer.LexicalError{Offset: 12, Line: 2, Column: 3}, p).(*lexer.LexicalError)
	assert.Equal(t, 42, lex.Offset)
	assert.Equal(t, 4, lex.Line)
	assert.Equal(t, 3, lex.Column)

	sem := rebase(&builder.SemanticBuildError{Offset: 1}, p).(*builder.SemanticBuildError)
	assert.Equal(t, 31, sem.Offset)

	plain := errors.New("x")
	assert.Same(t, plain, rebase(plain, p))
}

func TestBatchError(t *testing.T) {
	inner := &grammar.SyntaxError{Line: 1, Column: 1, Found: lexer.Token{Kind: lexer.EOF}}
	err := &BatchError{Index: 2, Offset: 40, Err: inner}
	assert.True(t, strings.HasPrefix(err.Error(), "statement 3: syntax error"))
	assert.ErrorIs(t, err, grammar.ErrSyntax)
}

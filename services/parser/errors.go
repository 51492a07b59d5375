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
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/AleutianAI/sqlfront/services/parser/builder"
	"github.com/AleutianAI/sqlfront/services/parser/grammar"
	"github.com/AleutianAI/sqlfront/services/parser/lexer"
)

// Sentinel errors for input the engine rejects before parsing.
var (
	// ErrEmptyInput is returned when the input holds no statement.
	ErrEmptyInput = errors.New("empty input")

	// ErrInputTooLarge is returned when the input exceeds the configured
	// maximum size.
	ErrInputTooLarge = errors.New("input too large")

	// ErrInvalidUTF8 is returned when the input is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

	// ErrUnsupportedDialect is returned for unknown dialect names.
	ErrUnsupportedDialect = errors.New("unsupported dialect")

	// ErrMultipleStatements is returned by Parse when the input holds more
	// than one statement.
	ErrMultipleStatements = errors.New("input holds more than one statement")
)

// BatchError reports the first failing statement of a batch.
type BatchError struct {
	// Index is the 0-based position of the statement in the batch.
	Index int

	// Offset is the byte offset of the statement in the batch source.
	Offset int

	// Err is the underlying lexical, syntax or build error. Its positions
	// are relative to the whole batch.
	Err error
}

// Error implements the error interface.
func (e *BatchError) Error() string {
	return fmt.Sprintf("statement %d: %v", e.Index+1, e.Err)
}

// Unwrap returns the underlying error.
func (e *BatchError) Unwrap() error {
	return e.Err
}

// rebase shifts the positions of a piece-relative error so they point into
// the whole batch.
func rebase(err error, p Piece) error {
	var syn *grammar.SyntaxError
	if errors.As(err, &syn) {
		out := *syn
		out.Line, out.Column = shiftPosition(syn.Line, syn.Column, p)
		out.Offset += p.Offset
		out.Found.Line, out.Found.Column = shiftPosition(syn.Found.Line, syn.Found.Column, p)
		out.Found.Offset += p.Offset
		out.Found.End += p.Offset
		return &out
	}
	var lex *lexer.LexicalError
	if errors.As(err, &lex) {
		out := *lex
		out.Line, out.Column = shiftPosition(lex.Line, lex.Column, p)
		out.Offset += p.Offset
		return &out
	}
	var sem *builder.SemanticBuildError
	if errors.As(err, &sem) {
		out := *sem
		out.Offset += p.Offset
		return &out
	}
	return err
}

func shiftPosition(line, col int, p Piece) (int, int) {
	if line <= 1 {
		return p.Line, p.Column + col - 1
	}
	return p.Line + line - 1, col
}

// errorClass buckets err for metrics labels.
func errorClass(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, lexer.ErrLexical):
		return "lexical"
	case errors.Is(err, grammar.ErrSyntax):
		return "syntax"
	case errors.Is(err, builder.ErrSemanticBuild):
		return "semantic"
	case errors.Is(err, ErrEmptyInput), errors.Is(err, ErrInputTooLarge),
		errors.Is(err, ErrInvalidUTF8), errors.Is(err, ErrMultipleStatements),
		errors.Is(err, ErrUnsupportedDialect):
		return "input"
	}
	return "internal"
}

// =============================================================================
// Diagnostics
// =============================================================================

// Describe renders err as a diagnostic against src:
//
//	1:15: unexpected "FORM", expected one of {',', FROM, end of input}
//	SELECT a, b c FORM t
//	              ^
//
// Errors without a source position are returned as their Error text.
func Describe(err error, src string) string {
	if err == nil {
		return ""
	}

	var (
		syn *grammar.SyntaxError
		lex *lexer.LexicalError
		sem *builder.SemanticBuildError
	)
	switch {
	case errors.As(err, &syn):
		msg := syn.Message
		if msg == "" {
			msg = "unexpected " + syn.Found.String()
		}
		if n := len(syn.Expected); n == 1 {
			msg += ", expected " + syn.Expected[0]
		} else if n > 1 {
			msg += ", expected one of {" + strings.Join(syn.Expected, ", ") + "}"
		}
		return caret(src, syn.Offset, syn.Line, syn.Column, msg)
	case errors.As(err, &lex):
		return caret(src, lex.Offset, lex.Line, lex.Column, lex.Message)
	case errors.As(err, &sem):
		line, col := position(src, sem.Offset)
		return caret(src, sem.Offset, line, col, fmt.Sprintf("cannot build %s: %s", sem.Rule, sem.Reason))
	}
	return err.Error()
}

// caret formats the header line, the source line holding offset and a
// caret under the offending column.
func caret(src string, offset, line, col int, msg string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d:%d: %s", line, col, msg)

	if offset < 0 || offset > len(src) {
		return b.String()
	}
	start := strings.LastIndexByte(src[:offset], '\n') + 1
	end := strings.IndexByte(src[offset:], '\n')
	if end < 0 {
		end = len(src)
	} else {
		end += offset
	}
	text := strings.TrimRight(src[start:end], "\r")

	b.WriteByte('\n')
	b.WriteString(text)
	b.WriteByte('\n')
	for _, r := range src[start:offset] {
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteByte('^')
	return b.String()
}

// position computes the 1-based line and rune column of offset.
func position(src string, offset int) (int, int) {
	offset = max(0, min(offset, len(src)))
	line := 1 + strings.Count(src[:offset], "\n")
	start := strings.LastIndexByte(src[:offset], '\n') + 1
	return line, utf8.RuneCountInString(src[start:offset]) + 1
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package format renders the statement model back to SQL text.
//
// # Description
//
// Output is canonical rather than faithful: keywords are upper case, one
// space separates tokens, optional noise words are dropped and every
// normalization the builder applied (END to COMMIT, SOME to ANY, STRICT to
// RETURNS NULL ON NULL INPUT) shows in the text. Parentheses appear where
// the model records them (ParenExpr, nested queries) or where the grammar
// requires them.
//
// Formatting a statement built from source and parsing the result again
// yields an equal statement. The engine tests and the CLI format command
// rely on that.
//
// # Thread Safety
//
// All functions are pure and safe for concurrent use.
package format

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/AleutianAI/sqlfront/services/parser/statement"
)

// ErrUnsupported is returned for a node type the formatter does not know.
// Only hand-built trees can trigger it.
var ErrUnsupported = errors.New("format: unsupported node")

// unsupported is raised inside the printer and recovered at the entry
// points.
type unsupported struct {
	node any
}

// Statement renders stmt as a single SQL statement without a trailing
// semicolon.
func Statement(stmt statement.Statement) (out string, err error) {
	defer recoverUnsupported(&err)
	if stmt == nil {
		return "", fmt.Errorf("%w: nil statement", ErrUnsupported)
	}
	return statementText(stmt), nil
}

// Statements renders stmts separated by ";\n", with a trailing semicolon.
func Statements(stmts []statement.Statement) (string, error) {
	var sb strings.Builder
	for _, s := range stmts {
		text, err := Statement(s)
		if err != nil {
			return "", err
		}
		sb.WriteString(text)
		sb.WriteString(";\n")
	}
	return sb.String(), nil
}

// Expr renders a value expression.
func Expr(e statement.Expr) (out string, err error) {
	defer recoverUnsupported(&err)
	if e == nil {
		return "", fmt.Errorf("%w: nil expression", ErrUnsupported)
	}
	return expr(e), nil
}

// DataType renders a type name.
func DataType(t *statement.DataType) (out string, err error) {
	defer recoverUnsupported(&err)
	if t == nil {
		return "", fmt.Errorf("%w: nil type", ErrUnsupported)
	}
	return dataType(t), nil
}

func recoverUnsupported(err *error) {
	r := recover()
	if r == nil {
		return
	}
	u, ok := r.(unsupported)
	if !ok {
		panic(r)
	}
	*err = fmt.Errorf("%w: %T", ErrUnsupported, u.node)
}

func fail(node any) {
	panic(unsupported{node: node})
}

// =============================================================================
// Text helpers
// =============================================================================

// join joins the non-empty parts with single spaces.
func join(parts ...string) string {
	var sb strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(p)
	}
	return sb.String()
}

// when returns s if cond holds.
func when(cond bool, s string) string {
	if cond {
		return s
	}
	return ""
}

// prefix returns kw followed by s, or "" when s is empty.
func prefix(kw, s string) string {
	if s == "" {
		return ""
	}
	return kw + " " + s
}

func list[T any](items []T, f func(T) string) string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = f(it)
	}
	return strings.Join(out, ", ")
}

func paren(s string) string { return "(" + s + ")" }

// quote renders a standard string constant.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// ident renders an identifier, quoting it when it was quoted in the source
// or cannot be written bare.
func ident(i statement.Identifier) string {
	if i.Quoted || !bare(i.Value) {
		return `"` + strings.ReplaceAll(i.Value, `"`, `""`) + `"`
	}
	return i.Value
}

func bare(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_':
		case unicode.IsLetter(r):
			if unicode.IsUpper(r) {
				return false
			}
		case unicode.IsDigit(r) || r == '$':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func idents(ids []statement.Identifier) string { return list(ids, ident) }

// columns renders "(a, b)", or "" for an empty list.
func columns(ids []statement.Identifier) string {
	if len(ids) == 0 {
		return ""
	}
	return paren(idents(ids))
}

func dotted(ids []statement.Identifier) string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = ident(id)
	}
	return strings.Join(out, ".")
}

func name(q statement.QualifiedName) string { return dotted(q.Parts()) }

func names(qs []statement.QualifiedName) string { return list(qs, name) }

func role(r statement.RoleSpec) string {
	if r.Special != "" {
		return r.Special
	}
	return ident(r.Name)
}

func roles(rs []statement.RoleSpec) string { return list(rs, role) }

func option(o statement.Option) string {
	n := ident(o.Name)
	if !o.Namespace.IsZero() {
		n = ident(o.Namespace) + "." + n
	}
	if o.Value == nil {
		return n
	}
	return n + " = " + expr(o.Value)
}

// options renders "(a = 1, b)", or "" for an empty list.
func options(opts []statement.Option) string {
	if len(opts) == 0 {
		return ""
	}
	return paren(list(opts, option))
}

func ifExists(b bool) string    { return when(b, "IF EXISTS") }
func ifNotExists(b bool) string { return when(b, "IF NOT EXISTS") }

// word renders a value that was written as a word or a string, such as a
// language name or an extension version.
func word(s string) string {
	if bare(s) {
		return s
	}
	return quote(s)
}

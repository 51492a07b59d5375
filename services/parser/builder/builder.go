// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package builder turns concrete parse trees into statement values.
//
// # Description
//
// Builder is a cst.Visitor over the trees produced by the grammar package.
// Statement and expression rules are handled by Visit methods, so the
// dispatch on node kind lives in one place (cst.Accept); clause-level
// rules that always appear in a fixed position are read by plain helper
// methods instead.
//
// The builder normalizes what the grammar leaves verbatim: keyword
// synonyms are folded (SOME to ANY, ISNULL to IS NULL, END to COMMIT),
// numeric constants are decoded, hexadecimal bit strings become bits, and
// command words are upper-cased. The resulting statements carry no source
// positions.
//
// # Thread Safety
//
// A Builder holds no state between calls beyond its root and logger and
// may be used from one goroutine at a time. Built statements are immutable.
package builder

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/AleutianAI/sqlfront/services/parser/cst"
	"github.com/AleutianAI/sqlfront/services/parser/statement"
)

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for build diagnostics. The default is
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Builder builds statement values from one parse tree.
type Builder struct {
	cst.BaseVisitor[any]

	root   *cst.Node
	logger *slog.Logger

	// stack holds the nodes currently being visited, innermost last, so
	// failures can name the rule they happened in.
	stack []*cst.Node
}

// New returns a Builder for the tree rooted at root. The root is a
// Statement, a StatementBlock, a bare statement node such as CreateTable,
// an expression node or a TypeName, depending on which method is called.
func New(root *cst.Node, opts ...Option) *Builder {
	b := &Builder{root: root, logger: slog.Default()}
	b.Self = b
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build builds the single statement under the root. A StatementBlock root
// must hold exactly one statement.
func (b *Builder) Build() (statement.Statement, error) {
	var stmt statement.Statement
	err := b.run(func() {
		root := b.root
		if root.Kind == cst.KindStatementBlock {
			stmts := root.ChildrenOf(cst.KindStatement)
			if len(stmts) != 1 {
				b.fail(root, "expected one statement, found %d", len(stmts))
			}
			root = stmts[0]
		}
		stmt = b.statement(root)
	})
	if err != nil {
		return nil, err
	}
	b.logger.Debug("built statement", slog.String("kind", string(stmt.Kind())))
	return stmt, nil
}

// BuildAll builds every statement of a StatementBlock root in source
// order. Any other root yields a one-element slice.
func (b *Builder) BuildAll() ([]statement.Statement, error) {
	var out []statement.Statement
	err := b.run(func() {
		if b.root.Kind != cst.KindStatementBlock {
			out = []statement.Statement{b.statement(b.root)}
			return
		}
		for _, n := range b.root.ChildrenOf(cst.KindStatement) {
			out = append(out, b.statement(n))
		}
	})
	if err != nil {
		return nil, err
	}
	b.logger.Debug("built statements", slog.Int("count", len(out)))
	return out, nil
}

// Expr builds an expression root.
func (b *Builder) Expr() (statement.Expr, error) {
	var e statement.Expr
	err := b.run(func() { e = b.expr(b.root) })
	return e, err
}

// DataType builds a TypeName root.
func (b *Builder) DataType() (*statement.DataType, error) {
	var dt *statement.DataType
	err := b.run(func() { dt = b.dataType(b.root) })
	return dt, err
}

// run executes body, converting build failures and runtime faults caused
// by malformed trees into a *SemanticBuildError.
func (b *Builder) run(body func()) (err error) {
	if b.root == nil {
		return &SemanticBuildError{Rule: "root", Reason: "empty tree"}
	}
	b.stack = b.stack[:0]
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		switch v := r.(type) {
		case failure:
			err = v.err
		case runtime.Error:
			n := b.root
			if len(b.stack) > 0 {
				n = b.stack[len(b.stack)-1]
			}
			err = b.errorAt(n, "malformed tree: %v", v)
		default:
			panic(r)
		}
		b.logger.Debug("build failed", slog.String("error", err.Error()))
	}()
	body()
	return nil
}

func (b *Builder) errorAt(n *cst.Node, format string, args ...any) *SemanticBuildError {
	return &SemanticBuildError{
		Rule:   n.Kind.RuleName(),
		Reason: fmt.Sprintf(format, args...),
		Offset: n.Span().Start,
	}
}

// fail aborts the build with a SemanticBuildError for n.
func (b *Builder) fail(n *cst.Node, format string, args ...any) {
	panic(failure{err: b.errorAt(n, format, args...)})
}

// build visits n and asserts that the result is a T.
func build[T any](b *Builder, n *cst.Node) T {
	if n == nil {
		top := b.root
		if len(b.stack) > 0 {
			top = b.stack[len(b.stack)-1]
		}
		b.fail(top, "missing child")
	}
	b.stack = append(b.stack, n)
	r := cst.Accept[any](b, n)
	v, ok := r.(T)
	if !ok {
		b.fail(n, "unexpected %s", n.Kind)
	}
	b.stack = b.stack[:len(b.stack)-1]
	return v
}

func (b *Builder) statement(n *cst.Node) statement.Statement {
	return build[statement.Statement](b, n)
}

func (b *Builder) expr(n *cst.Node) statement.Expr {
	return build[statement.Expr](b, n)
}

func (b *Builder) exprs(nodes []*cst.Node) []statement.Expr {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]statement.Expr, len(nodes))
	for i, n := range nodes {
		out[i] = b.expr(n)
	}
	return out
}

// VisitStatement unwraps the statement inside a Statement node.
func (b *Builder) VisitStatement(n *cst.Node) any {
	return b.statement(b.need(n, n.FirstNode()))
}

// =============================================================================
// Helpers
// =============================================================================

// need fails when child is nil.
func (b *Builder) need(n, child *cst.Node) *cst.Node {
	if child == nil {
		b.fail(n, "missing child")
	}
	return child
}

// needKind returns the first child of kind k or fails.
func (b *Builder) needKind(n *cst.Node, k cst.Kind) *cst.Node {
	c := n.Child(k)
	if c == nil {
		b.fail(n, "missing %s", k.RuleName())
	}
	return c
}

// nodeAfter returns the first child node following keyword kw, of any
// kind, or nil when the keyword is absent.
func nodeAfter(n *cst.Node, kw string) *cst.Node {
	i := n.KeywordIndex(kw)
	if i < 0 {
		return nil
	}
	for _, c := range n.Children[i+1:] {
		if cn, ok := c.(*cst.Node); ok {
			return cn
		}
	}
	return nil
}

// exprAfter builds the expression following keyword kw, or returns nil
// when the keyword is absent.
func (b *Builder) exprAfter(n *cst.Node, kw string) statement.Expr {
	if !n.HasKeyword(kw) {
		return nil
	}
	return b.expr(b.need(n, nodeAfter(n, kw)))
}

// words returns the direct keyword terminals of n.
func words(n *cst.Node) []string {
	return strings.Fields(n.Keywords())
}

// wordAfter returns the keyword following kw among the direct keywords of
// n, or "".
func wordAfter(n *cst.Node, kw string) string {
	ws := words(n)
	for i, w := range ws {
		if w == kw && i+1 < len(ws) {
			return ws[i+1]
		}
	}
	return ""
}

func hasSequence(ws []string, seq ...string) bool {
	for i := 0; i+len(seq) <= len(ws); i++ {
		match := true
		for j, s := range seq {
			if ws[i+j] != s {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// behavior returns CASCADE, RESTRICT or "".
func behavior(n *cst.Node) string {
	switch {
	case n.HasKeyword("cascade"):
		return statement.BehaviorCascade
	case n.HasKeyword("restrict"):
		return statement.BehaviorRestrict
	}
	return statement.BehaviorDefault
}

// withData maps WITH [NO] DATA onto its canonical spelling.
func withData(n *cst.Node) string {
	if !n.HasKeyword("data") {
		return ""
	}
	if n.HasKeyword("no") {
		return "WITH NO DATA"
	}
	return "WITH DATA"
}

// persistence maps TEMP, TEMPORARY and UNLOGGED onto the canonical
// spelling; GLOBAL and LOCAL are dropped.
func persistence(n *cst.Node) string {
	switch {
	case n.HasKeyword("temp"), n.HasKeyword("temporary"):
		return "TEMPORARY"
	case n.HasKeyword("unlogged"):
		return "UNLOGGED"
	}
	return ""
}

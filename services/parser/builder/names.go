// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package builder

import (
	"strings"

	"github.com/AleutianAI/sqlfront/services/parser/cst"
	"github.com/AleutianAI/sqlfront/services/parser/lexer"
	"github.com/AleutianAI/sqlfront/services/parser/statement"
)

// ident reads a single-word name node (ColId, ColLabel, NonReservedWord,
// TypeFunctionName, TriggerName).
func (b *Builder) ident(n *cst.Node) statement.Identifier {
	t := n.FirstTerminal()
	if t == nil {
		b.fail(n, "empty name")
	}
	if t.Token.Kind == lexer.QuotedIdent {
		return statement.QuotedIdent(t.Token.Value)
	}
	return statement.Ident(t.Token.Value)
}

// identOf is ident for an optional node; nil yields the zero Identifier.
func (b *Builder) identOf(n *cst.Node) statement.Identifier {
	if n == nil {
		return statement.Identifier{}
	}
	return b.ident(n)
}

// parts reads the dotted name parts of a QualifiedName, FuncName or
// GenericType node.
func (b *Builder) parts(n *cst.Node) []statement.Identifier {
	var out []statement.Identifier
	for _, c := range n.Nodes() {
		switch c.Kind {
		case cst.KindColId, cst.KindColLabel, cst.KindTypeFunctionName:
			out = append(out, b.ident(c))
		}
	}
	return out
}

func (b *Builder) qualifiedName(n *cst.Node) statement.QualifiedName {
	if n == nil {
		return statement.QualifiedName{}
	}
	q, ok := statement.NameFromParts(b.parts(n))
	if !ok {
		b.fail(n, "name must have one to three parts")
	}
	return q
}

func (b *Builder) qualifiedNames(nodes []*cst.Node) []statement.QualifiedName {
	var out []statement.QualifiedName
	for _, n := range nodes {
		out = append(out, b.qualifiedName(n))
	}
	return out
}

// singleName lifts a one-word name into a QualifiedName.
func (b *Builder) singleName(n *cst.Node) statement.QualifiedName {
	return statement.QualifiedName{Name: b.ident(n)}
}

func (b *Builder) idents(nodes []*cst.Node) []statement.Identifier {
	var out []statement.Identifier
	for _, n := range nodes {
		out = append(out, b.ident(n))
	}
	return out
}

// columnList reads a parenthesized ColumnList node; nil yields nil.
func (b *Builder) columnList(n *cst.Node) []statement.Identifier {
	if n == nil {
		return nil
	}
	return b.idents(n.ChildrenOf(cst.KindColId))
}

func (b *Builder) relation(n *cst.Node) statement.Relation {
	return statement.Relation{
		Name: b.qualifiedName(b.needKind(n, cst.KindQualifiedName)),
		Only: n.HasKeyword("only"),
		Star: n.TerminalOf(lexer.Star) != nil,
	}
}

func (b *Builder) alias(n *cst.Node) *statement.Alias {
	if n == nil {
		return nil
	}
	return &statement.Alias{
		Name:    b.ident(b.needKind(n, cst.KindColId)),
		Columns: b.columnList(n.Child(cst.KindColumnList)),
	}
}

// roleSpec maps unquoted PUBLIC to the pseudo-role; "public" quoted is an
// ordinary role name.
func (b *Builder) roleSpec(n *cst.Node) statement.RoleSpec {
	if w := n.Child(cst.KindNonReservedWord); w != nil {
		if t := w.FirstTerminal(); t != nil && t.Token.Kind == lexer.Ident && t.Token.Value == "public" {
			return statement.RoleSpec{Special: "PUBLIC"}
		}
		return statement.RoleSpec{Name: b.ident(w)}
	}
	t := n.FirstTerminal()
	if t == nil {
		b.fail(n, "empty role")
	}
	return statement.RoleSpec{Special: strings.ToUpper(t.Token.Value)}
}

func (b *Builder) roleSpecs(nodes []*cst.Node) []statement.RoleSpec {
	var out []statement.RoleSpec
	for _, n := range nodes {
		out = append(out, b.roleSpec(n))
	}
	return out
}

// roleSpecAfter reads the RoleSpec following kw, or nil.
func (b *Builder) roleSpecAfter(n *cst.Node, kw string) *statement.RoleSpec {
	r := n.NodeAfter(kw, cst.KindRoleSpec)
	if r == nil {
		return nil
	}
	spec := b.roleSpec(r)
	return &spec
}

// word wraps a bare word value.
func (b *Builder) word(n *cst.Node) statement.Expr {
	return &statement.Word{Name: b.ident(n)}
}

// relOptions reads a RelOptions node: (name [= value], ...).
func (b *Builder) relOptions(n *cst.Node) []statement.Option {
	if n == nil {
		return nil
	}
	var out []statement.Option
	for _, o := range n.ChildrenOf(cst.KindRelOption) {
		out = append(out, b.relOption(o))
	}
	return out
}

func (b *Builder) relOption(n *cst.Node) statement.Option {
	var (
		labels []statement.Identifier
		opt    statement.Option
		seenEq bool
	)
	for _, c := range n.Children {
		switch e := c.(type) {
		case *cst.Terminal:
			if e.Token.Kind == lexer.Equals {
				seenEq = true
			}
		case *cst.Node:
			switch {
			case !seenEq && e.Kind == cst.KindColLabel:
				labels = append(labels, b.ident(e))
			case e.Kind == cst.KindColLabel:
				opt.Value = b.word(e)
			default:
				opt.Value = b.expr(e)
			}
		}
	}
	switch len(labels) {
	case 1:
		opt.Name = labels[0]
	case 2:
		opt.Namespace, opt.Name = labels[0], labels[1]
	default:
		b.fail(n, "option needs a name")
	}
	return opt
}

// configName reads ColId ('.' ColLabel)* runs used by SET and RESET.
func (b *Builder) configName(nodes []*cst.Node) []statement.Identifier {
	var out []statement.Identifier
	for _, c := range nodes {
		if c.Kind == cst.KindColId || c.Kind == cst.KindColLabel {
			out = append(out, b.ident(c))
		}
	}
	return out
}

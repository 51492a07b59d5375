// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package cst defines the concrete parse tree produced by the grammar.
//
// # Description
//
// Every grammar rule invocation yields exactly one Node whose Kind names the
// rule. A Node owns its children, which are either nested Nodes or
// Terminals wrapping the consumed tokens, in source order. There are no
// parent pointers; consumers that need context carry it down while
// traversing (see Walk and Accept).
//
// # Thread Safety
//
// Trees are built by a single parser and are read-only afterwards, so a
// finished tree can be traversed from several goroutines.
package cst

import (
	"strings"

	"github.com/AleutianAI/sqlfront/services/parser/lexer"
)

// Span is a half-open byte range [Start, End) in the source text.
type Span struct {
	Start int
	End   int
}

// Len returns the length of the span in bytes.
func (s Span) Len() int { return s.End - s.Start }

// Element is a child of a Node: either a *Node or a *Terminal.
type Element interface {
	Span() Span
	element()
}

// Terminal is a leaf wrapping one significant token.
type Terminal struct {
	Token lexer.Token
}

// Span returns the byte range of the token.
func (t *Terminal) Span() Span {
	return Span{Start: t.Token.Offset, End: t.Token.End}
}

// IsKeyword reports whether the terminal is the unquoted word kw.
func (t *Terminal) IsKeyword(kw string) bool {
	return t.Token.IsKeyword(kw)
}

func (*Terminal) element() {}

// Node is an interior tree node for one rule invocation.
type Node struct {
	Kind     Kind
	Children []Element
	span     Span
}

// NewNode returns an empty node of the given kind starting at offset.
func NewNode(kind Kind, offset int) *Node {
	return &Node{Kind: kind, span: Span{Start: offset, End: offset}}
}

func (*Node) element() {}

// Span returns the byte range covered by the node's children. An empty node
// has a zero-length span at the offset where it was opened.
func (n *Node) Span() Span { return n.span }

// Append adds a child and extends the span.
func (n *Node) Append(e Element) {
	if len(n.Children) == 0 {
		n.span = e.Span()
	} else {
		n.span.End = e.Span().End
	}
	n.Children = append(n.Children, e)
}

// RemoveLast detaches and returns the last child, or nil when there is
// none. The span shrinks accordingly.
func (n *Node) RemoveLast() Element {
	if len(n.Children) == 0 {
		return nil
	}
	last := n.Children[len(n.Children)-1]
	n.Truncate(len(n.Children) - 1)
	return last
}

// Truncate keeps the first k children and recomputes the span.
func (n *Node) Truncate(k int) {
	if k >= len(n.Children) {
		return
	}
	for i := k; i < len(n.Children); i++ {
		n.Children[i] = nil
	}
	n.Children = n.Children[:k]
	switch k {
	case 0:
		n.span.End = n.span.Start
	default:
		n.span = Span{Start: n.Children[0].Span().Start, End: n.Children[k-1].Span().End}
	}
}

// =============================================================================
// Accessors
// =============================================================================

// Nodes returns the child nodes in order.
func (n *Node) Nodes() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if cn, ok := c.(*Node); ok {
			out = append(out, cn)
		}
	}
	return out
}

// Terminals returns the direct terminal children in order.
func (n *Node) Terminals() []*Terminal {
	var out []*Terminal
	for _, c := range n.Children {
		if t, ok := c.(*Terminal); ok {
			out = append(out, t)
		}
	}
	return out
}

// Child returns the first child node of kind k, or nil.
func (n *Node) Child(k Kind) *Node {
	for _, c := range n.Children {
		if cn, ok := c.(*Node); ok && cn.Kind == k {
			return cn
		}
	}
	return nil
}

// ChildrenOf returns all child nodes of kind k.
func (n *Node) ChildrenOf(k Kind) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if cn, ok := c.(*Node); ok && cn.Kind == k {
			out = append(out, cn)
		}
	}
	return out
}

// FirstNode returns the first child node, or nil.
func (n *Node) FirstNode() *Node {
	for _, c := range n.Children {
		if cn, ok := c.(*Node); ok {
			return cn
		}
	}
	return nil
}

// HasKeyword reports whether a direct terminal child is the keyword kw.
func (n *Node) HasKeyword(kw string) bool {
	return n.KeywordIndex(kw) >= 0
}

// KeywordIndex returns the child index of the first terminal that is the
// keyword kw, or -1.
func (n *Node) KeywordIndex(kw string) int {
	for i, c := range n.Children {
		if t, ok := c.(*Terminal); ok && t.IsKeyword(kw) {
			return i
		}
	}
	return -1
}

// FirstKeyword returns the value of the first direct keyword terminal, or
// "" when the node has none.
func (n *Node) FirstKeyword() string {
	for _, c := range n.Children {
		if t, ok := c.(*Terminal); ok && t.Token.Kind == lexer.Ident {
			return t.Token.Value
		}
	}
	return ""
}

// Keywords returns the lower-case values of all direct unquoted-word
// terminals joined by single spaces, e.g. "primary key".
func (n *Node) Keywords() string {
	var words []string
	for _, c := range n.Children {
		if t, ok := c.(*Terminal); ok && t.Token.Kind == lexer.Ident {
			words = append(words, t.Token.Value)
		}
	}
	return strings.Join(words, " ")
}

// TerminalOf returns the first direct terminal of token kind k, or nil.
func (n *Node) TerminalOf(k lexer.Kind) *Terminal {
	for _, c := range n.Children {
		if t, ok := c.(*Terminal); ok && t.Token.Kind == k {
			return t
		}
	}
	return nil
}

// NodeAfter returns the first child node of kind k that follows the
// keyword kw, or nil. It is how clause values are located in nodes that
// hold several clauses of the same shape ("TABLESPACE name", "OWNER TO").
func (n *Node) NodeAfter(kw string, k Kind) *Node {
	i := n.KeywordIndex(kw)
	if i < 0 {
		return nil
	}
	for _, c := range n.Children[i+1:] {
		if cn, ok := c.(*Node); ok && cn.Kind == k {
			return cn
		}
	}
	return nil
}

// TerminalAfter returns the first terminal that follows the keyword kw,
// or nil.
func (n *Node) TerminalAfter(kw string) *Terminal {
	i := n.KeywordIndex(kw)
	if i < 0 {
		return nil
	}
	for _, c := range n.Children[i+1:] {
		if t, ok := c.(*Terminal); ok {
			return t
		}
	}
	return nil
}

// FirstTerminal returns the leftmost terminal in the subtree, or nil.
func (n *Node) FirstTerminal() *Terminal {
	for _, c := range n.Children {
		switch e := c.(type) {
		case *Terminal:
			return e
		case *Node:
			if t := e.FirstTerminal(); t != nil {
				return t
			}
		}
	}
	return nil
}

// =============================================================================
// Tree
// =============================================================================

// Tree bundles a parse tree with the source it was parsed from.
type Tree struct {
	Root   *Node
	Source string
}

// Text returns the source text covered by e.
func (t *Tree) Text(e Element) string {
	return Text(t.Source, e)
}

// Text returns the slice of src covered by e.
func Text(src string, e Element) string {
	s := e.Span()
	if s.Start < 0 || s.End > len(src) || s.Start > s.End {
		return ""
	}
	return src[s.Start:s.End]
}

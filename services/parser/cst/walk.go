// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package cst

// Listener receives callbacks during a depth-first Walk.
//
// EnterNode is called before a node's children are walked and ExitNode
// after. VisitTerminal is called for each terminal in source order.
type Listener interface {
	EnterNode(n *Node)
	ExitNode(n *Node)
	VisitTerminal(t *Terminal)
}

// Walk traverses the subtree rooted at n depth-first, in source order.
func Walk(l Listener, n *Node) {
	if n == nil {
		return
	}
	l.EnterNode(n)
	for _, c := range n.Children {
		switch e := c.(type) {
		case *Node:
			Walk(l, e)
		case *Terminal:
			l.VisitTerminal(e)
		}
	}
	l.ExitNode(n)
}

// BaseListener is a Listener with no-op callbacks, meant for embedding.
type BaseListener struct{}

func (BaseListener) EnterNode(*Node)         {}
func (BaseListener) ExitNode(*Node)          {}
func (BaseListener) VisitTerminal(*Terminal) {}

// ListenerFuncs dispatches callbacks through per-kind tables, so a consumer
// registers only the kinds it cares about.
//
//	var tables []string
//	Walk(&ListenerFuncs{Enter: map[Kind]func(*Node){
//	    KindQualifiedName: func(n *Node) { tables = append(tables, src[n.Span().Start:n.Span().End]) },
//	}}, root)
type ListenerFuncs struct {
	Enter    map[Kind]func(*Node)
	Exit     map[Kind]func(*Node)
	Terminal func(*Terminal)
}

// EnterNode calls the Enter callback registered for n.Kind.
func (l *ListenerFuncs) EnterNode(n *Node) {
	if fn := l.Enter[n.Kind]; fn != nil {
		fn(n)
	}
}

// ExitNode calls the Exit callback registered for n.Kind.
func (l *ListenerFuncs) ExitNode(n *Node) {
	if fn := l.Exit[n.Kind]; fn != nil {
		fn(n)
	}
}

// VisitTerminal calls the Terminal callback if set.
func (l *ListenerFuncs) VisitTerminal(t *Terminal) {
	if l.Terminal != nil {
		l.Terminal(t)
	}
}

// Find returns every node of kind k in the subtree rooted at n, in
// pre-order.
func Find(n *Node, k Kind) []*Node {
	var out []*Node
	Walk(&ListenerFuncs{Enter: map[Kind]func(*Node){
		k: func(m *Node) { out = append(out, m) },
	}}, n)
	return out
}

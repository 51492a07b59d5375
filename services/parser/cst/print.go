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

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented dump of the subtree rooted at n, one element
// per line: node kinds with their spans, terminals as their source text.
func Fprint(w io.Writer, n *Node) error {
	p := &printer{w: w}
	Walk(p, n)
	return p.err
}

// Sprint returns the Fprint dump as a string.
func Sprint(n *Node) string {
	var b strings.Builder
	_ = Fprint(&b, n)
	return b.String()
}

type printer struct {
	w     io.Writer
	depth int
	err   error
}

func (p *printer) EnterNode(n *Node) {
	s := n.Span()
	p.line("%s [%d,%d)", n.Kind, s.Start, s.End)
	p.depth++
}

func (p *printer) ExitNode(*Node) { p.depth-- }

func (p *printer) VisitTerminal(t *Terminal) {
	p.line("%s %q", t.Token.Kind, t.Token.Text)
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", p.depth), fmt.Sprintf(format, args...))
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package grammar

import (
	"github.com/AleutianAI/sqlfront/services/parser/cst"
	"github.com/AleutianAI/sqlfront/services/parser/lexer"
)

// alternative is one arm of a choice: when decides by lookahead, then
// parses.
type alternative struct {
	when func(p *Parser) bool
	then func(p *Parser)
}

// kw builds a lookahead predicate matching the keyword sequence words.
func kw(words ...string) func(p *Parser) bool {
	return func(p *Parser) bool { return p.atKws(words...) }
}

// top returns the innermost open node.
func (p *Parser) top() *cst.Node {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

// node opens a node of kind, runs body with it innermost, then attaches it
// to the enclosing node.
func (p *Parser) node(kind cst.Kind, body func()) *cst.Node {
	n := cst.NewNode(kind, p.cur().Offset)
	p.open(n)
	body()
	p.close(n)
	return n
}

// wrap re-parents the last child of the innermost node under a new node of
// kind and continues with body. It builds left-associative shapes such as
// binary operators and joins.
func (p *Parser) wrap(kind cst.Kind, body func()) *cst.Node {
	parent := p.top()
	left := parent.RemoveLast()
	n := cst.NewNode(kind, left.Span().Start)
	n.Append(left)
	p.open(n)
	body()
	p.close(n)
	return n
}

func (p *Parser) open(n *cst.Node) {
	p.depth++
	if p.depth > p.maxDepth {
		p.failf("statement nesting exceeds %d levels", p.maxDepth)
	}
	p.stack = append(p.stack, n)
}

func (p *Parser) close(n *cst.Node) {
	p.stack = p.stack[:len(p.stack)-1]
	p.depth--
	if parent := p.top(); parent != nil {
		parent.Append(n)
	}
}

// choose runs the first alternative whose predicate holds, or fails with
// the union of everything the predicates tested.
func (p *Parser) choose(alts []alternative) {
	for _, a := range alts {
		if a.when(p) {
			a.then(p)
			return
		}
	}
	p.fail()
}

// optional runs rule when pred holds and reports whether it did.
func (p *Parser) optional(pred func() bool, rule func()) bool {
	if pred() {
		rule()
		return true
	}
	return false
}

// commaList parses item (',' item)*.
func (p *Parser) commaList(item func()) {
	item()
	for p.accept(lexer.Comma) {
		item()
	}
}

// parens parses '(' body ')'.
func (p *Parser) parens(body func()) {
	p.want(lexer.LParen)
	body()
	p.want(lexer.RParen)
}

// parenList parses '(' item (',' item)* ')'.
func (p *Parser) parenList(item func()) {
	p.parens(func() { p.commaList(item) })
}

// try runs body and rewinds the parser if body fails with a syntax error.
// Lexical errors are not recoverable and keep propagating.
func (p *Parser) try(body func()) (ok bool) {
	savePos, saveDepth, saveStack := p.pos, p.depth, len(p.stack)
	top := p.top()
	saveChildren := len(top.Children)

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		b, isBail := r.(bailout)
		if !isBail {
			panic(r)
		}
		if _, isSyntax := b.err.(*SyntaxError); !isSyntax {
			panic(r)
		}
		p.pos, p.depth = savePos, saveDepth
		p.stack = p.stack[:saveStack]
		top.Truncate(saveChildren)
		ok = false
	}()

	body()
	return true
}

// skipParens returns the lookahead index just past the balanced
// parenthesized group starting at lookahead index i, or -1.
func (p *Parser) skipParens(i int) int {
	if !p.peekIs(i, lexer.LParen) {
		return -1
	}
	depth := 0
	for ; ; i++ {
		switch p.peek(i).Kind {
		case lexer.LParen:
			depth++
		case lexer.RParen:
			depth--
			if depth == 0 {
				return i + 1
			}
		case lexer.EOF:
			return -1
		}
	}
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package grammar recognizes PostgreSQL statements and builds concrete
// parse trees.
//
// # Description
//
// The parser is hand-written recursive descent. Productions are expressed
// with a small set of combinators (node, optional, choose, commaList,
// parens) and families of near-identical productions (DROP object types,
// ALTER TABLE actions, sequence options) are driven by data tables.
// Expressions use precedence climbing over the a_expr / b_expr / c_expr
// layering of the PostgreSQL grammar.
//
// Every rule invocation opens one cst.Node; consumed tokens become
// cst.Terminal children of the innermost open node. Keyword classes come
// from the keywords.Table given to New, never from package state.
//
// There is no error recovery: the first token no alternative accepts
// aborts the parse with a *SyntaxError listing what was expected there.
//
// # Thread Safety
//
// A Parser is single-use and single-goroutine. Create one per statement
// or batch; keyword tables may be shared freely.
package grammar

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/AleutianAI/sqlfront/services/parser/cst"
	"github.com/AleutianAI/sqlfront/services/parser/keywords"
	"github.com/AleutianAI/sqlfront/services/parser/lexer"
)

// DefaultMaxDepth bounds rule nesting so hostile input cannot exhaust the
// goroutine stack.
const DefaultMaxDepth = 1000

// ErrParserReused is returned when a parse method is called twice on the
// same Parser.
var ErrParserReused = errors.New("grammar: parser already used")

// TokenSource supplies tokens lazily. *lexer.Lexer implements it.
type TokenSource interface {
	Next() (lexer.Token, error)
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// Parser is a recursive-descent parser over one token source.
type Parser struct {
	src      TokenSource
	kw       *keywords.Table
	toks     []lexer.Token
	pos      int
	stack    []*cst.Node
	depth    int
	maxDepth int
	used     bool

	// expected collects descriptions of tokens tested at token index
	// expectPos; it is reset whenever the parser tests a new position.
	expected  map[string]struct{}
	expectPos int
}

// New returns a Parser reading from src. A nil table selects
// keywords.PostgreSQL().
func New(src TokenSource, table *keywords.Table, opts ...Option) *Parser {
	if table == nil {
		table = keywords.PostgreSQL()
	}
	p := &Parser{src: src, kw: table, maxDepth: DefaultMaxDepth, expectPos: -1}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewString returns a Parser over sql.
func NewString(sql string, table *keywords.Table, opts ...Option) *Parser {
	return New(lexer.New(sql), table, opts...)
}

// Keywords returns the keyword table in use.
func (p *Parser) Keywords() *keywords.Table { return p.kw }

// =============================================================================
// Entry points
// =============================================================================

// ParseStatement parses exactly one statement with an optional trailing
// semicolon. The root is a KindStatement node.
func (p *Parser) ParseStatement() (*cst.Node, error) {
	return p.run(func() {
		p.statement()
		p.want(lexer.EOF)
	})
}

// ParseBlock parses a semicolon-separated batch. The root is a
// KindStatementBlock node whose KindStatement children are in order.
func (p *Parser) ParseBlock() (*cst.Node, error) {
	return p.run(func() {
		p.node(cst.KindStatementBlock, func() {
			for {
				for p.accept(lexer.Semicolon) {
				}
				if p.at(lexer.EOF) {
					return
				}
				p.statement()
				if !p.at(lexer.EOF) && !p.lastWasSemicolon() {
					p.fail()
				}
			}
		})
	})
}

// ParseCreateTable parses a single CREATE TABLE statement. The root is a
// KindCreateTable node.
func (p *Parser) ParseCreateTable() (*cst.Node, error) {
	return p.run(func() {
		p.createTable()
		p.accept(lexer.Semicolon)
		p.want(lexer.EOF)
	})
}

// ParseExpr parses a single a_expr followed by end of input.
func (p *Parser) ParseExpr() (*cst.Node, error) {
	return p.run(func() {
		p.aExpr()
		p.want(lexer.EOF)
	})
}

// ParseTypeName parses a single type name followed by end of input.
func (p *Parser) ParseTypeName() (*cst.Node, error) {
	return p.run(func() {
		p.typeName()
		p.want(lexer.EOF)
	})
}

// run executes body under a holder node and converts bailouts into
// returned errors.
func (p *Parser) run(body func()) (root *cst.Node, err error) {
	if p.used {
		return nil, ErrParserReused
	}
	p.used = true

	holder := cst.NewNode(cst.KindInvalid, 0)
	p.stack = []*cst.Node{holder}

	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			root, err = nil, b.err
		}
	}()

	body()
	return holder.FirstNode(), nil
}

// statement parses one statement plus an optional ';'.
func (p *Parser) statement() {
	p.node(cst.KindStatement, func() {
		p.choose(statementAlternatives)
		p.accept(lexer.Semicolon)
	})
}

func (p *Parser) lastWasSemicolon() bool {
	return p.pos > 0 && p.toks[p.pos-1].Kind == lexer.Semicolon
}

// =============================================================================
// Token access
// =============================================================================

// peek returns the significant token n positions ahead. Hidden tokens are
// dropped here, so every rule skips trivia uniformly.
func (p *Parser) peek(n int) lexer.Token {
	for len(p.toks) <= p.pos+n {
		if len(p.toks) > 0 && p.toks[len(p.toks)-1].Kind == lexer.EOF {
			break
		}
		tok, err := p.src.Next()
		if err != nil {
			panic(bailout{err})
		}
		if tok.Hidden() {
			continue
		}
		p.toks = append(p.toks, tok)
	}
	if p.pos+n < len(p.toks) {
		return p.toks[p.pos+n]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) cur() lexer.Token { return p.peek(0) }

// expect records desc as acceptable at the current position.
func (p *Parser) expect(desc string) {
	if p.expectPos != p.pos || p.expected == nil {
		p.expected = make(map[string]struct{})
		p.expectPos = p.pos
	}
	p.expected[desc] = struct{}{}
}

// at reports whether the current token has kind k.
func (p *Parser) at(k lexer.Kind) bool {
	p.expect(k.Describe())
	return p.cur().Kind == k
}

// atText reports whether the current token is the punctuation or operator
// text s.
func (p *Parser) atText(s string) bool {
	p.expect("'" + s + "'")
	tok := p.cur()
	return tok.Kind != lexer.EOF && !isWord(tok.Kind) && tok.Text == s
}

// atKw reports whether the current token is the unquoted keyword kw.
func (p *Parser) atKw(kw string) bool {
	p.expect(strings.ToUpper(kw))
	return p.cur().IsKeyword(kw)
}

// atAnyKw reports whether the current token is one of kws.
func (p *Parser) atAnyKw(kws ...string) bool {
	found := false
	for _, kw := range kws {
		if p.atKw(kw) {
			found = true
		}
	}
	return found
}

// atKws reports whether the next len(kws) tokens are the keywords kws.
// Only the first keyword is recorded as expected.
func (p *Parser) atKws(kws ...string) bool {
	if !p.atKw(kws[0]) {
		return false
	}
	for i := 1; i < len(kws); i++ {
		if !p.peek(i).IsKeyword(kws[i]) {
			return false
		}
	}
	return true
}

func (p *Parser) peekKw(n int, kw string) bool { return p.peek(n).IsKeyword(kw) }

func (p *Parser) peekIs(n int, k lexer.Kind) bool { return p.peek(n).Kind == k }

// advance consumes the current token into the innermost open node.
func (p *Parser) advance() *cst.Terminal {
	tok := p.cur()
	t := &cst.Terminal{Token: tok}
	if tok.Kind != lexer.EOF {
		p.pos++
	}
	if top := p.top(); top != nil && tok.Kind != lexer.EOF {
		top.Append(t)
	}
	return t
}

// want consumes a token of kind k or fails.
func (p *Parser) want(k lexer.Kind) *cst.Terminal {
	if !p.at(k) {
		p.fail()
	}
	return p.advance()
}

// wantText consumes the punctuation or operator s or fails.
func (p *Parser) wantText(s string) {
	if !p.atText(s) {
		p.fail()
	}
	p.advance()
}

// wantKw consumes the keywords kws in order or fails.
func (p *Parser) wantKw(kws ...string) {
	for _, kw := range kws {
		if !p.atKw(kw) {
			p.fail()
		}
		p.advance()
	}
}

// accept consumes a token of kind k if present.
func (p *Parser) accept(k lexer.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// acceptKw consumes the keyword kw if present.
func (p *Parser) acceptKw(kw string) bool {
	if p.atKw(kw) {
		p.advance()
		return true
	}
	return false
}

// acceptKws consumes the whole keyword sequence kws if all are present.
func (p *Parser) acceptKws(kws ...string) bool {
	if !p.atKws(kws...) {
		return false
	}
	for range kws {
		p.advance()
	}
	return true
}

// acceptAnyKw consumes the first of kws that is present.
func (p *Parser) acceptAnyKw(kws ...string) bool {
	for _, kw := range kws {
		if p.acceptKw(kw) {
			return true
		}
	}
	return false
}

// wantAnyKw consumes one of kws or fails.
func (p *Parser) wantAnyKw(kws ...string) {
	if !p.acceptAnyKw(kws...) {
		p.fail()
	}
}

// =============================================================================
// Failure
// =============================================================================

func (p *Parser) fail() {
	panic(bailout{p.errorHere("")})
}

func (p *Parser) failf(format string, args ...any) {
	panic(bailout{p.errorHere(fmt.Sprintf(format, args...))})
}

func (p *Parser) errorHere(msg string) *SyntaxError {
	tok := p.cur()
	var expected []string
	if p.expectPos == p.pos {
		expected = make([]string, 0, len(p.expected))
		for desc := range p.expected {
			expected = append(expected, desc)
		}
		slices.Sort(expected)
	}
	return &SyntaxError{
		Offset:   tok.Offset,
		Line:     tok.Line,
		Column:   tok.Column,
		Found:    tok,
		Expected: expected,
		Message:  msg,
	}
}

func isWord(k lexer.Kind) bool {
	return k == lexer.Ident || k == lexer.QuotedIdent
}

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

// typeName parses Typename: [SETOF] SimpleTypename followed by array
// bounds, either '[' [n] ']' repeated or ARRAY ['[' n ']'].
func (p *Parser) typeName() {
	p.node(cst.KindTypeName, func() {
		p.acceptKw("setof")
		p.simpleTypeName()
		p.arrayBounds()
	})
}

func (p *Parser) arrayBounds() {
	if p.acceptKw("array") {
		if p.accept(lexer.LBracket) {
			p.want(lexer.Integer)
			p.want(lexer.RBracket)
		}
		return
	}
	for p.accept(lexer.LBracket) {
		p.accept(lexer.Integer)
		p.want(lexer.RBracket)
	}
}

// simpleTypeName dispatches on the leading word to the SQL-standard type
// productions, falling back to a generic (possibly qualified) type name.
func (p *Parser) simpleTypeName() {
	tok := p.cur()
	if tok.Kind == lexer.Ident {
		switch tok.Value {
		case "int", "integer", "smallint", "bigint", "real", "boolean":
			p.node(cst.KindNumericType, func() { p.advance() })
			return
		case "float":
			p.node(cst.KindNumericType, func() {
				p.advance()
				if p.accept(lexer.LParen) {
					p.want(lexer.Integer)
					p.want(lexer.RParen)
				}
			})
			return
		case "double":
			if p.peekKw(1, "precision") {
				p.node(cst.KindNumericType, func() { p.wantKw("double", "precision") })
				return
			}
		case "decimal", "dec", "numeric":
			p.node(cst.KindNumericType, func() {
				p.advance()
				if p.at(lexer.LParen) {
					p.typeModifiers()
				}
			})
			return
		case "bit":
			p.node(cst.KindBitType, func() {
				p.advance()
				p.acceptKw("varying")
				if p.at(lexer.LParen) {
					p.typeModifiers()
				}
			})
			return
		case "character", "char", "varchar", "nchar", "national":
			p.characterType()
			return
		case "timestamp", "time":
			p.node(cst.KindDatetimeType, func() {
				p.advance()
				if p.accept(lexer.LParen) {
					p.want(lexer.Integer)
					p.want(lexer.RParen)
				}
				if p.atKws("with", "time", "zone") || p.atKws("without", "time", "zone") {
					p.advance()
					p.wantKw("time", "zone")
				}
			})
			return
		case "interval":
			p.node(cst.KindIntervalType, func() {
				p.advance()
				if p.atIntervalField() {
					p.intervalQualifier()
				}
				if p.accept(lexer.LParen) {
					p.want(lexer.Integer)
					p.want(lexer.RParen)
				}
			})
			return
		case "json":
			p.node(cst.KindGenericType, func() { p.advance() })
			return
		}
	}
	p.node(cst.KindGenericType, func() {
		p.genericTypeName()
		if p.at(lexer.LParen) {
			p.typeModifiers()
		}
	})
}

// characterType parses CHARACTER, CHAR, VARCHAR, NCHAR and the NATIONAL
// forms, each with optional VARYING and length.
func (p *Parser) characterType() {
	p.node(cst.KindCharacterType, func() {
		switch {
		case p.acceptKw("national"):
			p.wantAnyKw("character", "char")
			p.acceptKw("varying")
		case p.acceptKw("varchar"):
		default:
			p.wantAnyKw("character", "char", "nchar")
			p.acceptKw("varying")
		}
		if p.accept(lexer.LParen) {
			p.want(lexer.Integer)
			p.want(lexer.RParen)
		}
	})
}

// genericTypeName parses type_function_name ('.' ColLabel)*.
func (p *Parser) genericTypeName() {
	p.typeFunctionName()
	for p.peekIs(0, lexer.Dot) && isWord(p.peek(1).Kind) {
		p.advance()
		p.colLabel()
	}
}

func (p *Parser) typeModifiers() {
	p.node(cst.KindTypeModifiers, func() {
		p.parenList(p.aExpr)
	})
}

func (p *Parser) atIntervalField() bool {
	return p.atAnyKw("year", "month", "day", "hour", "minute", "second")
}

// intervalQualifier parses opt_interval: a single field or a FROM TO range
// with an optional seconds precision.
func (p *Parser) intervalQualifier() {
	p.node(cst.KindIntervalQualifier, func() {
		first := p.cur().Value
		p.wantAnyKw("year", "month", "day", "hour", "minute", "second")
		if first == "second" {
			p.secondsPrecision()
			return
		}
		if !p.acceptKw("to") {
			return
		}
		last := p.cur().Value
		switch first {
		case "year":
			p.wantKw("month")
		case "day":
			p.wantAnyKw("hour", "minute", "second")
		case "hour":
			p.wantAnyKw("minute", "second")
		case "minute":
			p.wantKw("second")
		default:
			p.fail()
		}
		if last == "second" {
			p.secondsPrecision()
		}
	})
}

func (p *Parser) secondsPrecision() {
	if p.at(lexer.LParen) && p.peekIs(1, lexer.Integer) {
		p.advance()
		p.advance()
		p.want(lexer.RParen)
	}
}

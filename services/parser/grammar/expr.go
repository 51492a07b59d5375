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

// Binding strength of expression operators, weakest first. Mirrors the
// precedence declarations of the PostgreSQL grammar.
const (
	precOr = iota + 1
	precAnd
	precNot
	precIs      // IS, ISNULL, NOTNULL
	precCmp     // < > = <= >= <>
	precLike    // BETWEEN IN LIKE ILIKE SIMILAR
	precOp      // generic operators, JSON operators, ||
	precAdd     // + -
	precMul     // * / %
	precExp     // ^
	precAt      // AT TIME ZONE
	precCollate // COLLATE
	precUnary   // prefix + -
	precPostfix // [] . ::
)

type infixKind int

const (
	infixNone infixKind = iota
	infixBinary
	infixCompare
	infixIs
	infixIsNull
	infixLike
	infixBetween
	infixIn
	infixAtTimeZone
	infixCollate
	infixTypecast
	infixSubscript
	infixField
)

const descExpression = "expression"

// aExpr parses the unrestricted expression form.
func (p *Parser) aExpr() { p.expr(precOr, false) }

// bExpr parses the restricted form used where AND, NOT, IS NULL, LIKE, IN
// and BETWEEN would be ambiguous (column DEFAULT, BETWEEN lower bounds).
func (p *Parser) bExpr() { p.expr(precOr, true) }

// exprList parses aExpr (',' aExpr)*.
func (p *Parser) exprList() { p.commaList(p.aExpr) }

// exprOrDefault parses an aExpr or the DEFAULT placeholder.
func (p *Parser) exprOrDefault() {
	if p.atKw("default") {
		p.node(cst.KindSetToDefault, func() { p.advance() })
		return
	}
	p.aExpr()
}

// expr is the precedence-climbing loop. It appends exactly one element to
// the innermost open node.
func (p *Parser) expr(minPrec int, restricted bool) {
	p.prefix(restricted)
	nonassoc := -1
	for {
		op, prec := p.infix(restricted)
		if op == infixNone || prec < minPrec {
			return
		}
		if prec == nonassoc {
			p.fail()
		}
		p.applyInfix(op, prec, restricted)
		switch prec {
		case precIs, precCmp, precLike:
			nonassoc = prec
		default:
			nonassoc = -1
		}
	}
}

func (p *Parser) prefix(restricted bool) {
	tok := p.cur()
	switch {
	case !restricted && tok.IsKeyword("not"):
		p.node(cst.KindUnaryExpr, func() {
			p.advance()
			p.expr(precNot, false)
		})
	case tok.Kind == lexer.Plus || tok.Kind == lexer.Minus:
		p.node(cst.KindUnaryExpr, func() {
			p.advance()
			p.expr(precUnary, restricted)
		})
	case tok.Kind == lexer.Operator:
		p.node(cst.KindUnaryExpr, func() {
			p.advance()
			p.expr(precOp+1, restricted)
		})
	default:
		p.primary()
	}
}

// infix classifies the current token as an infix or postfix operator
// without consuming it.
func (p *Parser) infix(restricted bool) (infixKind, int) {
	tok := p.cur()
	switch tok.Kind {
	case lexer.Equals, lexer.Less, lexer.Greater, lexer.LessEquals, lexer.GreaterEquals, lexer.NotEquals:
		return infixCompare, precCmp
	case lexer.Plus, lexer.Minus:
		return infixBinary, precAdd
	case lexer.Star, lexer.Slash, lexer.Percent:
		return infixBinary, precMul
	case lexer.Caret:
		return infixBinary, precExp
	case lexer.Operator:
		return infixBinary, precOp
	case lexer.Typecast:
		return infixTypecast, precPostfix
	case lexer.LBracket:
		return infixSubscript, precPostfix
	case lexer.Dot:
		return infixField, precPostfix
	case lexer.Ident:
	default:
		return infixNone, 0
	}

	switch tok.Value {
	case "or":
		if !restricted {
			return infixBinary, precOr
		}
	case "and":
		if !restricted {
			return infixBinary, precAnd
		}
	case "is":
		if !restricted {
			return infixIs, precIs
		}
		n := 1
		if p.peekKw(1, "not") {
			n = 2
		}
		if p.peekKw(n, "distinct") || p.peekKw(n, "document") {
			return infixIs, precIs
		}
	case "isnull", "notnull":
		if !restricted {
			return infixIsNull, precIs
		}
	case "like", "ilike":
		if !restricted {
			return infixLike, precLike
		}
	case "similar":
		if !restricted && p.peekKw(1, "to") {
			return infixLike, precLike
		}
	case "between":
		if !restricted {
			return infixBetween, precLike
		}
	case "in":
		if !restricted {
			return infixIn, precLike
		}
	case "not":
		if restricted {
			break
		}
		next := p.peek(1)
		switch {
		case next.IsKeyword("like"), next.IsKeyword("ilike"):
			return infixLike, precLike
		case next.IsKeyword("similar") && p.peekKw(2, "to"):
			return infixLike, precLike
		case next.IsKeyword("between"):
			return infixBetween, precLike
		case next.IsKeyword("in"):
			return infixIn, precLike
		}
	case "at":
		if p.peekKw(1, "time") && p.peekKw(2, "zone") {
			return infixAtTimeZone, precAt
		}
	case "collate":
		return infixCollate, precCollate
	}
	return infixNone, 0
}

func (p *Parser) applyInfix(op infixKind, prec int, restricted bool) {
	switch op {
	case infixBinary, infixCompare:
		if p.atQuantifier(1) {
			p.wrap(cst.KindQuantifiedExpr, func() {
				p.advance()
				p.advance()
				p.parens(p.exprOrSelect)
			})
			return
		}
		p.wrap(cst.KindBinaryExpr, func() {
			p.advance()
			p.expr(prec+1, restricted)
		})

	case infixIs:
		p.wrap(cst.KindIsExpr, func() {
			p.wantKw("is")
			p.acceptKw("not")
			switch {
			case p.atAnyKw("null", "true", "false", "unknown", "document"):
				p.advance()
			case p.atKw("distinct"):
				p.wantKw("distinct", "from")
				p.expr(precIs+1, restricted)
			default:
				p.fail()
			}
		})

	case infixIsNull:
		p.wrap(cst.KindIsExpr, func() { p.advance() })

	case infixLike:
		p.wrap(cst.KindLikeExpr, func() {
			p.acceptKw("not")
			if p.acceptKw("similar") {
				p.wantKw("to")
			} else {
				p.wantAnyKw("like", "ilike")
			}
			p.expr(precLike+1, false)
			if p.acceptKw("escape") {
				p.expr(precLike+1, false)
			}
		})

	case infixBetween:
		p.wrap(cst.KindBetweenExpr, func() {
			p.acceptKw("not")
			p.wantKw("between")
			p.acceptAnyKw("symmetric", "asymmetric")
			p.bExpr()
			p.wantKw("and")
			p.expr(precLike+1, false)
		})

	case infixIn:
		p.wrap(cst.KindInExpr, func() {
			p.acceptKw("not")
			p.wantKw("in")
			p.parens(p.exprOrSelectList)
		})

	case infixAtTimeZone:
		p.wrap(cst.KindAtTimeZoneExpr, func() {
			p.wantKw("at", "time", "zone")
			p.expr(precAt+1, restricted)
		})

	case infixCollate:
		p.wrap(cst.KindCollateExpr, func() {
			p.wantKw("collate")
			p.qualifiedName()
		})

	case infixTypecast:
		p.wrap(cst.KindTypecastExpr, func() {
			p.want(lexer.Typecast)
			p.typeName()
		})

	case infixSubscript:
		p.wrap(cst.KindIndirectionExpr, func() {
			p.want(lexer.LBracket)
			if !p.at(lexer.Colon) {
				p.aExpr()
			}
			if p.accept(lexer.Colon) && !p.at(lexer.RBracket) {
				p.aExpr()
			}
			p.want(lexer.RBracket)
		})

	case infixField:
		p.wrap(cst.KindIndirectionExpr, func() {
			p.want(lexer.Dot)
			if !p.accept(lexer.Star) {
				p.colLabel()
			}
		})
	}
}

// atQuantifier reports whether the token n ahead starts ANY/ALL/SOME '('.
func (p *Parser) atQuantifier(n int) bool {
	q := p.peek(n)
	return (q.IsKeyword("any") || q.IsKeyword("all") || q.IsKeyword("some")) && p.peekIs(n+1, lexer.LParen)
}

// exprOrSelect parses a subquery body or a single expression inside
// already-consumed parentheses.
func (p *Parser) exprOrSelect() {
	if p.selectAhead(0) && p.try(p.subqueryBody) {
		return
	}
	p.aExpr()
}

// exprOrSelectList parses a subquery body or an expression list.
func (p *Parser) exprOrSelectList() {
	if p.selectAhead(0) && p.try(p.subqueryBody) {
		return
	}
	p.exprList()
}

// subqueryBody parses a select statement that must be followed by ')'.
func (p *Parser) subqueryBody() {
	p.selectStatement()
	if !p.at(lexer.RParen) {
		p.fail()
	}
}

// selectAhead reports whether a SELECT-like statement starts at lookahead
// index i, possibly behind opening parentheses.
func (p *Parser) selectAhead(i int) bool {
	for p.peekIs(i, lexer.LParen) {
		i++
	}
	tok := p.peek(i)
	return tok.IsKeyword("select") || tok.IsKeyword("values") || tok.IsKeyword("with") || tok.IsKeyword("table")
}

// =============================================================================
// Primary expressions (c_expr)
// =============================================================================

var commonFuncKeywords = map[string]bool{
	"cast": true, "extract": true, "position": true, "substring": true,
	"trim": true, "overlay": true, "coalesce": true, "nullif": true,
	"greatest": true, "least": true, "grouping": true,
}

var sqlValueFunctions = map[string]bool{
	"current_date": true, "current_time": true, "current_timestamp": true,
	"localtime": true, "localtimestamp": true, "current_role": true,
	"current_user": true, "session_user": true, "system_user": true,
	"user": true, "current_catalog": true, "current_schema": true,
}

// constTypeKeywords start ConstTypename, which may prefix a string literal.
var constTypeKeywords = map[string]bool{
	"int": true, "integer": true, "smallint": true, "bigint": true,
	"real": true, "float": true, "double": true, "decimal": true, "dec": true,
	"numeric": true, "boolean": true, "bit": true, "character": true,
	"char": true, "varchar": true, "nchar": true, "national": true,
	"timestamp": true, "time": true, "json": true,
}

func (p *Parser) primary() {
	tok := p.cur()
	switch tok.Kind {
	case lexer.Param:
		p.node(cst.KindParamRef, func() { p.advance() })
		return
	case lexer.Integer, lexer.Decimal, lexer.String, lexer.EscapeString,
		lexer.DollarString, lexer.BitString, lexer.HexString:
		p.constant()
		return
	case lexer.LParen:
		p.parenExpr()
		return
	case lexer.Ident, lexer.QuotedIdent:
		p.wordPrimary()
		return
	}
	p.expect(descExpression)
	p.fail()
}

func (p *Parser) wordPrimary() {
	tok := p.cur()
	if tok.Kind == lexer.Ident {
		next := p.peek(1)
		switch tok.Value {
		case "true", "false", "null":
			p.constant()
			return
		case "case":
			p.caseExpr()
			return
		case "exists":
			if next.Kind == lexer.LParen {
				p.node(cst.KindExistsExpr, func() {
					p.advance()
					p.selectWithParens()
				})
				return
			}
		case "array":
			if next.Kind == lexer.LBracket || next.Kind == lexer.LParen {
				p.arrayExpr()
				return
			}
		case "row":
			if next.Kind == lexer.LParen {
				p.node(cst.KindRowExpr, func() {
					p.advance()
					p.want(lexer.LParen)
					if !p.at(lexer.RParen) {
						p.exprList()
					}
					p.want(lexer.RParen)
				})
				return
			}
		case "interval":
			if next.Kind.IsStringConstant() || next.Kind == lexer.LParen {
				p.intervalLiteral()
				return
			}
		}
		if sqlValueFunctions[tok.Value] || (commonFuncKeywords[tok.Value] && next.Kind == lexer.LParen) {
			p.commonFuncExpr()
			return
		}
		if constTypeKeywords[tok.Value] && p.try(p.constTypedLiteral) {
			return
		}
	}

	if p.atFuncCall() {
		p.funcCall()
		return
	}
	if p.atGenericTypedLiteral() {
		p.node(cst.KindTypedLiteral, func() {
			p.node(cst.KindTypeName, func() {
				p.node(cst.KindGenericType, func() { p.genericTypeName() })
			})
			p.constant()
		})
		return
	}
	p.columnRef()
}

// constTypedLiteral parses ConstTypename Sconst, e.g. TIMESTAMP '2020-01-01'.
func (p *Parser) constTypedLiteral() {
	p.node(cst.KindTypedLiteral, func() {
		p.node(cst.KindTypeName, p.simpleTypeName)
		if !p.atStringConst() {
			p.fail()
		}
		p.constant()
	})
}

// intervalLiteral parses INTERVAL ['(' n ')'] Sconst [qualifier].
func (p *Parser) intervalLiteral() {
	p.node(cst.KindTypedLiteral, func() {
		p.node(cst.KindTypeName, func() {
			p.node(cst.KindIntervalType, func() {
				p.wantKw("interval")
				if p.accept(lexer.LParen) {
					p.want(lexer.Integer)
					p.want(lexer.RParen)
				}
			})
		})
		if !p.atStringConst() {
			p.fail()
		}
		p.constant()
		if p.atIntervalField() {
			p.intervalQualifier()
		}
	})
}

// atGenericTypedLiteral reports func_name Sconst, e.g. DATE '2020-01-01'
// or pg_catalog.date '2020-01-01'.
func (p *Parser) atGenericTypedLiteral() bool {
	tok := p.cur()
	if p.isTypeFuncName(tok) && p.peek(1).Kind.IsStringConstant() {
		return true
	}
	return p.isTypeFuncName(tok) && p.peekIs(1, lexer.Dot) && isWord(p.peek(2).Kind) && p.peek(3).Kind.IsStringConstant()
}

// atFuncCall reports func_name '('.
func (p *Parser) atFuncCall() bool {
	tok := p.cur()
	if (p.isTypeFuncName(tok) || p.isColID(tok)) && p.peekIs(1, lexer.LParen) {
		return true
	}
	if !p.isColID(tok) {
		return false
	}
	i := 1
	for parts := 1; parts < 3 && p.peekIs(i, lexer.Dot) && isWord(p.peek(i+1).Kind); parts++ {
		i += 2
	}
	return i > 1 && p.peekIs(i, lexer.LParen)
}

func (p *Parser) atStringConst() bool {
	p.expect("string constant")
	return p.cur().Kind.IsStringConstant()
}

// constant parses one literal token or TRUE/FALSE/NULL.
func (p *Parser) constant() {
	p.node(cst.KindConstant, func() { p.advance() })
}

// signedNumber parses NumericOnly: an optionally signed numeric constant.
func (p *Parser) signedNumber() {
	p.node(cst.KindSignedNumber, func() {
		if p.at(lexer.Plus) || p.at(lexer.Minus) {
			p.advance()
		}
		if !p.at(lexer.Integer) && !p.at(lexer.Decimal) {
			p.fail()
		}
		p.advance()
	})
}

// columnRef parses ColId ('.' ColLabel)* with an optional trailing '.*'.
func (p *Parser) columnRef() {
	p.node(cst.KindColumnRef, func() {
		p.colID()
		for p.peekIs(0, lexer.Dot) {
			next := p.peek(1)
			if next.Kind == lexer.Star {
				p.advance()
				p.advance()
				return
			}
			if !isWord(next.Kind) {
				return
			}
			p.advance()
			p.colLabel()
		}
	})
}

func (p *Parser) parenExpr() {
	if p.selectAhead(1) && p.try(func() { p.node(cst.KindSubqueryExpr, p.selectWithParens) }) {
		return
	}
	n := p.node(cst.KindParenExpr, func() {
		p.want(lexer.LParen)
		p.aExpr()
		for p.accept(lexer.Comma) {
			p.aExpr()
		}
		p.want(lexer.RParen)
	})
	if len(n.Nodes()) > 1 {
		n.Kind = cst.KindRowExpr
	}
}

func (p *Parser) caseExpr() {
	p.node(cst.KindCaseExpr, func() {
		p.wantKw("case")
		if !p.atKw("when") {
			p.aExpr()
		}
		for {
			p.node(cst.KindWhenClause, func() {
				p.wantKw("when")
				p.aExpr()
				p.wantKw("then")
				p.aExpr()
			})
			if !p.atKw("when") {
				break
			}
		}
		if p.acceptKw("else") {
			p.aExpr()
		}
		p.wantKw("end")
	})
}

func (p *Parser) arrayExpr() {
	p.node(cst.KindArrayExpr, func() {
		p.wantKw("array")
		if p.at(lexer.LParen) {
			p.selectWithParens()
			return
		}
		p.arrayElements()
	})
}

// arrayElements parses '[' [element (',' element)*] ']' where an element is
// an expression or a nested bracketed array.
func (p *Parser) arrayElements() {
	p.want(lexer.LBracket)
	if !p.at(lexer.RBracket) {
		p.commaList(func() {
			if p.at(lexer.LBracket) {
				p.node(cst.KindArrayExpr, p.arrayElements)
				return
			}
			p.aExpr()
		})
	}
	p.want(lexer.RBracket)
}

// commonFuncExpr parses the SQL-standard special forms (CAST, EXTRACT,
// TRIM, ...) and the niladic value functions (CURRENT_DATE, ...).
func (p *Parser) commonFuncExpr() {
	p.node(cst.KindCommonFuncExpr, func() {
		name := p.cur().Value
		p.advance()
		switch name {
		case "current_time", "current_timestamp", "localtime", "localtimestamp":
			if p.accept(lexer.LParen) {
				p.want(lexer.Integer)
				p.want(lexer.RParen)
			}
		case "current_date", "current_role", "current_user", "session_user",
			"system_user", "user", "current_catalog", "current_schema":
		case "cast":
			p.parens(func() {
				p.aExpr()
				p.wantKw("as")
				p.typeName()
			})
		case "extract":
			p.parens(func() {
				if p.atStringConst() {
					p.constant()
				} else {
					p.colLabel()
				}
				p.wantKw("from")
				p.aExpr()
			})
		case "position":
			p.parens(func() {
				p.bExpr()
				p.wantKw("in")
				p.bExpr()
			})
		case "substring":
			p.parens(func() {
				p.aExpr()
				switch {
				case p.acceptKw("from"):
					p.aExpr()
					if p.acceptKw("for") {
						p.aExpr()
					}
				case p.acceptKw("for"):
					p.aExpr()
					if p.acceptKw("from") {
						p.aExpr()
					}
				default:
					for p.accept(lexer.Comma) {
						p.aExpr()
					}
				}
			})
		case "trim":
			p.parens(func() {
				p.acceptAnyKw("both", "leading", "trailing")
				if p.acceptKw("from") {
					p.exprList()
					return
				}
				p.aExpr()
				if p.acceptKw("from") {
					p.exprList()
					return
				}
				for p.accept(lexer.Comma) {
					p.aExpr()
				}
			})
		case "overlay":
			p.parens(func() {
				p.aExpr()
				if p.acceptKw("placing") {
					p.aExpr()
					p.wantKw("from")
					p.aExpr()
					if p.acceptKw("for") {
						p.aExpr()
					}
					return
				}
				for p.accept(lexer.Comma) {
					p.aExpr()
				}
			})
		case "nullif":
			p.parens(func() {
				p.aExpr()
				p.want(lexer.Comma)
				p.aExpr()
			})
		default:
			p.parenList(p.aExpr)
		}
	})
}

// funcCall parses func_application with its optional WITHIN GROUP, FILTER
// and OVER suffixes.
func (p *Parser) funcCall() {
	p.node(cst.KindFuncCall, func() {
		p.funcName()
		p.want(lexer.LParen)
		switch {
		case p.at(lexer.Star):
			p.advance()
		case p.at(lexer.RParen):
		default:
			p.acceptAnyKw("distinct", "all")
			p.acceptKw("variadic")
			p.commaList(p.funcArg)
			if p.atKws("order", "by") {
				p.sortClause()
			}
		}
		p.want(lexer.RParen)

		if p.atKws("within", "group") {
			p.wantKw("within", "group")
			p.parens(p.sortClause)
		}
		if p.atKw("filter") && p.peekIs(1, lexer.LParen) {
			p.node(cst.KindFilterClause, func() {
				p.wantKw("filter")
				p.parens(func() {
					p.wantKw("where")
					p.aExpr()
				})
			})
		}
		if p.atKw("over") {
			p.overClause()
		}
	})
}

// funcArg parses func_arg_expr: [name (=> | :=)] a_expr.
func (p *Parser) funcArg() {
	p.node(cst.KindFuncArg, func() {
		if isWord(p.cur().Kind) && (p.peekIs(1, lexer.EqualsGreater) || p.peekIs(1, lexer.ColonEquals)) {
			p.colLabel()
			p.advance()
		}
		p.acceptKw("variadic")
		p.aExpr()
	})
}

func (p *Parser) overClause() {
	p.node(cst.KindOverClause, func() {
		p.wantKw("over")
		if p.at(lexer.LParen) {
			p.windowSpecification()
			return
		}
		p.colID()
	})
}

func (p *Parser) windowSpecification() {
	p.node(cst.KindWindowSpecification, func() {
		p.want(lexer.LParen)
		if !p.atAnyKw("partition", "order", "range", "rows", "groups") && p.atColID() {
			p.colID()
		}
		if p.atKws("partition", "by") {
			p.node(cst.KindWindowPartition, func() {
				p.wantKw("partition", "by")
				p.exprList()
			})
		}
		if p.atKws("order", "by") {
			p.sortClause()
		}
		if p.atAnyKw("range", "rows", "groups") {
			p.frameClause()
		}
		p.want(lexer.RParen)
	})
}

func (p *Parser) frameClause() {
	p.node(cst.KindFrameClause, func() {
		p.wantAnyKw("range", "rows", "groups")
		if p.acceptKw("between") {
			p.frameBound()
			p.wantKw("and")
			p.frameBound()
		} else {
			p.frameBound()
		}
		if p.acceptKw("exclude") {
			switch {
			case p.acceptKw("current"):
				p.wantKw("row")
			case p.acceptKw("no"):
				p.wantKw("others")
			default:
				p.wantAnyKw("group", "ties")
			}
		}
	})
}

func (p *Parser) frameBound() {
	p.node(cst.KindFrameBound, func() {
		switch {
		case p.acceptKw("unbounded"):
			p.wantAnyKw("preceding", "following")
		case p.atKws("current", "row"):
			p.wantKw("current", "row")
		default:
			p.aExpr()
			p.wantAnyKw("preceding", "following")
		}
	})
}

// sortClause parses ORDER BY sortBy (',' sortBy)*.
func (p *Parser) sortClause() {
	p.node(cst.KindSortClause, func() {
		p.wantKw("order", "by")
		p.commaList(p.sortBy)
	})
}

func (p *Parser) sortBy() {
	p.node(cst.KindSortBy, func() {
		p.aExpr()
		switch {
		case p.acceptAnyKw("asc", "desc"):
		case p.acceptKw("using"):
			tok := p.cur()
			if tok.Kind == lexer.EOF || isWord(tok.Kind) || tok.Kind == lexer.Comma || tok.Kind == lexer.RParen {
				p.expect("operator")
				p.fail()
			}
			p.advance()
		}
		if p.acceptKw("nulls") {
			p.wantAnyKw("first", "last")
		}
	})
}

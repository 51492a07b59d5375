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
	"slices"

	"github.com/AleutianAI/sqlfront/services/parser/cst"
	"github.com/AleutianAI/sqlfront/services/parser/lexer"
)

// Set operation binding: INTERSECT binds tighter than UNION and EXCEPT.
const (
	precUnion = iota + 1
	precIntersect
)

// selectStatement parses SelectStmt: [WITH] set expression with optional
// ORDER BY, LIMIT/OFFSET/FETCH and locking clauses.
func (p *Parser) selectStatement() {
	p.node(cst.KindSelectStatement, func() {
		if p.atKw("with") {
			p.withClause()
		}
		p.selectSetExpr(precUnion)
		if p.atKws("order", "by") {
			p.sortClause()
		}
		if p.atAnyKw("limit", "offset", "fetch") {
			p.limitClause()
		}
		for p.atLockingClause() {
			p.lockingClause()
		}
		// LIMIT may also follow the locking clause.
		if p.atAnyKw("limit", "offset", "fetch") {
			p.limitClause()
		}
	})
}

func (p *Parser) selectSetExpr(minPrec int) {
	p.selectPrimary()
	for {
		prec := 0
		switch {
		case p.atAnyKw("union", "except"):
			prec = precUnion
		case p.atKw("intersect"):
			prec = precIntersect
		}
		if prec == 0 || prec < minPrec {
			return
		}
		p.wrap(cst.KindSetOperation, func() {
			p.advance()
			p.acceptAnyKw("all", "distinct")
			p.selectSetExpr(prec + 1)
		})
	}
}

func (p *Parser) selectPrimary() {
	switch {
	case p.at(lexer.LParen):
		p.selectWithParens()
	case p.atKw("select"), p.atKw("table"):
		p.simpleSelect()
	case p.atKw("values"):
		p.valuesClause()
	default:
		p.fail()
	}
}

// selectWithParens parses '(' SelectStmt ')'.
func (p *Parser) selectWithParens() {
	p.node(cst.KindSelectWithParens, func() {
		p.parens(p.selectStatement)
	})
}

func (p *Parser) simpleSelect() {
	p.node(cst.KindSimpleSelect, func() {
		if p.acceptKw("table") {
			p.relationExpr()
			return
		}
		p.wantKw("select")
		if p.atKw("distinct") {
			p.distinctClause()
		} else {
			p.acceptKw("all")
		}
		if !p.atSelectEnd() {
			p.targetList()
		}
		if p.atKw("from") {
			p.fromClause()
		}
		if p.atKw("where") {
			p.whereClause()
		}
		if p.atKws("group", "by") {
			p.groupClause()
		}
		if p.atKw("having") {
			p.node(cst.KindHavingClause, func() {
				p.wantKw("having")
				p.aExpr()
			})
		}
		if p.atKw("window") {
			p.windowClause()
		}
	})
}

// atSelectEnd reports whether the target list is empty, as in SELECT FROM t.
func (p *Parser) atSelectEnd() bool {
	switch p.cur().Kind {
	case lexer.EOF, lexer.Semicolon, lexer.RParen:
		return true
	}
	return p.atAnyKw("from", "where", "group", "having", "window", "union",
		"intersect", "except", "order", "limit", "offset", "fetch", "for", "into")
}

func (p *Parser) distinctClause() {
	p.node(cst.KindDistinctClause, func() {
		p.wantKw("distinct")
		if p.acceptKw("on") {
			p.parenList(p.aExpr)
		}
	})
}

func (p *Parser) targetList() {
	p.node(cst.KindTargetList, func() {
		p.commaList(p.targetElement)
	})
}

// targetElement parses '*' or an expression with an optional label. A label
// without AS must be a bare label.
func (p *Parser) targetElement() {
	p.node(cst.KindTargetElement, func() {
		if p.accept(lexer.Star) {
			return
		}
		p.aExpr()
		switch {
		case p.acceptKw("as"):
			p.colLabel()
		case p.isBareColLabel(p.cur()):
			p.bareColLabel()
		}
	})
}

func (p *Parser) fromClause() {
	p.node(cst.KindFromClause, func() {
		p.wantKw("from")
		p.commaList(p.tableRef)
	})
}

// tableRef parses a table primary followed by any number of joins, built
// left-associatively.
func (p *Parser) tableRef() {
	p.tablePrimary()
	for {
		switch {
		case p.atKws("cross", "join"):
			p.wrap(cst.KindJoinedTable, func() {
				p.wantKw("cross", "join")
				p.tablePrimary()
			})
		case p.atKw("natural"):
			p.wrap(cst.KindJoinedTable, func() {
				p.wantKw("natural")
				p.joinType()
				p.wantKw("join")
				p.tablePrimary()
			})
		case p.atKw("join"), p.atAnyKw("inner", "left", "right", "full"):
			p.wrap(cst.KindJoinedTable, func() {
				p.joinType()
				p.wantKw("join")
				p.tablePrimary()
				p.joinQualifier()
			})
		default:
			return
		}
	}
}

func (p *Parser) joinType() {
	switch {
	case p.acceptKw("inner"):
	case p.acceptAnyKw("left", "right", "full"):
		p.acceptKw("outer")
	}
}

func (p *Parser) joinQualifier() {
	if p.acceptKw("on") {
		p.aExpr()
		return
	}
	if p.acceptKw("using") {
		p.columnList()
		if p.atKw("as") {
			p.alias()
		}
		return
	}
	p.fail()
}

func (p *Parser) tablePrimary() {
	p.node(cst.KindTableRef, func() {
		lateral := p.acceptKw("lateral")
		switch {
		case p.at(lexer.LParen) && p.selectAhead(1):
			p.selectWithParens()
		case p.at(lexer.LParen) && !lateral:
			p.parens(p.tableRef)
		case p.atFuncCall():
			p.funcCall()
			if p.atKws("with", "ordinality") {
				p.wantKw("with", "ordinality")
			}
		case lateral:
			p.fail()
		default:
			// relation_expr [alias] [TABLESAMPLE ...]
			p.relationExpr()
			p.optAlias()
			if p.atKw("tablesample") {
				p.wantKw("tablesample")
				p.funcName()
				p.parenList(p.aExpr)
				if p.acceptKw("repeatable") {
					p.parens(p.aExpr)
				}
			}
			return
		}
		p.optAlias()
	})
}

// relationExpr parses [ONLY] name ['*'] or ONLY '(' name ')'.
func (p *Parser) relationExpr() {
	p.node(cst.KindRelationExpr, func() {
		if p.acceptKw("only") {
			if p.accept(lexer.LParen) {
				p.qualifiedName()
				p.want(lexer.RParen)
				return
			}
			p.qualifiedName()
			return
		}
		p.qualifiedName()
		p.accept(lexer.Star)
	})
}

// optAlias parses [AS] ColId [column list]. A bare alias may not be one of
// the words in stop.
func (p *Parser) optAlias(stop ...string) {
	if !p.atKw("as") {
		tok := p.cur()
		if !p.atColID() || (tok.Kind == lexer.Ident && slices.Contains(stop, tok.Value)) {
			return
		}
	}
	p.alias()
}

func (p *Parser) alias() {
	p.node(cst.KindAlias, func() {
		p.acceptKw("as")
		p.colID()
		if p.at(lexer.LParen) {
			p.columnList()
		}
	})
}

func (p *Parser) whereClause() {
	p.node(cst.KindWhereClause, func() {
		p.wantKw("where")
		if p.atKws("current", "of") {
			p.wantKw("current", "of")
			p.colID()
			return
		}
		p.aExpr()
	})
}

func (p *Parser) groupClause() {
	p.node(cst.KindGroupClause, func() {
		p.wantKw("group", "by")
		p.acceptAnyKw("all", "distinct")
		p.commaList(p.groupingElement)
	})
}

// groupingElement parses an expression, (), ROLLUP, CUBE or GROUPING SETS.
func (p *Parser) groupingElement() {
	switch {
	case p.at(lexer.LParen) && p.peekIs(1, lexer.RParen):
		p.node(cst.KindGroupingSet, func() {
			p.advance()
			p.advance()
		})
	case (p.atKw("rollup") || p.atKw("cube")) && p.peekIs(1, lexer.LParen):
		p.node(cst.KindGroupingSet, func() {
			p.advance()
			p.parenList(p.aExpr)
		})
	case p.atKws("grouping", "sets"):
		p.node(cst.KindGroupingSet, func() {
			p.wantKw("grouping", "sets")
			p.parenList(p.groupingElement)
		})
	default:
		p.aExpr()
	}
}

func (p *Parser) windowClause() {
	p.node(cst.KindWindowClause, func() {
		p.wantKw("window")
		p.commaList(func() {
			p.node(cst.KindWindowDefinition, func() {
				p.colID()
				p.wantKw("as")
				p.windowSpecification()
			})
		})
	})
}

// limitClause parses LIMIT, OFFSET and FETCH FIRST in any order.
func (p *Parser) limitClause() {
	p.node(cst.KindLimitClause, func() {
		for {
			switch {
			case p.acceptKw("limit"):
				if !p.acceptKw("all") {
					p.aExpr()
				}
			case p.acceptKw("offset"):
				p.aExpr()
				p.acceptAnyKw("row", "rows")
			case p.acceptKw("fetch"):
				p.wantAnyKw("first", "next")
				if !p.atAnyKw("row", "rows") {
					p.bExpr()
				}
				p.wantAnyKw("row", "rows")
				if !p.acceptKw("only") {
					p.wantKw("with", "ties")
				}
			default:
				return
			}
		}
	})
}

func (p *Parser) atLockingClause() bool {
	if !p.atKw("for") {
		return false
	}
	next := p.peek(1)
	return next.IsKeyword("update") || next.IsKeyword("share") || next.IsKeyword("no") || next.IsKeyword("key")
}

func (p *Parser) lockingClause() {
	p.node(cst.KindLockingClause, func() {
		p.wantKw("for")
		switch {
		case p.acceptKw("update"):
		case p.acceptKw("share"):
		case p.acceptKw("no"):
			p.wantKw("key", "update")
		default:
			p.wantKw("key", "share")
		}
		if p.acceptKw("of") {
			p.qualifiedNameList()
		}
		if !p.acceptKw("nowait") && p.acceptKw("skip") {
			p.wantKw("locked")
		}
	})
}

func (p *Parser) valuesClause() {
	p.node(cst.KindValuesClause, func() {
		p.wantKw("values")
		p.commaList(func() {
			p.node(cst.KindValuesRow, func() {
				p.parenList(p.exprOrDefault)
			})
		})
	})
}

// =============================================================================
// WITH
// =============================================================================

func (p *Parser) withClause() {
	p.node(cst.KindWithClause, func() {
		p.wantKw("with")
		p.acceptKw("recursive")
		p.commaList(p.commonTableExpr)
	})
}

func (p *Parser) commonTableExpr() {
	p.node(cst.KindCommonTableExpr, func() {
		p.colID()
		if p.at(lexer.LParen) {
			p.columnList()
		}
		p.wantKw("as")
		if p.acceptKw("not") {
			p.wantKw("materialized")
		} else {
			p.acceptKw("materialized")
		}
		p.parens(p.preparableStatement)
	})
}

// preparableStatement parses the statements allowed as a CTE body.
func (p *Parser) preparableStatement() {
	switch {
	case p.atKw("insert"):
		p.insertStatement()
	case p.atKw("update"):
		p.updateStatement()
	case p.atKw("delete"):
		p.deleteStatement()
	default:
		p.selectStatement()
	}
}

// withStatementVerb scans past a leading WITH clause and returns the main
// statement keyword: insert, update, delete or select.
func (p *Parser) withStatementVerb() string {
	depth := 0
	for i := 1; ; i++ {
		tok := p.peek(i)
		switch tok.Kind {
		case lexer.EOF:
			return "select"
		case lexer.LParen:
			depth++
		case lexer.RParen:
			depth--
			if depth != 0 {
				continue
			}
			next := p.peek(i + 1)
			switch {
			case next.IsKeyword("insert"), next.IsKeyword("update"), next.IsKeyword("delete"):
				return next.Value
			case next.IsKeyword("select"), next.IsKeyword("values"), next.IsKeyword("table"), next.Kind == lexer.LParen:
				return "select"
			}
		}
	}
}

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

// withDML dispatches a statement that starts with WITH.
func (p *Parser) withDML() {
	switch p.withStatementVerb() {
	case "insert":
		p.insertStatement()
	case "update":
		p.updateStatement()
	case "delete":
		p.deleteStatement()
	default:
		p.selectStatement()
	}
}

func (p *Parser) insertStatement() {
	p.node(cst.KindInsertStatement, func() {
		if p.atKw("with") {
			p.withClause()
		}
		p.wantKw("insert", "into")
		p.node(cst.KindInsertTarget, func() {
			p.qualifiedName()
			if p.atKw("as") {
				p.node(cst.KindAlias, func() {
					p.wantKw("as")
					p.colID()
				})
			}
		})
		if p.at(lexer.LParen) && !p.selectAhead(1) {
			p.columnList()
		}
		if p.acceptKw("overriding") {
			p.wantAnyKw("system", "user")
			p.wantKw("value")
		}
		if !p.acceptKws("default", "values") {
			p.selectStatement()
		}
		if p.atKws("on", "conflict") {
			p.onConflictClause()
		}
		if p.atKw("returning") {
			p.returningClause()
		}
	})
}

func (p *Parser) onConflictClause() {
	p.node(cst.KindOnConflictClause, func() {
		p.wantKw("on", "conflict")
		if p.at(lexer.LParen) || p.atKw("on") {
			p.node(cst.KindConflictTarget, func() {
				if p.acceptKw("on") {
					p.wantKw("constraint")
					p.colID()
					return
				}
				p.parenList(p.indexElement)
				if p.atKw("where") {
					p.whereClause()
				}
			})
		}
		p.wantKw("do")
		if p.acceptKw("nothing") {
			return
		}
		p.wantKw("update", "set")
		p.commaList(p.setClause)
		if p.atKw("where") {
			p.whereClause()
		}
	})
}

// setClause parses set_target '=' expr or '(' targets ')' '=' row.
func (p *Parser) setClause() {
	p.node(cst.KindSetClause, func() {
		if p.at(lexer.LParen) {
			p.columnList()
		} else {
			p.colID()
			for p.accept(lexer.Dot) {
				p.colLabel()
			}
		}
		p.want(lexer.Equals)
		p.exprOrDefault()
	})
}

func (p *Parser) returningClause() {
	p.node(cst.KindReturningClause, func() {
		p.wantKw("returning")
		p.targetList()
	})
}

func (p *Parser) updateStatement() {
	p.node(cst.KindUpdateStatement, func() {
		if p.atKw("with") {
			p.withClause()
		}
		p.wantKw("update")
		p.node(cst.KindTableRef, func() {
			p.relationExpr()
			p.optAlias("set")
		})
		p.wantKw("set")
		p.commaList(p.setClause)
		if p.atKw("from") {
			p.fromClause()
		}
		if p.atKw("where") {
			p.whereClause()
		}
		if p.atKw("returning") {
			p.returningClause()
		}
	})
}

func (p *Parser) deleteStatement() {
	p.node(cst.KindDeleteStatement, func() {
		if p.atKw("with") {
			p.withClause()
		}
		p.wantKw("delete", "from")
		p.node(cst.KindTableRef, func() {
			p.relationExpr()
			p.optAlias()
		})
		if p.atKw("using") {
			p.node(cst.KindUsingClause, func() {
				p.wantKw("using")
				p.commaList(p.tableRef)
			})
		}
		if p.atKw("where") {
			p.whereClause()
		}
		if p.atKw("returning") {
			p.returningClause()
		}
	})
}

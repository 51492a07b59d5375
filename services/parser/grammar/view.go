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

func (p *Parser) createView() {
	p.node(cst.KindCreateView, func() {
		p.wantKw("create")
		p.acceptKws("or", "replace")
		p.acceptAnyKw("temporary", "temp")
		p.acceptKw("recursive")
		p.wantKw("view")
		p.qualifiedName()
		if p.at(lexer.LParen) {
			p.columnList()
		}
		if p.atKw("with") && p.peekIs(1, lexer.LParen) {
			p.wantKw("with")
			p.relOptions()
		}
		p.wantKw("as")
		p.selectStatement()
		if p.acceptKw("with") {
			p.acceptAnyKw("cascaded", "local")
			p.wantKw("check", "option")
		}
	})
}

func (p *Parser) alterView() {
	p.node(cst.KindAlterView, func() {
		p.wantKw("alter", "view")
		p.acceptKws("if", "exists")
		p.qualifiedName()
		p.alterObjectCommand(
			alternative{kw("alter"), func(p *Parser) {
				p.wantKw("alter")
				p.acceptKw("column")
				p.colID()
				if p.acceptKws("drop", "default") {
					return
				}
				p.wantKw("set", "default")
				p.aExpr()
			}},
			alternative{func(p *Parser) bool { return p.atKw("rename") && !p.peekKw(1, "to") }, (*Parser).renameColumn},
		)
	})
}

// renameColumn parses RENAME [COLUMN] old TO new.
func (p *Parser) renameColumn() {
	p.wantKw("rename")
	p.acceptKw("column")
	p.colID()
	p.wantKw("to")
	p.colID()
}

func (p *Parser) createMaterializedView() {
	p.node(cst.KindCreateMaterializedView, func() {
		p.wantKw("create")
		p.acceptKw("unlogged")
		p.wantKw("materialized", "view")
		p.acceptKws("if", "not", "exists")
		p.qualifiedName()
		if p.at(lexer.LParen) {
			p.columnList()
		}
		if p.acceptKw("using") {
			p.colID()
		}
		if p.atKw("with") && p.peekIs(1, lexer.LParen) {
			p.wantKw("with")
			p.relOptions()
		}
		if p.acceptKw("tablespace") {
			p.colID()
		}
		p.wantKw("as")
		p.selectStatement()
		p.withDataClause()
	})
}

func (p *Parser) refreshMaterializedView() {
	p.node(cst.KindRefreshMaterializedView, func() {
		p.wantKw("refresh", "materialized", "view")
		p.acceptKw("concurrently")
		p.qualifiedName()
		p.withDataClause()
	})
}

func (p *Parser) alterMaterializedView() {
	p.node(cst.KindAlterMaterializedView, func() {
		p.wantKw("alter", "materialized", "view")
		p.acceptKws("if", "exists")
		p.qualifiedName()
		p.alterObjectCommand(
			alternative{func(p *Parser) bool { return p.atKw("rename") && !p.peekKw(1, "to") }, (*Parser).renameColumn},
			alternative{kw("cluster", "on"), func(p *Parser) {
				p.wantKw("cluster", "on")
				p.colID()
			}},
			alternative{kw("set", "access", "method"), func(p *Parser) {
				p.wantKw("set", "access", "method")
				p.colID()
			}},
			alternative{kw("depends"), (*Parser).dependsOnExtension},
			alternative{kw("no", "depends"), (*Parser).dependsOnExtension},
		)
	})
}

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

// createIndex parses IndexStmt. The index name is optional.
func (p *Parser) createIndex() {
	p.node(cst.KindCreateIndex, func() {
		p.wantKw("create")
		p.acceptKw("unique")
		p.wantKw("index")
		p.acceptKw("concurrently")
		if !p.atKw("on") {
			p.acceptKws("if", "not", "exists")
			p.colID()
		}
		p.wantKw("on")
		p.relationExpr()
		if p.acceptKw("using") {
			p.colID()
		}
		p.parenList(p.indexElement)
		if p.atKw("include") {
			p.includeClause()
		}
		p.nullsDistinct()
		if p.atKw("with") && p.peekIs(1, lexer.LParen) {
			p.wantKw("with")
			p.relOptions()
		}
		if p.acceptKw("tablespace") {
			p.colID()
		}
		if p.atKw("where") {
			p.whereClause()
		}
	})
}

// indexElement parses index_elem: a column, a function call or a
// parenthesized expression, with collation, operator class and ordering.
func (p *Parser) indexElement() {
	p.node(cst.KindIndexElement, func() {
		switch {
		case p.at(lexer.LParen):
			p.parens(p.aExpr)
		case p.atFuncCall():
			p.funcCall()
		default:
			p.colID()
		}
		if p.acceptKw("collate") {
			p.qualifiedName()
		}
		if !p.atKw("nulls") && p.atColID() {
			p.qualifiedName()
			if p.at(lexer.LParen) {
				p.relOptions()
			}
		}
		p.acceptAnyKw("asc", "desc")
		if p.acceptKw("nulls") {
			p.wantAnyKw("first", "last")
		}
	})
}

func (p *Parser) alterIndex() {
	p.node(cst.KindAlterIndex, func() {
		p.wantKw("alter", "index")
		p.acceptKws("if", "exists")
		p.qualifiedName()
		p.alterObjectCommand(
			alternative{kw("attach", "partition"), func(p *Parser) {
				p.wantKw("attach", "partition")
				p.qualifiedName()
			}},
			alternative{kw("alter"), func(p *Parser) {
				p.wantKw("alter")
				p.acceptKw("column")
				if !p.at(lexer.Integer) {
					p.colID()
				} else {
					p.advance()
				}
				p.wantKw("set", "statistics")
				p.signedNumber()
			}},
			alternative{kw("depends"), (*Parser).dependsOnExtension},
			alternative{kw("no", "depends"), (*Parser).dependsOnExtension},
		)
	})
}

// dependsOnExtension parses [NO] DEPENDS ON EXTENSION name.
func (p *Parser) dependsOnExtension() {
	p.acceptKw("no")
	p.wantKw("depends", "on", "extension")
	p.colID()
}

// =============================================================================
// Generic ALTER <object> actions
// =============================================================================

// alterObjectCommands are the actions shared by most ALTER statements.
var alterObjectCommands = []alternative{
	{kw("rename", "to"), func(p *Parser) {
		p.wantKw("rename", "to")
		p.colID()
	}},
	{kw("owner", "to"), (*Parser).ownerTo},
	{kw("set", "schema"), func(p *Parser) {
		p.wantKw("set", "schema")
		p.colID()
	}},
	{kw("set", "tablespace"), func(p *Parser) {
		p.wantKw("set", "tablespace")
		p.colID()
	}},
	{func(p *Parser) bool { return p.atKw("set") && p.peekIs(1, lexer.LParen) }, func(p *Parser) {
		p.wantKw("set")
		p.relOptions()
	}},
	{func(p *Parser) bool { return p.atKw("reset") && p.peekIs(1, lexer.LParen) }, func(p *Parser) {
		p.wantKw("reset")
		p.relOptions()
	}},
}

// alterObjectCommand parses one ALTER action into a KindAlterObjectCommand
// node. extra alternatives are tried before the shared ones.
func (p *Parser) alterObjectCommand(extra ...alternative) {
	p.node(cst.KindAlterObjectCommand, func() {
		for _, a := range extra {
			if a.when(p) {
				a.then(p)
				return
			}
		}
		p.choose(alterObjectCommands)
	})
}

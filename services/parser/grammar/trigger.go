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

// createTrigger parses CreateTrigStmt, including CONSTRAINT triggers.
func (p *Parser) createTrigger() {
	p.node(cst.KindCreateTrigger, func() {
		p.wantKw("create")
		p.acceptKws("or", "replace")
		p.acceptKw("constraint")
		p.wantKw("trigger")
		p.triggerName()
		if !p.acceptAnyKw("before", "after") {
			p.wantKw("instead", "of")
		}
		p.triggerEvent()
		for p.acceptKw("or") {
			p.triggerEvent()
		}
		p.wantKw("on")
		p.qualifiedName()
		if p.acceptKw("from") {
			p.qualifiedName()
		}
		p.constraintAttributes()
		if p.atKw("referencing") {
			p.wantKw("referencing")
			for p.atAnyKw("old", "new") {
				p.node(cst.KindTriggerReferencing, func() {
					p.wantAnyKw("old", "new")
					p.wantAnyKw("table", "row")
					p.acceptKw("as")
					p.colID()
				})
			}
		}
		if p.acceptKw("for") {
			p.acceptKw("each")
			p.wantAnyKw("row", "statement")
		}
		if p.acceptKw("when") {
			p.parens(p.aExpr)
		}
		p.wantKw("execute")
		p.wantAnyKw("function", "procedure")
		p.funcName()
		p.want(lexer.LParen)
		if !p.at(lexer.RParen) {
			p.commaList(p.triggerArgument)
		}
		p.want(lexer.RParen)
	})
}

func (p *Parser) triggerEvent() {
	p.node(cst.KindTriggerEvent, func() {
		if p.acceptKw("update") {
			if p.acceptKw("of") {
				p.commaList(p.colID)
			}
			return
		}
		p.wantAnyKw("insert", "delete", "truncate")
	})
}

// triggerArgument parses TriggerFuncArg: a number, a string or a label.
func (p *Parser) triggerArgument() {
	switch tok := p.cur(); {
	case tok.Kind == lexer.Integer || tok.Kind == lexer.Decimal || tok.Kind.IsStringConstant():
		p.constant()
	default:
		p.colLabel()
	}
}

func (p *Parser) alterTrigger() {
	p.node(cst.KindAlterTrigger, func() {
		p.wantKw("alter", "trigger")
		p.triggerName()
		p.wantKw("on")
		p.qualifiedName()
		p.alterObjectCommand(
			alternative{kw("depends"), (*Parser).dependsOnExtension},
			alternative{kw("no", "depends"), (*Parser).dependsOnExtension},
		)
	})
}

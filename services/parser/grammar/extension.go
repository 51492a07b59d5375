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

// =============================================================================
// EXTENSION
// =============================================================================

func (p *Parser) createExtension() {
	p.node(cst.KindCreateExtension, func() {
		p.wantKw("create", "extension")
		p.acceptKws("if", "not", "exists")
		p.colID()
		p.acceptKw("with")
		for {
			switch {
			case p.acceptKw("schema"):
				p.colID()
			case p.acceptKw("version"):
				p.nonReservedWordOrString()
			case p.acceptKw("cascade"):
			default:
				return
			}
		}
	})
}

func (p *Parser) alterExtension() {
	p.node(cst.KindAlterExtension, func() {
		p.wantKw("alter", "extension")
		p.colID()
		switch {
		case p.acceptKw("update"):
			if p.acceptKw("to") {
				p.nonReservedWordOrString()
			}
		case p.acceptAnyKw("add", "drop"):
			p.objectReference()
		default:
			p.alterObjectCommand()
		}
	})
}

// =============================================================================
// PUBLICATION
// =============================================================================

func (p *Parser) createPublication() {
	p.node(cst.KindCreatePublication, func() {
		p.wantKw("create", "publication")
		p.colID()
		if p.acceptKw("for") {
			if !p.acceptKws("all", "tables") {
				p.publicationObjects()
			}
		}
		if p.acceptKw("with") {
			p.relOptions()
		}
	})
}

// publicationObjects parses a comma list of publication objects. A bare
// CURRENT_SCHEMA continues only a TABLES IN SCHEMA list.
func (p *Parser) publicationObjects() {
	inSchema := false
	p.commaList(func() {
		inSchema = p.publicationObject(inSchema)
	})
}

// publicationObject parses TABLE name [(cols)] [WHERE (expr)], TABLES IN
// SCHEMA name, or a bare name continuing the previous object kind. It
// reports whether the object continues a schema list.
func (p *Parser) publicationObject(inSchema bool) bool {
	p.node(cst.KindPublicationObject, func() {
		switch {
		case p.acceptKws("tables", "in", "schema"):
			inSchema = true
			if !p.acceptKw("current_schema") {
				p.colID()
			}
			return
		case p.acceptKw("table"):
			inSchema = false
		case inSchema && p.atKw("current_schema"):
			p.wantKw("current_schema")
			return
		}
		p.relationExpr()
		if p.at(lexer.LParen) {
			p.columnList()
		}
		if p.acceptKw("where") {
			p.parens(p.aExpr)
		}
	})
	return inSchema
}

func (p *Parser) alterPublication() {
	p.node(cst.KindAlterPublication, func() {
		p.wantKw("alter", "publication")
		p.colID()
		switch {
		case p.atKw("set") && p.peekIs(1, lexer.LParen):
			p.wantKw("set")
			p.relOptions()
		case p.acceptAnyKw("add", "set", "drop"):
			p.publicationObjects()
		default:
			p.alterObjectCommand()
		}
	})
}

// =============================================================================
// SUBSCRIPTION
// =============================================================================

func (p *Parser) createSubscription() {
	p.node(cst.KindCreateSubscription, func() {
		p.wantKw("create", "subscription")
		p.colID()
		p.wantKw("connection")
		p.stringConst()
		p.wantKw("publication")
		p.commaList(p.colLabel)
		if p.acceptKw("with") {
			p.relOptions()
		}
	})
}

func (p *Parser) alterSubscription() {
	p.node(cst.KindAlterSubscription, func() {
		p.wantKw("alter", "subscription")
		p.colID()
		switch {
		case p.acceptKw("connection"):
			p.stringConst()
		case p.acceptKws("set", "publication"), p.acceptKws("add", "publication"), p.acceptKws("drop", "publication"):
			p.commaList(p.colLabel)
			if p.acceptKw("with") {
				p.relOptions()
			}
		case p.acceptKws("refresh", "publication"):
			if p.acceptKw("with") {
				p.relOptions()
			}
		case p.acceptAnyKw("enable", "disable"):
		case p.acceptKw("skip"):
			p.relOptions()
		default:
			p.alterObjectCommand()
		}
	})
}

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

// createType parses CREATE TYPE in its composite, enum, range, base and
// shell forms.
func (p *Parser) createType() {
	p.node(cst.KindCreateType, func() {
		p.wantKw("create", "type")
		p.qualifiedName()
		switch {
		case p.acceptKws("as", "enum"):
			p.want(lexer.LParen)
			if !p.at(lexer.RParen) {
				p.commaList(func() {
					if !p.atStringConst() {
						p.fail()
					}
					p.constant()
				})
			}
			p.want(lexer.RParen)
		case p.acceptKws("as", "range"):
			p.parenList(p.definitionElement)
		case p.acceptKw("as"):
			p.want(lexer.LParen)
			if !p.at(lexer.RParen) {
				p.commaList(p.typeAttribute)
			}
			p.want(lexer.RParen)
		case p.at(lexer.LParen):
			p.parenList(p.definitionElement)
		}
	})
}

func (p *Parser) typeAttribute() {
	p.node(cst.KindTypeAttribute, func() {
		p.colID()
		p.typeName()
		if p.acceptKw("collate") {
			p.qualifiedName()
		}
	})
}

// definitionElement parses def_elem: label [= value].
func (p *Parser) definitionElement() {
	p.node(cst.KindDefinitionElement, func() {
		p.colLabel()
		if !p.accept(lexer.Equals) {
			return
		}
		switch tok := p.cur(); {
		case tok.Kind.IsStringConstant():
			p.constant()
		case p.atNumber():
			p.signedNumber()
		case !p.try(p.typeName):
			p.colLabel()
		}
	})
}

func (p *Parser) alterType() {
	p.node(cst.KindAlterType, func() {
		p.wantKw("alter", "type")
		p.qualifiedName()
		switch {
		case p.atKws("add", "value"):
			p.node(cst.KindAlterTypeCmd, func() {
				p.wantKw("add", "value")
				p.acceptKws("if", "not", "exists")
				p.stringConst()
				if p.acceptAnyKw("before", "after") {
					p.stringConst()
				}
			})
		case p.atKws("rename", "value"):
			p.node(cst.KindAlterTypeCmd, func() {
				p.wantKw("rename", "value")
				p.stringConst()
				p.wantKw("to")
				p.stringConst()
			})
		case p.atKws("rename", "attribute"):
			p.node(cst.KindAlterTypeCmd, func() {
				p.wantKw("rename", "attribute")
				p.colID()
				p.wantKw("to")
				p.colID()
				p.dropBehavior()
			})
		case p.atAnyKw("add", "drop", "alter"):
			p.commaList(p.alterTypeAttribute)
		default:
			p.alterObjectCommand()
		}
	})
}

// alterTypeAttribute parses ADD/DROP/ALTER ATTRIBUTE.
func (p *Parser) alterTypeAttribute() {
	p.node(cst.KindAlterTypeCmd, func() {
		switch {
		case p.acceptKws("add", "attribute"):
			p.typeAttribute()
		case p.acceptKws("drop", "attribute"):
			p.acceptKws("if", "exists")
			p.colID()
		default:
			p.wantKw("alter", "attribute")
			p.colID()
			p.acceptKws("set", "data")
			p.wantKw("type")
			p.typeName()
			if p.acceptKw("collate") {
				p.qualifiedName()
			}
		}
		p.dropBehavior()
	})
}

func (p *Parser) stringConst() {
	if !p.atStringConst() {
		p.fail()
	}
	p.constant()
}

// =============================================================================
// DOMAIN
// =============================================================================

// createDomain parses CREATE DOMAIN; domain constraints share the column
// constraint production.
func (p *Parser) createDomain() {
	p.node(cst.KindCreateDomain, func() {
		p.wantKw("create", "domain")
		p.qualifiedName()
		p.acceptKw("as")
		p.typeName()
		if p.acceptKw("collate") {
			p.qualifiedName()
		}
		for p.atColumnConstraint() {
			p.columnConstraint()
		}
	})
}

func (p *Parser) alterDomain() {
	p.node(cst.KindAlterDomain, func() {
		p.wantKw("alter", "domain")
		p.qualifiedName()
		switch {
		case p.acceptKws("set", "default"):
			p.aExpr()
		case p.acceptKws("drop", "default"):
		case p.acceptKws("set", "not", "null"):
		case p.acceptKws("drop", "not", "null"):
		case p.acceptKw("add"):
			p.tableConstraint()
		case p.acceptKws("drop", "constraint"):
			p.acceptKws("if", "exists")
			p.colID()
			p.dropBehavior()
		case p.acceptKws("rename", "constraint"):
			p.colID()
			p.wantKw("to")
			p.colID()
		case p.acceptKws("validate", "constraint"):
			p.colID()
		default:
			p.alterObjectCommand()
		}
	})
}

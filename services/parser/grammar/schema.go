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
// SCHEMA
// =============================================================================

// createSchema parses CREATE SCHEMA with its optional embedded CREATE
// TABLE, VIEW, INDEX, SEQUENCE and TRIGGER elements.
func (p *Parser) createSchema() {
	p.node(cst.KindCreateSchema, func() {
		p.wantKw("create", "schema")
		p.acceptKws("if", "not", "exists")
		if p.acceptKw("authorization") {
			p.roleSpec()
		} else {
			p.colID()
			if p.acceptKw("authorization") {
				p.roleSpec()
			}
		}
		for p.atKw("create") {
			switch p.createObjectWord() {
			case "table":
				p.createTable()
			case "view":
				p.createView()
			case "index":
				p.createIndex()
			case "sequence":
				p.createSequence()
			case "trigger":
				p.createTrigger()
			default:
				p.failCreate("table", "view", "index", "sequence", "trigger")
			}
		}
	})
}

func (p *Parser) alterSchema() {
	p.node(cst.KindAlterSchema, func() {
		p.wantKw("alter", "schema")
		p.colID()
		p.alterObjectCommand()
	})
}

// =============================================================================
// DATABASE
// =============================================================================

func (p *Parser) createDatabase() {
	p.node(cst.KindCreateDatabase, func() {
		p.wantKw("create", "database")
		p.colID()
		p.acceptKw("with")
		for p.atDatabaseOption() {
			p.databaseOption()
		}
	})
}

func (p *Parser) atDatabaseOption() bool {
	tok := p.cur()
	return isWord(tok.Kind) && !tok.IsKeyword("with")
}

// databaseOption parses createdb_opt_item: name [=] value, where name may
// be the two words CONNECTION LIMIT.
func (p *Parser) databaseOption() {
	p.node(cst.KindDatabaseOption, func() {
		if !p.acceptKws("connection", "limit") {
			p.colLabel()
		}
		p.accept(lexer.Equals)
		switch {
		case p.acceptKw("default"):
		case p.atNumber():
			p.signedNumber()
		case p.cur().Kind.IsStringConstant():
			p.constant()
		default:
			p.colLabel()
		}
	})
}

func (p *Parser) alterDatabase() {
	p.node(cst.KindAlterDatabase, func() {
		p.wantKw("alter", "database")
		p.colID()
		switch {
		case p.atKws("set", "tablespace"), p.atKws("rename", "to"), p.atKws("owner", "to"):
			p.alterObjectCommand()
		case p.atKw("set"):
			p.setConfiguration()
		case p.acceptKw("reset"):
			if !p.acceptKw("all") {
				p.configName()
			}
		case p.acceptKws("refresh", "collation", "version"):
		default:
			p.acceptKw("with")
			p.databaseOption()
			for p.atDatabaseOption() {
				p.databaseOption()
			}
		}
	})
}

// setConfiguration parses SET name (TO | =) (DEFAULT | value, ...) and
// SET name FROM CURRENT.
func (p *Parser) setConfiguration() {
	p.node(cst.KindSetConfiguration, func() {
		p.wantKw("set")
		p.configName()
		if p.acceptKws("from", "current") {
			return
		}
		if !p.acceptKw("to") {
			p.want(lexer.Equals)
		}
		if p.acceptKw("default") {
			return
		}
		p.commaList(p.configValue)
	})
}

func (p *Parser) configName() {
	p.colID()
	for p.accept(lexer.Dot) {
		p.colLabel()
	}
}

func (p *Parser) configValue() {
	switch tok := p.cur(); {
	case tok.Kind.IsStringConstant():
		p.constant()
	case p.atNumber():
		p.signedNumber()
	default:
		p.nonReservedWord()
	}
}

func (p *Parser) dropDatabase() {
	p.node(cst.KindDropDatabase, func() {
		p.wantKw("drop", "database")
		p.acceptKws("if", "exists")
		p.colID()
		if p.acceptKw("with") || p.at(lexer.LParen) {
			p.parens(func() { p.wantKw("force") })
		}
	})
}

// =============================================================================
// TABLESPACE
// =============================================================================

func (p *Parser) createTablespace() {
	p.node(cst.KindCreateTablespace, func() {
		p.wantKw("create", "tablespace")
		p.colID()
		if p.acceptKw("owner") {
			p.roleSpec()
		}
		p.wantKw("location")
		p.stringConst()
		if p.acceptKw("with") {
			p.relOptions()
		}
	})
}

func (p *Parser) alterTablespace() {
	p.node(cst.KindAlterTablespace, func() {
		p.wantKw("alter", "tablespace")
		p.colID()
		p.alterObjectCommand()
	})
}

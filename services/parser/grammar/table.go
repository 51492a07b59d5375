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
// CREATE TABLE
// =============================================================================

// createTable parses CreateStmt, CREATE TABLE ... PARTITION OF and
// CREATE TABLE ... AS.
func (p *Parser) createTable() {
	p.node(cst.KindCreateTable, func() {
		p.wantKw("create")
		p.tempModifier()
		p.wantKw("table")
		p.acceptKws("if", "not", "exists")
		p.qualifiedName()

		if p.atCreateTableAs() {
			p.createTableAsTail()
			return
		}

		switch {
		case p.acceptKws("partition", "of"):
			p.qualifiedName()
			if p.at(lexer.LParen) {
				p.tableElements()
			}
			p.partitionBound()
		default:
			p.tableElements()
			if p.atKw("inherits") {
				p.node(cst.KindInheritsClause, func() {
					p.wantKw("inherits")
					p.parenList(p.qualifiedName)
				})
			}
		}
		if p.atKws("partition", "by") {
			p.partitionSpec()
		}
		p.tableStorageClauses()
	})
}

// tempModifier parses [GLOBAL | LOCAL] TEMP[ORARY] or UNLOGGED.
func (p *Parser) tempModifier() {
	if p.acceptAnyKw("global", "local") {
		p.wantAnyKw("temporary", "temp")
		return
	}
	p.acceptAnyKw("temporary", "temp", "unlogged")
}

// atCreateTableAs reports whether an AS keyword follows at parenthesis
// depth zero before the statement ends. Inside CREATE SCHEMA the next
// schema element (CREATE or GRANT at depth zero) also ends the scan.
func (p *Parser) atCreateTableAs() bool {
	depth := 0
	for i := 0; ; i++ {
		tok := p.peek(i)
		switch tok.Kind {
		case lexer.EOF, lexer.Semicolon:
			return false
		case lexer.LParen:
			depth++
		case lexer.RParen:
			depth--
		case lexer.Ident:
			if depth != 0 {
				continue
			}
			switch tok.Value {
			case "as":
				return true
			case "create", "grant":
				return false
			}
		}
	}
}

func (p *Parser) createTableAsTail() {
	if p.at(lexer.LParen) {
		p.columnList()
	}
	p.tableStorageClauses()
	p.wantKw("as")
	p.selectStatement()
	p.withDataClause()
}

// withDataClause parses [WITH [NO] DATA].
func (p *Parser) withDataClause() {
	if p.atKws("with", "data") || p.atKws("with", "no") {
		p.wantKw("with")
		p.acceptKw("no")
		p.wantKw("data")
	}
}

// tableStorageClauses parses the optional trailing clauses of CREATE TABLE
// in their fixed order: USING, WITH/WITHOUT OIDS, ON COMMIT, TABLESPACE.
func (p *Parser) tableStorageClauses() {
	if p.acceptKw("using") {
		p.colID()
	}
	switch {
	case p.atKw("with") && p.peekIs(1, lexer.LParen):
		p.wantKw("with")
		p.relOptions()
	case p.atKws("without", "oids"):
		p.wantKw("without", "oids")
	}
	if p.atKws("on", "commit") {
		p.node(cst.KindOnCommitClause, func() {
			p.wantKw("on", "commit")
			switch {
			case p.acceptKw("drop"):
			case p.acceptKw("delete"):
				p.wantKw("rows")
			default:
				p.wantKw("preserve", "rows")
			}
		})
	}
	if p.acceptKw("tablespace") {
		p.colID()
	}
}

func (p *Parser) tableElements() {
	p.want(lexer.LParen)
	if !p.at(lexer.RParen) {
		p.commaList(p.tableElement)
	}
	p.want(lexer.RParen)
}

var tableElementAlternatives = []alternative{
	{kw("like"), (*Parser).tableLikeClause},
	{func(p *Parser) bool { return p.atTableConstraint() }, (*Parser).tableConstraint},
	{func(p *Parser) bool { return true }, (*Parser).columnDefinition},
}

func (p *Parser) tableElement() { p.choose(tableElementAlternatives) }

func (p *Parser) atTableConstraint() bool {
	if p.atAnyKw("constraint", "check", "unique", "primary", "foreign") {
		return true
	}
	return p.atKw("exclude") && (p.peekIs(1, lexer.LParen) || p.peekKw(1, "using"))
}

func (p *Parser) tableLikeClause() {
	p.node(cst.KindTableLikeClause, func() {
		p.wantKw("like")
		p.qualifiedName()
		for p.acceptAnyKw("including", "excluding") {
			p.colLabel()
		}
	})
}

// columnDefinition parses columnDef: name, type and column constraints.
func (p *Parser) columnDefinition() {
	p.node(cst.KindColumnDefinition, func() {
		p.colID()
		p.typeName()
		if p.acceptKw("compression") {
			p.colLabel()
		}
		if p.acceptKw("collate") {
			p.qualifiedName()
		}
		for p.atColumnConstraint() {
			p.columnConstraint()
		}
	})
}

func (p *Parser) atColumnConstraint() bool {
	if p.atAnyKw("constraint", "null", "check", "default", "generated", "unique",
		"primary", "references", "deferrable", "initially") {
		return true
	}
	return p.atKws("not", "null") || p.atKws("not", "deferrable")
}

// columnConstraint parses ColConstraint including its trailing constraint
// attributes.
func (p *Parser) columnConstraint() {
	p.node(cst.KindColumnConstraint, func() {
		if p.acceptKw("constraint") {
			p.colID()
		}
		switch {
		case p.acceptKws("not", "null"):
		case p.acceptKw("null"):
		case p.atKw("check"):
			p.checkConstraint()
		case p.acceptKw("default"):
			p.bExpr()
		case p.acceptKw("generated"):
			p.generatedColumn()
		case p.acceptKw("unique"):
			p.nullsDistinct()
			p.indexParameters()
		case p.acceptKws("primary", "key"):
			p.indexParameters()
		case p.atKw("references"):
			p.referencesClause()
		case p.atConstraintAttribute():
		default:
			p.fail()
		}
		p.constraintAttributes()
	})
}

func (p *Parser) checkConstraint() {
	p.wantKw("check")
	p.parens(p.aExpr)
	p.acceptKws("no", "inherit")
}

// generatedColumn parses the tail of GENERATED ... AS IDENTITY or
// GENERATED ALWAYS AS (expr) STORED.
func (p *Parser) generatedColumn() {
	if !p.acceptKw("always") {
		p.wantKw("by", "default")
	}
	p.wantKw("as")
	if p.acceptKw("identity") {
		if p.at(lexer.LParen) {
			p.seqOptionList()
		}
		return
	}
	p.parens(p.aExpr)
	p.wantKw("stored")
}

func (p *Parser) nullsDistinct() {
	if p.acceptKw("nulls") {
		p.acceptKw("not")
		p.wantKw("distinct")
	}
}

// indexParameters parses the optional INCLUDE, WITH and USING INDEX
// TABLESPACE tails of UNIQUE, PRIMARY KEY and EXCLUDE constraints.
func (p *Parser) indexParameters() {
	if p.atKw("include") {
		p.includeClause()
	}
	if p.atKw("with") && p.peekIs(1, lexer.LParen) {
		p.wantKw("with")
		p.relOptions()
	}
	if p.acceptKws("using", "index", "tablespace") {
		p.colID()
	}
}

func (p *Parser) includeClause() {
	p.node(cst.KindIncludeClause, func() {
		p.wantKw("include")
		p.columnList()
	})
}

func (p *Parser) atConstraintAttribute() bool {
	return p.atAnyKw("deferrable", "initially") || p.atKws("not", "deferrable")
}

// constraintAttributes parses [NOT] DEFERRABLE and INITIALLY
// DEFERRED|IMMEDIATE in any order.
func (p *Parser) constraintAttributes() {
	for {
		switch {
		case p.acceptKw("deferrable"):
		case p.acceptKws("not", "deferrable"):
		case p.acceptKw("initially"):
			p.wantAnyKw("deferred", "immediate")
		case p.acceptKws("not", "valid"):
		case p.acceptKws("no", "inherit"):
		default:
			return
		}
	}
}

// referencesClause parses REFERENCES name [(cols)] [MATCH ...] and the ON
// DELETE / ON UPDATE actions in either order.
func (p *Parser) referencesClause() {
	p.node(cst.KindReferencesClause, func() {
		p.wantKw("references")
		p.qualifiedName()
		if p.at(lexer.LParen) {
			p.columnList()
		}
		if p.acceptKw("match") {
			p.wantAnyKw("full", "partial", "simple")
		}
		for p.atKws("on", "delete") || p.atKws("on", "update") {
			p.referentialAction()
		}
	})
}

func (p *Parser) referentialAction() {
	p.node(cst.KindReferentialAction, func() {
		p.wantKw("on")
		p.wantAnyKw("delete", "update")
		switch {
		case p.acceptKw("no"):
			p.wantKw("action")
		case p.acceptAnyKw("restrict", "cascade"):
		default:
			p.wantKw("set")
			p.wantAnyKw("null", "default")
			if p.at(lexer.LParen) {
				p.columnList()
			}
		}
	})
}

// tableConstraint parses TableConstraint.
func (p *Parser) tableConstraint() {
	p.node(cst.KindTableConstraint, func() {
		if p.acceptKw("constraint") {
			p.colID()
		}
		switch {
		case p.atKw("check"):
			p.checkConstraint()
		case p.acceptKw("unique"):
			p.nullsDistinct()
			p.columnList()
			p.indexParameters()
		case p.acceptKws("primary", "key"):
			p.columnList()
			p.indexParameters()
		case p.acceptKws("foreign", "key"):
			p.columnList()
			p.referencesClause()
		case p.acceptKw("exclude"):
			if p.acceptKw("using") {
				p.colID()
			}
			p.parenList(func() {
				p.indexElement()
				p.wantKw("with")
				p.excludeOperator()
			})
			p.indexParameters()
			if p.acceptKw("where") {
				p.parens(p.aExpr)
			}
		default:
			p.fail()
		}
		p.constraintAttributes()
	})
}

// excludeOperator parses an operator, possibly OPERATOR(schema.op).
func (p *Parser) excludeOperator() {
	if p.acceptKw("operator") {
		p.parens(func() {
			for !p.at(lexer.RParen) && !p.at(lexer.EOF) {
				p.advance()
			}
		})
		return
	}
	tok := p.cur()
	if tok.Kind == lexer.EOF || isWord(tok.Kind) || tok.Kind == lexer.Comma || tok.Kind == lexer.RParen {
		p.expect("operator")
		p.fail()
	}
	p.advance()
}

// =============================================================================
// Partitioning and storage options
// =============================================================================

func (p *Parser) partitionSpec() {
	p.node(cst.KindPartitionSpec, func() {
		p.wantKw("partition", "by")
		p.colID()
		p.parenList(p.partitionElement)
	})
}

func (p *Parser) partitionElement() {
	p.node(cst.KindPartitionElement, func() {
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
		if p.atColID() {
			p.qualifiedName()
		}
	})
}

// partitionBound parses FOR VALUES IN/FROM..TO/WITH or DEFAULT.
func (p *Parser) partitionBound() {
	p.node(cst.KindPartitionBound, func() {
		if p.acceptKw("default") {
			return
		}
		p.wantKw("for", "values")
		switch {
		case p.acceptKw("in"):
			p.parenList(p.aExpr)
		case p.acceptKw("from"):
			p.parenList(p.aExpr)
			p.wantKw("to")
			p.parenList(p.aExpr)
		default:
			p.wantKw("with")
			p.parens(func() {
				p.wantKw("modulus")
				p.want(lexer.Integer)
				p.want(lexer.Comma)
				p.wantKw("remainder")
				p.want(lexer.Integer)
			})
		}
	})
}

// relOptions parses '(' name [= value] (',' ...)* ')'.
func (p *Parser) relOptions() {
	p.node(cst.KindRelOptions, func() {
		p.parenList(p.relOption)
	})
}

func (p *Parser) relOption() {
	p.node(cst.KindRelOption, func() {
		p.colLabel()
		if p.accept(lexer.Dot) {
			p.colLabel()
		}
		if p.accept(lexer.Equals) {
			p.defArg()
		}
	})
}

// defArg parses an option value: a number, a string or any word.
func (p *Parser) defArg() {
	switch tok := p.cur(); {
	case tok.Kind == lexer.Plus || tok.Kind == lexer.Minus || tok.Kind == lexer.Integer || tok.Kind == lexer.Decimal:
		p.signedNumber()
	case tok.Kind.IsStringConstant():
		p.constant()
	default:
		p.colLabel()
	}
}

// =============================================================================
// ALTER TABLE
// =============================================================================

// alterTable parses AlterTableStmt. Every action, including RENAME and SET
// SCHEMA, becomes one KindAlterTableCmd child.
func (p *Parser) alterTable() {
	p.node(cst.KindAlterTable, func() {
		p.wantKw("alter", "table")
		p.acceptKws("if", "exists")
		p.relationExpr()
		p.commaList(p.alterTableCmd)
	})
}

func (p *Parser) alterTableCmd() {
	p.node(cst.KindAlterTableCmd, func() {
		p.choose(alterTableCommands)
	})
}

// alterTableCommands lists the ALTER TABLE actions by their leading
// keywords.
var alterTableCommands = []alternative{
	{kw("add"), (*Parser).alterTableAdd},
	{kw("drop"), (*Parser).alterTableDrop},
	{kw("alter"), (*Parser).alterTableAlter},
	{kw("validate", "constraint"), func(p *Parser) {
		p.wantKw("validate", "constraint")
		p.colID()
	}},
	{kw("rename"), (*Parser).alterTableRename},
	{kw("owner", "to"), (*Parser).ownerTo},
	{kw("set"), (*Parser).alterTableSet},
	{kw("reset"), func(p *Parser) {
		p.wantKw("reset")
		p.relOptions()
	}},
	{kw("cluster", "on"), func(p *Parser) {
		p.wantKw("cluster", "on")
		p.colID()
	}},
	{kw("enable"), (*Parser).alterTableEnableDisable},
	{kw("disable"), (*Parser).alterTableEnableDisable},
	{kw("force"), func(p *Parser) { p.wantKw("force", "row", "level", "security") }},
	{kw("no", "force"), func(p *Parser) { p.wantKw("no", "force", "row", "level", "security") }},
	{kw("inherit"), func(p *Parser) {
		p.wantKw("inherit")
		p.qualifiedName()
	}},
	{kw("no", "inherit"), func(p *Parser) {
		p.wantKw("no", "inherit")
		p.qualifiedName()
	}},
	{kw("of"), func(p *Parser) {
		p.wantKw("of")
		p.qualifiedName()
	}},
	{kw("not", "of"), func(p *Parser) { p.wantKw("not", "of") }},
	{kw("replica", "identity"), func(p *Parser) {
		p.wantKw("replica", "identity")
		if p.acceptKws("using", "index") {
			p.colID()
			return
		}
		p.wantAnyKw("default", "full", "nothing")
	}},
	{kw("attach", "partition"), func(p *Parser) {
		p.wantKw("attach", "partition")
		p.qualifiedName()
		p.partitionBound()
	}},
	{kw("detach", "partition"), func(p *Parser) {
		p.wantKw("detach", "partition")
		p.qualifiedName()
		p.acceptAnyKw("concurrently", "finalize")
	}},
}

func (p *Parser) alterTableAdd() {
	p.wantKw("add")
	if p.atTableConstraint() {
		p.tableConstraint()
		return
	}
	p.acceptKw("column")
	p.acceptKws("if", "not", "exists")
	p.columnDefinition()
}

func (p *Parser) alterTableDrop() {
	p.wantKw("drop")
	if p.acceptKw("constraint") {
		p.acceptKws("if", "exists")
		p.colID()
		p.dropBehavior()
		return
	}
	p.acceptKw("column")
	p.acceptKws("if", "exists")
	p.colID()
	p.dropBehavior()
}

func (p *Parser) alterTableAlter() {
	p.wantKw("alter")
	if p.acceptKw("constraint") {
		p.colID()
		p.constraintAttributes()
		return
	}
	p.acceptKw("column")
	p.colID()
	switch {
	case p.acceptKw("type"), p.acceptKws("set", "data", "type"):
		p.typeName()
		if p.acceptKw("collate") {
			p.qualifiedName()
		}
		if p.acceptKw("using") {
			p.aExpr()
		}
	case p.acceptKws("set", "default"):
		p.aExpr()
	case p.acceptKws("drop", "default"):
	case p.acceptKws("set", "not", "null"):
	case p.acceptKws("drop", "not", "null"):
	case p.acceptKws("drop", "expression"):
		p.acceptKws("if", "exists")
	case p.acceptKws("drop", "identity"):
		p.acceptKws("if", "exists")
	case p.acceptKw("add"):
		p.wantKw("generated")
		p.generatedColumn()
	case p.acceptKws("set", "statistics"):
		p.signedNumber()
	case p.acceptKws("set", "storage"):
		p.colLabel()
	case p.acceptKws("set", "compression"):
		p.colLabel()
	case p.atKws("set", "generated"):
		p.wantKw("set", "generated")
		if !p.acceptKw("always") {
			p.wantKw("by", "default")
		}
	case p.atKw("set") && p.peekIs(1, lexer.LParen):
		p.wantKw("set")
		p.relOptions()
	case p.acceptKw("reset"):
		p.relOptions()
	default:
		p.fail()
	}
}

// alterTableRename parses RENAME TO, RENAME [COLUMN] and RENAME CONSTRAINT.
func (p *Parser) alterTableRename() {
	p.wantKw("rename")
	if p.acceptKw("to") {
		p.colID()
		return
	}
	if !p.acceptKw("constraint") {
		p.acceptKw("column")
	}
	p.colID()
	p.wantKw("to")
	p.colID()
}

func (p *Parser) alterTableSet() {
	p.wantKw("set")
	switch {
	case p.acceptKw("schema"):
		p.colID()
	case p.acceptKw("tablespace"):
		p.colID()
	case p.at(lexer.LParen):
		p.relOptions()
	case p.acceptAnyKw("logged", "unlogged"):
	case p.acceptKw("without"):
		p.wantAnyKw("cluster", "oids")
	case p.acceptKws("access", "method"):
		p.colID()
	default:
		p.fail()
	}
}

func (p *Parser) alterTableEnableDisable() {
	p.wantAnyKw("enable", "disable")
	p.acceptAnyKw("always", "replica")
	switch {
	case p.acceptKw("trigger"):
		if !p.acceptAnyKw("all", "user") {
			p.colID()
		}
	case p.acceptKw("rule"):
		p.colID()
	default:
		p.wantKw("row", "level", "security")
	}
}

// ownerTo parses OWNER TO RoleSpec.
func (p *Parser) ownerTo() {
	p.wantKw("owner", "to")
	p.roleSpec()
}

func (p *Parser) dropBehavior() {
	p.acceptAnyKw("cascade", "restrict")
}

// =============================================================================
// TRUNCATE
// =============================================================================

func (p *Parser) truncateTable() {
	p.node(cst.KindTruncateTable, func() {
		p.wantKw("truncate")
		p.acceptKw("table")
		p.commaList(p.relationExpr)
		if p.acceptAnyKw("restart", "continue") {
			p.wantKw("identity")
		}
		p.dropBehavior()
	})
}

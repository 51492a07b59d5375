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

import "github.com/AleutianAI/sqlfront/services/parser/cst"

// objectTypes lists the object kinds of the generic DROP and COMMENT ON
// forms. Longer keyword sequences come first so they win over their
// prefixes.
var objectTypes = [][]string{
	{"materialized", "view"},
	{"foreign", "data", "wrapper"},
	{"foreign", "table"},
	{"event", "trigger"},
	{"access", "method"},
	{"text", "search", "configuration"},
	{"text", "search", "dictionary"},
	{"text", "search", "parser"},
	{"text", "search", "template"},
	{"procedural", "language"},
	{"table"},
	{"sequence"},
	{"view"},
	{"index"},
	{"type"},
	{"domain"},
	{"collation"},
	{"conversion"},
	{"statistics"},
	{"schema"},
	{"extension"},
	{"publication"},
	{"subscription"},
	{"server"},
	{"language"},
	{"tablespace"},
	{"role"},
}

// objectType parses the keyword sequence naming an object kind into a
// KindObjectType node.
func (p *Parser) objectType() {
	p.node(cst.KindObjectType, func() {
		for _, words := range objectTypes {
			if p.acceptKws(words...) {
				return
			}
		}
		p.fail()
	})
}

// dropStatement parses the generic DropStmt:
// DROP type [CONCURRENTLY] [IF EXISTS] name, ... [CASCADE | RESTRICT].
// CONCURRENTLY is only valid for indexes.
func (p *Parser) dropStatement() {
	p.node(cst.KindDropStatement, func() {
		p.wantKw("drop")
		index := p.atKw("index")
		p.objectType()
		if index {
			p.acceptKw("concurrently")
		}
		p.acceptKws("if", "exists")
		p.qualifiedNameList()
		p.dropBehavior()
	})
}

var dropOnTableKinds = map[string]cst.Kind{
	"trigger": cst.KindDropTrigger,
	"policy":  cst.KindDropPolicy,
	"rule":    cst.KindDropRule,
}

// dropOnTable parses DROP TRIGGER|POLICY|RULE [IF EXISTS] name ON table.
func (p *Parser) dropOnTable() {
	kind := dropOnTableKinds[p.peek(1).Value]
	p.node(kind, func() {
		p.wantKw("drop")
		p.wantAnyKw("trigger", "policy", "rule")
		p.acceptKws("if", "exists")
		if kind == cst.KindDropTrigger {
			p.triggerName()
		} else {
			p.colID()
		}
		p.wantKw("on")
		p.qualifiedName()
		p.dropBehavior()
	})
}

// objectReference parses an object kind and its name, as used by COMMENT
// ON and ALTER EXTENSION ADD/DROP.
func (p *Parser) objectReference() {
	if p.atAnyKw("function", "procedure", "routine", "aggregate") {
		p.node(cst.KindObjectType, func() { p.advance() })
		p.functionWithArgs()
		return
	}
	p.objectType()
	p.qualifiedName()
}

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
	"maps"
	"slices"

	"github.com/AleutianAI/sqlfront/services/parser/lexer"
)

// statementAlternatives dispatches a statement on its leading keyword.
var statementAlternatives = []alternative{
	{kw("create"), (*Parser).createStatement},
	{kw("alter"), (*Parser).alterStatement},
	{kw("drop"), (*Parser).dropDispatch},
	{kw("truncate"), (*Parser).truncateTable},
	{kw("comment"), (*Parser).commentOn},
	{kw("refresh"), (*Parser).refreshMaterializedView},
	{kw("select"), (*Parser).selectStatement},
	{kw("values"), (*Parser).selectStatement},
	{kw("table"), (*Parser).selectStatement},
	{func(p *Parser) bool { return p.at(lexer.LParen) }, (*Parser).selectStatement},
	{kw("with"), (*Parser).withDML},
	{kw("insert"), (*Parser).insertStatement},
	{kw("update"), (*Parser).updateStatement},
	{kw("delete"), (*Parser).deleteStatement},
	{kw("begin"), (*Parser).transactionStatement},
	{kw("start"), (*Parser).transactionStatement},
	{kw("commit"), (*Parser).transactionStatement},
	{kw("end"), (*Parser).transactionStatement},
	{kw("rollback"), (*Parser).transactionStatement},
	{kw("abort"), (*Parser).transactionStatement},
	{kw("savepoint"), (*Parser).transactionStatement},
	{kw("release"), (*Parser).transactionStatement},
	{kw("prepare", "transaction"), (*Parser).transactionStatement},
}

// createModifiers may appear between CREATE and the object keyword.
var createModifiers = map[string]bool{
	"or": true, "replace": true, "temp": true, "temporary": true,
	"local": true, "global": true, "unlogged": true, "unique": true,
	"recursive": true, "constraint": true,
}

// createObjects maps the object keyword of CREATE to its production.
var createObjects = map[string]func(*Parser){
	"table":        (*Parser).createTable,
	"index":        (*Parser).createIndex,
	"view":         (*Parser).createView,
	"materialized": (*Parser).createMaterializedView,
	"sequence":     (*Parser).createSequence,
	"type":         (*Parser).createType,
	"domain":       (*Parser).createDomain,
	"trigger":      (*Parser).createTrigger,
	"policy":       (*Parser).createPolicy,
	"extension":    (*Parser).createExtension,
	"publication":  (*Parser).createPublication,
	"subscription": (*Parser).createSubscription,
	"schema":       (*Parser).createSchema,
	"database":     (*Parser).createDatabase,
	"function":     (*Parser).createFunction,
	"procedure":    (*Parser).createFunction,
	"tablespace":   (*Parser).createTablespace,
}

// alterObjects maps the object keyword of ALTER to its production.
var alterObjects = map[string]func(*Parser){
	"table":        (*Parser).alterTable,
	"index":        (*Parser).alterIndex,
	"view":         (*Parser).alterView,
	"materialized": (*Parser).alterMaterializedView,
	"sequence":     (*Parser).alterSequence,
	"type":         (*Parser).alterType,
	"domain":       (*Parser).alterDomain,
	"trigger":      (*Parser).alterTrigger,
	"policy":       (*Parser).alterPolicy,
	"extension":    (*Parser).alterExtension,
	"publication":  (*Parser).alterPublication,
	"subscription": (*Parser).alterSubscription,
	"schema":       (*Parser).alterSchema,
	"database":     (*Parser).alterDatabase,
	"function":     (*Parser).alterFunction,
	"procedure":    (*Parser).alterFunction,
	"routine":      (*Parser).alterFunction,
	"tablespace":   (*Parser).alterTablespace,
}

// createObjectWord returns the object keyword following CREATE and its
// modifiers, without consuming anything.
func (p *Parser) createObjectWord() string {
	i := 1
	for {
		tok := p.peek(i)
		if tok.Kind != lexer.Ident || !createModifiers[tok.Value] {
			if tok.Kind != lexer.Ident {
				return ""
			}
			return tok.Value
		}
		i++
	}
}

func (p *Parser) createStatement() {
	if rule, ok := createObjects[p.createObjectWord()]; ok {
		rule(p)
		return
	}
	p.failCreate(slices.Collect(maps.Keys(createObjects))...)
}

// failCreate consumes CREATE and its modifiers and fails at the object
// keyword, reporting objects as the expected set.
func (p *Parser) failCreate(objects ...string) {
	p.wantKw("create")
	for p.cur().Kind == lexer.Ident && createModifiers[p.cur().Value] {
		p.advance()
	}
	p.atAnyKw(objects...)
	p.fail()
}

func (p *Parser) alterStatement() {
	if rule, ok := alterObjects[p.peek(1).Value]; ok && p.peek(1).Kind == lexer.Ident {
		rule(p)
		return
	}
	p.wantKw("alter")
	p.atAnyKw(slices.Collect(maps.Keys(alterObjects))...)
	p.fail()
}

func (p *Parser) dropDispatch() {
	next := p.peek(1)
	switch {
	case next.IsKeyword("function"), next.IsKeyword("procedure"), next.IsKeyword("routine"), next.IsKeyword("aggregate"):
		p.dropFunction()
	case next.IsKeyword("trigger"), next.IsKeyword("policy"), next.IsKeyword("rule"):
		p.dropOnTable()
	case next.IsKeyword("database"):
		p.dropDatabase()
	default:
		p.dropStatement()
	}
}

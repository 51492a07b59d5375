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

func (p *Parser) createSequence() {
	p.node(cst.KindCreateSequence, func() {
		p.wantKw("create")
		p.tempModifier()
		p.wantKw("sequence")
		p.acceptKws("if", "not", "exists")
		p.qualifiedName()
		for p.atSequenceOption() {
			p.sequenceOption()
		}
	})
}

func (p *Parser) alterSequence() {
	p.node(cst.KindAlterSequence, func() {
		p.wantKw("alter", "sequence")
		p.acceptKws("if", "exists")
		p.qualifiedName()
		if p.atSequenceOption() {
			for p.atSequenceOption() {
				p.sequenceOption()
			}
			return
		}
		p.alterObjectCommand(
			alternative{kw("set", "logged"), func(p *Parser) { p.wantKw("set", "logged") }},
			alternative{kw("set", "unlogged"), func(p *Parser) { p.wantKw("set", "unlogged") }},
		)
	})
}

// seqOptionList parses '(' SeqOptElem+ ')', used by identity columns.
func (p *Parser) seqOptionList() {
	p.node(cst.KindSeqOptionList, func() {
		p.want(lexer.LParen)
		for p.atSequenceOption() {
			p.sequenceOption()
		}
		p.want(lexer.RParen)
	})
}

// sequenceOptions maps each SeqOptElem to the parser of its tail.
var sequenceOptions = []alternative{
	{kw("as"), func(p *Parser) {
		p.wantKw("as")
		p.simpleTypeName()
	}},
	{kw("increment"), func(p *Parser) {
		p.wantKw("increment")
		p.acceptKw("by")
		p.signedNumber()
	}},
	{kw("minvalue"), func(p *Parser) {
		p.wantKw("minvalue")
		p.signedNumber()
	}},
	{kw("maxvalue"), func(p *Parser) {
		p.wantKw("maxvalue")
		p.signedNumber()
	}},
	{kw("no"), func(p *Parser) {
		p.wantKw("no")
		p.wantAnyKw("minvalue", "maxvalue", "cycle")
	}},
	{kw("start"), func(p *Parser) {
		p.wantKw("start")
		p.acceptKw("with")
		p.signedNumber()
	}},
	{kw("restart"), func(p *Parser) {
		p.wantKw("restart")
		if p.acceptKw("with") || p.atNumber() {
			p.signedNumber()
		}
	}},
	{kw("cache"), func(p *Parser) {
		p.wantKw("cache")
		p.signedNumber()
	}},
	{kw("cycle"), func(p *Parser) { p.wantKw("cycle") }},
	{kw("owned", "by"), func(p *Parser) {
		p.wantKw("owned", "by")
		if !p.acceptKw("none") {
			p.qualifiedName()
		}
	}},
	{kw("sequence", "name"), func(p *Parser) {
		p.wantKw("sequence", "name")
		p.qualifiedName()
	}},
}

func (p *Parser) atSequenceOption() bool {
	for _, a := range sequenceOptions {
		if a.when(p) {
			return true
		}
	}
	return false
}

func (p *Parser) sequenceOption() {
	p.node(cst.KindSequenceOption, func() {
		p.choose(sequenceOptions)
	})
}

func (p *Parser) atNumber() bool {
	switch p.cur().Kind {
	case lexer.Integer, lexer.Decimal, lexer.Plus, lexer.Minus:
		return true
	}
	return false
}

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

// createFunction parses CREATE [OR REPLACE] FUNCTION and PROCEDURE.
func (p *Parser) createFunction() {
	p.node(cst.KindCreateFunction, func() {
		p.wantKw("create")
		p.acceptKws("or", "replace")
		p.wantAnyKw("function", "procedure")
		p.funcName()
		p.want(lexer.LParen)
		if !p.at(lexer.RParen) {
			p.commaList(p.functionParameter)
		}
		p.want(lexer.RParen)
		if p.atKw("returns") && !p.peekKw(1, "null") {
			p.wantKw("returns")
			if p.acceptKw("table") {
				p.parenList(p.functionColumn)
			} else {
				p.typeName()
			}
		}
		for p.atFunctionOption() {
			p.functionOption()
		}
	})
}

// functionParameter parses func_arg: [mode] [name] type [DEFAULT expr].
// A leading word is a name when another word follows it and the two do
// not form a multi-word type such as DOUBLE PRECISION.
func (p *Parser) functionParameter() {
	p.node(cst.KindFunctionParameter, func() {
		p.acceptAnyKw("in", "out", "inout", "variadic")
		if p.atParameterName() {
			p.typeFunctionName()
			p.acceptAnyKw("in", "out", "inout", "variadic")
		}
		p.typeName()
		if p.acceptKw("default") || p.accept(lexer.Equals) {
			p.aExpr()
		}
	})
}

func (p *Parser) atParameterName() bool {
	first, second := p.cur(), p.peek(1)
	if !isWord(first.Kind) || !isWord(second.Kind) {
		return false
	}
	if first.Kind == lexer.Ident && second.Kind == lexer.Ident && multiWordType(first.Value, second.Value) {
		return false
	}
	return p.isTypeFuncName(first)
}

// multiWordType reports whether a type name starting with first continues
// with the word second.
func multiWordType(first, second string) bool {
	switch first {
	case "double":
		return second == "precision"
	case "character", "char", "nchar", "bit":
		return second == "varying"
	case "national":
		return second == "character" || second == "char"
	case "timestamp", "time":
		return second == "with" || second == "without"
	case "interval":
		switch second {
		case "year", "month", "day", "hour", "minute", "second":
			return true
		}
	case "setof":
		return true
	}
	return false
}

func (p *Parser) functionColumn() {
	p.node(cst.KindFunctionColumn, func() {
		p.typeFunctionName()
		p.typeName()
	})
}

func (p *Parser) atFunctionOption() bool {
	if p.atAnyKw("language", "as", "immutable", "stable", "volatile", "leakproof",
		"called", "strict", "security", "external", "parallel", "cost", "rows",
		"support", "set", "reset", "window", "return", "begin", "transform") {
		return true
	}
	return p.atKws("not", "leakproof") || p.atKws("returns", "null")
}

// functionOption parses one createfunc_opt_item or routine body.
func (p *Parser) functionOption() {
	p.node(cst.KindFunctionOption, func() {
		switch {
		case p.acceptKw("language"):
			p.nonReservedWordOrString()
		case p.acceptKw("as"):
			p.stringConst()
			if p.accept(lexer.Comma) {
				p.stringConst()
			}
		case p.acceptAnyKw("immutable", "stable", "volatile", "leakproof", "strict", "window"):
		case p.acceptKws("not", "leakproof"):
		case p.acceptKw("called"):
			p.wantKw("on", "null", "input")
		case p.acceptKw("returns"):
			p.wantKw("null", "on", "null", "input")
		case p.atAnyKw("external", "security"):
			p.acceptKw("external")
			p.wantKw("security")
			p.wantAnyKw("definer", "invoker")
		case p.acceptKw("parallel"):
			p.colLabel()
		case p.acceptAnyKw("cost", "rows"):
			p.signedNumber()
		case p.acceptKw("support"):
			p.qualifiedName()
		case p.atKw("set"):
			p.setConfiguration()
		case p.acceptKw("reset"):
			if !p.acceptKw("all") {
				p.configName()
			}
		case p.acceptKw("transform"):
			p.commaList(func() {
				p.wantKw("for", "type")
				p.typeName()
			})
		case p.acceptKw("return"):
			p.aExpr()
		default:
			p.wantKw("begin", "atomic")
			for !p.atKw("end") {
				p.preparableStatement()
				p.want(lexer.Semicolon)
			}
			p.wantKw("end")
		}
	})
}

// functionWithArgs parses function_with_argtypes: name with an optional
// parenthesized parameter list.
func (p *Parser) functionWithArgs() {
	p.node(cst.KindFunctionWithArgs, func() {
		p.funcName()
		if p.accept(lexer.LParen) {
			if !p.at(lexer.RParen) {
				p.commaList(p.functionParameter)
			}
			p.want(lexer.RParen)
		}
	})
}

func (p *Parser) alterFunction() {
	p.node(cst.KindAlterFunction, func() {
		p.wantKw("alter")
		p.wantAnyKw("function", "procedure", "routine")
		p.functionWithArgs()
		if p.atFunctionOption() && !p.atKws("set", "schema") {
			for p.atFunctionOption() {
				p.functionOption()
			}
			p.acceptKw("restrict")
			return
		}
		p.alterObjectCommand(
			alternative{kw("depends"), (*Parser).dependsOnExtension},
			alternative{kw("no", "depends"), (*Parser).dependsOnExtension},
		)
	})
}

func (p *Parser) dropFunction() {
	p.node(cst.KindDropFunction, func() {
		p.wantKw("drop")
		p.wantAnyKw("function", "procedure", "routine", "aggregate")
		p.acceptKws("if", "exists")
		p.commaList(p.functionWithArgs)
		p.dropBehavior()
	})
}

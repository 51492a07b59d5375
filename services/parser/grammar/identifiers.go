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
	"github.com/AleutianAI/sqlfront/services/parser/keywords"
	"github.com/AleutianAI/sqlfront/services/parser/lexer"
)

const descIdentifier = "identifier"

// wordClass returns the keyword class of tok, NotKeyword for anything that
// is not an unquoted word.
func (p *Parser) wordClass(tok lexer.Token) keywords.Class {
	if tok.Kind != lexer.Ident {
		return keywords.NotKeyword
	}
	return p.kw.Classify(tok.Value)
}

// isColID: identifier, unreserved or col_name keyword.
func (p *Parser) isColID(tok lexer.Token) bool {
	switch tok.Kind {
	case lexer.QuotedIdent:
		return true
	case lexer.Ident:
		c := p.wordClass(tok)
		return c == keywords.NotKeyword || c == keywords.Unreserved || c == keywords.ColName
	}
	return false
}

// isTypeFuncName: identifier, unreserved or type_func_name keyword.
func (p *Parser) isTypeFuncName(tok lexer.Token) bool {
	switch tok.Kind {
	case lexer.QuotedIdent:
		return true
	case lexer.Ident:
		c := p.wordClass(tok)
		return c == keywords.NotKeyword || c == keywords.Unreserved || c == keywords.TypeFuncName
	}
	return false
}

// isNonReservedWord: anything but a reserved keyword.
func (p *Parser) isNonReservedWord(tok lexer.Token) bool {
	return isWord(tok.Kind) && p.wordClass(tok) != keywords.Reserved
}

// isBareColLabel: a label usable without AS.
func (p *Parser) isBareColLabel(tok lexer.Token) bool {
	switch tok.Kind {
	case lexer.QuotedIdent:
		return true
	case lexer.Ident:
		return p.kw.IsBareLabel(tok.Value)
	}
	return false
}

func (p *Parser) atColID() bool {
	p.expect(descIdentifier)
	return p.isColID(p.cur())
}

func (p *Parser) atTypeFuncName() bool {
	p.expect(descIdentifier)
	return p.isTypeFuncName(p.cur())
}

func (p *Parser) atNonReservedWord() bool {
	p.expect(descIdentifier)
	return p.isNonReservedWord(p.cur())
}

func (p *Parser) atColLabel() bool {
	p.expect(descIdentifier)
	return isWord(p.cur().Kind)
}

// =============================================================================
// Single-word rules
// =============================================================================

// colID parses ColId.
func (p *Parser) colID() {
	p.node(cst.KindColId, func() {
		if !p.atColID() {
			p.fail()
		}
		p.advance()
	})
}

// colLabel parses ColLabel: any word, reserved keywords included.
func (p *Parser) colLabel() {
	p.node(cst.KindColLabel, func() {
		if !p.atColLabel() {
			p.fail()
		}
		p.advance()
	})
}

// bareColLabel parses a column label that is not introduced by AS.
func (p *Parser) bareColLabel() {
	p.node(cst.KindColLabel, func() {
		p.expect(descIdentifier)
		if !p.isBareColLabel(p.cur()) {
			p.fail()
		}
		p.advance()
	})
}

// typeFunctionName parses type_function_name.
func (p *Parser) typeFunctionName() {
	p.node(cst.KindTypeFunctionName, func() {
		if !p.atTypeFuncName() {
			p.fail()
		}
		p.advance()
	})
}

// nonReservedWord parses NonReservedWord.
func (p *Parser) nonReservedWord() {
	p.node(cst.KindNonReservedWord, func() {
		if !p.atNonReservedWord() {
			p.fail()
		}
		p.advance()
	})
}

// nonReservedWordOrString parses NonReservedWord_or_Sconst.
func (p *Parser) nonReservedWordOrString() {
	if p.atStringConst() {
		p.constant()
		return
	}
	p.nonReservedWord()
}

// triggerName accepts exactly the ColId set; it is kept as its own rule so
// trigger names stay distinguishable in the tree.
func (p *Parser) triggerName() {
	p.node(cst.KindTriggerName, func() {
		if !p.atColID() {
			p.fail()
		}
		p.advance()
	})
}

// =============================================================================
// Compound names
// =============================================================================

// qualifiedName parses ColId ('.' ColLabel)*, at most catalog.schema.name.
func (p *Parser) qualifiedName() {
	p.node(cst.KindQualifiedName, func() {
		p.colID()
		for parts := 1; parts < 3 && p.peekIs(0, lexer.Dot) && isWord(p.peek(1).Kind); parts++ {
			p.advance()
			p.colLabel()
		}
	})
}

// qualifiedNameList parses qualifiedName (',' qualifiedName)*.
func (p *Parser) qualifiedNameList() {
	p.commaList(p.qualifiedName)
}

// funcName parses func_name: a type_function_name, or a ColId followed by
// one or two '.' ColLabel parts.
func (p *Parser) funcName() {
	p.node(cst.KindFuncName, func() {
		if p.peekIs(1, lexer.Dot) && p.isColID(p.cur()) {
			p.colID()
			for parts := 1; parts < 3 && p.peekIs(0, lexer.Dot) && isWord(p.peek(1).Kind); parts++ {
				p.advance()
				p.colLabel()
			}
			return
		}
		p.typeFunctionName()
	})
}

// columnList parses '(' ColId (',' ColId)* ')'.
func (p *Parser) columnList() {
	p.node(cst.KindColumnList, func() {
		p.parenList(p.colID)
	})
}

// roleSpec parses RoleSpec.
func (p *Parser) roleSpec() {
	p.node(cst.KindRoleSpec, func() {
		if p.atAnyKw("current_role", "current_user", "session_user") {
			p.advance()
			return
		}
		p.nonReservedWord()
	})
}

// roleList parses RoleSpec (',' RoleSpec)*.
func (p *Parser) roleList() {
	p.commaList(p.roleSpec)
}

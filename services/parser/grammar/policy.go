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

func (p *Parser) createPolicy() {
	p.node(cst.KindCreatePolicy, func() {
		p.wantKw("create", "policy")
		p.colID()
		p.wantKw("on")
		p.qualifiedName()
		if p.acceptKw("as") {
			p.wantAnyKw("permissive", "restrictive")
		}
		if p.acceptKw("for") {
			p.wantAnyKw("all", "select", "insert", "update", "delete")
		}
		p.policyClauses()
	})
}

// policyClauses parses the optional TO, USING and WITH CHECK clauses.
func (p *Parser) policyClauses() {
	if p.acceptKw("to") {
		p.roleList()
	}
	if p.acceptKw("using") {
		p.parens(p.aExpr)
	}
	if p.acceptKws("with", "check") {
		p.parens(p.aExpr)
	}
}

func (p *Parser) alterPolicy() {
	p.node(cst.KindAlterPolicy, func() {
		p.wantKw("alter", "policy")
		p.colID()
		p.wantKw("on")
		p.qualifiedName()
		if p.acceptKws("rename", "to") {
			p.colID()
			return
		}
		p.policyClauses()
	})
}

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

// commentOn parses COMMENT ON object IS 'text' | NULL.
func (p *Parser) commentOn() {
	p.node(cst.KindCommentOn, func() {
		p.wantKw("comment", "on")
		switch {
		case p.atKw("column"):
			p.node(cst.KindObjectType, func() { p.advance() })
			p.qualifiedName()
		case p.atAnyKw("constraint", "trigger", "policy", "rule"):
			p.node(cst.KindObjectType, func() { p.advance() })
			p.colID()
			p.wantKw("on")
			p.acceptKw("domain")
			p.qualifiedName()
		case p.atKw("database"):
			p.node(cst.KindObjectType, func() { p.advance() })
			p.colID()
		default:
			p.objectReference()
		}
		p.wantKw("is")
		if p.atKw("null") {
			p.constant()
			return
		}
		p.stringConst()
	})
}

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

// transactionStatement parses TransactionStmt: BEGIN, START TRANSACTION,
// COMMIT, END, ROLLBACK, ABORT, SAVEPOINT, RELEASE and the two-phase
// PREPARE TRANSACTION / COMMIT PREPARED / ROLLBACK PREPARED forms.
func (p *Parser) transactionStatement() {
	p.node(cst.KindTransactionStatement, func() {
		switch {
		case p.acceptKw("begin"):
			p.acceptAnyKw("work", "transaction")
			p.transactionModes()
		case p.acceptKws("start", "transaction"):
			p.transactionModes()
		case p.acceptKws("prepare", "transaction"):
			p.stringConst()
		case p.acceptAnyKw("commit", "rollback"):
			if p.acceptKw("prepared") {
				p.stringConst()
				return
			}
			p.acceptAnyKw("work", "transaction")
			if p.acceptKw("to") {
				p.acceptKw("savepoint")
				p.colID()
				return
			}
			p.chain()
		case p.acceptAnyKw("end", "abort"):
			p.acceptAnyKw("work", "transaction")
			p.chain()
		case p.acceptKw("savepoint"):
			p.colID()
		default:
			p.wantKw("release")
			p.acceptKw("savepoint")
			p.colID()
		}
	})
}

func (p *Parser) chain() {
	if p.acceptKw("and") {
		p.acceptKw("no")
		p.wantKw("chain")
	}
}

// transactionModes parses transaction_mode_list; commas are optional.
func (p *Parser) transactionModes() {
	for p.atAnyKw("isolation", "read", "deferrable") || p.atKws("not", "deferrable") {
		p.node(cst.KindTransactionMode, func() {
			switch {
			case p.acceptKws("isolation", "level"):
				switch {
				case p.acceptKw("serializable"):
				case p.acceptKw("repeatable"):
					p.wantKw("read")
				default:
					p.wantKw("read")
					p.wantAnyKw("committed", "uncommitted")
				}
			case p.acceptKw("read"):
				p.wantAnyKw("write", "only")
			case p.acceptKw("deferrable"):
			default:
				p.wantKw("not", "deferrable")
			}
		})
		p.accept(lexer.Comma)
	}
}

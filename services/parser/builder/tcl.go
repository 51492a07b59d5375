// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package builder

import (
	"strings"

	"github.com/AleutianAI/sqlfront/services/parser/cst"
	"github.com/AleutianAI/sqlfront/services/parser/statement"
)

// VisitTransactionStatement folds END into COMMIT and ABORT into
// ROLLBACK, and drops the WORK and TRANSACTION noise words.
func (b *Builder) VisitTransactionStatement(n *cst.Node) any {
	t := &statement.Transaction{}
	switch verb := n.FirstKeyword(); verb {
	case "begin", "start":
		t.Op = statement.KindBegin
		if verb == "start" {
			t.Op = statement.KindStartTransaction
		}
		for _, m := range n.ChildrenOf(cst.KindTransactionMode) {
			t.Modes = append(t.Modes, strings.ToUpper(m.Keywords()))
		}
	case "prepare":
		t.Op = statement.KindPrepareTransaction
		t.GID = b.stringConst(b.needKind(n, cst.KindConstant))
	case "commit", "end", "rollback", "abort":
		commit := verb == "commit" || verb == "end"
		switch {
		case n.HasKeyword("prepared"):
			t.Op = statement.KindRollbackPrepared
			if commit {
				t.Op = statement.KindCommitPrepared
			}
			t.GID = b.stringConst(b.needKind(n, cst.KindConstant))
			return t
		case n.HasKeyword("to"):
			if commit {
				b.fail(n, "COMMIT cannot name a savepoint")
			}
			t.Op = statement.KindRollback
			t.Savepoint = b.ident(b.needKind(n, cst.KindColId))
			return t
		}
		t.Op = statement.KindRollback
		if commit {
			t.Op = statement.KindCommit
		}
		t.Chain = n.HasKeyword("chain") && !n.HasKeyword("no")
	case "savepoint":
		t.Op = statement.KindSavepoint
		t.Savepoint = b.ident(b.needKind(n, cst.KindColId))
	case "release":
		t.Op = statement.KindRelease
		t.Savepoint = b.ident(b.needKind(n, cst.KindColId))
	default:
		b.fail(n, "unknown transaction command %q", verb)
	}
	return t
}

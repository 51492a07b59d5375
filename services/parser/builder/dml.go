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

func (b *Builder) VisitInsertStatement(n *cst.Node) any {
	target := b.needKind(n, cst.KindInsertTarget)
	s := &statement.Insert{
		With:          b.withClause(n.Child(cst.KindWithClause)),
		Table:         b.qualifiedName(b.needKind(target, cst.KindQualifiedName)),
		Columns:       b.columnList(n.Child(cst.KindColumnList)),
		DefaultValues: n.HasKeyword("default"),
	}
	if a := target.Child(cst.KindAlias); a != nil {
		s.Alias = b.ident(b.needKind(a, cst.KindColId))
	}
	if w := wordAfter(n, "overriding"); w != "" {
		s.Overriding = strings.ToUpper(w)
	}
	if q := n.Child(cst.KindSelectStatement); q != nil {
		s.Query = b.selectStatement(q)
	}
	if oc := n.Child(cst.KindOnConflictClause); oc != nil {
		s.OnConflict = b.onConflict(oc)
	}
	if r := n.Child(cst.KindReturningClause); r != nil {
		s.Returning = b.targetList(r.Child(cst.KindTargetList))
	}
	if s.Query == nil && !s.DefaultValues {
		b.fail(n, "INSERT needs a source")
	}
	return s
}

func (b *Builder) onConflict(n *cst.Node) *statement.OnConflict {
	oc := &statement.OnConflict{
		DoNothing: n.HasKeyword("nothing"),
		Set:       b.setClauses(n),
		Where:     b.whereClause(n.Child(cst.KindWhereClause)),
	}
	if t := n.Child(cst.KindConflictTarget); t != nil {
		ct := &statement.ConflictTarget{}
		if t.HasKeyword("constraint") {
			ct.Constraint = b.ident(b.needKind(t, cst.KindColId))
		} else {
			for _, e := range t.ChildrenOf(cst.KindIndexElement) {
				ct.Columns = append(ct.Columns, b.indexElement(e))
			}
			ct.Where = b.whereClause(t.Child(cst.KindWhereClause))
		}
		oc.Target = ct
	}
	return oc
}

// setClauses reads the SetClause children of n.
func (b *Builder) setClauses(n *cst.Node) []statement.SetClause {
	var out []statement.SetClause
	for _, c := range n.ChildrenOf(cst.KindSetClause) {
		nodes := c.Nodes()
		if len(nodes) < 2 {
			b.fail(c, "SET needs a target and a value")
		}
		sc := statement.SetClause{Value: b.expr(nodes[len(nodes)-1])}
		if nodes[0].Kind == cst.KindColumnList {
			sc.Tuple = b.columnList(nodes[0])
		} else {
			sc.Target = b.idents(nodes[:len(nodes)-1])
		}
		out = append(out, sc)
	}
	return out
}

// dmlTable reads the TableRef of UPDATE and DELETE.
func (b *Builder) dmlTable(n *cst.Node) statement.RelationRef {
	t := b.needKind(n, cst.KindTableRef)
	return statement.RelationRef{
		Relation: b.relation(b.needKind(t, cst.KindRelationExpr)),
		Alias:    b.alias(t.Child(cst.KindAlias)),
	}
}

func (b *Builder) returning(n *cst.Node) []statement.Target {
	r := n.Child(cst.KindReturningClause)
	if r == nil {
		return nil
	}
	return b.targetList(r.Child(cst.KindTargetList))
}

func (b *Builder) VisitUpdateStatement(n *cst.Node) any {
	return &statement.Update{
		With:      b.withClause(n.Child(cst.KindWithClause)),
		Table:     b.dmlTable(n),
		Set:       b.setClauses(n),
		From:      b.tableExprs(n.Child(cst.KindFromClause)),
		Where:     b.whereClause(n.Child(cst.KindWhereClause)),
		Returning: b.returning(n),
	}
}

func (b *Builder) VisitDeleteStatement(n *cst.Node) any {
	return &statement.Delete{
		With:      b.withClause(n.Child(cst.KindWithClause)),
		Table:     b.dmlTable(n),
		Using:     b.tableExprs(n.Child(cst.KindUsingClause)),
		Where:     b.whereClause(n.Child(cst.KindWhereClause)),
		Returning: b.returning(n),
	}
}

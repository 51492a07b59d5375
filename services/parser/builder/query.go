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

func (b *Builder) VisitSelectStatement(n *cst.Node) any {
	s := &statement.SelectStatement{}
	for _, c := range n.Nodes() {
		switch c.Kind {
		case cst.KindWithClause:
			s.With = b.withClause(c)
		case cst.KindSortClause:
			s.OrderBy = b.sortClause(c)
		case cst.KindLimitClause:
			b.limitClause(c, s)
		case cst.KindLockingClause:
			s.Locking = append(s.Locking, b.lockingClause(c))
		default:
			s.Body = b.queryExpr(c)
		}
	}
	if s.Body == nil {
		b.fail(n, "query has no body")
	}
	return s
}

func (b *Builder) selectStatement(n *cst.Node) *statement.SelectStatement {
	return build[*statement.SelectStatement](b, n)
}

// parenQuery reads the statement inside a SelectWithParens node.
func (b *Builder) parenQuery(n *cst.Node) *statement.SelectStatement {
	return b.selectStatement(b.needKind(n, cst.KindSelectStatement))
}

func (b *Builder) queryExpr(n *cst.Node) statement.QueryExpr {
	switch n.Kind {
	case cst.KindSelectWithParens:
		return b.parenQuery(n)
	case cst.KindSimpleSelect:
		if n.HasKeyword("table") {
			return &statement.TableQuery{Relation: b.relation(b.needKind(n, cst.KindRelationExpr))}
		}
		return b.simpleSelect(n)
	case cst.KindValuesClause:
		v := &statement.ValuesQuery{}
		for _, row := range n.ChildrenOf(cst.KindValuesRow) {
			v.Rows = append(v.Rows, b.exprs(row.Nodes()))
		}
		return v
	case cst.KindSetOperation:
		nodes := n.Nodes()
		if len(nodes) != 2 {
			b.fail(n, "set operation needs two operands")
		}
		return &statement.SetOperation{
			Op:    strings.ToUpper(n.FirstKeyword()),
			All:   n.HasKeyword("all"),
			Left:  b.queryExpr(nodes[0]),
			Right: b.queryExpr(nodes[1]),
		}
	}
	b.fail(n, "unexpected %s in query", n.Kind.RuleName())
	return nil
}

func (b *Builder) simpleSelect(n *cst.Node) *statement.SimpleSelect {
	s := &statement.SimpleSelect{}
	for _, c := range n.Nodes() {
		switch c.Kind {
		case cst.KindDistinctClause:
			s.Distinct = true
			s.DistinctOn = b.exprs(c.Nodes())
		case cst.KindTargetList:
			s.Targets = b.targetList(c)
		case cst.KindFromClause:
			s.From = b.tableExprs(c)
		case cst.KindWhereClause:
			s.Where = b.whereClause(c)
		case cst.KindGroupClause:
			s.GroupByDistinct = c.HasKeyword("distinct")
			s.GroupBy = b.exprs(c.Nodes())
		case cst.KindHavingClause:
			s.Having = b.expr(b.need(c, c.FirstNode()))
		case cst.KindWindowClause:
			for _, d := range c.ChildrenOf(cst.KindWindowDefinition) {
				s.Windows = append(s.Windows, statement.WindowDef{
					Name: b.ident(b.needKind(d, cst.KindColId)),
					Spec: b.windowSpec(b.needKind(d, cst.KindWindowSpecification)),
				})
			}
		}
	}
	return s
}

// targetList reads a TargetList node; nil yields nil.
func (b *Builder) targetList(n *cst.Node) []statement.Target {
	if n == nil {
		return nil
	}
	var out []statement.Target
	for _, t := range n.ChildrenOf(cst.KindTargetElement) {
		nodes := t.Nodes()
		if len(nodes) == 0 {
			out = append(out, statement.Target{Star: true})
			continue
		}
		target := statement.Target{Expr: b.expr(nodes[0])}
		if len(nodes) > 1 {
			target.Alias = b.ident(nodes[1])
		}
		out = append(out, target)
	}
	return out
}

func (b *Builder) whereClause(n *cst.Node) statement.Expr {
	if n == nil {
		return nil
	}
	if n.HasKeyword("current") {
		return &statement.CurrentOfExpr{Cursor: b.ident(b.needKind(n, cst.KindColId))}
	}
	return b.expr(b.need(n, n.FirstNode()))
}

func (b *Builder) limitClause(n *cst.Node, s *statement.SelectStatement) {
	clause := ""
	for _, c := range n.Children {
		switch el := c.(type) {
		case *cst.Terminal:
			switch v := el.Token.Value; {
			case el.IsKeyword("limit"), el.IsKeyword("offset"):
				clause = v
			case el.IsKeyword("fetch"):
				clause = v
				s.Fetch = &statement.FetchClause{}
			case el.IsKeyword("all") && clause == "limit":
				s.LimitAll = true
			case el.IsKeyword("ties") && s.Fetch != nil:
				s.Fetch.WithTies = true
			}
		case *cst.Node:
			e := b.expr(el)
			switch clause {
			case "limit":
				s.Limit = e
			case "offset":
				s.Offset = e
			case "fetch":
				s.Fetch.Count = e
			}
		}
	}
}

func (b *Builder) lockingClause(n *cst.Node) statement.LockingClause {
	var (
		l        statement.LockingClause
		strength []string
	)
	for _, w := range words(n)[1:] {
		if w == "of" || w == "nowait" || w == "skip" {
			break
		}
		strength = append(strength, strings.ToUpper(w))
	}
	l.Strength = strings.Join(strength, " ")
	l.Of = b.qualifiedNames(n.ChildrenOf(cst.KindQualifiedName))
	switch {
	case n.HasKeyword("nowait"):
		l.Wait = "NOWAIT"
	case n.HasKeyword("skip"):
		l.Wait = "SKIP LOCKED"
	}
	return l
}

func (b *Builder) withClause(n *cst.Node) *statement.WithClause {
	if n == nil {
		return nil
	}
	w := &statement.WithClause{Recursive: n.HasKeyword("recursive")}
	for _, c := range n.ChildrenOf(cst.KindCommonTableExpr) {
		cte := statement.CommonTableExpr{
			Name:    b.ident(b.needKind(c, cst.KindColId)),
			Columns: b.columnList(c.Child(cst.KindColumnList)),
		}
		switch {
		case c.HasKeyword("not"):
			cte.Materialized = "NOT MATERIALIZED"
		case c.HasKeyword("materialized"):
			cte.Materialized = "MATERIALIZED"
		}
		nodes := c.Nodes()
		cte.Query = b.statement(nodes[len(nodes)-1])
		w.CTEs = append(w.CTEs, cte)
	}
	return w
}

// =============================================================================
// FROM items
// =============================================================================

// tableExprs reads the TableRef and JoinedTable children of a FROM or
// USING clause.
func (b *Builder) tableExprs(n *cst.Node) []statement.TableExpr {
	if n == nil {
		return nil
	}
	var out []statement.TableExpr
	for _, c := range n.Nodes() {
		out = append(out, b.tableExpr(c))
	}
	return out
}

func (b *Builder) tableExpr(n *cst.Node) statement.TableExpr {
	switch n.Kind {
	case cst.KindJoinedTable:
		return b.joinedTable(n)
	case cst.KindTableRef:
		return b.tableRef(n)
	}
	b.fail(n, "unexpected %s in FROM", n.Kind.RuleName())
	return nil
}

func (b *Builder) tableRef(n *cst.Node) statement.TableExpr {
	lateral := n.HasKeyword("lateral")
	alias := b.alias(n.Child(cst.KindAlias))
	primary := b.need(n, n.FirstNode())
	switch primary.Kind {
	case cst.KindSelectWithParens:
		return &statement.SubqueryRef{Lateral: lateral, Query: b.parenQuery(primary), Alias: alias}
	case cst.KindTableRef, cst.KindJoinedTable:
		return &statement.ParenTableRef{Table: b.tableExpr(primary), Alias: alias}
	case cst.KindFuncCall:
		return &statement.FunctionRef{
			Lateral:        lateral,
			Func:           build[*statement.FuncCall](b, primary),
			WithOrdinality: n.HasKeyword("ordinality"),
			Alias:          alias,
		}
	case cst.KindRelationExpr:
		ref := &statement.RelationRef{Relation: b.relation(primary), Alias: alias}
		if n.HasKeyword("tablesample") {
			ref.Sample = b.tableSample(n)
		}
		return ref
	}
	b.fail(primary, "unexpected table reference")
	return nil
}

func (b *Builder) tableSample(n *cst.Node) *statement.TableSample {
	s := &statement.TableSample{}
	repeatable := false
	for _, c := range n.Children[n.KeywordIndex("tablesample")+1:] {
		switch el := c.(type) {
		case *cst.Terminal:
			if el.IsKeyword("repeatable") {
				repeatable = true
			}
		case *cst.Node:
			switch {
			case el.Kind == cst.KindFuncName:
				s.Method = b.qualifiedName(el)
			case el.Kind == cst.KindAlias:
			case repeatable:
				s.Repeatable = b.expr(el)
			default:
				s.Args = append(s.Args, b.expr(el))
			}
		}
	}
	return s
}

func (b *Builder) joinedTable(n *cst.Node) *statement.JoinExpr {
	nodes := n.Nodes()
	if len(nodes) < 2 {
		b.fail(n, "join needs two sides")
	}
	j := &statement.JoinExpr{
		Type:    "INNER",
		Natural: n.HasKeyword("natural"),
		Left:    b.tableExpr(nodes[0]),
		Right:   b.tableExpr(nodes[1]),
	}
	switch {
	case n.HasKeyword("cross"):
		j.Type = "CROSS"
	case n.HasKeyword("left"):
		j.Type = "LEFT"
	case n.HasKeyword("right"):
		j.Type = "RIGHT"
	case n.HasKeyword("full"):
		j.Type = "FULL"
	}
	switch {
	case n.HasKeyword("on"):
		j.On = b.exprAfter(n, "on")
	case n.HasKeyword("using"):
		j.Using = b.columnList(n.Child(cst.KindColumnList))
		if a := n.Child(cst.KindAlias); a != nil {
			j.UsingAlias = b.ident(b.needKind(a, cst.KindColId))
		}
	}
	return j
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package format

import (
	"strconv"
	"strings"

	"github.com/AleutianAI/sqlfront/services/parser/statement"
)

// =============================================================================
// Types
// =============================================================================

func dataType(t *statement.DataType) string {
	var s string
	if t.Builtin != "" {
		s = builtinType(t)
	} else {
		s = name(t.Name) + modifiers(t.Modifiers)
	}
	for _, b := range t.ArrayBounds {
		if b < 0 {
			s += "[]"
		} else {
			s += "[" + strconv.Itoa(b) + "]"
		}
	}
	return join(when(t.Setof, "SETOF"), s)
}

func builtinType(t *statement.DataType) string {
	kw := strings.ToUpper(t.Builtin)
	mods := modifiers(t.Modifiers)
	switch t.Builtin {
	case statement.TypeTimestamp, statement.TypeTime:
		return join(kw+mods, when(t.TimeZone, "WITH TIME ZONE"))
	case statement.TypeInterval:
		switch {
		case t.IntervalFields == "":
			return kw + mods
		case strings.HasSuffix(t.IntervalFields, "SECOND"):
			return join(kw, t.IntervalFields+mods)
		}
		return join(kw+mods, t.IntervalFields)
	}
	return kw + mods
}

func modifiers(mods []statement.Expr) string {
	if len(mods) == 0 {
		return ""
	}
	return paren(list(mods, expr))
}

// =============================================================================
// Queries
// =============================================================================

func selectStatement(s *statement.SelectStatement) string {
	parts := []string{withClause(s.With), queryExpr(s.Body), prefix("ORDER BY", sortList(s.OrderBy))}
	switch {
	case s.LimitAll:
		parts = append(parts, "LIMIT ALL")
	case s.Limit != nil:
		parts = append(parts, "LIMIT "+expr(s.Limit))
	}
	parts = append(parts, prefix("OFFSET", optExpr(s.Offset)))
	if f := s.Fetch; f != nil {
		tail := "ONLY"
		if f.WithTies {
			tail = "WITH TIES"
		}
		parts = append(parts, join("FETCH FIRST", optExpr(f.Count), "ROWS", tail))
	}
	for _, l := range s.Locking {
		parts = append(parts, join("FOR", l.Strength, prefix("OF", names(l.Of)), l.Wait))
	}
	return join(parts...)
}

func queryExpr(q statement.QueryExpr) string {
	switch q := q.(type) {
	case *statement.SelectStatement:
		return paren(selectStatement(q))
	case *statement.SimpleSelect:
		return simpleSelect(q)
	case *statement.SetOperation:
		return join(queryExpr(q.Left), q.Op, when(q.All, "ALL"), queryExpr(q.Right))
	case *statement.ValuesQuery:
		return "VALUES " + list(q.Rows, func(row []statement.Expr) string {
			return paren(list(row, expr))
		})
	case *statement.TableQuery:
		return "TABLE " + relation(q.Relation)
	}
	fail(q)
	return ""
}

func simpleSelect(s *statement.SimpleSelect) string {
	distinct := when(s.Distinct, "DISTINCT")
	if len(s.DistinctOn) > 0 {
		distinct = "DISTINCT ON " + paren(list(s.DistinctOn, expr))
	}
	group := ""
	if len(s.GroupBy) > 0 {
		group = join("GROUP BY", when(s.GroupByDistinct, "DISTINCT"), list(s.GroupBy, expr))
	}
	return join(
		"SELECT",
		distinct,
		targets(s.Targets),
		prefix("FROM", list(s.From, tableExpr)),
		prefix("WHERE", optExpr(s.Where)),
		group,
		prefix("HAVING", optExpr(s.Having)),
		prefix("WINDOW", list(s.Windows, func(w statement.WindowDef) string {
			return ident(w.Name) + " AS " + windowSpec(w.Spec)
		})),
	)
}

func target(t statement.Target) string {
	if t.Star {
		return "*"
	}
	if t.Alias.IsZero() {
		return expr(t.Expr)
	}
	return expr(t.Expr) + " AS " + ident(t.Alias)
}

func targets(ts []statement.Target) string { return list(ts, target) }

func withClause(w *statement.WithClause) string {
	if w == nil {
		return ""
	}
	return join("WITH", when(w.Recursive, "RECURSIVE"), list(w.CTEs, func(c statement.CommonTableExpr) string {
		return join(ident(c.Name), columns(c.Columns), "AS", c.Materialized, paren(statementText(c.Query)))
	}))
}

// =============================================================================
// FROM items
// =============================================================================

func relation(r statement.Relation) string {
	n := name(r.Name)
	if r.Star {
		n += " *"
	}
	return join(when(r.Only, "ONLY"), n)
}

func alias(a *statement.Alias) string {
	if a == nil {
		return ""
	}
	return join("AS", ident(a.Name), columns(a.Columns))
}

func relationRef(r statement.RelationRef) string {
	sample := ""
	if s := r.Sample; s != nil {
		sample = join("TABLESAMPLE", name(s.Method)+paren(list(s.Args, expr)),
			prefix("REPEATABLE", parenExpr(s.Repeatable)))
	}
	return join(relation(r.Relation), alias(r.Alias), sample)
}

func tableExpr(t statement.TableExpr) string {
	switch t := t.(type) {
	case *statement.RelationRef:
		return relationRef(*t)
	case *statement.SubqueryRef:
		return join(when(t.Lateral, "LATERAL"), paren(selectStatement(t.Query)), alias(t.Alias))
	case *statement.FunctionRef:
		return join(when(t.Lateral, "LATERAL"), funcCall(t.Func), when(t.WithOrdinality, "WITH ORDINALITY"), alias(t.Alias))
	case *statement.JoinExpr:
		return joinExpr(t)
	case *statement.ParenTableRef:
		return join(paren(tableExpr(t.Table)), alias(t.Alias))
	}
	fail(t)
	return ""
}

func joinExpr(j *statement.JoinExpr) string {
	if j.Type == "CROSS" {
		return join(tableExpr(j.Left), "CROSS JOIN", tableExpr(j.Right))
	}
	kind := j.Type
	if kind == "INNER" {
		kind = ""
	}
	qual := prefix("ON", optExpr(j.On))
	if len(j.Using) > 0 {
		qual = join("USING", columns(j.Using), prefix("AS", when(!j.UsingAlias.IsZero(), ident(j.UsingAlias))))
	}
	return join(tableExpr(j.Left), when(j.Natural, "NATURAL"), kind, "JOIN", tableExpr(j.Right), qual)
}

// =============================================================================
// DML
// =============================================================================

func insert(s *statement.Insert) string {
	source := "DEFAULT VALUES"
	if s.Query != nil {
		source = selectStatement(s.Query)
	}
	return join(
		withClause(s.With),
		"INSERT INTO",
		name(s.Table),
		prefix("AS", when(!s.Alias.IsZero(), ident(s.Alias))),
		columns(s.Columns),
		when(s.Overriding != "", "OVERRIDING "+s.Overriding+" VALUE"),
		source,
		onConflict(s.OnConflict),
		prefix("RETURNING", targets(s.Returning)),
	)
}

func onConflict(oc *statement.OnConflict) string {
	if oc == nil {
		return ""
	}
	target := ""
	if t := oc.Target; t != nil {
		if !t.Constraint.IsZero() {
			target = "ON CONSTRAINT " + ident(t.Constraint)
		} else {
			target = join(paren(list(t.Columns, indexElement)), prefix("WHERE", optExpr(t.Where)))
		}
	}
	action := "DO NOTHING"
	if !oc.DoNothing {
		action = join("DO UPDATE SET", setClauses(oc.Set), prefix("WHERE", optExpr(oc.Where)))
	}
	return join("ON CONFLICT", target, action)
}

func setClauses(sets []statement.SetClause) string {
	return list(sets, func(c statement.SetClause) string {
		lhs := dotted(c.Target)
		if len(c.Tuple) > 0 {
			lhs = columns(c.Tuple)
		}
		return lhs + " = " + expr(c.Value)
	})
}

func update(s *statement.Update) string {
	return join(
		withClause(s.With),
		"UPDATE",
		relationRef(s.Table),
		"SET",
		setClauses(s.Set),
		prefix("FROM", list(s.From, tableExpr)),
		prefix("WHERE", optExpr(s.Where)),
		prefix("RETURNING", targets(s.Returning)),
	)
}

func deleteStmt(s *statement.Delete) string {
	return join(
		withClause(s.With),
		"DELETE FROM",
		relationRef(s.Table),
		prefix("USING", list(s.Using, tableExpr)),
		prefix("WHERE", optExpr(s.Where)),
		prefix("RETURNING", targets(s.Returning)),
	)
}

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

func expr(e statement.Expr) string {
	switch e := e.(type) {
	case *statement.ColumnRef:
		s := dotted(e.Parts)
		if e.Star {
			if s == "" {
				return "*"
			}
			return s + ".*"
		}
		return s
	case *statement.ParamRef:
		return "$" + strconv.Itoa(e.Number)
	case *statement.IntegerLiteral:
		return strconv.FormatInt(e.Value, 10)
	case *statement.NumericLiteral:
		return e.Value
	case *statement.StringLiteral:
		return quote(e.Value)
	case *statement.BitStringLiteral:
		return "B'" + e.Bits + "'"
	case *statement.BoolLiteral:
		if e.Value {
			return "TRUE"
		}
		return "FALSE"
	case *statement.NullLiteral:
		return "NULL"
	case *statement.TypedLiteral:
		return dataType(e.Type) + " " + quote(e.Value)
	case *statement.IntervalLiteral:
		return intervalLiteral(e)
	case *statement.Word:
		return ident(e.Name)
	case *statement.DefaultExpr:
		return "DEFAULT"
	case *statement.UnaryExpr:
		return unary(e)
	case *statement.BinaryExpr:
		return join(expr(e.Left), e.Op, expr(e.Right))
	case *statement.IsExpr:
		return join(expr(e.Expr), "IS", when(e.Not, "NOT"), e.Test, optExpr(e.From))
	case *statement.LikeExpr:
		return join(expr(e.Expr), when(e.Not, "NOT"), e.Op, expr(e.Pattern), prefix("ESCAPE", optExpr(e.Escape)))
	case *statement.BetweenExpr:
		return join(expr(e.Expr), when(e.Not, "NOT"), "BETWEEN", when(e.Symmetric, "SYMMETRIC"),
			expr(e.Low), "AND", expr(e.High))
	case *statement.InExpr:
		rhs := list(e.List, expr)
		if e.Query != nil {
			rhs = selectStatement(e.Query)
		}
		return join(expr(e.Expr), when(e.Not, "NOT"), "IN", paren(rhs))
	case *statement.QuantifiedExpr:
		rhs := optExpr(e.Right)
		if e.Query != nil {
			rhs = selectStatement(e.Query)
		}
		return join(expr(e.Left), e.Op, e.Quantifier, paren(rhs))
	case *statement.AtTimeZoneExpr:
		return join(expr(e.Expr), "AT TIME ZONE", expr(e.Zone))
	case *statement.CollateExpr:
		return join(expr(e.Expr), "COLLATE", name(e.Collation))
	case *statement.TypecastExpr:
		return expr(e.Expr) + "::" + dataType(e.Type)
	case *statement.SubscriptExpr:
		idx := optExpr(e.Lower)
		if e.Slice {
			idx += ":" + optExpr(e.Upper)
		}
		return expr(e.Expr) + "[" + idx + "]"
	case *statement.FieldExpr:
		if e.Star {
			return expr(e.Expr) + ".*"
		}
		return expr(e.Expr) + "." + ident(e.Field)
	case *statement.ParenExpr:
		return paren(expr(e.Expr))
	case *statement.RowExpr:
		return when(e.Explicit, "ROW") + paren(list(e.Exprs, expr))
	case *statement.SubqueryExpr:
		return paren(selectStatement(e.Query))
	case *statement.ExistsExpr:
		return "EXISTS " + paren(selectStatement(e.Query))
	case *statement.ArrayExpr:
		if e.Query != nil {
			return "ARRAY" + paren(selectStatement(e.Query))
		}
		return "ARRAY[" + list(e.Elements, expr) + "]"
	case *statement.CaseExpr:
		return caseExpr(e)
	case *statement.CastExpr:
		return "CAST(" + expr(e.Expr) + " AS " + dataType(e.Type) + ")"
	case *statement.ExtractExpr:
		return "EXTRACT(" + word(e.Field) + " FROM " + expr(e.From) + ")"
	case *statement.SQLValueFunction:
		if e.Precision >= 0 {
			return e.Name + paren(strconv.Itoa(e.Precision))
		}
		return e.Name
	case *statement.SpecialFuncExpr:
		return specialFunc(e)
	case *statement.FuncCall:
		return funcCall(e)
	case *statement.GroupingSet:
		return groupingSet(e)
	case *statement.CurrentOfExpr:
		return "CURRENT OF " + ident(e.Cursor)
	}
	fail(e)
	return ""
}

// optExpr renders e, or "" when it is nil.
func optExpr(e statement.Expr) string {
	if e == nil {
		return ""
	}
	return expr(e)
}

// parenExpr renders an expression in a position where the grammar wraps
// it in parentheses of its own, such as CHECK (...).
func parenExpr(e statement.Expr) string {
	if e == nil {
		return ""
	}
	return paren(expr(e))
}

// elementExpr renders an index or partition key expression. Function
// calls stand alone there; anything else needs parentheses.
func elementExpr(e statement.Expr) string {
	if _, ok := e.(*statement.FuncCall); ok {
		return expr(e)
	}
	return parenExpr(e)
}

func unary(e *statement.UnaryExpr) string {
	operand := expr(e.Operand)
	if e.Op == "NOT" {
		return "NOT " + operand
	}
	// Adjacent operator characters would lex as one operator, and "--"
	// as a comment.
	if operand != "" && strings.ContainsRune(opChars, rune(operand[0])) {
		return e.Op + " " + operand
	}
	return e.Op + operand
}

const opChars = "+-*/<>=~!@#%^&|`?"

func intervalLiteral(e *statement.IntervalLiteral) string {
	value := quote(e.Value)
	switch {
	case e.Precision < 0:
		return join("INTERVAL", value, e.Fields)
	case e.Fields == "" || !strings.HasSuffix(e.Fields, "SECOND"):
		return join("INTERVAL"+paren(strconv.Itoa(e.Precision)), value, e.Fields)
	}
	return join("INTERVAL", value, e.Fields+paren(strconv.Itoa(e.Precision)))
}

func caseExpr(e *statement.CaseExpr) string {
	parts := []string{"CASE", optExpr(e.Operand)}
	for _, w := range e.Whens {
		parts = append(parts, "WHEN", expr(w.Condition), "THEN", expr(w.Result))
	}
	parts = append(parts, prefix("ELSE", optExpr(e.Else)), "END")
	return join(parts...)
}

func specialFunc(e *statement.SpecialFuncExpr) string {
	var sb strings.Builder
	sb.WriteString(e.Name)
	sb.WriteByte('(')
	for i, a := range e.Args {
		switch {
		case a.Keyword != "" && i > 0:
			sb.WriteString(" " + a.Keyword + " ")
		case a.Keyword != "":
			sb.WriteString(a.Keyword + " ")
		case i > 0:
			sb.WriteString(", ")
		}
		sb.WriteString(expr(a.Value))
	}
	sb.WriteByte(')')
	return sb.String()
}

func funcCall(f *statement.FuncCall) string {
	var args string
	switch {
	case f.Star:
		args = "*"
	default:
		args = list(f.Args, funcArg)
	}
	inner := join(when(f.Distinct, "DISTINCT"), args, prefix("ORDER BY", sortList(f.OrderBy)))
	return join(
		name(f.Name)+paren(inner),
		prefix("WITHIN GROUP", when(len(f.WithinGroup) > 0, paren("ORDER BY "+sortList(f.WithinGroup)))),
		prefix("FILTER", when(f.Filter != nil, paren("WHERE "+optExpr(f.Filter)))),
		prefix("OVER", over(f.Over)),
	)
}

func funcArg(a statement.FuncArg) string {
	v := join(when(a.Variadic, "VARIADIC"), expr(a.Value))
	if !a.Name.IsZero() {
		return ident(a.Name) + " => " + v
	}
	return v
}

func over(w *statement.WindowSpec) string {
	if w == nil {
		return ""
	}
	if !w.Parenthesized {
		return ident(w.Ref)
	}
	return windowSpec(*w)
}

func windowSpec(w statement.WindowSpec) string {
	ref := ""
	if !w.Ref.IsZero() {
		ref = ident(w.Ref)
	}
	return paren(join(
		ref,
		prefix("PARTITION BY", list(w.PartitionBy, expr)),
		prefix("ORDER BY", sortList(w.OrderBy)),
		frame(w.Frame),
	))
}

func frame(f *statement.WindowFrame) string {
	if f == nil {
		return ""
	}
	bounds := frameBound(f.Start)
	if f.End != nil {
		bounds = join("BETWEEN", bounds, "AND", frameBound(*f.End))
	}
	return join(f.Mode, bounds, prefix("EXCLUDE", f.Exclude))
}

func frameBound(b statement.FrameBound) string {
	switch b.Type {
	case statement.FramePreceding, statement.FrameFollowing:
		return join(optExpr(b.Offset), b.Type)
	}
	return b.Type
}

func sortBy(s statement.SortBy) string {
	return join(expr(s.Expr), s.Direction, prefix("USING", s.UsingOp), prefix("NULLS", s.Nulls))
}

func sortList(items []statement.SortBy) string { return list(items, sortBy) }

func groupingSet(g *statement.GroupingSet) string {
	items := paren(list(g.Items, expr))
	switch g.Type {
	case "ROLLUP", "CUBE":
		return g.Type + items
	case "SETS":
		return "GROUPING SETS" + items
	}
	return "()"
}

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
	"fmt"
	"strconv"
	"strings"

	"github.com/AleutianAI/sqlfront/services/parser/cst"
	"github.com/AleutianAI/sqlfront/services/parser/lexer"
	"github.com/AleutianAI/sqlfront/services/parser/statement"
)

// =============================================================================
// Operators
// =============================================================================

// opText returns the canonical spelling of an operator terminal.
func opText(t *cst.Terminal) string {
	switch t.Token.Kind {
	case lexer.Ident:
		return strings.ToUpper(t.Token.Value)
	case lexer.NotEquals:
		return "<>"
	}
	return t.Token.Text
}

// firstOp returns the first terminal child of n.
func (b *Builder) firstOp(n *cst.Node) *cst.Terminal {
	ts := n.Terminals()
	if len(ts) == 0 {
		b.fail(n, "missing operator")
	}
	return ts[0]
}

func (b *Builder) VisitUnaryExpr(n *cst.Node) any {
	return &statement.UnaryExpr{
		Op:      opText(b.firstOp(n)),
		Operand: b.expr(b.need(n, n.FirstNode())),
	}
}

func (b *Builder) VisitBinaryExpr(n *cst.Node) any {
	nodes := n.Nodes()
	if len(nodes) != 2 {
		b.fail(n, "binary operator needs two operands")
	}
	return &statement.BinaryExpr{
		Op:    opText(b.firstOp(n)),
		Left:  b.expr(nodes[0]),
		Right: b.expr(nodes[1]),
	}
}

func (b *Builder) VisitIsExpr(n *cst.Node) any {
	e := &statement.IsExpr{Expr: b.expr(b.need(n, n.FirstNode()))}
	ws := words(n)
	switch {
	case len(ws) == 1 && ws[0] == "isnull":
		e.Test = "NULL"
	case len(ws) == 1 && ws[0] == "notnull":
		e.Not, e.Test = true, "NULL"
	default:
		e.Not = n.HasKeyword("not")
		last := ws[len(ws)-1]
		if last == "from" {
			e.Test = "DISTINCT FROM"
			nodes := n.Nodes()
			e.From = b.expr(b.need(n, nodes[len(nodes)-1]))
		} else {
			e.Test = strings.ToUpper(last)
		}
	}
	return e
}

func (b *Builder) VisitLikeExpr(n *cst.Node) any {
	nodes := n.Nodes()
	if len(nodes) < 2 {
		b.fail(n, "pattern match needs a pattern")
	}
	e := &statement.LikeExpr{
		Expr:    b.expr(nodes[0]),
		Not:     n.HasKeyword("not"),
		Pattern: b.expr(nodes[1]),
	}
	switch {
	case n.HasKeyword("similar"):
		e.Op = "SIMILAR TO"
	case n.HasKeyword("ilike"):
		e.Op = "ILIKE"
	default:
		e.Op = "LIKE"
	}
	if len(nodes) > 2 {
		e.Escape = b.expr(nodes[2])
	}
	return e
}

func (b *Builder) VisitBetweenExpr(n *cst.Node) any {
	nodes := n.Nodes()
	if len(nodes) != 3 {
		b.fail(n, "BETWEEN needs two bounds")
	}
	return &statement.BetweenExpr{
		Expr:      b.expr(nodes[0]),
		Not:       n.HasKeyword("not"),
		Symmetric: n.HasKeyword("symmetric"),
		Low:       b.expr(nodes[1]),
		High:      b.expr(nodes[2]),
	}
}

func (b *Builder) VisitInExpr(n *cst.Node) any {
	nodes := n.Nodes()
	if len(nodes) < 2 {
		b.fail(n, "IN needs a list")
	}
	e := &statement.InExpr{Expr: b.expr(nodes[0]), Not: n.HasKeyword("not")}
	if nodes[1].Kind == cst.KindSelectStatement {
		e.Query = b.selectStatement(nodes[1])
		return e
	}
	e.List = b.exprs(nodes[1:])
	return e
}

func (b *Builder) VisitQuantifiedExpr(n *cst.Node) any {
	nodes := n.Nodes()
	if len(nodes) != 2 {
		b.fail(n, "quantified comparison needs two operands")
	}
	e := &statement.QuantifiedExpr{Left: b.expr(nodes[0]), Op: opText(b.firstOp(n))}
	switch q := n.Terminals()[1].Token.Value; q {
	case "some":
		e.Quantifier = "ANY"
	default:
		e.Quantifier = strings.ToUpper(q)
	}
	if nodes[1].Kind == cst.KindSelectStatement {
		e.Query = b.selectStatement(nodes[1])
	} else {
		e.Right = b.expr(nodes[1])
	}
	return e
}

func (b *Builder) VisitAtTimeZoneExpr(n *cst.Node) any {
	nodes := n.Nodes()
	if len(nodes) != 2 {
		b.fail(n, "AT TIME ZONE needs a zone")
	}
	return &statement.AtTimeZoneExpr{Expr: b.expr(nodes[0]), Zone: b.expr(nodes[1])}
}

func (b *Builder) VisitCollateExpr(n *cst.Node) any {
	return &statement.CollateExpr{
		Expr:      b.expr(b.need(n, n.FirstNode())),
		Collation: b.qualifiedName(b.needKind(n, cst.KindQualifiedName)),
	}
}

func (b *Builder) VisitTypecastExpr(n *cst.Node) any {
	return &statement.TypecastExpr{
		Expr: b.expr(b.need(n, n.FirstNode())),
		Type: b.dataType(b.needKind(n, cst.KindTypeName)),
	}
}

// VisitIndirectionExpr builds subscripts, slices and field selections.
func (b *Builder) VisitIndirectionExpr(n *cst.Node) any {
	base := b.expr(b.need(n, n.FirstNode()))
	if n.TerminalOf(lexer.LBracket) == nil {
		if n.TerminalOf(lexer.Star) != nil {
			return &statement.FieldExpr{Expr: base, Star: true}
		}
		return &statement.FieldExpr{Expr: base, Field: b.ident(b.needKind(n, cst.KindColLabel))}
	}
	e := &statement.SubscriptExpr{Expr: base}
	for _, c := range n.Children[1:] {
		switch el := c.(type) {
		case *cst.Terminal:
			if el.Token.Kind == lexer.Colon {
				e.Slice = true
			}
		case *cst.Node:
			if e.Slice {
				e.Upper = b.expr(el)
			} else {
				e.Lower = b.expr(el)
			}
		}
	}
	return e
}

// =============================================================================
// References and literals
// =============================================================================

func (b *Builder) VisitColumnRef(n *cst.Node) any {
	return &statement.ColumnRef{
		Parts: b.parts(n),
		Star:  n.TerminalOf(lexer.Star) != nil,
	}
}

func (b *Builder) VisitParamRef(n *cst.Node) any {
	t := b.firstOp(n)
	num, err := strconv.Atoi(t.Token.Value)
	if err != nil {
		b.fail(n, "bad parameter number %q", t.Token.Text)
	}
	return &statement.ParamRef{Number: num}
}

func (b *Builder) VisitConstant(n *cst.Node) any {
	t := b.firstOp(n)
	v := t.Token.Value
	switch t.Token.Kind {
	case lexer.Integer:
		return integerLiteral(v)
	case lexer.Decimal:
		return &statement.NumericLiteral{Value: v}
	case lexer.String, lexer.EscapeString, lexer.DollarString:
		return &statement.StringLiteral{Value: v}
	case lexer.BitString:
		return &statement.BitStringLiteral{Bits: v}
	case lexer.HexString:
		return &statement.BitStringLiteral{Bits: hexToBits(v)}
	case lexer.Ident:
		switch v {
		case "true":
			return &statement.BoolLiteral{Value: true}
		case "false":
			return &statement.BoolLiteral{Value: false}
		case "null":
			return &statement.NullLiteral{}
		}
	}
	b.fail(n, "unexpected constant %s", t.Token)
	return nil
}

// VisitSignedNumber folds the sign into the literal.
func (b *Builder) VisitSignedNumber(n *cst.Node) any {
	ts := n.Terminals()
	num := ts[len(ts)-1]
	sign := ""
	if ts[0].Token.Kind == lexer.Minus {
		sign = "-"
	}
	if num.Token.Kind == lexer.Integer {
		return integerLiteral(sign + num.Token.Value)
	}
	return &statement.NumericLiteral{Value: sign + num.Token.Value}
}

// integerLiteral decodes an integer lexeme, falling back to a
// NumericLiteral when it does not fit in int64.
func integerLiteral(v string) statement.Expr {
	digits := strings.TrimPrefix(v, "-")
	base := 10
	if len(digits) > 1 && digits[0] == '0' && strings.ContainsRune("xXoObB", rune(digits[1])) {
		base = 0
	}
	i, err := strconv.ParseInt(v, base, 64)
	if err != nil {
		return &statement.NumericLiteral{Value: v}
	}
	return &statement.IntegerLiteral{Value: i}
}

func hexToBits(hex string) string {
	var sb strings.Builder
	for _, c := range hex {
		d, err := strconv.ParseUint(string(c), 16, 8)
		if err != nil {
			continue
		}
		fmt.Fprintf(&sb, "%04b", d)
	}
	return sb.String()
}

// VisitTypedLiteral builds type 'string' and interval literals.
func (b *Builder) VisitTypedLiteral(n *cst.Node) any {
	tn := b.needKind(n, cst.KindTypeName)
	value := b.stringConst(b.needKind(n, cst.KindConstant))
	if it := tn.Child(cst.KindIntervalType); it != nil {
		lit := &statement.IntervalLiteral{Value: value, Precision: -1}
		if p := it.TerminalOf(lexer.Integer); p != nil {
			lit.Precision = b.smallInt(it, p)
		}
		if q := n.Child(cst.KindIntervalQualifier); q != nil {
			lit.Fields = strings.ToUpper(q.Keywords())
			if p := q.TerminalOf(lexer.Integer); p != nil {
				lit.Precision = b.smallInt(q, p)
			}
		}
		return lit
	}
	return &statement.TypedLiteral{Type: b.dataType(tn), Value: value}
}

// stringConst returns the decoded value of a string Constant.
func (b *Builder) stringConst(n *cst.Node) string {
	t := b.firstOp(n)
	if !t.Token.Kind.IsStringConstant() {
		b.fail(n, "expected a string constant")
	}
	return t.Token.Value
}

func (b *Builder) smallInt(n *cst.Node, t *cst.Terminal) int {
	v, err := strconv.Atoi(t.Token.Value)
	if err != nil {
		b.fail(n, "bad integer %q", t.Token.Text)
	}
	return v
}

// =============================================================================
// Grouping and subqueries
// =============================================================================

func (b *Builder) VisitParenExpr(n *cst.Node) any {
	return &statement.ParenExpr{Expr: b.expr(b.need(n, n.FirstNode()))}
}

func (b *Builder) VisitRowExpr(n *cst.Node) any {
	return &statement.RowExpr{
		Exprs:    b.exprs(n.Nodes()),
		Explicit: n.HasKeyword("row"),
	}
}

func (b *Builder) VisitSubqueryExpr(n *cst.Node) any {
	return &statement.SubqueryExpr{Query: b.parenQuery(b.needKind(n, cst.KindSelectWithParens))}
}

func (b *Builder) VisitExistsExpr(n *cst.Node) any {
	return &statement.ExistsExpr{Query: b.parenQuery(b.needKind(n, cst.KindSelectWithParens))}
}

func (b *Builder) VisitArrayExpr(n *cst.Node) any {
	if sp := n.Child(cst.KindSelectWithParens); sp != nil {
		return &statement.ArrayExpr{Query: b.parenQuery(sp)}
	}
	return &statement.ArrayExpr{Elements: b.exprs(n.Nodes())}
}

func (b *Builder) VisitCaseExpr(n *cst.Node) any {
	e := &statement.CaseExpr{}
	seenWhen, seenElse := false, false
	for _, c := range n.Children {
		switch el := c.(type) {
		case *cst.Terminal:
			if el.IsKeyword("else") {
				seenElse = true
			}
		case *cst.Node:
			switch {
			case el.Kind == cst.KindWhenClause:
				seenWhen = true
				nodes := el.Nodes()
				if len(nodes) != 2 {
					b.fail(el, "WHEN needs a condition and a result")
				}
				e.Whens = append(e.Whens, statement.WhenClause{
					Condition: b.expr(nodes[0]),
					Result:    b.expr(nodes[1]),
				})
			case seenElse:
				e.Else = b.expr(el)
			case !seenWhen:
				e.Operand = b.expr(el)
			}
		}
	}
	if len(e.Whens) == 0 {
		b.fail(n, "CASE needs at least one WHEN")
	}
	return e
}

// =============================================================================
// Function forms
// =============================================================================

// VisitCommonFuncExpr builds the keyword-named SQL functions.
func (b *Builder) VisitCommonFuncExpr(n *cst.Node) any {
	name := b.firstOp(n).Token.Value
	switch name {
	case "current_time", "current_timestamp", "localtime", "localtimestamp",
		"current_date", "current_role", "current_user", "session_user",
		"system_user", "user", "current_catalog", "current_schema":
		f := &statement.SQLValueFunction{Name: strings.ToUpper(name), Precision: -1}
		if p := n.TerminalOf(lexer.Integer); p != nil {
			f.Precision = b.smallInt(n, p)
		}
		return f
	case "cast":
		return &statement.CastExpr{
			Expr: b.expr(b.need(n, n.FirstNode())),
			Type: b.dataType(b.needKind(n, cst.KindTypeName)),
		}
	case "extract":
		e := &statement.ExtractExpr{From: b.exprAfter(n, "from")}
		field := b.need(n, n.FirstNode())
		if field.Kind == cst.KindConstant {
			e.Field = b.stringConst(field)
		} else {
			e.Field = b.ident(field).Value
		}
		return e
	}

	f := &statement.SpecialFuncExpr{Name: strings.ToUpper(name)}
	var pending []string
	for _, c := range n.Children[1:] {
		switch el := c.(type) {
		case *cst.Terminal:
			switch el.Token.Kind {
			case lexer.Ident:
				pending = append(pending, strings.ToUpper(el.Token.Value))
			case lexer.Comma:
				pending = nil
			}
		case *cst.Node:
			f.Args = append(f.Args, statement.SpecialArg{
				Keyword: strings.Join(pending, " "),
				Value:   b.expr(el),
			})
			pending = nil
		}
	}
	return f
}

func (b *Builder) VisitFuncCall(n *cst.Node) any {
	f := &statement.FuncCall{Name: b.qualifiedName(b.needKind(n, cst.KindFuncName))}
	within := n.KeywordIndex("within")
	variadic := false
	for i, c := range n.Children {
		switch el := c.(type) {
		case *cst.Terminal:
			switch {
			case el.Token.Kind == lexer.Star:
				f.Star = true
			case el.IsKeyword("distinct"):
				f.Distinct = true
			case el.IsKeyword("variadic"):
				variadic = true
			}
		case *cst.Node:
			switch el.Kind {
			case cst.KindFuncArg:
				f.Args = append(f.Args, b.funcArg(el))
			case cst.KindSortClause:
				if within >= 0 && i > within {
					f.WithinGroup = b.sortClause(el)
				} else {
					f.OrderBy = b.sortClause(el)
				}
			case cst.KindFilterClause:
				f.Filter = b.exprAfter(el, "where")
			case cst.KindOverClause:
				f.Over = b.overClause(el)
			}
		}
	}
	if variadic && len(f.Args) > 0 {
		f.Args[0].Variadic = true
	}
	return f
}

func (b *Builder) funcArg(n *cst.Node) statement.FuncArg {
	nodes := n.Nodes()
	if len(nodes) == 0 {
		b.fail(n, "empty argument")
	}
	a := statement.FuncArg{
		Value:    b.expr(nodes[len(nodes)-1]),
		Variadic: n.HasKeyword("variadic"),
	}
	if len(nodes) > 1 && nodes[0].Kind == cst.KindColLabel {
		a.Name = b.ident(nodes[0])
	}
	return a
}

func (b *Builder) overClause(n *cst.Node) *statement.WindowSpec {
	if ws := n.Child(cst.KindWindowSpecification); ws != nil {
		spec := b.windowSpec(ws)
		return &spec
	}
	return &statement.WindowSpec{Ref: b.ident(b.needKind(n, cst.KindColId))}
}

func (b *Builder) windowSpec(n *cst.Node) statement.WindowSpec {
	spec := statement.WindowSpec{Parenthesized: true}
	for _, c := range n.Nodes() {
		switch c.Kind {
		case cst.KindColId:
			spec.Ref = b.ident(c)
		case cst.KindWindowPartition:
			spec.PartitionBy = b.exprs(c.Nodes())
		case cst.KindSortClause:
			spec.OrderBy = b.sortClause(c)
		case cst.KindFrameClause:
			spec.Frame = b.frameClause(c)
		}
	}
	return spec
}

func (b *Builder) frameClause(n *cst.Node) *statement.WindowFrame {
	f := &statement.WindowFrame{Mode: strings.ToUpper(n.FirstKeyword())}
	bounds := n.ChildrenOf(cst.KindFrameBound)
	if len(bounds) == 0 {
		b.fail(n, "frame needs a bound")
	}
	f.Start = b.frameBound(bounds[0])
	if len(bounds) > 1 {
		end := b.frameBound(bounds[1])
		f.End = &end
	}
	if i := n.KeywordIndex("exclude"); i >= 0 {
		var ex []string
		for _, c := range n.Children[i+1:] {
			if t, ok := c.(*cst.Terminal); ok {
				ex = append(ex, strings.ToUpper(t.Token.Value))
			}
		}
		f.Exclude = strings.Join(ex, " ")
	}
	return f
}

func (b *Builder) frameBound(n *cst.Node) statement.FrameBound {
	switch n.Keywords() {
	case "unbounded preceding":
		return statement.FrameBound{Type: statement.FrameUnboundedPreceding}
	case "unbounded following":
		return statement.FrameBound{Type: statement.FrameUnboundedFollowing}
	case "current row":
		return statement.FrameBound{Type: statement.FrameCurrentRow}
	}
	fb := statement.FrameBound{Offset: b.expr(b.need(n, n.FirstNode()))}
	if n.HasKeyword("following") {
		fb.Type = statement.FrameFollowing
	} else {
		fb.Type = statement.FramePreceding
	}
	return fb
}

// sortClause reads ORDER BY items; nil yields nil.
func (b *Builder) sortClause(n *cst.Node) []statement.SortBy {
	if n == nil {
		return nil
	}
	var out []statement.SortBy
	for _, s := range n.ChildrenOf(cst.KindSortBy) {
		out = append(out, b.sortBy(s))
	}
	return out
}

func (b *Builder) sortBy(n *cst.Node) statement.SortBy {
	s := statement.SortBy{Expr: b.expr(b.need(n, n.FirstNode()))}
	switch {
	case n.HasKeyword("asc"):
		s.Direction = "ASC"
	case n.HasKeyword("desc"):
		s.Direction = "DESC"
	case n.HasKeyword("using"):
		t := n.TerminalAfter("using")
		if t == nil {
			b.fail(n, "USING needs an operator")
		}
		s.UsingOp = opText(t)
	}
	if w := wordAfter(n, "nulls"); w != "" {
		s.Nulls = strings.ToUpper(w)
	}
	return s
}

// VisitSetToDefault builds the DEFAULT placeholder.
func (b *Builder) VisitSetToDefault(*cst.Node) any {
	return &statement.DefaultExpr{}
}

// VisitGroupingSet builds (), ROLLUP, CUBE and GROUPING SETS.
func (b *Builder) VisitGroupingSet(n *cst.Node) any {
	g := &statement.GroupingSet{Items: b.exprs(n.Nodes())}
	switch n.FirstKeyword() {
	case "rollup":
		g.Type = "ROLLUP"
	case "cube":
		g.Type = "CUBE"
	case "grouping":
		g.Type = "SETS"
	default:
		g.Type = "EMPTY"
	}
	return g
}

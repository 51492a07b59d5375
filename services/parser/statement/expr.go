// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package statement

// Expr is a value expression.
type Expr interface {
	exprNode()
}

// =============================================================================
// References and literals
// =============================================================================

// ColumnRef is a possibly qualified column reference; Star marks a trailing
// ".*".
type ColumnRef struct {
	Parts []Identifier
	Star  bool
}

// ParamRef is a positional parameter $Number.
type ParamRef struct {
	Number int
}

// IntegerLiteral is an integer constant that fits in int64. Hexadecimal,
// octal and binary spellings are converted.
type IntegerLiteral struct {
	Value int64
}

// NumericLiteral is any other numeric constant, kept as its source digits
// with underscores removed.
type NumericLiteral struct {
	Value string
}

// StringLiteral is a character string constant after unescaping.
type StringLiteral struct {
	Value string
}

// BitStringLiteral is a bit string constant. Hexadecimal constants are
// converted to bits, four per digit.
type BitStringLiteral struct {
	Bits string
}

// BoolLiteral is TRUE or FALSE.
type BoolLiteral struct {
	Value bool
}

// NullLiteral is NULL.
type NullLiteral struct{}

// TypedLiteral is type 'string', e.g. DATE '2024-01-01'.
type TypedLiteral struct {
	Type  *DataType
	Value string
}

// IntervalLiteral is INTERVAL 'value' [fields]. Fields is upper case, e.g.
// "DAY TO SECOND", or empty. Precision is -1 when not given.
type IntervalLiteral struct {
	Value     string
	Fields    string
	Precision int
}

// Word is a bare word used as a value, e.g. an option value such as
// fillfactor = on.
type Word struct {
	Name Identifier
}

// DefaultExpr is the DEFAULT placeholder in VALUES and SET.
type DefaultExpr struct{}

// =============================================================================
// Operators
// =============================================================================

// UnaryExpr is a prefix operator. Op is "NOT", "-", "+" or an operator
// lexeme such as "~".
type UnaryExpr struct {
	Op      string
	Operand Expr
}

// BinaryExpr is an infix operator. Op is "AND", "OR" or the operator lexeme;
// "!=" is normalized to "<>".
type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
}

// IsExpr is expr IS [NOT] test. Test is one of "NULL", "TRUE", "FALSE",
// "UNKNOWN", "DOCUMENT" or "DISTINCT FROM", the last with From set.
// ISNULL and NOTNULL are normalized to IS [NOT] NULL.
type IsExpr struct {
	Expr Expr
	Not  bool
	Test string
	From Expr
}

// LikeExpr is expr [NOT] LIKE|ILIKE|SIMILAR TO pattern [ESCAPE escape].
type LikeExpr struct {
	Expr    Expr
	Not     bool
	Op      string
	Pattern Expr
	Escape  Expr
}

// BetweenExpr is expr [NOT] BETWEEN [SYMMETRIC] low AND high. ASYMMETRIC is
// the default and is not recorded.
type BetweenExpr struct {
	Expr      Expr
	Not       bool
	Symmetric bool
	Low       Expr
	High      Expr
}

// InExpr is expr [NOT] IN (list) or expr [NOT] IN (subquery).
type InExpr struct {
	Expr  Expr
	Not   bool
	List  []Expr
	Query *SelectStatement
}

// QuantifiedExpr is left op ANY|ALL (right). SOME is normalized to ANY.
// The right side is either an expression or a subquery.
type QuantifiedExpr struct {
	Left       Expr
	Op         string
	Quantifier string
	Right      Expr
	Query      *SelectStatement
}

// AtTimeZoneExpr is expr AT TIME ZONE zone.
type AtTimeZoneExpr struct {
	Expr Expr
	Zone Expr
}

// CollateExpr is expr COLLATE collation.
type CollateExpr struct {
	Expr      Expr
	Collation QualifiedName
}

// TypecastExpr is expr::type.
type TypecastExpr struct {
	Expr Expr
	Type *DataType
}

// SubscriptExpr is expr[index] or the slice expr[lower:upper], where either
// bound may be nil.
type SubscriptExpr struct {
	Expr  Expr
	Lower Expr
	Upper Expr
	Slice bool
}

// FieldExpr is (expr).field or (expr).*.
type FieldExpr struct {
	Expr  Expr
	Field Identifier
	Star  bool
}

// =============================================================================
// Grouping and subqueries
// =============================================================================

// ParenExpr is a parenthesized expression. Parentheses are kept so that the
// tree records the grouping the source used.
type ParenExpr struct {
	Expr Expr
}

// RowExpr is a row constructor: ROW(a, b) when Explicit, (a, b) otherwise.
type RowExpr struct {
	Exprs    []Expr
	Explicit bool
}

// SubqueryExpr is a scalar subquery.
type SubqueryExpr struct {
	Query *SelectStatement
}

// ExistsExpr is EXISTS (subquery).
type ExistsExpr struct {
	Query *SelectStatement
}

// ArrayExpr is ARRAY[elements] or ARRAY(subquery). Nested bracket lists
// appear as ArrayExpr elements.
type ArrayExpr struct {
	Elements []Expr
	Query    *SelectStatement
}

// CaseExpr is CASE [operand] WHEN ... THEN ... [ELSE ...] END.
type CaseExpr struct {
	Operand Expr
	Whens   []WhenClause
	Else    Expr
}

// WhenClause is one WHEN condition THEN result arm.
type WhenClause struct {
	Condition Expr
	Result    Expr
}

// =============================================================================
// Function forms
// =============================================================================

// CastExpr is CAST(expr AS type).
type CastExpr struct {
	Expr Expr
	Type *DataType
}

// ExtractExpr is EXTRACT(field FROM expr). Field is lower case when it was
// written as a word.
type ExtractExpr struct {
	Field string
	From  Expr
}

// SQLValueFunction is a niladic SQL function such as CURRENT_DATE. Name is
// upper case; Precision is -1 unless given, as in CURRENT_TIME(3).
type SQLValueFunction struct {
	Name      string
	Precision int
}

// SpecialFuncExpr is one of the SQL-standard functions with keyword-based
// argument syntax: POSITION, SUBSTRING, TRIM, OVERLAY, COALESCE, NULLIF,
// GREATEST, LEAST and GROUPING.
type SpecialFuncExpr struct {
	Name string
	Args []SpecialArg
}

// SpecialArg is one argument of a SpecialFuncExpr with the keywords that
// introduce it, e.g. "FROM" or "BOTH FROM". An argument following a comma
// has no keyword.
type SpecialArg struct {
	Keyword string
	Value   Expr
}

// FuncCall is name(args) with its aggregate and window decorations.
type FuncCall struct {
	Name        QualifiedName
	Args        []FuncArg
	Star        bool
	Distinct    bool
	OrderBy     []SortBy
	WithinGroup []SortBy
	Filter      Expr
	Over        *WindowSpec
}

// FuncArg is [name =>] value; Variadic marks VARIADIC.
type FuncArg struct {
	Name     Identifier
	Value    Expr
	Variadic bool
}

// WindowSpec is an OVER clause. A reference written without parentheses,
// OVER w, has Ref set and Parenthesized false.
type WindowSpec struct {
	Ref           Identifier
	Parenthesized bool
	PartitionBy   []Expr
	OrderBy       []SortBy
	Frame         *WindowFrame
}

// WindowFrame is ROWS|RANGE|GROUPS [BETWEEN start AND end] [EXCLUDE ...].
type WindowFrame struct {
	Mode    string
	Start   FrameBound
	End     *FrameBound
	Exclude string
}

// FrameBound is UNBOUNDED PRECEDING|FOLLOWING, CURRENT ROW or offset
// PRECEDING|FOLLOWING.
type FrameBound struct {
	Type   string
	Offset Expr
}

// Frame bound types.
const (
	FrameUnboundedPreceding = "UNBOUNDED PRECEDING"
	FrameUnboundedFollowing = "UNBOUNDED FOLLOWING"
	FrameCurrentRow         = "CURRENT ROW"
	FramePreceding          = "PRECEDING"
	FrameFollowing          = "FOLLOWING"
)

// SortBy is one ORDER BY item. Direction is "", "ASC" or "DESC"; UsingOp
// holds the operator of USING op; Nulls is "", "FIRST" or "LAST".
type SortBy struct {
	Expr      Expr
	Direction string
	UsingOp   string
	Nulls     string
}

// GroupingSet is (), ROLLUP(...), CUBE(...) or GROUPING SETS(...) inside
// GROUP BY. Type is "EMPTY", "ROLLUP", "CUBE" or "SETS".
type GroupingSet struct {
	Type  string
	Items []Expr
}

// CurrentOfExpr is the WHERE CURRENT OF cursor condition.
type CurrentOfExpr struct {
	Cursor Identifier
}

func (*ColumnRef) exprNode()        {}
func (*ParamRef) exprNode()         {}
func (*IntegerLiteral) exprNode()   {}
func (*NumericLiteral) exprNode()   {}
func (*StringLiteral) exprNode()    {}
func (*BitStringLiteral) exprNode() {}
func (*BoolLiteral) exprNode()      {}
func (*NullLiteral) exprNode()      {}
func (*TypedLiteral) exprNode()     {}
func (*IntervalLiteral) exprNode()  {}
func (*Word) exprNode()             {}
func (*DefaultExpr) exprNode()      {}
func (*UnaryExpr) exprNode()        {}
func (*BinaryExpr) exprNode()       {}
func (*IsExpr) exprNode()           {}
func (*LikeExpr) exprNode()         {}
func (*BetweenExpr) exprNode()      {}
func (*InExpr) exprNode()           {}
func (*QuantifiedExpr) exprNode()   {}
func (*AtTimeZoneExpr) exprNode()   {}
func (*CollateExpr) exprNode()      {}
func (*TypecastExpr) exprNode()     {}
func (*SubscriptExpr) exprNode()    {}
func (*FieldExpr) exprNode()        {}
func (*ParenExpr) exprNode()        {}
func (*RowExpr) exprNode()          {}
func (*SubqueryExpr) exprNode()     {}
func (*ExistsExpr) exprNode()       {}
func (*ArrayExpr) exprNode()        {}
func (*CaseExpr) exprNode()         {}
func (*CastExpr) exprNode()         {}
func (*ExtractExpr) exprNode()      {}
func (*SQLValueFunction) exprNode() {}
func (*SpecialFuncExpr) exprNode()  {}
func (*FuncCall) exprNode()         {}
func (*GroupingSet) exprNode()      {}
func (*CurrentOfExpr) exprNode()    {}

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

// QueryExpr is the body of a SELECT: a SimpleSelect, a SetOperation, a
// ValuesQuery, a TableQuery or a parenthesized *SelectStatement.
type QueryExpr interface {
	queryExpr()
}

// SelectStatement is a complete query with its outer clauses. It is also
// the node used for every subquery.
type SelectStatement struct {
	dml
	With    *WithClause
	Body    QueryExpr
	OrderBy []SortBy

	// Limit is nil when absent; LimitAll records LIMIT ALL.
	Limit    Expr
	LimitAll bool
	Offset   Expr
	Fetch    *FetchClause
	Locking  []LockingClause
}

// Kind returns SELECT.
func (*SelectStatement) Kind() Kind { return KindSelect }

// FetchClause is FETCH FIRST [count] ROWS ONLY|WITH TIES. Count is nil
// for the implicit single row.
type FetchClause struct {
	Count    Expr
	WithTies bool
}

// LockingClause is FOR UPDATE|NO KEY UPDATE|SHARE|KEY SHARE [OF ...]
// [NOWAIT|SKIP LOCKED].
type LockingClause struct {
	Strength string
	Of       []QualifiedName
	Wait     string
}

// WithClause is WITH [RECURSIVE] cte, ....
type WithClause struct {
	Recursive bool
	CTEs      []CommonTableExpr
}

// CommonTableExpr is name [(columns)] AS [[NOT] MATERIALIZED] (query). Query
// is a *SelectStatement, *Insert, *Update or *Delete.
type CommonTableExpr struct {
	Name         Identifier
	Columns      []Identifier
	Materialized string
	Query        Statement
}

// SimpleSelect is SELECT ... FROM ... WHERE ... GROUP BY ... HAVING ...
// WINDOW ....
type SimpleSelect struct {
	Distinct   bool
	DistinctOn []Expr
	Targets    []Target
	From       []TableExpr
	Where      Expr

	GroupBy         []Expr
	GroupByDistinct bool
	Having          Expr
	Windows         []WindowDef
}

// Target is one select-list or RETURNING item. Star marks a bare '*'.
type Target struct {
	Expr  Expr
	Alias Identifier
	Star  bool
}

// WindowDef is name AS (spec) in a WINDOW clause.
type WindowDef struct {
	Name Identifier
	Spec WindowSpec
}

// SetOperation is left UNION|INTERSECT|EXCEPT [ALL] right. DISTINCT is the
// default and is not recorded.
type SetOperation struct {
	Op    string
	All   bool
	Left  QueryExpr
	Right QueryExpr
}

// ValuesQuery is VALUES (row), ....
type ValuesQuery struct {
	Rows [][]Expr
}

// TableQuery is TABLE name.
type TableQuery struct {
	Relation Relation
}

func (*SelectStatement) queryExpr() {}
func (*SimpleSelect) queryExpr()    {}
func (*SetOperation) queryExpr()    {}
func (*ValuesQuery) queryExpr()     {}
func (*TableQuery) queryExpr()      {}

// =============================================================================
// FROM items
// =============================================================================

// TableExpr is one FROM item.
type TableExpr interface {
	tableExpr()
}

// RelationRef is a table reference with optional alias and TABLESAMPLE.
type RelationRef struct {
	Relation Relation
	Alias    *Alias
	Sample   *TableSample
}

// TableSample is TABLESAMPLE method(args) [REPEATABLE (seed)].
type TableSample struct {
	Method     QualifiedName
	Args       []Expr
	Repeatable Expr
}

// SubqueryRef is [LATERAL] (query) [alias].
type SubqueryRef struct {
	Lateral bool
	Query   *SelectStatement
	Alias   *Alias
}

// FunctionRef is [LATERAL] func(...) [WITH ORDINALITY] [alias].
type FunctionRef struct {
	Lateral        bool
	Func           *FuncCall
	WithOrdinality bool
	Alias          *Alias
}

// JoinExpr joins two FROM items. Type is "INNER", "LEFT", "RIGHT", "FULL"
// or "CROSS"; a plain JOIN is INNER and the OUTER noise word is dropped.
type JoinExpr struct {
	Type       string
	Natural    bool
	Left       TableExpr
	Right      TableExpr
	On         Expr
	Using      []Identifier
	UsingAlias Identifier
}

// ParenTableRef is a parenthesized join tree with an optional alias.
type ParenTableRef struct {
	Table TableExpr
	Alias *Alias
}

func (*RelationRef) tableExpr()   {}
func (*SubqueryRef) tableExpr()   {}
func (*FunctionRef) tableExpr()   {}
func (*JoinExpr) tableExpr()      {}
func (*ParenTableRef) tableExpr() {}

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

// Insert is INSERT INTO table [AS alias] [(columns)] source
// [ON CONFLICT ...] [RETURNING ...]. The source is either DefaultValues or
// Query.
type Insert struct {
	dml
	With          *WithClause
	Table         QualifiedName
	Alias         Identifier
	Columns       []Identifier
	Overriding    string
	DefaultValues bool
	Query         *SelectStatement
	OnConflict    *OnConflict
	Returning     []Target
}

// Kind returns INSERT.
func (*Insert) Kind() Kind { return KindInsert }

// OnConflict is ON CONFLICT [target] DO NOTHING | DO UPDATE SET ... [WHERE].
type OnConflict struct {
	Target    *ConflictTarget
	DoNothing bool
	Set       []SetClause
	Where     Expr
}

// ConflictTarget is (index elements) [WHERE predicate] or ON CONSTRAINT
// name.
type ConflictTarget struct {
	Columns    []IndexElement
	Where      Expr
	Constraint Identifier
}

// SetClause is target = value or (columns) = value. Target holds a column
// with optional field path; Tuple holds the parenthesized column list.
type SetClause struct {
	Target []Identifier
	Tuple  []Identifier
	Value  Expr
}

// Update is UPDATE table SET ... [FROM ...] [WHERE ...] [RETURNING ...].
type Update struct {
	dml
	With      *WithClause
	Table     RelationRef
	Set       []SetClause
	From      []TableExpr
	Where     Expr
	Returning []Target
}

// Kind returns UPDATE.
func (*Update) Kind() Kind { return KindUpdate }

// Delete is DELETE FROM table [USING ...] [WHERE ...] [RETURNING ...].
type Delete struct {
	dml
	With      *WithClause
	Table     RelationRef
	Using     []TableExpr
	Where     Expr
	Returning []Target
}

// Kind returns DELETE.
func (*Delete) Kind() Kind { return KindDelete }

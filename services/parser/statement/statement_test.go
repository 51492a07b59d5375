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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_String(t *testing.T) {
	assert.Equal(t, "DDL", CategoryDDL.String())
	assert.Equal(t, "DML", CategoryDML.String())
	assert.Equal(t, "TCL", CategoryTCL.String())
	assert.Equal(t, "UNKNOWN", CategoryUnknown.String())
}

func TestStatement_KindAndCategory(t *testing.T) {
	tests := []struct {
		stmt     Statement
		kind     Kind
		category Category
	}{
		{&SelectStatement{}, KindSelect, CategoryDML},
		{&Insert{}, KindInsert, CategoryDML},
		{&CreateTable{}, KindCreateTable, CategoryDDL},
		{&CreateTable{AsQuery: &SelectStatement{}}, KindCreateTableAs, CategoryDDL},
		{&Drop{ObjectType: "INDEX"}, "DROP INDEX", CategoryDDL},
		{&Drop{ObjectType: "materialized view"}, "DROP MATERIALIZED VIEW", CategoryDDL},
		{&DropOnTable{ObjectType: "TRIGGER"}, "DROP TRIGGER", CategoryDDL},
		{&DropFunction{ObjectType: "PROCEDURE"}, "DROP PROCEDURE", CategoryDDL},
		{&AlterObject{ObjectType: "VIEW"}, "ALTER VIEW", CategoryDDL},
		{&AlterFunction{ObjectType: "ROUTINE"}, "ALTER ROUTINE", CategoryDDL},
		{&CreateFunction{Procedure: true}, KindCreateProcedure, CategoryDDL},
		{&CreateFunction{}, KindCreateFunction, CategoryDDL},
		{&Transaction{Op: KindRollback}, KindRollback, CategoryTCL},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.stmt.Kind())
			assert.Equal(t, tt.category, tt.stmt.Category())
		})
	}
}

func TestNameFromParts(t *testing.T) {
	q, ok := NameFromParts(Identifiers("db", "public", "orders"))
	require.True(t, ok)
	assert.Equal(t, "db", q.Catalog.Value)
	assert.Equal(t, "public", q.Schema.Value)
	assert.Equal(t, "db.public.orders", q.String())
	assert.Len(t, q.Parts(), 3)

	q, ok = NameFromParts([]Identifier{QuotedIdent("Orders")})
	require.True(t, ok)
	assert.True(t, q.Name.Quoted)
	assert.Equal(t, "Orders", q.String())

	_, ok = NameFromParts(nil)
	assert.False(t, ok)
	_, ok = NameFromParts(Identifiers("a", "b", "c", "d"))
	assert.False(t, ok)
}

func TestIdentifier_IsZero(t *testing.T) {
	assert.True(t, Identifier{}.IsZero())
	assert.False(t, Ident("x").IsZero())
	assert.False(t, QuotedIdent("").IsZero(), "quoted empty name is present")
	assert.True(t, QualifiedName{}.IsZero())
}

func TestCreateTable_PrimaryKey(t *testing.T) {
	t.Run("table constraint", func(t *testing.T) {
		ct := &CreateTable{Elements: []TableElement{
			&ColumnDef{Name: Ident("a"), Type: BuiltinType(TypeInteger)},
			&ColumnDef{Name: Ident("b"), Type: NamedType("text")},
			&TableConstraint{Type: ConstraintPrimaryKey, Columns: Identifiers("a", "b")},
		}}
		assert.Equal(t, Identifiers("a", "b"), ct.PrimaryKey())
		assert.Len(t, ct.Columns(), 2)
		assert.Len(t, ct.Constraints(), 1)
	})

	t.Run("column constraint", func(t *testing.T) {
		ct := &CreateTable{Elements: []TableElement{
			&ColumnDef{Name: Ident("id"), Type: BuiltinType(TypeInteger), Constraints: []*ColumnConstraint{
				{Type: ConstraintNotNull},
				{Type: ConstraintPrimaryKey},
			}},
		}}
		assert.Equal(t, Identifiers("id"), ct.PrimaryKey())
	})

	t.Run("none", func(t *testing.T) {
		assert.Nil(t, (&CreateTable{}).PrimaryKey())
	})
}

func TestDataType_IsArray(t *testing.T) {
	dt := NamedType("text")
	assert.False(t, dt.IsArray())
	dt.ArrayBounds = []int{-1}
	assert.True(t, dt.IsArray())
}

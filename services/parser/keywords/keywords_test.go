// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package keywords

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgreSQL_Classify(t *testing.T) {
	table := PostgreSQL()

	tests := []struct {
		word string
		want Class
	}{
		{"select", Reserved},
		{"SELECT", Reserved},
		{"user", Reserved},
		{"table", Reserved},
		{"left", TypeFuncName},
		{"concurrently", TypeFuncName},
		{"int", ColName},
		{"values", ColName},
		{"name", Unreserved},
		{"value", Unreserved},
		{"index", Unreserved},
		{"customer", NotKeyword},
		{"", NotKeyword},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Classify(tt.word))
		})
	}
}

func TestPostgreSQL_ClassesAreDisjoint(t *testing.T) {
	table := PostgreSQL()
	seen := map[string]Class{}
	for _, c := range []Class{Reserved, TypeFuncName, ColName, Unreserved} {
		for _, w := range table.Words(c) {
			prev, dup := seen[w]
			require.False(t, dup, "%q listed as %s and %s", w, prev, c)
			seen[w] = c
		}
	}
	assert.Equal(t, table.Len(), len(seen))
}

func TestPostgreSQL_Shared(t *testing.T) {
	var wg sync.WaitGroup
	tables := make([]*Table, 8)
	for i := range tables {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tables[i] = PostgreSQL()
		}(i)
	}
	wg.Wait()
	for _, tb := range tables {
		assert.Same(t, tables[0], tb)
	}
	assert.Equal(t, "postgresql", tables[0].Name())
	assert.Equal(t, "17", tables[0].Version())
}

func TestTable_IsBareLabel(t *testing.T) {
	table := PostgreSQL()
	assert.True(t, table.IsBareLabel("total"))
	assert.True(t, table.IsBareLabel("name"))
	assert.False(t, table.IsBareLabel("from"))
	assert.False(t, table.IsBareLabel("year"))
	assert.False(t, table.IsBareLabel("over"))
}

func TestNewTable_Validation(t *testing.T) {
	_, err := NewTable("x", "1", []Entry{{Word: "a", Class: Reserved}, {Word: "a", Class: Unreserved}})
	assert.ErrorIs(t, err, ErrDuplicateKeyword)

	_, err = NewTable("x", "1", []Entry{{Word: "Upper", Class: Reserved}})
	assert.ErrorIs(t, err, ErrInvalidKeyword)

	_, err = NewTable("x", "1", []Entry{{Word: "w", Class: NotKeyword}})
	assert.ErrorIs(t, err, ErrInvalidKeyword)
}

func TestTable_Derive(t *testing.T) {
	base := PostgreSQL()
	variant, err := base.Derive("postgresql", "9.6",
		Entry{Word: "system_user", Class: NotKeyword},
		Entry{Word: "json_table", Class: NotKeyword},
		Entry{Word: "legacy", Class: Unreserved},
	)
	require.NoError(t, err)

	assert.Equal(t, NotKeyword, variant.Classify("system_user"))
	assert.Equal(t, Unreserved, variant.Classify("legacy"))
	assert.Equal(t, "9.6", variant.Version())

	// The base table is untouched.
	assert.Equal(t, Reserved, base.Classify("system_user"))
	assert.Equal(t, NotKeyword, base.Classify("legacy"))

	_, err = base.Derive("x", "1", Entry{Word: "BAD", Class: Reserved})
	assert.ErrorIs(t, err, ErrInvalidKeyword)
}

func TestClass_String(t *testing.T) {
	assert.Equal(t, "reserved", Reserved.String())
	assert.Equal(t, "type_func_name", TypeFuncName.String())
	assert.Equal(t, "Class(42)", Class(42).String())
}

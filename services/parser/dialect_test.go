// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package parser

import (
	"sync"
	"testing"

	"github.com/AleutianAI/sqlfront/services/parser/keywords"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.Same(t, r, DefaultRegistry())
	assert.Equal(t, []string{DialectPostgreSQL}, r.Names())

	for _, name := range []string{"postgresql", "PG", " postgres "} {
		d, err := r.Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, DialectPostgreSQL, d.Name)
		assert.NotNil(t, d.Keywords)
	}

	_, err := r.Lookup("mysql")
	assert.ErrorIs(t, err, ErrUnsupportedDialect)
}

func TestDialectRegistry_Register(t *testing.T) {
	r, err := NewDialectRegistry(PostgreSQL())
	require.NoError(t, err)

	custom := &Dialect{Name: "warehouse", Aliases: []string{"wh"}, Keywords: keywords.PostgreSQL()}
	require.NoError(t, r.Register(custom))
	assert.Equal(t, []string{"postgresql", "warehouse"}, r.Names())

	d, err := r.Lookup("WH")
	require.NoError(t, err)
	assert.Same(t, custom, d)

	err = r.Register(&Dialect{Name: "other", Aliases: []string{"pg"}, Keywords: keywords.PostgreSQL()})
	assert.ErrorContains(t, err, "already used")

	assert.Error(t, r.Register(nil))
	assert.Error(t, r.Register(&Dialect{Name: "nokeywords"}))
}

func TestDialectRegistry_Concurrent(t *testing.T) {
	r, err := NewDialectRegistry(PostgreSQL())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i == 0 {
				_ = r.Register(&Dialect{Name: "late", Keywords: keywords.PostgreSQL()})
			}
			for range 100 {
				_, err := r.Lookup("pg")
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	_, err = r.Lookup("late")
	assert.NoError(t, err)
}

func TestEngine_WithRegistry(t *testing.T) {
	r, err := NewDialectRegistry(&Dialect{Name: "custom", Keywords: keywords.PostgreSQL()})
	require.NoError(t, err)

	e := New(WithRegistry(r), WithDialect("custom"))
	require.NoError(t, e.Err())
	assert.Equal(t, "custom", e.Dialect().Name)

	e = New(WithRegistry(r))
	assert.ErrorIs(t, e.Err(), ErrUnsupportedDialect)
}

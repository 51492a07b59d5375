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
	"errors"
	"testing"

	"github.com/AleutianAI/sqlfront/services/parser/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(pieces []Piece) []string {
	out := make([]string, len(pieces))
	for i, p := range pieces {
		out[i] = p.Text
	}
	return out
}

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"single", "SELECT 1", []string{"SELECT 1"}},
		{"trailing semicolon", "SELECT 1;", []string{"SELECT 1"}},
		{"two statements", "SELECT 1; SELECT 2;", []string{"SELECT 1", "SELECT 2"}},
		{"empty statements dropped", ";; SELECT 1 ;;; ", []string{"SELECT 1"}},
		{"only trivia", "  -- nothing\n /* here */ ", nil},
		{"semicolon in string", "SELECT 'a;b'; SELECT 2", []string{"SELECT 'a;b'", "SELECT 2"}},
		{"semicolon in comment", "SELECT 1 -- x; y\n; SELECT 2", []string{"SELECT 1", "SELECT 2"}},
		{"semicolon in dollar string", "SELECT $$a;b$$; SELECT 2", []string{"SELECT $$a;b$$", "SELECT 2"}},
		{"semicolon in quoted identifier", `SELECT "a;b" FROM t`, []string{`SELECT "a;b" FROM t`}},
		{
			"begin atomic body",
			"CREATE PROCEDURE p() BEGIN ATOMIC INSERT INTO t VALUES (1); SELECT 2; END; COMMIT",
			[]string{"CREATE PROCEDURE p() BEGIN ATOMIC INSERT INTO t VALUES (1); SELECT 2; END", "COMMIT"},
		},
		{
			"case inside atomic body",
			"CREATE FUNCTION f() RETURNS int BEGIN ATOMIC SELECT CASE WHEN true THEN 1 END; END; SELECT 3",
			[]string{"CREATE FUNCTION f() RETURNS int BEGIN ATOMIC SELECT CASE WHEN true THEN 1 END; END", "SELECT 3"},
		},
		{"transaction begin splits", "BEGIN; COMMIT", []string{"BEGIN", "COMMIT"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pieces, err := SplitStatements(tt.src)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, pieces)
				return
			}
			assert.Equal(t, tt.want, texts(pieces))
		})
	}
}

func TestSplitStatements_Positions(t *testing.T) {
	src := "SELECT 1;\n  -- note\n  SELECT 2;"
	pieces, err := SplitStatements(src)
	require.NoError(t, err)
	require.Len(t, pieces, 2)

	assert.Equal(t, Piece{Text: "SELECT 1", Offset: 0, Line: 1, Column: 1}, pieces[0])
	assert.Equal(t, 22, pieces[1].Offset)
	assert.Equal(t, 3, pieces[1].Line)
	assert.Equal(t, 3, pieces[1].Column)
	assert.Equal(t, pieces[1].Text, src[pieces[1].Offset:pieces[1].Offset+len(pieces[1].Text)])
}

func TestSplitStatements_LexicalError(t *testing.T) {
	_, err := SplitStatements("SELECT 1; SELECT 'open")
	require.Error(t, err)
	assert.True(t, errors.Is(err, lexer.ErrLexical))
}

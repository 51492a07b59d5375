// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package lexer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tk struct {
	kind  Kind
	text  string
	value string
}

func significant(t *testing.T, src string) []tk {
	t.Helper()
	toks, err := Tokenize(src)
	require.NoError(t, err)
	var out []tk
	for _, tok := range Significant(toks) {
		if tok.Kind == EOF {
			continue
		}
		out = append(out, tk{tok.Kind, tok.Text, tok.Value})
	}
	return out
}

func TestTokenize_CreateTable(t *testing.T) {
	got := significant(t, "CREATE TABLE t (id int PRIMARY KEY, name text)")
	want := []tk{
		{Ident, "CREATE", "create"},
		{Ident, "TABLE", "table"},
		{Ident, "t", "t"},
		{LParen, "(", "("},
		{Ident, "id", "id"},
		{Ident, "int", "int"},
		{Ident, "PRIMARY", "primary"},
		{Ident, "KEY", "key"},
		{Comma, ",", ","},
		{Ident, "name", "name"},
		{Ident, "text", "text"},
		{RParen, ")", ")"},
	}
	assert.Equal(t, want, got)
}

func TestTokenize_Operators(t *testing.T) {
	tests := []struct {
		src  string
		want []tk
	}{
		{"a<=b", []tk{{Ident, "a", "a"}, {LessEquals, "<=", "<="}, {Ident, "b", "b"}}},
		{"a::int", []tk{{Ident, "a", "a"}, {Typecast, "::", "::"}, {Ident, "int", "int"}}},
		{"j->>'k'", []tk{{Ident, "j", "j"}, {Operator, "->>", "->>"}, {String, "'k'", "k"}}},
		{"j#>>'{x}'", []tk{{Ident, "j", "j"}, {Operator, "#>>", "#>>"}, {String, "'{x}'", "{x}"}}},
		{"a@>b", []tk{{Ident, "a", "a"}, {Operator, "@>", "@>"}, {Ident, "b", "b"}}},
		{"a?&b", []tk{{Ident, "a", "a"}, {Operator, "?&", "?&"}, {Ident, "b", "b"}}},
		{"a<>b", []tk{{Ident, "a", "a"}, {NotEquals, "<>", "<>"}, {Ident, "b", "b"}}},
		{"a!=b", []tk{{Ident, "a", "a"}, {NotEquals, "!=", "!="}, {Ident, "b", "b"}}},
		// Trailing '-' is split off when no special character is present.
		{"a=-1", []tk{{Ident, "a", "a"}, {Equals, "=", "="}, {Minus, "-", "-"}, {Integer, "1", "1"}}},
		// With a special character the whole run is one operator.
		{"a@-1", []tk{{Ident, "a", "a"}, {Operator, "@-", "@-"}, {Integer, "1", "1"}}},
		{"x := 1", []tk{{Ident, "x", "x"}, {ColonEquals, ":=", ":="}, {Integer, "1", "1"}}},
		{"f(a => 1)", []tk{{Ident, "f", "f"}, {LParen, "(", "("}, {Ident, "a", "a"}, {EqualsGreater, "=>", "=>"}, {Integer, "1", "1"}, {RParen, ")", ")"}}},
		{"a||b", []tk{{Ident, "a", "a"}, {Operator, "||", "||"}, {Ident, "b", "b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, significant(t, tt.src))
		})
	}
}

func TestTokenize_OperatorStopsAtComment(t *testing.T) {
	toks, err := Tokenize("a +-- note\n b")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(toks), 5)

	var kinds []Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []Kind{Ident, Whitespace, Plus, Comment, Whitespace, Ident, EOF}, kinds)
}

func TestTokenize_Numbers(t *testing.T) {
	tests := []struct {
		src   string
		kind  Kind
		value string
	}{
		{"42", Integer, "42"},
		{"1_000_000", Integer, "1000000"},
		{"0x1F", Integer, "0x1F"},
		{"0o17", Integer, "0o17"},
		{"0b101", Integer, "0b101"},
		{"3.14", Decimal, "3.14"},
		{".5", Decimal, ".5"},
		{"1e10", Decimal, "1e10"},
		{"2.5E-3", Decimal, "2.5E-3"},
		{"7.", Decimal, "7."},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got := significant(t, tt.src)
			require.Len(t, got, 1)
			assert.Equal(t, tt.kind, got[0].kind)
			assert.Equal(t, tt.value, got[0].value)
		})
	}
}

func TestTokenize_Strings(t *testing.T) {
	tests := []struct {
		src   string
		kind  Kind
		value string
	}{
		{"'it''s'", String, "it's"},
		{"N'abc'", String, "abc"},
		{`E'a\nb'`, EscapeString, "a\nb"},
		{`E'\x41\101é'`, EscapeString, "AAé"},
		{`e'\''`, EscapeString, "'"},
		{"B'1010'", BitString, "1010"},
		{"x'1F'", HexString, "1F"},
		{"$$body$$", DollarString, "body"},
		{"$fn$ select 'x' $fn$", DollarString, " select 'x' "},
		{`"My Table"`, QuotedIdent, "My Table"},
		{`"a""b"`, QuotedIdent, `a"b`},
		{"$3", Param, "3"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got := significant(t, tt.src)
			require.Len(t, got, 1)
			assert.Equal(t, tt.kind, got[0].kind)
			assert.Equal(t, tt.value, got[0].value)
			assert.Equal(t, tt.src, got[0].text)
		})
	}
}

func TestTokenize_HiddenChannel(t *testing.T) {
	toks, err := Tokenize("SELECT /* outer /* nested */ still */ 1 -- tail")
	require.NoError(t, err)

	var hidden, visible int
	for _, tok := range toks {
		if tok.Hidden() {
			hidden++
		} else {
			visible++
		}
	}
	// SELECT, 1, EOF
	assert.Equal(t, 3, visible)
	// space, block comment, space, space, line comment
	assert.Equal(t, 5, hidden)
}

func TestTokenize_Positions(t *testing.T) {
	toks, err := Tokenize("SELECT a,\n  é, b")
	require.NoError(t, err)
	sig := Significant(toks)

	comma := sig[2]
	assert.Equal(t, Comma, comma.Kind)
	assert.Equal(t, 8, comma.Offset)
	assert.Equal(t, 1, comma.Line)
	assert.Equal(t, 9, comma.Column)

	accent := sig[3]
	assert.Equal(t, "é", accent.Text)
	assert.Equal(t, 2, accent.Line)
	assert.Equal(t, 3, accent.Column)

	b := sig[5]
	assert.Equal(t, "b", b.Text)
	assert.Equal(t, 2, b.Line)
	assert.Equal(t, 6, b.Column)
}

func TestTokenize_LongLineColumns(t *testing.T) {
	const n = 40000
	src := "SELECT " + strings.Repeat("é, ", n) + "z"

	start := time.Now()
	toks, err := Tokenize(src)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 3*time.Second, "column tracking must stay linear on one line")

	sig := Significant(toks)
	last := sig[len(sig)-2]
	assert.Equal(t, "z", last.Text)
	assert.Equal(t, 1, last.Line)
	assert.Equal(t, len("SELECT ")+3*n+1, last.Column)
	assert.Equal(t, len(src)-1, last.Offset)

	// A newline inside a token resets the column for what follows it.
	toks, err = Tokenize("SELECT 'a\nbé' || x")
	require.NoError(t, err)
	sig = Significant(toks)
	x := sig[len(sig)-2]
	assert.Equal(t, 2, x.Line)
	assert.Equal(t, 8, x.Column)
}

func TestTokenize_UnicodeEscapes(t *testing.T) {
	tests := []struct {
		src   string
		kind  Kind
		value string
	}{
		{`U&'d\0061t\+000061'`, String, "data"},
		{`u&'\\x'`, String, `\x`},
		{`U&'d!0061t' UESCAPE '!'`, String, "dat"},
		{"U&'d!0061t' /* c */ uescape\n'!'", String, "dat"},
		{`U&'\D83D\DE00'`, String, "\U0001F600"},
		{`U&"d\0061t"`, QuotedIdent, "dat"},
		{`U&"A"`, QuotedIdent, "A"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got := significant(t, tt.src)
			require.Len(t, got, 1)
			assert.Equal(t, tt.kind, got[0].kind)
			assert.Equal(t, tt.value, got[0].value)
			assert.Equal(t, tt.src, got[0].text)
		})
	}

	// Without an ampersand the u is an ordinary identifier.
	got := significant(t, "u 'x'")
	require.Len(t, got, 2)
	assert.Equal(t, Ident, got[0].kind)
}

func TestTokenize_InvalidEscapes(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		offset int
	}{
		{"short unicode escape", `SELECT U&'\06'`, 7},
		{"lone low surrogate", `SELECT U&'\DE00'`, 7},
		{"unpaired high surrogate", `SELECT U&'\D83Dx'`, 7},
		{"zero code point", `SELECT U&'\0000'`, 7},
		{"hex escape character", `SELECT U&'x' UESCAPE 'a'`, 21},
		{"uescape without literal", `SELECT U&'x' UESCAPE 1`, 13},
		{"octal out of range", `SELECT E'ab\777'`, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.src)
			var lexErr *LexicalError
			require.ErrorAs(t, err, &lexErr)
			assert.Equal(t, tt.offset, lexErr.Offset)
		})
	}
}

func TestTokenize_LexicalErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		offset int
	}{
		{"unexpected character", "SELECT a \\ b", 9},
		{"unterminated string", "SELECT 'abc", 7},
		{"unterminated quoted identifier", `SELECT "abc`, 7},
		{"empty quoted identifier", `SELECT ""`, 7},
		{"unterminated comment", "SELECT /* x", 7},
		{"unterminated dollar quote", "SELECT $a$ x", 7},
		{"lone dollar", "SELECT $ 1", 7},
		{"trailing junk", "SELECT 12abc", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.src)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrLexical))

			var lexErr *LexicalError
			require.ErrorAs(t, err, &lexErr)
			assert.Equal(t, tt.offset, lexErr.Offset)
			assert.Equal(t, 1, lexErr.Line)
			assert.Equal(t, tt.offset+1, lexErr.Column)
		})
	}
}

func TestLexer_ErrorIsSticky(t *testing.T) {
	l := New("a \\")
	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, Ident, tok.Kind)

	_, _ = l.Next() // whitespace
	_, err1 := l.Next()
	_, err2 := l.Next()
	require.Error(t, err1)
	assert.Same(t, err1, err2)
}

func TestLexer_EOFRepeats(t *testing.T) {
	l := New("")
	for i := 0; i < 3; i++ {
		tok, err := l.Next()
		require.NoError(t, err)
		assert.Equal(t, EOF, tok.Kind)
	}
}

func TestLexer_AllStopsEarly(t *testing.T) {
	var seen int
	for tok, err := range New("a b c d").All() {
		require.NoError(t, err)
		if tok.Kind == Ident {
			seen++
		}
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}

func TestKind_Describe(t *testing.T) {
	assert.Equal(t, "identifier", Ident.Describe())
	assert.Equal(t, "','", Comma.Describe())
	assert.Equal(t, "end of input", EOF.Describe())
	assert.Equal(t, "Kind(999)", Kind(999).String())
}

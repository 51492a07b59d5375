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

import "fmt"

// Kind classifies a token.
//
// Keywords are not distinguished here: every unquoted word is an Ident and
// the keyword class is derived later from a keywords.Table. This keeps the
// lexer independent of the dialect variant in use.
type Kind int

const (
	// EOF marks the end of input. It is always the last token produced.
	EOF Kind = iota

	// Whitespace and Comment are trivia and travel on ChannelHidden.
	Whitespace
	Comment

	// Ident is an unquoted word; Value holds the ASCII-lowercased form.
	Ident

	// QuotedIdent is a "delimited identifier"; Value is the unescaped name.
	QuotedIdent

	Integer
	Decimal

	// String is a standard '...' literal (also N'...').
	String

	// EscapeString is an E'...' literal with backslash escapes decoded.
	EscapeString

	// BitString is B'...'; Value holds the raw digits.
	BitString

	// HexString is X'...'; Value holds the raw hex digits.
	HexString

	// DollarString is $tag$...$tag$; Value holds the body.
	DollarString

	// Param is a positional parameter such as $1.
	Param

	// Operator is any operator lexeme without a dedicated kind
	// (->, ->>, #>>, @>, ||, ~~, ...). Text holds the lexeme.
	Operator

	LParen
	RParen
	LBracket
	RBracket
	Comma
	Semicolon
	Colon
	Dot
	Typecast      // ::
	DotDot        // ..
	ColonEquals   // :=
	EqualsGreater // =>
	LessEquals    // <=
	GreaterEquals // >=
	NotEquals     // <> or !=
	Plus
	Minus
	Star
	Slash
	Percent
	Caret
	Less
	Greater
	Equals

	numKinds
)

var kindNames = [numKinds]string{
	EOF:           "EOF",
	Whitespace:    "Whitespace",
	Comment:       "Comment",
	Ident:         "Ident",
	QuotedIdent:   "QuotedIdent",
	Integer:       "Integer",
	Decimal:       "Decimal",
	String:        "String",
	EscapeString:  "EscapeString",
	BitString:     "BitString",
	HexString:     "HexString",
	DollarString:  "DollarString",
	Param:         "Param",
	Operator:      "Operator",
	LParen:        "LParen",
	RParen:        "RParen",
	LBracket:      "LBracket",
	RBracket:      "RBracket",
	Comma:         "Comma",
	Semicolon:     "Semicolon",
	Colon:         "Colon",
	Dot:           "Dot",
	Typecast:      "Typecast",
	DotDot:        "DotDot",
	ColonEquals:   "ColonEquals",
	EqualsGreater: "EqualsGreater",
	LessEquals:    "LessEquals",
	GreaterEquals: "GreaterEquals",
	NotEquals:     "NotEquals",
	Plus:          "Plus",
	Minus:         "Minus",
	Star:          "Star",
	Slash:         "Slash",
	Percent:       "Percent",
	Caret:         "Caret",
	Less:          "Less",
	Greater:       "Greater",
	Equals:        "Equals",
}

// kindDescriptions is what diagnostics print for an expected token kind.
var kindDescriptions = [numKinds]string{
	EOF:           "end of input",
	Whitespace:    "whitespace",
	Comment:       "comment",
	Ident:         "identifier",
	QuotedIdent:   "identifier",
	Integer:       "integer",
	Decimal:       "numeric constant",
	String:        "string constant",
	EscapeString:  "string constant",
	BitString:     "bit string constant",
	HexString:     "hex string constant",
	DollarString:  "string constant",
	Param:         "parameter",
	Operator:      "operator",
	LParen:        "'('",
	RParen:        "')'",
	LBracket:      "'['",
	RBracket:      "']'",
	Comma:         "','",
	Semicolon:     "';'",
	Colon:         "':'",
	Dot:           "'.'",
	Typecast:      "'::'",
	DotDot:        "'..'",
	ColonEquals:   "':='",
	EqualsGreater: "'=>'",
	LessEquals:    "'<='",
	GreaterEquals: "'>='",
	NotEquals:     "'<>'",
	Plus:          "'+'",
	Minus:         "'-'",
	Star:          "'*'",
	Slash:         "'/'",
	Percent:       "'%'",
	Caret:         "'^'",
	Less:          "'<'",
	Greater:       "'>'",
	Equals:        "'='",
}

// String returns the Go-style name of the kind.
func (k Kind) String() string {
	if k >= 0 && k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Describe returns the human-readable description used in diagnostics.
func (k Kind) Describe() string {
	if k >= 0 && k < numKinds {
		return kindDescriptions[k]
	}
	return k.String()
}

// IsStringConstant reports whether k is one of the character-string kinds
// that the grammar accepts wherever a string constant is expected.
func (k Kind) IsStringConstant() bool {
	return k == String || k == EscapeString || k == DollarString
}

// Channel separates significant tokens from trivia.
type Channel int

const (
	// ChannelDefault carries the tokens the grammar consumes.
	ChannelDefault Channel = iota

	// ChannelHidden carries whitespace and comments.
	ChannelHidden
)

// Token is one lexical unit. Tokens are immutable values.
type Token struct {
	Kind Kind

	// Text is the raw lexeme exactly as it appears in the source.
	Text string

	// Value is the decoded lexeme: lowercased for Ident, unquoted and
	// unescaped for strings and delimited identifiers, digits for numbers.
	Value string

	// Offset and End delimit the lexeme as byte offsets [Offset, End).
	Offset int
	End    int

	// Line and Column are 1-based; Column counts runes.
	Line   int
	Column int

	Channel Channel
}

// IsKeyword reports whether the token is the unquoted word kw.
// kw must be lower case.
func (t Token) IsKeyword(kw string) bool {
	return t.Kind == Ident && t.Value == kw
}

// Hidden reports whether the token is trivia.
func (t Token) Hidden() bool {
	return t.Channel == ChannelHidden
}

// String renders the token for diagnostics and debugging.
func (t Token) String() string {
	if t.Kind == EOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.Text)
}

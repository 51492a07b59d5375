// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package lexer turns PostgreSQL-dialect SQL text into a lazy sequence of
// tokens.
//
// # Description
//
// The lexer recognizes the terminal vocabulary of the PostgreSQL grammar:
// identifiers (plain, "delimited" and U&"..."), numeric constants, the
// string constant family ('..', E'..', B'..', X'..', U&'..', $tag$..$tag$),
// positional parameters, punctuation, and operators. Unicode-escape forms
// take an optional UESCAPE 'c' clause, which becomes part of the token. Whitespace and comments are
// produced on ChannelHidden so the grammar can skip them uniformly while
// tools can still see them.
//
// Operators follow the PostgreSQL rule: the longest run of operator
// characters is taken, a run never swallows the start of a comment, and a
// multi-character run may only end in '+' or '-' when it also contains one
// of ~ ! @ # % ^ & | ` ?. The resulting lexeme is classified against the
// ordered operator table; the first entry with equal text wins.
//
// # Thread Safety
//
// A Lexer is single-use and must not be shared between goroutines.
package lexer

import (
	"fmt"
	"iter"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Lexer produces tokens from a source string on demand.
type Lexer struct {
	src       string
	pos       int
	line      int
	lineStart int
	err       error

	// colMark is a byte offset on the current line whose rune column
	// (0-based) is colRunes; columns are counted forward from it.
	colMark  int
	colRunes int
}

// New returns a Lexer positioned at the start of src.
func New(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

// Next returns the next token, including hidden-channel trivia.
//
// After the end of input Next keeps returning an EOF token. After a
// LexicalError it keeps returning the same error.
func (l *Lexer) Next() (Token, error) {
	if l.err != nil {
		return Token{}, l.err
	}
	if l.pos >= len(l.src) {
		return l.emit(EOF, l.pos, "", ChannelDefault), nil
	}
	tok, err := l.scan()
	if err != nil {
		l.err = err
		return Token{}, err
	}
	return tok, nil
}

// All exposes the remaining tokens as an iterator. Iteration stops after
// the EOF token or after the first error, which is yielded with a zero
// Token.
func (l *Lexer) All() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			tok, err := l.Next()
			if err != nil {
				yield(Token{}, err)
				return
			}
			if !yield(tok, nil) || tok.Kind == EOF {
				return
			}
		}
	}
}

// Tokenize lexes the whole of src, trivia included. The final token is EOF.
func Tokenize(src string) ([]Token, error) {
	var out []Token
	for tok, err := range New(src).All() {
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
	}
	return out, nil
}

// Significant filters out hidden-channel tokens.
func Significant(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		if !tok.Hidden() {
			out = append(out, tok)
		}
	}
	return out
}

// =============================================================================
// Scanning
// =============================================================================

func (l *Lexer) scan() (Token, error) {
	start := l.pos
	c := l.src[start]

	switch {
	case isSpace(c):
		for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
			l.pos++
		}
		return l.emit(Whitespace, start, "", ChannelHidden), nil

	case c == '-' && l.peek(1) == '-':
		for l.pos < len(l.src) && l.src[l.pos] != '\n' {
			l.pos++
		}
		return l.emit(Comment, start, "", ChannelHidden), nil

	case c == '/' && l.peek(1) == '*':
		if err := l.scanBlockComment(start); err != nil {
			return Token{}, err
		}
		return l.emit(Comment, start, "", ChannelHidden), nil

	case isIdentStart(c):
		return l.scanWord(start)

	case isDigit(c) || (c == '.' && isDigit(l.peek(1))):
		return l.scanNumber(start)

	case c == '\'':
		value, err := l.scanQuoted(start, false)
		if err != nil {
			return Token{}, err
		}
		return l.emit(String, start, value, ChannelDefault), nil

	case c == '"':
		return l.scanDelimitedIdent(start)

	case c == '$':
		return l.scanDollar(start)

	case c == ':':
		switch l.peek(1) {
		case ':':
			l.pos += 2
			return l.emit(Typecast, start, "::", ChannelDefault), nil
		case '=':
			l.pos += 2
			return l.emit(ColonEquals, start, ":=", ChannelDefault), nil
		}
		l.pos++
		return l.emit(Colon, start, ":", ChannelDefault), nil

	case c == '.':
		if l.peek(1) == '.' {
			l.pos += 2
			return l.emit(DotDot, start, "..", ChannelDefault), nil
		}
		l.pos++
		return l.emit(Dot, start, ".", ChannelDefault), nil

	case isOpChar(c):
		return l.scanOperator(start), nil
	}

	if kind, ok := punctuation[c]; ok {
		l.pos++
		return l.emit(kind, start, string(c), ChannelDefault), nil
	}

	r, _ := utf8.DecodeRuneInString(l.src[start:])
	return Token{}, l.errorAt(start, r, "unexpected character %q", r)
}

var punctuation = map[byte]Kind{
	'(': LParen,
	')': RParen,
	'[': LBracket,
	']': RBracket,
	',': Comma,
	';': Semicolon,
}

func (l *Lexer) scanBlockComment(start int) error {
	depth := 0
	for l.pos < len(l.src) {
		switch {
		case l.src[l.pos] == '/' && l.peek(1) == '*':
			depth++
			l.pos += 2
		case l.src[l.pos] == '*' && l.peek(1) == '/':
			depth--
			l.pos += 2
			if depth == 0 {
				return nil
			}
		default:
			l.pos++
		}
	}
	return l.errorAt(start, 0, "unterminated /* comment")
}

func (l *Lexer) scanWord(start int) (Token, error) {
	c := l.src[start]
	if (c == 'u' || c == 'U') && l.peek(1) == '&' && (l.peek(2) == '\'' || l.peek(2) == '"') {
		return l.scanUnicode(start)
	}
	if l.peek(1) == '\'' {
		switch c {
		case 'e', 'E':
			l.pos++
			value, err := l.scanQuoted(start, true)
			if err != nil {
				return Token{}, err
			}
			return l.emit(EscapeString, start, value, ChannelDefault), nil
		case 'b', 'B':
			l.pos++
			value, err := l.scanQuoted(start, false)
			if err != nil {
				return Token{}, err
			}
			return l.emit(BitString, start, value, ChannelDefault), nil
		case 'x', 'X':
			l.pos++
			value, err := l.scanQuoted(start, false)
			if err != nil {
				return Token{}, err
			}
			return l.emit(HexString, start, value, ChannelDefault), nil
		case 'n', 'N':
			l.pos++
			value, err := l.scanQuoted(start, false)
			if err != nil {
				return Token{}, err
			}
			return l.emit(String, start, value, ChannelDefault), nil
		}
	}

	for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
		l.pos++
	}
	return l.emit(Ident, start, asciiLower(l.src[start:l.pos]), ChannelDefault), nil
}

func (l *Lexer) scanDelimitedIdent(start int) (Token, error) {
	name, err := l.scanDelimited(start)
	if err != nil {
		return Token{}, err
	}
	if name == "" {
		return Token{}, l.errorAt(start, 0, "zero-length delimited identifier")
	}
	return l.emit(QuotedIdent, start, name, ChannelDefault), nil
}

// scanDelimited consumes a "..." body starting at the opening quote under
// l.pos and returns it with doubled quotes collapsed.
func (l *Lexer) scanDelimited(start int) (string, error) {
	l.pos++
	var b strings.Builder
	for {
		if l.pos >= len(l.src) {
			return "", l.errorAt(start, 0, "unterminated quoted identifier")
		}
		c := l.src[l.pos]
		if c == '"' {
			if l.peek(1) == '"' {
				b.WriteByte('"')
				l.pos += 2
				continue
			}
			l.pos++
			return b.String(), nil
		}
		b.WriteByte(c)
		l.pos++
	}
}

// =============================================================================
// Unicode escapes: U&'...' and U&"..." [UESCAPE 'c']
// =============================================================================

// scanUnicode lexes a Unicode-escape string or identifier. The optional
// UESCAPE clause belongs to the token, so its text spans the clause.
func (l *Lexer) scanUnicode(start int) (Token, error) {
	quote := l.src[start+2]
	l.pos = start + 2

	var raw string
	var err error
	if quote == '\'' {
		raw, err = l.scanQuoted(start, false)
	} else {
		raw, err = l.scanDelimited(start)
	}
	if err != nil {
		return Token{}, err
	}

	esc, err := l.scanUescape()
	if err != nil {
		return Token{}, err
	}
	value, msg := decodeUnicode(raw, esc)
	if msg != "" {
		return Token{}, l.errorAt(start, 0, "%s", msg)
	}

	if quote == '"' {
		if value == "" {
			return Token{}, l.errorAt(start, 0, "zero-length delimited identifier")
		}
		return l.emit(QuotedIdent, start, value, ChannelDefault), nil
	}
	return l.emit(String, start, value, ChannelDefault), nil
}

// scanUescape consumes an optional UESCAPE 'c' clause after a Unicode
// escape literal and returns the escape character, '\\' by default.
func (l *Lexer) scanUescape() (byte, error) {
	i := l.skipTrivia(l.pos)
	const kw = "uescape"
	if i+len(kw) > len(l.src) || !strings.EqualFold(l.src[i:i+len(kw)], kw) ||
		(i+len(kw) < len(l.src) && isIdentCont(l.src[i+len(kw)])) {
		return '\\', nil
	}
	clause := i
	i = l.skipTrivia(i + len(kw))
	if i+2 >= len(l.src) || l.src[i] != '\'' || l.src[i+2] != '\'' {
		return 0, l.errorAt(clause, 0, "UESCAPE must be followed by a simple string literal")
	}
	c := l.src[i+1]
	if isHexDigit(c) || isSpace(c) || c == '+' || c == '\'' || c == '"' || c >= utf8.RuneSelf {
		return 0, l.errorAt(i, rune(c), "invalid Unicode escape character")
	}
	l.pos = i + 3
	return c, nil
}

// skipTrivia returns the first offset at or after i that is not whitespace
// or a complete comment.
func (l *Lexer) skipTrivia(i int) int {
	for i < len(l.src) {
		c := l.src[i]
		switch {
		case isSpace(c):
			i++
		case c == '-' && i+1 < len(l.src) && l.src[i+1] == '-':
			for i < len(l.src) && l.src[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(l.src) && l.src[i+1] == '*':
			depth, j := 0, i
			for j < len(l.src) {
				if l.src[j] == '/' && j+1 < len(l.src) && l.src[j+1] == '*' {
					depth++
					j += 2
				} else if l.src[j] == '*' && j+1 < len(l.src) && l.src[j+1] == '/' {
					depth--
					j += 2
					if depth == 0 {
						break
					}
				} else {
					j++
				}
			}
			if depth != 0 {
				return i
			}
			i = j
		default:
			return i
		}
	}
	return i
}

// decodeUnicode resolves esc-XXXX, esc-+XXXXXX and doubled esc sequences.
// It returns a non-empty message when raw holds an invalid escape.
func decodeUnicode(raw string, esc byte) (string, string) {
	var b strings.Builder
	for i := 0; i < len(raw); {
		if raw[i] != esc {
			b.WriteByte(raw[i])
			i++
			continue
		}
		if i+1 < len(raw) && raw[i+1] == esc {
			b.WriteByte(esc)
			i += 2
			continue
		}
		v, next, ok := unicodeEscape(raw, i, esc)
		if !ok {
			return "", "invalid Unicode escape"
		}
		i = next
		switch {
		case utf16.IsSurrogate(rune(v)) && v < 0xDC00:
			lo, after, ok := unicodeEscape(raw, i, esc)
			if !ok || lo < 0xDC00 || lo > 0xDFFF {
				return "", "invalid Unicode surrogate pair"
			}
			v = int(utf16.DecodeRune(rune(v), rune(lo)))
			i = after
		case utf16.IsSurrogate(rune(v)):
			return "", "invalid Unicode surrogate pair"
		}
		if v == 0 || !utf8.ValidRune(rune(v)) {
			return "", "invalid Unicode escape value"
		}
		b.WriteRune(rune(v))
	}
	return b.String(), ""
}

// unicodeEscape reads one escape at raw[i] (which must be esc) and returns
// its code point and the offset after it.
func unicodeEscape(raw string, i int, esc byte) (int, int, bool) {
	if i >= len(raw) || raw[i] != esc {
		return 0, i, false
	}
	j, width := i+1, 4
	if j < len(raw) && raw[j] == '+' {
		j, width = j+1, 6
	}
	if j+width > len(raw) {
		return 0, i, false
	}
	v := 0
	for k := j; k < j+width; k++ {
		if !isHexDigit(raw[k]) {
			return 0, i, false
		}
		v = v*16 + hexValue(raw[k])
	}
	return v, j + width, true
}

// scanQuoted consumes a '...' body starting at the opening quote under
// l.pos. With escapes set, backslash sequences are decoded.
func (l *Lexer) scanQuoted(start int, escapes bool) (string, error) {
	l.pos++
	var b strings.Builder
	for {
		if l.pos >= len(l.src) {
			return "", l.errorAt(start, 0, "unterminated quoted string")
		}
		c := l.src[l.pos]
		switch {
		case c == '\'':
			if l.peek(1) == '\'' {
				b.WriteByte('\'')
				l.pos += 2
				continue
			}
			l.pos++
			return b.String(), nil
		case c == '\\' && escapes:
			if err := l.scanEscape(start, &b); err != nil {
				return "", err
			}
		default:
			b.WriteByte(c)
			l.pos++
		}
	}
}

func (l *Lexer) scanEscape(start int, b *strings.Builder) error {
	l.pos++
	if l.pos >= len(l.src) {
		return l.errorAt(start, 0, "unterminated quoted string")
	}
	c := l.src[l.pos]
	switch c {
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 't':
		b.WriteByte('\t')
	case '0', '1', '2', '3', '4', '5', '6', '7':
		v, n := 0, 0
		for n < 3 && l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '7' {
			v = v*8 + int(l.src[l.pos]-'0')
			l.pos++
			n++
		}
		if v > 0xFF {
			return l.errorAt(l.pos-n-1, 0, "octal escape value out of range")
		}
		b.WriteByte(byte(v))
		return nil
	case 'x':
		l.pos++
		v, n := 0, 0
		for n < 2 && l.pos < len(l.src) && isHexDigit(l.src[l.pos]) {
			v = v*16 + hexValue(l.src[l.pos])
			l.pos++
			n++
		}
		if n == 0 {
			b.WriteByte('x')
			return nil
		}
		b.WriteByte(byte(v))
		return nil
	case 'u', 'U':
		width := 4
		if c == 'U' {
			width = 8
		}
		escStart := l.pos - 1
		l.pos++
		v := 0
		for i := 0; i < width; i++ {
			if l.pos >= len(l.src) || !isHexDigit(l.src[l.pos]) {
				return l.errorAt(escStart, 0, "invalid Unicode escape")
			}
			v = v*16 + hexValue(l.src[l.pos])
			l.pos++
		}
		if !utf8.ValidRune(rune(v)) {
			return l.errorAt(escStart, 0, "invalid Unicode escape value")
		}
		b.WriteRune(rune(v))
		return nil
	default:
		b.WriteByte(c)
	}
	l.pos++
	return nil
}

func (l *Lexer) scanDollar(start int) (Token, error) {
	next := l.peek(1)
	if isDigit(next) {
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
		if l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
			return Token{}, l.errorAt(start, 0, "trailing junk after parameter")
		}
		return l.emit(Param, start, l.src[start+1:l.pos], ChannelDefault), nil
	}

	// $tag$ where tag is empty or an identifier without '$'.
	end := start + 1
	if end < len(l.src) && isIdentStart(l.src[end]) {
		for end < len(l.src) && isIdentCont(l.src[end]) && l.src[end] != '$' {
			end++
		}
	}
	if end >= len(l.src) || l.src[end] != '$' {
		return Token{}, l.errorAt(start, '$', "unexpected character '$'")
	}
	tag := l.src[start : end+1]
	bodyStart := end + 1
	idx := strings.Index(l.src[bodyStart:], tag)
	if idx < 0 {
		return Token{}, l.errorAt(start, 0, "unterminated dollar-quoted string")
	}
	l.pos = bodyStart + idx + len(tag)
	return l.emit(DollarString, start, l.src[bodyStart:bodyStart+idx], ChannelDefault), nil
}

func (l *Lexer) scanNumber(start int) (Token, error) {
	if l.src[start] == '0' {
		if base := radixDigits(l.peek(1)); base != nil && base(l.peek(2)) {
			l.pos += 2
			l.scanDigits(base)
			return l.finishNumber(start, Integer)
		}
	}

	kind := Integer
	l.scanDigits(isDigit)
	if l.pos < len(l.src) && l.src[l.pos] == '.' && l.peek(1) != '.' {
		kind = Decimal
		l.pos++
		l.scanDigits(isDigit)
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		n := l.peek(1)
		if isDigit(n) || ((n == '+' || n == '-') && isDigit(l.peek(2))) {
			kind = Decimal
			l.pos += 2
			l.scanDigits(isDigit)
		}
	}
	return l.finishNumber(start, kind)
}

func (l *Lexer) finishNumber(start int, kind Kind) (Token, error) {
	if l.pos < len(l.src) && isIdentStart(l.src[l.pos]) {
		return Token{}, l.errorAt(start, 0, "trailing junk after numeric literal")
	}
	value := strings.ReplaceAll(l.src[start:l.pos], "_", "")
	return l.emit(kind, start, value, ChannelDefault), nil
}

// scanDigits consumes digits accepted by ok, allowing single underscores
// between digits.
func (l *Lexer) scanDigits(ok func(byte) bool) {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if ok(c) {
			l.pos++
			continue
		}
		if c == '_' && l.pos > 0 && ok(l.src[l.pos-1]) && ok(l.peek(1)) {
			l.pos++
			continue
		}
		return
	}
}

func radixDigits(c byte) func(byte) bool {
	switch c {
	case 'x', 'X':
		return isHexDigit
	case 'o', 'O':
		return func(b byte) bool { return b >= '0' && b <= '7' }
	case 'b', 'B':
		return func(b byte) bool { return b == '0' || b == '1' }
	}
	return nil
}

// =============================================================================
// Operators
// =============================================================================

// operatorTable maps operator lexemes to their kinds in declaration order.
// Lexemes absent from the table are emitted as Operator.
var operatorTable = []struct {
	text string
	kind Kind
}{
	{"->>", Operator},
	{"#>>", Operator},
	{"->", Operator},
	{"#>", Operator},
	{"@>", Operator},
	{"<@", Operator},
	{"?|", Operator},
	{"?&", Operator},
	{"#-", Operator},
	{"@?", Operator},
	{"@@", Operator},
	{"||", Operator},
	{"<=", LessEquals},
	{">=", GreaterEquals},
	{"<>", NotEquals},
	{"!=", NotEquals},
	{"=>", EqualsGreater},
	{"+", Plus},
	{"-", Minus},
	{"*", Star},
	{"/", Slash},
	{"%", Percent},
	{"^", Caret},
	{"<", Less},
	{">", Greater},
	{"=", Equals},
}

func (l *Lexer) scanOperator(start int) Token {
	end := start
	for end < len(l.src) && isOpChar(l.src[end]) {
		end++
	}
	text := l.src[start:end]

	// A run never swallows a comment start.
	for _, marker := range []string{"/*", "--"} {
		if i := strings.Index(text[1:], marker); i >= 0 {
			text = text[:i+1]
		}
	}

	if len(text) > 1 && (text[len(text)-1] == '+' || text[len(text)-1] == '-') &&
		!strings.ContainsAny(text, "~!@#%^&|`?") {
		for len(text) > 1 && (text[len(text)-1] == '+' || text[len(text)-1] == '-') {
			text = text[:len(text)-1]
		}
	}

	l.pos = start + len(text)
	return l.emit(classifyOperator(text), start, text, ChannelDefault)
}

func classifyOperator(text string) Kind {
	for _, op := range operatorTable {
		if op.text == text {
			return op.kind
		}
	}
	return Operator
}

// =============================================================================
// Helpers
// =============================================================================

func (l *Lexer) peek(n int) byte {
	if l.pos+n < len(l.src) {
		return l.src[l.pos+n]
	}
	return 0
}

// emit builds the token for src[start:l.pos] and advances line tracking.
func (l *Lexer) emit(kind Kind, start int, value string, ch Channel) Token {
	tok := Token{
		Kind:    kind,
		Text:    l.src[start:l.pos],
		Value:   value,
		Offset:  start,
		End:     l.pos,
		Line:    l.line,
		Column:  l.column(start),
		Channel: ch,
	}
	for i := start; i < l.pos; i++ {
		if l.src[i] == '\n' {
			l.line++
			l.lineStart = i + 1
			l.colMark, l.colRunes = i+1, 0
		}
	}
	return tok
}

// column returns the 1-based rune column of offset on the current line and
// moves the column mark there. Offsets arrive in increasing order, so the
// runes of a line are counted once in total.
func (l *Lexer) column(offset int) int {
	if l.colMark < l.lineStart || offset < l.colMark {
		l.colMark, l.colRunes = l.lineStart, 0
	}
	l.colRunes += utf8.RuneCountInString(l.src[l.colMark:offset])
	l.colMark = offset
	return l.colRunes + 1
}

func (l *Lexer) errorAt(offset int, char rune, format string, args ...any) *LexicalError {
	offset = min(offset, len(l.src))
	line, lineStart := l.line, l.lineStart
	for i := lineStart; i < offset; i++ {
		if l.src[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	var col int
	if lineStart == l.lineStart && offset >= l.colMark && l.colMark >= l.lineStart {
		col = l.colRunes + utf8.RuneCountInString(l.src[l.colMark:offset]) + 1
	} else {
		col = utf8.RuneCountInString(l.src[lineStart:offset]) + 1
	}
	return &LexicalError{
		Offset:  offset,
		Line:    line,
		Column:  col,
		Char:    char,
		Message: fmt.Sprintf(format, args...),
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c >= 0x80
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '$'
}

func isOpChar(c byte) bool {
	return strings.IndexByte("~!@#^&|`?+-*/%<>=", c) >= 0
}

// asciiLower folds only ASCII letters, matching PostgreSQL identifier
// down-casing.
func asciiLower(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}

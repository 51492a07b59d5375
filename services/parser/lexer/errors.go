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
	"fmt"
)

// ErrLexical is the sentinel wrapped by every LexicalError so callers can
// test the error class with errors.Is.
var ErrLexical = errors.New("lexical error")

// LexicalError reports input that matches no terminal pattern, or a quoted
// construct that is never closed.
type LexicalError struct {
	// Offset is the byte offset of the offending character or construct.
	Offset int

	// Line and Column locate Offset (1-based).
	Line   int
	Column int

	// Char is the offending rune, zero for unterminated constructs.
	Char rune

	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *LexicalError) Error() string {
	return fmt.Sprintf("lexical error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// Unwrap returns ErrLexical.
func (e *LexicalError) Unwrap() error {
	return ErrLexical
}

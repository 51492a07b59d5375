// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package grammar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AleutianAI/sqlfront/services/parser/lexer"
)

// ErrSyntax is the sentinel wrapped by every SyntaxError.
var ErrSyntax = errors.New("syntax error")

// SyntaxError reports that no grammar alternative accepts the token at
// Offset. It carries the set of token descriptions that would have been
// accepted there.
type SyntaxError struct {
	// Offset, Line and Column locate the offending token.
	Offset int
	Line   int
	Column int

	// Found is the offending token.
	Found lexer.Token

	// Expected is the sorted, de-duplicated set of acceptable tokens,
	// e.g. ["')'", "CONSTRAINT", "identifier"].
	Expected []string

	// Message overrides the default "unexpected X" text for failures that
	// are not about a single token (nesting limits, empty input).
	Message string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "syntax error at line %d, column %d: ", e.Line, e.Column)
	if e.Message != "" {
		b.WriteString(e.Message)
	} else {
		fmt.Fprintf(&b, "unexpected %s", e.Found)
	}
	if len(e.Expected) > 0 {
		b.WriteString(", expected ")
		if len(e.Expected) == 1 {
			b.WriteString(e.Expected[0])
		} else {
			b.WriteString("one of ")
			b.WriteString(strings.Join(e.Expected, ", "))
		}
	}
	return b.String()
}

// Unwrap returns ErrSyntax.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// ExpectedContains reports whether desc is in the expected set.
func (e *SyntaxError) ExpectedContains(desc string) bool {
	for _, s := range e.Expected {
		if s == desc {
			return true
		}
	}
	return false
}

// bailout carries an error up through the recursive descent. It is only
// ever recovered inside this package.
type bailout struct {
	err error
}

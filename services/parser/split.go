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
	"github.com/AleutianAI/sqlfront/services/parser/lexer"
)

// Piece is one statement cut out of a batch.
type Piece struct {
	// Text runs from the first to the last significant token of the
	// statement. The terminating semicolon is not included.
	Text string

	// Offset, Line and Column locate Text in the batch.
	Offset int
	Line   int
	Column int
}

// SplitStatements cuts src at top-level semicolons. Empty statements and
// trivia between statements are dropped. Semicolons inside string
// constants, comments and BEGIN ATOMIC ... END function bodies do not
// split.
//
// The only error is the first lexical error in src.
func SplitStatements(src string) ([]Piece, error) {
	var (
		pieces []Piece
		first  *lexer.Token
		last   lexer.Token
		prev   lexer.Token

		atomicDepth int
		caseDepth   int
	)

	flush := func() {
		if first == nil {
			return
		}
		pieces = append(pieces, Piece{
			Text:   src[first.Offset:last.End],
			Offset: first.Offset,
			Line:   first.Line,
			Column: first.Column,
		})
		first = nil
	}

	for tok, err := range lexer.New(src).All() {
		if err != nil {
			return nil, err
		}
		if tok.Hidden() {
			continue
		}
		switch {
		case tok.Kind == lexer.EOF:
			flush()
			return pieces, nil
		case tok.Kind == lexer.Semicolon && atomicDepth == 0:
			flush()
			prev = tok
			continue
		case tok.IsKeyword("atomic") && prev.IsKeyword("begin"):
			atomicDepth++
		case atomicDepth > 0 && tok.IsKeyword("case"):
			caseDepth++
		case atomicDepth > 0 && tok.IsKeyword("end"):
			if caseDepth > 0 {
				caseDepth--
			} else {
				atomicDepth--
			}
		}
		if first == nil {
			t := tok
			first = &t
		}
		last = tok
		prev = tok
	}
	flush()
	return pieces, nil
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package keywords classifies SQL words into PostgreSQL keyword classes.
//
// # Description
//
// Whether a word may be used as a column name, a function or type name, or
// a label depends on its class. Tables are immutable values; the grammar
// receives one by reference, so several dialect variants (for example two
// PostgreSQL versions) can be used side by side in one process.
//
// # Thread Safety
//
// A Table is never modified after construction and is safe for concurrent
// use.
package keywords

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Class is the reservation class of a word.
type Class int

const (
	// NotKeyword is the class of ordinary identifiers.
	NotKeyword Class = iota

	// Unreserved keywords can be used anywhere an identifier can.
	Unreserved

	// ColName keywords can be column names but not function or type names.
	ColName

	// TypeFuncName keywords can be function or type names but not column
	// names.
	TypeFuncName

	// Reserved keywords are only usable as labels (after AS) or quoted.
	Reserved
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case NotKeyword:
		return "not_keyword"
	case Unreserved:
		return "unreserved"
	case ColName:
		return "col_name"
	case TypeFuncName:
		return "type_func_name"
	case Reserved:
		return "reserved"
	default:
		return fmt.Sprintf("Class(%d)", int(c))
	}
}

// Entry describes one keyword.
type Entry struct {
	// Word is the lower-case keyword.
	Word string

	// Class is the reservation class.
	Class Class

	// AsLabelOnly marks keywords that may name an output column only when
	// introduced by AS (they cannot be a bare column label).
	AsLabelOnly bool
}

var (
	// ErrDuplicateKeyword is returned when a table definition lists a word
	// twice.
	ErrDuplicateKeyword = errors.New("duplicate keyword")

	// ErrInvalidKeyword is returned for empty or non-lower-case words.
	ErrInvalidKeyword = errors.New("invalid keyword")
)

// Table is an immutable keyword table for one dialect variant.
type Table struct {
	name    string
	version string
	words   map[string]Entry
}

// NewTable builds a table from entries. Words must be lower case and
// unique.
func NewTable(name, version string, entries []Entry) (*Table, error) {
	t := &Table{name: name, version: version, words: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		if e.Word == "" || e.Word != strings.ToLower(e.Word) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidKeyword, e.Word)
		}
		if e.Class == NotKeyword {
			return nil, fmt.Errorf("%w: %q has class not_keyword", ErrInvalidKeyword, e.Word)
		}
		if _, dup := t.words[e.Word]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKeyword, e.Word)
		}
		t.words[e.Word] = e
	}
	return t, nil
}

// Name returns the dialect name.
func (t *Table) Name() string { return t.name }

// Version returns the dialect version label.
func (t *Table) Version() string { return t.version }

// Len returns the number of keywords.
func (t *Table) Len() int { return len(t.words) }

// Classify returns the class of word. Matching is case-insensitive.
// Words not in the table are NotKeyword.
func (t *Table) Classify(word string) Class {
	if e, ok := t.words[lower(word)]; ok {
		return e.Class
	}
	return NotKeyword
}

// Lookup returns the entry for word, if it is a keyword.
func (t *Table) Lookup(word string) (Entry, bool) {
	e, ok := t.words[lower(word)]
	return e, ok
}

// IsReserved reports whether word is a fully reserved keyword.
func (t *Table) IsReserved(word string) bool {
	return t.Classify(word) == Reserved
}

// IsBareLabel reports whether word may be used as an output column label
// without AS.
func (t *Table) IsBareLabel(word string) bool {
	e, ok := t.words[lower(word)]
	if !ok {
		return true
	}
	return !e.AsLabelOnly && e.Class != Reserved
}

// Words returns the sorted keywords of class c.
func (t *Table) Words(c Class) []string {
	var out []string
	for w, e := range t.words {
		if e.Class == c {
			out = append(out, w)
		}
	}
	slices.Sort(out)
	return out
}

// Derive returns a new table that starts from t and applies overrides.
// An override with class NotKeyword removes the word. The receiver is not
// modified.
func (t *Table) Derive(name, version string, overrides ...Entry) (*Table, error) {
	words := make(map[string]Entry, len(t.words)+len(overrides))
	for w, e := range t.words {
		words[w] = e
	}
	for _, o := range overrides {
		if o.Word == "" || o.Word != strings.ToLower(o.Word) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidKeyword, o.Word)
		}
		if o.Class == NotKeyword {
			delete(words, o.Word)
			continue
		}
		words[o.Word] = o
	}
	return &Table{name: name, version: version, words: words}, nil
}

func lower(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			return strings.ToLower(s)
		}
	}
	return s
}

// =============================================================================
// PostgreSQL
// =============================================================================

var (
	postgresOnce  sync.Once
	postgresTable *Table
)

// PostgreSQL returns the shared PostgreSQL 17 keyword table.
func PostgreSQL() *Table {
	postgresOnce.Do(func() {
		t, err := NewTable("postgresql", "17", postgresEntries())
		if err != nil {
			panic(fmt.Sprintf("keywords: built-in postgresql table: %v", err))
		}
		postgresTable = t
	})
	return postgresTable
}

func postgresEntries() []Entry {
	asLabel := make(map[string]bool, len(postgresAsLabelOnly))
	for _, w := range postgresAsLabelOnly {
		asLabel[w] = true
	}

	var entries []Entry
	add := func(class Class, words []string) {
		for _, w := range words {
			entries = append(entries, Entry{Word: w, Class: class, AsLabelOnly: asLabel[w]})
		}
	}
	add(Reserved, postgresReserved)
	add(TypeFuncName, postgresTypeFuncName)
	add(ColName, postgresColName)
	add(Unreserved, postgresUnreserved)
	return entries
}

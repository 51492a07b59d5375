// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package statement

import "strings"

// Identifier is a normalized SQL name. Unquoted names are folded to lower
// case; quoted names keep their spelling and set Quoted.
type Identifier struct {
	Value  string
	Quoted bool
}

// Ident returns an unquoted identifier.
func Ident(value string) Identifier { return Identifier{Value: value} }

// QuotedIdent returns a quoted identifier.
func QuotedIdent(value string) Identifier { return Identifier{Value: value, Quoted: true} }

// IsZero reports whether the identifier is absent.
func (i Identifier) IsZero() bool { return i.Value == "" && !i.Quoted }

// String returns the normalized value.
func (i Identifier) String() string { return i.Value }

// Identifiers builds unquoted identifiers from values.
func Identifiers(values ...string) []Identifier {
	out := make([]Identifier, len(values))
	for i, v := range values {
		out[i] = Ident(v)
	}
	return out
}

// QualifiedName is a possibly schema- and catalog-qualified object name.
type QualifiedName struct {
	Catalog Identifier
	Schema  Identifier
	Name    Identifier
}

// Name returns an unqualified, unquoted name.
func Name(name string) QualifiedName { return QualifiedName{Name: Ident(name)} }

// NameFromParts maps one to three dotted parts onto a QualifiedName, the
// last part being the object name. It reports false for any other count.
func NameFromParts(parts []Identifier) (QualifiedName, bool) {
	switch len(parts) {
	case 1:
		return QualifiedName{Name: parts[0]}, true
	case 2:
		return QualifiedName{Schema: parts[0], Name: parts[1]}, true
	case 3:
		return QualifiedName{Catalog: parts[0], Schema: parts[1], Name: parts[2]}, true
	}
	return QualifiedName{}, false
}

// IsZero reports whether the name is absent.
func (q QualifiedName) IsZero() bool { return q.Name.IsZero() }

// Parts returns the present parts, outermost first.
func (q QualifiedName) Parts() []Identifier {
	var out []Identifier
	if !q.Catalog.IsZero() {
		out = append(out, q.Catalog)
	}
	if !q.Schema.IsZero() {
		out = append(out, q.Schema)
	}
	if !q.Name.IsZero() {
		out = append(out, q.Name)
	}
	return out
}

// String joins the normalized parts with dots, e.g. "public.orders".
func (q QualifiedName) String() string {
	parts := q.Parts()
	s := make([]string, len(parts))
	for i, p := range parts {
		s[i] = p.Value
	}
	return strings.Join(s, ".")
}

// Relation names a table in FROM, UPDATE, ALTER TABLE and similar
// positions. Only is set for ONLY name; Star for an explicit trailing '*'.
type Relation struct {
	Name QualifiedName
	Only bool
	Star bool
}

// Alias is AS name [(columns)].
type Alias struct {
	Name    Identifier
	Columns []Identifier
}

// RoleSpec is a role name or one of CURRENT_ROLE, CURRENT_USER and
// SESSION_USER, held upper case in Special.
type RoleSpec struct {
	Name    Identifier
	Special string
}

// Option is a storage parameter or generic option: [namespace.]name [= value].
// Value is nil when no value was given.
type Option struct {
	Namespace Identifier
	Name      Identifier
	Value     Expr
}

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

// Canonical spellings of the SQL-standard types in DataType.Builtin.
// Synonyms are folded: INT to integer, DEC and DECIMAL to numeric, CHAR,
// NCHAR and NATIONAL CHARACTER to character, VARCHAR to character varying.
const (
	TypeInteger          = "integer"
	TypeSmallint         = "smallint"
	TypeBigint           = "bigint"
	TypeReal             = "real"
	TypeBoolean          = "boolean"
	TypeFloat            = "float"
	TypeDoublePrecision  = "double precision"
	TypeNumeric          = "numeric"
	TypeBit              = "bit"
	TypeBitVarying       = "bit varying"
	TypeCharacter        = "character"
	TypeCharacterVarying = "character varying"
	TypeTimestamp        = "timestamp"
	TypeTime             = "time"
	TypeInterval         = "interval"
)

// DataType is a type name. Exactly one of Name (a user or catalog type such
// as text or public.mood) and Builtin (a SQL-standard type with special
// syntax) is set.
type DataType struct {
	Name    QualifiedName
	Builtin string

	// Modifiers are the parenthesized type modifiers, e.g. (10, 2).
	Modifiers []Expr

	// TimeZone is set for TIMESTAMP and TIME WITH TIME ZONE.
	TimeZone bool

	// IntervalFields restricts an interval, e.g. "YEAR TO MONTH".
	IntervalFields string

	// ArrayBounds holds one entry per array dimension; -1 means the
	// dimension has no declared size.
	ArrayBounds []int

	// Setof marks SETOF type in function signatures.
	Setof bool
}

// BuiltinType returns a DataType for one of the Type constants.
func BuiltinType(name string) *DataType { return &DataType{Builtin: name} }

// NamedType returns a DataType for an unqualified user or catalog type.
func NamedType(name string) *DataType { return &DataType{Name: Name(name)} }

// IsArray reports whether the type has array dimensions.
func (t *DataType) IsArray() bool { return len(t.ArrayBounds) > 0 }

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package builder

import (
	"strconv"
	"strings"

	"github.com/AleutianAI/sqlfront/services/parser/cst"
	"github.com/AleutianAI/sqlfront/services/parser/lexer"
	"github.com/AleutianAI/sqlfront/services/parser/statement"
)

// dataType reads a TypeName node, or a bare simple type node where the
// grammar omits the wrapper (sequence AS).
func (b *Builder) dataType(n *cst.Node) *statement.DataType {
	if n.Kind != cst.KindTypeName {
		return b.simpleType(n)
	}
	dt := b.simpleType(b.need(n, n.FirstNode()))
	dt.Setof = n.HasKeyword("setof")
	dt.ArrayBounds = arrayBounds(n)
	return dt
}

// arrayBounds reads the direct bracket terminals of a TypeName.
func arrayBounds(n *cst.Node) []int {
	var (
		out  []int
		open bool
		size int
	)
	array := n.HasKeyword("array")
	for _, t := range n.Terminals() {
		switch t.Token.Kind {
		case lexer.LBracket:
			open, size = true, -1
		case lexer.Integer:
			if open {
				size = atoiOr(t.Token.Value, -1)
			}
		case lexer.RBracket:
			out = append(out, size)
			open = false
		}
	}
	if array && len(out) == 0 {
		out = []int{-1}
	}
	return out
}

func (b *Builder) simpleType(n *cst.Node) *statement.DataType {
	switch n.Kind {
	case cst.KindNumericType:
		return b.numericType(n)
	case cst.KindBitType:
		dt := statement.BuiltinType(statement.TypeBit)
		if n.HasKeyword("varying") {
			dt.Builtin = statement.TypeBitVarying
		}
		dt.Modifiers = b.typeModifiers(n)
		return dt
	case cst.KindCharacterType:
		dt := statement.BuiltinType(statement.TypeCharacter)
		if n.HasKeyword("varchar") || n.HasKeyword("varying") {
			dt.Builtin = statement.TypeCharacterVarying
		}
		dt.Modifiers = intModifier(n)
		return dt
	case cst.KindDatetimeType:
		dt := statement.BuiltinType(statement.TypeTimestamp)
		if n.HasKeyword("time") && !n.HasKeyword("timestamp") {
			dt.Builtin = statement.TypeTime
		}
		dt.Modifiers = intModifier(n)
		dt.TimeZone = n.HasKeyword("with")
		return dt
	case cst.KindIntervalType:
		dt := statement.BuiltinType(statement.TypeInterval)
		dt.Modifiers = intModifier(n)
		if q := n.Child(cst.KindIntervalQualifier); q != nil {
			dt.IntervalFields = strings.ToUpper(q.Keywords())
			if m := intModifier(q); m != nil {
				dt.Modifiers = m
			}
		}
		return dt
	case cst.KindGenericType:
		dt := &statement.DataType{Modifiers: b.typeModifiers(n)}
		if len(n.Nodes()) == 0 || n.FirstNode().Kind == cst.KindTypeModifiers {
			// json is matched as a bare word.
			t := b.firstOp(n)
			dt.Name = statement.QualifiedName{Name: statement.Ident(t.Token.Value)}
			return dt
		}
		dt.Name = b.qualifiedName(n)
		return dt
	}
	b.fail(n, "unexpected %s in type", n.Kind.RuleName())
	return nil
}

func (b *Builder) numericType(n *cst.Node) *statement.DataType {
	ws := words(n)
	if len(ws) == 0 {
		b.fail(n, "empty type")
	}
	switch ws[0] {
	case "int", "integer":
		return statement.BuiltinType(statement.TypeInteger)
	case "float":
		dt := statement.BuiltinType(statement.TypeFloat)
		dt.Modifiers = intModifier(n)
		return dt
	case "double":
		return statement.BuiltinType(statement.TypeDoublePrecision)
	case "decimal", "dec", "numeric":
		dt := statement.BuiltinType(statement.TypeNumeric)
		dt.Modifiers = b.typeModifiers(n)
		return dt
	}
	return statement.BuiltinType(ws[0])
}

// typeModifiers reads the TypeModifiers child of n, if any.
func (b *Builder) typeModifiers(n *cst.Node) []statement.Expr {
	m := n.Child(cst.KindTypeModifiers)
	if m == nil {
		return nil
	}
	return b.exprs(m.Nodes())
}

// intModifier lifts a bare ( Integer ) precision into a modifier list.
func intModifier(n *cst.Node) []statement.Expr {
	t := n.TerminalOf(lexer.Integer)
	if t == nil {
		return nil
	}
	return []statement.Expr{integerLiteral(t.Token.Value)}
}

func atoiOr(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

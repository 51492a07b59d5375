// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package cst

import (
	"reflect"
	"strings"
	"testing"

	"github.com/AleutianAI/sqlfront/services/parser/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func term(kind lexer.Kind, text string, offset int) *Terminal {
	value := text
	if kind == lexer.Ident {
		value = strings.ToLower(text)
	}
	return &Terminal{Token: lexer.Token{Kind: kind, Text: text, Value: value, Offset: offset, End: offset + len(text)}}
}

// sample builds the tree for "DROP TABLE s.t" by hand.
func sample() (*Node, string) {
	src := "DROP TABLE s.t"
	name := NewNode(KindQualifiedName, 11)
	schema := NewNode(KindColId, 11)
	schema.Append(term(lexer.Ident, "s", 11))
	name.Append(schema)
	name.Append(term(lexer.Dot, ".", 12))
	label := NewNode(KindColLabel, 13)
	label.Append(term(lexer.Ident, "t", 13))
	name.Append(label)

	objType := NewNode(KindObjectType, 5)
	objType.Append(term(lexer.Ident, "TABLE", 5))

	root := NewNode(KindDropStatement, 0)
	root.Append(term(lexer.Ident, "DROP", 0))
	root.Append(objType)
	root.Append(name)
	return root, src
}

func TestKind_EveryKindIsNamedAndDispatched(t *testing.T) {
	visitor := reflect.TypeOf((*Visitor[int])(nil)).Elem()
	seen := make(map[string]Kind)

	for _, k := range Kinds() {
		name := k.String()
		require.NotEmpty(t, name, "kind %d has no name", k)
		if prev, dup := seen[name]; dup {
			t.Fatalf("kinds %d and %d share the name %q", prev, k, name)
		}
		seen[name] = k

		_, ok := visitor.MethodByName("Visit" + name)
		assert.True(t, ok, "Visitor has no method for %s", name)

		assert.NotPanics(t, func() {
			Accept[int](&BaseVisitor[int]{}, NewNode(k, 0))
		}, "Accept has no arm for %s", name)
	}
	assert.Equal(t, len(Kinds())+1, visitor.NumMethod(), "one method per kind plus VisitTerminal")
}

func TestKind_StringAndRuleName(t *testing.T) {
	assert.Equal(t, "CreateTable", KindCreateTable.String())
	assert.Equal(t, "createTable", KindCreateTable.RuleName())
	assert.Equal(t, "triggerName", KindTriggerName.RuleName())
	assert.Equal(t, "Kind(60000)", Kind(60000).String())
	assert.False(t, KindInvalid.Valid())
	assert.True(t, KindAlias.Valid())
}

func TestAccept_InvalidKindPanics(t *testing.T) {
	assert.Panics(t, func() {
		Accept[int](&BaseVisitor[int]{}, NewNode(KindInvalid, 0))
	})
}

func TestNode_AppendExtendsSpan(t *testing.T) {
	root, src := sample()
	assert.Equal(t, Span{Start: 0, End: len(src)}, root.Span())
	assert.Equal(t, "s.t", Text(src, root.Child(KindQualifiedName)))
}

func TestNode_TruncateAndRemoveLast(t *testing.T) {
	root, _ := sample()

	last := root.RemoveLast()
	require.NotNil(t, last)
	assert.Equal(t, KindQualifiedName, last.(*Node).Kind)
	assert.Equal(t, Span{Start: 0, End: 10}, root.Span())

	root.Truncate(0)
	assert.Empty(t, root.Children)
	assert.Equal(t, 0, root.Span().Len())
	assert.Nil(t, root.RemoveLast())
}

func TestNode_Accessors(t *testing.T) {
	root, _ := sample()

	assert.Len(t, root.Nodes(), 2)
	assert.Len(t, root.Terminals(), 1)
	assert.Equal(t, KindObjectType, root.FirstNode().Kind)
	assert.True(t, root.HasKeyword("drop"))
	assert.False(t, root.HasKeyword("table"), "keywords are direct children only")
	assert.Equal(t, "drop", root.FirstKeyword())
	assert.Equal(t, "table", root.Child(KindObjectType).Keywords())
	assert.Equal(t, KindQualifiedName, root.NodeAfter("drop", KindQualifiedName).Kind)
	assert.Nil(t, root.NodeAfter("cascade", KindQualifiedName))
	assert.Equal(t, "DROP", root.FirstTerminal().Token.Text)

	name := root.Child(KindQualifiedName)
	assert.NotNil(t, name.TerminalOf(lexer.Dot))
	assert.Len(t, name.ChildrenOf(KindColLabel), 1)
}

func TestWalk_PreAndPostOrder(t *testing.T) {
	root, _ := sample()

	var events []string
	Walk(&ListenerFuncs{
		Enter: map[Kind]func(*Node){
			KindDropStatement: func(*Node) { events = append(events, "enter drop") },
			KindQualifiedName: func(*Node) { events = append(events, "enter name") },
		},
		Exit: map[Kind]func(*Node){
			KindDropStatement: func(*Node) { events = append(events, "exit drop") },
			KindQualifiedName: func(*Node) { events = append(events, "exit name") },
		},
		Terminal: func(tm *Terminal) { events = append(events, tm.Token.Text) },
	}, root)

	assert.Equal(t, []string{
		"enter drop", "DROP", "TABLE", "enter name", "s", ".", "t", "exit name", "exit drop",
	}, events)
}

func TestFind(t *testing.T) {
	root, _ := sample()
	assert.Len(t, Find(root, KindColId), 1)
	assert.Len(t, Find(root, KindColLabel), 1)
	assert.Empty(t, Find(root, KindCreateTable))
}

// depthVisitor computes the maximum node depth through the default
// traversal, overriding only the aggregation.
type depthVisitor struct {
	BaseVisitor[int]
}

func (v *depthVisitor) VisitColId(*Node) int    { return 1 }
func (v *depthVisitor) VisitColLabel(*Node) int { return 1 }

func (v *depthVisitor) VisitQualifiedName(n *Node) int {
	return v.VisitChildren(n) + 1
}

func TestBaseVisitor_DispatchesThroughSelf(t *testing.T) {
	root, _ := sample()

	v := &depthVisitor{}
	v.Self = v
	v.Aggregate = func(acc, next int) int { return max(acc, next) }

	assert.Equal(t, 2, Accept[int](v, root))
}

func TestSprint(t *testing.T) {
	root, _ := sample()
	out := Sprint(root)

	assert.True(t, strings.HasPrefix(out, "DropStatement [0,14)\n"))
	assert.Contains(t, out, "\n  ObjectType [5,10)\n    Ident \"TABLE\"\n")
	assert.Contains(t, out, "\n    ColId [11,12)\n")
}

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
	"strings"

	"github.com/AleutianAI/sqlfront/services/parser/cst"
	"github.com/AleutianAI/sqlfront/services/parser/lexer"
	"github.com/AleutianAI/sqlfront/services/parser/statement"
)

// nodeBefore returns the first child node of kind k that precedes the
// keyword kw, or nil.
func nodeBefore(n *cst.Node, kw string, k cst.Kind) *cst.Node {
	for _, c := range n.Children {
		switch e := c.(type) {
		case *cst.Terminal:
			if e.IsKeyword(kw) {
				return nil
			}
		case *cst.Node:
			if e.Kind == k {
				return e
			}
		}
	}
	return nil
}

// alterObject reads the single AlterObjectCommand child of n.
func (b *Builder) alterObject(n *cst.Node) statement.AlterAction {
	return b.alterAction(b.needKind(n, cst.KindAlterObjectCommand))
}

// =============================================================================
// Indexes and views
// =============================================================================

func (b *Builder) VisitCreateIndex(n *cst.Node) any {
	s := &statement.CreateIndex{
		Unique:           n.HasKeyword("unique"),
		Concurrently:     n.HasKeyword("concurrently"),
		IfNotExists:      n.HasKeyword("exists"),
		Name:             b.identOf(nodeBefore(n, "on", cst.KindColId)),
		Table:            b.relation(b.needKind(n, cst.KindRelationExpr)),
		Method:           b.identOf(n.NodeAfter("using", cst.KindColId)),
		NullsNotDistinct: hasSequence(words(n), "nulls", "not", "distinct"),
		Options:          b.relOptions(n.Child(cst.KindRelOptions)),
		Tablespace:       b.identOf(n.NodeAfter("tablespace", cst.KindColId)),
		Where:            b.whereClause(n.Child(cst.KindWhereClause)),
	}
	for _, e := range n.ChildrenOf(cst.KindIndexElement) {
		s.Columns = append(s.Columns, b.indexElement(e))
	}
	if inc := n.Child(cst.KindIncludeClause); inc != nil {
		s.Include = b.columnList(inc.Child(cst.KindColumnList))
	}
	return s
}

func (b *Builder) indexElement(n *cst.Node) statement.IndexElement {
	var (
		ie    statement.IndexElement
		prev  string
		first = true
	)
	for _, c := range n.Children {
		switch el := c.(type) {
		case *cst.Terminal:
			if el.Token.Kind == lexer.Ident {
				prev = el.Token.Value
			}
		case *cst.Node:
			switch {
			case first && el.Kind == cst.KindColId:
				ie.Column = b.ident(el)
			case first:
				ie.Expr = b.expr(el)
			case el.Kind == cst.KindRelOptions:
				ie.OpClassOptions = b.relOptions(el)
			case prev == "collate":
				ie.Collation = b.qualifiedName(el)
			default:
				ie.OpClass = b.qualifiedName(el)
			}
			first, prev = false, ""
		}
	}
	switch {
	case n.HasKeyword("asc"):
		ie.Direction = "ASC"
	case n.HasKeyword("desc"):
		ie.Direction = "DESC"
	}
	ie.Nulls = strings.ToUpper(wordAfter(n, "nulls"))
	return ie
}

func (b *Builder) VisitAlterIndex(n *cst.Node) any {
	return &statement.AlterObject{
		ObjectType: "INDEX",
		IfExists:   n.HasKeyword("exists"),
		Name:       b.qualifiedName(b.needKind(n, cst.KindQualifiedName)),
		Action:     b.alterObject(n),
	}
}

func (b *Builder) VisitCreateView(n *cst.Node) any {
	s := &statement.CreateView{
		Replace:   n.HasKeyword("replace"),
		Temporary: n.HasKeyword("temp") || n.HasKeyword("temporary"),
		Recursive: n.HasKeyword("recursive"),
		Name:      b.qualifiedName(b.needKind(n, cst.KindQualifiedName)),
		Columns:   b.columnList(n.Child(cst.KindColumnList)),
		Options:   b.relOptions(n.Child(cst.KindRelOptions)),
		Query:     b.selectStatement(b.needKind(n, cst.KindSelectStatement)),
	}
	if n.HasKeyword("check") {
		s.CheckOption = "CASCADED"
		if n.HasKeyword("local") {
			s.CheckOption = "LOCAL"
		}
	}
	return s
}

func (b *Builder) VisitAlterView(n *cst.Node) any {
	return &statement.AlterObject{
		ObjectType: "VIEW",
		IfExists:   n.HasKeyword("exists"),
		Name:       b.qualifiedName(b.needKind(n, cst.KindQualifiedName)),
		Action:     b.alterObject(n),
	}
}

func (b *Builder) VisitCreateMaterializedView(n *cst.Node) any {
	return &statement.CreateMaterializedView{
		Unlogged:     n.HasKeyword("unlogged"),
		IfNotExists:  n.HasKeyword("exists"),
		Name:         b.qualifiedName(b.needKind(n, cst.KindQualifiedName)),
		Columns:      b.columnList(n.Child(cst.KindColumnList)),
		AccessMethod: b.identOf(n.NodeAfter("using", cst.KindColId)),
		Options:      b.relOptions(n.Child(cst.KindRelOptions)),
		Tablespace:   b.identOf(n.NodeAfter("tablespace", cst.KindColId)),
		Query:        b.selectStatement(b.needKind(n, cst.KindSelectStatement)),
		WithData:     withData(n),
	}
}

func (b *Builder) VisitRefreshMaterializedView(n *cst.Node) any {
	return &statement.RefreshMaterializedView{
		Concurrently: n.HasKeyword("concurrently"),
		Name:         b.qualifiedName(b.needKind(n, cst.KindQualifiedName)),
		WithData:     withData(n),
	}
}

func (b *Builder) VisitAlterMaterializedView(n *cst.Node) any {
	return &statement.AlterObject{
		ObjectType: "MATERIALIZED VIEW",
		IfExists:   n.HasKeyword("exists"),
		Name:       b.qualifiedName(b.needKind(n, cst.KindQualifiedName)),
		Action:     b.alterObject(n),
	}
}

func (b *Builder) VisitAlterTrigger(n *cst.Node) any {
	return &statement.AlterObject{
		ObjectType: "TRIGGER",
		Name:       statement.QualifiedName{Name: b.ident(b.needKind(n, cst.KindTriggerName))},
		Table:      b.qualifiedName(b.needKind(n, cst.KindQualifiedName)),
		Action:     b.alterObject(n),
	}
}

func (b *Builder) VisitAlterSchema(n *cst.Node) any {
	return &statement.AlterObject{
		ObjectType: "SCHEMA",
		Name:       b.singleName(b.needKind(n, cst.KindColId)),
		Action:     b.alterObject(n),
	}
}

func (b *Builder) VisitAlterTablespace(n *cst.Node) any {
	return &statement.AlterObject{
		ObjectType: "TABLESPACE",
		Name:       b.singleName(b.needKind(n, cst.KindColId)),
		Action:     b.alterObject(n),
	}
}

// =============================================================================
// Sequences
// =============================================================================

func (b *Builder) VisitCreateSequence(n *cst.Node) any {
	return &statement.CreateSequence{
		Persistence: persistence(n),
		IfNotExists: n.HasKeyword("exists"),
		Name:        b.qualifiedName(b.needKind(n, cst.KindQualifiedName)),
		Options:     b.sequenceOptions(n.ChildrenOf(cst.KindSequenceOption)),
	}
}

func (b *Builder) VisitAlterSequence(n *cst.Node) any {
	s := &statement.AlterSequence{
		IfExists: n.HasKeyword("exists"),
		Name:     b.qualifiedName(b.needKind(n, cst.KindQualifiedName)),
		Options:  b.sequenceOptions(n.ChildrenOf(cst.KindSequenceOption)),
	}
	if s.Options == nil {
		s.Action = b.alterObject(n)
	}
	return s
}

func (b *Builder) sequenceOptions(nodes []*cst.Node) []statement.SequenceOption {
	var out []statement.SequenceOption
	for _, n := range nodes {
		out = append(out, b.sequenceOption(n))
	}
	return out
}

func (b *Builder) sequenceOption(n *cst.Node) statement.SequenceOption {
	ws := words(n)
	if len(ws) == 0 {
		b.fail(n, "empty sequence option")
	}
	var o statement.SequenceOption
	value := func() {
		if v := n.FirstNode(); v != nil {
			o.Value = b.expr(v)
		}
	}
	switch ws[0] {
	case "as":
		o.Name = statement.SeqAs
		o.Type = b.dataType(b.need(n, n.FirstNode()))
	case "increment":
		o.Name = statement.SeqIncrementBy
		value()
	case "minvalue":
		o.Name = statement.SeqMinValue
		value()
	case "maxvalue":
		o.Name = statement.SeqMaxValue
		value()
	case "no":
		o.Name = "NO " + strings.ToUpper(ws[1])
	case "start":
		o.Name = statement.SeqStartWith
		value()
	case "restart":
		o.Name = statement.SeqRestart
		value()
	case "cache":
		o.Name = statement.SeqCache
		value()
	case "cycle":
		o.Name = statement.SeqCycle
	case "owned":
		o.Name = statement.SeqOwnedBy
		o.Target = b.qualifiedName(n.Child(cst.KindQualifiedName))
	case "sequence":
		o.Name = statement.SeqSequenceName
		o.Target = b.qualifiedName(b.needKind(n, cst.KindQualifiedName))
	default:
		b.fail(n, "unknown sequence option %q", ws[0])
	}
	return o
}

// =============================================================================
// Types and domains
// =============================================================================

func (b *Builder) VisitCreateType(n *cst.Node) any {
	s := &statement.CreateType{Name: b.qualifiedName(b.needKind(n, cst.KindQualifiedName))}
	switch {
	case n.HasKeyword("enum"):
		s.Form = statement.TypeFormEnum
		for _, c := range n.ChildrenOf(cst.KindConstant) {
			s.Labels = append(s.Labels, b.stringConst(c))
		}
	case n.HasKeyword("range"):
		s.Form = statement.TypeFormRange
		s.Definition = b.defElems(n)
	case n.HasKeyword("as"):
		s.Form = statement.TypeFormComposite
		for _, c := range n.ChildrenOf(cst.KindTypeAttribute) {
			s.Attributes = append(s.Attributes, b.typeAttribute(c))
		}
	case n.TerminalOf(lexer.LParen) != nil:
		s.Form = statement.TypeFormBase
		s.Definition = b.defElems(n)
	default:
		s.Form = statement.TypeFormShell
	}
	return s
}

func (b *Builder) typeAttribute(n *cst.Node) statement.TypeAttribute {
	return statement.TypeAttribute{
		Name:      b.ident(b.needKind(n, cst.KindColId)),
		Type:      b.dataType(b.needKind(n, cst.KindTypeName)),
		Collation: b.qualifiedName(n.NodeAfter("collate", cst.KindQualifiedName)),
	}
}

func (b *Builder) defElems(n *cst.Node) []statement.DefElem {
	var out []statement.DefElem
	for _, d := range n.ChildrenOf(cst.KindDefinitionElement) {
		nodes := d.Nodes()
		e := statement.DefElem{Name: b.ident(b.need(d, d.FirstNode()))}
		if len(nodes) > 1 {
			switch v := nodes[1]; v.Kind {
			case cst.KindTypeName:
				e.Type = b.dataType(v)
			case cst.KindColLabel:
				e.Value = b.word(v)
			default:
				e.Value = b.expr(v)
			}
		}
		out = append(out, e)
	}
	return out
}

func (b *Builder) VisitAlterType(n *cst.Node) any {
	s := &statement.AlterType{Name: b.qualifiedName(b.needKind(n, cst.KindQualifiedName))}
	if oc := n.Child(cst.KindAlterObjectCommand); oc != nil {
		s.Actions = []statement.AlterAction{b.alterAction(oc)}
		return s
	}
	for _, cmd := range n.ChildrenOf(cst.KindAlterTypeCmd) {
		s.Actions = append(s.Actions, b.alterTypeCmd(cmd))
	}
	if len(s.Actions) == 0 {
		b.fail(n, "ALTER TYPE needs an action")
	}
	return s
}

func (b *Builder) alterTypeCmd(n *cst.Node) statement.AlterAction {
	ws := words(n)
	if len(ws) < 2 {
		b.fail(n, "incomplete ALTER TYPE action")
	}
	consts := n.ChildrenOf(cst.KindConstant)
	switch ws[0] + " " + ws[1] {
	case "add value":
		a := &statement.AddEnumValue{
			IfNotExists: n.HasKeyword("exists"),
			Value:       b.stringConst(b.needKind(n, cst.KindConstant)),
		}
		for _, pos := range []string{"before", "after"} {
			if n.HasKeyword(pos) && len(consts) > 1 {
				a.Position = strings.ToUpper(pos)
				a.Neighbor = b.stringConst(consts[1])
			}
		}
		return a
	case "rename value":
		if len(consts) != 2 {
			b.fail(n, "RENAME VALUE needs two labels")
		}
		return &statement.RenameEnumValue{Old: b.stringConst(consts[0]), New: b.stringConst(consts[1])}
	case "rename attribute":
		ids := n.ChildrenOf(cst.KindColId)
		if len(ids) != 2 {
			b.fail(n, "RENAME ATTRIBUTE needs an old and a new name")
		}
		return &statement.Rename{
			Target:   statement.RenameAttribute,
			Old:      b.ident(ids[0]),
			New:      b.ident(ids[1]),
			Behavior: behavior(n),
		}
	case "add attribute":
		return &statement.AddAttribute{
			Attribute: b.typeAttribute(b.needKind(n, cst.KindTypeAttribute)),
			Behavior:  behavior(n),
		}
	case "drop attribute":
		return &statement.DropAttribute{
			IfExists: n.HasKeyword("exists"),
			Name:     b.ident(b.needKind(n, cst.KindColId)),
			Behavior: behavior(n),
		}
	case "alter attribute":
		return &statement.AlterAttribute{
			Attribute: b.typeAttribute(n),
			Behavior:  behavior(n),
		}
	}
	b.fail(n, "unknown ALTER TYPE action %q", strings.Join(ws, " "))
	return nil
}

func (b *Builder) VisitCreateDomain(n *cst.Node) any {
	s := &statement.CreateDomain{
		Name:      b.qualifiedName(b.needKind(n, cst.KindQualifiedName)),
		Type:      b.dataType(b.needKind(n, cst.KindTypeName)),
		Collation: b.qualifiedName(n.NodeAfter("collate", cst.KindQualifiedName)),
	}
	for _, c := range n.ChildrenOf(cst.KindColumnConstraint) {
		s.Constraints = append(s.Constraints, b.columnConstraint(c))
	}
	return s
}

// VisitAlterDomain reads the action that follows the domain name. Apart
// from the shared actions, the grammar keeps the action inline, so it is
// lifted into a node of its own before alterAction reads it.
func (b *Builder) VisitAlterDomain(n *cst.Node) any {
	s := &statement.AlterDomain{Name: b.qualifiedName(b.needKind(n, cst.KindQualifiedName))}
	if oc := n.Child(cst.KindAlterObjectCommand); oc != nil {
		s.Action = b.alterAction(oc)
		return s
	}
	for i, c := range n.Children {
		if qn, ok := c.(*cst.Node); ok && qn.Kind == cst.KindQualifiedName {
			tail := &cst.Node{Kind: cst.KindAlterDomain, Children: n.Children[i+1:]}
			s.Action = b.alterAction(tail)
			break
		}
	}
	return s
}

// =============================================================================
// Triggers and policies
// =============================================================================

func (b *Builder) VisitCreateTrigger(n *cst.Node) any {
	s := &statement.CreateTrigger{
		Replace:    n.HasKeyword("replace"),
		Constraint: n.HasKeyword("constraint"),
		Name:       b.ident(b.needKind(n, cst.KindTriggerName)),
		Table:      b.qualifiedName(n.NodeAfter("on", cst.KindQualifiedName)),
		From:       b.qualifiedName(n.NodeAfter("from", cst.KindQualifiedName)),
		Attributes: constraintAttributes(n),
		When:       b.exprAfter(n, "when"),
		Function:   b.qualifiedName(b.needKind(n, cst.KindFuncName)),
	}
	switch {
	case n.HasKeyword("before"):
		s.Timing = "BEFORE"
	case n.HasKeyword("after"):
		s.Timing = "AFTER"
	default:
		s.Timing = "INSTEAD OF"
	}
	for _, e := range n.ChildrenOf(cst.KindTriggerEvent) {
		s.Events = append(s.Events, statement.TriggerEvent{
			Event:   strings.ToUpper(e.FirstKeyword()),
			Columns: b.idents(e.ChildrenOf(cst.KindColId)),
		})
	}
	for _, r := range n.ChildrenOf(cst.KindTriggerReferencing) {
		s.Referencing = append(s.Referencing, statement.TriggerTransition{
			New:   r.HasKeyword("new"),
			Table: r.HasKeyword("table"),
			Name:  b.ident(b.needKind(r, cst.KindColId)),
		})
	}
	if n.HasKeyword("for") {
		s.ForEach = "STATEMENT"
		if n.HasKeyword("row") {
			s.ForEach = "ROW"
		}
	}
	args := false
	for _, c := range n.Nodes() {
		switch {
		case c.Kind == cst.KindFuncName:
			args = true
		case !args:
		case c.Kind == cst.KindColLabel:
			s.Args = append(s.Args, b.word(c))
		default:
			s.Args = append(s.Args, b.expr(c))
		}
	}
	return s
}

func (b *Builder) VisitCreatePolicy(n *cst.Node) any {
	return &statement.CreatePolicy{
		Name:      b.ident(b.needKind(n, cst.KindColId)),
		Table:     b.qualifiedName(b.needKind(n, cst.KindQualifiedName)),
		Type:      strings.ToUpper(wordAfter(n, "as")),
		Command:   strings.ToUpper(wordAfter(n, "for")),
		Roles:     b.roleSpecs(n.ChildrenOf(cst.KindRoleSpec)),
		Using:     b.exprAfter(n, "using"),
		WithCheck: b.exprAfter(n, "check"),
	}
}

func (b *Builder) VisitAlterPolicy(n *cst.Node) any {
	ids := n.ChildrenOf(cst.KindColId)
	s := &statement.AlterPolicy{
		Name:      b.ident(b.need(n, n.Child(cst.KindColId))),
		Table:     b.qualifiedName(b.needKind(n, cst.KindQualifiedName)),
		Roles:     b.roleSpecs(n.ChildrenOf(cst.KindRoleSpec)),
		Using:     b.exprAfter(n, "using"),
		WithCheck: b.exprAfter(n, "check"),
	}
	if n.HasKeyword("rename") {
		if len(ids) != 2 {
			b.fail(n, "RENAME TO needs a name")
		}
		s.NewName = b.ident(ids[1])
	}
	return s
}

// =============================================================================
// Extensions and replication
// =============================================================================

// versionAfter reads the word or string that follows kw.
func (b *Builder) versionAfter(n *cst.Node, kw string) string {
	v := nodeAfter(n, kw)
	if v == nil || !n.HasKeyword(kw) {
		return ""
	}
	if v.Kind == cst.KindConstant {
		return b.stringConst(v)
	}
	return b.ident(v).Value
}

func (b *Builder) VisitCreateExtension(n *cst.Node) any {
	return &statement.CreateExtension{
		IfNotExists: n.HasKeyword("exists"),
		Name:        b.ident(b.needKind(n, cst.KindColId)),
		Schema:      b.identOf(n.NodeAfter("schema", cst.KindColId)),
		Version:     b.versionAfter(n, "version"),
		Cascade:     n.HasKeyword("cascade"),
	}
}

func (b *Builder) VisitAlterExtension(n *cst.Node) any {
	s := &statement.AlterExtension{Name: b.ident(b.needKind(n, cst.KindColId))}
	switch ws := words(n); {
	case n.HasKeyword("update"):
		s.Update = true
		s.Version = b.versionAfter(n, "to")
	case len(ws) > 2 && (ws[2] == "add" || ws[2] == "drop"):
		s.Member = strings.ToUpper(ws[2])
		s.Object = b.objectRef(n)
	default:
		s.Action = b.alterObject(n)
	}
	return s
}

func (b *Builder) VisitCreatePublication(n *cst.Node) any {
	return &statement.CreatePublication{
		Name:      b.ident(b.needKind(n, cst.KindColId)),
		AllTables: n.HasKeyword("all"),
		Objects:   b.publicationObjects(n.ChildrenOf(cst.KindPublicationObject)),
		Options:   b.relOptions(n.Child(cst.KindRelOptions)),
	}
}

// publicationObjects reads a publication object list. A bare name takes
// the type of the object before it.
func (b *Builder) publicationObjects(nodes []*cst.Node) []statement.PublicationObject {
	var (
		out  []statement.PublicationObject
		prev = statement.PublicationTable
	)
	for _, n := range nodes {
		var o statement.PublicationObject
		switch {
		case n.HasKeyword("schema"), n.HasKeyword("current_schema"):
			o.Type = statement.PublicationTablesInSchema
			o.CurrentSchema = n.HasKeyword("current_schema")
			o.Schema = b.identOf(n.Child(cst.KindColId))
		case n.HasKeyword("table") || prev == statement.PublicationTable:
			o.Type = statement.PublicationTable
			o.Table = b.relation(b.needKind(n, cst.KindRelationExpr))
			o.Columns = b.columnList(n.Child(cst.KindColumnList))
			o.Where = b.exprAfter(n, "where")
		default:
			o.Type = statement.PublicationTablesInSchema
			rel := b.relation(b.needKind(n, cst.KindRelationExpr))
			if !rel.Name.Schema.IsZero() {
				b.fail(n, "schema name cannot be qualified")
			}
			o.Schema = rel.Name.Name
		}
		prev = o.Type
		out = append(out, o)
	}
	return out
}

func (b *Builder) VisitAlterPublication(n *cst.Node) any {
	s := &statement.AlterPublication{Name: b.ident(b.needKind(n, cst.KindColId))}
	if oc := n.Child(cst.KindAlterObjectCommand); oc != nil {
		s.Action = b.alterAction(oc)
		return s
	}
	s.Operation = strings.ToUpper(wordAfter(n, "publication"))
	s.Objects = b.publicationObjects(n.ChildrenOf(cst.KindPublicationObject))
	s.Options = b.relOptions(n.Child(cst.KindRelOptions))
	return s
}

func (b *Builder) VisitCreateSubscription(n *cst.Node) any {
	return &statement.CreateSubscription{
		Name:         b.ident(b.needKind(n, cst.KindColId)),
		Connection:   b.stringConst(b.needKind(n, cst.KindConstant)),
		Publications: b.idents(n.ChildrenOf(cst.KindColLabel)),
		Options:      b.relOptions(n.Child(cst.KindRelOptions)),
	}
}

func (b *Builder) VisitAlterSubscription(n *cst.Node) any {
	s := &statement.AlterSubscription{Name: b.ident(b.needKind(n, cst.KindColId))}
	if oc := n.Child(cst.KindAlterObjectCommand); oc != nil {
		s.Action = b.alterAction(oc)
		return s
	}
	ws := words(n)[2:]
	if len(ws) == 0 {
		b.fail(n, "ALTER SUBSCRIPTION needs an action")
	}
	switch ws[0] {
	case "connection":
		s.Operation = statement.SubscriptionConnection
		s.Connection = b.stringConst(b.needKind(n, cst.KindConstant))
	case "set", "add", "drop", "refresh":
		s.Operation = strings.ToUpper(ws[0]) + " PUBLICATION"
	case "enable":
		s.Operation = statement.SubscriptionEnable
	case "disable":
		s.Operation = statement.SubscriptionDisable
	case "skip":
		s.Operation = statement.SubscriptionSkip
	}
	s.Publications = b.idents(n.ChildrenOf(cst.KindColLabel))
	s.Options = b.relOptions(n.Child(cst.KindRelOptions))
	return s
}

// =============================================================================
// Schemas, databases and tablespaces
// =============================================================================

func (b *Builder) VisitCreateSchema(n *cst.Node) any {
	s := &statement.CreateSchema{
		IfNotExists:   n.HasKeyword("exists"),
		Name:          b.identOf(n.Child(cst.KindColId)),
		Authorization: b.roleSpecAfter(n, "authorization"),
	}
	for _, c := range n.Nodes() {
		switch c.Kind {
		case cst.KindCreateTable, cst.KindCreateView, cst.KindCreateIndex,
			cst.KindCreateSequence, cst.KindCreateTrigger:
			s.Elements = append(s.Elements, b.statement(c))
		}
	}
	return s
}

func (b *Builder) VisitCreateDatabase(n *cst.Node) any {
	return &statement.CreateDatabase{
		Name:    b.ident(b.needKind(n, cst.KindColId)),
		Options: b.databaseOptions(n),
	}
}

func (b *Builder) databaseOptions(n *cst.Node) []statement.DatabaseOption {
	var out []statement.DatabaseOption
	for _, o := range n.ChildrenOf(cst.KindDatabaseOption) {
		nodes := o.Nodes()
		opt := statement.DatabaseOption{Default: o.HasKeyword("default")}
		if o.HasKeyword("connection") {
			opt.Name = "CONNECTION LIMIT"
		} else {
			opt.Name = strings.ToUpper(b.ident(b.need(o, o.FirstNode())).Value)
			nodes = nodes[1:]
		}
		if len(nodes) > 0 && !opt.Default {
			if v := nodes[0]; v.Kind == cst.KindColLabel {
				opt.Value = b.word(v)
			} else {
				opt.Value = b.expr(v)
			}
		}
		out = append(out, opt)
	}
	return out
}

func (b *Builder) VisitAlterDatabase(n *cst.Node) any {
	s := &statement.AlterDatabase{Name: b.ident(b.needKind(n, cst.KindColId))}
	switch {
	case n.Child(cst.KindAlterObjectCommand) != nil:
		s.Action = b.alterObject(n)
	case n.Child(cst.KindSetConfiguration) != nil:
		s.Set = b.setConfiguration(n.Child(cst.KindSetConfiguration))
	case n.HasKeyword("reset"):
		s.ResetAll = n.HasKeyword("all")
		s.Reset = b.configName(n.Nodes()[1:])
	case n.HasKeyword("refresh"):
		s.RefreshCollationVersion = true
	default:
		s.Options = b.databaseOptions(n)
	}
	return s
}

func (b *Builder) setConfiguration(n *cst.Node) *statement.SetConfig {
	sc := &statement.SetConfig{
		Default:     n.HasKeyword("default"),
		FromCurrent: n.HasKeyword("current"),
		Name:        b.configName(n.Nodes()),
	}
	for _, c := range n.Nodes() {
		switch c.Kind {
		case cst.KindNonReservedWord:
			sc.Values = append(sc.Values, b.word(c))
		case cst.KindConstant, cst.KindSignedNumber:
			sc.Values = append(sc.Values, b.expr(c))
		}
	}
	return sc
}

func (b *Builder) VisitDropDatabase(n *cst.Node) any {
	return &statement.DropDatabase{
		IfExists: n.HasKeyword("exists"),
		Name:     b.ident(b.needKind(n, cst.KindColId)),
		Force:    n.HasKeyword("force"),
	}
}

func (b *Builder) VisitCreateTablespace(n *cst.Node) any {
	return &statement.CreateTablespace{
		Name:     b.ident(b.needKind(n, cst.KindColId)),
		Owner:    b.roleSpecAfter(n, "owner"),
		Location: b.stringConst(b.needKind(n, cst.KindConstant)),
		Options:  b.relOptions(n.Child(cst.KindRelOptions)),
	}
}

// =============================================================================
// Functions and procedures
// =============================================================================

func (b *Builder) VisitCreateFunction(n *cst.Node) any {
	s := &statement.CreateFunction{
		Replace:   n.HasKeyword("replace"),
		Procedure: n.HasKeyword("procedure"),
		Name:      b.qualifiedName(b.needKind(n, cst.KindFuncName)),
		Params:    b.functionParams(n),
	}
	if n.HasKeyword("returns") {
		if n.HasKeyword("table") {
			for _, c := range n.ChildrenOf(cst.KindFunctionColumn) {
				s.ReturnsTable = append(s.ReturnsTable, statement.FunctionColumn{
					Name: b.ident(b.needKind(c, cst.KindTypeFunctionName)),
					Type: b.dataType(b.needKind(c, cst.KindTypeName)),
				})
			}
		} else {
			s.Returns = b.dataType(b.needKind(n, cst.KindTypeName))
		}
	}
	s.Options = b.functionOptions(n)
	return s
}

func (b *Builder) functionParams(n *cst.Node) []statement.FunctionParam {
	var out []statement.FunctionParam
	for _, p := range n.ChildrenOf(cst.KindFunctionParameter) {
		out = append(out, b.functionParam(p))
	}
	return out
}

func (b *Builder) functionParam(n *cst.Node) statement.FunctionParam {
	p := statement.FunctionParam{
		Name: b.identOf(n.Child(cst.KindTypeFunctionName)),
		Type: b.dataType(b.needKind(n, cst.KindTypeName)),
	}
	for _, w := range words(n) {
		switch w {
		case "in", "out", "inout", "variadic":
			p.Mode = strings.ToUpper(w)
		}
	}
	afterType := false
	for _, c := range n.Nodes() {
		if afterType {
			p.Default = b.expr(c)
			break
		}
		afterType = c.Kind == cst.KindTypeName
	}
	return p
}

func (b *Builder) functionOptions(n *cst.Node) []statement.FunctionOption {
	var out []statement.FunctionOption
	for _, o := range n.ChildrenOf(cst.KindFunctionOption) {
		out = append(out, b.functionOption(o))
	}
	return out
}

func (b *Builder) functionOption(n *cst.Node) statement.FunctionOption {
	if sc := n.Child(cst.KindSetConfiguration); sc != nil {
		return statement.FunctionOption{Name: statement.FuncSet, Set: b.setConfiguration(sc)}
	}
	ws := words(n)
	if len(ws) == 0 {
		b.fail(n, "empty function option")
	}
	o := statement.FunctionOption{Name: strings.ToUpper(ws[0])}
	switch ws[0] {
	case "language":
		o.Word = b.versionAfter(n, "language")
	case "as":
		for _, c := range n.ChildrenOf(cst.KindConstant) {
			o.Strings = append(o.Strings, b.stringConst(c))
		}
	case "immutable", "stable", "volatile", "leakproof", "window":
	case "not":
		o.Name = statement.FuncNotLeakproof
	case "strict", "returns":
		o.Name = statement.FuncReturnsNullOnNull
	case "called":
		o.Name = statement.FuncCalledOnNull
	case "external", "security":
		o.Name = statement.FuncSecurityInvoker
		if n.HasKeyword("definer") {
			o.Name = statement.FuncSecurityDefiner
		}
	case "parallel":
		o.Word = strings.ToUpper(b.ident(b.needKind(n, cst.KindColLabel)).Value)
	case "cost", "rows":
		o.Value = b.expr(b.need(n, n.FirstNode()))
	case "support":
		o.Target = b.qualifiedName(b.needKind(n, cst.KindQualifiedName))
	case "reset":
		o.ResetAll = n.HasKeyword("all")
		o.Reset = b.configName(n.Nodes())
	case "transform":
		for _, t := range n.ChildrenOf(cst.KindTypeName) {
			o.Types = append(o.Types, b.dataType(t))
		}
	case "return":
		o.Value = b.exprAfter(n, "return")
	case "begin":
		o.Name = statement.FuncBeginAtomic
		for _, c := range n.Nodes() {
			o.Body = append(o.Body, b.statement(c))
		}
	default:
		b.fail(n, "unknown function option %q", ws[0])
	}
	return o
}

func (b *Builder) functionSignature(n *cst.Node) statement.FunctionSignature {
	return statement.FunctionSignature{
		Name:      b.qualifiedName(b.needKind(n, cst.KindFuncName)),
		Params:    b.functionParams(n),
		HasParams: n.TerminalOf(lexer.LParen) != nil,
	}
}

func (b *Builder) VisitAlterFunction(n *cst.Node) any {
	s := &statement.AlterFunction{
		ObjectType: strings.ToUpper(wordAfter(n, "alter")),
		Function:   b.functionSignature(b.needKind(n, cst.KindFunctionWithArgs)),
		Options:    b.functionOptions(n),
	}
	if s.Options == nil {
		s.Action = b.alterObject(n)
	}
	return s
}

func (b *Builder) VisitDropFunction(n *cst.Node) any {
	s := &statement.DropFunction{
		ObjectType: strings.ToUpper(wordAfter(n, "drop")),
		IfExists:   n.HasKeyword("exists"),
		Behavior:   behavior(n),
	}
	for _, f := range n.ChildrenOf(cst.KindFunctionWithArgs) {
		s.Functions = append(s.Functions, b.functionSignature(f))
	}
	return s
}

// =============================================================================
// DROP and COMMENT
// =============================================================================

func (b *Builder) VisitDropStatement(n *cst.Node) any {
	return &statement.Drop{
		ObjectType:   strings.ToUpper(b.needKind(n, cst.KindObjectType).Keywords()),
		Concurrently: n.HasKeyword("concurrently"),
		IfExists:     n.HasKeyword("exists"),
		Names:        b.qualifiedNames(n.ChildrenOf(cst.KindQualifiedName)),
		Behavior:     behavior(n),
	}
}

func (b *Builder) dropOnTable(n *cst.Node, name *cst.Node) *statement.DropOnTable {
	return &statement.DropOnTable{
		ObjectType: strings.ToUpper(wordAfter(n, "drop")),
		IfExists:   n.HasKeyword("exists"),
		Name:       b.ident(b.need(n, name)),
		Table:      b.qualifiedName(b.needKind(n, cst.KindQualifiedName)),
		Behavior:   behavior(n),
	}
}

func (b *Builder) VisitDropTrigger(n *cst.Node) any {
	return b.dropOnTable(n, n.Child(cst.KindTriggerName))
}

func (b *Builder) VisitDropPolicy(n *cst.Node) any {
	return b.dropOnTable(n, n.Child(cst.KindColId))
}

func (b *Builder) VisitDropRule(n *cst.Node) any {
	return b.dropOnTable(n, n.Child(cst.KindColId))
}

// objectRef reads an ObjectType node and the function signature or name
// that follows it.
func (b *Builder) objectRef(n *cst.Node) *statement.ObjectRef {
	ref := &statement.ObjectRef{
		Type: strings.ToUpper(b.needKind(n, cst.KindObjectType).Keywords()),
	}
	if f := n.Child(cst.KindFunctionWithArgs); f != nil {
		sig := b.functionSignature(f)
		ref.Function = &sig
		ref.Name = sig.Name
		return ref
	}
	ref.Name = b.qualifiedName(b.needKind(n, cst.KindQualifiedName))
	return ref
}

func (b *Builder) VisitCommentOn(n *cst.Node) any {
	s := &statement.CommentOn{}
	if id := n.Child(cst.KindColId); id != nil {
		s.Object = statement.ObjectRef{
			Type:     strings.ToUpper(b.needKind(n, cst.KindObjectType).Keywords()),
			Name:     b.singleName(id),
			Table:    b.qualifiedName(n.NodeAfter("on", cst.KindQualifiedName)),
			OnDomain: n.HasKeyword("domain"),
		}
	} else {
		s.Object = *b.objectRef(n)
	}
	c := b.need(n, n.NodeAfter("is", cst.KindConstant))
	if t := c.FirstTerminal(); t != nil && t.IsKeyword("null") {
		s.Null = true
	} else {
		s.Text = b.stringConst(c)
	}
	return s
}

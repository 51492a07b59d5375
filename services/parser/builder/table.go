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

// =============================================================================
// CREATE TABLE
// =============================================================================

func (b *Builder) VisitCreateTable(n *cst.Node) any {
	names := n.ChildrenOf(cst.KindQualifiedName)
	if len(names) == 0 {
		b.fail(n, "CREATE TABLE needs a name")
	}
	s := &statement.CreateTable{
		Persistence:  persistence(n),
		IfNotExists:  n.HasKeyword("exists"),
		Name:         b.qualifiedName(names[0]),
		AccessMethod: b.identOf(n.NodeAfter("using", cst.KindColId)),
		Options:      b.relOptions(n.Child(cst.KindRelOptions)),
		WithoutOIDs:  n.HasKeyword("oids"),
		Tablespace:   b.identOf(n.NodeAfter("tablespace", cst.KindColId)),
	}
	if n.HasKeyword("partition") && len(names) > 1 {
		s.PartitionOf = b.qualifiedName(names[1])
	}
	for _, c := range n.Nodes() {
		switch c.Kind {
		case cst.KindColumnDefinition:
			s.Elements = append(s.Elements, b.columnDefinition(c))
		case cst.KindTableConstraint:
			s.Elements = append(s.Elements, b.tableConstraint(c))
		case cst.KindTableLikeClause:
			s.Elements = append(s.Elements, b.tableLike(c))
		case cst.KindInheritsClause:
			s.Inherits = b.qualifiedNames(c.ChildrenOf(cst.KindQualifiedName))
		case cst.KindPartitionBound:
			s.Bound = b.partitionBound(c)
		case cst.KindPartitionSpec:
			s.PartitionBy = b.partitionSpec(c)
		case cst.KindOnCommitClause:
			s.OnCommit = strings.ToUpper(strings.Join(words(c)[2:], " "))
		case cst.KindColumnList:
			s.ColumnNames = b.columnList(c)
		case cst.KindSelectStatement:
			s.AsQuery = b.selectStatement(c)
			s.WithData = withData(n)
		}
	}
	return s
}

func (b *Builder) columnDefinition(n *cst.Node) *statement.ColumnDef {
	c := &statement.ColumnDef{
		Name:        b.ident(b.needKind(n, cst.KindColId)),
		Type:        b.dataType(b.needKind(n, cst.KindTypeName)),
		Compression: b.identOf(n.NodeAfter("compression", cst.KindColLabel)),
		Collation:   b.qualifiedName(n.NodeAfter("collate", cst.KindQualifiedName)),
	}
	for _, cc := range n.ChildrenOf(cst.KindColumnConstraint) {
		c.Constraints = append(c.Constraints, b.columnConstraint(cc))
	}
	return c
}

// constraintWords returns the keywords of a constraint node without its
// leading CONSTRAINT.
func constraintWords(n *cst.Node) []string {
	ws := words(n)
	if len(ws) > 0 && ws[0] == "constraint" {
		ws = ws[1:]
	}
	return ws
}

func (b *Builder) columnConstraint(n *cst.Node) *statement.ColumnConstraint {
	c := &statement.ColumnConstraint{
		Name:       b.identOf(n.NodeAfter("constraint", cst.KindColId)),
		Attributes: constraintAttributes(n),
	}
	if rc := n.Child(cst.KindReferencesClause); rc != nil {
		c.Type = statement.ConstraintForeignKey
		c.References = b.references(rc)
		return c
	}
	ws := constraintWords(n)
	if len(ws) == 0 {
		b.fail(n, "empty constraint")
	}
	switch ws[0] {
	case "not":
		if len(ws) > 1 && ws[1] == "null" {
			c.Type = statement.ConstraintNotNull
		}
	case "null":
		c.Type = statement.ConstraintNull
	case "check":
		c.Type = statement.ConstraintCheck
		c.Expr = b.exprAfter(n, "check")
	case "default":
		c.Type = statement.ConstraintDefault
		c.Expr = b.exprAfter(n, "default")
	case "generated":
		g := b.generated(n)
		c.Type, c.Generated, c.Expr, c.SequenceOptions = g.Type, g.Generated, g.Expr, g.SequenceOptions
	case "unique":
		c.Type = statement.ConstraintUnique
		c.NullsNotDistinct = hasSequence(ws, "nulls", "not", "distinct")
		c.Index = b.indexParams(n)
	case "primary":
		c.Type = statement.ConstraintPrimaryKey
		c.Index = b.indexParams(n)
	}
	return c
}

// generated reads GENERATED {ALWAYS | BY DEFAULT} AS IDENTITY [(options)]
// or GENERATED ALWAYS AS (expr) STORED from the direct children of n.
func (b *Builder) generated(n *cst.Node) *statement.ColumnConstraint {
	c := &statement.ColumnConstraint{Generated: "BY DEFAULT"}
	if n.HasKeyword("always") {
		c.Generated = "ALWAYS"
	}
	if n.HasKeyword("identity") {
		c.Type = statement.ConstraintIdentity
		if l := n.Child(cst.KindSeqOptionList); l != nil {
			c.SequenceOptions = b.sequenceOptions(l.ChildrenOf(cst.KindSequenceOption))
		}
		return c
	}
	c.Type = statement.ConstraintGenerated
	c.Expr = b.exprAfter(n, "as")
	return c
}

func constraintAttributes(n *cst.Node) statement.ConstraintAttributes {
	var a statement.ConstraintAttributes
	ws := words(n)
	for i, w := range ws {
		prev := ""
		if i > 0 {
			prev = ws[i-1]
		}
		switch w {
		case "deferrable":
			a.Deferrable = "DEFERRABLE"
			if prev == "not" {
				a.Deferrable = "NOT DEFERRABLE"
			}
		case "initially":
			if i+1 < len(ws) {
				a.Initially = strings.ToUpper(ws[i+1])
			}
		case "valid":
			a.NotValid = a.NotValid || prev == "not"
		case "inherit":
			a.NoInherit = a.NoInherit || prev == "no"
		}
	}
	return a
}

func (b *Builder) indexParams(n *cst.Node) statement.IndexParams {
	var p statement.IndexParams
	if inc := n.Child(cst.KindIncludeClause); inc != nil {
		p.Include = b.columnList(inc.Child(cst.KindColumnList))
	}
	p.Options = b.relOptions(n.Child(cst.KindRelOptions))
	p.Tablespace = b.identOf(n.NodeAfter("tablespace", cst.KindColId))
	return p
}

func (b *Builder) tableConstraint(n *cst.Node) *statement.TableConstraint {
	c := &statement.TableConstraint{
		Name:       b.identOf(n.NodeAfter("constraint", cst.KindColId)),
		Attributes: constraintAttributes(n),
	}
	ws := constraintWords(n)
	if len(ws) == 0 {
		b.fail(n, "empty constraint")
	}
	switch ws[0] {
	case "check":
		c.Type = statement.ConstraintCheck
		c.Expr = b.exprAfter(n, "check")
	case "unique":
		c.Type = statement.ConstraintUnique
		c.NullsNotDistinct = hasSequence(ws, "nulls", "not", "distinct")
		c.Columns = b.columnList(n.Child(cst.KindColumnList))
		c.Index = b.indexParams(n)
	case "primary":
		c.Type = statement.ConstraintPrimaryKey
		c.Columns = b.columnList(n.Child(cst.KindColumnList))
		c.Index = b.indexParams(n)
	case "foreign":
		c.Type = statement.ConstraintForeignKey
		c.Columns = b.columnList(n.Child(cst.KindColumnList))
		c.References = b.references(b.needKind(n, cst.KindReferencesClause))
	case "exclude":
		c.Type = statement.ConstraintExclude
		c.Exclude = b.exclude(n)
		c.Index = b.indexParams(n)
	default:
		b.fail(n, "unknown constraint %q", ws[0])
	}
	return c
}

// exclude reads EXCLUDE [USING method] (element WITH operator, ...)
// [WHERE (predicate)]. Operators are kept as written; the OPERATOR()
// form is upper-cased.
func (b *Builder) exclude(n *cst.Node) *statement.ExcludeConstraint {
	e := &statement.ExcludeConstraint{Where: b.exprAfter(n, "where")}
	if i := n.KeywordIndex("using"); i >= 0 && i+1 < len(n.Children) {
		if m, ok := n.Children[i+1].(*cst.Node); ok && m.Kind == cst.KindColId {
			e.Method = b.ident(m)
		}
	}
	var (
		op    strings.Builder
		inOp  bool
		depth int
	)
	finish := func() {
		e.Elements[len(e.Elements)-1].Operator = op.String()
		op.Reset()
		inOp = false
	}
	for _, c := range n.Children {
		switch el := c.(type) {
		case *cst.Node:
			if el.Kind == cst.KindIndexElement {
				e.Elements = append(e.Elements, statement.ExcludeElement{Element: b.indexElement(el)})
			}
		case *cst.Terminal:
			if len(e.Elements) == 0 {
				continue
			}
			if !inOp {
				if el.IsKeyword("with") && e.Elements[len(e.Elements)-1].Operator == "" {
					inOp = true
				}
				continue
			}
			switch el.Token.Kind {
			case lexer.LParen:
				depth++
			case lexer.RParen:
				if depth == 0 {
					finish()
					continue
				}
				depth--
			case lexer.Comma:
				if depth == 0 {
					finish()
					continue
				}
			}
			if el.IsKeyword("operator") && depth == 0 {
				op.WriteString("OPERATOR")
			} else {
				op.WriteString(el.Token.Text)
			}
		}
	}
	if inOp {
		finish()
	}
	return e
}

func (b *Builder) references(n *cst.Node) *statement.ForeignKey {
	fk := &statement.ForeignKey{
		Table:   b.qualifiedName(b.needKind(n, cst.KindQualifiedName)),
		Columns: b.columnList(n.Child(cst.KindColumnList)),
		Match:   strings.ToUpper(wordAfter(n, "match")),
	}
	for _, ra := range n.ChildrenOf(cst.KindReferentialAction) {
		ws := words(ra)
		if len(ws) < 3 {
			b.fail(ra, "incomplete referential action")
		}
		act := &statement.ReferentialAction{
			Action:  strings.ToUpper(strings.Join(ws[2:], " ")),
			Columns: b.columnList(ra.Child(cst.KindColumnList)),
		}
		if ws[1] == "delete" {
			fk.OnDelete = act
		} else {
			fk.OnUpdate = act
		}
	}
	return fk
}

func (b *Builder) tableLike(n *cst.Node) *statement.TableLike {
	like := &statement.TableLike{Table: b.qualifiedName(b.needKind(n, cst.KindQualifiedName))}
	mode := ""
	for _, c := range n.Children {
		switch el := c.(type) {
		case *cst.Terminal:
			if el.IsKeyword("including") || el.IsKeyword("excluding") {
				mode = strings.ToUpper(el.Token.Value)
			}
		case *cst.Node:
			if el.Kind == cst.KindColLabel {
				like.Options = append(like.Options, mode+" "+strings.ToUpper(b.ident(el).Value))
			}
		}
	}
	return like
}

// =============================================================================
// Partitioning
// =============================================================================

func (b *Builder) partitionSpec(n *cst.Node) *statement.PartitionSpec {
	spec := &statement.PartitionSpec{
		Strategy: strings.ToUpper(b.ident(b.needKind(n, cst.KindColId)).Value),
	}
	for _, e := range n.ChildrenOf(cst.KindPartitionElement) {
		spec.Elements = append(spec.Elements, b.partitionElement(e))
	}
	return spec
}

func (b *Builder) partitionElement(n *cst.Node) statement.PartitionElement {
	var (
		pe    statement.PartitionElement
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
				pe.Column = b.ident(el)
			case first:
				pe.Expr = b.expr(el)
			case prev == "collate":
				pe.Collation = b.qualifiedName(el)
			default:
				pe.OpClass = b.qualifiedName(el)
			}
			first, prev = false, ""
		}
	}
	return pe
}

func (b *Builder) partitionBound(n *cst.Node) *statement.PartitionBound {
	pb := &statement.PartitionBound{Default: n.HasKeyword("default")}
	if n.HasKeyword("modulus") {
		var ints []int64
		for _, t := range n.Terminals() {
			if t.Token.Kind == lexer.Integer {
				v, err := strconv.ParseInt(t.Token.Value, 0, 64)
				if err != nil {
					b.fail(n, "bad integer %q", t.Token.Text)
				}
				ints = append(ints, v)
			}
		}
		if len(ints) != 2 {
			b.fail(n, "hash bound needs MODULUS and REMAINDER")
		}
		pb.Modulus, pb.Remainder = ints[0], ints[1]
		return pb
	}
	mode := ""
	for _, c := range n.Children {
		switch el := c.(type) {
		case *cst.Terminal:
			if el.IsKeyword("in") || el.IsKeyword("from") || el.IsKeyword("to") {
				mode = el.Token.Value
			}
		case *cst.Node:
			e := b.expr(el)
			switch mode {
			case "in":
				pb.In = append(pb.In, e)
			case "from":
				pb.From = append(pb.From, e)
			case "to":
				pb.To = append(pb.To, e)
			}
		}
	}
	return pb
}

// =============================================================================
// ALTER TABLE and shared ALTER actions
// =============================================================================

func (b *Builder) VisitAlterTable(n *cst.Node) any {
	s := &statement.AlterTable{
		IfExists: n.HasKeyword("exists"),
		Table:    b.relation(b.needKind(n, cst.KindRelationExpr)),
	}
	for _, cmd := range n.ChildrenOf(cst.KindAlterTableCmd) {
		s.Actions = append(s.Actions, b.alterAction(cmd))
	}
	return s
}

// alterAction reads one ALTER action. n is an AlterTableCmd, an
// AlterObjectCommand, or the tail of an ALTER DOMAIN; all of them spell
// the action with direct keyword children.
func (b *Builder) alterAction(n *cst.Node) statement.AlterAction {
	ws := words(n)
	if len(ws) == 0 {
		b.fail(n, "empty ALTER action")
	}
	second := ""
	if len(ws) > 1 {
		second = ws[1]
	}
	switch ws[0] {
	case "add":
		if c := n.Child(cst.KindTableConstraint); c != nil {
			return &statement.AddConstraint{Constraint: b.tableConstraint(c)}
		}
		return &statement.AddColumn{
			IfNotExists: n.HasKeyword("exists"),
			Column:      b.columnDefinition(b.needKind(n, cst.KindColumnDefinition)),
		}
	case "drop":
		switch second {
		case "default":
			return &statement.AlterColumn{Action: statement.ColumnDropDefault}
		case "not":
			return &statement.AlterColumn{Action: statement.ColumnDropNotNull}
		case "constraint":
			return &statement.DropConstraint{
				IfExists: n.HasKeyword("exists"),
				Name:     b.ident(b.needKind(n, cst.KindColId)),
				Behavior: behavior(n),
			}
		}
		return &statement.DropColumn{
			IfExists: n.HasKeyword("exists"),
			Name:     b.ident(b.needKind(n, cst.KindColId)),
			Behavior: behavior(n),
		}
	case "set":
		switch second {
		case "default":
			return &statement.AlterColumn{Action: statement.ColumnSetDefault, Value: b.exprAfter(n, "default")}
		case "not":
			return &statement.AlterColumn{Action: statement.ColumnSetNotNull}
		case "schema":
			return &statement.SetSchema{Schema: b.ident(b.needKind(n, cst.KindColId))}
		case "tablespace":
			return &statement.SetTablespace{Tablespace: b.ident(b.needKind(n, cst.KindColId))}
		case "logged", "unlogged":
			return &statement.SetPersistence{Logged: second == "logged"}
		case "without":
			return &statement.SetWithout{Target: strings.ToUpper(wordAfter(n, "without"))}
		case "access":
			return &statement.SetAccessMethod{Method: b.ident(b.needKind(n, cst.KindColId))}
		}
		return &statement.SetOptions{Options: b.relOptions(b.needKind(n, cst.KindRelOptions))}
	case "reset":
		return &statement.SetOptions{Reset: true, Options: b.relOptions(b.needKind(n, cst.KindRelOptions))}
	case "alter":
		if second == "constraint" {
			return &statement.AlterConstraint{
				Name:       b.ident(b.needKind(n, cst.KindColId)),
				Attributes: constraintAttributes(n),
			}
		}
		return b.alterColumn(n)
	case "validate":
		return &statement.ValidateConstraint{Name: b.ident(b.needKind(n, cst.KindColId))}
	case "rename":
		return b.rename(n, second)
	case "owner":
		return &statement.OwnerTo{Owner: b.roleSpec(b.needKind(n, cst.KindRoleSpec))}
	case "cluster":
		return &statement.ClusterOn{Index: b.ident(b.needKind(n, cst.KindColId))}
	case "enable", "disable":
		return b.enableDisable(n, ws)
	case "force":
		return &statement.RowSecurity{Force: true}
	case "no":
		switch second {
		case "force":
			return &statement.RowSecurity{}
		case "inherit":
			return &statement.Inherit{No: true, Parent: b.qualifiedName(b.needKind(n, cst.KindQualifiedName))}
		case "depends":
			return &statement.DependsOnExtension{No: true, Extension: b.ident(b.needKind(n, cst.KindColId))}
		}
	case "inherit":
		return &statement.Inherit{Parent: b.qualifiedName(b.needKind(n, cst.KindQualifiedName))}
	case "of":
		return &statement.OfType{Type: b.qualifiedName(b.needKind(n, cst.KindQualifiedName))}
	case "not":
		return &statement.OfType{Not: true}
	case "replica":
		if n.HasKeyword("using") {
			return &statement.ReplicaIdentity{Mode: "USING INDEX", Index: b.ident(b.needKind(n, cst.KindColId))}
		}
		return &statement.ReplicaIdentity{Mode: strings.ToUpper(wordAfter(n, "identity"))}
	case "attach":
		a := &statement.AttachPartition{Partition: b.qualifiedName(b.needKind(n, cst.KindQualifiedName))}
		if pb := n.Child(cst.KindPartitionBound); pb != nil {
			a.Bound = b.partitionBound(pb)
		}
		return a
	case "detach":
		return &statement.DetachPartition{
			Partition: b.qualifiedName(b.needKind(n, cst.KindQualifiedName)),
			Mode:      strings.ToUpper(wordAfter(n, "partition")),
		}
	case "depends":
		return &statement.DependsOnExtension{Extension: b.ident(b.needKind(n, cst.KindColId))}
	}
	b.fail(n, "unknown ALTER action %q", strings.Join(ws, " "))
	return nil
}

func (b *Builder) rename(n *cst.Node, second string) *statement.Rename {
	ids := n.ChildrenOf(cst.KindColId)
	if second == "to" {
		if len(ids) != 1 {
			b.fail(n, "RENAME TO needs a name")
		}
		return &statement.Rename{Target: statement.RenameObject, New: b.ident(ids[0])}
	}
	if len(ids) != 2 {
		b.fail(n, "RENAME needs an old and a new name")
	}
	r := &statement.Rename{Target: statement.RenameColumn, Old: b.ident(ids[0]), New: b.ident(ids[1])}
	if second == "constraint" {
		r.Target = statement.RenameConstraint
	}
	return r
}

func (b *Builder) enableDisable(n *cst.Node, ws []string) *statement.EnableDisable {
	ed := &statement.EnableDisable{Enable: ws[0] == "enable"}
	rest := ws[1:]
	if len(rest) > 0 && (rest[0] == "always" || rest[0] == "replica") {
		ed.Mode = strings.ToUpper(rest[0])
		rest = rest[1:]
	}
	if len(rest) == 0 {
		b.fail(n, "ENABLE or DISABLE needs a target")
	}
	switch rest[0] {
	case "trigger":
		ed.Target = "TRIGGER"
		if len(rest) > 1 {
			ed.All = strings.ToUpper(rest[1])
		} else {
			ed.Name = b.ident(b.needKind(n, cst.KindColId))
		}
	case "rule":
		ed.Target = "RULE"
		ed.Name = b.ident(b.needKind(n, cst.KindColId))
	default:
		ed.Target = "ROW LEVEL SECURITY"
	}
	return ed
}

// alterColumn reads ALTER [COLUMN] name action. Index columns may be
// given by number.
func (b *Builder) alterColumn(n *cst.Node) *statement.AlterColumn {
	ac := &statement.AlterColumn{}
	if c := n.Child(cst.KindColId); c != nil {
		ac.Column = b.ident(c)
	} else if t := n.TerminalOf(lexer.Integer); t != nil {
		v, err := strconv.ParseInt(t.Token.Value, 10, 64)
		if err != nil {
			b.fail(n, "bad column number %q", t.Token.Text)
		}
		ac.Number = v
	}
	rest := words(n)[1:]
	if len(rest) > 0 && rest[0] == "column" {
		rest = rest[1:]
	}
	if len(rest) == 0 {
		b.fail(n, "ALTER COLUMN needs an action")
	}
	next := ""
	if len(rest) > 1 {
		next = rest[1]
	}
	switch {
	case rest[0] == "type" || hasSequence(rest, "set", "data", "type"):
		ac.Action = statement.ColumnSetType
		ac.Type = b.dataType(b.needKind(n, cst.KindTypeName))
		ac.Collation = b.qualifiedName(n.NodeAfter("collate", cst.KindQualifiedName))
		ac.Using = b.exprAfter(n, "using")
	case rest[0] == "set" && next == "default":
		ac.Action = statement.ColumnSetDefault
		ac.Value = b.exprAfter(n, "default")
	case rest[0] == "drop" && next == "default":
		ac.Action = statement.ColumnDropDefault
	case rest[0] == "set" && next == "not":
		ac.Action = statement.ColumnSetNotNull
	case rest[0] == "drop" && next == "not":
		ac.Action = statement.ColumnDropNotNull
	case rest[0] == "drop" && next == "expression":
		ac.Action = statement.ColumnDropExpression
		ac.IfExists = n.HasKeyword("exists")
	case rest[0] == "drop" && next == "identity":
		ac.Action = statement.ColumnDropIdentity
		ac.IfExists = n.HasKeyword("exists")
	case rest[0] == "add":
		ac.Action = statement.ColumnAddGenerated
		ac.Constraint = b.generated(n)
	case rest[0] == "set" && next == "statistics":
		ac.Action = statement.ColumnSetStatistics
		ac.Value = b.expr(b.need(n, nodeAfter(n, "statistics")))
	case rest[0] == "set" && next == "storage":
		ac.Action = statement.ColumnSetStorage
		ac.Word = b.ident(b.needKind(n, cst.KindColLabel))
	case rest[0] == "set" && next == "compression":
		ac.Action = statement.ColumnSetCompression
		ac.Word = b.ident(b.needKind(n, cst.KindColLabel))
	case rest[0] == "set" && next == "generated":
		ac.Action = statement.ColumnSetGenerated
		ac.Generated = "BY DEFAULT"
		if n.HasKeyword("always") {
			ac.Generated = "ALWAYS"
		}
	case rest[0] == "set":
		ac.Action = statement.ColumnSetOptions
		ac.Options = b.relOptions(b.needKind(n, cst.KindRelOptions))
	case rest[0] == "reset":
		ac.Action = statement.ColumnResetOptions
		ac.Options = b.relOptions(b.needKind(n, cst.KindRelOptions))
	default:
		b.fail(n, "unknown column action %q", strings.Join(rest, " "))
	}
	return ac
}

// =============================================================================
// TRUNCATE
// =============================================================================

func (b *Builder) VisitTruncateTable(n *cst.Node) any {
	s := &statement.TruncateTable{Behavior: behavior(n)}
	for _, r := range n.ChildrenOf(cst.KindRelationExpr) {
		s.Tables = append(s.Tables, b.relation(r))
	}
	switch {
	case n.HasKeyword("restart"):
		s.Identity = "RESTART IDENTITY"
	case n.HasKeyword("continue"):
		s.Identity = "CONTINUE IDENTITY"
	}
	return s
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package format

import (
	"strconv"

	"github.com/AleutianAI/sqlfront/services/parser/statement"
)

// =============================================================================
// CREATE TABLE
// =============================================================================

func createTable(s *statement.CreateTable) string {
	head := join("CREATE", s.Persistence, "TABLE", ifNotExists(s.IfNotExists), name(s.Name))
	storage := []string{
		prefix("USING", when(!s.AccessMethod.IsZero(), ident(s.AccessMethod))),
		prefix("WITH", options(s.Options)),
		when(s.WithoutOIDs, "WITHOUT OIDS"),
		prefix("ON COMMIT", s.OnCommit),
		prefix("TABLESPACE", when(!s.Tablespace.IsZero(), ident(s.Tablespace))),
	}
	if s.AsQuery != nil {
		parts := append([]string{head, columns(s.ColumnNames)}, storage...)
		parts = append(parts, "AS", selectStatement(s.AsQuery), s.WithData)
		return join(parts...)
	}

	elements := ""
	if len(s.Elements) > 0 || s.PartitionOf.IsZero() {
		elements = paren(list(s.Elements, tableElement))
	}
	var parts []string
	if !s.PartitionOf.IsZero() {
		parts = []string{head, "PARTITION OF", name(s.PartitionOf), elements, partitionBound(s.Bound)}
	} else {
		parts = []string{head, elements, prefix("INHERITS", when(len(s.Inherits) > 0, paren(names(s.Inherits))))}
	}
	parts = append(parts, partitionSpec(s.PartitionBy))
	return join(append(parts, storage...)...)
}

func tableElement(e statement.TableElement) string {
	switch e := e.(type) {
	case *statement.ColumnDef:
		return columnDef(e)
	case *statement.TableConstraint:
		return tableConstraint(e)
	case *statement.TableLike:
		return join(append([]string{"LIKE", name(e.Table)}, e.Options...)...)
	}
	fail(e)
	return ""
}

func columnDef(c *statement.ColumnDef) string {
	parts := []string{
		ident(c.Name),
		dataType(c.Type),
		prefix("COMPRESSION", when(!c.Compression.IsZero(), ident(c.Compression))),
		prefix("COLLATE", name(c.Collation)),
	}
	for _, cc := range c.Constraints {
		parts = append(parts, columnConstraint(cc))
	}
	return join(parts...)
}

func constraintName(id statement.Identifier) string {
	if id.IsZero() {
		return ""
	}
	return "CONSTRAINT " + ident(id)
}

func columnConstraint(c *statement.ColumnConstraint) string {
	var body string
	switch c.Type {
	case statement.ConstraintNotNull, statement.ConstraintNull:
		body = c.Type
	case statement.ConstraintCheck:
		body = "CHECK " + parenExpr(c.Expr)
	case statement.ConstraintDefault:
		body = "DEFAULT " + expr(c.Expr)
	case statement.ConstraintIdentity, statement.ConstraintGenerated:
		body = generated(c)
	case statement.ConstraintUnique:
		body = join("UNIQUE", when(c.NullsNotDistinct, "NULLS NOT DISTINCT"), indexParams(c.Index))
	case statement.ConstraintPrimaryKey:
		body = join("PRIMARY KEY", indexParams(c.Index))
	case statement.ConstraintForeignKey:
		body = references(c.References)
	case statement.ConstraintAttributesOnly:
	default:
		fail(c)
	}
	return join(constraintName(c.Name), body, constraintAttributes(c.Attributes))
}

// generated renders GENERATED ... AS IDENTITY or GENERATED ALWAYS AS
// (expr) STORED.
func generated(c *statement.ColumnConstraint) string {
	if c.Type == statement.ConstraintGenerated {
		return join("GENERATED", c.Generated, "AS", parenExpr(c.Expr), "STORED")
	}
	opts := ""
	if len(c.SequenceOptions) > 0 {
		opts = paren(sequenceOptions(c.SequenceOptions))
	}
	return join("GENERATED", c.Generated, "AS IDENTITY", opts)
}

func constraintAttributes(a statement.ConstraintAttributes) string {
	return join(
		a.Deferrable,
		prefix("INITIALLY", a.Initially),
		when(a.NotValid, "NOT VALID"),
		when(a.NoInherit, "NO INHERIT"),
	)
}

func indexParams(p statement.IndexParams) string {
	return join(
		prefix("INCLUDE", columns(p.Include)),
		prefix("WITH", options(p.Options)),
		prefix("USING INDEX TABLESPACE", when(!p.Tablespace.IsZero(), ident(p.Tablespace))),
	)
}

func tableConstraint(c *statement.TableConstraint) string {
	var body string
	switch c.Type {
	case statement.ConstraintCheck:
		body = "CHECK " + parenExpr(c.Expr)
	case statement.ConstraintUnique:
		body = join("UNIQUE", when(c.NullsNotDistinct, "NULLS NOT DISTINCT"), columns(c.Columns), indexParams(c.Index))
	case statement.ConstraintPrimaryKey:
		body = join("PRIMARY KEY", columns(c.Columns), indexParams(c.Index))
	case statement.ConstraintForeignKey:
		body = join("FOREIGN KEY", columns(c.Columns), references(c.References))
	case statement.ConstraintExclude:
		body = exclude(c.Exclude, c.Index)
	default:
		fail(c)
	}
	return join(constraintName(c.Name), body, constraintAttributes(c.Attributes))
}

func exclude(e *statement.ExcludeConstraint, params statement.IndexParams) string {
	elems := list(e.Elements, func(el statement.ExcludeElement) string {
		return join(indexElement(el.Element), "WITH", el.Operator)
	})
	return join(
		"EXCLUDE",
		prefix("USING", when(!e.Method.IsZero(), ident(e.Method))),
		paren(elems),
		indexParams(params),
		prefix("WHERE", parenExpr(e.Where)),
	)
}

func references(fk *statement.ForeignKey) string {
	if fk == nil {
		return ""
	}
	action := func(on string, a *statement.ReferentialAction) string {
		if a == nil {
			return ""
		}
		return join(on, a.Action, columns(a.Columns))
	}
	return join(
		"REFERENCES",
		name(fk.Table),
		columns(fk.Columns),
		prefix("MATCH", fk.Match),
		action("ON DELETE", fk.OnDelete),
		action("ON UPDATE", fk.OnUpdate),
	)
}

// =============================================================================
// Partitioning
// =============================================================================

func partitionSpec(p *statement.PartitionSpec) string {
	if p == nil {
		return ""
	}
	elems := list(p.Elements, func(e statement.PartitionElement) string {
		key := ident(e.Column)
		if e.Expr != nil {
			key = elementExpr(e.Expr)
		}
		return join(key, prefix("COLLATE", name(e.Collation)), name(e.OpClass))
	})
	return join("PARTITION BY", p.Strategy, paren(elems))
}

func partitionBound(b *statement.PartitionBound) string {
	switch {
	case b == nil:
		return ""
	case b.Default:
		return "DEFAULT"
	case len(b.In) > 0:
		return "FOR VALUES IN " + paren(list(b.In, expr))
	case len(b.From) > 0:
		return join("FOR VALUES FROM", paren(list(b.From, expr)), "TO", paren(list(b.To, expr)))
	}
	return "FOR VALUES WITH " + paren("MODULUS "+strconv.FormatInt(b.Modulus, 10)+
		", REMAINDER "+strconv.FormatInt(b.Remainder, 10))
}

// =============================================================================
// ALTER actions
// =============================================================================

func alterTable(s *statement.AlterTable) string {
	return join("ALTER TABLE", ifExists(s.IfExists), relation(s.Table), list(s.Actions, alterAction))
}

func alterAction(a statement.AlterAction) string {
	switch a := a.(type) {
	case *statement.AddColumn:
		return join("ADD COLUMN", ifNotExists(a.IfNotExists), columnDef(a.Column))
	case *statement.AddConstraint:
		return "ADD " + tableConstraint(a.Constraint)
	case *statement.DropColumn:
		return join("DROP COLUMN", ifExists(a.IfExists), ident(a.Name), a.Behavior)
	case *statement.DropConstraint:
		return join("DROP CONSTRAINT", ifExists(a.IfExists), ident(a.Name), a.Behavior)
	case *statement.AlterColumn:
		return alterColumn(a)
	case *statement.AlterConstraint:
		return join("ALTER CONSTRAINT", ident(a.Name), constraintAttributes(a.Attributes))
	case *statement.ValidateConstraint:
		return "VALIDATE CONSTRAINT " + ident(a.Name)
	case *statement.Rename:
		if a.Target == statement.RenameObject {
			return "RENAME TO " + ident(a.New)
		}
		return join("RENAME", a.Target, ident(a.Old), "TO", ident(a.New), a.Behavior)
	case *statement.OwnerTo:
		return "OWNER TO " + role(a.Owner)
	case *statement.SetSchema:
		return "SET SCHEMA " + ident(a.Schema)
	case *statement.SetTablespace:
		return "SET TABLESPACE " + ident(a.Tablespace)
	case *statement.SetOptions:
		if a.Reset {
			return "RESET " + options(a.Options)
		}
		return "SET " + options(a.Options)
	case *statement.SetPersistence:
		if a.Logged {
			return "SET LOGGED"
		}
		return "SET UNLOGGED"
	case *statement.SetWithout:
		return "SET WITHOUT " + a.Target
	case *statement.SetAccessMethod:
		return "SET ACCESS METHOD " + ident(a.Method)
	case *statement.ClusterOn:
		return "CLUSTER ON " + ident(a.Index)
	case *statement.EnableDisable:
		verb := "DISABLE"
		if a.Enable {
			verb = "ENABLE"
		}
		target := a.All
		if target == "" && !a.Name.IsZero() {
			target = ident(a.Name)
		}
		return join(verb, a.Mode, a.Target, target)
	case *statement.RowSecurity:
		return join(when(!a.Force, "NO"), "FORCE ROW LEVEL SECURITY")
	case *statement.Inherit:
		return join(when(a.No, "NO"), "INHERIT", name(a.Parent))
	case *statement.OfType:
		if a.Not {
			return "NOT OF"
		}
		return "OF " + name(a.Type)
	case *statement.ReplicaIdentity:
		return join("REPLICA IDENTITY", a.Mode, when(!a.Index.IsZero(), ident(a.Index)))
	case *statement.AttachPartition:
		return join("ATTACH PARTITION", name(a.Partition), partitionBound(a.Bound))
	case *statement.DetachPartition:
		return join("DETACH PARTITION", name(a.Partition), a.Mode)
	case *statement.DependsOnExtension:
		return join(when(a.No, "NO"), "DEPENDS ON EXTENSION", ident(a.Extension))
	case *statement.AddEnumValue:
		neighbor := ""
		if a.Position != "" {
			neighbor = join(a.Position, quote(a.Neighbor))
		}
		return join("ADD VALUE", ifNotExists(a.IfNotExists), quote(a.Value), neighbor)
	case *statement.RenameEnumValue:
		return join("RENAME VALUE", quote(a.Old), "TO", quote(a.New))
	case *statement.AddAttribute:
		return join("ADD ATTRIBUTE", typeAttribute(a.Attribute), a.Behavior)
	case *statement.DropAttribute:
		return join("DROP ATTRIBUTE", ifExists(a.IfExists), ident(a.Name), a.Behavior)
	case *statement.AlterAttribute:
		attr := a.Attribute
		return join("ALTER ATTRIBUTE", ident(attr.Name), "TYPE", dataType(attr.Type),
			prefix("COLLATE", name(attr.Collation)), a.Behavior)
	}
	fail(a)
	return ""
}

func alterColumn(a *statement.AlterColumn) string {
	var action string
	switch a.Action {
	case statement.ColumnSetType:
		action = join("TYPE", dataType(a.Type), prefix("COLLATE", name(a.Collation)), prefix("USING", optExpr(a.Using)))
	case statement.ColumnSetDefault, statement.ColumnSetStatistics:
		action = a.Action + " " + expr(a.Value)
	case statement.ColumnDropExpression, statement.ColumnDropIdentity:
		action = join(a.Action, ifExists(a.IfExists))
	case statement.ColumnAddGenerated:
		action = "ADD " + generated(a.Constraint)
	case statement.ColumnSetStorage, statement.ColumnSetCompression:
		action = a.Action + " " + ident(a.Word)
	case statement.ColumnSetGenerated:
		action = "SET GENERATED " + a.Generated
	case statement.ColumnSetOptions, statement.ColumnResetOptions:
		action = a.Action + " " + options(a.Options)
	default:
		action = a.Action
	}
	switch {
	case !a.Column.IsZero():
		return join("ALTER COLUMN", ident(a.Column), action)
	case a.Number > 0:
		return join("ALTER COLUMN", strconv.FormatInt(a.Number, 10), action)
	}
	// Domain actions name no column.
	return action
}

// =============================================================================
// TRUNCATE
// =============================================================================

func truncateTable(s *statement.TruncateTable) string {
	return join("TRUNCATE TABLE", list(s.Tables, relation), s.Identity, s.Behavior)
}

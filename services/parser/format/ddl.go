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
	"strings"

	"github.com/AleutianAI/sqlfront/services/parser/statement"
)

// statementText dispatches on the statement type.
func statementText(s statement.Statement) string {
	switch s := s.(type) {
	case *statement.SelectStatement:
		return selectStatement(s)
	case *statement.Insert:
		return insert(s)
	case *statement.Update:
		return update(s)
	case *statement.Delete:
		return deleteStmt(s)
	case *statement.Transaction:
		return transaction(s)
	case *statement.CreateTable:
		return createTable(s)
	case *statement.AlterTable:
		return alterTable(s)
	case *statement.TruncateTable:
		return truncateTable(s)
	case *statement.CreateIndex:
		return createIndex(s)
	case *statement.CreateView:
		return createView(s)
	case *statement.CreateMaterializedView:
		return createMaterializedView(s)
	case *statement.RefreshMaterializedView:
		return join("REFRESH MATERIALIZED VIEW", when(s.Concurrently, "CONCURRENTLY"), name(s.Name), s.WithData)
	case *statement.AlterObject:
		return join("ALTER", s.ObjectType, ifExists(s.IfExists), name(s.Name),
			prefix("ON", name(s.Table)), alterAction(s.Action))
	case *statement.CreateSequence:
		return join("CREATE", s.Persistence, "SEQUENCE", ifNotExists(s.IfNotExists), name(s.Name),
			sequenceOptions(s.Options))
	case *statement.AlterSequence:
		return join("ALTER SEQUENCE", ifExists(s.IfExists), name(s.Name), sequenceOptions(s.Options),
			optAction(s.Action))
	case *statement.CreateType:
		return createType(s)
	case *statement.AlterType:
		return join("ALTER TYPE", name(s.Name), list(s.Actions, alterAction))
	case *statement.CreateDomain:
		parts := []string{"CREATE DOMAIN", name(s.Name), "AS", dataType(s.Type), prefix("COLLATE", name(s.Collation))}
		for _, c := range s.Constraints {
			parts = append(parts, columnConstraint(c))
		}
		return join(parts...)
	case *statement.AlterDomain:
		return join("ALTER DOMAIN", name(s.Name), alterAction(s.Action))
	case *statement.CreateTrigger:
		return createTrigger(s)
	case *statement.CreatePolicy:
		return join("CREATE POLICY", ident(s.Name), "ON", name(s.Table), prefix("AS", s.Type),
			prefix("FOR", s.Command), policyClauses(s.Roles, s.Using, s.WithCheck))
	case *statement.AlterPolicy:
		head := join("ALTER POLICY", ident(s.Name), "ON", name(s.Table))
		if !s.NewName.IsZero() {
			return join(head, "RENAME TO", ident(s.NewName))
		}
		return join(head, policyClauses(s.Roles, s.Using, s.WithCheck))
	case *statement.CreateExtension:
		return join("CREATE EXTENSION", ifNotExists(s.IfNotExists), ident(s.Name),
			prefix("SCHEMA", optIdent(s.Schema)), prefix("VERSION", optWord(s.Version)),
			when(s.Cascade, "CASCADE"))
	case *statement.AlterExtension:
		return alterExtension(s)
	case *statement.CreatePublication:
		target := ""
		switch {
		case s.AllTables:
			target = "FOR ALL TABLES"
		case len(s.Objects) > 0:
			target = "FOR " + list(s.Objects, publicationObject)
		}
		return join("CREATE PUBLICATION", ident(s.Name), target, prefix("WITH", options(s.Options)))
	case *statement.AlterPublication:
		return alterPublication(s)
	case *statement.CreateSubscription:
		return join("CREATE SUBSCRIPTION", ident(s.Name), "CONNECTION", quote(s.Connection),
			"PUBLICATION", idents(s.Publications), prefix("WITH", options(s.Options)))
	case *statement.AlterSubscription:
		return alterSubscription(s)
	case *statement.CreateSchema:
		parts := []string{"CREATE SCHEMA", ifNotExists(s.IfNotExists), optIdent(s.Name)}
		if s.Authorization != nil {
			parts = append(parts, "AUTHORIZATION", role(*s.Authorization))
		}
		for _, e := range s.Elements {
			parts = append(parts, statementText(e))
		}
		return join(parts...)
	case *statement.CreateDatabase:
		return join("CREATE DATABASE", ident(s.Name), prefix("WITH", databaseOptions(s.Options)))
	case *statement.AlterDatabase:
		return alterDatabase(s)
	case *statement.DropDatabase:
		return join("DROP DATABASE", ifExists(s.IfExists), ident(s.Name), when(s.Force, "WITH (FORCE)"))
	case *statement.CreateTablespace:
		owner := ""
		if s.Owner != nil {
			owner = "OWNER " + role(*s.Owner)
		}
		return join("CREATE TABLESPACE", ident(s.Name), owner, "LOCATION", quote(s.Location),
			prefix("WITH", options(s.Options)))
	case *statement.CreateFunction:
		return createFunction(s)
	case *statement.AlterFunction:
		return join("ALTER", s.ObjectType, signature(s.Function), functionOptions(s.Options), optAction(s.Action))
	case *statement.DropFunction:
		return join("DROP", s.ObjectType, ifExists(s.IfExists), list(s.Functions, signature), s.Behavior)
	case *statement.Drop:
		return join("DROP", s.ObjectType, when(s.Concurrently, "CONCURRENTLY"), ifExists(s.IfExists),
			names(s.Names), s.Behavior)
	case *statement.DropOnTable:
		return join("DROP", s.ObjectType, ifExists(s.IfExists), ident(s.Name), "ON", name(s.Table), s.Behavior)
	case *statement.CommentOn:
		text := "NULL"
		if !s.Null {
			text = quote(s.Text)
		}
		return join("COMMENT ON", objectRef(s.Object), "IS", text)
	}
	fail(s)
	return ""
}

func optIdent(i statement.Identifier) string {
	if i.IsZero() {
		return ""
	}
	return ident(i)
}

func optWord(s string) string {
	if s == "" {
		return ""
	}
	return word(s)
}

func optAction(a statement.AlterAction) string {
	if a == nil {
		return ""
	}
	return alterAction(a)
}

// =============================================================================
// Indexes and views
// =============================================================================

func createIndex(s *statement.CreateIndex) string {
	named := ""
	if !s.Name.IsZero() {
		named = join(ifNotExists(s.IfNotExists), ident(s.Name))
	}
	return join(
		"CREATE", when(s.Unique, "UNIQUE"), "INDEX", when(s.Concurrently, "CONCURRENTLY"), named,
		"ON", relation(s.Table),
		prefix("USING", optIdent(s.Method)),
		paren(list(s.Columns, indexElement)),
		prefix("INCLUDE", columns(s.Include)),
		when(s.NullsNotDistinct, "NULLS NOT DISTINCT"),
		prefix("WITH", options(s.Options)),
		prefix("TABLESPACE", optIdent(s.Tablespace)),
		prefix("WHERE", optExpr(s.Where)),
	)
}

func indexElement(e statement.IndexElement) string {
	key := ident(e.Column)
	if e.Expr != nil {
		key = elementExpr(e.Expr)
	}
	return join(
		key,
		prefix("COLLATE", name(e.Collation)),
		name(e.OpClass)+options(e.OpClassOptions),
		e.Direction,
		prefix("NULLS", e.Nulls),
	)
}

func createView(s *statement.CreateView) string {
	check := ""
	if s.CheckOption != "" {
		check = join("WITH", s.CheckOption, "CHECK OPTION")
	}
	return join(
		"CREATE", when(s.Replace, "OR REPLACE"), when(s.Temporary, "TEMPORARY"), when(s.Recursive, "RECURSIVE"),
		"VIEW", name(s.Name), columns(s.Columns),
		prefix("WITH", options(s.Options)),
		"AS", selectStatement(s.Query),
		check,
	)
}

func createMaterializedView(s *statement.CreateMaterializedView) string {
	return join(
		"CREATE", when(s.Unlogged, "UNLOGGED"), "MATERIALIZED VIEW", ifNotExists(s.IfNotExists),
		name(s.Name), columns(s.Columns),
		prefix("USING", optIdent(s.AccessMethod)),
		prefix("WITH", options(s.Options)),
		prefix("TABLESPACE", optIdent(s.Tablespace)),
		"AS", selectStatement(s.Query),
		s.WithData,
	)
}

// =============================================================================
// Sequences, types and domains
// =============================================================================

func sequenceOptions(opts []statement.SequenceOption) string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = sequenceOption(o)
	}
	return join(out...)
}

func sequenceOption(o statement.SequenceOption) string {
	switch o.Name {
	case statement.SeqAs:
		return "AS " + dataType(o.Type)
	case statement.SeqOwnedBy:
		if o.Target.IsZero() {
			return "OWNED BY NONE"
		}
		return "OWNED BY " + name(o.Target)
	case statement.SeqSequenceName:
		return "SEQUENCE NAME " + name(o.Target)
	case statement.SeqRestart:
		return join("RESTART", prefix("WITH", optExpr(o.Value)))
	}
	return join(o.Name, optExpr(o.Value))
}

func createType(s *statement.CreateType) string {
	head := "CREATE TYPE " + name(s.Name)
	switch s.Form {
	case statement.TypeFormEnum:
		return head + " AS ENUM " + paren(list(s.Labels, quote))
	case statement.TypeFormRange:
		return head + " AS RANGE " + paren(list(s.Definition, defElem))
	case statement.TypeFormComposite:
		return head + " AS " + paren(list(s.Attributes, typeAttribute))
	case statement.TypeFormBase:
		return head + " " + paren(list(s.Definition, defElem))
	}
	return head
}

func typeAttribute(a statement.TypeAttribute) string {
	return join(ident(a.Name), dataType(a.Type), prefix("COLLATE", name(a.Collation)))
}

func defElem(d statement.DefElem) string {
	switch {
	case d.Type != nil:
		return ident(d.Name) + " = " + dataType(d.Type)
	case d.Value != nil:
		return ident(d.Name) + " = " + expr(d.Value)
	}
	return ident(d.Name)
}

// =============================================================================
// Triggers and policies
// =============================================================================

func createTrigger(s *statement.CreateTrigger) string {
	events := make([]string, len(s.Events))
	for i, e := range s.Events {
		events[i] = join(e.Event, prefix("OF", idents(e.Columns)))
	}
	referencing := ""
	if len(s.Referencing) > 0 {
		parts := []string{"REFERENCING"}
		for _, r := range s.Referencing {
			age, shape := "OLD", "ROW"
			if r.New {
				age = "NEW"
			}
			if r.Table {
				shape = "TABLE"
			}
			parts = append(parts, age, shape, "AS", ident(r.Name))
		}
		referencing = join(parts...)
	}
	return join(
		"CREATE", when(s.Replace, "OR REPLACE"), when(s.Constraint, "CONSTRAINT"), "TRIGGER", ident(s.Name),
		s.Timing, strings.Join(events, " OR "),
		"ON", name(s.Table),
		prefix("FROM", name(s.From)),
		constraintAttributes(s.Attributes),
		referencing,
		prefix("FOR EACH", s.ForEach),
		prefix("WHEN", parenExpr(s.When)),
		"EXECUTE FUNCTION", name(s.Function)+paren(list(s.Args, expr)),
	)
}

func policyClauses(rs []statement.RoleSpec, using, check statement.Expr) string {
	return join(prefix("TO", roles(rs)), prefix("USING", parenExpr(using)), prefix("WITH CHECK", parenExpr(check)))
}

// =============================================================================
// Extensions and replication
// =============================================================================

func alterExtension(s *statement.AlterExtension) string {
	head := "ALTER EXTENSION " + ident(s.Name)
	switch {
	case s.Update:
		return join(head, "UPDATE", prefix("TO", optWord(s.Version)))
	case s.Object != nil:
		return join(head, s.Member, objectRef(*s.Object))
	}
	return join(head, optAction(s.Action))
}

func publicationObject(o statement.PublicationObject) string {
	if o.Type == statement.PublicationTablesInSchema {
		if o.CurrentSchema {
			return "TABLES IN SCHEMA CURRENT_SCHEMA"
		}
		return "TABLES IN SCHEMA " + ident(o.Schema)
	}
	return join("TABLE", relation(o.Table), columns(o.Columns), prefix("WHERE", parenExpr(o.Where)))
}

func alterPublication(s *statement.AlterPublication) string {
	head := "ALTER PUBLICATION " + ident(s.Name)
	switch {
	case s.Action != nil:
		return join(head, alterAction(s.Action))
	case len(s.Objects) == 0:
		return join(head, "SET", options(s.Options))
	}
	return join(head, s.Operation, list(s.Objects, publicationObject))
}

func alterSubscription(s *statement.AlterSubscription) string {
	head := "ALTER SUBSCRIPTION " + ident(s.Name)
	switch s.Operation {
	case "":
		return join(head, optAction(s.Action))
	case statement.SubscriptionConnection:
		return join(head, "CONNECTION", quote(s.Connection))
	case statement.SubscriptionSkip:
		return join(head, "SKIP", options(s.Options))
	case statement.SubscriptionEnable, statement.SubscriptionDisable:
		return join(head, s.Operation)
	}
	return join(head, s.Operation, idents(s.Publications), prefix("WITH", options(s.Options)))
}

// =============================================================================
// Databases
// =============================================================================

func databaseOptions(opts []statement.DatabaseOption) string {
	out := make([]string, len(opts))
	for i, o := range opts {
		v := "DEFAULT"
		if !o.Default {
			v = optExpr(o.Value)
		}
		out[i] = o.Name + " = " + v
	}
	return join(out...)
}

func alterDatabase(s *statement.AlterDatabase) string {
	head := "ALTER DATABASE " + ident(s.Name)
	switch {
	case s.Action != nil:
		return join(head, alterAction(s.Action))
	case s.Set != nil:
		return join(head, setConfig(s.Set))
	case s.ResetAll:
		return head + " RESET ALL"
	case len(s.Reset) > 0:
		return join(head, "RESET", dotted(s.Reset))
	case s.RefreshCollationVersion:
		return head + " REFRESH COLLATION VERSION"
	}
	return join(head, "WITH", databaseOptions(s.Options))
}

func setConfig(c *statement.SetConfig) string {
	head := "SET " + dotted(c.Name)
	switch {
	case c.FromCurrent:
		return head + " FROM CURRENT"
	case c.Default:
		return head + " TO DEFAULT"
	}
	return head + " TO " + list(c.Values, expr)
}

// =============================================================================
// Functions
// =============================================================================

func createFunction(s *statement.CreateFunction) string {
	kind := "FUNCTION"
	if s.Procedure {
		kind = "PROCEDURE"
	}
	returns := ""
	switch {
	case len(s.ReturnsTable) > 0:
		returns = "RETURNS TABLE " + paren(list(s.ReturnsTable, func(c statement.FunctionColumn) string {
			return ident(c.Name) + " " + dataType(c.Type)
		}))
	case s.Returns != nil:
		returns = "RETURNS " + dataType(s.Returns)
	}
	return join(
		"CREATE", when(s.Replace, "OR REPLACE"), kind,
		name(s.Name)+paren(list(s.Params, functionParam)),
		returns,
		functionOptions(s.Options),
	)
}

func functionParam(p statement.FunctionParam) string {
	return join(p.Mode, optIdent(p.Name), dataType(p.Type), prefix("DEFAULT", optExpr(p.Default)))
}

func functionOptions(opts []statement.FunctionOption) string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = functionOption(o)
	}
	return join(out...)
}

func functionOption(o statement.FunctionOption) string {
	switch o.Name {
	case statement.FuncLanguage:
		return "LANGUAGE " + word(o.Word)
	case statement.FuncParallel:
		return "PARALLEL " + o.Word
	case statement.FuncAs:
		return "AS " + list(o.Strings, quote)
	case statement.FuncCost, statement.FuncRows, statement.FuncReturn:
		return o.Name + " " + expr(o.Value)
	case statement.FuncSupport:
		return "SUPPORT " + name(o.Target)
	case statement.FuncSet:
		return setConfig(o.Set)
	case statement.FuncReset:
		if o.ResetAll {
			return "RESET ALL"
		}
		return "RESET " + dotted(o.Reset)
	case statement.FuncTransform:
		return "TRANSFORM " + list(o.Types, func(t *statement.DataType) string {
			return "FOR TYPE " + dataType(t)
		})
	case statement.FuncBeginAtomic:
		parts := []string{"BEGIN ATOMIC"}
		for _, st := range o.Body {
			parts = append(parts, statementText(st)+";")
		}
		return join(append(parts, "END")...)
	}
	return o.Name
}

func signature(f statement.FunctionSignature) string {
	if !f.HasParams {
		return name(f.Name)
	}
	return name(f.Name) + paren(list(f.Params, functionParam))
}

// =============================================================================
// Object references
// =============================================================================

func objectRef(o statement.ObjectRef) string {
	switch {
	case o.Function != nil:
		return o.Type + " " + signature(*o.Function)
	case !o.Table.IsZero():
		return join(o.Type, name(o.Name), "ON", when(o.OnDomain, "DOMAIN"), name(o.Table))
	}
	return o.Type + " " + name(o.Name)
}

// =============================================================================
// Transaction control
// =============================================================================

func transaction(s *statement.Transaction) string {
	switch s.Op {
	case statement.KindBegin, statement.KindStartTransaction:
		return join(string(s.Op), strings.Join(s.Modes, ", "))
	case statement.KindCommit:
		return join("COMMIT", when(s.Chain, "AND CHAIN"))
	case statement.KindRollback:
		if !s.Savepoint.IsZero() {
			return "ROLLBACK TO SAVEPOINT " + ident(s.Savepoint)
		}
		return join("ROLLBACK", when(s.Chain, "AND CHAIN"))
	case statement.KindSavepoint:
		return "SAVEPOINT " + ident(s.Savepoint)
	case statement.KindRelease:
		return "RELEASE SAVEPOINT " + ident(s.Savepoint)
	case statement.KindPrepareTransaction, statement.KindCommitPrepared, statement.KindRollbackPrepared:
		return string(s.Op) + " " + quote(s.GID)
	}
	fail(s)
	return ""
}

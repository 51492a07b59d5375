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
	"errors"
	"testing"

	"github.com/AleutianAI/sqlfront/services/parser/cst"
	"github.com/AleutianAI/sqlfront/services/parser/grammar"
	"github.com/AleutianAI/sqlfront/services/parser/statement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Helpers
// =============================================================================

func mustBuild(t *testing.T, sql string) statement.Statement {
	t.Helper()
	root, err := grammar.NewString(sql, nil).ParseStatement()
	require.NoError(t, err, sql)
	stmt, err := New(root).Build()
	require.NoError(t, err, sql)
	return stmt
}

func buildAs[T statement.Statement](t *testing.T, sql string) T {
	t.Helper()
	stmt := mustBuild(t, sql)
	s, ok := stmt.(T)
	require.True(t, ok, "%s built %T", sql, stmt)
	return s
}

func buildExpr(t *testing.T, sql string) statement.Expr {
	t.Helper()
	root, err := grammar.NewString(sql, nil).ParseExpr()
	require.NoError(t, err, sql)
	e, err := New(root).Expr()
	require.NoError(t, err, sql)
	return e
}

func col(name string) *statement.ColumnRef {
	return &statement.ColumnRef{Parts: []statement.Identifier{statement.Ident(name)}}
}

// =============================================================================
// DDL
// =============================================================================

func TestBuild_CreateTable(t *testing.T) {
	s := buildAs[*statement.CreateTable](t, "CREATE TABLE t (id INT PRIMARY KEY, name TEXT NOT NULL)")

	assert.Equal(t, statement.KindCreateTable, s.Kind())
	assert.Equal(t, statement.Name("t"), s.Name)
	cols := s.Columns()
	require.Len(t, cols, 2)
	assert.Equal(t, statement.Ident("id"), cols[0].Name)
	assert.Equal(t, statement.TypeInteger, cols[0].Type.Builtin)
	assert.Equal(t, statement.Ident("name"), cols[1].Name)
	assert.Equal(t, statement.Name("text"), cols[1].Type.Name)
	require.Len(t, cols[1].Constraints, 1)
	assert.Equal(t, statement.ConstraintNotNull, cols[1].Constraints[0].Type)
	assert.Equal(t, statement.Identifiers("id"), s.PrimaryKey())
}

func TestBuild_CreateTableClauses(t *testing.T) {
	s := buildAs[*statement.CreateTable](t, `CREATE UNLOGGED TABLE IF NOT EXISTS app.orders (
		id bigint GENERATED ALWAYS AS IDENTITY (START WITH 10),
		customer int REFERENCES customers (id) ON DELETE CASCADE,
		total numeric(10, 2) DEFAULT 0 CHECK (total >= 0),
		CONSTRAINT orders_pk PRIMARY KEY (id) INCLUDE (total),
		EXCLUDE USING gist (customer WITH =)
	) PARTITION BY RANGE (id) WITH (fillfactor = 70) TABLESPACE fast`)

	assert.Equal(t, "UNLOGGED", s.Persistence)
	assert.True(t, s.IfNotExists)
	assert.Equal(t, "app", s.Name.Schema.Value)
	require.Len(t, s.Elements, 5)

	id := s.Elements[0].(*statement.ColumnDef)
	require.Len(t, id.Constraints, 1)
	assert.Equal(t, statement.ConstraintIdentity, id.Constraints[0].Type)
	assert.Equal(t, "ALWAYS", id.Constraints[0].Generated)
	require.Len(t, id.Constraints[0].SequenceOptions, 1)
	assert.Equal(t, statement.SeqStartWith, id.Constraints[0].SequenceOptions[0].Name)

	customer := s.Elements[1].(*statement.ColumnDef)
	fk := customer.Constraints[0]
	assert.Equal(t, statement.ConstraintForeignKey, fk.Type)
	assert.Equal(t, statement.Name("customers"), fk.References.Table)
	require.NotNil(t, fk.References.OnDelete)
	assert.Equal(t, "CASCADE", fk.References.OnDelete.Action)

	total := s.Elements[2].(*statement.ColumnDef)
	assert.Equal(t, statement.TypeNumeric, total.Type.Builtin)
	assert.Len(t, total.Type.Modifiers, 2)
	require.Len(t, total.Constraints, 2)
	assert.Equal(t, &statement.IntegerLiteral{Value: 0}, total.Constraints[0].Expr)
	assert.Equal(t, statement.ConstraintCheck, total.Constraints[1].Type)

	pk := s.Elements[3].(*statement.TableConstraint)
	assert.Equal(t, statement.Ident("orders_pk"), pk.Name)
	assert.Equal(t, statement.Identifiers("total"), pk.Index.Include)

	ex := s.Elements[4].(*statement.TableConstraint)
	require.NotNil(t, ex.Exclude)
	assert.Equal(t, statement.Ident("gist"), ex.Exclude.Method)
	require.Len(t, ex.Exclude.Elements, 1)
	assert.Equal(t, "=", ex.Exclude.Elements[0].Operator)

	require.NotNil(t, s.PartitionBy)
	assert.Equal(t, "RANGE", s.PartitionBy.Strategy)
	require.Len(t, s.Options, 1)
	assert.Equal(t, statement.Ident("fillfactor"), s.Options[0].Name)
	assert.Equal(t, statement.Ident("fast"), s.Tablespace)
}

func TestBuild_CreateTablePartitionOf(t *testing.T) {
	s := buildAs[*statement.CreateTable](t, "CREATE TABLE m1 PARTITION OF m FOR VALUES WITH (MODULUS 4, REMAINDER 1)")
	assert.Equal(t, statement.Name("m"), s.PartitionOf)
	require.NotNil(t, s.Bound)
	assert.Equal(t, int64(4), s.Bound.Modulus)
	assert.Equal(t, int64(1), s.Bound.Remainder)
}

func TestBuild_CreateTableAs(t *testing.T) {
	s := buildAs[*statement.CreateTable](t, "CREATE TEMP TABLE x (a) AS SELECT 1 WITH NO DATA")
	assert.Equal(t, statement.KindCreateTableAs, s.Kind())
	assert.Equal(t, "TEMPORARY", s.Persistence)
	assert.Equal(t, statement.Identifiers("a"), s.ColumnNames)
	assert.Equal(t, "WITH NO DATA", s.WithData)
}

func TestBuild_AlterTableAddColumn(t *testing.T) {
	s := buildAs[*statement.AlterTable](t, "ALTER TABLE t ADD COLUMN c INT DEFAULT 0")

	require.Len(t, s.Actions, 1)
	add, ok := s.Actions[0].(*statement.AddColumn)
	require.True(t, ok)
	assert.Equal(t, statement.Ident("c"), add.Column.Name)
	require.Len(t, add.Column.Constraints, 1)
	assert.Equal(t, statement.ConstraintDefault, add.Column.Constraints[0].Type)
	assert.Equal(t, &statement.IntegerLiteral{Value: 0}, add.Column.Constraints[0].Expr)
}

func TestBuild_AlterTableActions(t *testing.T) {
	s := buildAs[*statement.AlterTable](t, `ALTER TABLE IF EXISTS ONLY t
		ALTER COLUMN a TYPE bigint USING a::bigint,
		ALTER b SET DEFAULT now(),
		DROP CONSTRAINT IF EXISTS c1 CASCADE,
		RENAME COLUMN x TO y,
		OWNER TO CURRENT_USER,
		ENABLE REPLICA TRIGGER ALL,
		REPLICA IDENTITY USING INDEX t_idx,
		DETACH PARTITION t_2020 CONCURRENTLY`)

	assert.True(t, s.IfExists)
	assert.True(t, s.Table.Only)
	require.Len(t, s.Actions, 8)

	typ := s.Actions[0].(*statement.AlterColumn)
	assert.Equal(t, statement.ColumnSetType, typ.Action)
	assert.Equal(t, statement.TypeBigint, typ.Type.Builtin)
	assert.IsType(t, &statement.TypecastExpr{}, typ.Using)

	def := s.Actions[1].(*statement.AlterColumn)
	assert.Equal(t, statement.ColumnSetDefault, def.Action)
	assert.Equal(t, statement.Ident("b"), def.Column)

	drop := s.Actions[2].(*statement.DropConstraint)
	assert.True(t, drop.IfExists)
	assert.Equal(t, statement.BehaviorCascade, drop.Behavior)

	rename := s.Actions[3].(*statement.Rename)
	assert.Equal(t, statement.RenameColumn, rename.Target)
	assert.Equal(t, statement.Ident("y"), rename.New)

	owner := s.Actions[4].(*statement.OwnerTo)
	assert.Equal(t, "CURRENT_USER", owner.Owner.Special)

	ed := s.Actions[5].(*statement.EnableDisable)
	assert.True(t, ed.Enable)
	assert.Equal(t, "REPLICA", ed.Mode)
	assert.Equal(t, "ALL", ed.All)

	ri := s.Actions[6].(*statement.ReplicaIdentity)
	assert.Equal(t, "USING INDEX", ri.Mode)

	detach := s.Actions[7].(*statement.DetachPartition)
	assert.Equal(t, "CONCURRENTLY", detach.Mode)
}

func TestBuild_DropIndex(t *testing.T) {
	s := buildAs[*statement.Drop](t, "DROP INDEX CONCURRENTLY IF EXISTS idx1")

	assert.Equal(t, statement.Kind("DROP INDEX"), s.Kind())
	assert.True(t, s.Concurrently)
	assert.True(t, s.IfExists)
	assert.Equal(t, []statement.QualifiedName{statement.Name("idx1")}, s.Names)
}

func TestBuild_CreateIndex(t *testing.T) {
	s := buildAs[*statement.CreateIndex](t, "CREATE UNIQUE INDEX ON t USING btree (a, lower(b) DESC NULLS LAST) INCLUDE (c) WHERE a > 0")

	assert.True(t, s.Unique)
	assert.True(t, s.Name.IsZero())
	assert.Equal(t, statement.Ident("btree"), s.Method)
	require.Len(t, s.Columns, 2)
	assert.Equal(t, statement.Ident("a"), s.Columns[0].Column)
	assert.IsType(t, &statement.FuncCall{}, s.Columns[1].Expr)
	assert.Equal(t, "DESC", s.Columns[1].Direction)
	assert.Equal(t, "LAST", s.Columns[1].Nulls)
	assert.Equal(t, statement.Identifiers("c"), s.Include)
	assert.NotNil(t, s.Where)
}

func TestBuild_SequenceTypeDomain(t *testing.T) {
	seq := buildAs[*statement.CreateSequence](t, "CREATE SEQUENCE s AS integer INCREMENT 2 NO CYCLE OWNED BY NONE")
	require.Len(t, seq.Options, 4)
	assert.Equal(t, statement.TypeInteger, seq.Options[0].Type.Builtin)
	assert.Equal(t, statement.SeqIncrementBy, seq.Options[1].Name)
	assert.Equal(t, statement.SeqNoCycle, seq.Options[2].Name)
	assert.True(t, seq.Options[3].Target.IsZero())

	enum := buildAs[*statement.CreateType](t, "CREATE TYPE mood AS ENUM ('sad', 'ok')")
	assert.Equal(t, statement.TypeFormEnum, enum.Form)
	assert.Equal(t, []string{"sad", "ok"}, enum.Labels)

	at := buildAs[*statement.AlterType](t, "ALTER TYPE mood ADD VALUE IF NOT EXISTS 'happy' AFTER 'ok'")
	add := at.Actions[0].(*statement.AddEnumValue)
	assert.True(t, add.IfNotExists)
	assert.Equal(t, "AFTER", add.Position)
	assert.Equal(t, "ok", add.Neighbor)

	dom := buildAs[*statement.AlterDomain](t, "ALTER DOMAIN zip SET NOT NULL")
	assert.Equal(t, &statement.AlterColumn{Action: statement.ColumnSetNotNull}, dom.Action)
}

func TestBuild_TriggerAndPolicy(t *testing.T) {
	tr := buildAs[*statement.CreateTrigger](t,
		"CREATE TRIGGER audit AFTER INSERT OR UPDATE OF a ON t FOR EACH ROW EXECUTE PROCEDURE log_change('x')")
	assert.Equal(t, "AFTER", tr.Timing)
	require.Len(t, tr.Events, 2)
	assert.Equal(t, "UPDATE", tr.Events[1].Event)
	assert.Equal(t, statement.Identifiers("a"), tr.Events[1].Columns)
	assert.Equal(t, "ROW", tr.ForEach)
	assert.Equal(t, statement.Name("log_change"), tr.Function)
	assert.Equal(t, []statement.Expr{&statement.StringLiteral{Value: "x"}}, tr.Args)

	p := buildAs[*statement.CreatePolicy](t, "CREATE POLICY p ON t AS RESTRICTIVE FOR SELECT TO PUBLIC USING (owner = current_user)")
	assert.Equal(t, "RESTRICTIVE", p.Type)
	assert.Equal(t, "SELECT", p.Command)
	require.Len(t, p.Roles, 1)
	assert.Equal(t, "PUBLIC", p.Roles[0].Special)
	assert.NotNil(t, p.Using)
}

func TestBuild_FunctionOptions(t *testing.T) {
	f := buildAs[*statement.CreateFunction](t,
		"CREATE FUNCTION add(a int, b int DEFAULT 1) RETURNS int LANGUAGE sql STRICT IMMUTABLE AS 'select a + b'")
	require.Len(t, f.Params, 2)
	assert.Equal(t, statement.Ident("b"), f.Params[1].Name)
	assert.Equal(t, &statement.IntegerLiteral{Value: 1}, f.Params[1].Default)
	assert.Equal(t, statement.TypeInteger, f.Returns.Builtin)

	var names []string
	for _, o := range f.Options {
		names = append(names, o.Name)
	}
	assert.Equal(t, []string{
		statement.FuncLanguage, statement.FuncReturnsNullOnNull, statement.FuncImmutable, statement.FuncAs,
	}, names)
	assert.Equal(t, "sql", f.Options[0].Word)
	assert.Equal(t, []string{"select a + b"}, f.Options[3].Strings)
}

func TestBuild_PublicationContinuation(t *testing.T) {
	s := buildAs[*statement.CreatePublication](t, "CREATE PUBLICATION pub FOR TABLES IN SCHEMA s1, s2, TABLE t1")
	require.Len(t, s.Objects, 3)
	assert.Equal(t, statement.PublicationTablesInSchema, s.Objects[1].Type)
	assert.Equal(t, statement.Ident("s2"), s.Objects[1].Schema)
	assert.Equal(t, statement.PublicationTable, s.Objects[2].Type)
}

func TestBuild_PublicationCurrentSchema(t *testing.T) {
	s := buildAs[*statement.CreatePublication](t, "CREATE PUBLICATION p FOR TABLES IN SCHEMA s, CURRENT_SCHEMA")
	require.Len(t, s.Objects, 2)
	assert.Equal(t, statement.Ident("s"), s.Objects[0].Schema)
	assert.Equal(t, statement.PublicationTablesInSchema, s.Objects[1].Type)
	assert.True(t, s.Objects[1].CurrentSchema)

	_, err := grammar.NewString("CREATE PUBLICATION p FOR TABLE t, CURRENT_SCHEMA", nil).ParseStatement()
	assert.Error(t, err, "CURRENT_SCHEMA only continues a schema list")
}

func TestBuild_PublicRole(t *testing.T) {
	p := buildAs[*statement.CreatePolicy](t, `CREATE POLICY p ON t TO public, "public", bob USING (true)`)
	require.Len(t, p.Roles, 3)
	assert.Equal(t, statement.RoleSpec{Special: "PUBLIC"}, p.Roles[0])
	assert.Equal(t, statement.QuotedIdent("public"), p.Roles[1].Name)
	assert.Empty(t, p.Roles[1].Special)
	assert.Equal(t, statement.Ident("bob"), p.Roles[2].Name)
}

func TestBuildExpr_UnicodeEscapeString(t *testing.T) {
	assert.Equal(t, &statement.StringLiteral{Value: "data"}, buildExpr(t, `U&'d\0061t\+000061'`))
	assert.Equal(t, &statement.StringLiteral{Value: "dat"}, buildExpr(t, `U&'d!0061t' UESCAPE '!'`))
}

func TestBuild_CommentOn(t *testing.T) {
	c := buildAs[*statement.CommentOn](t, "COMMENT ON CONSTRAINT c1 ON DOMAIN d IS NULL")
	assert.Equal(t, "CONSTRAINT", c.Object.Type)
	assert.True(t, c.Object.OnDomain)
	assert.True(t, c.Null)
}

// =============================================================================
// DML and queries
// =============================================================================

func TestBuild_Select(t *testing.T) {
	s := buildAs[*statement.SelectStatement](t,
		"SELECT a, count(*) AS n FROM t AS x JOIN u USING (id) WHERE a IS NOT NULL GROUP BY a ORDER BY n DESC LIMIT 10")
	body, ok := s.Body.(*statement.SimpleSelect)
	require.True(t, ok)
	require.Len(t, body.Targets, 2)
	assert.Equal(t, statement.Ident("n"), body.Targets[1].Alias)
	require.Len(t, body.From, 1)
	join := body.From[0].(*statement.JoinExpr)
	assert.Equal(t, "INNER", join.Type)
	assert.Equal(t, statement.Identifiers("id"), join.Using)
	assert.Equal(t, &statement.IsExpr{Expr: col("a"), Not: true, Test: "NULL"}, body.Where)
	require.Len(t, s.OrderBy, 1)
	assert.Equal(t, &statement.IntegerLiteral{Value: 10}, s.Limit)
}

func TestBuild_InsertOnConflict(t *testing.T) {
	s := buildAs[*statement.Insert](t,
		"INSERT INTO t AS x (a, b) VALUES (1, 2) ON CONFLICT (a) DO UPDATE SET b = excluded.b RETURNING *")
	assert.Equal(t, statement.Ident("x"), s.Alias)
	assert.Equal(t, statement.Identifiers("a", "b"), s.Columns)
	require.NotNil(t, s.OnConflict)
	require.NotNil(t, s.OnConflict.Target)
	assert.Equal(t, statement.Ident("a"), s.OnConflict.Target.Columns[0].Column)
	require.Len(t, s.OnConflict.Set, 1)
	assert.Equal(t, []statement.Target{{Star: true}}, s.Returning)
}

// =============================================================================
// Expressions
// =============================================================================

func TestBuildExpr_Precedence(t *testing.T) {
	e := buildExpr(t, "1 + 2 * 3")
	assert.Equal(t, &statement.BinaryExpr{
		Op:   "+",
		Left: &statement.IntegerLiteral{Value: 1},
		Right: &statement.BinaryExpr{
			Op:    "*",
			Left:  &statement.IntegerLiteral{Value: 2},
			Right: &statement.IntegerLiteral{Value: 3},
		},
	}, e)

	e = buildExpr(t, "a != b AND NOT c")
	assert.Equal(t, &statement.BinaryExpr{
		Op:    "AND",
		Left:  &statement.BinaryExpr{Op: "<>", Left: col("a"), Right: col("b")},
		Right: &statement.UnaryExpr{Op: "NOT", Operand: col("c")},
	}, e)
}

func TestBuildExpr_Constants(t *testing.T) {
	tests := []struct {
		sql  string
		want statement.Expr
	}{
		{"X'1F'", &statement.BitStringLiteral{Bits: "00011111"}},
		{"B'101'", &statement.BitStringLiteral{Bits: "101"}},
		{"0x10", &statement.IntegerLiteral{Value: 16}},
		{"9223372036854775808", &statement.NumericLiteral{Value: "9223372036854775808"}},
		{"1.5", &statement.NumericLiteral{Value: "1.5"}},
		{"E'a\\nb'", &statement.StringLiteral{Value: "a\nb"}},
		{"INTERVAL '1' DAY", &statement.IntervalLiteral{Value: "1", Fields: "DAY", Precision: -1}},
		{"true", &statement.BoolLiteral{Value: true}},
		{"NULL", &statement.NullLiteral{}},
		{"$2", &statement.ParamRef{Number: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			assert.Equal(t, tt.want, buildExpr(t, tt.sql))
		})
	}
}

func TestBuildExpr_Normalization(t *testing.T) {
	assert.Equal(t, &statement.IsExpr{Expr: col("a"), Test: "NULL"}, buildExpr(t, "a ISNULL"))

	q, ok := buildExpr(t, "a = SOME (b)").(*statement.QuantifiedExpr)
	require.True(t, ok)
	assert.Equal(t, "ANY", q.Quantifier)
}

func TestBuildDataType(t *testing.T) {
	tests := []struct {
		sql  string
		want *statement.DataType
	}{
		{"varchar(10)", &statement.DataType{
			Builtin:   statement.TypeCharacterVarying,
			Modifiers: []statement.Expr{&statement.IntegerLiteral{Value: 10}},
		}},
		{"timestamp with time zone", &statement.DataType{Builtin: statement.TypeTimestamp, TimeZone: true}},
		{"int[]", &statement.DataType{Builtin: statement.TypeInteger, ArrayBounds: []int{-1}}},
		{"double precision", statement.BuiltinType(statement.TypeDoublePrecision)},
		{"interval year to month", &statement.DataType{Builtin: statement.TypeInterval, IntervalFields: "YEAR TO MONTH"}},
		{"public.mood", &statement.DataType{Name: statement.QualifiedName{
			Schema: statement.Ident("public"), Name: statement.Ident("mood"),
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			root, err := grammar.NewString(tt.sql, nil).ParseTypeName()
			require.NoError(t, err)
			dt, err := New(root).DataType()
			require.NoError(t, err)
			assert.Equal(t, tt.want, dt)
		})
	}
}

// =============================================================================
// TCL
// =============================================================================

func TestBuild_Transaction(t *testing.T) {
	tests := []struct {
		sql  string
		want *statement.Transaction
	}{
		{"BEGIN ISOLATION LEVEL SERIALIZABLE, READ ONLY", &statement.Transaction{
			Op: statement.KindBegin, Modes: []string{"ISOLATION LEVEL SERIALIZABLE", "READ ONLY"},
		}},
		{"END", &statement.Transaction{Op: statement.KindCommit}},
		{"ABORT WORK AND CHAIN", &statement.Transaction{Op: statement.KindRollback, Chain: true}},
		{"COMMIT AND NO CHAIN", &statement.Transaction{Op: statement.KindCommit}},
		{"ROLLBACK TO SAVEPOINT sp", &statement.Transaction{Op: statement.KindRollback, Savepoint: statement.Ident("sp")}},
		{"COMMIT PREPARED 'gid'", &statement.Transaction{Op: statement.KindCommitPrepared, GID: "gid"}},
		{"RELEASE sp", &statement.Transaction{Op: statement.KindRelease, Savepoint: statement.Ident("sp")}},
	}
	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			assert.Equal(t, tt.want, mustBuild(t, tt.sql))
		})
	}
}

// =============================================================================
// Errors
// =============================================================================

func TestBuild_SemanticErrorOnMalformedTree(t *testing.T) {
	// A CREATE TABLE node with no name cannot come out of the grammar.
	root := cst.NewNode(cst.KindCreateTable, 0)

	_, err := New(root).Build()
	require.Error(t, err)
	var sbe *SemanticBuildError
	require.ErrorAs(t, err, &sbe)
	assert.True(t, errors.Is(err, ErrSemanticBuild))
	assert.Equal(t, cst.KindCreateTable.RuleName(), sbe.Rule)
}

func TestBuild_CommitToSavepointRejected(t *testing.T) {
	root, err := grammar.NewString("COMMIT TO SAVEPOINT sp", nil).ParseStatement()
	require.NoError(t, err)
	_, err = New(root).Build()
	assert.ErrorIs(t, err, ErrSemanticBuild)
}

func TestBuild_NilRoot(t *testing.T) {
	_, err := New(nil).Build()
	assert.ErrorIs(t, err, ErrSemanticBuild)
}

func TestBuildAll(t *testing.T) {
	root, err := grammar.NewString("SELECT 1; COMMIT;", nil).ParseBlock()
	require.NoError(t, err)
	stmts, err := New(root).BuildAll()
	require.NoError(t, err)
	require.Len(t, stmts, 2)
	assert.Equal(t, statement.KindSelect, stmts[0].Kind())
	assert.Equal(t, statement.KindCommit, stmts[1].Kind())

	_, err = New(root).Build()
	assert.ErrorIs(t, err, ErrSemanticBuild)
}

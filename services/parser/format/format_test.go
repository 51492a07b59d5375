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
	"testing"

	"github.com/AleutianAI/sqlfront/services/parser/builder"
	"github.com/AleutianAI/sqlfront/services/parser/grammar"
	"github.com/AleutianAI/sqlfront/services/parser/statement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, sql string) statement.Statement {
	t.Helper()
	root, err := grammar.NewString(sql, nil).ParseStatement()
	require.NoError(t, err, sql)
	stmt, err := builder.New(root).Build()
	require.NoError(t, err, sql)
	return stmt
}

// roundTrip formats the statement built from sql, parses the output again
// and requires the two statements to be equal. It returns the output.
func roundTrip(t *testing.T, sql string) string {
	t.Helper()
	first := build(t, sql)
	text, err := Statement(first)
	require.NoError(t, err, sql)
	second := build(t, text)
	assert.Equal(t, first, second, "source: %s\nformatted: %s", sql, text)
	return text
}

// =============================================================================
// Canonical output
// =============================================================================

func TestStatement_Canonical(t *testing.T) {
	tests := []struct {
		sql  string
		want string
	}{
		{"select a, b from t where x = 1", "SELECT a, b FROM t WHERE x = 1"},
		{`select "Foo" from "My Table"`, `SELECT "Foo" FROM "My Table"`},
		{"create table t (id int primary key)", "CREATE TABLE t (id INTEGER PRIMARY KEY)"},
		{"drop table if exists a, b cascade", "DROP TABLE IF EXISTS a, b CASCADE"},
		{"end work", "COMMIT"},
		{"abort and chain", "ROLLBACK AND CHAIN"},
		{"rollback to my_sp", "ROLLBACK TO SAVEPOINT my_sp"},
		{"begin isolation level serializable, read only", "BEGIN ISOLATION LEVEL SERIALIZABLE, READ ONLY"},
		{"select * from a inner join b using (id)", "SELECT * FROM a JOIN b USING (id)"},
		{"insert into t default values", "INSERT INTO t DEFAULT VALUES"},
		{"comment on column t.c is null", "COMMENT ON COLUMN t.c IS NULL"},
		{"truncate t restart identity", "TRUNCATE TABLE t RESTART IDENTITY"},
	}
	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			got, err := Statement(build(t, tt.sql))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// =============================================================================
// Round trips
// =============================================================================

func TestStatement_RoundTripQueries(t *testing.T) {
	for _, sql := range []string{
		"SELECT DISTINCT ON (a) a, b AS c FROM t WHERE a > 1 AND NOT b ORDER BY a DESC NULLS LAST LIMIT 10 OFFSET 5",
		"SELECT count(*), sum(DISTINCT x) FILTER (WHERE x > 0) FROM t GROUP BY ROLLUP (a, b) HAVING count(*) > 1",
		"SELECT rank() OVER (PARTITION BY a ORDER BY b ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW) FROM t",
		"SELECT x FROM t WINDOW w AS (ORDER BY x)",
		"WITH RECURSIVE r (n) AS (SELECT 1 UNION ALL SELECT n + 1 FROM r WHERE n < 5) SELECT * FROM r",
		"SELECT * FROM a LEFT JOIN b ON a.id = b.id CROSS JOIN c NATURAL FULL JOIN d",
		"SELECT * FROM ONLY parent AS p (x, y) TABLESAMPLE bernoulli(10) REPEATABLE (1)",
		"SELECT * FROM LATERAL generate_series(1, 3) WITH ORDINALITY AS g (v, i)",
		"SELECT * FROM (SELECT 1) AS s",
		"(SELECT 1 UNION SELECT 2) INTERSECT SELECT 3",
		"VALUES (1, 'a'), (2, 'b')",
		"TABLE t",
		"SELECT * FROM t FOR UPDATE OF t SKIP LOCKED",
		"SELECT * FROM t FETCH FIRST 3 ROWS WITH TIES",
		"SELECT CASE WHEN a THEN 1 ELSE 2 END, CAST(b AS numeric(10, 2)), c::text[] FROM t",
		"SELECT a IS NOT DISTINCT FROM b, c NOT LIKE 'x%' ESCAPE '!', d BETWEEN SYMMETRIC 1 AND 2 FROM t",
		"SELECT a IN (1, 2), b NOT IN (SELECT x FROM u), c = ANY (ARRAY[1, 2]), EXISTS (SELECT 1) FROM t",
		"SELECT EXTRACT(year FROM ts), ts AT TIME ZONE 'UTC', name COLLATE \"C\" FROM t",
		"SELECT arr[1], arr[1:2], (rec).field, (rec).* FROM t",
		"SELECT ROW(1, 2), (1, 2), CURRENT_TIMESTAMP(3), CURRENT_DATE",
		"SELECT - x, -1, +y, 'it''s', B'1010', E'a\\nb', DATE '2024-01-01', INTERVAL '1' DAY",
		"SELECT percentile_cont(0.5) WITHIN GROUP (ORDER BY x), string_agg(s, ',' ORDER BY s) FROM t",
		"SELECT f(a => 1, VARIADIC ARRAY[2])",
		"SELECT $1, NULL, TRUE, FALSE",
		"SELECT substring(s FROM 1 FOR 2), trim(BOTH 'x' FROM s), position('a' IN s) FROM t",
	} {
		t.Run(sql, func(t *testing.T) { roundTrip(t, sql) })
	}
}

func TestStatement_RoundTripDML(t *testing.T) {
	for _, sql := range []string{
		"INSERT INTO t (a, b) VALUES (1, DEFAULT) RETURNING *",
		"INSERT INTO t AS x OVERRIDING SYSTEM VALUE SELECT * FROM u",
		"INSERT INTO t (id) VALUES (1) ON CONFLICT (id) WHERE id > 0 DO UPDATE SET v = excluded.v WHERE t.v <> excluded.v",
		"INSERT INTO t VALUES (1) ON CONFLICT ON CONSTRAINT t_pkey DO NOTHING",
		"WITH s AS MATERIALIZED (SELECT 1) UPDATE t AS x SET a = 1, (b, c) = (2, 3) FROM s WHERE x.id = 1 RETURNING a",
		"DELETE FROM t USING u WHERE t.id = u.id RETURNING t.id",
		"DELETE FROM t WHERE CURRENT OF c",
	} {
		t.Run(sql, func(t *testing.T) { roundTrip(t, sql) })
	}
}

func TestStatement_RoundTripTables(t *testing.T) {
	for _, sql := range []string{
		`CREATE UNLOGGED TABLE IF NOT EXISTS app.orders (
			id bigint GENERATED ALWAYS AS IDENTITY (START WITH 10 INCREMENT BY 2),
			customer_id int NOT NULL REFERENCES customers (id) ON DELETE CASCADE,
			total numeric(10, 2) DEFAULT 0 CHECK (total >= 0),
			placed timestamp with time zone DEFAULT now(),
			doubled int GENERATED ALWAYS AS (total * 2) STORED,
			CONSTRAINT orders_pk PRIMARY KEY (id) INCLUDE (customer_id),
			UNIQUE NULLS NOT DISTINCT (customer_id, placed) DEFERRABLE INITIALLY DEFERRED,
			EXCLUDE USING gist (placed WITH &&) WHERE (total > 0),
			FOREIGN KEY (customer_id) REFERENCES customers (id) MATCH FULL ON DELETE SET NULL (customer_id) ON UPDATE RESTRICT,
			LIKE template INCLUDING DEFAULTS
		) PARTITION BY RANGE (placed) WITH (fillfactor = 70) TABLESPACE fast`,
		"CREATE TEMP TABLE t (a int) ON COMMIT DROP",
		"CREATE TABLE c PARTITION OF p FOR VALUES FROM (1) TO (10)",
		"CREATE TABLE c PARTITION OF p FOR VALUES IN ('a', 'b')",
		"CREATE TABLE c PARTITION OF p FOR VALUES WITH (MODULUS 4, REMAINDER 1)",
		"CREATE TABLE c PARTITION OF p DEFAULT",
		"CREATE TABLE k (a int, b text) PARTITION BY LIST ((lower(b)) COLLATE \"C\", a)",
		"CREATE TABLE child (x int) INHERITS (parent)",
		"CREATE TABLE s AS SELECT * FROM t WITH NO DATA",
		"CREATE TABLE s (a, b) AS SELECT 1, 2",
		`ALTER TABLE IF EXISTS ONLY t
			ADD COLUMN IF NOT EXISTS c text COLLATE "C",
			ADD CONSTRAINT ck CHECK (c <> '') NOT VALID,
			DROP COLUMN IF EXISTS d CASCADE,
			DROP CONSTRAINT ck2,
			ALTER COLUMN e TYPE bigint USING e::bigint,
			ALTER COLUMN f SET DEFAULT 1,
			ALTER COLUMN f DROP NOT NULL,
			ALTER COLUMN g ADD GENERATED BY DEFAULT AS IDENTITY,
			ALTER COLUMN g SET STATISTICS 100,
			ALTER COLUMN g SET STORAGE external,
			ALTER COLUMN g SET (n_distinct = 10),
			ALTER CONSTRAINT fk NOT DEFERRABLE,
			VALIDATE CONSTRAINT ck,
			OWNER TO CURRENT_USER,
			SET (autovacuum_enabled = false),
			RESET (fillfactor),
			SET WITHOUT CLUSTER,
			CLUSTER ON t_idx,
			ENABLE ALWAYS TRIGGER trg,
			DISABLE TRIGGER ALL,
			ENABLE ROW LEVEL SECURITY,
			NO FORCE ROW LEVEL SECURITY,
			NO INHERIT parent,
			REPLICA IDENTITY USING INDEX t_idx`,
		"ALTER TABLE t RENAME COLUMN a TO b",
		"ALTER TABLE t RENAME CONSTRAINT a TO b",
		"ALTER TABLE t RENAME TO u",
		"ALTER TABLE t SET SCHEMA s",
		"ALTER TABLE p ATTACH PARTITION c FOR VALUES IN (1)",
		"ALTER TABLE p DETACH PARTITION c CONCURRENTLY",
		"ALTER TABLE t SET LOGGED",
		"TRUNCATE a, ONLY b CONTINUE IDENTITY RESTRICT",
	} {
		t.Run(sql, func(t *testing.T) { roundTrip(t, sql) })
	}
}

func TestStatement_RoundTripObjects(t *testing.T) {
	for _, sql := range []string{
		"CREATE UNIQUE INDEX CONCURRENTLY IF NOT EXISTS ix ON t USING btree (a DESC NULLS FIRST, (lower(b)), c text_pattern_ops) INCLUDE (d) WITH (fillfactor = 90) TABLESPACE ts WHERE a > 0",
		"CREATE INDEX ON t (lower(a) COLLATE \"C\")",
		"ALTER INDEX IF EXISTS ix RENAME TO iy",
		"ALTER INDEX ix ALTER COLUMN 2 SET STATISTICS 50",
		"CREATE OR REPLACE TEMP VIEW v (a) WITH (security_barrier) AS SELECT 1 WITH LOCAL CHECK OPTION",
		"CREATE MATERIALIZED VIEW IF NOT EXISTS mv USING heap TABLESPACE ts AS SELECT 1 WITH NO DATA",
		"REFRESH MATERIALIZED VIEW CONCURRENTLY mv WITH DATA",
		"ALTER MATERIALIZED VIEW mv SET ACCESS METHOD heap2",
		"ALTER TRIGGER trg ON t RENAME TO trg2",
		"ALTER SCHEMA s OWNER TO bob",
		"CREATE SEQUENCE IF NOT EXISTS s AS bigint INCREMENT BY -1 MINVALUE -100 NO MAXVALUE START WITH -1 CACHE 10 CYCLE OWNED BY t.id",
		"ALTER SEQUENCE s RESTART WITH 5 NO CYCLE OWNED BY NONE",
		"ALTER SEQUENCE s RESTART",
		"CREATE TYPE mood AS ENUM ('sad', 'ok')",
		"CREATE TYPE pair AS (a int, b text COLLATE \"C\")",
		"CREATE TYPE fr AS RANGE (subtype = float8)",
		"CREATE TYPE shell",
		"ALTER TYPE mood ADD VALUE IF NOT EXISTS 'happy' AFTER 'ok'",
		"ALTER TYPE mood RENAME VALUE 'sad' TO 'blue'",
		"ALTER TYPE pair ADD ATTRIBUTE c int, DROP ATTRIBUTE IF EXISTS b CASCADE, ALTER ATTRIBUTE a TYPE bigint",
		"CREATE DOMAIN pos AS int CONSTRAINT positive CHECK (VALUE > 0) NOT NULL",
		"ALTER DOMAIN pos SET DEFAULT 1",
		"ALTER DOMAIN pos DROP NOT NULL",
		"ALTER DOMAIN pos ADD CONSTRAINT c CHECK (VALUE < 100)",
		"ALTER DOMAIN pos RENAME CONSTRAINT c TO d",
		"CREATE OR REPLACE TRIGGER trg BEFORE INSERT OR UPDATE OF a, b ON t FOR EACH ROW WHEN (NEW.a IS NOT NULL) EXECUTE FUNCTION f('x', 1)",
		"CREATE TRIGGER trg AFTER DELETE ON t REFERENCING OLD TABLE AS old_rows FOR EACH STATEMENT EXECUTE FUNCTION f()",
		"CREATE POLICY p ON t AS RESTRICTIVE FOR SELECT TO PUBLIC, bob USING (owner = CURRENT_USER) WITH CHECK (true)",
		"ALTER POLICY p ON t RENAME TO q",
		"ALTER POLICY p ON t USING (false)",
		"CREATE EXTENSION IF NOT EXISTS hstore SCHEMA public VERSION '1.8' CASCADE",
		"ALTER EXTENSION hstore UPDATE TO '2.0'",
		"ALTER EXTENSION hstore ADD FUNCTION f(int)",
		"CREATE PUBLICATION pub FOR TABLE a (x, y) WHERE (x > 0), TABLES IN SCHEMA s, CURRENT_SCHEMA WITH (publish = 'insert')",
		"CREATE PUBLICATION pub FOR ALL TABLES",
		"ALTER PUBLICATION pub ADD TABLE b",
		"ALTER PUBLICATION pub SET (publish = 'update')",
		"ALTER PUBLICATION pub OWNER TO bob",
		"CREATE SUBSCRIPTION sub CONNECTION 'host=x' PUBLICATION a, b WITH (enabled = false)",
		"ALTER SUBSCRIPTION sub SET PUBLICATION c WITH (refresh = false)",
		"ALTER SUBSCRIPTION sub REFRESH PUBLICATION",
		"ALTER SUBSCRIPTION sub DISABLE",
	} {
		t.Run(sql, func(t *testing.T) { roundTrip(t, sql) })
	}
}

func TestStatement_RoundTripSchemaAndFunctions(t *testing.T) {
	for _, sql := range []string{
		"CREATE SCHEMA IF NOT EXISTS s AUTHORIZATION bob CREATE TABLE t (a int) CREATE VIEW v AS SELECT 1",
		"CREATE DATABASE d WITH OWNER = bob ENCODING = 'UTF8' CONNECTION LIMIT = -1 TEMPLATE = DEFAULT",
		"ALTER DATABASE d SET search_path TO public, pg_temp",
		"ALTER DATABASE d RESET ALL",
		"ALTER DATABASE d REFRESH COLLATION VERSION",
		"ALTER DATABASE d CONNECTION LIMIT 10",
		"DROP DATABASE IF EXISTS d WITH (FORCE)",
		"CREATE TABLESPACE ts OWNER bob LOCATION '/data' WITH (seq_page_cost = 1)",
		"ALTER TABLESPACE ts RENAME TO ts2",
		`CREATE OR REPLACE FUNCTION add(a int, INOUT b int DEFAULT 1, VARIADIC rest int[] = '{}')
			RETURNS int LANGUAGE sql IMMUTABLE STRICT PARALLEL safe COST 10 SET search_path = public
			AS 'select a + b'`,
		"CREATE FUNCTION f() RETURNS TABLE (x int, y text) LANGUAGE plpgsql SECURITY DEFINER AS $$ begin end $$",
		"CREATE FUNCTION f(int) RETURNS SETOF text LANGUAGE sql STABLE RETURN 'x'",
		"CREATE PROCEDURE p() LANGUAGE sql BEGIN ATOMIC INSERT INTO t VALUES (1); SELECT 1; END",
		"ALTER FUNCTION f(int) NOT LEAKPROOF RESET ALL",
		"ALTER PROCEDURE p() RENAME TO q",
		"DROP FUNCTION IF EXISTS f(int), g CASCADE",
		"DROP INDEX CONCURRENTLY IF EXISTS ix",
		"DROP MATERIALIZED VIEW mv RESTRICT",
		"DROP TRIGGER IF EXISTS trg ON t CASCADE",
		"DROP POLICY p ON t",
		"COMMENT ON TABLE s.t IS 'orders'",
		"COMMENT ON CONSTRAINT c ON DOMAIN d IS 'x'",
		"COMMENT ON FUNCTION f(int, text) IS 'fn'",
		"COMMENT ON DATABASE d IS 'db'",
	} {
		t.Run(sql, func(t *testing.T) { roundTrip(t, sql) })
	}
}

func TestStatement_RoundTripTransactions(t *testing.T) {
	for _, sql := range []string{
		"START TRANSACTION READ WRITE, NOT DEFERRABLE",
		"COMMIT AND NO CHAIN",
		"SAVEPOINT a",
		"RELEASE a",
		"PREPARE TRANSACTION 'g1'",
		"COMMIT PREPARED 'g1'",
		"ROLLBACK PREPARED 'g1'",
	} {
		t.Run(sql, func(t *testing.T) { roundTrip(t, sql) })
	}
}

// =============================================================================
// Entry points
// =============================================================================

func TestStatements(t *testing.T) {
	out, err := Statements([]statement.Statement{build(t, "begin"), build(t, "commit")})
	require.NoError(t, err)
	assert.Equal(t, "BEGIN;\nCOMMIT;\n", out)
}

func TestExpr(t *testing.T) {
	out, err := Expr(&statement.BinaryExpr{
		Op:    "-",
		Left:  &statement.IntegerLiteral{Value: 1},
		Right: &statement.UnaryExpr{Op: "-", Operand: &statement.IntegerLiteral{Value: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, "1 - -2", out)

	out, err = Expr(&statement.ColumnRef{Parts: []statement.Identifier{statement.Ident("t"), statement.QuotedIdent("x y")}})
	require.NoError(t, err)
	assert.Equal(t, `t."x y"`, out)
}

func TestDataType(t *testing.T) {
	tests := []struct {
		typ  *statement.DataType
		want string
	}{
		{statement.BuiltinType(statement.TypeInteger), "INTEGER"},
		{&statement.DataType{Builtin: statement.TypeTimestamp, TimeZone: true,
			Modifiers: []statement.Expr{&statement.IntegerLiteral{Value: 3}}}, "TIMESTAMP(3) WITH TIME ZONE"},
		{&statement.DataType{Builtin: statement.TypeInterval, IntervalFields: "DAY TO SECOND",
			Modifiers: []statement.Expr{&statement.IntegerLiteral{Value: 2}}}, "INTERVAL DAY TO SECOND(2)"},
		{&statement.DataType{Name: statement.Name("text"), ArrayBounds: []int{-1, 4}}, "text[][4]"},
		{&statement.DataType{Name: statement.Name("Mood")}, `"Mood"`},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := DataType(tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type foreignStatement struct{ statement.Transaction }

type foreignExpr struct{ statement.NullLiteral }

func TestUnsupported(t *testing.T) {
	_, err := Statement(&foreignStatement{})
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = Expr(&foreignExpr{})
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = Statement(nil)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = DataType(nil)
	assert.ErrorIs(t, err, ErrUnsupported)
}

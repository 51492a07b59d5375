// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package statement defines the dialect-neutral statement model produced by
// the AST builder.
//
// # Description
//
// Every top-level SQL statement becomes one value implementing Statement.
// Kind reports the PostgreSQL command tag ("CREATE TABLE", "DROP INDEX",
// "SELECT") and Category the broad statement class. Clause structure is
// flattened into typed fields; optional clauses are nil, zero or empty when
// absent and each type documents the default it stands for.
//
// The model carries no source positions, so two statements that mean the
// same thing compare equal with reflect.DeepEqual no matter how they were
// spelled. Identifiers keep whether they were quoted so that a formatter can
// reproduce them exactly.
//
// # Thread Safety
//
// Statements are built once and never mutated afterwards. They may be
// shared between goroutines, which is what the engine's statement cache
// relies on.
package statement

import "strings"

// Category classifies a statement as definition, manipulation or
// transaction control.
type Category int

const (
	// CategoryUnknown is the zero Category.
	CategoryUnknown Category = iota
	CategoryDDL
	CategoryDML
	CategoryTCL
)

// String returns "DDL", "DML" or "TCL".
func (c Category) String() string {
	switch c {
	case CategoryDDL:
		return "DDL"
	case CategoryDML:
		return "DML"
	case CategoryTCL:
		return "TCL"
	}
	return "UNKNOWN"
}

// Kind is the command tag of a statement, e.g. "CREATE TABLE".
type Kind string

// Command tags with a fixed spelling. Generic DROP and ALTER forms derive
// theirs from the object type ("DROP " + ObjectType).
const (
	KindSelect                  Kind = "SELECT"
	KindInsert                  Kind = "INSERT"
	KindUpdate                  Kind = "UPDATE"
	KindDelete                  Kind = "DELETE"
	KindCreateTable             Kind = "CREATE TABLE"
	KindCreateTableAs           Kind = "CREATE TABLE AS"
	KindAlterTable              Kind = "ALTER TABLE"
	KindTruncateTable           Kind = "TRUNCATE TABLE"
	KindCreateIndex             Kind = "CREATE INDEX"
	KindCreateView              Kind = "CREATE VIEW"
	KindCreateMaterializedView  Kind = "CREATE MATERIALIZED VIEW"
	KindRefreshMaterializedView Kind = "REFRESH MATERIALIZED VIEW"
	KindCreateSequence          Kind = "CREATE SEQUENCE"
	KindAlterSequence           Kind = "ALTER SEQUENCE"
	KindCreateType              Kind = "CREATE TYPE"
	KindAlterType               Kind = "ALTER TYPE"
	KindCreateDomain            Kind = "CREATE DOMAIN"
	KindAlterDomain             Kind = "ALTER DOMAIN"
	KindCreateTrigger           Kind = "CREATE TRIGGER"
	KindCreatePolicy            Kind = "CREATE POLICY"
	KindAlterPolicy             Kind = "ALTER POLICY"
	KindCreateExtension         Kind = "CREATE EXTENSION"
	KindAlterExtension          Kind = "ALTER EXTENSION"
	KindCreatePublication       Kind = "CREATE PUBLICATION"
	KindAlterPublication        Kind = "ALTER PUBLICATION"
	KindCreateSubscription      Kind = "CREATE SUBSCRIPTION"
	KindAlterSubscription       Kind = "ALTER SUBSCRIPTION"
	KindCreateSchema            Kind = "CREATE SCHEMA"
	KindCreateDatabase          Kind = "CREATE DATABASE"
	KindAlterDatabase           Kind = "ALTER DATABASE"
	KindDropDatabase            Kind = "DROP DATABASE"
	KindCreateTablespace        Kind = "CREATE TABLESPACE"
	KindCreateFunction          Kind = "CREATE FUNCTION"
	KindCreateProcedure         Kind = "CREATE PROCEDURE"
	KindCommentOn               Kind = "COMMENT"
	KindBegin                   Kind = "BEGIN"
	KindStartTransaction        Kind = "START TRANSACTION"
	KindCommit                  Kind = "COMMIT"
	KindRollback                Kind = "ROLLBACK"
	KindSavepoint               Kind = "SAVEPOINT"
	KindRelease                 Kind = "RELEASE"
	KindPrepareTransaction      Kind = "PREPARE TRANSACTION"
	KindCommitPrepared          Kind = "COMMIT PREPARED"
	KindRollbackPrepared        Kind = "ROLLBACK PREPARED"
)

// Statement is one parsed top-level statement.
type Statement interface {
	// Kind returns the command tag.
	Kind() Kind

	// Category returns DDL, DML or TCL.
	Category() Category

	statementNode()
}

// ddl, dml and tcl are embedded by every statement type to supply the
// category and the marker method.
type ddl struct{}

func (ddl) Category() Category { return CategoryDDL }
func (ddl) statementNode()     {}

type dml struct{}

func (dml) Category() Category { return CategoryDML }
func (dml) statementNode()     {}

type tcl struct{}

func (tcl) Category() Category { return CategoryTCL }
func (tcl) statementNode()     {}

// objectKind builds a command tag from a verb and an object type, e.g.
// ("DROP", "MATERIALIZED VIEW").
func objectKind(verb, objectType string) Kind {
	return Kind(verb + " " + strings.ToUpper(objectType))
}

// Drop behaviors.
const (
	BehaviorDefault  = ""
	BehaviorCascade  = "CASCADE"
	BehaviorRestrict = "RESTRICT"
)

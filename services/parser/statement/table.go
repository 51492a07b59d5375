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

// =============================================================================
// CREATE TABLE
// =============================================================================

// CreateTable is CREATE TABLE in its column-list, PARTITION OF and AS
// forms.
type CreateTable struct {
	ddl

	// Persistence is "", "TEMPORARY" or "UNLOGGED". GLOBAL and LOCAL are
	// noise and dropped.
	Persistence string
	IfNotExists bool
	Name        QualifiedName

	// Elements holds columns, table constraints and LIKE clauses in source
	// order.
	Elements []TableElement

	Inherits []QualifiedName

	// PartitionOf is set for CREATE TABLE ... PARTITION OF parent, with
	// Bound describing the partition.
	PartitionOf QualifiedName
	Bound       *PartitionBound

	PartitionBy *PartitionSpec

	AccessMethod Identifier
	Options      []Option
	WithoutOIDs  bool

	// OnCommit is "", "DROP", "DELETE ROWS" or "PRESERVE ROWS".
	OnCommit   string
	Tablespace Identifier

	// AsQuery is set for CREATE TABLE ... AS; ColumnNames renames the
	// query's columns and WithData is "", "WITH DATA" or "WITH NO DATA".
	AsQuery     *SelectStatement
	ColumnNames []Identifier
	WithData    string
}

// Kind returns CREATE TABLE, or CREATE TABLE AS for the query form.
func (s *CreateTable) Kind() Kind {
	if s.AsQuery != nil {
		return KindCreateTableAs
	}
	return KindCreateTable
}

// Columns returns the column definitions in order.
func (s *CreateTable) Columns() []*ColumnDef {
	var out []*ColumnDef
	for _, e := range s.Elements {
		if c, ok := e.(*ColumnDef); ok {
			out = append(out, c)
		}
	}
	return out
}

// Constraints returns the table constraints in order.
func (s *CreateTable) Constraints() []*TableConstraint {
	var out []*TableConstraint
	for _, e := range s.Elements {
		if c, ok := e.(*TableConstraint); ok {
			out = append(out, c)
		}
	}
	return out
}

// PrimaryKey returns the primary key columns declared either as a table
// constraint or on a single column, or nil.
func (s *CreateTable) PrimaryKey() []Identifier {
	for _, c := range s.Constraints() {
		if c.Type == ConstraintPrimaryKey {
			return c.Columns
		}
	}
	for _, col := range s.Columns() {
		for _, c := range col.Constraints {
			if c.Type == ConstraintPrimaryKey {
				return []Identifier{col.Name}
			}
		}
	}
	return nil
}

// TableElement is an entry of the CREATE TABLE element list.
type TableElement interface {
	tableElement()
}

// ColumnDef is name type [COMPRESSION m] [COLLATE c] constraints.
type ColumnDef struct {
	Name        Identifier
	Type        *DataType
	Compression Identifier
	Collation   QualifiedName
	Constraints []*ColumnConstraint
}

// TableLike is LIKE source {INCLUDING|EXCLUDING option}. Options are upper
// case, e.g. "INCLUDING DEFAULTS".
type TableLike struct {
	Table   QualifiedName
	Options []string
}

func (*ColumnDef) tableElement()       {}
func (*TableConstraint) tableElement() {}
func (*TableLike) tableElement()       {}

// Constraint types.
const (
	ConstraintNotNull    = "NOT NULL"
	ConstraintNull       = "NULL"
	ConstraintCheck      = "CHECK"
	ConstraintDefault    = "DEFAULT"
	ConstraintIdentity   = "IDENTITY"
	ConstraintGenerated  = "GENERATED"
	ConstraintUnique     = "UNIQUE"
	ConstraintPrimaryKey = "PRIMARY KEY"
	ConstraintForeignKey = "FOREIGN KEY"
	ConstraintExclude    = "EXCLUDE"

	// ConstraintAttributesOnly is a constraint clause consisting only of
	// DEFERRABLE / INITIALLY attributes.
	ConstraintAttributesOnly = ""
)

// ColumnConstraint is one constraint clause of a column or domain.
type ColumnConstraint struct {
	Name Identifier
	Type string

	// Expr is the CHECK condition, the DEFAULT value or the generation
	// expression.
	Expr Expr

	// Generated is "ALWAYS" or "BY DEFAULT" for identity and generated
	// columns; SequenceOptions belong to identity columns.
	Generated       string
	SequenceOptions []SequenceOption

	NullsNotDistinct bool
	Index            IndexParams
	References       *ForeignKey
	Attributes       ConstraintAttributes
}

// TableConstraint is a table-level constraint.
type TableConstraint struct {
	Name Identifier
	Type string

	// Expr is the CHECK condition.
	Expr Expr

	// Columns are the key columns of UNIQUE, PRIMARY KEY and FOREIGN KEY.
	Columns          []Identifier
	NullsNotDistinct bool
	Index            IndexParams
	References       *ForeignKey
	Exclude          *ExcludeConstraint
	Attributes       ConstraintAttributes
}

// ConstraintAttributes are the trailing constraint modifiers. Deferrable is
// "", "DEFERRABLE" or "NOT DEFERRABLE"; Initially is "", "DEFERRED" or
// "IMMEDIATE".
type ConstraintAttributes struct {
	Deferrable string
	Initially  string
	NotValid   bool
	NoInherit  bool
}

// IndexParams are the INCLUDE, WITH and USING INDEX TABLESPACE tails of
// index-backed constraints.
type IndexParams struct {
	Include    []Identifier
	Options    []Option
	Tablespace Identifier
}

// ForeignKey is REFERENCES table [(columns)] [MATCH type] [ON DELETE ...]
// [ON UPDATE ...].
type ForeignKey struct {
	Table    QualifiedName
	Columns  []Identifier
	Match    string
	OnDelete *ReferentialAction
	OnUpdate *ReferentialAction
}

// ReferentialAction is NO ACTION, RESTRICT, CASCADE, SET NULL or SET
// DEFAULT, the SET forms with an optional column list.
type ReferentialAction struct {
	Action  string
	Columns []Identifier
}

// ExcludeConstraint is EXCLUDE [USING method] (element WITH op, ...)
// [WHERE (predicate)].
type ExcludeConstraint struct {
	Method   Identifier
	Elements []ExcludeElement
	Where    Expr
}

// ExcludeElement pairs an index element with its exclusion operator.
type ExcludeElement struct {
	Element  IndexElement
	Operator string
}

// PartitionSpec is PARTITION BY strategy (elements). Strategy is upper
// case.
type PartitionSpec struct {
	Strategy string
	Elements []PartitionElement
}

// PartitionElement is a partition key: a column or an expression, with
// optional collation and operator class.
type PartitionElement struct {
	Column    Identifier
	Expr      Expr
	Collation QualifiedName
	OpClass   QualifiedName
}

// PartitionBound is FOR VALUES IN (...), FROM (...) TO (...), WITH
// (MODULUS m, REMAINDER r), or DEFAULT. Modulus is zero unless the hash
// form was used.
type PartitionBound struct {
	Default   bool
	In        []Expr
	From      []Expr
	To        []Expr
	Modulus   int64
	Remainder int64
}

// =============================================================================
// ALTER TABLE
// =============================================================================

// AlterTable is ALTER TABLE [IF EXISTS] table action, ....
type AlterTable struct {
	ddl
	IfExists bool
	Table    Relation
	Actions  []AlterAction
}

// Kind returns ALTER TABLE.
func (*AlterTable) Kind() Kind { return KindAlterTable }

// AlterAction is one action of an ALTER statement. The same action types
// serve ALTER TABLE and the other ALTER statements that share its clauses.
type AlterAction interface {
	alterAction()
}

// AddColumn is ADD [COLUMN] [IF NOT EXISTS] column.
type AddColumn struct {
	IfNotExists bool
	Column      *ColumnDef
}

// AddConstraint is ADD table_constraint.
type AddConstraint struct {
	Constraint *TableConstraint
}

// DropColumn is DROP [COLUMN] [IF EXISTS] name [behavior].
type DropColumn struct {
	IfExists bool
	Name     Identifier
	Behavior string
}

// DropConstraint is DROP CONSTRAINT [IF EXISTS] name [behavior].
type DropConstraint struct {
	IfExists bool
	Name     Identifier
	Behavior string
}

// ALTER COLUMN sub-actions.
const (
	ColumnSetType        = "TYPE"
	ColumnSetDefault     = "SET DEFAULT"
	ColumnDropDefault    = "DROP DEFAULT"
	ColumnSetNotNull     = "SET NOT NULL"
	ColumnDropNotNull    = "DROP NOT NULL"
	ColumnDropExpression = "DROP EXPRESSION"
	ColumnDropIdentity   = "DROP IDENTITY"
	ColumnAddGenerated   = "ADD"
	ColumnSetStatistics  = "SET STATISTICS"
	ColumnSetStorage     = "SET STORAGE"
	ColumnSetCompression = "SET COMPRESSION"
	ColumnSetGenerated   = "SET GENERATED"
	ColumnSetOptions     = "SET"
	ColumnResetOptions   = "RESET"
)

// AlterColumn is ALTER [COLUMN] column sub-action. Number addresses an index
// column by position instead of Column. Only the fields of Action are set.
type AlterColumn struct {
	Column Identifier
	Number int64
	Action string

	Type      *DataType
	Collation QualifiedName
	Using     Expr

	// Value is the new default or the statistics target.
	Value Expr

	// Word is the storage or compression method.
	Word Identifier

	// Generated is "ALWAYS" or "BY DEFAULT" for SET GENERATED.
	Generated string

	// Constraint is the identity or generation clause of ADD GENERATED.
	Constraint *ColumnConstraint

	IfExists bool
	Options  []Option
}

// AlterConstraint is ALTER CONSTRAINT name attributes.
type AlterConstraint struct {
	Name       Identifier
	Attributes ConstraintAttributes
}

// ValidateConstraint is VALIDATE CONSTRAINT name.
type ValidateConstraint struct {
	Name Identifier
}

// Rename targets.
const (
	RenameObject     = ""
	RenameColumn     = "COLUMN"
	RenameConstraint = "CONSTRAINT"
	RenameAttribute  = "ATTRIBUTE"
)

// Rename is RENAME TO new, or RENAME COLUMN|CONSTRAINT|ATTRIBUTE old TO new.
// Behavior applies to attributes only.
type Rename struct {
	Target   string
	Old      Identifier
	New      Identifier
	Behavior string
}

// OwnerTo is OWNER TO role.
type OwnerTo struct {
	Owner RoleSpec
}

// SetSchema is SET SCHEMA name.
type SetSchema struct {
	Schema Identifier
}

// SetTablespace is SET TABLESPACE name.
type SetTablespace struct {
	Tablespace Identifier
}

// SetOptions is SET (options) or, with Reset, RESET (names).
type SetOptions struct {
	Reset   bool
	Options []Option
}

// SetPersistence is SET LOGGED or SET UNLOGGED.
type SetPersistence struct {
	Logged bool
}

// SetWithout is SET WITHOUT CLUSTER or SET WITHOUT OIDS.
type SetWithout struct {
	Target string
}

// SetAccessMethod is SET ACCESS METHOD name.
type SetAccessMethod struct {
	Method Identifier
}

// ClusterOn is CLUSTER ON index.
type ClusterOn struct {
	Index Identifier
}

// EnableDisable is ENABLE|DISABLE [ALWAYS|REPLICA] TRIGGER|RULE name and
// ENABLE|DISABLE ROW LEVEL SECURITY. All is "ALL" or "USER" for TRIGGER
// ALL|USER.
type EnableDisable struct {
	Enable bool
	Mode   string
	Target string
	Name   Identifier
	All    string
}

// RowSecurity is [NO] FORCE ROW LEVEL SECURITY.
type RowSecurity struct {
	Force bool
}

// Inherit is [NO] INHERIT parent.
type Inherit struct {
	No     bool
	Parent QualifiedName
}

// OfType is OF type, or NOT OF with Not set.
type OfType struct {
	Not  bool
	Type QualifiedName
}

// ReplicaIdentity is REPLICA IDENTITY DEFAULT|FULL|NOTHING|USING INDEX name.
type ReplicaIdentity struct {
	Mode  string
	Index Identifier
}

// AttachPartition is ATTACH PARTITION name [bound]. Indexes attach without
// a bound.
type AttachPartition struct {
	Partition QualifiedName
	Bound     *PartitionBound
}

// DetachPartition is DETACH PARTITION name [CONCURRENTLY|FINALIZE].
type DetachPartition struct {
	Partition QualifiedName
	Mode      string
}

// DependsOnExtension is [NO] DEPENDS ON EXTENSION name.
type DependsOnExtension struct {
	No        bool
	Extension Identifier
}

func (*AddColumn) alterAction()          {}
func (*AddConstraint) alterAction()      {}
func (*DropColumn) alterAction()         {}
func (*DropConstraint) alterAction()     {}
func (*AlterColumn) alterAction()        {}
func (*AlterConstraint) alterAction()    {}
func (*ValidateConstraint) alterAction() {}
func (*Rename) alterAction()             {}
func (*OwnerTo) alterAction()            {}
func (*SetSchema) alterAction()          {}
func (*SetTablespace) alterAction()      {}
func (*SetOptions) alterAction()         {}
func (*SetPersistence) alterAction()     {}
func (*SetWithout) alterAction()         {}
func (*SetAccessMethod) alterAction()    {}
func (*ClusterOn) alterAction()          {}
func (*EnableDisable) alterAction()      {}
func (*RowSecurity) alterAction()        {}
func (*Inherit) alterAction()            {}
func (*OfType) alterAction()             {}
func (*ReplicaIdentity) alterAction()    {}
func (*AttachPartition) alterAction()    {}
func (*DetachPartition) alterAction()    {}
func (*DependsOnExtension) alterAction() {}

// =============================================================================
// TRUNCATE
// =============================================================================

// TruncateTable is TRUNCATE [TABLE] tables [RESTART|CONTINUE IDENTITY]
// [behavior].
type TruncateTable struct {
	ddl
	Tables   []Relation
	Identity string
	Behavior string
}

// Kind returns TRUNCATE TABLE.
func (*TruncateTable) Kind() Kind { return KindTruncateTable }

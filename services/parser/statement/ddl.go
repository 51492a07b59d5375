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
// Indexes and views
// =============================================================================

// CreateIndex is CREATE [UNIQUE] INDEX [CONCURRENTLY] [[IF NOT EXISTS] name]
// ON table [USING method] (elements) .... Method is empty when not given,
// which PostgreSQL treats as btree.
type CreateIndex struct {
	ddl
	Unique           bool
	Concurrently     bool
	IfNotExists      bool
	Name             Identifier
	Table            Relation
	Method           Identifier
	Columns          []IndexElement
	Include          []Identifier
	NullsNotDistinct bool
	Options          []Option
	Tablespace       Identifier
	Where            Expr
}

// Kind returns CREATE INDEX.
func (*CreateIndex) Kind() Kind { return KindCreateIndex }

// IndexElement is a key column or expression with its collation, operator
// class and ordering. Exactly one of Column and Expr is set.
type IndexElement struct {
	Column         Identifier
	Expr           Expr
	Collation      QualifiedName
	OpClass        QualifiedName
	OpClassOptions []Option
	Direction      string
	Nulls          string
}

// CreateView is CREATE [OR REPLACE] [TEMP] [RECURSIVE] VIEW. CheckOption is
// "", "CASCADED" or "LOCAL"; a bare WITH CHECK OPTION means CASCADED.
type CreateView struct {
	ddl
	Replace     bool
	Temporary   bool
	Recursive   bool
	Name        QualifiedName
	Columns     []Identifier
	Options     []Option
	Query       *SelectStatement
	CheckOption string
}

// Kind returns CREATE VIEW.
func (*CreateView) Kind() Kind { return KindCreateView }

// CreateMaterializedView is CREATE [UNLOGGED] MATERIALIZED VIEW ... AS query.
type CreateMaterializedView struct {
	ddl
	Unlogged     bool
	IfNotExists  bool
	Name         QualifiedName
	Columns      []Identifier
	AccessMethod Identifier
	Options      []Option
	Tablespace   Identifier
	Query        *SelectStatement
	WithData     string
}

// Kind returns CREATE MATERIALIZED VIEW.
func (*CreateMaterializedView) Kind() Kind { return KindCreateMaterializedView }

// RefreshMaterializedView is REFRESH MATERIALIZED VIEW [CONCURRENTLY] name
// [WITH [NO] DATA].
type RefreshMaterializedView struct {
	ddl
	Concurrently bool
	Name         QualifiedName
	WithData     string
}

// Kind returns REFRESH MATERIALIZED VIEW.
func (*RefreshMaterializedView) Kind() Kind { return KindRefreshMaterializedView }

// AlterObject is an ALTER statement that consists of a single shared action:
// ALTER INDEX, VIEW, MATERIALIZED VIEW, TRIGGER, SCHEMA and TABLESPACE.
// Table is the ON table of ALTER TRIGGER.
type AlterObject struct {
	ddl
	ObjectType string
	IfExists   bool
	Name       QualifiedName
	Table      QualifiedName
	Action     AlterAction
}

// Kind returns ALTER followed by the object type.
func (s *AlterObject) Kind() Kind { return objectKind("ALTER", s.ObjectType) }

// =============================================================================
// Sequences
// =============================================================================

// CreateSequence is CREATE [TEMP|UNLOGGED] SEQUENCE [IF NOT EXISTS] name
// options.
type CreateSequence struct {
	ddl
	Persistence string
	IfNotExists bool
	Name        QualifiedName
	Options     []SequenceOption
}

// Kind returns CREATE SEQUENCE.
func (*CreateSequence) Kind() Kind { return KindCreateSequence }

// AlterSequence is ALTER SEQUENCE with either sequence options or one shared
// action.
type AlterSequence struct {
	ddl
	IfExists bool
	Name     QualifiedName
	Options  []SequenceOption
	Action   AlterAction
}

// Kind returns ALTER SEQUENCE.
func (*AlterSequence) Kind() Kind { return KindAlterSequence }

// Sequence option names. INCREMENT and START are normalized to their BY and
// WITH spellings.
const (
	SeqAs           = "AS"
	SeqIncrementBy  = "INCREMENT BY"
	SeqMinValue     = "MINVALUE"
	SeqMaxValue     = "MAXVALUE"
	SeqNoMinValue   = "NO MINVALUE"
	SeqNoMaxValue   = "NO MAXVALUE"
	SeqNoCycle      = "NO CYCLE"
	SeqStartWith    = "START WITH"
	SeqRestart      = "RESTART"
	SeqCache        = "CACHE"
	SeqCycle        = "CYCLE"
	SeqOwnedBy      = "OWNED BY"
	SeqSequenceName = "SEQUENCE NAME"
)

// SequenceOption is one sequence option. Value holds numeric arguments,
// Type the AS type and Target the OWNED BY column or SEQUENCE NAME; a zero
// Target under OWNED BY means NONE.
type SequenceOption struct {
	Name   string
	Value  Expr
	Type   *DataType
	Target QualifiedName
}

// =============================================================================
// Types and domains
// =============================================================================

// CREATE TYPE forms.
const (
	TypeFormEnum      = "ENUM"
	TypeFormRange     = "RANGE"
	TypeFormComposite = "COMPOSITE"
	TypeFormBase      = "BASE"
	TypeFormShell     = "SHELL"
)

// CreateType is CREATE TYPE in one of its forms.
type CreateType struct {
	ddl
	Name       QualifiedName
	Form       string
	Labels     []string
	Attributes []TypeAttribute
	Definition []DefElem
}

// Kind returns CREATE TYPE.
func (*CreateType) Kind() Kind { return KindCreateType }

// TypeAttribute is one attribute of a composite type.
type TypeAttribute struct {
	Name      Identifier
	Type      *DataType
	Collation QualifiedName
}

// DefElem is name [= value] in a type definition. A value that parses as a
// type name is held in Type, anything else in Value.
type DefElem struct {
	Name  Identifier
	Value Expr
	Type  *DataType
}

// AlterType is ALTER TYPE name with enum, attribute or shared actions.
type AlterType struct {
	ddl
	Name    QualifiedName
	Actions []AlterAction
}

// Kind returns ALTER TYPE.
func (*AlterType) Kind() Kind { return KindAlterType }

// AddEnumValue is ADD VALUE [IF NOT EXISTS] 'label' [BEFORE|AFTER 'label'].
type AddEnumValue struct {
	IfNotExists bool
	Value       string
	Position    string
	Neighbor    string
}

// RenameEnumValue is RENAME VALUE 'old' TO 'new'.
type RenameEnumValue struct {
	Old string
	New string
}

// AddAttribute is ADD ATTRIBUTE name type [COLLATE c] [behavior].
type AddAttribute struct {
	Attribute TypeAttribute
	Behavior  string
}

// DropAttribute is DROP ATTRIBUTE [IF EXISTS] name [behavior].
type DropAttribute struct {
	IfExists bool
	Name     Identifier
	Behavior string
}

// AlterAttribute is ALTER ATTRIBUTE name TYPE type [COLLATE c] [behavior].
type AlterAttribute struct {
	Attribute TypeAttribute
	Behavior  string
}

func (*AddEnumValue) alterAction()    {}
func (*RenameEnumValue) alterAction() {}
func (*AddAttribute) alterAction()    {}
func (*DropAttribute) alterAction()   {}
func (*AlterAttribute) alterAction()  {}

// CreateDomain is CREATE DOMAIN name [AS] type [COLLATE c] constraints.
type CreateDomain struct {
	ddl
	Name        QualifiedName
	Type        *DataType
	Collation   QualifiedName
	Constraints []*ColumnConstraint
}

// Kind returns CREATE DOMAIN.
func (*CreateDomain) Kind() Kind { return KindCreateDomain }

// AlterDomain is ALTER DOMAIN name with one action. Column-style actions
// (SET DEFAULT, DROP NOT NULL, ...) use an *AlterColumn without a column.
type AlterDomain struct {
	ddl
	Name   QualifiedName
	Action AlterAction
}

// Kind returns ALTER DOMAIN.
func (*AlterDomain) Kind() Kind { return KindAlterDomain }

// =============================================================================
// Triggers and policies
// =============================================================================

// CreateTrigger is CREATE [OR REPLACE] [CONSTRAINT] TRIGGER. EXECUTE
// PROCEDURE is normalized to EXECUTE FUNCTION.
type CreateTrigger struct {
	ddl
	Replace     bool
	Constraint  bool
	Name        Identifier
	Timing      string
	Events      []TriggerEvent
	Table       QualifiedName
	From        QualifiedName
	Attributes  ConstraintAttributes
	Referencing []TriggerTransition
	ForEach     string
	When        Expr
	Function    QualifiedName
	Args        []Expr
}

// Kind returns CREATE TRIGGER.
func (*CreateTrigger) Kind() Kind { return KindCreateTrigger }

// TriggerEvent is INSERT, UPDATE [OF columns], DELETE or TRUNCATE.
type TriggerEvent struct {
	Event   string
	Columns []Identifier
}

// TriggerTransition is OLD|NEW TABLE|ROW [AS] name.
type TriggerTransition struct {
	New   bool
	Table bool
	Name  Identifier
}

// CreatePolicy is CREATE POLICY name ON table [AS PERMISSIVE|RESTRICTIVE]
// [FOR command] [TO roles] [USING (expr)] [WITH CHECK (expr)].
type CreatePolicy struct {
	ddl
	Name      Identifier
	Table     QualifiedName
	Type      string
	Command   string
	Roles     []RoleSpec
	Using     Expr
	WithCheck Expr
}

// Kind returns CREATE POLICY.
func (*CreatePolicy) Kind() Kind { return KindCreatePolicy }

// AlterPolicy is ALTER POLICY name ON table RENAME TO new, or with new
// roles and expressions.
type AlterPolicy struct {
	ddl
	Name      Identifier
	Table     QualifiedName
	NewName   Identifier
	Roles     []RoleSpec
	Using     Expr
	WithCheck Expr
}

// Kind returns ALTER POLICY.
func (*AlterPolicy) Kind() Kind { return KindAlterPolicy }

// =============================================================================
// Extensions and replication
// =============================================================================

// CreateExtension is CREATE EXTENSION [IF NOT EXISTS] name [WITH] [SCHEMA s]
// [VERSION v] [CASCADE].
type CreateExtension struct {
	ddl
	IfNotExists bool
	Name        Identifier
	Schema      Identifier
	Version     string
	Cascade     bool
}

// Kind returns CREATE EXTENSION.
func (*CreateExtension) Kind() Kind { return KindCreateExtension }

// AlterExtension is ALTER EXTENSION name UPDATE [TO v], ADD|DROP object, or
// a shared action.
type AlterExtension struct {
	ddl
	Name    Identifier
	Update  bool
	Version string
	Member  string
	Object  *ObjectRef
	Action  AlterAction
}

// Kind returns ALTER EXTENSION.
func (*AlterExtension) Kind() Kind { return KindAlterExtension }

// CreatePublication is CREATE PUBLICATION name [FOR ALL TABLES | FOR objects]
// [WITH (options)].
type CreatePublication struct {
	ddl
	Name      Identifier
	AllTables bool
	Objects   []PublicationObject
	Options   []Option
}

// Kind returns CREATE PUBLICATION.
func (*CreatePublication) Kind() Kind { return KindCreatePublication }

// Publication object types.
const (
	PublicationTable          = "TABLE"
	PublicationTablesInSchema = "TABLES IN SCHEMA"
)

// PublicationObject is TABLE t [(columns)] [WHERE (expr)] or TABLES IN
// SCHEMA s. A bare name continues the type of the object before it.
type PublicationObject struct {
	Type          string
	Table         Relation
	Columns       []Identifier
	Where         Expr
	Schema        Identifier
	CurrentSchema bool
}

// AlterPublication is ALTER PUBLICATION name ADD|SET|DROP objects, SET
// (options) or a shared action.
type AlterPublication struct {
	ddl
	Name      Identifier
	Operation string
	Objects   []PublicationObject
	Options   []Option
	Action    AlterAction
}

// Kind returns ALTER PUBLICATION.
func (*AlterPublication) Kind() Kind { return KindAlterPublication }

// CreateSubscription is CREATE SUBSCRIPTION name CONNECTION 'conninfo'
// PUBLICATION names [WITH (options)].
type CreateSubscription struct {
	ddl
	Name         Identifier
	Connection   string
	Publications []Identifier
	Options      []Option
}

// Kind returns CREATE SUBSCRIPTION.
func (*CreateSubscription) Kind() Kind { return KindCreateSubscription }

// Subscription operations.
const (
	SubscriptionConnection         = "CONNECTION"
	SubscriptionSetPublication     = "SET PUBLICATION"
	SubscriptionAddPublication     = "ADD PUBLICATION"
	SubscriptionDropPublication    = "DROP PUBLICATION"
	SubscriptionRefreshPublication = "REFRESH PUBLICATION"
	SubscriptionEnable             = "ENABLE"
	SubscriptionDisable            = "DISABLE"
	SubscriptionSkip               = "SKIP"
)

// AlterSubscription is ALTER SUBSCRIPTION name with one operation or a
// shared action.
type AlterSubscription struct {
	ddl
	Name         Identifier
	Operation    string
	Connection   string
	Publications []Identifier
	Options      []Option
	Action       AlterAction
}

// Kind returns ALTER SUBSCRIPTION.
func (*AlterSubscription) Kind() Kind { return KindAlterSubscription }

// =============================================================================
// Schemas, databases and tablespaces
// =============================================================================

// CreateSchema is CREATE SCHEMA [IF NOT EXISTS] [name] [AUTHORIZATION role]
// followed by embedded CREATE statements.
type CreateSchema struct {
	ddl
	IfNotExists   bool
	Name          Identifier
	Authorization *RoleSpec
	Elements      []Statement
}

// Kind returns CREATE SCHEMA.
func (*CreateSchema) Kind() Kind { return KindCreateSchema }

// CreateDatabase is CREATE DATABASE name [WITH] options.
type CreateDatabase struct {
	ddl
	Name    Identifier
	Options []DatabaseOption
}

// Kind returns CREATE DATABASE.
func (*CreateDatabase) Kind() Kind { return KindCreateDatabase }

// DatabaseOption is name [=] value. Name is upper case, e.g. "OWNER" or
// "CONNECTION LIMIT"; Default marks the value DEFAULT.
type DatabaseOption struct {
	Name    string
	Value   Expr
	Default bool
}

// AlterDatabase is ALTER DATABASE name with options, SET, RESET, REFRESH
// COLLATION VERSION or a shared action.
type AlterDatabase struct {
	ddl
	Name                    Identifier
	Options                 []DatabaseOption
	Set                     *SetConfig
	Reset                   []Identifier
	ResetAll                bool
	RefreshCollationVersion bool
	Action                  AlterAction
}

// Kind returns ALTER DATABASE.
func (*AlterDatabase) Kind() Kind { return KindAlterDatabase }

// SetConfig is SET name TO|= value, ... | DEFAULT, or SET name FROM CURRENT.
type SetConfig struct {
	Name        []Identifier
	Values      []Expr
	Default     bool
	FromCurrent bool
}

// DropDatabase is DROP DATABASE [IF EXISTS] name [WITH (FORCE)].
type DropDatabase struct {
	ddl
	IfExists bool
	Name     Identifier
	Force    bool
}

// Kind returns DROP DATABASE.
func (*DropDatabase) Kind() Kind { return KindDropDatabase }

// CreateTablespace is CREATE TABLESPACE name [OWNER role] LOCATION 'dir'
// [WITH (options)].
type CreateTablespace struct {
	ddl
	Name     Identifier
	Owner    *RoleSpec
	Location string
	Options  []Option
}

// Kind returns CREATE TABLESPACE.
func (*CreateTablespace) Kind() Kind { return KindCreateTablespace }

// =============================================================================
// Functions and procedures
// =============================================================================

// CreateFunction is CREATE [OR REPLACE] FUNCTION|PROCEDURE.
type CreateFunction struct {
	ddl
	Replace      bool
	Procedure    bool
	Name         QualifiedName
	Params       []FunctionParam
	Returns      *DataType
	ReturnsTable []FunctionColumn
	Options      []FunctionOption
}

// Kind returns CREATE FUNCTION or CREATE PROCEDURE.
func (s *CreateFunction) Kind() Kind {
	if s.Procedure {
		return KindCreateProcedure
	}
	return KindCreateFunction
}

// FunctionParam is [mode] [name] type [DEFAULT expr]. "= expr" is
// normalized to DEFAULT.
type FunctionParam struct {
	Mode    string
	Name    Identifier
	Type    *DataType
	Default Expr
}

// FunctionColumn is one column of RETURNS TABLE.
type FunctionColumn struct {
	Name Identifier
	Type *DataType
}

// Function option names. STRICT is normalized to RETURNS NULL ON NULL
// INPUT and EXTERNAL SECURITY to SECURITY.
const (
	FuncLanguage          = "LANGUAGE"
	FuncAs                = "AS"
	FuncImmutable         = "IMMUTABLE"
	FuncStable            = "STABLE"
	FuncVolatile          = "VOLATILE"
	FuncLeakproof         = "LEAKPROOF"
	FuncNotLeakproof      = "NOT LEAKPROOF"
	FuncCalledOnNull      = "CALLED ON NULL INPUT"
	FuncReturnsNullOnNull = "RETURNS NULL ON NULL INPUT"
	FuncSecurityDefiner   = "SECURITY DEFINER"
	FuncSecurityInvoker   = "SECURITY INVOKER"
	FuncParallel          = "PARALLEL"
	FuncCost              = "COST"
	FuncRows              = "ROWS"
	FuncSupport           = "SUPPORT"
	FuncSet               = "SET"
	FuncReset             = "RESET"
	FuncTransform         = "TRANSFORM"
	FuncWindow            = "WINDOW"
	FuncReturn            = "RETURN"
	FuncBeginAtomic       = "BEGIN ATOMIC"
)

// FunctionOption is one function attribute or body. Only the fields of Name
// are set: Word for LANGUAGE and PARALLEL, Strings for AS, Value for COST,
// ROWS and RETURN, Target for SUPPORT, Set for SET, Reset/ResetAll for
// RESET, Types for TRANSFORM, Body for BEGIN ATOMIC.
type FunctionOption struct {
	Name     string
	Word     string
	Strings  []string
	Value    Expr
	Target   QualifiedName
	Set      *SetConfig
	Reset    []Identifier
	ResetAll bool
	Types    []*DataType
	Body     []Statement
}

// FunctionSignature is name [(params)]. HasParams distinguishes name() from
// a bare name.
type FunctionSignature struct {
	Name      QualifiedName
	Params    []FunctionParam
	HasParams bool
}

// AlterFunction is ALTER FUNCTION|PROCEDURE|ROUTINE signature with options
// or a shared action.
type AlterFunction struct {
	ddl
	ObjectType string
	Function   FunctionSignature
	Options    []FunctionOption
	Action     AlterAction
}

// Kind returns ALTER followed by the object type.
func (s *AlterFunction) Kind() Kind { return objectKind("ALTER", s.ObjectType) }

// DropFunction is DROP FUNCTION|PROCEDURE|ROUTINE|AGGREGATE [IF EXISTS]
// signatures [behavior].
type DropFunction struct {
	ddl
	ObjectType string
	IfExists   bool
	Functions  []FunctionSignature
	Behavior   string
}

// Kind returns DROP followed by the object type.
func (s *DropFunction) Kind() Kind { return objectKind("DROP", s.ObjectType) }

// =============================================================================
// DROP and COMMENT
// =============================================================================

// Drop is the generic DROP type [CONCURRENTLY] [IF EXISTS] names [behavior].
// ObjectType is upper case, e.g. "TABLE" or "MATERIALIZED VIEW".
type Drop struct {
	ddl
	ObjectType   string
	Concurrently bool
	IfExists     bool
	Names        []QualifiedName
	Behavior     string
}

// Kind returns DROP followed by the object type.
func (s *Drop) Kind() Kind { return objectKind("DROP", s.ObjectType) }

// DropOnTable is DROP TRIGGER|POLICY|RULE [IF EXISTS] name ON table
// [behavior].
type DropOnTable struct {
	ddl
	ObjectType string
	IfExists   bool
	Name       Identifier
	Table      QualifiedName
	Behavior   string
}

// Kind returns DROP followed by the object type.
func (s *DropOnTable) Kind() Kind { return objectKind("DROP", s.ObjectType) }

// CommentOn is COMMENT ON object IS 'text' | NULL.
type CommentOn struct {
	ddl
	Object ObjectRef
	Text   string
	Null   bool
}

// Kind returns COMMENT.
func (*CommentOn) Kind() Kind { return KindCommentOn }

// ObjectRef names a database object by type. Table is the ON target of
// constraints, triggers, policies and rules; OnDomain marks ON DOMAIN.
// Function is set for function-like types.
type ObjectRef struct {
	Type     string
	Name     QualifiedName
	Table    QualifiedName
	OnDomain bool
	Function *FunctionSignature
}

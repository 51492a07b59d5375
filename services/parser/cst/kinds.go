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

import "strconv"

// Kind identifies the grammar rule a Node was produced by. The set is
// closed: every rule the parser can invoke has exactly one Kind, and Accept
// dispatches on all of them.
type Kind uint16

const (
	// KindInvalid is the zero Kind; no parsed node carries it.
	KindInvalid Kind = iota

	// Structure
	KindStatement
	KindStatementBlock

	// Names
	KindColId
	KindColLabel
	KindTypeFunctionName
	KindNonReservedWord
	KindTriggerName
	KindQualifiedName
	KindFuncName
	KindColumnList
	KindRoleSpec
	KindAlias
	KindObjectType

	// Expressions
	KindBinaryExpr
	KindUnaryExpr
	KindIsExpr
	KindLikeExpr
	KindBetweenExpr
	KindInExpr
	KindQuantifiedExpr
	KindAtTimeZoneExpr
	KindCollateExpr
	KindTypecastExpr
	KindIndirectionExpr
	KindColumnRef
	KindParamRef
	KindConstant
	KindSignedNumber
	KindTypedLiteral
	KindParenExpr
	KindRowExpr
	KindSubqueryExpr
	KindExistsExpr
	KindArrayExpr
	KindCaseExpr
	KindWhenClause
	KindCommonFuncExpr
	KindFuncCall
	KindFuncArg
	KindFilterClause
	KindOverClause
	KindWindowSpecification
	KindWindowPartition
	KindFrameClause
	KindFrameBound
	KindSortClause
	KindSortBy
	KindSetToDefault

	// Types
	KindTypeName
	KindNumericType
	KindBitType
	KindCharacterType
	KindDatetimeType
	KindIntervalType
	KindIntervalQualifier
	KindGenericType
	KindTypeModifiers

	// Queries
	KindSelectStatement
	KindSelectWithParens
	KindSetOperation
	KindSimpleSelect
	KindDistinctClause
	KindTargetList
	KindTargetElement
	KindFromClause
	KindTableRef
	KindJoinedTable
	KindRelationExpr
	KindWhereClause
	KindGroupClause
	KindGroupingSet
	KindHavingClause
	KindWindowClause
	KindWindowDefinition
	KindLimitClause
	KindLockingClause
	KindValuesClause
	KindValuesRow
	KindWithClause
	KindCommonTableExpr

	// Data modification
	KindInsertStatement
	KindInsertTarget
	KindOnConflictClause
	KindConflictTarget
	KindSetClause
	KindReturningClause
	KindUpdateStatement
	KindDeleteStatement
	KindUsingClause

	// Tables
	KindCreateTable
	KindTableLikeClause
	KindColumnDefinition
	KindColumnConstraint
	KindTableConstraint
	KindReferencesClause
	KindReferentialAction
	KindIncludeClause
	KindInheritsClause
	KindPartitionSpec
	KindPartitionElement
	KindPartitionBound
	KindRelOptions
	KindRelOption
	KindOnCommitClause
	KindAlterTable
	KindAlterTableCmd
	KindTruncateTable

	// Indexes and views
	KindCreateIndex
	KindIndexElement
	KindAlterIndex
	KindAlterObjectCommand
	KindCreateView
	KindAlterView
	KindCreateMaterializedView
	KindRefreshMaterializedView
	KindAlterMaterializedView

	// Sequences, types and domains
	KindCreateSequence
	KindAlterSequence
	KindSequenceOption
	KindSeqOptionList
	KindCreateType
	KindTypeAttribute
	KindDefinitionElement
	KindAlterType
	KindAlterTypeCmd
	KindCreateDomain
	KindAlterDomain

	// Triggers and policies
	KindCreateTrigger
	KindTriggerEvent
	KindTriggerReferencing
	KindAlterTrigger
	KindCreatePolicy
	KindAlterPolicy

	// Extensions and replication
	KindCreateExtension
	KindAlterExtension
	KindCreatePublication
	KindPublicationObject
	KindAlterPublication
	KindCreateSubscription
	KindAlterSubscription

	// Schemas, databases and tablespaces
	KindCreateSchema
	KindAlterSchema
	KindCreateDatabase
	KindDatabaseOption
	KindAlterDatabase
	KindSetConfiguration
	KindDropDatabase
	KindCreateTablespace
	KindAlterTablespace

	// Routines
	KindCreateFunction
	KindFunctionParameter
	KindFunctionColumn
	KindFunctionOption
	KindFunctionWithArgs
	KindAlterFunction
	KindDropFunction

	// Other DDL
	KindCommentOn
	KindDropStatement
	KindDropTrigger
	KindDropPolicy
	KindDropRule

	// Transactions
	KindTransactionStatement
	KindTransactionMode

	numKinds
)

var kindNames = [numKinds]string{
	KindInvalid: "Invalid",
	KindStatement: "Statement",
	KindStatementBlock: "StatementBlock",
	KindColId: "ColId",
	KindColLabel: "ColLabel",
	KindTypeFunctionName: "TypeFunctionName",
	KindNonReservedWord: "NonReservedWord",
	KindTriggerName: "TriggerName",
	KindQualifiedName: "QualifiedName",
	KindFuncName: "FuncName",
	KindColumnList: "ColumnList",
	KindRoleSpec: "RoleSpec",
	KindAlias: "Alias",
	KindObjectType: "ObjectType",
	KindBinaryExpr: "BinaryExpr",
	KindUnaryExpr: "UnaryExpr",
	KindIsExpr: "IsExpr",
	KindLikeExpr: "LikeExpr",
	KindBetweenExpr: "BetweenExpr",
	KindInExpr: "InExpr",
	KindQuantifiedExpr: "QuantifiedExpr",
	KindAtTimeZoneExpr: "AtTimeZoneExpr",
	KindCollateExpr: "CollateExpr",
	KindTypecastExpr: "TypecastExpr",
	KindIndirectionExpr: "IndirectionExpr",
	KindColumnRef: "ColumnRef",
	KindParamRef: "ParamRef",
	KindConstant: "Constant",
	KindSignedNumber: "SignedNumber",
	KindTypedLiteral: "TypedLiteral",
	KindParenExpr: "ParenExpr",
	KindRowExpr: "RowExpr",
	KindSubqueryExpr: "SubqueryExpr",
	KindExistsExpr: "ExistsExpr",
	KindArrayExpr: "ArrayExpr",
	KindCaseExpr: "CaseExpr",
	KindWhenClause: "WhenClause",
	KindCommonFuncExpr: "CommonFuncExpr",
	KindFuncCall: "FuncCall",
	KindFuncArg: "FuncArg",
	KindFilterClause: "FilterClause",
	KindOverClause: "OverClause",
	KindWindowSpecification: "WindowSpecification",
	KindWindowPartition: "WindowPartition",
	KindFrameClause: "FrameClause",
	KindFrameBound: "FrameBound",
	KindSortClause: "SortClause",
	KindSortBy: "SortBy",
	KindSetToDefault: "SetToDefault",
	KindTypeName: "TypeName",
	KindNumericType: "NumericType",
	KindBitType: "BitType",
	KindCharacterType: "CharacterType",
	KindDatetimeType: "DatetimeType",
	KindIntervalType: "IntervalType",
	KindIntervalQualifier: "IntervalQualifier",
	KindGenericType: "GenericType",
	KindTypeModifiers: "TypeModifiers",
	KindSelectStatement: "SelectStatement",
	KindSelectWithParens: "SelectWithParens",
	KindSetOperation: "SetOperation",
	KindSimpleSelect: "SimpleSelect",
	KindDistinctClause: "DistinctClause",
	KindTargetList: "TargetList",
	KindTargetElement: "TargetElement",
	KindFromClause: "FromClause",
	KindTableRef: "TableRef",
	KindJoinedTable: "JoinedTable",
	KindRelationExpr: "RelationExpr",
	KindWhereClause: "WhereClause",
	KindGroupClause: "GroupClause",
	KindGroupingSet: "GroupingSet",
	KindHavingClause: "HavingClause",
	KindWindowClause: "WindowClause",
	KindWindowDefinition: "WindowDefinition",
	KindLimitClause: "LimitClause",
	KindLockingClause: "LockingClause",
	KindValuesClause: "ValuesClause",
	KindValuesRow: "ValuesRow",
	KindWithClause: "WithClause",
	KindCommonTableExpr: "CommonTableExpr",
	KindInsertStatement: "InsertStatement",
	KindInsertTarget: "InsertTarget",
	KindOnConflictClause: "OnConflictClause",
	KindConflictTarget: "ConflictTarget",
	KindSetClause: "SetClause",
	KindReturningClause: "ReturningClause",
	KindUpdateStatement: "UpdateStatement",
	KindDeleteStatement: "DeleteStatement",
	KindUsingClause: "UsingClause",
	KindCreateTable: "CreateTable",
	KindTableLikeClause: "TableLikeClause",
	KindColumnDefinition: "ColumnDefinition",
	KindColumnConstraint: "ColumnConstraint",
	KindTableConstraint: "TableConstraint",
	KindReferencesClause: "ReferencesClause",
	KindReferentialAction: "ReferentialAction",
	KindIncludeClause: "IncludeClause",
	KindInheritsClause: "InheritsClause",
	KindPartitionSpec: "PartitionSpec",
	KindPartitionElement: "PartitionElement",
	KindPartitionBound: "PartitionBound",
	KindRelOptions: "RelOptions",
	KindRelOption: "RelOption",
	KindOnCommitClause: "OnCommitClause",
	KindAlterTable: "AlterTable",
	KindAlterTableCmd: "AlterTableCmd",
	KindTruncateTable: "TruncateTable",
	KindCreateIndex: "CreateIndex",
	KindIndexElement: "IndexElement",
	KindAlterIndex: "AlterIndex",
	KindAlterObjectCommand: "AlterObjectCommand",
	KindCreateView: "CreateView",
	KindAlterView: "AlterView",
	KindCreateMaterializedView: "CreateMaterializedView",
	KindRefreshMaterializedView: "RefreshMaterializedView",
	KindAlterMaterializedView: "AlterMaterializedView",
	KindCreateSequence: "CreateSequence",
	KindAlterSequence: "AlterSequence",
	KindSequenceOption: "SequenceOption",
	KindSeqOptionList: "SeqOptionList",
	KindCreateType: "CreateType",
	KindTypeAttribute: "TypeAttribute",
	KindDefinitionElement: "DefinitionElement",
	KindAlterType: "AlterType",
	KindAlterTypeCmd: "AlterTypeCmd",
	KindCreateDomain: "CreateDomain",
	KindAlterDomain: "AlterDomain",
	KindCreateTrigger: "CreateTrigger",
	KindTriggerEvent: "TriggerEvent",
	KindTriggerReferencing: "TriggerReferencing",
	KindAlterTrigger: "AlterTrigger",
	KindCreatePolicy: "CreatePolicy",
	KindAlterPolicy: "AlterPolicy",
	KindCreateExtension: "CreateExtension",
	KindAlterExtension: "AlterExtension",
	KindCreatePublication: "CreatePublication",
	KindPublicationObject: "PublicationObject",
	KindAlterPublication: "AlterPublication",
	KindCreateSubscription: "CreateSubscription",
	KindAlterSubscription: "AlterSubscription",
	KindCreateSchema: "CreateSchema",
	KindAlterSchema: "AlterSchema",
	KindCreateDatabase: "CreateDatabase",
	KindDatabaseOption: "DatabaseOption",
	KindAlterDatabase: "AlterDatabase",
	KindSetConfiguration: "SetConfiguration",
	KindDropDatabase: "DropDatabase",
	KindCreateTablespace: "CreateTablespace",
	KindAlterTablespace: "AlterTablespace",
	KindCreateFunction: "CreateFunction",
	KindFunctionParameter: "FunctionParameter",
	KindFunctionColumn: "FunctionColumn",
	KindFunctionOption: "FunctionOption",
	KindFunctionWithArgs: "FunctionWithArgs",
	KindAlterFunction: "AlterFunction",
	KindDropFunction: "DropFunction",
	KindCommentOn: "CommentOn",
	KindDropStatement: "DropStatement",
	KindDropTrigger: "DropTrigger",
	KindDropPolicy: "DropPolicy",
	KindDropRule: "DropRule",
	KindTransactionStatement: "TransactionStatement",
	KindTransactionMode: "TransactionMode",
}

// String returns the rule name, e.g. "CreateTable".
func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// RuleName returns the grammar rule name in lower camel case, e.g.
// "createTable". It is the name reported by build errors.
func (k Kind) RuleName() string {
	s := k.String()
	if s == "" || k >= numKinds {
		return s
	}
	return string(s[0]+('a'-'A')) + s[1:]
}

// Valid reports whether k is a defined, non-zero Kind.
func (k Kind) Valid() bool {
	return k > KindInvalid && k < numKinds
}

// Kinds returns every valid Kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, numKinds-1)
	for k := KindInvalid + 1; k < numKinds; k++ {
		out = append(out, k)
	}
	return out
}

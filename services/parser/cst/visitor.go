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

import "fmt"

// Visitor computes a T from a parse tree with one method per node Kind.
// Adding a Kind adds a method here, so every implementation that does not
// embed BaseVisitor stops compiling until it handles the new rule.
type Visitor[T any] interface {
	VisitTerminal(t *Terminal) T
	VisitStatement(n *Node) T
	VisitStatementBlock(n *Node) T
	VisitColId(n *Node) T
	VisitColLabel(n *Node) T
	VisitTypeFunctionName(n *Node) T
	VisitNonReservedWord(n *Node) T
	VisitTriggerName(n *Node) T
	VisitQualifiedName(n *Node) T
	VisitFuncName(n *Node) T
	VisitColumnList(n *Node) T
	VisitRoleSpec(n *Node) T
	VisitAlias(n *Node) T
	VisitObjectType(n *Node) T
	VisitBinaryExpr(n *Node) T
	VisitUnaryExpr(n *Node) T
	VisitIsExpr(n *Node) T
	VisitLikeExpr(n *Node) T
	VisitBetweenExpr(n *Node) T
	VisitInExpr(n *Node) T
	VisitQuantifiedExpr(n *Node) T
	VisitAtTimeZoneExpr(n *Node) T
	VisitCollateExpr(n *Node) T
	VisitTypecastExpr(n *Node) T
	VisitIndirectionExpr(n *Node) T
	VisitColumnRef(n *Node) T
	VisitParamRef(n *Node) T
	VisitConstant(n *Node) T
	VisitSignedNumber(n *Node) T
	VisitTypedLiteral(n *Node) T
	VisitParenExpr(n *Node) T
	VisitRowExpr(n *Node) T
	VisitSubqueryExpr(n *Node) T
	VisitExistsExpr(n *Node) T
	VisitArrayExpr(n *Node) T
	VisitCaseExpr(n *Node) T
	VisitWhenClause(n *Node) T
	VisitCommonFuncExpr(n *Node) T
	VisitFuncCall(n *Node) T
	VisitFuncArg(n *Node) T
	VisitFilterClause(n *Node) T
	VisitOverClause(n *Node) T
	VisitWindowSpecification(n *Node) T
	VisitWindowPartition(n *Node) T
	VisitFrameClause(n *Node) T
	VisitFrameBound(n *Node) T
	VisitSortClause(n *Node) T
	VisitSortBy(n *Node) T
	VisitSetToDefault(n *Node) T
	VisitTypeName(n *Node) T
	VisitNumericType(n *Node) T
	VisitBitType(n *Node) T
	VisitCharacterType(n *Node) T
	VisitDatetimeType(n *Node) T
	VisitIntervalType(n *Node) T
	VisitIntervalQualifier(n *Node) T
	VisitGenericType(n *Node) T
	VisitTypeModifiers(n *Node) T
	VisitSelectStatement(n *Node) T
	VisitSelectWithParens(n *Node) T
	VisitSetOperation(n *Node) T
	VisitSimpleSelect(n *Node) T
	VisitDistinctClause(n *Node) T
	VisitTargetList(n *Node) T
	VisitTargetElement(n *Node) T
	VisitFromClause(n *Node) T
	VisitTableRef(n *Node) T
	VisitJoinedTable(n *Node) T
	VisitRelationExpr(n *Node) T
	VisitWhereClause(n *Node) T
	VisitGroupClause(n *Node) T
	VisitGroupingSet(n *Node) T
	VisitHavingClause(n *Node) T
	VisitWindowClause(n *Node) T
	VisitWindowDefinition(n *Node) T
	VisitLimitClause(n *Node) T
	VisitLockingClause(n *Node) T
	VisitValuesClause(n *Node) T
	VisitValuesRow(n *Node) T
	VisitWithClause(n *Node) T
	VisitCommonTableExpr(n *Node) T
	VisitInsertStatement(n *Node) T
	VisitInsertTarget(n *Node) T
	VisitOnConflictClause(n *Node) T
	VisitConflictTarget(n *Node) T
	VisitSetClause(n *Node) T
	VisitReturningClause(n *Node) T
	VisitUpdateStatement(n *Node) T
	VisitDeleteStatement(n *Node) T
	VisitUsingClause(n *Node) T
	VisitCreateTable(n *Node) T
	VisitTableLikeClause(n *Node) T
	VisitColumnDefinition(n *Node) T
	VisitColumnConstraint(n *Node) T
	VisitTableConstraint(n *Node) T
	VisitReferencesClause(n *Node) T
	VisitReferentialAction(n *Node) T
	VisitIncludeClause(n *Node) T
	VisitInheritsClause(n *Node) T
	VisitPartitionSpec(n *Node) T
	VisitPartitionElement(n *Node) T
	VisitPartitionBound(n *Node) T
	VisitRelOptions(n *Node) T
	VisitRelOption(n *Node) T
	VisitOnCommitClause(n *Node) T
	VisitAlterTable(n *Node) T
	VisitAlterTableCmd(n *Node) T
	VisitTruncateTable(n *Node) T
	VisitCreateIndex(n *Node) T
	VisitIndexElement(n *Node) T
	VisitAlterIndex(n *Node) T
	VisitAlterObjectCommand(n *Node) T
	VisitCreateView(n *Node) T
	VisitAlterView(n *Node) T
	VisitCreateMaterializedView(n *Node) T
	VisitRefreshMaterializedView(n *Node) T
	VisitAlterMaterializedView(n *Node) T
	VisitCreateSequence(n *Node) T
	VisitAlterSequence(n *Node) T
	VisitSequenceOption(n *Node) T
	VisitSeqOptionList(n *Node) T
	VisitCreateType(n *Node) T
	VisitTypeAttribute(n *Node) T
	VisitDefinitionElement(n *Node) T
	VisitAlterType(n *Node) T
	VisitAlterTypeCmd(n *Node) T
	VisitCreateDomain(n *Node) T
	VisitAlterDomain(n *Node) T
	VisitCreateTrigger(n *Node) T
	VisitTriggerEvent(n *Node) T
	VisitTriggerReferencing(n *Node) T
	VisitAlterTrigger(n *Node) T
	VisitCreatePolicy(n *Node) T
	VisitAlterPolicy(n *Node) T
	VisitCreateExtension(n *Node) T
	VisitAlterExtension(n *Node) T
	VisitCreatePublication(n *Node) T
	VisitPublicationObject(n *Node) T
	VisitAlterPublication(n *Node) T
	VisitCreateSubscription(n *Node) T
	VisitAlterSubscription(n *Node) T
	VisitCreateSchema(n *Node) T
	VisitAlterSchema(n *Node) T
	VisitCreateDatabase(n *Node) T
	VisitDatabaseOption(n *Node) T
	VisitAlterDatabase(n *Node) T
	VisitSetConfiguration(n *Node) T
	VisitDropDatabase(n *Node) T
	VisitCreateTablespace(n *Node) T
	VisitAlterTablespace(n *Node) T
	VisitCreateFunction(n *Node) T
	VisitFunctionParameter(n *Node) T
	VisitFunctionColumn(n *Node) T
	VisitFunctionOption(n *Node) T
	VisitFunctionWithArgs(n *Node) T
	VisitAlterFunction(n *Node) T
	VisitDropFunction(n *Node) T
	VisitCommentOn(n *Node) T
	VisitDropStatement(n *Node) T
	VisitDropTrigger(n *Node) T
	VisitDropPolicy(n *Node) T
	VisitDropRule(n *Node) T
	VisitTransactionStatement(n *Node) T
	VisitTransactionMode(n *Node) T
}

// Accept dispatches n to the Visitor method for its Kind. It panics on
// KindInvalid or an unknown Kind, which only a hand-built tree can carry.
func Accept[T any](v Visitor[T], n *Node) T {
	switch n.Kind {
	case KindStatement:
		return v.VisitStatement(n)
	case KindStatementBlock:
		return v.VisitStatementBlock(n)
	case KindColId:
		return v.VisitColId(n)
	case KindColLabel:
		return v.VisitColLabel(n)
	case KindTypeFunctionName:
		return v.VisitTypeFunctionName(n)
	case KindNonReservedWord:
		return v.VisitNonReservedWord(n)
	case KindTriggerName:
		return v.VisitTriggerName(n)
	case KindQualifiedName:
		return v.VisitQualifiedName(n)
	case KindFuncName:
		return v.VisitFuncName(n)
	case KindColumnList:
		return v.VisitColumnList(n)
	case KindRoleSpec:
		return v.VisitRoleSpec(n)
	case KindAlias:
		return v.VisitAlias(n)
	case KindObjectType:
		return v.VisitObjectType(n)
	case KindBinaryExpr:
		return v.VisitBinaryExpr(n)
	case KindUnaryExpr:
		return v.VisitUnaryExpr(n)
	case KindIsExpr:
		return v.VisitIsExpr(n)
	case KindLikeExpr:
		return v.VisitLikeExpr(n)
	case KindBetweenExpr:
		return v.VisitBetweenExpr(n)
	case KindInExpr:
		return v.VisitInExpr(n)
	case KindQuantifiedExpr:
		return v.VisitQuantifiedExpr(n)
	case KindAtTimeZoneExpr:
		return v.VisitAtTimeZoneExpr(n)
	case KindCollateExpr:
		return v.VisitCollateExpr(n)
	case KindTypecastExpr:
		return v.VisitTypecastExpr(n)
	case KindIndirectionExpr:
		return v.VisitIndirectionExpr(n)
	case KindColumnRef:
		return v.VisitColumnRef(n)
	case KindParamRef:
		return v.VisitParamRef(n)
	case KindConstant:
		return v.VisitConstant(n)
	case KindSignedNumber:
		return v.VisitSignedNumber(n)
	case KindTypedLiteral:
		return v.VisitTypedLiteral(n)
	case KindParenExpr:
		return v.VisitParenExpr(n)
	case KindRowExpr:
		return v.VisitRowExpr(n)
	case KindSubqueryExpr:
		return v.VisitSubqueryExpr(n)
	case KindExistsExpr:
		return v.VisitExistsExpr(n)
	case KindArrayExpr:
		return v.VisitArrayExpr(n)
	case KindCaseExpr:
		return v.VisitCaseExpr(n)
	case KindWhenClause:
		return v.VisitWhenClause(n)
	case KindCommonFuncExpr:
		return v.VisitCommonFuncExpr(n)
	case KindFuncCall:
		return v.VisitFuncCall(n)
	case KindFuncArg:
		return v.VisitFuncArg(n)
	case KindFilterClause:
		return v.VisitFilterClause(n)
	case KindOverClause:
		return v.VisitOverClause(n)
	case KindWindowSpecification:
		return v.VisitWindowSpecification(n)
	case KindWindowPartition:
		return v.VisitWindowPartition(n)
	case KindFrameClause:
		return v.VisitFrameClause(n)
	case KindFrameBound:
		return v.VisitFrameBound(n)
	case KindSortClause:
		return v.VisitSortClause(n)
	case KindSortBy:
		return v.VisitSortBy(n)
	case KindSetToDefault:
		return v.VisitSetToDefault(n)
	case KindTypeName:
		return v.VisitTypeName(n)
	case KindNumericType:
		return v.VisitNumericType(n)
	case KindBitType:
		return v.VisitBitType(n)
	case KindCharacterType:
		return v.VisitCharacterType(n)
	case KindDatetimeType:
		return v.VisitDatetimeType(n)
	case KindIntervalType:
		return v.VisitIntervalType(n)
	case KindIntervalQualifier:
		return v.VisitIntervalQualifier(n)
	case KindGenericType:
		return v.VisitGenericType(n)
	case KindTypeModifiers:
		return v.VisitTypeModifiers(n)
	case KindSelectStatement:
		return v.VisitSelectStatement(n)
	case KindSelectWithParens:
		return v.VisitSelectWithParens(n)
	case KindSetOperation:
		return v.VisitSetOperation(n)
	case KindSimpleSelect:
		return v.VisitSimpleSelect(n)
	case KindDistinctClause:
		return v.VisitDistinctClause(n)
	case KindTargetList:
		return v.VisitTargetList(n)
	case KindTargetElement:
		return v.VisitTargetElement(n)
	case KindFromClause:
		return v.VisitFromClause(n)
	case KindTableRef:
		return v.VisitTableRef(n)
	case KindJoinedTable:
		return v.VisitJoinedTable(n)
	case KindRelationExpr:
		return v.VisitRelationExpr(n)
	case KindWhereClause:
		return v.VisitWhereClause(n)
	case KindGroupClause:
		return v.VisitGroupClause(n)
	case KindGroupingSet:
		return v.VisitGroupingSet(n)
	case KindHavingClause:
		return v.VisitHavingClause(n)
	case KindWindowClause:
		return v.VisitWindowClause(n)
	case KindWindowDefinition:
		return v.VisitWindowDefinition(n)
	case KindLimitClause:
		return v.VisitLimitClause(n)
	case KindLockingClause:
		return v.VisitLockingClause(n)
	case KindValuesClause:
		return v.VisitValuesClause(n)
	case KindValuesRow:
		return v.VisitValuesRow(n)
	case KindWithClause:
		return v.VisitWithClause(n)
	case KindCommonTableExpr:
		return v.VisitCommonTableExpr(n)
	case KindInsertStatement:
		return v.VisitInsertStatement(n)
	case KindInsertTarget:
		return v.VisitInsertTarget(n)
	case KindOnConflictClause:
		return v.VisitOnConflictClause(n)
	case KindConflictTarget:
		return v.VisitConflictTarget(n)
	case KindSetClause:
		return v.VisitSetClause(n)
	case KindReturningClause:
		return v.VisitReturningClause(n)
	case KindUpdateStatement:
		return v.VisitUpdateStatement(n)
	case KindDeleteStatement:
		return v.VisitDeleteStatement(n)
	case KindUsingClause:
		return v.VisitUsingClause(n)
	case KindCreateTable:
		return v.VisitCreateTable(n)
	case KindTableLikeClause:
		return v.VisitTableLikeClause(n)
	case KindColumnDefinition:
		return v.VisitColumnDefinition(n)
	case KindColumnConstraint:
		return v.VisitColumnConstraint(n)
	case KindTableConstraint:
		return v.VisitTableConstraint(n)
	case KindReferencesClause:
		return v.VisitReferencesClause(n)
	case KindReferentialAction:
		return v.VisitReferentialAction(n)
	case KindIncludeClause:
		return v.VisitIncludeClause(n)
	case KindInheritsClause:
		return v.VisitInheritsClause(n)
	case KindPartitionSpec:
		return v.VisitPartitionSpec(n)
	case KindPartitionElement:
		return v.VisitPartitionElement(n)
	case KindPartitionBound:
		return v.VisitPartitionBound(n)
	case KindRelOptions:
		return v.VisitRelOptions(n)
	case KindRelOption:
		return v.VisitRelOption(n)
	case KindOnCommitClause:
		return v.VisitOnCommitClause(n)
	case KindAlterTable:
		return v.VisitAlterTable(n)
	case KindAlterTableCmd:
		return v.VisitAlterTableCmd(n)
	case KindTruncateTable:
		return v.VisitTruncateTable(n)
	case KindCreateIndex:
		return v.VisitCreateIndex(n)
	case KindIndexElement:
		return v.VisitIndexElement(n)
	case KindAlterIndex:
		return v.VisitAlterIndex(n)
	case KindAlterObjectCommand:
		return v.VisitAlterObjectCommand(n)
	case KindCreateView:
		return v.VisitCreateView(n)
	case KindAlterView:
		return v.VisitAlterView(n)
	case KindCreateMaterializedView:
		return v.VisitCreateMaterializedView(n)
	case KindRefreshMaterializedView:
		return v.VisitRefreshMaterializedView(n)
	case KindAlterMaterializedView:
		return v.VisitAlterMaterializedView(n)
	case KindCreateSequence:
		return v.VisitCreateSequence(n)
	case KindAlterSequence:
		return v.VisitAlterSequence(n)
	case KindSequenceOption:
		return v.VisitSequenceOption(n)
	case KindSeqOptionList:
		return v.VisitSeqOptionList(n)
	case KindCreateType:
		return v.VisitCreateType(n)
	case KindTypeAttribute:
		return v.VisitTypeAttribute(n)
	case KindDefinitionElement:
		return v.VisitDefinitionElement(n)
	case KindAlterType:
		return v.VisitAlterType(n)
	case KindAlterTypeCmd:
		return v.VisitAlterTypeCmd(n)
	case KindCreateDomain:
		return v.VisitCreateDomain(n)
	case KindAlterDomain:
		return v.VisitAlterDomain(n)
	case KindCreateTrigger:
		return v.VisitCreateTrigger(n)
	case KindTriggerEvent:
		return v.VisitTriggerEvent(n)
	case KindTriggerReferencing:
		return v.VisitTriggerReferencing(n)
	case KindAlterTrigger:
		return v.VisitAlterTrigger(n)
	case KindCreatePolicy:
		return v.VisitCreatePolicy(n)
	case KindAlterPolicy:
		return v.VisitAlterPolicy(n)
	case KindCreateExtension:
		return v.VisitCreateExtension(n)
	case KindAlterExtension:
		return v.VisitAlterExtension(n)
	case KindCreatePublication:
		return v.VisitCreatePublication(n)
	case KindPublicationObject:
		return v.VisitPublicationObject(n)
	case KindAlterPublication:
		return v.VisitAlterPublication(n)
	case KindCreateSubscription:
		return v.VisitCreateSubscription(n)
	case KindAlterSubscription:
		return v.VisitAlterSubscription(n)
	case KindCreateSchema:
		return v.VisitCreateSchema(n)
	case KindAlterSchema:
		return v.VisitAlterSchema(n)
	case KindCreateDatabase:
		return v.VisitCreateDatabase(n)
	case KindDatabaseOption:
		return v.VisitDatabaseOption(n)
	case KindAlterDatabase:
		return v.VisitAlterDatabase(n)
	case KindSetConfiguration:
		return v.VisitSetConfiguration(n)
	case KindDropDatabase:
		return v.VisitDropDatabase(n)
	case KindCreateTablespace:
		return v.VisitCreateTablespace(n)
	case KindAlterTablespace:
		return v.VisitAlterTablespace(n)
	case KindCreateFunction:
		return v.VisitCreateFunction(n)
	case KindFunctionParameter:
		return v.VisitFunctionParameter(n)
	case KindFunctionColumn:
		return v.VisitFunctionColumn(n)
	case KindFunctionOption:
		return v.VisitFunctionOption(n)
	case KindFunctionWithArgs:
		return v.VisitFunctionWithArgs(n)
	case KindAlterFunction:
		return v.VisitAlterFunction(n)
	case KindDropFunction:
		return v.VisitDropFunction(n)
	case KindCommentOn:
		return v.VisitCommentOn(n)
	case KindDropStatement:
		return v.VisitDropStatement(n)
	case KindDropTrigger:
		return v.VisitDropTrigger(n)
	case KindDropPolicy:
		return v.VisitDropPolicy(n)
	case KindDropRule:
		return v.VisitDropRule(n)
	case KindTransactionStatement:
		return v.VisitTransactionStatement(n)
	case KindTransactionMode:
		return v.VisitTransactionMode(n)
	}
	panic(fmt.Sprintf("cst: Accept on node of kind %s", n.Kind))
}

// AcceptElement dispatches a child element, which is either a *Node or a
// *Terminal.
func AcceptElement[T any](v Visitor[T], e Element) T {
	switch e := e.(type) {
	case *Node:
		return Accept(v, e)
	case *Terminal:
		return v.VisitTerminal(e)
	}
	var zero T
	return zero
}

// BaseVisitor implements every Visit method by visiting the node's children
// and returning the result of the last child node; terminals contribute
// nothing. Embed it and set Self to the embedding value so the default
// traversal dispatches back into the overriding methods:
//
//	type counter struct{ cst.BaseVisitor[int] }
//	c := &counter{}
//	c.Self = c
//
// Aggregate, when set, folds child results instead.
type BaseVisitor[T any] struct {
	Self      Visitor[T]
	Aggregate func(acc, next T) T
}

// VisitChildren visits every child node of n through Self.
func (b *BaseVisitor[T]) VisitChildren(n *Node) T {
	var result T
	for _, c := range n.Children {
		cn, ok := c.(*Node)
		if !ok {
			continue
		}
		r := Accept(b.self(), cn)
		if b.Aggregate != nil {
			result = b.Aggregate(result, r)
		} else {
			result = r
		}
	}
	return result
}

func (b *BaseVisitor[T]) self() Visitor[T] {
	if b.Self == nil {
		return b
	}
	return b.Self
}

// VisitTerminal returns the zero T.
func (b *BaseVisitor[T]) VisitTerminal(*Terminal) T {
	var zero T
	return zero
}

func (b *BaseVisitor[T]) VisitStatement(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitStatementBlock(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitColId(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitColLabel(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitTypeFunctionName(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitNonReservedWord(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitTriggerName(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitQualifiedName(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitFuncName(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitColumnList(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitRoleSpec(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitAlias(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitObjectType(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitBinaryExpr(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitUnaryExpr(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitIsExpr(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitLikeExpr(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitBetweenExpr(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitInExpr(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitQuantifiedExpr(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitAtTimeZoneExpr(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitCollateExpr(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitTypecastExpr(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitIndirectionExpr(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitColumnRef(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitParamRef(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitConstant(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitSignedNumber(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitTypedLiteral(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitParenExpr(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitRowExpr(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitSubqueryExpr(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitExistsExpr(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitArrayExpr(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitCaseExpr(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitWhenClause(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitCommonFuncExpr(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitFuncCall(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitFuncArg(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitFilterClause(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitOverClause(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitWindowSpecification(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitWindowPartition(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitFrameClause(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitFrameBound(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitSortClause(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitSortBy(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitSetToDefault(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitTypeName(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitNumericType(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitBitType(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitCharacterType(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitDatetimeType(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitIntervalType(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitIntervalQualifier(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitGenericType(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitTypeModifiers(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitSelectStatement(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitSelectWithParens(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitSetOperation(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitSimpleSelect(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitDistinctClause(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitTargetList(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitTargetElement(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitFromClause(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitTableRef(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitJoinedTable(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitRelationExpr(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitWhereClause(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitGroupClause(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitGroupingSet(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitHavingClause(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitWindowClause(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitWindowDefinition(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitLimitClause(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitLockingClause(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitValuesClause(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitValuesRow(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitWithClause(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitCommonTableExpr(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitInsertStatement(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitInsertTarget(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitOnConflictClause(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitConflictTarget(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitSetClause(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitReturningClause(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitUpdateStatement(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitDeleteStatement(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitUsingClause(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitCreateTable(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitTableLikeClause(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitColumnDefinition(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitColumnConstraint(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitTableConstraint(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitReferencesClause(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitReferentialAction(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitIncludeClause(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitInheritsClause(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitPartitionSpec(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitPartitionElement(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitPartitionBound(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitRelOptions(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitRelOption(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitOnCommitClause(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitAlterTable(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitAlterTableCmd(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitTruncateTable(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitCreateIndex(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitIndexElement(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitAlterIndex(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitAlterObjectCommand(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitCreateView(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitAlterView(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitCreateMaterializedView(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitRefreshMaterializedView(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitAlterMaterializedView(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitCreateSequence(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitAlterSequence(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitSequenceOption(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitSeqOptionList(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitCreateType(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitTypeAttribute(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitDefinitionElement(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitAlterType(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitAlterTypeCmd(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitCreateDomain(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitAlterDomain(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitCreateTrigger(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitTriggerEvent(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitTriggerReferencing(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitAlterTrigger(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitCreatePolicy(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitAlterPolicy(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitCreateExtension(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitAlterExtension(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitCreatePublication(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitPublicationObject(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitAlterPublication(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitCreateSubscription(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitAlterSubscription(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitCreateSchema(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitAlterSchema(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitCreateDatabase(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitDatabaseOption(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitAlterDatabase(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitSetConfiguration(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitDropDatabase(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitCreateTablespace(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitAlterTablespace(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitCreateFunction(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitFunctionParameter(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitFunctionColumn(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitFunctionOption(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitFunctionWithArgs(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitAlterFunction(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitDropFunction(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitCommentOn(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitDropStatement(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitDropTrigger(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitDropPolicy(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitDropRule(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitTransactionStatement(n *Node) T { return b.VisitChildren(n) }

func (b *BaseVisitor[T]) VisitTransactionMode(n *Node) T { return b.VisitChildren(n) }

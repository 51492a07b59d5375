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
	"fmt"
)

// ErrSemanticBuild is the sentinel wrapped by every SemanticBuildError.
var ErrSemanticBuild = errors.New("semantic build error")

// SemanticBuildError reports a concrete tree the builder cannot map onto
// the statement model. Trees produced by the grammar package never cause
// one; hand-built or truncated trees can.
type SemanticBuildError struct {
	// Rule is the rule name of the offending node, e.g. "columnConstraint".
	Rule string

	// Reason describes what was missing or unexpected.
	Reason string

	// Offset is the byte offset of the offending node.
	Offset int
}

// Error implements the error interface.
func (e *SemanticBuildError) Error() string {
	return fmt.Sprintf("cannot build %s at offset %d: %s", e.Rule, e.Offset, e.Reason)
}

// Unwrap returns ErrSemanticBuild.
func (e *SemanticBuildError) Unwrap() error {
	return ErrSemanticBuild
}

// failure carries a SemanticBuildError up through the visitor. It is only
// ever recovered inside this package.
type failure struct {
	err *SemanticBuildError
}

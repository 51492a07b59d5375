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

// Transaction is a transaction-control statement. Op is one of the TCL Kind
// values; END is folded into COMMIT and ABORT into ROLLBACK.
//
//   - Modes holds BEGIN / START TRANSACTION modes in upper case, e.g.
//     "ISOLATION LEVEL SERIALIZABLE" or "READ ONLY".
//   - Savepoint is the target of SAVEPOINT, RELEASE and ROLLBACK TO.
//   - GID is the identifier of PREPARE TRANSACTION, COMMIT PREPARED and
//     ROLLBACK PREPARED.
type Transaction struct {
	tcl
	Op        Kind
	Modes     []string
	Chain     bool
	Savepoint Identifier
	GID       string
}

// Kind returns Op.
func (s *Transaction) Kind() Kind { return s.Op }

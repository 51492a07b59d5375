// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package parser

import (
	"fmt"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/AleutianAI/sqlfront/services/parser/statement"
)

// statementCache maps (dialect, SQL text) to a built statement. Statements
// are never mutated after Build, so cached values are shared read-only
// between callers.
type statementCache struct {
	cache *ristretto.Cache[string, statement.Statement]
}

// newStatementCache returns a cache holding up to maxEntries statements.
// Every entry costs 1; ristretto's per-item bookkeeping cost is ignored so
// MaxCost counts entries.
func newStatementCache(maxEntries int) (*statementCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, statement.Statement]{
		NumCounters:        int64(maxEntries) * 10,
		MaxCost:            int64(maxEntries),
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating statement cache: %w", err)
	}
	return &statementCache{cache: c}, nil
}

func cacheKey(dialect, sql string) string {
	return dialect + "\x00" + sql
}

func (c *statementCache) get(dialect, sql string) (statement.Statement, bool) {
	return c.cache.Get(cacheKey(dialect, sql))
}

// put stores stmt. Admission is asynchronous and may drop the entry.
func (c *statementCache) put(dialect, sql string, stmt statement.Statement) {
	c.cache.Set(cacheKey(dialect, sql), stmt, 1)
}

// wait blocks until buffered writes are applied.
func (c *statementCache) wait() {
	c.cache.Wait()
}

func (c *statementCache) close() {
	c.cache.Close()
}

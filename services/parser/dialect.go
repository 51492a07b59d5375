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
	"sort"
	"strings"
	"sync"

	"github.com/AleutianAI/sqlfront/services/parser/keywords"
)

// DialectPostgreSQL is the canonical name of the built-in dialect.
const DialectPostgreSQL = "postgresql"

// Dialect binds a name to the keyword table the grammar runs with.
type Dialect struct {
	// Name is the canonical, lower-case dialect name.
	Name string

	// Aliases are alternative lower-case names accepted by Lookup.
	Aliases []string

	// Keywords is shared read-only by every parse in this dialect.
	Keywords *keywords.Table
}

// PostgreSQL returns the built-in PostgreSQL dialect.
func PostgreSQL() *Dialect {
	return &Dialect{
		Name:     DialectPostgreSQL,
		Aliases:  []string{"pg", "postgres"},
		Keywords: keywords.PostgreSQL(),
	}
}

// DialectRegistry resolves dialects by name or alias.
//
// # Thread Safety
//
// Safe for concurrent use. Lookups take a read lock; Register takes the
// write lock.
type DialectRegistry struct {
	mu       sync.RWMutex
	dialects map[string]*Dialect
	names    map[string]string
}

// NewDialectRegistry returns a registry holding the given dialects.
func NewDialectRegistry(dialects ...*Dialect) (*DialectRegistry, error) {
	r := &DialectRegistry{
		dialects: make(map[string]*Dialect),
		names:    make(map[string]string),
	}
	for _, d := range dialects {
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

var (
	defaultRegistry     *DialectRegistry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry. It ships with the
// PostgreSQL dialect.
func DefaultRegistry() *DialectRegistry {
	defaultRegistryOnce.Do(func() {
		r, err := NewDialectRegistry(PostgreSQL())
		if err != nil {
			panic(fmt.Sprintf("parser: built-in dialect: %v", err))
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Register adds d. Its name and aliases must not collide with names
// already registered.
func (r *DialectRegistry) Register(d *Dialect) error {
	if d == nil || d.Name == "" || d.Keywords == nil {
		return fmt.Errorf("parser: dialect needs a name and a keyword table")
	}
	keys := append([]string{d.Name}, d.Aliases...)

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, k := range keys {
		k = strings.ToLower(k)
		if owner, ok := r.names[k]; ok {
			return fmt.Errorf("parser: dialect name %q already used by %q", k, owner)
		}
	}
	for _, k := range keys {
		r.names[strings.ToLower(k)] = d.Name
	}
	r.dialects[d.Name] = d
	return nil
}

// Lookup returns the dialect registered under name or one of its aliases.
// Names are case-insensitive. Unknown names wrap ErrUnsupportedDialect.
func (r *DialectRegistry) Lookup(name string) (*Dialect, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	canonical, ok := r.names[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDialect, name)
	}
	return r.dialects[canonical], nil
}

// Names returns the canonical dialect names in sorted order.
func (r *DialectRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.dialects))
	for name := range r.dialects {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

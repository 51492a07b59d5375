// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// result is the captured outcome of one CLI invocation.
type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// =============================================================================
// parse
// =============================================================================

func TestParse_JSON(t *testing.T) {
	r := runCLI(t, "select a from t; commit;", "parse")
	require.Equal(t, exitOK, r.code, r.stderr)

	var out []map[string]any
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "SELECT", out[0]["kind"])
	assert.Equal(t, "DML", out[0]["category"])
	assert.Equal(t, "COMMIT", out[1]["kind"])
	assert.Equal(t, "TCL", out[1]["category"])
	assert.NotNil(t, out[0]["statement"])
}

func TestParse_YAML(t *testing.T) {
	r := runCLI(t, "create table t (id int)", "parse", "-o", "yaml")
	require.Equal(t, exitOK, r.code, r.stderr)

	var out []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(r.stdout), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "CREATE TABLE", out[0]["kind"])
	assert.Equal(t, "DDL", out[0]["category"])
}

func TestParse_BadOutputFlag(t *testing.T) {
	r := runCLI(t, "select 1", "parse", "-o", "xml")
	assert.Equal(t, exitUsage, r.code)
	assert.Contains(t, r.stderr, "--output must be json or yaml")
}

func TestParse_SyntaxError(t *testing.T) {
	r := runCLI(t, "select 1;\nselect from where;", "parse")
	assert.Equal(t, exitFailed, r.code)
	assert.Contains(t, r.stdout, "<stdin>:2:")
	assert.Contains(t, r.stdout, "^")
}

func TestParse_File(t *testing.T) {
	path := writeFile(t, t.TempDir(), "q.sql", "select 1")
	r := runCLI(t, "", "parse", path)
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, `"SELECT"`)
}

func TestParse_MissingFile(t *testing.T) {
	r := runCLI(t, "", "parse", filepath.Join(t.TempDir(), "nope.sql"))
	assert.Equal(t, exitUnknown, r.code)
	assert.Contains(t, r.stderr, "nope.sql")
}

func TestParse_EmptyInput(t *testing.T) {
	r := runCLI(t, "  -- nothing here\n", "parse")
	assert.Equal(t, exitFailed, r.code)
	assert.Contains(t, r.stdout, "empty input")
}

// =============================================================================
// tree, format, tokens, keyword
// =============================================================================

func TestTree(t *testing.T) {
	r := runCLI(t, "select a from t", "tree")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.NotEmpty(t, r.stdout)
	assert.Contains(t, r.stdout, "a")
}

func TestFormat(t *testing.T) {
	r := runCLI(t, "select a, b from t where x = 1; end work", "format")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Equal(t, "SELECT a, b FROM t WHERE x = 1;\nCOMMIT;\n", r.stdout)
}

func TestTokens_JSON(t *testing.T) {
	r := runCLI(t, "select x", "--json", "tokens")
	require.Equal(t, exitOK, r.code, r.stderr)

	var toks []tokenOutput
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &toks))
	require.GreaterOrEqual(t, len(toks), 2)
	assert.Equal(t, "select", strings.ToLower(toks[0].Text))
	assert.Equal(t, "reserved", toks[0].Keyword)
	assert.Equal(t, "x", toks[1].Text)
	assert.Empty(t, toks[1].Keyword)
	assert.Equal(t, 8, toks[1].Column)
}

func TestTokens_AllIncludesTrivia(t *testing.T) {
	sig := runCLI(t, "select  x -- c", "--json", "tokens")
	all := runCLI(t, "select  x -- c", "--json", "tokens", "--all")
	require.Equal(t, exitOK, sig.code, sig.stderr)
	require.Equal(t, exitOK, all.code, all.stderr)

	var a, b []tokenOutput
	require.NoError(t, json.Unmarshal([]byte(sig.stdout), &a))
	require.NoError(t, json.Unmarshal([]byte(all.stdout), &b))
	assert.Greater(t, len(b), len(a))
}

func TestTokens_Table(t *testing.T) {
	r := runCLI(t, "select 'a\nb'", "tokens")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "KIND")
	assert.Contains(t, r.stdout, `"'a\nb'"`)
}

func TestTokens_LexicalError(t *testing.T) {
	r := runCLI(t, "select 'open", "tokens")
	assert.Equal(t, exitFailed, r.code)
	assert.Contains(t, r.stdout, "1:8:")
}

func TestKeyword(t *testing.T) {
	r := runCLI(t, "", "--json", "keyword", "SELECT", "abort", "between", "foo")
	require.Equal(t, exitOK, r.code, r.stderr)

	var out []struct {
		Word     string `json:"word"`
		Class    string `json:"class"`
		Reserved bool   `json:"reserved"`
	}
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &out))
	require.Len(t, out, 4)
	assert.Equal(t, "select", out[0].Word)
	assert.Equal(t, "reserved", out[0].Class)
	assert.True(t, out[0].Reserved)
	assert.Equal(t, "unreserved", out[1].Class)
	assert.Equal(t, "col_name", out[2].Class)
	assert.Equal(t, "not_keyword", out[3].Class)
}

func TestKeyword_Class(t *testing.T) {
	r := runCLI(t, "", "--json", "keyword", "--class", "reserved")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, `"word": "select"`)
	assert.NotContains(t, r.stdout, `"class": "unreserved"`)
}

func TestKeyword_Usage(t *testing.T) {
	assert.Equal(t, exitUsage, runCLI(t, "", "keyword").code)
	assert.Equal(t, exitUsage, runCLI(t, "", "keyword", "--class", "bogus").code)
}

// =============================================================================
// check
// =============================================================================

func TestCheck_AllPass(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.sql", "select 1; select 2;")
	writeFile(t, dir, "nested/b.sql", "begin; commit;")
	writeFile(t, dir, "notes.txt", "not sql at all")

	r := runCLI(t, "", "check", dir)
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "a.sql")
	assert.Contains(t, r.stdout, "2 statements")
	assert.NotContains(t, r.stdout, "notes.txt")
	assert.Contains(t, r.stdout, "passed")
}

func TestCheck_Failure(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.sql", "select 1")
	bad := writeFile(t, dir, "bad.sql", "select 1;\ncreate tabel t (id int);")

	r := runCLI(t, "", "check", good, bad)
	assert.Equal(t, exitFailed, r.code)
	assert.Contains(t, r.stdout, bad+":2:8:")
	assert.Contains(t, r.stdout, "create tabel t")
}

func TestCheck_JSONReport(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.sql", "select 1")
	writeFile(t, dir, "bad.sql", "select from;")

	r := runCLI(t, "", "--json", "check", dir)
	assert.Equal(t, exitFailed, r.code)

	var report checkReport
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &report))
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Files, 2)
	// Sorted by path.
	assert.Equal(t, "bad.sql", filepath.Base(report.Files[0].Path))
	assert.NotEmpty(t, report.Files[0].Error)
	assert.Equal(t, 1, report.Files[0].Line)
	assert.Equal(t, 1, report.Files[1].Statements)

	// JSON logs carry the run id.
	assert.Contains(t, r.stderr, report.RunID)
}

func TestCheck_MissingPath(t *testing.T) {
	r := runCLI(t, "", "check", filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, exitUnknown, r.code)
}

func TestCollectSQLFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.sql", "")
	b := writeFile(t, dir, "sub/B.SQL", "")
	writeFile(t, dir, "sub/c.txt", "")

	files, err := collectSQLFiles([]string{dir, a})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, files)
}

func TestIsUnder(t *testing.T) {
	assert.True(t, isUnder("/a/b/c.sql", "/a"))
	assert.True(t, isUnder("/a", "/a"))
	assert.False(t, isUnder("/ab/c.sql", "/a"))
	assert.False(t, isUnder("/c.sql", "/a"))
}

// syncBuffer is a bytes.Buffer safe for a writer goroutine and a reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestCheck_Watch(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "w.sql", "select 1")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out, errOut syncBuffer
	done := make(chan int, 1)
	go func() {
		done <- run(ctx, []string{"check", "--watch", dir}, strings.NewReader(""), &out, &errOut)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "watching for changes")
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("select from;"), 0o644))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), path+":1:")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case code := <-done:
		assert.Equal(t, exitOK, code)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

// =============================================================================
// Global flags and configuration
// =============================================================================

func TestDialectFlag(t *testing.T) {
	assert.Equal(t, exitOK, runCLI(t, "select 1", "--dialect", "pg", "parse").code)

	r := runCLI(t, "select 1", "--dialect", "oracle", "parse")
	assert.Equal(t, exitUsage, r.code)
	assert.Contains(t, r.stderr, "dialect")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "sqlfront.yaml", "max_input_bytes: 16\n")

	r := runCLI(t, "select a, b, c, d from some_table", "--config", cfg, "parse")
	assert.Equal(t, exitFailed, r.code)
	assert.Contains(t, r.stdout, "too large")

	bad := writeFile(t, dir, "bad.yaml", "no_such_key: 1\n")
	assert.Equal(t, exitUsage, runCLI(t, "select 1", "--config", bad, "parse").code)
}

func TestLogLevelFlag(t *testing.T) {
	r := runCLI(t, "select 1", "--log-level", "debug", "parse")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Contains(t, r.stderr, "parsed statement")

	assert.Equal(t, exitUsage, runCLI(t, "select 1", "--log-level", "loud", "parse").code)
}

func TestMetricsOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.prom")
	r := runCLI(t, "select 1", "--metrics-out", path, "parse")
	require.Equal(t, exitOK, r.code, r.stderr)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "sqlfront_parser_parses_total")
}

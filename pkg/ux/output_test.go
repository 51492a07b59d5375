// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ux

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestPrinter(machine bool) (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewPrinter(&out, &errOut, machine), &out, &errOut
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))

	f, err := os.CreateTemp(t.TempDir(), "out")
	if assert.NoError(t, err) {
		defer f.Close()
		assert.False(t, IsTerminal(f))
	}
}

func TestNewPrinter_NoColorOffTerminal(t *testing.T) {
	p, _, _ := newTestPrinter(false)
	assert.False(t, p.Color())
	assert.False(t, p.Machine())
}

func TestPrinter_Status(t *testing.T) {
	p, out, errOut := newTestPrinter(false)

	p.Success("parsed 3 statements")
	p.Warning("slow file")
	p.Error("bad file")
	p.Info("run 1")

	assert.Equal(t, "✓ parsed 3 statements\n│ run 1\n", out.String())
	assert.Equal(t, "⚠ slow file\n✗ bad file\n", errOut.String())
}

func TestPrinter_StatusMachine(t *testing.T) {
	p, out, errOut := newTestPrinter(true)

	p.Success("done")
	p.Title("ignored")
	p.Error("failed")

	assert.Equal(t, "OK: done\n", out.String())
	assert.Equal(t, "ERROR: failed\n", errOut.String())
}

func TestPrinter_FileStatus(t *testing.T) {
	p, out, _ := newTestPrinter(false)
	p.FileStatus("a.sql", IconSuccess, "")
	p.FileStatus("b.sql", IconError, "2 errors")
	assert.Equal(t, "✓ a.sql\n✗ b.sql (2 errors)\n", out.String())

	m, mout, _ := newTestPrinter(true)
	m.FileStatus("b.sql", IconError, "2 errors")
	assert.Equal(t, "ERROR\tb.sql\t2 errors\n", mout.String())
}

func TestPrinter_Diagnostic(t *testing.T) {
	p, out, _ := newTestPrinter(false)
	p.Diagnostic("q.sql", "1:8: unexpected \"FORM\"\nSELECT FORM\n       ^")
	assert.Equal(t, "q.sql:1:8: unexpected \"FORM\"\n  SELECT FORM\n         ^\n", out.String())

	out.Reset()
	p.Diagnostic("", "empty input")
	assert.Equal(t, "empty input\n", out.String())
}

func TestPrinter_Summary(t *testing.T) {
	p, out, _ := newTestPrinter(false)
	p.Summary(2, 1, 3)
	assert.Equal(t, "\n2 passed  1 failed  3 total\n", out.String())

	m, mout, _ := newTestPrinter(true)
	m.Summary(2, 1, 3)
	assert.Equal(t, "SUMMARY: passed=2 failed=1 total=3\n", mout.String())
}

func TestPrinter_Table(t *testing.T) {
	p, out, _ := newTestPrinter(false)
	p.Table([]string{"WORD", "CLASS"}, [][]string{{"select", "reserved"}, {"name", "unreserved"}})

	text := out.String()
	assert.Contains(t, text, "WORD")
	assert.Contains(t, text, "select")
	assert.Contains(t, text, "unreserved")
	assert.Greater(t, strings.Count(text, "\n"), 3)

	m, mout, _ := newTestPrinter(true)
	m.Table([]string{"WORD", "CLASS"}, [][]string{{"select", "reserved"}})
	assert.Equal(t, "WORD\tCLASS\nselect\treserved\n", mout.String())
}

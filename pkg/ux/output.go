// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package ux provides terminal output styling for the sqlfront CLI.
//
// A Printer colors its output only when the destination is a terminal, so
// piping sqlfront into a file or another program yields plain text.
package ux

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
)

// Palette: deep ocean teals and arctic waters.
var (
	ColorTealBright  = lipgloss.Color("#2CD7C7") // highlights, success
	ColorTealPrimary = lipgloss.Color("#20B9B4") // main brand color
	ColorTealDeep    = lipgloss.Color("#16858E") // borders, accents
	ColorSlate       = lipgloss.Color("#2C4A54") // muted text

	ColorSuccess = lipgloss.Color("#2CD7C7")
	ColorWarning = lipgloss.Color("#F4D03F")
	ColorError   = lipgloss.Color("#E74C3C")
	ColorMuted   = lipgloss.Color("#2C4A54")
)

// Styles provides pre-configured lipgloss styles.
var Styles = struct {
	Title     lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Highlight lipgloss.Style
	Header    lipgloss.Style
	Border    lipgloss.Style
}{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(ColorTealBright),
	Bold:      lipgloss.NewStyle().Bold(true),
	Muted:     lipgloss.NewStyle().Foreground(ColorMuted),
	Success:   lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning:   lipgloss.NewStyle().Foreground(ColorWarning),
	Error:     lipgloss.NewStyle().Foreground(ColorError),
	Highlight: lipgloss.NewStyle().Foreground(ColorTealBright).Bold(true),
	Header:    lipgloss.NewStyle().Bold(true).Foreground(ColorTealPrimary).Padding(0, 1),
	Border:    lipgloss.NewStyle().Foreground(ColorTealDeep),
}

// Icon provides themed status icons.
type Icon string

const (
	IconSuccess Icon = "✓"
	IconWarning Icon = "⚠"
	IconError   Icon = "✗"
	IconPending Icon = "○"
	IconArrow   Icon = "→"
)

// machineWord is what machine mode prints instead of an icon.
func (i Icon) machineWord() string {
	switch i {
	case IconSuccess:
		return "OK"
	case IconWarning:
		return "WARN"
	case IconError:
		return "ERROR"
	case IconPending:
		return "PENDING"
	}
	return string(i)
}

func (i Icon) style() lipgloss.Style {
	switch i {
	case IconSuccess:
		return Styles.Success
	case IconWarning:
		return Styles.Warning
	case IconError:
		return Styles.Error
	case IconPending:
		return Styles.Muted
	}
	return lipgloss.NewStyle()
}

// IsTerminal reports whether w is a terminal file descriptor.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Printer writes styled messages.
//
// Results go to Out; status messages go to Err. In machine mode messages
// are plain, prefixed lines ("OK: ...") that are easy to grep.
type Printer struct {
	out     io.Writer
	err     io.Writer
	color   bool
	machine bool
}

// NewPrinter returns a Printer. Colors are enabled when out is a terminal
// and machine is false.
func NewPrinter(out, err io.Writer, machine bool) *Printer {
	return &Printer{
		out:     out,
		err:     err,
		color:   !machine && IsTerminal(out),
		machine: machine,
	}
}

// Out is the result stream.
func (p *Printer) Out() io.Writer { return p.out }

// Machine reports whether machine mode is on.
func (p *Printer) Machine() bool { return p.machine }

// Color reports whether output is styled.
func (p *Printer) Color() bool { return p.color }

func (p *Printer) render(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

// status prints one icon-prefixed message to w.
func (p *Printer) status(w io.Writer, icon Icon, style lipgloss.Style, text string) {
	if p.machine {
		fmt.Fprintf(w, "%s: %s\n", icon.machineWord(), text)
		return
	}
	fmt.Fprintf(w, "%s %s\n", p.render(icon.style(), string(icon)), p.render(style, text))
}

// Success prints a success message with a check mark.
func (p *Printer) Success(text string) { p.status(p.out, IconSuccess, Styles.Success, text) }

// Warning prints a warning to the error stream.
func (p *Printer) Warning(text string) { p.status(p.err, IconWarning, Styles.Warning, text) }

// Error prints an error to the error stream.
func (p *Printer) Error(text string) { p.status(p.err, IconError, Styles.Error, text) }

// Info prints an informational line.
func (p *Printer) Info(text string) {
	if p.machine {
		fmt.Fprintln(p.out, text)
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", p.render(Styles.Muted, "│"), text)
}

// Title prints a styled title. Machine mode skips it.
func (p *Printer) Title(text string) {
	if p.machine {
		return
	}
	fmt.Fprintln(p.out, p.render(Styles.Title, text))
}

// FileStatus prints a file with its check status.
func (p *Printer) FileStatus(path string, status Icon, reason string) {
	switch {
	case p.machine:
		fmt.Fprintf(p.out, "%s\t%s\t%s\n", status.machineWord(), path, reason)
	case reason != "":
		fmt.Fprintf(p.out, "%s %s %s\n", p.render(status.style(), string(status)), path, p.render(Styles.Muted, "("+reason+")"))
	default:
		fmt.Fprintf(p.out, "%s %s\n", p.render(status.style(), string(status)), path)
	}
}

// Diagnostic prints a caret diagnostic for path. The first line of text
// is the "line:col: message" header; the rest is the source excerpt.
func (p *Printer) Diagnostic(path, text string) {
	header, excerpt, _ := strings.Cut(text, "\n")
	prefix := path
	if prefix != "" {
		prefix += ":"
	}
	fmt.Fprintf(p.out, "%s%s\n", p.render(Styles.Bold, prefix), p.render(Styles.Error, header))
	if excerpt == "" {
		return
	}
	src, caret, _ := strings.Cut(excerpt, "\n")
	fmt.Fprintf(p.out, "  %s\n", src)
	if caret != "" {
		fmt.Fprintf(p.out, "  %s\n", p.render(Styles.Highlight, caret))
	}
}

// Summary prints a summary line with counts.
func (p *Printer) Summary(passed, failed, total int) {
	if p.machine {
		fmt.Fprintf(p.out, "SUMMARY: passed=%d failed=%d total=%d\n", passed, failed, total)
		return
	}
	failStyle := Styles.Muted
	if failed > 0 {
		failStyle = Styles.Error
	}
	fmt.Fprintf(p.out, "\n%s %s  %s %s  %s %s\n",
		p.render(Styles.Success, fmt.Sprint(passed)), p.render(Styles.Muted, "passed"),
		p.render(failStyle, fmt.Sprint(failed)), p.render(Styles.Muted, "failed"),
		p.render(Styles.Bold, fmt.Sprint(total)), p.render(Styles.Muted, "total"),
	)
}

// Table prints rows under headers. Machine mode prints tab-separated
// values without borders.
func (p *Printer) Table(headers []string, rows [][]string) {
	if p.machine {
		fmt.Fprintln(p.out, strings.Join(headers, "\t"))
		for _, row := range rows {
			fmt.Fprintln(p.out, strings.Join(row, "\t"))
		}
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	if p.color {
		t = t.BorderStyle(Styles.Border).StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return Styles.Header
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	} else {
		t = t.StyleFunc(func(int, int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		})
	}
	fmt.Fprintln(p.out, t.String())
}

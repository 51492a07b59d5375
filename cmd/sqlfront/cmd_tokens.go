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
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/sqlfront/services/parser/keywords"
	"github.com/AleutianAI/sqlfront/services/parser/lexer"
)

type tokenOutput struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Offset  int    `json:"offset"`
	Kind    string `json:"kind"`
	Text    string `json:"text"`
	Value   string `json:"value,omitempty"`
	Keyword string `json:"keyword,omitempty"`
}

func newTokensCmd(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "tokens [file|-]",
		Short: "Print the token stream",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := a.readInput(args)
			if err != nil {
				return err
			}
			toks, err := lexer.Tokenize(src)
			if err != nil {
				return a.fail(name, src, err)
			}
			if !all {
				toks = lexer.Significant(toks)
			}

			kw := a.engine.Dialect().Keywords
			out := make([]tokenOutput, 0, len(toks))
			for _, t := range toks {
				o := tokenOutput{
					Line:   t.Line,
					Column: t.Column,
					Offset: t.Offset,
					Kind:   t.Kind.String(),
					Text:   t.Text,
				}
				if t.Value != t.Text {
					o.Value = t.Value
				}
				if t.Kind == lexer.Ident {
					if c := kw.Classify(t.Value); c != keywords.NotKeyword {
						o.Keyword = c.String()
					}
				}
				out = append(out, o)
			}

			if a.jsonOut {
				return writeJSON(a.stdout, out)
			}
			rows := make([][]string, len(out))
			for i, o := range out {
				rows[i] = []string{fmt.Sprintf("%d:%d", o.Line, o.Column), o.Kind, printable(o.Text), o.Keyword}
			}
			a.printer.Table([]string{"POS", "KIND", "TEXT", "KEYWORD"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include whitespace and comments")
	return cmd
}

// printable quotes text that would break a table cell.
func printable(s string) string {
	if strings.ContainsAny(s, "\n\r\t") {
		return strconv.Quote(s)
	}
	return s
}

func newKeywordCmd(a *app) *cobra.Command {
	var class string
	cmd := &cobra.Command{
		Use:   "keyword [word...]",
		Short: "Show the keyword class of words, or list a class with --class",
		RunE: func(cmd *cobra.Command, args []string) error {
			table := a.engine.Dialect().Keywords

			if class != "" {
				c, ok := parseClass(class)
				if !ok {
					return fmt.Errorf("%w: unknown keyword class %q", errUsage, class)
				}
				args = append(args, table.Words(c)...)
			}
			if len(args) == 0 {
				return fmt.Errorf("%w: give at least one word or --class", errUsage)
			}

			type keywordOutput struct {
				Word     string `json:"word"`
				Class    string `json:"class"`
				Reserved bool   `json:"reserved"`
				Label    bool   `json:"bare_label"`
			}
			out := make([]keywordOutput, len(args))
			rows := make([][]string, len(args))
			for i, w := range args {
				w = strings.ToLower(w)
				out[i] = keywordOutput{
					Word:     w,
					Class:    table.Classify(w).String(),
					Reserved: table.IsReserved(w),
					Label:    table.IsBareLabel(w),
				}
				rows[i] = []string{w, out[i].Class, strconv.FormatBool(out[i].Reserved), strconv.FormatBool(out[i].Label)}
			}
			if a.jsonOut {
				return writeJSON(a.stdout, out)
			}
			a.printer.Table([]string{"WORD", "CLASS", "RESERVED", "BARE LABEL"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&class, "class", "", "list every word of a class (unreserved, col_name, type_func_name, reserved)")
	return cmd
}

func parseClass(name string) (keywords.Class, bool) {
	for _, c := range []keywords.Class{keywords.Unreserved, keywords.ColName, keywords.TypeFuncName, keywords.Reserved} {
		if c.String() == name {
			return c, true
		}
	}
	return keywords.NotKeyword, false
}

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
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/sqlfront/services/parser/cst"
	"github.com/AleutianAI/sqlfront/services/parser/format"
	"github.com/AleutianAI/sqlfront/services/parser/statement"
)

// statementOutput is one entry of the parse command output.
type statementOutput struct {
	Kind      string              `json:"kind"`
	Category  string              `json:"category"`
	Statement statement.Statement `json:"statement"`
}

func newParseCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse SQL and print the statement model as JSON or YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "json" && output != "yaml" {
				return fmt.Errorf("%w: --output must be json or yaml, got %q", errUsage, output)
			}
			name, src, err := a.readInput(args)
			if err != nil {
				return err
			}
			stmts, err := a.engine.ParseBatch(cmd.Context(), src)
			if err != nil {
				return a.fail(name, src, err)
			}

			out := make([]statementOutput, len(stmts))
			for i, s := range stmts {
				out[i] = statementOutput{Kind: string(s.Kind()), Category: s.Category().String(), Statement: s}
			}
			if output == "yaml" {
				return writeYAML(a.stdout, out)
			}
			return writeJSON(a.stdout, out)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or yaml")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeYAML renders v through its JSON form so YAML keys match the JSON
// output exactly.
func writeYAML(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return err
	}
	return enc.Close()
}

func newTreeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tree [file|-]",
		Short: "Print the concrete parse tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := a.readInput(args)
			if err != nil {
				return err
			}
			tree, err := a.engine.ParseTree(cmd.Context(), src)
			if err != nil {
				return a.fail(name, src, err)
			}
			return cst.Fprint(a.stdout, tree.Root)
		},
	}
}

func newFormatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "format [file|-]",
		Short: "Print SQL in canonical form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := a.readInput(args)
			if err != nil {
				return err
			}
			stmts, err := a.engine.ParseBatch(cmd.Context(), src)
			if err != nil {
				return a.fail(name, src, err)
			}
			text, err := format.Statements(stmts)
			if err != nil {
				return err
			}
			_, err = io.WriteString(a.stdout, text)
			return err
		},
	}
}

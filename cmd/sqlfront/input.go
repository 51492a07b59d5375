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
	"io"
	"os"
)

const stdinName = "<stdin>"

// readInput returns the SQL named by args: a file path, or standard input
// for "-" or no argument. At most limit+1 bytes are read so the engine can
// report oversized input without the CLI buffering all of it.
func (a *app) readInput(args []string) (name, src string, err error) {
	limit := int64(a.cfg.MaxInputBytes) + 1

	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(io.LimitReader(a.stdin, limit))
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return stdinName, string(data), nil
	}

	name = args[0]
	f, err := os.Open(name)
	if err != nil {
		return "", "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit))
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", name, err)
	}
	return name, string(data), nil
}

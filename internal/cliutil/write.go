// Package cliutil provides small output helpers for the command line tool.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// Writef writes formatted output to w. A failed write is reported on
// stderr instead of being returned: CLI output errors are not actionable
// by the caller.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// Writeln writes args to w followed by a newline, with Writef's error
// handling.
func Writeln(w io.Writer, args ...any) {
	if _, err := fmt.Fprintln(w, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

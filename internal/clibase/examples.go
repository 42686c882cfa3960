// internal/clibase/examples.go
package clibase

import (
	"errors"
	"fmt"
	"io"
)

// ErrPrintedAndExitOK is returned by ParseArgs when examples were printed;
// apps exit 0 on it.
var ErrPrintedAndExitOK = errors.New("examples requested")

// Example is one quickstart entry.
type Example struct {
	Desc string
	Cmd  string
}

// PrintExamples prints a quickstart block for name; "%[1]s" in a command is
// replaced by the tool name.
func PrintExamples(out io.Writer, name string, list []Example) {
	if out == nil {
		return
	}
	_, _ = fmt.Fprintf(out, "%s — quickstart\n", name)
	for _, e := range list {
		_, _ = fmt.Fprintf(out, "\n  # %s\n  %s\n", e.Desc, fmt.Sprintf(e.Cmd, name))
	}
	_, _ = fmt.Fprintln(out, "\nTip: run with --help for all flags.")
}

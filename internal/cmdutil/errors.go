// internal/cmdutil/errors.go
package cmdutil

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	errLabel  = color.New(color.FgRed, color.Bold)
	warnLabel = color.New(color.FgYellow)
)

// Errorf prints "error: <msg>" to dst, the label in red on terminals.
func Errorf(dst io.Writer, format string, a ...any) {
	_, _ = errLabel.Fprint(dst, "error:")
	_, _ = fmt.Fprintf(dst, " "+format+"\n", a...)
}

// Warnf prints "warning: <msg>" unless quiet.
func Warnf(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = warnLabel.Fprint(dst, "warning:")
	_, _ = fmt.Fprintf(dst, " "+format+"\n", a...)
}

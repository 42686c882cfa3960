// internal/cmdutil/log.go
package cmdutil

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// NewLogger returns a stderr-style logger prefixed with the tool name.
// quiet forces the error level.
func NewLogger(w io.Writer, name, level string, quiet bool) (*log.Logger, error) {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, err
	}
	if quiet {
		lvl = log.ErrorLevel
	}
	logger := log.NewWithOptions(w, log.Options{
		Prefix: name,
		Level:  lvl,
	})
	return logger, nil
}

// internal/clibase/common.go
package clibase

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"estscan/internal/cliutil"
)

// Log levels accepted by --log-level.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Common holds the run-level flags: inputs, output format, performance and
// diagnostics.
type Common struct {
	SeqFiles []string

	// Output
	Format string

	// Performance
	Threads  int
	Progress bool

	// Misc
	LogLevel string
	Quiet    bool
	Version  bool
	Examples bool
}

// Register wires shared flags onto fs.
func Register(fs *flag.FlagSet, c *Common) {
	fs.StringVar(&c.Format, "format", "text", "output format: text | json | jsonl | gff [text]")

	fs.IntVar(&c.Threads, "threads", 0, "worker threads (0=all CPUs) [0]")
	fs.BoolVar(&c.Progress, "progress", false, "show a record counter on stderr [false]")

	fs.StringVar(&c.LogLevel, "log-level", "info", "log level: debug | info | warn | error [info]")
	fs.BoolVar(&c.Quiet, "quiet", false, "only log errors [false]")
	fs.BoolVar(&c.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&c.Version, "v", false, "print version and exit [false]")
	fs.BoolVar(&c.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&c.Examples, "examples", false, "print usage examples and exit [false]")
}

// AfterParse expands positional FASTA arguments (globs, '-') and falls back
// to stdin when none were given, then runs shared validation.
func AfterParse(c *Common, posArgs []string, formats []string) error {
	if len(posArgs) > 0 {
		exp, err := cliutil.ExpandPositionals(posArgs)
		if err != nil {
			return err
		}
		c.SeqFiles = append(c.SeqFiles, exp...)
	}
	if len(c.SeqFiles) == 0 {
		c.SeqFiles = []string{"-"}
	}
	return Validate(c, formats)
}

// Validate applies the run-level invariants. formats lists the accepted
// --format values.
func Validate(c *Common, formats []string) error {
	if c.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	if !contains(formats, c.Format) {
		return fmt.Errorf("invalid --format %q (want %s)", c.Format, strings.Join(formats, " | "))
	}
	if !contains(LogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid --log-level %q", c.LogLevel)
	}
	stdin := 0
	for _, f := range c.SeqFiles {
		if f == "-" {
			stdin++
		}
	}
	if stdin > 1 {
		return errors.New("stdin ('-') may be given only once")
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

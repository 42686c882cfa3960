// internal/appshell/shell.go
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"estscan/internal/appcore"
)

// Main runs the tool with signal-aware cancellation and exits with its code.
// Without arguments on an interactive terminal it prints the help text;
// otherwise stdin is scanned.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	argv := os.Args[1:]
	if len(argv) == 0 && stdinIsTerminal() {
		argv = []string{"-h"}
	}

	code := run(ctx, argv, os.Stdout, os.Stderr)
	if ctx.Err() != nil && code == appcore.ExitOK {
		code = appcore.ExitCanceled
	}

	stop()
	os.Exit(code)
}

func stdinIsTerminal() bool {
	fi, err := os.Stdin.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

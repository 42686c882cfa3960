// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"estscan/internal/appcore"
	"estscan/internal/cli"
	"estscan/internal/clibase"
	"estscan/internal/cmdutil"
	"estscan/internal/output"
	"estscan/internal/version"
	"estscan/internal/writers"
)

const name = "estscan"

// flushed flushes w and maps the outcome to an exit code.
func flushed(w *bufio.Writer, stderr io.Writer, code int) int {
	if err := w.Flush(); writers.IsBrokenPipe(err) {
		return appcore.ExitOK
	} else if err != nil {
		cmdutil.Errorf(stderr, "%v", err)
		return appcore.ExitRuntime
	}
	return code
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	fs := cli.NewFlagSet(name)
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv, writers.Formats())
	switch {
	case errors.Is(err, flag.ErrHelp):
		fs.SetOutput(outw)
		fs.Usage()
		return flushed(outw, stderr, appcore.ExitOK)
	case errors.Is(err, clibase.ErrPrintedAndExitOK):
		clibase.PrintExamples(outw, name, cli.Examples)
		return flushed(outw, stderr, appcore.ExitOK)
	case err != nil:
		cmdutil.Errorf(stderr, "%v", err)
		errw := bufio.NewWriter(stderr)
		fs.SetOutput(errw)
		fs.Usage()
		_ = errw.Flush()
		return appcore.ExitConfig
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "%s version %s\n", name, version.Version)
		return flushed(outw, stderr, appcore.ExitOK)
	}

	logger, err := cmdutil.NewLogger(stderr, name, opts.LogLevel, opts.Quiet)
	if err != nil {
		cmdutil.Errorf(stderr, "%v", err)
		return appcore.ExitConfig
	}

	report := opts.Output
	if opts.ProteinsOnly() {
		report = ""
	}
	return appcore.Run(parent, stdout, stderr, logger, appcore.Options{
		SeqFiles:   opts.SeqFiles,
		MatrixFile: opts.MatrixFile,
		Matrix:     opts.MatrixOptions(),

		Penalties:     opts.Penalties(),
		MinLen:        opts.MinLen,
		SkipLen:       opts.SkipLen,
		SingleStrand:  opts.SingleStrand,
		SkipUncovered: opts.SkipUncovered,

		Format: opts.Format,
		Report: output.Options{
			Both:       opts.Both,
			BestOnly:   opts.BestOnly,
			NoInserted: opts.NoInserted,
			Width:      opts.Width,
		},
		Output:    report,
		Translate: opts.Translate,

		Threads:  opts.Threads,
		Progress: opts.Progress,
		Quiet:    opts.Quiet,
	})
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

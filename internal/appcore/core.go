// internal/appcore/core.go
package appcore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"estscan-core/decoder"
	"estscan-core/matrix"
	"estscan/internal/cmdutil"
	"estscan/internal/common"
	"estscan/internal/output"
	"estscan/internal/pipeline"
	"estscan/internal/runutil"
	"estscan/internal/writers"
)

// Options is the fully resolved configuration of one run.
type Options struct {
	SeqFiles []string

	MatrixFile string
	Matrix     matrix.Options

	Penalties     decoder.Penalties
	MinLen        int
	SkipLen       int
	SingleStrand  bool
	SkipUncovered bool

	Format    string
	Report    output.Options
	Output    string // report destination: "-" stdout, "" none, else a file
	Translate string // protein destination, same convention

	Threads     int
	Progress    bool
	Quiet       bool
	MemoryLimit uint64 // bytes; 0 = physical memory
}

// Exit codes.
const (
	ExitOK       = 0
	ExitConfig   = 2
	ExitRuntime  = 3
	ExitCanceled = 130
)

// Run loads the matrices, scans every input record and writes the
// requested outputs. It returns the process exit code.
func Run(parent context.Context, stdout, stderr io.Writer, logger *log.Logger, o Options) int {
	began := time.Now()

	ms, err := matrix.Load(o.MatrixFile, o.Matrix)
	if err != nil {
		cmdutil.Errorf(stderr, "%v", err)
		return ExitConfig
	}
	if len(ms) == 0 {
		cmdutil.Errorf(stderr, "%s: no score matrices found", o.MatrixFile)
		return ExitConfig
	}
	for _, m := range ms {
		logger.Debug("matrix loaded", "name", m.Name, "kind", m.Kind, "order", m.Order,
			"frames", m.Frames, "offset", m.Offset, "cg", fmt.Sprintf("%.1f-%.1f", m.CGMin, m.CGMax))
	}

	if o.Report.BestOnly && o.Translate != "" {
		cmdutil.Warnf(stderr, o.Quiet, "--best-only prints no sequences; ignoring --translate")
		o.Translate = ""
	}

	thr := runutil.EffectiveThreads(o.Threads)
	outs, err := openSinks(stdout, o, thr*4)
	if err != nil {
		cmdutil.Errorf(stderr, "%v", err)
		return ExitRuntime
	}

	limit := o.MemoryLimit
	if limit == 0 {
		limit = runutil.MemoryLimit()
	}
	newScanner := func() pipeline.Scanner {
		sc := decoder.NewScanner(ms, o.Penalties, o.MinLen)
		sc.SingleStrand = o.SingleStrand
		sc.Guard = func(seqLen, states int) error {
			return runutil.CheckDPMemory(seqLen, states, limit)
		}
		return sc
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	progress := runutil.NewProgress(stderr, o.Progress)
	seen := runutil.NewLRUSet[string](0)

	onSkip := func(s pipeline.Skip) {
		if errors.Is(s.Reason, pipeline.ErrTooShort) {
			logger.Debug("skipped", "id", s.ID, "length", s.Length, "reason", s.Reason)
			return
		}
		logger.Warn("skipped", "id", s.ID, "file", s.SourceFile, "reason", s.Reason)
	}
	send := func(r common.Result) error {
		if seen.Add(r.ID) {
			logger.Warn("duplicate record id", "id", r.ID, "file", r.SourceFile)
		}
		progress.Add(1)
		for _, s := range outs {
			select {
			case s.in <- r:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	}

	st, perr := cmdutil.RunStream(ctx,
		pipeline.Config{Threads: thr, SkipLen: o.SkipLen, SkipUncovered: o.SkipUncovered},
		o.SeqFiles, newScanner, onSkip, send,
	)
	progress.Finish()

	if werr := closeSinks(outs); writers.IsBrokenPipe(werr) {
		return ExitOK
	} else if werr != nil {
		cmdutil.Errorf(stderr, "%v", werr)
		return ExitRuntime
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return ExitCanceled
		}
		cmdutil.Errorf(stderr, "%v", perr)
		if errors.Is(perr, matrix.ErrNoMatrix) {
			logger.Info("use --skip-uncovered to skip such records")
		}
		return ExitRuntime
	}

	logger.Info("done", "records", st.Records, "segments", st.Segments, "skipped", st.Skipped,
		"threads", thr, "elapsed", time.Since(began).Round(time.Millisecond))
	return ExitOK
}

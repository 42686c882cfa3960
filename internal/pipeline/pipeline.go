// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"estscan-core/matrix"
	"estscan/internal/common"
	"estscan/internal/fasta"
)

// ErrTooShort marks records skipped for being shorter than Config.SkipLen.
var ErrTooShort = errors.New("sequence too short")

// Config controls the scanning pipeline.
type Config struct {
	Threads       int  // number of worker goroutines (>=1)
	SkipLen       int  // records shorter than this are skipped; empty ones always are
	SkipUncovered bool // skip records no matrix covers instead of failing
}

// Skip describes a record that produced no result.
type Skip struct {
	ID         string
	SourceFile string
	Length     int
	Reason     error
}

type job struct {
	idx        int
	rec        fasta.Record
	sourceFile string
}

type outcome struct {
	idx  int
	res  common.Result
	skip *Skip
	err  error
}

// ForEachResult scans every record of seqFiles and calls visit with the
// results in input order, whatever the number of workers. Skipped records go
// to skip (which may be nil), also in order. The first error (from a file,
// a record, visit, or ctx) stops the run and is returned.
func ForEachResult(
	ctx context.Context,
	cfg Config,
	seqFiles []string,
	newScanner func() Scanner,
	visit func(common.Result) error,
	skip func(Skip),
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	if cfg.SkipLen < 1 {
		cfg.SkipLen = 1
	}
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan job, cfg.Threads*2)
	results := make(chan outcome, cfg.Threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			sc := newScanner()
			for {
				select {
				case <-runCtx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					select {
					case results <- scanOne(sc, cfg, j):
					case <-runCtx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector: releases outcomes in input order.
	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		pending := make(map[int]outcome)
		next := 0
		for o := range results {
			if cerr != nil {
				continue
			}
			pending[o.idx] = o
			for {
				cur, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				switch {
				case cur.err != nil:
					cerr = cur.err
				case cur.skip != nil:
					if skip != nil {
						skip(*cur.skip)
					}
				default:
					cerr = visit(cur.res)
				}
				if cerr != nil {
					cancel()
					break
				}
			}
		}
	}()

	// Feed work
	var ferr error
	idx := 0
	for _, fa := range seqFiles {
		err := fasta.Stream(runCtx, fa, func(rec fasta.Record) error {
			select {
			case <-runCtx.Done():
				return runCtx.Err()
			case jobs <- job{idx: idx, rec: rec, sourceFile: fa}:
				idx++
				return nil
			}
		})
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				ferr = err
			}
			break
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if cerr != nil {
		return cerr
	}
	return ferr
}

func scanOne(sc Scanner, cfg Config, j job) outcome {
	rec := j.rec
	o := outcome{idx: j.idx}
	if len(rec.Seq) < cfg.SkipLen {
		o.skip = &Skip{ID: rec.ID, SourceFile: j.sourceFile, Length: len(rec.Seq), Reason: ErrTooShort}
		return o
	}
	rep, err := sc.Scan(rec.Seq)
	if err != nil {
		if cfg.SkipUncovered && errors.Is(err, matrix.ErrNoMatrix) {
			o.skip = &Skip{ID: rec.ID, SourceFile: j.sourceFile, Length: len(rec.Seq), Reason: err}
			return o
		}
		o.err = fmt.Errorf("%s: record %q: %w", j.sourceFile, rec.ID, err)
		return o
	}
	o.res = common.Result{
		Index:      j.idx,
		ID:         rec.ID,
		Header:     common.NormalizeHeader(rec.Header, len(rec.Seq)),
		Length:     len(rec.Seq),
		SourceFile: j.sourceFile,
		GC:         rep.GC,
		Segments:   rep.Segments,
		MaxScore:   rep.MaxScore,
	}
	return o
}

// internal/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"estscan-core/seq"
)

// Record is one FASTA entry. Header is the title line without the leading
// '>'; ID is its first word. Seq keeps letters only, upper-cased.
type Record struct {
	ID     string
	Header string
	Seq    []byte
}

// Stream opens path (see Open) and passes every record to emit.
func Stream(ctx context.Context, path string, emit func(Record) error) error {
	rc, err := Open(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	if err := Read(ctx, rc, emit); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Read scans FASTA from r. Lines before the first header are ignored, as are
// non-letter bytes inside sequences. Returning an error from emit stops the
// scan and Read returns it; cancellation of ctx is checked between lines.
func Read(ctx context.Context, r io.Reader, emit func(Record) error) error {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReaderSize(r, 64<<10)
	}

	var (
		rec     Record
		started bool
		buf     = make([]byte, 0, 1<<16)
	)
	flush := func() error {
		if !started {
			return nil
		}
		rec.Seq = bytes.Clone(buf)
		return emit(rec)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line, err := br.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return err
		}
		eof := err == io.EOF
		line = bytes.TrimRight(line, "\r\n")

		switch {
		case len(line) > 0 && line[0] == '>':
			if err := flush(); err != nil {
				return err
			}
			started = true
			buf = buf[:0]
			rec = Record{Header: string(line[1:])}
			if f := strings.Fields(rec.Header); len(f) > 0 {
				rec.ID = f[0]
			}
		case started:
			buf = append(buf, seq.Clean(line)...)
		}
		if eof {
			break
		}
	}
	return flush()
}

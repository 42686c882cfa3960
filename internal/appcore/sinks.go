// internal/appcore/sinks.go
package appcore

import (
	"bufio"
	"io"
	"os"

	"estscan/internal/common"
	"estscan/internal/writers"
)

// sink is one running writer goroutine and the destination it owns.
type sink struct {
	bw   *bufio.Writer
	file *os.File // nil for stdout
	in   chan<- common.Result
	done <-chan error
}

func openDest(stdout io.Writer, path string) (*bufio.Writer, *os.File, error) {
	if path == "-" {
		return bufio.NewWriter(stdout), nil, nil
	}
	fh, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return bufio.NewWriter(fh), fh, nil
}

// openSinks starts the report writer and the protein writer that o asks
// for. On error every sink already started is shut down.
func openSinks(stdout io.Writer, o Options, bufSize int) ([]*sink, error) {
	var outs []*sink
	add := func(path string, start func(io.Writer) (chan<- common.Result, <-chan error)) error {
		if path == "" {
			return nil
		}
		bw, fh, err := openDest(stdout, path)
		if err != nil {
			return err
		}
		in, done := start(bw)
		outs = append(outs, &sink{bw: bw, file: fh, in: in, done: done})
		return nil
	}

	err := add(o.Output, func(w io.Writer) (chan<- common.Result, <-chan error) {
		return writers.StartResultWriter(w, o.Format, o.Report, bufSize)
	})
	if err == nil {
		err = add(o.Translate, func(w io.Writer) (chan<- common.Result, <-chan error) {
			return writers.StartProteinWriter(w, o.Report, bufSize)
		})
	}
	if err != nil {
		_ = closeSinks(outs)
		return nil, err
	}
	return outs, nil
}

// closeSinks stops every writer, flushes and closes its destination, and
// returns the first error.
func closeSinks(outs []*sink) error {
	var first error
	keep := func(err error) {
		if err != nil && first == nil {
			first = err
		}
	}
	for _, s := range outs {
		close(s.in)
		keep(<-s.done)
		keep(s.bw.Flush())
		if s.file != nil {
			keep(s.file.Close())
		}
	}
	return first
}

// internal/writers/results.go
package writers

import (
	"io"

	"estscan/internal/common"
	"estscan/internal/output"
)

// StartResultWriter spins up a writer goroutine for format. The returned
// error channel yields exactly one value once in is closed (or the writer
// failed); an unknown format fails after draining in.
func StartResultWriter(out io.Writer, format string, o output.Options, bufSize int) (chan<- common.Result, <-chan error) {
	return start(out, o, bufSize, func() (StreamFunc, error) { return lookup(format) })
}

// StartProteinWriter spins up a goroutine printing translated segments.
func StartProteinWriter(out io.Writer, o output.Options, bufSize int) (chan<- common.Result, <-chan error) {
	return start(out, o, bufSize, func() (StreamFunc, error) { return output.StreamProteins, nil })
}

func start(out io.Writer, o output.Options, bufSize int, get func() (StreamFunc, error)) (chan<- common.Result, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan common.Result, bufSize)
	errCh := make(chan error, 1)

	go func() {
		fn, err := get()
		if err == nil {
			err = fn(out, in, o)
		}
		// keep the producer unblocked after a failure
		for range in {
		}
		errCh <- err
	}()

	return in, errCh
}

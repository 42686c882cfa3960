// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"estscan/internal/common"
	"estscan/internal/jsonlutil"
	"estscan/internal/output"
)

// StartResultJSONLWriter streams each result as one JSON line (v1).
func StartResultJSONLWriter(out io.Writer, o output.Options, bufSize int) (chan<- common.Result, <-chan error) {
	return jsonlutil.Start[common.Result](out, bufSize,
		func(enc *json.Encoder, r common.Result) error {
			return enc.Encode(output.ToAPIResult(r, o))
		},
		IsBrokenPipe,
	)
}

func streamJSONL(w io.Writer, in <-chan common.Result, o output.Options) error {
	ch, done := StartResultJSONLWriter(w, o, cap(in))
	for r := range in {
		ch <- r
	}
	close(ch)
	return <-done
}

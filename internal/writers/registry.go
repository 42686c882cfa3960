// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"estscan/internal/common"
	"estscan/internal/output"
)

// StreamFunc drains in, writing every result to w.
type StreamFunc func(w io.Writer, in <-chan common.Result, o output.Options) error

// ResultWriters maps an output format to its writer. Register in init().
var ResultWriters = map[string]StreamFunc{}

// Register adds or replaces the writer for format.
func Register(format string, fn StreamFunc) { ResultWriters[format] = fn }

// Formats lists the registered formats, sorted.
func Formats() []string {
	out := make([]string, 0, len(ResultWriters))
	for f := range ResultWriters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func lookup(format string) (StreamFunc, error) {
	fn, ok := ResultWriters[format]
	if !ok {
		return nil, fmt.Errorf("unknown result format %q (no writer registered)", format)
	}
	return fn, nil
}

func init() {
	Register(output.FormatText, output.StreamReports)
	Register(output.FormatGFF, output.StreamGFF)
	Register(output.FormatJSON, func(w io.Writer, in <-chan common.Result, o output.Options) error {
		var buf []common.Result
		for r := range in {
			buf = append(buf, r)
		}
		return output.WriteJSON(w, buf, o)
	})
	Register(output.FormatJSONL, streamJSONL)
}

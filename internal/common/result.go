// internal/common/result.go
package common

import "estscan-core/decoder"

// Result is one scanned FASTA record as handed from the pipeline to writers.
type Result struct {
	Index      int    // position in the input stream, 0-based
	ID         string // first word of the header
	Header     string // normalized title line, see NormalizeHeader
	Length     int    // cleaned sequence length
	SourceFile string

	GC       float64
	Segments []decoder.Segment
	MaxScore int32 // decoder.NoScore when no coding run was found
}

// HasScore reports whether any coding run was seen on either strand.
func (r Result) HasScore() bool { return r.MaxScore != decoder.NoScore }

// internal/output/common.go
package output

// Output formats understood by the writers.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatGFF   = "gff"
)

// DefaultWidth is the sequence line width of FASTA-style output.
const DefaultWidth = 60

// Options shape what the renderers print.
type Options struct {
	// Both keeps a segment only if Score >= MaxScore*Both; 1 keeps only the
	// best segments, 0 keeps everything.
	Both       float64
	BestOnly   bool // text: one summary line per sequence
	NoInserted bool // drop inserted (lower-case) bases from printed sequences
	Width      int
}

func (o Options) width() int {
	if o.Width <= 0 {
		return DefaultWidth
	}
	return o.Width
}

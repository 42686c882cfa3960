// internal/output/json.go
package output

import (
	"io"

	"estscan-core/translate"
	"estscan/internal/common"
	"estscan/internal/jsonutil"
	"estscan/pkg/api"
)

// ToAPIResult converts a scanned record to the stable wire schema (v1),
// keeping the segments that pass the relative score filter.
func ToAPIResult(r common.Result, o Options) api.ResultV1 {
	v := api.ResultV1{
		SequenceID: r.ID,
		Header:     r.Header,
		Length:     r.Length,
		GC:         r.GC,
		Segments:   []api.SegmentV1{},
		SourceFile: r.SourceFile,
	}
	if r.HasScore() {
		m := r.MaxScore
		v.MaxScore = &m
	}
	for _, e := range Entries(r, o.Both) {
		s := e.Segment
		strand := "+"
		if s.Reverse {
			strand = "-"
		}
		seq := s.Seq
		if o.NoInserted {
			seq = string(translate.DropInserted([]byte(seq)))
		}
		v.Segments = append(v.Segments, api.SegmentV1{
			Score:   s.Score,
			Start:   s.Start + 1,
			End:     s.Stop + 1,
			Strand:  strand,
			Seq:     seq,
			Protein: translate.Protein(s.Seq),
		})
	}
	return v
}

// WriteJSON writes a single JSON array of v1 results (pretty-indented).
func WriteJSON(w io.Writer, list []common.Result, o Options) error {
	out := make([]api.ResultV1, 0, len(list))
	for _, r := range list {
		out = append(out, ToAPIResult(r, o))
	}
	return jsonutil.EncodePretty(w, out)
}

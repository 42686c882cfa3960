// internal/output/gff.go
package output

import (
	"io"
	"strconv"

	"github.com/biogo/biogo/io/featio/gff"
	"github.com/biogo/biogo/seq"

	"estscan/internal/common"
)

// GFF source and feature names.
const (
	GFFSource  = "estscan"
	GFFFeature = "CDS"
)

// GFFWriter renders segments as GFF features on the forward strand of the
// input sequence; minus-strand segments are mapped back from reverse
// complement coordinates.
type GFFWriter struct {
	w *gff.Writer
	o Options
}

// NewGFFWriter writes a gff-version header before the first feature.
func NewGFFWriter(w io.Writer, o Options) *GFFWriter {
	return &GFFWriter{w: gff.NewWriter(w, o.width(), true), o: o}
}

// Write emits one feature per kept segment of r.
func (g *GFFWriter) Write(r common.Result) error {
	for i, e := range Entries(r, g.o.Both) {
		s := e.Segment
		start, end := s.Start, s.Stop+1
		strand := seq.Plus
		if s.Reverse {
			start, end = r.Length-1-s.Stop, r.Length-s.Start
			strand = seq.Minus
		}
		score := float64(s.Score)
		word, _ := common.SuffixID(r.Header, i)
		gf := &gff.Feature{
			Source:     GFFSource,
			Feature:    GFFFeature,
			FeatFrame:  gff.NoFrame,
			SeqName:    r.ID,
			FeatStart:  start,
			FeatEnd:    end,
			FeatScore:  &score,
			FeatStrand: strand,
			FeatAttributes: gff.Attributes{
				{Tag: "Name", Value: strconv.Quote(word)},
				{Tag: "Length", Value: strconv.Itoa(s.Len())},
			},
		}
		if _, err := g.w.Write(gf); err != nil {
			return err
		}
	}
	return nil
}

// StreamGFF writes features for every result from in.
func StreamGFF(w io.Writer, in <-chan common.Result, o Options) error {
	g := NewGFFWriter(w, o)
	for r := range in {
		if err := g.Write(r); err != nil {
			return err
		}
	}
	return nil
}

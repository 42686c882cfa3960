// internal/output/text.go
package output

import (
	"fmt"
	"io"

	"estscan-core/translate"
	"estscan/internal/common"
)

// WriteReport prints the report for one sequence: each kept segment as a
// FASTA record, or with o.BestOnly a single summary line
// "<name> <score> <start> <stop> <length> <strand>" ("<name> NA" when the
// sequence had no coding run, "<name> <max>" when only filtered runs).
func WriteReport(w io.Writer, r common.Result, o Options) error {
	if o.BestOnly {
		return writeSummary(w, r)
	}
	for _, e := range Entries(r, o.Both) {
		if _, err := fmt.Fprintf(w, ">%s\n", trimRight(e.Title)); err != nil {
			return err
		}
		s := []byte(e.Segment.Seq)
		if o.NoInserted {
			s = translate.DropInserted(s)
		}
		if err := writeWrapped(w, s, o.width()); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(w io.Writer, r common.Result) error {
	name := ">" + common.FirstWord(r.Header)
	if !r.HasScore() {
		_, err := fmt.Fprintf(w, "%s NA\n", name)
		return err
	}
	for _, s := range r.Segments {
		if s.Score != r.MaxScore {
			continue
		}
		strand := '+'
		if s.Reverse {
			strand = '-'
		}
		_, err := fmt.Fprintf(w, "%s %d %d %d %d %c\n", name, s.Score, s.Start+1, s.Stop+1, r.Length, strand)
		return err
	}
	_, err := fmt.Fprintf(w, "%s %d\n", name, r.MaxScore)
	return err
}

// StreamReports writes WriteReport output for every result from in.
func StreamReports(w io.Writer, in <-chan common.Result, o Options) error {
	for r := range in {
		if err := WriteReport(w, r, o); err != nil {
			return err
		}
	}
	return nil
}

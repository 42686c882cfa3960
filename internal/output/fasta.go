// internal/output/fasta.go
package output

import (
	"fmt"
	"io"

	"estscan-core/translate"
	"estscan/internal/common"
)

// WriteProteins prints the translation of every kept segment of r, titled
// like the report with "; translated" appended.
func WriteProteins(w io.Writer, r common.Result, o Options) error {
	for _, e := range Entries(r, o.Both) {
		if _, err := fmt.Fprintf(w, ">%s; translated\n", trimRight(e.Title)); err != nil {
			return err
		}
		if err := writeWrapped(w, []byte(translate.Protein(e.Segment.Seq)), o.width()); err != nil {
			return err
		}
	}
	return nil
}

// StreamProteins writes WriteProteins output for every result from in.
func StreamProteins(w io.Writer, in <-chan common.Result, o Options) error {
	for r := range in {
		if err := WriteProteins(w, r, o); err != nil {
			return err
		}
	}
	return nil
}

// writeWrapped prints s in lines of at most width bytes. An empty s still
// ends with a newline.
func writeWrapped(w io.Writer, s []byte, width int) error {
	for len(s) > width {
		if _, err := fmt.Fprintf(w, "%s\n", s[:width]); err != nil {
			return err
		}
		s = s[width:]
	}
	_, err := fmt.Fprintf(w, "%s\n", s)
	return err
}

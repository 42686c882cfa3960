// internal/output/entries.go
package output

import (
	"fmt"
	"strings"
	"unicode"

	"estscan-core/decoder"
	"estscan/internal/common"
)

const minusStrand = "; minus strand"

// Entry is a segment that passed the relative score filter, with its
// report title (no leading '>').
type Entry struct {
	Title   string
	Segment decoder.Segment
}

// Entries applies the relative score filter to r's segments and builds
// their titles. The first kept segment carries the plain sequence name; each
// further one gets a letter suffix (a, b, ...). Minus-strand segments toggle
// a "; minus strand" marker on the title.
func Entries(r common.Result, both float64) []Entry {
	var out []Entry
	for _, seg := range r.Segments {
		if float64(r.MaxScore)*both > float64(seg.Score) {
			continue
		}
		word, rest := common.SuffixID(r.Header, len(out))
		title := fmt.Sprintf("%s %d %d %d %s", word, seg.Score, seg.Start+1, seg.Stop+1, rest)
		if seg.Reverse {
			title = toggleMinus(title)
		}
		out = append(out, Entry{Title: title, Segment: seg})
	}
	return out
}

func toggleMinus(title string) string {
	if i := strings.Index(title, minusStrand); i >= 0 {
		return title[:i] + title[i+len(minusStrand):]
	}
	return trimRight(title) + minusStrand
}

func trimRight(s string) string { return strings.TrimRightFunc(s, unicode.IsSpace) }

// internal/common/ids.go
package common

import (
	"strconv"
	"strings"
)

// NormalizeHeader drops an existing " LEN=<digits>" tag (and a ';' right
// before it), trims trailing blanks and appends "; LEN=<n>".
func NormalizeHeader(header string, n int) string {
	if i := strings.Index(header, " LEN="); i >= 0 {
		from, to := i, i+len(" LEN=")
		if from > 0 && header[from-1] == ';' {
			from--
		}
		for to < len(header) && header[to] >= '0' && header[to] <= '9' {
			to++
		}
		header = header[:from] + header[to:]
	}
	header = strings.TrimRightFunc(header, isBlank)
	return header + "; LEN=" + strconv.Itoa(n)
}

// SuffixID inserts a segment letter into a FASTA title: the letter goes
// after the leading run of characters up to the first '|' or blank. n == 0
// leaves the title untouched; n >= 1 inserts 'a'+n-1. It returns the
// suffixed first word and the remainder starting at the first blank.
func SuffixID(title string, n int) (word, rest string) {
	i := strings.IndexFunc(title, func(r rune) bool { return r == '|' || isBlank(r) })
	if i < 0 {
		i = len(title)
	}
	j := strings.IndexFunc(title, isBlank)
	if j < 0 {
		j = len(title)
	}
	if n == 0 {
		return title[:j], title[j:]
	}
	return title[:i] + string(rune('a'+n-1)) + title[i:j], title[j:]
}

// FirstWord returns title up to its first blank.
func FirstWord(title string) string {
	w, _ := SuffixID(title, 0)
	return w
}

func isBlank(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

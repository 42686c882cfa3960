// core/translate/translate.go
// Package translate turns annotated coding segments into protein sequences.
package translate

// Stop is the symbol Codons produces for a stop codon.
const Stop = 'O'

const (
	// codons in AAA, AAC, ..., TTT order
	fullCodons = "KNKNTTTTRSRSIIMI" +
		"QHQHPPPPRRRRLLLL" +
		"EDEDAAAAGGGGVVVV" +
		"OYOYSSSSOCWCLFLF"
	// residue implied by the first two bases alone (four-fold degenerate
	// codons), X otherwise
	prefixCodons = "XTXXXPRLXAGVXSXX"
)

func code(b byte) int {
	switch b {
	case 'A':
		return 0
	case 'C':
		return 1
	case 'G':
		return 2
	case 'T':
		return 3
	}
	return -1
}

// Codons translates s three bases at a time. Stop codons become Stop; a
// codon with an unknown first or second base becomes X; one with an unknown
// or missing third base is resolved from its first two bases when they
// determine the residue. A trailing single base yields X.
func Codons(s []byte) []byte {
	out := make([]byte, 0, len(s)/3+1)
	for i := 0; i < len(s); i += 3 {
		a := code(s[i])
		if i+1 >= len(s) || a < 0 {
			out = append(out, 'X')
			continue
		}
		b := code(s[i+1])
		if b < 0 {
			out = append(out, 'X')
			continue
		}
		pre := a<<2 | b
		if i+2 >= len(s) {
			out = append(out, prefixCodons[pre])
			continue
		}
		c := code(s[i+2])
		if c < 0 {
			out = append(out, prefixCodons[pre])
			continue
		}
		out = append(out, fullCodons[pre<<2|c])
	}
	return out
}

// DropInserted removes lower-case (inserted) bases, in place.
func DropInserted(s []byte) []byte {
	out := s[:0]
	for _, c := range s {
		if c < 'a' || c > 'z' {
			out = append(out, c)
		}
	}
	return out
}

// Protein translates an annotated segment: inserted bases are dropped,
// trailing stops are removed and internal stops become X.
func Protein(segment string) string {
	p := Codons(DropInserted([]byte(segment)))
	for len(p) > 0 && p[len(p)-1] == Stop {
		p = p[:len(p)-1]
	}
	for i, c := range p {
		if c == Stop {
			p[i] = 'X'
		}
	}
	return string(p)
}

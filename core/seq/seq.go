// core/seq/seq.go
// Base coding, cleaning, GC content and reverse complement for nucleotide
// sequences. No app/output deps; matrix and decoder import it cleanly.
package seq

// NCode is the digit used for any base other than A, C, G or T.
const NCode = 4

var (
	codes      [256]uint8
	complement [256]byte
)

func init() {
	for i := range codes {
		codes[i] = NCode
	}
	codes['A'], codes['C'], codes['G'], codes['T'] = 0, 1, 2, 3

	pairs := []struct{ a, b byte }{
		{'A', 'T'}, {'C', 'G'},
		{'R', 'Y'}, {'S', 'S'}, {'W', 'W'},
		{'K', 'M'}, {'B', 'V'}, {'D', 'H'},
		{'N', 'N'}, {'X', 'X'},
	}
	for _, p := range pairs {
		complement[p.a], complement[p.b] = p.b, p.a
		complement[p.a|0x20], complement[p.b|0x20] = p.b|0x20, p.a|0x20
	}
}

// Code maps A,C,G,T to 0..3 and everything else (including lowercase) to NCode.
func Code(b byte) int { return int(codes[b]) }

// Clean upper-cases letters and drops every non-letter byte, in place.
// The returned slice shares s's backing array.
func Clean(s []byte) []byte {
	out := s[:0]
	for _, c := range s {
		switch {
		case c >= 'A' && c <= 'Z':
			out = append(out, c)
		case c >= 'a' && c <= 'z':
			out = append(out, c-('a'-'A'))
		}
	}
	return out
}

// GCPercent returns 100*(G+C)/(A+C+G+T) counting uppercase bases only.
// It is 0 when s holds no A, C, G or T.
func GCPercent(s []byte) float64 {
	var ctr [4]int
	for _, c := range s {
		if k := codes[c]; k < NCode {
			ctr[k]++
		}
	}
	gc := ctr[1] + ctr[2]
	atgc := gc + ctr[0] + ctr[3]
	if atgc == 0 {
		return 0
	}
	return 100 * float64(gc) / float64(atgc)
}

func comp(c byte) byte {
	if r := complement[c]; r != 0 {
		return r
	}
	if c >= 'a' && c <= 'z' {
		return 'n'
	}
	return 'N'
}

// RevComp returns the reverse complement of s as a new slice. Case is kept;
// letters outside the IUPAC alphabet become N.
func RevComp(s []byte) []byte {
	n := len(s)
	if n == 0 {
		return nil
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = comp(s[n-1-i])
	}
	return out
}

// RevCompInPlace reverse-complements s without allocating.
func RevCompInPlace(s []byte) {
	i, j := 0, len(s)-1
	for i < j {
		s[i], s[j] = comp(s[j]), comp(s[i])
		i++
		j--
	}
	if i == j {
		s[i] = comp(s[i])
	}
}

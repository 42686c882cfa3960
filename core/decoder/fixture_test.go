package decoder

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"estscan-core/matrix"
	"estscan-core/seq"
)

const (
	bA = iota
	bC
	bG
	bT
)

// codingScore rewards the codon GCC in frame: G after C or G, C after G,
// C after C.
func codingScore(frame, prev, cur int) int {
	ok := false
	switch frame {
	case 0:
		ok = cur == bG && (prev == bC || prev == bG)
	case 1:
		ok = prev == bG && cur == bC
	case 2:
		ok = prev == bC && cur == bC
	}
	if ok {
		return 6
	}
	return -12
}

// profileScore rewards one base per position.
func profileScore(want []int, frame, cur int) int {
	if want[frame] == cur {
		return 10
	}
	return -20
}

func writeBlock(b *strings.Builder, header string, frames, perFrame int, score func(f, i int) int) {
	b.WriteString(header + "\n")
	for f := 0; f < frames; f++ {
		for i := 0; i < perFrame; i += 4 {
			fmt.Fprintf(b, "%d %d %d %d\n", score(f, i), score(f, i+1), score(f, i+2), score(f, i+3))
		}
	}
}

// fixtureText renders an order-2 matrix set covering C+G lo..hi.
func fixtureText(lo, hi int) string {
	var b strings.Builder
	cg := fmt.Sprintf("s C+G: %d %d", lo, hi)
	writeBlock(&b, "FORMAT: test CODING REGION 2 3 1 "+cg, 3, 16, func(f, i int) int {
		return codingScore(f, i/4, i%4)
	})
	writeBlock(&b, "FORMAT: test UNTRANSLATED REGION 2 1 1 "+cg, 1, 16, func(int, int) int { return 0 })
	writeBlock(&b, "FORMAT: test START PROFILE 1 3 1 "+cg, 3, 4, func(f, i int) int {
		return profileScore([]int{bA, bT, bG}, f, i)
	})
	writeBlock(&b, "FORMAT: test STOP PROFILE 1 3 3 "+cg, 3, 4, func(f, i int) int {
		return profileScore([]int{bT, bA, bA}, f, i)
	})
	return b.String()
}

func fixtureMatrices(t *testing.T, lo, hi int) []*matrix.Matrix {
	t.Helper()
	opts := matrix.DefaultOptions
	opts.Percent = 0
	ms, err := matrix.Parse(strings.NewReader(fixtureText(lo, hi)), opts)
	if err != nil {
		t.Fatalf("fixture matrices: %v", err)
	}
	return ms
}

var fixturePenalties = Penalties{
	StartUTR5: 0,
	StartCDS:  -50,
	StartUTR3: -50,
	UTR5CDS:   -20,
	UTR5End:   -50,
	CDSUTR3:   -20,
	CDSEnd:    -50,
	UTR3End:   0,
	Ins:       -40,
	Del:       -40,
	Jump:      -100,
}

// geneA is 50 T, ATG, 80 GCC codons, TAA and four T: 300 bases.
func geneA() []byte {
	s := strings.Repeat("T", 50) + "ATG" + strings.Repeat("GCC", 80) + "TAA" + "TTTT"
	return []byte(s)
}

// geneB is geneA without the G at position 173.
func geneB() []byte {
	a := geneA()
	return append(a[:173:173], a[174:]...)
}

func revComp(s []byte) []byte { return seq.RevComp(s) }

// geneC is geneA with an extra A before position 173.
func geneC() []byte {
	a := geneA()
	return append(append(a[:173:173], 'A'), a[173:]...)
}

// randomText renders a matrix set of coding order k with random scores. The
// stop profile ends the coding span at stopOffset (0 or 3).
func randomText(rng *rand.Rand, k, stopOffset int) string {
	var b strings.Builder
	score := func(int, int) int { return rng.Intn(61) - 30 }
	cg := "s C+G: 0 100"
	perFrame := 1 << (2 * k)
	writeBlock(&b, fmt.Sprintf("FORMAT: rnd CODING REGION %d 3 1 %s", k, cg), 3, perFrame, score)
	writeBlock(&b, fmt.Sprintf("FORMAT: rnd UNTRANSLATED REGION %d 1 1 %s", k, cg), 1, perFrame, score)
	writeBlock(&b, "FORMAT: rnd START PROFILE 1 3 1 "+cg, 3, 4, score)
	writeBlock(&b, fmt.Sprintf("FORMAT: rnd STOP PROFILE 1 3 %d %s", stopOffset, cg), 3, 4, score)
	return b.String()
}

func randomSeq(rng *rand.Rand, n int) []byte {
	const alphabet = "ACGTN"
	s := make([]byte, n)
	for i := range s {
		s[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return s
}

// internal/integration/fixture_test.go
package integration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// An order-2 matrix set that rewards GCC codons framed by an ATG start
// profile and a TAA stop profile.

const (
	bA = iota
	bC
	bG
	bT
)

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

func matrixText(lo, hi int) string {
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

// decoderFlags match the penalties the fixture matrices were tuned with.
var decoderFlags = []string{
	"-T", "0,-50,-50,-20,-50,-20,-50,0",
	"-i", "-40", "-d", "-40",
	"-m", "-100", "--jump", "-100",
	"-p", "0",
}

func write(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

func matrixFile(t *testing.T, lo, hi int) string {
	return write(t, "test.smat", matrixText(lo, hi))
}

// geneA is 50 T, ATG, 80 GCC codons, TAA and four T: 300 bases.
func geneA() string {
	return strings.Repeat("T", 50) + "ATG" + strings.Repeat("GCC", 80) + "TAA" + "TTTT"
}

func revComp(s string) string {
	pair := map[byte]byte{'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A'}
	out := make([]byte, len(s))
	for i := range s {
		out[len(s)-1-i] = pair[s[i]]
	}
	return string(out)
}

// args builds an estscan command line over the fixture matrices.
func args(matrix string, extra ...string) []string {
	a := append([]string{"-M", matrix}, decoderFlags...)
	return append(a, extra...)
}

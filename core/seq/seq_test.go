package seq

import (
	"bytes"
	"math"
	"testing"
)

func TestCode(t *testing.T) {
	for in, want := range map[byte]int{'A': 0, 'C': 1, 'G': 2, 'T': 3, 'N': 4, 'a': 4, 'R': 4, '-': 4} {
		if got := Code(in); got != want {
			t.Errorf("Code(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestClean(t *testing.T) {
	got := Clean([]byte("ac gt-N*\r\nrY"))
	if string(got) != "ACGTNRY" {
		t.Fatalf("Clean = %q, want ACGTNRY", got)
	}
}

func TestGCPercent(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"NNNN", 0},
		{"acgt", 0}, // lowercase is not counted
		{"GGCC", 100},
		{"AATT", 0},
		{"ACGT", 50},
		{"AACGTNNN", 40},
		{"GGGCA", 80},
	}
	for _, c := range cases {
		if got := GCPercent([]byte(c.in)); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("GCPercent(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestRevCompSimple(t *testing.T) {
	if got := RevComp([]byte("AGTC")); string(got) != "GACT" {
		t.Errorf("RevComp(AGTC) = %s, want GACT", got)
	}
	if got := RevComp([]byte("aGtN")); string(got) != "NaCt" {
		t.Errorf("RevComp(aGtN) = %s, want NaCt", got)
	}
	if RevComp(nil) != nil {
		t.Errorf("RevComp(nil) should return nil")
	}
}

func TestRevCompTwiceIsIdentity(t *testing.T) {
	for _, s := range []string{"", "A", "ACGT", "ACGTNRYSWKMBDHVX", "acgtnACGTN", "TTTTAAAACCCGG"} {
		b := []byte(s)
		RevCompInPlace(b)
		RevCompInPlace(b)
		if string(b) != s {
			t.Errorf("in-place involution failed: %q -> %q", s, b)
		}
		if got := RevComp(RevComp([]byte(s))); !bytes.Equal(got, []byte(s)) && len(s) > 0 {
			t.Errorf("copy involution failed: %q -> %q", s, got)
		}
	}
}

func TestRevCompInPlaceMatchesCopy(t *testing.T) {
	for _, s := range []string{"A", "AC", "ACG", "GATTACA", "NNACGTRY"} {
		b := []byte(s)
		RevCompInPlace(b)
		if want := RevComp([]byte(s)); !bytes.Equal(b, want) {
			t.Errorf("RevCompInPlace(%q) = %q, want %q", s, b, want)
		}
	}
}

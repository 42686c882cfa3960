// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estscan/internal/app"
	"estscan/pkg/api"
)

func run(t *testing.T, argv ...string) (string, string, int) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := app.Run(argv, &out, &errBuf)
	return out.String(), errBuf.String(), code
}

var codingSeq = "ATG" + strings.Repeat("GCC", 80) + "TAA"

func TestEndToEndReport(t *testing.T) {
	m := matrixFile(t, 0, 100)
	fa := write(t, "ests.fa", ">g1 first EST\n"+geneA()+"\n")

	out, errs, code := run(t, args(m, fa)...)
	require.Equal(t, 0, code, errs)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 1+(len(codingSeq)+59)/60)
	assert.Equal(t, ">g1 1480 51 296  first EST; LEN=300", lines[0])
	assert.Equal(t, codingSeq, strings.Join(lines[1:], ""))
	assert.Equal(t, codingSeq[:60], lines[1])
}

func TestEndToEndMinusStrand(t *testing.T) {
	m := matrixFile(t, 0, 100)
	fa := write(t, "ests.fa", ">g1\n"+revComp(geneA())+"\n")

	out, errs, code := run(t, args(m, "-w", "1000", fa)...)
	require.Equal(t, 0, code, errs)
	assert.Equal(t, ">g1; 1480 51 296  LEN=300; minus strand\n"+codingSeq+"\n", out)

	out, _, code = run(t, args(m, "-S", "-O", fa)...)
	require.Equal(t, 0, code)
	assert.Equal(t, ">g1; NA\n", out)
}

func TestEndToEndProteins(t *testing.T) {
	m := matrixFile(t, 0, 100)
	fa := write(t, "ests.fa", ">g1\n"+geneA()+"\n")
	protein := "M" + strings.Repeat("A", 80)

	out, errs, code := run(t, args(m, "-t", "-", fa)...)
	require.Equal(t, 0, code, errs)
	assert.Equal(t, ">g1; 1480 51 296  LEN=300; translated\n"+protein[:60]+"\n"+protein[60:]+"\n", out)

	// report to a file, proteins to another
	dir := t.TempDir()
	rep, prot := filepath.Join(dir, "out.cds"), filepath.Join(dir, "out.pep")
	_, errs, code = run(t, args(m, "-o", rep, "-t", prot, "-w", "500", fa)...)
	require.Equal(t, 0, code, errs)
	got, err := os.ReadFile(rep)
	require.NoError(t, err)
	assert.Equal(t, ">g1; 1480 51 296  LEN=300\n"+codingSeq+"\n", string(got))
	got, err = os.ReadFile(prot)
	require.NoError(t, err)
	assert.Equal(t, ">g1; 1480 51 296  LEN=300; translated\n"+protein+"\n", string(got))
}

func TestEndToEndBestOnly(t *testing.T) {
	m := matrixFile(t, 0, 100)
	fa := write(t, "ests.fa", ">g1 x\n"+geneA()+"\n>empty\n"+strings.Repeat("T", 300)+"\n")

	out, errs, code := run(t, args(m, "-O", fa)...)
	require.Equal(t, 0, code, errs)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, ">g1 1480 51 296 300 +", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], ">empty;"), lines[1])
}

func TestEndToEndJSON(t *testing.T) {
	m := matrixFile(t, 0, 100)
	fa := write(t, "ests.fa", ">g1\n"+geneA()+"\n>g2\n"+revComp(geneA())+"\n")

	out, errs, code := run(t, args(m, "--format", "json", fa)...)
	require.Equal(t, 0, code, errs)

	var got []api.ResultV1
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	for i, r := range got {
		assert.Equal(t, fmt.Sprintf("g%d", i+1), r.SequenceID)
		assert.Equal(t, 300, r.Length)
		require.NotNil(t, r.MaxScore)
		assert.EqualValues(t, 1480, *r.MaxScore)
		require.Len(t, r.Segments, 1)
		assert.Equal(t, 51, r.Segments[0].Start)
		assert.Equal(t, 296, r.Segments[0].End)
		assert.Equal(t, codingSeq, r.Segments[0].Seq)
	}
	assert.Equal(t, "+", got[0].Segments[0].Strand)
	assert.Equal(t, "-", got[1].Segments[0].Strand)
}

func TestEndToEndJSONL(t *testing.T) {
	m := matrixFile(t, 0, 100)
	fa := write(t, "ests.fa", ">g1\n"+geneA()+"\n>g2\nACGT\n")

	out, errs, code := run(t, args(m, "--format", "jsonl", fa)...)
	require.Equal(t, 0, code, errs)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	var r api.ResultV1
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &r))
	assert.Equal(t, "g2", r.SequenceID)
	assert.NotNil(t, r.Segments)
}

func TestEndToEndGFF(t *testing.T) {
	m := matrixFile(t, 0, 100)
	fa := write(t, "ests.fa", ">g1\n"+geneA()+"\n>g2\n"+revComp(geneA())+"\n")

	out, errs, code := run(t, args(m, "--format", "gff", fa)...)
	require.Equal(t, 0, code, errs)
	assert.True(t, strings.HasPrefix(out, "##gff-version"), out)

	var feats [][]string
	for _, l := range strings.Split(out, "\n") {
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		feats = append(feats, strings.Split(l, "\t"))
	}
	require.Len(t, feats, 2)
	assert.Equal(t, []string{"g1", "estscan", "CDS", "51", "296"}, feats[0][:5])
	assert.Equal(t, "+", feats[0][6])
	// the reverse hit lies on the same forward coordinates
	assert.Equal(t, []string{"g2", "estscan", "CDS", "5", "250"}, feats[1][:5])
	assert.Equal(t, "-", feats[1][6])
}

func TestThreadsDoNotChangeOutput(t *testing.T) {
	m := matrixFile(t, 0, 100)
	var b strings.Builder
	for i := 0; i < 60; i++ {
		s := geneA()
		switch i % 3 {
		case 1:
			s = revComp(s)
		case 2:
			s = s[:100+i]
		}
		fmt.Fprintf(&b, ">r%d\n%s\n", i, s)
	}
	fa := write(t, "many.fa", b.String())

	serial, errs, code := run(t, args(m, "--threads", "1", fa)...)
	require.Equal(t, 0, code, errs)
	for _, n := range []string{"2", "8"} {
		par, errs, code := run(t, args(m, "--threads", n, fa)...)
		require.Equal(t, 0, code, errs)
		assert.Equal(t, serial, par, "threads=%s", n)
	}
}

func TestUncoveredSequences(t *testing.T) {
	m := matrixFile(t, 0, 40)
	fa := write(t, "ests.fa", ">gc\n"+strings.Repeat("GCC", 40)+"\n>at\n"+strings.Repeat("AAT", 40)+"\n")

	_, errs, code := run(t, args(m, fa)...)
	assert.Equal(t, 3, code)
	assert.Contains(t, errs, "gc")

	out, errs, code := run(t, args(m, "--skip-uncovered", fa)...)
	require.Equal(t, 0, code, errs)
	assert.NotContains(t, out, ">gc")
}

func TestSkipLength(t *testing.T) {
	m := matrixFile(t, 0, 100)
	fa := write(t, "ests.fa", ">short\nACGTACGT\n>g1\n"+geneA()+"\n")

	out, errs, code := run(t, args(m, "-s", "50", "-O", fa)...)
	require.Equal(t, 0, code, errs)
	assert.Equal(t, ">g1; 1480 51 296 300 +\n", out)
}

func TestConfigErrors(t *testing.T) {
	m := matrixFile(t, 0, 100)
	fa := write(t, "ests.fa", ">g1\n"+geneA()+"\n")
	bad := write(t, "bad.smat", "FORMAT: broken CODING REGION x\n1 2 3\n")

	cases := []struct {
		name string
		argv []string
	}{
		{"missing matrix file", []string{"-M", filepath.Join(t.TempDir(), "none.smat"), fa}},
		{"malformed matrix", []string{"-M", bad, fa}},
		{"bad format", args(m, "--format", "xml", fa)},
		{"bad width", args(m, "-w", "0", fa)},
		{"best-only json", args(m, "-O", "--format", "json", fa)},
		{"short transitions", args(m, "-T", "1,2,3", fa)},
		{"unknown flag", args(m, "--frobnicate", fa)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, errs, code := run(t, tc.argv...)
			assert.Equal(t, 2, code)
			assert.Contains(t, errs, "error")
		})
	}
}

func TestMissingInputFile(t *testing.T) {
	m := matrixFile(t, 0, 100)
	_, errs, code := run(t, args(m, filepath.Join(t.TempDir(), "nope.fa"))...)
	assert.Equal(t, 3, code)
	assert.Contains(t, errs, "nope.fa")
}

func TestHelpVersionExamples(t *testing.T) {
	out, _, code := run(t, "-h")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "--matrix")

	out, _, code = run(t, "--version")
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out, "estscan version "), out)

	out, _, code = run(t, "--examples")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "estscan -M Hs.smat")
}

// internal/fasta/reader_test.go
package fasta

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/pgzip"
	"github.com/stretchr/testify/require"
)

const plain = `junk before the first header
>seq1 first record; LEN=99
ACgt nn
AC-GT*
>seq2
>gi|42|x
acgu
`

func collect(t *testing.T, r io.Reader) []Record {
	t.Helper()
	var recs []Record
	err := Read(context.Background(), r, func(rec Record) error {
		recs = append(recs, rec)
		return nil
	})
	require.NoError(t, err)
	return recs
}

func TestReadRecords(t *testing.T) {
	recs := collect(t, strings.NewReader(plain))
	require.Len(t, recs, 3)

	require.Equal(t, "seq1", recs[0].ID)
	require.Equal(t, "seq1 first record; LEN=99", recs[0].Header)
	require.Equal(t, "ACGTNNACGT", string(recs[0].Seq))

	require.Equal(t, "seq2", recs[1].ID)
	require.Empty(t, recs[1].Seq)

	require.Equal(t, "gi|42|x", recs[2].ID)
	require.Equal(t, "ACGU", string(recs[2].Seq))
}

func TestReadNoTrailingNewlineAndCRLF(t *testing.T) {
	recs := collect(t, strings.NewReader(">a\r\nAC\r\nGT"))
	require.Len(t, recs, 1)
	require.Equal(t, "a", recs[0].Header)
	require.Equal(t, "ACGT", string(recs[0].Seq))
}

func TestReadStopsOnEmitError(t *testing.T) {
	stop := io.ErrShortWrite
	n := 0
	err := Read(context.Background(), strings.NewReader(plain), func(Record) error {
		n++
		return stop
	})
	require.ErrorIs(t, err, stop)
	require.Equal(t, 1, n)
}

func TestReadCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n := 0
	err := Read(ctx, strings.NewReader(plain), func(Record) error { n++; return nil })
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, n)
}

func TestStreamGzip(t *testing.T) {
	var zbuf bytes.Buffer
	zw := pgzip.NewWriter(&zbuf)
	_, err := zw.Write([]byte(plain))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	// no .gz suffix: detected by magic number
	fn := filepath.Join(t.TempDir(), "reads.fa")
	require.NoError(t, os.WriteFile(fn, zbuf.Bytes(), 0o644))

	var ids []string
	err = Stream(context.Background(), fn, func(r Record) error {
		ids = append(ids, r.ID)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"seq1", "seq2", "gi|42|x"}, ids)
}

func TestStreamStdin(t *testing.T) {
	orig := os.Stdin
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdin = r
	defer func() { os.Stdin = orig }()
	go func() { _, _ = io.WriteString(w, plain); _ = w.Close() }()

	count := 0
	err = Stream(context.Background(), "-", func(Record) error { count++; return nil })
	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func TestStreamMissingFile(t *testing.T) {
	err := Stream(context.Background(), filepath.Join(t.TempDir(), "nope.fa"), func(Record) error { return nil })
	require.ErrorIs(t, err, os.ErrNotExist)
}

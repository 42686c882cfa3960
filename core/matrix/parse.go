// core/matrix/parse.go
package matrix

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Options control how raw matrix values become score tables.
type Options struct {
	Floor   int32   // raw values below Floor are raised to it
	NMethod NMethod // how N slots are derived
	Percent float64 // GC range correction, in percent
}

// DefaultOptions mirror the classic ESTScan defaults.
var DefaultOptions = Options{Floor: -100, NMethod: NMean, Percent: 4.0}

const headerTag = "FORMAT: "

// Load reads every matrix block in the file at path.
func Load(path string, opts Options) ([]*Matrix, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	ms, err := Parse(fh, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ms, nil
}

type block struct {
	m    *Matrix
	line int
	raw  []int32
}

// Parse reads a sequence of matrix blocks. A block is a header line
//
//	FORMAT: <name> <kind> <region> <order> <frames> <offset> s C+G: <min> <max>
//
// followed by rows of four integers (scores for A, C, G, T). Rows end at the
// first line that does not start with '-' or a digit. Lines outside blocks
// are ignored. Unknown kinds are kept with Kind == Unknown.
func Parse(r io.Reader, opts Options) ([]*Matrix, error) {
	if !opts.NMethod.Valid() {
		return nil, fmt.Errorf("%w (%d)", ErrNMethod, opts.NMethod)
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)

	var (
		out []*Matrix
		cur *block
		ln  int
	)
	flush := func() error {
		if cur == nil {
			return nil
		}
		b := cur
		cur = nil
		tables, err := buildTables(b.raw, b.m.Order, b.m.Frames, opts.Floor, opts.NMethod)
		if err != nil {
			return fmt.Errorf("line %d: matrix %s: %w", b.line, b.m.Name, err)
		}
		b.m.Tables = tables
		out = append(out, b.m)
		return nil
	}

	for sc.Scan() {
		ln++
		line := sc.Text()
		if strings.HasPrefix(line, headerTag) {
			if err := flush(); err != nil {
				return nil, err
			}
			m, err := parseHeader(line, opts.Percent)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", ln, err)
			}
			cur = &block{m: m, line: ln}
			continue
		}
		if cur != nil && isRow(line) {
			f := strings.Fields(line)
			if len(f) < 4 {
				return nil, fmt.Errorf("line %d: matrix %s: %w: want 4 values, got %d", ln, cur.m.Name, ErrFormat, len(f))
			}
			for _, s := range f[:4] {
				v, err := strconv.Atoi(s)
				if err != nil {
					return nil, fmt.Errorf("line %d: matrix %s: %w: %v", ln, cur.m.Name, ErrFormat, err)
				}
				cur.raw = append(cur.raw, int32(v))
			}
			continue
		}
		if err := flush(); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("matrix scan: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return out, nil
}

func isRow(line string) bool {
	return len(line) > 0 && (line[0] == '-' || (line[0] >= '0' && line[0] <= '9'))
}

func parseHeader(line string, percent float64) (*Matrix, error) {
	f := strings.Fields(line)
	// FORMAT: name kind region order frames offset s C+G: min max
	if len(f) < 11 || f[7] != "s" || f[8] != "C+G:" {
		return nil, fmt.Errorf("%w: bad header %q", ErrFormat, line)
	}
	m := &Matrix{Name: f[1], Kind: ParseKind(f[2]), Region: f[3]}
	var err error
	ints := []struct {
		dst *int
		s   string
		min int
	}{{&m.Order, f[4], 0}, {&m.Frames, f[5], 1}, {&m.Offset, f[6], -1 << 31}}
	for _, x := range ints {
		if *x.dst, err = strconv.Atoi(x.s); err != nil || *x.dst < x.min {
			return nil, fmt.Errorf("%w: bad header field %q in %q", ErrFormat, x.s, line)
		}
	}
	if m.CGMin, err = strconv.ParseFloat(f[9], 64); err != nil {
		return nil, fmt.Errorf("%w: bad C+G min %q", ErrFormat, f[9])
	}
	if m.CGMax, err = strconv.ParseFloat(f[10], 64); err != nil {
		return nil, fmt.Errorf("%w: bad C+G max %q", ErrFormat, f[10])
	}
	if m.CGMin < 0 {
		m.CGMin = 0
	}
	if m.CGMin > 0 {
		m.CGMin += percent
	}
	m.CGMax += percent
	if m.CGMax > 100 {
		m.CGMax = 100
	}
	return m, nil
}

// core/matrix/build.go
package matrix

import (
	"fmt"
	"sort"
)

// NMethod selects how the score of an N slot is derived from its four
// siblings (the slots that differ only in that digit).
type NMethod int

const (
	NMean    NMethod = 0  // arithmetic mean
	NMax     NMethod = 1  // best sibling
	NTop2    NMethod = 2  // mean of the two best
	NTop3    NMethod = 3  // mean of the three best
	NMin     NMethod = -1 // worst sibling
	NBottom2 NMethod = -2 // mean of the two worst
	NBottom3 NMethod = -3 // mean of the three worst
)

// Valid reports whether m is one of the known codes.
func (m NMethod) Valid() bool { return m >= -3 && m <= 3 }

// combine reduces four sibling scores to one. Integer means truncate toward
// zero.
func (m NMethod) combine(a, b, c, d int32) int32 {
	if m == NMean {
		return (a + b + c + d) / 4
	}
	s := [4]int32{a, b, c, d}
	sort.Slice(s[:], func(i, j int) bool { return s[i] < s[j] })
	switch m {
	case NMax:
		return s[3]
	case NTop2:
		return (s[3] + s[2]) / 2
	case NTop3:
		return (s[3] + s[2] + s[1]) / 3
	case NMin:
		return s[0]
	case NBottom2:
		return (s[0] + s[1]) / 2
	default: // NBottom3
		return (s[0] + s[1] + s[2]) / 3
	}
}

// buildTables expands raw 4^order×frames scores (A,C,G,T rows, most recent
// base last) into frames dense 5^order tables.
//
// Raw values are floored at floor. The table is written in index order: after
// every run of four siblings at digit j (counted from the most significant),
// the N block for that digit is appended. Its entries combine the matching
// entries of the four sibling blocks, except the block's last entry (all lower
// digits N) which is the null expectation 0.
func buildTables(raw []int32, order, frames int, floor int32, nm NMethod) ([][]int32, error) {
	if order < 1 || order > MaxOrder {
		return nil, fmt.Errorf("%w (got %d)", ErrOrder, order)
	}
	if !nm.Valid() {
		return nil, fmt.Errorf("%w (%d)", ErrNMethod, nm)
	}
	step := make([]int, order)  // 4^(order-j)
	sStep := make([]int, order) // 5^(order-j)
	step[order-1], sStep[order-1] = 4, 5
	for j := order - 2; j >= 0; j-- {
		step[j] = step[j+1] * 4
		sStep[j] = sStep[j+1] * 5
	}
	if want := step[0] * frames; len(raw) != want {
		return nil, fmt.Errorf("%w: %d values, want %d", ErrFormat, len(raw), want)
	}

	size := sStep[0]
	tables := make([][]int32, frames)
	for f := 0; f < frames; f++ {
		t := make([]int32, 0, size)
		data := raw[f*step[0] : (f+1)*step[0]]
		for i, v := range data {
			if v < floor {
				v = floor
			}
			t = append(t, v)
			for j := order - 1; j >= 0; j-- {
				if (i+1)%step[j] != 0 {
					continue
				}
				stepping := sStep[j] / 5
				for k := 0; k < stepping-1; k++ {
					p := len(t)
					t = append(t, nm.combine(t[p-stepping], t[p-2*stepping], t[p-3*stepping], t[p-4*stepping]))
				}
				t = append(t, 0)
			}
		}
		tables[f] = t
	}
	return tables, nil
}

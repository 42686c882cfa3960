// core/matrix/matrix.go
// Position-specific scoring matrices as read from an ESTScan-style matrix file.
//
// Each matrix holds Frames dense tables of 5^Order int32 scores. A table is
// indexed by the base-5 code of the last Order symbols, most recent symbol in
// the least-significant digit (digits 0..3 = A,C,G,T, 4 = N).
package matrix

import (
	"errors"
	"fmt"
	"strings"
)

// Kind tags what a matrix models.
type Kind int

const (
	Unknown Kind = iota - 1
	Coding
	Untranslated
	Start
	Stop
)

// MaxOrder bounds the context length of a matrix, as the training tool does.
const MaxOrder = 16

// NumKinds is the number of selectable kinds (Coding..Stop).
const NumKinds = 4

var kindNames = [NumKinds]string{"CODING", "UNTRANSLATED", "START", "STOP"}

func (k Kind) String() string {
	if k < 0 || int(k) >= NumKinds {
		return "UNKNOWN"
	}
	return kindNames[k]
}

// ParseKind recognises a kind by prefix, the way matrix headers spell them
// ("CODING", "UNTRANSLATED", "START", "STOP"). Anything else is Unknown.
func ParseKind(s string) Kind {
	for i, name := range kindNames {
		if strings.HasPrefix(s, name) {
			return Kind(i)
		}
	}
	return Unknown
}

var (
	ErrFormat   = errors.New("bad matrix format")
	ErrOrder    = errors.New("matrix order must be between 1 and 16")
	ErrNMethod  = errors.New("bad method to compute N score value")
	ErrNoMatrix = errors.New("no matrix covers GC content")
)

// Matrix is immutable after Parse returns it.
type Matrix struct {
	Name   string
	Kind   Kind
	Region string // header tag after the kind, e.g. REGION or PROFILE
	Order  int
	Frames int
	Offset int
	CGMin  float64 // percent, adjusted by Options.Percent
	CGMax  float64
	Tables [][]int32
}

// TableSize is 5^Order.
func (m *Matrix) TableSize() int { return pow(5, m.Order) }

// Covers reports whether gc lies in [CGMin, CGMax].
func (m *Matrix) Covers(gc float64) bool { return gc >= m.CGMin && gc <= m.CGMax }

// Score returns the table entry for frame f at context index idx.
func (m *Matrix) Score(f, idx int) int32 { return m.Tables[f][idx] }

func (m *Matrix) String() string {
	return fmt.Sprintf("%s %s order=%d frames=%d offset=%d C+G=[%.2f,%.2f]",
		m.Name, m.Kind, m.Order, m.Frames, m.Offset, m.CGMin, m.CGMax)
}

func pow(b, e int) int {
	n := 1
	for i := 0; i < e; i++ {
		n *= b
	}
	return n
}

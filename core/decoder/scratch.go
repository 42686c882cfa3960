// core/decoder/scratch.go
package decoder

// Scratch holds the position × state score and traceback tables. It only
// ever grows, so one Scratch reused across sequences settles at the size of
// the largest one. A Scratch must not be shared between goroutines.
type Scratch struct {
	v   []int32
	tr  []int32
	ins []int
	del []int
	buf []byte
}

// NewScratch returns an empty Scratch; the zero value is also ready to use.
func NewScratch() *Scratch { return &Scratch{} }

// Cells is the number of table cells currently allocated.
func (s *Scratch) Cells() int { return cap(s.v) }

func (s *Scratch) reserve(cells, order, seqLen int) {
	if cap(s.v) < cells {
		s.v = make([]int32, cells)
		s.tr = make([]int32, cells)
	}
	s.v, s.tr = s.v[:cells], s.tr[:cells]
	if cap(s.ins) < order {
		s.ins = make([]int, order)
		s.del = make([]int, order)
	}
	s.ins, s.del = s.ins[:order], s.del[:order-1]
	if cap(s.buf) < 2*seqLen+2 {
		s.buf = make([]byte, 0, 2*seqLen+2)
	}
}

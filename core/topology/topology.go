// core/topology/topology.go
// Package topology lays out the decoder's state graph as a flat index space.
//
// Index 0 is the begin sentinel. It is followed by the 5'UTR state, the start
// profile, three CDS frames, the stop profile, the 3'UTR state and finally the
// insertion ladders (3 × Order rungs) and deletion ladders (3 × (Order-1)).
package topology

import (
	"errors"
	"fmt"
)

// Kind tags a State.
type Kind uint8

const (
	Begin Kind = iota
	UTR5
	Start
	CDS
	Stop
	UTR3
	Ins
	Del
)

var kindNames = [...]string{"Begin", "UTR5", "Start", "CDS", "Stop", "UTR3", "Ins", "Del"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// State is one node of the decoder graph. Frame is meaningful for CDS, Ins
// and Del; Pos is the profile position for Start and Stop and the ladder rung
// for Ins and Del.
type State struct {
	Kind  Kind
	Frame int
	Pos   int
}

func (s State) String() string {
	switch s.Kind {
	case Start, Stop:
		return fmt.Sprintf("%s(%d)", s.Kind, s.Pos)
	case CDS:
		return fmt.Sprintf("CDS(%d)", s.Frame)
	case Ins, Del:
		return fmt.Sprintf("%s(%d,%d)", s.Kind, s.Frame, s.Pos)
	}
	return s.Kind.String()
}

var ErrParams = errors.New("invalid topology parameters")

// Params fully determine a Topology.
type Params struct {
	Order       int // coding context order k
	StartFrames int
	StartOffset int // 1-based start-profile position of the first coding base
	StopFrames  int
	StopOffset  int // number of stop-profile positions that are coding
}

// Validate checks that the coding span of the start and stop profiles lines
// up with the CDS frames.
func (p Params) Validate() error {
	switch {
	case p.Order < 2:
		return fmt.Errorf("%w: order %d < 2", ErrParams, p.Order)
	case p.StartFrames < 1 || p.StopFrames < 1:
		return fmt.Errorf("%w: profiles need at least one position", ErrParams)
	case p.StartOffset < 1 || p.StartOffset > p.StartFrames:
		return fmt.Errorf("%w: start offset %d outside 1..%d", ErrParams, p.StartOffset, p.StartFrames)
	case p.StopOffset < 0 || p.StopOffset > p.StopFrames:
		return fmt.Errorf("%w: stop offset %d outside 0..%d", ErrParams, p.StopOffset, p.StopFrames)
	case (p.StartFrames-p.StartOffset+1)%3 != 0:
		return fmt.Errorf("%w: %d coding start positions is not a whole number of codons",
			ErrParams, p.StartFrames-p.StartOffset+1)
	case p.StopOffset%3 != 0:
		return fmt.Errorf("%w: stop offset %d is not a whole number of codons", ErrParams, p.StopOffset)
	}
	return nil
}

// Topology is read-only once built and safe for concurrent use.
type Topology struct {
	p Params

	start, cds, stop, utr3 int
	insAfter, delAfter     [3]int
	insNext, delNext       [3]int
	n                      int

	frame  []int8 // -1 when the state carries no frame
	coding []bool
}

// Build derives the layout for p.
func Build(p Params) (*Topology, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	k := p.Order
	t := &Topology{p: p}
	t.start = 2
	t.cds = t.start + p.StartFrames
	t.stop = t.cds + 3
	t.utr3 = t.stop + p.StopFrames
	for f := 0; f < 3; f++ {
		t.insAfter[f] = t.utr3 + f*k + 1
		t.delAfter[f] = t.utr3 + (f+3)*k - f + 1
	}
	for f := 0; f < 3; f++ {
		for f1 := 0; f1 < 3; f1++ {
			if (f1+k)%3 == f {
				t.insNext[f] = t.insAfter[f1] + k - 1
			}
			if (f1+k+1)%3 == f {
				t.delNext[f] = t.delAfter[f1] + k - 2
			}
		}
	}
	t.n = t.delAfter[2] + k - 1

	t.frame = make([]int8, t.n)
	t.coding = make([]bool, t.n)
	for i := 0; i < t.n; i++ {
		f, ok := t.computeFrame(i)
		t.frame[i] = -1
		if ok {
			t.frame[i] = int8(f)
		}
		t.coding[i] = t.computeCoding(i)
	}
	return t, nil
}

// MustBuild is Build for parameters known to be valid.
func MustBuild(p Params) *Topology {
	t, err := Build(p)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Topology) Params() Params    { return t.p }
func (t *Topology) NumStates() int    { return t.n }
func (t *Topology) Order() int        { return t.p.Order }
func (t *Topology) UTR5() int         { return 1 }
func (t *Topology) UTR3() int         { return t.utr3 }
func (t *Topology) StartAt(j int) int { return t.start + j }
func (t *Topology) CDSAt(f int) int   { return t.cds + f }
func (t *Topology) StopAt(j int) int  { return t.stop + j }

// InsAt is rung r of the insertion ladder leaving CDS frame f.
func (t *Topology) InsAt(f, r int) int { return t.insAfter[f] + r }

// DelAt is rung r of the deletion ladder leaving CDS frame f.
func (t *Topology) DelAt(f, r int) int { return t.delAfter[f] + r }

// InsNext is the last insertion rung that feeds CDS frame f.
func (t *Topology) InsNext(f int) int { return t.insNext[f] }

// DelNext is the last deletion rung that feeds CDS frame f.
func (t *Topology) DelNext(f int) int { return t.delNext[f] }

// Index maps a State to its flat index, or -1 if s is not part of t.
func (t *Topology) Index(s State) int {
	k := t.p.Order
	inFrame := s.Frame >= 0 && s.Frame < 3
	switch s.Kind {
	case Begin:
		return 0
	case UTR5:
		return 1
	case Start:
		if s.Pos >= 0 && s.Pos < t.p.StartFrames {
			return t.start + s.Pos
		}
	case CDS:
		if inFrame {
			return t.cds + s.Frame
		}
	case Stop:
		if s.Pos >= 0 && s.Pos < t.p.StopFrames {
			return t.stop + s.Pos
		}
	case UTR3:
		return t.utr3
	case Ins:
		if inFrame && s.Pos >= 0 && s.Pos < k {
			return t.insAfter[s.Frame] + s.Pos
		}
	case Del:
		if inFrame && s.Pos >= 0 && s.Pos < k-1 {
			return t.delAfter[s.Frame] + s.Pos
		}
	}
	return -1
}

// State is the inverse of Index. It panics if i is out of range.
func (t *Topology) State(i int) State {
	switch {
	case i < 0 || i >= t.n:
		panic(fmt.Sprintf("topology: state index %d out of range [0,%d)", i, t.n))
	case i == 0:
		return State{Kind: Begin}
	case i == 1:
		return State{Kind: UTR5}
	case i < t.cds:
		return State{Kind: Start, Pos: i - t.start}
	case i < t.stop:
		return State{Kind: CDS, Frame: i - t.cds}
	case i < t.utr3:
		return State{Kind: Stop, Pos: i - t.stop}
	case i == t.utr3:
		return State{Kind: UTR3}
	case i < t.delAfter[0]:
		off := i - t.insAfter[0]
		return State{Kind: Ins, Frame: off / t.p.Order, Pos: off % t.p.Order}
	}
	off := i - t.delAfter[0]
	return State{Kind: Del, Frame: off / (t.p.Order - 1), Pos: off % (t.p.Order - 1)}
}

// FrameOf returns the codon position emitted by state i, if it has one.
func (t *Topology) FrameOf(i int) (int, bool) {
	if i < 0 || i >= t.n || t.frame[i] < 0 {
		return 0, false
	}
	return int(t.frame[i]), true
}

// IsCoding reports whether state i lies in the coding span: start-profile
// positions from the start offset on, the CDS frames, stop-profile positions
// before the stop offset and every ladder rung.
func (t *Topology) IsCoding(i int) bool {
	return i >= 0 && i < t.n && t.coding[i]
}

// chain is the position of i along the start/CDS/stop chain, with the 5'UTR
// at -1.
func (t *Topology) chain(i int) int { return i - t.start }

func (t *Topology) computeFrame(i int) (int, bool) {
	s := t.State(i)
	switch s.Kind {
	case Begin:
		return 0, false
	case Ins:
		if s.Pos == 0 {
			return 0, false
		}
		return (s.Frame + s.Pos) % 3, true
	case Del:
		return (s.Frame + s.Pos + 2) % 3, true
	}
	p := t.chain(i)
	d := p - t.p.StartOffset + 1
	if d < 0 || p >= t.p.StartFrames+3+t.p.StopOffset {
		return 0, false
	}
	return d % 3, true
}

func (t *Topology) computeCoding(i int) bool {
	if i == 0 {
		return false
	}
	if i >= t.insAfter[0] {
		return true
	}
	p := t.chain(i)
	return p >= t.p.StartOffset-1 && p <= t.p.StartFrames+3+t.p.StopOffset-1
}

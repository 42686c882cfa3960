// core/decoder/scanner.go
package decoder

import (
	"fmt"

	"estscan-core/matrix"
	"estscan-core/seq"
	"estscan-core/topology"
)

// Report is the outcome of scanning one sequence on one or both strands.
type Report struct {
	GC       float64
	Selected matrix.Selection
	Segments []Segment // forward strand first, each strand last run first
	MaxScore int32     // best run score over both strands, or NoScore
}

// Best returns the first reported segment scoring MaxScore.
func (r Report) Best() (Segment, bool) {
	for _, s := range r.Segments {
		if s.Score == r.MaxScore {
			return s, true
		}
	}
	return Segment{}, false
}

// Scanner runs the decoder over sequences with a fixed matrix set. It keeps
// scratch tables and topologies between calls and is not safe for
// concurrent use; give each goroutine its own Scanner.
type Scanner struct {
	Matrices     []*matrix.Matrix
	Penalties    Penalties
	MinLen       int
	SingleStrand bool
	// Guard, when set, is consulted before each decode with the table
	// dimensions; a non-nil error aborts the scan.
	Guard func(seqLen, states int) error

	scratch Scratch
	rc      []byte
	topos   map[topology.Params]*topology.Topology
}

// NewScanner returns a Scanner scanning both strands.
func NewScanner(ms []*matrix.Matrix, pen Penalties, minLen int) *Scanner {
	return &Scanner{Matrices: ms, Penalties: pen, MinLen: minLen}
}

// Scan decodes s, then its reverse complement unless SingleStrand is set.
// s must be cleaned and is not modified. A sequence whose GC content no
// matrix covers fails with matrix.ErrNoMatrix.
func (sc *Scanner) Scan(s []byte) (Report, error) {
	if len(s) == 0 {
		return Report{}, ErrEmptySequence
	}
	sel, gc, err := matrix.SelectFor(s, sc.Matrices)
	if err != nil {
		return Report{GC: gc}, err
	}
	topo, err := sc.topology(sel)
	if err != nil {
		return Report{GC: gc}, err
	}
	rep := Report{GC: gc, Selected: sel, MaxScore: NoScore}

	if err := sc.pass(s, topo, sel, false, &rep); err != nil {
		return rep, err
	}
	if sc.SingleStrand {
		return rep, nil
	}
	sc.rc = append(sc.rc[:0], s...)
	seq.RevCompInPlace(sc.rc)
	err = sc.pass(sc.rc, topo, sel, true, &rep)
	return rep, err
}

// Cells reports the size of the scratch tables, for diagnostics.
func (sc *Scanner) Cells() int { return sc.scratch.Cells() }

func (sc *Scanner) pass(s []byte, topo *topology.Topology, sel matrix.Selection, reverse bool, rep *Report) error {
	if sc.Guard != nil {
		if err := sc.Guard(len(s), topo.NumStates()); err != nil {
			return err
		}
	}
	res, err := Decode(s, topo, sel, sc.Penalties, &sc.scratch)
	if err != nil {
		return err
	}
	segs, best := Reconstruct(s, res, &sc.scratch, sc.MinLen, reverse)
	rep.Segments = append(rep.Segments, segs...)
	if best > rep.MaxScore {
		rep.MaxScore = best
	}
	return nil
}

func (sc *Scanner) topology(sel matrix.Selection) (*topology.Topology, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	p := ParamsFor(sel)
	if t, ok := sc.topos[p]; ok {
		return t, nil
	}
	t, err := topology.Build(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncompatible, err)
	}
	if sc.topos == nil {
		sc.topos = make(map[topology.Params]*topology.Topology)
	}
	sc.topos[p] = t
	return t, nil
}

// core/decoder/viterbi.go
package decoder

import (
	"errors"
	"fmt"
	"math"

	"estscan-core/matrix"
	"estscan-core/seq"
	"estscan-core/topology"
)

var (
	ErrEmptySequence = errors.New("empty sequence")
	// ErrIncompatible is matrix.ErrIncompatible, re-exported for callers
	// that only see the decoder.
	ErrIncompatible = matrix.ErrIncompatible
)

// negInf marks unreachable cells; half of MinInt32 leaves room for a few
// additions without wrapping.
const negInf = math.MinInt32 / 2

// Result is a filled table ready for Reconstruct.
type Result struct {
	Topology  *topology.Topology
	Penalties Penalties
	Len       int   // sequence length
	Best      int   // state holding the best terminal score
	Score     int32 // best terminal score
}

// ParamsFor derives the topology parameters implied by a selection.
func ParamsFor(sel matrix.Selection) topology.Params {
	return topology.Params{
		Order:       sel.Coding.Order,
		StartFrames: sel.Start.Frames,
		StartOffset: sel.Start.Offset,
		StopFrames:  sel.Stop.Frames,
		StopOffset:  sel.Stop.Offset,
	}
}

// Decode fills sc with the Viterbi score and traceback tables of s under the
// selected matrices. s is expected cleaned (upper-case letters); bases other
// than A, C, G and T score as N. Ties keep the first candidate considered.
func Decode(s []byte, topo *topology.Topology, sel matrix.Selection, pen Penalties, sc *Scratch) (Result, error) {
	if len(s) == 0 {
		return Result{}, ErrEmptySequence
	}
	if err := sel.Validate(); err != nil {
		return Result{}, err
	}
	if want := ParamsFor(sel); topo.Params() != want {
		return Result{}, fmt.Errorf("%w: topology %+v built for other matrices (want %+v)", ErrIncompatible, topo.Params(), want)
	}

	var (
		k     = topo.Order()
		n     = topo.NumStates()
		L     = len(s)
		size  = sel.Coding.TableSize()
		C     = sel.Coding.Tables
		U     = sel.Untranslated.Tables[0]
		S     = sel.Start.Tables
		St    = sel.Stop.Tables
		sf    = sel.Start.Frames
		stf   = sel.Stop.Frames
		utr5  = topo.UTR5()
		utr3  = topo.UTR3()
		start = topo.StartAt(0)
		cds   = topo.CDSAt(0)
		stop  = topo.StopAt(0)
	)
	sc.reserve(L*n, k, L)
	V, tr := sc.v, sc.tr
	ins, del := sc.ins, sc.del

	// every context starts out as all N
	tindex := size - 1
	for i := range ins {
		ins[i] = tindex
	}
	for i := range del {
		del[i] = tindex
	}

	code := seq.Code(s[0])
	tindex = (5*tindex + code) % size
	col, ctr := V[:n], tr[:n]
	col[0] = negInf
	col[utr5] = pen.StartUTR5 + U[tindex]
	for f := 0; f < sf; f++ {
		col[start+f] = pen.Jump + S[f][code]
	}
	for f := 0; f < 3; f++ {
		col[cds+f] = pen.StartCDS + C[f][tindex]
	}
	for f := 0; f < stf; f++ {
		col[stop+f] = pen.Jump + St[f][code]
	}
	col[utr3] = pen.StartUTR3 + U[tindex]
	for i := utr3 + 1; i < n; i++ {
		col[i] = negInf
	}
	for i := range ctr {
		ctr[i] = 0
	}

	for p := 1; p < L; p++ {
		prev := V[(p-1)*n : p*n]
		col, ctr = V[p*n:(p+1)*n], tr[p*n:(p+1)*n]

		code = seq.Code(s[p])
		for i := k - 1; i > 0; i-- {
			ins[i] = (5*ins[i-1] + code) % size
		}
		for i := k - 2; i > 0; i-- {
			del[i] = (5*del[i-1] + code) % size
		}
		ins[0] = tindex
		del[0] = (25*tindex + 20 + code) % size
		tindex = (5*tindex + code) % size

		col[0], ctr[0] = negInf, 0

		col[utr5], ctr[utr5] = prev[utr5]+U[tindex], int32(utr5)

		col[start], ctr[start] = prev[utr5]+pen.UTR5CDS+S[0][code], int32(utr5)
		for f := 1; f < sf; f++ {
			col[start+f], ctr[start+f] = prev[start+f-1]+S[f][code], int32(start+f-1)
		}

		// CDS: frame 0 is also reachable from the end of the start profile
		// and, at jump cost, straight from the 5'UTR.
		bp, bs := cds-1, prev[cds-1]
		bp, bs = pick(prev, utr5, pen.Jump, bp, bs)
		bp, bs = pick(prev, cds+2, 0, bp, bs)
		bp, bs = pick(prev, topo.InsNext(0), 0, bp, bs)
		bp, bs = pick(prev, topo.DelNext(0), 0, bp, bs)
		col[cds], ctr[cds] = bs+C[0][tindex], int32(bp)
		for f := 1; f < 3; f++ {
			bp, bs = cds+f-1, prev[cds+f-1]
			bp, bs = pick(prev, topo.InsNext(f), 0, bp, bs)
			bp, bs = pick(prev, topo.DelNext(f), 0, bp, bs)
			col[cds+f], ctr[cds+f] = bs+C[f][tindex], int32(bp)
		}

		bp, bs = -1, math.MinInt32
		for j := sel.Start.Offset + 2; j < sf; j += 3 {
			bp, bs = pick(prev, start+j, pen.Jump, bp, bs)
		}
		for r := 0; r < k; r++ {
			bp, bs = pick(prev, topo.InsAt(mod3(14-r), r), pen.Jump, bp, bs)
		}
		for r := 0; r < k-1; r++ {
			bp, bs = pick(prev, topo.DelAt(mod3(15-r), r), pen.Jump, bp, bs)
		}
		bp, bs = pick(prev, cds+2, pen.CDSUTR3, bp, bs)
		col[stop], ctr[stop] = bs+St[0][code], int32(bp)
		for f := 1; f < stf; f++ {
			col[stop+f], ctr[stop+f] = prev[stop+f-1]+St[f][code], int32(stop+f-1)
		}

		bp, bs = -1, math.MinInt32
		bp, bs = pick(prev, utr3-1, 0, bp, bs)
		bp, bs = pick(prev, utr3, 0, bp, bs)
		bp, bs = pick(prev, cds+2, pen.Jump, bp, bs)
		col[utr3], ctr[utr3] = bs+U[tindex], int32(bp)

		for f := 0; f < 3; f++ {
			r0 := topo.InsAt(f, 0)
			col[r0], ctr[r0] = prev[cds+f]+pen.Ins, int32(cds+f)
			for i := 1; i < k; i++ {
				col[r0+i], ctr[r0+i] = prev[r0+i-1]+C[(i+f)%3][ins[i]], int32(r0+i-1)
			}
		}
		for f := 0; f < 3; f++ {
			r0 := topo.DelAt(f, 0)
			col[r0], ctr[r0] = prev[cds+f]+pen.Del+C[(f+2)%3][del[0]], int32(cds+f)
			for i := 1; i < k-1; i++ {
				col[r0+i], ctr[r0+i] = prev[r0+i-1]+C[(i+f+2)%3][del[i]], int32(r0+i-1)
			}
		}
	}

	last := V[(L-1)*n : L*n]
	bp, bs := utr5, last[utr5]+pen.UTR5End
	for f := 0; f < sf; f++ {
		bp, bs = pick(last, start+f, pen.Jump, bp, bs)
	}
	for f := 0; f < 3; f++ {
		bp, bs = pick(last, cds+f, pen.CDSEnd, bp, bs)
		for r := 0; r < k; r++ {
			bp, bs = pick(last, topo.InsAt(f, r), pen.CDSEnd, bp, bs)
		}
		for r := 0; r < k-1; r++ {
			bp, bs = pick(last, topo.DelAt(f, r), pen.CDSEnd, bp, bs)
		}
	}
	for f := 0; f < stf; f++ {
		bp, bs = pick(last, stop+f, pen.Jump, bp, bs)
	}
	bp, bs = pick(last, utr3, pen.UTR3End, bp, bs)

	return Result{Topology: topo, Penalties: pen, Len: L, Best: bp, Score: bs}, nil
}

// pick replaces (bp, bs) with state i when its score plus add is strictly
// better.
func pick(col []int32, i int, add int32, bp int, bs int32) (int, int32) {
	if v := col[i] + add; v > bs {
		return i, v
	}
	return bp, bs
}

func mod3(x int) int { return ((x % 3) + 3) % 3 }

// core/decoder/traceback.go
package decoder

import (
	"math"

	"estscan-core/topology"
)

// NoScore is the running maximum before any coding run has been seen.
const NoScore int32 = math.MinInt32

// Segment is one reported coding region. Start and Stop are 0-based and
// inclusive, relative to the strand that was decoded. Seq holds the retained
// bases upper-case, inserted bases lower-case and X for deleted bases and
// for the padding that completes the first and last codon.
type Segment struct {
	Score   int32
	Start   int
	Stop    int
	Reverse bool
	Seq     string
}

// Len is the number of sequence positions covered.
func (s Segment) Len() int { return s.Stop - s.Start + 1 }

// Reconstruct walks the traceback of res from its best final state back to
// the begin sentinel and returns every maximal coding run with
// Stop-Start >= minLen, last run first. best is the highest run score seen,
// short runs included, or NoScore if there was none.
func Reconstruct(s []byte, res Result, sc *Scratch, minLen int, reverse bool) (segs []Segment, best int32) {
	best = NoScore
	topo := res.Topology
	if topo == nil || res.Len == 0 {
		return nil, best
	}
	var (
		n     = topo.NumStates()
		V, tr = sc.v, sc.tr
		cds2  = topo.CDSAt(2)
		stop0 = topo.StopAt(0)
		cur   = res.Best
		p     = res.Len - 1
		buf   = sc.buf[:0]
		back  = func() { cur = int(tr[p*n+cur]); p-- }
		pad   = []byte("XX")
	)
	for cur != 0 {
		for cur != 0 && !topo.IsCoding(cur) {
			back()
		}
		if cur == 0 {
			break
		}

		score := V[p*n+cur]
		stop := p
		buf = buf[:0]
		// the run is collected back to front
		if f, ok := lastCounted(topo, cur); ok && f < 2 {
			buf = append(buf, pad[f:]...)
		}
		old := -1
		for topo.IsCoding(cur) {
			b := upper(s[p])
			switch st := topo.State(cur); {
			case st.Kind == topology.Ins && st.Pos == 0:
				buf = append(buf, b|0x20)
			case st.Kind == topology.Del && st.Pos == 0:
				buf = append(buf, b, 'X')
			default:
				buf = append(buf, b)
			}
			// the stop profile was entered at CDS->3'UTR cost, which is not
			// part of the coding score
			if cur == cds2 && old == stop0 {
				score -= res.Penalties.CDSUTR3
			}
			old = cur
			back()
		}
		start := p + 1
		if p >= 0 {
			score -= V[p*n+cur]
		}
		if score > best {
			best = score
		}
		if f, ok := topo.FrameOf(old); ok && f > 0 {
			buf = append(buf, pad[:f]...)
		}
		if stop-start >= minLen {
			segs = append(segs, Segment{
				Score:   score,
				Start:   start,
				Stop:    stop,
				Reverse: reverse,
				Seq:     reversed(buf),
			})
		}
	}
	sc.buf = buf
	return segs, best
}

// lastCounted is the codon position of the last retained base of a run
// ending in state i. The first insertion rung emits a discarded base right
// after CDS frame f, so the codon is completed from f.
func lastCounted(topo *topology.Topology, i int) (int, bool) {
	if st := topo.State(i); st.Kind == topology.Ins && st.Pos == 0 {
		return st.Frame, true
	}
	return topo.FrameOf(i)
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 0x20
	}
	return b
}

func reversed(b []byte) string {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return string(out)
}

// core/decoder/penalties.go
package decoder

// Penalties are the fixed transition costs of the decoder graph. All values
// are added to scores, so penalties are negative.
type Penalties struct {
	StartUTR5 int32 // begin -> 5'UTR
	StartCDS  int32 // begin -> CDS
	StartUTR3 int32 // begin -> 3'UTR
	UTR5CDS   int32 // 5'UTR -> start profile
	UTR5End   int32 // 5'UTR -> end
	CDSUTR3   int32 // CDS -> stop profile
	CDSEnd    int32 // CDS -> end
	UTR3End   int32 // 3'UTR -> end

	Ins int32 // entering an insertion ladder
	Del int32 // entering a deletion ladder

	// Jump is charged on structural shortcuts: entering or leaving through a
	// profile, 5'UTR straight to CDS, CDS straight to 3'UTR.
	Jump int32
}

// NumTransitions is the length of the list taken by SetTransitions.
const NumTransitions = 8

// Defaults are the classic ESTScan settings. Jump equals the default matrix
// floor.
var Defaults = Penalties{
	StartUTR5: -10,
	StartCDS:  -10,
	StartUTR3: -5,
	UTR5CDS:   -80,
	UTR5End:   -40,
	CDSUTR3:   -80,
	CDSEnd:    -40,
	UTR3End:   -20,
	Ins:       -50,
	Del:       -50,
	Jump:      -100,
}

// Transitions returns the eight transition costs in command-line order:
// start->5'UTR, start->CDS, start->3'UTR, 5'UTR->CDS, 5'UTR->end,
// CDS->3'UTR, CDS->end, 3'UTR->end.
func (p Penalties) Transitions() [NumTransitions]int32 {
	return [NumTransitions]int32{
		p.StartUTR5, p.StartCDS, p.StartUTR3,
		p.UTR5CDS, p.UTR5End,
		p.CDSUTR3, p.CDSEnd,
		p.UTR3End,
	}
}

// SetTransitions is the inverse of Transitions.
func (p *Penalties) SetTransitions(t [NumTransitions]int32) {
	p.StartUTR5, p.StartCDS, p.StartUTR3 = t[0], t[1], t[2]
	p.UTR5CDS, p.UTR5End = t[3], t[4]
	p.CDSUTR3, p.CDSEnd = t[5], t[6]
	p.UTR3End = t[7]
}

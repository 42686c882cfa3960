// core/matrix/select.go
package matrix

import (
	"errors"
	"fmt"

	"estscan-core/seq"
)

// ErrIncompatible is returned when a selection cannot drive the decoder.
var ErrIncompatible = errors.New("incompatible matrix selection")

// Selection holds one matrix per kind, chosen for a given GC content.
type Selection struct {
	Coding       *Matrix
	Untranslated *Matrix
	Start        *Matrix
	Stop         *Matrix
}

// ByKind returns the selected matrix of kind k, or nil.
func (s Selection) ByKind(k Kind) *Matrix {
	switch k {
	case Coding:
		return s.Coding
	case Untranslated:
		return s.Untranslated
	case Start:
		return s.Start
	case Stop:
		return s.Stop
	}
	return nil
}

// Select picks, for each kind, the first matrix in load order whose C+G range
// contains gc. It fails with ErrNoMatrix if any kind has no match; matrices of
// Unknown kind are never picked.
func Select(gc float64, ms []*Matrix) (Selection, error) {
	var picked [NumKinds]*Matrix
	for _, m := range ms {
		if m.Kind == Unknown || picked[m.Kind] != nil || !m.Covers(gc) {
			continue
		}
		picked[m.Kind] = m
	}
	for k, m := range picked {
		if m == nil {
			return Selection{}, fmt.Errorf("%w: no %s matrix for %.2f%% GC", ErrNoMatrix, Kind(k), gc)
		}
	}
	return Selection{Coding: picked[Coding], Untranslated: picked[Untranslated], Start: picked[Start], Stop: picked[Stop]}, nil
}

// Validate checks the four matrices fit together: the untranslated model is
// indexed with the coding context, profiles are indexed by the current base
// only, and the deletion ladder needs a coding order of at least 2.
func (s Selection) Validate() error {
	for k := Kind(0); k < NumKinds; k++ {
		m := s.ByKind(k)
		if m == nil {
			return fmt.Errorf("%w: missing %s matrix", ErrIncompatible, k)
		}
		if m.Kind != k {
			return fmt.Errorf("%w: matrix %s is %s, used as %s", ErrIncompatible, m.Name, m.Kind, k)
		}
	}
	switch {
	case s.Coding.Order < 2:
		return fmt.Errorf("%w: coding order %d < 2", ErrIncompatible, s.Coding.Order)
	case s.Coding.Frames != 3:
		return fmt.Errorf("%w: coding matrix %s has %d frames, want 3", ErrIncompatible, s.Coding.Name, s.Coding.Frames)
	case s.Untranslated.Frames < 1:
		return fmt.Errorf("%w: untranslated matrix %s has no frames", ErrIncompatible, s.Untranslated.Name)
	case s.Untranslated.Order != s.Coding.Order:
		return fmt.Errorf("%w: untranslated order %d != coding order %d", ErrIncompatible, s.Untranslated.Order, s.Coding.Order)
	case s.Start.Order != 1 || s.Stop.Order != 1:
		return fmt.Errorf("%w: start/stop profiles must have order 1", ErrIncompatible)
	}
	return nil
}

// SelectFor selects matrices for the GC content of s and returns that content.
func SelectFor(s []byte, ms []*Matrix) (Selection, float64, error) {
	gc := seq.GCPercent(s)
	sel, err := Select(gc, ms)
	return sel, gc, err
}

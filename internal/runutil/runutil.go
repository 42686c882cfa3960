// internal/runutil/runutil.go
package runutil

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/pbnjay/memory"
)

// ErrTooLarge reports decoder tables that would not fit in memory.
var ErrTooLarge = errors.New("decoder tables exceed physical memory")

// cellBytes is one score plus one traceback entry, int32 each.
const cellBytes = 8

// EffectiveThreads returns n, or the CPU count when n <= 0.
func EffectiveThreads(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// DPBytes is the size of the score and traceback tables for a sequence of
// seqLen bases decoded over states states.
func DPBytes(seqLen, states int) uint64 {
	return uint64(seqLen) * uint64(states) * cellBytes
}

// MemoryLimit returns the machine's physical memory in bytes, 0 if unknown.
func MemoryLimit() uint64 { return memory.TotalMemory() }

// CheckDPMemory fails with ErrTooLarge when the tables for seqLen × states
// need more than limit bytes. limit == 0 disables the check.
func CheckDPMemory(seqLen, states int, limit uint64) error {
	if limit == 0 {
		return nil
	}
	if need := DPBytes(seqLen, states); need > limit {
		return fmt.Errorf("%w: %d bases x %d states needs %s, have %s",
			ErrTooLarge, seqLen, states, humanBytes(need), humanBytes(limit))
	}
	return nil
}

func humanBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// internal/runutil/progress.go
package runutil

import (
	"io"

	"github.com/cheggaaa/pb/v3"
)

const progressTemplate pb.ProgressBarTemplate = `{{string . "prefix"}}{{counters . }} {{speed . "%s rec/s" }} {{etime . }}`

// Progress counts scanned records on a terminal line. A nil *Progress is a
// valid no-op.
type Progress struct {
	bar *pb.ProgressBar
}

// NewProgress starts a record counter writing to w, or returns nil when
// disabled.
func NewProgress(w io.Writer, enabled bool) *Progress {
	if !enabled {
		return nil
	}
	bar := progressTemplate.New(0)
	bar.SetWriter(w)
	bar.Set("prefix", "scanned ")
	bar.Start()
	return &Progress{bar: bar}
}

// Add records n more scanned records.
func (p *Progress) Add(n int) {
	if p == nil {
		return
	}
	p.bar.Add(n)
}

// Count is the number of records seen so far.
func (p *Progress) Count() int64 {
	if p == nil {
		return 0
	}
	return p.bar.Current()
}

// Finish stops the counter and prints its final state.
func (p *Progress) Finish() {
	if p == nil {
		return
	}
	p.bar.Finish()
}

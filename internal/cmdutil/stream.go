// internal/cmdutil/stream.go
package cmdutil

import (
	"context"

	"estscan/internal/common"
	"estscan/internal/pipeline"
)

// Stats summarizes one run.
type Stats struct {
	Records  int // records with a result
	Segments int // segments reported by the decoder, before any score filter
	Skipped  int
}

// RunStream runs the shared pipeline and streams results via send.
// It returns the run statistics and the first error encountered.
func RunStream(
	ctx context.Context,
	cfg pipeline.Config,
	seqFiles []string,
	newScanner func() pipeline.Scanner,
	onSkip func(pipeline.Skip),
	send func(common.Result) error,
) (Stats, error) {
	var st Stats
	err := pipeline.ForEachResult(ctx, cfg, seqFiles, newScanner,
		func(r common.Result) error {
			if err := send(r); err != nil {
				return err
			}
			st.Records++
			st.Segments += len(r.Segments)
			return nil
		},
		func(s pipeline.Skip) {
			st.Skipped++
			if onSkip != nil {
				onSkip(s)
			}
		},
	)
	return st, err
}

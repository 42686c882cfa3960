// pkg/api/results_v1.go
package api

// ResultV1 is the stable JSON/JSONL schema for one scanned sequence.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ResultV1 struct {
	SequenceID string      `json:"sequence_id"`
	Header     string      `json:"header"`
	Length     int         `json:"length"`
	GC         float64     `json:"gc_percent"`
	MaxScore   *int32      `json:"max_score,omitempty"` // absent when no coding run was found
	Segments   []SegmentV1 `json:"segments"`
	SourceFile string      `json:"source_file,omitempty"`
}

// SegmentV1 is one reported coding region. Start and End are 1-based,
// inclusive, on the strand that was decoded.
type SegmentV1 struct {
	Score   int32  `json:"score"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Strand  string `json:"strand"` // "+" | "-"
	Seq     string `json:"seq"`
	Protein string `json:"protein,omitempty"`
}

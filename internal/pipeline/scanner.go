// internal/pipeline/scanner.go
package pipeline

import "estscan-core/decoder"

// Scanner is the minimal capability a worker needs. *decoder.Scanner
// satisfies it; each worker gets its own from the factory.
type Scanner interface {
	Scan(s []byte) (decoder.Report, error)
}

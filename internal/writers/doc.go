// Package writers turns scanned records into serialized outputs.
//
// Design:
//   - Writers run in their own goroutine and are fed through a channel.
//   - Renderers live in internal/output; the decoder stays domain-only.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers

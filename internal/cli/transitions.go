// internal/cli/transitions.go
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"estscan-core/decoder"
)

// transitionsValue parses -T: eight comma-separated integers.
type transitionsValue struct {
	dst *[decoder.NumTransitions]int32
}

func (v transitionsValue) String() string {
	if v.dst == nil {
		return ""
	}
	parts := make([]string, len(v.dst))
	for i, x := range v.dst {
		parts[i] = strconv.Itoa(int(x))
	}
	return strings.Join(parts, ",")
}

func (v transitionsValue) Set(s string) error {
	fields := strings.Split(s, ",")
	if len(fields) != decoder.NumTransitions {
		return fmt.Errorf("want %d comma-separated integers, got %d", decoder.NumTransitions, len(fields))
	}
	var t [decoder.NumTransitions]int32
	for i, f := range fields {
		x, err := strconv.ParseInt(strings.TrimSpace(f), 10, 32)
		if err != nil {
			return fmt.Errorf("transition %d: %w", i+1, err)
		}
		t[i] = int32(x)
	}
	*v.dst = t
	return nil
}

// internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

const mod = "estscan/"

// outer layers that inner packages must never reach
var (
	front = []string{
		mod + "internal/appcore", mod + "internal/app", mod + "internal/appshell",
		mod + "internal/cli", mod + "internal/clibase", mod + "cmd/",
	}
	sinks = []string{mod + "internal/output", mod + "internal/writers"}
)

func join(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "./...")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	bans := map[string][]string{
		mod + "internal/pipeline": join(front, sinks),
		mod + "internal/fasta":    join(front, sinks, []string{mod + "internal/pipeline"}),
		mod + "internal/writers":  join(front, []string{mod + "internal/pipeline"}),
		mod + "internal/output":   join(front, []string{mod + "internal/pipeline", mod + "internal/writers"}),
		mod + "internal/common":   join(front, sinks, []string{mod + "internal/pipeline"}),
		mod + "pkg/api":           {mod + "internal/"},
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(p.ImportPath, mod) {
			continue
		}
		imp := p.ImportPath
		for prefix, forbidden := range bans {
			if imp != prefix && !strings.HasPrefix(imp, prefix+"/") {
				continue
			}
			for _, dep := range p.Imports {
				for _, ban := range forbidden {
					if dep == ban || strings.HasPrefix(dep, strings.TrimSuffix(ban, "/")+"/") {
						violations = append(violations, imp+" → "+dep)
					}
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}

// The decoder core is a separate module and must stay free of the CLI tree.
func TestCoreIsSelfContained(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "estscan-core/...")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		for _, dep := range p.Imports {
			if strings.HasPrefix(dep, mod) {
				t.Errorf("%s imports %s", p.ImportPath, dep)
			}
		}
	}
}

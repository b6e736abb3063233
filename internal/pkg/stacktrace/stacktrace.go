// Package stacktrace trims runtime stack dumps down to this module's frames.
package stacktrace

import "strings"

// InternalPaths returns the "internal/<pkg>/<file>.go:<line>" location of every
// frame in stack that belongs to an internal package, outermost last.
func InternalPaths(stack []byte) []string {
	var paths []string
	for line := range strings.Lines(string(stack)) {
		_, rel, found := strings.Cut(line, "/internal/")
		if !found {
			continue
		}

		loc, _, _ := strings.Cut(strings.TrimSpace(rel), " ")
		if !strings.Contains(loc, ".go:") {
			continue
		}
		paths = append(paths, "internal/"+loc)
	}
	return paths
}

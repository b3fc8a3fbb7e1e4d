// Package stacktrace trims runtime stacks down to the project's own frames.
package stacktrace

import "strings"

// InternalPaths returns the "internal/...go:line" locations found in a raw
// runtime/debug.Stack output, outermost call last.
func InternalPaths(stack []byte) []string {
	var paths []string
	for line := range strings.SplitSeq(string(stack), "\n") {
		line = strings.TrimSpace(line)

		idx := strings.Index(line, "/internal/")
		if idx == -1 || !strings.Contains(line, ".go:") {
			continue
		}

		loc, _, _ := strings.Cut(line[idx+1:], " ")
		paths = append(paths, loc)
	}
	return paths
}

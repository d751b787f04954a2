// Package report collects and emits the Call-Target Reporter: a map from
// source line number to the set of function names discovered at call
// sites on that line, grounded on PointToAnalysis.h's lineFuncList /
// saveResult / printResult (see original_source/Assignment3/src/
// PointToAnalysis.h). Emission is deterministic: ascending line number,
// lexicographic function name within a line, so repeated runs on the same
// module produce byte-identical output (spec.md §8).
package report

import (
	"fmt"
	"sort"
	"strings"
)

// Reporter accumulates (line, function name) pairs recorded by the
// pointer transfer's Call handling and renders them in the CLI's
// "<lineno> : <name1>, <name2>, ..." textual format.
type Reporter struct {
	byLine map[int]map[string]struct{}
}

// NewReporter returns an empty Reporter.
func NewReporter() *Reporter {
	return &Reporter{byLine: make(map[int]map[string]struct{})}
}

// Record adds fnName as a discovered call target on line. Multiple calls
// sharing a line (macro expansion, or several indirect targets at the same
// call site) accumulate into the same set (spec.md §4.4).
func (r *Reporter) Record(line int, fnName string) {
	names, ok := r.byLine[line]
	if !ok {
		names = make(map[string]struct{})
		r.byLine[line] = names
	}
	names[fnName] = struct{}{}
}

// Lines returns every line with at least one recorded target, sorted
// ascending.
func (r *Reporter) Lines() []int {
	lines := make([]int, 0, len(r.byLine))
	for l := range r.byLine {
		lines = append(lines, l)
	}
	sort.Ints(lines)
	return lines
}

// Targets returns the function names recorded for line, sorted
// lexicographically.
func (r *Reporter) Targets(line int) []string {
	names := r.byLine[line]
	out := make([]string, 0, len(names))
	for n := range names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// String renders the full report in the CLI's stable textual format:
// one "<lineno> : <name1>, <name2>, ..." line per recorded source line,
// ascending by line number, names comma-space separated with no trailing
// whitespace (spec.md §6 Output).
func (r *Reporter) String() string {
	var b strings.Builder
	for _, line := range r.Lines() {
		fmt.Fprintf(&b, "%d : %s\n", line, strings.Join(r.Targets(line), ", "))
	}
	return b.String()
}

package pointer

import (
	"ssaflow/internal/dataflow"
	"ssaflow/internal/ir"
	"ssaflow/internal/report"
)

// run computes the forward fixedpoint for fn starting from initval,
// recursing into a fresh analyzer.run for every callee with a body reached
// along the way (via (*analyzer).handleCall). It is the Go counterpart of
// compForwardDataflow(fn, this, &result, initval) — same visitor, same
// Reporter, a new LatticeValue per invocation.
//
// It reports false without analyzing anything when fn is already being
// analyzed somewhere up the current call chain. Direct and indirect
// recursion would otherwise recurse this function — and the nested
// dataflow.RunForward it drives — without bound: every pass over the
// recursive call's own block builds a fresh initval and re-enters run,
// which re-enters the same block, forever (spec.md §4.3's "global guard on
// the per-function worklist iteration count"). The in-progress set bounds
// the recursion to at most one live frame per function reachable from the
// module's call graph, so it always terminates; the call target itself is
// still recorded by handleCall before this guard is even consulted, so a
// self-recursive call's reported target set is unaffected (spec.md §8
// scenario 6).
func (a *analyzer) run(fn *ir.Function, initval *LatticeValue) bool {
	if a.inProgress[fn] {
		return false
	}
	a.inProgress[fn] = true
	defer delete(a.inProgress, fn)
	dataflow.RunForward(fn, initval, a.transfer)
	return true
}

// Analyze runs the points-to analysis over every defined function in prog
// and returns the resolved call targets for every call site reached, direct
// or indirect, keyed by source line. Each defined function is analyzed as its
// own top-level entry (no caller context, no attached ReturnSummary) in
// addition to whatever recursive, argument-bound invocations its callers
// trigger while analyzing call sites — matching a whole-module pass that
// visits every function once and lets Call transfers recurse into callees
// on demand.
func Analyze(prog *ir.Program) *report.Reporter {
	rep := report.NewReporter()
	a := &analyzer{rep: rep, inProgress: map[*ir.Function]bool{}}

	for _, fn := range prog.Functions {
		if fn.Declaration() {
			continue
		}
		a.run(fn, NewLatticeValue())
	}

	return rep
}

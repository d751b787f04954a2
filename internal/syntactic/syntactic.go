// Package syntactic implements the lightweight, non-lattice call-target
// resolver spec.md §9 calls "an optional fast path, not a compatibility
// requirement": a single backward scan per call site that special-cases
// the common patterns a real points-to fixedpoint would also resolve —
// a direct call, a function symbol reaching a pointer through a chain of
// BitCasts, a PHI of function symbols, and a parameter forwarded from every
// call site of the enclosing function — without ever building a lattice or
// iterating to a fixedpoint. It is deliberately less precise than
// internal/pointer: a Load's syntactic back-propagation only looks at
// Stores whose address operand is the very same SSA value (no aliasing
// through a GEP or a second pointer to the same cell), and a parameter is
// resolved only through the direct call sites of the function whose call is
// being resolved — a value forwarded through more than one level of
// parameters is left unresolved. PHI and BitCast chains are followed to any
// depth. Structured the way the
// teacher structures a pass: internal/ir/passes.Pass, so the CLI can
// select it interchangeably with the full analysis (spec.md §9 Open
// Questions; see DESIGN.md for why it is opt-in, not default).
package syntactic

import (
	"ssaflow/internal/intrinsics"
	"ssaflow/internal/ir"
	"ssaflow/internal/report"
)

// Pass is the internal/ir/passes.Pass implementation for the syntactic
// resolver.
type Pass struct {
	Rep *report.Reporter
}

// NewPass returns a Pass that records discovered call targets into rep.
func NewPass(rep *report.Reporter) *Pass {
	return &Pass{Rep: rep}
}

func (p *Pass) Name() string { return "syntactic-call-resolver" }

func (p *Pass) Description() string {
	return "backward syntactic back-propagation of indirect call targets, no fixedpoint"
}

// Run resolves every call site in every defined function of program,
// recording discovered targets into p.Rep. It reports whether any call
// target was recorded.
func (p *Pass) Run(program *ir.Program) bool {
	ctx := &context{paramIndex: map[*ir.Value]int{}}
	for _, fn := range program.Functions {
		for i, param := range fn.Params {
			ctx.paramIndex[param] = i
		}
	}

	found := false
	for _, fn := range program.Functions {
		if fn.Declaration() {
			continue
		}
		ctx.callers = callSitesOf(program, fn)
		for _, b := range fn.Blocks {
			for _, inst := range b.Instructions {
				call, ok := inst.(*ir.Call)
				if !ok {
					continue
				}
				targets := ctx.resolve(call.Callee, map[*ir.Value]bool{})
				for name := range targets {
					if intrinsics.IsIntrinsic(name) {
						continue
					}
					p.Rep.Record(call.DebugLine, name)
					found = true
				}
			}
		}
	}
	return found
}

// context carries the cross-call state a single resolve chain needs: the
// whole-program parameter-index table (so a parameter's position can be
// found without a Value->Function backlink) and the current function's
// call sites (for forwarding through a parameter).
type context struct {
	paramIndex map[*ir.Value]int
	callers    []*ir.Call
}

// callSitesOf finds, for fn, every Call instruction anywhere in program
// that invokes fn directly — used to resolve a parameter forwarded from
// every caller (spec.md testable property: "a call through a parameter of
// an outer function reports the union of targets passed at every call
// site of the outer function").
func callSitesOf(program *ir.Program, fn *ir.Function) []*ir.Call {
	var sites []*ir.Call
	for _, caller := range program.Functions {
		for _, b := range caller.Blocks {
			for _, inst := range b.Instructions {
				call, ok := inst.(*ir.Call)
				if !ok || call.Callee == nil || call.Callee.Kind != ir.KindFunction {
					continue
				}
				if call.Callee.Func == fn {
					sites = append(sites, call)
				}
			}
		}
	}
	return sites
}

// resolve syntactically back-propagates v to the set of function names it
// may hold. visited guards against infinite recursion through a PHI cycle.
func (ctx *context) resolve(v *ir.Value, visited map[*ir.Value]bool) map[string]bool {
	out := map[string]bool{}
	if v == nil || visited[v] {
		return out
	}
	visited[v] = true

	if v.Kind == ir.KindFunction {
		out[v.Func.Name] = true
		return out
	}

	if v.Kind == ir.KindParam {
		idx, ok := ctx.paramIndex[v]
		if !ok {
			return out
		}
		for _, call := range ctx.callers {
			if idx >= len(call.Args) {
				continue
			}
			// v must be a parameter of the function these call sites invoke;
			// a parameter of any other function is left unresolved.
			if owner := call.Callee.Func; idx >= len(owner.Params) || owner.Params[idx] != v {
				continue
			}
			for name := range ctx.resolve(call.Args[idx], visited) {
				out[name] = true
			}
		}
		return out
	}

	switch def := v.Def.(type) {
	case *ir.BitCast:
		return ctx.resolve(def.Src, visited)
	case *ir.Phi:
		for _, incoming := range def.Incoming {
			for name := range ctx.resolve(incoming, visited) {
				out[name] = true
			}
		}
		return out
	case *ir.Load:
		for name := range ctx.resolveLoad(def) {
			out[name] = true
		}
		return out
	}

	return out
}

// resolveLoad finds every Store in def's own function whose address
// operand is exactly def.Addr (identity comparison, no alias reasoning)
// and unions the syntactic resolution of each stored value.
func (ctx *context) resolveLoad(def *ir.Load) map[string]bool {
	out := map[string]bool{}
	fn := def.Block().Func
	for _, b := range fn.Blocks {
		for _, inst := range b.Instructions {
			store, ok := inst.(*ir.Store)
			if !ok || store.Addr != def.Addr {
				continue
			}
			for name := range ctx.resolve(store.Val, map[*ir.Value]bool{}) {
				out[name] = true
			}
		}
	}
	return out
}

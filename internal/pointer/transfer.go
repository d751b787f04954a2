package pointer

import (
	"ssaflow/internal/intrinsics"
	"ssaflow/internal/ir"
	"ssaflow/internal/report"
)

// analyzer closes over the single Reporter shared by the whole analysis
// run — a top-level function and every callee it recurses into during that
// run record call targets into the same Reporter, mirroring the original
// visitor's line->callee-names table living on the visitor instance that
// every nested compForwardDataflow call reused. inProgress is the
// recursion guard described on (*analyzer).run: the set of functions
// currently being analyzed somewhere up the active call chain.
type analyzer struct {
	rep        *report.Reporter
	inProgress map[*ir.Function]bool
}

// transfer is the per-instruction dataflow function: compDFVal's switch on
// the instruction's concrete type.
func (a *analyzer) transfer(inst ir.Instruction, val *LatticeValue) {
	switch i := inst.(type) {
	case *ir.Alloca:
		val.PointsTo.set(i.Result_, singleton(i.Result_))
	case *ir.Load:
		ptrs := val.pointTo(i.Addr)
		val.PointsTo.set(i.Result_, val.alias(ptrs))
	case *ir.Store:
		ptrs := val.pointTo(i.Addr)
		vals := val.pointTo(i.Val)
		val.aliasExtend(ptrs, vals)
	case *ir.GetElementPtr:
		val.PointsTo.set(i.Result_, val.pointTo(i.Addr))
	case *ir.BitCast:
		val.PointsTo.set(i.Result_, val.pointTo(i.Src))
	case *ir.Phi:
		val.PointsTo.clear(i.Result_)
		for _, incoming := range i.Incoming {
			val.PointsTo.union(i.Result_, val.pointTo(incoming))
		}
	case *ir.MemCpy:
		a.handleMemCpy(i, val)
	case *ir.MemSet:
		a.handleMemSet(i, val)
	case *ir.Call:
		a.handleCall(i, val)
	case *ir.Return:
		a.handleReturn(i, val)
	case *ir.DebugIntrinsic, *ir.Jump, *ir.Branch, *ir.Unsupported:
		// identity: no points-to effect
	}
}

// resolveBitCastOperand recovers the pre-cast operand of a BitCast-typed
// Value, or reports !ok if v was not itself produced by a BitCast — the Go
// analogue of dyn_cast<BitCastInst> on a cast-stripped MemCpy/MemSet
// argument.
func resolveBitCastOperand(v *ir.Value) (*ir.Value, bool) {
	if v == nil || v.Def == nil {
		return nil, false
	}
	bc, ok := v.Def.(*ir.BitCast)
	if !ok {
		return nil, false
	}
	return bc.Src, true
}

func (a *analyzer) handleMemCpy(i *ir.MemCpy, val *LatticeValue) {
	dst0, ok := resolveBitCastOperand(i.Dst)
	if !ok {
		return
	}
	src0, ok := resolveBitCastOperand(i.Src)
	if !ok {
		return
	}
	dests := val.pointTo(dst0)
	srcs := val.pointTo(src0)
	vals := val.alias(srcs)
	val.aliasExtend(dests, vals)
}

// handleMemSet treats the destination as cleared. This is imprecise when
// the destination resolves to more than one cell (aliasClearIfSingleton
// then leaves the existing contents untouched instead of narrowing them),
// a limitation carried over unchanged from the analysis this was built on.
func (a *analyzer) handleMemSet(i *ir.MemSet, val *LatticeValue) {
	dst0, ok := resolveBitCastOperand(i.Dst)
	if !ok {
		return
	}
	dests := val.pointTo(dst0)
	val.aliasClearIfSingleton(dests)
}

func (a *analyzer) handleReturn(i *ir.Return, val *LatticeValue) {
	if val.Ret == nil {
		return
	}
	val.Ret.Values.addAll(val.pointTo(i.Val))
	val.Ret.Alias.extend(val.Alias)
}

func (a *analyzer) handleCall(call *ir.Call, val *LatticeValue) {
	callees := val.pointTo(call.Callee)

	for callee := range callees {
		fn := functionOf(callee)
		if fn == nil || intrinsics.IsIntrinsic(fn.Name) {
			continue
		}
		if fn.Declaration() && call.Result_ != nil {
			val.PointsTo.set(call.Result_, singleton(call.Result_))
		}
		a.rep.Record(call.DebugLine, fn.Name)
	}

	argPointsTo := make([]ValueSet, len(call.Args))
	for idx, arg := range call.Args {
		argPointsTo[idx] = val.pointTo(arg)
	}

	resolved := false
	calleeAlias := newValueMapSets()

	for callee := range callees {
		fn := functionOf(callee)
		if fn == nil || intrinsics.IsIntrinsic(fn.Name) || fn.Declaration() {
			continue
		}

		initval := &LatticeValue{
			PointsTo: newValueMapSets(),
			Alias:    val.Alias.clone(),
			Ret:      newReturnSummary(),
		}
		for idx, param := range fn.Params {
			if idx < len(argPointsTo) {
				initval.PointsTo.set(param, argPointsTo[idx])
			}
		}

		if !a.run(fn, initval) {
			// fn is already being analyzed up this call chain (direct or
			// mutual recursion through this call site): contribute nothing
			// from this edge rather than recurse without bound. The call
			// target itself was already recorded above, regardless.
			continue
		}

		if call.Result_ != nil {
			val.PointsTo.union(call.Result_, initval.Ret.Values)
		}
		calleeAlias.extend(initval.Ret.Alias)
		resolved = true
	}

	if resolved {
		val.Alias = calleeAlias
	}
}

func functionOf(v *ir.Value) *ir.Function {
	if v == nil || v.Kind != ir.KindFunction {
		return nil
	}
	return v.Func
}

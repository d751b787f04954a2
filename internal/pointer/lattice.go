// Package pointer implements the flow-sensitive, context-sensitive
// points-to analysis the indirect-call resolver is built on. The lattice,
// transfer, and call-target bookkeeping are grounded closely on the
// PointToInfo/PointToVisitor pair this analysis was distilled from
// (see original_source/Assignment3/src/PointToAnalysis.h): a PointsTo map
// from Value to the Cells it may hold, and an Alias map from Cell to the
// Values that may be stored through it. Both are merged by union at
// control-flow joins; a store through a single non-function cell replaces
// that cell's contents (strong update).
package pointer

import "ssaflow/internal/ir"

// ValueSet is a set of Values, used both for points-to sets (what a Value
// may point to) and for the operands of a multi-way instruction.
type ValueSet map[*ir.Value]struct{}

func newValueSet() ValueSet { return ValueSet{} }

func singleton(v *ir.Value) ValueSet {
	if v == nil {
		return newValueSet()
	}
	return ValueSet{v: {}}
}

func (s ValueSet) add(v *ir.Value) { s[v] = struct{}{} }

func (s ValueSet) addAll(other ValueSet) bool {
	changed := false
	for v := range other {
		if _, ok := s[v]; !ok {
			s[v] = struct{}{}
			changed = true
		}
	}
	return changed
}

func (s ValueSet) clone() ValueSet {
	cp := make(ValueSet, len(s))
	for v := range s {
		cp[v] = struct{}{}
	}
	return cp
}

func (s ValueSet) equal(other ValueSet) bool {
	if len(s) != len(other) {
		return false
	}
	for v := range s {
		if _, ok := other[v]; !ok {
			return false
		}
	}
	return true
}

// Sorted returns the set's members ordered by (Name, ID) for deterministic
// iteration, e.g. when printing.
func (s ValueSet) Sorted() []*ir.Value {
	out := make([]*ir.Value, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && less(out[j], out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func less(a, b *ir.Value) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.ID < b.ID
}

// valueMapSets maps a Value to the ValueSet associated with it — the shape
// shared by both PointsTo and Alias.
type valueMapSets map[*ir.Value]ValueSet

func newValueMapSets() valueMapSets { return valueMapSets{} }

func (m valueMapSets) get(key *ir.Value) ValueSet { return m[key] }

// union merges vals into m[key] (weak update: grows, never replaces).
func (m valueMapSets) union(key *ir.Value, vals ValueSet) bool {
	cur, ok := m[key]
	if !ok {
		cur = newValueSet()
		m[key] = cur
	}
	return cur.addAll(vals)
}

// set replaces m[key] outright (sound only when key is defined exactly once,
// as every non-Phi SSA result is).
func (m valueMapSets) set(key *ir.Value, vals ValueSet) { m[key] = vals.clone() }

func (m valueMapSets) clear(key *ir.Value) { m[key] = newValueSet() }

func (m valueMapSets) clone() valueMapSets {
	cp := make(valueMapSets, len(m))
	for k, v := range m {
		cp[k] = v.clone()
	}
	return cp
}

func (m valueMapSets) extend(other valueMapSets) bool {
	changed := false
	for k, v := range other {
		if m.union(k, v) {
			changed = true
		}
	}
	return changed
}

func (m valueMapSets) equal(other valueMapSets) bool {
	if len(m) != len(other) {
		return false
	}
	for k, v := range m {
		ov, ok := other[k]
		if !ok || !v.equal(ov) {
			return false
		}
	}
	return true
}

// ReturnSummary accumulates what a callee's Return instructions deposit,
// across every return point reached during one compForwardDataflow-style
// run of that callee. It is a side channel shared by pointer (not part of
// the Fact the worklist compares for convergence) — every clone of the
// LatticeValue produced while analyzing one callee invocation shares the
// same *ReturnSummary, exactly as the caller allocates one fresh summary
// per call-target and threads it through by reference.
type ReturnSummary struct {
	Values ValueSet
	Alias  valueMapSets
}

func newReturnSummary() *ReturnSummary {
	return &ReturnSummary{Values: newValueSet(), Alias: newValueMapSets()}
}

// LatticeValue is the dataflow.Fact carried through the points-to analysis:
// a PointsTo map, an Alias map, and (only inside a recursive callee
// invocation) the ReturnSummary its Return instructions feed.
type LatticeValue struct {
	PointsTo valueMapSets
	Alias    valueMapSets
	Ret      *ReturnSummary // nil outside a callee invocation
}

// NewLatticeValue returns the empty (bottom) lattice value with no attached
// return summary — used to seed a top-level, non-recursive analysis run.
func NewLatticeValue() *LatticeValue {
	return &LatticeValue{PointsTo: newValueMapSets(), Alias: newValueMapSets()}
}

func (l *LatticeValue) Join(src *LatticeValue) bool {
	a := l.PointsTo.extend(src.PointsTo)
	b := l.Alias.extend(src.Alias)
	return a || b
}

func (l *LatticeValue) Equal(other *LatticeValue) bool {
	return l.PointsTo.equal(other.PointsTo) && l.Alias.equal(other.Alias)
}

func (l *LatticeValue) Clone() *LatticeValue {
	return &LatticeValue{
		PointsTo: l.PointsTo.clone(),
		Alias:    l.Alias.clone(),
		Ret:      l.Ret, // shared accumulator, not deep-copied
	}
}

// pointTo returns what key may point to. A function symbol lazily gains
// itself as a pointee the first time it's asked about — a function value
// always points to itself, and there is no separate Alloca-like instruction
// that would otherwise establish that fact.
func (l *LatticeValue) pointTo(key *ir.Value) ValueSet {
	if key == nil {
		return newValueSet()
	}
	if key.Kind == ir.KindFunction {
		l.PointsTo.union(key, singleton(key))
	}
	return l.PointsTo.get(key).clone()
}

// alias returns the union of what's stored through every cell in keys.
func (l *LatticeValue) alias(keys ValueSet) ValueSet {
	out := newValueSet()
	for k := range keys {
		out.addAll(l.Alias.get(k))
	}
	return out
}

// aliasExtend records that vals may now be reachable by loading through any
// cell in keys. When keys is an unambiguous singleton (and not a function
// cell, which always aliases itself) the existing contents are discarded
// first — a strong update; otherwise the new values are unioned in,
// preserving whatever may already be there from another branch.
func (l *LatticeValue) aliasExtend(keys, vals ValueSet) {
	l.aliasClearIfSingleton(keys)
	for k := range keys {
		l.Alias.union(k, vals)
	}
}

func (l *LatticeValue) aliasClearIfSingleton(keys ValueSet) {
	if len(keys) != 1 {
		return
	}
	for k := range keys {
		if k.Kind == ir.KindFunction {
			continue
		}
		l.Alias.clear(k)
	}
}

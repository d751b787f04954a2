package dataflow

import (
	"testing"

	"github.com/stretchr/testify/require"
	"ssaflow/internal/ir"
)

// intSetFact is a minimal Fact[T] used only to exercise the engine: the set
// of instruction results seen so far.
type intSetFact struct {
	seen map[int]bool
}

func newIntSetFact() *intSetFact { return &intSetFact{seen: map[int]bool{}} }

func (f *intSetFact) Join(src *intSetFact) bool {
	changed := false
	for k := range src.seen {
		if !f.seen[k] {
			f.seen[k] = true
			changed = true
		}
	}
	return changed
}

func (f *intSetFact) Equal(other *intSetFact) bool {
	if len(f.seen) != len(other.seen) {
		return false
	}
	for k := range f.seen {
		if !other.seen[k] {
			return false
		}
	}
	return true
}

func (f *intSetFact) Clone() *intSetFact {
	cp := newIntSetFact()
	for k := range f.seen {
		cp.seen[k] = true
	}
	return cp
}

// diamond builds entry -> {left, right} -> join, the left and right blocks
// each defining one Alloca result, to exercise merge-from-two-preds.
func diamond() (*ir.Function, map[string]*ir.Value) {
	fn := &ir.Function{Name: "diamond"}
	entry := &ir.BasicBlock{Label: "entry", Func: fn}
	left := &ir.BasicBlock{Label: "left", Func: fn}
	right := &ir.BasicBlock{Label: "right", Func: fn}
	join := &ir.BasicBlock{Label: "join", Func: fn}
	fn.Blocks = []*ir.BasicBlock{entry, left, right, join}

	vl := &ir.Value{ID: 1, Name: "%l", Type: &ir.IntType{Bits: 32}}
	vr := &ir.Value{ID: 2, Name: "%r", Type: &ir.IntType{Bits: 32}}

	cond := &ir.Value{ID: 0, Name: "%c", Type: &ir.BoolType{}}
	entry.Instructions = []ir.Instruction{}
	_ = cond

	left.Instructions = []ir.Instruction{
		&ir.Alloca{Result_: vl, Elem: &ir.IntType{Bits: 32}},
	}
	right.Instructions = []ir.Instruction{
		&ir.Alloca{Result_: vr, Elem: &ir.IntType{Bits: 32}},
	}

	link := func(from, to *ir.BasicBlock) {
		from.Successors = append(from.Successors, to)
		to.Predecessors = append(to.Predecessors, from)
	}
	link(entry, left)
	link(entry, right)
	link(left, join)
	link(right, join)

	return fn, map[string]*ir.Value{"l": vl, "r": vr}
}

func TestRunForwardMergesBothPredecessors(t *testing.T) {
	fn, vals := diamond()

	transfer := func(inst ir.Instruction, val *intSetFact) {
		if r := inst.Result(); r != nil {
			val.seen[r.ID] = true
		}
	}

	results := RunForward(fn, newIntSetFact(), transfer)

	joinBlock := fn.Blocks[3]
	in := results[joinBlock].In
	require.True(t, in.seen[vals["l"].ID])
	require.True(t, in.seen[vals["r"].ID])
}

func TestRunBackwardPropagatesFromSuccessors(t *testing.T) {
	fn, vals := diamond()

	transfer := func(inst ir.Instruction, val *intSetFact) {
		if r := inst.Result(); r != nil {
			val.seen[r.ID] = true
		}
	}

	results := RunBackward(fn, newIntSetFact(), transfer)

	entry := fn.Blocks[0]
	out := results[entry].Out
	require.True(t, out.seen[vals["l"].ID])
	require.True(t, out.seen[vals["r"].ID])
}

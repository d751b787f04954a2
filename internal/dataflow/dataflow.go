// Package dataflow is a generic monotone worklist engine, parameterized by
// a lattice fact type and a transfer function, with forward and backward
// drivers. It knows nothing about points-to analysis specifically; callers
// (internal/pointer) supply the Fact implementation and the per-instruction
// transfer.
//
// Grounded on the classic textbook worklist algorithm (here, specifically
// the compForwardDataflow/compBackwardDataflow pair from the C dataflow
// framework this repository's points-to analysis was distilled from):
// seed every block with the initial fact, then repeatedly recompute a
// block's in-value from its (already-computed) neighbors' out-values until
// no out-value changes.
package dataflow

import "ssaflow/internal/ir"

// Fact is a mutable dataflow lattice value. Join must be monotone: after
// Join, the receiver's information content never shrinks. Two Facts that
// Equal each other must behave identically under further Join/transfer —
// that equality is what the worklist uses to detect a reached fixedpoint.
type Fact[T any] interface {
	// Join merges src into the receiver and reports whether the receiver
	// changed.
	Join(src T) bool
	// Equal reports structural equality with other.
	Equal(other T) bool
	// Clone returns an independent copy, so that applying a transfer to
	// the copy never mutates the original.
	Clone() T
}

// Transfer applies the effect of a single instruction to val, in place.
type Transfer[T Fact[T]] func(inst ir.Instruction, val T)

// Result holds the converged in/out fact for one basic block.
type Result[T Fact[T]] struct {
	In  T
	Out T
}

// RunForward computes, for every block of fn, the fixedpoint
//
//	in(b)  = JOIN(out(p) for p in predecessors(b))     (in(entry) = init)
//	out(b) = transfer*(b, in(b))
//
// applying transfer to each instruction of a block in order. init seeds
// every block's starting in/out value, not just the entry block's — later
// iterations only grow it via Join, so seeding every block is sound and
// lets facts that hold throughout the whole function (e.g. a callee's bound
// parameters) be visible everywhere without waiting for propagation.
func RunForward[T Fact[T]](fn *ir.Function, init T, transfer Transfer[T]) map[*ir.BasicBlock]*Result[T] {
	return run(fn.Blocks, init, transfer, true)
}

// RunBackward is the dual of RunForward: it propagates along predecessor
// edges using each block's successors' in-values, and applies transfer to
// a block's instructions in reverse order.
func RunBackward[T Fact[T]](fn *ir.Function, init T, transfer Transfer[T]) map[*ir.BasicBlock]*Result[T] {
	return run(fn.Blocks, init, transfer, false)
}

func run[T Fact[T]](blocks []*ir.BasicBlock, init T, transfer Transfer[T], forward bool) map[*ir.BasicBlock]*Result[T] {
	results := make(map[*ir.BasicBlock]*Result[T], len(blocks))
	queue := make([]*ir.BasicBlock, 0, len(blocks))
	queued := make(map[*ir.BasicBlock]bool, len(blocks))

	for _, b := range blocks {
		results[b] = &Result[T]{In: init.Clone(), Out: init.Clone()}
		queue = append(queue, b)
		queued[b] = true
	}

	neighborsIn := func(b *ir.BasicBlock) []*ir.BasicBlock {
		if forward {
			return b.Predecessors
		}
		return b.Successors
	}
	neighborsOut := func(b *ir.BasicBlock) []*ir.BasicBlock {
		if forward {
			return b.Successors
		}
		return b.Predecessors
	}
	selfVal := func(r *Result[T]) T {
		if forward {
			return r.In
		}
		return r.Out
	}
	neighborVal := func(r *Result[T]) T {
		if forward {
			return r.Out
		}
		return r.In
	}

	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		queued[b] = false

		r := results[b]
		acc := selfVal(r)
		for _, n := range neighborsIn(b) {
			acc.Join(neighborVal(results[n]))
		}

		produced := acc.Clone()
		applyBlock(b, produced, transfer, forward)

		var prev T
		if forward {
			prev = r.Out
		} else {
			prev = r.In
		}
		if produced.Equal(prev) {
			continue
		}
		if forward {
			r.Out = produced
		} else {
			r.In = produced
		}

		for _, n := range neighborsOut(b) {
			if !queued[n] {
				queue = append(queue, n)
				queued[n] = true
			}
		}
	}

	return results
}

func applyBlock[T Fact[T]](b *ir.BasicBlock, val T, transfer Transfer[T], forward bool) {
	if forward {
		for _, inst := range b.Instructions {
			transfer(inst, val)
		}
		return
	}
	for i := len(b.Instructions) - 1; i >= 0; i-- {
		transfer(b.Instructions[i], val)
	}
}

package ir

// The functions below are the exported construction surface used by
// internal/irtext to build instructions from outside this package (instBase
// is deliberately unexported, so a reader built elsewhere cannot forge an
// instruction's block/line linkage by hand — it must go through here,
// mirroring the Builder-owned construction in the teacher's
// internal/ir/builder.go, just without that builder's AST-lowering and SSA
// renaming machinery since irtext's input already arrives in SSA form).

// NewAlloca builds and appends an Alloca to b.
func NewAlloca(b *BasicBlock, line int, result *Value, elem Type) *Alloca {
	i := &Alloca{instBase: instBase{block: b, line: line}, Result_: result, Elem: elem}
	result.Def = i
	b.Instructions = append(b.Instructions, i)
	return i
}

// NewLoad builds and appends a Load to b.
func NewLoad(b *BasicBlock, line int, result, addr *Value) *Load {
	i := &Load{instBase: instBase{block: b, line: line}, Result_: result, Addr: addr}
	result.Def = i
	b.Instructions = append(b.Instructions, i)
	return i
}

// NewStore builds and appends a Store to b.
func NewStore(b *BasicBlock, line int, val, addr *Value) *Store {
	i := &Store{instBase: instBase{block: b, line: line}, Val: val, Addr: addr}
	b.Instructions = append(b.Instructions, i)
	return i
}

// NewGetElementPtr builds and appends a GetElementPtr to b.
func NewGetElementPtr(b *BasicBlock, line int, result, addr *Value, indices []int) *GetElementPtr {
	i := &GetElementPtr{instBase: instBase{block: b, line: line}, Result_: result, Addr: addr, Indices: indices}
	result.Def = i
	b.Instructions = append(b.Instructions, i)
	return i
}

// NewBitCast builds and appends a BitCast to b.
func NewBitCast(b *BasicBlock, line int, result, src *Value) *BitCast {
	i := &BitCast{instBase: instBase{block: b, line: line}, Result_: result, Src: src}
	result.Def = i
	b.Instructions = append(b.Instructions, i)
	return i
}

// NewPhi builds and appends a Phi to b.
func NewPhi(b *BasicBlock, line int, result *Value, incoming map[*BasicBlock]*Value) *Phi {
	i := &Phi{instBase: instBase{block: b, line: line}, Result_: result, Incoming: incoming}
	result.Def = i
	b.Instructions = append(b.Instructions, i)
	return i
}

// NewCall builds and appends a Call to b. debugLine is the source line the
// reporter keys its output by; 0 means absent (spec.md §7 "synthetic line
// 0").
func NewCall(b *BasicBlock, line int, result, callee *Value, args []*Value, debugLine int) *Call {
	i := &Call{instBase: instBase{block: b, line: line}, Result_: result, Callee: callee, Args: args, DebugLine: debugLine}
	if result != nil {
		result.Def = i
	}
	b.Instructions = append(b.Instructions, i)
	return i
}

// NewMemCpy builds and appends a MemCpy to b.
func NewMemCpy(b *BasicBlock, line int, dst, src *Value) *MemCpy {
	i := &MemCpy{instBase: instBase{block: b, line: line}, Dst: dst, Src: src}
	b.Instructions = append(b.Instructions, i)
	return i
}

// NewMemSet builds and appends a MemSet to b.
func NewMemSet(b *BasicBlock, line int, dst *Value) *MemSet {
	i := &MemSet{instBase: instBase{block: b, line: line}, Dst: dst}
	b.Instructions = append(b.Instructions, i)
	return i
}

// NewDebugIntrinsic builds and appends a DebugIntrinsic to b.
func NewDebugIntrinsic(b *BasicBlock, line int, name string) *DebugIntrinsic {
	i := &DebugIntrinsic{instBase: instBase{block: b, line: line}, Name: name}
	b.Instructions = append(b.Instructions, i)
	return i
}

// NewUnsupported builds and appends an Unsupported instruction to b.
func NewUnsupported(b *BasicBlock, line int, kind string) *Unsupported {
	i := &Unsupported{instBase: instBase{block: b, line: line}, Kind: kind}
	b.Instructions = append(b.Instructions, i)
	return i
}

// NewJump builds and appends a Jump to b, wiring the successor/predecessor
// edge to target.
func NewJump(b *BasicBlock, line int, target *BasicBlock) *Jump {
	i := &Jump{instBase: instBase{block: b, line: line}, Target: target}
	b.Instructions = append(b.Instructions, i)
	b.addSuccessor(target)
	return i
}

// NewBranch builds and appends a Branch to b, wiring both successor edges.
func NewBranch(b *BasicBlock, line int, cond *Value, ifTrue, ifFalse *BasicBlock) *Branch {
	i := &Branch{instBase: instBase{block: b, line: line}, Cond: cond, IfTrue: ifTrue, IfFalse: ifFalse}
	b.Instructions = append(b.Instructions, i)
	b.addSuccessor(ifTrue)
	b.addSuccessor(ifFalse)
	return i
}

// NewReturn builds and appends a Return to b.
func NewReturn(b *BasicBlock, line int, val *Value) *Return {
	i := &Return{instBase: instBase{block: b, line: line}, Val: val}
	b.Instructions = append(b.Instructions, i)
	return i
}

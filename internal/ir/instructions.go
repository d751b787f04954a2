package ir

// Instruction is any opcode-tagged record inside a BasicBlock. The pointer
// transfer (internal/pointer) switches on the concrete type.
type Instruction interface {
	Block() *BasicBlock
	Result() *Value // nil if the instruction produces no value
	Operands() []*Value
	Line() int // source line, 0 if unknown (spec: synthetic line 0 for missing debug info)
	String() string
}

// Terminator is the final instruction of a BasicBlock; it determines the
// block's successor edges.
type Terminator interface {
	Instruction
	successors() []*BasicBlock
}

type instBase struct {
	block *BasicBlock
	line  int
}

func (b *instBase) Block() *BasicBlock { return b.block }
func (b *instBase) Line() int          { return b.line }

// Alloca allocates a new memory cell; the result points to that cell
// (spec §4.3: pt(v) <- {v}).
type Alloca struct {
	instBase
	Result_ *Value
	Elem    Type
}

func (i *Alloca) Result() *Value     { return i.Result_ }
func (i *Alloca) Operands() []*Value { return nil }
func (i *Alloca) String() string     { return i.Result_.Name + " = alloca " + i.Elem.String() }

// Load reads through a pointer operand (spec: pt(v) <- al(pt(w))).
type Load struct {
	instBase
	Result_ *Value
	Addr    *Value
}

func (i *Load) Result() *Value     { return i.Result_ }
func (i *Load) Operands() []*Value { return []*Value{i.Addr} }
func (i *Load) String() string     { return i.Result_.Name + " = load " + i.Addr.Name }

// Store writes a value through a pointer operand (spec: strong/weak update
// rule on alias[c] for c in pt(Addr)).
type Store struct {
	instBase
	Addr *Value
	Val  *Value
}

func (i *Store) Result() *Value     { return nil }
func (i *Store) Operands() []*Value { return []*Value{i.Addr, i.Val} }
func (i *Store) String() string     { return "store " + i.Val.Name + ", " + i.Addr.Name }

// GetElementPtr computes a field/element address. Indices are carried for
// printing only — the analysis collapses all fields of a Cell together
// (spec §4.3/§9: field-collapsing GEP).
type GetElementPtr struct {
	instBase
	Result_ *Value
	Addr    *Value
	Indices []int
}

func (i *GetElementPtr) Result() *Value     { return i.Result_ }
func (i *GetElementPtr) Operands() []*Value { return []*Value{i.Addr} }
func (i *GetElementPtr) String() string     { return i.Result_.Name + " = gep " + i.Addr.Name }

// BitCast reinterprets a pointer's type without changing its points-to set
// (spec: pt(v) <- pt(w)).
type BitCast struct {
	instBase
	Result_ *Value
	Src     *Value
}

func (i *BitCast) Result() *Value     { return i.Result_ }
func (i *BitCast) Operands() []*Value { return []*Value{i.Src} }
func (i *BitCast) String() string     { return i.Result_.Name + " = bitcast " + i.Src.Name }

// Phi selects among incoming values based on the predecessor block taken at
// runtime. The transfer overwrites (not accumulates) the result's
// points-to set each time it runs — load-bearing for convergence on cycles.
type Phi struct {
	instBase
	Result_  *Value
	Incoming map[*BasicBlock]*Value
}

func (i *Phi) Result() *Value { return i.Result_ }
func (i *Phi) Operands() []*Value {
	ops := make([]*Value, 0, len(i.Incoming))
	for _, v := range i.Incoming {
		ops = append(ops, v)
	}
	return ops
}
func (i *Phi) String() string { return i.Result_.Name + " = phi" }

// Call invokes Callee (a possibly-indirect function value) with Args.
// DebugLine is the source line attached to the call, used by the reporter;
// 0 when absent.
type Call struct {
	instBase
	Result_   *Value // nil for void calls
	Callee    *Value
	Args      []*Value
	DebugLine int
}

func (i *Call) Result() *Value { return i.Result_ }
func (i *Call) Operands() []*Value {
	ops := make([]*Value, 0, len(i.Args)+1)
	ops = append(ops, i.Callee)
	ops = append(ops, i.Args...)
	return ops
}
func (i *Call) String() string {
	s := "call " + i.Callee.Name + "("
	for idx, a := range i.Args {
		if idx > 0 {
			s += ", "
		}
		s += a.Name
	}
	return s + ")"
}

// Return optionally carries a value out of the function (spec: deposits
// pt(v) into the active ReturnSummary, when one is attached).
type Return struct {
	instBase
	Val *Value // nil for a bare "return"
}

func (i *Return) Result() *Value { return nil }
func (i *Return) Operands() []*Value {
	if i.Val == nil {
		return nil
	}
	return []*Value{i.Val}
}
func (i *Return) String() string {
	if i.Val == nil {
		return "ret"
	}
	return "ret " + i.Val.Name
}
func (i *Return) successors() []*BasicBlock { return nil }

// MemCpy copies from Src to Dst. Dst and Src are the operands as written;
// the transfer looks through each one's defining BitCast (Value.Def) to
// recover the pre-cast operand and its underlying cells (spec §4.3).
type MemCpy struct {
	instBase
	Dst, Src *Value
}

func (i *MemCpy) Result() *Value     { return nil }
func (i *MemCpy) Operands() []*Value { return []*Value{i.Dst, i.Src} }
func (i *MemCpy) String() string     { return "memcpy " + i.Dst.Name + ", " + i.Src.Name }

// MemSet clears aliasing through Dst under the same singleton rule as Store
// (spec §4.3, flagged in §9 as imprecise for multi-cell destinations).
type MemSet struct {
	instBase
	Dst *Value
}

func (i *MemSet) Result() *Value     { return nil }
func (i *MemSet) Operands() []*Value { return []*Value{i.Dst} }
func (i *MemSet) String() string     { return "memset " + i.Dst.Name }

// DebugIntrinsic is a debug/intrinsic-namespace instruction kept only so it
// can be skipped uniformly; the transfer treats it as identity (spec §4.5).
type DebugIntrinsic struct {
	instBase
	Name string
}

func (i *DebugIntrinsic) Result() *Value     { return nil }
func (i *DebugIntrinsic) Operands() []*Value { return nil }
func (i *DebugIntrinsic) String() string     { return "// intrinsic " + i.Name }

// Unsupported is an instruction kind the transfer does not model at all —
// inline assembly, vector aggregates, and the like (spec §7 "Unsupported
// construct"). Kind names the opcode for diagnostics. The transfer treats
// it as identity on the lattice; the CLI and LSP each log one diagnostic
// per occurrence when diagnostics are enabled.
type Unsupported struct {
	instBase
	Kind string
}

func (i *Unsupported) Result() *Value     { return nil }
func (i *Unsupported) Operands() []*Value { return nil }
func (i *Unsupported) String() string     { return "unsupported " + i.Kind }

// Terminators

// Jump is an unconditional branch.
type Jump struct {
	instBase
	Target *BasicBlock
}

func (i *Jump) Result() *Value            { return nil }
func (i *Jump) Operands() []*Value        { return nil }
func (i *Jump) String() string            { return "jmp " + i.Target.Label }
func (i *Jump) successors() []*BasicBlock { return []*BasicBlock{i.Target} }

// Branch is a two-way conditional branch.
type Branch struct {
	instBase
	Cond            *Value
	IfTrue, IfFalse *BasicBlock
}

func (i *Branch) Result() *Value     { return nil }
func (i *Branch) Operands() []*Value { return []*Value{i.Cond} }
func (i *Branch) String() string {
	return "br " + i.Cond.Name + ", " + i.IfTrue.Label + ", " + i.IfFalse.Label
}
func (i *Branch) successors() []*BasicBlock { return []*BasicBlock{i.IfTrue, i.IfFalse} }

var (
	_ Terminator = (*Return)(nil)
	_ Terminator = (*Jump)(nil)
	_ Terminator = (*Branch)(nil)
)

// IsTerminator reports whether inst ends its block.
func IsTerminator(inst Instruction) bool {
	_, ok := inst.(Terminator)
	return ok
}

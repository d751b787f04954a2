package irtext

import (
	"fmt"

	"ssaflow/internal/ir"
)

// build converts a parsed grammar.Program into an ir.Program. Two passes
// are needed, mirroring how an assembler resolves forward references:
//
//  1. Register every function symbol (so a call can name a callee defined
//     later in the file, and so a function value used as a call argument
//     resolves even before its own definition is reached) and, within each
//     function body, register every block label and every instruction's
//     result value (so a Phi or a forward jump can reference a value or
//     block that the textual scan has not reached yet).
//  2. Walk the instructions again, this time building the real
//     ir.Instruction values with fully resolved operands, and wire up
//     block successor/predecessor edges.
func build(filename string, prog *Program) (*ir.Program, error) {
	b := &builder{filename: filename, funcs: map[string]*ir.Function{}}

	for _, top := range prog.Decls {
		switch {
		case top.Func != nil:
			b.declareFunc(top.Func.Name, top.Func.Params, top.Func.RetType)
		case top.Decl != nil:
			b.declareExternal(top.Decl.Name, top.Decl.ParamTypes, top.Decl.RetType)
		}
	}

	out := &ir.Program{Name: filename}
	for _, top := range prog.Decls {
		if top.Decl != nil {
			out.Functions = append(out.Functions, b.funcs[top.Decl.Name])
		}
	}
	for _, top := range prog.Decls {
		if top.Func == nil {
			continue
		}
		fn := b.funcs[top.Func.Name]
		if err := b.buildBody(fn, top.Func); err != nil {
			return nil, err
		}
		out.Functions = append(out.Functions, fn)
	}

	return out, nil
}

type builder struct {
	filename string
	funcs    map[string]*ir.Function
	nextID   int
}

func (b *builder) freshID() int {
	b.nextID++
	return b.nextID
}

func (b *builder) declareFunc(name string, params []*Param, ret *Type) *ir.Function {
	fn := &ir.Function{Name: name, ReturnType: convertType(ret)}
	fn.Self = &ir.Value{ID: b.freshID(), Name: name, Kind: ir.KindFunction, Func: fn}
	for _, p := range params {
		fn.Params = append(fn.Params, &ir.Value{
			ID: b.freshID(), Name: p.Name, Type: convertType(p.Type), Kind: ir.KindParam,
		})
	}
	b.funcs[name] = fn
	return fn
}

func (b *builder) declareExternal(name string, paramTypes []*Type, ret *Type) *ir.Function {
	fn := &ir.Function{Name: name, ReturnType: convertType(ret)}
	fn.Self = &ir.Value{ID: b.freshID(), Name: name, Kind: ir.KindFunction, Func: fn}
	for i, t := range paramTypes {
		fn.Params = append(fn.Params, &ir.Value{
			ID: b.freshID(), Name: fmt.Sprintf("%%arg%d", i), Type: convertType(t), Kind: ir.KindParam,
		})
	}
	b.funcs[name] = fn
	return fn
}

func convertType(t *Type) ir.Type {
	if t == nil {
		return &ir.VoidType{}
	}
	var base ir.Type
	switch t.Name {
	case "void":
		base = &ir.VoidType{}
	case "i1":
		base = &ir.BoolType{}
	default:
		bits := 32
		var n int
		if _, err := fmt.Sscanf(t.Name, "i%d", &n); err == nil {
			bits = n
		}
		base = &ir.IntType{Bits: bits}
	}
	for range t.Stars {
		base = &ir.PointerType{Elem: base}
	}
	return base
}

// funcBuilder holds the per-function state needed across the two passes:
// the block-label table and the local-value table (params pre-seeded).
type funcBuilder struct {
	*builder
	fn     *ir.Function
	blocks map[string]*ir.BasicBlock
	values map[string]*ir.Value
}

func (b *builder) buildBody(fn *ir.Function, def *FuncDef) error {
	fb := &funcBuilder{builder: b, fn: fn, blocks: map[string]*ir.BasicBlock{}, values: map[string]*ir.Value{}}
	for _, p := range fn.Params {
		fb.values[p.Name] = p
	}

	// Pass 1: register blocks and every instruction's result value.
	for _, blk := range def.Blocks {
		bb := &ir.BasicBlock{Label: blk.Label, Func: fn}
		fb.blocks[blk.Label] = bb
		fn.Blocks = append(fn.Blocks, bb)
	}
	for _, blk := range def.Blocks {
		for _, inst := range blk.Insts {
			fb.preDeclareResult(inst)
		}
	}

	// Pass 2: build real instructions with resolved operands. NewJump and
	// NewBranch wire successor/predecessor edges as they go (ir.construct.go).
	for _, blk := range def.Blocks {
		bb := fb.blocks[blk.Label]
		for _, inst := range blk.Insts {
			if err := fb.buildInst(bb, inst); err != nil {
				return err
			}
		}
	}

	return nil
}

// preDeclareResult creates a placeholder Value for an instruction's result,
// before its defining instruction itself has been built, so a forward
// reference (a Phi incoming value, or a later use of the same name within
// a loop) can resolve.
func (fb *funcBuilder) preDeclareResult(inst *Inst) {
	name, typ := "", ir.Type(&ir.PointerType{Elem: &ir.VoidType{}})
	switch {
	case inst.Alloca != nil:
		name, typ = inst.Alloca.Result, &ir.PointerType{Elem: convertType(inst.Alloca.Elem)}
	case inst.Load != nil:
		name = inst.Load.Result
	case inst.Gep != nil:
		name = inst.Gep.Result
	case inst.Bitcast != nil:
		name = inst.Bitcast.Result
	case inst.Phi != nil:
		name = inst.Phi.Result
	case inst.Call != nil:
		if inst.Call.Result == "" {
			return
		}
		name = inst.Call.Result
	default:
		return
	}
	if name == "" {
		return
	}
	fb.values[name] = &ir.Value{ID: fb.freshID(), Name: name, Type: typ}
}

// value resolves a local name, lazily creating an entry if it was never
// predeclared (a permissive fallback for a textual reader, not a
// correctness requirement of the analysis itself).
func (fb *funcBuilder) value(name string) *ir.Value {
	if name == "" {
		return nil
	}
	if v, ok := fb.values[name]; ok {
		return v
	}
	v := &ir.Value{ID: fb.freshID(), Name: name}
	fb.values[name] = v
	return v
}

// operand resolves an OperandRef in any value-position operand: a Global
// names a declared function directly, so the resolved Value *is* that
// function's own KindFunction symbol (fn.Self) — the same identity the
// callee position of a direct call resolves to — rather than a fresh blank
// local. Without this, a function symbol threaded through a Phi incoming, a
// Store's value, or a call argument would mint an untyped placeholder with
// Kind KindInstResult and no Func back-link, and the pointer analysis could
// never discover it as a points-to target (spec.md §8 scenarios 2-5: a Phi
// of two function symbols, a function forwarded through a parameter, a
// function stored into a struct field, a function returned from a callee).
// A Local is an ordinary SSA value, resolved (or lazily created) the same
// way fb.value already does.
func (fb *funcBuilder) operand(ref *OperandRef) (*ir.Value, error) {
	if ref == nil {
		return nil, nil
	}
	if ref.Global != "" {
		fn, ok := fb.funcs[ref.Global]
		if !ok {
			return nil, fmt.Errorf("reference to undeclared function %q", ref.Global)
		}
		return fn.Self, nil
	}
	return fb.value(ref.Local), nil
}

func (fb *funcBuilder) buildInst(bb *ir.BasicBlock, inst *Inst) error {
	line := inst.Pos.Line

	switch {
	case inst.Alloca != nil:
		i := inst.Alloca
		result := fb.value(i.Result)
		elem := convertType(i.Elem)
		result.Type = &ir.PointerType{Elem: elem}
		ir.NewAlloca(bb, line, result, elem)

	case inst.Load != nil:
		i := inst.Load
		addr, err := fb.operand(i.Addr)
		if err != nil {
			return err
		}
		ir.NewLoad(bb, line, fb.value(i.Result), addr)

	case inst.Store != nil:
		i := inst.Store
		val, err := fb.operand(i.Val)
		if err != nil {
			return err
		}
		addr, err := fb.operand(i.Addr)
		if err != nil {
			return err
		}
		ir.NewStore(bb, line, val, addr)

	case inst.Gep != nil:
		i := inst.Gep
		addr, err := fb.operand(i.Addr)
		if err != nil {
			return err
		}
		ir.NewGetElementPtr(bb, line, fb.value(i.Result), addr, i.Indices)

	case inst.Bitcast != nil:
		i := inst.Bitcast
		src, err := fb.operand(i.Src)
		if err != nil {
			return err
		}
		ir.NewBitCast(bb, line, fb.value(i.Result), src)

	case inst.Phi != nil:
		i := inst.Phi
		incoming := make(map[*ir.BasicBlock]*ir.Value, len(i.Incoming))
		for _, in := range i.Incoming {
			pred, ok := fb.blocks[in.Label]
			if !ok {
				return fmt.Errorf("phi references unknown block %q", in.Label)
			}
			val, err := fb.operand(in.Value)
			if err != nil {
				return err
			}
			incoming[pred] = val
		}
		ir.NewPhi(bb, line, fb.value(i.Result), incoming)

	case inst.Call != nil:
		i := inst.Call
		calleeVal, err := fb.operand(i.Callee)
		if err != nil {
			return err
		}
		args := make([]*ir.Value, len(i.Args))
		for idx, a := range i.Args {
			arg, err := fb.operand(a)
			if err != nil {
				return err
			}
			args[idx] = arg
		}
		var result *ir.Value
		if i.Result != "" {
			result = fb.value(i.Result)
		}
		debugLine := 0
		if i.Line != nil {
			debugLine = *i.Line
		}
		ir.NewCall(bb, line, result, calleeVal, args, debugLine)

	case inst.MemCpy != nil:
		i := inst.MemCpy
		dst, err := fb.operand(i.Dst)
		if err != nil {
			return err
		}
		src, err := fb.operand(i.Src)
		if err != nil {
			return err
		}
		ir.NewMemCpy(bb, line, dst, src)

	case inst.MemSet != nil:
		i := inst.MemSet
		dst, err := fb.operand(i.Dst)
		if err != nil {
			return err
		}
		ir.NewMemSet(bb, line, dst)

	case inst.Jmp != nil:
		target, ok := fb.blocks[inst.Jmp.Target]
		if !ok {
			return fmt.Errorf("jmp to unknown block %q", inst.Jmp.Target)
		}
		ir.NewJump(bb, line, target)

	case inst.Br != nil:
		ifTrue, ok1 := fb.blocks[inst.Br.IfTrue]
		ifFalse, ok2 := fb.blocks[inst.Br.IfFalse]
		if !ok1 || !ok2 {
			return fmt.Errorf("br references unknown block")
		}
		cond, err := fb.operand(inst.Br.Cond)
		if err != nil {
			return err
		}
		ir.NewBranch(bb, line, cond, ifTrue, ifFalse)

	case inst.Ret != nil:
		val, err := fb.operand(inst.Ret.Val)
		if err != nil {
			return err
		}
		ir.NewReturn(bb, line, val)

	case inst.Unsup != nil:
		ir.NewUnsupported(bb, line, inst.Unsup.Kind)

	default:
		return fmt.Errorf("unrecognized instruction at line %d", line)
	}

	return nil
}

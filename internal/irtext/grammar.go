package irtext

import "github.com/alecthomas/participle/v2/lexer"

// Program is the root of the parsed module: an ordered list of function
// definitions and external declarations.
type Program struct {
	Pos   lexer.Position
	Decls []*TopLevel `@@*`
}

// TopLevel is either a function definition or a bare declaration.
type TopLevel struct {
	Pos  lexer.Position
	Func *FuncDef `  @@`
	Decl *Declare `| @@`
}

// Type is a (deliberately small) surface type: a base name (i1, i32, i64,
// ptr, void, or a struct/alias name) plus zero or more trailing '*' for
// pointer levels.
type Type struct {
	Pos   lexer.Position
	Name  string   `@Ident`
	Stars []string `@"*"*`
}

// Param is one formal parameter: a type followed by its local name.
type Param struct {
	Pos  lexer.Position
	Type *Type  `@@`
	Name string `@Local`
}

// Declare is an opaque external function: a name, parameter types, and an
// optional return type — no body.
type Declare struct {
	Pos        lexer.Position
	Name       string  `"declare" @Global`
	ParamTypes []*Type `"(" (@@ ("," @@)*)? ")"`
	RetType    *Type   `("->" @@)?`
}

// FuncDef is a function with a body: a name, formal parameters, optional
// return type, and an ordered list of labeled basic blocks.
type FuncDef struct {
	Pos     lexer.Position
	Name    string    `"func" @Global`
	Params  []*Param  `"(" (@@ ("," @@)*)? ")"`
	RetType *Type     `("->" @@)?`
	Blocks  []*Block  `"{" @@+ "}"`
}

// Block is a label followed by its straight-line instruction sequence.
type Block struct {
	Pos   lexer.Position
	Label string  `@Ident ":"`
	Insts []*Inst `@@*`
}

// OperandRef is any value-position operand: either a statically named
// global function symbol (a function used directly as a value — passed as
// an argument, stored, returned, or carried through a Phi) or a local SSA
// value. A bare function name lexes as @Global the same way a call's
// callee does, so every operand position that can legally hold a function
// pointer must accept both forms, not just the callee position — a Phi of
// two function symbols, a stored function pointer, and a function passed
// as a call argument all parse through this same alternation.
type OperandRef struct {
	Pos    lexer.Position
	Global string `  @Global`
	Local  string `| @Local`
}

// CalleeRef is a call's callee operand; it is exactly an OperandRef; either
// a statically named global function (a direct call) or a local SSA value
// holding a function pointer (an indirect call) — the distinction spec.md's
// Call transfer does not need syntactically, since both resolve through the
// same pt(f) lookup.
type CalleeRef = OperandRef

// Inst is one instruction, matched by alternation on its leading keyword
// or assignment form. Order matters: forms sharing a keyword prefix with a
// result assignment must be tried before the bare form.
type Inst struct {
	Pos      lexer.Position
	Alloca   *AllocaInst   `  @@`
	Load     *LoadInst     `| @@`
	Store    *StoreInst    `| @@`
	Gep      *GepInst      `| @@`
	Bitcast  *BitcastInst  `| @@`
	Phi      *PhiInst      `| @@`
	Call     *CallInst     `| @@`
	MemCpy   *MemCpyInst   `| @@`
	MemSet   *MemSetInst   `| @@`
	Jmp      *JumpInst     `| @@`
	Br       *BranchInst   `| @@`
	Ret      *RetInst      `| @@`
	Unsup    *UnsupportedInst `| @@`
}

type AllocaInst struct {
	Pos    lexer.Position
	Result string `@Local "=" "alloca"`
	Elem   *Type  `@@`
}

type LoadInst struct {
	Pos    lexer.Position
	Result string      `@Local "=" "load"`
	Addr   *OperandRef `@@`
}

type StoreInst struct {
	Pos  lexer.Position
	Val  *OperandRef `"store" @@`
	Addr *OperandRef `"," @@`
}

type GepInst struct {
	Pos     lexer.Position
	Result  string      `@Local "=" "gep"`
	Addr    *OperandRef `@@`
	Indices []int       `("," @Integer)*`
}

type BitcastInst struct {
	Pos    lexer.Position
	Result string      `@Local "=" "bitcast"`
	Src    *OperandRef `@@`
}

// PhiIncoming is one [value : predecessor-label] entry of a Phi. Value
// accepts either sigil so that a Phi joining two function symbols (spec.md
// §8 "a call via a Phi of two function symbols reports both names") parses.
type PhiIncoming struct {
	Pos   lexer.Position
	Value *OperandRef `"[" @@`
	Label string      `":" @Ident "]"`
}

type PhiInst struct {
	Pos      lexer.Position
	Result   string         `@Local "=" "phi"`
	Incoming []*PhiIncoming `@@ ("," @@)*`
}

type CallInst struct {
	Pos    lexer.Position
	Result string        `(@Local "=")?`
	Callee *CalleeRef    `"call" @@`
	Args   []*OperandRef `"(" (@@ ("," @@)*)? ")"`
	Line   *int          `("line" @Integer)?`
}

type MemCpyInst struct {
	Pos lexer.Position
	Dst *OperandRef `"memcpy" @@`
	Src *OperandRef `"," @@`
}

type MemSetInst struct {
	Pos lexer.Position
	Dst *OperandRef `"memset" @@`
}

type JumpInst struct {
	Pos    lexer.Position
	Target string `"jmp" @Ident`
}

type BranchInst struct {
	Pos     lexer.Position
	Cond    *OperandRef `"br" @@`
	IfTrue  string      `"," @Ident`
	IfFalse string      `"," @Ident`
}

type RetInst struct {
	Pos lexer.Position
	Val *OperandRef `"ret" @@?`
}

// UnsupportedInst is a placeholder for an instruction kind the transfer
// does not model — inline assembly, vector aggregates, and the like
// (spec.md §7 "Unsupported construct"). Kind is the opcode name, carried
// through for diagnostics only; the transfer treats the instruction as
// identity.
type UnsupportedInst struct {
	Pos  lexer.Position
	Kind string `"unsupported" @Ident`
}

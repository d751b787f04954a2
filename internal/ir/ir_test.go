package ir

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func makeSimpleFunction() *Function {
	fn := &Function{Name: "foo"}
	entry := &BasicBlock{Label: "entry", Func: fn}
	exit := &BasicBlock{Label: "exit", Func: fn}
	fn.Blocks = []*BasicBlock{entry, exit}

	a := &Value{ID: 1, Name: "%a", Type: &IntType{Bits: 32}}
	entry.Instructions = []Instruction{
		&Alloca{instBase: instBase{block: entry}, Result_: a, Elem: &IntType{Bits: 32}},
		&Jump{instBase: instBase{block: entry}, Target: exit},
	}
	entry.addSuccessor(exit)

	exit.Instructions = []Instruction{
		&Return{instBase: instBase{block: exit}},
	}
	return fn
}

func TestBasicBlockLinking(t *testing.T) {
	fn := makeSimpleFunction()
	entry, exit := fn.Blocks[0], fn.Blocks[1]

	require.Equal(t, []*BasicBlock{exit}, entry.Successors)
	require.Equal(t, []*BasicBlock{entry}, exit.Predecessors)
}

func TestAddSuccessorIdempotent(t *testing.T) {
	a := &BasicBlock{Label: "a"}
	b := &BasicBlock{Label: "b"}
	a.addSuccessor(b)
	a.addSuccessor(b)

	require.Len(t, a.Successors, 1)
	require.Len(t, b.Predecessors, 1)
}

func TestFunctionDeclaration(t *testing.T) {
	def := makeSimpleFunction()
	require.False(t, def.Declaration())
	require.NotNil(t, def.Entry())

	decl := &Function{Name: "extern_fn"}
	require.True(t, decl.Declaration())
	require.Nil(t, decl.Entry())
}

func TestPrintProgram(t *testing.T) {
	prog := &Program{Name: "m", Functions: []*Function{makeSimpleFunction()}}
	out := Print(prog)

	require.True(t, strings.Contains(out, "function foo()"))
	require.True(t, strings.Contains(out, "alloca i32"))
	require.True(t, strings.Contains(out, "jmp exit"))
}

func TestFuncByName(t *testing.T) {
	fn := makeSimpleFunction()
	prog := &Program{Functions: []*Function{fn}}

	require.Same(t, fn, prog.FuncByName("foo"))
	require.Nil(t, prog.FuncByName("missing"))
}

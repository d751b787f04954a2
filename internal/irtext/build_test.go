package irtext

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ssaflow/internal/ir"
)

const branchingFnPtrModule = `
func @plus(i32 %a, i32 %b) -> i32 {
entry:
  %t = call @dummy(%a, %b) line 10
  ret %t
}

func @minus(i32 %a, i32 %b) -> i32 {
entry:
  ret %a
}

func @foo(i1 %cond) -> i32 {
entry:
  br %cond, istrue, isfalse
istrue:
  jmp join
isfalse:
  jmp join
join:
  %fp = phi [ @plus : istrue ], [ @minus : isfalse ]
  %r = call %fp(%cond, %cond) line 6
  ret %r
}

declare @dummy(i32, i32) -> i32
`

func TestParseStringBuildsFunctionsAndDeclarations(t *testing.T) {
	prog, err := ParseString("t.ir", branchingFnPtrModule)
	require.NoError(t, err)

	plus := prog.FuncByName("plus")
	require.NotNil(t, plus)
	require.False(t, plus.Declaration())
	require.Len(t, plus.Params, 2)

	dummy := prog.FuncByName("dummy")
	require.NotNil(t, dummy)
	require.True(t, dummy.Declaration())
}

func TestParseStringWiresPhiIncomingAndCallLine(t *testing.T) {
	prog, err := ParseString("t.ir", branchingFnPtrModule)
	require.NoError(t, err)

	foo := prog.FuncByName("foo")
	require.NotNil(t, foo)

	join := foo.Blocks[3]
	require.Equal(t, "join", join.Label)

	phi, ok := join.Instructions[0].(*ir.Phi)
	require.True(t, ok)
	require.Len(t, phi.Incoming, 2)

	call, ok := join.Instructions[1].(*ir.Call)
	require.True(t, ok)
	require.Equal(t, 6, call.DebugLine)
}

func TestParseStringWiresBlockSuccessors(t *testing.T) {
	prog, err := ParseString("t.ir", branchingFnPtrModule)
	require.NoError(t, err)

	foo := prog.FuncByName("foo")
	entry := foo.Blocks[0]
	require.Len(t, entry.Successors, 2)
}

func TestParseStringRejectsCallToUndeclaredFunction(t *testing.T) {
	_, err := ParseString("t.ir", `
func @f() -> void {
entry:
  call @nope()
  ret
}
`)
	require.Error(t, err)
}

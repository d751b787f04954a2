package pointer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ssaflow/internal/irtext"
)

// Each test below parses one textual module encoding one of spec.md §8's
// end-to-end scenarios and asserts the exact target set Analyze records on
// the scenario's call lines.

func TestAnalyzeDirectCallOnly(t *testing.T) {
	prog, err := irtext.ParseString("t.ir", `
func @plus(i32 %a, i32 %b) -> i32 {
entry:
  ret %a
}

func @foo(i32 %a, i32 %b) -> i32 {
entry:
  %r = call @plus(%a, %b) line 10
  ret %r
}
`)
	require.NoError(t, err)

	rep := Analyze(prog)
	require.Equal(t, []string{"plus"}, rep.Targets(10))
}

func TestAnalyzeBranchingFunctionPointer(t *testing.T) {
	prog, err := irtext.ParseString("t.ir", `
func @plus(i32 %a, i32 %b) -> i32 {
entry:
  ret %a
}

func @minus(i32 %a, i32 %b) -> i32 {
entry:
  ret %a
}

func @foo(i1 %cond, i32 %a, i32 %b) -> i32 {
entry:
  br %cond, istrue, isfalse
istrue:
  jmp join
isfalse:
  jmp join
join:
  %fp = phi [ @plus : istrue ], [ @minus : isfalse ]
  %r = call %fp(%a, %b) line 6
  ret %r
}
`)
	require.NoError(t, err)

	rep := Analyze(prog)
	require.Equal(t, []string{"minus", "plus"}, rep.Targets(6))
}

func TestAnalyzePointerPassedThroughFunction(t *testing.T) {
	prog, err := irtext.ParseString("t.ir", `
func @plus(i32 %a, i32 %b) -> i32 {
entry:
  ret %a
}

func @minus(i32 %a, i32 %b) -> i32 {
entry:
  ret %a
}

func @clever(i32 %fp, i32 %a, i32 %b) -> i32 {
entry:
  %r = call %fp(%a, %b) line 12
  ret %r
}

func @main(i32 %a, i32 %b) -> i32 {
entry:
  %r1 = call @clever(@plus, %a, %b) line 20
  %r2 = call @clever(@minus, %a, %b) line 21
  ret %r1
}
`)
	require.NoError(t, err)

	rep := Analyze(prog)
	require.Equal(t, []string{"minus", "plus"}, rep.Targets(12))
	require.Equal(t, []string{"clever"}, rep.Targets(20))
	require.Equal(t, []string{"clever"}, rep.Targets(21))
}

func TestAnalyzeStructOfFunctionPointersWithAliasing(t *testing.T) {
	prog, err := irtext.ParseString("t.ir", `
func @plus(i32 %a, i32 %b) -> i32 {
entry:
  ret %a
}

func @minus(i32 %a, i32 %b) -> i32 {
entry:
  ret %a
}

func @alias(i32 %x, i32 %y) -> void {
entry:
  %v = load %y
  store %v, %x
  ret
}

func @main(i32 %a, i32 %b) -> i32 {
entry:
  %ac = alloca i32
  %bc = alloca i32
  store @plus, %ac
  store @minus, %bc
  call @alias(%ac, %bc) line 25
  %fp = load %ac
  %r = call %fp(%a, %b) line 30
  ret %r
}
`)
	require.NoError(t, err)

	rep := Analyze(prog)
	require.Equal(t, []string{"minus"}, rep.Targets(30))
}

func TestAnalyzeReturnOfFunctionPointer(t *testing.T) {
	prog, err := irtext.ParseString("t.ir", `
func @plus(i32 %a, i32 %b) -> i32 {
entry:
  ret %a
}

func @minus(i32 %a, i32 %b) -> i32 {
entry:
  ret %a
}

func @pick(i1 %c, i32 %a, i32 %b) -> i32 {
entry:
  br %c, t, f
t:
  jmp join
f:
  jmp join
join:
  %fp = phi [ @plus : t ], [ @minus : f ]
  ret %fp
}

func @main(i1 %c, i32 %a, i32 %b) -> i32 {
entry:
  %g = call @pick(%c, %a, %b) line 41
  %r = call %g(%a, %b) line 41
  ret %r
}
`)
	require.NoError(t, err)

	rep := Analyze(prog)
	require.Equal(t, []string{"minus", "pick", "plus"}, rep.Targets(41))
}

func TestAnalyzeRecursionThroughPointerTerminates(t *testing.T) {
	prog, err := irtext.ParseString("t.ir", `
func @g() -> void {
entry:
  %c = alloca i32
  store @g, %c
  %fp = load %c
  call %fp() line 50
  ret
}
`)
	require.NoError(t, err)

	rep := Analyze(prog)
	require.Equal(t, []string{"g"}, rep.Targets(50))
}

package syntactic

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ssaflow/internal/irtext"
	"ssaflow/internal/report"
)

func TestDirectCallIsReported(t *testing.T) {
	prog, err := irtext.ParseString("t.ir", `
func @plus(i32 %a, i32 %b) -> i32 {
entry:
  ret %a
}
func @foo() -> i32 {
entry:
  %r = call @plus(%r, %r) line 10
  ret %r
}
`)
	require.NoError(t, err)

	rep := report.NewReporter()
	NewPass(rep).Run(prog)

	require.Equal(t, []string{"plus"}, rep.Targets(10))
}

func TestPhiOfTwoFunctionSymbolsReportsBoth(t *testing.T) {
	prog, err := irtext.ParseString("t.ir", `
func @plus(i32 %a, i32 %b) -> i32 {
entry:
  ret %a
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
`)
	require.NoError(t, err)

	rep := report.NewReporter()
	NewPass(rep).Run(prog)

	require.Equal(t, []string{"minus", "plus"}, rep.Targets(6))
}

func TestParameterForwardingUnionsAcrossCallSites(t *testing.T) {
	prog, err := irtext.ParseString("t.ir", `
func @plus(i32 %a, i32 %b) -> i32 {
entry:
  ret %a
}
func @minus(i32 %a, i32 %b) -> i32 {
entry:
  ret %a
}
func @clever(fnptr %fp) -> i32 {
entry:
  %r = call %fp() line 12
  ret %r
}
func @main() -> i32 {
entry:
  %a = call @clever(@plus) line 20
  %b = call @clever(@minus) line 21
  ret %a
}
`)
	require.NoError(t, err)

	rep := report.NewReporter()
	NewPass(rep).Run(prog)

	require.Equal(t, []string{"minus", "plus"}, rep.Targets(12))
	require.Equal(t, []string{"clever"}, rep.Targets(20))
	require.Equal(t, []string{"clever"}, rep.Targets(21))
}

package lsp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ssaflow/internal/irtext"
)

func TestParseErrorDiagnosticsOnBadSource(t *testing.T) {
	_, err := irtext.ParseString("t.ir", "func @f( -> void {")
	require.Error(t, err)

	diagnostics := parseErrorDiagnostics(err)
	require.Len(t, diagnostics, 1)
	require.Equal(t, "ssaflow-parser", *diagnostics[0].Source)
}

func TestMissingDebugLineDiagnosticsFindsSyntheticZero(t *testing.T) {
	prog, err := irtext.ParseString("t.ir", `
func @plus(i32 %a, i32 %b) -> i32 {
entry:
  %r = call @plus(%a, %b)
  ret %r
}
`)
	require.NoError(t, err)

	diagnostics := missingDebugLineDiagnostics(prog)
	require.Len(t, diagnostics, 1)
	require.Equal(t, "ssaflow-analysis", *diagnostics[0].Source)
}

func TestMissingDebugLineDiagnosticsEmptyWhenAllLinesPresent(t *testing.T) {
	prog, err := irtext.ParseString("t.ir", `
func @plus(i32 %a, i32 %b) -> i32 {
entry:
  %r = call @plus(%a, %b) line 4
  ret %r
}
`)
	require.NoError(t, err)

	diagnostics := missingDebugLineDiagnostics(prog)
	require.Empty(t, diagnostics)
}

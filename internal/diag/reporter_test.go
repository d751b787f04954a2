package diag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestReporter(enabled bool) (*Reporter, *bytes.Buffer) {
	r := NewReporter("mod.ir", "fn foo() {\n  call plus(1, 2)\n}", enabled)
	buf := &bytes.Buffer{}
	r.out = buf
	return r, buf
}

func TestEmitSuppressedByDefault(t *testing.T) {
	r, buf := newTestReporter(false)
	r.Emit(Diagnostic{Level: Error, Code: ErrUnsupportedConstruct, Message: "vector aggregate", Line: 2})
	require.Empty(t, buf.String())
}

func TestEmitWritesWhenEnabled(t *testing.T) {
	r, buf := newTestReporter(true)
	r.Emit(Diagnostic{Level: Error, Code: ErrUnsupportedConstruct, Message: "vector aggregate", Line: 2})
	require.Contains(t, buf.String(), ErrUnsupportedConstruct)
	require.Contains(t, buf.String(), "call plus(1, 2)")
}

func TestFatalAlwaysWrites(t *testing.T) {
	r, buf := newTestReporter(false)
	r.Fatal(Diagnostic{Level: Error, Code: ErrModuleParse, Message: "unexpected token", Line: 1})
	require.Contains(t, buf.String(), ErrModuleParse)
}

func TestCategory(t *testing.T) {
	require.Equal(t, "input", Category(ErrModuleUnreadable))
	require.Equal(t, "unsupported-construct", Category(ErrUnsupportedConstruct))
	require.Equal(t, "warning", Category(WarnMissingDebugLine))
}

package replshell

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"ssaflow/internal/ir"
	"ssaflow/internal/report"
)

func sampleReport() *report.Reporter {
	rep := report.NewReporter()
	rep.Record(10, "plus")
	rep.Record(10, "minus")
	rep.Record(20, "clever")
	return rep
}

func TestTargetsPrintsSortedNames(t *testing.T) {
	sh := New(&ir.Program{}, sampleReport(), nil)
	var out bytes.Buffer

	sh.Run(strings.NewReader("targets 10\nquit\n"), &out)

	require.Contains(t, out.String(), "minus, plus")
}

func TestTargetsUnknownLineReportsNone(t *testing.T) {
	sh := New(&ir.Program{}, sampleReport(), nil)
	var out bytes.Buffer

	sh.Run(strings.NewReader("targets 99\nquit\n"), &out)

	require.Contains(t, out.String(), "no recorded call targets at line 99")
}

func TestListPrintsEveryLine(t *testing.T) {
	sh := New(&ir.Program{}, sampleReport(), nil)
	var out bytes.Buffer

	sh.Run(strings.NewReader("list\nquit\n"), &out)

	require.Contains(t, out.String(), "10 : minus, plus")
	require.Contains(t, out.String(), "20 : clever")
}

func TestReloadWithoutReloaderReportsUnavailable(t *testing.T) {
	sh := New(&ir.Program{}, sampleReport(), nil)
	var out bytes.Buffer

	sh.Run(strings.NewReader("reload\nquit\n"), &out)

	require.Contains(t, out.String(), "reload unavailable")
}

func TestReloadSwapsReporter(t *testing.T) {
	calls := 0
	reload := func() (*ir.Program, *report.Reporter, error) {
		calls++
		rep := report.NewReporter()
		rep.Record(5, "reloaded-fn")
		return &ir.Program{}, rep, nil
	}
	sh := New(&ir.Program{}, sampleReport(), reload)
	var out bytes.Buffer

	sh.Run(strings.NewReader("reload\ntargets 5\nquit\n"), &out)

	require.Equal(t, 1, calls)
	require.Contains(t, out.String(), "reloaded-fn")
}

func TestUnrecognizedCommand(t *testing.T) {
	sh := New(&ir.Program{}, sampleReport(), nil)
	var out bytes.Buffer

	sh.Run(strings.NewReader("bogus\nquit\n"), &out)

	require.Contains(t, out.String(), `unrecognized command "bogus"`)
}

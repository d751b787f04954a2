package report

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordUnionsTargetsSharingALine(t *testing.T) {
	r := NewReporter()
	r.Record(6, "minus")
	r.Record(6, "plus")
	r.Record(6, "minus")

	require.Equal(t, []string{"minus", "plus"}, r.Targets(6))
}

func TestLinesSortedAscending(t *testing.T) {
	r := NewReporter()
	r.Record(20, "clever")
	r.Record(6, "plus")
	r.Record(12, "clever")

	require.Equal(t, []int{6, 12, 20}, r.Lines())
}

func TestStringFormat(t *testing.T) {
	r := NewReporter()
	r.Record(10, "plus")
	r.Record(6, "minus")
	r.Record(6, "plus")

	require.Equal(t, "6 : minus, plus\n10 : plus\n", r.String())
}

func TestEmptyReporter(t *testing.T) {
	r := NewReporter()
	require.Empty(t, r.Lines())
	require.Equal(t, "", r.String())
}

package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Level is a diagnostic's severity.
type Level string

const (
	Error Level = "error"
	Info  Level = "info"
)

// Diagnostic is a single reportable condition, anchored at a source line
// (spec.md's DebugLocation is line-only — there is no column to point at,
// unlike the teacher's ast.Position).
type Diagnostic struct {
	Level   Level
	Code    string
	Message string
	Line    int // 0 means "no known location"
}

// Reporter renders Diagnostics as caret-style, colored lines to an
// io.Writer (normally os.Stderr), gated by the CLI's --stderr/-e flag
// (spec.md §6). The teacher's ErrorReporter underlines a column span;
// because this domain's locations are line-only, the underline instead
// spans the whole source line.
type Reporter struct {
	out      io.Writer
	filename string
	lines    []string
	enabled  bool
}

// NewReporter builds a Reporter over source, used to render the context
// line a Diagnostic points at. enabled mirrors whether --stderr/-e was
// passed; when false, Emit is a no-op (diagnostics suppressed by default,
// spec.md §6), but Fatal still always writes (input errors are always
// reported, spec.md §7).
func NewReporter(filename, source string, enabled bool) *Reporter {
	return &Reporter{
		out:      os.Stderr,
		filename: filename,
		lines:    strings.Split(source, "\n"),
		enabled:  enabled,
	}
}

// Emit writes d to stderr if diagnostics are enabled; otherwise it is
// absorbed silently (spec.md §7 "recoverable conditions are absorbed
// locally").
func (r *Reporter) Emit(d Diagnostic) {
	if !r.enabled {
		return
	}
	r.write(d)
}

// Fatal always writes d, regardless of whether --stderr/-e was passed —
// reserved for the one unconditional diagnostic spec.md §7 calls for: the
// input error that aborts the process.
func (r *Reporter) Fatal(d Diagnostic) {
	r.write(d)
}

func (r *Reporter) write(d Diagnostic) {
	levelColor := color.New(color.FgRed, color.Bold).SprintFunc()
	if d.Level == Info {
		levelColor = color.New(color.FgBlue, color.Bold).SprintFunc()
	}
	dim := color.New(color.Faint).SprintFunc()

	fmt.Fprintf(r.out, "%s[%s]: %s\n", levelColor(string(d.Level)), d.Code, d.Message)
	fmt.Fprintf(r.out, "  %s %s:%d\n", dim("-->"), r.filename, d.Line)

	if d.Line > 0 && d.Line <= len(r.lines) {
		line := r.lines[d.Line-1]
		fmt.Fprintf(r.out, "  %s %s\n", dim("│"), line)
		fmt.Fprintf(r.out, "  %s %s\n", dim("│"), levelColor(strings.Repeat("^", max(1, len(strings.TrimRight(line, " \t"))))))
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

package irtext

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"ssaflow/internal/ir"
)

// ParseFile reads path and returns the built ir.Program, or a parse/read
// error. Mirrors the teacher's grammar.ParseFile: read, build the
// participle parser, parse, report with a caret on failure.
func ParseFile(path string) (*ir.Program, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseString(path, string(source))
}

// ParseString parses source (named path for diagnostics) into an
// ir.Program.
func ParseString(path, source string) (*ir.Program, error) {
	parser, err := participle.Build[Program](
		participle.Lexer(IRLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(5),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}

	prog, err := parser.ParseString(path, source)
	if err != nil {
		return nil, err
	}

	return build(path, prog)
}

// ReportParseError prints a caret-style diagnostic for err, the way the
// teacher's cmd/kanso-cli.reportParseError does, pointed at src.
func ReportParseError(src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		color.Red("unexpected error: %s", err)
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		color.Red("syntax error at unknown location: %s", err)
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", max(0, pos.Column-1)) + "^"

	color.Red("syntax error in %s at line %d, column %d:", pos.Filename, pos.Line, pos.Column)
	fmt.Println(line)
	color.HiRed(caret)
	fmt.Printf("-> %s\n", pe.Message())
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

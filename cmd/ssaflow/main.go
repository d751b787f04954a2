package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"ssaflow/internal/diag"
	"ssaflow/internal/intrinsics"
	"ssaflow/internal/ir"
	"ssaflow/internal/ir/passes"
	"ssaflow/internal/irtext"
	"ssaflow/internal/pointer"
	"ssaflow/internal/replshell"
	"ssaflow/internal/report"
	"ssaflow/internal/syntactic"
)

func main() {
	var stderrFlag, stderrLong, fast, repl bool
	flag.BoolVar(&stderrFlag, "e", false, "enable diagnostic logging to stderr")
	flag.BoolVar(&stderrLong, "stderr", false, "enable diagnostic logging to stderr")
	flag.BoolVar(&fast, "fast", false, "use the syntactic fast-path resolver instead of the full points-to analysis")
	flag.BoolVar(&repl, "repl", false, "after analysis, start an interactive query shell instead of printing the report")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: ssaflow [--stderr|-e] [--fast] [--repl] <module.ir>")
		flag.PrintDefaults()
	}
	flag.Parse()

	diagnostics := stderrFlag || stderrLong

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	path := flag.Arg(0)

	source, err := os.ReadFile(path)
	if err != nil {
		diag.NewReporter(path, "", true).Fatal(diag.Diagnostic{
			Level:   diag.Error,
			Code:    diag.ErrModuleUnreadable,
			Message: fmt.Sprintf("failed to read %s: %s", path, err),
		})
		os.Exit(1)
	}

	prog, err := irtext.ParseString(path, string(source))
	if err != nil {
		irtext.ReportParseError(string(source), err)
		diag.NewReporter(path, string(source), true).Fatal(diag.Diagnostic{
			Level:   diag.Error,
			Code:    diag.ErrModuleParse,
			Message: err.Error(),
		})
		os.Exit(1)
	}

	reporter := diag.NewReporter(path, string(source), diagnostics)
	warnMissingDebugLines(prog, reporter)
	warnUnsupportedConstructs(prog, reporter)

	if diagnostics {
		color.New(color.FgGreen).Fprintf(os.Stderr, "resolving %s\n", path)
	}

	rep := resolve(prog, fast)

	if repl {
		replshell.New(prog, rep, func() (*ir.Program, *report.Reporter, error) {
			return reanalyze(path, fast)
		}).Run(os.Stdin, os.Stdout)
		return
	}

	fmt.Print(rep.String())
}

// resolve runs either the full fixedpoint points-to analysis or the
// opt-in syntactic fast path over prog, per spec.md §9's "optional fast
// path, not a compatibility requirement".
func resolve(prog *ir.Program, fast bool) *report.Reporter {
	if !fast {
		return pointer.Analyze(prog)
	}

	rep := report.NewReporter()
	pipeline := passes.NewPipeline()
	pipeline.AddPass(syntactic.NewPass(rep))
	pipeline.Run(prog)
	return rep
}

// reanalyze re-reads and re-resolves path, backing the REPL's "reload"
// command.
func reanalyze(path string, fast bool) (*ir.Program, *report.Reporter, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	prog, err := irtext.ParseString(path, string(source))
	if err != nil {
		return nil, nil, err
	}
	return prog, resolve(prog, fast), nil
}

// warnMissingDebugLines emits a diag warning for every call site whose
// debug line is the synthetic 0 (spec.md §7 "Missing debug line").
func warnMissingDebugLines(prog *ir.Program, reporter *diag.Reporter) {
	for _, fn := range prog.Functions {
		for _, b := range fn.Blocks {
			for _, inst := range b.Instructions {
				call, ok := inst.(*ir.Call)
				if !ok || call.DebugLine != 0 {
					continue
				}
				name := "<indirect>"
				if call.Callee != nil && call.Callee.Func != nil {
					name = call.Callee.Func.Name
				}
				if intrinsics.IsIntrinsic(name) {
					continue
				}
				reporter.Emit(diag.Diagnostic{
					Level:   diag.Info,
					Code:    diag.WarnMissingDebugLine,
					Message: fmt.Sprintf("call in %s has no debug line, using synthetic line 0", fn.Name),
					Line:    call.Line(),
				})
			}
		}
	}
}

// warnUnsupportedConstructs emits one diag per instruction kind the
// transfer does not model (spec.md §7 "Unsupported construct"): logged
// when diagnostics are enabled, never fatal.
func warnUnsupportedConstructs(prog *ir.Program, reporter *diag.Reporter) {
	for _, fn := range prog.Functions {
		for _, b := range fn.Blocks {
			for _, inst := range b.Instructions {
				unsup, ok := inst.(*ir.Unsupported)
				if !ok {
					continue
				}
				reporter.Emit(diag.Diagnostic{
					Level:   diag.Error,
					Code:    diag.ErrUnsupportedConstruct,
					Message: fmt.Sprintf("%s in %s is not modeled by the points-to transfer; treated as identity", unsup.Kind, fn.Name),
					Line:    unsup.Line(),
				})
			}
		}
	}
}

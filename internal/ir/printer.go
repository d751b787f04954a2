package ir

import (
	"fmt"
	"strings"
)

// Printer renders a Program as readable text, mainly for debugging and for
// golden-file style tests. The output ("function foo(...)", unsigiled
// names, "; line N" comments) is not the syntax internal/irtext parses.
type Printer struct {
	out strings.Builder
}

// Print returns a human-readable rendering of prog.
func Print(prog *Program) string {
	p := &Printer{}
	p.printProgram(prog)
	return p.out.String()
}

func (p *Printer) printProgram(prog *Program) {
	for _, fn := range prog.Functions {
		p.printFunction(fn)
	}
}

func (p *Printer) printFunction(fn *Function) {
	if fn.Declaration() {
		p.writeLine("declare %s(%s)", fn.Name, p.paramList(fn))
		return
	}

	p.writeLine("function %s(%s) {", fn.Name, p.paramList(fn))
	for _, b := range fn.Blocks {
		p.printBlock(b)
	}
	p.writeLine("}")
}

func (p *Printer) paramList(fn *Function) string {
	parts := make([]string, len(fn.Params))
	for i, param := range fn.Params {
		parts[i] = fmt.Sprintf("%s %s", param.Type, param.Name)
	}
	return strings.Join(parts, ", ")
}

func (p *Printer) printBlock(b *BasicBlock) {
	p.writeLine("%s:", b.Label)
	for _, inst := range b.Instructions {
		if line := inst.Line(); line > 0 {
			p.writeLine("  %s  ; line %d", inst, line)
		} else {
			p.writeLine("  %s", inst)
		}
	}
}

func (p *Printer) writeLine(format string, args ...interface{}) {
	p.out.WriteString(fmt.Sprintf(format, args...))
	p.out.WriteString("\n")
}

// Package irtext is the textual SSA IR front-end: a participle grammar and
// builder that turn the module text format consumed by cmd/ssaflow into an
// internal/ir.Program. spec.md §1 treats "IR parsing" as out of scope
// ("consumed from a standard IR text/bitcode reader, not re-specified");
// this package is that reader, built the way the teacher's grammar package
// builds Kanso's own front end (stateful participle lexer, struct-tag
// grammar, ParseFile with caret-style error reporting).
package irtext

import "github.com/alecthomas/participle/v2/lexer"

// IRLexer tokenizes the textual module format:
//
//	func @name(i32 %a, i32 %b) -> i32 {
//	entry:
//	  %t = alloca i32
//	  store %a, %t
//	  %v = load %t
//	  %r = call @plus(%v, %a) line 10
//	  ret %r
//	}
//	declare @minus(i32, i32) -> i32
//
// Global symbols (function names) are sigiled with '@'; local SSA values
// with '%'; everything else is a keyword, punctuation mark, or integer.
var IRLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `;[^\n]*`, nil},
		{"Global", `@[A-Za-z_][A-Za-z0-9_.]*`, nil},
		{"Local", `%[A-Za-z_][A-Za-z0-9_]*`, nil},
		{"Ident", `[A-Za-z_][A-Za-z0-9_]*`, nil},
		{"Integer", `-?[0-9]+`, nil},
		{"Arrow", `->`, nil},
		{"Punct", `[{}()\[\],:*]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})

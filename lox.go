// Package lox is the core's single entry point: Run(source, mode) scans,
// parses, resolves, and evaluates one chunk of source against a shared
// error sink and interpreter, exactly the run(source, mode) → {had_error,
// had_runtime_error} contract SPEC_FULL.md §1 hands to the CLI and REPL.
// Neither of those collaborators touches the lexer/parser/resolver/interp
// packages directly; they only see this facade and the error sink it
// exposes.
package lox

import (
	"io"

	"github.com/hearthscript/lox/ast"
	"github.com/hearthscript/lox/errs"
	"github.com/hearthscript/lox/interp"
	"github.com/hearthscript/lox/lexer"
	"github.com/hearthscript/lox/parser"
	"github.com/hearthscript/lox/resolver"
)

// Mode selects whether a Run reports the REPL auto-print behavior.
type Mode int

const (
	// File executes source without printing bare expression results.
	File Mode = iota
	// REPL additionally prints the value of any top-level expression
	// statement that is not an assignment.
	REPL
)

// Lox owns the error sink and the one Interpreter instance that persists
// across calls to Run — in REPL mode this is what lets globals declared
// on one line stay visible on the next (SPEC_FULL.md §5).
type Lox struct {
	Sink *errs.Sink
	it   *interp.Interpreter
}

// New builds a Lox session reporting errors to errOut and printing
// Echo/REPL values to stdOut.
func New(errOut, stdOut io.Writer) *Lox {
	sink := errs.New(errOut)
	it := interp.New(sink)
	it.Out = stdOut
	return &Lox{Sink: sink, it: it}
}

// Run scans, parses, resolves, and (if no compile-time error occurred)
// interprets source. File-mode callers should stop between phases that
// set HadError (the CLI does this by checking l.Sink.HadError/HadRuntimeError
// after Run returns); REPL callers instead call l.Reset() before the next
// line.
func (l *Lox) Run(source string, mode Mode) {
	toks := lexer.New(source, l.Sink).ScanTokens()
	if l.Sink.HadError {
		return
	}

	stmts := parser.New(toks, l.Sink).Parse()
	if l.Sink.HadError {
		return
	}

	resolver.New(l.Sink).Resolve(stmts)
	if l.Sink.HadError {
		return
	}

	l.it.Interpret(stmts, mode == REPL)
}

// Parse exposes the statement tree without interpreting it, for the
// --debug pretty-printer path (cmd/lox).
func (l *Lox) Parse(source string) []ast.Stmt {
	toks := lexer.New(source, l.Sink).ScanTokens()
	if l.Sink.HadError {
		return nil
	}
	return parser.New(toks, l.Sink).Parse()
}

// Reset clears both error flags between REPL lines so one bad line does
// not poison the rest of the session.
func (l *Lox) Reset() {
	l.Sink.Reset()
}

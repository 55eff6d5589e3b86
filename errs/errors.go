// Package errs is the interpreter's error sink: an owned struct (per
// SPEC_FULL.md §9's "Global state" note, not a package-level global) that
// every phase of the pipeline reports through, and that the CLI/REPL
// inspect afterwards via HadError/HadRuntimeError.
package errs

import (
	"fmt"
	"io"

	"github.com/hearthscript/lox/token"
)

// Sink records and reports scan, parse, and runtime errors to a writer
// (normally os.Stderr). It is constructed once per session (lox.New); the
// REPL clears its flags with Reset between lines, and the CLI reads the two
// flags to decide on an exit code.
type Sink struct {
	Out             io.Writer
	HadError        bool
	HadRuntimeError bool
}

// New builds a Sink writing reports to w.
func New(w io.Writer) *Sink {
	return &Sink{Out: w}
}

// Reset clears both error flags, used by the REPL between lines so a bad
// line does not poison the rest of the session.
func (s *Sink) Reset() {
	s.HadError = false
	s.HadRuntimeError = false
}

// ScanError reports a scan-phase error. where is usually the offending
// character.
func (s *Sink) ScanError(line int, where, message string) {
	s.report("SCAN", line, where, message)
}

// ParseError reports a parse-phase error anchored on tok (EOF tokens
// report "end" as the location).
func (s *Sink) ParseError(tok token.Token, message string) {
	where := tok.Lexeme
	if tok.Kind == token.EOF {
		where = "end"
	}
	s.report("PARSE", tok.Line, where, message)
}

// ResolveError reports a resolver-phase static-analysis error. The
// resolver's errors are parse-phase errors per SPEC_FULL.md §4.3/§7 (they
// set HadError, not HadRuntimeError).
func (s *Sink) ResolveError(tok token.Token, message string) {
	s.ParseError(tok, message)
}

// RuntimeError is the error type raised during evaluation; it carries the
// offending token so the sink can report its lexeme and line.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

// NewRuntimeError builds a RuntimeError anchored on tok.
func NewRuntimeError(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

// RuntimeErr reports a runtime error and sets HadRuntimeError.
func (s *Sink) RuntimeErr(err *RuntimeError) {
	s.HadRuntimeError = true
	fmt.Fprintf(s.Out, "[RUNTIME ERROR]\n%s\nat [ '%s' ]\non [ Ln : %d ]\n",
		err.Message, err.Token.Lexeme, err.Token.Line)
}

func (s *Sink) report(kind string, line int, where, message string) {
	s.HadError = true
	fmt.Fprintf(s.Out, "[%s ERROR]\n%s\nat [ '%s' ]\non [ Ln : %d ]\n", kind, message, where, line)
}

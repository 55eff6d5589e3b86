// Package repl implements the interactive read-eval-print loop: one line
// of source at a time, against the same persistent Lox session, until the
// user types exit or sends EOF. Adapted from the teacher's repl/repl.go
// (the Repl struct's banner fields, its readline-backed Start loop, its
// color scheme) but rewired onto github.com/hearthscript/lox instead of
// eval.Evaluator, and onto the error sink's HadError/HadRuntimeError flags
// instead of panic/recover — a bad line here reports through the sink and
// the loop continues, it never recovers from a Go panic.
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/hearthscript/lox"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the cosmetic banner fields the CLI fills in, plus the prompt
// readline shows at each line.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
}

// New builds a Repl with the given banner fields.
func New(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// redWriter renders every write it receives in red, so the error sink's
// plain-text banners come out colored without the sink itself knowing
// about fatih/color.
type redWriter struct{ w io.Writer }

func (r redWriter) Write(p []byte) (int, error) {
	redColor.Fprint(r.w, string(p))
	return len(p), nil
}

// yellowWriter renders every write it receives in yellow, matching the
// teacher's REPL which colors evaluation results yellow.
type yellowWriter struct{ w io.Writer }

func (y yellowWriter) Write(p []byte) (int, error) {
	yellowColor.Fprint(y.w, string(p))
	return len(p), nil
}

// PrintBannerInfo writes the startup banner to writer.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to lox!")
	cyanColor.Fprintf(writer, "%s\n", "Type your code and press enter")
	cyanColor.Fprintf(writer, "%s\n", "Type 'exit' to quit")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the REPL loop until EOF or a line equal to exit. One lox.Lox
// session persists across every line, so a variable declared on one line
// is visible on the next (SPEC_FULL.md §5).
func (r *Repl) Start(writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.NewEx(&readline.Config{Prompt: r.Prompt, Stdout: writer})
	if err != nil {
		redColor.Fprintf(writer, "[RUNTIME ERROR]\ncould not start line editor: %s\n", err)
		return
	}
	defer rl.Close()

	session := lox.New(redWriter{writer}, yellowWriter{writer})

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" {
			writer.Write([]byte("Good Bye!\n"))
			return
		}
		rl.SaveHistory(line)

		session.Reset()
		session.Run(line, lox.REPL)
	}
}

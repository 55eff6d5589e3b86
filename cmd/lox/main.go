// Command lox is the interpreter's entry point: no argument starts a
// REPL, one path argument executes a file, and --debug requests the
// pretty-printer instead of execution. Adapted from the teacher's
// main/main.go (banner/version/author vars, runFile, showHelp/showVersion,
// the red/yellow/cyan color scheme) with the TCP server mode and the
// REPL's /scope command dropped — neither has a SPEC_FULL.md counterpart
// (see DESIGN.md).
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/hearthscript/lox"
	"github.com/hearthscript/lox/ast"
	"github.com/hearthscript/lox/repl"
)

var (
	version = "v1.0.0"
	author  = "hearthscript"
	license = "MIT"
	prompt  = "lox >>> "
	line    = "----------------------------------------------------------------"
	banner  = `
 ██╗      ██████╗ ██╗  ██╗
 ██║     ██╔═══██╗╚██╗██╔╝
 ██║     ██║   ██║ ╚███╔╝
 ██║     ██║   ██║ ██╔██╗
 ███████╗╚██████╔╝██╔╝ ██╗
 ╚══════╝ ╚═════╝ ╚═╝  ╚═╝
`
)

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

func main() {
	args := os.Args[1:]

	if len(args) > 0 {
		switch args[0] {
		case "--help", "-h":
			showHelp()
			os.Exit(0)
		case "--version", "-v":
			showVersion()
			os.Exit(0)
		}
	}

	debug := false
	var path string
	for _, a := range args {
		if a == "--debug" {
			debug = true
			continue
		}
		path = a
	}

	if path == "" {
		repler := repl.New(banner, version, author, line, license, prompt)
		repler.Start(os.Stdout)
		return
	}

	os.Exit(runFile(path, debug))
}

// runFile reads and executes (or, with debug set, pretty-prints) path,
// returning the process exit code: 0 on success, 65 for a compile-time
// error, 70 for a runtime error.
func runFile(path string, debug bool) int {
	content, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR]\nCould not read file '%s': %v\n", path, err)
		return 1
	}
	source := string(content)

	session := lox.New(os.Stderr, os.Stdout)

	if debug {
		stmts := session.Parse(source)
		if session.Sink.HadError {
			return 65
		}
		fmt.Print(ast.NewPrinter().Print(stmts))
		return 0
	}

	session.Run(source, lox.File)
	if session.Sink.HadError {
		return 65
	}
	if session.Sink.HadRuntimeError {
		return 70
	}
	return 0
}

func showHelp() {
	cyanColor.Println("lox - a tree-walking scripting language")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	yellowColor.Println("  lox                    Start interactive REPL mode")
	yellowColor.Println("  lox <path-to-file>     Execute a lox script")
	yellowColor.Println("  lox --debug <path>     Pretty-print a script's parse tree instead of running it")
	yellowColor.Println("  lox --help             Display this help message")
	yellowColor.Println("  lox --version          Display version information")
	cyanColor.Println("")
	cyanColor.Println("REPL:")
	yellowColor.Println("  exit                   Exit the REPL")
}

func showVersion() {
	cyanColor.Println("lox - a tree-walking scripting language")
	cyanColor.Printf("Version: %s\n", version)
	cyanColor.Printf("License: %s\n", license)
	cyanColor.Printf("Author : %s\n", author)
}

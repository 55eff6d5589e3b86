package ast

import (
	"bytes"
	"fmt"
)

// Printer renders a parenthesized, indented rendering of a statement list,
// adapted from the teacher's own PrintingVisitor (root print_visitor.go):
// same indent-tracking buffer-writer idea, rewired to walk this package's
// tagged-sum tree with a type switch instead of double-dispatch Accept
// calls.
type Printer struct {
	indent int
	buf    bytes.Buffer
}

const printerIndentSize = 2

// NewPrinter builds an empty Printer ready to Print a statement list.
func NewPrinter() *Printer {
	return &Printer{}
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteByte(' ')
	}
}

func (p *Printer) line(format string, args ...any) {
	p.writeIndent()
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteByte('\n')
}

// Print renders stmts and returns the accumulated text.
func (p *Printer) Print(stmts []Stmt) string {
	for _, s := range stmts {
		p.printStmt(s)
	}
	return p.buf.String()
}

func (p *Printer) printStmt(s Stmt) {
	switch n := s.(type) {
	case *Block:
		p.line("(block")
		p.indent += printerIndentSize
		for _, inner := range n.Stmts {
			p.printStmt(inner)
		}
		p.indent -= printerIndentSize
		p.line(")")
	case *Break:
		p.line("(break)")
	case *Continue:
		p.line("(continue)")
	case *Class:
		super := "<none>"
		if n.Superclass != nil {
			super = n.Superclass.Name.Lexeme
		}
		p.line("(class %s < %s", n.Name.Lexeme, super)
		p.indent += printerIndentSize
		for _, m := range n.Methods {
			p.line("(method %s)", m.Name.Lexeme)
		}
		p.indent -= printerIndentSize
		p.line(")")
	case *Const:
		p.line("(const %s %s)", n.Name.Lexeme, p.exprStr(n.Init))
	case *Echo:
		p.line("(echo %s)", p.exprStr(n.Value))
	case *Expression:
		p.line("%s", p.exprStr(n.Value))
	case *For:
		p.line("(for)")
		p.indent += printerIndentSize
		if n.Init != nil {
			p.printStmt(n.Init)
		}
		p.line("(cond %s)", p.exprStr(n.Cond))
		p.printStmt(n.Body)
		p.indent -= printerIndentSize
	case *Function:
		p.line("(fun %s)", n.Name.Lexeme)
		p.indent += printerIndentSize
		for _, inner := range n.Body {
			p.printStmt(inner)
		}
		p.indent -= printerIndentSize
	case *If:
		p.line("(if %s", p.exprStr(n.Cond))
		p.indent += printerIndentSize
		p.printStmt(n.Then)
		if n.Else != nil {
			p.printStmt(n.Else)
		}
		p.indent -= printerIndentSize
		p.line(")")
	case *Return:
		if n.Value != nil {
			p.line("(return %s)", p.exprStr(n.Value))
		} else {
			p.line("(return)")
		}
	case *Var:
		p.line("(%s %s %s)", n.Keyword.Lexeme, n.Name.Lexeme, p.exprStr(n.Init))
	case *While:
		p.line("(while %s", p.exprStr(n.Cond))
		p.indent += printerIndentSize
		p.printStmt(n.Body)
		p.indent -= printerIndentSize
		p.line(")")
	default:
		p.line("(unknown-stmt)")
	}
}

func (p *Printer) exprStr(e Expr) string {
	if e == nil {
		return "<none>"
	}
	switch n := e.(type) {
	case *Assign:
		return fmt.Sprintf("(%s %s %s)", n.Op.Lexeme, n.Name.Lexeme, p.exprStr(n.Value))
	case *Binary:
		return fmt.Sprintf("(%s %s %s)", n.Op.Lexeme, p.exprStr(n.Left), p.exprStr(n.Right))
	case *Call:
		args := ""
		for _, a := range n.Args {
			args += " " + p.exprStr(a)
		}
		return fmt.Sprintf("(call %s%s)", p.exprStr(n.Callee), args)
	case *Conditional:
		return fmt.Sprintf("(?: %s %s %s)", p.exprStr(n.Cond), p.exprStr(n.Then), p.exprStr(n.Else))
	case *Get:
		return fmt.Sprintf("(get %s %s)", p.exprStr(n.Obj), n.Name.Lexeme)
	case *Grouping:
		return fmt.Sprintf("(group %s)", p.exprStr(n.Inner))
	case *Literal:
		return fmt.Sprintf("%v", n.Value)
	case *Logical:
		return fmt.Sprintf("(%s %s %s)", n.Op.Lexeme, p.exprStr(n.Left), p.exprStr(n.Right))
	case *Self:
		return "self"
	case *Set:
		return fmt.Sprintf("(set %s %s %s)", p.exprStr(n.Obj), n.Name.Lexeme, p.exprStr(n.Value))
	case *Super:
		return fmt.Sprintf("(super.%s)", n.Method.Lexeme)
	case *Unary:
		return fmt.Sprintf("(%s %s)", n.Op.Lexeme, p.exprStr(n.Right))
	case *Variable:
		return n.Name.Lexeme
	default:
		return "<unknown-expr>"
	}
}

// Package ast defines the syntax tree produced by the parser: one Go
// interface per node family (Expr, Stmt), implemented only by that
// family's concrete node pointers, dispatched with a type switch rather
// than a Visitor's double dispatch.
package ast

import "github.com/hearthscript/lox/token"

// Expr is implemented by every expression node.
type Expr interface {
	exprNode()
}

// Assign is a variable assignment: name (op) value (a field assignment is
// a Set instead). Op is the
// token kind of the assignment operator (=, -=, %=, +=, /=, *=). Depth is
// filled in by the resolver: nil means "not found locally, treat as
// global"; otherwise it is the number of environment frames to walk.
type Assign struct {
	Name  token.Token
	Op    token.Token
	Value Expr
	Depth *int
}

func (*Assign) exprNode() {}

// Binary is a two-operand infix expression.
type Binary struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

func (*Binary) exprNode() {}

// Call is a function/method invocation: callee(args...). Paren is the
// closing ')' token, kept for error reporting.
type Call struct {
	Callee Expr
	Paren  token.Token
	Args   []Expr
}

func (*Call) exprNode() {}

// Conditional is the ternary operator: cond ? then : else.
type Conditional struct {
	Cond Expr
	Then Expr
	Else Expr
}

func (*Conditional) exprNode() {}

// Get reads a property off an object: obj.name.
type Get struct {
	Obj  Expr
	Name token.Token
}

func (*Get) exprNode() {}

// Grouping is a parenthesized expression, kept distinct so the printer and
// precedence-sensitive transforms can see it.
type Grouping struct {
	Inner Expr
}

func (*Grouping) exprNode() {}

// Literal is a constant value baked into the source: a number, string,
// bool, or null.
type Literal struct {
	Value any
}

func (*Literal) exprNode() {}

// Logical is && or ||, kept distinct from Binary because it
// short-circuits.
type Logical struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

func (*Logical) exprNode() {}

// Self is a bare `this`/`self` reference.
type Self struct {
	Keyword token.Token
	Depth   *int
}

func (*Self) exprNode() {}

// Set writes a property on an object: obj.name = value.
type Set struct {
	Obj   Expr
	Name  token.Token
	Value Expr
}

func (*Set) exprNode() {}

// Super is a `super.method` reference.
type Super struct {
	Keyword token.Token
	Method  token.Token
	Depth   *int
}

func (*Super) exprNode() {}

// Unary is a single-operand prefix expression (! or -).
type Unary struct {
	Op    token.Token
	Right Expr
}

func (*Unary) exprNode() {}

// Variable is a bare name reference.
type Variable struct {
	Name  token.Token
	Depth *int
}

func (*Variable) exprNode() {}

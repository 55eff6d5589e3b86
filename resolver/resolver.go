// Package resolver performs the single static pass between parsing and
// evaluation: it walks the AST once, determines how many environment
// frames separate each variable/self/super use from its declaration, and
// writes that count directly onto the AST node (see SPEC_FULL.md §3 on
// why this project keys by inline field rather than node identity).
//
// The teacher (go-mix) has no equivalent static pass — it resolves names
// dynamically through scope.Scope at evaluation time — so this package is
// new code written in the teacher's idiom (small struct, owned state, no
// package globals) rather than an adaptation of an existing teacher file;
// its behavior is grounded on original_source/src/parser/resolver.py.
package resolver

import (
	"github.com/hearthscript/lox/ast"
	"github.com/hearthscript/lox/errs"
	"github.com/hearthscript/lox/token"
)

type functionType int

const (
	funcNone functionType = iota
	funcFunction
	funcInitializer
	funcMethod
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// Resolver is constructed once per parse and discarded after Resolve
// returns; it never executes code, it only annotates the tree and reports
// to the error sink.
type Resolver struct {
	sink            *errs.Sink
	scopes          []map[string]bool
	currentFunction functionType
	currentClass    classType
}

// New builds a Resolver reporting static errors to sink.
func New(sink *errs.Sink) *Resolver {
	return &Resolver{sink: sink}
}

// Resolve walks a whole program's statement list.
func (r *Resolver) Resolve(stmts []ast.Stmt) {
	r.resolveStmts(stmts)
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) beginScope() { r.scopes = append(r.scopes, map[string]bool{}) }

func (r *Resolver) endScope() { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.sink.ResolveError(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveLocal scans the scope stack from innermost out; when name is
// found at stack index i, the node is d = len(scopes)-1-i frames away.
// depthOut is a pointer to the node's Depth field; it is left nil
// (untouched) if the name is never found, meaning "treat as global".
func (r *Resolver) resolveLocal(name token.Token, depthOut **int) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			d := len(r.scopes) - 1 - i
			*depthOut = &d
			return
		}
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(n.Stmts)
		r.endScope()
	case *ast.Break:
		// nothing to resolve; loop-depth validity was already checked by the parser.
	case *ast.Continue:
	case *ast.Class:
		r.resolveClass(n)
	case *ast.Const:
		r.declare(n.Name)
		r.resolveExpr(n.Init)
		r.define(n.Name)
	case *ast.Echo:
		r.resolveExpr(n.Value)
	case *ast.Expression:
		r.resolveExpr(n.Value)
	case *ast.For:
		// Corrected REDESIGN FLAG: the initializer is a statement, resolved
		// with resolveStmt, not resolveExpr. The loop gets its own scope,
		// matching the environment the interpreter's execFor opens for it.
		r.beginScope()
		if n.Init != nil {
			r.resolveStmt(n.Init)
		}
		r.resolveExpr(n.Cond)
		r.resolveStmt(n.Body)
		r.endScope()
	case *ast.Function:
		r.declare(n.Name)
		r.define(n.Name)
		r.resolveFunction(n.Params, n.Body, funcFunction)
	case *ast.If:
		r.resolveExpr(n.Cond)
		r.resolveStmt(n.Then)
		if n.Else != nil {
			r.resolveStmt(n.Else)
		}
	case *ast.Return:
		if r.currentFunction == funcNone {
			r.sink.ResolveError(n.Keyword, "Can't return from top-level code.")
		}
		if n.Value != nil {
			if r.currentFunction == funcInitializer {
				r.sink.ResolveError(n.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(n.Value)
		}
	case *ast.Var:
		r.declare(n.Name)
		if n.Init != nil {
			r.resolveExpr(n.Init)
		}
		r.define(n.Name)
	case *ast.While:
		// Corrected REDESIGN FLAG: no misnamed receiver, nothing else
		// structurally different from If's condition/body resolution.
		r.resolveExpr(n.Cond)
		r.resolveStmt(n.Body)
	}
}

func (r *Resolver) resolveClass(n *ast.Class) {
	enclosingClass := r.currentClass
	r.currentClass = classClass

	r.declare(n.Name)
	r.define(n.Name)

	if n.Superclass != nil {
		if n.Superclass.Name.Lexeme == n.Name.Lexeme {
			r.sink.ResolveError(n.Superclass.Name, "A class can't inherit from itself.")
		}
		// Corrected bug from original_source (SPEC_FULL.md §2.3): the
		// Python resolver declares ClassType.SUBCLASS but never assigns it;
		// here a superclass genuinely puts us in SUBCLASS state.
		r.currentClass = classSubclass
		r.resolveVariableLike(n.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true
	r.scopes[len(r.scopes)-1]["self"] = true

	for _, m := range n.Methods {
		fnType := funcMethod
		if m.Name.Lexeme == "init" || m.Name.Lexeme == n.Name.Lexeme {
			fnType = funcInitializer
			m.IsInit = true
		}
		r.resolveFunction(m.Params, m.Body, fnType)
	}

	r.endScope()

	if n.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
}

func (r *Resolver) resolveFunction(params []token.Token, body []ast.Stmt, fnType functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = fnType

	r.beginScope()
	for _, p := range params {
		r.declare(p)
		r.define(p)
	}
	r.resolveStmts(body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) resolveExpr(e ast.Expr) {
	switch n := e.(type) {
	case nil:
		return
	case *ast.Assign:
		r.resolveExpr(n.Value)
		r.resolveLocal(n.Name, &n.Depth)
	case *ast.Binary:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)
	case *ast.Call:
		r.resolveExpr(n.Callee)
		for _, a := range n.Args {
			r.resolveExpr(a)
		}
	case *ast.Conditional:
		// Corrected REDESIGN FLAG: resolves expr.Cond/Then/Else, not an
		// undefined `stmt` identifier (Go cannot even reference an
		// undeclared identifier, so the corrected form is the only one
		// that compiles).
		r.resolveExpr(n.Cond)
		r.resolveExpr(n.Then)
		r.resolveExpr(n.Else)
	case *ast.Get:
		r.resolveExpr(n.Obj)
	case *ast.Grouping:
		r.resolveExpr(n.Inner)
	case *ast.Literal:
	case *ast.Logical:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)
	case *ast.Self:
		if r.currentClass == classNone {
			r.sink.ResolveError(n.Keyword, "Can't use 'self'/'this' outside of a class.")
			return
		}
		r.resolveLocal(n.Keyword, &n.Depth)
	case *ast.Set:
		r.resolveExpr(n.Value)
		r.resolveExpr(n.Obj)
	case *ast.Super:
		switch r.currentClass {
		case classNone:
			r.sink.ResolveError(n.Keyword, "Can't use 'super' outside of a class.")
		case classClass:
			r.sink.ResolveError(n.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(n.Keyword, &n.Depth)
	case *ast.Unary:
		r.resolveExpr(n.Right)
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][n.Name.Lexeme]; ok && !defined {
				r.sink.ResolveError(n.Name, "Cannot read a local variable within its own initializer.")
			}
		}
		r.resolveLocal(n.Name, &n.Depth)
	}
}

// resolveVariableLike resolves the synthetic *ast.Variable a superclass
// reference is represented as.
func (r *Resolver) resolveVariableLike(v *ast.Variable) {
	r.resolveLocal(v.Name, &v.Depth)
}

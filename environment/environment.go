// Package environment implements the chained name → value tables the
// interpreter reads and writes. Structurally grounded on the teacher's
// scope.Scope (Variables/Consts maps, Parent pointer, LookUp/Bind/Assign
// method shapes), but deliberately without scope.Scope's Copy method:
// Copy snapshots a scope's maps into a new scope, which breaks by-reference
// closure semantics the moment a captured scope is later copied rather
// than shared (see SPEC_FULL.md §8, "closures are by reference", and
// DESIGN.md). Every frame here is an ordinary pointer, shared by every
// closure that captured it.
package environment

import (
	"github.com/hearthscript/lox/errs"
	"github.com/hearthscript/lox/token"
)

// Environment is one lexical frame: a mutable values table, a write-once
// constants table, and an optional enclosing parent.
type Environment struct {
	values    map[string]any
	constants map[string]any
	enclosing *Environment
}

// New creates a frame enclosed by parent (nil for the global frame).
func New(parent *Environment) *Environment {
	return &Environment{
		values:    make(map[string]any),
		constants: make(map[string]any),
		enclosing: parent,
	}
}

// Define installs name into this frame's mutable values table,
// overwriting any prior binding of the same name in this frame.
func (e *Environment) Define(name string, value any) {
	e.values[name] = value
}

// DefineConst installs name into this frame's write-once constants table.
func (e *Environment) DefineConst(name string, value any) {
	e.constants[name] = value
}

// Get resolves tok.Lexeme by checking this frame's values, then its
// constants, then walking to the enclosing frame.
func (e *Environment) Get(tok token.Token) (any, *errs.RuntimeError) {
	if v, ok := e.values[tok.Lexeme]; ok {
		return v, nil
	}
	if v, ok := e.constants[tok.Lexeme]; ok {
		return v, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(tok)
	}
	return nil, errs.NewRuntimeError(tok, "Undefined Variable '%s'.", tok.Lexeme)
}

// Assign sets tok.Lexeme in the nearest enclosing frame whose values table
// already holds it. Assigning into a name held in some frame's constants
// table is a runtime error, as is assigning an undeclared name.
func (e *Environment) Assign(tok token.Token, value any) *errs.RuntimeError {
	if _, ok := e.values[tok.Lexeme]; ok {
		e.values[tok.Lexeme] = value
		return nil
	}
	if _, ok := e.constants[tok.Lexeme]; ok {
		return errs.NewRuntimeError(tok, "Cannot reassign a constant '%s'.", tok.Lexeme)
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(tok, value)
	}
	return errs.NewRuntimeError(tok, "Undefined Variable '%s'.", tok.Lexeme)
}

// ancestor walks exactly d parents up from e.
func (e *Environment) ancestor(d int) *Environment {
	env := e
	for i := 0; i < d; i++ {
		env = env.enclosing
	}
	return env
}

// GetAt reads name directly from the values table of the d-th ancestor (0
// = e itself), bypassing the full chain walk Get performs. Used whenever
// the resolver recorded a depth for the use-site.
func (e *Environment) GetAt(d int, name string) any {
	return e.ancestor(d).values[name]
}

// AssignAt writes name directly into the values table of the d-th
// ancestor.
func (e *Environment) AssignAt(d int, name string, value any) {
	e.ancestor(d).values[name] = value
}

package interp

import (
	"fmt"

	"github.com/hearthscript/lox/ast"
	"github.com/hearthscript/lox/environment"
	"github.com/hearthscript/lox/errs"
	"github.com/hearthscript/lox/token"
)

// Callable is anything that can appear on the left of a call expression:
// a user-defined Function, a Class (constructing an Instance), or a
// NativeFunction such as clock.
type Callable interface {
	Arity() int
	Call(it *Interpreter, args []any) (any, *errs.RuntimeError)
	String() string
}

// NativeFunction wraps a host-provided builtin. The language's only native
// surface is clock (see DESIGN.md: the rest of the original's native
// functions are excluded by spec.md's standard-library Non-goal).
type NativeFunction struct {
	Name  string
	arity int
	fn    func(args []any) any
}

func (n *NativeFunction) Arity() int { return n.arity }

func (n *NativeFunction) Call(it *Interpreter, args []any) (any, *errs.RuntimeError) {
	return n.fn(args), nil
}

func (n *NativeFunction) String() string { return fmt.Sprintf("<native fn %s>", n.Name) }

// Function is a user-defined function or method: its parameter names, its
// body, the environment it closed over at declaration time, and whether it
// is a class initializer (which always returns the bound instance).
type Function struct {
	name    string
	params  []token.Token
	body    []ast.Stmt
	closure *environment.Environment
	isInit  bool
}

func newFunction(name string, params []token.Token, body []ast.Stmt, closure *environment.Environment, isInit bool) *Function {
	return &Function{name: name, params: params, body: body, closure: closure, isInit: isInit}
}

func (f *Function) Arity() int { return len(f.params) }

// Bind returns a copy of f whose closure is a fresh environment, enclosed
// by f's own closure, with both "this" and "self" defined as instance.
// Both names are bound to the instance itself, not to its class — unlike
// the teacher's callFunctionOnObject, which binds self to the struct type
// rather than the receiver (see DESIGN.md, "self binds to the instance").
func (f *Function) Bind(instance *Instance) *Function {
	env := environment.New(f.closure)
	env.Define("this", instance)
	env.Define("self", instance)
	return newFunction(f.name, f.params, f.body, env, f.isInit)
}

func (f *Function) Call(it *Interpreter, args []any) (any, *errs.RuntimeError) {
	callEnv := environment.New(f.closure)
	for i, p := range f.params {
		callEnv.Define(p.Lexeme, args[i])
	}
	sig, err := it.executeBlock(f.body, callEnv)
	if err != nil {
		return nil, err
	}
	if f.isInit {
		return f.closure.GetAt(0, "this"), nil
	}
	if sig.kind == sigReturn {
		return sig.value, nil
	}
	return nil, nil
}

func (f *Function) String() string { return fmt.Sprintf("<fn %s>", f.name) }

// Class is a runtime class object: a name, an optional superclass, and its
// own methods (superclass methods are reached by walking FindMethod up the
// chain, not by copying them down).
type Class struct {
	name       string
	superclass *Class
	methods    map[string]*Function
}

func (c *Class) FindMethod(name string) (*Function, bool) {
	if m, ok := c.methods[name]; ok {
		return m, true
	}
	if c.superclass != nil {
		return c.superclass.FindMethod(name)
	}
	return nil, false
}

// findInitializer returns the method that runs on construction: a method
// named init, or failing that a method whose name equals the class name
// (matching original_source/src/callable/lox_class.py's arity()/call()).
func (c *Class) findInitializer() (*Function, bool) {
	if init, ok := c.FindMethod("init"); ok {
		return init, true
	}
	return c.FindMethod(c.name)
}

func (c *Class) Arity() int {
	if init, ok := c.findInitializer(); ok {
		return init.Arity()
	}
	return 0
}

func (c *Class) Call(it *Interpreter, args []any) (any, *errs.RuntimeError) {
	instance := &Instance{class: c, fields: make(map[string]any)}
	if init, ok := c.findInitializer(); ok {
		if _, err := init.Bind(instance).Call(it, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (c *Class) String() string { return c.name }

// Instance is one object built from a Class: its own field table plus a
// pointer back to the class that defines its methods.
type Instance struct {
	class  *Class
	fields map[string]any
}

// Get resolves a property: fields win over methods, and a found method is
// bound to this instance before being returned.
func (i *Instance) Get(name token.Token) (any, *errs.RuntimeError) {
	if v, ok := i.fields[name.Lexeme]; ok {
		return v, nil
	}
	if m, ok := i.class.FindMethod(name.Lexeme); ok {
		return m.Bind(i), nil
	}
	return nil, errs.NewRuntimeError(name, "Undefined Property '%s'.", name.Lexeme)
}

func (i *Instance) Set(name token.Token, value any) {
	i.fields[name.Lexeme] = value
}

func (i *Instance) String() string { return fmt.Sprintf("<instance %s>", i.class.name) }

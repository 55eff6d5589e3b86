// Package interp walks the resolved AST and evaluates it. Values are plain
// Go values: nil for null, bool, float64 for every number, string, and
// pointers to Function/Class/Instance/NativeFunction for callables — the
// same representation other_examples/1c709b42_archevan-glox's interpreter
// uses (interface{} holding native Go types), chosen over the teacher's
// boxed objects.GoMixObject because this language's value set (numbers,
// strings, bools, null, callables, instances) has no need for the
// teacher's array/map/set/tuple variants. See DESIGN.md.
package interp

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hearthscript/lox/ast"
	"github.com/hearthscript/lox/environment"
	"github.com/hearthscript/lox/errs"
	"github.com/hearthscript/lox/token"
)

// Interpreter owns one global environment and the current environment for
// the statement being executed. One instance persists across REPL lines,
// per spec.md's "owned struct, not package globals" design note. Echo and
// the REPL auto-print rule write to Out, not directly to os.Stdout, so a
// caller (tests, or a future embedder) can redirect it.
type Interpreter struct {
	globals *environment.Environment
	env     *environment.Environment
	sink    *errs.Sink
	Out     io.Writer
}

// New builds an Interpreter with clock installed in globals, printing to
// os.Stdout by default.
func New(sink *errs.Sink) *Interpreter {
	globals := environment.New(nil)
	globals.DefineConst("clock", &NativeFunction{
		Name:  "clock",
		arity: 0,
		fn: func(args []any) any {
			return float64(time.Now().UnixNano()) / float64(time.Second)
		},
	})
	return &Interpreter{globals: globals, env: globals, sink: sink, Out: os.Stdout}
}

// Interpret runs a whole program's statement list. In repl mode, a
// top-level Expression statement whose inner expression is not an Assign
// has its value stringified and printed (spec.md §4.7's REPL auto-print
// rule). A runtime error aborts the remaining statements and is reported
// to the sink; it is never returned to the caller as a Go error, matching
// the contract that control-flow signals and runtime errors are both
// caught here, at the top of interpretation.
func (it *Interpreter) Interpret(stmts []ast.Stmt, repl bool) {
	for _, s := range stmts {
		if repl {
			if exprStmt, ok := s.(*ast.Expression); ok {
				if _, isAssign := exprStmt.Value.(*ast.Assign); !isAssign {
					v, err := it.evaluate(exprStmt.Value)
					if err != nil {
						it.sink.RuntimeErr(err)
						return
					}
					fmt.Fprintln(it.Out, stringify(v))
					continue
				}
			}
		}
		if _, err := it.execute(s); err != nil {
			it.sink.RuntimeErr(err)
			return
		}
	}
}

func (it *Interpreter) execute(s ast.Stmt) (ctrl, *errs.RuntimeError) {
	switch n := s.(type) {
	case *ast.Block:
		return it.executeBlock(n.Stmts, environment.New(it.env))
	case *ast.Break:
		return ctrl{kind: sigBreak}, nil
	case *ast.Continue:
		return ctrl{kind: sigContinue}, nil
	case *ast.Class:
		return it.execClass(n)
	case *ast.Const:
		v, err := it.evaluate(n.Init)
		if err != nil {
			return none, err
		}
		it.env.DefineConst(n.Name.Lexeme, v)
		return none, nil
	case *ast.Echo:
		v, err := it.evaluate(n.Value)
		if err != nil {
			return none, err
		}
		fmt.Fprintln(it.Out, stringify(v))
		return none, nil
	case *ast.Expression:
		_, err := it.evaluate(n.Value)
		return none, err
	case *ast.For:
		return it.execFor(n)
	case *ast.Function:
		fn := newFunction(n.Name.Lexeme, n.Params, n.Body, it.env, false)
		it.env.Define(n.Name.Lexeme, fn)
		return none, nil
	case *ast.If:
		cond, err := it.evaluate(n.Cond)
		if err != nil {
			return none, err
		}
		if truthy(cond) {
			return it.execute(n.Then)
		}
		if n.Else != nil {
			return it.execute(n.Else)
		}
		return none, nil
	case *ast.Return:
		var v any
		if n.Value != nil {
			var err *errs.RuntimeError
			v, err = it.evaluate(n.Value)
			if err != nil {
				return none, err
			}
		}
		return ctrl{kind: sigReturn, value: v}, nil
	case *ast.Var:
		var v any
		if n.Init != nil {
			var err *errs.RuntimeError
			v, err = it.evaluate(n.Init)
			if err != nil {
				return none, err
			}
		}
		it.env.Define(n.Name.Lexeme, v)
		return none, nil
	case *ast.While:
		for {
			cond, err := it.evaluate(n.Cond)
			if err != nil {
				return none, err
			}
			if !truthy(cond) {
				return none, nil
			}
			sig, err := it.execute(n.Body)
			if err != nil {
				return none, err
			}
			switch sig.kind {
			case sigBreak:
				return none, nil
			case sigReturn:
				return sig, nil
			}
		}
	}
	return none, nil
}

// executeBlock runs stmts in env, restoring the interpreter's prior
// environment when done regardless of how execution left the block
// (normal completion, an unwind signal, or an error) — per spec.md §5's
// "reference restored after the block exits, regardless of exit path".
func (it *Interpreter) executeBlock(stmts []ast.Stmt, env *environment.Environment) (ctrl, *errs.RuntimeError) {
	prev := it.env
	it.env = env
	defer func() { it.env = prev }()

	for _, s := range stmts {
		sig, err := it.execute(s)
		if err != nil {
			return none, err
		}
		if sig.kind != sigNone {
			return sig, nil
		}
	}
	return none, nil
}

// execFor implements the corrected REDESIGN FLAG: a continue reaching the
// for statement does not simply propagate like it would out of a while
// body (which would skip the desugared increment appended as Body's last
// statement) — it is caught here, and the increment is still run before
// the next condition check. The increment was resolved inside Body's block
// scope, so it runs in a fresh child of the loop environment. break and
// return propagate unchanged.
func (it *Interpreter) execFor(n *ast.For) (ctrl, *errs.RuntimeError) {
	loopEnv := environment.New(it.env)
	prev := it.env
	it.env = loopEnv
	defer func() { it.env = prev }()

	if n.Init != nil {
		if _, err := it.execute(n.Init); err != nil {
			return none, err
		}
	}

	for {
		cond, err := it.evaluate(n.Cond)
		if err != nil {
			return none, err
		}
		if !truthy(cond) {
			return none, nil
		}

		sig, err := it.execute(n.Body)
		if err != nil {
			return none, err
		}
		switch sig.kind {
		case sigBreak:
			return none, nil
		case sigReturn:
			return sig, nil
		case sigContinue:
			if n.HasIncr {
				blk := n.Body.(*ast.Block)
				incr := blk.Stmts[len(blk.Stmts)-1]
				if _, err := it.executeBlock([]ast.Stmt{incr}, environment.New(it.env)); err != nil {
					return none, err
				}
			}
		}
	}
}

func (it *Interpreter) execClass(n *ast.Class) (ctrl, *errs.RuntimeError) {
	var super *Class
	if n.Superclass != nil {
		v, err := it.evaluate(n.Superclass)
		if err != nil {
			return none, err
		}
		sc, ok := v.(*Class)
		if !ok {
			return none, errs.NewRuntimeError(n.Superclass.Name, "Superclass must be a class.")
		}
		super = sc
	}

	it.env.Define(n.Name.Lexeme, nil)

	classEnv := it.env
	if super != nil {
		classEnv = environment.New(it.env)
		classEnv.Define("super", super)
	}

	methods := make(map[string]*Function, len(n.Methods))
	for _, m := range n.Methods {
		methods[m.Name.Lexeme] = newFunction(m.Name.Lexeme, m.Params, m.Body, classEnv, m.IsInit)
	}

	class := &Class{name: n.Name.Lexeme, superclass: super, methods: methods}

	if err := it.env.Assign(n.Name, class); err != nil {
		return none, err
	}
	return none, nil
}

func (it *Interpreter) evaluate(e ast.Expr) (any, *errs.RuntimeError) {
	switch n := e.(type) {
	case *ast.Assign:
		v, err := it.evaluate(n.Value)
		if err != nil {
			return nil, err
		}
		result := v
		if n.Op.Kind != token.EQ {
			current, err := it.lookup(n.Name, n.Depth)
			if err != nil {
				return nil, err
			}
			delta, err := applyAugmented(n.Op, current, v)
			if err != nil {
				return nil, err
			}
			v = delta
		}
		if n.Depth != nil {
			it.env.AssignAt(*n.Depth, n.Name.Lexeme, v)
		} else if err := it.globals.Assign(n.Name, v); err != nil {
			return nil, err
		}
		return result, nil
	case *ast.Binary:
		return it.evalBinary(n)
	case *ast.Call:
		return it.evalCall(n)
	case *ast.Conditional:
		cond, err := it.evaluate(n.Cond)
		if err != nil {
			return nil, err
		}
		if truthy(cond) {
			return it.evaluate(n.Then)
		}
		return it.evaluate(n.Else)
	case *ast.Get:
		obj, err := it.evaluate(n.Obj)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*Instance)
		if !ok {
			return nil, errs.NewRuntimeError(n.Name, "Only instances have properties.")
		}
		return inst.Get(n.Name)
	case *ast.Grouping:
		return it.evaluate(n.Inner)
	case *ast.Literal:
		return n.Value, nil
	case *ast.Logical:
		left, err := it.evaluate(n.Left)
		if err != nil {
			return nil, err
		}
		if n.Op.Kind == token.OR {
			if truthy(left) {
				return left, nil
			}
		} else {
			if !truthy(left) {
				return left, nil
			}
		}
		return it.evaluate(n.Right)
	case *ast.Self:
		return it.lookup(n.Keyword, n.Depth)
	case *ast.Set:
		obj, err := it.evaluate(n.Obj)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*Instance)
		if !ok {
			return nil, errs.NewRuntimeError(n.Name, "Only instances have fields.")
		}
		v, err := it.evaluate(n.Value)
		if err != nil {
			return nil, err
		}
		inst.Set(n.Name, v)
		return v, nil
	case *ast.Super:
		return it.evalSuper(n)
	case *ast.Unary:
		return it.evalUnary(n)
	case *ast.Variable:
		return it.lookup(n.Name, n.Depth)
	}
	return nil, nil
}

func (it *Interpreter) lookup(name token.Token, depth *int) (any, *errs.RuntimeError) {
	if depth != nil {
		return it.env.GetAt(*depth, name.Lexeme), nil
	}
	return it.globals.Get(name)
}

func (it *Interpreter) evalSuper(n *ast.Super) (any, *errs.RuntimeError) {
	d := 0
	if n.Depth != nil {
		d = *n.Depth
	}
	superAny := it.env.GetAt(d, "super")
	super, _ := superAny.(*Class)
	// "this" is always declared one frame closer than "super".
	thisAny := it.env.GetAt(d-1, "this")
	instance, _ := thisAny.(*Instance)

	method, ok := super.FindMethod(n.Method.Lexeme)
	if !ok {
		return nil, errs.NewRuntimeError(n.Method, "Undefined Property '%s'.", n.Method.Lexeme)
	}
	return method.Bind(instance), nil
}

func (it *Interpreter) evalCall(n *ast.Call) (any, *errs.RuntimeError) {
	callee, err := it.evaluate(n.Callee)
	if err != nil {
		return nil, err
	}
	args := make([]any, len(n.Args))
	for i, a := range n.Args {
		v, err := it.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	fn, ok := callee.(Callable)
	if !ok {
		return nil, errs.NewRuntimeError(n.Paren, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return nil, errs.NewRuntimeError(n.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}
	return fn.Call(it, args)
}

func (it *Interpreter) evalUnary(n *ast.Unary) (any, *errs.RuntimeError) {
	right, err := it.evaluate(n.Right)
	if err != nil {
		return nil, err
	}
	switch n.Op.Kind {
	case token.MINUS:
		num, ok := right.(float64)
		if !ok {
			return nil, errs.NewRuntimeError(n.Op, "Operand must be a number.")
		}
		return -num, nil
	case token.BANG:
		return !truthy(right), nil
	}
	return nil, nil
}

func (it *Interpreter) evalBinary(n *ast.Binary) (any, *errs.RuntimeError) {
	left, err := it.evaluate(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := it.evaluate(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op.Kind {
	case token.PLUS:
		ln, lok := left.(float64)
		rn, rok := right.(float64)
		if lok && rok {
			return ln + rn, nil
		}
		ls, lsok := left.(string)
		rs, rsok := right.(string)
		if lsok && rsok {
			return ls + rs, nil
		}
		if lsok && rok {
			return ls + stringify(rn), nil
		}
		if lok && rsok {
			return stringify(ln) + rs, nil
		}
		return nil, errs.NewRuntimeError(n.Op, "Operands must be numbers or strings.")
	case token.MINUS, token.STAR, token.SLASH, token.MODULUS, token.POWER:
		ln, rn, rerr := numberOperands(n.Op, left, right)
		if rerr != nil {
			return nil, rerr
		}
		switch n.Op.Kind {
		case token.MINUS:
			return ln - rn, nil
		case token.STAR:
			return ln * rn, nil
		case token.SLASH:
			if rn == 0 {
				return nil, errs.NewRuntimeError(n.Op, "Division by zero.")
			}
			return ln / rn, nil
		case token.MODULUS:
			if rn == 0 {
				return nil, errs.NewRuntimeError(n.Op, "Modulo by zero.")
			}
			return math.Mod(ln, rn), nil
		case token.POWER:
			return math.Pow(ln, rn), nil
		}
	case token.GT, token.GTEQ, token.LT, token.LTEQ:
		ln, rn, rerr := numberOperands(n.Op, left, right)
		if rerr != nil {
			return nil, rerr
		}
		switch n.Op.Kind {
		case token.GT:
			return ln > rn, nil
		case token.GTEQ:
			return ln >= rn, nil
		case token.LT:
			return ln < rn, nil
		case token.LTEQ:
			return ln <= rn, nil
		}
	case token.EQEQ:
		return isEqual(left, right), nil
	case token.BANGEQ:
		return !isEqual(left, right), nil
	}
	return nil, nil
}

func numberOperands(op token.Token, left, right any) (float64, float64, *errs.RuntimeError) {
	ln, lok := left.(float64)
	rn, rok := right.(float64)
	if !lok || !rok {
		return 0, 0, errs.NewRuntimeError(op, "Operands must be numbers.")
	}
	return ln, rn, nil
}

func applyAugmented(op token.Token, current, rhs any) (any, *errs.RuntimeError) {
	cn, ok := current.(float64)
	if !ok {
		return nil, errs.NewRuntimeError(op, "Operands must be numbers.")
	}
	rn, ok := rhs.(float64)
	if !ok {
		return nil, errs.NewRuntimeError(op, "Operands must be numbers.")
	}
	switch op.Kind {
	case token.PLUSEQ:
		return cn + rn, nil
	case token.MINUSEQ:
		return cn - rn, nil
	case token.STAREQ:
		return cn * rn, nil
	case token.SLASHEQ:
		if rn == 0 {
			return nil, errs.NewRuntimeError(op, "Division by zero.")
		}
		return cn / rn, nil
	case token.MODEQ:
		if rn == 0 {
			return nil, errs.NewRuntimeError(op, "Modulo by zero.")
		}
		return math.Mod(cn, rn), nil
	}
	return nil, errs.NewRuntimeError(op, "Unsupported augmented assignment operator.")
}

func truthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

func isEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a == b
}

// stringify renders a value the way Echo prints it: null as "null", a
// whole-valued number without a trailing ".0", everything else via its
// natural text form.
func stringify(v any) string {
	if v == nil {
		return "null"
	}
	switch val := v.(type) {
	case float64:
		s := strconv.FormatFloat(val, 'f', -1, 64)
		if strings.HasSuffix(s, ".0") {
			s = strings.TrimSuffix(s, ".0")
		}
		return s
	case bool:
		if val {
			return "true"
		}
		return "false"
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

package interp

import (
	"bytes"
	"testing"

	"github.com/hearthscript/lox/errs"
	"github.com/hearthscript/lox/lexer"
	"github.com/hearthscript/lox/parser"
	"github.com/hearthscript/lox/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run scans, parses, resolves, and interprets src, returning what Echo
// printed and whatever ended up in the error sink.
func run(t *testing.T, src string) (string, *errs.Sink) {
	t.Helper()
	var errBuf bytes.Buffer
	sink := errs.New(&errBuf)

	toks := lexer.New(src, sink).ScanTokens()
	stmts := parser.New(toks, sink).Parse()
	require.False(t, sink.HadError, "unexpected scan/parse error: %s", errBuf.String())

	resolver.New(sink).Resolve(stmts)
	require.False(t, sink.HadError, "unexpected resolve error: %s", errBuf.String())

	it := New(sink)
	var outBuf bytes.Buffer
	it.Out = &outBuf
	it.Interpret(stmts, false)
	return outBuf.String(), sink
}

func TestInterpret_ArithmeticPrecedence(t *testing.T) {
	out, sink := run(t, "echo 1 + 2 * 3;")
	assert.False(t, sink.HadRuntimeError)
	assert.Equal(t, "7\n", out)
}

func TestInterpret_WholeNumberPrintsWithoutTrailingZero(t *testing.T) {
	out, _ := run(t, "echo 6 / 2;")
	assert.Equal(t, "3\n", out)
}

func TestInterpret_StringConcatenationWithNumber(t *testing.T) {
	out, _ := run(t, `echo "count: " + 3;`)
	assert.Equal(t, "count: 3\n", out)
}

func TestInterpret_DivisionByZeroIsRuntimeError(t *testing.T) {
	_, sink := run(t, "echo 1 / 0;")
	assert.True(t, sink.HadRuntimeError)
}

func TestInterpret_ModuloByZeroIsRuntimeError(t *testing.T) {
	_, sink := run(t, "echo 1 % 0;")
	assert.True(t, sink.HadRuntimeError)
}

func TestInterpret_PowerIsRightAssociative(t *testing.T) {
	out, _ := run(t, "echo 2 ** 3 ** 2;")
	assert.Equal(t, "512\n", out)
}

func TestInterpret_TernaryEvaluatesSelectedBranchOnly(t *testing.T) {
	out, _ := run(t, `echo true ? "yes" : "no";`)
	assert.Equal(t, "yes\n", out)
}

func TestInterpret_LogicalOperatorsReturnOperandNotBool(t *testing.T) {
	out, _ := run(t, `echo null || "fallback";`)
	assert.Equal(t, "fallback\n", out)
}

func TestInterpret_AugmentedAssignmentReturnsDeltaNotBinding(t *testing.T) {
	out, _ := run(t, "var x = 10; echo x += 5;")
	assert.Equal(t, "5\n", out)
}

func TestInterpret_ConstReassignmentIsRuntimeError(t *testing.T) {
	_, sink := run(t, "const PI = 3; PI = 4;")
	assert.True(t, sink.HadRuntimeError)
}

func TestInterpret_ClosuresCaptureByReference(t *testing.T) {
	out, _ := run(t, `
		fun makeCounter() {
			var count = 0;
			fun inc() {
				count = count + 1;
				return count;
			}
			return inc;
		}
		var counter = makeCounter();
		echo counter();
		echo counter();
		echo counter();
	`)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestInterpret_InitAlwaysReturnsInstanceEvenWithoutExplicitReturn(t *testing.T) {
	out, _ := run(t, `
		class Point {
			init(x, y) {
				this.x = x;
				this.y = y;
			}
		}
		var p = Point(1, 2);
		echo p.x;
		echo p.y;
	`)
	assert.Equal(t, "1\n2\n", out)
}

func TestInterpret_ConstructorNamedAfterClassActsAsInitializer(t *testing.T) {
	out, _ := run(t, `
		class Foo {
			Foo(x) {
				self.x = x;
			}
		}
		echo Foo(5).x;
	`)
	assert.Equal(t, "5\n", out)
}

func TestInterpret_InitWithBareReturnStillReturnsInstance(t *testing.T) {
	out, _ := run(t, `
		class Thing {
			init() {
				this.ready = true;
				return;
			}
		}
		var t = Thing();
		echo t.ready;
	`)
	assert.Equal(t, "true\n", out)
}

func TestInterpret_SingleInheritanceAndSuperCall(t *testing.T) {
	out, _ := run(t, `
		class Animal {
			speak() {
				echo "...";
			}
		}
		class Dog : Animal {
			speak() {
				super.speak();
				echo "Woof";
			}
		}
		Dog().speak();
	`)
	assert.Equal(t, "...\nWoof\n", out)
}

func TestInterpret_SelfAndThisBothBindToInstance(t *testing.T) {
	out, _ := run(t, `
		class Box {
			init(v) { self.v = v; }
			get() { return this.v; }
		}
		echo Box(42).get();
	`)
	assert.Equal(t, "42\n", out)
}

func TestInterpret_BreakExitsLoopWithoutRunningIncrement(t *testing.T) {
	out, _ := run(t, `
		for (var i = 0; i < 5; i = i + 1) {
			if (i == 2) break;
			echo i;
		}
	`)
	assert.Equal(t, "0\n1\n", out)
}

func TestInterpret_ContinueStillRunsForIncrement(t *testing.T) {
	out, _ := run(t, `
		for (var i = 0; i < 4; i = i + 1) {
			if (i == 1) continue;
			echo i;
		}
	`)
	assert.Equal(t, "0\n2\n3\n", out)
}

func TestInterpret_ContinueWithNoIncrementClauseDoesNotRerunTrailingStatement(t *testing.T) {
	out, _ := run(t, `
		var i = 0;
		for (; i < 5;) {
			if (i == 2) { i = i + 1; continue; }
			echo i;
			i = i + 1;
		}
	`)
	assert.Equal(t, "0\n1\n3\n4\n", out)
}

func TestInterpret_WhileContinueSkipsRestOfBody(t *testing.T) {
	out, _ := run(t, `
		var i = 0;
		while (i < 3) {
			i = i + 1;
			if (i == 2) continue;
			echo i;
		}
	`)
	assert.Equal(t, "1\n3\n", out)
}

func TestInterpret_UndefinedVariableIsRuntimeError(t *testing.T) {
	_, sink := run(t, "echo missing;")
	assert.True(t, sink.HadRuntimeError)
}

func TestInterpret_CallingNonCallableIsRuntimeError(t *testing.T) {
	_, sink := run(t, "var x = 1; x();")
	assert.True(t, sink.HadRuntimeError)
}

func TestInterpret_ArityMismatchIsRuntimeError(t *testing.T) {
	_, sink := run(t, "fun f(a, b) { return a + b; } f(1);")
	assert.True(t, sink.HadRuntimeError)
}

func TestInterpret_ClockIsCallableWithZeroArity(t *testing.T) {
	_, sink := run(t, "echo clock();")
	assert.False(t, sink.HadRuntimeError)
}

package resolver

import (
	"bytes"
	"testing"

	"github.com/hearthscript/lox/ast"
	"github.com/hearthscript/lox/errs"
	"github.com/hearthscript/lox/lexer"
	"github.com/hearthscript/lox/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, src string) ([]ast.Stmt, *errs.Sink) {
	t.Helper()
	var buf bytes.Buffer
	sink := errs.New(&buf)
	toks := lexer.New(src, sink).ScanTokens()
	stmts := parser.New(toks, sink).Parse()
	require.False(t, sink.HadError, "unexpected parse error: %s", buf.String())
	New(sink).Resolve(stmts)
	return stmts, sink
}

func TestResolve_LocalVariableGetsNonNilDepth(t *testing.T) {
	stmts, sink := resolve(t, `
		{
			var x = 1;
			echo x;
		}
	`)
	require.False(t, sink.HadError)
	block := stmts[0].(*ast.Block)
	echo := block.Stmts[1].(*ast.Echo)
	v := echo.Value.(*ast.Variable)
	require.NotNil(t, v.Depth)
	assert.Equal(t, 0, *v.Depth)
}

func TestResolve_GlobalVariableDepthStaysNil(t *testing.T) {
	stmts, sink := resolve(t, `
		var x = 1;
		echo x;
	`)
	require.False(t, sink.HadError)
	echo := stmts[1].(*ast.Echo)
	v := echo.Value.(*ast.Variable)
	assert.Nil(t, v.Depth)
}

func TestResolve_NestedBlockDepthCountsEnclosingScopes(t *testing.T) {
	stmts, sink := resolve(t, `
		{
			var x = 1;
			{
				echo x;
			}
		}
	`)
	require.False(t, sink.HadError)
	outer := stmts[0].(*ast.Block)
	inner := outer.Stmts[1].(*ast.Block)
	echo := inner.Stmts[0].(*ast.Echo)
	v := echo.Value.(*ast.Variable)
	require.NotNil(t, v.Depth)
	assert.Equal(t, 1, *v.Depth)
}

func TestResolve_ReadingOwnInitializerIsError(t *testing.T) {
	_, sink := resolve(t, `
		{
			var x = x;
		}
	`)
	assert.True(t, sink.HadError)
}

func TestResolve_RedeclaringInSameScopeIsError(t *testing.T) {
	_, sink := resolve(t, `
		{
			var x = 1;
			var x = 2;
		}
	`)
	assert.True(t, sink.HadError)
}

func TestResolve_ReturnAtTopLevelIsError(t *testing.T) {
	_, sink := resolve(t, `return 1;`)
	assert.True(t, sink.HadError)
}

func TestResolve_ReturnValueFromInitializerIsError(t *testing.T) {
	_, sink := resolve(t, `
		class Thing {
			init() {
				return 1;
			}
		}
	`)
	assert.True(t, sink.HadError)
}

func TestResolve_BareReturnFromInitializerIsAllowed(t *testing.T) {
	_, sink := resolve(t, `
		class Thing {
			init() {
				return;
			}
		}
	`)
	assert.False(t, sink.HadError)
}

func TestResolve_SelfOutsideClassIsError(t *testing.T) {
	_, sink := resolve(t, `echo self;`)
	assert.True(t, sink.HadError)
}

func TestResolve_SuperOutsideClassIsError(t *testing.T) {
	_, sink := resolve(t, `
		fun f() {
			super.speak();
		}
	`)
	assert.True(t, sink.HadError)
}

func TestResolve_SuperWithNoSuperclassIsError(t *testing.T) {
	_, sink := resolve(t, `
		class Dog {
			speak() {
				super.speak();
			}
		}
	`)
	assert.True(t, sink.HadError)
}

func TestResolve_ClassInheritingFromItselfIsError(t *testing.T) {
	_, sink := resolve(t, `class Dog : Dog {}`)
	assert.True(t, sink.HadError)
}

func TestResolve_MethodNamedInitIsMarkedAsInitializer(t *testing.T) {
	stmts, sink := resolve(t, `
		class Thing {
			init() {}
		}
	`)
	require.False(t, sink.HadError)
	class := stmts[0].(*ast.Class)
	assert.True(t, class.Methods[0].IsInit)
}

func TestResolve_MethodNamedAfterClassIsMarkedAsInitializer(t *testing.T) {
	stmts, sink := resolve(t, `
		class Foo {
			Foo(x) {}
		}
	`)
	require.False(t, sink.HadError)
	class := stmts[0].(*ast.Class)
	assert.True(t, class.Methods[0].IsInit)
}

func TestResolve_ValidSuperCallResolvesWithoutError(t *testing.T) {
	_, sink := resolve(t, `
		class Animal {
			speak() { echo "..."; }
		}
		class Dog : Animal {
			speak() {
				super.speak();
			}
		}
	`)
	assert.False(t, sink.HadError)
}

func TestResolve_ForInitializerResolvesAsStatementNotExpression(t *testing.T) {
	_, sink := resolve(t, `
		for (var i = 0; i < 3; i = i + 1) {
			echo i;
		}
	`)
	assert.False(t, sink.HadError)
}

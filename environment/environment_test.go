package environment

import (
	"testing"

	"github.com/hearthscript/lox/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ident(name string) token.Token {
	return token.Token{Kind: token.IDENTIFIER, Lexeme: name, Line: 1}
}

func TestDefineAndGet(t *testing.T) {
	env := New(nil)
	env.Define("x", 1.0)
	v, err := env.Get(ident("x"))
	require.Nil(t, err)
	assert.Equal(t, 1.0, v)
}

func TestGetUndefinedIsRuntimeError(t *testing.T) {
	env := New(nil)
	_, err := env.Get(ident("missing"))
	require.NotNil(t, err)
}

func TestGetWalksParentChain(t *testing.T) {
	parent := New(nil)
	parent.Define("x", 1.0)
	child := New(parent)
	v, err := child.Get(ident("x"))
	require.Nil(t, err)
	assert.Equal(t, 1.0, v)
}

func TestAssignUpdatesDefiningFrame(t *testing.T) {
	parent := New(nil)
	parent.Define("x", 1.0)
	child := New(parent)
	err := child.Assign(ident("x"), 2.0)
	require.Nil(t, err)
	v, _ := parent.Get(ident("x"))
	assert.Equal(t, 2.0, v)
}

func TestAssignUndefinedIsRuntimeError(t *testing.T) {
	env := New(nil)
	err := env.Assign(ident("missing"), 1.0)
	require.NotNil(t, err)
}

func TestAssignToConstantIsRuntimeError(t *testing.T) {
	env := New(nil)
	env.DefineConst("PI", 3.14)
	err := env.Assign(ident("PI"), 4.0)
	require.NotNil(t, err)
}

func TestGetAtAndAssignAtBypassChainWalk(t *testing.T) {
	global := New(nil)
	block := New(global)
	inner := New(block)
	block.Define("x", 1.0)

	assert.Equal(t, 1.0, inner.GetAt(1, "x"))
	inner.AssignAt(1, "x", 9.0)
	v, _ := block.Get(ident("x"))
	assert.Equal(t, 9.0, v)
}

func TestSharedFrameObservesMutationFromAnyAlias(t *testing.T) {
	outer := New(nil)
	outer.Define("count", 0.0)

	// Simulates a closure holding a second reference to the same frame:
	// no Copy() involved, so a write through either alias is visible
	// through the other.
	alias := outer
	alias.Define("count", 1.0)

	v, _ := outer.Get(ident("count"))
	assert.Equal(t, 1.0, v)
}

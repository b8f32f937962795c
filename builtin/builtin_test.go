package builtin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waybelow-lang/waybelow/builtin"
	"github.com/waybelow-lang/waybelow/proof"
	"github.com/waybelow-lang/waybelow/symbol"
	"github.com/waybelow-lang/waybelow/term"
	"github.com/waybelow-lang/waybelow/types"
)

func TestTypeEnvDeclaresEqualityAsPolymorphic(t *testing.T) {
	src := symbol.NewSource()
	env := builtin.TypeEnv(src)

	scheme, ok := env.SchemeOf("=", 2)
	require.True(t, ok)
	require.Len(t, scheme.Vars, 1)

	fn, ok := scheme.Body.(types.Fun)
	require.True(t, ok)
	require.Len(t, fn.Args, 2)
	assert.Equal(t, types.Prop{}, fn.Ret)
}

func TestTypeEnvDeclaresTrueAndFailAsProp(t *testing.T) {
	src := symbol.NewSource()
	env := builtin.TypeEnv(src)

	for _, name := range []string{"true", "fail"} {
		scheme, ok := env.SchemeOf(name, 0)
		require.True(t, ok, name)
		assert.Empty(t, scheme.Vars)
		assert.Equal(t, types.Prop{}, scheme.Body)
	}
}

func TestEqualityUnifiesRatherThanMatchingAClause(t *testing.T) {
	db := builtin.Database()
	src := symbol.NewSource()
	eng := proof.NewEngine(db, src, proof.Limits{})

	x := symbol.Plain("X")
	goal := proof.Goal{term.App{
		Head: term.Rigid{Sym: symbol.Plain("="), Arity: 2},
		Args: []term.Term{term.Flex{Sym: x}, term.Rigid{Sym: symbol.Plain("a")}},
	}}

	ans, ok, err := eng.First(goal)
	require.NoError(t, err)
	require.True(t, ok)

	bound, ok := ans.Get(x)
	require.True(t, ok)
	assert.Equal(t, term.Rigid{Sym: symbol.Plain("a")}, bound)
}

func TestFailHasNoClauseAndAlwaysFails(t *testing.T) {
	db := builtin.Database()
	src := symbol.NewSource()
	eng := proof.NewEngine(db, src, proof.Limits{})

	goal := proof.Goal{term.Rigid{Sym: symbol.Plain("fail"), Arity: 0}}
	answers, err := eng.All(goal)
	require.NoError(t, err)
	assert.Empty(t, answers)
}

func TestTrueSucceedsExactlyOnce(t *testing.T) {
	db := builtin.Database()
	src := symbol.NewSource()
	eng := proof.NewEngine(db, src, proof.Limits{})

	goal := proof.Goal{term.Rigid{Sym: symbol.Plain("true"), Arity: 0}}
	answers, err := eng.All(goal)
	require.NoError(t, err)
	assert.Len(t, answers, 1)
}

package typesolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waybelow-lang/waybelow/internal/errkind"
	"github.com/waybelow-lang/waybelow/symbol"
	"github.com/waybelow-lang/waybelow/typesolve"
	"github.com/waybelow-lang/waybelow/types"
)

func TestSolveUnifiesVarWithConcreteType(t *testing.T) {
	a := symbol.Plain("a")
	cs := []typesolve.Constraint{
		{Lhs: types.Var{Sym: a}, Rhs: types.Individual{}},
	}
	s, err := typesolve.Solve(cs)
	require.NoError(t, err)
	bound, ok := s.Get(a)
	require.True(t, ok)
	assert.Equal(t, types.Individual{}, bound)
}

func TestSolveThreadsEarlierBindingsThroughLaterConstraints(t *testing.T) {
	a := symbol.Plain("a")
	phi := symbol.Plain("phi")
	cs := []typesolve.Constraint{
		{Lhs: types.Var{Sym: a}, Rhs: types.Individual{}},
		{Lhs: types.Var{Sym: phi}, Rhs: types.Fun{Args: []types.Rho{types.Var{Sym: a}}, Ret: types.Prop{}}},
	}
	s, err := typesolve.Solve(cs)
	require.NoError(t, err)
	bound, ok := s.Get(phi)
	require.True(t, ok)
	assert.Equal(t, types.Fun{Args: []types.Rho{types.Individual{}}, Ret: types.Prop{}}, s.Apply(bound))
}

func TestSolveMismatchedShapesFailsWithTypeClash(t *testing.T) {
	cs := []typesolve.Constraint{
		{Lhs: types.Individual{}, Rhs: types.Prop{}, Origin: "bad(X) :- X, X + 1."},
	}
	_, err := typesolve.Solve(cs)
	require.Error(t, err)
	assert.True(t, errkind.Is(err, errkind.TypeClash))
}

func TestSolveFunArityMismatchFailsWithTypeClash(t *testing.T) {
	cs := []typesolve.Constraint{
		{
			Lhs: types.Fun{Args: []types.Rho{types.Individual{}}, Ret: types.Prop{}},
			Rhs: types.Fun{Args: []types.Rho{types.Individual{}, types.Individual{}}, Ret: types.Prop{}},
		},
	}
	_, err := typesolve.Solve(cs)
	require.Error(t, err)
	assert.True(t, errkind.Is(err, errkind.TypeClash))
}

func TestSolveOccursCheck(t *testing.T) {
	a := symbol.Plain("a")
	cs := []typesolve.Constraint{
		{Lhs: types.Var{Sym: a}, Rhs: types.Fun{Args: []types.Rho{types.Var{Sym: a}}, Ret: types.Prop{}}},
	}
	_, err := typesolve.Solve(cs)
	require.Error(t, err)
	assert.True(t, errkind.Is(err, errkind.OccurCheck))
}

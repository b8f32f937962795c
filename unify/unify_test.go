package unify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waybelow-lang/waybelow/internal/errkind"
	"github.com/waybelow-lang/waybelow/symbol"
	"github.com/waybelow-lang/waybelow/term"
	"github.com/waybelow-lang/waybelow/unify"
)

func rigid(name string, arity int) term.Term {
	return term.Rigid{Sym: symbol.Plain(name), Arity: arity}
}

func TestUnifyRigidSymbolsMustMatch(t *testing.T) {
	s, err := unify.Unify(rigid("a", 0), rigid("a", 0))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Size())

	_, err = unify.Unify(rigid("a", 0), rigid("b", 0))
	require.Error(t, err)
	assert.True(t, errkind.Is(err, errkind.Clash))
}

func TestUnifyFlexBindsToTerm(t *testing.T) {
	v := symbol.Plain("X")
	flex := term.Flex{Sym: v}
	s, err := unify.Unify(flex, rigid("a", 0))
	require.NoError(t, err)
	bound, ok := s.Get(v)
	require.True(t, ok)
	assert.Equal(t, rigid("a", 0), bound)
}

// TestUnifyOccursCheck is scenario S6 from spec.md §8: unifying Flex(v) with
// App(Rigid f, [Flex v]) must fail with OccurCheck.
func TestUnifyOccursCheck(t *testing.T) {
	v := symbol.Plain("V")
	t1 := term.Flex{Sym: v}
	t2 := term.App{Head: rigid("f", 1), Args: []term.Term{term.Flex{Sym: v}}}

	_, err := unify.Unify(t1, t2)
	require.Error(t, err)
	assert.True(t, errkind.Is(err, errkind.OccurCheck))
}

func TestUnifyTupleArityMismatch(t *testing.T) {
	a := term.Tup{Elems: []term.Term{rigid("x", 0)}}
	b := term.Tup{Elems: []term.Term{rigid("x", 0), rigid("y", 0)}}

	_, err := unify.Unify(a, b)
	require.Error(t, err)
	assert.True(t, errkind.Is(err, errkind.Arity))
}

// TestUnifyAppliesEarlierBindingsToLaterArgs checks invariant 1 from
// spec.md §8: apply(σ, t1) == apply(σ, t2) for the unifier's own inputs.
func TestUnifyAppliesEarlierBindingsToLaterArgs(t *testing.T) {
	x := symbol.Plain("X")
	t1 := term.App{Head: rigid("f", 2), Args: []term.Term{term.Flex{Sym: x}, term.Flex{Sym: x}}}
	t2 := term.App{Head: rigid("f", 2), Args: []term.Term{rigid("a", 0), rigid("a", 0)}}

	s, err := unify.Unify(t1, t2)
	require.NoError(t, err)
	assert.Equal(t, s.Apply(t1), s.Apply(t2))
}

package proof_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waybelow-lang/waybelow/hoc"
	"github.com/waybelow-lang/waybelow/proof"
	"github.com/waybelow-lang/waybelow/symbol"
	"github.com/waybelow-lang/waybelow/term"
)

func rigid(name string, arity int) term.Term {
	return term.Rigid{Sym: symbol.Plain(name), Arity: arity}
}

func cons(h, t term.Term) term.Term {
	return term.App{Head: rigid(".", 2), Args: []term.Term{h, t}}
}

func list(elems ...term.Term) term.Term {
	tail := rigid("[]", 0)
	for i := len(elems) - 1; i >= 0; i-- {
		tail = cons(elems[i], tail)
	}
	return tail
}

func appendDB() *hoc.Database {
	db := hoc.NewDatabase()
	ys := symbol.Plain("Ys")
	db.Add("append", 3, hoc.Clause{
		HeadArgs: []term.Term{rigid("[]", 0), term.Flex{Sym: ys}, term.Flex{Sym: ys}},
	})
	x, xs, zs := symbol.Plain("X"), symbol.Plain("Xs"), symbol.Plain("Zs")
	db.Add("append", 3, hoc.Clause{
		HeadArgs: []term.Term{
			cons(term.Flex{Sym: x}, term.Flex{Sym: xs}),
			term.Flex{Sym: ys},
			cons(term.Flex{Sym: x}, term.Flex{Sym: zs}),
		},
		Body: []term.Term{term.App{Head: rigid("append", 3), Args: []term.Term{
			term.Flex{Sym: xs}, term.Flex{Sym: ys}, term.Flex{Sym: zs},
		}}},
	})
	return db
}

// TestProveAppendConcatenatesLists is scenario S1 from spec.md §8.
func TestProveAppendConcatenatesLists(t *testing.T) {
	db := appendDB()
	src := symbol.NewSource()
	eng := proof.NewEngine(db, src, proof.Limits{})

	r := symbol.Plain("R")
	goal := proof.Goal{term.App{Head: rigid("append", 3), Args: []term.Term{
		list(rigid("1", 0), rigid("2", 0)),
		list(rigid("3", 0)),
		term.Flex{Sym: r},
	}}}

	answers, err := eng.All(goal)
	require.NoError(t, err)
	require.Len(t, answers, 1)

	bound, ok := answers[0].Get(r)
	require.True(t, ok)
	assert.Equal(t, list(rigid("1", 0), rigid("2", 0), rigid("3", 0)), bound)
}

func memberDB() *hoc.Database {
	db := hoc.NewDatabase()
	x, h, tv := symbol.Plain("X"), symbol.Plain("H"), symbol.Plain("T")
	// member(X, [X|_]).
	db.Add("member", 2, hoc.Clause{
		HeadArgs: []term.Term{term.Flex{Sym: x}, cons(term.Flex{Sym: x}, term.Flex{Sym: symbol.Plain("_")})},
	})
	// member(X, [H|T]) :- member(X, T).
	db.Add("member", 2, hoc.Clause{
		HeadArgs: []term.Term{term.Flex{Sym: x}, cons(term.Flex{Sym: h}, term.Flex{Sym: tv})},
		Body:     []term.Term{term.App{Head: rigid("member", 2), Args: []term.Term{term.Flex{Sym: x}, term.Flex{Sym: tv}}}},
	})
	return db
}

// TestProveMemberBacktracksInClauseOrder is scenario S2: member/2 against a
// three-element list must yield its elements in program order on
// backtracking.
func TestProveMemberBacktracksInClauseOrder(t *testing.T) {
	db := memberDB()
	src := symbol.NewSource()
	eng := proof.NewEngine(db, src, proof.Limits{})

	x := symbol.Plain("X")
	goal := proof.Goal{term.App{Head: rigid("member", 2), Args: []term.Term{
		term.Flex{Sym: x},
		list(rigid("a", 0), rigid("b", 0), rigid("c", 0)),
	}}}

	answers, err := eng.Take(goal, 3)
	require.NoError(t, err)
	require.Len(t, answers, 3)

	want := []term.Term{rigid("a", 0), rigid("b", 0), rigid("c", 0)}
	for i, ans := range answers {
		bound, ok := ans.Get(x)
		require.True(t, ok)
		assert.Equal(t, want[i], bound)
	}
}

// TestProveCallForwardsPredicateArgument is scenario S3: call/2 applies its
// first argument, a predicate value, to its second.
func TestProveCallForwardsPredicateArgument(t *testing.T) {
	db := hoc.NewDatabase()
	p, xv := symbol.Plain("P"), symbol.Plain("X")
	db.Add("call", 2, hoc.Clause{
		HeadArgs: []term.Term{term.Flex{Sym: p}, term.Flex{Sym: xv}},
		Body:     []term.Term{term.App{Head: term.Flex{Sym: p}, Args: []term.Term{term.Flex{Sym: xv}}}},
	})
	db.Add("p", 1, hoc.Clause{HeadArgs: []term.Term{rigid("1", 0)}})

	src := symbol.NewSource()
	eng := proof.NewEngine(db, src, proof.Limits{})

	goal := proof.Goal{term.App{Head: rigid("call", 2), Args: []term.Term{rigid("p", 1), rigid("1", 0)}}}
	answers, err := eng.All(goal)
	require.NoError(t, err)
	assert.Len(t, answers, 1)
}

// TestProveSurfacesNotImplFromHigherOrderWaybelow confirms that a NotImpl
// reason raised deep inside set resolution (spec §4.H, higher-order rigid
// case) escapes Engine.All as a normal error instead of being swallowed as
// branch failure, per spec §7.
func TestProveSurfacesNotImplFromHigherOrderWaybelow(t *testing.T) {
	db := hoc.NewDatabase()
	src := symbol.NewSource()
	eng := proof.NewEngine(db, src, proof.Limits{})

	g := symbol.Plain("G")
	goal := proof.Goal{term.App{Head: term.Flex{Sym: g}, Args: []term.Term{rigid("p", 1)}}}

	_, err := eng.All(goal)
	require.Error(t, err)
	var ne proof.NotImplError
	assert.True(t, errors.As(err, &ne))
}

// TestProveRespectsMaxSteps confirms a tight step budget cuts off a
// (potentially) unbounded search instead of running forever.
func TestProveRespectsMaxSteps(t *testing.T) {
	db := memberDB()
	src := symbol.NewSource()
	eng := proof.NewEngine(db, src, proof.Limits{MaxSteps: 1})

	x := symbol.Plain("X")
	goal := proof.Goal{term.App{Head: rigid("member", 2), Args: []term.Term{
		term.Flex{Sym: x},
		list(rigid("a", 0), rigid("b", 0), rigid("c", 0)),
	}}}

	answers, err := eng.All(goal)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(answers), 1)
}

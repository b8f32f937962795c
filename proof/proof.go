// Package proof implements the SLD-resolution proof engine, spec §4.G: goal
// derivation over a compiled clause database, extended with the
// higher-order rigid/set resolution rules from §4.H.
package proof

import (
	"iter"

	"github.com/waybelow-lang/waybelow/hoc"
	"github.com/waybelow-lang/waybelow/internal/errkind"
	"github.com/waybelow-lang/waybelow/internal/log"
	"github.com/waybelow-lang/waybelow/logicm"
	"github.com/waybelow-lang/waybelow/subst"
	"github.com/waybelow-lang/waybelow/symbol"
	"github.com/waybelow-lang/waybelow/term"
	"github.com/waybelow-lang/waybelow/unify"
)

// Goal is a conjunction of atoms still to be proved.
type Goal = []term.Term

// TermSubst is the answer substitution proof search produces.
type TermSubst = subst.Subst[term.Term]

// Limits bounds one proof-search session. MaxSteps caps the number of
// resolution steps taken before the search gives up as if exhausted
// (<=0 means unlimited). MaxAnswers optionally caps how many answers
// Prove itself pulls from the stream (<=0 leaves that to the caller, e.g.
// via logicm.Take). Threaded explicitly through NewEngine rather than held
// in a package variable, so two searches never share a budget.
type Limits struct {
	MaxSteps   int
	MaxAnswers int
}

// Engine is a proof-search session over one compiled clause database.
type Engine struct {
	db     *hoc.Database
	src    *symbol.Source
	limits Limits
	steps  int
}

// NewEngine builds a proof-search session against db, allocating fresh
// variables from src.
func NewEngine(db *hoc.Database, src *symbol.Source, limits Limits) *Engine {
	return &Engine{db: db, src: src, limits: limits}
}

// NotImplError wraps an errkind.NotImpl reason surfaced out of a
// logicm.Stream via panic, since Stream (a bare iter.Seq) has no error
// channel of its own. Spec §7 requires NotImpl to always be surfaced,
// unlike every other proof-search error, which is recovered as branch
// failure at the point it occurs.
type NotImplError struct {
	Err error
}

func (e NotImplError) Error() string { return e.Err.Error() }
func (e NotImplError) Unwrap() error { return e.Err }

// Recover runs fn, converting any NotImplError panic raised while pulling
// answers from a stream returned by Engine into a normal returned error.
// Any other panic value propagates unchanged.
func Recover(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if ne, ok := r.(NotImplError); ok {
			err = ne
			return
		}
		panic(r)
	}()
	fn()
	return nil
}

// step is one goal transition: resolving a goal's first atom yields a new
// goal (that atom's subgoal, followed by the substituted remainder) and the
// substitution the step introduced.
type step struct {
	Goal  Goal
	Subst TermSubst
}

// resolve dispatches on the shape of one atom's head (spec §4.G "resolve"):
// a Rigid head enumerates clauses (§4.H.1), a Flex or Set head grows a set
// carrier (§4.H.2), and anything else has no applicable rule.
func (e *Engine) resolve(atom term.Term) logicm.Stream[hoc.Branch] {
	if e.limits.MaxSteps > 0 {
		e.steps++
		if e.steps > e.limits.MaxSteps {
			return logicm.MZero[hoc.Branch]()
		}
	}

	head, args := atom, []term.Term(nil)
	if app, ok := atom.(term.App); ok {
		head, args = app.Head, app.Args
	}

	log.With("proof").Debug("resolve", "head", head.String(), "arity", len(args))

	switch h := head.(type) {
	case term.Rigid:
		// "=" is the one collaborator-contract builtin resolved as a
		// primitive rather than through a clause database: equality is
		// unification itself, not a fact to match against (spec §3, the
		// builtin library is named out of scope beyond this).
		if h.Sym.Name == "=" && h.Arity == 2 && len(args) == 2 {
			return e.resolveUnify(args[0], args[1])
		}
		return hoc.RigidResolve(e.src, e.db, h.Sym.Name, h.Arity, args)
	case term.Flex:
		return e.resolveSet(hoc.LiftSet(h), args)
	case term.Set:
		return e.resolveSet(h, args)
	default:
		// No resolution rule applies to this head shape (errkind.NoRule,
		// recovered here as plain branch failure per spec §7).
		return logicm.MZero[hoc.Branch]()
	}
}

func (e *Engine) resolveSet(set term.Set, args []term.Term) logicm.Stream[hoc.Branch] {
	s, err := hoc.SetResolve(e.src, set, args)
	if err != nil {
		if errkind.Is(err, errkind.NotImpl) {
			panic(NotImplError{Err: err})
		}
		return logicm.MZero[hoc.Branch]()
	}
	return logicm.Unit(hoc.Branch{Subst: s})
}

func (e *Engine) resolveUnify(a, b term.Term) logicm.Stream[hoc.Branch] {
	s, err := unify.Unify(a, b)
	if err != nil {
		return logicm.MZero[hoc.Branch]()
	}
	return logicm.Unit(hoc.Branch{Subst: s})
}

// derive produces every one-step transition of goal.
func (e *Engine) derive(goal Goal) logicm.Stream[step] {
	atom, rest := goal[0], goal[1:]
	return logicm.Bind(e.resolve(atom), func(d hoc.Branch) logicm.Stream[step] {
		newRest := make([]term.Term, len(rest))
		for i, a := range rest {
			newRest[i] = d.Subst.Apply(a)
		}
		nextGoal := append(append(Goal{}, d.Subgoal...), newRest...)
		return logicm.Unit(step{Goal: nextGoal, Subst: d.Subst})
	})
}

// refute recursively drives goal to the empty goal, spec §4.G "refute":
// each answer of refuting the remainder is composed on top of the
// substitution the step that reached it introduced. Note the composition
// order is subst.Combine(ans, st.Subst), not the reverse: given Combine's
// contract (Apply(Combine(s1,s2),t) == Apply(s1,Apply(s2,t))), the
// substitution discovered deeper in the derivation (ans) must be s1 so it
// takes precedence over bindings the earlier step (st.Subst) already made.
func (e *Engine) refute(goal Goal) logicm.Stream[TermSubst] {
	if len(goal) == 0 {
		return logicm.Unit(subst.Success[term.Term]())
	}
	return logicm.Bind(e.derive(goal), func(st step) logicm.Stream[TermSubst] {
		return logicm.Bind(e.refute(st.Goal), func(ans TermSubst) logicm.Stream[TermSubst] {
			return logicm.Unit(subst.Combine(ans, st.Subst))
		})
	})
}

// Prove searches for every substitution that refutes goal, restricting each
// answer to goal's own variables (spec §4.G, Open Question "answer
// restriction"). The returned stream panics with a NotImplError if the
// search reaches a higher-order case with no implemented rule; wrap the
// consuming call in Recover to get that back as a normal error.
func (e *Engine) Prove(goal Goal) logicm.Stream[TermSubst] {
	vars := goalVars(goal)
	answers := e.refute(goal)
	if e.limits.MaxAnswers > 0 {
		answers = boundedStream(answers, e.limits.MaxAnswers)
	}
	return logicm.Bind(answers, func(ans TermSubst) logicm.Stream[TermSubst] {
		return logicm.Unit(subst.Restrict(vars, ans))
	})
}

// All drains every answer of Prove(goal), recovering a surfaced NotImpl as
// a returned error instead of letting the panic escape.
func (e *Engine) All(goal Goal) (answers []TermSubst, err error) {
	err = Recover(func() {
		answers = logicm.All(e.Prove(goal))
	})
	return
}

// First returns the first answer of Prove(goal), if any.
func (e *Engine) First(goal Goal) (ans TermSubst, ok bool, err error) {
	err = Recover(func() {
		ans, ok = logicm.First(e.Prove(goal))
	})
	return
}

// Take returns up to n answers of Prove(goal).
func (e *Engine) Take(goal Goal, n int) (answers []TermSubst, err error) {
	err = Recover(func() {
		answers = logicm.Take(e.Prove(goal), n)
	})
	return
}

func boundedStream[A any](s logicm.Stream[A], n int) logicm.Stream[A] {
	return func(yield func(A) bool) {
		count := 0
		for v := range iter.Seq[A](s) {
			if !yield(v) {
				return
			}
			count++
			if count >= n {
				return
			}
		}
	}
}

func goalVars(goal Goal) []symbol.Symbol {
	var out []symbol.Symbol
	seen := make(map[symbol.Symbol]bool)
	for _, atom := range goal {
		for _, v := range atom.FreeVars() {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

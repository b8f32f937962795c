// Package builtin provides the collaborator-contract predicate environment:
// the handful of predicates every program gets for free regardless of what
// the surface parser or standard library eventually supplies (spec §3,
// "the builtin predicate library itself is named out of scope"). It is kept
// intentionally tiny: "=" /2, true/0 and fail/0, enough for the example
// programs in cmd/waybelow to typecheck and run.
package builtin

import (
	"github.com/waybelow-lang/waybelow/hoc"
	"github.com/waybelow-lang/waybelow/symbol"
	"github.com/waybelow-lang/waybelow/types"
)

// TypeEnv returns the predicate-type environment every program's dependency
// groups are checked against at the ambient root (spec §4.E, the initial
// ambient environment a program's first group starts from).
func TypeEnv(src *symbol.Source) *types.Env {
	env := types.NewEnv()

	alpha := src.Fresh("a")
	env = env.With("=", 2, types.Scheme{
		Vars: []symbol.Symbol{alpha},
		Body: types.Fun{Args: []types.Rho{types.Var{Sym: alpha}, types.Var{Sym: alpha}}, Ret: types.Prop{}},
	})
	env = env.With("true", 0, types.Mono(types.Prop{}))
	env = env.With("fail", 0, types.Mono(types.Prop{}))

	return env
}

// Database returns the clause database backing TypeEnv's predicates.
// "=" is resolved by the proof engine directly as unification, not via a
// clause (see proof.Engine.resolve), and "fail" has deliberately no clause
// at all: an empty clause set is exactly Prolog's fail/0. Only "true" needs
// an entry, a single fact with no body.
func Database() *hoc.Database {
	db := hoc.NewDatabase()
	db.Add("true", 0, hoc.Clause{})
	return db
}

// Package typesolve implements the Type Constraint Solver, spec §4.F: a
// first-order unifier over ρ-types that turns a flat list of constraints
// collected during inference into a single substitution σ_T.
package typesolve

import (
	"fmt"

	"github.com/waybelow-lang/waybelow/internal/errkind"
	"github.com/waybelow-lang/waybelow/subst"
	"github.com/waybelow-lang/waybelow/symbol"
	"github.com/waybelow-lang/waybelow/types"
)

// TypeSubst is the type-level substitution the solver produces.
type TypeSubst = subst.Subst[types.Rho]

// Constraint is a single ρ₁ ≡ ρ₂ obligation emitted during constraint
// generation. Origin is retained for error reporting only, per spec §3.5.
type Constraint struct {
	Lhs, Rhs types.Rho
	Origin   any
}

// Solve runs unification over every constraint in order, threading the
// accumulated substitution through so that earlier bindings are visible to
// later constraints, and returns the final σ_T.
func Solve(cs []Constraint) (TypeSubst, error) {
	acc := subst.Success[types.Rho]()
	for _, c := range cs {
		s, err := unifyOne(acc.Apply(c.Lhs), acc.Apply(c.Rhs), c.Origin)
		if err != nil {
			return TypeSubst{}, err
		}
		acc = subst.Combine(s, acc)
	}
	return acc, nil
}

// unifyOne unifies a single pair of ρ-types, dispatching by the case table
// in spec §4.F.
func unifyOne(t1, t2 types.Rho, origin any) (TypeSubst, error) {
	if v1, ok := t1.AsVar(); ok {
		if v2, ok2 := t2.AsVar(); ok2 && v1.Equal(v2) {
			return subst.Success[types.Rho](), nil
		}
		return bindOccurs(v1, t2, origin)
	}
	if v2, ok := t2.AsVar(); ok {
		return bindOccurs(v2, t1, origin)
	}

	switch a := t1.(type) {
	case types.Individual:
		if _, ok := t2.(types.Individual); ok {
			return subst.Success[types.Rho](), nil
		}
		return clash(t1, t2, origin)

	case types.Prop:
		if _, ok := t2.(types.Prop); ok {
			return subst.Success[types.Rho](), nil
		}
		return clash(t1, t2, origin)

	case types.Fun:
		b, ok := t2.(types.Fun)
		if !ok || len(a.Args) != len(b.Args) {
			return clash(t1, t2, origin)
		}
		acc := subst.Success[types.Rho]()
		for i := range a.Args {
			s, err := unifyOne(acc.Apply(a.Args[i]), acc.Apply(b.Args[i]), origin)
			if err != nil {
				return TypeSubst{}, err
			}
			acc = subst.Combine(s, acc)
		}
		sRet, err := unifyOne(acc.Apply(a.Ret), acc.Apply(b.Ret), origin)
		if err != nil {
			return TypeSubst{}, err
		}
		return subst.Combine(sRet, acc), nil

	default:
		return clash(t1, t2, origin)
	}
}

func bindOccurs(v symbol.Symbol, t types.Rho, origin any) (TypeSubst, error) {
	s, err := subst.Bind[types.Rho](v, t)
	if err != nil {
		return TypeSubst{}, errkind.WithOrigin(errkind.OccurCheck, origin, err.Error())
	}
	return s, nil
}

func clash(t1, t2 types.Rho, origin any) (TypeSubst, error) {
	return TypeSubst{}, errkind.WithOrigin(errkind.TypeClash, origin, fmt.Sprintf("cannot unify type %s with %s", t1, t2))
}

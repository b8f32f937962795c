// Package hoc implements the Higher-Order Resolver, spec §4.H: rigid
// clause resolution, set-abstraction resolution, and the "waybelow" (≪)
// relation that finitizes higher-order search over a predicate's
// extension.
package hoc

import (
	"github.com/waybelow-lang/waybelow/internal/errkind"
	"github.com/waybelow-lang/waybelow/subst"
	"github.com/waybelow-lang/waybelow/symbol"
	"github.com/waybelow-lang/waybelow/term"
	"github.com/waybelow-lang/waybelow/unify"
)

// TermSubst is the term-level substitution produced by waybelow and the
// resolution rules below.
type TermSubst = subst.Subst[term.Term]

// LiftSet wraps a flex variable as a singleton-witness set, the seed from
// which waybelow can grow a carrier lazily (spec §4.G: "lift the flex head
// into a singleton set").
func LiftSet(v term.Flex) term.Set {
	return term.Set{Witnesses: []term.Witness{{Var: v.Sym, Typ: v.Typ}}}
}

// Waybelow decides x ≪ t, the domain-theoretic approximation relation used
// to finitize higher-order resolution (spec §4.H, GLOSSARY "Waybelow").
func Waybelow(src *symbol.Source, x, t term.Term) (TermSubst, error) {
	switch xt := x.(type) {
	case term.Flex:
		return waybelowFromFlex(src, xt, t)
	case term.Tup:
		tt, ok := t.(term.Tup)
		if !ok || len(tt.Elems) != len(xt.Elems) {
			return TermSubst{}, errkind.Newf(errkind.Arity, "waybelow tuple arity mismatch: %v vs %v", x, t)
		}
		acc := subst.Success[term.Term]()
		for i := range xt.Elems {
			s, err := Waybelow(src, xt.Elems[i], tt.Elems[i])
			if err != nil {
				return TermSubst{}, err
			}
			acc = subst.Combine(s, acc)
		}
		return acc, nil
	case term.Rigid:
		tt, ok := t.(term.Rigid)
		if !ok || !xt.Sym.Equal(tt.Sym) {
			return TermSubst{}, errkind.Newf(errkind.IncomparableRigid, "waybelow: rigid symbols %v and %v do not match", x, t)
		}
		return subst.Success[term.Term](), nil
	default:
		return TermSubst{}, errkind.Newf(errkind.NotImpl, "waybelow has no case for source shape %T", x)
	}
}

func waybelowFromFlex(src *symbol.Source, x term.Flex, t term.Term) (TermSubst, error) {
	switch tt := t.(type) {
	case term.Rigid:
		if tt.Arity == 0 {
			return unify.Unify(x, t)
		}
		// Higher-order case: enumerating proofs of p(X1...Xn) for fresh X's
		// is unimplemented in this revision (spec §4.H, §9).
		return TermSubst{}, errkind.Newf(errkind.NotImpl, "higher-order waybelow over rigid symbol %s of arity %d is not implemented", tt.Sym, tt.Arity)

	case term.App:
		// No partial application in the language, so t cannot itself be
		// higher-order here; ordinary unification suffices.
		return unify.Unify(x, t)

	case term.Set:
		w, ok := tt.LastWitness()
		if !ok {
			return TermSubst{}, errkind.Newf(errkind.NotImpl, "set carrier has no witness to grow")
		}
		vPrime := src.Fresh("v")
		grown := term.Set{Witnesses: []term.Witness{{Var: x.Sym, Typ: x.Typ}, {Var: vPrime, Typ: w.Typ}}}
		return subst.Bind[term.Term](w.Var, grown)

	case term.Flex:
		if term.Order(tt.Typ) == 0 {
			return unify.Unify(x, t)
		}
		return Waybelow(src, x, LiftSet(tt))

	case term.Tup:
		acc := subst.Success[term.Term]()
		for _, e := range tt.Elems {
			y := term.Flex{Sym: src.Fresh("y"), Typ: x.Typ}
			s, err := Waybelow(src, y, e)
			if err != nil {
				return TermSubst{}, err
			}
			acc = subst.Combine(s, acc)
		}
		return acc, nil

	default:
		return TermSubst{}, errkind.Newf(errkind.NotImpl, "waybelow has no case for target shape %T", t)
	}
}

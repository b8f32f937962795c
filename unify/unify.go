// Package unify implements first-order syntactic unification over runtime
// terms, spec §4.C.
package unify

import (
	"github.com/waybelow-lang/waybelow/internal/errkind"
	"github.com/waybelow-lang/waybelow/subst"
	"github.com/waybelow-lang/waybelow/term"
)

// Subst is the term-level substitution produced by Unify.
type Subst = subst.Subst[term.Term]

// Unify attempts to unify t1 and t2, returning the most general
// substitution making them syntactically equal.
func Unify(t1, t2 term.Term) (Subst, error) {
	if v1, ok := t1.AsVar(); ok {
		if v2, ok2 := t2.AsVar(); ok2 && v1.Equal(v2) {
			// case 1: Flex(v) ≡ Flex(v)
			return subst.Success[term.Term](), nil
		}
		// case 2: Flex(v) ≡ t
		return subst.Bind[term.Term](v1, t2)
	}
	if v2, ok := t2.AsVar(); ok {
		// case 2, symmetric
		return subst.Bind[term.Term](v2, t1)
	}

	switch a := t1.(type) {
	case term.App:
		b, ok := t2.(term.App)
		if !ok {
			return subst.Subst[term.Term]{}, errkind.Newf(errkind.Clash, "cannot unify application %v with %v", t1, t2)
		}
		// case 3: App(h, a) ≡ App(h', a')
		sHead, err := Unify(a.Head, b.Head)
		if err != nil {
			return subst.Subst[term.Term]{}, err
		}
		if len(a.Args) != len(b.Args) {
			return subst.Subst[term.Term]{}, errkind.Newf(errkind.Arity, "application arity mismatch: %d vs %d", len(a.Args), len(b.Args))
		}
		sArgs, err := unifyList(sHead, applyAll(sHead, a.Args), applyAll(sHead, b.Args))
		if err != nil {
			return subst.Subst[term.Term]{}, err
		}
		return subst.Combine(sArgs, sHead), nil

	case term.Tup:
		b, ok := t2.(term.Tup)
		if !ok {
			return subst.Subst[term.Term]{}, errkind.Newf(errkind.Clash, "cannot unify tuple %v with %v", t1, t2)
		}
		// case 4: Tup(es) ≡ Tup(es')
		if len(a.Elems) != len(b.Elems) {
			return subst.Subst[term.Term]{}, errkind.Newf(errkind.Arity, "tuple arity mismatch: %d vs %d", len(a.Elems), len(b.Elems))
		}
		return unifyList(subst.Success[term.Term](), a.Elems, b.Elems)

	case term.Rigid:
		b, ok := t2.(term.Rigid)
		if !ok {
			return subst.Subst[term.Term]{}, errkind.Newf(errkind.Clash, "cannot unify rigid symbol %v with %v", t1, t2)
		}
		// case 5: Rigid(p) ≡ Rigid(q)
		if a.Sym.Equal(b.Sym) {
			return subst.Success[term.Term](), nil
		}
		return subst.Subst[term.Term]{}, errkind.Newf(errkind.Clash, "rigid symbols %v and %v do not match", a.Sym, b.Sym)

	default:
		// case 6: any other mixed shape
		return subst.Subst[term.Term]{}, errkind.Newf(errkind.Clash, "cannot unify %v with %v", t1, t2)
	}
}

// unifyList unifies es1 and es2 pointwise, composing each step's
// substitution onto the accumulator and applying it to the remaining tail
// before continuing, so that earlier bindings are visible to later pairs.
func unifyList(acc Subst, es1, es2 []term.Term) (Subst, error) {
	for i := range es1 {
		s, err := Unify(acc.Apply(es1[i]), acc.Apply(es2[i]))
		if err != nil {
			return subst.Subst[term.Term]{}, err
		}
		acc = subst.Combine(s, acc)
	}
	return acc, nil
}

func applyAll(s Subst, ts []term.Term) []term.Term {
	out := make([]term.Term, len(ts))
	for i, t := range ts {
		out[i] = s.Apply(t)
	}
	return out
}

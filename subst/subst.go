// Package subst implements the substitution machinery from spec §3.4/§4.B.
// A single generic Subst[T] serves both the type inference engine (over
// types.Rho) and proof search (over term.Term), matching the spec's own
// description of a substitution as "a finite mapping from variables to
// terms (expressions, or types in TI)".
package subst

import (
	"iter"

	"github.com/waybelow-lang/waybelow/internal/errkind"
	"github.com/waybelow-lang/waybelow/symbol"
)

// Node is implemented by any value substitution can walk: it can report
// whether it IS a variable, rewrite itself given a variable lookup, and
// list its free variables in order of first occurrence.
type Node[T any] interface {
	AsVar() (symbol.Symbol, bool)
	Rewrite(lookup func(symbol.Symbol) (T, bool)) T
	FreeVars() []symbol.Symbol
}

// Subst is a finite mapping from variables to terms of type T. The zero
// value is Success, the two-sided identity substitution.
type Subst[T Node[T]] struct {
	bindings map[symbol.Symbol]T
}

// Success is the identity substitution.
func Success[T Node[T]]() Subst[T] {
	return Subst[T]{}
}

// Get looks up the binding for v, if any.
func (s Subst[T]) Get(v symbol.Symbol) (t T, ok bool) {
	t, ok = s.bindings[v]
	return
}

// Size reports the number of bindings in s.
func (s Subst[T]) Size() int {
	return len(s.bindings)
}

// Iter ranges over every (variable, term) binding in s.
func (s Subst[T]) Iter() iter.Seq2[symbol.Symbol, T] {
	return func(yield func(symbol.Symbol, T) bool) {
		for v, t := range s.bindings {
			if !yield(v, t) {
				return
			}
		}
	}
}

// Bind constructs the singleton substitution {v -> t}, failing with
// OccurCheck if v occurs free in t. Per spec §4.B, bind trusts its input in
// every other respect: it is the unifier's job (§4.C) to decide when bind
// should be invoked.
func Bind[T Node[T]](v symbol.Symbol, t T) (Subst[T], error) {
	if same, ok := t.AsVar(); ok && same.Equal(v) {
		return Success[T](), nil
	}
	for _, fv := range t.FreeVars() {
		if fv.Equal(v) {
			return Subst[T]{}, errkind.Newf(errkind.OccurCheck, "variable %s occurs in %v", v, t)
		}
	}
	return Subst[T]{bindings: map[symbol.Symbol]T{v: t}}, nil
}

// Apply rewrites t under s, recursively. Provided s is in triangular form
// (the unifier maintains this, per spec §4.B), a single recursive pass is
// sufficient; Apply does not loop to a fixpoint.
func (s Subst[T]) Apply(t T) T {
	if len(s.bindings) == 0 {
		return t
	}
	return t.Rewrite(s.lookup)
}

func (s Subst[T]) lookup(v symbol.Symbol) (T, bool) {
	t, ok := s.bindings[v]
	return t, ok
}

// Combine composes s1 and s2 such that Apply(Combine(s1, s2), t) equals
// Apply(s1, Apply(s2, t)): s1 is applied to every right-hand side in s2,
// then any binding private to s1 (not also rebound by s2) is carried over
// unchanged.
func Combine[T Node[T]](s1, s2 Subst[T]) Subst[T] {
	if s1.Size() == 0 {
		return s2
	}
	if s2.Size() == 0 {
		return s1
	}
	merged := make(map[symbol.Symbol]T, s1.Size()+s2.Size())
	for v, t := range s2.bindings {
		merged[v] = s1.Apply(t)
	}
	for v, t := range s1.bindings {
		if _, shadowed := s2.bindings[v]; !shadowed {
			merged[v] = t
		}
	}
	return Subst[T]{bindings: merged}
}

// Restrict keeps only the bindings of s whose key is in vars, fully
// resolving each kept right-hand side against s first.
func Restrict[T Node[T]](vars []symbol.Symbol, s Subst[T]) Subst[T] {
	keep := make(map[symbol.Symbol]bool, len(vars))
	for _, v := range vars {
		keep[v] = true
	}
	out := make(map[symbol.Symbol]T)
	for v, t := range s.bindings {
		if keep[v] {
			out[v] = s.Apply(t)
		}
	}
	if len(out) == 0 {
		return Subst[T]{}
	}
	return Subst[T]{bindings: out}
}

// Package types implements the two-sort type grammar from spec §3.3: the
// individual sort i, and predicate types π (o, Fun, Var), stratified under
// a single ρ-type interface since a type variable may resolve to either
// sort once unified.
package types

import (
	"fmt"
	"strings"

	"github.com/waybelow-lang/waybelow/symbol"
)

// Rho is a ρ-type: either the individual sort, a predicate type, or a type
// variable. Every implementation also satisfies subst.Node[Rho], so a
// single generic subst.Subst[Rho] serves as the type-level substitution
// used by the constraint solver (spec §4.F).
type Rho interface {
	fmt.Stringer
	isRho()
	AsVar() (symbol.Symbol, bool)
	Rewrite(lookup func(symbol.Symbol) (Rho, bool)) Rho
	FreeVars() []symbol.Symbol
}

// Individual is the sole ground individual sort, "i".
type Individual struct{}

func (Individual) isRho()                                                    {}
func (Individual) String() string                                            { return "i" }
func (Individual) AsVar() (symbol.Symbol, bool)                              { return symbol.Symbol{}, false }
func (t Individual) Rewrite(func(symbol.Symbol) (Rho, bool)) Rho             { return t }
func (Individual) FreeVars() []symbol.Symbol                                 { return nil }

// Prop is the proposition (truth-valued) predicate type, "o". It has
// structural arity 0.
type Prop struct{}

func (Prop) isRho()                                            {}
func (Prop) String() string                                    { return "o" }
func (Prop) AsVar() (symbol.Symbol, bool)                      { return symbol.Symbol{}, false }
func (t Prop) Rewrite(func(symbol.Symbol) (Rho, bool)) Rho     { return t }
func (Prop) FreeVars() []symbol.Symbol                          { return nil }

// Fun is a predicate type taking arguments of the given ρ-types and
// returning a π. Its structural arity is len(Args).
type Fun struct {
	Args []Rho
	Ret  Rho
}

func (Fun) isRho() {}
func (t Fun) String() string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("(%s -> %s)", strings.Join(parts, ", "), t.Ret.String())
}
func (Fun) AsVar() (symbol.Symbol, bool) { return symbol.Symbol{}, false }
func (t Fun) Rewrite(lookup func(symbol.Symbol) (Rho, bool)) Rho {
	newArgs := make([]Rho, len(t.Args))
	for i, a := range t.Args {
		newArgs[i] = a.Rewrite(lookup)
	}
	return Fun{Args: newArgs, Ret: t.Ret.Rewrite(lookup)}
}
func (t Fun) FreeVars() []symbol.Symbol {
	var out []symbol.Symbol
	seen := make(map[symbol.Symbol]bool)
	for _, a := range t.Args {
		appendFresh(&out, seen, a.FreeVars())
	}
	appendFresh(&out, seen, t.Ret.FreeVars())
	return out
}

// Var is a ρ-type (equivalently, when used in π position, a π-type)
// variable: a flexible metavariable not yet committed to i, o or Fun.
type Var struct {
	Sym symbol.Symbol
}

func (Var) isRho()                       {}
func (t Var) String() string              { return "'" + t.Sym.String() }
func (t Var) AsVar() (symbol.Symbol, bool) { return t.Sym, true }
func (t Var) Rewrite(lookup func(symbol.Symbol) (Rho, bool)) Rho {
	if r, ok := lookup(t.Sym); ok {
		return r
	}
	return t
}
func (t Var) FreeVars() []symbol.Symbol { return []symbol.Symbol{t.Sym} }

func appendFresh(out *[]symbol.Symbol, seen map[symbol.Symbol]bool, vs []symbol.Symbol) {
	for _, v := range vs {
		if !seen[v] {
			seen[v] = true
			*out = append(*out, v)
		}
	}
}

// StructuralArity reports the arity implied by a ρ-type's shape: 0 for o,
// len(Args) for Fun, and false for anything else (spec §3.3 invariant: a
// user-declared arity must match this structural arity).
func StructuralArity(r Rho) (arity int, ok bool) {
	switch t := r.(type) {
	case Prop:
		return 0, true
	case Fun:
		return len(t.Args), true
	default:
		return 0, false
	}
}

// MostGeneralPred fabricates the most-general predicate type for a given
// arity: Fun([α1, ..., αn], Var(φ)) with fresh α's and φ, per spec §4.E
// step 1 and the "findPoly" fallback in the per-expression rule table.
func MostGeneralPred(src *symbol.Source, arity int) Rho {
	args := make([]Rho, arity)
	for i := range args {
		args[i] = Var{Sym: src.Fresh("a")}
	}
	return Fun{Args: args, Ret: Var{Sym: src.Fresh("phi")}}
}

// Package term implements the runtime term model used by proof search,
// spec §3.6: Rigid and Flex atoms, applications, tuples, and set
// abstractions over a predicate's extension.
package term

import (
	"fmt"
	"strings"

	"github.com/waybelow-lang/waybelow/symbol"
	"github.com/waybelow-lang/waybelow/types"
)

// Term is a runtime expression. Every implementation also satisfies
// subst.Node[Term], so subst.Subst[Term] is the proof-search substitution.
type Term interface {
	fmt.Stringer
	isTerm()
	AsVar() (symbol.Symbol, bool)
	Rewrite(lookup func(symbol.Symbol) (Term, bool)) Term
	FreeVars() []symbol.Symbol
}

// Rigid is a named predicate or function symbol with known arity.
type Rigid struct {
	Sym   symbol.Symbol
	Arity int
}

func (Rigid) isTerm()                                            {}
func (t Rigid) String() string                                   { return t.Sym.String() }
func (Rigid) AsVar() (symbol.Symbol, bool)                        { return symbol.Symbol{}, false }
func (t Rigid) Rewrite(func(symbol.Symbol) (Term, bool)) Term     { return t }
func (Rigid) FreeVars() []symbol.Symbol                           { return nil }

// Flex is a logic variable, typed so that waybelow can allocate
// argument-typed fresh variables (spec §4.H).
type Flex struct {
	Sym symbol.Symbol
	Typ types.Rho
}

func (Flex) isTerm()                        {}
func (t Flex) String() string               { return "?" + t.Sym.String() }
func (t Flex) AsVar() (symbol.Symbol, bool) { return t.Sym, true }
func (t Flex) Rewrite(lookup func(symbol.Symbol) (Term, bool)) Term {
	if r, ok := lookup(t.Sym); ok {
		return r
	}
	return t
}
func (t Flex) FreeVars() []symbol.Symbol { return []symbol.Symbol{t.Sym} }

// App is an application of a head term to a list of argument terms.
type App struct {
	Head Term
	Args []Term
}

func (App) isTerm() {}
func (t App) String() string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", t.Head.String(), strings.Join(parts, ", "))
}
func (App) AsVar() (symbol.Symbol, bool) { return symbol.Symbol{}, false }
func (t App) Rewrite(lookup func(symbol.Symbol) (Term, bool)) Term {
	newArgs := make([]Term, len(t.Args))
	for i, a := range t.Args {
		newArgs[i] = a.Rewrite(lookup)
	}
	return App{Head: t.Head.Rewrite(lookup), Args: newArgs}
}
func (t App) FreeVars() []symbol.Symbol {
	out := t.Head.FreeVars()
	seen := toSet(out)
	for _, a := range t.Args {
		appendFresh(&out, seen, a.FreeVars())
	}
	return out
}

// Tup is a tuple of terms, used to encode multi-argument clause
// heads/bodies so unification can treat "all arguments at once" as a
// single structural comparison (spec §4.C case 4).
type Tup struct {
	Elems []Term
}

func (Tup) isTerm() {}
func (t Tup) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (Tup) AsVar() (symbol.Symbol, bool) { return symbol.Symbol{}, false }
func (t Tup) Rewrite(lookup func(symbol.Symbol) (Term, bool)) Term {
	newElems := make([]Term, len(t.Elems))
	for i, e := range t.Elems {
		newElems[i] = e.Rewrite(lookup)
	}
	return Tup{Elems: newElems}
}
func (t Tup) FreeVars() []symbol.Symbol {
	var out []symbol.Symbol
	seen := make(map[symbol.Symbol]bool)
	for _, e := range t.Elems {
		appendFresh(&out, seen, e.FreeVars())
	}
	return out
}

// Witness is an auxiliary variable used to grow a Set lazily, carrying the
// argument type needed to allocate the next demanded element (spec §4.H.2).
type Witness struct {
	Var symbol.Symbol
	Typ types.Rho
}

// Set is a finitary representation of a (possibly growing) subset of a
// predicate's extension: Snapshot holds the elements enumerated so far,
// Witnesses holds the auxiliary variables used to grow the set on demand.
type Set struct {
	Snapshot  []Term
	Witnesses []Witness
}

func (Set) isTerm() {}
func (t Set) String() string {
	parts := make([]string, len(t.Snapshot))
	for i, e := range t.Snapshot {
		parts[i] = e.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (Set) AsVar() (symbol.Symbol, bool) { return symbol.Symbol{}, false }
func (t Set) Rewrite(lookup func(symbol.Symbol) (Term, bool)) Term {
	newSnapshot := make([]Term, len(t.Snapshot))
	for i, e := range t.Snapshot {
		newSnapshot[i] = e.Rewrite(lookup)
	}
	return Set{Snapshot: newSnapshot, Witnesses: t.Witnesses}
}
func (t Set) FreeVars() []symbol.Symbol {
	var out []symbol.Symbol
	seen := make(map[symbol.Symbol]bool)
	for _, e := range t.Snapshot {
		appendFresh(&out, seen, e.FreeVars())
	}
	for _, w := range t.Witnesses {
		appendFresh(&out, seen, []symbol.Symbol{w.Var})
	}
	return out
}

// LastWitness returns the "continuation" variable of a Set, by
// construction the last element of Witnesses (spec §4.H.2).
func (t Set) LastWitness() (Witness, bool) {
	if len(t.Witnesses) == 0 {
		return Witness{}, false
	}
	return t.Witnesses[len(t.Witnesses)-1], true
}

// Order returns the order of a symbol's type: 0 for individuals, >=1 for
// predicates taking predicate arguments (GLOSSARY "Order of a symbol").
func Order(t types.Rho) int {
	fn, ok := t.(types.Fun)
	if !ok {
		return 0
	}
	order := 0
	for _, a := range fn.Args {
		if argOrder := Order(a) + 1; argOrder > order {
			order = argOrder
		}
	}
	return order
}

func toSet(vs []symbol.Symbol) map[symbol.Symbol]bool {
	seen := make(map[symbol.Symbol]bool, len(vs))
	for _, v := range vs {
		seen[v] = true
	}
	return seen
}

func appendFresh(out *[]symbol.Symbol, seen map[symbol.Symbol]bool, vs []symbol.Symbol) {
	for _, v := range vs {
		if !seen[v] {
			seen[v] = true
			*out = append(*out, v)
		}
	}
}

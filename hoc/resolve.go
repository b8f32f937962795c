package hoc

import (
	"github.com/waybelow-lang/waybelow/internal/errkind"
	"github.com/waybelow-lang/waybelow/logicm"
	"github.com/waybelow-lang/waybelow/subst"
	"github.com/waybelow-lang/waybelow/symbol"
	"github.com/waybelow-lang/waybelow/term"
	"github.com/waybelow-lang/waybelow/types"
	"github.com/waybelow-lang/waybelow/unify"
	"github.com/waybelow-lang/waybelow/util"
)

// Clause is a compiled, runtime-term representation of one program clause:
// its flattened head arguments and its body as a conjunction list of atoms
// (empty for a fact).
type Clause struct {
	HeadArgs []term.Term
	Body     []term.Term
}

type predKey struct {
	Name  string
	Arity int
}

// Database is the compiled clause store the rigid resolver enumerates over
// (spec §4.H.1 "clausesOf").
type Database struct {
	clauses map[predKey][]Clause
}

// NewDatabase returns an empty clause store.
func NewDatabase() *Database {
	return &Database{clauses: make(map[predKey][]Clause)}
}

// Add installs one compiled clause under (name, arity).
func (db *Database) Add(name string, arity int, c Clause) {
	db.clauses[predKey{name, arity}] = append(db.clauses[predKey{name, arity}], c)
}

// Merge installs every clause of other into db, under its own (name, arity).
// Used to fold the builtin predicate library into a program's own compiled
// database before proof search begins.
func (db *Database) Merge(other *Database) {
	for key, clauses := range other.clauses {
		db.clauses[key] = append(db.clauses[key], clauses...)
	}
}

// ClausesOf returns every clause defining (name, arity), in program order.
func (db *Database) ClausesOf(name string, arity int) []Clause {
	return db.clauses[predKey{name, arity}]
}

// Variant renames every variable in c to a fresh one sharing its base name,
// producing a structurally identical clause with no variables shared with
// any other use of c (spec §4.H.1 "variant").
func Variant(src *symbol.Source, c Clause) Clause {
	renaming := src.Variant(collectVars(c))
	lookup := func(v symbol.Symbol) (term.Term, bool) {
		if fresh, ok := renaming[v]; ok {
			return term.Flex{Sym: fresh}, true
		}
		return nil, false
	}
	newHead := make([]term.Term, len(c.HeadArgs))
	for i, a := range c.HeadArgs {
		newHead[i] = a.Rewrite(lookup)
	}
	newBody := make([]term.Term, len(c.Body))
	for i, a := range c.Body {
		newBody[i] = a.Rewrite(lookup)
	}
	return Clause{HeadArgs: newHead, Body: newBody}
}

// collectVars gathers every variable of c exactly once, using the teacher's
// small MSet wrapper rather than a hand-rolled map[symbol.Symbol]bool: the
// order clauses get variant-renamed in has no observable effect (Variant
// just needs the complete set of names to rename), so a plain set suffices
// here where ast.VarsOf needs order preservation instead.
func collectVars(c Clause) []symbol.Symbol {
	seen := util.NewEmptySet[symbol.Symbol]()
	for _, a := range c.HeadArgs {
		seen.Add(a.FreeVars()...)
	}
	for _, a := range c.Body {
		seen.Add(a.FreeVars()...)
	}
	return seen.AsSlice()
}

// Branch is one resolution outcome: the subgoal to prove next, and the
// substitution the resolution step produced.
type Branch struct {
	Subgoal []term.Term
	Subst   TermSubst
}

// RigidResolve implements §H.1: enumerate every clause whose head symbol
// matches (name, arity), freshly variant-rename each, unify the atom's
// arguments against the variant's head, and yield the resulting branch. A
// clause that fails to unify contributes no branch (proof-search errors
// are recovered as branch failure, spec §7).
func RigidResolve(src *symbol.Source, db *Database, name string, arity int, args []term.Term) logicm.Stream[Branch] {
	clauses := db.ClausesOf(name, arity)
	branches := make([]logicm.Stream[Branch], len(clauses))
	for i, cl := range clauses {
		cl := cl
		branches[i] = func(yield func(Branch) bool) {
			v := Variant(src, cl)
			s, err := unify.Unify(term.Tup{Elems: args}, term.Tup{Elems: v.HeadArgs})
			if err != nil {
				return
			}
			subgoal := make([]term.Term, len(v.Body))
			for j, a := range v.Body {
				subgoal[j] = s.Apply(a)
			}
			yield(Branch{Subgoal: subgoal, Subst: s})
		}
	}
	return logicm.MPlusAll(branches...)
}

// SetResolve implements §H.2: given a set-headed atom App(Set, args), grow
// the carrier by one demanded element and succeed with the empty subgoal,
// per the last-witness heuristic the spec preserves verbatim (§9).
func SetResolve(src *symbol.Source, set term.Set, args []term.Term) (TermSubst, error) {
	w, ok := set.LastWitness()
	if !ok {
		return TermSubst{}, errkind.Newf(errkind.NotImpl, "set carrier has no witness to grow")
	}

	var argType types.Rho = types.Individual{}
	if fn, ok := w.Typ.(types.Fun); ok && len(fn.Args) > 0 {
		argType = fn.Args[0]
	}
	x := term.Flex{Sym: src.Fresh("x"), Typ: argType}
	vPrime := src.Fresh("v")

	var target term.Term
	if len(args) == 1 {
		target = args[0]
	} else {
		target = term.Tup{Elems: args}
	}

	sigma, err := Waybelow(src, x, target)
	if err != nil {
		return TermSubst{}, err
	}

	grown := term.Set{Snapshot: []term.Term{x}, Witnesses: []term.Witness{{Var: vPrime, Typ: w.Typ}}}
	bind, err := subst.Bind[term.Term](w.Var, grown)
	if err != nil {
		return TermSubst{}, err
	}
	return subst.Combine(bind, sigma), nil
}

package types

import (
	"github.com/benbjohnson/immutable"
	"github.com/waybelow-lang/waybelow/symbol"
)

// PredKey identifies a predicate definition by name and arity (spec §3.2:
// "A predicate definition groups all clauses of one (name, arity)").
type PredKey struct {
	Name  string
	Arity int
}

// predKeyHasher lets PredKey be used as an immutable.Map key, the same way
// the teacher repo hashes AST nodes for its hset package.
type predKeyHasher struct{}

func (predKeyHasher) Hash(k PredKey) uint32 {
	h := uint32(2166136261)
	for i := 0; i < len(k.Name); i++ {
		h = (h ^ uint32(k.Name[i])) * 16777619
	}
	return h ^ uint32(k.Arity)*16777619
}

func (predKeyHasher) Equal(a, b PredKey) bool {
	return a.Name == b.Name && a.Arity == b.Arity
}

// Env is the predicate-type environment: a persistent mapping from
// (name, arity) to a generalized polytype. It is persistent (rather than a
// plain mutable map) so that a dependency group's ambient environment can
// be snapshotted cheaply at group entry, per spec §4.E step 5.
type Env struct {
	m *immutable.Map[PredKey, Scheme]
}

// NewEnv returns the empty predicate-type environment.
func NewEnv() *Env {
	return &Env{m: immutable.NewMap[PredKey, Scheme](predKeyHasher{})}
}

// SchemeOf looks up the polytype declared for (name, arity).
func (e *Env) SchemeOf(name string, arity int) (Scheme, bool) {
	return e.m.Get(PredKey{Name: name, Arity: arity})
}

// With returns a new environment extending e with one more binding,
// leaving e itself unchanged.
func (e *Env) With(name string, arity int, s Scheme) *Env {
	return &Env{m: e.m.Set(PredKey{Name: name, Arity: arity}, s)}
}

// Len reports how many predicates are bound in e.
func (e *Env) Len() int {
	return e.m.Len()
}

// FreeVars returns the (deduplicated) free type variables across every
// scheme's body currently bound in e, used by Generalize to determine
// which variables a new scheme may safely quantify over.
func (e *Env) FreeVars() []symbol.Symbol {
	var out []symbol.Symbol
	seen := make(map[symbol.Symbol]bool)
	itr := e.m.Iterator()
	for !itr.Done() {
		_, scheme, _ := itr.Next()
		bound := make(map[symbol.Symbol]bool, len(scheme.Vars))
		for _, v := range scheme.Vars {
			bound[v] = true
		}
		for _, v := range scheme.Body.FreeVars() {
			if bound[v] || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

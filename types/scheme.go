package types

import (
	"strings"

	"github.com/waybelow-lang/waybelow/symbol"
)

// Scheme is a polytype ∀ᾱ.π: a ρ-type body with a list of universally
// quantified variables.
type Scheme struct {
	Vars []symbol.Symbol
	Body Rho
}

// Mono wraps a ρ-type with no quantified variables, i.e. a monotype used
// as a tentative binding while a dependency group is being inferred (spec
// §4.E step 2).
func Mono(r Rho) Scheme {
	return Scheme{Body: r}
}

func (s Scheme) String() string {
	if len(s.Vars) == 0 {
		return s.Body.String()
	}
	names := make([]string, len(s.Vars))
	for i, v := range s.Vars {
		names[i] = "'" + v.String()
	}
	return "forall " + strings.Join(names, " ") + ". " + s.Body.String()
}

// Freshen instantiates a polytype: every quantified variable is
// alpha-renamed to a fresh one, per spec §4.E "Instantiating a polytype".
func (s Scheme) Freshen(src *symbol.Source) Rho {
	if len(s.Vars) == 0 {
		return s.Body
	}
	renaming := src.Variant(s.Vars)
	lookup := func(v symbol.Symbol) (Rho, bool) {
		if fresh, ok := renaming[v]; ok {
			return Var{Sym: fresh}, true
		}
		return nil, false
	}
	return s.Body.Rewrite(lookup)
}

// Generalize promotes every free variable of body that does not appear in
// ambient (the predicate-type environment snapshotted at group entry) to a
// universally quantified parameter, per spec §4.E step 5.
func Generalize(ambient *Env, body Rho) Scheme {
	ambientFree := ambient.FreeVars()
	ambientSet := make(map[symbol.Symbol]bool, len(ambientFree))
	for _, v := range ambientFree {
		ambientSet[v] = true
	}
	var quantified []symbol.Symbol
	for _, v := range body.FreeVars() {
		if !ambientSet[v] {
			quantified = append(quantified, v)
		}
	}
	return Scheme{Vars: quantified, Body: body}
}

package ast

import "github.com/hashicorp/go-set/v3"

// VarsOf returns the names of every named variable occurring in e, in
// order of first occurrence with no duplicates. Anonymous variables are
// excluded since each is its own fresh identity (spec §3.1) and never
// contributes a name to share across occurrences.
func VarsOf[Info any](e Expr[Info]) []string {
	var out []string
	seen := set.New[string](0)
	walkVars(e, func(name string) {
		if seen.Insert(name) {
			out = append(out, name)
		}
	})
	return out
}

func walkVars[Info any](e Expr[Info], visit func(string)) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case Var[Info]:
		visit(n.Name)
	case Number[Info], Const[Info], PredConst[Info], AnonVar[Info]:
		// no variables
	case App[Info]:
		walkVars(n.Head, visit)
		for _, a := range n.Args {
			walkVars(a, visit)
		}
	case Op[Info]:
		for _, a := range n.Args {
			walkVars(a, visit)
		}
	case Lam[Info]:
		walkVars(n.Body, visit)
	case List[Info]:
		for _, el := range n.Elements {
			walkVars(el, visit)
		}
		if n.Tail != nil {
			walkVars(n.Tail, visit)
		}
	case Eq[Info]:
		walkVars(n.Lhs, visit)
		walkVars(n.Rhs, visit)
	case Paren[Info]:
		walkVars(n.Inner, visit)
	case Ann[Info]:
		walkVars(n.Inner, visit)
	default:
		panic("ast.walkVars: unhandled expression kind")
	}
}

// VarsOfClause returns the named variables occurring anywhere in a clause,
// head and body alike, used to decide a clause's quantified type variables.
func VarsOfClause[Info any](c Clause[Info]) []string {
	var out []string
	seen := set.New[string](0)
	add := func(name string) {
		if seen.Insert(name) {
			out = append(out, name)
		}
	}
	for _, a := range c.Head.FlatArgs() {
		for _, v := range VarsOf(a) {
			add(v)
		}
	}
	if c.Body != nil {
		for _, v := range VarsOf(c.Body.Expr) {
			add(v)
		}
	}
	return out
}

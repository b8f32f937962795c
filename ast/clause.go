package ast

// Gets distinguishes a clause body that is typed monomorphically from one
// typed polymorphically against the head's declared scheme, spec §3.2 /
// §4.E "Mono vs Poly clause bodies".
type Gets int

const (
	Mono Gets = iota
	Poly
)

// SHead is a predicate clause head: a curried sequence of argument groups,
// (p)(a1, ..., am)(b1, ..., bn)..., as the head was written. Inference and
// the proof engine work on the concatenated list (see FlatArgs).
type SHead[Info any] struct {
	Info          Info
	Name          string
	Args          [][]Expr[Info]
	InferredArity int
}

// FlatArgs concatenates every argument group into a single flat argument
// list, the shape most of the rest of the pipeline (constraint generation,
// the proof engine) actually wants.
func (h SHead[Info]) FlatArgs() []Expr[Info] {
	var out []Expr[Info]
	for _, group := range h.Args {
		out = append(out, group...)
	}
	return out
}

// ClauseBody is the right-hand side of a non-fact clause.
type ClauseBody[Info any] struct {
	Gets Gets
	Expr Expr[Info]
}

// Clause is one head :- body (or, when Body is nil, a fact) definition. By
// convention a clause's own Info, once typed, always carries o (spec §4.E:
// "the clause node itself is annotated with type o by convention").
type Clause[Info any] struct {
	Info Info
	Head SHead[Info]
	Body *ClauseBody[Info]
}

// IsFact reports whether the clause has no body.
func (c Clause[Info]) IsFact() bool { return c.Body == nil }

// PredicateDef collects every clause defining one predicate symbol.
type PredicateDef[Info any] struct {
	Name    string
	Arity   int
	Clauses []Clause[Info]
}

// DependencyGroup is a set of mutually-recursive predicate definitions to
// be typed together, spec §4.E "dependency-ordered group".
type DependencyGroup[Info any] struct {
	Preds []PredicateDef[Info]
}

// Program is a whole program: dependency groups in the order they must be
// typed, earliest (least dependent) group first.
type Program[Info any] struct {
	Groups []DependencyGroup[Info]
}

// Lookup finds a predicate definition by name and arity anywhere in the
// program. The proof engine does not use it; it looks clauses up in the
// compiled hoc.Database instead.
func (p Program[Info]) Lookup(name string, arity int) (PredicateDef[Info], bool) {
	for _, g := range p.Groups {
		for _, pd := range g.Preds {
			if pd.Name == name && pd.Arity == arity {
				return pd, true
			}
		}
	}
	return PredicateDef[Info]{}, false
}

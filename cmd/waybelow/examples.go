package main

import (
	"github.com/waybelow-lang/waybelow/ast"
	"github.com/waybelow-lang/waybelow/proof"
	"github.com/waybelow-lang/waybelow/symbol"
	"github.com/waybelow-lang/waybelow/term"
)

// example bundles a small program with a goal to prove against it, enough
// to exercise both typecheck and prove without a surface parser (spec §8
// scenarios S1-S3).
type example struct {
	name    string
	program ast.Program[string]
	pred    struct {
		name  string
		arity int
	}
	goal func() proof.Goal
}

func rigid(name string, arity int) term.Term {
	return term.Rigid{Sym: symbol.Plain(name), Arity: arity}
}

func cons(h, t ast.Expr[string]) ast.Expr[string] {
	return ast.List[string]{Elements: []ast.Expr[string]{h}, Tail: t}
}

func consTerm(h, t term.Term) term.Term {
	return term.App{Head: rigid(".", 2), Args: []term.Term{h, t}}
}

func listTerm(elems ...term.Term) term.Term {
	tail := rigid("[]", 0)
	for i := len(elems) - 1; i >= 0; i-- {
		tail = consTerm(elems[i], tail)
	}
	return tail
}

func v(name string) ast.Expr[string] { return ast.Var[string]{Name: name} }

func appendExample() example {
	nilList := ast.List[string]{}
	clause1 := ast.Clause[string]{
		Head: ast.SHead[string]{Name: "append", InferredArity: 3, Args: [][]ast.Expr[string]{{nilList, v("Ys"), v("Ys")}}},
	}
	call := ast.App[string]{
		Head: ast.Const[string]{Name: "append", IsPredicate: true, InferredArity: 3},
		Args: []ast.Expr[string]{v("Xs"), v("Ys"), v("Zs")},
	}
	clause2 := ast.Clause[string]{
		Head: ast.SHead[string]{Name: "append", InferredArity: 3, Args: [][]ast.Expr[string]{{
			cons(v("X"), v("Xs")), v("Ys"), cons(v("X"), v("Zs")),
		}}},
		Body: &ast.ClauseBody[string]{Expr: call},
	}
	prog := ast.Program[string]{Groups: []ast.DependencyGroup[string]{
		{Preds: []ast.PredicateDef[string]{{Name: "append", Arity: 3, Clauses: []ast.Clause[string]{clause1, clause2}}}},
	}}

	e := example{name: "append", program: prog}
	e.pred.name, e.pred.arity = "append", 3
	e.goal = func() proof.Goal {
		r := symbol.Plain("R")
		return proof.Goal{term.App{Head: rigid("append", 3), Args: []term.Term{
			listTerm(rigid("1", 0), rigid("2", 0)),
			listTerm(rigid("3", 0)),
			term.Flex{Sym: r},
		}}}
	}
	return e
}

func memberExample() example {
	clause1 := ast.Clause[string]{
		Head: ast.SHead[string]{Name: "member", InferredArity: 2, Args: [][]ast.Expr[string]{{
			v("X"), cons(v("X"), ast.AnonVar[string]{}),
		}}},
	}
	call := ast.App[string]{
		Head: ast.Const[string]{Name: "member", IsPredicate: true, InferredArity: 2},
		Args: []ast.Expr[string]{v("X"), v("T")},
	}
	clause2 := ast.Clause[string]{
		Head: ast.SHead[string]{Name: "member", InferredArity: 2, Args: [][]ast.Expr[string]{{
			v("X"), cons(ast.AnonVar[string]{ID: 1}, v("T")),
		}}},
		Body: &ast.ClauseBody[string]{Expr: call},
	}
	prog := ast.Program[string]{Groups: []ast.DependencyGroup[string]{
		{Preds: []ast.PredicateDef[string]{{Name: "member", Arity: 2, Clauses: []ast.Clause[string]{clause1, clause2}}}},
	}}

	e := example{name: "member", program: prog}
	e.pred.name, e.pred.arity = "member", 2
	e.goal = func() proof.Goal {
		x := symbol.Plain("X")
		return proof.Goal{term.App{Head: rigid("member", 2), Args: []term.Term{
			term.Flex{Sym: x},
			listTerm(rigid("a", 0), rigid("b", 0), rigid("c", 0)),
		}}}
	}
	return e
}

func callExample() example {
	callClause := ast.Clause[string]{
		Head: ast.SHead[string]{Name: "call", InferredArity: 2, Args: [][]ast.Expr[string]{{v("P"), v("X")}}},
		Body: &ast.ClauseBody[string]{Expr: ast.App[string]{Head: v("P"), Args: []ast.Expr[string]{v("X")}}},
	}
	pClause := ast.Clause[string]{
		Head: ast.SHead[string]{Name: "p", InferredArity: 1, Args: [][]ast.Expr[string]{{ast.Number[string]{IntVal: 1}}}},
	}
	prog := ast.Program[string]{Groups: []ast.DependencyGroup[string]{
		{Preds: []ast.PredicateDef[string]{
			{Name: "p", Arity: 1, Clauses: []ast.Clause[string]{pClause}},
		}},
		{Preds: []ast.PredicateDef[string]{
			{Name: "call", Arity: 2, Clauses: []ast.Clause[string]{callClause}},
		}},
	}}

	e := example{name: "call", program: prog}
	e.pred.name, e.pred.arity = "call", 2
	e.goal = func() proof.Goal {
		return proof.Goal{term.App{Head: rigid("call", 2), Args: []term.Term{rigid("p", 1), rigid("1", 0)}}}
	}
	return e
}

func examples() map[string]example {
	out := make(map[string]example)
	for _, e := range []example{appendExample(), memberExample(), callExample()} {
		out[e.name] = e
	}
	return out
}

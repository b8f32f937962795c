package proof

import (
	"fmt"

	"github.com/waybelow-lang/waybelow/ast"
	"github.com/waybelow-lang/waybelow/hoc"
	"github.com/waybelow-lang/waybelow/infer"
	"github.com/waybelow-lang/waybelow/internal/errkind"
	"github.com/waybelow-lang/waybelow/symbol"
	"github.com/waybelow-lang/waybelow/term"
)

// Compile translates a type-checked program into a runtime clause
// database, the boundary between type inference (§4.E/§4.F) and proof
// search (§4.G/§4.H): every surface expression becomes a Rigid/Flex/App
// term, and every clause body becomes a flat conjunction list of atoms.
func Compile[I any](prog ast.Program[infer.Typed[I]]) (*hoc.Database, error) {
	db := hoc.NewDatabase()
	for _, g := range prog.Groups {
		for _, pd := range g.Preds {
			for _, cl := range pd.Clauses {
				flat := cl.Head.FlatArgs()
				headArgs := make([]term.Term, 0, len(flat))
				for _, a := range flat {
					t, err := compileExpr(a)
					if err != nil {
						return nil, err
					}
					headArgs = append(headArgs, t)
				}
				var body []term.Term
				if cl.Body != nil {
					bodyTerm, err := compileExpr(cl.Body.Expr)
					if err != nil {
						return nil, err
					}
					body = flattenConj(bodyTerm)
				}
				db.Add(pd.Name, pd.Arity, hoc.Clause{HeadArgs: headArgs, Body: body})
			}
		}
	}
	return db, nil
}

// flattenConj splits a right-nested ','/2 application into its conjuncts,
// the runtime-term shape a goal list needs.
func flattenConj(t term.Term) []term.Term {
	app, ok := t.(term.App)
	if !ok {
		return []term.Term{t}
	}
	rigid, ok := app.Head.(term.Rigid)
	if !ok || rigid.Sym.Name != "," || len(app.Args) != 2 {
		return []term.Term{t}
	}
	return append(flattenConj(app.Args[0]), flattenConj(app.Args[1])...)
}

func compileExpr[I any](e ast.Expr[infer.Typed[I]]) (term.Term, error) {
	switch n := e.(type) {
	case ast.Number[infer.Typed[I]]:
		if n.IsFloat {
			return term.Rigid{Sym: symbol.Plain(fmt.Sprintf("%g", n.FloatVal))}, nil
		}
		return term.Rigid{Sym: symbol.Plain(fmt.Sprintf("%d", n.IntVal))}, nil

	case ast.Const[infer.Typed[I]]:
		return term.Rigid{Sym: symbol.Plain(n.Name), Arity: n.InferredArity}, nil

	case ast.PredConst[infer.Typed[I]]:
		return term.Rigid{Sym: symbol.Plain(n.Name), Arity: n.InferredArity}, nil

	case ast.Var[infer.Typed[I]]:
		return term.Flex{Sym: symbol.Plain(n.Name), Typ: n.Info.Type}, nil

	case ast.AnonVar[infer.Typed[I]]:
		return term.Flex{Sym: symbol.Symbol{Name: "_", Gen: n.ID}, Typ: n.Info.Type}, nil

	case ast.App[infer.Typed[I]]:
		head, err := compileExpr(n.Head)
		if err != nil {
			return nil, err
		}
		args, err := compileExprs(n.Args)
		if err != nil {
			return nil, err
		}
		return term.App{Head: head, Args: args}, nil

	case ast.Op[infer.Typed[I]]:
		args, err := compileExprs(n.Args)
		if err != nil {
			return nil, err
		}
		return term.App{Head: term.Rigid{Sym: symbol.Plain(n.Name), Arity: len(n.Args)}, Args: args}, nil

	case ast.List[infer.Typed[I]]:
		tail := term.Term(term.Rigid{Sym: symbol.Plain("[]")})
		if n.Tail != nil {
			t, err := compileExpr(n.Tail)
			if err != nil {
				return nil, err
			}
			tail = t
		}
		for i := len(n.Elements) - 1; i >= 0; i-- {
			h, err := compileExpr(n.Elements[i])
			if err != nil {
				return nil, err
			}
			tail = term.App{Head: term.Rigid{Sym: symbol.Plain("."), Arity: 2}, Args: []term.Term{h, tail}}
		}
		return tail, nil

	case ast.Eq[infer.Typed[I]]:
		lhs, err := compileExpr(n.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := compileExpr(n.Rhs)
		if err != nil {
			return nil, err
		}
		return term.App{Head: term.Rigid{Sym: symbol.Plain("="), Arity: 2}, Args: []term.Term{lhs, rhs}}, nil

	case ast.Paren[infer.Typed[I]]:
		return compileExpr(n.Inner)

	default:
		return nil, errkind.Newf(errkind.NotImpl, "no runtime term for expression kind %T", e)
	}
}

func compileExprs[I any](es []ast.Expr[infer.Typed[I]]) ([]term.Term, error) {
	out := make([]term.Term, len(es))
	for i, e := range es {
		t, err := compileExpr(e)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

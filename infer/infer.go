// Package infer implements the Type Inference Engine, spec §4.E: constraint
// generation over the surface syntax tree, followed by a call into the
// Type Constraint Solver (package typesolve) to resolve every constraint
// collected for one dependency group, followed by generalization.
package infer

import (
	"github.com/waybelow-lang/waybelow/ast"
	"github.com/waybelow-lang/waybelow/symbol"
	"github.com/waybelow-lang/waybelow/typesolve"
	"github.com/waybelow-lang/waybelow/types"
)

// Typed is the info payload attached to every node once inference has run:
// its inferred type paired with whatever payload the node carried on input
// (spec §4.E: "the same program with every info payload replaced by
// (type, original-info)").
type Typed[I any] struct {
	Type types.Rho
	Orig I
}

// Program runs type inference over every dependency group of prog in
// order, threading the predicate environment from one group to the next.
// builtins supplies the initial predicate environment (spec §6: built-ins
// such as =/2, true/0, fail/0).
func Program[I any](prog ast.Program[I], src *symbol.Source, builtins *types.Env) (ast.Program[Typed[I]], *types.Env, error) {
	env := builtins
	groups := make([]ast.DependencyGroup[Typed[I]], 0, len(prog.Groups))
	for _, g := range prog.Groups {
		typedGroup, newEnv, err := inferGroup(g, src, env)
		if err != nil {
			return ast.Program[Typed[I]]{}, nil, err
		}
		env = newEnv
		groups = append(groups, typedGroup)
	}
	return ast.Program[Typed[I]]{Groups: groups}, env, nil
}

// inferGroup runs the five-step per-group algorithm of spec §4.E.
func inferGroup[I any](g ast.DependencyGroup[I], src *symbol.Source, ambient *types.Env) (ast.DependencyGroup[Typed[I]], *types.Env, error) {
	// Steps 1-2: fabricate the most general type for each predicate in the
	// group and bind it tentatively so mutually recursive clauses can see
	// each other's (not yet generalized) type.
	tentative := ambient
	tentativeTypes := make(map[types.PredKey]types.Rho, len(g.Preds))
	for _, pd := range g.Preds {
		t := types.MostGeneralPred(src, pd.Arity)
		tentativeTypes[types.PredKey{Name: pd.Name, Arity: pd.Arity}] = t
		tentative = tentative.With(pd.Name, pd.Arity, types.Mono(t))
	}

	var constraints []typesolve.Constraint
	typedPreds := make([]ast.PredicateDef[Typed[I]], 0, len(g.Preds))
	for _, pd := range g.Preds {
		typedClauses := make([]ast.Clause[Typed[I]], 0, len(pd.Clauses))
		for _, cl := range pd.Clauses {
			tc, err := inferClause(cl, src, tentative, &constraints)
			if err != nil {
				return ast.DependencyGroup[Typed[I]]{}, nil, err
			}
			typedClauses = append(typedClauses, tc)
		}
		typedPreds = append(typedPreds, ast.PredicateDef[Typed[I]]{Name: pd.Name, Arity: pd.Arity, Clauses: typedClauses})
	}

	// Step 3: solve every constraint collected across the whole group.
	sigmaT, err := typesolve.Solve(constraints)
	if err != nil {
		return ast.DependencyGroup[Typed[I]]{}, nil, err
	}

	// Step 4: apply σ_T to every type payload in the group's syntax tree.
	for i := range typedPreds {
		for j := range typedPreds[i].Clauses {
			typedPreds[i].Clauses[j] = applySigmaClause(sigmaT, typedPreds[i].Clauses[j])
		}
	}

	// Step 5: generalize each predicate's remaining free type variables
	// relative to the ambient environment at group entry, and install into
	// the outer environment.
	outEnv := ambient
	for _, pd := range g.Preds {
		key := types.PredKey{Name: pd.Name, Arity: pd.Arity}
		body := sigmaT.Apply(tentativeTypes[key])
		scheme := types.Generalize(ambient, body)
		outEnv = outEnv.With(pd.Name, pd.Arity, scheme)
	}

	return ast.DependencyGroup[Typed[I]]{Preds: typedPreds}, outEnv, nil
}

// inferClause types one clause: its head with every head (and body)
// variable bound to a shared fresh type variable, then its body, per the
// "Clause typing" rules of spec §4.E.
func inferClause[I any](cl ast.Clause[I], src *symbol.Source, env *types.Env, constraints *[]typesolve.Constraint) (ast.Clause[Typed[I]], error) {
	c := &ctx[I]{src: src, env: env, varEnv: map[string]types.Rho{}, exists: map[string]types.Rho{}, constraints: constraints}

	// "The body reuses those same bindings": every named variable in the
	// clause (head or body) is pre-bound once, so head and body occurrences
	// of the same name always resolve to the same type variable.
	for _, name := range ast.VarsOfClause(cl) {
		c.varEnv[name] = types.Var{Sym: src.Fresh("a")}
	}

	typedGroups := make([][]ast.Expr[Typed[I]], len(cl.Head.Args))
	var argTypes []types.Rho
	for i, group := range cl.Head.Args {
		tg := make([]ast.Expr[Typed[I]], len(group))
		for j, a := range group {
			ta, err := c.infer(a)
			if err != nil {
				return ast.Clause[Typed[I]]{}, err
			}
			tg[j] = ta
			argTypes = append(argTypes, ta.GetInfo().Type)
		}
		typedGroups[i] = tg
	}

	headVar := types.Var{Sym: src.Fresh("phi")}
	poly := c.findPoly(cl.Head.Name, cl.Head.InferredArity)
	c.emit(poly, types.Fun{Args: argTypes, Ret: headVar}, cl.Head)

	typedHead := ast.SHead[Typed[I]]{
		Info:          Typed[I]{Type: headVar, Orig: cl.Head.Info},
		Name:          cl.Head.Name,
		Args:          typedGroups,
		InferredArity: cl.Head.InferredArity,
	}

	var typedBody *ast.ClauseBody[Typed[I]]
	switch {
	case cl.Body == nil:
		// Fact: constrain typeOf(head) ≡ o.
		c.emit(headVar, types.Prop{}, cl.Head)
	case cl.Body.Gets == ast.Mono:
		tb, err := c.infer(cl.Body.Expr)
		if err != nil {
			return ast.Clause[Typed[I]]{}, err
		}
		c.emit(headVar, types.Prop{}, cl.Head)
		c.emit(tb.GetInfo().Type, types.Prop{}, cl.Body.Expr)
		typedBody = &ast.ClauseBody[Typed[I]]{Gets: ast.Mono, Expr: tb}
	default: // ast.Poly
		tb, err := c.infer(cl.Body.Expr)
		if err != nil {
			return ast.Clause[Typed[I]]{}, err
		}
		c.emit(tb.GetInfo().Type, headVar, cl.Body.Expr)
		typedBody = &ast.ClauseBody[Typed[I]]{Gets: ast.Poly, Expr: tb}
	}

	return ast.Clause[Typed[I]]{
		Info: Typed[I]{Type: types.Prop{}, Orig: cl.Info},
		Head: typedHead,
		Body: typedBody,
	}, nil
}

// applySigma rewrites every node's inferred Type under sigma, leaving the
// original payload and tree structure untouched.
func applySigma[I any](sigma typesolve.TypeSubst, e ast.Expr[Typed[I]]) ast.Expr[Typed[I]] {
	return ast.MapInfo(e, func(t Typed[I]) Typed[I] {
		return Typed[I]{Type: sigma.Apply(t.Type), Orig: t.Orig}
	})
}

func applySigmaClause[I any](sigma typesolve.TypeSubst, cl ast.Clause[Typed[I]]) ast.Clause[Typed[I]] {
	newGroups := make([][]ast.Expr[Typed[I]], len(cl.Head.Args))
	for i, group := range cl.Head.Args {
		ng := make([]ast.Expr[Typed[I]], len(group))
		for j, e := range group {
			ng[j] = applySigma(sigma, e)
		}
		newGroups[i] = ng
	}
	newHead := ast.SHead[Typed[I]]{
		Info:          Typed[I]{Type: sigma.Apply(cl.Head.Info.Type), Orig: cl.Head.Info.Orig},
		Name:          cl.Head.Name,
		Args:          newGroups,
		InferredArity: cl.Head.InferredArity,
	}
	var newBody *ast.ClauseBody[Typed[I]]
	if cl.Body != nil {
		newBody = &ast.ClauseBody[Typed[I]]{Gets: cl.Body.Gets, Expr: applySigma(sigma, cl.Body.Expr)}
	}
	return ast.Clause[Typed[I]]{
		Info: Typed[I]{Type: sigma.Apply(cl.Info.Type), Orig: cl.Info.Orig},
		Head: newHead,
		Body: newBody,
	}
}

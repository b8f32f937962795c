package infer

import (
	"github.com/waybelow-lang/waybelow/ast"
	"github.com/waybelow-lang/waybelow/internal/errkind"
	"github.com/waybelow-lang/waybelow/symbol"
	"github.com/waybelow-lang/waybelow/typesolve"
	"github.com/waybelow-lang/waybelow/types"
)

// ctx carries the state threaded through constraint generation for one
// clause: the fresh-symbol source, the outer predicate environment, the
// lexical variable scope (head variables and, inside a Lam, its params),
// the existential map recording first-seen variable names (spec §4.E:
// "fresh existential variable map"), and the constraint list being
// accumulated for the enclosing group.
type ctx[I any] struct {
	src         *symbol.Source
	env         *types.Env
	varEnv      map[string]types.Rho
	exists      map[string]types.Rho
	constraints *[]typesolve.Constraint
}

func (c *ctx[I]) emit(lhs, rhs types.Rho, origin any) {
	*c.constraints = append(*c.constraints, typesolve.Constraint{Lhs: lhs, Rhs: rhs, Origin: origin})
}

// child returns a ctx sharing this one's environment, existentials and
// constraint list but with its own lexical variable scope, used to type a
// Lam body without leaking its parameter bindings back out.
func (c *ctx[I]) child(varEnv map[string]types.Rho) *ctx[I] {
	return &ctx[I]{src: c.src, env: c.env, varEnv: varEnv, exists: c.exists, constraints: c.constraints}
}

// findPoly instantiates the polytype declared for (name, arity) in the
// predicate environment, or fabricates the most general type for that
// arity if none is declared yet, per spec §4.E "Instantiating a polytype".
func (c *ctx[I]) findPoly(name string, arity int) types.Rho {
	if scheme, ok := c.env.SchemeOf(name, arity); ok {
		return scheme.Freshen(c.src)
	}
	return types.MostGeneralPred(c.src, arity)
}

func (c *ctx[I]) lookupVar(name string) types.Rho {
	if t, ok := c.varEnv[name]; ok {
		return t
	}
	if t, ok := c.exists[name]; ok {
		return t
	}
	t := types.Var{Sym: c.src.Fresh("a")}
	c.exists[name] = t
	return t
}

// infer generates the typed counterpart of e along with every constraint
// its shape demands, implementing the per-expression rule table of spec
// §4.E.
func (c *ctx[I]) infer(e ast.Expr[I]) (ast.Expr[Typed[I]], error) {
	switch n := e.(type) {
	case ast.Number[I]:
		return ast.Number[Typed[I]]{
			Info: Typed[I]{Type: types.Individual{}, Orig: n.Info}, IsFloat: n.IsFloat, IntVal: n.IntVal, FloatVal: n.FloatVal,
		}, nil

	case ast.Const[I]:
		if !n.IsPredicate {
			return ast.Const[Typed[I]]{
				Info: Typed[I]{Type: types.Individual{}, Orig: n.Info}, Name: n.Name,
				GivenArity: n.GivenArity, InferredArity: n.InferredArity,
			}, nil
		}
		t := c.findPoly(n.Name, n.InferredArity)
		return ast.Const[Typed[I]]{
			Info: Typed[I]{Type: t, Orig: n.Info}, Name: n.Name, IsPredicate: true,
			GivenArity: n.GivenArity, InferredArity: n.InferredArity,
		}, nil

	case ast.PredConst[I]:
		t := c.findPoly(n.Name, n.InferredArity)
		return ast.PredConst[Typed[I]]{
			Info: Typed[I]{Type: t, Orig: n.Info}, Name: n.Name,
			GivenArity: n.GivenArity, InferredArity: n.InferredArity,
		}, nil

	case ast.Var[I]:
		t := c.lookupVar(n.Name)
		return ast.Var[Typed[I]]{Info: Typed[I]{Type: t, Orig: n.Info}, Name: n.Name}, nil

	case ast.AnonVar[I]:
		t := types.Var{Sym: c.src.Fresh("a")}
		return ast.AnonVar[Typed[I]]{Info: Typed[I]{Type: t, Orig: n.Info}, ID: n.ID}, nil

	case ast.App[I]:
		return c.inferApp(n)

	case ast.Op[I]:
		return c.inferOp(n)

	case ast.List[I]:
		return c.inferList(n)

	case ast.Eq[I]:
		tl, err := c.infer(n.Lhs)
		if err != nil {
			return nil, err
		}
		tr, err := c.infer(n.Rhs)
		if err != nil {
			return nil, err
		}
		c.emit(tl.GetInfo().Type, tr.GetInfo().Type, n)
		return ast.Eq[Typed[I]]{Info: Typed[I]{Type: types.Prop{}, Orig: n.Info}, Lhs: tl, Rhs: tr}, nil

	case ast.Lam[I]:
		return c.inferLam(n)

	case ast.Paren[I]:
		inner, err := c.infer(n.Inner)
		if err != nil {
			return nil, err
		}
		return ast.Paren[Typed[I]]{Info: Typed[I]{Type: inner.GetInfo().Type, Orig: n.Info}, Inner: inner}, nil

	case ast.Ann[I]:
		// Reserved; constraint generation always fails it (spec §4.E, §9).
		return nil, errkind.WithOrigin(errkind.NotImpl, n, "type annotations are not implemented")

	default:
		return nil, errkind.Newf(errkind.NotImpl, "no constraint-generation rule for expression kind %T", e)
	}
}

// inferApp handles App(f, args). A non-predicate constant head is the
// "functional application" case: the whole application is typed i and
// every argument is constrained to i (spec §9 notes this as the
// placeholder treatment, deliberately preserved rather than introducing a
// separate function-type sort). Any other head is the predicate case.
func (c *ctx[I]) inferApp(n ast.App[I]) (ast.Expr[Typed[I]], error) {
	if headConst, ok := n.Head.(ast.Const[I]); ok && !headConst.IsPredicate {
		typedHead, err := c.infer(n.Head)
		if err != nil {
			return nil, err
		}
		typedArgs := make([]ast.Expr[Typed[I]], len(n.Args))
		for i, a := range n.Args {
			ta, err := c.infer(a)
			if err != nil {
				return nil, err
			}
			c.emit(ta.GetInfo().Type, types.Individual{}, a)
			typedArgs[i] = ta
		}
		return ast.App[Typed[I]]{Info: Typed[I]{Type: types.Individual{}, Orig: n.Info}, Head: typedHead, Args: typedArgs}, nil
	}

	typedHead, err := c.infer(n.Head)
	if err != nil {
		return nil, err
	}
	typedArgs := make([]ast.Expr[Typed[I]], len(n.Args))
	argTypes := make([]types.Rho, len(n.Args))
	for i, a := range n.Args {
		ta, err := c.infer(a)
		if err != nil {
			return nil, err
		}
		typedArgs[i] = ta
		argTypes[i] = ta.GetInfo().Type
	}
	phi := types.Var{Sym: c.src.Fresh("phi")}
	c.emit(typedHead.GetInfo().Type, types.Fun{Args: argTypes, Ret: phi}, n)
	return ast.App[Typed[I]]{Info: Typed[I]{Type: phi, Orig: n.Info}, Head: typedHead, Args: typedArgs}, nil
}

func (c *ctx[I]) inferOp(n ast.Op[I]) (ast.Expr[Typed[I]], error) {
	typedArgs := make([]ast.Expr[Typed[I]], len(n.Args))
	argTypes := make([]types.Rho, len(n.Args))
	for i, a := range n.Args {
		ta, err := c.infer(a)
		if err != nil {
			return nil, err
		}
		typedArgs[i] = ta
		argTypes[i] = ta.GetInfo().Type
	}

	if !n.IsPredicate {
		for i, t := range argTypes {
			c.emit(t, types.Individual{}, n.Args[i])
		}
		return ast.Op[Typed[I]]{Info: Typed[I]{Type: types.Individual{}, Orig: n.Info}, Name: n.Name, Args: typedArgs}, nil
	}

	poly := c.findPoly(n.Name, len(n.Args))
	phi := types.Var{Sym: c.src.Fresh("phi")}
	c.emit(poly, types.Fun{Args: argTypes, Ret: phi}, n)
	return ast.Op[Typed[I]]{Info: Typed[I]{Type: phi, Orig: n.Info}, Name: n.Name, IsPredicate: true, Args: typedArgs}, nil
}

func (c *ctx[I]) inferList(n ast.List[I]) (ast.Expr[Typed[I]], error) {
	typedElems := make([]ast.Expr[Typed[I]], len(n.Elements))
	for i, e := range n.Elements {
		te, err := c.infer(e)
		if err != nil {
			return nil, err
		}
		c.emit(te.GetInfo().Type, types.Individual{}, e)
		typedElems[i] = te
	}
	var typedTail ast.Expr[Typed[I]]
	if n.Tail != nil {
		tt, err := c.infer(n.Tail)
		if err != nil {
			return nil, err
		}
		c.emit(tt.GetInfo().Type, types.Individual{}, n.Tail)
		typedTail = tt
	}
	return ast.List[Typed[I]]{Info: Typed[I]{Type: types.Individual{}, Orig: n.Info}, Elements: typedElems, Tail: typedTail}, nil
}

func (c *ctx[I]) inferLam(n ast.Lam[I]) (ast.Expr[Typed[I]], error) {
	childVarEnv := make(map[string]types.Rho, len(c.varEnv)+len(n.Params))
	for k, v := range c.varEnv {
		childVarEnv[k] = v
	}
	argTypes := make([]types.Rho, len(n.Params))
	for i, p := range n.Params {
		t := types.Var{Sym: c.src.Fresh("a")}
		childVarEnv[p] = t
		argTypes[i] = t
	}
	child := c.child(childVarEnv)
	typedBody, err := child.infer(n.Body)
	if err != nil {
		return nil, err
	}
	phi := types.Var{Sym: c.src.Fresh("phi")}
	child.emit(typedBody.GetInfo().Type, phi, n.Body)
	return ast.Lam[Typed[I]]{
		Info:   Typed[I]{Type: types.Fun{Args: argTypes, Ret: phi}, Orig: n.Info},
		Params: n.Params, Body: typedBody,
	}, nil
}

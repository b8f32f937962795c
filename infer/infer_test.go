package infer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waybelow-lang/waybelow/ast"
	"github.com/waybelow-lang/waybelow/infer"
	"github.com/waybelow-lang/waybelow/internal/errkind"
	"github.com/waybelow-lang/waybelow/symbol"
	"github.com/waybelow-lang/waybelow/types"
)

// TestIdentityGeneralizesToPolymorphicScheme is scenario S4 from spec.md
// §8: `id(X, X).` must be typed (id, 2) : ∀α. Fun([α, α], o).
func TestIdentityGeneralizesToPolymorphicScheme(t *testing.T) {
	head := ast.SHead[string]{
		Name: "id",
		Args: [][]ast.Expr[string]{{
			ast.Var[string]{Name: "X"},
			ast.Var[string]{Name: "X"},
		}},
		InferredArity: 2,
	}
	prog := ast.Program[string]{
		Groups: []ast.DependencyGroup[string]{
			{Preds: []ast.PredicateDef[string]{
				{Name: "id", Arity: 2, Clauses: []ast.Clause[string]{{Head: head}}},
			}},
		},
	}

	src := symbol.NewSource()
	_, env, err := infer.Program(prog, src, types.NewEnv())
	require.NoError(t, err)

	scheme, ok := env.SchemeOf("id", 2)
	require.True(t, ok)
	require.Len(t, scheme.Vars, 1)

	fn, ok := scheme.Body.(types.Fun)
	require.True(t, ok)
	require.Len(t, fn.Args, 2)
	assert.Equal(t, types.Prop{}, fn.Ret)

	v0, ok0 := fn.Args[0].AsVar()
	v1, ok1 := fn.Args[1].AsVar()
	require.True(t, ok0)
	require.True(t, ok1)
	assert.True(t, v0.Equal(v1), "both argument positions must share the same quantified variable")
	assert.True(t, v0.Equal(scheme.Vars[0]))
}

// TestMixedPredicateAndArithmeticUseFailsTypeClash is scenario S5: a clause
// using the same variable both as a goal and as an arithmetic operand must
// be rejected with TypeClash.
func TestMixedPredicateAndArithmeticUseFailsTypeClash(t *testing.T) {
	x := ast.Var[string]{Name: "X"}
	goalUse := ast.App[string]{Head: x, Args: nil} // "X" called as a 0-ary goal
	arithUse := ast.Op[string]{
		Name: "+", IsPredicate: false,
		Args: []ast.Expr[string]{x, ast.Number[string]{IntVal: 1}},
	}
	body := ast.Op[string]{
		Name: ",", IsPredicate: true,
		Args: []ast.Expr[string]{goalUse, arithUse},
	}

	head := ast.SHead[string]{
		Name:          "bad",
		Args:          [][]ast.Expr[string]{{x}},
		InferredArity: 1,
	}
	clause := ast.Clause[string]{
		Head: head,
		Body: &ast.ClauseBody[string]{Gets: ast.Mono, Expr: body},
	}
	prog := ast.Program[string]{
		Groups: []ast.DependencyGroup[string]{
			{Preds: []ast.PredicateDef[string]{
				{Name: "bad", Arity: 1, Clauses: []ast.Clause[string]{clause}},
			}},
		},
	}

	src := symbol.NewSource()
	_, _, err := infer.Program(prog, src, types.NewEnv())
	require.Error(t, err)
	assert.True(t, errkind.Is(err, errkind.TypeClash))
}

func TestAnnotationAlwaysFailsNotImpl(t *testing.T) {
	head := ast.SHead[string]{Name: "f", Args: [][]ast.Expr[string]{{ast.Var[string]{Name: "X"}}}, InferredArity: 1}
	clause := ast.Clause[string]{
		Head: head,
		Body: &ast.ClauseBody[string]{Gets: ast.Mono, Expr: ast.Ann[string]{Inner: ast.Var[string]{Name: "X"}}},
	}
	prog := ast.Program[string]{
		Groups: []ast.DependencyGroup[string]{
			{Preds: []ast.PredicateDef[string]{{Name: "f", Arity: 1, Clauses: []ast.Clause[string]{clause}}}},
		},
	}

	_, _, err := infer.Program(prog, symbol.NewSource(), types.NewEnv())
	require.Error(t, err)
	assert.True(t, errkind.Is(err, errkind.NotImpl))
}

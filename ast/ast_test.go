package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/waybelow-lang/waybelow/ast"
)

type span struct{ line int }

func TestMapInfoPreservesStructure(t *testing.T) {
	e := ast.App[span]{
		Info: span{1},
		Head: ast.Const[span]{Info: span{1}, Name: "f"},
		Args: []ast.Expr[span]{
			ast.Var[span]{Info: span{1}, Name: "X"},
			ast.Number[span]{Info: span{1}, IntVal: 3},
		},
	}

	mapped := ast.MapInfo[span, string](e, func(s span) string { return "L" })

	app, ok := mapped.(ast.App[string])
	assert.True(t, ok)
	assert.Equal(t, "L", app.Info)
	assert.Len(t, app.Args, 2)
	v, ok := app.Args[0].(ast.Var[string])
	assert.True(t, ok)
	assert.Equal(t, "X", v.Name)
}

func TestVarsOfDedupsAndPreservesOrder(t *testing.T) {
	e := ast.App[span]{
		Head: ast.Const[span]{Name: "f"},
		Args: []ast.Expr[span]{
			ast.Var[span]{Name: "X"},
			ast.Var[span]{Name: "Y"},
			ast.Var[span]{Name: "X"},
		},
	}
	assert.Equal(t, []string{"X", "Y"}, ast.VarsOf[span](e))
}

func TestVarsOfIgnoresAnonymousVars(t *testing.T) {
	e := ast.App[span]{
		Head: ast.Const[span]{Name: "f"},
		Args: []ast.Expr[span]{
			ast.AnonVar[span]{ID: 1},
			ast.AnonVar[span]{ID: 2},
		},
	}
	assert.Empty(t, ast.VarsOf[span](e))
}

func TestProgramLookup(t *testing.T) {
	p := ast.Program[span]{
		Groups: []ast.DependencyGroup[span]{
			{Preds: []ast.PredicateDef[span]{{Name: "append", Arity: 3}}},
		},
	}
	pd, ok := p.Lookup("append", 3)
	assert.True(t, ok)
	assert.Equal(t, "append", pd.Name)

	_, ok = p.Lookup("missing", 1)
	assert.False(t, ok)
}

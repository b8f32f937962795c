// Package waybelow wires the type inference, constraint solving, and proof
// search packages behind the four external interfaces spec §6 names:
// typecheck, prove, unify, and freshen. It owns nothing of its own beyond a
// Session's fresh-name source, so type-level and term-level fresh variables
// drawn across a program's whole pipeline never collide.
package waybelow

import (
	"github.com/waybelow-lang/waybelow/ast"
	"github.com/waybelow-lang/waybelow/hoc"
	"github.com/waybelow-lang/waybelow/infer"
	"github.com/waybelow-lang/waybelow/proof"
	"github.com/waybelow-lang/waybelow/subst"
	"github.com/waybelow-lang/waybelow/symbol"
	"github.com/waybelow-lang/waybelow/term"
	"github.com/waybelow-lang/waybelow/types"
	"github.com/waybelow-lang/waybelow/unify"
)

// Session is the one fresh-name source a program's typecheck, compile and
// proof-search phases all draw from.
type Session struct {
	Src *symbol.Source
}

// NewSession allocates a fresh-name source starting at its first generation.
func NewSession() *Session {
	return &Session{Src: symbol.NewSource()}
}

// Freshen allocates a new symbol sharing base's name, unique within sess
// (spec §6 "freshen").
func Freshen(sess *Session, base string) symbol.Symbol {
	return sess.Src.Fresh(base)
}

// Unify decides whether two runtime terms unify, returning the most general
// substitution that makes them equal (spec §6 "unify").
func Unify(a, b term.Term) (subst.Subst[term.Term], error) {
	return unify.Unify(a, b)
}

// Typecheck infers a ρ-type for every clause of prog against the ambient
// predicate environment env, returning the type-annotated program and the
// environment extended with every predicate prog defines (spec §6
// "typecheck"). Go forbids a generic method from introducing its own type
// parameter, so this is a free function taking *Session rather than a
// Session method.
func Typecheck[I any](sess *Session, prog ast.Program[I], env *types.Env) (ast.Program[infer.Typed[I]], *types.Env, error) {
	return infer.Program(prog, sess.Src, env)
}

// Compile lowers a type-checked program into a runtime clause database
// ready for proof search.
func Compile[I any](prog ast.Program[infer.Typed[I]]) (*hoc.Database, error) {
	return proof.Compile(prog)
}

// NewEngine starts a proof-search session over db, drawing fresh variables
// from sess (spec §6 "prove").
func NewEngine(sess *Session, db *hoc.Database, limits proof.Limits) *proof.Engine {
	return proof.NewEngine(db, sess.Src, limits)
}

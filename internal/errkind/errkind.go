// Package errkind implements the closed set of error kinds from spec §7,
// shared by the substitution, unification, type-solving and proof-search
// packages.
package errkind

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies one of the error kinds named in spec §7. Kind values are
// not Go error types themselves (several situations share Reason's shape);
// callers should switch on Kind() rather than type-assert.
type Kind int

const (
	// Clash means unifying two incompatible term shapes.
	Clash Kind = iota
	// OccurCheck means a variable occurs in its binding candidate.
	OccurCheck
	// Arity means a tuple/list length mismatch was found during unification.
	Arity
	// TypeClash means the type unifier could not proceed; carries an origin.
	TypeClash
	// NotImpl marks a feature reserved but not implemented in this revision.
	NotImpl
	// NoRule means proof search found no applicable resolution rule.
	NoRule
	// IncomparableRigid means waybelow compared two unequal rigid symbols.
	IncomparableRigid
)

func (k Kind) String() string {
	switch k {
	case Clash:
		return "Clash"
	case OccurCheck:
		return "OccurCheck"
	case Arity:
		return "Arity"
	case TypeClash:
		return "TypeClash"
	case NotImpl:
		return "NotImpl"
	case NoRule:
		return "NoRule"
	case IncomparableRigid:
		return "IncomparableRigid"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Reason is a single error of one of the kinds above. TI errors are
// surfaced with their stack intact (New records one via errors.New); proof
// search errors are recovered as branch failure and their stack is never
// inspected, but carrying one costs nothing and keeps Reason uniform.
type Reason struct {
	kind   Kind
	msg    string
	origin any
	cause  error
}

func (r *Reason) Error() string {
	if r.origin != nil {
		return fmt.Sprintf("%s: %s (at %v)", r.kind, r.msg, r.origin)
	}
	return fmt.Sprintf("%s: %s", r.kind, r.msg)
}

// Kind reports which of the closed set of error kinds this Reason is.
func (r *Reason) Kind() Kind { return r.kind }

// Origin returns the origin-node this error was raised for, if any. Only
// TypeClash reliably carries one, per spec §3.5.
func (r *Reason) Origin() any { return r.origin }

func (r *Reason) Unwrap() error { return r.cause }

// New builds a Reason of the given kind, attaching a stack trace so that
// surfaced (TI) errors can be reported with context.
func New(kind Kind, msg string) *Reason {
	return &Reason{kind: kind, msg: msg, cause: errors.New(msg)}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(kind Kind, format string, args ...any) *Reason {
	return New(kind, fmt.Sprintf(format, args...))
}

// WithOrigin builds a Reason carrying the node that a constraint (spec §3.5)
// originated from, as required for TypeClash.
func WithOrigin(kind Kind, origin any, msg string) *Reason {
	r := New(kind, msg)
	r.origin = origin
	return r
}

// Is reports whether err is a Reason of the given kind, unwrapping wrapped
// errors along the way.
func Is(err error, kind Kind) bool {
	var r *Reason
	if !errors.As(err, &r) {
		return false
	}
	return r.kind == kind
}

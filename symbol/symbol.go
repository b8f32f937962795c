// Package symbol implements the names used throughout the type inference
// and proof search engines: a symbol is a name plus a generation counter,
// per spec §3.1.
package symbol

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// wildcardName is the distinguished name given to anonymous variables. A
// wildcard Symbol never equals a user-written one because every wildcard
// occurrence is freshened with its own generation, and no user-written
// name ever collides with wildcardName.
const wildcardName = "_"

// Symbol is a name plus a generation counter. Two symbols are equal iff
// both fields match.
type Symbol struct {
	Name string
	Gen  uint64
}

// Equal reports whether s and o name the same symbol.
func (s Symbol) Equal(o Symbol) bool {
	return s.Name == o.Name && s.Gen == o.Gen
}

func (s Symbol) String() string {
	if s.Gen == 0 {
		return s.Name
	}
	return fmt.Sprintf("%s#%d", s.Name, s.Gen)
}

// IsWildcard reports whether s originates from an anonymous variable.
func (s Symbol) IsWildcard() bool {
	return s.Name == wildcardName
}

// IsWildcardName reports whether name is the reserved wildcard spelling;
// user-supplied names must never equal it.
func IsWildcardName(name string) bool {
	return name == wildcardName
}

// Plain constructs an unfreshened, generation-0 symbol for a user-written
// name, such as a program-level predicate or constant symbol.
func Plain(name string) Symbol {
	return Symbol{Name: name}
}

// Source is the single monotonically increasing fresh-symbol counter for one
// proof-search or type-inference run. Per spec §5, the counter only ever
// grows, so freshness remains sound even though it is shared across every
// branch of the search.
type Source struct {
	counter atomic.Uint64
}

// NewSource returns a Source starting its counter at 1, so that generation 0
// is reserved for symbols that were never freshened.
func NewSource() *Source {
	s := &Source{}
	s.counter.Store(1)
	return s
}

// Fresh returns a symbol named base whose generation is guaranteed not to
// collide with any symbol previously produced by this Source.
func (s *Source) Fresh(base string) Symbol {
	gen := s.counter.Add(1) - 1
	return Symbol{Name: base, Gen: gen}
}

// FreshWildcard returns a fresh anonymous-variable symbol.
func (s *Source) FreshWildcard() Symbol {
	return s.Fresh(wildcardName)
}

// Variant renames every symbol in vars to a fresh symbol sharing its base
// name (the part of Name before any apostrophe), returning the mapping.
func (s *Source) Variant(vars []Symbol) map[Symbol]Symbol {
	renaming := make(map[Symbol]Symbol, len(vars))
	for _, v := range vars {
		renaming[v] = s.Fresh(baseName(v.Name))
	}
	return renaming
}

func baseName(name string) string {
	if i := strings.IndexByte(name, '\''); i >= 0 {
		return name[:i]
	}
	return name
}

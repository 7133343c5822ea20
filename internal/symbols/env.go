// Package symbols holds the inference-time name spaces: the type
// environment threaded through the walker and the global struct table.
package symbols

import (
	"github.com/yolang-dev/yolang/internal/typesystem"
)

// TypeEnv maps identifier names to type schemes. It is treated as
// immutable by the inference walker: Bind and Remove return updated
// copies so sibling expressions see exactly the environment the
// judgment prescribes. Shadowing replaces the previous binding.
type TypeEnv map[string]typesystem.Scheme

// NewTypeEnv returns an empty environment.
func NewTypeEnv() TypeEnv {
	return TypeEnv{}
}

// Lookup returns the scheme bound to name.
func (e TypeEnv) Lookup(name string) (typesystem.Scheme, bool) {
	s, ok := e[name]
	return s, ok
}

// Bind returns a copy of the environment with name bound to scheme.
func (e TypeEnv) Bind(name string, scheme typesystem.Scheme) TypeEnv {
	out := make(TypeEnv, len(e)+1)
	for k, v := range e {
		out[k] = v
	}
	out[name] = scheme
	return out
}

// Remove returns a copy of the environment without name.
func (e TypeEnv) Remove(name string) TypeEnv {
	out := make(TypeEnv, len(e))
	for k, v := range e {
		if k != name {
			out[k] = v
		}
	}
	return out
}

// Apply rewrites the body of every scheme, keeping quantifier lists
// intact.
func (e TypeEnv) Apply(s typesystem.Subst) TypeEnv {
	if len(s) == 0 {
		return e
	}
	out := make(TypeEnv, len(e))
	for k, v := range e {
		out[k] = v.Apply(s)
	}
	return out
}

// FreeTypeVariables returns the set of variable indices free in the
// environment's schemes.
func (e TypeEnv) FreeTypeVariables() map[int]bool {
	free := make(map[int]bool)
	for _, scheme := range e {
		for _, v := range scheme.FreeTypeVariables() {
			free[v.ID] = true
		}
	}
	return free
}

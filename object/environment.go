// ==============================================================================================
// FILE: object/environment.go
// ==============================================================================================
// PACKAGE: object
// PURPOSE: Implements the lexical scope chain (spec §3.4). Unlike the
//          teacher's always-shadowing Set, ICE distinguishes `define`
//          (always binds in the current scope) from `assign` (walks the
//          chain to the nearest scope already defining the name).
// ==============================================================================================

package object

import (
	"io"
	"os"
)

type Environment struct {
	store map[string]Object // storage for the current scope
	outer *Environment      // link to the enclosing scope, nil at the root
	out   io.Writer         // output sink; only meaningful at the root
}

// NewEnvironment creates a fresh root environment whose builtin output
// (`tampilkan`/`cetak`) goes to os.Stdout.
func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Object)}
}

// NewEnvironmentWithOutput creates a fresh root environment that routes
// builtin output to out instead of os.Stdout, so callers (tests, the CLI,
// the REPL) can capture or redirect what `tampilkan` writes.
func NewEnvironmentWithOutput(out io.Writer) *Environment {
	return &Environment{store: make(map[string]Object), out: out}
}

// NewEnclosedEnvironment creates a new scope linked to an outer scope, for
// blocks, function calls, and bound methods.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// Get performs a linear walk of the scope chain, innermost first.
func (e *Environment) Get(name string) (Object, bool) {
	if obj, ok := e.store[name]; ok {
		return obj, true
	}
	if e.outer != nil {
		return e.outer.Get(name)
	}
	return nil, false
}

// Define always creates (or overwrites) a binding in the current scope,
// shadowing any binding of the same name in an outer scope (spec §3.4).
func (e *Environment) Define(name string, val Object) Object {
	e.store[name] = val
	return val
}

// Assign walks the scope chain outward and stores val in the nearest
// scope that already defines name. It never creates a new binding; the
// caller must treat a false return as an undefined-variable error (spec
// §3.4, §4.3 "Assignment").
func (e *Environment) Assign(name string, val Object) bool {
	if _, ok := e.store[name]; ok {
		e.store[name] = val
		return true
	}
	if e.outer != nil {
		return e.outer.Assign(name, val)
	}
	return false
}

// Writer returns the output sink configured on the root environment this
// scope descends from, defaulting to os.Stdout if none was set (spec §4.6;
// SPEC_FULL.md §2.2's "tampilkan always writes to the configured stdout
// writer").
func (e *Environment) Writer() io.Writer {
	root := e
	for root.outer != nil {
		root = root.outer
	}
	if root.out != nil {
		return root.out
	}
	return os.Stdout
}

// Resolve finds the specific environment instance where a variable is
// defined, walking outward, or nil if no scope in the chain defines it.
func (e *Environment) Resolve(name string) *Environment {
	if _, ok := e.store[name]; ok {
		return e
	}
	if e.outer != nil {
		return e.outer.Resolve(name)
	}
	return nil
}

// ==============================================================================================
// FILE: object/object.go
// ==============================================================================================
// PACKAGE: object
// PURPOSE: Defines the runtime value system for ICE (spec §3.2, §3.5, §3.6).
//          Provides the structures for every value the evaluator produces
//          or manipulates, and the interfaces it dispatches on.
// ==============================================================================================

package object

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/icedev2/ice-go/ast"
	iceerrors "github.com/icedev2/ice-go/errors"
)

// ObjectType is a string alias for identifying the type of an object at runtime.
type ObjectType string

const (
	// Primitive types
	INTEGER_OBJ = "BILANGAN"
	FLOAT_OBJ   = "DESIMAL"
	BOOLEAN_OBJ = "BOOLEAN"
	STRING_OBJ  = "TEKS"
	NIL_OBJ     = "KOSONG"

	// Internal control-flow types
	RETURN_VALUE_OBJ = "RETURN_VALUE" // Wraps a value bubbling up through kembalikan
	ERROR_OBJ        = "ERROR"        // Wraps a runtime error

	// Callables
	FUNCTION_OBJ = "FUNCTION"
	BUILTIN_OBJ  = "BUILTIN"

	// User-defined types
	CLASS_OBJ    = "CLASS"
	INSTANCE_OBJ = "INSTANCE"
)

// Object is the base interface every ICE runtime value implements.
type Object interface {
	Type() ObjectType
	Inspect() string // stringification per spec §4.3.2
}

// ==============================================================================================
// PRIMITIVE OBJECTS
// ==============================================================================================

type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return strconv.FormatInt(i.Value, 10) }

type Float struct {
	Value float64
}

func (f *Float) Type() ObjectType { return FLOAT_OBJ }
func (f *Float) Inspect() string  { return strconv.FormatFloat(f.Value, 'g', -1, 64) }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string {
	if b.Value {
		return "benar"
	}
	return "salah"
}

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }

// Nil is the singleton `kosong` value.
type Nil struct{}

func (n *Nil) Type() ObjectType { return NIL_OBJ }
func (n *Nil) Inspect() string  { return "kosong" }

// NIL is the shared singleton instance returned wherever the evaluator
// produces `kosong`, mirroring the teacher's shared TRUE/FALSE/NULL
// singletons.
var NIL = &Nil{}

var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

// NativeBool returns the shared TRUE or FALSE singleton for a Go bool.
func NativeBool(v bool) *Boolean {
	if v {
		return TRUE
	}
	return FALSE
}

// ==============================================================================================
// INTERNAL CONTROL-FLOW WRAPPERS
// ==============================================================================================

// ReturnValue wraps the value carried by a `kembalikan` statement as it
// unwinds to the nearest function-call boundary (spec §4.3, "Return-signal
// control flow"). It is never observed by user code.
type ReturnValue struct {
	Value Object
}

func (rv *ReturnValue) Type() ObjectType { return RETURN_VALUE_OBJ }
func (rv *ReturnValue) Inspect() string  { return rv.Value.Inspect() }

// Error wraps a runtime error as it propagates up through Eval, following
// the teacher's isError short-circuit convention. Err carries the
// line/column-aware message (spec §7).
type Error struct {
	Err *iceerrors.RuntimeError
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string  { return "ERROR: " + e.Err.Message }
func (e *Error) Error() string    { return e.Err.Error() }

// NewError builds an *Error from a formatted message with no known
// position; evaluator call sites that know a line/column construct the
// RuntimeError directly.
func NewError(format string, a ...interface{}) *Error {
	return &Error{Err: iceerrors.NewRuntimeError(fmt.Sprintf(format, a...), 0, 0)}
}

// NewPositionedError builds an *Error carrying a source position.
func NewPositionedError(line, column int, format string, a ...interface{}) *Error {
	return &Error{Err: iceerrors.NewRuntimeError(fmt.Sprintf(format, a...), line, column)}
}

// ==============================================================================================
// CALLABLES
// ==============================================================================================

// Callable is implemented by every object the evaluator can invoke via a
// CallExpression (spec §3.5). Arity() returns -1 for variadic callables
// (builtins only; ICE user functions are always fixed-arity).
type Callable interface {
	Object
	Arity() int
}

// Builtin wraps opaque host code installed into the root environment
// (spec §4.6). Fn receives the calling environment (so host-facing
// builtins like `tampilkan` can resolve the session's configured output
// writer instead of hard-coding one) plus already-evaluated arguments,
// and returns either a value or an *Error.
type Builtin struct {
	Name string
	Fn   func(env *Environment, args ...Object) Object
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "<builtin " + b.Name + ">" }
func (b *Builtin) Arity() int       { return -1 }

// Function is a user-defined function: a name, parameter list, body
// block, captured closure environment, and (for methods) the class that
// owns it (spec §3.5). Owner is nil for free functions.
type Function struct {
	Name       string
	Parameters []*ast.Identifier
	Body       *ast.BlockStatement
	Env        *Environment
	Owner      *Class // non-nil when this is a method
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	return "<fungsi " + f.Name + "/" + strconv.Itoa(len(f.Parameters)) + ">"
}
func (f *Function) Arity() int { return len(f.Parameters) }

// Bind produces a new Function whose closure environment defines `ini`
// to the given instance (and `__class__` to the owning class, so that
// `super` resolves against the statically-owning class rather than the
// instance's dynamic class — spec §4.4, §9).
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnclosedEnvironment(f.Env)
	env.Define("ini", instance)
	if f.Owner != nil {
		env.Define("__class__", f.Owner)
	}
	return &Function{
		Name:       f.Name,
		Parameters: f.Parameters,
		Body:       f.Body,
		Env:        env,
		Owner:      f.Owner,
	}
}

// ==============================================================================================
// CLASSES & INSTANCES
// ==============================================================================================

// Class is a user-declared class: a name, its own method table (including
// `__init__` and synthetic `get_<p>`/`set_<p>` property accessors), and an
// optional superclass (spec §3.6).
type Class struct {
	Name       string
	Methods    map[string]*Function
	Superclass *Class
}

func (c *Class) Type() ObjectType { return CLASS_OBJ }
func (c *Class) Inspect() string  { return "<kelas " + c.Name + ">" }

// Arity is the arity of __init__ if declared, else 0 (spec §4.4).
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("__init__"); ok {
		return init.Arity()
	}
	return 0
}

// FindMethod searches this class's own table, then walks the superclass
// chain; the first match wins (spec §3.6, §4.4).
func (c *Class) FindMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

// IsSubclassOf walks the superclass chain checking identity (spec §4.4).
func (c *Class) IsSubclassOf(other *Class) bool {
	cur := c
	for cur != nil {
		if cur == other {
			return true
		}
		cur = cur.Superclass
	}
	return false
}

// Instance is an object allocated by `baru ClassName(...)`: a class
// reference plus a mutable field map (spec §3.6).
type Instance struct {
	Class  *Class
	Fields map[string]Object
}

func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: make(map[string]Object)}
}

func (i *Instance) Type() ObjectType { return INSTANCE_OBJ }
func (i *Instance) Inspect() string  { return "<" + i.Class.Name + " instance>" }

// ==============================================================================================
// STRINGIFICATION HELPER
// ==============================================================================================

// Stringify renders any Object the way `str(x)`/`tampilkan` would (spec
// §4.3.2). It is distinct from Inspect so that future debug-only
// formatting can diverge from language-visible formatting without
// touching call sites that rely on one or the other.
func Stringify(obj Object) string {
	return obj.Inspect()
}

// JoinInspect renders a slice of objects space-separated, as `tampilkan`
// does (spec §4.6).
func JoinInspect(objs []Object, sep string) string {
	var out bytes.Buffer
	parts := make([]string, 0, len(objs))
	for _, o := range objs {
		parts = append(parts, Stringify(o))
	}
	out.WriteString(strings.Join(parts, sep))
	return out.String()
}

// ----------------------------------------------------------------------------
// FILE: evaluator/classes.go
// ----------------------------------------------------------------------------
// Class declarations, instantiation, property resolution, and `super`
// dispatch (spec §4.4, §4.5).
package evaluator

import (
	"github.com/icedev2/ice-go/ast"
	"github.com/icedev2/ice-go/object"
)

func evalClassDecl(node *ast.ClassDecl, env *object.Environment) object.Object {
	var super *object.Class
	if node.Superclass != nil {
		superVal, ok := env.Get(node.Superclass.Value)
		if !ok {
			return object.NewPositionedError(node.Superclass.Token.Line, node.Superclass.Token.Column,
				"superclass tidak dikenal: %s", node.Superclass.Value)
		}
		super, ok = superVal.(*object.Class)
		if !ok {
			return object.NewPositionedError(node.Superclass.Token.Line, node.Superclass.Token.Column,
				"%s bukan kelas", node.Superclass.Value)
		}
	}

	class := &object.Class{
		Name:       node.Name.Value,
		Methods:    make(map[string]*object.Function),
		Superclass: super,
	}

	for _, m := range node.Methods {
		class.Methods[m.Name.Value] = &object.Function{
			Name:       m.Name.Value,
			Parameters: m.Parameters,
			Body:       m.Body,
			Env:        env,
			Owner:      class,
		}
	}

	// Synthesize get_<name>/set_<name> accessor methods from property
	// declarations (spec §3.3, §4.5). Accessor invocation bypasses the
	// instance's field map entirely.
	for _, p := range node.Properties {
		if p.Getter != nil {
			class.Methods["get_"+p.Name] = &object.Function{
				Name:  "get_" + p.Name,
				Body:  p.Getter,
				Env:   env,
				Owner: class,
			}
		}
		if p.Setter != nil {
			class.Methods["set_"+p.Name] = &object.Function{
				Name:       "set_" + p.Name,
				Parameters: []*ast.Identifier{p.SetterParam},
				Body:       p.Setter,
				Env:        env,
				Owner:      class,
			}
		}
	}

	env.Define(node.Name.Value, class)
	return object.NIL
}

func evalNewExpression(node *ast.NewExpression, env *object.Environment) object.Object {
	classVal, ok := env.Get(node.ClassName)
	if !ok {
		return object.NewPositionedError(node.Token.Line, node.Token.Column, "kelas tidak dikenal: %s", node.ClassName)
	}
	class, ok := classVal.(*object.Class)
	if !ok {
		return object.NewPositionedError(node.Token.Line, node.Token.Column, "%s bukan kelas", node.ClassName)
	}
	args, errObj := evalExpressionList(node.Arguments, env)
	if errObj != nil {
		return errObj
	}
	return instantiateClass(class, args, node.Token.Line, node.Token.Column)
}

func instantiateClass(class *object.Class, args []object.Object, line, column int) object.Object {
	if class.Arity() != len(args) {
		return object.NewPositionedError(line, column,
			"jumlah argumen salah untuk konstruktor %s: dapat %d, diharapkan %d", class.Name, len(args), class.Arity())
	}
	instance := object.NewInstance(class)
	if init, ok := class.FindMethod("__init__"); ok {
		result := callFunction(init.Bind(instance), args, line, column)
		if isError(result) {
			return result
		}
	}
	return instance
}

func currentInstance(env *object.Environment) *object.Instance {
	if val, ok := env.Get("ini"); ok {
		if inst, ok := val.(*object.Instance); ok {
			return inst
		}
	}
	return nil
}

func evalGetExpression(node *ast.GetExpression, env *object.Environment) object.Object {
	objVal := Eval(node.Object, env)
	if isError(objVal) {
		return objVal
	}
	instance, ok := objVal.(*object.Instance)
	if !ok {
		return object.NewPositionedError(node.Token.Line, node.Token.Column, "hanya instance yang memiliki properti")
	}
	return getProperty(instance, node.Name, env, node.Token.Line, node.Token.Column)
}

// getProperty implements the read resolution order from spec §4.5: field,
// then a get_<name> accessor, then a bound method, else a runtime error.
// Visibility is enforced before any of those are attempted.
func getProperty(instance *object.Instance, name string, env *object.Environment, line, column int) object.Object {
	current := currentInstance(env)
	if !object.CheckAccess(current, instance, name) {
		return object.NewPositionedError(line, column, "akses ditolak ke %s.%s", instance.Class.Name, name)
	}
	if field, ok := instance.Fields[name]; ok {
		return field
	}
	if getter, ok := instance.Class.FindMethod("get_" + name); ok {
		return callFunction(getter.Bind(instance), nil, line, column)
	}
	if method, ok := instance.Class.FindMethod(name); ok {
		return method.Bind(instance)
	}
	return object.NewPositionedError(line, column, "properti atau metode tidak ditemukan: %s", name)
}

// setProperty implements the write resolution order from spec §4.5: a
// set_<name> accessor if present, else direct field storage.
func setProperty(instance *object.Instance, name string, val object.Object, env *object.Environment, line, column int) object.Object {
	current := currentInstance(env)
	if !object.CheckAccess(current, instance, name) {
		return object.NewPositionedError(line, column, "akses ditolak ke %s.%s", instance.Class.Name, name)
	}
	if setter, ok := instance.Class.FindMethod("set_" + name); ok {
		return callFunction(setter.Bind(instance), []object.Object{val}, line, column)
	}
	instance.Fields[name] = val
	return val
}

// evalSuperGetExpression resolves `super.name` against the owning class of
// the currently executing method (the __class__ binding), not the dynamic
// class of `ini` (spec §4.4).
func evalSuperGetExpression(node *ast.SuperGetExpression, env *object.Environment) object.Object {
	instVal, ok := env.Get("ini")
	if !ok {
		return object.NewPositionedError(node.Token.Line, node.Token.Column, "'super' hanya dapat digunakan di dalam metode")
	}
	instance, ok := instVal.(*object.Instance)
	if !ok {
		return object.NewPositionedError(node.Token.Line, node.Token.Column, "'super' hanya dapat digunakan di dalam metode")
	}

	owner := instance.Class
	if ownerVal, ok := env.Get("__class__"); ok {
		if o, ok := ownerVal.(*object.Class); ok {
			owner = o
		}
	}

	if owner.Superclass == nil {
		return object.NewPositionedError(node.Token.Line, node.Token.Column, "%s tidak memiliki superclass", owner.Name)
	}
	method, ok := owner.Superclass.FindMethod(node.Name)
	if !ok {
		return object.NewPositionedError(node.Token.Line, node.Token.Column, "metode tidak ditemukan di superclass: %s", node.Name)
	}
	return method.Bind(instance)
}

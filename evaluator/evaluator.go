// ==============================================================================================
// FILE: evaluator/evaluator.go
// ==============================================================================================
// PACKAGE: evaluator
// PURPOSE: Implements the tree-walking execution engine (spec §4.3). Walks
//          the AST against the current environment, producing side
//          effects (IO via builtins) and object.Object results.
// ==============================================================================================

package evaluator

import (
	"io"
	"strings"

	"github.com/icedev2/ice-go/ast"
	"github.com/icedev2/ice-go/object"
)

// NewRootEnvironment builds the environment installed at evaluator
// creation, with the fixed builtin registry bound into it (spec §4.6).
// Builtin output (`tampilkan`/`cetak`) goes to os.Stdout.
func NewRootEnvironment() *object.Environment {
	return bindBuiltins(object.NewEnvironment())
}

// NewRootEnvironmentWithOutput builds a root environment the same way as
// NewRootEnvironment, but routes builtin output through out instead of
// os.Stdout, so a caller (the CLI's `run`, tests) can capture or redirect
// what `tampilkan` writes.
func NewRootEnvironmentWithOutput(out io.Writer) *object.Environment {
	return bindBuiltins(object.NewEnvironmentWithOutput(out))
}

func bindBuiltins(env *object.Environment) *object.Environment {
	for _, def := range object.Builtins {
		env.Define(def.Name, def.Builtin)
	}
	return env
}

// Eval is the heart of the interpreter: it recursively evaluates AST
// nodes against the given environment.
func Eval(node ast.Node, env *object.Environment) object.Object {
	switch node := node.(type) {

	// --- Root & statements ---
	case *ast.Program:
		return evalProgram(node, env)
	case *ast.ExpressionStatement:
		return Eval(node.Expression, env)
	case *ast.VarDecl:
		return evalVarDecl(node, env)
	case *ast.BlockStatement:
		return evalBlockStatement(node, env)
	case *ast.IfStatement:
		return evalIfStatement(node, env)
	case *ast.WhileStatement:
		return evalWhileStatement(node, env)
	case *ast.ForRangeStatement:
		return evalForRangeStatement(node, env)
	case *ast.ReturnStatement:
		return evalReturnStatement(node, env)
	case *ast.FunctionDecl:
		return evalFunctionDecl(node, env)
	case *ast.ClassDecl:
		return evalClassDecl(node, env)

	// --- Literals ---
	case *ast.IntegerLiteral:
		return &object.Integer{Value: node.Value}
	case *ast.FloatLiteral:
		return &object.Float{Value: node.Value}
	case *ast.StringLiteral:
		return &object.String{Value: node.Value}
	case *ast.BooleanLiteral:
		return object.NativeBool(node.Value)
	case *ast.NilLiteral:
		return object.NIL

	// --- Expressions ---
	case *ast.Identifier:
		return evalIdentifier(node, env)
	case *ast.ThisExpression:
		return evalThisExpression(node, env)
	case *ast.GroupingExpression:
		return Eval(node.Expression, env)
	case *ast.AssignExpression:
		return evalAssignExpression(node, env)
	case *ast.UnaryExpression:
		right := Eval(node.Right, env)
		if isError(right) {
			return right
		}
		return evalUnaryExpression(node, right)
	case *ast.BinaryExpression:
		left := Eval(node.Left, env)
		if isError(left) {
			return left
		}
		right := Eval(node.Right, env)
		if isError(right) {
			return right
		}
		return evalBinaryExpression(node, left, right)
	case *ast.LogicalExpression:
		return evalLogicalExpression(node, env)
	case *ast.CallExpression:
		return evalCallExpression(node, env)
	case *ast.GetExpression:
		return evalGetExpression(node, env)
	case *ast.NewExpression:
		return evalNewExpression(node, env)
	case *ast.SuperGetExpression:
		return evalSuperGetExpression(node, env)
	}

	return object.NewError("node AST tidak dikenal: %T", node)
}

func evalProgram(program *ast.Program, env *object.Environment) object.Object {
	var result object.Object = object.NIL
	for _, stmt := range program.Statements {
		result = Eval(stmt, env)
		switch r := result.(type) {
		case *object.ReturnValue:
			return r.Value
		case *object.Error:
			return r
		}
	}
	return result
}

// evalBlockStatement pushes a fresh child scope before executing its
// statements (spec §4.3 "Block"), so `{ bilangan x = 1; }` never leaks x
// into the enclosing scope.
func evalBlockStatement(block *ast.BlockStatement, env *object.Environment) object.Object {
	scope := object.NewEnclosedEnvironment(env)
	var result object.Object = object.NIL
	for _, stmt := range block.Statements {
		result = Eval(stmt, scope)
		if result != nil {
			switch result.(type) {
			case *object.ReturnValue, *object.Error:
				return result
			}
		}
	}
	return result
}

func evalVarDecl(node *ast.VarDecl, env *object.Environment) object.Object {
	var val object.Object = object.NIL
	if node.Value != nil {
		val = Eval(node.Value, env)
		if isError(val) {
			return val
		}
	}
	env.Define(node.Name.Value, val)
	return object.NIL
}

func evalIfStatement(node *ast.IfStatement, env *object.Environment) object.Object {
	for _, branch := range node.Branches {
		cond := Eval(branch.Condition, env)
		if isError(cond) {
			return cond
		}
		if isTruthy(cond) {
			return Eval(branch.Body, env)
		}
	}
	if node.Else != nil {
		return Eval(node.Else, env)
	}
	return object.NIL
}

func evalWhileStatement(node *ast.WhileStatement, env *object.Environment) object.Object {
	for {
		cond := Eval(node.Condition, env)
		if isError(cond) {
			return cond
		}
		if !isTruthy(cond) {
			break
		}
		result := Eval(node.Body, env)
		if result != nil {
			switch result.(type) {
			case *object.ReturnValue, *object.Error:
				return result
			}
		}
	}
	return object.NIL
}

// evalForRangeStatement desugars `untuk IDENT dalam rentang(...)` over the
// integer sequence produced by the `rentang` builtin (spec §4.3, §4.6).
// The loop variable is bound in the current scope: defined on the first
// iteration if absent, assigned on every iteration thereafter, so it
// persists in the enclosing scope after the loop ends (spec §4.3 "For-
// range"; original_source/ice_lang/interpreter.py defines into self.env
// the same way).
func evalForRangeStatement(node *ast.ForRangeStatement, env *object.Environment) object.Object {
	args, errObj := evalExpressionList(node.RangeArgs, env)
	if errObj != nil {
		return errObj
	}
	rentang, _ := object.GetBuiltin("rentang")
	rangeResult := rentang.Fn(env, args...)
	if isError(rangeResult) {
		return rangeResult
	}
	rng, ok := rangeResult.(*object.Range)
	if !ok {
		return object.NewError("rentang tidak menghasilkan urutan yang valid")
	}

	for _, v := range rng.Values() {
		valObj := &object.Integer{Value: v}
		if _, exists := env.Get(node.Variable.Value); exists {
			env.Assign(node.Variable.Value, valObj)
		} else {
			env.Define(node.Variable.Value, valObj)
		}
		result := Eval(node.Body, env)
		if result != nil {
			switch result.(type) {
			case *object.ReturnValue, *object.Error:
				return result
			}
		}
	}
	return object.NIL
}

func evalReturnStatement(node *ast.ReturnStatement, env *object.Environment) object.Object {
	var val object.Object = object.NIL
	if node.ReturnValue != nil {
		val = Eval(node.ReturnValue, env)
		if isError(val) {
			return val
		}
	}
	return &object.ReturnValue{Value: val}
}

func evalFunctionDecl(node *ast.FunctionDecl, env *object.Environment) object.Object {
	fn := &object.Function{
		Name:       node.Name.Value,
		Parameters: node.Parameters,
		Body:       node.Body,
		Env:        env,
	}
	env.Define(node.Name.Value, fn)
	return object.NIL
}

func evalIdentifier(node *ast.Identifier, env *object.Environment) object.Object {
	if val, ok := env.Get(node.Value); ok {
		return val
	}
	return object.NewPositionedError(node.Token.Line, node.Token.Column, "variabel tidak dikenal: %s", node.Value)
}

// evalThisExpression resolves `ini` from the environment; absence means
// the evaluator is outside any bound-method context (spec §4.3).
func evalThisExpression(node *ast.ThisExpression, env *object.Environment) object.Object {
	if val, ok := env.Get("ini"); ok {
		return val
	}
	return object.NewPositionedError(node.Token.Line, node.Token.Column, "'ini' hanya dapat digunakan di dalam metode")
}

func evalAssignExpression(node *ast.AssignExpression, env *object.Environment) object.Object {
	val := Eval(node.Value, env)
	if isError(val) {
		return val
	}

	switch target := node.Target.(type) {
	case *ast.Identifier:
		if !env.Assign(target.Value, val) {
			return object.NewPositionedError(target.Token.Line, target.Token.Column,
				"tidak dapat menugaskan ke variabel yang belum didefinisikan: %s", target.Value)
		}
		return val
	case *ast.GetExpression:
		objVal := Eval(target.Object, env)
		if isError(objVal) {
			return objVal
		}
		instance, ok := objVal.(*object.Instance)
		if !ok {
			return object.NewPositionedError(target.Token.Line, target.Token.Column,
				"hanya instance yang memiliki properti")
		}
		return setProperty(instance, target.Name, val, env, target.Token.Line, target.Token.Column)
	default:
		return object.NewError("target penugasan tidak valid")
	}
}

// Keyword-form operators (bukan/dan/atau) keep their source casing in the
// lexeme, so the switches below normalize before matching (spec §4.1's
// lowercase-fold only applies to keyword *lookup*, not the stored lexeme).
func evalUnaryExpression(node *ast.UnaryExpression, right object.Object) object.Object {
	switch strings.ToLower(node.Operator) {
	case "-":
		switch v := right.(type) {
		case *object.Integer:
			return &object.Integer{Value: -v.Value}
		case *object.Float:
			return &object.Float{Value: -v.Value}
		default:
			return object.NewPositionedError(node.Token.Line, node.Token.Column,
				"operator unary - membutuhkan bilangan, dapat %s", right.Type())
		}
	case "bukan":
		return object.NativeBool(!isTruthy(right))
	default:
		return object.NewPositionedError(node.Token.Line, node.Token.Column,
			"operator unary tidak dikenal: %s", node.Operator)
	}
}

func evalLogicalExpression(node *ast.LogicalExpression, env *object.Environment) object.Object {
	left := Eval(node.Left, env)
	if isError(left) {
		return left
	}
	switch strings.ToLower(node.Operator) {
	case "atau":
		if isTruthy(left) {
			return left
		}
		return Eval(node.Right, env)
	case "dan":
		if !isTruthy(left) {
			return left
		}
		return Eval(node.Right, env)
	default:
		return object.NewPositionedError(node.Token.Line, node.Token.Column,
			"operator logika tidak dikenal: %s", node.Operator)
	}
}

func evalExpressionList(exps []ast.Expression, env *object.Environment) ([]object.Object, object.Object) {
	result := make([]object.Object, 0, len(exps))
	for _, e := range exps {
		val := Eval(e, env)
		if isError(val) {
			return nil, val
		}
		result = append(result, val)
	}
	return result, nil
}

func evalCallExpression(node *ast.CallExpression, env *object.Environment) object.Object {
	callee := Eval(node.Callee, env)
	if isError(callee) {
		return callee
	}
	args, errObj := evalExpressionList(node.Arguments, env)
	if errObj != nil {
		return errObj
	}

	switch fn := callee.(type) {
	case *object.Function:
		return callFunction(fn, args, node.Token.Line, node.Token.Column)
	case *object.Builtin:
		return fn.Fn(env, args...)
	case *object.Class:
		return instantiateClass(fn, args, node.Token.Line, node.Token.Column)
	default:
		return object.NewPositionedError(node.Token.Line, node.Token.Column,
			"tidak dapat memanggil nilai tipe %s", callee.Type())
	}
}

// callFunction pushes a fresh call frame enclosed by the function's
// captured closure, binds parameters, evaluates the body, and unwraps a
// return signal at the call boundary (spec §4.3 "Return-signal control
// flow"). A fixed-arity mismatch is a runtime error (spec §3.5).
func callFunction(fn *object.Function, args []object.Object, line, column int) object.Object {
	if fn.Arity() != len(args) {
		return object.NewPositionedError(line, column,
			"jumlah argumen salah untuk %s: dapat %d, diharapkan %d", fn.Name, len(args), fn.Arity())
	}
	callEnv := object.NewEnclosedEnvironment(fn.Env)
	for i, param := range fn.Parameters {
		callEnv.Define(param.Value, args[i])
	}
	result := Eval(fn.Body, callEnv)
	if rv, ok := result.(*object.ReturnValue); ok {
		return rv.Value
	}
	if isError(result) {
		return result
	}
	return object.NIL
}

func isTruthy(obj object.Object) bool {
	switch v := obj.(type) {
	case *object.Nil:
		return false
	case *object.Boolean:
		return v.Value
	default:
		return true
	}
}

func isError(obj object.Object) bool {
	if obj == nil {
		return false
	}
	return obj.Type() == object.ERROR_OBJ
}

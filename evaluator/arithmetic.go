// ----------------------------------------------------------------------------
// FILE: evaluator/arithmetic.go
// ----------------------------------------------------------------------------
// Numeric and comparison semantics for BinaryExpression (spec §4.3, §9):
// integer-preserving division/remainder when both operands are integers,
// float promotion otherwise, and cross-kind value equality.
package evaluator

import (
	"math"

	"github.com/icedev2/ice-go/ast"
	"github.com/icedev2/ice-go/object"
)

func isNumber(o object.Object) bool {
	switch o.(type) {
	case *object.Integer, *object.Float:
		return true
	}
	return false
}

func numericValue(o object.Object) (float64, bool) {
	switch v := o.(type) {
	case *object.Integer:
		return float64(v.Value), true
	case *object.Float:
		return v.Value, true
	}
	return 0, false
}

func evalBinaryExpression(node *ast.BinaryExpression, left, right object.Object) object.Object {
	switch node.Operator {
	case "+":
		return evalAddition(node, left, right)
	case "-", "*", "/", "%":
		if !isNumber(left) || !isNumber(right) {
			return object.NewPositionedError(node.Token.Line, node.Token.Column,
				"operator %s membutuhkan bilangan, dapat %s dan %s", node.Operator, left.Type(), right.Type())
		}
		return evalArithmetic(node, left, right)
	case "<", "<=", ">", ">=":
		if !isNumber(left) || !isNumber(right) {
			return object.NewPositionedError(node.Token.Line, node.Token.Column,
				"operator pembanding membutuhkan bilangan, dapat %s dan %s", left.Type(), right.Type())
		}
		lf, _ := numericValue(left)
		rf, _ := numericValue(right)
		switch node.Operator {
		case "<":
			return object.NativeBool(lf < rf)
		case "<=":
			return object.NativeBool(lf <= rf)
		case ">":
			return object.NativeBool(lf > rf)
		default:
			return object.NativeBool(lf >= rf)
		}
	case "==":
		return object.NativeBool(valuesEqual(left, right))
	case "!=":
		return object.NativeBool(!valuesEqual(left, right))
	default:
		return object.NewPositionedError(node.Token.Line, node.Token.Column,
			"operator tidak dikenal: %s", node.Operator)
	}
}

func evalAddition(node *ast.BinaryExpression, left, right object.Object) object.Object {
	if isNumber(left) && isNumber(right) {
		li, lok := left.(*object.Integer)
		ri, rok := right.(*object.Integer)
		if lok && rok {
			return &object.Integer{Value: li.Value + ri.Value}
		}
		lf, _ := numericValue(left)
		rf, _ := numericValue(right)
		return &object.Float{Value: lf + rf}
	}
	_, lIsString := left.(*object.String)
	_, rIsString := right.(*object.String)
	if lIsString || rIsString {
		return &object.String{Value: object.Stringify(left) + object.Stringify(right)}
	}
	return object.NewPositionedError(node.Token.Line, node.Token.Column,
		"operator + tidak didukung untuk %s dan %s", left.Type(), right.Type())
}

// evalArithmetic implements spec §9's resolution of the integer-preserving
// division question: when both operands are integers the result stays
// an integer, truncated toward zero (Go's native "/" behavior); if either
// operand is a float, the result is a float. "%" keeps the sign of the
// dividend in both cases, matching Go's native "%" and math.Mod.
func evalArithmetic(node *ast.BinaryExpression, left, right object.Object) object.Object {
	li, lok := left.(*object.Integer)
	ri, rok := right.(*object.Integer)
	if lok && rok {
		switch node.Operator {
		case "-":
			return &object.Integer{Value: li.Value - ri.Value}
		case "*":
			return &object.Integer{Value: li.Value * ri.Value}
		case "/":
			if ri.Value == 0 {
				return object.NewPositionedError(node.Token.Line, node.Token.Column, "pembagian dengan nol")
			}
			return &object.Integer{Value: li.Value / ri.Value}
		case "%":
			if ri.Value == 0 {
				return object.NewPositionedError(node.Token.Line, node.Token.Column, "pembagian dengan nol")
			}
			return &object.Integer{Value: li.Value % ri.Value}
		}
	}

	lf, _ := numericValue(left)
	rf, _ := numericValue(right)
	switch node.Operator {
	case "-":
		return &object.Float{Value: lf - rf}
	case "*":
		return &object.Float{Value: lf * rf}
	case "/":
		if rf == 0 {
			return object.NewPositionedError(node.Token.Line, node.Token.Column, "pembagian dengan nol")
		}
		return &object.Float{Value: lf / rf}
	default: // "%"
		if rf == 0 {
			return object.NewPositionedError(node.Token.Line, node.Token.Column, "pembagian dengan nol")
		}
		return &object.Float{Value: math.Mod(lf, rf)}
	}
}

// valuesEqual implements spec §9's int/float equality resolution (numeric
// kinds compare by value across the int/float boundary) alongside by-value
// comparison for booleans/strings/nil and by-identity comparison for
// instances and classes.
func valuesEqual(left, right object.Object) bool {
	if isNumber(left) && isNumber(right) {
		lf, _ := numericValue(left)
		rf, _ := numericValue(right)
		return lf == rf
	}
	switch l := left.(type) {
	case *object.Nil:
		_, ok := right.(*object.Nil)
		return ok
	case *object.Boolean:
		r, ok := right.(*object.Boolean)
		return ok && l.Value == r.Value
	case *object.String:
		r, ok := right.(*object.String)
		return ok && l.Value == r.Value
	case *object.Instance:
		r, ok := right.(*object.Instance)
		return ok && l == r
	case *object.Class:
		r, ok := right.(*object.Class)
		return ok && l == r
	}
	return false
}

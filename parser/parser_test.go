package parser

import (
	"testing"

	"github.com/icedev2/ice-go/ast"
	"github.com/icedev2/ice-go/lexer"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := New(lexer.New(input))
	program := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("parser errors for %q: %v", input, p.Errors())
	}
	return program
}

func TestParseVarDeclWithInitializer(t *testing.T) {
	program := parseProgram(t, "bilangan x = 5;")
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	decl, ok := program.Statements[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", program.Statements[0])
	}
	if decl.TypeKeyword != "bilangan" || decl.Name.Value != "x" {
		t.Fatalf("unexpected decl: %+v", decl)
	}
	if _, ok := decl.Value.(*ast.IntegerLiteral); !ok {
		t.Fatalf("expected integer literal initializer, got %T", decl.Value)
	}
}

func TestParseVarDeclWithoutInitializer(t *testing.T) {
	program := parseProgram(t, "teks s;")
	decl := program.Statements[0].(*ast.VarDecl)
	if decl.Value != nil {
		t.Fatalf("expected nil initializer, got %v", decl.Value)
	}
}

func TestParseExpressionStatementRequiresSemicolon(t *testing.T) {
	p := New(lexer.New("1 + 2"))
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatal("expected a syntax error for missing semicolon")
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	program := parseProgram(t, "1 + 2 * 3;")
	stmt := program.Statements[0].(*ast.ExpressionStatement)
	got := stmt.Expression.String()
	want := "(1 + (2 * 3))"
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestParseAssignmentIsRightAssociative(t *testing.T) {
	program := parseProgram(t, "a = b = 5;")
	stmt := program.Statements[0].(*ast.ExpressionStatement)
	assign, ok := stmt.Expression.(*ast.AssignExpression)
	if !ok {
		t.Fatalf("expected *ast.AssignExpression, got %T", stmt.Expression)
	}
	if assign.Target.(*ast.Identifier).Value != "a" {
		t.Fatalf("expected outer target a, got %v", assign.Target)
	}
	inner, ok := assign.Value.(*ast.AssignExpression)
	if !ok {
		t.Fatalf("expected nested assignment, got %T", assign.Value)
	}
	if inner.Target.(*ast.Identifier).Value != "b" {
		t.Fatalf("expected inner target b, got %v", inner.Target)
	}
}

func TestParseAssignmentRejectsInvalidTarget(t *testing.T) {
	p := New(lexer.New("1 = 2;"))
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatal("expected a syntax error for an invalid assignment target")
	}
}

func TestParseIfElseChain(t *testing.T) {
	program := parseProgram(t, `
jika (x < 1) {
	tampilkan(1);
} jikalau (x < 2) {
	tampilkan(2);
} kalau {
	tampilkan(3);
}`)
	stmt, ok := program.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected *ast.IfStatement, got %T", program.Statements[0])
	}
	if len(stmt.Branches) != 2 {
		t.Fatalf("expected 2 branches, got %d", len(stmt.Branches))
	}
	if stmt.Else == nil {
		t.Fatal("expected an else block")
	}
}

func TestParseWhileStatement(t *testing.T) {
	program := parseProgram(t, "selagi (benar) { tampilkan(1); }")
	if _, ok := program.Statements[0].(*ast.WhileStatement); !ok {
		t.Fatalf("expected *ast.WhileStatement, got %T", program.Statements[0])
	}
}

func TestParseForRangeStatement(t *testing.T) {
	program := parseProgram(t, "untuk i dalam rentang(0, 5) { tampilkan(i); }")
	fr, ok := program.Statements[0].(*ast.ForRangeStatement)
	if !ok {
		t.Fatalf("expected *ast.ForRangeStatement, got %T", program.Statements[0])
	}
	if fr.Variable.Value != "i" || len(fr.RangeArgs) != 2 {
		t.Fatalf("unexpected for-range: %+v", fr)
	}
}

func TestParseFunctionDecl(t *testing.T) {
	program := parseProgram(t, "tugas tambah(a, b) { kembalikan a + b; }")
	fn, ok := program.Statements[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected *ast.FunctionDecl, got %T", program.Statements[0])
	}
	if fn.Name.Value != "tambah" || len(fn.Parameters) != 2 {
		t.Fatalf("unexpected function decl: %+v", fn)
	}
}

func TestParseClassDeclWithSuperclassAndProperty(t *testing.T) {
	program := parseProgram(t, `
kelas B : A {
	tugas __init__(x) { ini.x = x; }
	properti nilai {
		get { kembalikan ini._x; }
		set(v) { ini._x = v; }
	}
}`)
	cd, ok := program.Statements[0].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("expected *ast.ClassDecl, got %T", program.Statements[0])
	}
	if cd.Superclass == nil || cd.Superclass.Value != "A" {
		t.Fatalf("expected superclass A, got %+v", cd.Superclass)
	}
	if len(cd.Methods) != 1 || cd.Methods[0].Name.Value != "__init__" {
		t.Fatalf("expected __init__ method, got %+v", cd.Methods)
	}
	if len(cd.Properties) != 1 || cd.Properties[0].Getter == nil || cd.Properties[0].Setter == nil {
		t.Fatalf("expected property with both accessors, got %+v", cd.Properties)
	}
}

func TestParseClassDeclRejectsInvalidMember(t *testing.T) {
	p := New(lexer.New(`kelas A { bilangan x; }`))
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatal("expected a syntax error for an invalid class member")
	}
}

func TestParseNewExpression(t *testing.T) {
	program := parseProgram(t, "baru Mobil(7);")
	stmt := program.Statements[0].(*ast.ExpressionStatement)
	newExpr, ok := stmt.Expression.(*ast.NewExpression)
	if !ok {
		t.Fatalf("expected *ast.NewExpression, got %T", stmt.Expression)
	}
	if newExpr.ClassName != "Mobil" || len(newExpr.Arguments) != 1 {
		t.Fatalf("unexpected new expression: %+v", newExpr)
	}
}

func TestParseSuperGet(t *testing.T) {
	program := parseProgram(t, "super.f();")
	stmt := program.Statements[0].(*ast.ExpressionStatement)
	call, ok := stmt.Expression.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected call expression, got %T", stmt.Expression)
	}
	if _, ok := call.Callee.(*ast.SuperGetExpression); !ok {
		t.Fatalf("expected super get callee, got %T", call.Callee)
	}
}

func TestParseChainedGetAndCall(t *testing.T) {
	program := parseProgram(t, "a.b.c(1, 2);")
	stmt := program.Statements[0].(*ast.ExpressionStatement)
	got := stmt.Expression.String()
	want := "a.b.c(1, 2)"
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestParseKeywordAsIdentifierCall(t *testing.T) {
	program := parseProgram(t, `tampilkan("hi");`)
	stmt := program.Statements[0].(*ast.ExpressionStatement)
	call, ok := stmt.Expression.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected call expression, got %T", stmt.Expression)
	}
	ident, ok := call.Callee.(*ast.Identifier)
	if !ok || ident.Value != "tampilkan" {
		t.Fatalf("expected tampilkan identifier callee, got %+v", call.Callee)
	}
}

func TestParseUnaryBukanAndBang(t *testing.T) {
	program := parseProgram(t, "bukan benar; !salah;")
	s1 := program.Statements[0].(*ast.ExpressionStatement)
	u1 := s1.Expression.(*ast.UnaryExpression)
	if u1.Operator != "bukan" {
		t.Fatalf("expected bukan operator, got %s", u1.Operator)
	}
	s2 := program.Statements[1].(*ast.ExpressionStatement)
	u2 := s2.Expression.(*ast.UnaryExpression)
	if u2.Operator != "bukan" {
		t.Fatalf("expected ! to map to bukan, got %s", u2.Operator)
	}
}

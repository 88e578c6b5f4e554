package evaluator

import (
	"testing"

	"github.com/icedev2/ice-go/lexer"
	"github.com/icedev2/ice-go/object"
	"github.com/icedev2/ice-go/parser"
)

func testEval(t *testing.T, input string) object.Object {
	t.Helper()
	p := parser.New(lexer.New(input))
	program := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("parser errors for %q: %v", input, p.Errors())
	}
	env := NewRootEnvironment()
	return Eval(program, env)
}

func requireInteger(t *testing.T, obj object.Object, want int64) {
	t.Helper()
	i, ok := obj.(*object.Integer)
	if !ok {
		t.Fatalf("expected *object.Integer, got %T (%+v)", obj, obj)
	}
	if i.Value != want {
		t.Fatalf("expected %d, got %d", want, i.Value)
	}
}

func requireFloat(t *testing.T, obj object.Object, want float64) {
	t.Helper()
	f, ok := obj.(*object.Float)
	if !ok {
		t.Fatalf("expected *object.Float, got %T (%+v)", obj, obj)
	}
	if f.Value != want {
		t.Fatalf("expected %g, got %g", want, f.Value)
	}
}

func requireError(t *testing.T, obj object.Object) *object.Error {
	t.Helper()
	e, ok := obj.(*object.Error)
	if !ok {
		t.Fatalf("expected *object.Error, got %T (%+v)", obj, obj)
	}
	return e
}

func TestScopeIsolation(t *testing.T) {
	result := testEval(t, `{ bilangan x = 1; } x;`)
	requireError(t, result)
}

func TestClosureCapture(t *testing.T) {
	result := testEval(t, `
tugas mk() {
	bilangan c = 0;
	tugas inc() {
		c = c + 1;
		kembalikan c;
	}
	kembalikan inc;
}
teks f = mk();
f();
kembalikan f();`)
	requireInteger(t, result, 2)
}

func TestShortCircuitPreservesValueAndAvoidsDivideByZero(t *testing.T) {
	or := testEval(t, `kembalikan benar atau (1 / 0);`)
	if or != object.TRUE {
		t.Fatalf("expected benar, got %+v", or)
	}
	and := testEval(t, `kembalikan salah dan (1 / 0);`)
	if and != object.FALSE {
		t.Fatalf("expected salah, got %+v", and)
	}
}

func TestTruthiness(t *testing.T) {
	cases := map[string]bool{
		"kembalikan bukan kosong;": true,
		"kembalikan bukan salah;":  true,
		"kembalikan bukan 0;":      false,
	}
	for src, want := range cases {
		result := testEval(t, src)
		b, ok := result.(*object.Boolean)
		if !ok {
			t.Fatalf("%q: expected *object.Boolean, got %T", src, result)
		}
		if b.Value != want {
			t.Fatalf("%q: expected %v, got %v", src, want, b.Value)
		}
	}
}

func TestIntegerAndFloatDivisionAndRemainder(t *testing.T) {
	requireInteger(t, testEval(t, "kembalikan 3 / 2;"), 1)
	requireFloat(t, testEval(t, "kembalikan 3.0 / 2;"), 1.5)
	requireInteger(t, testEval(t, "kembalikan 7 % 3;"), 1)
	requireInteger(t, testEval(t, "kembalikan (0 - 7) % 3;"), -1)
}

func TestArityEnforcement(t *testing.T) {
	result := testEval(t, `
tugas f(a, b) { kembalikan a + b; }
kembalikan f(1, 2, 3);`)
	requireError(t, result)
}

func TestInheritanceDispatchWithSuper(t *testing.T) {
	result := testEval(t, `
kelas A { tugas f() { kembalikan 1; } }
kelas B : A { tugas f() { kembalikan 2 + super.f(); } }
kembalikan (baru B()).f();`)
	requireInteger(t, result, 3)
}

func TestPropertyAccessorsGetAndSet(t *testing.T) {
	result := testEval(t, `
kelas Kotak {
	tugas __init__(v) { ini._v = v; }
	properti nilai {
		get { kembalikan ini._v * 2; }
		set(v) { ini._v = v + 1; }
	}
}
teks k = baru Kotak(5);
k.nilai = 10;
kembalikan k.nilai;`)
	// set_nilai stores 10+1=11 in _v; get_nilai reads _v*2=22.
	requireInteger(t, result, 22)
}

func TestVisibilityRejectsExternalPrivateAccess(t *testing.T) {
	result := testEval(t, `
kelas Rahasia { tugas __init__(v) { ini._v = v; } }
teks r = baru Rahasia(1);
kembalikan r._v;`)
	requireError(t, result)
}

func TestVisibilityAllowsAccessFromSameClassMethod(t *testing.T) {
	result := testEval(t, `
kelas Rahasia {
	tugas __init__(v) { ini._v = v; }
	tugas bocor() { kembalikan ini._v; }
}
kembalikan (baru Rahasia(42)).bocor();`)
	requireInteger(t, result, 42)
}

func TestReturnSemanticsDefaultToNil(t *testing.T) {
	noReturn := testEval(t, `tugas f() { bilangan x = 1; } kembalikan f();`)
	if noReturn != object.NIL {
		t.Fatalf("expected kosong, got %+v", noReturn)
	}
	bareReturn := testEval(t, `tugas f() { kembalikan; } kembalikan f();`)
	if bareReturn != object.NIL {
		t.Fatalf("expected kosong, got %+v", bareReturn)
	}
}

func TestEndToEndAddition(t *testing.T) {
	result := testEval(t, `kembalikan 1 + 2;`)
	requireInteger(t, result, 3)
}

func TestEndToEndFactorial(t *testing.T) {
	result := testEval(t, `
bilangan n = 5;
tugas fact(k) {
	jika (k <= 1) {
		kembalikan 1;
	}
	kembalikan k * fact(k - 1);
}
kembalikan fact(n);`)
	requireInteger(t, result, 120)
}

func TestEndToEndInstanceFieldRoundTrip(t *testing.T) {
	result := testEval(t, `
kelas P {
	tugas __init__(x) { ini.x = x; }
}
teks p = baru P(7);
kembalikan p.x;`)
	requireInteger(t, result, 7)
}

func TestEndToEndForRangeIteratesSequence(t *testing.T) {
	result := testEval(t, `
bilangan total = 0;
untuk i dalam rentang(0, 5) {
	total = total + i;
}
kembalikan total;`)
	requireInteger(t, result, 0+1+2+3+4)
}

func TestEndToEndStringConcatenationCoercesNumbers(t *testing.T) {
	left := testEval(t, `kembalikan "a" + 1;`)
	s, ok := left.(*object.String)
	if !ok || s.Value != "a1" {
		t.Fatalf(`expected "a1", got %+v`, left)
	}
	right := testEval(t, `kembalikan 1 + "a";`)
	s, ok = right.(*object.String)
	if !ok || s.Value != "1a" {
		t.Fatalf(`expected "1a", got %+v`, right)
	}
}

func TestIntFloatEquality(t *testing.T) {
	result := testEval(t, `kembalikan 1 == 1.0;`)
	if result != object.TRUE {
		t.Fatalf("expected benar, got %+v", result)
	}
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	requireError(t, testEval(t, `kembalikan tidakAda;`))
}

func TestAssignToUndefinedVariableIsRuntimeError(t *testing.T) {
	requireError(t, testEval(t, `tidakAda = 1;`))
}

func TestCallingNonCallableIsRuntimeError(t *testing.T) {
	requireError(t, testEval(t, `bilangan x = 1; kembalikan x();`))
}

func TestDivisionByZeroIsRuntimeError(t *testing.T) {
	requireError(t, testEval(t, `kembalikan 1 / 0;`))
	requireError(t, testEval(t, `kembalikan 1.0 / 0;`))
}

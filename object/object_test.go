package object

import "testing"

func TestIntegerInspect(t *testing.T) {
	if (&Integer{Value: 42}).Inspect() != "42" {
		t.Fatal("expected 42")
	}
}

func TestFloatInspect(t *testing.T) {
	if (&Float{Value: 3.5}).Inspect() != "3.5" {
		t.Fatalf("expected 3.5, got %s", (&Float{Value: 3.5}).Inspect())
	}
}

func TestBooleanInspect(t *testing.T) {
	if TRUE.Inspect() != "benar" || FALSE.Inspect() != "salah" {
		t.Fatal("expected benar/salah")
	}
}

func TestNilInspect(t *testing.T) {
	if NIL.Inspect() != "kosong" {
		t.Fatal("expected kosong")
	}
}

func TestFunctionBindDefinesIniAndClass(t *testing.T) {
	class := &Class{Name: "Mobil", Methods: map[string]*Function{}}
	fn := &Function{Name: "jalan", Env: NewEnvironment(), Owner: class}
	instance := NewInstance(class)

	bound := fn.Bind(instance)

	got, ok := bound.Env.Get("ini")
	if !ok || got != Object(instance) {
		t.Fatal("expected ini bound to instance")
	}
	gotClass, ok := bound.Env.Get("__class__")
	if !ok || gotClass != Object(class) {
		t.Fatal("expected __class__ bound to owner")
	}
}

func TestClassFindMethodWalksSuperclass(t *testing.T) {
	base := &Class{Name: "A", Methods: map[string]*Function{
		"f": {Name: "f"},
	}}
	derived := &Class{Name: "B", Methods: map[string]*Function{}, Superclass: base}

	m, ok := derived.FindMethod("f")
	if !ok || m.Name != "f" {
		t.Fatal("expected to find inherited method f")
	}

	_, ok = derived.FindMethod("missing")
	if ok {
		t.Fatal("expected missing method to not be found")
	}
}

func TestClassIsSubclassOf(t *testing.T) {
	base := &Class{Name: "A"}
	mid := &Class{Name: "B", Superclass: base}
	leaf := &Class{Name: "C", Superclass: mid}

	if !leaf.IsSubclassOf(base) {
		t.Fatal("expected C to be a subclass of A")
	}
	if !leaf.IsSubclassOf(leaf) {
		t.Fatal("expected a class to be considered a subclass of itself")
	}
	if base.IsSubclassOf(leaf) {
		t.Fatal("did not expect A to be a subclass of C")
	}
}

func TestClassArityFromInit(t *testing.T) {
	class := &Class{Name: "P", Methods: map[string]*Function{
		"__init__": {Name: "__init__"},
	}}
	if class.Arity() != 0 {
		t.Fatalf("expected arity 0, got %d", class.Arity())
	}
}

// ==============================================================================================
// FILE: object/builtins.go
// ==============================================================================================
// PACKAGE: object
// PURPOSE: The fixed global builtin registry installed into the root
//          environment at evaluator creation (spec §4.6).
// ==============================================================================================

package object

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Range is the value produced by `rentang(...)`: a half-open integer
// sequence with start (default 0), stop (exclusive), and a non-zero
// step (default 1). Negative steps are accepted; a degenerate range
// (e.g. stop <= start with a positive step) yields an empty sequence
// (spec §9, Open Questions).
type Range struct {
	Start, Stop, Step int64
}

func (r *Range) Type() ObjectType { return "RENTANG" }
func (r *Range) Inspect() string {
	return fmt.Sprintf("rentang(%d, %d, %d)", r.Start, r.Stop, r.Step)
}

// Values materializes the range's elements.
func (r *Range) Values() []int64 {
	var out []int64
	if r.Step > 0 {
		for v := r.Start; v < r.Stop; v += r.Step {
			out = append(out, v)
		}
	} else {
		for v := r.Start; v > r.Stop; v += r.Step {
			out = append(out, v)
		}
	}
	return out
}

func (r *Range) Len() int { return len(r.Values()) }

// Builtins is the fixed list of native functions installed into the root
// environment (spec §4.6). Name collisions with keywords (`tampilkan`,
// `rentang`) are resolved at parse time: those lexemes double as
// identifiers in expression position (spec §4.2).
var Builtins = []struct {
	Name    string
	Builtin *Builtin
}{
	{"tampilkan", &Builtin{Name: "tampilkan", Fn: builtinTampilkan}},
	{"cetak", &Builtin{Name: "cetak", Fn: builtinTampilkan}},
	{"rentang", &Builtin{Name: "rentang", Fn: builtinRentang}},
	{"panjang", &Builtin{Name: "panjang", Fn: builtinPanjang}},
	{"tipe", &Builtin{Name: "tipe", Fn: builtinTipe}},
	{"int", &Builtin{Name: "int", Fn: builtinInt}},
	{"float", &Builtin{Name: "float", Fn: builtinFloat}},
	{"str", &Builtin{Name: "str", Fn: builtinStr}},
	{"ask", &Builtin{Name: "ask", Fn: builtinAsk}},
}

// GetBuiltin finds a builtin definition by name.
func GetBuiltin(name string) (*Builtin, bool) {
	for _, def := range Builtins {
		if def.Name == name {
			return def.Builtin, true
		}
	}
	return nil, false
}

func builtinTampilkan(env *Environment, args ...Object) Object {
	fmt.Fprintln(env.Writer(), JoinInspect(args, " "))
	return NIL
}

func builtinRentang(env *Environment, args ...Object) Object {
	if len(args) < 1 || len(args) > 3 {
		return NewError("rentang membutuhkan 1..3 argumen, dapat %d", len(args))
	}
	ints := make([]int64, len(args))
	for i, a := range args {
		n, err := toInt(a)
		if err != nil {
			return NewError("rentang: %s", err.Error())
		}
		ints[i] = n
	}
	start, stop, step := int64(0), ints[0], int64(1)
	switch len(ints) {
	case 2:
		start, stop = ints[0], ints[1]
	case 3:
		start, stop, step = ints[0], ints[1], ints[2]
	}
	if step == 0 {
		return NewError("rentang: step tidak boleh nol")
	}
	return &Range{Start: start, Stop: stop, Step: step}
}

func builtinPanjang(env *Environment, args ...Object) Object {
	if len(args) != 1 {
		return NewError("panjang(x) membutuhkan 1 argumen, dapat %d", len(args))
	}
	switch v := args[0].(type) {
	case *String:
		return &Integer{Value: int64(len([]rune(v.Value)))}
	case *Range:
		return &Integer{Value: int64(v.Len())}
	default:
		return NewError("panjang tidak didukung untuk tipe %s", args[0].Type())
	}
}

func builtinTipe(env *Environment, args ...Object) Object {
	if len(args) != 1 {
		return NewError("tipe(x) membutuhkan 1 argumen, dapat %d", len(args))
	}
	switch v := args[0].(type) {
	case *Nil:
		return &String{Value: "kosong"}
	case *Boolean:
		return &String{Value: "boolean"}
	case *Integer:
		return &String{Value: "bilangan"}
	case *Float:
		return &String{Value: "desimal"}
	case *String:
		return &String{Value: "teks"}
	case *Instance:
		return &String{Value: v.Class.Name}
	case *Class:
		return &String{Value: "kelas"}
	default:
		return &String{Value: string(args[0].Type())}
	}
}

func builtinInt(env *Environment, args ...Object) Object {
	if len(args) != 1 {
		return NewError("int(x) membutuhkan 1 argumen, dapat %d", len(args))
	}
	switch v := args[0].(type) {
	case *Integer:
		return v
	case *Float:
		return &Integer{Value: int64(v.Value)}
	case *String:
		n, err := strconv.ParseInt(strings.TrimSpace(v.Value), 10, 64)
		if err != nil {
			return NewError("int: tidak dapat mengubah %q menjadi bilangan", v.Value)
		}
		return &Integer{Value: n}
	case *Boolean:
		if v.Value {
			return &Integer{Value: 1}
		}
		return &Integer{Value: 0}
	default:
		return NewError("int: tidak didukung untuk tipe %s", args[0].Type())
	}
}

func builtinFloat(env *Environment, args ...Object) Object {
	if len(args) != 1 {
		return NewError("float(x) membutuhkan 1 argumen, dapat %d", len(args))
	}
	switch v := args[0].(type) {
	case *Float:
		return v
	case *Integer:
		return &Float{Value: float64(v.Value)}
	case *String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Value), 64)
		if err != nil {
			return NewError("float: tidak dapat mengubah %q menjadi desimal", v.Value)
		}
		return &Float{Value: f}
	default:
		return NewError("float: tidak didukung untuk tipe %s", args[0].Type())
	}
}

func builtinStr(env *Environment, args ...Object) Object {
	if len(args) != 1 {
		return NewError("str(x) membutuhkan 1 argumen, dapat %d", len(args))
	}
	return &String{Value: Stringify(args[0])}
}

func builtinAsk(env *Environment, args ...Object) Object {
	if len(args) > 0 {
		fmt.Fprint(env.Writer(), JoinInspect(args, " ")+" ")
	}
	reader := bufio.NewReader(os.Stdin)
	text, err := reader.ReadString('\n')
	if err != nil {
		return NIL
	}
	return &String{Value: strings.TrimRight(text, "\r\n")}
}

func toInt(o Object) (int64, error) {
	switch v := o.(type) {
	case *Integer:
		return v.Value, nil
	case *Float:
		return int64(v.Value), nil
	default:
		return 0, fmt.Errorf("argumen bukan bilangan: %s", o.Type())
	}
}

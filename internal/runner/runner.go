// ==============================================================================================
// FILE: internal/runner/runner.go
// ==============================================================================================
// PACKAGE: runner
// PURPOSE: Implements spec.md §6.1's two entry points — `run` (one-shot
//          script execution) and `run_persistent` (evaluate one submission
//          against an already-built environment, for the REPL) — as the
//          thin seam between the `cmd/ice` CLI and the lexer/parser/
//          evaluator core.
// ==============================================================================================

package runner

import (
	"fmt"
	"io"
	"os"

	"github.com/icedev2/ice-go/evaluator"
	"github.com/icedev2/ice-go/lexer"
	"github.com/icedev2/ice-go/object"
	"github.com/icedev2/ice-go/parser"
)

// Exit codes per spec.md §6.1.
const (
	ExitSuccess    = 0
	ExitUsage      = 1
	ExitFileNotFound = 2
	ExitSyntax     = 3
	ExitRuntime    = 4
)

// Run executes an ICE program read from path and writes its diagnostics to
// stderr and its `tampilkan` output to stdout. It returns the process exit
// code spec.md §6.1 mandates.
func Run(path string, stdout, stderr io.Writer) int {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(stderr, "berkas tidak ditemukan: %s\n", path)
			return ExitFileNotFound
		}
		fmt.Fprintf(stderr, "tidak dapat membaca berkas: %s\n", err)
		return ExitUsage
	}

	env := evaluator.NewRootEnvironmentWithOutput(stdout)
	return RunSource(string(data), env, stdout, stderr)
}

// RunSource lexes, parses, and evaluates source against env, routing
// builtin output to stdout and diagnostics to stderr. This is
// run_persistent when env is reused across calls (the REPL's use), and
// the tail of Run for one-shot script execution.
func RunSource(source string, env *object.Environment, stdout, stderr io.Writer) int {
	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()

	if errs := p.Errors(); len(errs) != 0 {
		for _, e := range errs {
			fmt.Fprintln(stderr, e.Error())
		}
		return ExitSyntax
	}

	result := evaluator.Eval(program, env)
	if result != nil && result.Type() == object.ERROR_OBJ {
		errObj := result.(*object.Error)
		fmt.Fprintln(stderr, errObj.Err.Error())
		return ExitRuntime
	}
	return ExitSuccess
}

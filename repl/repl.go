// ==============================================================================================
// FILE: repl/repl.go
// ==============================================================================================
// PACKAGE: repl
// PURPOSE: The Read-Eval-Print Loop interface (spec §6.1, run_persistent).
//          Connects an input stream to the compiler pipeline
//          (Lexer -> Parser -> Evaluator) and keeps one environment alive
//          across the whole session.
// ==============================================================================================

package repl

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	iceerrors "github.com/icedev2/ice-go/errors"
	"github.com/icedev2/ice-go/evaluator"
	"github.com/icedev2/ice-go/lexer"
	"github.com/icedev2/ice-go/object"
	"github.com/icedev2/ice-go/parser"
	"github.com/icedev2/ice-go/token"
)

const (
	PROMPT         = "ice> "
	CONTINUE_PROMPT = "...  "
	LOGO           = `
┏━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
┃  ICE — Interpreter Cerdas Edukatif  ┃
┗━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛
`
)

// ANSI color codes for terminal output.
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Purple = "\033[35m"
	Cyan   = "\033[36m"
	Gray   = "\033[37m"
	Bold   = "\033[1m"
)

// quotedLiteral strips string literals from a line before brace-counting,
// the same trick the original CLI's brace_delta used so that a stray brace
// inside a string doesn't unbalance the buffer.
var quotedLiteral = regexp.MustCompile(`"(?:\\.|[^"\\])*"`)

// braceDelta returns the net count of '{' minus '}' in a line, ignoring
// anything inside string literals.
func braceDelta(line string) int {
	stripped := quotedLiteral.ReplaceAllString(line, "")
	delta := 0
	for _, r := range stripped {
		switch r {
		case '{':
			delta++
		case '}':
			delta--
		}
	}
	return delta
}

// readyToSubmit reports whether the accumulated buffer should be
// submitted: depth is not positive and lastLine is blank or ends in ';'
// or '}'.
func readyToSubmit(depth int, lastLine string) bool {
	if depth > 0 {
		return false
	}
	trimmed := strings.TrimSpace(lastLine)
	if trimmed == "" {
		return true
	}
	return strings.HasSuffix(trimmed, ";") || strings.HasSuffix(trimmed, "}")
}

// Options controls REPL presentation; Color disables ANSI escapes when
// false (spec's config .icerc.yaml "color" field feeds this).
type Options struct {
	Color  bool
	Logger zerolog.Logger
}

func colorize(opts Options, code, s string) string {
	if !opts.Color {
		return s
	}
	return code + s + Reset
}

// Start launches the interactive session, reading lines from in and
// writing prompts/results to out. The environment persists for the whole
// session (run_persistent, spec §6.1); ".exit"/".clear"/".debug"/".help"
// are session-local dot-commands, not part of the language itself.
func Start(in io.Reader, out io.Writer, opts Options) {
	scanner := bufio.NewScanner(in)
	env := evaluator.NewRootEnvironmentWithOutput(out)
	debugMode := false

	fmt.Fprint(out, LOGO)
	printHelp(out, opts)

	var buf []string
	depth := 0
	prompt := PROMPT

	for {
		fmt.Fprint(out, colorize(opts, Cyan, prompt))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()

		if len(buf) == 0 {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if strings.HasPrefix(trimmed, ".") {
				if handleCommand(trimmed, out, opts, &env, &debugMode) {
					return
				}
				continue
			}
		}

		buf = append(buf, line)
		depth += braceDelta(line)

		if !readyToSubmit(depth, line) {
			prompt = CONTINUE_PROMPT
			continue
		}

		src := strings.Join(buf, "\n")
		buf = nil
		depth = 0
		prompt = PROMPT

		opts.Logger.Debug().Str("source", src).Msg("repl: evaluating submission")

		if debugMode {
			printTokens(out, opts, src)
		}

		l := lexer.New(src)
		p := parser.New(l)
		program := p.ParseProgram()
		if len(p.Errors()) != 0 {
			printParserErrors(out, opts, p.Errors())
			continue
		}

		if debugMode {
			printAST(out, opts, program)
		}

		result := evaluator.Eval(program, env)
		printEvalResult(out, opts, result)
	}
}

// handleCommand processes a leading-dot REPL command. It reports whether
// the session should end.
func handleCommand(line string, out io.Writer, opts Options, env **object.Environment, debugMode *bool) bool {
	switch line {
	case ".exit":
		fmt.Fprintln(out, colorize(opts, Yellow, "Sampai jumpa!"))
		return true
	case ".clear":
		*env = evaluator.NewRootEnvironmentWithOutput(out)
		fmt.Fprintln(out, colorize(opts, Green, "Lingkungan direset."))
	case ".debug":
		*debugMode = !*debugMode
		status := "NONAKTIF"
		if *debugMode {
			status = "AKTIF"
		}
		fmt.Fprintln(out, colorize(opts, Gray, fmt.Sprintf("Mode debug %s", status)))
	case ".help":
		printHelp(out, opts)
	default:
		fmt.Fprintln(out, colorize(opts, Red, fmt.Sprintf("Perintah tidak dikenal: %s (.help untuk bantuan)", line)))
	}
	return false
}

func printHelp(out io.Writer, opts Options) {
	fmt.Fprintln(out, colorize(opts, Gray, "Perintah:"))
	fmt.Fprintln(out, "  .exit   keluar dari REPL")
	fmt.Fprintln(out, "  .clear  reset lingkungan (variabel/kelas)")
	fmt.Fprintln(out, "  .debug  tampilkan token dan AST setiap submission")
	fmt.Fprintln(out, "  .help   tampilkan pesan ini")
	fmt.Fprintln(out)
}

func printTokens(out io.Writer, opts Options, src string) {
	fmt.Fprintln(out, colorize(opts, Gray, "┌── [ TOKEN ] ──────────────────────────────┐"))
	l := lexer.New(src)
	for {
		tok, err := l.NextToken()
		if err != nil {
			fmt.Fprintf(out, "│ lexer error: %s\n", err)
			break
		}
		if tok.Type == token.EOF {
			break
		}
		fmt.Fprintf(out, "│ %-15s : %s\n", tok.Type, tok.Lexeme)
	}
	fmt.Fprintln(out, colorize(opts, Gray, "└───────────────────────────────────────────┘"))
}

func printAST(out io.Writer, opts Options, program fmt.Stringer) {
	fmt.Fprintln(out, colorize(opts, Gray, "┌── [ AST ] ─────────────────────────────────┐"))
	if str := program.String(); str != "" {
		fmt.Fprintf(out, "%s\n", str)
	}
	fmt.Fprintln(out, colorize(opts, Gray, "└───────────────────────────────────────────┘"))
}

func printParserErrors(out io.Writer, opts Options, errs []*iceerrors.SyntaxError) {
	fmt.Fprintln(out, colorize(opts, Red+Bold, "Kesalahan sintaks:"))
	for _, e := range errs {
		fmt.Fprintln(out, colorize(opts, Red, "  x "+e.Error()))
	}
}

// printEvalResult formats the final value of a submission the way the
// teacher's REPL keys output color off the concrete object.Object type.
func printEvalResult(out io.Writer, opts Options, obj object.Object) {
	if obj == nil || obj.Type() == object.NIL_OBJ {
		return
	}

	switch v := obj.(type) {
	case *object.Error:
		fmt.Fprintln(out, colorize(opts, Red+Bold, "ERROR: "+v.Err.Message))
	case *object.Integer, *object.Float:
		fmt.Fprintln(out, colorize(opts, Yellow, obj.Inspect()))
	case *object.Boolean:
		color := Green
		if !v.Value {
			color = Red
		}
		fmt.Fprintln(out, colorize(opts, color, obj.Inspect()))
	case *object.String:
		fmt.Fprintln(out, colorize(opts, Green, obj.Inspect()))
	case *object.ReturnValue:
		printEvalResult(out, opts, v.Value)
	case *object.Function:
		fmt.Fprintln(out, colorize(opts, Purple, obj.Inspect()))
	case *object.Class:
		fmt.Fprintln(out, colorize(opts, Blue, obj.Inspect()))
	case *object.Instance:
		fmt.Fprintln(out, colorize(opts, Cyan, obj.Inspect()))
	default:
		fmt.Fprintln(out, obj.Inspect())
	}
}

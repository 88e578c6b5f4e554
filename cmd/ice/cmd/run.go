// ==============================================================================================
// FILE: cmd/ice/cmd/run.go
// ==============================================================================================
// PACKAGE: cmd
// PURPOSE: `ice run [file]` — spec.md §6.1's `run` entry point, plus the
//          original_source/ice_lang/cli.py `--time` wall-clock flag
//          (SPEC_FULL.md §4), which wraps the call to run() without
//          instrumenting the core itself.
// ==============================================================================================

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/icedev2/ice-go/internal/runner"
)

var showTime bool

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run an ICE script file",
	Args:  cobra.ExactArgs(1),
	RunE:  runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&showTime, "time", false, "print wall-clock execution duration")
}

func runScript(cmd *cobra.Command, args []string) error {
	path := args[0]
	logger.Debug().Str("file", path).Msg("ice run: starting")

	start := time.Now()
	code := runner.Run(path, os.Stdout, os.Stderr)
	elapsed := time.Since(start)

	if showTime {
		fmt.Fprintf(os.Stderr, "Waktu: %s\n", elapsed)
	}

	logger.Debug().Int("exit_code", code).Dur("elapsed", elapsed).Msg("ice run: finished")

	// exitCode carries spec.md §6.1's run() exit code out to main(). A
	// non-nil RunE error here would make cobra print its own "Error: ..."
	// line on top of the diagnostics runner.Run already wrote to stderr.
	exitCode = code
	return nil
}

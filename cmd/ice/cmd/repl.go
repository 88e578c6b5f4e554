// ==============================================================================================
// FILE: cmd/ice/cmd/repl.go
// ==============================================================================================
// PACKAGE: cmd
// PURPOSE: `ice repl` — spec.md §6.1's `run_persistent` entry point,
//          delegating to the `repl` package's interactive front-end.
// ==============================================================================================

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/icedev2/ice-go/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive ICE session",
	RunE:  runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	logger.Debug().Msg("ice repl: session starting")
	repl.Start(os.Stdin, os.Stdout, repl.Options{
		Color:  cfg.Color,
		Logger: logger,
	})
	logger.Debug().Msg("ice repl: session ended")
	return nil
}

// ==============================================================================================
// FILE: cmd/ice/cmd/root.go
// ==============================================================================================
// PACKAGE: cmd
// PURPOSE: Root of the ICE CLI's cobra command tree (SPEC_FULL.md §2.4),
//          grounded in CWBudde-go-dws/cmd/dwscript/cmd's root.go pattern.
//          Kept thin: all language semantics live in lexer/parser/
//          evaluator, not here.
// ==============================================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/icedev2/ice-go/internal/config"
)

var (
	// Version information, overridable by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

var (
	configPath string
	verbose    bool

	cfg    config.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ice",
	Short: "ICE — an Indonesian-keyword imperative/OO scripting language",
	Long: `ice is the command-line interface for the ICE programming language:
an imperative, class-based language whose keywords read as Indonesian
(jika, selagi, tugas, kelas, kembalikan, ...).

Use "ice run <file>" to execute a script, or "ice repl" for an
interactive session.`,
	Version:           Version,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command and returns its exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return exitCode
}

// exitCode is set by subcommands that need to report spec.md §6.1's
// non-zero run() exit codes without cobra itself treating them as errors
// (a clean "syntax error" exit is not a CLI usage failure).
var exitCode int

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to .icerc.yaml (default: ./.icerc.yaml, then $HOME/.icerc.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostic logging")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("gagal memuat konfigurasi: %w", err)
	}
	cfg = loaded

	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: !cfg.Color}).
		Level(level).
		With().Timestamp().Logger()
	return nil
}

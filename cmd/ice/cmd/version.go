// ==============================================================================================
// FILE: cmd/ice/cmd/version.go
// ==============================================================================================
// PACKAGE: cmd
// PURPOSE: `ice version` — simple build-metadata printout, grounded in
//          CWBudde-go-dws/cmd/dwscript/cmd/version.go.
// ==============================================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ice version %s\n", Version)
		fmt.Printf("Git Commit: %s\n", GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// ==============================================================================================
// FILE: cmd/ice/main.go
// ==============================================================================================
// Entry point for the `ice` binary: delegates straight to the cobra
// command tree in cmd/ice/cmd.
// ==============================================================================================

package main

import (
	"os"

	"github.com/icedev2/ice-go/cmd/ice/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}

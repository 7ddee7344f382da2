// SPDX-License-Identifier: EPL-2.0

// Command audfx transposes audio files and removes their vocals.
//
// Usage:
//
//	audfx [flags] <command> [args]
//
// Commands:
//
//	process  - Pitch-shift and/or strip vocals, write a WAV file
//	inspect  - Show format, length and layout of an audio file
//	version  - Show version information
package main

import (
	"fmt"
	"os"

	"github.com/ik5/audfx/cmd/audfx/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
